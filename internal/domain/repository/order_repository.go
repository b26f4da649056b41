package repository

import "github.com/forkast/branch-ops/internal/domain/entity"

// OrderRepository puerto de persistencia de órdenes.
type OrderRepository interface {
	Create(o *entity.Order) error
	GetByID(id string) (*entity.Order, error)
	Update(o *entity.Order) error
	List(status entity.OrderStatus, direction entity.OrderDirection, limit, offset int) ([]*entity.Order, error)
	CountByStatus(status entity.OrderStatus) (int, error)
}
