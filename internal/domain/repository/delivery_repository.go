package repository

import "github.com/forkast/branch-ops/internal/domain/entity"

// DeliveryRepository puerto de persistencia de entregas.
type DeliveryRepository interface {
	Create(d *entity.Delivery) error
	GetByID(id string) (*entity.Delivery, error)
	// GetByOrder devuelve la entrega de una orden (uno a uno) o nil.
	GetByOrder(orderID string) (*entity.Delivery, error)
	Update(d *entity.Delivery) error
	List(status entity.DeliveryStatus, limit, offset int) ([]*entity.Delivery, error)
	CountByStatus(status entity.DeliveryStatus) (int, error)
}
