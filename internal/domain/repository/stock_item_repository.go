package repository

import "github.com/forkast/branch-ops/internal/domain/entity"

// StockItemRepository puerto de persistencia del maestro de artículos (DIP).
type StockItemRepository interface {
	Create(item *entity.StockItem) error
	GetByID(id string) (*entity.StockItem, error)
	// GetForUpdate obtiene el artículo bloqueando su fila (SELECT FOR UPDATE)
	// durante la aplicación de un movimiento. Punto de serialización del motor.
	GetForUpdate(id string) (*entity.StockItem, error)
	Update(item *entity.StockItem) error
	// Deactivate marca el artículo como inactivo (borrado suave).
	Deactivate(id string) error
	// Delete elimina físicamente; solo válido sin asientos asociados.
	Delete(id string) error
	List(onlyActive bool, limit, offset int) ([]*entity.StockItem, error)
	CountByStatus(status entity.StockStatus) (int, error)
}
