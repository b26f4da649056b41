package repository

import (
	"time"

	"github.com/forkast/branch-ops/internal/domain/entity"
)

// DailySalesRepository puerto de persistencia del agregado diario (caché).
type DailySalesRepository interface {
	// Upsert sobrescribe la fila (fecha, item) con el valor recién sumado.
	Upsert(d *entity.DailySales) error
	Get(date time.Time, itemName string) (*entity.DailySales, error)
	ListRange(from, to time.Time) ([]*entity.DailySales, error)
}
