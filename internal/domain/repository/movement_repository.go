package repository

import "github.com/forkast/branch-ops/internal/domain/entity"

// MovementRepository puerto de persistencia del libro de movimientos
// (append-only: no hay Update; Delete existe solo para el deshacer
// administrativo de asientos manuales).
type MovementRepository interface {
	Create(m *entity.Movement) error
	GetByID(id string) (*entity.Movement, error)
	// FindByCausalRef busca el primer asiento con la referencia causal exacta.
	// Es el guard de idempotencia: debe invocarse dentro de la misma
	// transacción que la escritura que protege. Devuelve nil si no existe.
	FindByCausalRef(ref string) (*entity.Movement, error)
	// ExistsByItem indica si el artículo tiene algún asiento (bloquea el
	// borrado físico del maestro).
	ExistsByItem(itemID string) (bool, error)
	Delete(id string) error
	// ListLatest devuelve los últimos n asientos para el feed en vivo.
	ListLatest(n int) ([]*entity.Movement, error)
	ListByItem(itemID string, limit, offset int) ([]*entity.Movement, error)
}
