package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/forkast/branch-ops/internal/domain"
	"github.com/forkast/branch-ops/internal/domain/entity"
	"github.com/forkast/branch-ops/internal/domain/repository"
)

var _ repository.MovementRepository = (*MovementRepo)(nil)

// MovementRepo implementación de MovementRepository sobre PostgreSQL
// (usable con pool o tx). La tabla es append-only: no hay UPDATE.
type MovementRepo struct {
	q Querier
}

// NewMovementRepository construye el adaptador del libro de movimientos.
func NewMovementRepository(q Querier) *MovementRepo {
	return &MovementRepo{q: q}
}

const movementColumns = `id, item_id, item_name, direction, quantity, reason, causal_ref, created_at`

func scanMovement(row pgx.Row) (*entity.Movement, error) {
	var m entity.Movement
	err := row.Scan(&m.ID, &m.ItemID, &m.ItemName, &m.Direction, &m.Quantity, &m.Reason, &m.CausalRef, &m.CreatedAt)
	if err != nil {
		return nil, err
	}
	return &m, nil
}

// Create inserta el asiento.
func (r *MovementRepo) Create(m *entity.Movement) error {
	query := `
		INSERT INTO stock_movements (` + movementColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`
	_, err := r.q.Exec(context.Background(), query,
		m.ID, m.ItemID, m.ItemName, m.Direction, m.Quantity, m.Reason, m.CausalRef, m.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("create movement: %w", err)
	}
	return nil
}

// GetByID obtiene el asiento o nil.
func (r *MovementRepo) GetByID(id string) (*entity.Movement, error) {
	query := `SELECT ` + movementColumns + ` FROM stock_movements WHERE id = $1`
	m, err := scanMovement(r.q.QueryRow(context.Background(), query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get movement: %w", err)
	}
	return m, nil
}

// FindByCausalRef busca el primer asiento con la referencia causal exacta.
// Guard de idempotencia: se invoca dentro de la misma tx que la escritura.
func (r *MovementRepo) FindByCausalRef(ref string) (*entity.Movement, error) {
	query := `SELECT ` + movementColumns + ` FROM stock_movements WHERE causal_ref = $1 ORDER BY created_at LIMIT 1`
	m, err := scanMovement(r.q.QueryRow(context.Background(), query, ref))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("find movement by causal ref: %w", err)
	}
	return m, nil
}

// ExistsByItem indica si el artículo tiene algún asiento.
func (r *MovementRepo) ExistsByItem(itemID string) (bool, error) {
	query := `SELECT EXISTS (SELECT 1 FROM stock_movements WHERE item_id = $1)`
	var exists bool
	if err := r.q.QueryRow(context.Background(), query, itemID).Scan(&exists); err != nil {
		return false, fmt.Errorf("exists movement by item: %w", err)
	}
	return exists, nil
}

// Delete elimina el asiento (solo el deshacer administrativo de manuales).
func (r *MovementRepo) Delete(id string) error {
	tag, err := r.q.Exec(context.Background(), `DELETE FROM stock_movements WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete movement: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// ListLatest devuelve los últimos n asientos (feed en vivo).
func (r *MovementRepo) ListLatest(n int) ([]*entity.Movement, error) {
	query := `SELECT ` + movementColumns + ` FROM stock_movements ORDER BY created_at DESC LIMIT $1`
	rows, err := r.q.Query(context.Background(), query, n)
	if err != nil {
		return nil, fmt.Errorf("list latest movements: %w", err)
	}
	defer rows.Close()
	return collectMovements(rows)
}

// ListByItem historial de asientos de un artículo, más recientes primero.
func (r *MovementRepo) ListByItem(itemID string, limit, offset int) ([]*entity.Movement, error) {
	if limit <= 0 {
		limit = 50
	}
	query := `SELECT ` + movementColumns + ` FROM stock_movements WHERE item_id = $1 ORDER BY created_at DESC LIMIT $2 OFFSET $3`
	rows, err := r.q.Query(context.Background(), query, itemID, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("list movements by item: %w", err)
	}
	defer rows.Close()
	return collectMovements(rows)
}

func collectMovements(rows pgx.Rows) ([]*entity.Movement, error) {
	var out []*entity.Movement
	for rows.Next() {
		m, err := scanMovement(rows)
		if err != nil {
			return nil, fmt.Errorf("scan movement: %w", err)
		}
		out = append(out, m)
	}
	return out, rows.Err()
}
