package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"

	"github.com/forkast/branch-ops/internal/domain/entity"
	"github.com/forkast/branch-ops/internal/domain/repository"
)

var _ repository.DailySalesRepository = (*DailySalesRepo)(nil)

// DailySalesRepo implementación de DailySalesRepository sobre PostgreSQL
// (usable con pool o tx).
type DailySalesRepo struct {
	q Querier
}

// NewDailySalesRepository construye el adaptador del agregado diario.
func NewDailySalesRepository(q Querier) *DailySalesRepo {
	return &DailySalesRepo{q: q}
}

// Upsert sobrescribe la fila (fecha, item) con el valor recién sumado.
func (r *DailySalesRepo) Upsert(d *entity.DailySales) error {
	query := `
		INSERT INTO daily_sales (date, item_name, revenue, updated_at)
		VALUES ($1, $2, $3, $4)
		ON CONFLICT (date, item_name)
		DO UPDATE SET revenue = EXCLUDED.revenue, updated_at = EXCLUDED.updated_at`
	_, err := r.q.Exec(context.Background(), query, d.Date, d.ItemName, d.Revenue, d.UpdatedAt)
	if err != nil {
		return fmt.Errorf("upsert daily sales: %w", err)
	}
	return nil
}

// Get devuelve la fila (fecha, item) o nil.
func (r *DailySalesRepo) Get(date time.Time, itemName string) (*entity.DailySales, error) {
	query := `SELECT date, item_name, revenue, updated_at FROM daily_sales WHERE date = $1 AND item_name = $2`
	var d entity.DailySales
	err := r.q.QueryRow(context.Background(), query, date, itemName).Scan(&d.Date, &d.ItemName, &d.Revenue, &d.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get daily sales: %w", err)
	}
	return &d, nil
}

// ListRange lista agregados entre dos fechas inclusive.
func (r *DailySalesRepo) ListRange(from, to time.Time) ([]*entity.DailySales, error) {
	query := `
		SELECT date, item_name, revenue, updated_at
		FROM daily_sales WHERE date >= $1 AND date <= $2
		ORDER BY date, item_name`
	rows, err := r.q.Query(context.Background(), query, from, to)
	if err != nil {
		return nil, fmt.Errorf("list daily sales: %w", err)
	}
	defer rows.Close()

	var out []*entity.DailySales
	for rows.Next() {
		var d entity.DailySales
		if err := rows.Scan(&d.Date, &d.ItemName, &d.Revenue, &d.UpdatedAt); err != nil {
			return nil, fmt.Errorf("scan daily sales: %w", err)
		}
		out = append(out, &d)
	}
	return out, rows.Err()
}
