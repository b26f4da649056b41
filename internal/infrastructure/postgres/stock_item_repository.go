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

var _ repository.StockItemRepository = (*StockItemRepo)(nil)

// StockItemRepo implementación de StockItemRepository sobre PostgreSQL (usable con pool o tx).
type StockItemRepo struct {
	q Querier
}

// NewStockItemRepository construye el adaptador del maestro de artículos. Pasar pool o tx (Querier).
func NewStockItemRepository(q Querier) *StockItemRepo {
	return &StockItemRepo{q: q}
}

const stockItemColumns = `id, name, category, code, current_stock, optimal_stock, status, cost, price, active, created_at, updated_at`

func scanStockItem(row pgx.Row) (*entity.StockItem, error) {
	var it entity.StockItem
	err := row.Scan(
		&it.ID, &it.Name, &it.Category, &it.Code,
		&it.CurrentStock, &it.OptimalStock, &it.Status,
		&it.Cost, &it.Price, &it.Active, &it.CreatedAt, &it.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &it, nil
}

// Create inserta el artículo.
func (r *StockItemRepo) Create(item *entity.StockItem) error {
	query := `
		INSERT INTO stock_items (` + stockItemColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)`
	_, err := r.q.Exec(context.Background(), query,
		item.ID, item.Name, item.Category, item.Code,
		item.CurrentStock, item.OptimalStock, item.Status,
		item.Cost, item.Price, item.Active, item.CreatedAt, item.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("create stock item: %w", err)
	}
	return nil
}

// GetByID obtiene el artículo o nil si no existe.
func (r *StockItemRepo) GetByID(id string) (*entity.StockItem, error) {
	query := `SELECT ` + stockItemColumns + ` FROM stock_items WHERE id = $1`
	it, err := scanStockItem(r.q.QueryRow(context.Background(), query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get stock item: %w", err)
	}
	return it, nil
}

// GetForUpdate obtiene el artículo bloqueando su fila (SELECT FOR UPDATE).
func (r *StockItemRepo) GetForUpdate(id string) (*entity.StockItem, error) {
	query := `SELECT ` + stockItemColumns + ` FROM stock_items WHERE id = $1 FOR UPDATE`
	it, err := scanStockItem(r.q.QueryRow(context.Background(), query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get stock item for update: %w", err)
	}
	return it, nil
}

// Update actualiza todos los campos mutables del artículo.
func (r *StockItemRepo) Update(item *entity.StockItem) error {
	query := `
		UPDATE stock_items
		SET name = $2, category = $3, code = $4, current_stock = $5,
		    optimal_stock = $6, status = $7, cost = $8, price = $9,
		    active = $10, updated_at = $11
		WHERE id = $1`
	tag, err := r.q.Exec(context.Background(), query,
		item.ID, item.Name, item.Category, item.Code,
		item.CurrentStock, item.OptimalStock, item.Status,
		item.Cost, item.Price, item.Active, item.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("update stock item: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// Deactivate marca el artículo como inactivo (borrado suave).
func (r *StockItemRepo) Deactivate(id string) error {
	query := `UPDATE stock_items SET active = false, updated_at = now() WHERE id = $1`
	tag, err := r.q.Exec(context.Background(), query, id)
	if err != nil {
		return fmt.Errorf("deactivate stock item: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// Delete elimina físicamente el artículo (solo sin asientos asociados).
func (r *StockItemRepo) Delete(id string) error {
	query := `DELETE FROM stock_items WHERE id = $1`
	tag, err := r.q.Exec(context.Background(), query, id)
	if err != nil {
		return fmt.Errorf("delete stock item: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// List lista artículos, opcionalmente solo los activos. limit <= 0 = sin límite.
func (r *StockItemRepo) List(onlyActive bool, limit, offset int) ([]*entity.StockItem, error) {
	query := `SELECT ` + stockItemColumns + ` FROM stock_items`
	if onlyActive {
		query += ` WHERE active = true`
	}
	query += ` ORDER BY name`
	args := []any{}
	if limit > 0 {
		query += fmt.Sprintf(` LIMIT $%d OFFSET $%d`, len(args)+1, len(args)+2)
		args = append(args, limit, offset)
	}
	rows, err := r.q.Query(context.Background(), query, args...)
	if err != nil {
		return nil, fmt.Errorf("list stock items: %w", err)
	}
	defer rows.Close()

	var items []*entity.StockItem
	for rows.Next() {
		it, err := scanStockItem(rows)
		if err != nil {
			return nil, fmt.Errorf("scan stock item: %w", err)
		}
		items = append(items, it)
	}
	return items, rows.Err()
}

// CountByStatus cuenta artículos activos en un estado derivado.
func (r *StockItemRepo) CountByStatus(status entity.StockStatus) (int, error) {
	query := `SELECT count(*) FROM stock_items WHERE active = true AND status = $1`
	var n int
	if err := r.q.QueryRow(context.Background(), query, status).Scan(&n); err != nil {
		return 0, fmt.Errorf("count stock items: %w", err)
	}
	return n, nil
}
