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

var _ repository.DeliveryRepository = (*DeliveryRepo)(nil)

// DeliveryRepo implementación de DeliveryRepository sobre PostgreSQL (usable con pool o tx).
type DeliveryRepo struct {
	q Querier
}

// NewDeliveryRepository construye el adaptador de entregas.
func NewDeliveryRepository(q Querier) *DeliveryRepo {
	return &DeliveryRepo{q: q}
}

const deliveryColumns = `id, order_id, item_name, address, driver, vehicle, status, scheduled_at, delivered_at, created_at`

func scanDelivery(row pgx.Row) (*entity.Delivery, error) {
	var d entity.Delivery
	err := row.Scan(&d.ID, &d.OrderID, &d.ItemName, &d.Address, &d.Driver, &d.Vehicle, &d.Status, &d.ScheduledAt, &d.DeliveredAt, &d.CreatedAt)
	if err != nil {
		return nil, err
	}
	return &d, nil
}

// Create inserta la entrega. La constraint única sobre order_id materializa
// el uno a uno con la orden.
func (r *DeliveryRepo) Create(d *entity.Delivery) error {
	query := `
		INSERT INTO deliveries (` + deliveryColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)`
	_, err := r.q.Exec(context.Background(), query,
		d.ID, d.OrderID, d.ItemName, d.Address, d.Driver, d.Vehicle, d.Status, d.ScheduledAt, d.DeliveredAt, d.CreatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("create delivery: %w", err)
	}
	return nil
}

// GetByID obtiene la entrega o nil.
func (r *DeliveryRepo) GetByID(id string) (*entity.Delivery, error) {
	query := `SELECT ` + deliveryColumns + ` FROM deliveries WHERE id = $1`
	d, err := scanDelivery(r.q.QueryRow(context.Background(), query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get delivery: %w", err)
	}
	return d, nil
}

// GetByOrder devuelve la entrega de una orden o nil.
func (r *DeliveryRepo) GetByOrder(orderID string) (*entity.Delivery, error) {
	query := `SELECT ` + deliveryColumns + ` FROM deliveries WHERE order_id = $1`
	d, err := scanDelivery(r.q.QueryRow(context.Background(), query, orderID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get delivery by order: %w", err)
	}
	return d, nil
}

// Update actualiza estado, sellos de tiempo y datos de despacho.
func (r *DeliveryRepo) Update(d *entity.Delivery) error {
	query := `
		UPDATE deliveries
		SET address = $2, driver = $3, vehicle = $4, status = $5,
		    scheduled_at = $6, delivered_at = $7
		WHERE id = $1`
	tag, err := r.q.Exec(context.Background(), query,
		d.ID, d.Address, d.Driver, d.Vehicle, d.Status, d.ScheduledAt, d.DeliveredAt,
	)
	if err != nil {
		return fmt.Errorf("update delivery: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// List lista entregas con filtro opcional por estado. limit <= 0 = 50.
func (r *DeliveryRepo) List(status entity.DeliveryStatus, limit, offset int) ([]*entity.Delivery, error) {
	if limit <= 0 {
		limit = 50
	}
	query := `SELECT ` + deliveryColumns + ` FROM deliveries`
	args := []any{}
	if status != "" {
		args = append(args, status)
		query += fmt.Sprintf(` WHERE status = $%d`, len(args))
	}
	args = append(args, limit, offset)
	query += fmt.Sprintf(` ORDER BY created_at DESC LIMIT $%d OFFSET $%d`, len(args)-1, len(args))

	rows, err := r.q.Query(context.Background(), query, args...)
	if err != nil {
		return nil, fmt.Errorf("list deliveries: %w", err)
	}
	defer rows.Close()

	var out []*entity.Delivery
	for rows.Next() {
		d, err := scanDelivery(rows)
		if err != nil {
			return nil, fmt.Errorf("scan delivery: %w", err)
		}
		out = append(out, d)
	}
	return out, rows.Err()
}

// CountByStatus cuenta entregas en un estado.
func (r *DeliveryRepo) CountByStatus(status entity.DeliveryStatus) (int, error) {
	var n int
	err := r.q.QueryRow(context.Background(), `SELECT count(*) FROM deliveries WHERE status = $1`, status).Scan(&n)
	if err != nil {
		return 0, fmt.Errorf("count deliveries: %w", err)
	}
	return n, nil
}
