package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/shopspring/decimal"

	"github.com/forkast/branch-ops/internal/domain"
	"github.com/forkast/branch-ops/internal/domain/entity"
	"github.com/forkast/branch-ops/internal/domain/repository"
)

var _ repository.TransactionRepository = (*TransactionRepo)(nil)

// TransactionRepo implementación de TransactionRepository sobre PostgreSQL
// (usable con pool o tx). Cabecera y líneas viven en tablas separadas.
type TransactionRepo struct {
	q Querier
}

// NewTransactionRepository construye el adaptador de transacciones.
func NewTransactionRepository(q Querier) *TransactionRepo {
	return &TransactionRepo{q: q}
}

// Create persiste cabecera y líneas juntas.
func (r *TransactionRepo) Create(t *entity.Transaction) error {
	ctx := context.Background()
	query := `
		INSERT INTO transactions (id, type, status, partner, total_amount, tax_amount, final_amount, date, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)`
	_, err := r.q.Exec(ctx, query,
		t.ID, t.Type, t.Status, t.Partner, t.TotalAmount, t.TaxAmount, t.FinalAmount, t.Date, t.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("create transaction: %w", err)
	}
	lineQuery := `
		INSERT INTO transaction_lines (id, transaction_id, item_id, item_name, quantity, unit_price, line_total)
		VALUES ($1, $2, $3, $4, $5, $6, $7)`
	for _, line := range t.Lines {
		_, err := r.q.Exec(ctx, lineQuery,
			line.ID, t.ID, line.ItemID, line.ItemName, line.Quantity, line.UnitPrice, line.LineTotal,
		)
		if err != nil {
			return fmt.Errorf("create transaction line: %w", err)
		}
	}
	return nil
}

// GetByID devuelve la transacción con sus líneas, o nil.
func (r *TransactionRepo) GetByID(id string) (*entity.Transaction, error) {
	ctx := context.Background()
	query := `
		SELECT id, type, status, partner, total_amount, tax_amount, final_amount, date, created_at
		FROM transactions WHERE id = $1`
	var t entity.Transaction
	err := r.q.QueryRow(ctx, query, id).Scan(
		&t.ID, &t.Type, &t.Status, &t.Partner,
		&t.TotalAmount, &t.TaxAmount, &t.FinalAmount, &t.Date, &t.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get transaction: %w", err)
	}
	lines, err := r.linesFor(ctx, t.ID)
	if err != nil {
		return nil, err
	}
	t.Lines = lines
	return &t, nil
}

func (r *TransactionRepo) linesFor(ctx context.Context, txnID string) ([]entity.TransactionLine, error) {
	query := `
		SELECT id, item_id, item_name, quantity, unit_price, line_total
		FROM transaction_lines WHERE transaction_id = $1 ORDER BY id`
	rows, err := r.q.Query(ctx, query, txnID)
	if err != nil {
		return nil, fmt.Errorf("list transaction lines: %w", err)
	}
	defer rows.Close()

	var lines []entity.TransactionLine
	for rows.Next() {
		var l entity.TransactionLine
		if err := rows.Scan(&l.ID, &l.ItemID, &l.ItemName, &l.Quantity, &l.UnitPrice, &l.LineTotal); err != nil {
			return nil, fmt.Errorf("scan transaction line: %w", err)
		}
		lines = append(lines, l)
	}
	return lines, rows.Err()
}

// UpdateStatus cambia el estado de la transacción.
func (r *TransactionRepo) UpdateStatus(id string, status entity.TransactionStatus) error {
	tag, err := r.q.Exec(context.Background(), `UPDATE transactions SET status = $2 WHERE id = $1`, id, status)
	if err != nil {
		return fmt.Errorf("update transaction status: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// List lista transacciones (cabeceras con líneas) con filtro opcional por estado.
func (r *TransactionRepo) List(status entity.TransactionStatus, limit, offset int) ([]*entity.Transaction, error) {
	if limit <= 0 {
		limit = 50
	}
	ctx := context.Background()
	query := `
		SELECT id, type, status, partner, total_amount, tax_amount, final_amount, date, created_at
		FROM transactions`
	args := []any{}
	if status != "" {
		args = append(args, status)
		query += fmt.Sprintf(` WHERE status = $%d`, len(args))
	}
	args = append(args, limit, offset)
	query += fmt.Sprintf(` ORDER BY date DESC LIMIT $%d OFFSET $%d`, len(args)-1, len(args))

	rows, err := r.q.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list transactions: %w", err)
	}
	defer rows.Close()

	var out []*entity.Transaction
	for rows.Next() {
		var t entity.Transaction
		err := rows.Scan(&t.ID, &t.Type, &t.Status, &t.Partner,
			&t.TotalAmount, &t.TaxAmount, &t.FinalAmount, &t.Date, &t.CreatedAt)
		if err != nil {
			return nil, fmt.Errorf("scan transaction: %w", err)
		}
		out = append(out, &t)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	for _, t := range out {
		lines, err := r.linesFor(ctx, t.ID)
		if err != nil {
			return nil, err
		}
		t.Lines = lines
	}
	return out, nil
}

// SumConfirmedSales suma final_amount de las SALE confirmadas de la fecha.
func (r *TransactionRepo) SumConfirmedSales(date time.Time) (decimal.Decimal, error) {
	query := `
		SELECT COALESCE(SUM(final_amount), 0)
		FROM transactions
		WHERE type = $1 AND status = $2 AND date >= $3 AND date < $4`
	dayStart := time.Date(date.Year(), date.Month(), date.Day(), 0, 0, 0, 0, date.Location())
	dayEnd := dayStart.AddDate(0, 0, 1)
	var sum decimal.Decimal
	err := r.q.QueryRow(context.Background(), query,
		entity.TransactionSale, entity.TransactionConfirmed, dayStart, dayEnd,
	).Scan(&sum)
	if err != nil {
		return decimal.Zero, fmt.Errorf("sum confirmed sales: %w", err)
	}
	return sum, nil
}
