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

var _ repository.BranchRepository = (*BranchRepo)(nil)

// BranchRepo implementación de BranchRepository sobre PostgreSQL.
type BranchRepo struct {
	q Querier
}

// NewBranchRepository construye el adaptador de sucursales.
func NewBranchRepository(q Querier) *BranchRepo {
	return &BranchRepo{q: q}
}

const branchColumns = `id, name, access_key_hash, role, approved, created_at`

func scanBranch(row pgx.Row) (*entity.Branch, error) {
	var b entity.Branch
	err := row.Scan(&b.ID, &b.Name, &b.AccessKeyHash, &b.Role, &b.Approved, &b.CreatedAt)
	if err != nil {
		return nil, err
	}
	return &b, nil
}

// Create inserta la sucursal. El nombre es único.
func (r *BranchRepo) Create(b *entity.Branch) error {
	query := `INSERT INTO branches (` + branchColumns + `) VALUES ($1, $2, $3, $4, $5, $6)`
	_, err := r.q.Exec(context.Background(), query,
		b.ID, b.Name, b.AccessKeyHash, b.Role, b.Approved, b.CreatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("create branch: %w", err)
	}
	return nil
}

// GetByID obtiene la sucursal o nil.
func (r *BranchRepo) GetByID(id string) (*entity.Branch, error) {
	query := `SELECT ` + branchColumns + ` FROM branches WHERE id = $1`
	b, err := scanBranch(r.q.QueryRow(context.Background(), query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get branch: %w", err)
	}
	return b, nil
}

// GetByName obtiene la sucursal por nombre o nil.
func (r *BranchRepo) GetByName(name string) (*entity.Branch, error) {
	query := `SELECT ` + branchColumns + ` FROM branches WHERE name = $1`
	b, err := scanBranch(r.q.QueryRow(context.Background(), query, name))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get branch by name: %w", err)
	}
	return b, nil
}

// List lista sucursales.
func (r *BranchRepo) List(limit, offset int) ([]*entity.Branch, error) {
	if limit <= 0 {
		limit = 50
	}
	query := `SELECT ` + branchColumns + ` FROM branches ORDER BY name LIMIT $1 OFFSET $2`
	rows, err := r.q.Query(context.Background(), query, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("list branches: %w", err)
	}
	defer rows.Close()

	var out []*entity.Branch
	for rows.Next() {
		b, err := scanBranch(rows)
		if err != nil {
			return nil, fmt.Errorf("scan branch: %w", err)
		}
		out = append(out, b)
	}
	return out, rows.Err()
}
