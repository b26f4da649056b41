package repository

import "github.com/forkast/branch-ops/internal/domain/entity"

// BranchRepository puerto de persistencia de sucursales/franquiciados.
type BranchRepository interface {
	Create(b *entity.Branch) error
	GetByID(id string) (*entity.Branch, error)
	GetByName(name string) (*entity.Branch, error)
	List(limit, offset int) ([]*entity.Branch, error)
}
