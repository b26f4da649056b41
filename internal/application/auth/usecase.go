// Package auth autentica sucursales y emite tokens JWT.
package auth

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
	"golang.org/x/crypto/bcrypt"

	"github.com/forkast/branch-ops/internal/application/dto"
	"github.com/forkast/branch-ops/internal/domain"
	"github.com/forkast/branch-ops/internal/domain/entity"
	"github.com/forkast/branch-ops/internal/domain/repository"
	appjwt "github.com/forkast/branch-ops/pkg/jwt"
)

// UseCase casos de uso de autenticación y alta de sucursales.
type UseCase struct {
	branchRepo repository.BranchRepository
	tokens     *appjwt.Manager
}

// NewUseCase construye el caso de uso.
func NewUseCase(branchRepo repository.BranchRepository, tokens *appjwt.Manager) *UseCase {
	return &UseCase{branchRepo: branchRepo, tokens: tokens}
}

// Login valida la clave de acceso de la sucursal y emite un token. Tanto la
// sucursal inexistente como la clave incorrecta devuelven el mismo error para
// no filtrar cuáles nombres existen.
func (uc *UseCase) Login(ctx context.Context, in dto.LoginRequest) (*dto.LoginResponse, error) {
	if in.Branch == "" || in.AccessKey == "" {
		return nil, domain.ErrInvalidInput
	}
	branch, err := uc.branchRepo.GetByName(in.Branch)
	if err != nil {
		return nil, err
	}
	if branch == nil || !branch.Approved {
		return nil, domain.ErrUnauthorized
	}
	if err := bcrypt.CompareHashAndPassword([]byte(branch.AccessKeyHash), []byte(in.AccessKey)); err != nil {
		log.Warn().Str("branch", in.Branch).Msg("intento de acceso con clave inválida")
		return nil, domain.ErrUnauthorized
	}
	token, err := uc.tokens.Generate(branch.ID, branch.Name, branch.Role)
	if err != nil {
		return nil, err
	}
	return &dto.LoginResponse{
		Token:    token,
		BranchID: branch.ID,
		Branch:   branch.Name,
		Role:     branch.Role,
	}, nil
}

// Register da de alta una sucursal aprobada (operación de admin).
func (uc *UseCase) Register(ctx context.Context, in dto.RegisterBranchRequest) (*entity.Branch, error) {
	if in.Name == "" || len(in.AccessKey) < 8 {
		return nil, domain.ErrInvalidInput
	}
	role := in.Role
	if role == "" {
		role = entity.RoleBranch
	}
	if role != entity.RoleAdmin && role != entity.RoleBranch {
		return nil, domain.ErrInvalidInput
	}
	existing, err := uc.branchRepo.GetByName(in.Name)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, domain.ErrDuplicate
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(in.AccessKey), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}
	branch := &entity.Branch{
		ID:            uuid.New().String(),
		Name:          in.Name,
		AccessKeyHash: string(hash),
		Role:          role,
		Approved:      true,
		CreatedAt:     time.Now(),
	}
	if err := uc.branchRepo.Create(branch); err != nil {
		return nil, err
	}
	return branch, nil
}

// List lista sucursales registradas.
func (uc *UseCase) List(ctx context.Context, limit, offset int) ([]*entity.Branch, error) {
	return uc.branchRepo.List(limit, offset)
}
