package auth_test

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/forkast/branch-ops/internal/application/auth"
	"github.com/forkast/branch-ops/internal/application/dto"
	"github.com/forkast/branch-ops/internal/domain"
	"github.com/forkast/branch-ops/internal/domain/entity"
	"github.com/forkast/branch-ops/internal/infrastructure/memory"
	appjwt "github.com/forkast/branch-ops/pkg/jwt"
)

func newEnv(t *testing.T) (*memory.Store, *auth.UseCase, *appjwt.Manager) {
	t.Helper()
	store := memory.NewStore()
	tokens, err := appjwt.NewManager("secreto-de-pruebas", "branch-ops", 60)
	require.NoError(t, err)
	return store, auth.NewUseCase(store.Branches(), tokens), tokens
}

func TestRegisterYLogin_RoundTrip(t *testing.T) {
	_, uc, tokens := newEnv(t)
	ctx := context.Background()

	branch, err := uc.Register(ctx, dto.RegisterBranchRequest{
		Name:      "Sucursal Centro",
		AccessKey: "clave-segura-123",
	})
	require.NoError(t, err)
	assert.Equal(t, entity.RoleBranch, branch.Role, "sin rol explícito queda como sucursal")
	assert.True(t, branch.Approved)
	assert.NotEqual(t, "clave-segura-123", branch.AccessKeyHash, "la clave nunca se guarda en claro")

	resp, err := uc.Login(ctx, dto.LoginRequest{Branch: "Sucursal Centro", AccessKey: "clave-segura-123"})
	require.NoError(t, err)
	claims, err := tokens.Parse(resp.Token)
	require.NoError(t, err)
	assert.Equal(t, branch.ID, claims.BranchID)
	assert.Equal(t, entity.RoleBranch, claims.Role)
}

func TestLogin_ClaveIncorrectaYFantasmaDanElMismoError(t *testing.T) {
	_, uc, _ := newEnv(t)
	ctx := context.Background()

	_, err := uc.Register(ctx, dto.RegisterBranchRequest{Name: "Sucursal Centro", AccessKey: "clave-segura-123"})
	require.NoError(t, err)

	_, errClave := uc.Login(ctx, dto.LoginRequest{Branch: "Sucursal Centro", AccessKey: "otra-clave"})
	_, errNombre := uc.Login(ctx, dto.LoginRequest{Branch: "No Existe", AccessKey: "clave-segura-123"})

	assert.ErrorIs(t, errClave, domain.ErrUnauthorized)
	assert.ErrorIs(t, errNombre, domain.ErrUnauthorized, "no se filtra qué nombres existen")
}

func TestLogin_SucursalNoAprobadaEsUnauthorized(t *testing.T) {
	store, uc, _ := newEnv(t)
	ctx := context.Background()

	hash, err := bcrypt.GenerateFromPassword([]byte("clave-segura-123"), bcrypt.MinCost)
	require.NoError(t, err)
	require.NoError(t, store.Branches().Create(&entity.Branch{
		ID:            uuid.New().String(),
		Name:          "Sucursal Centro",
		AccessKeyHash: string(hash),
		Role:          entity.RoleBranch,
		Approved:      false,
		CreatedAt:     time.Now(),
	}))

	_, err = uc.Login(ctx, dto.LoginRequest{Branch: "Sucursal Centro", AccessKey: "clave-segura-123"})
	assert.ErrorIs(t, err, domain.ErrUnauthorized)
}

func TestRegister_Validaciones(t *testing.T) {
	_, uc, _ := newEnv(t)
	ctx := context.Background()

	_, err := uc.Register(ctx, dto.RegisterBranchRequest{Name: "", AccessKey: "clave-segura-123"})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
	_, err = uc.Register(ctx, dto.RegisterBranchRequest{Name: "Sucursal", AccessKey: "corta"})
	assert.ErrorIs(t, err, domain.ErrInvalidInput, "la clave exige un largo mínimo")
	_, err = uc.Register(ctx, dto.RegisterBranchRequest{Name: "Sucursal", AccessKey: "clave-segura-123", Role: "superuser"})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestRegister_NombreDuplicado(t *testing.T) {
	_, uc, _ := newEnv(t)
	ctx := context.Background()

	_, err := uc.Register(ctx, dto.RegisterBranchRequest{Name: "Sucursal Centro", AccessKey: "clave-segura-123"})
	require.NoError(t, err)
	_, err = uc.Register(ctx, dto.RegisterBranchRequest{Name: "Sucursal Centro", AccessKey: "otra-clave-larga"})
	assert.ErrorIs(t, err, domain.ErrDuplicate)
}
