package usecase_test

import (
	"context"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/forkast/branch-ops/internal/application/dto"
	"github.com/forkast/branch-ops/internal/application/usecase"
	"github.com/forkast/branch-ops/internal/domain"
	"github.com/forkast/branch-ops/internal/domain/entity"
	"github.com/forkast/branch-ops/internal/infrastructure/memory"
)

func newStockEnv(t *testing.T) (*memory.Store, *usecase.StockUseCase) {
	t.Helper()
	store := memory.NewStore()
	uc := usecase.NewStockUseCase(memory.NewTxRunner(store), store.Items(), store.Movements())
	return store, uc
}

func intPtr(v int) *int { return &v }

func createItem(t *testing.T, uc *usecase.StockUseCase, name string, current, optimal int) *entity.StockItem {
	t.Helper()
	item, err := uc.Create(context.Background(), dto.CreateStockItemRequest{
		Name:         name,
		Category:     "Lácteos",
		CurrentStock: current,
		OptimalStock: optimal,
		Cost:         decimal.RequireFromString("5.00"),
		Price:        decimal.RequireFromString("9.00"),
	})
	require.NoError(t, err)
	return item
}

func TestCreate_DerivaEstado(t *testing.T) {
	_, uc := newStockEnv(t)

	item := createItem(t, uc, "Queso muzzarella", 20, 100)
	assert.Equal(t, entity.StockStatusLow, item.Status)
	assert.True(t, item.Active)
}

func TestCreate_RechazaInvalidos(t *testing.T) {
	_, uc := newStockEnv(t)
	ctx := context.Background()

	_, err := uc.Create(ctx, dto.CreateStockItemRequest{Name: "", CurrentStock: 1, OptimalStock: 1})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
	_, err = uc.Create(ctx, dto.CreateStockItemRequest{Name: "X", CurrentStock: -1, OptimalStock: 1})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
	_, err = uc.Create(ctx, dto.CreateStockItemRequest{
		Name: "X", CurrentStock: 1, OptimalStock: 1,
		Price: decimal.RequireFromString("-1"),
	})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestUpdate_CambioDeStockDejaAsiento(t *testing.T) {
	store, uc := newStockEnv(t)
	item := createItem(t, uc, "Queso muzzarella", 100, 100)

	updated, err := uc.Update(context.Background(), item.ID, dto.UpdateStockItemRequest{
		CurrentStock: intPtr(60),
	})
	require.NoError(t, err)
	assert.Equal(t, 60, updated.CurrentStock)

	// la corrección no sobrescribe en silencio: queda un ADJUST manual
	movements, err := store.Movements().ListByItem(item.ID, 10, 0)
	require.NoError(t, err)
	require.Len(t, movements, 1)
	assert.Equal(t, entity.MovementADJUST, movements[0].Direction)
	assert.Equal(t, -40, movements[0].SignedDelta())
	assert.True(t, movements[0].Manual())
}

func TestUpdate_StockIgualNoDejaAsiento(t *testing.T) {
	store, uc := newStockEnv(t)
	item := createItem(t, uc, "Queso muzzarella", 100, 100)

	_, err := uc.Update(context.Background(), item.ID, dto.UpdateStockItemRequest{
		CurrentStock: intPtr(100),
		Name:         func() *string { s := "Queso cremoso"; return &s }(),
	})
	require.NoError(t, err)

	movements, err := store.Movements().ListByItem(item.ID, 10, 0)
	require.NoError(t, err)
	assert.Empty(t, movements)
}

func TestUpdate_OptimoRederivaEstado(t *testing.T) {
	_, uc := newStockEnv(t)
	item := createItem(t, uc, "Queso muzzarella", 50, 100)

	updated, err := uc.Update(context.Background(), item.ID, dto.UpdateStockItemRequest{
		OptimalStock: intPtr(30),
	})
	require.NoError(t, err)
	assert.Equal(t, entity.StockStatusOver, updated.Status, "50 sobre un óptimo de 30 excede el umbral superior")
}

func TestUpdate_StockNegativoEsInvalido(t *testing.T) {
	store, uc := newStockEnv(t)
	item := createItem(t, uc, "Queso muzzarella", 100, 100)

	_, err := uc.Update(context.Background(), item.ID, dto.UpdateStockItemRequest{
		CurrentStock: intPtr(-5),
	})
	require.ErrorIs(t, err, domain.ErrInvalidInput)

	got, err := store.Items().GetByID(item.ID)
	require.NoError(t, err)
	assert.Equal(t, 100, got.CurrentStock)
}

func TestDelete_SinHistoriaBorraFisico(t *testing.T) {
	store, uc := newStockEnv(t)
	item := createItem(t, uc, "Queso muzzarella", 100, 100)

	require.NoError(t, uc.Delete(context.Background(), item.ID))

	got, err := store.Items().GetByID(item.ID)
	require.NoError(t, err)
	assert.Nil(t, got)
}

func TestDelete_ConHistoriaDesactiva(t *testing.T) {
	store, uc := newStockEnv(t)
	item := createItem(t, uc, "Queso muzzarella", 100, 100)
	ctx := context.Background()

	// genera historia en el libro
	_, err := uc.Update(ctx, item.ID, dto.UpdateStockItemRequest{CurrentStock: intPtr(90)})
	require.NoError(t, err)

	require.NoError(t, uc.Delete(ctx, item.ID))

	got, err := store.Items().GetByID(item.ID)
	require.NoError(t, err)
	require.NotNil(t, got, "con asientos el borrado se degrada a baja suave")
	assert.False(t, got.Active)
}

func TestGetByID_InexistenteEsNotFound(t *testing.T) {
	_, uc := newStockEnv(t)
	_, err := uc.GetByID(context.Background(), "no-existe")
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestRecalculateStatuses_CuentaSoloCambios(t *testing.T) {
	store, uc := newStockEnv(t)
	a := createItem(t, uc, "Queso muzzarella", 50, 100) // GOOD
	createItem(t, uc, "Harina 000", 100, 100)           // GOOD, no cambia

	// el óptimo cambia por fuera del caso de uso, el estado queda obsoleto
	got, err := store.Items().GetByID(a.ID)
	require.NoError(t, err)
	got.OptimalStock = 200
	require.NoError(t, store.Items().Update(got))

	changed, err := uc.RecalculateStatuses(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 1, changed)

	got, err = store.Items().GetByID(a.ID)
	require.NoError(t, err)
	assert.Equal(t, entity.StockStatusLow, got.Status)
}

func TestLatestMovements_NormalizaN(t *testing.T) {
	_, uc := newStockEnv(t)
	item := createItem(t, uc, "Queso muzzarella", 100, 100)
	ctx := context.Background()

	for i := 0; i < 12; i++ {
		_, err := uc.Update(ctx, item.ID, dto.UpdateStockItemRequest{CurrentStock: intPtr(100 - i - 1)})
		require.NoError(t, err)
	}

	movements, err := uc.LatestMovements(ctx, 0)
	require.NoError(t, err)
	assert.Len(t, movements, 10, "n fuera de rango cae al default")

	movements, err = uc.LatestMovements(ctx, 5)
	require.NoError(t, err)
	assert.Len(t, movements, 5)
}

func TestLatestMovements_OrdenReciente(t *testing.T) {
	_, uc := newStockEnv(t)
	item := createItem(t, uc, "Queso muzzarella", 100, 100)
	ctx := context.Background()

	_, err := uc.Update(ctx, item.ID, dto.UpdateStockItemRequest{CurrentStock: intPtr(90)})
	require.NoError(t, err)
	time.Sleep(2 * time.Millisecond)
	_, err = uc.Update(ctx, item.ID, dto.UpdateStockItemRequest{CurrentStock: intPtr(80)})
	require.NoError(t, err)

	movements, err := uc.LatestMovements(ctx, 2)
	require.NoError(t, err)
	require.Len(t, movements, 2)
	assert.False(t, movements[0].CreatedAt.Before(movements[1].CreatedAt))
}
