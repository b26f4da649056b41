package ledger_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/forkast/branch-ops/internal/application/ledger"
	"github.com/forkast/branch-ops/internal/domain"
	"github.com/forkast/branch-ops/internal/domain/entity"
	"github.com/forkast/branch-ops/internal/infrastructure/memory"
)

func newEnv(t *testing.T) (*memory.Store, *ledger.UseCase) {
	t.Helper()
	store := memory.NewStore()
	return store, ledger.NewUseCase(memory.NewTxRunner(store))
}

func seedItem(t *testing.T, store *memory.Store, id string, current, optimal int) {
	t.Helper()
	now := time.Now()
	item := &entity.StockItem{
		ID:           id,
		Name:         "Harina 000",
		CurrentStock: current,
		OptimalStock: optimal,
		Active:       true,
		CreatedAt:    now,
	}
	item.Refresh(now)
	require.NoError(t, store.Items().Create(item))
}

func itemStock(t *testing.T, store *memory.Store, id string) int {
	t.Helper()
	it, err := store.Items().GetByID(id)
	require.NoError(t, err)
	require.NotNil(t, it)
	return it.CurrentStock
}

func TestRecordMovement_ActualizaStockYEstado(t *testing.T) {
	store, uc := newEnv(t)
	seedItem(t, store, "item-1", 100, 100)

	m, err := uc.RecordMovement(context.Background(), ledger.MovementInput{
		ItemID:    "item-1",
		Direction: entity.MovementOUT,
		Quantity:  80,
		Reason:    "despacho a sucursal",
	})
	require.NoError(t, err)
	assert.Equal(t, -80, m.SignedDelta())

	it, err := store.Items().GetByID("item-1")
	require.NoError(t, err)
	assert.Equal(t, 20, it.CurrentStock)
	assert.Equal(t, entity.StockStatusLow, it.Status, "20/100 debe re-derivar LOW en la misma escritura")
}

func TestRecordMovement_RechazaStockNegativo(t *testing.T) {
	store, uc := newEnv(t)
	seedItem(t, store, "item-1", 5, 100)

	_, err := uc.RecordMovement(context.Background(), ledger.MovementInput{
		ItemID:    "item-1",
		Direction: entity.MovementOUT,
		Quantity:  6,
		Reason:    "sobregiro",
	})
	require.ErrorIs(t, err, domain.ErrInsufficientStock)

	// nada quedó escrito: ni stock ni asiento
	assert.Equal(t, 5, itemStock(t, store, "item-1"))
	latest, err := store.Movements().ListLatest(10)
	require.NoError(t, err)
	assert.Empty(t, latest)
}

func TestRecordMovement_AjusteConSigno(t *testing.T) {
	store, uc := newEnv(t)
	seedItem(t, store, "item-1", 50, 100)

	_, err := uc.RecordMovement(context.Background(), ledger.MovementInput{
		ItemID:    "item-1",
		Direction: entity.MovementADJUST,
		Quantity:  -10,
		Reason:    "merma detectada en conteo",
	})
	require.NoError(t, err)
	assert.Equal(t, 40, itemStock(t, store, "item-1"))

	// ADJUST de cero no representa nada
	_, err = uc.RecordMovement(context.Background(), ledger.MovementInput{
		ItemID:    "item-1",
		Direction: entity.MovementADJUST,
		Quantity:  0,
	})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestRecordMovement_GuardCausalEsNoOp(t *testing.T) {
	store, uc := newEnv(t)
	seedItem(t, store, "item-1", 100, 100)

	in := ledger.MovementInput{
		ItemID:    "item-1",
		Direction: entity.MovementOUT,
		Quantity:  30,
		Reason:    "confirmación de pedido",
		CausalRef: entity.OrderCausalRef("ord-1"),
	}

	first, err := uc.RecordMovement(context.Background(), in)
	require.NoError(t, err)

	// reintento con la misma referencia: devuelve el asiento original sin
	// tocar el stock
	second, err := uc.RecordMovement(context.Background(), in)
	require.NoError(t, err)
	assert.Equal(t, first.ID, second.ID)
	assert.Equal(t, 70, itemStock(t, store, "item-1"))

	latest, err := store.Movements().ListLatest(10)
	require.NoError(t, err)
	assert.Len(t, latest, 1, "el libro debe tener un único asiento para la referencia")
}

func TestRecordMovement_Conciliacion(t *testing.T) {
	store, uc := newEnv(t)
	seedItem(t, store, "item-1", 100, 100)
	ctx := context.Background()

	inputs := []ledger.MovementInput{
		{ItemID: "item-1", Direction: entity.MovementOUT, Quantity: 40, Reason: "venta"},
		{ItemID: "item-1", Direction: entity.MovementIN, Quantity: 25, Reason: "recepción"},
		{ItemID: "item-1", Direction: entity.MovementADJUST, Quantity: -5, Reason: "merma"},
		{ItemID: "item-1", Direction: entity.MovementOUT, Quantity: 10, Reason: "venta"},
	}
	for _, in := range inputs {
		_, err := uc.RecordMovement(ctx, in)
		require.NoError(t, err)
	}

	// invariante: stock inicial + suma de deltas == stock actual
	movements, err := store.Movements().ListByItem("item-1", 100, 0)
	require.NoError(t, err)
	sum := 0
	for _, m := range movements {
		sum += m.SignedDelta()
	}
	assert.Equal(t, 100+sum, itemStock(t, store, "item-1"))
	assert.Equal(t, 70, itemStock(t, store, "item-1"))
}

func TestUndoManualEntry_RevierteYElimina(t *testing.T) {
	store, uc := newEnv(t)
	seedItem(t, store, "item-1", 50, 100)
	ctx := context.Background()

	m, err := uc.RecordMovement(ctx, ledger.MovementInput{
		ItemID:    "item-1",
		Direction: entity.MovementIN,
		Quantity:  20,
		Reason:    "carga manual equivocada",
	})
	require.NoError(t, err)
	require.Equal(t, 70, itemStock(t, store, "item-1"))

	require.NoError(t, uc.UndoManualEntry(ctx, m.ID))
	assert.Equal(t, 50, itemStock(t, store, "item-1"))

	gone, err := store.Movements().GetByID(m.ID)
	require.NoError(t, err)
	assert.Nil(t, gone, "el asiento deshecho desaparece del libro")
}

func TestUndoManualEntry_RechazaAsientosCausales(t *testing.T) {
	store, uc := newEnv(t)
	seedItem(t, store, "item-1", 50, 100)
	ctx := context.Background()

	m, err := uc.RecordMovement(ctx, ledger.MovementInput{
		ItemID:    "item-1",
		Direction: entity.MovementOUT,
		Quantity:  10,
		CausalRef: entity.OrderCausalRef("ord-9"),
	})
	require.NoError(t, err)

	err = uc.UndoManualEntry(ctx, m.ID)
	assert.ErrorIs(t, err, domain.ErrConflict,
		"un asiento de orden se revierte cancelando la orden, no por aquí")
	assert.Equal(t, 40, itemStock(t, store, "item-1"))
}

func TestUndoManualEntry_RechazaSiDejaNegativo(t *testing.T) {
	store, uc := newEnv(t)
	seedItem(t, store, "item-1", 0, 100)
	ctx := context.Background()

	m, err := uc.RecordMovement(ctx, ledger.MovementInput{
		ItemID:    "item-1",
		Direction: entity.MovementIN,
		Quantity:  30,
		Reason:    "recepción",
	})
	require.NoError(t, err)

	// el stock recibido ya se consumió por otra vía
	_, err = uc.RecordMovement(ctx, ledger.MovementInput{
		ItemID:    "item-1",
		Direction: entity.MovementOUT,
		Quantity:  25,
		Reason:    "venta",
	})
	require.NoError(t, err)

	err = uc.UndoManualEntry(ctx, m.ID)
	assert.ErrorIs(t, err, domain.ErrInsufficientStock)
	assert.Equal(t, 5, itemStock(t, store, "item-1"))
}
