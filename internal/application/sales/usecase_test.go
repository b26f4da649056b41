package sales_test

import (
	"context"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/forkast/branch-ops/internal/application/dto"
	"github.com/forkast/branch-ops/internal/application/sales"
	"github.com/forkast/branch-ops/internal/domain"
	"github.com/forkast/branch-ops/internal/domain/entity"
	"github.com/forkast/branch-ops/internal/infrastructure/memory"
)

func newEnv(t *testing.T) (*memory.Store, *sales.UseCase) {
	t.Helper()
	store := memory.NewStore()
	uc := sales.NewUseCase(memory.NewTxRunner(store), store.Transactions(), store.Items(), store.DailySales())
	return store, uc
}

func seedItem(t *testing.T, store *memory.Store, id, name string, current int) {
	t.Helper()
	now := time.Now()
	item := &entity.StockItem{
		ID:           id,
		Name:         name,
		CurrentStock: current,
		OptimalStock: current,
		Active:       true,
		CreatedAt:    now,
	}
	item.Refresh(now)
	require.NoError(t, store.Items().Create(item))
}

func stockOf(t *testing.T, store *memory.Store, id string) int {
	t.Helper()
	it, err := store.Items().GetByID(id)
	require.NoError(t, err)
	require.NotNil(t, it)
	return it.CurrentStock
}

func price(s string) decimal.Decimal { return decimal.RequireFromString(s) }

func TestCreate_CalculaTotalesYNoTocaStock(t *testing.T) {
	store, uc := newEnv(t)
	seedItem(t, store, "item-1", "Harina 000", 100)
	seedItem(t, store, "item-2", "Levadura", 40)

	txn, err := uc.Create(context.Background(), dto.CreateTransactionRequest{
		Type:      "SALE",
		Partner:   "Mostrador",
		TaxAmount: price("21.00"),
		Lines: []dto.TransactionLineRequest{
			{ItemID: "item-1", Quantity: 3, UnitPrice: price("10.50")},
			{ItemID: "item-2", Quantity: 2, UnitPrice: price("4.25")},
		},
	})
	require.NoError(t, err)

	assert.Equal(t, entity.TransactionPending, txn.Status)
	// 3*10.50 + 2*4.25 = 40.00; con impuestos 61.00
	assert.True(t, txn.TotalAmount.Equal(price("40.00")), "total %s", txn.TotalAmount)
	assert.True(t, txn.FinalAmount.Equal(price("61.00")), "final %s", txn.FinalAmount)
	require.Len(t, txn.Lines, 2)
	assert.Equal(t, "Harina 000", txn.Lines[0].ItemName)
	assert.True(t, txn.Lines[0].LineTotal.Equal(price("31.50")))

	assert.Equal(t, 100, stockOf(t, store, "item-1"))
	assert.Equal(t, 40, stockOf(t, store, "item-2"))
}

func TestCreate_RechazaEntradasInvalidas(t *testing.T) {
	store, uc := newEnv(t)
	seedItem(t, store, "item-1", "Harina 000", 100)
	ctx := context.Background()

	cases := []struct {
		name string
		req  dto.CreateTransactionRequest
		want error
	}{
		{"tipo desconocido", dto.CreateTransactionRequest{
			Type:  "TRADE",
			Lines: []dto.TransactionLineRequest{{ItemID: "item-1", Quantity: 1, UnitPrice: price("1")}},
		}, domain.ErrInvalidInput},
		{"sin líneas", dto.CreateTransactionRequest{Type: "SALE"}, domain.ErrInvalidInput},
		{"impuesto negativo", dto.CreateTransactionRequest{
			Type:      "SALE",
			TaxAmount: price("-1"),
			Lines:     []dto.TransactionLineRequest{{ItemID: "item-1", Quantity: 1, UnitPrice: price("1")}},
		}, domain.ErrInvalidInput},
		{"cantidad cero", dto.CreateTransactionRequest{
			Type:  "SALE",
			Lines: []dto.TransactionLineRequest{{ItemID: "item-1", Quantity: 0, UnitPrice: price("1")}},
		}, domain.ErrInvalidInput},
		{"artículo inexistente", dto.CreateTransactionRequest{
			Type:  "SALE",
			Lines: []dto.TransactionLineRequest{{ItemID: "fantasma", Quantity: 1, UnitPrice: price("1")}},
		}, domain.ErrNotFound},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := uc.Create(ctx, tc.req)
			assert.ErrorIs(t, err, tc.want)
		})
	}
}

func TestConfirm_VentaDescuentaPorLineaYAgrega(t *testing.T) {
	store, uc := newEnv(t)
	seedItem(t, store, "item-1", "Harina 000", 100)
	seedItem(t, store, "item-2", "Levadura", 40)
	ctx := context.Background()

	txn, err := uc.Create(ctx, dto.CreateTransactionRequest{
		Type: "SALE",
		Lines: []dto.TransactionLineRequest{
			{ItemID: "item-1", Quantity: 5, UnitPrice: price("10")},
			{ItemID: "item-2", Quantity: 3, UnitPrice: price("4")},
		},
	})
	require.NoError(t, err)

	confirmed, err := uc.Confirm(ctx, txn.ID)
	require.NoError(t, err)
	assert.Equal(t, entity.TransactionConfirmed, confirmed.Status)
	assert.Equal(t, 95, stockOf(t, store, "item-1"))
	assert.Equal(t, 37, stockOf(t, store, "item-2"))

	// el agregado del día refleja la venta
	day, err := uc.Aggregator().Get(ctx, time.Now())
	require.NoError(t, err)
	require.NotNil(t, day)
	assert.True(t, day.Revenue.Equal(price("62")), "revenue %s", day.Revenue)
}

func TestConfirm_RepetidaEsNoOp(t *testing.T) {
	store, uc := newEnv(t)
	seedItem(t, store, "item-1", "Harina 000", 100)
	ctx := context.Background()

	txn, err := uc.Create(ctx, dto.CreateTransactionRequest{
		Type:  "SALE",
		Lines: []dto.TransactionLineRequest{{ItemID: "item-1", Quantity: 5, UnitPrice: price("10")}},
	})
	require.NoError(t, err)

	_, err = uc.Confirm(ctx, txn.ID)
	require.NoError(t, err)
	_, err = uc.Confirm(ctx, txn.ID)
	require.NoError(t, err)

	assert.Equal(t, 95, stockOf(t, store, "item-1"), "el stock se descuenta una sola vez")

	movements, err := store.Movements().ListByItem("item-1", 100, 0)
	require.NoError(t, err)
	assert.Len(t, movements, 1)
}

func TestConfirm_SinStockRevierteTodo(t *testing.T) {
	store, uc := newEnv(t)
	seedItem(t, store, "item-1", "Harina 000", 100)
	seedItem(t, store, "item-2", "Levadura", 2)
	ctx := context.Background()

	txn, err := uc.Create(ctx, dto.CreateTransactionRequest{
		Type: "SALE",
		Lines: []dto.TransactionLineRequest{
			{ItemID: "item-1", Quantity: 5, UnitPrice: price("10")},
			{ItemID: "item-2", Quantity: 3, UnitPrice: price("4")}, // solo hay 2
		},
	})
	require.NoError(t, err)

	_, err = uc.Confirm(ctx, txn.ID)
	require.ErrorIs(t, err, domain.ErrInsufficientStock)

	// nada quedó escrito: ni la primera línea ni el cambio de estado
	assert.Equal(t, 100, stockOf(t, store, "item-1"))
	assert.Equal(t, 2, stockOf(t, store, "item-2"))
	after, err := store.Transactions().GetByID(txn.ID)
	require.NoError(t, err)
	assert.Equal(t, entity.TransactionPending, after.Status)
	movements, err := store.Movements().ListByItem("item-1", 100, 0)
	require.NoError(t, err)
	assert.Empty(t, movements)
}

func TestConfirm_CompraYDevolucionSuman(t *testing.T) {
	store, uc := newEnv(t)
	seedItem(t, store, "item-1", "Harina 000", 10)
	ctx := context.Background()

	for _, typ := range []string{"PURCHASE", "REFUND"} {
		txn, err := uc.Create(ctx, dto.CreateTransactionRequest{
			Type:  typ,
			Lines: []dto.TransactionLineRequest{{ItemID: "item-1", Quantity: 5, UnitPrice: price("8")}},
		})
		require.NoError(t, err)
		_, err = uc.Confirm(ctx, txn.ID)
		require.NoError(t, err)
	}

	assert.Equal(t, 20, stockOf(t, store, "item-1"))

	// ni compras ni devoluciones entran al agregado de ventas
	day, err := uc.Aggregator().Get(ctx, time.Now())
	require.NoError(t, err)
	assert.Nil(t, day)
}

func TestConfirm_CanceladaEsConflicto(t *testing.T) {
	store, uc := newEnv(t)
	seedItem(t, store, "item-1", "Harina 000", 100)
	ctx := context.Background()

	txn, err := uc.Create(ctx, dto.CreateTransactionRequest{
		Type:  "SALE",
		Lines: []dto.TransactionLineRequest{{ItemID: "item-1", Quantity: 5, UnitPrice: price("10")}},
	})
	require.NoError(t, err)
	_, err = uc.CancelPending(ctx, txn.ID)
	require.NoError(t, err)

	_, err = uc.Confirm(ctx, txn.ID)
	assert.ErrorIs(t, err, domain.ErrConflict)
	assert.Equal(t, 100, stockOf(t, store, "item-1"))
}

func TestCancelPending_SoloDesdePending(t *testing.T) {
	store, uc := newEnv(t)
	seedItem(t, store, "item-1", "Harina 000", 100)
	ctx := context.Background()

	txn, err := uc.Create(ctx, dto.CreateTransactionRequest{
		Type:  "SALE",
		Lines: []dto.TransactionLineRequest{{ItemID: "item-1", Quantity: 5, UnitPrice: price("10")}},
	})
	require.NoError(t, err)
	_, err = uc.Confirm(ctx, txn.ID)
	require.NoError(t, err)

	_, err = uc.CancelPending(ctx, txn.ID)
	assert.ErrorIs(t, err, domain.ErrConflict,
		"una confirmada no se cancela; su compensación es un REFUND")
}

func TestRecompute_SobrescribeIdempotente(t *testing.T) {
	store, uc := newEnv(t)
	seedItem(t, store, "item-1", "Harina 000", 100)
	ctx := context.Background()

	txn, err := uc.Create(ctx, dto.CreateTransactionRequest{
		Type:  "SALE",
		Lines: []dto.TransactionLineRequest{{ItemID: "item-1", Quantity: 4, UnitPrice: price("25")}},
	})
	require.NoError(t, err)
	_, err = uc.Confirm(ctx, txn.ID)
	require.NoError(t, err)

	agg := uc.Aggregator()
	for i := 0; i < 3; i++ {
		require.NoError(t, agg.Recompute(ctx, time.Now()))
	}

	day, err := agg.Get(ctx, time.Now())
	require.NoError(t, err)
	require.NotNil(t, day)
	assert.True(t, day.Revenue.Equal(price("100")), "recomputar no acumula: %s", day.Revenue)
}

func TestTruncate_NormalizaAMedianoche(t *testing.T) {
	in := time.Date(2025, 3, 14, 17, 45, 12, 900, time.Local)
	got := sales.Truncate(in)
	assert.Equal(t, time.Date(2025, 3, 14, 0, 0, 0, 0, time.Local), got)
}
