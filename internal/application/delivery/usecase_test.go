package delivery_test

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/forkast/branch-ops/internal/application/delivery"
	"github.com/forkast/branch-ops/internal/application/dto"
	"github.com/forkast/branch-ops/internal/domain"
	"github.com/forkast/branch-ops/internal/domain/entity"
	"github.com/forkast/branch-ops/internal/infrastructure/memory"
)

func newEnv(t *testing.T) (*memory.Store, *delivery.UseCase) {
	t.Helper()
	store := memory.NewStore()
	uc := delivery.NewUseCase(memory.NewTxRunner(store), store.Deliveries(), store.Orders())
	return store, uc
}

func seedOrder(t *testing.T, store *memory.Store, direction entity.OrderDirection, status entity.OrderStatus) *entity.Order {
	t.Helper()
	now := time.Now()
	o := &entity.Order{
		ID:        uuid.New().String(),
		ItemID:    "item-1",
		ItemName:  "Queso muzzarella",
		Quantity:  10,
		Direction: direction,
		Status:    status,
		Branch:    "Sucursal Centro",
		CreatedAt: now,
		UpdatedAt: now,
	}
	require.NoError(t, store.Orders().Create(o))
	return o
}

func seedDelivery(t *testing.T, store *memory.Store, orderID string, status entity.DeliveryStatus) *entity.Delivery {
	t.Helper()
	now := time.Now()
	d := &entity.Delivery{
		ID:        uuid.New().String(),
		OrderID:   orderID,
		ItemName:  "Queso muzzarella",
		Address:   "Sucursal Centro",
		Status:    status,
		CreatedAt: now,
	}
	require.NoError(t, store.Deliveries().Create(d))
	return d
}

func TestSchedule_CreaParaOrdenCompletada(t *testing.T) {
	store, uc := newEnv(t)
	o := seedOrder(t, store, entity.OrderOutbound, entity.OrderCompleted)

	d, err := uc.Schedule(context.Background(), dto.ScheduleDeliveryRequest{
		OrderID: o.ID,
		Driver:  "M. Pérez",
		Vehicle: "AB123CD",
	})
	require.NoError(t, err)
	assert.Equal(t, entity.DeliveryScheduled, d.Status)
	assert.Equal(t, o.Branch, d.Address, "sin dirección explícita usa la sucursal de la orden")
	assert.NotNil(t, d.ScheduledAt)
}

func TestSchedule_EsGetOrCreate(t *testing.T) {
	store, uc := newEnv(t)
	o := seedOrder(t, store, entity.OrderOutbound, entity.OrderCompleted)
	ctx := context.Background()

	first, err := uc.Schedule(ctx, dto.ScheduleDeliveryRequest{OrderID: o.ID})
	require.NoError(t, err)
	second, err := uc.Schedule(ctx, dto.ScheduleDeliveryRequest{OrderID: o.ID})
	require.NoError(t, err)

	assert.Equal(t, first.ID, second.ID, "una orden tiene a lo sumo una entrega")
}

func TestSchedule_RechazaPendientesYEntradas(t *testing.T) {
	store, uc := newEnv(t)
	pending := seedOrder(t, store, entity.OrderOutbound, entity.OrderPending)
	inbound := seedOrder(t, store, entity.OrderInbound, entity.OrderCompleted)
	ctx := context.Background()

	_, err := uc.Schedule(ctx, dto.ScheduleDeliveryRequest{OrderID: pending.ID})
	assert.ErrorIs(t, err, domain.ErrConflict)
	_, err = uc.Schedule(ctx, dto.ScheduleDeliveryRequest{OrderID: inbound.ID})
	assert.ErrorIs(t, err, domain.ErrConflict)
	_, err = uc.Schedule(ctx, dto.ScheduleDeliveryRequest{OrderID: "no-existe"})
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestAdvance_CicloCompletoSellaFechas(t *testing.T) {
	store, uc := newEnv(t)
	o := seedOrder(t, store, entity.OrderOutbound, entity.OrderCompleted)
	d := seedDelivery(t, store, o.ID, entity.DeliveryPending)
	ctx := context.Background()

	d2, err := uc.Advance(ctx, d.ID, dto.AdvanceDeliveryRequest{Status: "SCHEDULED"})
	require.NoError(t, err)
	require.NotNil(t, d2.ScheduledAt)

	d3, err := uc.Advance(ctx, d.ID, dto.AdvanceDeliveryRequest{Status: "IN_TRANSIT", Driver: "M. Pérez"})
	require.NoError(t, err)
	assert.Equal(t, "M. Pérez", d3.Driver)

	d4, err := uc.Advance(ctx, d.ID, dto.AdvanceDeliveryRequest{Status: "DELIVERED"})
	require.NoError(t, err)
	assert.Equal(t, entity.DeliveryDelivered, d4.Status)
	require.NotNil(t, d4.DeliveredAt)
	assert.False(t, d4.DeliveredAt.Before(*d2.ScheduledAt))
}

func TestAdvance_PermiteSaltosHaciaAdelante(t *testing.T) {
	store, uc := newEnv(t)
	o := seedOrder(t, store, entity.OrderOutbound, entity.OrderCompleted)
	d := seedDelivery(t, store, o.ID, entity.DeliveryPending)

	// PENDING directo a IN_TRANSIT, sin pasar por SCHEDULED
	d2, err := uc.Advance(context.Background(), d.ID, dto.AdvanceDeliveryRequest{Status: "IN_TRANSIT"})
	require.NoError(t, err)
	assert.Equal(t, entity.DeliveryInTransit, d2.Status)
}

func TestAdvance_RechazaRetrocesos(t *testing.T) {
	store, uc := newEnv(t)
	o := seedOrder(t, store, entity.OrderOutbound, entity.OrderCompleted)
	d := seedDelivery(t, store, o.ID, entity.DeliveryInTransit)

	_, err := uc.Advance(context.Background(), d.ID, dto.AdvanceDeliveryRequest{Status: "SCHEDULED"})
	assert.ErrorIs(t, err, domain.ErrConflict)
}

func TestAdvance_TerminalEsInmutable(t *testing.T) {
	store, uc := newEnv(t)
	o := seedOrder(t, store, entity.OrderOutbound, entity.OrderCompleted)
	d := seedDelivery(t, store, o.ID, entity.DeliveryDelivered)
	ctx := context.Background()

	for _, next := range []string{"SCHEDULED", "IN_TRANSIT", "CANCELLED"} {
		_, err := uc.Advance(ctx, d.ID, dto.AdvanceDeliveryRequest{Status: next})
		assert.ErrorIs(t, err, domain.ErrConflict, "desde DELIVERED hacia %s", next)
	}
}

func TestBulkCancel_OmiteTerminalesSinBloquear(t *testing.T) {
	store, uc := newEnv(t)
	o1 := seedOrder(t, store, entity.OrderOutbound, entity.OrderCompleted)
	o2 := seedOrder(t, store, entity.OrderOutbound, entity.OrderCompleted)
	o3 := seedOrder(t, store, entity.OrderOutbound, entity.OrderCompleted)
	enRuta := seedDelivery(t, store, o1.ID, entity.DeliveryInTransit)
	entregada := seedDelivery(t, store, o2.ID, entity.DeliveryDelivered)
	programada := seedDelivery(t, store, o3.ID, entity.DeliveryScheduled)

	res := uc.BulkCancel(context.Background(), []string{enRuta.ID, entregada.ID, programada.ID})

	assert.Equal(t, 3, res.Requested)
	assert.Equal(t, 2, res.Succeeded)
	assert.Equal(t, 1, res.Failed)

	got, err := store.Deliveries().GetByID(enRuta.ID)
	require.NoError(t, err)
	assert.Equal(t, entity.DeliveryCancelled, got.Status)
	got, err = store.Deliveries().GetByID(entregada.ID)
	require.NoError(t, err)
	assert.Equal(t, entity.DeliveryDelivered, got.Status)
}
