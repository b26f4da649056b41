// Package delivery gestiona entregas: PENDING→SCHEDULED→IN_TRANSIT→DELIVERED,
// solo hacia adelante, con CANCELLED alcanzable desde cualquier estado no
// terminal. El avance de estado nunca toca stock.
package delivery

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"

	"github.com/forkast/branch-ops/internal/application/dto"
	"github.com/forkast/branch-ops/internal/application/ledger"
	"github.com/forkast/branch-ops/internal/domain"
	"github.com/forkast/branch-ops/internal/domain/entity"
	"github.com/forkast/branch-ops/internal/domain/repository"
)

// UseCase casos de uso de entregas.
type UseCase struct {
	txRunner     ledger.TxRunner
	deliveryRepo repository.DeliveryRepository
	orderRepo    repository.OrderRepository
}

// NewUseCase construye el caso de uso.
func NewUseCase(txRunner ledger.TxRunner, deliveryRepo repository.DeliveryRepository, orderRepo repository.OrderRepository) *UseCase {
	return &UseCase{txRunner: txRunner, deliveryRepo: deliveryRepo, orderRepo: orderRepo}
}

// Schedule crea manualmente la entrega de una orden OUTBOUND completada que
// aún no la tiene. Si ya existe se devuelve la existente (get-or-create, uno
// a uno con la orden).
func (uc *UseCase) Schedule(ctx context.Context, in dto.ScheduleDeliveryRequest) (*entity.Delivery, error) {
	order, err := uc.orderRepo.GetByID(in.OrderID)
	if err != nil {
		return nil, err
	}
	if order == nil {
		return nil, domain.ErrNotFound
	}
	if order.Direction != entity.OrderOutbound || order.Status != entity.OrderCompleted {
		return nil, domain.ErrConflict
	}
	existing, err := uc.deliveryRepo.GetByOrder(order.ID)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return existing, nil
	}
	now := time.Now()
	address := in.Address
	if address == "" {
		address = order.Branch
	}
	d := &entity.Delivery{
		ID:          uuid.New().String(),
		OrderID:     order.ID,
		ItemName:    order.ItemName,
		Address:     address,
		Driver:      in.Driver,
		Vehicle:     in.Vehicle,
		Status:      entity.DeliveryScheduled,
		ScheduledAt: &now,
		CreatedAt:   now,
	}
	if err := uc.deliveryRepo.Create(d); err != nil {
		return nil, err
	}
	return d, nil
}

// Advance mueve la entrega al siguiente estado. Retroceder o salir de un
// estado terminal es conflicto. DELIVERED sella DeliveredAt; SCHEDULED sella
// ScheduledAt si faltaba.
func (uc *UseCase) Advance(ctx context.Context, id string, in dto.AdvanceDeliveryRequest) (*entity.Delivery, error) {
	next := entity.DeliveryStatus(in.Status)
	d, err := uc.deliveryRepo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if d == nil {
		return nil, domain.ErrNotFound
	}
	if !d.Status.CanAdvanceTo(next) {
		return nil, domain.ErrConflict
	}
	now := time.Now()
	switch next {
	case entity.DeliveryScheduled:
		if d.ScheduledAt == nil {
			d.ScheduledAt = &now
		}
	case entity.DeliveryDelivered:
		d.DeliveredAt = &now
	}
	if in.Driver != "" {
		d.Driver = in.Driver
	}
	if in.Vehicle != "" {
		d.Vehicle = in.Vehicle
	}
	d.Status = next
	if err := uc.deliveryRepo.Update(d); err != nil {
		return nil, err
	}
	return d, nil
}

// GetByID obtiene una entrega.
func (uc *UseCase) GetByID(ctx context.Context, id string) (*entity.Delivery, error) {
	return uc.deliveryRepo.GetByID(id)
}

// List lista entregas con filtro opcional por estado.
func (uc *UseCase) List(ctx context.Context, status entity.DeliveryStatus, limit, offset int) ([]*entity.Delivery, error) {
	return uc.deliveryRepo.List(status, limit, offset)
}

// BulkCancel cancela entregas en lote. Cancelar la entrega NO revierte la
// orden ni el stock: la mercadería ya salió del almacén y su retorno, si
// ocurre, es una cancelación de orden aparte.
func (uc *UseCase) BulkCancel(ctx context.Context, ids []string) dto.BulkResult {
	var res dto.BulkResult
	for _, id := range ids {
		err := uc.cancelOne(ctx, id)
		if err != nil {
			log.Warn().Str("delivery_id", id).Err(err).Msg("fila omitida en acción masiva")
		}
		res.Add(id, err)
	}
	return res
}

func (uc *UseCase) cancelOne(ctx context.Context, id string) error {
	d, err := uc.deliveryRepo.GetByID(id)
	if err != nil {
		return err
	}
	if d == nil {
		return domain.ErrNotFound
	}
	if d.Status.Terminal() {
		return domain.ErrConflict
	}
	d.Status = entity.DeliveryCancelled
	return uc.deliveryRepo.Update(d)
}
