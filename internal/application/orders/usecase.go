// Package orders implementa el ciclo de vida de órdenes de entrada/salida:
// PENDING → COMPLETED | CANCELLED, con mutación de stock exactamente una vez
// en la completación y reversa exacta en la cancelación. Todos los puntos de
// entrada (API, acciones masivas de administración) pasan por estos métodos;
// ninguna otra ruta recalcula stock por su cuenta.
package orders

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"

	"github.com/forkast/branch-ops/internal/application/dto"
	"github.com/forkast/branch-ops/internal/application/ledger"
	"github.com/forkast/branch-ops/internal/domain"
	"github.com/forkast/branch-ops/internal/domain/entity"
	"github.com/forkast/branch-ops/internal/domain/repository"
)

// UseCase casos de uso del ciclo de vida de órdenes.
type UseCase struct {
	txRunner  TxRunnerPort
	itemRepo  repository.StockItemRepository
	orderRepo repository.OrderRepository
}

// TxRunnerPort alias local del runner transaccional del motor.
type TxRunnerPort = ledger.TxRunner

// NewUseCase construye el caso de uso.
func NewUseCase(txRunner TxRunnerPort, itemRepo repository.StockItemRepository, orderRepo repository.OrderRepository) *UseCase {
	return &UseCase{txRunner: txRunner, itemRepo: itemRepo, orderRepo: orderRepo}
}

// Create registra una orden PENDING. Crear nunca toca stock.
func (uc *UseCase) Create(ctx context.Context, in dto.CreateOrderRequest) (*entity.Order, error) {
	if in.ItemID == "" || in.Quantity <= 0 {
		return nil, domain.ErrInvalidInput
	}
	direction := entity.OrderDirection(in.Direction)
	if direction != entity.OrderOutbound && direction != entity.OrderInbound {
		return nil, domain.ErrInvalidInput
	}
	item, err := uc.itemRepo.GetByID(in.ItemID)
	if err != nil {
		return nil, err
	}
	if item == nil || !item.Active {
		return nil, domain.ErrNotFound
	}
	now := time.Now()
	order := &entity.Order{
		ID:        uuid.New().String(),
		ItemID:    item.ID,
		ItemName:  item.Name,
		Quantity:  in.Quantity,
		Direction: direction,
		Status:    entity.OrderPending,
		Branch:    in.Branch,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := uc.orderRepo.Create(order); err != nil {
		return nil, err
	}
	return order, nil
}

// Complete ejecuta la transición PENDING→COMPLETED: asiento OUT (salida) o IN
// (entrada) con guard causal por id de orden, creación get-or-create de la
// entrega si la orden es OUTBOUND, y cambio de estado, todo en una sola tx.
// Una orden ya COMPLETED se rechaza con conflicto (doble clic de admin), no
// se re-aplica en silencio.
func (uc *UseCase) Complete(ctx context.Context, orderID string) (*entity.Order, error) {
	var out *entity.Order
	err := uc.txRunner.Run(ctx, func(r ledger.TxRepos) error {
		order, err := r.Orders.GetByID(orderID)
		if err != nil {
			return err
		}
		if order == nil {
			return domain.ErrNotFound
		}
		if order.Status != entity.OrderPending {
			return domain.ErrConflict
		}
		now := time.Now()

		reason := fmt.Sprintf("Recepción de pedido confirmada (orden #%s)", order.ID)
		if order.Direction == entity.OrderOutbound {
			reason = fmt.Sprintf("Pedido de sucursal aprobado y despachado (orden #%s)", order.ID)
		}
		if _, _, err := ledger.Apply(r, ledger.MovementInput{
			ItemID:    order.ItemID,
			Direction: order.MovementDirection(),
			Quantity:  order.Quantity,
			Reason:    reason,
			CausalRef: entity.OrderCausalRef(order.ID),
		}, now); err != nil {
			return err
		}

		if order.Direction == entity.OrderOutbound {
			if err := getOrCreateDelivery(r, order, now); err != nil {
				return err
			}
		}

		order.Status = entity.OrderCompleted
		order.UpdatedAt = now
		if err := r.Orders.Update(order); err != nil {
			return err
		}
		out = order
		return nil
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}

// getOrCreateDelivery crea la entrega de una orden OUTBOUND completada si aún
// no existe (idempotente por orden: uno a uno).
func getOrCreateDelivery(r ledger.TxRepos, order *entity.Order, now time.Time) error {
	existing, err := r.Deliveries.GetByOrder(order.ID)
	if err != nil {
		return err
	}
	if existing != nil {
		return nil
	}
	address := order.Branch
	if address == "" {
		address = "Entrega a sucursal"
	}
	return r.Deliveries.Create(&entity.Delivery{
		ID:          uuid.New().String(),
		OrderID:     order.ID,
		ItemName:    order.ItemName,
		Address:     address,
		Status:      entity.DeliveryScheduled,
		ScheduledAt: &now,
		CreatedAt:   now,
	})
}

// Cancel cancela la orden. Si estaba COMPLETED registra el movimiento opuesto
// exacto (acción compensatoria nueva, nunca una reescritura del libro) y
// cancela en cascada toda entrega no terminal; desde PENDING no toca stock.
// Cancelar una orden ya CANCELLED es un conflicto.
func (uc *UseCase) Cancel(ctx context.Context, orderID string) (*entity.Order, error) {
	var out *entity.Order
	err := uc.txRunner.Run(ctx, func(r ledger.TxRepos) error {
		order, err := r.Orders.GetByID(orderID)
		if err != nil {
			return err
		}
		if order == nil {
			return domain.ErrNotFound
		}
		if order.Status == entity.OrderCancelled {
			return domain.ErrConflict
		}
		now := time.Now()

		if order.Status == entity.OrderCompleted {
			if _, _, err := ledger.Apply(r, ledger.MovementInput{
				ItemID:    order.ItemID,
				Direction: order.ReversalDirection(),
				Quantity:  order.Quantity,
				Reason:    fmt.Sprintf("Cancelación de orden completada (orden #%s)", order.ID),
				CausalRef: entity.OrderReversalRef(order.ID),
			}, now); err != nil {
				return err
			}

			delivery, err := r.Deliveries.GetByOrder(order.ID)
			if err != nil {
				return err
			}
			if delivery != nil && !delivery.Status.Terminal() {
				delivery.Status = entity.DeliveryCancelled
				if err := r.Deliveries.Update(delivery); err != nil {
					return err
				}
			}
		}

		order.Status = entity.OrderCancelled
		order.UpdatedAt = now
		if err := r.Orders.Update(order); err != nil {
			return err
		}
		out = order
		return nil
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}

// EditQuantity cambia la cantidad pedida. PENDING: solo actualiza el campo.
// COMPLETED: aplica un ADJUST por el delta con la misma convención de signos
// que la completación (OUTBOUND resta más stock si crece, INBOUND suma), lo
// que mantiene la conciliación sin re-derivar la historia. La cantidad de la
// entrega no se toca: siempre refleja la de su orden.
func (uc *UseCase) EditQuantity(ctx context.Context, orderID string, newQuantity int) (*entity.Order, error) {
	if newQuantity <= 0 {
		return nil, domain.ErrInvalidInput
	}
	var out *entity.Order
	err := uc.txRunner.Run(ctx, func(r ledger.TxRepos) error {
		order, err := r.Orders.GetByID(orderID)
		if err != nil {
			return err
		}
		if order == nil {
			return domain.ErrNotFound
		}
		now := time.Now()

		switch order.Status {
		case entity.OrderPending:
			// sin efecto en stock
		case entity.OrderCompleted:
			delta := newQuantity - order.Quantity
			if delta == 0 {
				out = order
				return nil
			}
			signed := delta
			if order.Direction == entity.OrderOutbound {
				signed = -delta
			}
			if _, _, err := ledger.Apply(r, ledger.MovementInput{
				ItemID:    order.ItemID,
				Direction: entity.MovementADJUST,
				Quantity:  signed,
				Reason:    entity.OrderAdjustReason(order.ID, delta),
			}, now); err != nil {
				return err
			}
		default:
			return domain.ErrConflict
		}

		order.Quantity = newQuantity
		order.UpdatedAt = now
		if err := r.Orders.Update(order); err != nil {
			return err
		}
		out = order
		return nil
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}

// GetByID obtiene una orden.
func (uc *UseCase) GetByID(ctx context.Context, id string) (*entity.Order, error) {
	return uc.orderRepo.GetByID(id)
}

// List lista órdenes con filtros opcionales.
func (uc *UseCase) List(ctx context.Context, status entity.OrderStatus, direction entity.OrderDirection, limit, offset int) ([]*entity.Order, error) {
	return uc.orderRepo.List(status, direction, limit, offset)
}

// ── Acciones masivas de administración ────────────────────────────────────────
// Cada fila se procesa en su propia transacción: el fallo de una no bloquea a
// las demás y el resultado agregado reporta los conteos (§ batch del panel).

// BulkApprove aprueba pedidos de sucursal (OUTBOUND PENDING): completación +
// entrega automática.
func (uc *UseCase) BulkApprove(ctx context.Context, ids []string) dto.BulkResult {
	return uc.bulkComplete(ctx, ids, entity.OrderOutbound)
}

// BulkReceive confirma recepciones de proveedor (INBOUND PENDING).
func (uc *UseCase) BulkReceive(ctx context.Context, ids []string) dto.BulkResult {
	return uc.bulkComplete(ctx, ids, entity.OrderInbound)
}

func (uc *UseCase) bulkComplete(ctx context.Context, ids []string, want entity.OrderDirection) dto.BulkResult {
	var res dto.BulkResult
	for _, id := range ids {
		err := uc.completeIfDirection(ctx, id, want)
		if err != nil {
			log.Warn().Str("order_id", id).Err(err).Msg("fila omitida en acción masiva")
		}
		res.Add(id, err)
	}
	return res
}

func (uc *UseCase) completeIfDirection(ctx context.Context, id string, want entity.OrderDirection) error {
	order, err := uc.orderRepo.GetByID(id)
	if err != nil {
		return err
	}
	if order == nil {
		return domain.ErrNotFound
	}
	if order.Direction != want {
		return domain.ErrInvalidInput
	}
	_, err = uc.Complete(ctx, id)
	return err
}

// BulkCancel cancela órdenes en lote (reversa incluida para las COMPLETED).
func (uc *UseCase) BulkCancel(ctx context.Context, ids []string) dto.BulkResult {
	var res dto.BulkResult
	for _, id := range ids {
		_, err := uc.Cancel(ctx, id)
		if err != nil {
			log.Warn().Str("order_id", id).Err(err).Msg("fila omitida en acción masiva")
		}
		res.Add(id, err)
	}
	return res
}
