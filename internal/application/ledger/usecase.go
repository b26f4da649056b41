package ledger

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"

	"github.com/forkast/branch-ops/internal/domain"
	"github.com/forkast/branch-ops/internal/domain/entity"
)

// MovementInput entrada para registrar un asiento en el libro de movimientos.
// Para IN/OUT Quantity es magnitud positiva; para ADJUST es delta con signo.
// CausalRef no vacío activa el guard de idempotencia; SkipGuard lo desactiva
// para rutas que ya verificaron idempotencia a nivel de evento (p. ej. la
// confirmación de transacción, que chequea una sola vez para todas sus líneas).
type MovementInput struct {
	ItemID    string
	Direction entity.MovementDirection
	Quantity  int
	Reason    string
	CausalRef string
	SkipGuard bool
}

// UseCase registra movimientos de stock de forma transaccional: bloqueo de
// fila del artículo (SELECT FOR UPDATE), asiento y actualización de stock en
// la misma unidad atómica, con guard de idempotencia por referencia causal.
type UseCase struct {
	txRunner TxRunner
}

// NewUseCase construye el caso de uso.
func NewUseCase(txRunner TxRunner) *UseCase {
	return &UseCase{txRunner: txRunner}
}

// RecordMovement abre una transacción y aplica el movimiento. Para asientos
// manuales desde la API; los flujos de órdenes y transacciones usan Apply
// dentro de su propia tx.
func (uc *UseCase) RecordMovement(ctx context.Context, in MovementInput) (*entity.Movement, error) {
	var out *entity.Movement
	err := uc.txRunner.Run(ctx, func(r TxRepos) error {
		m, created, err := Apply(r, in, time.Now())
		if err != nil {
			return err
		}
		if !created {
			// Corto-circuito de idempotencia: se registra, no es un fallo.
			log.Info().Str("causal_ref", in.CausalRef).Str("movement_id", m.ID).
				Msg("movimiento ya registrado para la referencia causal; no-op")
		}
		out = m
		return nil
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}

// Apply aplica un movimiento usando repositorios ya atados a una transacción
// del caller. Devuelve el asiento y si fue creado (false = el guard encontró
// un asiento previo con la misma referencia causal y no se tocó nada).
//
// Secuencia dentro de la tx: guard causal → bloqueo de fila del artículo →
// validación de stock no negativo → actualización de stock + estado derivado →
// asiento. Si el stock resultante fuera negativo no se escribe nada.
func Apply(r TxRepos, in MovementInput, now time.Time) (*entity.Movement, bool, error) {
	switch in.Direction {
	case entity.MovementIN, entity.MovementOUT:
		if in.Quantity <= 0 {
			return nil, false, domain.ErrInvalidInput
		}
	case entity.MovementADJUST:
		if in.Quantity == 0 {
			return nil, false, domain.ErrInvalidInput
		}
	default:
		return nil, false, domain.ErrInvalidInput
	}
	if in.ItemID == "" {
		return nil, false, domain.ErrInvalidInput
	}

	if in.CausalRef != "" && !in.SkipGuard {
		existing, err := r.Movements.FindByCausalRef(in.CausalRef)
		if err != nil {
			return nil, false, err
		}
		if existing != nil {
			return existing, false, nil
		}
	}

	// Punto de serialización: bloquea la fila del artículo hasta el commit.
	item, err := r.Items.GetForUpdate(in.ItemID)
	if err != nil {
		return nil, false, err
	}
	if item == nil {
		return nil, false, domain.ErrNotFound
	}

	mov := &entity.Movement{
		ID:        uuid.New().String(),
		ItemID:    item.ID,
		ItemName:  item.Name,
		Direction: in.Direction,
		Quantity:  in.Quantity,
		Reason:    in.Reason,
		CausalRef: in.CausalRef,
		CreatedAt: now,
	}

	newStock := item.CurrentStock + mov.SignedDelta()
	if newStock < 0 {
		return nil, false, domain.ErrInsufficientStock
	}

	item.CurrentStock = newStock
	item.Refresh(now)
	if err := r.Items.Update(item); err != nil {
		return nil, false, err
	}
	if err := r.Movements.Create(mov); err != nil {
		return nil, false, err
	}
	return mov, true, nil
}

// UndoManualEntry deshace un asiento manual (ruta administrativa, poco
// frecuente): revierte el delta sobre el stock y elimina la fila del libro.
// Los asientos con referencia causal pertenecen a una orden o transacción y
// se revierten por sus propios flujos de cancelación, nunca por aquí.
func (uc *UseCase) UndoManualEntry(ctx context.Context, movementID string) error {
	return uc.txRunner.Run(ctx, func(r TxRepos) error {
		mov, err := r.Movements.GetByID(movementID)
		if err != nil {
			return err
		}
		if mov == nil {
			return domain.ErrNotFound
		}
		if !mov.Manual() {
			return domain.ErrConflict
		}

		item, err := r.Items.GetForUpdate(mov.ItemID)
		if err != nil {
			return err
		}
		if item == nil {
			return domain.ErrNotFound
		}

		newStock := item.CurrentStock - mov.SignedDelta()
		if newStock < 0 {
			return domain.ErrInsufficientStock
		}
		item.CurrentStock = newStock
		item.Refresh(time.Now())
		if err := r.Items.Update(item); err != nil {
			return err
		}
		return r.Movements.Delete(mov.ID)
	})
}
