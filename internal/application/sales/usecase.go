// Package sales implementa transacciones comerciales (venta/compra/devolución)
// y el agregado diario de ingresos. La confirmación es el único punto donde
// una transacción toca stock, exactamente una vez por línea.
package sales

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
	"github.com/shopspring/decimal"

	"github.com/forkast/branch-ops/internal/application/dto"
	"github.com/forkast/branch-ops/internal/application/ledger"
	"github.com/forkast/branch-ops/internal/domain"
	"github.com/forkast/branch-ops/internal/domain/entity"
	"github.com/forkast/branch-ops/internal/domain/repository"
)

// UseCase casos de uso de transacciones y ventas diarias.
type UseCase struct {
	txRunner   ledger.TxRunner
	txnRepo    repository.TransactionRepository
	itemRepo   repository.StockItemRepository
	salesRepo  repository.DailySalesRepository
	aggregator *Aggregator
}

// NewUseCase construye el caso de uso.
func NewUseCase(txRunner ledger.TxRunner, txnRepo repository.TransactionRepository, itemRepo repository.StockItemRepository, salesRepo repository.DailySalesRepository) *UseCase {
	return &UseCase{
		txRunner:   txRunner,
		txnRepo:    txnRepo,
		itemRepo:   itemRepo,
		salesRepo:  salesRepo,
		aggregator: NewAggregator(txnRepo, salesRepo),
	}
}

// Aggregator devuelve el agregador diario compartido.
func (uc *UseCase) Aggregator() *Aggregator { return uc.aggregator }

// Create registra una transacción PENDING con totales derivados de sus
// líneas. Crear nunca toca stock ni el agregado diario.
func (uc *UseCase) Create(ctx context.Context, in dto.CreateTransactionRequest) (*entity.Transaction, error) {
	txnType := entity.TransactionType(in.Type)
	switch txnType {
	case entity.TransactionSale, entity.TransactionPurchase, entity.TransactionRefund:
	default:
		return nil, domain.ErrInvalidInput
	}
	if len(in.Lines) == 0 {
		return nil, domain.ErrInvalidInput
	}
	if in.TaxAmount.IsNegative() {
		return nil, domain.ErrInvalidInput
	}

	now := time.Now()
	date := now
	if in.Date != nil {
		date = *in.Date
	}

	total := decimal.Zero
	lines := make([]entity.TransactionLine, 0, len(in.Lines))
	for _, lr := range in.Lines {
		if lr.ItemID == "" || lr.Quantity <= 0 || lr.UnitPrice.IsNegative() {
			return nil, domain.ErrInvalidInput
		}
		item, err := uc.itemRepo.GetByID(lr.ItemID)
		if err != nil {
			return nil, err
		}
		if item == nil || !item.Active {
			return nil, domain.ErrNotFound
		}
		lineTotal := lr.UnitPrice.Mul(decimal.NewFromInt(int64(lr.Quantity)))
		total = total.Add(lineTotal)
		lines = append(lines, entity.TransactionLine{
			ID:        uuid.New().String(),
			ItemID:    item.ID,
			ItemName:  item.Name,
			Quantity:  lr.Quantity,
			UnitPrice: lr.UnitPrice,
			LineTotal: lineTotal,
		})
	}

	t := &entity.Transaction{
		ID:          uuid.New().String(),
		Type:        txnType,
		Status:      entity.TransactionPending,
		Partner:     in.Partner,
		TotalAmount: total,
		TaxAmount:   in.TaxAmount,
		FinalAmount: total.Add(in.TaxAmount),
		Date:        date,
		Lines:       lines,
		CreatedAt:   now,
	}
	if err := uc.txnRepo.Create(t); err != nil {
		return nil, err
	}
	return t, nil
}

// Confirm transiciona PENDING→CONFIRMED y aplica un asiento por línea bajo la
// referencia causal de la transacción. El guard se evalúa UNA vez al nivel de
// la transacción (todas las líneas comparten la referencia); si ya existe un
// asiento con esa referencia la confirmación entera es un no-op que devuelve
// la transacción tal cual. Una SALE confirmada recomputa el agregado del día.
func (uc *UseCase) Confirm(ctx context.Context, id string) (*entity.Transaction, error) {
	var out *entity.Transaction
	var confirmedSale bool
	var saleDate time.Time

	err := uc.txRunner.Run(ctx, func(r ledger.TxRepos) error {
		t, err := r.Transactions.GetByID(id)
		if err != nil {
			return err
		}
		if t == nil {
			return domain.ErrNotFound
		}
		if t.Status == entity.TransactionCancelled {
			return domain.ErrConflict
		}

		ref := entity.TransactionCausalRef(t.ID)
		prior, err := r.Movements.FindByCausalRef(ref)
		if err != nil {
			return err
		}
		if prior != nil {
			// reenvío o doble clic: el libro ya registró esta transacción
			log.Info().Str("transaction_id", t.ID).Msg("confirmación repetida ignorada")
			out = t
			return nil
		}

		// el estado cambia antes de aplicar líneas para que el recómputo del
		// agregado (que lee transacciones CONFIRMED) vea esta venta
		if err := r.Transactions.UpdateStatus(t.ID, entity.TransactionConfirmed); err != nil {
			return err
		}
		t.Status = entity.TransactionConfirmed

		now := time.Now()
		dir := t.Type.MovementDirection()
		for _, line := range t.Lines {
			if _, _, err := ledger.Apply(r, ledger.MovementInput{
				ItemID:    line.ItemID,
				Direction: dir,
				Quantity:  line.Quantity,
				Reason:    fmt.Sprintf("%s confirmada (%s)", t.Type, line.ItemName),
				CausalRef: ref,
				SkipGuard: true,
			}, now); err != nil {
				return err
			}
		}

		if t.Type == entity.TransactionSale {
			confirmedSale = true
			saleDate = t.Date
		}
		out = t
		return nil
	})
	if err != nil {
		return nil, err
	}

	if confirmedSale {
		if err := uc.aggregator.Recompute(ctx, saleDate); err != nil {
			// el agregado es caché recomputable; la confirmación ya quedó firme
			log.Error().Err(err).Time("date", saleDate).Msg("recómputo de ventas diarias falló")
		}
	}
	return out, nil
}

// CancelPending marca CANCELLED una transacción que nunca se confirmó.
// Cancelar una CONFIRMED no está soportado: su compensación es un REFUND.
func (uc *UseCase) CancelPending(ctx context.Context, id string) (*entity.Transaction, error) {
	t, err := uc.txnRepo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if t == nil {
		return nil, domain.ErrNotFound
	}
	if t.Status != entity.TransactionPending {
		return nil, domain.ErrConflict
	}
	if err := uc.txnRepo.UpdateStatus(id, entity.TransactionCancelled); err != nil {
		return nil, err
	}
	t.Status = entity.TransactionCancelled
	return t, nil
}

// GetByID obtiene una transacción con sus líneas.
func (uc *UseCase) GetByID(ctx context.Context, id string) (*entity.Transaction, error) {
	return uc.txnRepo.GetByID(id)
}

// List lista transacciones con filtro opcional por estado.
func (uc *UseCase) List(ctx context.Context, status entity.TransactionStatus, limit, offset int) ([]*entity.Transaction, error) {
	return uc.txnRepo.List(status, limit, offset)
}
