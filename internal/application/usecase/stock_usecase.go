// Package usecase contiene casos de uso de soporte: maestro de artículos y
// panel de control. El motor de movimientos y los ciclos de vida viven en sus
// propios paquetes (ledger, orders, delivery, sales).
package usecase

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/forkast/branch-ops/internal/application/dto"
	"github.com/forkast/branch-ops/internal/application/ledger"
	"github.com/forkast/branch-ops/internal/domain"
	"github.com/forkast/branch-ops/internal/domain/entity"
	"github.com/forkast/branch-ops/internal/domain/repository"
)

// StockUseCase CRUD del maestro de artículos.
type StockUseCase struct {
	txRunner     ledger.TxRunner
	itemRepo     repository.StockItemRepository
	movementRepo repository.MovementRepository
}

// NewStockUseCase construye el caso de uso.
func NewStockUseCase(txRunner ledger.TxRunner, itemRepo repository.StockItemRepository, movementRepo repository.MovementRepository) *StockUseCase {
	return &StockUseCase{txRunner: txRunner, itemRepo: itemRepo, movementRepo: movementRepo}
}

// Create da de alta un artículo con estado derivado de la relación
// stock_actual/stock_óptimo.
func (uc *StockUseCase) Create(ctx context.Context, in dto.CreateStockItemRequest) (*entity.StockItem, error) {
	if in.Name == "" || in.CurrentStock < 0 || in.OptimalStock < 0 {
		return nil, domain.ErrInvalidInput
	}
	if in.Cost.IsNegative() || in.Price.IsNegative() {
		return nil, domain.ErrInvalidInput
	}
	now := time.Now()
	item := &entity.StockItem{
		ID:           uuid.New().String(),
		Name:         in.Name,
		Category:     in.Category,
		Code:         in.Code,
		CurrentStock: in.CurrentStock,
		OptimalStock: in.OptimalStock,
		Cost:         in.Cost,
		Price:        in.Price,
		Active:       true,
		CreatedAt:    now,
	}
	item.Refresh(now)
	if err := uc.itemRepo.Create(item); err != nil {
		return nil, err
	}
	return item, nil
}

// Update modifica campos del maestro. Un cambio directo de current_stock no
// sobrescribe en silencio: se materializa como asiento ADJUST manual por el
// delta, así el libro sigue conciliando la cifra del maestro.
func (uc *StockUseCase) Update(ctx context.Context, id string, in dto.UpdateStockItemRequest) (*entity.StockItem, error) {
	var out *entity.StockItem
	err := uc.txRunner.Run(ctx, func(r ledger.TxRepos) error {
		item, err := r.Items.GetForUpdate(id)
		if err != nil {
			return err
		}
		if item == nil {
			return domain.ErrNotFound
		}
		now := time.Now()

		if in.CurrentStock != nil && *in.CurrentStock != item.CurrentStock {
			if *in.CurrentStock < 0 {
				return domain.ErrInvalidInput
			}
			delta := *in.CurrentStock - item.CurrentStock
			if _, _, err := ledger.Apply(r, ledger.MovementInput{
				ItemID:    item.ID,
				Direction: entity.MovementADJUST,
				Quantity:  delta,
				Reason:    fmt.Sprintf("Corrección de inventario desde el maestro (%+d)", delta),
			}, now); err != nil {
				return err
			}
			// Apply ya actualizó y refrescó; releer para no pisar el cambio
			item, err = r.Items.GetForUpdate(id)
			if err != nil {
				return err
			}
		}

		if in.Name != nil {
			item.Name = *in.Name
		}
		if in.Category != nil {
			item.Category = *in.Category
		}
		if in.OptimalStock != nil {
			if *in.OptimalStock < 0 {
				return domain.ErrInvalidInput
			}
			item.OptimalStock = *in.OptimalStock
		}
		if in.Cost != nil {
			if in.Cost.IsNegative() {
				return domain.ErrInvalidInput
			}
			item.Cost = *in.Cost
		}
		if in.Price != nil {
			if in.Price.IsNegative() {
				return domain.ErrInvalidInput
			}
			item.Price = *in.Price
		}
		item.Refresh(now)
		if err := r.Items.Update(item); err != nil {
			return err
		}
		out = item
		return nil
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}

// Delete elimina el artículo. Con asientos en el libro el borrado físico
// rompería la historia, así que se degrada a desactivación suave.
func (uc *StockUseCase) Delete(ctx context.Context, id string) error {
	item, err := uc.itemRepo.GetByID(id)
	if err != nil {
		return err
	}
	if item == nil {
		return domain.ErrNotFound
	}
	has, err := uc.movementRepo.ExistsByItem(id)
	if err != nil {
		return err
	}
	if has {
		return uc.itemRepo.Deactivate(id)
	}
	return uc.itemRepo.Delete(id)
}

// GetByID obtiene un artículo.
func (uc *StockUseCase) GetByID(ctx context.Context, id string) (*entity.StockItem, error) {
	item, err := uc.itemRepo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if item == nil {
		return nil, domain.ErrNotFound
	}
	return item, nil
}

// List lista artículos.
func (uc *StockUseCase) List(ctx context.Context, onlyActive bool, limit, offset int) ([]*entity.StockItem, error) {
	return uc.itemRepo.List(onlyActive, limit, offset)
}

// RecalculateStatuses re-deriva el estado de todos los artículos activos.
// Útil tras cambios masivos de stock óptimo.
func (uc *StockUseCase) RecalculateStatuses(ctx context.Context) (int, error) {
	items, err := uc.itemRepo.List(true, 0, 0)
	if err != nil {
		return 0, err
	}
	changed := 0
	now := time.Now()
	for _, item := range items {
		before := item.Status
		item.Refresh(now)
		if item.Status == before {
			continue
		}
		if err := uc.itemRepo.Update(item); err != nil {
			return changed, err
		}
		changed++
	}
	return changed, nil
}

// LatestMovements devuelve los últimos n asientos para el feed en vivo.
func (uc *StockUseCase) LatestMovements(ctx context.Context, n int) ([]*entity.Movement, error) {
	if n <= 0 || n > 100 {
		n = 10
	}
	return uc.movementRepo.ListLatest(n)
}

// MovementsByItem historial de asientos de un artículo.
func (uc *StockUseCase) MovementsByItem(ctx context.Context, itemID string, limit, offset int) ([]*entity.Movement, error) {
	return uc.movementRepo.ListByItem(itemID, limit, offset)
}
