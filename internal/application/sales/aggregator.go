package sales

import (
	"context"
	"time"

	"github.com/forkast/branch-ops/internal/domain/entity"
	"github.com/forkast/branch-ops/internal/domain/repository"
)

// Aggregator mantiene el agregado diario de ingresos. Recompute siempre
// sobrescribe sumando desde las transacciones confirmadas de la fecha, nunca
// incrementa: repetirlo con los mismos datos produce el mismo resultado.
type Aggregator struct {
	txnRepo   repository.TransactionRepository
	salesRepo repository.DailySalesRepository
}

// NewAggregator construye el agregador.
func NewAggregator(txnRepo repository.TransactionRepository, salesRepo repository.DailySalesRepository) *Aggregator {
	return &Aggregator{txnRepo: txnRepo, salesRepo: salesRepo}
}

// Recompute suma final_amount de las SALE confirmadas de la fecha y
// sobrescribe la fila global del día.
func (a *Aggregator) Recompute(ctx context.Context, date time.Time) error {
	day := Truncate(date)
	revenue, err := a.txnRepo.SumConfirmedSales(day)
	if err != nil {
		return err
	}
	return a.salesRepo.Upsert(&entity.DailySales{
		Date:      day,
		ItemName:  entity.DailySalesAllItems,
		Revenue:   revenue,
		UpdatedAt: time.Now(),
	})
}

// Get devuelve el agregado global de la fecha, o nil si no hay fila.
func (a *Aggregator) Get(ctx context.Context, date time.Time) (*entity.DailySales, error) {
	return a.salesRepo.Get(Truncate(date), entity.DailySalesAllItems)
}

// ListRange lista agregados entre dos fechas inclusive.
func (a *Aggregator) ListRange(ctx context.Context, from, to time.Time) ([]*entity.DailySales, error) {
	return a.salesRepo.ListRange(Truncate(from), Truncate(to))
}

// Truncate normaliza un instante a su fecha (medianoche local).
func Truncate(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, t.Location())
}
