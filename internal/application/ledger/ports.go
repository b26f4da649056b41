package ledger

import (
	"context"

	"github.com/forkast/branch-ops/internal/domain/repository"
)

// TxRepos agrupa los repositorios atados a una misma transacción de BD.
// Todo lo que se escriba a través de ellos dentro de un Run comparte
// atomicidad: o se confirma todo o no se confirma nada.
type TxRepos struct {
	Items        repository.StockItemRepository
	Movements    repository.MovementRepository
	Orders       repository.OrderRepository
	Deliveries   repository.DeliveryRepository
	Transactions repository.TransactionRepository
	DailySales   repository.DailySalesRepository
}

// TxRunner ejecuta una función dentro de una transacción de BD, pasando
// repositorios atados a esa tx. Garantiza la unidad atómica
// "leer stock → calcular → escribir stock + asiento" que exige el motor.
type TxRunner interface {
	Run(ctx context.Context, fn func(r TxRepos) error) error
}
