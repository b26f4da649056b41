package repository

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/forkast/branch-ops/internal/domain/entity"
)

// TransactionRepository puerto de persistencia de transacciones y sus líneas.
type TransactionRepository interface {
	// Create persiste cabecera y líneas juntas.
	Create(t *entity.Transaction) error
	// GetByID devuelve la transacción con sus líneas cargadas, o nil.
	GetByID(id string) (*entity.Transaction, error)
	UpdateStatus(id string, status entity.TransactionStatus) error
	List(status entity.TransactionStatus, limit, offset int) ([]*entity.Transaction, error)
	// SumConfirmedSales suma final_amount de las SALE confirmadas de la fecha.
	// Fuente de verdad del agregado diario.
	SumConfirmedSales(date time.Time) (decimal.Decimal, error)
}
