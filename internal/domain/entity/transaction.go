package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// TransactionType tipo de evento comercial.
type TransactionType string

const (
	TransactionSale     TransactionType = "SALE"     // venta: descuenta stock
	TransactionPurchase TransactionType = "PURCHASE" // compra: suma stock
	TransactionRefund   TransactionType = "REFUND"   // devolución: reingresa stock
)

// MovementDirection dirección del asiento que genera cada línea al
// confirmarse: SALE → OUT; PURCHASE y REFUND → IN.
func (t TransactionType) MovementDirection() MovementDirection {
	if t == TransactionSale {
		return MovementOUT
	}
	return MovementIN
}

// TransactionStatus estado de la transacción.
type TransactionStatus string

const (
	TransactionPending   TransactionStatus = "PENDING"
	TransactionConfirmed TransactionStatus = "CONFIRMED"
	TransactionCancelled TransactionStatus = "CANCELLED"
)

// Transaction cabecera de una venta/compra/devolución con líneas tipadas.
// Invariante: al llegar a CONFIRMED cada línea aporta exactamente UN asiento
// al libro de movimientos, sin importar cuántas veces se invoque la ruta de
// confirmación (idempotente por búsqueda de referencia causal).
type Transaction struct {
	ID          string
	Type        TransactionType
	Status      TransactionStatus
	Partner     string          // contraparte (cliente/proveedor), texto libre
	TotalAmount decimal.Decimal // suma de líneas sin impuesto
	TaxAmount   decimal.Decimal
	FinalAmount decimal.Decimal // total facturado; alimenta el agregado diario
	Date        time.Time
	Lines       []TransactionLine
	CreatedAt   time.Time
}

// TransactionLine línea de transacción: artículo, cantidad y precio unitario.
type TransactionLine struct {
	ID        string
	ItemID    string
	ItemName  string
	Quantity  int
	UnitPrice decimal.Decimal
	LineTotal decimal.Decimal // Quantity × UnitPrice
}
