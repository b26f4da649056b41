package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// TransactionLineRequest línea de una transacción nueva.
type TransactionLineRequest struct {
	ItemID    string          `json:"item_id"`
	Quantity  int             `json:"quantity"`
	UnitPrice decimal.Decimal `json:"unit_price"`
}

// CreateTransactionRequest body para POST /api/transactions.
// type: SALE | PURCHASE | REFUND. date vacío = ahora.
type CreateTransactionRequest struct {
	Type      string                   `json:"type"`
	Partner   string                   `json:"partner,omitempty"`
	TaxAmount decimal.Decimal          `json:"tax_amount"`
	Date      *time.Time               `json:"date,omitempty"`
	Lines     []TransactionLineRequest `json:"lines"`
}

// TransactionLineResponse línea con totales calculados.
type TransactionLineResponse struct {
	ItemID    string          `json:"item_id"`
	ItemName  string          `json:"item_name"`
	Quantity  int             `json:"quantity"`
	UnitPrice decimal.Decimal `json:"unit_price"`
	LineTotal decimal.Decimal `json:"line_total"`
}

// TransactionResponse representación HTTP de una transacción.
type TransactionResponse struct {
	ID          string                    `json:"id"`
	Type        string                    `json:"type"`
	Status      string                    `json:"status"`
	Partner     string                    `json:"partner,omitempty"`
	TotalAmount decimal.Decimal           `json:"total_amount"`
	TaxAmount   decimal.Decimal           `json:"tax_amount"`
	FinalAmount decimal.Decimal           `json:"final_amount"`
	Date        time.Time                 `json:"date"`
	Lines       []TransactionLineResponse `json:"lines"`
}
