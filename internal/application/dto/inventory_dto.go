package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// CreateStockItemRequest body para POST /api/items.
type CreateStockItemRequest struct {
	Name         string          `json:"name"`
	Category     string          `json:"category"`
	Code         string          `json:"code"`
	CurrentStock int             `json:"current_stock"`
	OptimalStock int             `json:"optimal_stock"`
	Cost         decimal.Decimal `json:"cost"`
	Price        decimal.Decimal `json:"price"`
}

// UpdateStockItemRequest body para PUT /api/items/:id. Los punteros distinguen
// "no enviado" de "cero".
type UpdateStockItemRequest struct {
	Name         *string          `json:"name,omitempty"`
	Category     *string          `json:"category,omitempty"`
	CurrentStock *int             `json:"current_stock,omitempty"`
	OptimalStock *int             `json:"optimal_stock,omitempty"`
	Cost         *decimal.Decimal `json:"cost,omitempty"`
	Price        *decimal.Decimal `json:"price,omitempty"`
}

// StockItemResponse representación HTTP de un artículo.
type StockItemResponse struct {
	ID           string          `json:"id"`
	Name         string          `json:"name"`
	Category     string          `json:"category"`
	Code         string          `json:"code"`
	CurrentStock int             `json:"current_stock"`
	OptimalStock int             `json:"optimal_stock"`
	Status       string          `json:"status"`
	Cost         decimal.Decimal `json:"cost"`
	Price        decimal.Decimal `json:"price"`
	Active       bool            `json:"active"`
	UpdatedAt    time.Time       `json:"updated_at"`
}

// RecordMovementRequest body para POST /api/movements (asiento manual).
// Para IN/OUT quantity es magnitud positiva; para ADJUST es delta con signo.
type RecordMovementRequest struct {
	ItemID    string `json:"item_id"`
	Direction string `json:"direction"`
	Quantity  int    `json:"quantity"`
	Reason    string `json:"reason"`
}

// MovementResponse asiento del libro para el feed en vivo.
type MovementResponse struct {
	ID        string    `json:"id"`
	ItemID    string    `json:"item_id"`
	ItemName  string    `json:"item_name"`
	Direction string    `json:"direction"`
	Quantity  int       `json:"quantity"`
	Reason    string    `json:"reason"`
	CausalRef string    `json:"causal_ref,omitempty"`
	CreatedAt time.Time `json:"created_at"`
}
