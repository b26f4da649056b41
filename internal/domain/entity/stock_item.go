package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// StockStatus estado derivado del nivel de stock de un artículo.
// Variante cerrada: ningún otro valor es representable por construcción.
type StockStatus string

const (
	StockStatusLow  StockStatus = "LOW"  // por debajo del 30% del óptimo
	StockStatusGood StockStatus = "GOOD" // dentro del rango
	StockStatusOver StockStatus = "OVER" // por encima del 150% del óptimo
)

// DeriveStockStatus calcula el estado a partir del stock actual y el óptimo.
// Función pura; se invoca después de CADA escritura que toque current u optimal,
// de modo que nunca se persista un artículo con estado desfasado.
// Con óptimo <= 0 el ratio se considera 1.0 (GOOD).
func DeriveStockStatus(current, optimal int) StockStatus {
	ratio := 1.0
	if optimal > 0 {
		ratio = float64(current) / float64(optimal)
	}
	switch {
	case ratio < 0.3:
		return StockStatusLow
	case ratio > 1.5:
		return StockStatusOver
	default:
		return StockStatusGood
	}
}

// StockItem representa un artículo/material rastreado: stock actual, stock
// óptimo y estado derivado. Cost y Price son montos (decimal); las cantidades
// son enteras. Un artículo referenciado por el libro de movimientos nunca se
// elimina físicamente: se desactiva (Active=false).
type StockItem struct {
	ID           string
	Name         string
	Category     string
	Code         string
	CurrentStock int
	OptimalStock int
	Status       StockStatus
	Cost         decimal.Decimal // costo unitario de compra
	Price        decimal.Decimal // precio unitario de venta
	Active       bool
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// Refresh recalcula el estado derivado. Debe llamarse antes de persistir
// cualquier cambio de CurrentStock u OptimalStock.
func (s *StockItem) Refresh(now time.Time) {
	s.Status = DeriveStockStatus(s.CurrentStock, s.OptimalStock)
	s.UpdatedAt = now
}
