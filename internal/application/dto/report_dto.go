package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// DailySalesResponse fila del agregado diario de ventas.
type DailySalesResponse struct {
	Date     string          `json:"date"` // YYYY-MM-DD
	ItemName string          `json:"item_name"`
	Revenue  decimal.Decimal `json:"revenue"`
}

// DashboardStats métricas del panel de control de la casa matriz.
type DashboardStats struct {
	RevenueToday      decimal.Decimal `json:"revenue_today"`
	LowStockItems     int             `json:"low_stock_items"`
	PendingOrders     int             `json:"pending_orders"`
	InTransitShipping int             `json:"in_transit_deliveries"`
	GeneratedAt       time.Time       `json:"generated_at"`
}
