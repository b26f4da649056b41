package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// DailySalesAllItems marcador del agregado global del día (todas las ventas).
const DailySalesAllItems = "ALL"

// DailySales agregado de ingresos por (fecha, artículo-o-ALL). El valor
// almacenado es una caché recomputable en cualquier momento desde las
// transacciones SALE confirmadas de la fecha; nunca es fuente de verdad.
type DailySales struct {
	Date      time.Time // solo la fecha (hora truncada)
	ItemName  string
	Revenue   decimal.Decimal
	UpdatedAt time.Time
}
