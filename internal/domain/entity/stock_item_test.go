package entity_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/forkast/branch-ops/internal/domain/entity"
)

// Los umbrales son estrictos: 30% exacto ya no es LOW y 150% exacto aún no
// es OVER.
func TestDeriveStockStatus_Umbrales(t *testing.T) {
	cases := []struct {
		name     string
		current  int
		optimal  int
		expected entity.StockStatus
	}{
		{"justo debajo del 30%", 29, 100, entity.StockStatusLow},
		{"exactamente 30%", 30, 100, entity.StockStatusGood},
		{"dentro del rango", 100, 100, entity.StockStatusGood},
		{"exactamente 150%", 150, 100, entity.StockStatusGood},
		{"justo encima del 150%", 151, 100, entity.StockStatusOver},
		{"stock cero", 0, 100, entity.StockStatusLow},
		{"óptimo cero es GOOD", 500, 0, entity.StockStatusGood},
		{"óptimo negativo es GOOD", 0, -5, entity.StockStatusGood},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.expected, entity.DeriveStockStatus(tc.current, tc.optimal))
		})
	}
}

func TestStockItem_Refresh(t *testing.T) {
	now := time.Now()
	item := &entity.StockItem{CurrentStock: 10, OptimalStock: 100, Status: entity.StockStatusGood}

	item.Refresh(now)

	assert.Equal(t, entity.StockStatusLow, item.Status, "10/100 debe derivar LOW")
	assert.Equal(t, now, item.UpdatedAt)
}
