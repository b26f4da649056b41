package usecase

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/rs/zerolog/log"
	"github.com/shopspring/decimal"

	"github.com/forkast/branch-ops/internal/application/dto"
	"github.com/forkast/branch-ops/internal/application/ports"
	"github.com/forkast/branch-ops/internal/application/sales"
	"github.com/forkast/branch-ops/internal/domain/entity"
	"github.com/forkast/branch-ops/internal/domain/repository"
)

const statsCacheTTL = 30 * time.Second

// DashboardUseCase métricas agregadas del panel de la casa matriz.
type DashboardUseCase struct {
	itemRepo     repository.StockItemRepository
	orderRepo    repository.OrderRepository
	deliveryRepo repository.DeliveryRepository
	aggregator   *sales.Aggregator
	cache        ports.StatsCache
}

// NewDashboardUseCase construye el caso de uso.
func NewDashboardUseCase(itemRepo repository.StockItemRepository, orderRepo repository.OrderRepository, deliveryRepo repository.DeliveryRepository, aggregator *sales.Aggregator, cache ports.StatsCache) *DashboardUseCase {
	return &DashboardUseCase{
		itemRepo:     itemRepo,
		orderRepo:    orderRepo,
		deliveryRepo: deliveryRepo,
		aggregator:   aggregator,
		cache:        cache,
	}
}

// Stats arma las métricas del día. La respuesta se cachea unos segundos: el
// panel sondea con frecuencia y las cifras toleran ese rezago.
func (uc *DashboardUseCase) Stats(ctx context.Context) (*dto.DashboardStats, error) {
	key := statsCacheKey(time.Now())
	if raw, ok := uc.cache.Get(ctx, key); ok {
		var cached dto.DashboardStats
		if err := json.Unmarshal(raw, &cached); err == nil {
			return &cached, nil
		}
		log.Warn().Str("key", key).Msg("entrada de caché de panel corrupta, recomputando")
	}

	lowStock, err := uc.itemRepo.CountByStatus(entity.StockStatusLow)
	if err != nil {
		return nil, err
	}
	pending, err := uc.orderRepo.CountByStatus(entity.OrderPending)
	if err != nil {
		return nil, err
	}
	inTransit, err := uc.deliveryRepo.CountByStatus(entity.DeliveryInTransit)
	if err != nil {
		return nil, err
	}

	revenue := decimal.Zero
	today, err := uc.aggregator.Get(ctx, time.Now())
	if err != nil {
		return nil, err
	}
	if today != nil {
		revenue = today.Revenue
	}

	stats := &dto.DashboardStats{
		RevenueToday:      revenue,
		LowStockItems:     lowStock,
		PendingOrders:     pending,
		InTransitShipping: inTransit,
		GeneratedAt:       time.Now(),
	}
	if raw, err := json.Marshal(stats); err == nil {
		uc.cache.Set(ctx, key, raw, statsCacheTTL)
	}
	return stats, nil
}

func statsCacheKey(now time.Time) string {
	return fmt.Sprintf("dashboard:stats:%s", now.Format("2006-01-02"))
}
