package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/contrib/swagger"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/recover"

	"github.com/forkast/branch-ops/internal/application/auth"
	"github.com/forkast/branch-ops/internal/application/delivery"
	"github.com/forkast/branch-ops/internal/application/ledger"
	"github.com/forkast/branch-ops/internal/application/orders"
	"github.com/forkast/branch-ops/internal/application/ports"
	"github.com/forkast/branch-ops/internal/application/sales"
	"github.com/forkast/branch-ops/internal/application/usecase"
	infraai "github.com/forkast/branch-ops/internal/infrastructure/ai"
	"github.com/forkast/branch-ops/internal/infrastructure/cache"
	"github.com/forkast/branch-ops/internal/infrastructure/postgres"
	"github.com/forkast/branch-ops/internal/infrastructure/weather"
	httpRouter "github.com/forkast/branch-ops/internal/interfaces/http"
	"github.com/forkast/branch-ops/pkg/config"
	"github.com/forkast/branch-ops/pkg/jwt"
	"github.com/forkast/branch-ops/pkg/logger"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("cargar configuración: " + err.Error())
	}

	log := logger.New(logger.Config{
		Env:   cfg.App.Env,
		Level: "info",
	})
	log.Info().
		Str("env", cfg.App.Env).
		Str("app", cfg.App.Name).
		Msg("iniciando aplicación")

	ctx := context.Background()
	pool, err := postgres.NewPool(ctx, cfg.DB)
	if err != nil {
		log.Fatal().Err(err).Msg("conexión a PostgreSQL")
	}
	defer pool.Close()

	itemRepo := postgres.NewStockItemRepository(pool)
	movementRepo := postgres.NewMovementRepository(pool)
	orderRepo := postgres.NewOrderRepository(pool)
	deliveryRepo := postgres.NewDeliveryRepository(pool)
	txnRepo := postgres.NewTransactionRepository(pool)
	salesRepo := postgres.NewDailySalesRepository(pool)
	branchRepo := postgres.NewBranchRepository(pool)
	txRunner := postgres.NewTxRunner(pool)

	tokens, err := jwt.NewManager(cfg.JWT.Secret, cfg.JWT.Issuer, cfg.JWT.Expiration)
	if err != nil {
		log.Fatal().Err(err).Msg("configuración JWT")
	}

	var statsCache ports.StatsCache = cache.NewNoopCache()
	if cfg.Redis.Addr != "" {
		redisCache, err := cache.NewRedisCache(ctx, cfg.Redis.Addr, cfg.Redis.Password, cfg.Redis.DB)
		if err != nil {
			log.Warn().Err(err).Msg("Redis no disponible, panel sin caché")
		} else {
			defer redisCache.Close()
			statsCache = redisCache
		}
	}

	var weatherProvider ports.WeatherProvider
	if cfg.Weather.Enabled {
		weatherProvider = weather.NewOpenMeteoProvider(cfg.Weather.Latitude, cfg.Weather.Longitude)
	}

	ledgerUC := ledger.NewUseCase(txRunner)
	orderUC := orders.NewUseCase(txRunner, itemRepo, orderRepo)
	deliveryUC := delivery.NewUseCase(txRunner, deliveryRepo, orderRepo)
	salesUC := sales.NewUseCase(txRunner, txnRepo, itemRepo, salesRepo)
	stockUC := usecase.NewStockUseCase(txRunner, itemRepo, movementRepo)
	dashboardUC := usecase.NewDashboardUseCase(itemRepo, orderRepo, deliveryRepo, salesUC.Aggregator(), statsCache)
	advisorUC := usecase.NewAdvisorUseCase(
		infraai.NewGeminiService(cfg.Advisor.APIKey, cfg.Advisor.Models),
		weatherProvider, itemRepo, orderRepo,
	)
	authUC := auth.NewUseCase(branchRepo, tokens)

	app := fiber.New(fiber.Config{
		AppName:      cfg.App.Name,
		ReadTimeout:  time.Second * 10,
		WriteTimeout: time.Second * 10,
		IdleTimeout:  time.Second * 60,
	})
	app.Use(recover.New())

	// Swagger UI en local: http://localhost:<port>/docs
	app.Use(swagger.New(swagger.Config{
		BasePath: "/",
		FilePath: "./docs/swagger.json",
		Path:     "docs",
		Title:    "Branch Ops API",
	}))

	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok", "service": cfg.App.Name})
	})

	httpRouter.Router(app, httpRouter.RouterDeps{
		AuthUC:      authUC,
		StockUC:     stockUC,
		LedgerUC:    ledgerUC,
		OrderUC:     orderUC,
		DeliveryUC:  deliveryUC,
		SalesUC:     salesUC,
		DashboardUC: dashboardUC,
		AdvisorUC:   advisorUC,
		Tokens:      tokens,
	})

	go func() {
		if err := app.Listen(cfg.HTTP.Addr()); err != nil {
			log.Error().Err(err).Msg("servidor HTTP finalizado")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info().Msg("señal de apagado recibida, cerrando servidor...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := app.ShutdownWithContext(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("apagado del servidor")
	}

	log.Info().Msg("aplicación detenida")
}
