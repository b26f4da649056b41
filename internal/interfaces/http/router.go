package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/forkast/branch-ops/internal/application/auth"
	"github.com/forkast/branch-ops/internal/application/delivery"
	"github.com/forkast/branch-ops/internal/application/ledger"
	"github.com/forkast/branch-ops/internal/application/orders"
	"github.com/forkast/branch-ops/internal/application/sales"
	"github.com/forkast/branch-ops/internal/application/usecase"
	"github.com/forkast/branch-ops/internal/domain/entity"
	appjwt "github.com/forkast/branch-ops/pkg/jwt"
)

// RouterDeps dependencias para el router.
type RouterDeps struct {
	AuthUC      *auth.UseCase
	StockUC     *usecase.StockUseCase
	LedgerUC    *ledger.UseCase
	OrderUC     *orders.UseCase
	DeliveryUC  *delivery.UseCase
	SalesUC     *sales.UseCase
	DashboardUC *usecase.DashboardUseCase
	AdvisorUC   *usecase.AdvisorUseCase
	Tokens      *appjwt.Manager
}

// Router registra las rutas de la API.
func Router(app *fiber.App, deps RouterDeps) {
	api := app.Group("/api")

	// Auth (público)
	authHandler := NewAuthHandler(deps.AuthUC)
	api.Post("/auth/login", authHandler.Login)

	// Rutas protegidas (requieren Bearer Token)
	protected := api.Group("/", AuthMiddleware(deps.Tokens))

	// Artículos y libro de movimientos
	stockHandler := NewStockHandler(deps.StockUC, deps.LedgerUC)
	items := protected.Group("/items")
	items.Post("/", stockHandler.Create)
	items.Get("/", stockHandler.List)
	items.Get("/:id", stockHandler.GetByID)
	items.Put("/:id", stockHandler.Update)
	items.Delete("/:id", stockHandler.Delete)
	items.Get("/:id/movements", stockHandler.MovementsByItem)

	movements := protected.Group("/movements")
	movements.Post("/", stockHandler.RecordMovement)
	movements.Get("/", stockHandler.LatestMovements)

	// Órdenes
	orderHandler := NewOrderHandler(deps.OrderUC)
	ordersGroup := protected.Group("/orders")
	ordersGroup.Post("/", orderHandler.Create)
	ordersGroup.Get("/", orderHandler.List)
	ordersGroup.Get("/:id", orderHandler.GetByID)
	ordersGroup.Put("/:id/confirm", orderHandler.Confirm)
	ordersGroup.Post("/:id/cancel", orderHandler.Cancel)
	ordersGroup.Patch("/:id/quantity", orderHandler.EditQuantity)

	// Entregas
	deliveryHandler := NewDeliveryHandler(deps.DeliveryUC)
	deliveries := protected.Group("/deliveries")
	deliveries.Post("/", deliveryHandler.Schedule)
	deliveries.Get("/", deliveryHandler.List)
	deliveries.Get("/:id", deliveryHandler.GetByID)
	deliveries.Put("/:id/status", deliveryHandler.Advance)

	// Transacciones
	txnHandler := NewTransactionHandler(deps.SalesUC)
	transactions := protected.Group("/transactions")
	transactions.Post("/", txnHandler.Create)
	transactions.Get("/", txnHandler.List)
	transactions.Get("/:id", txnHandler.GetByID)
	transactions.Put("/:id/confirm", txnHandler.Confirm)
	transactions.Post("/:id/cancel", txnHandler.Cancel)

	// Reportes
	reportHandler := NewReportHandler(deps.SalesUC.Aggregator(), deps.DashboardUC)
	reports := protected.Group("/reports")
	reports.Get("/daily", reportHandler.DailySales)
	reports.Get("/dashboard", reportHandler.Dashboard)

	// Asesor
	advisorHandler := NewAdvisorHandler(deps.AdvisorUC)
	advisor := protected.Group("/advisor")
	advisor.Post("/advice", advisorHandler.Advise)
	advisor.Get("/weather", advisorHandler.Weather)

	// Panel de administración (solo rol admin)
	adminHandler := NewAdminHandler(deps.OrderUC, deps.DeliveryUC)
	admin := protected.Group("/admin", RequireRole(entity.RoleAdmin))
	admin.Post("/orders/approve", adminHandler.ApproveOrders)
	admin.Post("/orders/receive", adminHandler.ReceiveOrders)
	admin.Post("/orders/cancel", adminHandler.CancelOrders)
	admin.Post("/deliveries/cancel", adminHandler.CancelDeliveries)
	admin.Post("/movements/:id/undo", stockHandler.UndoMovement)
	admin.Post("/items/recalculate", stockHandler.Recalculate)
	admin.Post("/reports/daily/recompute", reportHandler.Recompute)
	admin.Post("/branches", authHandler.Register)
	admin.Get("/branches", authHandler.ListBranches)
}
