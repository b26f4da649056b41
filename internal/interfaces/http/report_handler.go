package http

import (
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/forkast/branch-ops/internal/application/dto"
	"github.com/forkast/branch-ops/internal/application/sales"
	"github.com/forkast/branch-ops/internal/application/usecase"
	"github.com/forkast/branch-ops/internal/domain/entity"
	"github.com/shopspring/decimal"
)

// ReportHandler maneja reportes de ventas diarias y estadísticas del panel.
type ReportHandler struct {
	aggregator  *sales.Aggregator
	dashboardUC *usecase.DashboardUseCase
}

// NewReportHandler construye el handler.
func NewReportHandler(aggregator *sales.Aggregator, dashboardUC *usecase.DashboardUseCase) *ReportHandler {
	return &ReportHandler{aggregator: aggregator, dashboardUC: dashboardUC}
}

const dateLayout = "2006-01-02"

func parseDate(c *fiber.Ctx, key string, def time.Time) (time.Time, bool) {
	raw := c.Query(key)
	if raw == "" {
		return def, true
	}
	t, err := time.Parse(dateLayout, raw)
	if err != nil {
		return time.Time{}, false
	}
	return t, true
}

// DailySales godoc
// @Summary      Ventas diarias
// @Description  Sin parámetros devuelve el agregado de hoy; con from/to el
// @Description  rango inclusive.
// @Tags         reports
// @Security     Bearer
// @Produce      json
// @Param        from  query  string  false  "YYYY-MM-DD"
// @Param        to    query  string  false  "YYYY-MM-DD"
// @Success      200  {array}  dto.DailySalesResponse
// @Failure      400  {object}  dto.ErrorResponse
// @Router       /api/reports/daily [get]
func (h *ReportHandler) DailySales(c *fiber.Ctx) error {
	now := time.Now()
	from, okF := parseDate(c, "from", now)
	to, okT := parseDate(c, "to", from)
	if !okF || !okT {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "fecha inválida, formato YYYY-MM-DD"})
	}
	rows, err := h.aggregator.ListRange(c.Context(), from, to)
	if err != nil {
		return respondError(c, err)
	}
	out := make([]dto.DailySalesResponse, 0, len(rows))
	for _, r := range rows {
		out = append(out, dto.DailySalesResponse{
			Date:     r.Date.Format(dateLayout),
			ItemName: r.ItemName,
			Revenue:  r.Revenue,
		})
	}
	return c.JSON(out)
}

// Recompute godoc
// @Summary      Recomputar ventas del día (admin)
// @Description  Sobrescribe el agregado sumando desde las SALE confirmadas de
// @Description  la fecha. Idempotente.
// @Tags         reports
// @Security     Bearer
// @Produce      json
// @Param        date  query  string  false  "YYYY-MM-DD (defecto hoy)"
// @Success      200  {object}  dto.DailySalesResponse
// @Failure      400  {object}  dto.ErrorResponse
// @Router       /api/admin/reports/daily/recompute [post]
func (h *ReportHandler) Recompute(c *fiber.Ctx) error {
	date, ok := parseDate(c, "date", time.Now())
	if !ok {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "fecha inválida, formato YYYY-MM-DD"})
	}
	if err := h.aggregator.Recompute(c.Context(), date); err != nil {
		return respondError(c, err)
	}
	row, err := h.aggregator.Get(c.Context(), date)
	if err != nil {
		return respondError(c, err)
	}
	resp := dto.DailySalesResponse{
		Date:     sales.Truncate(date).Format(dateLayout),
		ItemName: entity.DailySalesAllItems,
		Revenue:  decimal.Zero,
	}
	if row != nil {
		resp.Revenue = row.Revenue
	}
	return c.JSON(resp)
}

// Dashboard godoc
// @Summary      Estadísticas del panel
// @Tags         reports
// @Security     Bearer
// @Produce      json
// @Success      200  {object}  dto.DashboardStats
// @Router       /api/reports/dashboard [get]
func (h *ReportHandler) Dashboard(c *fiber.Ctx) error {
	stats, err := h.dashboardUC.Stats(c.Context())
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(stats)
}
