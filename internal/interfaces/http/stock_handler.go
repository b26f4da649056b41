package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/forkast/branch-ops/internal/application/dto"
	"github.com/forkast/branch-ops/internal/application/ledger"
	"github.com/forkast/branch-ops/internal/application/usecase"
	"github.com/forkast/branch-ops/internal/domain/entity"
)

// StockHandler maneja el maestro de artículos y el libro de movimientos.
type StockHandler struct {
	stockUC  *usecase.StockUseCase
	ledgerUC *ledger.UseCase
}

// NewStockHandler construye el handler.
func NewStockHandler(stockUC *usecase.StockUseCase, ledgerUC *ledger.UseCase) *StockHandler {
	return &StockHandler{stockUC: stockUC, ledgerUC: ledgerUC}
}

// Create godoc
// @Summary      Crear artículo
// @Tags         items
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.CreateStockItemRequest  true  "name, current_stock, optimal_stock, cost, price"
// @Success      201   {object}  dto.StockItemResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Router       /api/items [post]
func (h *StockHandler) Create(c *fiber.Ctx) error {
	var in dto.CreateStockItemRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	item, err := h.stockUC.Create(c.Context(), in)
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(toStockItemResponse(item))
}

// List godoc
// @Summary      Listar artículos
// @Tags         items
// @Security     Bearer
// @Produce      json
// @Param        all  query  bool  false  "incluir inactivos"
// @Success      200  {array}  dto.StockItemResponse
// @Router       /api/items [get]
func (h *StockHandler) List(c *fiber.Ctx) error {
	var page dto.PageRequest
	if err := c.QueryParser(&page); err == nil {
		page.DefaultPage()
	}
	onlyActive := !c.QueryBool("all")
	items, err := h.stockUC.List(c.Context(), onlyActive, page.Limit, page.Offset)
	if err != nil {
		return respondError(c, err)
	}
	out := make([]dto.StockItemResponse, 0, len(items))
	for _, it := range items {
		out = append(out, toStockItemResponse(it))
	}
	return c.JSON(out)
}

// GetByID godoc
// @Summary      Obtener artículo
// @Tags         items
// @Security     Bearer
// @Produce      json
// @Param        id  path  string  true  "ID del artículo"
// @Success      200  {object}  dto.StockItemResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/items/{id} [get]
func (h *StockHandler) GetByID(c *fiber.Ctx) error {
	item, err := h.stockUC.GetByID(c.Context(), c.Params("id"))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(toStockItemResponse(item))
}

// Update godoc
// @Summary      Actualizar artículo
// @Description  Un cambio de current_stock genera un asiento ADJUST manual por
// @Description  el delta; el libro siempre concilia con el maestro.
// @Tags         items
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        id    path  string  true  "ID del artículo"
// @Param        body  body  dto.UpdateStockItemRequest  true  "campos a cambiar"
// @Success      200   {object}  dto.StockItemResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Router       /api/items/{id} [put]
func (h *StockHandler) Update(c *fiber.Ctx) error {
	var in dto.UpdateStockItemRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	item, err := h.stockUC.Update(c.Context(), c.Params("id"), in)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(toStockItemResponse(item))
}

// Delete godoc
// @Summary      Eliminar artículo
// @Description  Con asientos en el libro el borrado se degrada a desactivación.
// @Tags         items
// @Security     Bearer
// @Param        id  path  string  true  "ID del artículo"
// @Success      204
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/items/{id} [delete]
func (h *StockHandler) Delete(c *fiber.Ctx) error {
	if err := h.stockUC.Delete(c.Context(), c.Params("id")); err != nil {
		return respondError(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}

// Recalculate godoc
// @Summary      Recalcular estados derivados (admin)
// @Tags         items
// @Security     Bearer
// @Produce      json
// @Success      200  {object}  map[string]int
// @Router       /api/admin/items/recalculate [post]
func (h *StockHandler) Recalculate(c *fiber.Ctx) error {
	changed, err := h.stockUC.RecalculateStatuses(c.Context())
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(fiber.Map{"changed": changed})
}

// RecordMovement godoc
// @Summary      Registrar asiento manual
// @Description  IN/OUT con magnitud positiva; ADJUST con delta con signo.
// @Tags         movements
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.RecordMovementRequest  true  "item_id, direction, quantity, reason"
// @Success      201   {object}  dto.MovementResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/movements [post]
func (h *StockHandler) RecordMovement(c *fiber.Ctx) error {
	var in dto.RecordMovementRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	m, err := h.ledgerUC.RecordMovement(c.Context(), ledger.MovementInput{
		ItemID:    in.ItemID,
		Direction: entity.MovementDirection(in.Direction),
		Quantity:  in.Quantity,
		Reason:    in.Reason,
	})
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(toMovementResponse(m))
}

// LatestMovements godoc
// @Summary      Feed en vivo del libro
// @Tags         movements
// @Security     Bearer
// @Produce      json
// @Param        n  query  int  false  "cantidad (defecto 10, máx 100)"
// @Success      200  {array}  dto.MovementResponse
// @Router       /api/movements [get]
func (h *StockHandler) LatestMovements(c *fiber.Ctx) error {
	movements, err := h.stockUC.LatestMovements(c.Context(), c.QueryInt("n", 10))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(toMovementResponses(movements))
}

// MovementsByItem godoc
// @Summary      Historial de asientos de un artículo
// @Tags         movements
// @Security     Bearer
// @Produce      json
// @Param        id  path  string  true  "ID del artículo"
// @Success      200  {array}  dto.MovementResponse
// @Router       /api/items/{id}/movements [get]
func (h *StockHandler) MovementsByItem(c *fiber.Ctx) error {
	var page dto.PageRequest
	if err := c.QueryParser(&page); err == nil {
		page.DefaultPage()
	}
	movements, err := h.stockUC.MovementsByItem(c.Context(), c.Params("id"), page.Limit, page.Offset)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(toMovementResponses(movements))
}

// UndoMovement godoc
// @Summary      Deshacer asiento manual (admin)
// @Description  Solo asientos sin referencia causal; revierte el efecto sobre
// @Description  el stock y elimina la fila del libro.
// @Tags         movements
// @Security     Bearer
// @Param        id  path  string  true  "ID del asiento"
// @Success      204
// @Failure      404  {object}  dto.ErrorResponse
// @Failure      409  {object}  dto.ErrorResponse
// @Router       /api/admin/movements/{id}/undo [post]
func (h *StockHandler) UndoMovement(c *fiber.Ctx) error {
	if err := h.ledgerUC.UndoManualEntry(c.Context(), c.Params("id")); err != nil {
		return respondError(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}
