package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/forkast/branch-ops/internal/application/dto"
	"github.com/forkast/branch-ops/internal/application/orders"
	"github.com/forkast/branch-ops/internal/domain/entity"
)

// OrderHandler maneja el ciclo de vida de órdenes.
type OrderHandler struct {
	uc *orders.UseCase
}

// NewOrderHandler construye el handler.
func NewOrderHandler(uc *orders.UseCase) *OrderHandler {
	return &OrderHandler{uc: uc}
}

// Create godoc
// @Summary      Crear orden (PENDING)
// @Description  Crear nunca toca stock; la mutación ocurre al confirmar.
// @Tags         orders
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.CreateOrderRequest  true  "item_id, quantity, direction"
// @Success      201   {object}  dto.OrderResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Router       /api/orders [post]
func (h *OrderHandler) Create(c *fiber.Ctx) error {
	var in dto.CreateOrderRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	if in.Branch == "" {
		in.Branch = GetBranchName(c)
	}
	order, err := h.uc.Create(c.Context(), in)
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(toOrderResponse(order))
}

// List godoc
// @Summary      Listar órdenes
// @Tags         orders
// @Security     Bearer
// @Produce      json
// @Param        status     query  string  false  "PENDING | COMPLETED | CANCELLED"
// @Param        direction  query  string  false  "OUTBOUND | INBOUND"
// @Success      200  {array}  dto.OrderResponse
// @Router       /api/orders [get]
func (h *OrderHandler) List(c *fiber.Ctx) error {
	var page dto.PageRequest
	if err := c.QueryParser(&page); err == nil {
		page.DefaultPage()
	}
	list, err := h.uc.List(c.Context(),
		entity.OrderStatus(c.Query("status")),
		entity.OrderDirection(c.Query("direction")),
		page.Limit, page.Offset,
	)
	if err != nil {
		return respondError(c, err)
	}
	out := make([]dto.OrderResponse, 0, len(list))
	for _, o := range list {
		out = append(out, toOrderResponse(o))
	}
	return c.JSON(out)
}

// GetByID godoc
// @Summary      Obtener orden
// @Tags         orders
// @Security     Bearer
// @Produce      json
// @Param        id  path  string  true  "ID de la orden"
// @Success      200  {object}  dto.OrderResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/orders/{id} [get]
func (h *OrderHandler) GetByID(c *fiber.Ctx) error {
	order, err := h.uc.GetByID(c.Context(), c.Params("id"))
	if err != nil {
		return respondError(c, err)
	}
	if order == nil {
		return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Code: "NOT_FOUND", Message: "orden no encontrada"})
	}
	return c.JSON(toOrderResponse(order))
}

// Confirm godoc
// @Summary      Confirmar orden (PENDING → COMPLETED)
// @Description  Aplica el asiento al libro exactamente una vez; una orden
// @Description  OUTBOUND genera además su entrega SCHEDULED.
// @Tags         orders
// @Security     Bearer
// @Produce      json
// @Param        id  path  string  true  "ID de la orden"
// @Success      200  {object}  dto.OrderResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Failure      409  {object}  dto.ErrorResponse
// @Router       /api/orders/{id}/confirm [put]
func (h *OrderHandler) Confirm(c *fiber.Ctx) error {
	order, err := h.uc.Complete(c.Context(), c.Params("id"))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(toOrderResponse(order))
}

// Cancel godoc
// @Summary      Cancelar orden
// @Description  Una orden COMPLETED se cancela con un asiento compensatorio
// @Description  exacto y la cancelación en cascada de su entrega no terminal.
// @Tags         orders
// @Security     Bearer
// @Produce      json
// @Param        id  path  string  true  "ID de la orden"
// @Success      200  {object}  dto.OrderResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Failure      409  {object}  dto.ErrorResponse
// @Router       /api/orders/{id}/cancel [post]
func (h *OrderHandler) Cancel(c *fiber.Ctx) error {
	order, err := h.uc.Cancel(c.Context(), c.Params("id"))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(toOrderResponse(order))
}

// EditQuantity godoc
// @Summary      Editar cantidad de la orden
// @Description  Sobre una orden COMPLETED el delta se materializa como ADJUST.
// @Tags         orders
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        id    path  string  true  "ID de la orden"
// @Param        body  body  dto.EditOrderQuantityRequest  true  "quantity"
// @Success      200   {object}  dto.OrderResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/orders/{id}/quantity [patch]
func (h *OrderHandler) EditQuantity(c *fiber.Ctx) error {
	var in dto.EditOrderQuantityRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	order, err := h.uc.EditQuantity(c.Context(), c.Params("id"), in.Quantity)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(toOrderResponse(order))
}
