package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/forkast/branch-ops/internal/application/delivery"
	"github.com/forkast/branch-ops/internal/application/dto"
	"github.com/forkast/branch-ops/internal/domain/entity"
)

// DeliveryHandler maneja entregas.
type DeliveryHandler struct {
	uc *delivery.UseCase
}

// NewDeliveryHandler construye el handler.
func NewDeliveryHandler(uc *delivery.UseCase) *DeliveryHandler {
	return &DeliveryHandler{uc: uc}
}

// Schedule godoc
// @Summary      Programar entrega manual
// @Description  Para una orden OUTBOUND completada sin entrega; si ya existe
// @Description  se devuelve la existente.
// @Tags         deliveries
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.ScheduleDeliveryRequest  true  "order_id, address"
// @Success      201   {object}  dto.DeliveryResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/deliveries [post]
func (h *DeliveryHandler) Schedule(c *fiber.Ctx) error {
	var in dto.ScheduleDeliveryRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	d, err := h.uc.Schedule(c.Context(), in)
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(toDeliveryResponse(d))
}

// List godoc
// @Summary      Listar entregas
// @Tags         deliveries
// @Security     Bearer
// @Produce      json
// @Param        status  query  string  false  "PENDING | SCHEDULED | IN_TRANSIT | DELIVERED | CANCELLED"
// @Success      200  {array}  dto.DeliveryResponse
// @Router       /api/deliveries [get]
func (h *DeliveryHandler) List(c *fiber.Ctx) error {
	var page dto.PageRequest
	if err := c.QueryParser(&page); err == nil {
		page.DefaultPage()
	}
	list, err := h.uc.List(c.Context(), entity.DeliveryStatus(c.Query("status")), page.Limit, page.Offset)
	if err != nil {
		return respondError(c, err)
	}
	out := make([]dto.DeliveryResponse, 0, len(list))
	for _, d := range list {
		out = append(out, toDeliveryResponse(d))
	}
	return c.JSON(out)
}

// GetByID godoc
// @Summary      Obtener entrega
// @Tags         deliveries
// @Security     Bearer
// @Produce      json
// @Param        id  path  string  true  "ID de la entrega"
// @Success      200  {object}  dto.DeliveryResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/deliveries/{id} [get]
func (h *DeliveryHandler) GetByID(c *fiber.Ctx) error {
	d, err := h.uc.GetByID(c.Context(), c.Params("id"))
	if err != nil {
		return respondError(c, err)
	}
	if d == nil {
		return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Code: "NOT_FOUND", Message: "entrega no encontrada"})
	}
	return c.JSON(toDeliveryResponse(d))
}

// Advance godoc
// @Summary      Avanzar estado de la entrega
// @Description  Solo hacia adelante en PENDING → SCHEDULED → IN_TRANSIT →
// @Description  DELIVERED; CANCELLED desde cualquier estado no terminal.
// @Tags         deliveries
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        id    path  string  true  "ID de la entrega"
// @Param        body  body  dto.AdvanceDeliveryRequest  true  "status, driver, vehicle"
// @Success      200   {object}  dto.DeliveryResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/deliveries/{id}/status [put]
func (h *DeliveryHandler) Advance(c *fiber.Ctx) error {
	var in dto.AdvanceDeliveryRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	d, err := h.uc.Advance(c.Context(), c.Params("id"), in)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(toDeliveryResponse(d))
}
