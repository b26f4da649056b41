package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/forkast/branch-ops/internal/application/dto"
	"github.com/forkast/branch-ops/internal/application/sales"
	"github.com/forkast/branch-ops/internal/domain/entity"
)

// TransactionHandler maneja transacciones comerciales.
type TransactionHandler struct {
	uc *sales.UseCase
}

// NewTransactionHandler construye el handler.
func NewTransactionHandler(uc *sales.UseCase) *TransactionHandler {
	return &TransactionHandler{uc: uc}
}

// Create godoc
// @Summary      Crear transacción (PENDING)
// @Tags         transactions
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.CreateTransactionRequest  true  "type, lines, tax_amount"
// @Success      201   {object}  dto.TransactionResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Router       /api/transactions [post]
func (h *TransactionHandler) Create(c *fiber.Ctx) error {
	var in dto.CreateTransactionRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	t, err := h.uc.Create(c.Context(), in)
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(toTransactionResponse(t))
}

// List godoc
// @Summary      Listar transacciones
// @Tags         transactions
// @Security     Bearer
// @Produce      json
// @Param        status  query  string  false  "PENDING | CONFIRMED | CANCELLED"
// @Success      200  {array}  dto.TransactionResponse
// @Router       /api/transactions [get]
func (h *TransactionHandler) List(c *fiber.Ctx) error {
	var page dto.PageRequest
	if err := c.QueryParser(&page); err == nil {
		page.DefaultPage()
	}
	list, err := h.uc.List(c.Context(), entity.TransactionStatus(c.Query("status")), page.Limit, page.Offset)
	if err != nil {
		return respondError(c, err)
	}
	out := make([]dto.TransactionResponse, 0, len(list))
	for _, t := range list {
		out = append(out, toTransactionResponse(t))
	}
	return c.JSON(out)
}

// GetByID godoc
// @Summary      Obtener transacción
// @Tags         transactions
// @Security     Bearer
// @Produce      json
// @Param        id  path  string  true  "ID de la transacción"
// @Success      200  {object}  dto.TransactionResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/transactions/{id} [get]
func (h *TransactionHandler) GetByID(c *fiber.Ctx) error {
	t, err := h.uc.GetByID(c.Context(), c.Params("id"))
	if err != nil {
		return respondError(c, err)
	}
	if t == nil {
		return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Code: "NOT_FOUND", Message: "transacción no encontrada"})
	}
	return c.JSON(toTransactionResponse(t))
}

// Confirm godoc
// @Summary      Confirmar transacción
// @Description  Aplica un asiento por línea exactamente una vez; reconfirmar
// @Description  es un no-op. Una SALE confirmada recomputa el agregado del día.
// @Tags         transactions
// @Security     Bearer
// @Produce      json
// @Param        id  path  string  true  "ID de la transacción"
// @Success      200  {object}  dto.TransactionResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Failure      409  {object}  dto.ErrorResponse
// @Router       /api/transactions/{id}/confirm [put]
func (h *TransactionHandler) Confirm(c *fiber.Ctx) error {
	t, err := h.uc.Confirm(c.Context(), c.Params("id"))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(toTransactionResponse(t))
}

// Cancel godoc
// @Summary      Cancelar transacción pendiente
// @Description  Solo PENDING; la compensación de una CONFIRMED es un REFUND.
// @Tags         transactions
// @Security     Bearer
// @Produce      json
// @Param        id  path  string  true  "ID de la transacción"
// @Success      200  {object}  dto.TransactionResponse
// @Failure      409  {object}  dto.ErrorResponse
// @Router       /api/transactions/{id}/cancel [post]
func (h *TransactionHandler) Cancel(c *fiber.Ctx) error {
	t, err := h.uc.CancelPending(c.Context(), c.Params("id"))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(toTransactionResponse(t))
}
