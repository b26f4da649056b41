package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/forkast/branch-ops/internal/application/delivery"
	"github.com/forkast/branch-ops/internal/application/dto"
	"github.com/forkast/branch-ops/internal/application/orders"
)

// AdminHandler acciones masivas del panel de la casa matriz. Cada fila se
// procesa aislada; el resultado reporta conteos y errores por fila.
type AdminHandler struct {
	orderUC    *orders.UseCase
	deliveryUC *delivery.UseCase
}

// NewAdminHandler construye el handler.
func NewAdminHandler(orderUC *orders.UseCase, deliveryUC *delivery.UseCase) *AdminHandler {
	return &AdminHandler{orderUC: orderUC, deliveryUC: deliveryUC}
}

func parseBulk(c *fiber.Ctx) (*dto.BulkRequest, error) {
	var in dto.BulkRequest
	if err := c.BodyParser(&in); err != nil || len(in.IDs) == 0 {
		return nil, c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "se requiere ids no vacío"})
	}
	return &in, nil
}

// ApproveOrders godoc
// @Summary      Aprobar pedidos de sucursal en lote (admin)
// @Description  Completa órdenes OUTBOUND PENDING: descuenta stock y programa
// @Description  la entrega. Órdenes INBOUND en la lista fallan por fila.
// @Tags         admin
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.BulkRequest  true  "ids"
// @Success      200   {object}  dto.BulkResult
// @Router       /api/admin/orders/approve [post]
func (h *AdminHandler) ApproveOrders(c *fiber.Ctx) error {
	in, errResp := parseBulk(c)
	if in == nil {
		return errResp
	}
	return c.JSON(h.orderUC.BulkApprove(c.Context(), in.IDs))
}

// ReceiveOrders godoc
// @Summary      Confirmar recepciones de proveedor en lote (admin)
// @Tags         admin
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.BulkRequest  true  "ids"
// @Success      200   {object}  dto.BulkResult
// @Router       /api/admin/orders/receive [post]
func (h *AdminHandler) ReceiveOrders(c *fiber.Ctx) error {
	in, errResp := parseBulk(c)
	if in == nil {
		return errResp
	}
	return c.JSON(h.orderUC.BulkReceive(c.Context(), in.IDs))
}

// CancelOrders godoc
// @Summary      Cancelar órdenes en lote (admin)
// @Description  Las COMPLETED se revierten con asiento compensatorio y su
// @Description  entrega no terminal se cancela en cascada.
// @Tags         admin
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.BulkRequest  true  "ids"
// @Success      200   {object}  dto.BulkResult
// @Router       /api/admin/orders/cancel [post]
func (h *AdminHandler) CancelOrders(c *fiber.Ctx) error {
	in, errResp := parseBulk(c)
	if in == nil {
		return errResp
	}
	return c.JSON(h.orderUC.BulkCancel(c.Context(), in.IDs))
}

// CancelDeliveries godoc
// @Summary      Cancelar entregas en lote (admin)
// @Description  Cancelar la entrega no toca stock ni el estado de la orden.
// @Tags         admin
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.BulkRequest  true  "ids"
// @Success      200   {object}  dto.BulkResult
// @Router       /api/admin/deliveries/cancel [post]
func (h *AdminHandler) CancelDeliveries(c *fiber.Ctx) error {
	in, errResp := parseBulk(c)
	if in == nil {
		return errResp
	}
	return c.JSON(h.deliveryUC.BulkCancel(c.Context(), in.IDs))
}
