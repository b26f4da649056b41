package http

import (
	"errors"

	"github.com/gofiber/fiber/v2"

	"github.com/forkast/branch-ops/internal/application/dto"
	"github.com/forkast/branch-ops/internal/domain"
	"github.com/forkast/branch-ops/internal/domain/entity"
)

// respondError mapea los errores centinela del dominio a códigos HTTP. Todos
// los handlers delegan aquí para que el mismo error signifique siempre el
// mismo status.
func respondError(c *fiber.Ctx, err error) error {
	switch {
	case errors.Is(err, domain.ErrInvalidInput):
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "datos inválidos"})
	case errors.Is(err, domain.ErrUnauthorized):
		return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Code: "UNAUTHORIZED", Message: "credenciales inválidas"})
	case errors.Is(err, domain.ErrForbidden):
		return c.Status(fiber.StatusForbidden).JSON(dto.ErrorResponse{Code: "FORBIDDEN", Message: "acceso denegado"})
	case errors.Is(err, domain.ErrNotFound):
		return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Code: "NOT_FOUND", Message: "recurso no encontrado"})
	case errors.Is(err, domain.ErrDuplicate):
		return c.Status(fiber.StatusConflict).JSON(dto.ErrorResponse{Code: "DUPLICATE", Message: "el recurso ya existe"})
	case errors.Is(err, domain.ErrConflict):
		return c.Status(fiber.StatusConflict).JSON(dto.ErrorResponse{Code: "CONFLICT", Message: "transición de estado inválida"})
	case errors.Is(err, domain.ErrInsufficientStock):
		return c.Status(fiber.StatusConflict).JSON(dto.ErrorResponse{Code: "INSUFFICIENT_STOCK", Message: "stock insuficiente"})
	case errors.Is(err, domain.ErrItemInUse):
		return c.Status(fiber.StatusConflict).JSON(dto.ErrorResponse{Code: "ITEM_IN_USE", Message: "artículo referenciado por el libro"})
	default:
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
}

// ── Mapeos entidad → DTO de respuesta ─────────────────────────────────────────

func toStockItemResponse(it *entity.StockItem) dto.StockItemResponse {
	return dto.StockItemResponse{
		ID:           it.ID,
		Name:         it.Name,
		Category:     it.Category,
		Code:         it.Code,
		CurrentStock: it.CurrentStock,
		OptimalStock: it.OptimalStock,
		Status:       string(it.Status),
		Cost:         it.Cost,
		Price:        it.Price,
		Active:       it.Active,
		UpdatedAt:    it.UpdatedAt,
	}
}

func toMovementResponse(m *entity.Movement) dto.MovementResponse {
	return dto.MovementResponse{
		ID:        m.ID,
		ItemID:    m.ItemID,
		ItemName:  m.ItemName,
		Direction: string(m.Direction),
		Quantity:  m.Quantity,
		Reason:    m.Reason,
		CausalRef: m.CausalRef,
		CreatedAt: m.CreatedAt,
	}
}

func toMovementResponses(ms []*entity.Movement) []dto.MovementResponse {
	out := make([]dto.MovementResponse, 0, len(ms))
	for _, m := range ms {
		out = append(out, toMovementResponse(m))
	}
	return out
}

func toOrderResponse(o *entity.Order) dto.OrderResponse {
	return dto.OrderResponse{
		ID:        o.ID,
		ItemID:    o.ItemID,
		ItemName:  o.ItemName,
		Quantity:  o.Quantity,
		Direction: string(o.Direction),
		Status:    string(o.Status),
		Branch:    o.Branch,
		CreatedAt: o.CreatedAt,
	}
}

func toDeliveryResponse(d *entity.Delivery) dto.DeliveryResponse {
	return dto.DeliveryResponse{
		ID:          d.ID,
		OrderID:     d.OrderID,
		ItemName:    d.ItemName,
		Address:     d.Address,
		Driver:      d.Driver,
		Vehicle:     d.Vehicle,
		Status:      string(d.Status),
		ScheduledAt: d.ScheduledAt,
		DeliveredAt: d.DeliveredAt,
	}
}

func toTransactionResponse(t *entity.Transaction) dto.TransactionResponse {
	lines := make([]dto.TransactionLineResponse, 0, len(t.Lines))
	for _, l := range t.Lines {
		lines = append(lines, dto.TransactionLineResponse{
			ItemID:    l.ItemID,
			ItemName:  l.ItemName,
			Quantity:  l.Quantity,
			UnitPrice: l.UnitPrice,
			LineTotal: l.LineTotal,
		})
	}
	return dto.TransactionResponse{
		ID:          t.ID,
		Type:        string(t.Type),
		Status:      string(t.Status),
		Partner:     t.Partner,
		TotalAmount: t.TotalAmount,
		TaxAmount:   t.TaxAmount,
		FinalAmount: t.FinalAmount,
		Date:        t.Date,
		Lines:       lines,
	}
}
