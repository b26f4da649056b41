package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/forkast/branch-ops/internal/application/dto"
	"github.com/forkast/branch-ops/internal/application/usecase"
)

// AdvisorHandler maneja el asesor operativo y el clima.
type AdvisorHandler struct {
	uc *usecase.AdvisorUseCase
}

// NewAdvisorHandler construye el handler.
func NewAdvisorHandler(uc *usecase.AdvisorUseCase) *AdvisorHandler {
	return &AdvisorHandler{uc: uc}
}

// Advise godoc
// @Summary      Consejo operativo
// @Description  Responde con contexto del estado actual (stock bajo, órdenes
// @Description  pendientes, clima). Si el modelo no está disponible devuelve
// @Description  el consejo de contingencia con source=fallback.
// @Tags         advisor
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.AdviceRequest  true  "question"
// @Success      200   {object}  dto.AdviceResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Router       /api/advisor/advice [post]
func (h *AdvisorHandler) Advise(c *fiber.Ctx) error {
	var in dto.AdviceRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	resp, err := h.uc.Advise(c.Context(), in)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(resp)
}

// Weather godoc
// @Summary      Clima actual
// @Tags         advisor
// @Security     Bearer
// @Produce      json
// @Success      200  {object}  dto.WeatherDTO
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/advisor/weather [get]
func (h *AdvisorHandler) Weather(c *fiber.Ctx) error {
	w, err := h.uc.Weather(c.Context())
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(w)
}
