package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/forkast/branch-ops/internal/application/auth"
	"github.com/forkast/branch-ops/internal/application/dto"
)

// AuthHandler maneja autenticación y alta de sucursales.
type AuthHandler struct {
	uc *auth.UseCase
}

// NewAuthHandler construye el handler.
func NewAuthHandler(uc *auth.UseCase) *AuthHandler {
	return &AuthHandler{uc: uc}
}

// Login godoc
// @Summary      Login de sucursal
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        body  body  dto.LoginRequest  true  "branch, access_key"
// @Success      200   {object}  dto.LoginResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      401   {object}  dto.ErrorResponse
// @Router       /api/auth/login [post]
func (h *AuthHandler) Login(c *fiber.Ctx) error {
	var in dto.LoginRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	resp, err := h.uc.Login(c.Context(), in)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(resp)
}

// Register godoc
// @Summary      Alta de sucursal (admin)
// @Tags         auth
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.RegisterBranchRequest  true  "name, access_key, role"
// @Success      201   {object}  map[string]string
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/admin/branches [post]
func (h *AuthHandler) Register(c *fiber.Ctx) error {
	var in dto.RegisterBranchRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	branch, err := h.uc.Register(c.Context(), in)
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(fiber.Map{"id": branch.ID, "name": branch.Name, "role": branch.Role})
}

// ListBranches godoc
// @Summary      Listar sucursales (admin)
// @Tags         auth
// @Security     Bearer
// @Produce      json
// @Success      200  {array}  map[string]string
// @Router       /api/admin/branches [get]
func (h *AuthHandler) ListBranches(c *fiber.Ctx) error {
	var page dto.PageRequest
	if err := c.QueryParser(&page); err == nil {
		page.DefaultPage()
	}
	branches, err := h.uc.List(c.Context(), page.Limit, page.Offset)
	if err != nil {
		return respondError(c, err)
	}
	out := make([]fiber.Map, 0, len(branches))
	for _, b := range branches {
		out = append(out, fiber.Map{"id": b.ID, "name": b.Name, "role": b.Role, "approved": b.Approved})
	}
	return c.JSON(out)
}
