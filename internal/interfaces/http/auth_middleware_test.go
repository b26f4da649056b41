package http_test

import (
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	apphttp "github.com/forkast/branch-ops/internal/interfaces/http"
	appjwt "github.com/forkast/branch-ops/pkg/jwt"
)

func buildTestApp(t *testing.T, tokens *appjwt.Manager) *fiber.App {
	t.Helper()
	app := fiber.New()
	api := app.Group("/api", apphttp.AuthMiddleware(tokens))
	api.Get("/me", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{
			"branch_id":   apphttp.GetBranchID(c),
			"branch_name": apphttp.GetBranchName(c),
			"role":        apphttp.GetRole(c),
		})
	})
	admin := api.Group("/admin", apphttp.RequireRole("admin"))
	admin.Get("/ping", func(c *fiber.Ctx) error {
		return c.SendStatus(fiber.StatusOK)
	})
	return app
}

func newTokens(t *testing.T) *appjwt.Manager {
	t.Helper()
	m, err := appjwt.NewManager("secreto-de-pruebas", "branch-ops", 60)
	require.NoError(t, err)
	return m
}

func tokenForRole(t *testing.T, m *appjwt.Manager, role string) string {
	t.Helper()
	token, err := m.Generate("branch-1", "Sucursal Centro", role)
	require.NoError(t, err)
	return token
}

func doRequest(t *testing.T, app *fiber.App, path, token string) int {
	t.Helper()
	req := httptest.NewRequest("GET", path, nil)
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	defer resp.Body.Close()
	return resp.StatusCode
}

func TestAuthMiddleware_SinHeaderEs401(t *testing.T) {
	app := buildTestApp(t, newTokens(t))
	assert.Equal(t, fiber.StatusUnauthorized, doRequest(t, app, "/api/me", ""))
}

func TestAuthMiddleware_FormatoInvalidoEs401(t *testing.T) {
	app := buildTestApp(t, newTokens(t))
	req := httptest.NewRequest("GET", "/api/me", nil)
	req.Header.Set("Authorization", "Basic abc123")
	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	defer resp.Body.Close()
	assert.Equal(t, fiber.StatusUnauthorized, resp.StatusCode)
}

func TestAuthMiddleware_TokenDeOtroSecretoEs401(t *testing.T) {
	tokens := newTokens(t)
	app := buildTestApp(t, tokens)

	otro, err := appjwt.NewManager("otro-secreto", "branch-ops", 60)
	require.NoError(t, err)
	ajeno := tokenForRole(t, otro, "branch")

	assert.Equal(t, fiber.StatusUnauthorized, doRequest(t, app, "/api/me", ajeno))
}

func TestAuthMiddleware_TokenValidoPasa(t *testing.T) {
	tokens := newTokens(t)
	app := buildTestApp(t, tokens)

	status := doRequest(t, app, "/api/me", tokenForRole(t, tokens, "branch"))
	assert.Equal(t, fiber.StatusOK, status)
}

func TestRequireRole_SucursalNoEntraARutaAdmin(t *testing.T) {
	tokens := newTokens(t)
	app := buildTestApp(t, tokens)

	status := doRequest(t, app, "/api/admin/ping", tokenForRole(t, tokens, "branch"))
	assert.Equal(t, fiber.StatusForbidden, status)
}

func TestRequireRole_AdminAccedeRutaAdmin(t *testing.T) {
	tokens := newTokens(t)
	app := buildTestApp(t, tokens)

	status := doRequest(t, app, "/api/admin/ping", tokenForRole(t, tokens, "admin"))
	assert.Equal(t, fiber.StatusOK, status)
}
