package jwt_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/forkast/branch-ops/pkg/jwt"
)

func TestNewManager_RechazaSecretoVacio(t *testing.T) {
	_, err := jwt.NewManager("", "branch-ops", 60)
	assert.Error(t, err)
}

func TestGenerateYParse_RoundTrip(t *testing.T) {
	m, err := jwt.NewManager("secreto-de-prueba-largo", "branch-ops", 60)
	require.NoError(t, err)

	token, err := m.Generate("branch-1", "Sucursal Centro", "admin")
	require.NoError(t, err)
	require.NotEmpty(t, token)

	claims, err := m.Parse(token)
	require.NoError(t, err)
	assert.Equal(t, "branch-1", claims.BranchID)
	assert.Equal(t, "Sucursal Centro", claims.BranchName)
	assert.Equal(t, "admin", claims.Role)
	assert.Equal(t, "branch-ops", claims.Issuer)
	assert.Equal(t, "branch-1", claims.Subject)
}

func TestParse_RechazaFirmaDeOtroSecreto(t *testing.T) {
	a, err := jwt.NewManager("secreto-a", "branch-ops", 60)
	require.NoError(t, err)
	b, err := jwt.NewManager("secreto-b", "branch-ops", 60)
	require.NoError(t, err)

	token, err := a.Generate("branch-1", "Sucursal Centro", "branch")
	require.NoError(t, err)

	_, err = b.Parse(token)
	assert.Error(t, err)
}

func TestParse_RechazaBasura(t *testing.T) {
	m, err := jwt.NewManager("secreto-de-prueba", "branch-ops", 60)
	require.NoError(t, err)

	_, err = m.Parse("no-es-un-jwt")
	assert.Error(t, err)
}

func TestNewManager_ExpiracionPorDefecto(t *testing.T) {
	m, err := jwt.NewManager("secreto", "branch-ops", 0)
	require.NoError(t, err)

	token, err := m.Generate("branch-1", "Sucursal Centro", "branch")
	require.NoError(t, err)
	claims, err := m.Parse(token)
	require.NoError(t, err)
	assert.True(t, claims.ExpiresAt.After(claims.IssuedAt.Time), "el token expira en el futuro")
}
