package jwt

import (
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// Claims incluye los claims estándar JWT más los campos propios de la aplicación.
// Role viaja en el token para que el middleware RBAC decida sin consultar la DB.
type Claims struct {
	jwt.RegisteredClaims
	BranchID   string `json:"branch_id"`
	BranchName string `json:"branch_name"`
	Role       string `json:"role"` // "admin" | "branch"
}

// Manager firma y valida tokens con una configuración fija.
type Manager struct {
	secret     string
	issuer     string
	expiration time.Duration
}

// NewManager crea el manager. Falla si el secreto está vacío.
func NewManager(secret, issuer string, expMinutes int) (*Manager, error) {
	if secret == "" {
		return nil, fmt.Errorf("jwt: secret vacío")
	}
	if expMinutes <= 0 {
		expMinutes = 60
	}
	return &Manager{
		secret:     secret,
		issuer:     issuer,
		expiration: time.Duration(expMinutes) * time.Minute,
	}, nil
}

// Generate genera un token JWT firmado con la identidad de la sucursal.
func (m *Manager) Generate(branchID, branchName, role string) (string, error) {
	now := time.Now()
	claims := Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    m.issuer,
			Subject:   branchID,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(m.expiration)),
		},
		BranchID:   branchID,
		BranchName: branchName,
		Role:       role,
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(m.secret))
}

// Parse valida el token y devuelve sus claims.
// Retorna error si el token es inválido, expirado o tiene firma incorrecta.
func (m *Manager) Parse(tokenString string) (*Claims, error) {
	token, err := jwt.ParseWithClaims(tokenString, &Claims{}, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("método de firma inesperado: %v", t.Header["alg"])
		}
		return []byte(m.secret), nil
	})
	if err != nil {
		return nil, err
	}
	claims, ok := token.Claims.(*Claims)
	if !ok || !token.Valid {
		return nil, fmt.Errorf("claims inválidos")
	}
	return claims, nil
}
