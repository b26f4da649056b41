package dto

// LoginRequest body para POST /api/auth/login. Las sucursales se autentican
// con su nombre y clave de acceso.
type LoginRequest struct {
	Branch    string `json:"branch"`
	AccessKey string `json:"access_key"`
}

// LoginResponse token emitido tras autenticación.
type LoginResponse struct {
	Token    string `json:"token"`
	BranchID string `json:"branch_id"`
	Branch   string `json:"branch"`
	Role     string `json:"role"`
}

// RegisterBranchRequest alta de sucursal (solo admin).
type RegisterBranchRequest struct {
	Name      string `json:"name"`
	AccessKey string `json:"access_key"`
	Role      string `json:"role,omitempty"`
}
