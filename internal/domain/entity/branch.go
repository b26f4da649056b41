package entity

import "time"

// Roles de sucursal/usuario usados por el middleware RBAC.
const (
	RoleAdmin  = "admin"  // casa matriz: acciones masivas y deshacer
	RoleBranch = "branch" // sucursal: órdenes y consultas
)

// Branch es una sucursal/franquiciado: el principal de autenticación y la
// etiqueta de origen de las órdenes. AccessKeyHash guarda el hash bcrypt de la
// clave de acceso; la clave en claro nunca se persiste.
type Branch struct {
	ID            string
	Name          string
	AccessKeyHash string
	Role          string
	Approved      bool
	CreatedAt     time.Time
}
