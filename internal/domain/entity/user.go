package entity

import "time"

// Roles de usuario de la plataforma. El mapa rol → capacidades vive en application/auth.
const (
	RoleAdmin            = "admin"
	RoleIndenter         = "indenter"
	RoleStoreIncharge    = "store_incharge"
	RoleCentralRegistrar = "central_registrar"
	RoleAuditor          = "auditor"
)

// User representa un usuario del sistema.
type User struct {
	ID           string
	DepartmentID string
	Email        string
	PasswordHash string
	FullName     string
	Role         string
	CreatedAt    time.Time
	UpdatedAt    time.Time
}
