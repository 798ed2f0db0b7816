package dto

// RegisterRequest alta de usuario.
type RegisterRequest struct {
	Email        string `json:"email"`
	Password     string `json:"password"`
	FullName     string `json:"full_name"`
	DepartmentID string `json:"department_id"`
	Role         string `json:"role"`
}

// LoginRequest credenciales de acceso.
type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// AuthResponse token emitido tras login/registro.
type AuthResponse struct {
	Token        string   `json:"token"`
	UserID       string   `json:"user_id"`
	DepartmentID string   `json:"department_id"`
	Role         string   `json:"role"`
	Capabilities []string `json:"capabilities"`
}
