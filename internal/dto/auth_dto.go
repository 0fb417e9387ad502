package dto

// ─── Request DTOs ────────────────────────────────────────────────────────────

// RegistroRequest binds from JSON or multipart/form-data; the optional profile
// image travels as the "profileImage" file part.
type RegistroRequest struct {
	Name     string `json:"name"     form:"name"     validate:"required,min=2,max=100"`
	Email    string `json:"email"    form:"email"    validate:"required,email"`
	Password string `json:"password" form:"password" validate:"required,max=72"`
	Role     string `json:"role"     form:"role"     validate:"omitempty,oneof=admin user"`
}

type LoginRequest struct {
	Email    string `json:"email"    validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

// ─── Response DTOs ───────────────────────────────────────────────────────────

type UsuarioResponse struct {
	ID           string  `json:"id"`
	Name         string  `json:"name"`
	Email        string  `json:"email"`
	Role         string  `json:"role"`
	ProfileImage *string `json:"profileImage"`
}

type RegistroResponse struct {
	Message string          `json:"message"`
	User    UsuarioResponse `json:"user"`
}

// LoginResponse carries both credentials: Token goes in the Authorization
// header, XToken in the x-token header of the orders API.
type LoginResponse struct {
	Token  string          `json:"token"`
	XToken string          `json:"xToken"`
	User   UsuarioResponse `json:"user"`
}

type ImagenPerfilResponse struct {
	Message      string `json:"message"`
	ProfileImage string `json:"profileImage"`
}
