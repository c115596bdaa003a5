package dto

import "time"

// RegisterRequest entrada del formulario de registro (password en texto, se hashea en use case).
type RegisterRequest struct {
	FullName string `json:"full_name" form:"full_name" validate:"required,max=100"`
	Email    string `json:"email" form:"email" validate:"required,email,max=100"`
	Phone    string `json:"phone" form:"phone" validate:"required,max=15"`
	Password string `json:"password" form:"password" validate:"required,min=8,max=72"`
}

// LoginRequest entrada del formulario de login.
type LoginRequest struct {
	Email    string `json:"email" form:"email" validate:"required"`
	Password string `json:"password" form:"password" validate:"required"`
}

// UserResponse salida de un usuario (sin password).
type UserResponse struct {
	ID                  int64     `json:"id"`
	FullName            string    `json:"full_name"`
	Email               string    `json:"email"`
	Phone               string    `json:"phone"`
	CertificateFilename string    `json:"certificate_filename,omitempty"`
	CreatedAt           time.Time `json:"created_at"`
}

// LoginResponse salida con el token de sesión.
type LoginResponse struct {
	Token     string       `json:"token"`
	ExpiresAt time.Time    `json:"expires_at"`
	User      UserResponse `json:"user"`
}
