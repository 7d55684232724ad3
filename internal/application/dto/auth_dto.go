package dto

import (
	"time"

	"github.com/jhoicas/afrispot-api/internal/domain/entity"
)

// LoginRequest entrada para login.
type LoginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

// IdentityResponse identidad de la sesión (sin datos sensibles).
type IdentityResponse struct {
	ID    string `json:"id"`
	Email string `json:"email"`
}

// LoginResponse salida con token JWT.
type LoginResponse struct {
	Token     string           `json:"token"`
	ExpiresAt time.Time        `json:"expires_at"`
	User      IdentityResponse `json:"user"`
}

// SessionResponse sesión vigente del bearer token.
type SessionResponse struct {
	User      IdentityResponse `json:"user"`
	ExpiresAt time.Time        `json:"expires_at"`
}

// AdminResponse resultado de la búsqueda de privilegios.
type AdminResponse struct {
	IsAdmin bool `json:"is_admin"`
}

// ToIdentity convierte la respuesta de login en la identidad de la sesión.
func (r LoginResponse) ToIdentity() *entity.Identity {
	return &entity.Identity{ID: r.User.ID, Email: r.User.Email, Token: r.Token, ExpiresAt: r.ExpiresAt}
}
