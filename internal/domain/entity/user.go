package entity

import "time"

// Rol con privilegio de administración del back-office.
const RoleAdmin = "admin"

// Estados de cuenta.
const (
	UserStatusActive   = "active"
	UserStatusDisabled = "disabled"
)

// User cuenta que puede iniciar sesión.
type User struct {
	ID           string
	Email        string
	PasswordHash string // bcrypt hash, nunca plano en dominio después de persistir
	Name         string
	Status       string // active, disabled
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// RoleAssignment registro de privilegio separado de la cuenta. Sin registro no hay privilegio.
type RoleAssignment struct {
	UserID    string
	Role      string
	CreatedAt time.Time
}

// Identity principal autenticado de la sesión actual.
type Identity struct {
	ID        string
	Email     string
	Token     string // handle opaco de la sesión
	ExpiresAt time.Time
}

// Same indica si dos identidades corresponden a la misma sesión.
func (i *Identity) Same(o *Identity) bool {
	if i == nil || o == nil {
		return i == o
	}
	return i.ID == o.ID && i.Token == o.Token
}
