package repository

import (
	"context"

	"github.com/jhoicas/afrispot-api/internal/domain/entity"
)

// UserRepository define el puerto de persistencia para User (DIP).
// GetByID y GetByEmail devuelven (nil, nil) si no existe.
type UserRepository interface {
	Create(ctx context.Context, user *entity.User) error
	GetByID(ctx context.Context, id string) (*entity.User, error)
	GetByEmail(ctx context.Context, email string) (*entity.User, error)
}

// RoleRepository búsqueda de privilegios por identidad.
type RoleRepository interface {
	Assign(ctx context.Context, a *entity.RoleAssignment) error
	// HasRole false si no hay registro para (userID, role).
	HasRole(ctx context.Context, userID, role string) (bool, error)
}
