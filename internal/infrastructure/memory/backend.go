package memory

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"github.com/jhoicas/afrispot-api/internal/domain"
	"github.com/jhoicas/afrispot-api/internal/domain/entity"
	"github.com/jhoicas/afrispot-api/internal/domain/repository"
)

// Backend agrupa todas las tablas y servicios en memoria, con las mismas restricciones que PostgreSQL.
type Backend struct {
	Clock        *Clock
	Categories   *CategoryRepo
	Items        *ItemRepo
	Reservations *ReservationRepo
	Reviews      *ReviewRepo
	Users        *Users
	Auth         *Auth
	Revocations  *Revocations
	Analytics    *AnalyticsRepo
}

// NewBackend crea un backend vacío.
func NewBackend() *Backend {
	clock := NewClock()
	b := &Backend{Clock: clock, Users: NewUsers(), Revocations: NewRevocations()}
	b.Categories = newCategoryRepo(clock)
	b.Items = newItemRepo(clock, b.Categories)
	b.Reservations = newReservationRepo(clock)
	b.Reviews = newReviewRepo(clock)
	b.Auth = NewAuth(b.Users, 12*time.Hour)
	b.Analytics = &AnalyticsRepo{b: b}

	// ON DELETE RESTRICT: una categoría con platos no se puede borrar.
	b.Categories.schema.BeforeDelete = func(ctx context.Context, id string) error {
		items, err := b.Items.Select(ctx, repository.Query{}.Where("category_id", id))
		if err != nil {
			return err
		}
		if len(items) > 0 {
			return fmt.Errorf("%w: la categoría tiene %d platos", domain.ErrConflict, len(items))
		}
		return nil
	}
	return b
}

// AddUser crea una cuenta activa (y su rol de administrador si admin) y devuelve su ID.
func (b *Backend) AddUser(ctx context.Context, email, password string, admin bool) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.MinCost)
	if err != nil {
		return "", err
	}
	now := time.Now()
	u := &entity.User{
		ID:           uuid.New().String(),
		Email:        email,
		PasswordHash: string(hash),
		Name:         email,
		Status:       entity.UserStatusActive,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	if err := b.Users.Create(ctx, u); err != nil {
		return "", err
	}
	if admin {
		if err := b.Users.Assign(ctx, &entity.RoleAssignment{UserID: u.ID, Role: entity.RoleAdmin, CreatedAt: now}); err != nil {
			return "", err
		}
	}
	return u.ID, nil
}
