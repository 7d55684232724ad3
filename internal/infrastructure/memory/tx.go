package memory

import (
	"context"

	"github.com/jhoicas/afrispot-api/internal/domain/repository"
)

// TxRunner ejecuta los callbacks directamente sobre las tablas en memoria (sin atomicidad).
type TxRunner struct {
	b *Backend
}

// Tx devuelve el runner de "transacciones" del backend.
func (b *Backend) Tx() *TxRunner { return &TxRunner{b: b} }

// RunAccounts ejecuta fn con usuarios y roles.
func (t *TxRunner) RunAccounts(ctx context.Context, fn func(users repository.UserRepository, roles repository.RoleRepository) error) error {
	return fn(t.b.Users, t.b.Users)
}

// RunMenu ejecuta fn con categorías y platos.
func (t *TxRunner) RunMenu(ctx context.Context, fn func(categories repository.MenuCategoryRepository, items repository.MenuItemRepository) error) error {
	return fn(t.b.Categories, t.b.Items)
}
