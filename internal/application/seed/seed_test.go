package seed_test

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/afrispot-api/internal/application/seed"
	"github.com/jhoicas/afrispot-api/internal/domain"
	"github.com/jhoicas/afrispot-api/internal/domain/entity"
	"github.com/jhoicas/afrispot-api/internal/domain/repository"
	"github.com/jhoicas/afrispot-api/internal/infrastructure/memory"
)

func TestBootstrapAdmin_CreaCuentaYRol(t *testing.T) {
	ctx := context.Background()
	b := memory.NewBackend()

	id, created, err := seed.BootstrapAdmin(ctx, b.Tx(), "chef@afrispot.test", "secreto123")
	require.NoError(t, err)
	assert.True(t, created)

	ok, err := b.Users.HasRole(ctx, id, entity.RoleAdmin)
	require.NoError(t, err)
	assert.True(t, ok)
}

func TestBootstrapAdmin_CuentaExistente_SoloAseguraRol(t *testing.T) {
	ctx := context.Background()
	b := memory.NewBackend()
	existing, err := b.AddUser(ctx, "chef@afrispot.test", "original123", false)
	require.NoError(t, err)

	id, created, err := seed.BootstrapAdmin(ctx, b.Tx(), "chef@afrispot.test", "otra-clave-123")
	require.NoError(t, err)
	assert.False(t, created)
	assert.Equal(t, existing, id)

	ok, err := b.Users.HasRole(ctx, id, entity.RoleAdmin)
	require.NoError(t, err)
	assert.True(t, ok)
	_, err = b.Auth.SignIn(ctx, "chef@afrispot.test", "original123")
	assert.NoError(t, err, "la contraseña existente no cambia")
}

func TestBootstrapAdmin_EntradaInvalida(t *testing.T) {
	_, _, err := seed.BootstrapAdmin(context.Background(), memory.NewBackend().Tx(), "chef@afrispot.test", "corta")
	assert.True(t, errors.Is(err, domain.ErrInvalidInput))
}

func TestSeedMenu_Idempotente(t *testing.T) {
	ctx := context.Background()
	b := memory.NewBackend()

	cats, dishes, err := seed.SeedMenu(ctx, b.Tx(), seed.DefaultMenu)
	require.NoError(t, err)
	assert.Equal(t, 5, cats)
	assert.Equal(t, 17, dishes)

	cats, dishes, err = seed.SeedMenu(ctx, b.Tx(), seed.DefaultMenu)
	require.NoError(t, err)
	assert.Zero(t, cats)
	assert.Zero(t, dishes)

	entrees, err := b.Categories.GetBySlug(ctx, "entrees")
	require.NoError(t, err)
	items, err := b.Items.Select(ctx, repository.Query{}.Where("category_id", entrees.ID))
	require.NoError(t, err)
	assert.Len(t, items, 4)
}
