package memory_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/afrispot-api/internal/application/ports"
	"github.com/jhoicas/afrispot-api/internal/domain"
	"github.com/jhoicas/afrispot-api/internal/domain/entity"
	"github.com/jhoicas/afrispot-api/internal/domain/repository"
	"github.com/jhoicas/afrispot-api/internal/infrastructure/memory"
)

// ──────────────────────────────────────────────────────────────────────────────
// Tablas
// ──────────────────────────────────────────────────────────────────────────────

func seedCategory(t *testing.T, b *memory.Backend, name, slug string) *entity.MenuCategory {
	t.Helper()
	c, err := b.Categories.Insert(context.Background(), &entity.MenuCategory{Name: name, Slug: slug})
	require.NoError(t, err)
	return c
}

func TestTable_InsertAsignaIDYOrdenCanonico(t *testing.T) {
	ctx := context.Background()
	b := memory.NewBackend()
	entrees := seedCategory(t, b, "Entrées", "entrees")
	seedCategory(t, b, "Desserts", "desserts")

	assert.NotEmpty(t, entrees.ID)
	assert.False(t, entrees.CreatedAt.IsZero())

	cats, err := b.Categories.Select(ctx, repository.CanonicalCategoryOrder())
	require.NoError(t, err)
	require.Len(t, cats, 2)
	assert.Equal(t, "entrees", cats[0].Slug, "categorías por created_at ascendente")

	for _, name := range []string{"Alloco", "Accras"} {
		_, err := b.Items.Insert(ctx, &entity.MenuItem{Name: name, Description: "d", Price: 2500, CategoryID: entrees.ID, Available: true})
		require.NoError(t, err)
	}
	items, err := b.Items.Select(ctx, repository.CanonicalItemOrder())
	require.NoError(t, err)
	require.Len(t, items, 2)
	assert.Equal(t, "Accras", items[0].Name, "platos por created_at descendente")
	require.NotNil(t, items[0].Category, "las lecturas incluyen la categoría")
	assert.Equal(t, "entrees", items[0].Category.Slug)
}

func TestTable_ClaveForaneaYSlugUnico(t *testing.T) {
	ctx := context.Background()
	b := memory.NewBackend()
	c := seedCategory(t, b, "Boissons", "boissons")

	_, err := b.Items.Insert(ctx, &entity.MenuItem{Name: "Bissap", Description: "Jus d'hibiscus", Price: 1000, CategoryID: "no-existe"})
	assert.True(t, errors.Is(err, domain.ErrInvalidInput), "categoría inexistente: %v", err)

	_, err = b.Categories.Insert(ctx, &entity.MenuCategory{Name: "Boissons 2", Slug: "boissons"})
	assert.True(t, errors.Is(err, domain.ErrDuplicate))

	_, err = b.Items.Insert(ctx, &entity.MenuItem{Name: "Bissap", Description: "Jus d'hibiscus", Price: 1000, CategoryID: c.ID})
	require.NoError(t, err)
	err = b.Categories.Delete(ctx, c.ID)
	assert.True(t, errors.Is(err, domain.ErrConflict), "categoría con platos no se borra: %v", err)
}

func TestTable_UpdateYDeleteInexistentes(t *testing.T) {
	ctx := context.Background()
	b := memory.NewBackend()
	off := false

	_, err := b.Items.Update(ctx, "nope", entity.MenuItemPatch{Available: &off})
	assert.True(t, errors.Is(err, domain.ErrNotFound))
	assert.True(t, errors.Is(b.Reviews.Delete(ctx, "nope"), domain.ErrNotFound))
}

func TestTable_UpdateFusionaSoloCamposPresentes(t *testing.T) {
	ctx := context.Background()
	b := memory.NewBackend()
	c := seedCategory(t, b, "Plats", "plats")
	it, err := b.Items.Insert(ctx, &entity.MenuItem{Name: "Yassa", Description: "Poulet", Price: 8000, CategoryID: c.ID, Available: true})
	require.NoError(t, err)

	price := int64(9000)
	up, err := b.Items.Update(ctx, it.ID, entity.MenuItemPatch{Price: &price})
	require.NoError(t, err)

	assert.Equal(t, int64(9000), up.Price)
	assert.Equal(t, "Yassa", up.Name)
	assert.True(t, up.Available)
	assert.True(t, up.UpdatedAt.After(it.UpdatedAt))
}

func TestTable_FiltrosYColumnasDesconocidas(t *testing.T) {
	ctx := context.Background()
	b := memory.NewBackend()
	for i, approved := range []bool{true, false, true} {
		_, err := b.Reviews.Insert(ctx, &entity.Review{Name: "n", Rating: 3 + i%2, Comment: "c", Approved: approved})
		require.NoError(t, err)
	}

	pub, err := b.Reviews.Select(ctx, repository.PublicReviewQuery())
	require.NoError(t, err)
	assert.Len(t, pub, 2)

	pub, err = b.Reviews.Select(ctx, repository.Query{}.Where("approved", "true"))
	require.NoError(t, err)
	assert.Len(t, pub, 2, "los valores de query string se comparan como texto")

	_, err = b.Reviews.Select(ctx, repository.Query{}.Where("password", "x"))
	assert.True(t, errors.Is(err, domain.ErrInvalidInput))
	_, err = b.Reviews.Select(ctx, repository.Query{}.OrderBy("password", true))
	assert.True(t, errors.Is(err, domain.ErrInvalidInput))
}

func TestTable_FailNext(t *testing.T) {
	ctx := context.Background()
	b := memory.NewBackend()
	boom := errors.New("boom")
	b.Reservations.FailNext(boom)

	_, err := b.Reservations.Select(ctx, repository.Query{})
	assert.ErrorIs(t, err, boom)
	_, err = b.Reservations.Select(ctx, repository.Query{})
	assert.NoError(t, err, "solo falla la siguiente operación")
}

func TestReservationRepo_ListBetween(t *testing.T) {
	ctx := context.Background()
	b := memory.NewBackend()
	day := time.Date(2026, 3, 14, 0, 0, 0, 0, time.UTC)
	for _, h := range []int{21, 12, 35} {
		_, err := b.Reservations.Insert(ctx, &entity.Reservation{Name: "n", Phone: "p", Guests: 2, DateTime: day.Add(time.Duration(h) * time.Hour)})
		require.NoError(t, err)
	}

	got, err := b.Reservations.ListBetween(ctx, day, day.Add(24*time.Hour))
	require.NoError(t, err)
	require.Len(t, got, 2)
	assert.Equal(t, 12, got[0].DateTime.Hour())
	assert.Equal(t, entity.ReservationPending, got[0].Status)
}

func TestReservationRepo_RechazaTransicionNoPermitida(t *testing.T) {
	ctx := context.Background()
	b := memory.NewBackend()
	r, err := b.Reservations.Insert(ctx, &entity.Reservation{Name: "n", Phone: "p", Guests: 2, DateTime: time.Now()})
	require.NoError(t, err)
	cancelled, pending, unknown := entity.ReservationCancelled, entity.ReservationPending, entity.ReservationStatus("archived")

	_, err = b.Reservations.Update(ctx, r.ID, entity.ReservationPatch{Status: &cancelled})
	require.NoError(t, err)
	_, err = b.Reservations.Update(ctx, r.ID, entity.ReservationPatch{Status: &cancelled})
	require.NoError(t, err, "mismo estado es idempotente")

	_, err = b.Reservations.Update(ctx, r.ID, entity.ReservationPatch{Status: &pending})
	assert.True(t, errors.Is(err, domain.ErrInvalidTransition))
	_, err = b.Reservations.Update(ctx, r.ID, entity.ReservationPatch{Status: &unknown})
	assert.True(t, errors.Is(err, domain.ErrInvalidInput))

	stored, err := b.Reservations.GetByID(ctx, r.ID)
	require.NoError(t, err)
	assert.Equal(t, entity.ReservationCancelled, stored.Status)
}

// ──────────────────────────────────────────────────────────────────────────────
// Auth
// ──────────────────────────────────────────────────────────────────────────────

func TestAuth_SignInEventosYPrivilegio(t *testing.T) {
	ctx := context.Background()
	b := memory.NewBackend()
	adminID, err := b.AddUser(ctx, "chef@afrispot.test", "secreto123", true)
	require.NoError(t, err)
	userID, err := b.AddUser(ctx, "serveur@afrispot.test", "secreto123", false)
	require.NoError(t, err)

	var kinds []ports.AuthEventKind
	unsub := b.Auth.OnAuthChange(func(ev ports.AuthEvent) { kinds = append(kinds, ev.Kind) })
	defer unsub()

	_, err = b.Auth.SignIn(ctx, "chef@afrispot.test", "mala")
	assert.True(t, errors.Is(err, domain.ErrInvalidCredentials))

	id, err := b.Auth.SignIn(ctx, "chef@afrispot.test", "secreto123")
	require.NoError(t, err)
	assert.Equal(t, adminID, id.ID)

	sess, err := b.Auth.GetSession(ctx)
	require.NoError(t, err)
	assert.True(t, id.Same(sess))

	isAdmin, err := b.Auth.IsAdmin(ctx, adminID)
	require.NoError(t, err)
	assert.True(t, isAdmin)
	isAdmin, err = b.Auth.IsAdmin(ctx, userID)
	require.NoError(t, err)
	assert.False(t, isAdmin, "sin registro de rol no hay privilegio")

	b.Auth.Expire()
	sess, err = b.Auth.GetSession(ctx)
	require.NoError(t, err)
	assert.Nil(t, sess)

	assert.Equal(t, []ports.AuthEventKind{ports.AuthSignedIn, ports.AuthExpired}, kinds)
}

func TestRevocations(t *testing.T) {
	ctx := context.Background()
	r := memory.NewRevocations()
	require.NoError(t, r.Revoke(ctx, "s1", time.Hour))

	revoked, err := r.IsRevoked(ctx, "s1")
	require.NoError(t, err)
	assert.True(t, revoked)

	revoked, err = r.IsRevoked(ctx, "s2")
	require.NoError(t, err)
	assert.False(t, revoked)
}
