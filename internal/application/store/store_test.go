package store_test

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/afrispot-api/internal/application/dto"
	"github.com/jhoicas/afrispot-api/internal/application/notice"
	"github.com/jhoicas/afrispot-api/internal/application/store"
	"github.com/jhoicas/afrispot-api/internal/domain"
	"github.com/jhoicas/afrispot-api/internal/domain/entity"
	"github.com/jhoicas/afrispot-api/internal/domain/repository"
	"github.com/jhoicas/afrispot-api/internal/infrastructure/memory"
)

// ──────────────────────────────────────────────────────────────────────────────
// Helpers de test
// ──────────────────────────────────────────────────────────────────────────────

type itemStore = store.Store[entity.MenuItem, entity.MenuItemPatch]

func newItemStore(t *testing.T, b *memory.Backend, feed notice.Notifier) *itemStore {
	t.Helper()
	s := store.New[entity.MenuItem, entity.MenuItemPatch](b.Items, store.Options[entity.MenuItem, entity.MenuItemPatch]{
		Name:  "menu_items",
		Query: repository.CanonicalItemOrder(),
		ID:    func(it *entity.MenuItem) string { return it.ID },
		Validate: func(it *entity.MenuItem) error {
			return dto.Validate(dto.MenuItemRequestFromEntity(it))
		},
		Notifier: feed,
		Logger:   zerolog.Nop(),
		Messages: store.Messages{LoadFailed: "No se pudo cargar la carta", Created: "Plato añadido"},
	})
	t.Cleanup(s.Close)
	return s
}

func backendWithCategory(t *testing.T) (*memory.Backend, *entity.MenuCategory) {
	t.Helper()
	b := memory.NewBackend()
	c, err := b.Categories.Insert(context.Background(), &entity.MenuCategory{Name: "Plats", Slug: "plats"})
	require.NoError(t, err)
	return b, c
}

func item(categoryID, name string) *entity.MenuItem {
	return &entity.MenuItem{Name: name, Description: "Spécialité maison", Price: 7500, CategoryID: categoryID, Available: true}
}

// ──────────────────────────────────────────────────────────────────────────────
// Refetch
// ──────────────────────────────────────────────────────────────────────────────

func TestStore_RefetchReemplazaCache(t *testing.T) {
	ctx := context.Background()
	b, c := backendWithCategory(t)
	_, err := b.Items.Insert(ctx, item(c.ID, "Mafé"))
	require.NoError(t, err)
	s := newItemStore(t, b, nil)

	assert.Empty(t, s.List().Items, "sin carga hasta el primer Refetch")
	require.NoError(t, s.Refetch(ctx))

	snap := s.List()
	require.Len(t, snap.Items, 1)
	assert.Equal(t, "Mafé", snap.Items[0].Name)
	assert.False(t, snap.Loading)
	assert.NoError(t, snap.Err)
}

func TestStore_RefetchFallido_ConservaCacheYAvisa(t *testing.T) {
	ctx := context.Background()
	b, c := backendWithCategory(t)
	_, err := b.Items.Insert(ctx, item(c.ID, "Mafé"))
	require.NoError(t, err)
	feed := notice.NewFeed(10)
	s := newItemStore(t, b, feed)
	require.NoError(t, s.Refetch(ctx))

	boom := errors.New("connection reset")
	b.Items.FailNext(boom)
	err = s.Refetch(ctx)

	assert.ErrorIs(t, err, boom)
	snap := s.List()
	assert.Len(t, snap.Items, 1, "la caché anterior se conserva")
	assert.ErrorIs(t, snap.Err, boom)
	require.Len(t, feed.Recent(0), 1)
	assert.Equal(t, "No se pudo cargar la carta", feed.Recent(0)[0].Message)

	require.NoError(t, s.Refetch(ctx), "el store sigue usable")
	assert.NoError(t, s.List().Err, "un refetch correcto limpia el error")
}

// ──────────────────────────────────────────────────────────────────────────────
// Mutaciones
// ──────────────────────────────────────────────────────────────────────────────

func TestStore_CreateRecargaAntesDeVolver(t *testing.T) {
	ctx := context.Background()
	b, c := backendWithCategory(t)
	feed := notice.NewFeed(10)
	s := newItemStore(t, b, feed)

	created, err := s.Create(ctx, item(c.ID, "Poulet DG"))
	require.NoError(t, err)
	assert.NotEmpty(t, created.ID)

	snap := s.List()
	require.Len(t, snap.Items, 1)
	got := snap.Items[0]
	assert.Equal(t, created.ID, got.ID)
	assert.Equal(t, "Poulet DG", got.Name)
	assert.Equal(t, "Spécialité maison", got.Description)
	assert.Equal(t, int64(7500), got.Price)
	assert.Equal(t, c.ID, got.CategoryID)
	require.NotNil(t, got.Category)
	assert.Equal(t, "plats", got.Category.Slug)
	assert.Equal(t, "Plato añadido", feed.Recent(1)[0].Message)
}

func TestStore_CreateInvalido_NoLlamaAlBackend(t *testing.T) {
	ctx := context.Background()
	b, c := backendWithCategory(t)
	feed := notice.NewFeed(10)
	s := newItemStore(t, b, feed)
	// si se llamara al backend, este error aparecería en lugar del de validación
	b.Items.FailNext(errors.New("no debería llamarse"))

	_, err := s.Create(ctx, &entity.MenuItem{Name: "Sans description", CategoryID: c.ID})

	require.Error(t, err)
	assert.True(t, errors.Is(err, domain.ErrInvalidInput))
	assert.Equal(t, 0, b.Items.Len())
	assert.Contains(t, feed.Recent(1)[0].Message, "description es requerido")
}

func TestStore_CreateRechazado_NoTocaCache(t *testing.T) {
	ctx := context.Background()
	b, c := backendWithCategory(t)
	s := newItemStore(t, b, nil)
	_, err := s.Create(ctx, item(c.ID, "Attiéké"))
	require.NoError(t, err)
	before := s.List().Items

	_, err = s.Create(ctx, item("categoria-inexistente", "Huérfano"))

	require.Error(t, err)
	assert.Equal(t, before, s.List().Items)
}

func TestStore_UpdateIdempotenteYRoundTrip(t *testing.T) {
	ctx := context.Background()
	b, c := backendWithCategory(t)
	s := newItemStore(t, b, nil)
	created, err := s.Create(ctx, item(c.ID, "Kedjenou"))
	require.NoError(t, err)
	off := false

	_, err = s.Update(ctx, created.ID, entity.MenuItemPatch{Available: &off})
	require.NoError(t, err)
	_, err = s.Update(ctx, created.ID, entity.MenuItemPatch{Available: &off})
	require.NoError(t, err)

	got, ok := s.Find(created.ID)
	require.True(t, ok)
	assert.False(t, got.Available, "repetir el mismo patch no alterna el valor")
	assert.Equal(t, created.Name, got.Name)
	assert.Equal(t, created.Description, got.Description)
	assert.Equal(t, created.Price, got.Price)
	assert.Equal(t, created.CategoryID, got.CategoryID)
}

func TestStore_DeleteYDeleteInexistente(t *testing.T) {
	ctx := context.Background()
	b, c := backendWithCategory(t)
	feed := notice.NewFeed(10)
	s := newItemStore(t, b, feed)
	keep, err := s.Create(ctx, item(c.ID, "Foutou"))
	require.NoError(t, err)
	gone, err := s.Create(ctx, item(c.ID, "Placali"))
	require.NoError(t, err)

	require.NoError(t, s.Delete(ctx, gone.ID))
	_, ok := s.Find(gone.ID)
	assert.False(t, ok)
	before := s.List().Items

	err = s.Delete(ctx, "no-existe")

	assert.True(t, errors.Is(err, domain.ErrNotFound))
	assert.Equal(t, before, s.List().Items)
	_, ok = s.Find(keep.ID)
	assert.True(t, ok)
	assert.Equal(t, notice.LevelError, feed.Recent(1)[0].Level)
}

func TestStore_SubscribeVeLoading(t *testing.T) {
	ctx := context.Background()
	b, c := backendWithCategory(t)
	s := newItemStore(t, b, nil)
	var mu sync.Mutex
	var loading []bool
	s.Subscribe(func(snap store.Snapshot[entity.MenuItem]) {
		mu.Lock()
		loading = append(loading, snap.Loading)
		mu.Unlock()
	})

	_, err := s.Create(ctx, item(c.ID, "Garba"))
	require.NoError(t, err)

	mu.Lock()
	defer mu.Unlock()
	require.NotEmpty(t, loading)
	assert.True(t, loading[0], "la primera notificación marca la carga")
	assert.False(t, loading[len(loading)-1], "la última notificación la termina")
}

// ──────────────────────────────────────────────────────────────────────────────
// Concurrencia: última respuesta gana, descarte tras Close
// ──────────────────────────────────────────────────────────────────────────────

// gatedTable responde cada Select cuando el test lo libera, con la lista indicada.
type gatedTable struct {
	calls chan chan []*entity.Review
}

func (g *gatedTable) Select(ctx context.Context, _ repository.Query) ([]*entity.Review, error) {
	reply := make(chan []*entity.Review)
	g.calls <- reply
	select {
	case list := <-reply:
		return list, nil
	case <-ctx.Done():
		return nil, ctx.Err()
	}
}

func (g *gatedTable) Insert(context.Context, *entity.Review) (*entity.Review, error) {
	return nil, errors.New("no usado")
}

func (g *gatedTable) Update(context.Context, string, entity.ReviewPatch) (*entity.Review, error) {
	return nil, errors.New("no usado")
}

func (g *gatedTable) Delete(context.Context, string) error { return errors.New("no usado") }

func reviews(names ...string) []*entity.Review {
	out := make([]*entity.Review, len(names))
	for i, n := range names {
		out[i] = &entity.Review{ID: n, Name: n, Rating: 5}
	}
	return out
}

func nextCall(t *testing.T, g *gatedTable) chan []*entity.Review {
	t.Helper()
	select {
	case c := <-g.calls:
		return c
	case <-time.After(2 * time.Second):
		t.Fatal("Select no fue llamado")
		return nil
	}
}

func TestStore_UltimaRespuestaEnTerminarGana(t *testing.T) {
	g := &gatedTable{calls: make(chan chan []*entity.Review)}
	s := store.New[entity.Review, entity.ReviewPatch](g, store.Options[entity.Review, entity.ReviewPatch]{Name: "reviews", Logger: zerolog.Nop()})
	defer s.Close()

	var wg sync.WaitGroup
	wg.Add(2)
	go func() { defer wg.Done(); _ = s.Refetch(context.Background()) }()
	first := nextCall(t, g)
	go func() { defer wg.Done(); _ = s.Refetch(context.Background()) }()
	second := nextCall(t, g)
	assert.True(t, s.List().Loading)

	// la segunda petición termina antes que la primera
	second <- reviews("nueva")
	first <- reviews("vieja")
	wg.Wait()

	snap := s.List()
	require.Len(t, snap.Items, 1)
	assert.Equal(t, "vieja", snap.Items[0].Name, "la caché refleja la última respuesta completada")
	assert.False(t, snap.Loading)
}

func TestStore_CloseDescartaRespuestaPendiente(t *testing.T) {
	g := &gatedTable{calls: make(chan chan []*entity.Review)}
	s := store.New[entity.Review, entity.ReviewPatch](g, store.Options[entity.Review, entity.ReviewPatch]{Name: "reviews", Logger: zerolog.Nop()})
	notified := 0
	s.Subscribe(func(store.Snapshot[entity.Review]) { notified++ })

	done := make(chan error, 1)
	go func() { done <- s.Refetch(context.Background()) }()
	reply := nextCall(t, g)
	before := notified

	s.Close()
	reply <- reviews("tardía")

	assert.ErrorIs(t, <-done, store.ErrClosed)
	assert.Empty(t, s.List().Items, "la respuesta tardía no se escribe en la caché")
	assert.Equal(t, before, notified, "tras Close no se notifica")
	assert.ErrorIs(t, s.Refetch(context.Background()), store.ErrClosed)
}

func TestStore_ResetVaciaYDescartaRecargaEnCurso(t *testing.T) {
	g := &gatedTable{calls: make(chan chan []*entity.Review)}
	s := store.New[entity.Review, entity.ReviewPatch](g, store.Options[entity.Review, entity.ReviewPatch]{Name: "reviews", Logger: zerolog.Nop()})
	defer s.Close()

	go func() { _ = s.Refetch(context.Background()) }()
	nextCall(t, g) <- reviews("cargada")
	require.Eventually(t, func() bool { return len(s.List().Items) == 1 }, 2*time.Second, 5*time.Millisecond)

	done := make(chan error, 1)
	go func() { done <- s.Refetch(context.Background()) }()
	reply := nextCall(t, g)

	s.Reset()
	assert.Empty(t, s.List().Items)
	reply <- reviews("anterior")

	assert.NoError(t, <-done)
	snap := s.List()
	assert.Empty(t, snap.Items, "la respuesta lanzada antes del Reset no se escribe")
	assert.NoError(t, snap.Err)
	assert.False(t, snap.Loading)

	go func() { _ = s.Refetch(context.Background()) }()
	nextCall(t, g) <- reviews("nueva")
	require.Eventually(t, func() bool { return len(s.List().Items) == 1 }, 2*time.Second, 5*time.Millisecond)
}
