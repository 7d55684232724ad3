// Package console objeto de contexto del back-office: sesión, stores por entidad y avisos.
// Se crea una vez por instancia de la aplicación y se pasa a quien necesite identidad o datos.
package console

import (
	"context"
	"errors"
	"sync"

	"github.com/rs/zerolog"

	"github.com/jhoicas/afrispot-api/internal/application/dto"
	"github.com/jhoicas/afrispot-api/internal/application/guard"
	"github.com/jhoicas/afrispot-api/internal/application/notice"
	"github.com/jhoicas/afrispot-api/internal/application/ports"
	"github.com/jhoicas/afrispot-api/internal/application/session"
	"github.com/jhoicas/afrispot-api/internal/application/store"
	"github.com/jhoicas/afrispot-api/internal/domain/entity"
	"github.com/jhoicas/afrispot-api/internal/domain/repository"
)

// Backend cliente del backend: autenticación y una tabla por colección.
type Backend struct {
	Auth         ports.AuthClient
	Categories   repository.Table[entity.MenuCategory, entity.MenuCategoryPatch]
	Items        repository.Table[entity.MenuItem, entity.MenuItemPatch]
	Reservations repository.Table[entity.Reservation, entity.ReservationPatch]
	Reviews      repository.Table[entity.Review, entity.ReviewPatch]
}

type (
	CategoryStore    = store.Store[entity.MenuCategory, entity.MenuCategoryPatch]
	ItemStore        = store.Store[entity.MenuItem, entity.MenuItemPatch]
	ReservationStore = store.Store[entity.Reservation, entity.ReservationPatch]
	ReviewStore      = store.Store[entity.Review, entity.ReviewPatch]

	ReservationSnapshot = store.Snapshot[entity.Reservation]
)

// Console contexto de la aplicación.
type Console struct {
	Session      *session.Manager
	Categories   *CategoryStore
	Items        *ItemStore
	Reservations *ReservationStore
	Reviews      *ReviewStore
	Feed         *notice.Feed

	backend Backend
	log     zerolog.Logger

	mu         sync.Mutex
	identityID string // identidad a la que pertenecen las cachés de reservas y reseñas

	closeOnce sync.Once
}

// New construye el contexto. No hace I/O hasta Start.
func New(b Backend, log zerolog.Logger) *Console {
	feed := notice.NewFeed(50)
	log = log.With().Str("component", "console").Logger()

	c := &Console{backend: b, log: log, Feed: feed}
	c.Session = session.NewManager(b.Auth, feed, log)
	c.Categories = store.New(b.Categories, store.Options[entity.MenuCategory, entity.MenuCategoryPatch]{
		Name:  repository.TableMenuCategories,
		Query: repository.CanonicalCategoryOrder(),
		ID:    func(c *entity.MenuCategory) string { return c.ID },
		Validate: func(c *entity.MenuCategory) error {
			return dto.Validate(dto.CreateCategoryRequest{Name: c.Name, Slug: c.Slug, Icon: c.Icon})
		},
		ValidatePatch: func(p entity.MenuCategoryPatch) error { return dto.Validate(dto.CategoryUpdateFromPatch(p)) },
		Notifier:      feed,
		Logger:        log,
		Messages: store.Messages{
			LoadFailed: "No se pudieron cargar las categorías",
			Created:    "Categoría creada",
			Updated:    "Categoría actualizada",
			Deleted:    "Categoría eliminada",
		},
	})
	c.Items = store.New(b.Items, store.Options[entity.MenuItem, entity.MenuItemPatch]{
		Name:          repository.TableMenuItems,
		Query:         repository.CanonicalItemOrder(),
		ID:            func(it *entity.MenuItem) string { return it.ID },
		Validate:      func(it *entity.MenuItem) error { return dto.Validate(dto.MenuItemRequestFromEntity(it)) },
		ValidatePatch: func(p entity.MenuItemPatch) error { return dto.Validate(dto.MenuItemUpdateFromPatch(p)) },
		Notifier:      feed,
		Logger:        log,
		Messages: store.Messages{
			LoadFailed: "No se pudieron cargar los platos",
			Created:    "Plato añadido a la carta",
			Updated:    "Plato actualizado",
			Deleted:    "Plato eliminado",
		},
	})
	c.Reservations = store.New(b.Reservations, store.Options[entity.Reservation, entity.ReservationPatch]{
		Name:          repository.TableReservations,
		Query:         repository.CanonicalReservationOrder(),
		ID:            func(r *entity.Reservation) string { return r.ID },
		Validate:      func(r *entity.Reservation) error { return dto.Validate(dto.ReservationRequestFromEntity(r)) },
		ValidatePatch: func(p entity.ReservationPatch) error { return dto.Validate(dto.ReservationUpdateFromPatch(p)) },
		Notifier:      feed,
		Logger:        log,
		Messages: store.Messages{
			LoadFailed: "No se pudieron cargar las reservas",
			Updated:    "Reserva actualizada",
			Deleted:    "Reserva eliminada",
		},
	})
	c.Reviews = store.New(b.Reviews, store.Options[entity.Review, entity.ReviewPatch]{
		Name:          repository.TableReviews,
		Query:         repository.CanonicalReviewOrder(),
		ID:            func(r *entity.Review) string { return r.ID },
		Validate:      func(r *entity.Review) error { return dto.Validate(dto.ReviewRequestFromEntity(r)) },
		ValidatePatch: func(p entity.ReviewPatch) error { return dto.Validate(dto.ReviewUpdateFromPatch(p)) },
		Notifier:      feed,
		Logger:        log,
		Messages: store.Messages{
			LoadFailed: "No se pudieron cargar las reseñas",
			Updated:    "Reseña actualizada",
			Deleted:    "Reseña eliminada",
		},
	})
	c.Session.Subscribe(c.onSession)
	return c
}

// onSession vacía las cachés de admin al cambiar de identidad o al confirmarse sin privilegio.
func (c *Console) onSession(s session.Snapshot) {
	id := ""
	if s.Identity != nil {
		id = s.Identity.ID
	}
	c.mu.Lock()
	changed := id != c.identityID
	c.identityID = id
	c.mu.Unlock()

	if changed || (s.AdminKnown() && !s.IsAdmin()) {
		c.Reservations.Reset()
		c.Reviews.Reset()
	}
}

// Start recupera la sesión persistida y carga los datos visibles para ella.
func (c *Console) Start(ctx context.Context) error {
	c.Session.Init(ctx)
	return c.Refresh(ctx)
}

// Refresh recarga en paralelo la carta y, con privilegio de admin, reservas y reseñas.
// Un fallo en una colección no impide recargar las demás.
func (c *Console) Refresh(ctx context.Context) error {
	loads := []func(context.Context) error{c.Categories.Refetch, c.Items.Refetch}
	if c.Session.IsAdmin() {
		loads = append(loads, c.Reservations.Refetch, c.Reviews.Refetch)
	}

	errs := make([]error, len(loads))
	var wg sync.WaitGroup
	for i, load := range loads {
		wg.Add(1)
		go func(i int, load func(context.Context) error) {
			defer wg.Done()
			errs[i] = load(ctx)
		}(i, load)
	}
	wg.Wait()
	return errors.Join(errs...)
}

// SignIn inicia sesión y, si la identidad es admin, carga los datos del panel.
func (c *Console) SignIn(ctx context.Context, email, password string) error {
	if err := c.Session.SignIn(ctx, email, password); err != nil {
		return err
	}
	if err := c.Refresh(ctx); err != nil {
		c.log.Warn().Err(err).Msg("recarga tras el login incompleta")
	}
	return nil
}

// SignOut cierra la sesión; localmente siempre queda anónimo.
func (c *Console) SignOut(ctx context.Context) {
	c.Session.SignOut(ctx)
	c.Feed.Notify(notice.Info("Sesión cerrada"))
}

// Decide aplica el guard de rutas a la sesión actual.
func (c *Console) Decide(req guard.Requirement) guard.Decision {
	return guard.Decide(c.Session.Snapshot(), req)
}

// Close desconecta stores y sesión; las respuestas pendientes se descartan.
func (c *Console) Close() {
	c.closeOnce.Do(func() {
		c.Categories.Close()
		c.Items.Close()
		c.Reservations.Close()
		c.Reviews.Close()
		c.Session.Close()
	})
}
