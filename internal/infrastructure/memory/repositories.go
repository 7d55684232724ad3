package memory

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/jhoicas/afrispot-api/internal/domain"
	"github.com/jhoicas/afrispot-api/internal/domain/entity"
	"github.com/jhoicas/afrispot-api/internal/domain/repository"
)

var (
	_ repository.MenuCategoryRepository = (*CategoryRepo)(nil)
	_ repository.MenuItemRepository     = (*ItemRepo)(nil)
	_ repository.ReservationRepository  = (*ReservationRepo)(nil)
	_ repository.ReviewRepository       = (*ReviewRepo)(nil)
)

// CategoryRepo tabla menu_categories en memoria.
type CategoryRepo struct {
	*Table[entity.MenuCategory, entity.MenuCategoryPatch]
}

// GetByID obtiene una categoría o (nil, nil).
func (r *CategoryRepo) GetByID(ctx context.Context, id string) (*entity.MenuCategory, error) {
	return r.Get(ctx, id)
}

// GetBySlug obtiene una categoría por slug o (nil, nil).
func (r *CategoryRepo) GetBySlug(ctx context.Context, slug string) (*entity.MenuCategory, error) {
	list, err := r.Select(ctx, repository.Query{}.Where("slug", slug))
	if err != nil || len(list) == 0 {
		return nil, err
	}
	return list[0], nil
}

// ItemRepo tabla menu_items en memoria; las lecturas incluyen la categoría.
type ItemRepo struct {
	*Table[entity.MenuItem, entity.MenuItemPatch]
}

// GetByID obtiene un plato o (nil, nil).
func (r *ItemRepo) GetByID(ctx context.Context, id string) (*entity.MenuItem, error) {
	return r.Get(ctx, id)
}

// ReservationRepo tabla reservations en memoria.
type ReservationRepo struct {
	*Table[entity.Reservation, entity.ReservationPatch]
}

// GetByID obtiene una reserva o (nil, nil).
func (r *ReservationRepo) GetByID(ctx context.Context, id string) (*entity.Reservation, error) {
	return r.Get(ctx, id)
}

// ListBetween reservas con datetime en [from, to) por hora ascendente.
func (r *ReservationRepo) ListBetween(ctx context.Context, from, to time.Time) ([]*entity.Reservation, error) {
	all, err := r.Select(ctx, repository.Query{}.OrderBy("datetime", true))
	if err != nil {
		return nil, err
	}
	out := make([]*entity.Reservation, 0)
	for _, res := range all {
		if !res.DateTime.Before(from) && res.DateTime.Before(to) {
			out = append(out, res)
		}
	}
	return out, nil
}

// ReviewRepo tabla reviews en memoria.
type ReviewRepo struct {
	*Table[entity.Review, entity.ReviewPatch]
}

// GetByID obtiene una reseña o (nil, nil).
func (r *ReviewRepo) GetByID(ctx context.Context, id string) (*entity.Review, error) {
	return r.Get(ctx, id)
}

func newID(id string) string {
	if id == "" {
		return uuid.New().String()
	}
	return id
}

func newCategoryRepo(clock *Clock) *CategoryRepo {
	return &CategoryRepo{NewTable(Schema[entity.MenuCategory, entity.MenuCategoryPatch]{
		Name: repository.TableMenuCategories,
		ID:   func(c *entity.MenuCategory) string { return c.ID },
		Prepare: func(c *entity.MenuCategory, now time.Time) {
			c.ID = newID(c.ID)
			c.CreatedAt = now
		},
		Apply: func(c *entity.MenuCategory, p entity.MenuCategoryPatch) { p.Apply(c) },
		Field: func(c *entity.MenuCategory, col string) (any, bool) {
			switch col {
			case "id":
				return c.ID, true
			case "name":
				return c.Name, true
			case "slug":
				return c.Slug, true
			case "created_at":
				return c.CreatedAt, true
			}
			return nil, false
		},
		Check: func(c *entity.MenuCategory, others []*entity.MenuCategory) error {
			if c.Name == "" || c.Slug == "" {
				return fmt.Errorf("%w: name y slug son requeridos", domain.ErrInvalidInput)
			}
			for _, o := range others {
				if o.Slug == c.Slug {
					return fmt.Errorf("%w: el slug %q ya existe", domain.ErrDuplicate, c.Slug)
				}
			}
			return nil
		},
	}, clock)}
}

func newItemRepo(clock *Clock, categories *CategoryRepo) *ItemRepo {
	return &ItemRepo{NewTable(Schema[entity.MenuItem, entity.MenuItemPatch]{
		Name: repository.TableMenuItems,
		ID:   func(it *entity.MenuItem) string { return it.ID },
		Prepare: func(it *entity.MenuItem, now time.Time) {
			it.ID = newID(it.ID)
			it.CreatedAt = now
			it.UpdatedAt = now
			it.Category = nil
		},
		Touch: func(it *entity.MenuItem, now time.Time) { it.UpdatedAt = now },
		Apply: func(it *entity.MenuItem, p entity.MenuItemPatch) { p.Apply(it) },
		Field: func(it *entity.MenuItem, col string) (any, bool) {
			switch col {
			case "id":
				return it.ID, true
			case "name":
				return it.Name, true
			case "category_id":
				return it.CategoryID, true
			case "available":
				return it.Available, true
			case "price":
				return it.Price, true
			case "created_at":
				return it.CreatedAt, true
			case "updated_at":
				return it.UpdatedAt, true
			}
			return nil, false
		},
		Check: func(it *entity.MenuItem, _ []*entity.MenuItem) error {
			if it.Name == "" || it.Description == "" {
				return fmt.Errorf("%w: name y description son requeridos", domain.ErrInvalidInput)
			}
			if it.Price < 0 {
				return fmt.Errorf("%w: price no puede ser negativo", domain.ErrInvalidInput)
			}
			return nil
		},
		References: func(ctx context.Context, it *entity.MenuItem) error {
			if it.CategoryID == "" {
				return fmt.Errorf("%w: category_id es requerido", domain.ErrInvalidInput)
			}
			c, err := categories.Get(ctx, it.CategoryID)
			if err != nil {
				return err
			}
			if c == nil {
				return fmt.Errorf("%w: la categoría %s no existe", domain.ErrInvalidInput, it.CategoryID)
			}
			return nil
		},
		Decorate: func(it *entity.MenuItem) {
			it.Category = nil
			if c, _ := categories.Get(context.Background(), it.CategoryID); c != nil {
				it.Category = &entity.CategoryRef{ID: c.ID, Name: c.Name, Slug: c.Slug}
			}
		},
	}, clock)}
}

func newReservationRepo(clock *Clock) *ReservationRepo {
	return &ReservationRepo{NewTable(Schema[entity.Reservation, entity.ReservationPatch]{
		Name: repository.TableReservations,
		ID:   func(r *entity.Reservation) string { return r.ID },
		Prepare: func(r *entity.Reservation, now time.Time) {
			r.ID = newID(r.ID)
			r.CreatedAt = now
			r.UpdatedAt = now
			if r.Status == "" {
				r.Status = entity.ReservationPending
			}
		},
		Touch: func(r *entity.Reservation, now time.Time) { r.UpdatedAt = now },
		Apply: func(r *entity.Reservation, p entity.ReservationPatch) { p.Apply(r) },
		Transition: func(before, after *entity.Reservation) error {
			if after.Status.Valid() && !before.Status.CanTransition(after.Status) {
				return fmt.Errorf("%w: %s → %s", domain.ErrInvalidTransition, before.Status, after.Status)
			}
			return nil
		},
		Field: func(r *entity.Reservation, col string) (any, bool) {
			switch col {
			case "id":
				return r.ID, true
			case "status":
				return string(r.Status), true
			case "datetime":
				return r.DateTime, true
			case "created_at":
				return r.CreatedAt, true
			}
			return nil, false
		},
		Check: func(r *entity.Reservation, _ []*entity.Reservation) error {
			if !r.Status.Valid() {
				return fmt.Errorf("%w: estado %q desconocido", domain.ErrInvalidInput, r.Status)
			}
			if r.Guests < 1 {
				return fmt.Errorf("%w: guests debe ser positivo", domain.ErrInvalidInput)
			}
			return nil
		},
	}, clock)}
}

func newReviewRepo(clock *Clock) *ReviewRepo {
	return &ReviewRepo{NewTable(Schema[entity.Review, entity.ReviewPatch]{
		Name: repository.TableReviews,
		ID:   func(r *entity.Review) string { return r.ID },
		Prepare: func(r *entity.Review, now time.Time) {
			r.ID = newID(r.ID)
			r.CreatedAt = now
			r.UpdatedAt = now
		},
		Touch: func(r *entity.Review, now time.Time) { r.UpdatedAt = now },
		Apply: func(r *entity.Review, p entity.ReviewPatch) { p.Apply(r) },
		Field: func(r *entity.Review, col string) (any, bool) {
			switch col {
			case "id":
				return r.ID, true
			case "approved":
				return r.Approved, true
			case "featured":
				return r.Featured, true
			case "rating":
				return r.Rating, true
			case "created_at":
				return r.CreatedAt, true
			}
			return nil, false
		},
		Check: func(r *entity.Review, _ []*entity.Review) error {
			if r.Rating < 1 || r.Rating > 5 {
				return fmt.Errorf("%w: rating debe estar entre 1 y 5", domain.ErrInvalidInput)
			}
			return nil
		},
	}, clock)}
}
