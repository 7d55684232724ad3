package repository

import (
	"context"

	"github.com/jhoicas/afrispot-api/internal/domain/entity"
)

// Nombres de tabla y orden canónico de cada colección.
const (
	TableMenuCategories = "menu_categories"
	TableMenuItems      = "menu_items"
	TableReservations   = "reservations"
	TableReviews        = "reviews"
)

// MenuCategoryRepository define el puerto de persistencia para MenuCategory (DIP).
type MenuCategoryRepository interface {
	Table[entity.MenuCategory, entity.MenuCategoryPatch]
	GetByID(ctx context.Context, id string) (*entity.MenuCategory, error)
	GetBySlug(ctx context.Context, slug string) (*entity.MenuCategory, error)
}

// MenuItemRepository define el puerto de persistencia para MenuItem. Las lecturas incluyen la categoría.
type MenuItemRepository interface {
	Table[entity.MenuItem, entity.MenuItemPatch]
	GetByID(ctx context.Context, id string) (*entity.MenuItem, error)
}

// CanonicalCategoryOrder orden de presentación de las categorías.
func CanonicalCategoryOrder() Query { return Query{}.OrderBy("created_at", true) }

// CanonicalItemOrder orden de presentación de los platos (más recientes primero).
func CanonicalItemOrder() Query { return Query{}.OrderBy("created_at", false) }
