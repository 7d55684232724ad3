package remote

import (
	"context"
	"fmt"
	"net/url"

	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/afrispot-api/internal/application/dto"
	"github.com/jhoicas/afrispot-api/internal/domain/entity"
	"github.com/jhoicas/afrispot-api/internal/domain/repository"
)

// Table colección remota expuesta en path. R es el DTO de respuesta del servidor.
type Table[T any, P any, R interface{ ToEntity() *T }] struct {
	c      *Client
	path   string
	create func(*T) any
	patch  func(P) any
}

// Colecciones del backend.
type (
	CategoryTable    = Table[entity.MenuCategory, entity.MenuCategoryPatch, dto.CategoryResponse]
	ItemTable        = Table[entity.MenuItem, entity.MenuItemPatch, dto.MenuItemResponse]
	ReservationTable = Table[entity.Reservation, entity.ReservationPatch, dto.ReservationResponse]
	ReviewTable      = Table[entity.Review, entity.ReviewPatch, dto.ReviewResponse]
)

var (
	_ repository.Table[entity.MenuCategory, entity.MenuCategoryPatch] = (*CategoryTable)(nil)
	_ repository.Table[entity.MenuItem, entity.MenuItemPatch]         = (*ItemTable)(nil)
	_ repository.Table[entity.Reservation, entity.ReservationPatch]   = (*ReservationTable)(nil)
	_ repository.Table[entity.Review, entity.ReviewPatch]             = (*ReviewTable)(nil)
)

// Categories tabla menu_categories.
func (c *Client) Categories() *CategoryTable {
	return &CategoryTable{
		c:    c,
		path: "/api/menu/categories",
		create: func(cat *entity.MenuCategory) any {
			return dto.CreateCategoryRequest{Name: cat.Name, Slug: cat.Slug, Icon: cat.Icon}
		},
		patch: func(p entity.MenuCategoryPatch) any { return dto.CategoryUpdateFromPatch(p) },
	}
}

// Items tabla menu_items (las lecturas incluyen la categoría).
func (c *Client) Items() *ItemTable {
	return &ItemTable{
		c:      c,
		path:   "/api/menu/items",
		create: func(it *entity.MenuItem) any { return dto.MenuItemRequestFromEntity(it) },
		patch:  func(p entity.MenuItemPatch) any { return dto.MenuItemUpdateFromPatch(p) },
	}
}

// Reservations tabla reservations.
func (c *Client) Reservations() *ReservationTable {
	return &ReservationTable{
		c:      c,
		path:   "/api/reservations",
		create: func(r *entity.Reservation) any { return dto.ReservationRequestFromEntity(r) },
		patch:  func(p entity.ReservationPatch) any { return dto.ReservationUpdateFromPatch(p) },
	}
}

// Reviews tabla reviews.
func (c *Client) Reviews() *ReviewTable {
	return &ReviewTable{
		c:      c,
		path:   "/api/reviews",
		create: func(r *entity.Review) any { return dto.ReviewRequestFromEntity(r) },
		patch:  func(p entity.ReviewPatch) any { return dto.ReviewUpdateFromPatch(p) },
	}
}

// Select GET path?col=valor&order=col.asc|desc.
func (t *Table[T, P, R]) Select(ctx context.Context, q repository.Query) ([]*T, error) {
	params := url.Values{}
	for _, f := range q.Filters {
		params.Add(f.Column, fmt.Sprint(f.Value))
	}
	if q.Order != nil {
		params.Set("order", q.Order.String())
	}
	var out dto.ListResponse[R]
	if err := t.c.do(ctx, fiber.MethodGet, t.path, params, nil, &out); err != nil {
		return nil, err
	}
	list := make([]*T, 0, len(out.Items))
	for _, r := range out.Items {
		list = append(list, r.ToEntity())
	}
	return list, nil
}

// Insert POST path; devuelve el registro tal como quedó en el servidor.
func (t *Table[T, P, R]) Insert(ctx context.Context, record *T) (*T, error) {
	var out R
	if err := t.c.do(ctx, fiber.MethodPost, t.path, nil, t.create(record), &out); err != nil {
		return nil, err
	}
	return out.ToEntity(), nil
}

// Update PATCH path/id con solo los campos presentes.
func (t *Table[T, P, R]) Update(ctx context.Context, id string, patch P) (*T, error) {
	var out R
	if err := t.c.do(ctx, fiber.MethodPatch, t.path+"/"+url.PathEscape(id), nil, t.patch(patch), &out); err != nil {
		return nil, err
	}
	return out.ToEntity(), nil
}

// Delete DELETE path/id.
func (t *Table[T, P, R]) Delete(ctx context.Context, id string) error {
	return t.c.do(ctx, fiber.MethodDelete, t.path+"/"+url.PathEscape(id), nil, nil, nil)
}
