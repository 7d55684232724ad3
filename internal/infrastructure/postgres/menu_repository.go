package postgres

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/jhoicas/afrispot-api/internal/domain"
	"github.com/jhoicas/afrispot-api/internal/domain/entity"
	"github.com/jhoicas/afrispot-api/internal/domain/repository"
)

var (
	_ repository.MenuCategoryRepository = (*MenuCategoryRepo)(nil)
	_ repository.MenuItemRepository     = (*MenuItemRepo)(nil)
)

var categoryColumns = columns{
	"id":         {"id", kindUUID},
	"name":       {"name", kindText},
	"slug":       {"slug", kindText},
	"created_at": {"created_at", kindTime},
}

// MenuCategoryRepo tabla menu_categories sobre PostgreSQL (usable con pool o tx).
type MenuCategoryRepo struct {
	q Querier
}

// NewMenuCategoryRepository construye el adaptador. Pasar pool o tx (Querier).
func NewMenuCategoryRepository(q Querier) *MenuCategoryRepo {
	return &MenuCategoryRepo{q: q}
}

const selectCategory = `SELECT id, name, slug, icon, created_at FROM menu_categories`

func scanCategory(row pgx.Row) (*entity.MenuCategory, error) {
	var c entity.MenuCategory
	if err := row.Scan(&c.ID, &c.Name, &c.Slug, &c.Icon, &c.CreatedAt); err != nil {
		return nil, err
	}
	return &c, nil
}

// Select lista categorías con filtros y orden de la lista blanca.
func (r *MenuCategoryRepo) Select(ctx context.Context, q repository.Query) ([]*entity.MenuCategory, error) {
	where, args, err := buildWhereOrder(categoryColumns, q, nil)
	if err != nil {
		return nil, err
	}
	rows, err := r.q.Query(ctx, selectCategory+where, args...)
	if err != nil {
		return nil, fmt.Errorf("list categories: %w", err)
	}
	defer rows.Close()
	var list []*entity.MenuCategory
	for rows.Next() {
		c, err := scanCategory(rows)
		if err != nil {
			return nil, fmt.Errorf("scan category: %w", err)
		}
		list = append(list, c)
	}
	return list, rows.Err()
}

// Insert persiste una categoría. Slug repetido → ErrDuplicate.
func (r *MenuCategoryRepo) Insert(ctx context.Context, c *entity.MenuCategory) (*entity.MenuCategory, error) {
	if c.ID == "" {
		c.ID = uuid.New().String()
	}
	row := r.q.QueryRow(ctx, `
		INSERT INTO menu_categories (id, name, slug, icon)
		VALUES ($1, $2, $3, $4)
		RETURNING id, name, slug, icon, created_at`,
		c.ID, c.Name, c.Slug, c.Icon,
	)
	created, err := scanCategory(row)
	if err != nil {
		return nil, mapWriteError("insert category", err)
	}
	return created, nil
}

// Update aplica solo los campos presentes del patch.
func (r *MenuCategoryRepo) Update(ctx context.Context, id string, p entity.MenuCategoryPatch) (*entity.MenuCategory, error) {
	set := newSetList()
	set.add("name", p.Name)
	set.add("slug", p.Slug)
	set.add("icon", p.Icon)
	if set.empty() {
		return r.mustGet(ctx, id)
	}
	sql, args := set.sql("menu_categories", id, "id, name, slug, icon, created_at", false)
	c, err := scanCategory(r.q.QueryRow(ctx, sql, args...))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, fmt.Errorf("update category %s: %w", id, domain.ErrNotFound)
		}
		return nil, mapWriteError("update category", err)
	}
	return c, nil
}

// Delete elimina la categoría. Con platos asociados → ErrConflict (ON DELETE RESTRICT).
func (r *MenuCategoryRepo) Delete(ctx context.Context, id string) error {
	return deleteByID(ctx, r.q, "menu_categories", id)
}

// GetByID obtiene una categoría o (nil, nil).
func (r *MenuCategoryRepo) GetByID(ctx context.Context, id string) (*entity.MenuCategory, error) {
	return r.getBy(ctx, "id", id)
}

// GetBySlug obtiene una categoría por slug o (nil, nil).
func (r *MenuCategoryRepo) GetBySlug(ctx context.Context, slug string) (*entity.MenuCategory, error) {
	return r.getBy(ctx, "slug", slug)
}

func (r *MenuCategoryRepo) getBy(ctx context.Context, column, value string) (*entity.MenuCategory, error) {
	c, err := scanCategory(r.q.QueryRow(ctx, selectCategory+" WHERE "+column+" = $1", value))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) || pgCode(err) == "22P02" {
			return nil, nil
		}
		return nil, fmt.Errorf("get category by %s: %w", column, err)
	}
	return c, nil
}

func (r *MenuCategoryRepo) mustGet(ctx context.Context, id string) (*entity.MenuCategory, error) {
	c, err := r.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if c == nil {
		return nil, fmt.Errorf("category %s: %w", id, domain.ErrNotFound)
	}
	return c, nil
}

// ──────────────────────────────────────────────────────────────────────────────
// Platos
// ──────────────────────────────────────────────────────────────────────────────

var itemColumns = columns{
	"id":          {"i.id", kindUUID},
	"name":        {"i.name", kindText},
	"price":       {"i.price", kindInt},
	"category_id": {"i.category_id", kindUUID},
	"available":   {"i.available", kindBool},
	"created_at":  {"i.created_at", kindTime},
	"updated_at":  {"i.updated_at", kindTime},
}

// MenuItemRepo tabla menu_items sobre PostgreSQL. Las lecturas incluyen la categoría.
type MenuItemRepo struct {
	q Querier
}

// NewMenuItemRepository construye el adaptador. Pasar pool o tx (Querier).
func NewMenuItemRepository(q Querier) *MenuItemRepo {
	return &MenuItemRepo{q: q}
}

const selectItem = `
	SELECT i.id, i.name, i.description, i.price, i.category_id, i.image_url, i.available,
	       i.created_at, i.updated_at, c.id, c.name, c.slug
	FROM menu_items i
	LEFT JOIN menu_categories c ON c.id = i.category_id`

func scanItem(row pgx.Row) (*entity.MenuItem, error) {
	var it entity.MenuItem
	var catID, catName, catSlug *string
	if err := row.Scan(
		&it.ID, &it.Name, &it.Description, &it.Price, &it.CategoryID, &it.ImageURL, &it.Available,
		&it.CreatedAt, &it.UpdatedAt, &catID, &catName, &catSlug,
	); err != nil {
		return nil, err
	}
	if catID != nil {
		it.Category = &entity.CategoryRef{ID: *catID, Name: deref(catName), Slug: deref(catSlug)}
	}
	return &it, nil
}

// Select lista platos con su categoría.
func (r *MenuItemRepo) Select(ctx context.Context, q repository.Query) ([]*entity.MenuItem, error) {
	where, args, err := buildWhereOrder(itemColumns, q, nil)
	if err != nil {
		return nil, err
	}
	rows, err := r.q.Query(ctx, selectItem+where, args...)
	if err != nil {
		return nil, fmt.Errorf("list menu items: %w", err)
	}
	defer rows.Close()
	var list []*entity.MenuItem
	for rows.Next() {
		it, err := scanItem(rows)
		if err != nil {
			return nil, fmt.Errorf("scan menu item: %w", err)
		}
		list = append(list, it)
	}
	return list, rows.Err()
}

// Insert persiste un plato. Categoría inexistente → ErrConflict; precio negativo → ErrInvalidInput.
func (r *MenuItemRepo) Insert(ctx context.Context, it *entity.MenuItem) (*entity.MenuItem, error) {
	if it.ID == "" {
		it.ID = uuid.New().String()
	}
	_, err := r.q.Exec(ctx, `
		INSERT INTO menu_items (id, name, description, price, category_id, image_url, available)
		VALUES ($1, $2, $3, $4, $5, $6, $7)`,
		it.ID, it.Name, it.Description, it.Price, it.CategoryID, it.ImageURL, it.Available,
	)
	if err != nil {
		return nil, mapWriteError("insert menu item", err)
	}
	return r.mustGet(ctx, it.ID)
}

// Update aplica solo los campos presentes del patch.
func (r *MenuItemRepo) Update(ctx context.Context, id string, p entity.MenuItemPatch) (*entity.MenuItem, error) {
	set := newSetList()
	set.add("name", p.Name)
	set.add("description", p.Description)
	set.add("price", p.Price)
	set.add("category_id", p.CategoryID)
	set.add("image_url", p.ImageURL)
	set.add("available", p.Available)
	if !set.empty() {
		sql, args := set.sql("menu_items", id, "id", true)
		var got string
		if err := r.q.QueryRow(ctx, sql, args...).Scan(&got); err != nil {
			if errors.Is(err, pgx.ErrNoRows) || pgCode(err) == "22P02" {
				return nil, fmt.Errorf("update menu item %s: %w", id, domain.ErrNotFound)
			}
			return nil, mapWriteError("update menu item", err)
		}
	}
	return r.mustGet(ctx, id)
}

// Delete elimina el plato.
func (r *MenuItemRepo) Delete(ctx context.Context, id string) error {
	return deleteByID(ctx, r.q, "menu_items", id)
}

// GetByID obtiene un plato o (nil, nil).
func (r *MenuItemRepo) GetByID(ctx context.Context, id string) (*entity.MenuItem, error) {
	it, err := scanItem(r.q.QueryRow(ctx, selectItem+" WHERE i.id = $1", id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) || pgCode(err) == "22P02" {
			return nil, nil
		}
		return nil, fmt.Errorf("get menu item: %w", err)
	}
	return it, nil
}

func (r *MenuItemRepo) mustGet(ctx context.Context, id string) (*entity.MenuItem, error) {
	it, err := r.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if it == nil {
		return nil, fmt.Errorf("menu item %s: %w", id, domain.ErrNotFound)
	}
	return it, nil
}

// ──────────────────────────────────────────────────────────────────────────────
// Helpers comunes de escritura
// ──────────────────────────────────────────────────────────────────────────────

// setList cláusula SET de un UPDATE parcial; solo entran los campos no nil.
type setList struct {
	cols []string
	args []any
}

func newSetList() *setList { return &setList{} }

func (s *setList) add(column string, value any) {
	switch v := value.(type) {
	case *string:
		if v == nil {
			return
		}
		value = *v
	case *int64:
		if v == nil {
			return
		}
		value = *v
	case *bool:
		if v == nil {
			return
		}
		value = *v
	case *entity.ReservationStatus:
		if v == nil {
			return
		}
		value = string(*v)
	}
	s.args = append(s.args, value)
	s.cols = append(s.cols, fmt.Sprintf("%s = $%d", column, len(s.args)))
}

func (s *setList) empty() bool { return len(s.cols) == 0 }

// sql UPDATE table SET ... WHERE id = $n RETURNING returning.
func (s *setList) sql(table, id, returning string, touch bool) (string, []any) {
	cols := s.cols
	if touch {
		cols = append(cols, "updated_at = now()")
	}
	args := append(s.args, id)
	return fmt.Sprintf("UPDATE %s SET %s WHERE id = $%d RETURNING %s",
		table, strings.Join(cols, ", "), len(args), returning), args
}

func deleteByID(ctx context.Context, q Querier, table, id string) error {
	tag, err := q.Exec(ctx, "DELETE FROM "+table+" WHERE id = $1", id)
	if err != nil {
		if pgCode(err) == "22P02" {
			return fmt.Errorf("delete %s %s: %w", table, id, domain.ErrNotFound)
		}
		return mapWriteError("delete "+table, err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("delete %s %s: %w", table, id, domain.ErrNotFound)
	}
	return nil
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}

