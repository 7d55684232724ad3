package console

import (
	"context"
	"fmt"

	"github.com/jhoicas/afrispot-api/internal/application/notice"
	"github.com/jhoicas/afrispot-api/internal/domain"
	"github.com/jhoicas/afrispot-api/internal/domain/entity"
	"github.com/jhoicas/afrispot-api/internal/domain/menu"
	"github.com/jhoicas/afrispot-api/pkg/slug"
)

// AddCategory crea una categoría; sin slug se genera a partir del nombre.
func (c *Console) AddCategory(ctx context.Context, name, slugValue, icon string) (*entity.MenuCategory, error) {
	if slugValue == "" {
		slugValue = slug.Make(name)
	}
	return c.Categories.Create(ctx, &entity.MenuCategory{Name: name, Slug: slugValue, Icon: icon})
}

// AddMenuItem añade un plato a la carta.
func (c *Console) AddMenuItem(ctx context.Context, item *entity.MenuItem) (*entity.MenuItem, error) {
	return c.Items.Create(ctx, item)
}

// ToggleAvailability invierte la disponibilidad del plato según la caché actual.
func (c *Console) ToggleAvailability(ctx context.Context, id string) (*entity.MenuItem, error) {
	it, ok := c.Items.Find(id)
	if !ok {
		err := fmt.Errorf("plato %s: %w", id, domain.ErrNotFound)
		c.Feed.Notify(notice.Failure(err, "Plato no encontrado"))
		return nil, err
	}
	available := !it.Available
	return c.Items.Update(ctx, id, entity.MenuItemPatch{Available: &available})
}

// MenuSections platos agrupados por categoría a partir de la caché.
// La vista pública solo muestra platos disponibles y oculta las secciones vacías.
func (c *Console) MenuSections(public bool) []menu.Section {
	cats := c.Categories.List().Items
	items := c.Items.List().Items
	return menu.GroupByCategory(cats, items, menu.GroupOptions{OnlyAvailable: public, KeepEmpty: !public})
}
