// Package menu agrupa los platos de la carta por sección.
package menu

import "github.com/jhoicas/afrispot-api/internal/domain/entity"

// Section categoría con sus platos, en el orden recibido.
type Section struct {
	Category *entity.MenuCategory
	Items    []*entity.MenuItem
}

// GroupOptions controla qué se incluye al agrupar.
type GroupOptions struct {
	OnlyAvailable bool // vista pública: solo platos disponibles
	KeepEmpty     bool // incluir categorías sin platos
}

// GroupByCategory coloca cada plato únicamente bajo la categoría cuyo ID coincide con su CategoryID.
// Los platos huérfanos (categoría inexistente o vacía) se descartan; no existe sección "sin categoría".
// Las secciones siguen el orden de categories.
func GroupByCategory(categories []*entity.MenuCategory, items []*entity.MenuItem, opts GroupOptions) []Section {
	idx := make(map[string]int, len(categories))
	sections := make([]Section, len(categories))
	for i, c := range categories {
		idx[c.ID] = i
		sections[i] = Section{Category: c}
	}
	for _, it := range items {
		if opts.OnlyAvailable && !it.Available {
			continue
		}
		i, ok := idx[it.CategoryID]
		if !ok || it.CategoryID == "" {
			continue
		}
		sections[i].Items = append(sections[i].Items, it)
	}
	if opts.KeepEmpty {
		return sections
	}
	out := sections[:0]
	for _, s := range sections {
		if len(s.Items) > 0 {
			out = append(out, s)
		}
	}
	return out
}
