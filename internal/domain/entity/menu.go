package entity

import "time"

// MenuCategory sección de la carta. El orden de presentación es el de creación.
type MenuCategory struct {
	ID        string
	Name      string
	Slug      string // único, apto para URL
	Icon      string // referencia al icono (nombre de recurso)
	CreatedAt time.Time
}

// CategoryRef referencia embebida en un plato al leerlo junto con su categoría.
type CategoryRef struct {
	ID   string
	Name string
	Slug string
}

// MenuItem plato de la carta. Price en unidades enteras de la moneda local (sin céntimos).
type MenuItem struct {
	ID          string
	Name        string
	Description string
	Price       int64
	CategoryID  string // obligatorio, referencia a MenuCategory
	ImageURL    string // opcional
	Available   bool
	CreatedAt   time.Time
	UpdatedAt   time.Time
	Category    *CategoryRef // solo en lecturas
}

// MenuCategoryPatch campos modificables de una categoría; nil = sin cambio.
type MenuCategoryPatch struct {
	Name *string
	Slug *string
	Icon *string
}

// IsEmpty indica que el patch no modifica nada.
func (p MenuCategoryPatch) IsEmpty() bool {
	return p.Name == nil && p.Slug == nil && p.Icon == nil
}

// Apply aplica sobre c solo los campos presentes.
func (p MenuCategoryPatch) Apply(c *MenuCategory) {
	if p.Name != nil {
		c.Name = *p.Name
	}
	if p.Slug != nil {
		c.Slug = *p.Slug
	}
	if p.Icon != nil {
		c.Icon = *p.Icon
	}
}

// MenuItemPatch campos modificables de un plato; nil = sin cambio.
type MenuItemPatch struct {
	Name        *string
	Description *string
	Price       *int64
	CategoryID  *string
	ImageURL    *string
	Available   *bool
}

// IsEmpty indica que el patch no modifica nada.
func (p MenuItemPatch) IsEmpty() bool {
	return p.Name == nil && p.Description == nil && p.Price == nil &&
		p.CategoryID == nil && p.ImageURL == nil && p.Available == nil
}

// Apply aplica sobre it solo los campos presentes.
func (p MenuItemPatch) Apply(it *MenuItem) {
	if p.Name != nil {
		it.Name = *p.Name
	}
	if p.Description != nil {
		it.Description = *p.Description
	}
	if p.Price != nil {
		it.Price = *p.Price
	}
	if p.CategoryID != nil {
		it.CategoryID = *p.CategoryID
		it.Category = nil
	}
	if p.ImageURL != nil {
		it.ImageURL = *p.ImageURL
	}
	if p.Available != nil {
		it.Available = *p.Available
	}
}
