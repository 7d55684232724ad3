package dto

import (
	"time"

	"github.com/jhoicas/afrispot-api/internal/domain/entity"
)

// CreateCategoryRequest entrada para crear una categoría. Slug se genera desde Name si falta.
type CreateCategoryRequest struct {
	Name string `json:"name" validate:"required,min=1,max=100"`
	Slug string `json:"slug" validate:"omitempty,max=100"`
	Icon string `json:"icon" validate:"omitempty,max=100"`
}

// UpdateCategoryRequest entrada para actualizar una categoría (solo campos presentes).
type UpdateCategoryRequest struct {
	Name *string `json:"name,omitempty" validate:"omitempty,min=1,max=100"`
	Slug *string `json:"slug,omitempty" validate:"omitempty,min=1,max=100"`
	Icon *string `json:"icon,omitempty" validate:"omitempty,max=100"`
}

// Patch convierte la petición en el patch de dominio.
func (r UpdateCategoryRequest) Patch() entity.MenuCategoryPatch {
	return entity.MenuCategoryPatch{Name: r.Name, Slug: r.Slug, Icon: r.Icon}
}

// CategoryUpdateFromPatch inverso de Patch, para enviar el patch al backend.
func CategoryUpdateFromPatch(p entity.MenuCategoryPatch) UpdateCategoryRequest {
	return UpdateCategoryRequest{Name: p.Name, Slug: p.Slug, Icon: p.Icon}
}

// CategoryResponse salida de una categoría.
type CategoryResponse struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Slug      string    `json:"slug"`
	Icon      string    `json:"icon"`
	CreatedAt time.Time `json:"created_at"`
}

// CategoryRefResponse categoría embebida en un plato.
type CategoryRefResponse struct {
	ID   string `json:"id"`
	Name string `json:"name"`
	Slug string `json:"slug"`
}

// CreateMenuItemRequest entrada para crear un plato.
type CreateMenuItemRequest struct {
	Name        string `json:"name" validate:"required,min=1,max=200"`
	Description string `json:"description" validate:"required,max=2000"`
	Price       *int64 `json:"price" validate:"required,gte=0"`
	CategoryID  string `json:"category_id" validate:"required"`
	ImageURL    string `json:"image_url,omitempty" validate:"omitempty,max=500"`
	Available   *bool  `json:"available,omitempty"` // por defecto true
}

// UpdateMenuItemRequest entrada para actualizar un plato (solo campos presentes).
type UpdateMenuItemRequest struct {
	Name        *string `json:"name,omitempty" validate:"omitempty,min=1,max=200"`
	Description *string `json:"description,omitempty" validate:"omitempty,min=1,max=2000"`
	Price       *int64  `json:"price,omitempty" validate:"omitempty,gte=0"`
	CategoryID  *string `json:"category_id,omitempty" validate:"omitempty,min=1"`
	ImageURL    *string `json:"image_url,omitempty" validate:"omitempty,max=500"`
	Available   *bool   `json:"available,omitempty"`
}

// Patch convierte la petición en el patch de dominio.
func (r UpdateMenuItemRequest) Patch() entity.MenuItemPatch {
	return entity.MenuItemPatch{
		Name: r.Name, Description: r.Description, Price: r.Price,
		CategoryID: r.CategoryID, ImageURL: r.ImageURL, Available: r.Available,
	}
}

// MenuItemUpdateFromPatch inverso de Patch.
func MenuItemUpdateFromPatch(p entity.MenuItemPatch) UpdateMenuItemRequest {
	return UpdateMenuItemRequest{
		Name: p.Name, Description: p.Description, Price: p.Price,
		CategoryID: p.CategoryID, ImageURL: p.ImageURL, Available: p.Available,
	}
}

// MenuItemRequestFromEntity petición de alta a partir del registro que se quiere crear.
func MenuItemRequestFromEntity(it *entity.MenuItem) CreateMenuItemRequest {
	price := it.Price
	available := it.Available
	return CreateMenuItemRequest{
		Name:        it.Name,
		Description: it.Description,
		Price:       &price,
		CategoryID:  it.CategoryID,
		ImageURL:    it.ImageURL,
		Available:   &available,
	}
}

// MenuItemResponse salida de un plato con su categoría.
type MenuItemResponse struct {
	ID          string               `json:"id"`
	Name        string               `json:"name"`
	Description string               `json:"description"`
	Price       int64                `json:"price"`
	CategoryID  string               `json:"category_id"`
	ImageURL    string               `json:"image_url,omitempty"`
	Available   bool                 `json:"available"`
	CreatedAt   time.Time            `json:"created_at"`
	UpdatedAt   time.Time            `json:"updated_at"`
	Category    *CategoryRefResponse `json:"category,omitempty"`
}

// MenuSectionResponse categoría con sus platos disponibles (carta pública).
type MenuSectionResponse struct {
	Category CategoryResponse   `json:"category"`
	Items    []MenuItemResponse `json:"items"`
}

// ToCategoryResponse convierte la entidad en DTO.
func ToCategoryResponse(c *entity.MenuCategory) CategoryResponse {
	return CategoryResponse{ID: c.ID, Name: c.Name, Slug: c.Slug, Icon: c.Icon, CreatedAt: c.CreatedAt}
}

// ToEntity convierte el DTO en entidad.
func (r CategoryResponse) ToEntity() *entity.MenuCategory {
	return &entity.MenuCategory{ID: r.ID, Name: r.Name, Slug: r.Slug, Icon: r.Icon, CreatedAt: r.CreatedAt}
}

// ToMenuItemResponse convierte la entidad en DTO.
func ToMenuItemResponse(it *entity.MenuItem) MenuItemResponse {
	out := MenuItemResponse{
		ID:          it.ID,
		Name:        it.Name,
		Description: it.Description,
		Price:       it.Price,
		CategoryID:  it.CategoryID,
		ImageURL:    it.ImageURL,
		Available:   it.Available,
		CreatedAt:   it.CreatedAt,
		UpdatedAt:   it.UpdatedAt,
	}
	if it.Category != nil {
		out.Category = &CategoryRefResponse{ID: it.Category.ID, Name: it.Category.Name, Slug: it.Category.Slug}
	}
	return out
}

// ToEntity convierte el DTO en entidad.
func (r MenuItemResponse) ToEntity() *entity.MenuItem {
	it := &entity.MenuItem{
		ID:          r.ID,
		Name:        r.Name,
		Description: r.Description,
		Price:       r.Price,
		CategoryID:  r.CategoryID,
		ImageURL:    r.ImageURL,
		Available:   r.Available,
		CreatedAt:   r.CreatedAt,
		UpdatedAt:   r.UpdatedAt,
	}
	if r.Category != nil {
		it.Category = &entity.CategoryRef{ID: r.Category.ID, Name: r.Category.Name, Slug: r.Category.Slug}
	}
	return it
}
