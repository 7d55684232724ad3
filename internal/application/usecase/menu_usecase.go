package usecase

import (
	"context"
	"fmt"
	"strings"

	"github.com/jhoicas/afrispot-api/internal/application/dto"
	"github.com/jhoicas/afrispot-api/internal/domain"
	"github.com/jhoicas/afrispot-api/internal/domain/entity"
	"github.com/jhoicas/afrispot-api/internal/domain/menu"
	"github.com/jhoicas/afrispot-api/internal/domain/repository"
	"github.com/jhoicas/afrispot-api/pkg/slug"
)

// MenuUseCase casos de uso de la carta: categorías, platos y carta pública.
type MenuUseCase struct {
	categories repository.MenuCategoryRepository
	items      repository.MenuItemRepository
}

// NewMenuUseCase construye el caso de uso.
func NewMenuUseCase(categories repository.MenuCategoryRepository, items repository.MenuItemRepository) *MenuUseCase {
	return &MenuUseCase{categories: categories, items: items}
}

// ListCategories lista categorías; sin orden explícito usa el canónico.
func (uc *MenuUseCase) ListCategories(ctx context.Context, q repository.Query) ([]dto.CategoryResponse, error) {
	if q.Order == nil {
		q.Order = repository.CanonicalCategoryOrder().Order
	}
	list, err := uc.categories.Select(ctx, q)
	if err != nil {
		return nil, err
	}
	out := make([]dto.CategoryResponse, 0, len(list))
	for _, c := range list {
		out = append(out, dto.ToCategoryResponse(c))
	}
	return out, nil
}

// CreateCategory crea una categoría. Sin slug se genera a partir del nombre; slug repetido → ErrDuplicate.
func (uc *MenuUseCase) CreateCategory(ctx context.Context, in dto.CreateCategoryRequest) (*dto.CategoryResponse, error) {
	if err := dto.Validate(in); err != nil {
		return nil, err
	}
	s := strings.TrimSpace(in.Slug)
	if s == "" {
		s = slug.Make(in.Name)
	}
	if !slug.Valid(s) {
		return nil, fmt.Errorf("%w: slug %q no es válido", domain.ErrInvalidInput, s)
	}
	created, err := uc.categories.Insert(ctx, &entity.MenuCategory{
		Name: strings.TrimSpace(in.Name),
		Slug: s,
		Icon: in.Icon,
	})
	if err != nil {
		return nil, err
	}
	out := dto.ToCategoryResponse(created)
	return &out, nil
}

// UpdateCategory modifica solo los campos presentes.
func (uc *MenuUseCase) UpdateCategory(ctx context.Context, id string, in dto.UpdateCategoryRequest) (*dto.CategoryResponse, error) {
	if err := dto.Validate(in); err != nil {
		return nil, err
	}
	if in.Slug != nil && !slug.Valid(*in.Slug) {
		return nil, fmt.Errorf("%w: slug %q no es válido", domain.ErrInvalidInput, *in.Slug)
	}
	updated, err := uc.categories.Update(ctx, id, in.Patch())
	if err != nil {
		return nil, err
	}
	out := dto.ToCategoryResponse(updated)
	return &out, nil
}

// DeleteCategory elimina la categoría; con platos asociados → ErrConflict.
func (uc *MenuUseCase) DeleteCategory(ctx context.Context, id string) error {
	return uc.categories.Delete(ctx, id)
}

// ListItems lista platos con su categoría; sin orden explícito usa el canónico.
func (uc *MenuUseCase) ListItems(ctx context.Context, q repository.Query) ([]dto.MenuItemResponse, error) {
	if q.Order == nil {
		q.Order = repository.CanonicalItemOrder().Order
	}
	list, err := uc.items.Select(ctx, q)
	if err != nil {
		return nil, err
	}
	out := make([]dto.MenuItemResponse, 0, len(list))
	for _, it := range list {
		out = append(out, dto.ToMenuItemResponse(it))
	}
	return out, nil
}

// CreateItem crea un plato; la categoría debe existir. Available por defecto true.
func (uc *MenuUseCase) CreateItem(ctx context.Context, in dto.CreateMenuItemRequest) (*dto.MenuItemResponse, error) {
	if err := dto.Validate(in); err != nil {
		return nil, err
	}
	if err := uc.requireCategory(ctx, in.CategoryID); err != nil {
		return nil, err
	}
	available := true
	if in.Available != nil {
		available = *in.Available
	}
	created, err := uc.items.Insert(ctx, &entity.MenuItem{
		Name:        strings.TrimSpace(in.Name),
		Description: in.Description,
		Price:       *in.Price,
		CategoryID:  in.CategoryID,
		ImageURL:    in.ImageURL,
		Available:   available,
	})
	if err != nil {
		return nil, err
	}
	out := dto.ToMenuItemResponse(created)
	return &out, nil
}

// UpdateItem modifica solo los campos presentes; un cambio de categoría exige que exista.
func (uc *MenuUseCase) UpdateItem(ctx context.Context, id string, in dto.UpdateMenuItemRequest) (*dto.MenuItemResponse, error) {
	if err := dto.Validate(in); err != nil {
		return nil, err
	}
	if in.CategoryID != nil {
		if err := uc.requireCategory(ctx, *in.CategoryID); err != nil {
			return nil, err
		}
	}
	updated, err := uc.items.Update(ctx, id, in.Patch())
	if err != nil {
		return nil, err
	}
	out := dto.ToMenuItemResponse(updated)
	return &out, nil
}

// DeleteItem elimina el plato.
func (uc *MenuUseCase) DeleteItem(ctx context.Context, id string) error {
	return uc.items.Delete(ctx, id)
}

// PublicMenu carta pública: platos disponibles agrupados por categoría, sin secciones vacías.
func (uc *MenuUseCase) PublicMenu(ctx context.Context) ([]dto.MenuSectionResponse, error) {
	cats, err := uc.categories.Select(ctx, repository.CanonicalCategoryOrder())
	if err != nil {
		return nil, err
	}
	items, err := uc.items.Select(ctx, repository.CanonicalItemOrder().Where("available", true))
	if err != nil {
		return nil, err
	}
	sections := menu.GroupByCategory(cats, items, menu.GroupOptions{OnlyAvailable: true})
	out := make([]dto.MenuSectionResponse, 0, len(sections))
	for _, s := range sections {
		sec := dto.MenuSectionResponse{Category: dto.ToCategoryResponse(s.Category), Items: make([]dto.MenuItemResponse, 0, len(s.Items))}
		for _, it := range s.Items {
			sec.Items = append(sec.Items, dto.ToMenuItemResponse(it))
		}
		out = append(out, sec)
	}
	return out, nil
}

func (uc *MenuUseCase) requireCategory(ctx context.Context, id string) error {
	c, err := uc.categories.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if c == nil {
		return fmt.Errorf("%w: la categoría %s no existe", domain.ErrInvalidInput, id)
	}
	return nil
}
