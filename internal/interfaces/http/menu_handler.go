package http

import (
	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog"

	"github.com/jhoicas/afrispot-api/internal/application/dto"
	"github.com/jhoicas/afrispot-api/internal/application/usecase"
)

// MenuHandler maneja categorías, platos y la carta pública.
type MenuHandler struct {
	uc  *usecase.MenuUseCase
	log zerolog.Logger
}

// NewMenuHandler construye el handler.
func NewMenuHandler(uc *usecase.MenuUseCase, log zerolog.Logger) *MenuHandler {
	return &MenuHandler{uc: uc, log: log}
}

// ListCategories godoc
// @Summary      Listar categorías
// @Tags         menu
// @Produce      json
// @Param        slug   query  string  false  "Filtrar por slug"
// @Param        order  query  string  false  "columna.asc|desc (por defecto created_at.asc)"
// @Success      200    {object}  dto.ListResponse[dto.CategoryResponse]
// @Failure      400    {object}  dto.ErrorResponse
// @Router       /api/menu/categories [get]
func (h *MenuHandler) ListCategories(c *fiber.Ctx) error {
	q, err := listQuery(c, "id", "slug")
	if err != nil {
		return fail(c, h.log, err)
	}
	out, err := h.uc.ListCategories(c.Context(), q)
	if err != nil {
		return fail(c, h.log, err)
	}
	return c.JSON(dto.NewList(out))
}

// CreateCategory godoc
// @Summary      Crear categoría
// @Tags         menu
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.CreateCategoryRequest  true  "name, slug opcional, icon"
// @Success      201   {object}  dto.CategoryResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/menu/categories [post]
func (h *MenuHandler) CreateCategory(c *fiber.Ctx) error {
	var in dto.CreateCategoryRequest
	if err := c.BodyParser(&in); err != nil {
		return invalidBody(c)
	}
	out, err := h.uc.CreateCategory(c.Context(), in)
	if err != nil {
		return fail(c, h.log, err)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// UpdateCategory godoc
// @Summary      Actualizar categoría (solo campos presentes)
// @Tags         menu
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        id    path  string  true  "ID de la categoría"
// @Param        body  body  dto.UpdateCategoryRequest  true  "Campos a actualizar"
// @Success      200   {object}  dto.CategoryResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/menu/categories/{id} [patch]
func (h *MenuHandler) UpdateCategory(c *fiber.Ctx) error {
	var in dto.UpdateCategoryRequest
	if err := c.BodyParser(&in); err != nil {
		return invalidBody(c)
	}
	out, err := h.uc.UpdateCategory(c.Context(), c.Params("id"), in)
	if err != nil {
		return fail(c, h.log, err)
	}
	return c.JSON(out)
}

// DeleteCategory godoc
// @Summary      Eliminar categoría (sin platos asociados)
// @Tags         menu
// @Security     Bearer
// @Param        id   path  string  true  "ID de la categoría"
// @Success      204
// @Failure      404  {object}  dto.ErrorResponse
// @Failure      409  {object}  dto.ErrorResponse
// @Router       /api/menu/categories/{id} [delete]
func (h *MenuHandler) DeleteCategory(c *fiber.Ctx) error {
	if err := h.uc.DeleteCategory(c.Context(), c.Params("id")); err != nil {
		return fail(c, h.log, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}

// ListItems godoc
// @Summary      Listar platos con su categoría
// @Tags         menu
// @Produce      json
// @Param        category_id  query  string  false  "Filtrar por categoría"
// @Param        available    query  bool    false  "Filtrar por disponibilidad"
// @Param        order        query  string  false  "columna.asc|desc (por defecto created_at.desc)"
// @Success      200          {object}  dto.ListResponse[dto.MenuItemResponse]
// @Failure      400          {object}  dto.ErrorResponse
// @Router       /api/menu/items [get]
func (h *MenuHandler) ListItems(c *fiber.Ctx) error {
	q, err := listQuery(c, "id", "category_id", "available")
	if err != nil {
		return fail(c, h.log, err)
	}
	out, err := h.uc.ListItems(c.Context(), q)
	if err != nil {
		return fail(c, h.log, err)
	}
	return c.JSON(dto.NewList(out))
}

// CreateItem godoc
// @Summary      Crear plato
// @Tags         menu
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.CreateMenuItemRequest  true  "Datos del plato"
// @Success      201   {object}  dto.MenuItemResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Router       /api/menu/items [post]
func (h *MenuHandler) CreateItem(c *fiber.Ctx) error {
	var in dto.CreateMenuItemRequest
	if err := c.BodyParser(&in); err != nil {
		return invalidBody(c)
	}
	out, err := h.uc.CreateItem(c.Context(), in)
	if err != nil {
		return fail(c, h.log, err)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// UpdateItem godoc
// @Summary      Actualizar plato (solo campos presentes)
// @Tags         menu
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        id    path  string  true  "ID del plato"
// @Param        body  body  dto.UpdateMenuItemRequest  true  "Campos a actualizar"
// @Success      200   {object}  dto.MenuItemResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Router       /api/menu/items/{id} [patch]
func (h *MenuHandler) UpdateItem(c *fiber.Ctx) error {
	var in dto.UpdateMenuItemRequest
	if err := c.BodyParser(&in); err != nil {
		return invalidBody(c)
	}
	out, err := h.uc.UpdateItem(c.Context(), c.Params("id"), in)
	if err != nil {
		return fail(c, h.log, err)
	}
	return c.JSON(out)
}

// DeleteItem godoc
// @Summary      Eliminar plato
// @Tags         menu
// @Security     Bearer
// @Param        id   path  string  true  "ID del plato"
// @Success      204
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/menu/items/{id} [delete]
func (h *MenuHandler) DeleteItem(c *fiber.Ctx) error {
	if err := h.uc.DeleteItem(c.Context(), c.Params("id")); err != nil {
		return fail(c, h.log, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}

// PublicMenu godoc
// @Summary      Carta pública agrupada por categoría (solo disponibles)
// @Tags         menu
// @Produce      json
// @Success      200  {array}  dto.MenuSectionResponse
// @Router       /api/menu [get]
func (h *MenuHandler) PublicMenu(c *fiber.Ctx) error {
	out, err := h.uc.PublicMenu(c.Context())
	if err != nil {
		return fail(c, h.log, err)
	}
	return c.JSON(out)
}
