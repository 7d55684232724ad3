package http

import (
	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog"

	"github.com/jhoicas/afrispot-api/internal/application/dto"
	"github.com/jhoicas/afrispot-api/internal/application/usecase"
)

// ReviewHandler maneja el envío público, el listado público y la moderación de reseñas.
type ReviewHandler struct {
	uc  *usecase.ReviewUseCase
	log zerolog.Logger
}

// NewReviewHandler construye el handler.
func NewReviewHandler(uc *usecase.ReviewUseCase, log zerolog.Logger) *ReviewHandler {
	return &ReviewHandler{uc: uc, log: log}
}

// Create godoc
// @Summary      Enviar reseña (público; queda sin aprobar)
// @Tags         reviews
// @Accept       json
// @Produce      json
// @Param        body  body  dto.CreateReviewRequest  true  "name, rating 1-5, comment"
// @Success      201   {object}  dto.ReviewResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Router       /api/reviews [post]
func (h *ReviewHandler) Create(c *fiber.Ctx) error {
	var in dto.CreateReviewRequest
	if err := c.BodyParser(&in); err != nil {
		return invalidBody(c)
	}
	out, err := h.uc.Submit(c.Context(), in)
	if err != nil {
		return fail(c, h.log, err)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// Public godoc
// @Summary      Reseñas aprobadas
// @Tags         reviews
// @Produce      json
// @Success      200  {object}  dto.ListResponse[dto.ReviewResponse]
// @Router       /api/reviews/public [get]
func (h *ReviewHandler) Public(c *fiber.Ctx) error {
	out, err := h.uc.Public(c.Context())
	if err != nil {
		return fail(c, h.log, err)
	}
	return c.JSON(dto.NewList(out))
}

// List godoc
// @Summary      Listar reseñas (moderación)
// @Tags         reviews
// @Security     Bearer
// @Produce      json
// @Param        approved  query  bool    false  "Filtrar por aprobadas"
// @Param        featured  query  bool    false  "Filtrar por destacadas"
// @Param        order     query  string  false  "columna.asc|desc (por defecto created_at.desc)"
// @Success      200       {object}  dto.ListResponse[dto.ReviewResponse]
// @Failure      400       {object}  dto.ErrorResponse
// @Router       /api/reviews [get]
func (h *ReviewHandler) List(c *fiber.Ctx) error {
	q, err := listQuery(c, "id", "approved", "featured", "rating")
	if err != nil {
		return fail(c, h.log, err)
	}
	out, err := h.uc.List(c.Context(), q)
	if err != nil {
		return fail(c, h.log, err)
	}
	return c.JSON(dto.NewList(out))
}

// Update godoc
// @Summary      Moderar reseña (approved/featured)
// @Tags         reviews
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        id    path  string  true  "ID de la reseña"
// @Param        body  body  dto.UpdateReviewRequest  true  "approved, featured"
// @Success      200   {object}  dto.ReviewResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Router       /api/reviews/{id} [patch]
func (h *ReviewHandler) Update(c *fiber.Ctx) error {
	var in dto.UpdateReviewRequest
	if err := c.BodyParser(&in); err != nil {
		return invalidBody(c)
	}
	out, err := h.uc.Moderate(c.Context(), c.Params("id"), in)
	if err != nil {
		return fail(c, h.log, err)
	}
	return c.JSON(out)
}

// Delete godoc
// @Summary      Eliminar reseña
// @Tags         reviews
// @Security     Bearer
// @Param        id   path  string  true  "ID de la reseña"
// @Success      204
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/reviews/{id} [delete]
func (h *ReviewHandler) Delete(c *fiber.Ctx) error {
	if err := h.uc.Delete(c.Context(), c.Params("id")); err != nil {
		return fail(c, h.log, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}
