package http

import (
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog"

	"github.com/jhoicas/afrispot-api/internal/application/dto"
	"github.com/jhoicas/afrispot-api/internal/application/usecase"
)

// ReservationHandler maneja el formulario público y la gestión de reservas.
type ReservationHandler struct {
	uc       *usecase.ReservationUseCase
	location *time.Location
	log      zerolog.Logger
}

// NewReservationHandler construye el handler. loc es la zona horaria del restaurante
// para interpretar ?date= de la hoja del día.
func NewReservationHandler(uc *usecase.ReservationUseCase, loc *time.Location, log zerolog.Logger) *ReservationHandler {
	if loc == nil {
		loc = time.UTC
	}
	return &ReservationHandler{uc: uc, location: loc, log: log}
}

// Create godoc
// @Summary      Enviar reserva (público; queda pendiente)
// @Tags         reservations
// @Accept       json
// @Produce      json
// @Param        body  body  dto.CreateReservationRequest  true  "guests acepta 4, \"4\" u \"8+\""
// @Success      201   {object}  dto.ReservationResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Router       /api/reservations [post]
func (h *ReservationHandler) Create(c *fiber.Ctx) error {
	var in dto.CreateReservationRequest
	if err := c.BodyParser(&in); err != nil {
		return invalidBody(c)
	}
	out, err := h.uc.Submit(c.Context(), in)
	if err != nil {
		return fail(c, h.log, err)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// List godoc
// @Summary      Listar reservas
// @Tags         reservations
// @Security     Bearer
// @Produce      json
// @Param        status  query  string  false  "pending|confirmed|cancelled"
// @Param        order   query  string  false  "columna.asc|desc (por defecto datetime.desc)"
// @Success      200     {object}  dto.ListResponse[dto.ReservationResponse]
// @Failure      400     {object}  dto.ErrorResponse
// @Router       /api/reservations [get]
func (h *ReservationHandler) List(c *fiber.Ctx) error {
	q, err := listQuery(c, "id", "status")
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
// @Summary      Cambiar estado de una reserva
// @Tags         reservations
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        id    path  string  true  "ID de la reserva"
// @Param        body  body  dto.UpdateReservationRequest  true  "status"
// @Success      200   {object}  dto.ReservationResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/reservations/{id} [patch]
func (h *ReservationHandler) Update(c *fiber.Ctx) error {
	var in dto.UpdateReservationRequest
	if err := c.BodyParser(&in); err != nil {
		return invalidBody(c)
	}
	out, err := h.uc.UpdateStatus(c.Context(), c.Params("id"), in)
	if err != nil {
		return fail(c, h.log, err)
	}
	return c.JSON(out)
}

// Delete godoc
// @Summary      Eliminar reserva
// @Tags         reservations
// @Security     Bearer
// @Param        id   path  string  true  "ID de la reserva"
// @Success      204
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/reservations/{id} [delete]
func (h *ReservationHandler) Delete(c *fiber.Ctx) error {
	if err := h.uc.Delete(c.Context(), c.Params("id")); err != nil {
		return fail(c, h.log, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}

// Sheet godoc
// @Summary      Hoja de reservas del día en PDF
// @Tags         admin
// @Security     Bearer
// @Produce      application/pdf
// @Param        date  query  string  false  "YYYY-MM-DD (por defecto hoy)"
// @Success      200
// @Failure      400   {object}  dto.ErrorResponse
// @Router       /api/admin/reservations/sheet [get]
func (h *ReservationHandler) Sheet(c *fiber.Ctx) error {
	day := time.Now().In(h.location)
	if s := c.Query("date"); s != "" {
		d, err := time.ParseInLocation("2006-01-02", s, h.location)
		if err != nil {
			return respondError(c, dto.CodeValidation, "date debe tener el formato YYYY-MM-DD")
		}
		day = d
	}
	pdf, err := h.uc.Sheet(c.Context(), day)
	if err != nil {
		return fail(c, h.log, err)
	}
	c.Set(fiber.HeaderContentType, "application/pdf")
	c.Set(fiber.HeaderContentDisposition, `inline; filename="reservas-`+day.Format("2006-01-02")+`.pdf"`)
	return c.Send(pdf)
}
