package http

import (
	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog"

	appanalytics "github.com/jhoicas/afrispot-api/internal/application/analytics"
)

// DashboardHandler maneja el resumen del panel de administración.
type DashboardHandler struct {
	uc  *appanalytics.DashboardUseCase
	log zerolog.Logger
}

// NewDashboardHandler construye el handler.
func NewDashboardHandler(uc *appanalytics.DashboardUseCase, log zerolog.Logger) *DashboardHandler {
	return &DashboardHandler{uc: uc, log: log}
}

// GetSummary devuelve los contadores de reservas, reseñas y carta.
// GET /api/admin/dashboard
//
// Respuesta: DashboardResponse (reservations, reviews con average_rating, menu).
// Los contadores se calculan en la base de datos en cada llamada.
func (h *DashboardHandler) GetSummary(c *fiber.Ctx) error {
	summary, err := h.uc.GetSummary(c.Context())
	if err != nil {
		return fail(c, h.log, err)
	}
	return c.JSON(summary)
}
