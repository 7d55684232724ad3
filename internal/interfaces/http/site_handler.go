package http

import (
	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog"

	"github.com/jhoicas/afrispot-api/internal/application/usecase"
)

// SiteHandler sitemap del sitio público.
type SiteHandler struct {
	uc  *usecase.SitemapUseCase
	log zerolog.Logger
}

// NewSiteHandler construye el handler.
func NewSiteHandler(uc *usecase.SitemapUseCase, log zerolog.Logger) *SiteHandler {
	return &SiteHandler{uc: uc, log: log}
}

// Sitemap godoc
// @Summary      Sitemap XML del sitio público
// @Tags         site
// @Produce      xml
// @Success      200
// @Router       /sitemap.xml [get]
func (h *SiteHandler) Sitemap(c *fiber.Ctx) error {
	out, err := h.uc.Build(c.Context())
	if err != nil {
		return fail(c, h.log, err)
	}
	c.Set(fiber.HeaderContentType, fiber.MIMEApplicationXMLCharsetUTF8)
	return c.Send(out)
}
