package usecase

import (
	"context"

	"github.com/jhoicas/afrispot-api/internal/application/dto"
	"github.com/jhoicas/afrispot-api/internal/application/ports"
	"github.com/jhoicas/afrispot-api/internal/domain/repository"
)

// publicSections anclas de la página pública, en orden de aparición.
var publicSections = []struct {
	anchor     string
	changeFreq string
	priority   string
}{
	{"", "weekly", "1.0"},
	{"#about", "monthly", "0.6"},
	{"#menu", "weekly", "0.9"},
	{"#reservation", "monthly", "0.8"},
	{"#testimonials", "weekly", "0.5"},
}

// SitemapUseCase genera el sitemap del sitio público.
type SitemapUseCase struct {
	categories repository.MenuCategoryRepository
	renderer   ports.SitemapRenderer
	siteURL    string
}

// NewSitemapUseCase construye el caso de uso. siteURL sin barra final.
func NewSitemapUseCase(categories repository.MenuCategoryRepository, renderer ports.SitemapRenderer, siteURL string) *SitemapUseCase {
	return &SitemapUseCase{categories: categories, renderer: renderer, siteURL: siteURL}
}

// Build secciones públicas más una entrada por categoría de la carta.
func (uc *SitemapUseCase) Build(ctx context.Context) ([]byte, error) {
	cats, err := uc.categories.Select(ctx, repository.CanonicalCategoryOrder())
	if err != nil {
		return nil, err
	}
	entries := make([]dto.SitemapEntry, 0, len(publicSections)+len(cats))
	for _, s := range publicSections {
		entries = append(entries, dto.SitemapEntry{Loc: uc.siteURL + "/" + s.anchor, ChangeFreq: s.changeFreq, Priority: s.priority})
	}
	for _, c := range cats {
		entries = append(entries, dto.SitemapEntry{
			Loc:        uc.siteURL + "/#menu-" + c.Slug,
			LastMod:    c.CreatedAt,
			ChangeFreq: "weekly",
			Priority:   "0.7",
		})
	}
	return uc.renderer.RenderSitemap(entries)
}
