// Package sitemap serializa el sitemap XML (protocolo sitemaps.org 0.9).
package sitemap

import (
	"fmt"

	"github.com/beevik/etree"

	"github.com/jhoicas/afrispot-api/internal/application/dto"
	"github.com/jhoicas/afrispot-api/internal/application/ports"
)

// Namespace del protocolo sitemaps.org.
const Namespace = "http://www.sitemaps.org/schemas/sitemap/0.9"

var _ ports.SitemapRenderer = (*XMLRenderer)(nil)

// XMLRenderer implementa ports.SitemapRenderer con etree.
type XMLRenderer struct {
	Indent int // espacios de indentación; 0 = sin indentar
}

// NewXMLRenderer construye el renderer con indentación de 2 espacios.
func NewXMLRenderer() *XMLRenderer { return &XMLRenderer{Indent: 2} }

// RenderSitemap devuelve el documento <urlset>. Una entrada sin Loc es un error.
func (r *XMLRenderer) RenderSitemap(entries []dto.SitemapEntry) ([]byte, error) {
	doc := etree.NewDocument()
	doc.CreateProcInst("xml", `version="1.0" encoding="UTF-8"`)

	urlset := doc.CreateElement("urlset")
	urlset.CreateAttr("xmlns", Namespace)

	for i, e := range entries {
		if e.Loc == "" {
			return nil, fmt.Errorf("sitemap: entrada %d sin loc", i)
		}
		u := urlset.CreateElement("url")
		u.CreateElement("loc").SetText(e.Loc)
		if !e.LastMod.IsZero() {
			u.CreateElement("lastmod").SetText(e.LastMod.UTC().Format("2006-01-02"))
		}
		if e.ChangeFreq != "" {
			u.CreateElement("changefreq").SetText(e.ChangeFreq)
		}
		if e.Priority != "" {
			u.CreateElement("priority").SetText(e.Priority)
		}
	}

	if r.Indent > 0 {
		doc.Indent(r.Indent)
	}
	out, err := doc.WriteToBytes()
	if err != nil {
		return nil, fmt.Errorf("sitemap: serializar: %w", err)
	}
	return out, nil
}
