package sitemap_test

import (
	"testing"
	"time"

	"github.com/beevik/etree"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/afrispot-api/internal/application/dto"
	"github.com/jhoicas/afrispot-api/internal/infrastructure/sitemap"
)

func TestRenderSitemap_Estructura(t *testing.T) {
	out, err := sitemap.NewXMLRenderer().RenderSitemap([]dto.SitemapEntry{
		{Loc: "https://afrispot.sn/", ChangeFreq: "weekly", Priority: "1.0"},
		{Loc: "https://afrispot.sn/#menu-desserts", LastMod: time.Date(2026, 3, 14, 22, 0, 0, 0, time.UTC)},
	})
	require.NoError(t, err)

	doc := etree.NewDocument()
	require.NoError(t, doc.ReadFromBytes(out))
	root := doc.SelectElement("urlset")
	require.NotNil(t, root)
	assert.Equal(t, sitemap.Namespace, root.SelectAttrValue("xmlns", ""))

	urls := root.SelectElements("url")
	require.Len(t, urls, 2)
	assert.Equal(t, "https://afrispot.sn/", urls[0].SelectElement("loc").Text())
	assert.Equal(t, "1.0", urls[0].SelectElement("priority").Text())
	assert.Nil(t, urls[0].SelectElement("lastmod"))
	assert.Equal(t, "2026-03-14", urls[1].SelectElement("lastmod").Text())
	assert.Nil(t, urls[1].SelectElement("changefreq"))
}

func TestRenderSitemap_EscapaCaracteres(t *testing.T) {
	out, err := (&sitemap.XMLRenderer{}).RenderSitemap([]dto.SitemapEntry{{Loc: "https://afrispot.sn/?a=1&b=2"}})
	require.NoError(t, err)
	assert.Contains(t, string(out), "a=1&amp;b=2")
}

func TestRenderSitemap_SinLoc(t *testing.T) {
	_, err := sitemap.NewXMLRenderer().RenderSitemap([]dto.SitemapEntry{{Priority: "0.5"}})
	assert.Error(t, err)
}
