package http_test

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	appanalytics "github.com/jhoicas/afrispot-api/internal/application/analytics"
	"github.com/jhoicas/afrispot-api/internal/application/auth"
	"github.com/jhoicas/afrispot-api/internal/application/dto"
	"github.com/jhoicas/afrispot-api/internal/application/usecase"
	"github.com/jhoicas/afrispot-api/internal/infrastructure/events"
	"github.com/jhoicas/afrispot-api/internal/infrastructure/memory"
	infrapdf "github.com/jhoicas/afrispot-api/internal/infrastructure/pdf"
	"github.com/jhoicas/afrispot-api/internal/infrastructure/sitemap"
	apphttp "github.com/jhoicas/afrispot-api/internal/interfaces/http"
)

// ──────────────────────────────────────────────────────────────────────────────
// Helpers de test
// ──────────────────────────────────────────────────────────────────────────────

const (
	testPassword = "secreto123"
	adminEmail   = "chef@afrispot.test"
	staffEmail   = "serveur@afrispot.test"
)

func buildTestApp(t *testing.T) *fiber.App {
	t.Helper()
	ctx := context.Background()
	b := memory.NewBackend()
	_, err := b.AddUser(ctx, adminEmail, testPassword, true)
	require.NoError(t, err)
	_, err = b.AddUser(ctx, staffEmail, testPassword, false)
	require.NoError(t, err)

	log := zerolog.Nop()
	pub := events.NewLogPublisher(log)
	app := fiber.New()
	apphttp.Router(app, apphttp.RouterDeps{
		AuthUC: auth.NewAuthUseCase(b.Users, b.Users, b.Revocations, auth.JWTConfig{
			Secret:     "test-secret-key-for-unit-tests",
			ExpMinutes: 60,
			Issuer:     "afrispot-test",
		}),
		MenuUC:        usecase.NewMenuUseCase(b.Categories, b.Items),
		ReservationUC: usecase.NewReservationUseCase(b.Reservations, pub, infrapdf.NewReservationSheetGenerator(), "Afrispot", log),
		ReviewUC:      usecase.NewReviewUseCase(b.Reviews, pub, log),
		SitemapUC:     usecase.NewSitemapUseCase(b.Categories, sitemap.NewXMLRenderer(), "https://afrispot.sn"),
		DashboardUC:   appanalytics.NewDashboardUseCase(b.Analytics),
		Location:      time.UTC,
		AppName:       "afrispot-test",
		Log:           log,
	})
	return app
}

func doRequest(t *testing.T, app *fiber.App, method, path, token string, body any) *http.Response {
	t.Helper()
	var r io.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		require.NoError(t, err)
		r = bytes.NewReader(raw)
	}
	req := httptest.NewRequest(method, path, r)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	return resp
}

func decode[T any](t *testing.T, resp *http.Response) T {
	t.Helper()
	defer resp.Body.Close()
	var out T
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&out))
	return out
}

func login(t *testing.T, app *fiber.App, email string) string {
	t.Helper()
	resp := doRequest(t, app, http.MethodPost, "/api/auth/login", "", dto.LoginRequest{Email: email, Password: testPassword})
	require.Equal(t, http.StatusOK, resp.StatusCode)
	return decode[dto.LoginResponse](t, resp).Token
}

func errorCode(t *testing.T, resp *http.Response) string {
	t.Helper()
	return decode[dto.ErrorResponse](t, resp).Code
}

// ──────────────────────────────────────────────────────────────────────────────
// Auth y guard de administración
// ──────────────────────────────────────────────────────────────────────────────

func TestHealth(t *testing.T) {
	app := buildTestApp(t)
	resp := doRequest(t, app, http.MethodGet, "/health", "", nil)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
}

func TestLogin_CredencialesIncorrectas(t *testing.T) {
	app := buildTestApp(t)
	resp := doRequest(t, app, http.MethodPost, "/api/auth/login", "", dto.LoginRequest{Email: adminEmail, Password: "otra-cosa"})
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
	e := decode[dto.ErrorResponse](t, resp)
	assert.Equal(t, dto.CodeInvalidCredentials, e.Code)
	assert.Equal(t, "Email o contraseña incorrectos", e.Message)
}

func TestLogin_CuerpoInvalido(t *testing.T) {
	app := buildTestApp(t)
	req := httptest.NewRequest(http.MethodPost, "/api/auth/login", strings.NewReader("{no es json"))
	req.Header.Set("Content-Type", "application/json")
	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	assert.Equal(t, dto.CodeInvalidBody, errorCode(t, resp))
}

func TestAdmin_SinToken_401(t *testing.T) {
	app := buildTestApp(t)
	resp := doRequest(t, app, http.MethodPost, "/api/menu/categories", "", dto.CreateCategoryRequest{Name: "Entrées"})
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
	assert.Equal(t, dto.CodeUnauthorized, errorCode(t, resp))
}

func TestAdmin_TokenBasura_SesionExpirada(t *testing.T) {
	app := buildTestApp(t)
	resp := doRequest(t, app, http.MethodGet, "/api/reservations", "x.y.z", nil)
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
	assert.Equal(t, dto.CodeSessionExpired, errorCode(t, resp))
}

func TestAdmin_SinPrivilegio_403(t *testing.T) {
	app := buildTestApp(t)
	token := login(t, app, staffEmail)

	resp := doRequest(t, app, http.MethodGet, "/api/reservations", token, nil)
	assert.Equal(t, http.StatusForbidden, resp.StatusCode)
	assert.Equal(t, dto.CodeForbidden, errorCode(t, resp))

	// la búsqueda de privilegios sí responde para cualquier sesión
	resp = doRequest(t, app, http.MethodGet, "/api/auth/admin", token, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.False(t, decode[dto.AdminResponse](t, resp).IsAdmin)
}

func TestSesionYLogout(t *testing.T) {
	app := buildTestApp(t)
	token := login(t, app, adminEmail)

	resp := doRequest(t, app, http.MethodGet, "/api/auth/session", token, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, adminEmail, decode[dto.SessionResponse](t, resp).User.Email)

	resp = doRequest(t, app, http.MethodGet, "/api/auth/admin", token, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.True(t, decode[dto.AdminResponse](t, resp).IsAdmin)

	resp = doRequest(t, app, http.MethodPost, "/api/auth/logout", token, nil)
	assert.Equal(t, http.StatusNoContent, resp.StatusCode)

	resp = doRequest(t, app, http.MethodGet, "/api/auth/session", token, nil)
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
	assert.Equal(t, dto.CodeSessionExpired, errorCode(t, resp))
}

// ──────────────────────────────────────────────────────────────────────────────
// Carta
// ──────────────────────────────────────────────────────────────────────────────

func TestMenu_CrudYCartaPublica(t *testing.T) {
	app := buildTestApp(t)
	token := login(t, app, adminEmail)

	resp := doRequest(t, app, http.MethodPost, "/api/menu/categories", token, dto.CreateCategoryRequest{Name: "Entrées", Icon: "🥗"})
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	cat := decode[dto.CategoryResponse](t, resp)
	assert.Equal(t, "entrees", cat.Slug)

	resp = doRequest(t, app, http.MethodPost, "/api/menu/categories", token, dto.CreateCategoryRequest{Name: "Entrées"})
	assert.Equal(t, http.StatusConflict, resp.StatusCode)
	assert.Equal(t, dto.CodeDuplicate, errorCode(t, resp))

	price := int64(2500)
	resp = doRequest(t, app, http.MethodPost, "/api/menu/items", token, dto.CreateMenuItemRequest{
		CategoryID: cat.ID, Name: "Pastels", Description: "Beignets de poisson", Price: &price,
	})
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	item := decode[dto.MenuItemResponse](t, resp)

	resp = doRequest(t, app, http.MethodGet, "/api/menu", "", nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	sections := decode[[]dto.MenuSectionResponse](t, resp)
	require.Len(t, sections, 1)
	require.Len(t, sections[0].Items, 1)

	off := false
	resp = doRequest(t, app, http.MethodPatch, "/api/menu/items/"+item.ID, token, dto.UpdateMenuItemRequest{Available: &off})
	require.Equal(t, http.StatusOK, resp.StatusCode)

	resp = doRequest(t, app, http.MethodGet, "/api/menu", "", nil)
	assert.Empty(t, decode[[]dto.MenuSectionResponse](t, resp))

	resp = doRequest(t, app, http.MethodGet, "/api/menu/items?available=false", "", nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, 1, decode[dto.ListResponse[dto.MenuItemResponse]](t, resp).Total)

	// ON DELETE RESTRICT
	resp = doRequest(t, app, http.MethodDelete, "/api/menu/categories/"+cat.ID, token, nil)
	assert.Equal(t, http.StatusConflict, resp.StatusCode)
	assert.Equal(t, dto.CodeConflict, errorCode(t, resp))

	resp = doRequest(t, app, http.MethodDelete, "/api/menu/items/"+item.ID, token, nil)
	assert.Equal(t, http.StatusNoContent, resp.StatusCode)
	resp = doRequest(t, app, http.MethodDelete, "/api/menu/categories/"+cat.ID, token, nil)
	assert.Equal(t, http.StatusNoContent, resp.StatusCode)
}

func TestMenu_OrdenInvalido(t *testing.T) {
	app := buildTestApp(t)
	resp := doRequest(t, app, http.MethodGet, "/api/menu/categories?order=slug.sideways", "", nil)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	assert.Equal(t, dto.CodeValidation, errorCode(t, resp))
}

// ──────────────────────────────────────────────────────────────────────────────
// Reservas
// ──────────────────────────────────────────────────────────────────────────────

func TestReservas_FormularioPublicoYGestion(t *testing.T) {
	app := buildTestApp(t)
	token := login(t, app, adminEmail)
	at := time.Date(2026, 10, 24, 20, 30, 0, 0, time.UTC)

	resp := doRequest(t, app, http.MethodPost, "/api/reservations", "", map[string]any{
		"name":     "Awa Diop",
		"phone":    "+221770000000",
		"datetime": at.Format(time.RFC3339),
		"guests":   "8+",
	})
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	r := decode[dto.ReservationResponse](t, resp)
	assert.Equal(t, "pending", r.Status)
	assert.Equal(t, 8, r.Guests)

	resp = doRequest(t, app, http.MethodGet, "/api/reservations?status=pending", token, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, 1, decode[dto.ListResponse[dto.ReservationResponse]](t, resp).Total)

	confirmed := "confirmed"
	resp = doRequest(t, app, http.MethodPatch, "/api/reservations/"+r.ID, token, dto.UpdateReservationRequest{Status: &confirmed})
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "confirmed", decode[dto.ReservationResponse](t, resp).Status)

	cancelled := "cancelled"
	resp = doRequest(t, app, http.MethodPatch, "/api/reservations/"+r.ID, token, dto.UpdateReservationRequest{Status: &cancelled})
	assert.Equal(t, http.StatusConflict, resp.StatusCode)
	assert.Equal(t, dto.CodeInvalidTransition, errorCode(t, resp))

	resp = doRequest(t, app, http.MethodGet, "/api/admin/reservations/sheet?date=2026-10-24", token, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "application/pdf", resp.Header.Get("Content-Type"))
	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	assert.True(t, bytes.HasPrefix(body, []byte("%PDF")))

	resp = doRequest(t, app, http.MethodGet, "/api/admin/reservations/sheet?date=24/10/2026", token, nil)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)

	resp = doRequest(t, app, http.MethodDelete, "/api/reservations/"+r.ID, token, nil)
	assert.Equal(t, http.StatusNoContent, resp.StatusCode)
	resp = doRequest(t, app, http.MethodDelete, "/api/reservations/"+r.ID, token, nil)
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
}

func TestReservas_FormularioIncompleto(t *testing.T) {
	app := buildTestApp(t)
	resp := doRequest(t, app, http.MethodPost, "/api/reservations", "", map[string]any{"name": "Awa"})
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	assert.Equal(t, dto.CodeValidation, errorCode(t, resp))
}

// ──────────────────────────────────────────────────────────────────────────────
// Reseñas, panel y sitemap
// ──────────────────────────────────────────────────────────────────────────────

func TestResenas_ModeracionYListadoPublico(t *testing.T) {
	app := buildTestApp(t)
	token := login(t, app, adminEmail)

	resp := doRequest(t, app, http.MethodPost, "/api/reviews", "", dto.CreateReviewRequest{Name: "Moussa", Rating: 5, Comment: "Excellent thiéboudienne"})
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	rv := decode[dto.ReviewResponse](t, resp)
	assert.False(t, rv.Approved)

	resp = doRequest(t, app, http.MethodGet, "/api/reviews/public", "", nil)
	assert.Equal(t, 0, decode[dto.ListResponse[dto.ReviewResponse]](t, resp).Total)

	// el listado completo es solo para administradores
	resp = doRequest(t, app, http.MethodGet, "/api/reviews", "", nil)
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)

	approved := true
	resp = doRequest(t, app, http.MethodPatch, "/api/reviews/"+rv.ID, token, dto.UpdateReviewRequest{Approved: &approved})
	require.Equal(t, http.StatusOK, resp.StatusCode)

	resp = doRequest(t, app, http.MethodGet, "/api/reviews/public", "", nil)
	assert.Equal(t, 1, decode[dto.ListResponse[dto.ReviewResponse]](t, resp).Total)

	resp = doRequest(t, app, http.MethodGet, "/api/admin/dashboard", token, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	dash := decode[dto.DashboardResponse](t, resp)
	assert.Equal(t, 1, dash.Reviews.Total)
}

func TestSitemap(t *testing.T) {
	app := buildTestApp(t)
	resp := doRequest(t, app, http.MethodGet, "/sitemap.xml", "", nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Contains(t, resp.Header.Get("Content-Type"), "application/xml")
	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	assert.Contains(t, string(body), "<loc>https://afrispot.sn/</loc>")
}
