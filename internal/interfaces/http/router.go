package http

import (
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog"

	appanalytics "github.com/jhoicas/afrispot-api/internal/application/analytics"
	"github.com/jhoicas/afrispot-api/internal/application/auth"
	"github.com/jhoicas/afrispot-api/internal/application/usecase"
)

// RouterDeps dependencias para el router.
type RouterDeps struct {
	AuthUC        *auth.AuthUseCase
	MenuUC        *usecase.MenuUseCase
	ReservationUC *usecase.ReservationUseCase
	ReviewUC      *usecase.ReviewUseCase
	SitemapUC     *usecase.SitemapUseCase
	DashboardUC   *appanalytics.DashboardUseCase
	Location      *time.Location // zona horaria del restaurante (hoja del día)
	AppName       string
	Log           zerolog.Logger
}

// Router registra las rutas de la API.
// Las rutas de administración llevan AuthMiddleware + RequireAdmin por ruta: varias
// comparten path con una ruta pública (POST /api/reviews frente a GET /api/reviews).
func Router(app *fiber.App, deps RouterDeps) {
	log := deps.Log.With().Str("component", "http").Logger()

	authn := AuthMiddleware(deps.AuthUC)
	admin := RequireAdmin(deps.AuthUC)

	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok", "service": deps.AppName})
	})
	site := NewSiteHandler(deps.SitemapUC, log)
	app.Get("/sitemap.xml", site.Sitemap)

	api := app.Group("/api")

	// Auth
	authHandler := NewAuthHandler(deps.AuthUC, log)
	api.Post("/auth/login", authHandler.Login)
	api.Post("/auth/logout", authn, authHandler.Logout)
	api.Get("/auth/session", authn, authHandler.Session)
	api.Get("/auth/admin", authn, authHandler.Admin)

	// Carta
	menu := NewMenuHandler(deps.MenuUC, log)
	api.Get("/menu", menu.PublicMenu)
	api.Get("/menu/categories", menu.ListCategories)
	api.Post("/menu/categories", authn, admin, menu.CreateCategory)
	api.Patch("/menu/categories/:id", authn, admin, menu.UpdateCategory)
	api.Delete("/menu/categories/:id", authn, admin, menu.DeleteCategory)
	api.Get("/menu/items", menu.ListItems)
	api.Post("/menu/items", authn, admin, menu.CreateItem)
	api.Patch("/menu/items/:id", authn, admin, menu.UpdateItem)
	api.Delete("/menu/items/:id", authn, admin, menu.DeleteItem)

	// Reservas
	reservations := NewReservationHandler(deps.ReservationUC, deps.Location, log)
	api.Post("/reservations", reservations.Create)
	api.Get("/reservations", authn, admin, reservations.List)
	api.Patch("/reservations/:id", authn, admin, reservations.Update)
	api.Delete("/reservations/:id", authn, admin, reservations.Delete)

	// Reseñas
	reviews := NewReviewHandler(deps.ReviewUC, log)
	api.Post("/reviews", reviews.Create)
	api.Get("/reviews/public", reviews.Public)
	api.Get("/reviews", authn, admin, reviews.List)
	api.Patch("/reviews/:id", authn, admin, reviews.Update)
	api.Delete("/reviews/:id", authn, admin, reviews.Delete)

	// Back-office
	dashboard := NewDashboardHandler(deps.DashboardUC, log)
	api.Get("/admin/dashboard", authn, admin, dashboard.GetSummary)
	api.Get("/admin/reservations/sheet", authn, admin, reservations.Sheet)
}
