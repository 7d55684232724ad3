package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/contrib/swagger"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/recover"

	appanalytics "github.com/jhoicas/afrispot-api/internal/application/analytics"
	"github.com/jhoicas/afrispot-api/internal/application/auth"
	"github.com/jhoicas/afrispot-api/internal/application/ports"
	"github.com/jhoicas/afrispot-api/internal/application/usecase"
	"github.com/jhoicas/afrispot-api/internal/infrastructure/events"
	"github.com/jhoicas/afrispot-api/internal/infrastructure/memory"
	infrapdf "github.com/jhoicas/afrispot-api/internal/infrastructure/pdf"
	"github.com/jhoicas/afrispot-api/internal/infrastructure/postgres"
	"github.com/jhoicas/afrispot-api/internal/infrastructure/postgres/migrations"
	infraredis "github.com/jhoicas/afrispot-api/internal/infrastructure/redis"
	"github.com/jhoicas/afrispot-api/internal/infrastructure/sitemap"
	httpRouter "github.com/jhoicas/afrispot-api/internal/interfaces/http"
	"github.com/jhoicas/afrispot-api/pkg/config"
	"github.com/jhoicas/afrispot-api/pkg/logger"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("cargar configuración: " + err.Error())
	}

	log := logger.New(logger.Config{
		Env:   cfg.App.Env,
		Level: cfg.App.LogLevel,
	})
	log.Info().
		Str("env", cfg.App.Env).
		Str("app", cfg.App.Name).
		Msg("iniciando aplicación")

	if cfg.JWT.Secret == "" {
		log.Fatal().Msg("JWT_SECRET es obligatorio")
	}

	ctx := context.Background()
	pool, err := postgres.NewPool(ctx, cfg.DB)
	if err != nil {
		log.Fatal().Err(err).Msg("conexión a PostgreSQL")
	}
	defer pool.Close()

	applied, err := postgres.Migrate(ctx, pool, migrations.FS)
	if err != nil {
		log.Fatal().Err(err).Msg("migraciones")
	}
	for _, name := range applied {
		log.Info().Str("migration", name).Msg("migración aplicada")
	}

	categoryRepo := postgres.NewMenuCategoryRepository(pool)
	itemRepo := postgres.NewMenuItemRepository(pool)
	reservationRepo := postgres.NewReservationRepository(pool)
	reviewRepo := postgres.NewReviewRepository(pool)
	userRepo := postgres.NewUserRepository(pool)
	roleRepo := postgres.NewRoleRepository(pool)
	analyticsRepo := postgres.NewAnalyticsRepository(pool)

	// Sesiones revocadas: Redis si está configurado; si no, en memoria (una sola instancia).
	var revocations ports.RevocationStore
	if cfg.Redis.Addr != "" {
		rdb, err := infraredis.NewClient(ctx, cfg.Redis.Addr, cfg.Redis.Password, cfg.Redis.DB)
		if err != nil {
			log.Fatal().Err(err).Msg("conexión a Redis")
		}
		defer rdb.Close()
		revocations = infraredis.NewRevocationStore(rdb)
	} else {
		log.Warn().Msg("REDIS_ADDR vacío: revocación de sesiones en memoria")
		revocations = memory.NewRevocations()
	}

	publisher, err := events.NewPublisher(cfg.Events, log.Component("events"))
	if err != nil {
		log.Fatal().Err(err).Str("driver", cfg.Events.Driver).Msg("broker de eventos")
	}
	defer publisher.Close()

	authUC := auth.NewAuthUseCase(userRepo, roleRepo, revocations, auth.JWTConfig{
		Secret:     cfg.JWT.Secret,
		ExpMinutes: cfg.JWT.Expiration,
		Issuer:     cfg.JWT.Issuer,
	})
	menuUC := usecase.NewMenuUseCase(categoryRepo, itemRepo)
	// PDF: hoja de reservas del día
	reservationUC := usecase.NewReservationUseCase(
		reservationRepo, publisher, infrapdf.NewReservationSheetGenerator(),
		cfg.App.Restaurant, log.Component("reservations"),
	)
	reviewUC := usecase.NewReviewUseCase(reviewRepo, publisher, log.Component("reviews"))
	sitemapUC := usecase.NewSitemapUseCase(categoryRepo, sitemap.NewXMLRenderer(), cfg.App.SiteURL)
	dashboardUC := appanalytics.NewDashboardUseCase(analyticsRepo)

	app := fiber.New(fiber.Config{
		AppName:      cfg.App.Name,
		ReadTimeout:  time.Second * 10,
		WriteTimeout: time.Second * 10,
		IdleTimeout:  time.Second * 60,
	})
	app.Use(recover.New())

	// Swagger UI en local: http://localhost:<port>/docs
	app.Use(swagger.New(swagger.Config{
		BasePath: "/",
		FilePath: "./docs/swagger.json",
		Path:     "docs",
		Title:    "Afrispot API",
	}))

	httpRouter.Router(app, httpRouter.RouterDeps{
		AuthUC:        authUC,
		MenuUC:        menuUC,
		ReservationUC: reservationUC,
		ReviewUC:      reviewUC,
		SitemapUC:     sitemapUC,
		DashboardUC:   dashboardUC,
		Location:      cfg.App.Location(),
		AppName:       cfg.App.Name,
		Log:           log.Zerolog(),
	})

	go func() {
		if err := app.Listen(cfg.HTTP.Addr()); err != nil {
			log.Error().Err(err).Msg("servidor HTTP finalizado")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info().Msg("señal de apagado recibida, cerrando servidor...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := app.ShutdownWithContext(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("apagado del servidor")
	}

	log.Info().Msg("aplicación detenida")
}
