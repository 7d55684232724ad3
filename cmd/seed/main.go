// seed crea la cuenta de administrador (usuario + rol en una transacción) y la carta por defecto.
//
// Uso: go run ./cmd/seed -email chef@afrispot.sn [-password ...] [-menu=false]
// La contraseña también puede llegar por SEED_ADMIN_PASSWORD.
package main

import (
	"context"
	"flag"
	"os"
	"time"

	"github.com/jhoicas/afrispot-api/internal/application/seed"
	"github.com/jhoicas/afrispot-api/internal/infrastructure/postgres"
	"github.com/jhoicas/afrispot-api/internal/infrastructure/postgres/migrations"
	"github.com/jhoicas/afrispot-api/pkg/config"
	"github.com/jhoicas/afrispot-api/pkg/logger"
)

func main() {
	email := flag.String("email", "", "email del administrador (vacío = no crear cuenta)")
	password := flag.String("password", os.Getenv("SEED_ADMIN_PASSWORD"), "contraseña (mínimo 8 caracteres)")
	withMenu := flag.Bool("menu", true, "sembrar la carta por defecto")
	flag.Parse()

	cfg, err := config.Load()
	if err != nil {
		panic("cargar configuración: " + err.Error())
	}
	log := logger.New(logger.Config{Env: cfg.App.Env, Level: cfg.App.LogLevel})

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Minute)
	defer cancel()

	pool, err := postgres.NewPool(ctx, cfg.DB)
	if err != nil {
		log.Fatal().Err(err).Msg("conexión a PostgreSQL")
	}
	defer pool.Close()
	if _, err := postgres.Migrate(ctx, pool, migrations.FS); err != nil {
		log.Fatal().Err(err).Msg("migraciones")
	}
	tx := postgres.NewTxRunner(pool)

	if *email != "" {
		id, created, err := seed.BootstrapAdmin(ctx, tx, *email, *password)
		if err != nil {
			log.Fatal().Err(err).Str("email", *email).Msg("crear administrador")
		}
		log.Info().Str("user_id", id).Bool("created", created).Str("email", *email).Msg("administrador listo")
	}

	if *withMenu {
		categories, dishes, err := seed.SeedMenu(ctx, tx, seed.DefaultMenu)
		if err != nil {
			log.Fatal().Err(err).Msg("sembrar carta")
		}
		log.Info().Int("categories", categories).Int("items", dishes).Msg("carta sembrada")
	}
}
