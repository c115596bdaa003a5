// Command migrate aplica las migraciones del esquema sin levantar el servidor HTTP.
package main

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/jhoicas/certificate-portal/internal/infrastructure/postgres"
	"github.com/jhoicas/certificate-portal/internal/infrastructure/sqlite"
	"github.com/jhoicas/certificate-portal/pkg/config"
	"github.com/jhoicas/certificate-portal/pkg/logger"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintln(os.Stderr, "cargar configuración:", err)
		os.Exit(1)
	}
	log := logger.New(logger.Config{Env: cfg.App.Env, Level: cfg.App.LogLevel})

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Minute)
	defer cancel()

	switch cfg.DB.Driver {
	case config.DriverPostgres:
		pool, err := postgres.NewPool(ctx, cfg.DB)
		if err != nil {
			log.Fatal().Err(err).Msg("conexión a PostgreSQL")
		}
		defer pool.Close()
		if err := postgres.Migrate(ctx, pool, log); err != nil {
			log.Fatal().Err(err).Msg("migraciones PostgreSQL")
		}
	default:
		store, err := sqlite.Open(ctx, cfg.DB.SQLitePath, log)
		if err != nil {
			log.Fatal().Err(err).Msg("migraciones SQLite")
		}
		defer store.Close()
	}
	log.Info().Str("db_driver", cfg.DB.Driver).Msg("migraciones aplicadas")
}
