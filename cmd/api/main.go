package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/contrib/swagger"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"

	"github.com/jhoicas/certificate-portal/internal/application/auth"
	appcert "github.com/jhoicas/certificate-portal/internal/application/certificate"
	"github.com/jhoicas/certificate-portal/internal/application/usecase"
	"github.com/jhoicas/certificate-portal/internal/domain/repository"
	"github.com/jhoicas/certificate-portal/internal/infrastructure/metrics"
	infrapdf "github.com/jhoicas/certificate-portal/internal/infrastructure/pdf"
	"github.com/jhoicas/certificate-portal/internal/infrastructure/postgres"
	"github.com/jhoicas/certificate-portal/internal/infrastructure/sqlite"
	"github.com/jhoicas/certificate-portal/internal/infrastructure/storage"
	httpRouter "github.com/jhoicas/certificate-portal/internal/interfaces/http"
	"github.com/jhoicas/certificate-portal/pkg/config"
	"github.com/jhoicas/certificate-portal/pkg/logger"
	"github.com/jhoicas/certificate-portal/pkg/password"
)

const swaggerFile = "./docs/swagger.json"

// persistence repositorio y transacciones del backend elegido.
type persistence struct {
	users repository.UserRepository
	tx    auth.TxRunner
	close func()
}

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintln(os.Stderr, "cargar configuración:", err)
		os.Exit(1)
	}

	log := logger.New(logger.Config{
		Env:   cfg.App.Env,
		Level: cfg.App.LogLevel,
	})
	log.Info().
		Str("env", cfg.App.Env).
		Str("app", cfg.App.Name).
		Str("db_driver", cfg.DB.Driver).
		Str("cert_storage", cfg.Certificates.Storage).
		Msg("iniciando aplicación")

	ctx := context.Background()
	db, err := openPersistence(ctx, cfg, log)
	if err != nil {
		log.Fatal().Err(err).Msg("inicializar persistencia")
	}
	defer db.close()

	files, err := openStorage(ctx, cfg)
	if err != nil {
		log.Fatal().Err(err).Msg("inicializar almacenamiento de certificados")
	}

	reg := prometheus.NewRegistry()
	reg.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))
	m := metrics.New(reg)

	renderer := infrapdf.NewMarotoCertificateRenderer(infrapdf.WithAuthor(cfg.App.Name))
	certificateSvc := appcert.NewService(db.users, renderer, files, m)
	authUC := auth.NewAuthUseCase(
		db.users, db.tx, certificateSvc,
		password.NewHasher(cfg.Security.BcryptCost), m,
		auth.SessionConfig{
			Secret:     cfg.Session.Secret,
			ExpMinutes: cfg.Session.Expiration,
			Issuer:     cfg.Session.Issuer,
		},
	)
	userUC := usecase.NewUserUseCase(db.users)

	app := httpRouter.NewApp(httpRouter.RouterDeps{
		AppName:      cfg.App.Name,
		AuthUC:       authUC,
		UserUC:       userUC,
		Certificates: certificateSvc,
		Session: httpRouter.SessionCookie{
			Name:   cfg.Session.CookieName,
			Secure: cfg.Session.CookieSecure,
		},
		AuthRateLimit: cfg.Security.AuthRateLimit,
		Log:           log,
		Gatherer:      reg,
	})

	// Swagger UI en local: http://localhost:<port>/docs
	if _, err := os.Stat(swaggerFile); err == nil {
		app.Use(swagger.New(swagger.Config{
			BasePath: "/",
			FilePath: swaggerFile,
			Path:     "docs",
			Title:    "Certificate Portal",
		}))
	} else {
		log.Warn().Str("file", swaggerFile).Msg("swagger.json no encontrado, /docs deshabilitado")
	}

	go func() {
		log.Info().Str("addr", cfg.HTTP.Addr()).Msg("servidor HTTP escuchando")
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

// openPersistence abre la base elegida por DB_DRIVER y aplica las migraciones pendientes.
func openPersistence(ctx context.Context, cfg *config.Config, log *logger.Logger) (*persistence, error) {
	switch cfg.DB.Driver {
	case config.DriverPostgres:
		pool, err := postgres.NewPool(ctx, cfg.DB)
		if err != nil {
			return nil, err
		}
		if err := postgres.Migrate(ctx, pool, log); err != nil {
			pool.Close()
			return nil, err
		}
		return &persistence{
			users: postgres.NewUserRepository(pool),
			tx:    postgres.NewTxRunner(pool),
			close: pool.Close,
		}, nil
	default:
		store, err := sqlite.Open(ctx, cfg.DB.SQLitePath, log)
		if err != nil {
			return nil, err
		}
		return &persistence{
			users: sqlite.NewUserRepository(store.DB()),
			tx:    sqlite.NewTxRunner(store.DB()),
			close: func() { _ = store.Close() },
		}, nil
	}
}

// openStorage construye el backend de certificados elegido por CERT_STORAGE.
func openStorage(ctx context.Context, cfg *config.Config) (appcert.Storage, error) {
	switch cfg.Certificates.Storage {
	case config.StorageS3:
		client, err := storage.NewS3Client(ctx, cfg.Certificates.S3)
		if err != nil {
			return nil, err
		}
		return storage.NewS3Storage(client, cfg.Certificates.S3.Bucket, cfg.Certificates.S3.Prefix), nil
	default:
		local := storage.NewLocalStorage(cfg.Certificates.Dir)
		if err := local.EnsureDir(); err != nil {
			return nil, err
		}
		return local, nil
	}
}
