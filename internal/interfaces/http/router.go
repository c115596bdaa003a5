package http

import (
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/prometheus/client_golang/prometheus"

	"github.com/jhoicas/certificate-portal/internal/application/auth"
	appcert "github.com/jhoicas/certificate-portal/internal/application/certificate"
	"github.com/jhoicas/certificate-portal/internal/application/usecase"
	"github.com/jhoicas/certificate-portal/internal/infrastructure/metrics"
	"github.com/jhoicas/certificate-portal/pkg/logger"
)

// RouterDeps dependencias para el router.
type RouterDeps struct {
	AppName       string
	AuthUC        *auth.AuthUseCase
	UserUC        *usecase.UserUseCase
	Certificates  *appcert.Service
	Session       SessionCookie
	AuthRateLimit int
	Log           *logger.Logger
	Gatherer      prometheus.Gatherer // nil: sin /metrics
}

// NewApp construye la aplicación Fiber con vistas, middlewares comunes, /health, /metrics y las rutas.
func NewApp(deps RouterDeps) *fiber.App {
	if deps.Log == nil {
		deps.Log = logger.Nop()
	}
	app := fiber.New(fiber.Config{
		AppName:               deps.AppName,
		Views:                 NewViews(),
		ErrorHandler:          ErrorHandler(deps.Log),
		ReadTimeout:           time.Second * 10,
		WriteTimeout:          time.Second * 10,
		IdleTimeout:           time.Second * 60,
		DisableStartupMessage: true,
	})
	app.Use(recover.New())
	app.Use(RequestLogger(deps.Log))

	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok", "service": deps.AppName})
	})
	if deps.Gatherer != nil {
		app.Get("/metrics", metrics.Handler(deps.Gatherer))
	}

	Router(app, deps)
	return app
}

// Router registra las rutas HTML del portal.
func Router(app *fiber.App, deps RouterDeps) {
	authHandler := NewAuthHandler(deps.AuthUC, deps.Session, deps.Log)
	dashboardHandler := NewDashboardHandler(deps.UserUC, deps.Session)
	certificateHandler := NewCertificateHandler(deps.Certificates, deps.Session, deps.Log)

	app.Use(SessionMiddleware(deps.AuthUC, deps.Session.Name))

	app.Get("/", func(c *fiber.Ctx) error {
		return c.Redirect("/login", fiber.StatusFound)
	})

	// Públicas
	limit := RateLimitAuth(deps.AuthRateLimit)
	app.Get("/register", authHandler.ShowRegister)
	app.Post("/register", limit, authHandler.Register)
	app.Get("/login", authHandler.ShowLogin)
	app.Post("/login", limit, authHandler.Login)
	app.Post("/logout", authHandler.Logout)

	// Requieren sesión
	requireSession := RequireSession()
	app.Get("/dashboard", requireSession, dashboardHandler.Show)
	app.Get("/download_certificate/:filename", requireSession, certificateHandler.Download)
	app.Get("/certificate", requireSession, certificateHandler.View)
	app.Post("/certificate/regenerate", requireSession, certificateHandler.Regenerate)
}
