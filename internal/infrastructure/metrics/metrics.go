// Package metrics expone contadores Prometheus de registros, logins y certificados.
package metrics

import (
	"errors"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/adaptor"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/jhoicas/certificate-portal/internal/domain"
)

const namespace = "certificate_portal"

// Metrics agrupa los colectores de la aplicación.
type Metrics struct {
	registrations *prometheus.CounterVec
	logins        *prometheus.CounterVec
	certificates  *prometheus.HistogramVec
}

// New crea y registra los colectores en reg.
func New(reg prometheus.Registerer) *Metrics {
	m := &Metrics{
		registrations: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "registrations_total",
			Help:      "Registros de usuario por resultado.",
		}, []string{"result"}),
		logins: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "logins_total",
			Help:      "Intentos de login por resultado.",
		}, []string{"result"}),
		certificates: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "certificate_operation_seconds",
			Help:      "Duración de las operaciones sobre certificados.",
			Buckets:   []float64{.005, .01, .025, .05, .1, .25, .5, 1, 2.5},
		}, []string{"op", "result"}),
	}
	reg.MustRegister(m.registrations, m.logins, m.certificates)
	return m
}

// RegistrationObserved cuenta un intento de registro.
func (m *Metrics) RegistrationObserved(result string) {
	m.registrations.WithLabelValues(result).Inc()
}

// LoginObserved cuenta un intento de login.
func (m *Metrics) LoginObserved(result string) {
	m.logins.WithLabelValues(result).Inc()
}

// CertificateObserved registra la duración de una operación de certificado.
func (m *Metrics) CertificateObserved(op string, elapsed time.Duration, err error) {
	m.certificates.WithLabelValues(op, certificateResult(err)).Observe(elapsed.Seconds())
}

func certificateResult(err error) string {
	switch {
	case err == nil:
		return "ok"
	case errors.Is(err, domain.ErrCertificateNotFound), errors.Is(err, domain.ErrUserNotFound):
		return "not_found"
	case errors.Is(err, domain.ErrInvalidInput):
		return "invalid"
	default:
		return "error"
	}
}

// Handler sirve el formato de exposición de Prometheus como handler de Fiber.
func Handler(g prometheus.Gatherer) fiber.Handler {
	return adaptor.HTTPHandler(promhttp.HandlerFor(g, promhttp.HandlerOpts{}))
}
