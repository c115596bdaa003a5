package certificate

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jhoicas/certificate-portal/internal/domain"
	domaincert "github.com/jhoicas/certificate-portal/internal/domain/certificate"
	"github.com/jhoicas/certificate-portal/internal/domain/entity"
	"github.com/jhoicas/certificate-portal/internal/domain/repository"
)

// Operaciones reportadas a Metrics.
const (
	OpIssue      = "issue"
	OpRegenerate = "regenerate"
	OpDownload   = "download"
)

// Service genera, guarda y entrega los certificados de los usuarios.
type Service struct {
	users    repository.UserRepository
	renderer Renderer
	storage  Storage
	metrics  Metrics
	now      func() time.Time
}

// Option configura el Service.
type Option func(*Service)

// WithClock fija el reloj usado para la fecha del certificado.
func WithClock(now func() time.Time) Option {
	return func(s *Service) { s.now = now }
}

// NewService construye el servicio inyectando sus puertos.
func NewService(users repository.UserRepository, renderer Renderer, storage Storage, metrics Metrics, opts ...Option) *Service {
	s := &Service{
		users:    users,
		renderer: renderer,
		storage:  storage,
		metrics:  metrics,
		now:      time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Issue renderiza el certificado de user y lo escribe en el storage.
// Devuelve certificate_<id>.pdf solo si la escritura terminó bien; no toca la DB.
func (s *Service) Issue(ctx context.Context, user *entity.User) (filename string, err error) {
	start := time.Now()
	defer func() { s.metrics.CertificateObserved(OpIssue, time.Since(start), err) }()

	if user == nil {
		return "", fmt.Errorf("%w: usuario nulo", domain.ErrInvalidInput)
	}
	cert, err := domaincert.New(user.ID, user.FullName, s.now())
	if err != nil {
		return "", err
	}
	doc, err := s.renderer.Render(ctx, cert)
	if err != nil {
		return "", fmt.Errorf("certificado: renderizar: %w", err)
	}
	if err := s.storage.Save(ctx, cert.Filename(), doc); err != nil {
		return "", fmt.Errorf("certificado: guardar %s: %w", cert.Filename(), err)
	}
	return cert.Filename(), nil
}

// Discard elimina un documento escrito cuyo registro no llegó a confirmarse.
func (s *Service) Discard(ctx context.Context, filename string) error {
	if _, ok := domaincert.ParseFilename(filename); !ok {
		return fmt.Errorf("%w: nombre de certificado %q", domain.ErrInvalidInput, filename)
	}
	if err := s.storage.Delete(ctx, filename); err != nil && !errors.Is(err, domain.ErrCertificateNotFound) {
		return fmt.Errorf("certificado: descartar %s: %w", filename, err)
	}
	return nil
}

// Regenerate vuelve a generar el certificado de un usuario existente (sobrescribe el mismo archivo)
// y asegura que el nombre quede registrado.
func (s *Service) Regenerate(ctx context.Context, userID int64) (filename string, err error) {
	start := time.Now()
	defer func() { s.metrics.CertificateObserved(OpRegenerate, time.Since(start), err) }()

	user, err := s.users.FindByID(ctx, userID)
	if err != nil {
		return "", err
	}
	if user == nil {
		return "", domain.ErrUserNotFound
	}
	filename, err = s.Issue(ctx, user)
	if err != nil {
		return "", err
	}
	if user.HasCertificate() {
		return filename, nil
	}
	if err := s.users.AttachCertificate(ctx, user.ID, filename); err != nil {
		_ = s.Discard(ctx, filename)
		return "", fmt.Errorf("certificado: registrar: %w", err)
	}
	return filename, nil
}

// Own devuelve el certificado del propio usuario.
func (s *Service) Own(ctx context.Context, userID int64) (data []byte, filename string, err error) {
	start := time.Now()
	defer func() { s.metrics.CertificateObserved(OpDownload, time.Since(start), err) }()

	user, err := s.users.FindByID(ctx, userID)
	if err != nil {
		return nil, "", err
	}
	if user == nil || !user.HasCertificate() {
		return nil, "", domain.ErrCertificateNotFound
	}
	// El nombre se deriva del id en el servidor, nunca del cliente.
	filename = domaincert.Filename(user.ID)
	if user.CertificateFilename != filename {
		return nil, "", domain.ErrCertificateNotFound
	}
	data, err = s.storage.Load(ctx, filename)
	if err != nil {
		return nil, "", err
	}
	return data, filename, nil
}

// Download devuelve el certificado solicitado solo si pertenece a userID.
// Un nombre ajeno o inexistente se reporta como domain.ErrCertificateNotFound.
func (s *Service) Download(ctx context.Context, userID int64, requested string) ([]byte, error) {
	if requested != domaincert.Filename(userID) {
		s.metrics.CertificateObserved(OpDownload, 0, domain.ErrCertificateNotFound)
		return nil, domain.ErrCertificateNotFound
	}
	data, _, err := s.Own(ctx, userID)
	return data, err
}
