package certificate

import (
	"context"
	"time"

	domaincert "github.com/jhoicas/certificate-portal/internal/domain/certificate"
)

// Renderer dibuja el documento y devuelve sus bytes. No toca DB ni red.
type Renderer interface {
	Render(ctx context.Context, cert *domaincert.Certificate) ([]byte, error)
}

// Storage persiste los documentos por nombre.
// Save sobrescribe; Load devuelve domain.ErrCertificateNotFound si no existe.
type Storage interface {
	Save(ctx context.Context, name string, data []byte) error
	Load(ctx context.Context, name string) ([]byte, error)
	Delete(ctx context.Context, name string) error
}

// Metrics observa cada operación del servicio.
type Metrics interface {
	CertificateObserved(op string, elapsed time.Duration, err error)
}
