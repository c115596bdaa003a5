package auth

import (
	"context"

	"github.com/jhoicas/certificate-portal/internal/domain/entity"
	"github.com/jhoicas/certificate-portal/internal/domain/repository"
)

// TxRunner ejecuta fn con un repositorio atado a una única transacción.
// Si fn devuelve error se hace rollback; si no, commit.
type TxRunner interface {
	RunInTx(ctx context.Context, fn func(users repository.UserRepository) error) error
}

// CertificateIssuer genera el certificado de un usuario recién creado.
type CertificateIssuer interface {
	Issue(ctx context.Context, user *entity.User) (string, error)
	Discard(ctx context.Context, filename string) error
}

// PasswordHasher hashea y verifica contraseñas.
type PasswordHasher interface {
	Hash(plain string) (string, error)
	Verify(plain, hash string) bool
}

// Metrics cuenta registros y logins por resultado.
type Metrics interface {
	RegistrationObserved(result string)
	LoginObserved(result string)
}
