package repository

import (
	"context"

	"github.com/jhoicas/certificate-portal/internal/domain/entity"
)

// UserRepository define el puerto de persistencia para User (DIP).
type UserRepository interface {
	// Create inserta el usuario y asigna ID y CreatedAt.
	// Devuelve domain.ErrEmailAlreadyExists si el constraint UNIQUE del email falla.
	Create(ctx context.Context, user *entity.User) error
	// FindByID y FindByEmail devuelven (nil, nil) si no existe.
	FindByID(ctx context.Context, id int64) (*entity.User, error)
	FindByEmail(ctx context.Context, email string) (*entity.User, error)
	// AttachCertificate fija certificate_filename una sola vez.
	// Repetir con el mismo valor es idempotente; otro valor devuelve domain.ErrConflict.
	AttachCertificate(ctx context.Context, id int64, filename string) error
}
