package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/jhoicas/certificate-portal/internal/domain"
	"github.com/jhoicas/certificate-portal/internal/domain/entity"
	"github.com/jhoicas/certificate-portal/internal/domain/repository"
)

var _ repository.UserRepository = (*UserRepo)(nil)

// UserRepo implementación del puerto UserRepository sobre PostgreSQL (usable con pool o tx).
type UserRepo struct {
	q Querier
}

// NewUserRepository construye el adaptador. Pasar pool o tx (Querier).
func NewUserRepository(q Querier) *UserRepo {
	return &UserRepo{q: q}
}

const selectUser = `
	SELECT id, full_name, email, phone, password_hash, certificate_filename, created_at
	FROM users`

// Create persiste un nuevo usuario; la base asigna id y created_at.
func (r *UserRepo) Create(ctx context.Context, user *entity.User) error {
	query := `
		INSERT INTO users (full_name, email, phone, password_hash)
		VALUES ($1, $2, $3, $4)
		RETURNING id, created_at`
	err := r.q.QueryRow(ctx, query,
		user.FullName, user.Email, user.Phone, user.PasswordHash,
	).Scan(&user.ID, &user.CreatedAt)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrEmailAlreadyExists
		}
		return fmt.Errorf("insert user: %w", err)
	}
	return nil
}

// FindByID obtiene un usuario por ID.
func (r *UserRepo) FindByID(ctx context.Context, id int64) (*entity.User, error) {
	u, err := scanUser(r.q.QueryRow(ctx, selectUser+` WHERE id = $1`, id))
	if err != nil {
		return nil, fmt.Errorf("get user by id: %w", err)
	}
	return u, nil
}

// FindByEmail obtiene un usuario por email.
func (r *UserRepo) FindByEmail(ctx context.Context, email string) (*entity.User, error) {
	u, err := scanUser(r.q.QueryRow(ctx, selectUser+` WHERE email = $1 LIMIT 1`, email))
	if err != nil {
		return nil, fmt.Errorf("get user by email: %w", err)
	}
	return u, nil
}

// AttachCertificate fija certificate_filename si está vacío o ya tiene ese mismo valor.
func (r *UserRepo) AttachCertificate(ctx context.Context, id int64, filename string) error {
	tag, err := r.q.Exec(ctx, `
		UPDATE users SET certificate_filename = $2
		WHERE id = $1 AND (certificate_filename IS NULL OR certificate_filename = $2)`,
		id, filename,
	)
	if err != nil {
		return fmt.Errorf("attach certificate: %w", err)
	}
	if tag.RowsAffected() > 0 {
		return nil
	}
	u, err := r.FindByID(ctx, id)
	if err != nil {
		return err
	}
	if u == nil {
		return domain.ErrUserNotFound
	}
	return domain.ErrConflict
}

func scanUser(row pgx.Row) (*entity.User, error) {
	var (
		u    entity.User
		cert *string
	)
	err := row.Scan(&u.ID, &u.FullName, &u.Email, &u.Phone, &u.PasswordHash, &cert, &u.CreatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}
	if cert != nil {
		u.CertificateFilename = *cert
	}
	return &u, nil
}
