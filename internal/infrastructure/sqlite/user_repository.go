package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/jhoicas/certificate-portal/internal/domain"
	"github.com/jhoicas/certificate-portal/internal/domain/entity"
	"github.com/jhoicas/certificate-portal/internal/domain/repository"
)

var _ repository.UserRepository = (*UserRepo)(nil)

// querier lo cumplen *sql.DB y *sql.Tx.
type querier interface {
	ExecContext(ctx context.Context, query string, args ...interface{}) (sql.Result, error)
	QueryRowContext(ctx context.Context, query string, args ...interface{}) *sql.Row
}

// UserRepo implementación del puerto UserRepository sobre SQLite (usable con db o tx).
type UserRepo struct {
	q querier
}

// NewUserRepository construye el adaptador. Pasar *sql.DB o *sql.Tx.
func NewUserRepository(q querier) *UserRepo {
	return &UserRepo{q: q}
}

const selectUser = `
	SELECT id, full_name, email, phone, password_hash, certificate_filename, created_at
	FROM users`

// Create persiste un nuevo usuario y asigna ID y CreatedAt.
func (r *UserRepo) Create(ctx context.Context, user *entity.User) error {
	now := time.Now().UTC()
	res, err := r.q.ExecContext(ctx, `
		INSERT INTO users (full_name, email, phone, password_hash, created_at)
		VALUES (?, ?, ?, ?, ?)`,
		user.FullName, user.Email, user.Phone, user.PasswordHash, now.Unix(),
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrEmailAlreadyExists
		}
		return fmt.Errorf("insert user: %w", err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return fmt.Errorf("insert user: last id: %w", err)
	}
	user.ID = id
	user.CreatedAt = time.Unix(now.Unix(), 0).UTC()
	return nil
}

// FindByID obtiene un usuario por ID.
func (r *UserRepo) FindByID(ctx context.Context, id int64) (*entity.User, error) {
	u, err := scanUser(r.q.QueryRowContext(ctx, selectUser+` WHERE id = ?`, id))
	if err != nil {
		return nil, fmt.Errorf("get user by id: %w", err)
	}
	return u, nil
}

// FindByEmail obtiene un usuario por email (coincidencia exacta).
func (r *UserRepo) FindByEmail(ctx context.Context, email string) (*entity.User, error) {
	u, err := scanUser(r.q.QueryRowContext(ctx, selectUser+` WHERE email = ? LIMIT 1`, email))
	if err != nil {
		return nil, fmt.Errorf("get user by email: %w", err)
	}
	return u, nil
}

// AttachCertificate fija certificate_filename si está vacío o ya tiene ese mismo valor.
func (r *UserRepo) AttachCertificate(ctx context.Context, id int64, filename string) error {
	res, err := r.q.ExecContext(ctx, `
		UPDATE users SET certificate_filename = ?
		WHERE id = ? AND (certificate_filename IS NULL OR certificate_filename = ?)`,
		filename, id, filename,
	)
	if err != nil {
		return fmt.Errorf("attach certificate: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("attach certificate: rows: %w", err)
	}
	if n > 0 {
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

func scanUser(row *sql.Row) (*entity.User, error) {
	var (
		u         entity.User
		cert      sql.NullString
		createdAt int64
	)
	err := row.Scan(&u.ID, &u.FullName, &u.Email, &u.Phone, &u.PasswordHash, &cert, &createdAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}
	u.CertificateFilename = cert.String
	u.CreatedAt = time.Unix(createdAt, 0).UTC()
	return &u, nil
}
