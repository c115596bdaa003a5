package postgres_test

import (
	"context"
	"errors"
	"os"
	"testing"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/certificate-portal/internal/domain"
	"github.com/jhoicas/certificate-portal/internal/domain/entity"
	"github.com/jhoicas/certificate-portal/internal/domain/repository"
	"github.com/jhoicas/certificate-portal/internal/infrastructure/postgres"
	"github.com/jhoicas/certificate-portal/pkg/config"
)

// Test de integración: requiere TEST_DATABASE_URL apuntando a una base descartable.
func testPool(t *testing.T) *pgxpool.Pool {
	t.Helper()
	dsn := os.Getenv("TEST_DATABASE_URL")
	if dsn == "" {
		t.Skip("TEST_DATABASE_URL no definido; se omite el test de PostgreSQL")
	}
	ctx := context.Background()
	pool, err := postgres.NewPool(ctx, config.DBConfig{DatabaseURL: dsn})
	require.NoError(t, err)
	t.Cleanup(pool.Close)

	require.NoError(t, postgres.Migrate(ctx, pool, nil))
	_, err = pool.Exec(ctx, `TRUNCATE users RESTART IDENTITY`)
	require.NoError(t, err)
	return pool
}

func TestUserRepo_Postgres(t *testing.T) {
	pool := testPool(t)
	repo := postgres.NewUserRepository(pool)
	ctx := context.Background()

	u := &entity.User{FullName: "Ada Lovelace", Email: "ada@example.com", Phone: "123", PasswordHash: "h"}
	require.NoError(t, repo.Create(ctx, u))
	assert.Positive(t, u.ID)

	err := repo.Create(ctx, &entity.User{FullName: "Otra", Email: "ada@example.com", Phone: "1", PasswordHash: "h"})
	assert.ErrorIs(t, err, domain.ErrEmailAlreadyExists)

	require.NoError(t, repo.AttachCertificate(ctx, u.ID, "certificate_1.pdf"))
	assert.NoError(t, repo.AttachCertificate(ctx, u.ID, "certificate_1.pdf"))
	assert.ErrorIs(t, repo.AttachCertificate(ctx, u.ID, "x.pdf"), domain.ErrConflict)
	assert.ErrorIs(t, repo.AttachCertificate(ctx, 9999, "certificate_9999.pdf"), domain.ErrUserNotFound)

	got, err := repo.FindByEmail(ctx, "ada@example.com")
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, "certificate_1.pdf", got.CertificateFilename)

	missing, err := repo.FindByID(ctx, 9999)
	assert.NoError(t, err)
	assert.Nil(t, missing)
}

func TestTxRunner_PostgresRollback(t *testing.T) {
	pool := testPool(t)
	ctx := context.Background()

	err := postgres.NewTxRunner(pool).RunInTx(ctx, func(users repository.UserRepository) error {
		if err := users.Create(ctx, &entity.User{FullName: "Tx", Email: "tx@example.com", Phone: "1", PasswordHash: "h"}); err != nil {
			return err
		}
		return errors.New("forzar rollback")
	})
	require.Error(t, err)

	u, err := postgres.NewUserRepository(pool).FindByEmail(ctx, "tx@example.com")
	require.NoError(t, err)
	assert.Nil(t, u)
}
