package config_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/certificate-portal/pkg/config"
)

func TestLoad_SinSessionSecret_Falla(t *testing.T) {
	t.Setenv("SESSION_SECRET", "")

	cfg, err := config.Load()
	assert.Nil(t, cfg)
	assert.ErrorIs(t, err, config.ErrMissingSessionSecret,
		"sin SESSION_SECRET la aplicación no debe arrancar")
}

func TestLoad_ValoresPorDefecto(t *testing.T) {
	t.Setenv("SESSION_SECRET", "un-secreto-de-prueba")

	cfg, err := config.Load()
	require.NoError(t, err)

	assert.Equal(t, config.DriverSQLite, cfg.DB.Driver)
	assert.Equal(t, "./data/database.db", cfg.DB.SQLitePath)
	assert.Equal(t, config.StorageLocal, cfg.Certificates.Storage)
	assert.Equal(t, "./static/certificates", cfg.Certificates.Dir)
	assert.Equal(t, "session", cfg.Session.CookieName)
	assert.Equal(t, 24*60, cfg.Session.Expiration)
	assert.False(t, cfg.Session.CookieSecure)
	assert.Equal(t, "0.0.0.0:8080", cfg.HTTP.Addr())
}

func TestLoad_EnvSobrescribe(t *testing.T) {
	t.Setenv("SESSION_SECRET", "otro-secreto")
	t.Setenv("DB_DRIVER", "POSTGRES")
	t.Setenv("HTTP_PORT", "9090")
	t.Setenv("SESSION_COOKIE_SECURE", "true")
	t.Setenv("CERT_STORAGE", "s3")
	t.Setenv("S3_BUCKET", "certificados")

	cfg, err := config.Load()
	require.NoError(t, err)

	assert.Equal(t, config.DriverPostgres, cfg.DB.Driver)
	assert.Equal(t, 9090, cfg.HTTP.Port)
	assert.True(t, cfg.Session.CookieSecure)
	assert.Equal(t, config.StorageS3, cfg.Certificates.Storage)
	assert.Equal(t, "certificados", cfg.Certificates.S3.Bucket)
}

func TestValidate_S3SinBucket(t *testing.T) {
	t.Setenv("SESSION_SECRET", "secreto")
	t.Setenv("CERT_STORAGE", "s3")
	t.Setenv("S3_BUCKET", "")

	_, err := config.Load()
	assert.Error(t, err)
}

func TestValidate_DriverDesconocido(t *testing.T) {
	t.Setenv("SESSION_SECRET", "secreto")
	t.Setenv("DB_DRIVER", "mysql")

	_, err := config.Load()
	assert.Error(t, err)
}

func TestDBConfig_DSN_EscapaPassword(t *testing.T) {
	c := config.DBConfig{
		Host: "db", Port: 5432, User: "app", Password: "p@ss/word", DBName: "certs", SSLMode: "disable",
	}
	assert.Equal(t, "postgres://app:p%40ss%2Fword@db:5432/certs?sslmode=disable", c.DSN())

	c.DatabaseURL = "postgres://x@y/z"
	assert.Equal(t, "postgres://x@y/z", c.ConnectionString())
}
