// Package sqlite implementa el store de usuarios sobre un archivo SQLite local
// (driver puro Go, sin CGO).
package sqlite

import (
	"context"
	"database/sql"
	"embed"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/pressly/goose/v3"
	_ "modernc.org/sqlite"
)

//go:embed migrations/*.sql
var migrations embed.FS

// Store conexión al archivo SQLite con el esquema migrado.
type Store struct {
	db *sql.DB
}

// Open crea el directorio padre si no existe, abre la base y aplica las migraciones.
// log recibe la salida de goose; nil la descarta.
func Open(ctx context.Context, path string, log goose.Logger) (*Store, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, fmt.Errorf("sqlite: crear directorio: %w", err)
	}

	dsn := "file:" + path +
		"?_pragma=busy_timeout(5000)&_pragma=journal_mode(WAL)&_pragma=foreign_keys(1)&_txlock=immediate"
	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("sqlite: abrir: %w", err)
	}
	// Un solo escritor: serializa las transacciones en lugar de fallar con SQLITE_BUSY.
	db.SetMaxOpenConns(1)

	if err := db.PingContext(ctx); err != nil {
		db.Close()
		return nil, fmt.Errorf("sqlite: ping: %w", err)
	}
	if err := migrate(ctx, db, log); err != nil {
		db.Close()
		return nil, err
	}
	return &Store{db: db}, nil
}

// migrate usa un goose.Provider propio: no toca el estado global de goose,
// así que varios stores (o el backend postgres) pueden migrar a la vez.
func migrate(ctx context.Context, db *sql.DB, log goose.Logger) error {
	fsys, err := fs.Sub(migrations, "migrations")
	if err != nil {
		return fmt.Errorf("sqlite: migraciones embebidas: %w", err)
	}
	provider, err := goose.NewProvider(goose.DialectSQLite3, db, fsys)
	if err != nil {
		return fmt.Errorf("sqlite: proveedor goose: %w", err)
	}
	results, err := provider.Up(ctx)
	if err != nil {
		return fmt.Errorf("sqlite: migraciones: %w", err)
	}
	if log != nil {
		for _, r := range results {
			log.Printf("%s", r)
		}
	}
	return nil
}

// DB devuelve la conexión subyacente.
func (s *Store) DB() *sql.DB { return s.db }

// Close cierra la conexión.
func (s *Store) Close() error { return s.db.Close() }
