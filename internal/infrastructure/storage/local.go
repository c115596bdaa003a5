// Package storage guarda los PDF de certificados en disco local o en un bucket S3.
package storage

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	appcert "github.com/jhoicas/certificate-portal/internal/application/certificate"
	"github.com/jhoicas/certificate-portal/internal/domain"
)

var _ appcert.Storage = (*LocalStorage)(nil)

// LocalStorage guarda cada documento como <dir>/<name>.
type LocalStorage struct {
	dir string
}

// NewLocalStorage usa dir tal cual; no lo crea. Si no existe, Save falla.
func NewLocalStorage(dir string) *LocalStorage {
	return &LocalStorage{dir: dir}
}

// EnsureDir crea el directorio de certificados (arranque de la app).
func (s *LocalStorage) EnsureDir() error {
	if err := os.MkdirAll(s.dir, 0o755); err != nil {
		return fmt.Errorf("storage: crear %s: %w", s.dir, err)
	}
	return nil
}

// Dir devuelve el directorio base.
func (s *LocalStorage) Dir() string { return s.dir }

// Save escribe en un temporal del mismo directorio, hace fsync y renombra sobre el destino:
// un lector nunca ve un PDF a medias y regenerar sobrescribe el mismo archivo.
func (s *LocalStorage) Save(ctx context.Context, name string, data []byte) (err error) {
	if err := ctx.Err(); err != nil {
		return err
	}
	path, err := s.path(name)
	if err != nil {
		return err
	}

	tmp, err := os.CreateTemp(s.dir, "."+name+".*.tmp")
	if err != nil {
		return fmt.Errorf("storage: crear temporal: %w", err)
	}
	defer func() {
		if err != nil {
			_ = os.Remove(tmp.Name())
		}
	}()

	if _, err = tmp.Write(data); err != nil {
		tmp.Close()
		return fmt.Errorf("storage: escribir %s: %w", name, err)
	}
	if err = tmp.Sync(); err != nil {
		tmp.Close()
		return fmt.Errorf("storage: sync %s: %w", name, err)
	}
	if err = tmp.Close(); err != nil {
		return fmt.Errorf("storage: cerrar %s: %w", name, err)
	}
	if err = os.Chmod(tmp.Name(), 0o644); err != nil {
		return fmt.Errorf("storage: permisos %s: %w", name, err)
	}
	if err = os.Rename(tmp.Name(), path); err != nil {
		return fmt.Errorf("storage: renombrar %s: %w", name, err)
	}
	return nil
}

// Load lee el documento; domain.ErrCertificateNotFound si no existe.
func (s *LocalStorage) Load(ctx context.Context, name string) ([]byte, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	path, err := s.path(name)
	if err != nil {
		return nil, err
	}
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, domain.ErrCertificateNotFound
		}
		return nil, fmt.Errorf("storage: leer %s: %w", name, err)
	}
	return data, nil
}

// Delete elimina el documento; domain.ErrCertificateNotFound si no existe.
func (s *LocalStorage) Delete(ctx context.Context, name string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	path, err := s.path(name)
	if err != nil {
		return err
	}
	if err := os.Remove(path); err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return domain.ErrCertificateNotFound
		}
		return fmt.Errorf("storage: eliminar %s: %w", name, err)
	}
	return nil
}

// path rechaza nombres con separadores o "..": nunca se sale del directorio base.
func (s *LocalStorage) path(name string) (string, error) {
	if err := validName(name); err != nil {
		return "", err
	}
	return filepath.Join(s.dir, name), nil
}

func validName(name string) error {
	if name == "" || name == "." || name == ".." ||
		strings.ContainsAny(name, `/\`) || strings.ContainsRune(name, 0) ||
		filepath.Base(name) != name || strings.HasPrefix(name, ".") {
		return fmt.Errorf("%w: nombre de archivo %q", domain.ErrInvalidInput, name)
	}
	return nil
}
