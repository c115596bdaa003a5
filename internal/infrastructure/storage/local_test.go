package storage_test

import (
	"context"
	"os"
	"path/filepath"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/certificate-portal/internal/domain"
	"github.com/jhoicas/certificate-portal/internal/infrastructure/storage"
)

func TestLocal_SaveLoad(t *testing.T) {
	dir := t.TempDir()
	s := storage.NewLocalStorage(dir)
	ctx := context.Background()

	require.NoError(t, s.Save(ctx, "certificate_1.pdf", []byte("%PDF-uno")))

	got, err := s.Load(ctx, "certificate_1.pdf")
	require.NoError(t, err)
	assert.Equal(t, []byte("%PDF-uno"), got)

	onDisk, err := os.ReadFile(filepath.Join(dir, "certificate_1.pdf"))
	require.NoError(t, err)
	assert.Equal(t, []byte("%PDF-uno"), onDisk)
}

func TestLocal_SaveSobrescribe(t *testing.T) {
	dir := t.TempDir()
	s := storage.NewLocalStorage(dir)
	ctx := context.Background()

	require.NoError(t, s.Save(ctx, "certificate_2.pdf", []byte("primero")))
	require.NoError(t, s.Save(ctx, "certificate_2.pdf", []byte("segundo")))

	got, err := s.Load(ctx, "certificate_2.pdf")
	require.NoError(t, err)
	assert.Equal(t, []byte("segundo"), got)

	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	assert.Len(t, entries, 1, "no deben quedar temporales")
}

func TestLocal_DirectorioInexistente(t *testing.T) {
	s := storage.NewLocalStorage(filepath.Join(t.TempDir(), "no-existe"))
	err := s.Save(context.Background(), "certificate_1.pdf", []byte("x"))
	assert.Error(t, err)
}

func TestLocal_EnsureDir(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "static", "certificates")
	s := storage.NewLocalStorage(dir)
	require.NoError(t, s.EnsureDir())
	require.NoError(t, s.Save(context.Background(), "certificate_3.pdf", []byte("x")))
	assert.Equal(t, dir, s.Dir())
}

func TestLocal_LoadInexistente(t *testing.T) {
	s := storage.NewLocalStorage(t.TempDir())
	_, err := s.Load(context.Background(), "certificate_9.pdf")
	assert.ErrorIs(t, err, domain.ErrCertificateNotFound)
}

func TestLocal_Delete(t *testing.T) {
	s := storage.NewLocalStorage(t.TempDir())
	ctx := context.Background()
	require.NoError(t, s.Save(ctx, "certificate_4.pdf", []byte("x")))

	require.NoError(t, s.Delete(ctx, "certificate_4.pdf"))
	_, err := s.Load(ctx, "certificate_4.pdf")
	assert.ErrorIs(t, err, domain.ErrCertificateNotFound)

	assert.ErrorIs(t, s.Delete(ctx, "certificate_4.pdf"), domain.ErrCertificateNotFound)
}

func TestLocal_NombresInvalidos(t *testing.T) {
	parent := t.TempDir()
	dir := filepath.Join(parent, "certs")
	require.NoError(t, os.Mkdir(dir, 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(parent, "secreto.txt"), []byte("no"), 0o600))
	s := storage.NewLocalStorage(dir)
	ctx := context.Background()

	for _, name := range []string{"", ".", "..", "../secreto.txt", "a/b.pdf", `a\b.pdf`, "/etc/passwd", ".oculto"} {
		_, err := s.Load(ctx, name)
		assert.ErrorIs(t, err, domain.ErrInvalidInput, "Load(%q)", name)
		assert.ErrorIs(t, s.Save(ctx, name, []byte("x")), domain.ErrInvalidInput, "Save(%q)", name)
	}
}

func TestLocal_ContextoCancelado(t *testing.T) {
	s := storage.NewLocalStorage(t.TempDir())
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	assert.ErrorIs(t, s.Save(ctx, "certificate_1.pdf", []byte("x")), context.Canceled)
}

func TestLocal_EscriturasConcurrentes(t *testing.T) {
	s := storage.NewLocalStorage(t.TempDir())
	ctx := context.Background()

	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			assert.NoError(t, s.Save(ctx, "certificate_5.pdf", []byte("%PDF-contenido-completo")))
		}()
	}
	wg.Wait()

	got, err := s.Load(ctx, "certificate_5.pdf")
	require.NoError(t, err)
	assert.Equal(t, []byte("%PDF-contenido-completo"), got, "nunca se lee un archivo a medias")
}
