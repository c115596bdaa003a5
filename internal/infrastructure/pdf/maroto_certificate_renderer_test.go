package pdf_test

import (
	"bytes"
	"context"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/text/encoding/unicode"

	domaincert "github.com/jhoicas/certificate-portal/internal/domain/certificate"
	"github.com/jhoicas/certificate-portal/internal/infrastructure/pdf"
)

func mustCert(t *testing.T, id int64, name string, at time.Time) *domaincert.Certificate {
	t.Helper()
	c, err := domaincert.New(id, name, at)
	require.NoError(t, err)
	return c
}

// pdfText devuelve s tal como aparece en un stream sin comprimir con fuente UTF-8:
// UTF-16BE sin BOM y con '\\', '(' y ')' escapados.
func pdfText(t *testing.T, s string) string {
	t.Helper()
	enc, err := unicode.UTF16(unicode.BigEndian, unicode.IgnoreBOM).NewEncoder().String(s)
	require.NoError(t, err)
	return strings.NewReplacer(`\`, `\\`, "(", `\(`, ")", `\)`, "\r", `\r`).Replace(enc)
}

func TestRender_ContieneLasTresLineas(t *testing.T) {
	// Sin compresión los strings del PDF quedan legibles en el contenido.
	r := pdf.NewMarotoCertificateRenderer(pdf.WithCompression(false))
	cert := mustCert(t, 7, "Ada Lovelace", time.Date(2024, time.January, 5, 10, 0, 0, 0, time.UTC))

	doc, err := r.Render(context.Background(), cert)
	require.NoError(t, err)

	assert.True(t, bytes.HasPrefix(doc, []byte("%PDF-")), "debe ser un documento PDF")
	assert.Contains(t, string(doc), pdfText(t, "Certificate of Achievement"))
	assert.Contains(t, string(doc), pdfText(t, "Awarded to: Ada Lovelace"))
	assert.Contains(t, string(doc), pdfText(t, "Date: January 05, 2024"))
}

func TestRender_EscriturasNoLatinas(t *testing.T) {
	r := pdf.NewMarotoCertificateRenderer(pdf.WithCompression(false))
	cert := mustCert(t, 4, "Анна Σοφία Núñez", time.Now())

	doc, err := r.Render(context.Background(), cert)
	require.NoError(t, err)
	assert.Contains(t, string(doc), pdfText(t, "Awarded to: Анна Σοφία Núñez"))
}

func TestRender_GlifoFaltanteSeDibujaComoInterrogacion(t *testing.T) {
	r := pdf.NewMarotoCertificateRenderer(pdf.WithCompression(false))
	cert := mustCert(t, 5, "李雷 Smith", time.Now())

	doc, err := r.Render(context.Background(), cert)
	require.NoError(t, err)
	assert.Contains(t, string(doc), pdfText(t, "Awarded to: ?? Smith"))
	assert.Equal(t, "李雷 Smith", cert.Recipient, "el nombre guardado no se altera")
}

func TestRender_Comprimido(t *testing.T) {
	r := pdf.NewMarotoCertificateRenderer()
	cert := mustCert(t, 1, "Grace Hopper", time.Now())

	doc, err := r.Render(context.Background(), cert)
	require.NoError(t, err)
	assert.True(t, bytes.HasPrefix(doc, []byte("%PDF-")))
	assert.NotEmpty(t, doc)
}

func TestRender_NombreLargoYCaracteresEspeciales(t *testing.T) {
	r := pdf.NewMarotoCertificateRenderer(pdf.WithCompression(false))
	name := "Ada (Countess) " + strings.Repeat("Lovelace ", 9)
	cert := mustCert(t, 2, name, time.Now())

	doc, err := r.Render(context.Background(), cert)
	require.NoError(t, err, "paréntesis y nombres largos no rompen el documento")
	assert.True(t, bytes.HasPrefix(doc, []byte("%PDF-")))
	assert.Contains(t, string(doc), pdfText(t, "(Countess)"))
}

func TestRender_ContextoCancelado(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := pdf.NewMarotoCertificateRenderer().Render(ctx, mustCert(t, 3, "Ada", time.Now()))
	assert.ErrorIs(t, err, context.Canceled)
}
