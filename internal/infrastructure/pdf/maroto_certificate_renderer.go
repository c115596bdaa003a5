// Package pdf dibuja el certificado de registro con Maroto v2.
//
// Layout de la página (600×400 pt, apaisada):
//
//	┌──────────────────────────────────────────────┐
//	│                                              │
//	│          Certificate of Achievement          │  Go Bold 24
//	│                                              │
//	│         Awarded to: <nombre completo>        │  Go Regular 18
//	│                                              │
//	│            Date: January 05, 2024            │  Go Italic 14
//	│                                              │
//	└──────────────────────────────────────────────┘
package pdf

import (
	"context"
	"fmt"
	"unicode/utf8"

	maroto "github.com/johnfercher/maroto/v2"
	"github.com/johnfercher/maroto/v2/pkg/components/col"
	"github.com/johnfercher/maroto/v2/pkg/components/row"
	"github.com/johnfercher/maroto/v2/pkg/components/text"
	"github.com/johnfercher/maroto/v2/pkg/config"
	"github.com/johnfercher/maroto/v2/pkg/consts/align"
	"github.com/johnfercher/maroto/v2/pkg/consts/fontstyle"
	"github.com/johnfercher/maroto/v2/pkg/core"
	"github.com/johnfercher/maroto/v2/pkg/props"

	appcert "github.com/jhoicas/certificate-portal/internal/application/certificate"
	domaincert "github.com/jhoicas/certificate-portal/internal/domain/certificate"
)

var _ appcert.Renderer = (*MarotoCertificateRenderer)(nil)

// Maroto trabaja en milímetros: 600×400 pt = 211.67×141.11 mm.
const (
	pointToMM    = 25.4 / 72
	pageWidthMM  = 600 * pointToMM
	pageHeightMM = 400 * pointToMM

	// Nombres más largos bajan de tamaño para caber en una línea.
	longRecipientRunes = 45
)

var colorPrimary = &props.Color{Red: 0, Green: 70, Blue: 127}

// MarotoCertificateRenderer implementa certificate.Renderer usando Maroto v2.
type MarotoCertificateRenderer struct {
	author   string
	compress bool
}

// Option configura el renderer.
type Option func(*MarotoCertificateRenderer)

// WithAuthor fija el autor en los metadatos del PDF.
func WithAuthor(author string) Option {
	return func(r *MarotoCertificateRenderer) { r.author = author }
}

// WithCompression activa o desactiva la compresión de los streams (activada por defecto).
func WithCompression(enabled bool) Option {
	return func(r *MarotoCertificateRenderer) { r.compress = enabled }
}

// NewMarotoCertificateRenderer construye el renderer.
func NewMarotoCertificateRenderer(opts ...Option) *MarotoCertificateRenderer {
	r := &MarotoCertificateRenderer{author: "certificate-portal", compress: true}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Render genera el PDF de una página y devuelve sus bytes.
func (r *MarotoCertificateRenderer) Render(ctx context.Context, cert *domaincert.Certificate) ([]byte, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	fonts, err := loadFonts()
	if err != nil {
		return nil, err
	}
	recipient, err := drawable(cert.RecipientLine())
	if err != nil {
		return nil, err
	}

	cfg := config.NewBuilder().
		WithDimensions(pageWidthMM, pageHeightMM).
		WithLeftMargin(10).WithRightMargin(10).
		WithTopMargin(10).WithBottomMargin(10).
		WithCustomFonts(fonts).
		WithDefaultFont(&props.Font{Family: fontFamily, Size: 14}).
		WithTitle(domaincert.Title, true).
		WithAuthor(r.author, true).
		WithCompression(r.compress).
		Build()

	m := maroto.New(cfg)
	m.AddRows(
		titleRow(cert),
		recipientRow(cert.Recipient, recipient),
		dateRow(cert),
	)

	doc, err := m.Generate()
	if err != nil {
		return nil, fmt.Errorf("pdf: generar certificado: %w", err)
	}
	return doc.GetBytes(), nil
}

// ── Filas ─────────────────────────────────────────────────────────────────────

func titleRow(cert *domaincert.Certificate) core.Row {
	return centered(18, cert.TitleLine(), props.Text{
		Style: fontstyle.Bold, Size: 24, Top: 6, Color: colorPrimary,
	})
}

func recipientRow(name, line string) core.Row {
	size := 18.0
	if utf8.RuneCountInString(name) > longRecipientRunes {
		size = 11
	}
	return centered(18, line, props.Text{
		Style: fontstyle.Normal, Size: size, Top: 8,
	})
}

func dateRow(cert *domaincert.Certificate) core.Row {
	return centered(18, cert.DateLine(), props.Text{
		Style: fontstyle.Italic, Size: 14, Top: 8,
	})
}

func centered(height float64, s string, p props.Text) core.Row {
	p.Family = fontFamily
	p.Align = align.Center
	return row.New(height).Add(col.New(12).Add(text.New(s, p)))
}
