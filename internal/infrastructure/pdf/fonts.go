package pdf

import (
	"fmt"
	"strings"
	"sync"

	"github.com/johnfercher/maroto/v2/pkg/consts/fontstyle"
	"github.com/johnfercher/maroto/v2/pkg/core/entity"
	"github.com/johnfercher/maroto/v2/pkg/repository"
	"golang.org/x/image/font/gofont/gobold"
	"golang.org/x/image/font/gofont/goitalic"
	"golang.org/x/image/font/gofont/goregular"
	"golang.org/x/image/font/sfnt"
)

// fontFamily es la familia UTF-8 embebida (fuentes Go: latín, griego, cirílico).
const fontFamily = "go"

// missingGlyph sustituye las runas que la fuente embebida no puede dibujar.
const missingGlyph = '?'

var parseRegular = sync.OnceValues(func() (*sfnt.Font, error) {
	return sfnt.Parse(goregular.TTF)
})

func loadFonts() ([]*entity.CustomFont, error) {
	fonts, err := repository.New().
		AddUTF8FontFromBytes(fontFamily, fontstyle.Normal, goregular.TTF).
		AddUTF8FontFromBytes(fontFamily, fontstyle.Bold, gobold.TTF).
		AddUTF8FontFromBytes(fontFamily, fontstyle.Italic, goitalic.TTF).
		Load()
	if err != nil {
		return nil, fmt.Errorf("pdf: cargar fuentes: %w", err)
	}
	return fonts, nil
}

// drawable reemplaza por '?' las runas sin glifo en la fuente embebida.
// Las tres variantes comparten cobertura, basta con consultar la regular.
func drawable(s string) (string, error) {
	f, err := parseRegular()
	if err != nil {
		return "", fmt.Errorf("pdf: leer fuente: %w", err)
	}
	var buf sfnt.Buffer
	var b strings.Builder
	b.Grow(len(s))
	for _, r := range s {
		if r != ' ' {
			idx, err := f.GlyphIndex(&buf, r)
			if err != nil || idx == 0 {
				r = missingGlyph
			}
		}
		b.WriteRune(r)
	}
	return b.String(), nil
}
