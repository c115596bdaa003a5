package certificate

import (
	"strings"
	"unicode"

	"golang.org/x/text/unicode/norm"

	"github.com/jhoicas/certificate-portal/internal/domain/entity"
)

// SanitizeRecipient normaliza el nombre antes de pasarlo al renderizador:
//   - NFC, para que "é" compuesto y descompuesto se dibujen igual;
//   - controles (saltos de línea, tabs, NUL...) pasan a espacio;
//   - espacios colapsados y recortados;
//   - runas de formato invisibles (U+200B, U+202E...) se descartan;
//   - máximo entity.MaxFullNameLength runas.
//
// El escape de '(' ')' '\' dentro de los strings PDF lo hace el escritor del PDF,
// y los glifos que falten en la fuente los resuelve el renderizador.
func SanitizeRecipient(name string) string {
	name = norm.NFC.String(name)

	var b strings.Builder
	b.Grow(len(name))
	count := 0
	pendingSpace := false
	for _, r := range name {
		if unicode.IsControl(r) || unicode.IsSpace(r) {
			pendingSpace = count > 0
			continue
		}
		if !unicode.IsGraphic(r) {
			continue
		}
		if count >= entity.MaxFullNameLength {
			break
		}
		if pendingSpace {
			if count+1 >= entity.MaxFullNameLength {
				break
			}
			b.WriteByte(' ')
			count++
			pendingSpace = false
		}
		b.WriteRune(r)
		count++
	}
	return b.String()
}
