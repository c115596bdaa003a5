// Package certificate contiene las reglas del certificado de registro:
// nombre de archivo determinista, textos fijos y saneamiento del nombre del destinatario.
package certificate

import (
	"fmt"
	"regexp"
	"strconv"
	"time"

	"github.com/jhoicas/certificate-portal/internal/domain"
)

// Textos y formato fijos del documento.
const (
	Title         = "Certificate of Achievement"
	RecipientText = "Awarded to: "
	DateText      = "Date: "
	DateLayout    = "January 02, 2006"
)

var filenamePattern = regexp.MustCompile(`^certificate_([1-9][0-9]*)\.pdf$`)

// Filename devuelve el nombre del archivo del certificado del usuario id.
// Es función pura del id: regenerar siempre apunta al mismo archivo.
func Filename(id int64) string {
	return fmt.Sprintf("certificate_%d.pdf", id)
}

// ParseFilename extrae el id de un nombre generado por Filename.
func ParseFilename(name string) (int64, bool) {
	m := filenamePattern.FindStringSubmatch(name)
	if m == nil {
		return 0, false
	}
	id, err := strconv.ParseInt(m[1], 10, 64)
	if err != nil {
		return 0, false
	}
	return id, true
}

// Certificate datos de un certificado listo para renderizar.
type Certificate struct {
	UserID    int64
	Recipient string // ya saneado
	IssuedAt  time.Time
}

// New valida la identidad y sanea el nombre del destinatario.
func New(userID int64, fullName string, issuedAt time.Time) (*Certificate, error) {
	if userID <= 0 {
		return nil, fmt.Errorf("%w: id de usuario %d", domain.ErrInvalidInput, userID)
	}
	recipient := SanitizeRecipient(fullName)
	if recipient == "" {
		return nil, fmt.Errorf("%w: nombre del destinatario vacío", domain.ErrInvalidInput)
	}
	return &Certificate{UserID: userID, Recipient: recipient, IssuedAt: issuedAt}, nil
}

// Filename del certificado.
func (c *Certificate) Filename() string { return Filename(c.UserID) }

// TitleLine, RecipientLine y DateLine son las tres líneas centradas del documento.
func (c *Certificate) TitleLine() string     { return Title }
func (c *Certificate) RecipientLine() string { return RecipientText + c.Recipient }
func (c *Certificate) DateLine() string      { return DateText + FormatDate(c.IssuedAt) }

// FormatDate formatea como "January 05, 2024".
func FormatDate(t time.Time) string {
	return t.Format(DateLayout)
}
