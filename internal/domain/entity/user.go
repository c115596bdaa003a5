package entity

import "time"

// Límites de longitud de las columnas de users.
const (
	MaxFullNameLength     = 100
	MaxEmailLength        = 100
	MaxPhoneLength        = 15
	MaxPasswordHashLength = 200
	MaxFilenameLength     = 200
)

// User representa un usuario registrado.
type User struct {
	ID                  int64 // asignado por el store
	FullName            string
	Email               string
	Phone               string
	PasswordHash        string // bcrypt, nunca texto plano
	CertificateFilename string // vacío hasta que el certificado se escribe (NULL en la tabla)
	CreatedAt           time.Time
}

// HasCertificate indica si ya se registró el archivo del certificado.
func (u *User) HasCertificate() bool {
	return u.CertificateFilename != ""
}
