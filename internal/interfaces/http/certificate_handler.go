package http

import (
	"errors"
	"fmt"

	"github.com/gofiber/fiber/v2"

	appcert "github.com/jhoicas/certificate-portal/internal/application/certificate"
	"github.com/jhoicas/certificate-portal/internal/domain"
	"github.com/jhoicas/certificate-portal/pkg/logger"
)

// CertificateHandler entrega y regenera el certificado del usuario autenticado.
type CertificateHandler struct {
	svc     *appcert.Service
	session SessionCookie
	log     *logger.Logger
}

// NewCertificateHandler construye el handler.
func NewCertificateHandler(svc *appcert.Service, session SessionCookie, log *logger.Logger) *CertificateHandler {
	return &CertificateHandler{svc: svc, session: session, log: log}
}

// Download godoc
// @Summary      Descargar el certificado propio
// @Tags         certificates
// @Produce      application/pdf
// @Param        filename  path  string  true  "certificate_<id>.pdf"
// @Success      200
// @Failure      302
// @Failure      404
// @Router       /download_certificate/{filename} [get]
func (h *CertificateHandler) Download(c *fiber.Ctx) error {
	filename := c.Params("filename")
	data, err := h.svc.Download(c.UserContext(), GetUserID(c), filename)
	if err != nil {
		return certificateError(err)
	}
	c.Attachment(filename)
	c.Set(fiber.HeaderContentType, "application/pdf")
	return c.Send(data)
}

// View GET /certificate: el certificado propio en línea (visor del dashboard).
func (h *CertificateHandler) View(c *fiber.Ctx) error {
	data, filename, err := h.svc.Own(c.UserContext(), GetUserID(c))
	if err != nil {
		return certificateError(err)
	}
	c.Set(fiber.HeaderContentType, "application/pdf")
	c.Set(fiber.HeaderContentDisposition, fmt.Sprintf(`inline; filename="%s"`, filename))
	return c.Send(data)
}

// Regenerate POST /certificate/regenerate
func (h *CertificateHandler) Regenerate(c *fiber.Ctx) error {
	userID := GetUserID(c)
	filename, err := h.svc.Regenerate(c.UserContext(), userID)
	if err != nil {
		if errors.Is(err, domain.ErrUserNotFound) {
			clearCookie(c, h.session.Name)
			return c.Redirect("/login", fiber.StatusSeeOther)
		}
		h.log.Error().Err(err).Int64("user_id", userID).Msg("regenerar certificado")
		return err
	}
	h.log.Info().Int64("user_id", userID).Str("certificate", filename).Msg("certificado regenerado")
	setFlash(c, FlashSuccess, "Your certificate has been regenerated.")
	return c.Redirect("/dashboard", fiber.StatusSeeOther)
}

// Un certificado ajeno se reporta igual que uno inexistente.
func certificateError(err error) error {
	if errors.Is(err, domain.ErrCertificateNotFound) || errors.Is(err, domain.ErrUserNotFound) {
		return fiber.NewError(fiber.StatusNotFound, "Certificate not found.")
	}
	return err
}
