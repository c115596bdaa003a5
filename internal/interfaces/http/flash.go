package http

import (
	"net/url"
	"strings"
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/certificate-portal/internal/application/dto"
)

const flashCookie = "flash"

// Categorías de flash.
const (
	FlashSuccess = "success"
	FlashError   = "error"
)

// setFlash guarda un mensaje de un solo uso para la siguiente página renderizada.
func setFlash(c *fiber.Ctx, category, message string) {
	c.Cookie(&fiber.Cookie{
		Name:     flashCookie,
		Value:    url.QueryEscape(category + "|" + message),
		Path:     "/",
		HTTPOnly: true,
		SameSite: fiber.CookieSameSiteLaxMode,
	})
}

// popFlash lee y borra el flash pendiente. nil si no hay o está mal formado.
func popFlash(c *fiber.Ctx) *dto.Flash {
	raw := c.Cookies(flashCookie)
	if raw == "" {
		return nil
	}
	clearCookie(c, flashCookie)

	decoded, err := url.QueryUnescape(raw)
	if err != nil {
		return nil
	}
	category, message, ok := strings.Cut(decoded, "|")
	if !ok || message == "" || (category != FlashSuccess && category != FlashError) {
		return nil
	}
	return &dto.Flash{Category: category, Message: message}
}

func clearCookie(c *fiber.Ctx, name string) {
	c.Cookie(&fiber.Cookie{
		Name:     name,
		Value:    "",
		Path:     "/",
		HTTPOnly: true,
		SameSite: fiber.CookieSameSiteLaxMode,
		Expires:  time.Now().Add(-time.Hour),
	})
}
