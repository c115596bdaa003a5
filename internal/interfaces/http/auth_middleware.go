package http

import (
	"github.com/gofiber/fiber/v2"
)

// LocalUserID clave en c.Locals del usuario autenticado (int64).
const LocalUserID = "user_id"

// SessionCookie parámetros de la cookie de sesión.
type SessionCookie struct {
	Name   string
	Secure bool
}

// sessionParser lo implementa *auth.AuthUseCase.
type sessionParser interface {
	ParseSession(token string) (int64, error)
}

// SessionMiddleware valida la cookie de sesión y carga el user_id en c.Locals.
// Sin cookie válida la petición sigue como anónima; una cookie inválida se borra.
func SessionMiddleware(parser sessionParser, cookieName string) fiber.Handler {
	return func(c *fiber.Ctx) error {
		token := c.Cookies(cookieName)
		if token == "" {
			return c.Next()
		}
		userID, err := parser.ParseSession(token)
		if err != nil {
			clearCookie(c, cookieName)
			return c.Next()
		}
		c.Locals(LocalUserID, userID)
		return c.Next()
	}
}

// RequireSession redirige a /login si la petición es anónima.
// Debe usarse después de SessionMiddleware.
func RequireSession() fiber.Handler {
	return func(c *fiber.Ctx) error {
		if GetUserID(c) == 0 {
			return c.Redirect("/login", fiber.StatusFound)
		}
		return c.Next()
	}
}

// GetUserID devuelve el id del usuario de la sesión, o 0 si es anónima.
func GetUserID(c *fiber.Ctx) int64 {
	id, _ := c.Locals(LocalUserID).(int64)
	return id
}
