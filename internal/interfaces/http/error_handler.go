package http

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/utils"

	"github.com/jhoicas/certificate-portal/pkg/logger"
)

// ErrorHandler renderiza la página de error. Los errores que no son *fiber.Error
// se registran y se responden como 500 sin exponer el detalle.
func ErrorHandler(log *logger.Logger) fiber.ErrorHandler {
	return func(c *fiber.Ctx, err error) error {
		code := fiber.StatusInternalServerError
		message := "Something went wrong. Please try again later."

		var fe *fiber.Error
		if errors.As(err, &fe) {
			code = fe.Code
			message = fe.Message
		} else {
			log.Error().Err(err).
				Str("method", c.Method()).
				Str("path", c.Path()).
				Msg("error no controlado")
		}

		if rerr := render(c, code, "error", fiber.Map{
			"Title":   utils.StatusMessage(code),
			"Status":  code,
			"Message": message,
			"Flash":   nil,
		}); rerr != nil {
			return c.Status(code).SendString(message)
		}
		return nil
	}
}
