package http

import (
	"errors"

	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/certificate-portal/internal/application/auth"
	"github.com/jhoicas/certificate-portal/internal/application/dto"
	"github.com/jhoicas/certificate-portal/internal/domain"
	"github.com/jhoicas/certificate-portal/pkg/logger"
)

// AuthHandler maneja registro, login y logout.
type AuthHandler struct {
	uc      *auth.AuthUseCase
	session SessionCookie
	log     *logger.Logger
}

// NewAuthHandler construye el handler de auth.
func NewAuthHandler(uc *auth.AuthUseCase, session SessionCookie, log *logger.Logger) *AuthHandler {
	return &AuthHandler{uc: uc, session: session, log: log}
}

// ShowRegister GET /register
func (h *AuthHandler) ShowRegister(c *fiber.Ctx) error {
	return render(c, fiber.StatusOK, "register", fiber.Map{
		"Title": "Register",
		"Form":  dto.RegisterRequest{},
		"Flash": popFlash(c),
	})
}

// Register godoc
// @Summary      Registrar usuario y generar su certificado
// @Tags         auth
// @Accept       x-www-form-urlencoded
// @Produce      html
// @Param        full_name  formData  string  true  "nombre completo"
// @Param        email      formData  string  true  "email"
// @Param        phone      formData  string  true  "teléfono"
// @Param        password   formData  string  true  "contraseña (8 a 72)"
// @Success      303
// @Failure      400
// @Failure      409
// @Router       /register [post]
func (h *AuthHandler) Register(c *fiber.Ctx) error {
	var in dto.RegisterRequest
	if err := c.BodyParser(&in); err != nil {
		return h.registerForm(c, fiber.StatusBadRequest, in, "Invalid form submission.")
	}

	user, err := h.uc.RegisterUser(c.UserContext(), in)
	if err != nil {
		var verr *dto.ValidationError
		switch {
		case errors.As(err, &verr):
			return h.registerForm(c, fiber.StatusBadRequest, in, verr.Message)
		case errors.Is(err, domain.ErrEmailAlreadyExists):
			return h.registerForm(c, fiber.StatusConflict, in, "Email already registered!")
		case errors.Is(err, domain.ErrInvalidInput):
			return h.registerForm(c, fiber.StatusBadRequest, in, "Please check the form and try again.")
		default:
			h.log.Error().Err(err).Msg("registro fallido")
			return err
		}
	}

	h.log.Info().
		Int64("user_id", user.ID).
		Str("certificate", user.CertificateFilename).
		Msg("usuario registrado")
	setFlash(c, FlashSuccess, "Registration successful! Please log in.")
	return c.Redirect("/login", fiber.StatusSeeOther)
}

func (h *AuthHandler) registerForm(c *fiber.Ctx, status int, in dto.RegisterRequest, message string) error {
	in.Password = ""
	return render(c, status, "register", fiber.Map{
		"Title": "Register",
		"Form":  in,
		"Flash": &dto.Flash{Category: FlashError, Message: message},
	})
}

// ShowLogin GET /login
func (h *AuthHandler) ShowLogin(c *fiber.Ctx) error {
	return render(c, fiber.StatusOK, "login", fiber.Map{
		"Title": "Login",
		"Email": "",
		"Flash": popFlash(c),
	})
}

// Login godoc
// @Summary      Iniciar sesión
// @Tags         auth
// @Accept       x-www-form-urlencoded
// @Produce      html
// @Param        email     formData  string  true  "email"
// @Param        password  formData  string  true  "contraseña"
// @Success      303
// @Failure      400
// @Failure      401
// @Router       /login [post]
func (h *AuthHandler) Login(c *fiber.Ctx) error {
	var in dto.LoginRequest
	if err := c.BodyParser(&in); err != nil {
		return h.loginForm(c, fiber.StatusBadRequest, "", "Invalid form submission.")
	}

	out, err := h.uc.Login(c.UserContext(), in)
	if err != nil {
		var verr *dto.ValidationError
		switch {
		case errors.As(err, &verr):
			return h.loginForm(c, fiber.StatusBadRequest, in.Email, verr.Message)
		case errors.Is(err, domain.ErrUnauthorized):
			// Un intento fallido cierra la sesión que el navegador ya tuviera.
			if c.Cookies(h.session.Name) != "" {
				clearCookie(c, h.session.Name)
			}
			return h.loginForm(c, fiber.StatusUnauthorized, in.Email, "Invalid credentials!")
		default:
			h.log.Error().Err(err).Msg("login fallido")
			return err
		}
	}

	c.Cookie(&fiber.Cookie{
		Name:     h.session.Name,
		Value:    out.Token,
		Path:     "/",
		Expires:  out.ExpiresAt,
		HTTPOnly: true,
		Secure:   h.session.Secure,
		SameSite: fiber.CookieSameSiteLaxMode,
	})
	h.log.Info().Int64("user_id", out.User.ID).Msg("sesión iniciada")
	return c.Redirect("/dashboard", fiber.StatusSeeOther)
}

func (h *AuthHandler) loginForm(c *fiber.Ctx, status int, email, message string) error {
	return render(c, status, "login", fiber.Map{
		"Title": "Login",
		"Email": email,
		"Flash": &dto.Flash{Category: FlashError, Message: message},
	})
}

// Logout POST /logout
func (h *AuthHandler) Logout(c *fiber.Ctx) error {
	clearCookie(c, h.session.Name)
	setFlash(c, FlashSuccess, "You have been logged out.")
	return c.Redirect("/login", fiber.StatusSeeOther)
}
