package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/certificate-portal/internal/application/usecase"
)

// DashboardHandler muestra el perfil y el certificado del usuario autenticado.
type DashboardHandler struct {
	users   *usecase.UserUseCase
	session SessionCookie
}

// NewDashboardHandler construye el handler.
func NewDashboardHandler(users *usecase.UserUseCase, session SessionCookie) *DashboardHandler {
	return &DashboardHandler{users: users, session: session}
}

// Show GET /dashboard
//
// Una sesión cuyo usuario ya no existe se trata como anónima: se borra la cookie y se redirige a /login.
func (h *DashboardHandler) Show(c *fiber.Ctx) error {
	user, err := h.users.GetByID(c.UserContext(), GetUserID(c))
	if err != nil {
		return err
	}
	if user == nil {
		clearCookie(c, h.session.Name)
		return c.Redirect("/login", fiber.StatusFound)
	}
	return render(c, fiber.StatusOK, "dashboard", fiber.Map{
		"Title": "Dashboard",
		"User":  user,
		"Flash": popFlash(c),
	})
}
