package http

import (
	"embed"
	"io/fs"
	nethttp "net/http"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/template/html/v2"
)

//go:embed views
var viewsFS embed.FS

const layout = "layouts/main"

// NewViews motor de plantillas HTML embebidas en el binario.
func NewViews() *html.Engine {
	sub, err := fs.Sub(viewsFS, "views")
	if err != nil {
		panic("vistas embebidas: " + err.Error())
	}
	return html.NewFileSystem(nethttp.FS(sub), ".html")
}

func render(c *fiber.Ctx, status int, name string, data fiber.Map) error {
	return c.Status(status).Render(name, data, layout)
}
