package http

import (
	"html/template"
	"strings"

	"github.com/gofiber/fiber/v2"

	"github.com/samirrijal/placescout/api"
)

const (
	docsPath    = "/docs"
	openAPIPath = "/docs/openapi.yaml"
)

var swaggerUI = template.Must(template.New("docs").Parse(`<!DOCTYPE html>
<html lang="en">
<head>
  <meta charset="UTF-8">
  <title>{{.Title}}</title>
  <link rel="stylesheet" href="https://cdn.jsdelivr.net/npm/swagger-ui-dist@5/swagger-ui.css">
</head>
<body>
  <div id="swagger-ui"></div>
  <script src="https://cdn.jsdelivr.net/npm/swagger-ui-dist@5/swagger-ui-bundle.js"></script>
  <script>
    SwaggerUIBundle({url: '{{.SpecURL}}', dom_id: '#swagger-ui', deepLinking: true});
  </script>
</body>
</html>`))

// SetupDocs serves Swagger UI and the embedded OpenAPI document.
func SetupDocs(app *fiber.App) {
	var page strings.Builder
	if err := swaggerUI.Execute(&page, struct{ Title, SpecURL string }{
		Title:   "placescout API",
		SpecURL: openAPIPath,
	}); err != nil {
		panic("docs template: " + err.Error())
	}
	html := page.String()

	app.Get(docsPath, func(c *fiber.Ctx) error {
		c.Type("html", "utf-8")
		return c.SendString(html)
	})

	app.Get(openAPIPath, func(c *fiber.Ctx) error {
		c.Set(fiber.HeaderContentType, "application/yaml")
		return c.Send(api.OpenAPI)
	})
}
