package handler

import (
	"database/sql"

	"github.com/gofiber/fiber/v2"

	"apptrack/internal/auth"
	"apptrack/internal/http/middleware"
	"apptrack/internal/service"
)

// RegisterRoutes attaches HTTP routes to the provided Fiber app. Everything
// under the job-apps and attachments paths requires a bearer token; the
// resolved owner id reaches the services only through request locals.
func RegisterRoutes(app *fiber.App, db *sql.DB, tokens *auth.TokenManager, authSvc service.AuthService, appSvc service.ApplicationService, attSvc service.AttachmentService) {
	// Serve OpenAPI spec and Swagger UI
	app.Get("/openapi.yaml", func(c *fiber.Ctx) error {
		c.Type("yaml")
		return c.SendFile("openapi.yaml")
	})
	app.Get("/docs", func(c *fiber.Ctx) error {
		html := `<!DOCTYPE html>
<html lang="en">
<head>
  <meta charset="UTF-8" />
  <meta name="viewport" content="width=device-width, initial-scale=1" />
  <title>API Docs</title>
  <link rel="stylesheet" href="https://unpkg.com/swagger-ui-dist@5/swagger-ui.css" />
</head>
<body>
  <div id="swagger-ui"></div>
  <script src="https://unpkg.com/swagger-ui-dist@5/swagger-ui-bundle.js"></script>
  <script>
    window.ui = SwaggerUIBundle({
      url: '/openapi.yaml',
      dom_id: '#swagger-ui',
      presets: [SwaggerUIBundle.presets.apis],
      layout: 'BaseLayout'
    });
  </script>
</body>
</html>`
		return c.Type("html").SendString(html)
	})

	app.Get("/health", HealthCheck(db))
	app.Get("/healthz", LivenessProbe())

	app.Post("/auth/register", Register(authSvc))
	app.Post("/auth/login", Login(authSvc))

	requireAuth := middleware.Auth(tokens)

	jobs := app.Group("/job-apps", requireAuth)
	jobs.Get("/", ListApplications(appSvc))
	jobs.Post("/", CreateApplication(appSvc))
	jobs.Patch("/:id", UpdateApplication(appSvc))
	jobs.Delete("/:id", DeleteApplication(appSvc))
	jobs.Get("/:id/attachments", ListAttachments(attSvc))
	jobs.Post("/:id/attachments/presign-upload", PresignUpload(attSvc))
	jobs.Post("/:id/attachments", RecordAttachment(attSvc))

	atts := app.Group("/attachments", requireAuth)
	atts.Get("/:id/presign-download", PresignDownload(attSvc))
	atts.Delete("/:id", DeleteAttachment(attSvc))
}
