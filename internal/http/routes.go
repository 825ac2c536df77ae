package http

import (
	"net/http"

	"github.com/gofiber/fiber/v2"
)

// MountRoutes attaches the collection API and health check to the app.
func MountRoutes(app *fiber.App, handler *CollectHandler) {
	app.Get("/health", func(c *fiber.Ctx) error {
		return c.Status(http.StatusOK).JSON(fiber.Map{"status": "ok"})
	})

	api := app.Group("/api/v1/:project")
	api.Post("/visit", handler.Visit)
	api.Post("/exit", handler.Exit)
	api.Post("/event", handler.Event)
}
