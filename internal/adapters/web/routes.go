package web

import (
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
)

// SetupRoutes configures the UI routes.
func SetupRoutes(app *fiber.App, handlers *Handlers) {
	// Static assets
	app.Static("/static", "./static")

	app.Get("/", handlers.Home)

	// htmx: input trigger, records the text only
	app.Post("/location", handlers.Location)

	// htmx: form submit, swaps the results partial into #results
	app.Post("/submit", handlers.Submit)

	app.Get("/healthz", handlers.Healthz)
}

// SetupAPIRoutes configures the provider routes. Cross-origin reads are
// allowed only from allowedOrigins.
func SetupAPIRoutes(app *fiber.App, api *APIHandlers, allowedOrigins []string) {
	app.Use(cors.New(cors.Config{
		AllowOrigins: strings.Join(allowedOrigins, ","),
		AllowMethods: "GET,OPTIONS",
		AllowHeaders: "Origin, Content-Type, Accept, X-Request-ID",
	}))

	app.Get("/astro", api.GetAstro)
	app.Get("/healthz", api.Healthz)
}
