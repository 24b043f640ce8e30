package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/lead-intake/internal/api/http/handlers"
	"github.com/spec-kit/lead-intake/internal/auth"
	apperrors "github.com/spec-kit/lead-intake/pkg/util/errorutil"
)

// RouteConfig bundles dependencies for route registration.
type RouteConfig struct {
	Health         *handlers.HealthHandler
	Contacts       *handlers.ContactHandler
	Demos          *handlers.DemoHandler
	Meetings       *handlers.MeetingHandler
	Services       *handlers.ServicesHandler
	Users          *handlers.UsersHandler
	Auth           *handlers.AuthHandler
	AuthMiddleware *auth.AuthMiddleware
}

// RegisterRoutes wires HTTP routes. Static segments are registered before
// their /:id siblings.
func RegisterRoutes(app *fiber.App, cfg RouteConfig) {
	protect := cfg.AuthMiddleware.Handle
	admin := auth.RequireAdmin()

	api := app.Group("/api")

	health := api.Group("/health")
	health.Get("/", cfg.Health.Live)
	health.Get("/ready", cfg.Health.Ready)
	health.Get("/metrics", protect, admin, cfg.Health.Metrics)

	authGroup := api.Group("/auth")
	authGroup.Post("/register", cfg.Auth.Register)
	authGroup.Post("/login", cfg.Auth.Login)
	authGroup.Get("/me", protect, cfg.Auth.Me)

	contact := api.Group("/contact")
	contact.Post("/", cfg.Contacts.Submit)
	contact.Get("/", protect, admin, cfg.Contacts.List)
	contact.Get("/export", protect, admin, cfg.Contacts.Export)
	contact.Get("/:id", protect, admin, cfg.Contacts.Get)
	contact.Put("/:id", protect, admin, cfg.Contacts.Update)
	contact.Delete("/:id", protect, admin, cfg.Contacts.Delete)

	demo := api.Group("/demo")
	demo.Post("/", cfg.Demos.Book)
	demo.Get("/", protect, admin, cfg.Demos.List)
	demo.Get("/export", protect, admin, cfg.Demos.Export)
	demo.Get("/:id", protect, admin, cfg.Demos.Get)
	demo.Put("/:id", protect, admin, cfg.Demos.Update)
	demo.Delete("/:id", protect, admin, cfg.Demos.Delete)

	services := api.Group("/services")
	services.Get("/", cfg.Services.List)
	services.Get("/statistics", protect, admin, cfg.Services.Statistics)
	services.Get("/:id", cfg.Services.Get)

	meetings := api.Group("/meetings")
	meetings.Post("/schedule", cfg.Meetings.Schedule)
	meetings.Get("/", protect, admin, cfg.Meetings.List)
	meetings.Get("/:id", protect, admin, cfg.Meetings.Get)
	meetings.Patch("/:id/status", protect, admin, cfg.Meetings.UpdateStatus)

	users := api.Group("/user", protect, admin)
	users.Get("/", cfg.Users.List)
	users.Get("/:id", cfg.Users.Get)
	users.Put("/:id", cfg.Users.Update)
	users.Delete("/:id", cfg.Users.Delete)

	app.Use(notFound)
}

func notFound(c *fiber.Ctx) error {
	return apperrors.NewNotFound("Route " + c.OriginalURL())
}
