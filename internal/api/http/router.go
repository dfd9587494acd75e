package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/content-service/internal/api/http/handlers"
	"github.com/spec-kit/content-service/internal/auth"
)

// RouteConfig bundles dependencies for route registration.
type RouteConfig struct {
	Health         *handlers.HealthHandler
	Auth           *handlers.AuthHandler
	Users          *handlers.UsersHandler
	Posts          *handlers.PostsHandler
	AuthMiddleware *auth.Middleware
}

// RegisterRoutes wires HTTP routes.
func RegisterRoutes(app *fiber.App, cfg RouteConfig) {
	app.Get("/health/live", cfg.Health.Live)
	app.Get("/health/ready", cfg.Health.Ready)

	authGroup := app.Group("/auth")
	authGroup.Post("/register", cfg.Auth.Register)
	authGroup.Post("/login", cfg.Auth.Login)
	authGroup.Get("/protected", cfg.AuthMiddleware.Handle, cfg.Auth.Protected)

	users := app.Group("/users")
	users.Post("/", cfg.Users.Create)
	users.Get("/", cfg.Users.List)
	users.Get("/:id", cfg.AuthMiddleware.Handle, cfg.Users.Get)
	users.Put("/:id", cfg.AuthMiddleware.Handle, cfg.Users.Update)
	users.Delete("/:id", cfg.AuthMiddleware.Handle, cfg.Users.Delete)

	posts := app.Group("/posts", cfg.AuthMiddleware.Handle)
	posts.Post("/", cfg.Posts.Create)
	posts.Get("/", cfg.Posts.List)
	posts.Get("/:postId", cfg.Posts.Get)
	posts.Put("/:postId", cfg.Posts.Update)
	posts.Delete("/:postId", cfg.Posts.Delete)
}
