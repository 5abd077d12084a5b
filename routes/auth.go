package routes

import (
	"github.com/gofiber/fiber/v2"

	"github.com/bookvista/bookvista-api/controllers"
	"github.com/bookvista/bookvista-api/middleware"
)

// SetupAuthRoutes configures all authentication related routes
func SetupAuthRoutes(app *fiber.App) {
	api := app.Group("/api")

	// Public routes
	api.Post("/register-client", controllers.RegisterClient)
	api.Post("/register-admin", controllers.RegisterAdmin)
	api.Post("/login", controllers.Login)
	api.Post("/auth/refresh", controllers.RefreshToken)

	// Protected routes
	api.Get("/auth/me", middleware.Protected(), controllers.GetUserProfile)
}
