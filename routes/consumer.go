package routes

import (
	"github.com/gofiber/fiber/v2"

	"github.com/bookvista/bookvista-api/controllers/consumer"
	"github.com/bookvista/bookvista-api/middleware"
)

// SetupConsumerRoutes configures the public catalog and the client-facing
// booking routes
func SetupConsumerRoutes(app *fiber.App) {
	api := app.Group("/api")

	// Discovery is public
	api.Get("/services", consumer.ListServices)
	api.Get("/time-slots", consumer.GetAvailableSlots)

	// Booking and rating need an authenticated client
	api.Post("/bookings", middleware.Protected(), consumer.CreateBooking)
	api.Get("/bookings", middleware.Protected(), consumer.GetMyBookings)
	api.Post("/ratings", middleware.Protected(), consumer.CreateRating)
}
