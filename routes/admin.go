package routes

import (
	"github.com/gofiber/fiber/v2"

	"github.com/bookvista/bookvista-api/controllers/admin"
	"github.com/bookvista/bookvista-api/middleware"
)

// SetupAdminRoutes configures the provider-facing routes. Every route
// requires an authenticated admin; ownership of the touched rows is checked
// in the handlers.
func SetupAdminRoutes(app *fiber.App) {
	api := app.Group("/api", middleware.Protected(), middleware.RequireAdmin())

	api.Post("/admin/services", admin.CreateService)
	api.Get("/admin/services", admin.GetServices)

	api.Post("/admin/slots", admin.CreateSlot)
	api.Post("/admin/slots/batch", admin.CreateSlotBatch)

	api.Get("/admin/bookings", admin.GetBookings)
	api.Get("/admin/dashboard", admin.GetDashboardOverview)

	api.Put("/bookings/update-status/:id", admin.UpdateBookingStatus)
}
