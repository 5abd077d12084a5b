package admin

import (
	"time"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"github.com/bookvista/bookvista-api/db"
	"github.com/bookvista/bookvista-api/models"
)

// GetDashboardOverview returns totals for the authenticated admin's
// services, slots, bookings and ratings.
func GetDashboardOverview(c *fiber.Ctx) error {
	adminID, ok := c.Locals("userID").(uint)
	if !ok {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
			"error": "User ID not found in context",
		})
	}

	var statistics struct {
		TotalServices  int64     `json:"total_services"`
		TotalSlots     int64     `json:"total_slots"`
		OpenSlots      int64     `json:"open_slots"`
		TotalBookings  int64     `json:"total_bookings"`
		PendingCount   int64     `json:"pending_count"`
		CompletedCount int64     `json:"completed_count"`
		CancelledCount int64     `json:"cancelled_count"`
		AvgRating      float64   `json:"avg_rating"`
		RatingCount    int64     `json:"rating_count"`
		LastUpdated    time.Time `json:"last_updated"`
	}

	db.DB.Model(&models.Service{}).Where("admin_id = ?", adminID).Count(&statistics.TotalServices)

	// Fresh chain per count; reusing one *gorm.DB accumulates conditions
	slotQuery := func() *gorm.DB {
		return db.DB.Model(&models.TimeSlot{}).
			Joins("JOIN services ON services.id = time_slots.service_id").
			Where("services.admin_id = ?", adminID)
	}
	slotQuery().Count(&statistics.TotalSlots)
	slotQuery().Where("time_slots.is_booked = ?", false).Count(&statistics.OpenSlots)

	bookingQuery := func() *gorm.DB {
		return db.DB.Model(&models.Booking{}).
			Joins("JOIN services ON services.id = bookings.service_id").
			Where("services.admin_id = ?", adminID)
	}
	bookingQuery().Count(&statistics.TotalBookings)
	bookingQuery().Where("bookings.status = ?", models.StatusPending).Count(&statistics.PendingCount)
	bookingQuery().Where("bookings.status = ?", models.StatusCompleted).Count(&statistics.CompletedCount)
	bookingQuery().Where("bookings.status = ?", models.StatusCancelled).Count(&statistics.CancelledCount)

	var ratingResult struct {
		AvgRating   float64
		RatingCount int64
	}
	db.DB.Raw(`
		SELECT COALESCE(AVG(r.rating), 0) AS avg_rating, COUNT(r.id) AS rating_count
		FROM ratings r
		JOIN bookings b ON b.id = r.booking_id
		JOIN services s ON s.id = b.service_id
		WHERE s.admin_id = ? AND r.deleted_at IS NULL
	`, adminID).Scan(&ratingResult)
	statistics.AvgRating = ratingResult.AvgRating
	statistics.RatingCount = ratingResult.RatingCount

	statistics.LastUpdated = time.Now()

	return c.JSON(statistics)
}
