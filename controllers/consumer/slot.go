package consumer

import (
	"github.com/gofiber/fiber/v2"

	"github.com/bookvista/bookvista-api/db"
	"github.com/bookvista/bookvista-api/models"
	"github.com/bookvista/bookvista-api/utils"
)

// GetAvailableSlots lists the open slots for a service on a date, ordered by
// start time. Identical (start,end) pairs are collapsed at this boundary;
// the store keeps every row.
func GetAvailableSlots(c *fiber.Ctx) error {
	serviceID := c.Query("service_id")
	date := c.Query("date")
	if serviceID == "" || date == "" {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "service_id & date required",
		})
	}

	var slots []models.TimeSlot
	err := db.DB.
		Where("service_id = ? AND slot_date = ? AND is_booked = ?", serviceID, date, false).
		Order("start_time").
		Find(&slots).Error
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Fetch slots failed",
		})
	}

	out := make([]fiber.Map, 0, len(slots))
	for _, s := range utils.DedupeSlots(slots) {
		out = append(out, fiber.Map{
			"id":         s.ID,
			"start_time": s.StartTime,
			"end_time":   s.EndTime,
		})
	}
	return c.JSON(out)
}
