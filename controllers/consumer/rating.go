package consumer

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"github.com/bookvista/bookvista-api/cache"
	"github.com/bookvista/bookvista-api/db"
	"github.com/bookvista/bookvista-api/models"
)

// CreateRating attaches the one-shot rating to a completed booking owned by
// the authenticated client.
func CreateRating(c *fiber.Ctx) error {
	type RatingInput struct {
		BookingID uint   `json:"booking_id"`
		Rating    int    `json:"rating"`
		Comment   string `json:"comment"`
	}

	input := new(RatingInput)
	if err := c.BodyParser(input); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Cannot parse JSON",
		})
	}

	if input.BookingID == 0 || input.Rating == 0 {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Missing fields",
		})
	}

	userID, ok := c.Locals("userID").(uint)
	if !ok {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
			"error": "Invalid user ID",
		})
	}

	var booking models.Booking
	if err := db.DB.First(&booking, input.BookingID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
				"error": "Booking not found",
			})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Rating failed",
		})
	}

	if booking.BookedBy != userID {
		return c.Status(fiber.StatusForbidden).JSON(fiber.Map{
			"error": "You can only rate your own bookings",
		})
	}

	err := db.DB.Transaction(func(tx *gorm.DB) error {
		_, err := booking.AttachRating(tx, input.Rating, input.Comment)
		return err
	})
	if err != nil {
		switch {
		case errors.Is(err, models.ErrInvalidRating):
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
				"error": "Rating must be between 1 and 5",
			})
		case errors.Is(err, models.ErrNotCompleted):
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
				"error": "Booking is not completed yet",
			})
		case errors.Is(err, models.ErrAlreadyRated):
			return c.Status(fiber.StatusConflict).JSON(fiber.Map{
				"error": "Booking already rated",
			})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Rating failed",
		})
	}

	// Ratings change the catalog aggregates
	cache.InvalidateCatalog()

	return c.JSON(fiber.Map{"success": true})
}
