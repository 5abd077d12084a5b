package admin

import (
	"errors"
	"log"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"github.com/bookvista/bookvista-api/db"
	"github.com/bookvista/bookvista-api/models"
	"github.com/bookvista/bookvista-api/utils"
)

// AdminBookingRow is one entry of the admin bookings feed.
type AdminBookingRow struct {
	BookingID   uint                 `json:"booking_id"`
	Reference   string               `json:"reference"`
	BookingDate string               `json:"booking_date"`
	TimeSlot    string               `json:"time_slot"`
	Status      models.BookingStatus `json:"status"`
	IsRated     bool                 `json:"is_rated"`
	ClientName  string               `json:"client_name"`
	ClientEmail string               `json:"client_email"`
	ServiceName string               `json:"service_name"`
	Price       float64              `json:"price"`
	Rating      *int                 `json:"rating"`
	Comment     *string              `json:"comment"`
}

// GetBookings returns every booking whose service belongs to the
// authenticated admin, joined with client and rating details, newest first.
func GetBookings(c *fiber.Ctx) error {
	adminID, ok := c.Locals("userID").(uint)
	if !ok {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
			"error": "User ID not found in context",
		})
	}

	var rows []AdminBookingRow
	err := db.DB.Raw(`
		SELECT
			b.id AS booking_id, b.reference, b.booking_date, b.time_slot, b.status, b.is_rated,
			u.name AS client_name, b.appointment_email AS client_email,
			s.service_name, s.price,
			(SELECT rating FROM ratings WHERE booking_id = b.id AND deleted_at IS NULL) AS rating,
			(SELECT comment FROM ratings WHERE booking_id = b.id AND deleted_at IS NULL) AS comment
		FROM bookings b
		JOIN services s ON s.id = b.service_id
		JOIN users u ON u.id = b.user_id
		WHERE s.admin_id = ? AND b.deleted_at IS NULL
		ORDER BY b.id DESC
	`, adminID).Scan(&rows).Error
	if err != nil {
		log.Printf("Error fetching admin bookings: %v", err)
		return c.Status(fiber.StatusInternalServerError).JSON(utils.ErrorResponse{
			Message: "Fetch bookings failed",
		})
	}

	return c.JSON(rows)
}

// UpdateBookingStatus applies a pending -> completed|cancelled transition.
// Only the admin owning the underlying service may do it, and the claimed
// slot is never released.
func UpdateBookingStatus(c *fiber.Ctx) error {
	type StatusInput struct {
		Status models.BookingStatus `json:"status"`
	}

	input := new(StatusInput)
	if err := c.BodyParser(input); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Cannot parse JSON",
		})
	}
	if input.Status == "" {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Missing fields",
		})
	}

	adminID, ok := c.Locals("userID").(uint)
	if !ok {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
			"error": "User ID not found in context",
		})
	}

	id := c.Params("id")
	var booking models.Booking
	if err := db.DB.Preload("Service").First(&booking, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
				"error": "Booking not found",
			})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Update failed",
		})
	}

	if booking.Service == nil {
		log.Printf("Booking %d has no service row", booking.ID)
		return c.Status(fiber.StatusInternalServerError).JSON(utils.ErrorResponse{
			Message: "Update failed",
		})
	}

	if booking.Service.AdminID != adminID {
		return c.Status(fiber.StatusForbidden).JSON(fiber.Map{
			"error": "Booking does not belong to your services",
		})
	}

	err := db.DB.Transaction(func(tx *gorm.DB) error {
		return booking.UpdateStatus(tx, input.Status)
	})
	if err != nil {
		if errors.Is(err, models.ErrInvalidTransition) {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
				"error": err.Error(),
			})
		}
		log.Printf("Error updating booking status: %v", err)
		return c.Status(fiber.StatusInternalServerError).JSON(utils.ErrorResponse{
			Message: "Update failed",
		})
	}

	return c.JSON(fiber.Map{"success": true})
}
