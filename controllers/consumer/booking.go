package consumer

import (
	"errors"
	"log"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"github.com/bookvista/bookvista-api/db"
	"github.com/bookvista/bookvista-api/models"
	"github.com/bookvista/bookvista-api/utils"
)

// CreateBooking reserves a slot for the authenticated client. The
// appointment email may belong to someone else; identity resolution reuses
// an existing user with that email or creates a minimal guest user.
func CreateBooking(c *fiber.Ctx) error {
	type BookingInput struct {
		Name        string `json:"name"`
		Email       string `json:"email"`
		ServiceID   uint   `json:"service_id"`
		BookingDate string `json:"booking_date"`
		SlotID      uint   `json:"slot_id"`
	}

	input := new(BookingInput)
	if err := c.BodyParser(input); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Cannot parse JSON",
		})
	}

	if input.Name == "" || input.Email == "" || input.ServiceID == 0 || input.BookingDate == "" || input.SlotID == 0 {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Missing fields",
		})
	}

	bookedBy, ok := c.Locals("userID").(uint)
	if !ok {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
			"error": "Invalid user ID",
		})
	}

	var service models.Service
	if err := db.DB.First(&service, input.ServiceID).Error; err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"error": "Service not found",
		})
	}

	booking := models.Booking{
		ServiceID:        input.ServiceID,
		BookingDate:      input.BookingDate,
		AppointmentEmail: input.Email,
		BookedBy:         bookedBy,
	}

	err := db.DB.Transaction(func(tx *gorm.DB) error {
		userID, err := resolveBookingUser(tx, input.Name, input.Email)
		if err != nil {
			return err
		}
		booking.UserID = userID

		return models.ReserveSlot(tx, input.SlotID, &booking)
	})
	if err != nil {
		if errors.Is(err, models.ErrSlotUnavailable) {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
				"error": "Slot already booked",
			})
		}
		log.Printf("Error creating booking: %v", err)
		return c.Status(fiber.StatusInternalServerError).JSON(utils.ErrorResponse{
			Message: "Booking failed",
		})
	}

	return c.JSON(booking)
}

// resolveBookingUser reuses the user owning the email or creates a minimal
// guest row with no password and no role.
func resolveBookingUser(tx *gorm.DB, name, email string) (uint, error) {
	var user models.User
	err := tx.Where("email = ?", email).First(&user).Error
	if err == nil {
		return user.ID, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return 0, err
	}

	guest := models.User{
		Name:  name,
		Email: email,
	}
	if err := tx.Create(&guest).Error; err != nil {
		return 0, err
	}
	return guest.ID, nil
}

// GetMyBookings lists the authenticated client's bookings with the service
// name joined in, newest first.
func GetMyBookings(c *fiber.Ctx) error {
	userID, ok := c.Locals("userID").(uint)
	if !ok {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
			"error": "Invalid user ID",
		})
	}

	type BookingRow struct {
		ID               uint                 `json:"id"`
		Reference        string               `json:"reference"`
		ServiceID        uint                 `json:"service_id"`
		ServiceName      string               `json:"service_name"`
		BookingDate      string               `json:"booking_date"`
		TimeSlot         string               `json:"time_slot"`
		Status           models.BookingStatus `json:"status"`
		IsRated          bool                 `json:"is_rated"`
		AppointmentEmail string               `json:"appointment_email"`
	}

	var rows []BookingRow
	err := db.DB.Raw(`
		SELECT
			b.id, b.reference, b.service_id, s.service_name,
			b.booking_date, b.time_slot, b.status, b.is_rated, b.appointment_email
		FROM bookings b
		LEFT JOIN services s ON s.id = b.service_id
		WHERE b.booked_by = ? AND b.deleted_at IS NULL
		ORDER BY b.created_at DESC
	`, userID).Scan(&rows).Error
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Fetch bookings failed",
		})
	}

	return c.JSON(rows)
}
