package admin

import (
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"github.com/bookvista/bookvista-api/db"
	"github.com/bookvista/bookvista-api/models"
)

type slotInput struct {
	ServiceID uint   `json:"service_id"`
	SlotDate  string `json:"slot_date"`
	StartTime string `json:"start_time"`
	EndTime   string `json:"end_time"`
}

// ownsService verifies the service belongs to the authenticated admin.
func ownsService(c *fiber.Ctx, serviceID uint) (bool, error) {
	adminID, ok := c.Locals("userID").(uint)
	if !ok {
		return false, fiber.ErrUnauthorized
	}
	var count int64
	err := db.DB.Model(&models.Service{}).
		Where("id = ? AND admin_id = ?", serviceID, adminID).
		Count(&count).Error
	return count > 0, err
}

// CreateSlot creates one time slot for a service the admin owns
func CreateSlot(c *fiber.Ctx) error {
	input := new(slotInput)
	if err := c.BodyParser(input); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Cannot parse JSON",
		})
	}

	if input.ServiceID == 0 || input.SlotDate == "" || input.StartTime == "" || input.EndTime == "" {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Missing fields",
		})
	}

	owns, err := ownsService(c, input.ServiceID)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Slot add failed",
		})
	}
	if !owns {
		return c.Status(fiber.StatusForbidden).JSON(fiber.Map{
			"error": "Service does not belong to you",
		})
	}

	slot := models.TimeSlot{
		ServiceID: input.ServiceID,
		SlotDate:  input.SlotDate,
		StartTime: input.StartTime,
		EndTime:   input.EndTime,
	}
	if err := db.DB.Create(&slot).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Slot add failed",
		})
	}

	return c.JSON(fiber.Map{"success": true})
}

// CreateSlotBatch creates several slots for one service/date in one call,
// the way the admin screen submits them.
func CreateSlotBatch(c *fiber.Ctx) error {
	type batchInput struct {
		ServiceID uint   `json:"service_id"`
		SlotDate  string `json:"slot_date"`
		Slots     []struct {
			StartTime string `json:"start_time"`
			EndTime   string `json:"end_time"`
		} `json:"slots"`
	}

	input := new(batchInput)
	if err := c.BodyParser(input); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Cannot parse JSON",
		})
	}

	if input.ServiceID == 0 || input.SlotDate == "" || len(input.Slots) == 0 {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Missing fields",
		})
	}
	for _, s := range input.Slots {
		if s.StartTime == "" || s.EndTime == "" {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
				"error": "Missing fields",
			})
		}
	}

	owns, err := ownsService(c, input.ServiceID)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Slot add failed",
		})
	}
	if !owns {
		return c.Status(fiber.StatusForbidden).JSON(fiber.Map{
			"error": "Service does not belong to you",
		})
	}

	err = db.DB.Transaction(func(tx *gorm.DB) error {
		for _, s := range input.Slots {
			slot := models.TimeSlot{
				ServiceID: input.ServiceID,
				SlotDate:  input.SlotDate,
				StartTime: s.StartTime,
				EndTime:   s.EndTime,
			}
			if err := tx.Create(&slot).Error; err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Slot add failed",
		})
	}

	return c.JSON(fiber.Map{"success": true, "created": len(input.Slots)})
}
