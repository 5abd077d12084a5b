package admin

import (
	"github.com/gofiber/fiber/v2"

	"github.com/bookvista/bookvista-api/cache"
	"github.com/bookvista/bookvista-api/db"
	"github.com/bookvista/bookvista-api/models"
)

// CreateService creates a new service owned by the authenticated admin
func CreateService(c *fiber.Ctx) error {
	type ServiceInput struct {
		ServiceName string  `json:"service_name"`
		Price       float64 `json:"price"`
	}

	input := new(ServiceInput)
	if err := c.BodyParser(input); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Cannot parse JSON",
		})
	}

	if input.ServiceName == "" || input.Price == 0 {
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

	service := models.Service{
		ServiceName: input.ServiceName,
		Price:       input.Price,
		AdminID:     adminID,
	}
	if err := db.DB.Create(&service).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Add service failed",
		})
	}

	// New services change the public catalog
	cache.InvalidateCatalog()

	return c.JSON(fiber.Map{
		"id":           service.ID,
		"service_name": service.ServiceName,
		"price":        service.Price,
	})
}

// GetServices lists the authenticated admin's services, newest first
func GetServices(c *fiber.Ctx) error {
	adminID, ok := c.Locals("userID").(uint)
	if !ok {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
			"error": "User ID not found in context",
		})
	}

	var services []models.Service
	if err := db.DB.Where("admin_id = ?", adminID).Order("id DESC").Find(&services).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Fetch services failed",
		})
	}

	out := make([]fiber.Map, 0, len(services))
	for _, s := range services {
		out = append(out, fiber.Map{
			"id":           s.ID,
			"service_name": s.ServiceName,
			"price":        s.Price,
		})
	}
	return c.JSON(out)
}
