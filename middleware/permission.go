package middleware

import (
	"github.com/gofiber/fiber/v2"

	"github.com/bookvista/bookvista-api/db"
	"github.com/bookvista/bookvista-api/models"
)

// RequireRole checks if the authenticated user has the required role.
// The role is re-read from the database rather than trusted from the token.
func RequireRole(role models.UserRole) fiber.Handler {
	return func(c *fiber.Ctx) error {
		userID, ok := c.Locals("userID").(uint)
		if !ok {
			return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
				"error": "Invalid user ID",
			})
		}

		var dbUser models.User
		if err := db.DB.First(&dbUser, userID).Error; err != nil {
			return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
				"error": "User not found",
			})
		}

		if dbUser.Role != role {
			return c.Status(fiber.StatusForbidden).JSON(fiber.Map{
				"error": "You don't have the required role to perform this action",
			})
		}

		return c.Next()
	}
}

// RequireAdmin is RequireRole for provider accounts.
func RequireAdmin() fiber.Handler {
	return RequireRole(models.RoleAdmin)
}
