package auth

import "github.com/gofiber/fiber/v2"

// RegisterRoutes exposes the identity lookup used by clients to resolve
// the current authenticated user.
func RegisterRoutes(r fiber.Router, authMiddleware fiber.Handler) {
	r.Get("/me", authMiddleware, func(c *fiber.Ctx) error {
		userID, _ := c.Locals("user_id").(string)
		if userID == "" {
			return fiber.NewError(fiber.StatusUnauthorized, "no identity")
		}
		return c.JSON(fiber.Map{"user_id": userID})
	})
}
