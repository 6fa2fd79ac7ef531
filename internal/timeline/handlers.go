package timeline

import (
	"errors"

	"github.com/gofiber/fiber/v2"
)

func RegisterRoutes(r fiber.Router, svc *Service, authMiddleware fiber.Handler) {
	r.Get("/trips/:id", authMiddleware, func(c *fiber.Ctx) error {
		userID, _ := c.Locals("user_id").(string)
		feed, err := svc.TripTimeline(c.Context(), c.Params("id"), userID,
			c.Query("view_as"), c.Query("status"), c.Query("type"))
		if err != nil {
			if errors.Is(err, ErrNotMember) {
				return fiber.NewError(fiber.StatusForbidden, err.Error())
			}
			return fiber.NewError(fiber.StatusInternalServerError, err.Error())
		}
		return c.JSON(feed)
	})
}
