package location

import (
	"time"

	"github.com/gofiber/fiber/v2"
)

func RegisterRoutes(r fiber.Router, svc *Service, authMiddleware fiber.Handler) {
	r.Post("/trips/:id/updates", authMiddleware, func(c *fiber.Ctx) error {
		var req Update
		if err := c.BodyParser(&req); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, err.Error())
		}
		userID, _ := c.Locals("user_id").(string)
		tripID := c.Params("id")

		t, err := svc.trips.GetTrip(c.Context(), tripID)
		if err != nil {
			return fiber.NewError(fiber.StatusNotFound, "trip not found")
		}
		role, err := svc.trips.MemberRole(c.Context(), tripID, userID)
		if err != nil || !t.LocationPermissions.For(role).CanShare {
			return fiber.NewError(fiber.StatusForbidden, "location sharing not permitted for your role")
		}

		req.TripID = tripID
		req.UserID = userID
		update, err := svc.Record(c.Context(), req)
		if err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, err.Error())
		}
		return c.Status(fiber.StatusCreated).JSON(update)
	})

	r.Get("/trips/:id/active", authMiddleware, func(c *fiber.Ctx) error {
		userID, _ := c.Locals("user_id").(string)
		tripID := c.Params("id")

		t, err := svc.trips.GetTrip(c.Context(), tripID)
		if err != nil {
			return fiber.NewError(fiber.StatusNotFound, "trip not found")
		}
		role, err := svc.trips.MemberRole(c.Context(), tripID, userID)
		if err != nil || !t.LocationPermissions.For(role).CanView {
			return fiber.NewError(fiber.StatusForbidden, "location viewing not permitted for your role")
		}

		latest, err := svc.Latest(c.Context(), tripID)
		if err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, err.Error())
		}
		return c.JSON(Active(latest, time.Now()))
	})
}
