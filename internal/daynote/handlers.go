package daynote

import (
	"time"

	"github.com/gofiber/fiber/v2"
)

func RegisterRoutes(r fiber.Router, svc *Service, authMiddleware fiber.Handler) {
	r.Put("/trips/:id/notes/:date", authMiddleware, func(c *fiber.Ctx) error {
		date := c.Params("date")
		if _, err := time.Parse("2006-01-02", date); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "date must be yyyy-mm-dd")
		}
		var body struct {
			Content string `json:"content"`
		}
		if err := c.BodyParser(&body); err != nil || body.Content == "" {
			return fiber.NewError(fiber.StatusBadRequest, "content required")
		}
		userID, _ := c.Locals("user_id").(string)
		role, err := svc.trips.MemberRole(c.Context(), c.Params("id"), userID)
		if err != nil || !role.CanComment() {
			return fiber.NewError(fiber.StatusForbidden, "day notes require commentor role")
		}
		note, err := svc.Save(c.Context(), c.Params("id"), date, userID, body.Content)
		if err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, err.Error())
		}
		return c.JSON(note)
	})

	r.Delete("/trips/:id/notes/:noteID", authMiddleware, func(c *fiber.Ctx) error {
		userID, _ := c.Locals("user_id").(string)
		role, err := svc.trips.MemberRole(c.Context(), c.Params("id"), userID)
		if err != nil || !role.CanComment() {
			return fiber.NewError(fiber.StatusForbidden, "day notes require commentor role")
		}
		if err := svc.Delete(c.Context(), c.Params("id"), c.Params("noteID")); err != nil {
			if err == ErrNoteNotFound {
				return fiber.NewError(fiber.StatusNotFound, err.Error())
			}
			return fiber.NewError(fiber.StatusInternalServerError, err.Error())
		}
		return c.SendStatus(fiber.StatusNoContent)
	})

	r.Get("/trips/:id/notes", func(c *fiber.Ctx) error {
		notes, err := svc.ListByTrip(c.Context(), c.Params("id"))
		if err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, err.Error())
		}
		return c.JSON(notes)
	})
}
