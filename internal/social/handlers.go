package social

import (
	"backend-travelshare/internal/trip"

	"github.com/gofiber/fiber/v2"
)

func RegisterRoutes(r fiber.Router, svc *Service, authMiddleware fiber.Handler) {
	r.Post("/activities/:id/comments", authMiddleware, func(c *fiber.Ctx) error {
		var body struct {
			Content string `json:"content"`
		}
		if err := c.BodyParser(&body); err != nil || body.Content == "" {
			return fiber.NewError(fiber.StatusBadRequest, "content required")
		}
		userID, _ := c.Locals("user_id").(string)
		role, err := roleForActivity(c, svc, c.Params("id"), userID)
		if err != nil || !role.CanComment() {
			return fiber.NewError(fiber.StatusForbidden, "commenting requires commentor role")
		}
		comment, err := svc.AddComment(c.Context(), c.Params("id"), userID, body.Content)
		if err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, err.Error())
		}
		return c.Status(fiber.StatusCreated).JSON(comment)
	})

	r.Delete("/comments/:id", authMiddleware, func(c *fiber.Ctx) error {
		userID, _ := c.Locals("user_id").(string)
		isAdmin := false
		if tripID, err := svc.commentTrip(c.Context(), c.Params("id")); err == nil {
			if role, err := svc.trips.MemberRole(c.Context(), tripID, userID); err == nil {
				isAdmin = role.CanManageTrip()
			}
		}
		if err := svc.DeleteComment(c.Context(), c.Params("id"), userID, isAdmin); err != nil {
			if err == ErrNotCommentOwner {
				return fiber.NewError(fiber.StatusForbidden, err.Error())
			}
			return fiber.NewError(fiber.StatusInternalServerError, err.Error())
		}
		return c.SendStatus(fiber.StatusNoContent)
	})

	r.Post("/activities/:id/reactions", authMiddleware, func(c *fiber.Ctx) error {
		var body struct {
			Emoji string `json:"emoji"`
		}
		if err := c.BodyParser(&body); err != nil || body.Emoji == "" {
			return fiber.NewError(fiber.StatusBadRequest, "emoji required")
		}
		userID, _ := c.Locals("user_id").(string)
		role, err := roleForActivity(c, svc, c.Params("id"), userID)
		if err != nil || !role.CanComment() {
			return fiber.NewError(fiber.StatusForbidden, "reacting requires commentor role")
		}
		reaction, added, err := svc.ToggleReaction(c.Context(), c.Params("id"), userID, body.Emoji)
		if err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, err.Error())
		}
		if !added {
			return c.JSON(fiber.Map{"removed": true})
		}
		return c.Status(fiber.StatusCreated).JSON(reaction)
	})

	r.Delete("/reactions/:id", authMiddleware, func(c *fiber.Ctx) error {
		userID, _ := c.Locals("user_id").(string)
		if err := svc.RemoveReaction(c.Context(), c.Params("id"), userID); err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, err.Error())
		}
		return c.SendStatus(fiber.StatusNoContent)
	})
}

func roleForActivity(c *fiber.Ctx, svc *Service, activityID, userID string) (trip.Role, error) {
	tripID, err := svc.activityTrip(c.Context(), activityID)
	if err != nil {
		return "", err
	}
	return svc.trips.MemberRole(c.Context(), tripID, userID)
}
