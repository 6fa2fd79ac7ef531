package storage

import (
	"github.com/gofiber/fiber/v2"
)

func RegisterRoutes(r fiber.Router, svc *Service, authMiddleware fiber.Handler) {
	r.Post("/upload", authMiddleware, func(c *fiber.Ctx) error {
		var body struct {
			ActivityID string `json:"activity_id"`
			FileName   string `json:"file_name"`
			Kind       string `json:"kind"`
		}
		_ = c.BodyParser(&body)
		if body.FileName == "" {
			body.FileName = "upload"
		}
		userID, _ := c.Locals("user_id").(string)
		url := "https://storage.example/" + body.FileName
		obj, err := svc.SaveObject(c.Context(), body.ActivityID, userID, url, body.Kind)
		if err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, err.Error())
		}
		return c.Status(fiber.StatusCreated).JSON(obj)
	})

	r.Get("/activities/:id", func(c *fiber.Ctx) error {
		objects, err := svc.ListByActivity(c.Context(), c.Params("id"))
		if err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, err.Error())
		}
		return c.JSON(objects)
	})
}
