package activity

import "github.com/gofiber/fiber/v2"

func RegisterRoutes(r fiber.Router, svc *Service, authMiddleware fiber.Handler) {
	r.Post("/", authMiddleware, func(c *fiber.Ctx) error {
		var req Activity
		if err := c.BodyParser(&req); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, err.Error())
		}
		if req.TripID == "" || req.Title == "" || req.Type == "" {
			return fiber.NewError(fiber.StatusBadRequest, "trip_id, title and type required")
		}
		userID, _ := c.Locals("user_id").(string)
		role, err := svc.trips.MemberRole(c.Context(), req.TripID, userID)
		if err != nil || !role.CanEditActivities() {
			return fiber.NewError(fiber.StatusForbidden, "adding activities requires participant role")
		}
		req.CreatedBy = userID
		created, err := svc.CreateActivity(c.Context(), req)
		if err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, err.Error())
		}
		return c.Status(fiber.StatusCreated).JSON(created)
	})

	r.Post("/notes", authMiddleware, func(c *fiber.Ctx) error {
		var body struct {
			TripID      string   `json:"trip_id"`
			Title       string   `json:"title"`
			Description string   `json:"description"`
			Location    string   `json:"location"`
			Images      []string `json:"images"`
		}
		if err := c.BodyParser(&body); err != nil || body.TripID == "" || body.Description == "" {
			return fiber.NewError(fiber.StatusBadRequest, "trip_id and description required")
		}
		userID, _ := c.Locals("user_id").(string)
		role, err := svc.trips.MemberRole(c.Context(), body.TripID, userID)
		if err != nil || !role.CanEditActivities() {
			return fiber.NewError(fiber.StatusForbidden, "adding notes requires participant role")
		}
		note, err := svc.CreateNote(c.Context(), body.TripID, userID, body.Title, body.Description, body.Location, body.Images)
		if err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, err.Error())
		}
		return c.Status(fiber.StatusCreated).JSON(note)
	})

	r.Get("/:id", func(c *fiber.Ctx) error {
		a, err := svc.GetActivity(c.Context(), c.Params("id"))
		if err != nil {
			return fiber.NewError(fiber.StatusNotFound, "activity not found")
		}
		return c.JSON(a)
	})

	r.Put("/:id", authMiddleware, func(c *fiber.Ctx) error {
		existing, err := svc.GetActivity(c.Context(), c.Params("id"))
		if err != nil {
			return fiber.NewError(fiber.StatusNotFound, "activity not found")
		}
		userID, _ := c.Locals("user_id").(string)
		role, err := svc.trips.MemberRole(c.Context(), existing.TripID, userID)
		if err != nil || !role.CanEditActivities() {
			return fiber.NewError(fiber.StatusForbidden, "editing activities requires participant role")
		}
		var patch Activity
		if err := c.BodyParser(&patch); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, err.Error())
		}
		updated, err := svc.UpdateActivity(c.Context(), c.Params("id"), patch)
		if err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, err.Error())
		}
		return c.JSON(updated)
	})

	r.Get("/", func(c *fiber.Ctx) error {
		tripID := c.Query("trip_id")
		if tripID == "" {
			return fiber.NewError(fiber.StatusBadRequest, "trip_id required")
		}
		var (
			activities []Activity
			err        error
		)
		if q := c.Query("q"); q != "" {
			activities, err = svc.Search(c.Context(), tripID, q)
		} else {
			activities, err = svc.ListByTrip(c.Context(), tripID)
		}
		if err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, err.Error())
		}
		return c.JSON(activities)
	})
}
