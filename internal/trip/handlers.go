package trip

import "github.com/gofiber/fiber/v2"

func RegisterRoutes(r fiber.Router, svc *Service, authMiddleware fiber.Handler) {
	r.Post("/", authMiddleware, func(c *fiber.Ctx) error {
		var req Trip
		if err := c.BodyParser(&req); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, err.Error())
		}
		if req.OwnerID == "" {
			req.OwnerID, _ = c.Locals("user_id").(string)
		}
		if req.Name == "" || req.OwnerID == "" {
			return fiber.NewError(fiber.StatusBadRequest, "name and owner_id required")
		}
		trip, err := svc.CreateTrip(c.Context(), req)
		if err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, err.Error())
		}
		return c.Status(fiber.StatusCreated).JSON(trip)
	})

	r.Get("/:id", func(c *fiber.Ctx) error {
		trip, err := svc.GetTrip(c.Context(), c.Params("id"))
		if err != nil {
			return fiber.NewError(fiber.StatusNotFound, "trip not found")
		}
		return c.JSON(trip)
	})

	r.Put("/:id", authMiddleware, func(c *fiber.Ctx) error {
		role, err := callerRole(c, svc)
		if err != nil || !role.CanManageTrip() {
			return fiber.NewError(fiber.StatusForbidden, "trip management requires admin role")
		}
		var req Patch
		if err := c.BodyParser(&req); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, err.Error())
		}
		trip, err := svc.UpdateTrip(c.Context(), c.Params("id"), req)
		if err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, err.Error())
		}
		return c.JSON(trip)
	})

	r.Post("/:id/archive", authMiddleware, func(c *fiber.Ctx) error {
		role, err := callerRole(c, svc)
		if err != nil || !role.CanManageTrip() {
			return fiber.NewError(fiber.StatusForbidden, "trip management requires admin role")
		}
		if err := svc.ArchiveTrip(c.Context(), c.Params("id")); err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, err.Error())
		}
		return c.SendStatus(fiber.StatusNoContent)
	})

	r.Delete("/:id", authMiddleware, func(c *fiber.Ctx) error {
		role, err := callerRole(c, svc)
		if err != nil || !role.CanManageTrip() {
			return fiber.NewError(fiber.StatusForbidden, "trip management requires admin role")
		}
		if err := svc.DeleteTrip(c.Context(), c.Params("id")); err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, err.Error())
		}
		return c.SendStatus(fiber.StatusNoContent)
	})

	r.Get("/:id/members", func(c *fiber.Ctx) error {
		members, err := svc.Members(c.Context(), c.Params("id"))
		if err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, err.Error())
		}
		return c.JSON(members)
	})

	r.Post("/:id/members", authMiddleware, func(c *fiber.Ctx) error {
		role, err := callerRole(c, svc)
		if err != nil || !role.CanManageTrip() {
			return fiber.NewError(fiber.StatusForbidden, "member management requires admin role")
		}
		var body struct {
			UserID string `json:"user_id"`
			Role   string `json:"role"`
		}
		if err := c.BodyParser(&body); err != nil || body.UserID == "" {
			return fiber.NewError(fiber.StatusBadRequest, "user_id required")
		}
		member, err := svc.AddMember(c.Context(), c.Params("id"), body.UserID, body.Role)
		if err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, err.Error())
		}
		return c.Status(fiber.StatusCreated).JSON(member)
	})

	r.Delete("/:id/members/:userID", authMiddleware, func(c *fiber.Ctx) error {
		role, err := callerRole(c, svc)
		if err != nil || !role.CanManageTrip() {
			return fiber.NewError(fiber.StatusForbidden, "member management requires admin role")
		}
		if err := svc.RemoveMember(c.Context(), c.Params("id"), c.Params("userID")); err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, err.Error())
		}
		return c.SendStatus(fiber.StatusNoContent)
	})

	r.Put("/:id/location-permissions", authMiddleware, func(c *fiber.Ctx) error {
		trip, err := svc.GetTrip(c.Context(), c.Params("id"))
		if err != nil {
			return fiber.NewError(fiber.StatusNotFound, "trip not found")
		}
		role, err := callerRole(c, svc)
		if err != nil || !trip.LocationPermissions.For(role).CanManage {
			return fiber.NewError(fiber.StatusForbidden, "location settings require manage permission")
		}
		var perms LocationPermissions
		if err := c.BodyParser(&perms); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, err.Error())
		}
		if err := svc.UpdateLocationPermissions(c.Context(), c.Params("id"), perms); err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, err.Error())
		}
		return c.JSON(perms)
	})

	r.Post("/:id/invitations", authMiddleware, func(c *fiber.Ctx) error {
		role, err := callerRole(c, svc)
		if err != nil || !role.CanManageTrip() {
			return fiber.NewError(fiber.StatusForbidden, "invitations require admin role")
		}
		var body struct {
			Email string `json:"email"`
			Role  string `json:"role"`
		}
		if err := c.BodyParser(&body); err != nil || body.Email == "" {
			return fiber.NewError(fiber.StatusBadRequest, "email required")
		}
		inv, err := svc.Invite(c.Context(), c.Params("id"), body.Email, body.Role)
		if err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, err.Error())
		}
		return c.Status(fiber.StatusCreated).JSON(inv)
	})

	r.Post("/invitations/accept", authMiddleware, func(c *fiber.Ctx) error {
		var body struct {
			Token string `json:"token"`
		}
		if err := c.BodyParser(&body); err != nil || body.Token == "" {
			return fiber.NewError(fiber.StatusBadRequest, "token required")
		}
		userID, _ := c.Locals("user_id").(string)
		member, err := svc.AcceptInvitation(c.Context(), body.Token, userID)
		if err != nil {
			return fiber.NewError(fiber.StatusBadRequest, err.Error())
		}
		return c.Status(fiber.StatusCreated).JSON(member)
	})
}

func callerRole(c *fiber.Ctx, svc *Service) (Role, error) {
	userID, _ := c.Locals("user_id").(string)
	return svc.MemberRole(c.Context(), c.Params("id"), userID)
}
