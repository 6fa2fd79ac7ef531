package server

import (
	"strings"

	"backend-travelshare/internal/activity"
	"backend-travelshare/internal/auth"
	"backend-travelshare/internal/config"
	"backend-travelshare/internal/daynote"
	"backend-travelshare/internal/flightstats"
	"backend-travelshare/internal/location"
	"backend-travelshare/internal/social"
	"backend-travelshare/internal/storage"
	"backend-travelshare/internal/stream"
	"backend-travelshare/internal/timeline"
	"backend-travelshare/internal/trip"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/redis/go-redis/v9"
)

type Server struct {
	App    *fiber.App
	Cfg    config.Config
	DB     *pgxpool.Pool
	Redis  *redis.Client
	Stream *stream.Hub
}

func NewServer(cfg config.Config, db *pgxpool.Pool, redisClient *redis.Client) *Server {
	app := fiber.New()
	app.Use(recover.New())
	app.Use(logger.New())

	s := &Server{
		App:    app,
		Cfg:    cfg,
		DB:     db,
		Redis:  redisClient,
		Stream: stream.NewHub(redisClient),
	}

	registerRoutes(s)
	return s
}

func registerRoutes(s *Server) {
	s.App.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok"})
	})

	jwtMiddleware := auth.JWTMiddleware(s.Cfg.JWTSecret)
	authSvc := auth.NewService(s.Cfg.JWTSecret, s.DB)

	trips := trip.NewService(s.DB)
	activities := activity.NewService(s.DB, trips)
	socialSvc := social.NewService(s.DB, trips)
	notes := daynote.NewService(s.DB, trips)
	locations := location.NewService(s.DB, trips, s.Stream)
	feed := timeline.NewService(trips, activities, socialSvc, notes, locations)

	auth.RegisterRoutes(s.App.Group("/auth"), authSvc)
	trip.RegisterRoutes(s.App.Group("/trips"), trips, jwtMiddleware)
	activity.RegisterRoutes(s.App.Group("/activities"), activities, jwtMiddleware)
	social.RegisterRoutes(s.App, socialSvc, jwtMiddleware)
	daynote.RegisterRoutes(s.App, notes, jwtMiddleware)
	location.RegisterRoutes(s.App, locations, jwtMiddleware)
	timeline.RegisterRoutes(s.App.Group("/timeline"), feed, jwtMiddleware)
	flightstats.RegisterRoutes(s.App.Group("/stats"), flightstats.NewService(s.DB), jwtMiddleware)
	storage.RegisterRoutes(s.App.Group("/storage"), storage.NewService(s.DB), jwtMiddleware)
	stream.RegisterRoutes(s.App.Group("/stream"), s.Stream, streamAuthorize(authSvc, trips))
}

// streamAuthorize gates websocket subscriptions with the same checks the
// REST location endpoints apply. Browsers cannot set headers on websocket
// upgrades, so the token is also accepted as a query parameter.
func streamAuthorize(authSvc *auth.Service, trips *trip.Service) func(c *fiber.Ctx, tripID string) error {
	return func(c *fiber.Ctx, tripID string) error {
		token := c.Query("token")
		if token == "" {
			token = strings.TrimPrefix(c.Get("Authorization"), "Bearer ")
		}
		userID, err := authSvc.ValidateAccessToken(token)
		if err != nil {
			return fiber.NewError(fiber.StatusUnauthorized, "valid token required")
		}

		t, err := trips.GetTrip(c.Context(), tripID)
		if err != nil {
			return fiber.NewError(fiber.StatusNotFound, "trip not found")
		}
		role, err := trips.MemberRole(c.Context(), tripID, userID)
		if err != nil || !t.LocationPermissions.For(role).CanView {
			return fiber.NewError(fiber.StatusForbidden, "location viewing not permitted for your role")
		}
		return nil
	}
}
