package server

import (
	"github.com/shkshreyas/Meridian/internal/auth"
	"github.com/shkshreyas/Meridian/internal/badge"
	"github.com/shkshreyas/Meridian/internal/config"
	"github.com/shkshreyas/Meridian/internal/live"
	"github.com/shkshreyas/Meridian/internal/logging"
	"github.com/shkshreyas/Meridian/internal/profile"
	"github.com/shkshreyas/Meridian/internal/trip"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

type Server struct {
	App    *fiber.App
	Cfg    config.Config
	DB     *pgxpool.Pool
	Redis  *redis.Client
	Hub    *live.Hub
	Logger *zap.Logger
}

func NewServer(cfg config.Config, db *pgxpool.Pool, redisClient *redis.Client) *Server {
	app := fiber.New()
	app.Use(recover.New())
	app.Use(logger.New())

	zlog := logging.New(cfg.LogLevel)

	s := &Server{
		App:    app,
		Cfg:    cfg,
		DB:     db,
		Redis:  redisClient,
		Hub:    live.NewHub(redisClient, zlog),
		Logger: zlog,
	}

	registerRoutes(s)
	return s
}

func registerRoutes(s *Server) {
	s.App.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok"})
	})

	jwtMiddleware := auth.NewService(s.Cfg.JWTSecret).Middleware()

	profiles := profile.NewService(s.DB)
	badges := badge.NewService(s.DB)
	trips := trip.NewService(s.DB, profiles, badges, s.Hub, s.Logger)

	auth.RegisterRoutes(s.App.Group("/auth"), jwtMiddleware)
	profile.RegisterRoutes(s.App.Group("/profiles"), profiles, jwtMiddleware)
	trip.RegisterRoutes(s.App.Group("/trips"), trips, jwtMiddleware)
	badge.RegisterRoutes(s.App.Group("/badges"), badges, jwtMiddleware)
	live.RegisterRoutes(s.App.Group("/live"), s.Hub)
}
