package server

import (
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/redis/go-redis/v9"

	"github.com/auhide/trips-website/internal/auth"
	"github.com/auhide/trips-website/internal/config"
	"github.com/auhide/trips-website/internal/geo"
	"github.com/auhide/trips-website/internal/routing"
	"github.com/auhide/trips-website/internal/trip"
)

type Server struct {
	App   *fiber.App
	Cfg   config.Config
	DB    *pgxpool.Pool
	Redis *redis.Client
	Geo   *geo.Reference
}

func NewServer(cfg config.Config, db *pgxpool.Pool, redisClient *redis.Client, ref *geo.Reference) *Server {
	app := fiber.New()
	app.Use(recover.New())
	app.Use(logger.New())

	s := &Server{
		App:   app,
		Cfg:   cfg,
		DB:    db,
		Redis: redisClient,
		Geo:   ref,
	}

	registerRoutes(s)
	return s
}

func registerRoutes(s *Server) {
	s.App.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok"})
	})

	jwtMiddleware := auth.JWTMiddleware(s.Cfg.JWTSecret)

	router := routing.NewCachedRouter(
		routing.NewMapQuestRouter(s.Cfg.MapQuestKey),
		s.Redis,
		time.Duration(s.Cfg.RouteCacheTTL)*time.Second,
	)
	tripSvc := trip.NewService(s.Geo, router, trip.NewRepository(s.DB))

	auth.RegisterRoutes(s.App.Group("/auth"), auth.NewService(s.Cfg.JWTSecret, s.DB))
	trip.RegisterRoutes(s.App.Group("/trips"), tripSvc, jwtMiddleware)
}
