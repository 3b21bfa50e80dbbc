// Package server contains the HTTP handlers for the API endpoints.
package server

import (
	"fmt"

	"moviehub/cache"
	"moviehub/config"
	"moviehub/middleware"
	"moviehub/notifications"
	"moviehub/service"
	"moviehub/store"

	"github.com/ansrivas/fiberprometheus/v2"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/requestid"
)

// Server holds all dependencies and provides handlers
type Server struct {
	config         *config.Config
	catalog        *service.CatalogService
	comments       *service.CommentService
	users          *service.UserService
	mailer         notifications.Mailer
	promMiddleware *fiberprometheus.FiberPrometheus
}

// New wires a server from already-built collaborators. Tests use it with
// in-memory stores and a no-op mailer.
func New(cfg *config.Config, movies store.MovieStore, users store.UserStore, mailer notifications.Mailer) *Server {
	return &Server{
		config:         cfg,
		catalog:        service.NewCatalogService(movies),
		comments:       service.NewCommentService(movies),
		users:          service.NewUserService(users),
		mailer:         mailer,
		promMiddleware: middleware.InitMetrics("moviehub-api"),
	}
}

// NewServer creates a server instance backed by MongoDB, Redis and SMTP.
func NewServer(cfg *config.Config) (*Server, error) {
	client, err := store.Connect(cfg.MongoURI)
	if err != nil {
		return nil, fmt.Errorf("database connection failed: %w", err)
	}
	db := client.Database(cfg.DBName)

	cache.InitRedis(cfg.RedisURL)

	var mailer notifications.Mailer = notifications.NoopMailer{}
	if cfg.SMTPHost != "" {
		mailer = notifications.NewSMTPMailer(cfg.SMTPHost, cfg.SMTPPort, cfg.SMTPUser, cfg.SMTPPassword, cfg.EmailFrom, cfg.AppURL)
	}

	return New(cfg, store.NewMovieStore(db), store.NewUserStore(db), mailer), nil
}

// SetupMiddleware configures middleware for the Fiber app
func (s *Server) SetupMiddleware(app *fiber.App) {
	// Request ID for tracing
	app.Use(requestid.New())

	// Structured Logging middleware
	app.Use(middleware.StructuredLogger())

	if s.promMiddleware != nil {
		app.Use(middleware.MetricsMiddleware(s.promMiddleware))
	}

	app.Use(cors.New(cors.Config{
		AllowOrigins: "*",
		AllowHeaders: "Origin, Content-Type, Accept, Authorization, x-api-key",
	}))
}

// SetupRoutes registers all API routes
func (s *Server) SetupRoutes(app *fiber.App) {
	// Metrics endpoint for Prometheus
	if s.promMiddleware != nil {
		s.promMiddleware.RegisterAt(app, "/metrics")
	}

	api := app.Group("/api")

	// Health check
	api.Get("/", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{
			"message": "api movies",
			"version": "1.0.0",
		})
	})

	// Auth routes
	auth := api.Group("/auth")
	auth.Post("/register", s.Register)
	auth.Post("/login", s.Login)
	auth.Get("/verify", s.VerifyAccount)

	// Movie routes
	movies := api.Group("/movies")
	movies.Get("/", s.ListMovies)
	movies.Get("/:id", s.GetMovie)
	// Protected movie routes
	movies.Post("/", middleware.AuthRequired(s.config.JWTSecret, s.users), s.CreateMovie)
	movies.Post("/load", middleware.AuthRequired(s.config.JWTSecret, s.users), s.LoadMovies)

	// Comment routes, keyed by movie id and gated on the API key
	comments := api.Group("/comments")
	comments.Post("/:id", middleware.APIKeyRequired(s.users), s.CreateComment)
	comments.Delete("/:id", middleware.APIKeyRequired(s.users), s.DeleteComment)
}
