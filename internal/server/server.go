// Package server contains HTTP and WebSocket handlers for the application's API endpoints.
package server

import (
	"context"
	"errors"
	"fmt"
	"time"

	_ "socialnet/docs" // swagger docs
	"socialnet/internal/bootstrap"
	"socialnet/internal/config"
	"socialnet/internal/featureflags"
	"socialnet/internal/middleware"
	"socialnet/internal/models"
	"socialnet/internal/notifications"
	"socialnet/internal/repository"
	"socialnet/internal/service"

	"github.com/ansrivas/fiberprometheus/v2"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/helmet"
	"github.com/gofiber/fiber/v2/middleware/limiter"
	"github.com/gofiber/fiber/v2/middleware/monitor"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/gofiber/fiber/v2/middleware/requestid"
	"github.com/gofiber/swagger"
	"github.com/redis/go-redis/v9"
)

// Server holds all dependencies and provides handlers
type Server struct {
	config         *config.Config
	store          *repository.Store
	redis          *redis.Client
	app            *fiber.App
	promMiddleware *fiberprometheus.FiberPrometheus
	shutdownCtx    context.Context
	shutdownFn     context.CancelFunc
	notifier       *notifications.Notifier
	hub            *notifications.Hub
	featureFlags   *featureflags.Manager
	userService    *service.UserService
	thoughtService *service.ThoughtService
}

// NewServer creates a new server instance with all dependencies
func NewServer(cfg *config.Config) (*Server, error) {
	store, redisClient, err := bootstrap.InitRuntime(cfg, bootstrap.Options{})
	if err != nil {
		return nil, err
	}
	return NewServerWithDeps(cfg, store, redisClient)
}

// NewServerWithDeps creates a Server using already-initialized dependencies.
// redisClient may be nil; events are then delivered to local stream clients only.
func NewServerWithDeps(cfg *config.Config, store *repository.Store, redisClient *redis.Client) (*Server, error) {
	if store == nil {
		return nil, fmt.Errorf("server requires a store")
	}

	hub := notifications.NewHub()
	notifier := notifications.NewNotifier(redisClient, hub)
	flags := featureflags.NewManager(cfg.FeatureFlags)

	server := &Server{
		config:         cfg,
		store:          store,
		redis:          redisClient,
		promMiddleware: middleware.InitMetrics("socialnet-api"),
		hub:            hub,
		notifier:       notifier,
		featureFlags:   flags,
	}
	server.userService = service.NewUserService(store.Users, store.Thoughts, flags, notifier)
	server.thoughtService = service.NewThoughtService(store.Thoughts, store.Users, notifier)

	return server, nil
}

// SetupMiddleware configures middleware for the Fiber app
func (s *Server) SetupMiddleware(app *fiber.App) {
	app.Use(recover.New())
	app.Use(requestid.New())
	app.Use(middleware.TracingMiddleware())

	// Request and trace ids into the user context for the logger
	app.Use(middleware.ContextMiddleware())

	if s.promMiddleware != nil {
		app.Use(middleware.MetricsMiddleware(s.promMiddleware))
	}

	app.Use(helmet.New())
	app.Use(middleware.StructuredLogger())

	// CORS runs before the limiter so rejected requests still carry CORS headers.
	origins := s.config.AllowedOrigins
	if origins == "" {
		origins = "http://localhost:5173,http://localhost:3000"
	}
	app.Use(cors.New(cors.Config{
		AllowOrigins: origins,
		AllowHeaders: "Origin, Content-Type, Accept, Upgrade, Connection, Sec-WebSocket-Key, Sec-WebSocket-Version",
		MaxAge:       86400,
	}))

	app.Use(limiter.New(limiter.Config{
		Max:        100,
		Expiration: 1 * time.Minute,
		Next: func(c *fiber.Ctx) bool {
			return c.Method() == fiber.MethodOptions || s.config.Env == "test"
		},
		KeyGenerator: func(c *fiber.Ctx) string {
			return c.IP()
		},
		LimitReached: func(c *fiber.Ctx) error {
			return c.Status(fiber.StatusTooManyRequests).JSON(fiber.Map{
				"error": "Too many requests, please try again later.",
			})
		},
	}))
}

// SetupRoutes configures all routes for the application
func (s *Server) SetupRoutes(app *fiber.App) {
	app.Get("/health/live", s.LivenessCheck)
	app.Get("/health/ready", s.ReadinessCheck)
	app.Get("/health", s.ReadinessCheck)

	if s.promMiddleware != nil {
		s.promMiddleware.RegisterAt(app, "/metrics")
	}
	app.Get("/metrics/dashboard", monitor.New(monitor.Config{
		Title: "Socialnet API Metrics Dashboard",
	}))

	app.Get("/swagger/*", swagger.HandlerDefault)

	writes := middleware.NewWriteLimiter(s.redis, s.config.Env != "test" && s.config.Env != "development")

	users := app.Group("/users")
	users.Get("/", s.GetUsers)
	users.Post("/", writes.Route(middleware.WriteLimit{
		Name: "create_user", Max: 10, Window: 10 * time.Minute}), s.CreateUser)
	// Specific /:userId/:resource routes before the generic /:userId routes
	users.Post("/:userId/friends/:friendId", writes.Route(middleware.WriteLimit{
		Name: "add_friend", Max: 30, Window: time.Minute, Param: "userId"}), s.AddFriend)
	users.Delete("/:userId/friends/:friendId", s.RemoveFriend)
	users.Get("/:userId", s.GetUser)
	users.Put("/:userId", s.UpdateUser)
	users.Delete("/:userId", s.DeleteUser)

	thoughts := app.Group("/thoughts")
	thoughts.Get("/", s.GetThoughts)
	thoughts.Post("/", writes.Route(middleware.WriteLimit{
		Name: "create_thought", Max: 20, Window: time.Minute}), s.CreateThought)
	thoughts.Post("/:thoughtId/reactions", writes.Route(middleware.WriteLimit{
		Name: "add_reaction", Max: 60, Window: time.Minute, Param: "thoughtId"}), s.AddReaction)
	thoughts.Delete("/:thoughtId/reactions/:reactionId", s.RemoveReaction)
	thoughts.Get("/:thoughtId", s.GetThought)
	thoughts.Put("/:thoughtId", s.UpdateThought)
	thoughts.Delete("/:thoughtId", s.DeleteThought)

	app.Get("/feature-flags", s.GetFeatureFlags)

	ws := app.Group("/ws")
	ws.Get("/events", s.requireUpgrade, s.EventsWebsocketHandler())
}

// LivenessCheck handles liveness probe requests
func (s *Server) LivenessCheck(c *fiber.Ctx) error {
	return c.Status(fiber.StatusOK).JSON(fiber.Map{
		"status": "up",
		"time":   time.Now(),
	})
}

// ReadinessCheck handles readiness probe requests. Redis is optional, so a
// missing client does not make the service unready.
func (s *Server) ReadinessCheck(c *fiber.Ctx) error {
	ctx, cancel := context.WithTimeout(c.Context(), 5*time.Second)
	defer cancel()

	dbStatus := "healthy"
	if err := s.store.Ping(ctx); err != nil {
		middleware.Logger.WarnContext(c.UserContext(), "store ping failed", "backend", s.store.Backend, "error", err)
		dbStatus = "unhealthy"
	}

	redisStatus := "unavailable"
	if s.redis != nil {
		redisStatus = "healthy"
		if err := s.redis.Ping(ctx).Err(); err != nil {
			redisStatus = "unhealthy"
		}
	}

	status := fiber.StatusOK
	overallStatus := "healthy"
	if dbStatus == "unhealthy" || redisStatus == "unhealthy" {
		status = fiber.StatusServiceUnavailable
		overallStatus = "unhealthy"
	}

	return c.Status(status).JSON(fiber.Map{
		"status": overallStatus,
		"checks": fiber.Map{
			"database": dbStatus,
			"backend":  s.store.Backend,
			"redis":    redisStatus,
		},
		"eventClients": s.hub.Len(),
		"time": time.Now(),
	})
}

// GetFeatureFlags handles GET /feature-flags
func (s *Server) GetFeatureFlags(c *fiber.Ctx) error {
	return c.JSON(fiber.Map{
		"flags":     s.featureFlags.Raw(),
		"evaluated": s.featureFlags.Snapshot(c.Query("subject")),
	})
}

// App builds the Fiber application with middleware and routes installed.
func (s *Server) App() *fiber.App {
	if s.app != nil {
		return s.app
	}

	app := fiber.New(fiber.Config{
		AppName: "Socialnet API",
		ErrorHandler: func(c *fiber.Ctx, err error) error {
			var fe *fiber.Error
			if errors.As(err, &fe) {
				return models.RespondWithError(c, fe.Code, fe)
			}
			middleware.Logger.ErrorContext(c.UserContext(), "unhandled error", "error", err)
			return models.RespondWithError(c, fiber.StatusInternalServerError,
				models.NewInternalError(err))
		},
	})
	s.SetupMiddleware(app)
	s.SetupRoutes(app)
	s.app = app
	return app
}

// Start starts the event relay and the HTTP server.
func (s *Server) Start() error {
	ctx, cancel := context.WithCancel(context.Background())
	s.shutdownCtx = ctx
	s.shutdownFn = cancel

	app := s.App()

	if err := s.notifier.Start(s.shutdownCtx); err != nil {
		middleware.Logger.Error("failed to start event relay", "error", err)
	}

	middleware.Logger.Info("server starting", "port", s.config.Port, "backend", s.store.Backend)
	return app.Listen(":" + s.config.Port)
}

// Shutdown gracefully shuts down the server
func (s *Server) Shutdown(ctx context.Context) error {
	if s.shutdownFn != nil {
		s.shutdownFn()
	}

	if s.app != nil {
		if err := s.app.ShutdownWithContext(ctx); err != nil {
			middleware.Logger.Error("error shutting down HTTP server", "error", err)
		}
	}

	if err := s.hub.Shutdown(ctx); err != nil {
		middleware.Logger.Error("error shutting down event hub", "error", err)
	}

	if err := s.store.Close(ctx); err != nil {
		middleware.Logger.Error("error closing store", "backend", s.store.Backend, "error", err)
	}

	if s.redis != nil {
		if err := s.redis.Close(); err != nil {
			middleware.Logger.Error("error closing redis", "error", err)
		}
	}

	middleware.Logger.Info("server shutdown complete")
	return nil
}
