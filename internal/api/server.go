package api

import (
	"context"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/adaptor"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/vladimiradmaev/pet-diabetes-tracker/internal/domain"
	"github.com/vladimiradmaev/pet-diabetes-tracker/internal/logger"
)

// Version is reported by the service info route.
const Version = "1.0.0"

// Config wraps the knobs that impact runtime behavior.
type Config struct {
	Addr         string
	ReadTimeout  time.Duration
	WriteTimeout time.Duration
	// Production hides internal error details in 5xx bodies.
	Production bool
}

// Server exposes the event API over a fiber application.
type Server struct {
	app     *fiber.App
	events  domain.EventService
	cfg     Config
	metrics *Metrics
}

// NewServer wires handlers and middleware.
func NewServer(cfg Config, events domain.EventService, registry *prometheus.Registry) *Server {
	srv := &Server{events: events, cfg: cfg, metrics: NewMetrics(registry)}

	srv.app = fiber.New(fiber.Config{
		DisableStartupMessage: true,
		ReadTimeout:           cfg.ReadTimeout,
		WriteTimeout:          cfg.WriteTimeout,
		ErrorHandler:          srv.handleError,
	})
	srv.app.Use(recover.New())
	srv.app.Use(cors.New())
	srv.app.Use(srv.metrics.Middleware())
	srv.app.Use(requestLogger())

	srv.registerRoutes(registry)
	return srv
}

// App returns the underlying fiber application.
func (s *Server) App() *fiber.App {
	return s.app
}

// Run starts listening for HTTP traffic until the context is cancelled.
func (s *Server) Run(ctx context.Context) error {
	go func() {
		<-ctx.Done()
		_ = s.app.Shutdown()
	}()

	logger.Info("API server listening", "addr", s.cfg.Addr)
	return s.app.Listen(s.cfg.Addr)
}

func (s *Server) registerRoutes(registry *prometheus.Registry) {
	s.app.Get("/", s.handleInfo)
	s.app.Get("/healthz", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok"})
	})
	s.app.Get("/metrics", adaptor.HTTPHandler(promhttp.HandlerFor(registry, promhttp.HandlerOpts{})))

	api := s.app.Group("/api")
	api.Get("/", s.handleStatus)
	api.Get("/eventos", s.handleListEvents)
	api.Post("/eventos", s.handleCreateEvent)
	api.Delete("/eventos/:id", s.handleDeleteEvent)
	api.Delete("/eventos", s.handleDeleteEvent)

	s.app.Use(s.handleNotFound)
}

func requestLogger() fiber.Handler {
	return func(c *fiber.Ctx) error {
		start := time.Now()
		err := c.Next()
		logger.Info("API request",
			"method", c.Method(),
			"path", c.Path(),
			"status", responseStatus(c, err),
			"latency", time.Since(start),
		)
		return err
	}
}
