package server

import (
	"context"
	"log"

	"ai-chat-be/internal/bootstrap"
	"ai-chat-be/internal/config"
	"ai-chat-be/internal/pkg/serverutils"

	"github.com/gofiber/contrib/otelfiber"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	fiberws "github.com/gofiber/websocket/v2"
	"github.com/google/uuid"
)

type Server struct {
	app       *fiber.App
	cfg       *config.Config
	container *bootstrap.Container
}

func New(cfg *config.Config, container *bootstrap.Container) *Server {
	// Initialize Fiber App
	app := fiber.New(fiber.Config{
		BodyLimit: 10 * 1024 * 1024, // 10MB
	})

	// Middleware
	app.Use(cors.New(cors.Config{
		AllowOrigins:     cfg.App.CorsAllowedOrigins,
		AllowCredentials: true,
		AllowHeaders:     "Origin, Content-Type, Accept, Authorization",
		AllowMethods:     "GET, POST, PUT, PATCH, DELETE, OPTIONS",
		ExposeHeaders:    "Content-Length, Content-Type, Authorization",
	}))

	// OpenTelemetry tracing middleware (traces all HTTP requests)
	app.Use(otelfiber.Middleware())

	app.Use(serverutils.ErrorHandlerMiddleware())

	// Static hosting for the local media backend
	if cfg.Storage.Backend == "local" || cfg.Storage.Backend == "" {
		app.Static(cfg.Storage.LocalPublicURL, "./"+cfg.Storage.LocalMediaPath)
	}

	// Routes
	registerRoutes(app, container)

	return &Server{
		app:       app,
		cfg:       cfg,
		container: container,
	}
}

func (s *Server) GetApp() *fiber.App {
	return s.app
}

func (s *Server) Run() error {
	log.Printf("✅ Server is running on http://localhost:%s", s.cfg.App.Port)
	return s.app.Listen(":" + s.cfg.App.Port)
}

func registerRoutes(app *fiber.App, c *bootstrap.Container) {
	registerHealthRoutes(app)

	api := app.Group("/api")

	c.ChatController.RegisterRoutes(api)
	c.MediaController.RegisterRoutes(api)
	c.SentimentController.RegisterRoutes(api)
	c.PubSubController.RegisterRoutes(api)

	registerChatSocket(app, c)
}

// registerHealthRoutes exposes liveness checks at the root and at /health.
func registerHealthRoutes(app *fiber.App) {
	health := func(ctx *fiber.Ctx) error {
		return ctx.JSON(fiber.Map{"status": "ok"})
	}
	app.Get("/", health)
	app.Get("/health", health)
}

// registerChatSocket mounts the realtime chat endpoint. The user id comes
// from the path; each connection gets its own serving goroutine.
func registerChatSocket(app *fiber.App, c *bootstrap.Container) {
	app.Use("/chat/:user_id", func(ctx *fiber.Ctx) error {
		if fiberws.IsWebSocketUpgrade(ctx) {
			return ctx.Next()
		}
		return fiber.ErrUpgradeRequired
	})

	app.Get("/chat/:user_id", fiberws.New(func(conn *fiberws.Conn) {
		defer conn.Close()

		userId, err := uuid.Parse(conn.Params("user_id"))
		if err != nil {
			_ = conn.WriteJSON(fiber.Map{"type": "error", "message": "Invalid user id"})
			return
		}

		c.ChatWSHandler.ServeConn(context.Background(), conn, userId)
	}))
}
