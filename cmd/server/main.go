package main

import (
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/getsentry/sentry-go"
	sentryfiber "github.com/getsentry/sentry-go/fiber"

	"github.com/ahmetcoskunkizilkaya/softdesk/internal/access"
	"github.com/ahmetcoskunkizilkaya/softdesk/internal/config"
	"github.com/ahmetcoskunkizilkaya/softdesk/internal/database"
	"github.com/ahmetcoskunkizilkaya/softdesk/internal/events"
	"github.com/ahmetcoskunkizilkaya/softdesk/internal/handlers"
	"github.com/ahmetcoskunkizilkaya/softdesk/internal/logging"
	"github.com/ahmetcoskunkizilkaya/softdesk/internal/middleware"
	"github.com/ahmetcoskunkizilkaya/softdesk/internal/routes"
	"github.com/ahmetcoskunkizilkaya/softdesk/internal/services"
	"github.com/gofiber/fiber/v2"
	fiberlogger "github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/gofiber/fiber/v2/middleware/requestid"
)

func main() {
	// Structured logging (JSON to stdout)
	logging.Setup()

	cfg := config.Load()

	if cfg.JWTSecret == "" {
		slog.Error("JWT_SECRET environment variable is required")
		os.Exit(1)
	}
	if cfg.DBPassword == "" {
		slog.Error("DB_PASSWORD environment variable is required")
		os.Exit(1)
	}

	// Database
	if err := database.Connect(cfg); err != nil {
		slog.Error("database connection failed", "error", err)
		os.Exit(1)
	}
	if err := database.Migrate(database.DB); err != nil {
		slog.Error("migration failed", "error", err)
		os.Exit(1)
	}

	// PostgreSQL log handler (ERROR+ async batch)
	pgLogHandler := logging.AttachDatabase(database.DB)

	cleanupDone := make(chan struct{})
	logging.StartCleanup(database.DB, cfg.LogRetention, cleanupDone)

	// Domain events
	var publisher events.Publisher = events.Nop{}
	var natsPublisher *events.NATSPublisher
	if cfg.NATSURL != "" {
		p, err := events.Connect(cfg.NATSURL, "softdesk")
		if err != nil {
			slog.Error("event publishing disabled", "error", err)
		} else {
			natsPublisher = p
			publisher = p
		}
	}

	// Services
	engine := access.NewEngine(access.NewResolver(database.DB))
	scope := services.NewScope(database.DB, engine)
	authService := services.NewAuthService(database.DB, cfg)
	userService := services.NewUserService(database.DB)
	projectService := services.NewProjectService(database.DB, engine, scope, publisher)
	issueService := services.NewIssueService(database.DB, engine, scope, publisher)
	commentService := services.NewCommentService(database.DB, engine, scope, publisher)

	// Sentry error tracking
	if cfg.SentryDSN != "" {
		if err := sentry.Init(sentry.ClientOptions{
			Dsn:              cfg.SentryDSN,
			EnableTracing:    true,
			TracesSampleRate: 0.2,
			Environment:      cfg.AppEnv,
		}); err != nil {
			slog.Error("sentry init failed", "error", err)
		} else {
			defer sentry.Flush(2 * time.Second)
		}
	}

	// Fiber app
	app := fiber.New(fiber.Config{
		BodyLimit:    1 * 1024 * 1024,
		ErrorHandler: handlers.ErrorHandler,
	})

	app.Use(sentryfiber.New(sentryfiber.Options{
		Repanic:         true,
		WaitForDelivery: false,
	}))
	app.Use(recover.New())
	app.Use(requestid.New())
	app.Use(fiberlogger.New(fiberlogger.Config{
		Format: "${time} | ${status} | ${latency} | ${ip} | ${method} | ${path} | ${locals:requestid}\n",
	}))
	app.Use(middleware.CORS(cfg))
	app.Use(middleware.SecurityHeaders())

	routes.Setup(app, cfg, database.DB, routes.Handlers{
		Auth:     handlers.NewAuthHandler(authService),
		Health:   handlers.NewHealthHandler(database.Ping),
		Profile:  handlers.NewProfileHandler(userService),
		Projects: handlers.NewProjectHandler(projectService),
		Issues:   handlers.NewIssueHandler(issueService),
		Comments: handlers.NewCommentHandler(commentService),
	})

	// Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	go func() {
		slog.Info("server starting", "port", cfg.Port, "env", cfg.AppEnv)
		if err := app.Listen(":" + cfg.Port); err != nil {
			slog.Error("server failed to start", "error", err)
			os.Exit(1)
		}
	}()

	<-quit
	slog.Info("shutting down server...")

	if err := app.Shutdown(); err != nil {
		slog.Error("server shutdown error", "error", err)
	}

	if natsPublisher != nil {
		natsPublisher.Close()
	}
	close(cleanupDone)
	pgLogHandler.Stop()
	sentry.Flush(2 * time.Second)

	if err := database.Close(); err != nil {
		slog.Error("database close error", "error", err)
	}

	slog.Info("server stopped")
}
