package main

import (
	"context"
	"log"
	"os"

	"github.com/getsentry/sentry-go"
	"github.com/gofiber/fiber/v2"

	"pressfix/config"
	"pressfix/middleware"
	"pressfix/region"
	"pressfix/routes"
	"pressfix/utils"
	"pressfix/worker"
)

func main() {
	// Initialize logger
	logger := log.New(os.Stdout, "PRESSFIX: ", log.Ldate|log.Ltime|log.Lshortfile)

	// Load configuration
	if err := config.LoadConfig(); err != nil {
		logger.Fatalf("Failed to load configuration: %v", err)
	}

	// Error reporting is optional; a missing DSN disables it quietly.
	if dsn := config.AppConfig.SentryDSN; dsn != "" {
		if err := sentry.Init(sentry.ClientOptions{
			Dsn:         dsn,
			Environment: config.AppConfig.Environment,
		}); err != nil {
			logger.Printf("Sentry init failed: %v", err)
		}
	}

	// Initialize database connection
	if err := config.ConnectDB(); err != nil {
		logger.Fatalf("Failed to connect to database: %v", err)
	}

	// Create Fiber app
	app := fiber.New()

	// Add CORS middleware
	corsCfg := middleware.DefaultCORSConfig()
	if len(config.AppConfig.AllowedOrigins) > 0 {
		corsCfg.AllowedOrigins = config.AppConfig.AllowedOrigins
	}
	app.Use(middleware.CORS(corsCfg))

	// The mailer stays nil when SMTP is unconfigured; the contact endpoint
	// then skips notifications and request-service fails closed.
	var mailer utils.EmailSender
	if smtp := config.SMTP(); smtp.Configured() {
		mailer = utils.NewMailer(smtp)
	}

	// One region store registry shared by every consumer in the process
	registry := region.NewRegistry()

	// Start the daily lead digest worker
	digestWorker := worker.NewDigestWorker(
		config.DB, mailer,
		log.New(os.Stdout, "DIGEST: ", log.LstdFlags),
		config.AppConfig.ContactToRegionA,
		config.AppConfig.ContactToRegionB,
	)
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	go digestWorker.Start(ctx)

	// Setup routes
	routes.SetupRoutes(app, config.DB, mailer, registry)

	// Start server
	logger.Printf("Server starting on port %s", config.AppConfig.ServerPort)
	if err := app.Listen(":" + config.AppConfig.ServerPort); err != nil {
		logger.Fatalf("Failed to start server: %v", err)
	}
}
