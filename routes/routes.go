package routes

import (
	"log"
	"os"

	"pressfix/config"
	controller "pressfix/controllers"
	"pressfix/middleware"
	"pressfix/region"
	"pressfix/utils"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/websocket/v2"
	"gorm.io/gorm"
)

// SetupRoutes wires the public site API, the form endpoints, and the
// admin-gated catalog editor.
func SetupRoutes(app *fiber.App, db *gorm.DB, mailer utils.EmailSender, registry *region.Registry) {
	contactController := controller.NewContactController(
		db, mailer,
		log.New(os.Stdout, "CONTACT: ", log.LstdFlags),
		config.AppConfig.ContactToRegionA,
		config.AppConfig.ContactToRegionB,
	)
	serviceController := controller.NewServiceRequestController(
		mailer, config.SMTP(), config.AppConfig.ServiceRequestTo,
		log.New(os.Stdout, "SERVICE: ", log.LstdFlags),
	)
	regionController := controller.NewRegionController(
		registry, log.New(os.Stdout, "REGION: ", log.LstdFlags),
	)
	catalogController := controller.NewCatalogController(
		db, log.New(os.Stdout, "CATALOG: ", log.LstdFlags),
	)
	adminController := controller.NewAdminController(
		config.AppConfig.AdminPasswordHash,
		config.AppConfig.JWTSecret,
		log.New(os.Stdout, "ADMIN: ", log.LstdFlags),
	)

	// Health check endpoint
	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok"})
	})

	// Public site API with request logging
	api := app.Group("/api", logger.New(logger.Config{
		Format: "[${time}] ${status} - ${latency} ${method} ${path}\n",
	}))

	// Lead submission endpoints, rate limited per IP
	forms := api.Group("", middleware.FormRateLimiter())
	forms.Post("/contact", contactController.SubmitContact)
	forms.Post("/request-service", serviceController.SubmitServiceRequest)

	// Region selection and directory resolution
	api.Get("/v1/region", regionController.GetRegion)
	api.Put("/v1/region", regionController.SetRegion)

	// Catalog read for the content pages
	api.Get("/catalog", catalogController.ListCatalog)

	// Websocket feed pushing region changes to every open tab of a session
	app.Get("/ws/region", websocket.New(regionController.RegionFeed))

	// Admin gate and catalog editor
	app.Post("/admin/login", adminController.Login)

	admin := api.Group("/v1/admin", middleware.AdminProtected(config.AppConfig.JWTSecret))
	admin.Get("/catalog", catalogController.ListAllCatalog)
	admin.Post("/catalog", catalogController.CreateCatalogItem)
	admin.Put("/catalog/:id", catalogController.UpdateCatalogItem)
	admin.Delete("/catalog/:id", catalogController.DeleteCatalogItem)

	// Setup 404 handler
	app.Use(func(c *fiber.Ctx) error {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"error":   "Not Found",
			"message": "The requested resource was not found",
		})
	})

	log.Println("Routes initialized successfully")
}
