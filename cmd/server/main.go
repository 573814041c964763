package main

import (
	"log"
	"os"
	"os/signal"
	"syscall"

	"godavari-scm/internal/adapters/http/middleware"
	"godavari-scm/internal/adapters/http/routes"
	"godavari-scm/internal/adapters/persistence/models"
	"godavari-scm/internal/adapters/persistence/repositories"
	"godavari-scm/internal/config"
	"godavari-scm/internal/core/services"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	_ "godavari-scm/docs" // Swagger docs
)

// @title Godavari Storage Management API
// @version 1.0
// @description Ash pot storage, renewal and delivery tracking for the Godavari trust
// @termsOfService http://swagger.io/terms/

// @contact.name API Support
// @contact.email support@godavaritrust.in

// @license.name Apache 2.0
// @license.url http://www.apache.org/licenses/LICENSE-2.0.html

// @host api.godavaritrust.in
// @BasePath /api/v1
// @schemes https

// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
// @description Type "Bearer" followed by a space and JWT token.

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("❌ Failed to load configuration: %v", err)
	}

	// Connect to database
	db, err := config.ConnectDatabase(cfg)
	if err != nil {
		log.Fatalf("❌ Failed to connect to database: %v", err)
	}
	defer config.CloseDatabase()

	// Auto migrate (creates tables if not exist)
	if err := models.AutoMigrate(db); err != nil {
		log.Fatalf("❌ Failed to auto migrate: %v", err)
	}
	log.Println("✅ Database migration completed")

	// Seed master data (locations, admin account)
	if err := config.SeedMasterData(db); err != nil {
		log.Printf("⚠️ Warning: Failed to seed master data: %v", err)
	}

	// Cron service: hourly status sweeps, 08:30 reminder batch,
	// nightly cleanup of expired OTP codes and refresh tokens
	cronService := newCronService(db, cfg)
	cronService.Start()
	defer cronService.Stop()

	// Create Fiber app
	app := fiber.New(fiber.Config{
		AppName:      "Godavari SCM API v1.0",
		ErrorHandler: middleware.CustomErrorHandler,
	})

	// Setup middlewares
	middleware.Setup(app, cfg)

	// Setup routes (pass db and cfg for dependency injection)
	routes.Setup(app, db, cfg)

	// Graceful shutdown
	go gracefulShutdown(app)

	// Start server
	log.Printf("🚀 Server starting on port %s [MODE: %s]", cfg.Port, cfg.AppMode)
	if err := app.Listen(":" + cfg.Port); err != nil {
		log.Fatalf("❌ Failed to start server: %v", err)
	}
}

// newCronService wires the scheduled jobs with their dependencies
func newCronService(db *gorm.DB, cfg *config.Config) *services.CronService {
	storageRepo := repositories.NewStorageRepository(db)
	notificationRepo := repositories.NewNotificationRepository(db)
	otpRepo := repositories.NewOTPRepository(db)
	userRepo := repositories.NewUserRepository(db)
	refreshTokenRepo := repositories.NewRefreshTokenRepository(db)

	smsService := services.NewSMSService(cfg)
	notifyService := services.NewNotificationService(notificationRepo, smsService)
	otpService := services.NewOTPService(otpRepo, smsService)
	authService := services.NewAuthService(userRepo, refreshTokenRepo, cfg)

	return services.NewCronService(storageRepo, notificationRepo, notifyService, otpService, authService)
}

// gracefulShutdown handles graceful shutdown
func gracefulShutdown(app *fiber.App) {
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Println("🛑 Shutting down server...")
	if err := app.Shutdown(); err != nil {
		log.Printf("❌ Error during shutdown: %v", err)
	}
	log.Println("✅ Server stopped gracefully")
}
