package routes

import (
	"godavari-scm/internal/adapters/http/handlers"
	"godavari-scm/internal/adapters/http/middleware"
	"godavari-scm/internal/adapters/persistence/repositories"
	"godavari-scm/internal/config"
	"godavari-scm/internal/core/services"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/swagger"
	"gorm.io/gorm"
)

// Setup configures all routes for the application
func Setup(app *fiber.App, db *gorm.DB, cfg *config.Config) {
	// Initialize repositories
	userRepo := repositories.NewUserRepository(db)
	refreshTokenRepo := repositories.NewRefreshTokenRepository(db)
	locationRepo := repositories.NewLocationRepository(db)
	customerRepo := repositories.NewCustomerRepository(db)
	storageRepo := repositories.NewStorageRepository(db)
	paymentRepo := repositories.NewPaymentRepository(db)
	notificationRepo := repositories.NewNotificationRepository(db)
	otpRepo := repositories.NewOTPRepository(db)

	// Initialize services
	smsService := services.NewSMSService(cfg)
	emailService := services.NewEmailService(cfg)
	notifyService := services.NewNotificationService(notificationRepo, smsService)
	otpService := services.NewOTPService(otpRepo, smsService)

	authService := services.NewAuthService(userRepo, refreshTokenRepo, cfg)
	userService := services.NewUserService(userRepo, refreshTokenRepo)
	locationService := services.NewLocationService(locationRepo)
	customerService := services.NewCustomerService(customerRepo)
	storageService := services.NewStorageService(storageRepo, customerRepo, locationRepo, notifyService, emailService)
	renewalService := services.NewRenewalService(storageRepo, locationRepo, notifyService)
	deliveryService := services.NewDeliveryService(storageRepo, notifyService, emailService, otpService)
	dashboardService := services.NewDashboardService(db)

	// Initialize handlers
	healthHandler := handlers.NewHealthHandler()
	authHandler := handlers.NewAuthHandler(authService, cfg)
	userHandler := handlers.NewUserHandler(userService)
	locationHandler := handlers.NewLocationHandler(locationService)
	customerHandler := handlers.NewCustomerHandler(customerService)
	storageHandler := handlers.NewStorageHandler(storageService, renewalService, deliveryService, notifyService, paymentRepo)
	otpHandler := handlers.NewOTPHandler(otpService)
	dashboardHandler := handlers.NewDashboardHandler(dashboardService)

	// Health check
	app.Get("/health", healthHandler.Check)

	// Swagger documentation
	app.Get("/swagger/*", swagger.HandlerDefault)

	// API v1 group
	apiV1 := app.Group("/api/v1")

	// Auth routes (public, rate limited)
	authRoutes := apiV1.Group("/auth")
	authRoutes.Use(middleware.AuthRateLimiter())
	authRoutes.Post("/register", authHandler.Register)
	authRoutes.Post("/login", authHandler.Login)
	authRoutes.Post("/refresh", authHandler.Refresh)
	authRoutes.Post("/logout", authHandler.Logout)

	// User management routes (Admin only)
	userRoutes := apiV1.Group("/users")
	userRoutes.Use(middleware.AuthMiddleware(cfg))
	userRoutes.Use(middleware.AdminOnly())
	userRoutes.Get("/", userHandler.List)
	userRoutes.Get("/:id", userHandler.Get)
	userRoutes.Patch("/:id", userHandler.Update)
	userRoutes.Post("/:id/approve", userHandler.Approve)
	userRoutes.Post("/:id/deactivate", userHandler.Deactivate)

	// Location routes (reads for everyone, writes admin only)
	locationRoutes := apiV1.Group("/locations")
	locationRoutes.Use(middleware.AuthMiddleware(cfg))
	locationRoutes.Get("/", locationHandler.List)
	locationRoutes.Get("/:id", locationHandler.Get)
	locationRoutes.Post("/", middleware.AdminOnly(), locationHandler.Create)
	locationRoutes.Put("/:id", middleware.AdminOnly(), locationHandler.Update)
	locationRoutes.Delete("/:id", middleware.AdminOnly(), locationHandler.Delete)

	// Customer routes (Operator/Admin)
	customerRoutes := apiV1.Group("/customers")
	customerRoutes.Use(middleware.AuthMiddleware(cfg))
	customerRoutes.Use(middleware.OperatorOrAdmin())
	customerRoutes.Get("/", customerHandler.List)
	customerRoutes.Get("/search", customerHandler.Search)
	customerRoutes.Get("/:id", customerHandler.Get)
	customerRoutes.Patch("/:id", customerHandler.Update)

	// Storage routes (Operator/Admin)
	storageRoutes := apiV1.Group("/storages")
	storageRoutes.Use(middleware.AuthMiddleware(cfg))
	storageRoutes.Use(middleware.OperatorOrAdmin())
	storageRoutes.Post("/", storageHandler.Create)
	storageRoutes.Get("/", storageHandler.List)
	storageRoutes.Get("/:id", storageHandler.Get)
	storageRoutes.Get("/:id/dues", storageHandler.Dues)
	storageRoutes.Post("/:id/renew", storageHandler.Renew)
	storageRoutes.Post("/:id/deliver", storageHandler.Deliver)
	storageRoutes.Get("/:id/payments", storageHandler.Payments)
	storageRoutes.Get("/:id/notifications", storageHandler.Notifications)

	// OTP routes (Operator/Admin, strictly rate limited)
	otpRoutes := apiV1.Group("/otp")
	otpRoutes.Use(middleware.AuthMiddleware(cfg))
	otpRoutes.Use(middleware.OperatorOrAdmin())
	otpRoutes.Post("/send", middleware.OTPRateLimiter(), otpHandler.Send)
	otpRoutes.Post("/verify", otpHandler.Verify)

	// Dashboard routes
	dashboardRoutes := apiV1.Group("/dashboard")
	dashboardRoutes.Use(middleware.AuthMiddleware(cfg))
	dashboardRoutes.Get("/stats", dashboardHandler.Stats)
}
