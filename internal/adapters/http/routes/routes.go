package routes

import (
	"growthpot/internal/adapters/http/handlers"
	"growthpot/internal/adapters/http/middleware"
	"growthpot/internal/adapters/persistence/repositories"
	"growthpot/internal/config"
	"growthpot/internal/core/services"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/swagger"
	"gorm.io/gorm"
)

// Setup configures all routes for the application
func Setup(app *fiber.App, db *gorm.DB, cfg *config.Config) {
	// Initialize repositories
	userRepo := repositories.NewUserRepository(db)
	refreshTokenRepo := repositories.NewRefreshTokenRepository(db)
	fundRepo := repositories.NewFundRepository(db)
	membershipRepo := repositories.NewMembershipRepository(db)
	paymentRepo := repositories.NewPaymentRepository(db)
	spinRepo := repositories.NewSpinRepository(db)
	notificationRepo := repositories.NewNotificationRepository(db)

	// Initialize services
	authService := services.NewAuthService(userRepo, refreshTokenRepo, cfg)
	userService := services.NewUserService(userRepo)
	fundService := services.NewFundService(fundRepo, membershipRepo, paymentRepo, spinRepo)
	paymentService := services.NewPaymentService(fundRepo, membershipRepo, paymentRepo, notificationRepo)
	spinService := services.NewSpinService(db, spinRepo, notificationRepo)
	notificationService := services.NewNotificationService(fundRepo, membershipRepo, paymentRepo, notificationRepo)
	chatService := services.NewChatService(cfg.Chat)

	// Initialize handlers
	healthHandler := handlers.NewHealthHandler()
	authHandler := handlers.NewAuthHandler(authService, cfg)
	userHandler := handlers.NewUserHandler(userService)
	fundHandler := handlers.NewFundHandler(fundService, notificationService)
	paymentHandler := handlers.NewPaymentHandler(paymentService)
	spinHandler := handlers.NewSpinHandler(spinService)
	notificationHandler := handlers.NewNotificationHandler(notificationService)
	chatHandler := handlers.NewChatHandler(chatService)

	// Health check & root routes
	app.Get("/", healthHandler.Root)
	app.Get("/health", healthHandler.HealthCheck)

	// Swagger documentation
	app.Get("/swagger/*", swagger.HandlerDefault)

	// API v1 group
	apiV1 := app.Group("/api/v1")

	// Auth routes (public, stricter rate limit)
	authRoutes := apiV1.Group("/auth")
	setupAuthRoutes(authRoutes, authHandler, cfg)

	// Profile routes
	userRoutes := apiV1.Group("/users")
	userRoutes.Use(middleware.AuthMiddleware(cfg))
	setupUserRoutes(userRoutes, userHandler)

	// Fund routes (funds, members, payments, spins, reminders)
	fundRoutes := apiV1.Group("/funds")
	fundRoutes.Use(middleware.AuthMiddleware(cfg))
	setupFundRoutes(fundRoutes, fundHandler, paymentHandler, spinHandler)

	// Payment review routes
	paymentRoutes := apiV1.Group("/payments")
	paymentRoutes.Use(middleware.AuthMiddleware(cfg))
	setupPaymentRoutes(paymentRoutes, paymentHandler)

	// Notification routes
	notificationRoutes := apiV1.Group("/notifications")
	notificationRoutes.Use(middleware.AuthMiddleware(cfg))
	setupNotificationRoutes(notificationRoutes, notificationHandler)

	// Assistant chat route
	chatRoutes := apiV1.Group("/chat")
	chatRoutes.Use(middleware.AuthMiddleware(cfg))
	chatRoutes.Post("/", chatHandler.Stream)
}

// setupAuthRoutes configures authentication routes
func setupAuthRoutes(router fiber.Router, handler *handlers.AuthHandler, cfg *config.Config) {
	// Public routes
	router.Post("/register", middleware.AuthRateLimiter(), handler.Register)
	router.Post("/login", middleware.AuthRateLimiter(), handler.Login)
	router.Post("/refresh", handler.RefreshToken)
	router.Post("/logout", handler.Logout)

	// Protected routes
	router.Get("/me", middleware.AuthMiddleware(cfg), handler.Me)
	router.Post("/logout-all", middleware.AuthMiddleware(cfg), handler.LogoutAll)
}

// setupUserRoutes configures profile routes
func setupUserRoutes(router fiber.Router, handler *handlers.UserHandler) {
	router.Get("/me", handler.GetProfile)
	router.Put("/me", handler.UpdateProfile)
}

// setupFundRoutes configures fund-scoped routes
func setupFundRoutes(
	router fiber.Router,
	fundHandler *handlers.FundHandler,
	paymentHandler *handlers.PaymentHandler,
	spinHandler *handlers.SpinHandler,
) {
	router.Post("/", fundHandler.Create)
	router.Get("/", fundHandler.List)
	router.Post("/join", fundHandler.Join)
	router.Get("/:id", fundHandler.GetDetails)
	router.Post("/:id/pause", fundHandler.Pause)
	router.Post("/:id/resume", fundHandler.Resume)
	router.Post("/:id/reminders", fundHandler.SendReminders)
	router.Post("/:id/members/:memberId/verify", fundHandler.VerifyMember)

	router.Post("/:id/payments", paymentHandler.Submit)
	router.Get("/:id/payments", paymentHandler.List)

	router.Post("/:id/spin", middleware.SpinRateLimiter(), spinHandler.Conduct)
	router.Get("/:id/spins", spinHandler.History)
}

// setupPaymentRoutes configures payment review routes
func setupPaymentRoutes(router fiber.Router, handler *handlers.PaymentHandler) {
	router.Put("/:id/status", handler.SetStatus)
}

// setupNotificationRoutes configures notification routes
func setupNotificationRoutes(router fiber.Router, handler *handlers.NotificationHandler) {
	router.Get("/", handler.Feed)
	router.Put("/read-all", handler.MarkAllRead)
	router.Put("/:id/read", handler.MarkRead)
	router.Delete("/:id", handler.Dismiss)
}
