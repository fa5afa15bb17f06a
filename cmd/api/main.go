package main

import (
	"log"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/limiter"
	fiberLogger "github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/joho/godotenv"
	"go.uber.org/zap"

	"github.com/snapgather/snapgather-backend/internal/config"
	"github.com/snapgather/snapgather-backend/internal/handler"
	"github.com/snapgather/snapgather-backend/internal/jobs"
	"github.com/snapgather/snapgather-backend/internal/middleware"
	"github.com/snapgather/snapgather-backend/internal/repository"
	"github.com/snapgather/snapgather-backend/internal/service"
	"github.com/snapgather/snapgather-backend/pkg/database"
	"github.com/snapgather/snapgather-backend/pkg/email"
	"github.com/snapgather/snapgather-backend/pkg/logger"
	"github.com/snapgather/snapgather-backend/pkg/payment"
	"github.com/snapgather/snapgather-backend/pkg/storage"
	"github.com/snapgather/snapgather-backend/pkg/utils"
)

func main() {
	// .env is optional outside local development
	_ = godotenv.Load()

	cfg := config.LoadConfig()

	zapLogger, err := logger.New()
	if err != nil {
		log.Fatal("Failed to initialize logger:", err)
	}
	defer zapLogger.Sync()

	db, err := database.NewDatabase(cfg.Database.URL)
	if err != nil {
		zapLogger.Fatal("failed to initialize database", zap.Error(err))
	}

	// Repositories
	userRepo := repository.NewUserRepository(db)
	eventRepo := repository.NewEventRepository(db)
	photoRepo := repository.NewPhotoRepository(db)
	packageRepo := repository.NewCreditPackageRepository(db)
	purchaseRepo := repository.NewUserCreditPurchaseRepository(db)

	// Blob storage
	blobStorage, err := storage.NewR2Storage(cfg)
	if err != nil {
		zapLogger.Fatal("failed to initialize storage", zap.Error(err))
	}

	// Email
	emailService := email.NewEmailService(cfg, zapLogger)

	// Services
	authService := service.NewAuthService(userRepo, emailService, cfg)
	userService := service.NewUserService(userRepo)
	photoService := service.NewPhotoService(photoRepo, eventRepo, blobStorage, zapLogger)
	eventService := service.NewEventService(eventRepo, photoRepo, userRepo, photoService, cfg.App.PublicURL)

	stripeService := payment.NewStripeService(cfg.Stripe.SecretKey, cfg.App.FrontendURL)
	paymentService := service.NewPaymentService(stripeService, userRepo, packageRepo, purchaseRepo)

	validator := utils.NewValidator()

	// Handlers
	authHandler := handler.NewAuthHandler(authService, validator)
	userHandler := handler.NewUserHandler(userService, validator)
	eventHandler := handler.NewEventHandler(eventService, validator)
	qrHandler := handler.NewQRHandler(eventService)
	photoHandler := handler.NewPhotoHandler(photoService)
	paymentHandler := handler.NewPaymentHandler(paymentService, cfg.Stripe.WebhookSecret)

	// Orphaned blobs are reconciled in the background
	sweepJob := jobs.NewOrphanSweepJob(photoRepo, blobStorage, zapLogger, 6*time.Hour)
	sweepJob.Start()
	defer sweepJob.Stop()

	app := fiber.New()

	app.Use(cors.New(cors.Config{
		AllowOrigins:     cfg.App.FrontendURL,
		AllowHeaders:     "Origin, Content-Type, Accept, Authorization",
		AllowMethods:     "GET, POST, PUT, DELETE",
		AllowCredentials: true,
	}))
	app.Use(fiberLogger.New())
	app.Use(limiter.New(limiter.Config{
		Max:        20,
		Expiration: 1 * time.Minute,
		KeyGenerator: func(c *fiber.Ctx) string {
			return c.IP()
		},
	}))

	api := app.Group("/api")

	// Public routes must be registered before the auth middleware
	auth := api.Group("/auth")
	auth.Post("/register", authHandler.Register)
	auth.Post("/login", authHandler.Login)
	auth.Post("/forgot-password", authHandler.ForgotPassword)
	auth.Post("/reset-password", authHandler.ResetPassword)

	// Guest surface: addressed by event identifier, no authentication
	guest := api.Group("/guest/events")
	guest.Get("/:id", eventHandler.GetGuestEvent)
	guest.Get("/:id/photos", photoHandler.GetGalleryPhotos)
	guest.Post("/:id/photos", photoHandler.UploadGuestPhotos)
	guest.Get("/:id/qr", qrHandler.GetEventQR)
	guest.Get("/:id/qr/download", qrHandler.DownloadEventQR)
	guest.Get("/:id/qr/print", qrHandler.PrintEventQR)

	api.Post("/payments/webhook", paymentHandler.HandleStripeWebhook)
	api.Get("/payments/packages", paymentHandler.GetCreditPackages)

	// Protected routes
	api.Use(middleware.AuthMiddleware([]byte(cfg.JWT.Secret)))
	{
		user := api.Group("/user")
		user.Get("/profile", userHandler.GetMyProfile)
		user.Put("/profile", userHandler.UpdateProfile)
		user.Post("/change-password", userHandler.ChangePassword)

		events := api.Group("/events")
		events.Post("/", eventHandler.CreateEvent)
		events.Get("/", eventHandler.GetUserEvents)
		events.Get("/:id", eventHandler.GetEvent)
		events.Put("/:id", eventHandler.UpdateEvent)
		events.Delete("/:id", eventHandler.DeleteEvent)
		events.Get("/:id/photos", photoHandler.GetEventPhotos)

		photos := api.Group("/photos")
		photos.Put("/:id/approval", photoHandler.SetPhotoApproval)
		photos.Delete("/:id", photoHandler.DeletePhoto)

		payments := api.Group("/payments")
		payments.Get("/history", paymentHandler.GetPurchaseHistory)
		payments.Post("/checkout/:packageId", paymentHandler.CreateCheckoutSession)
	}

	zapLogger.Info("starting server", zap.String("port", cfg.App.Port))
	if err := app.Listen(":" + cfg.App.Port); err != nil {
		zapLogger.Fatal("server stopped", zap.Error(err))
	}
}
