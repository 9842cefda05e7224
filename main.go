package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"brightsite/config"
	"brightsite/cron"
	"brightsite/database"
	availabilityRepoPkg "brightsite/database/repository/availability"
	bookingRepoPkg "brightsite/database/repository/booking"
	chatRepoPkg "brightsite/database/repository/chat"
	contentRepoPkg "brightsite/database/repository/content"
	userRepoPkg "brightsite/database/repository/user"
	"brightsite/handlers"
	"brightsite/middleware"
	"brightsite/routes"
	"brightsite/services/booking"
	"brightsite/services/chat"
	"brightsite/services/content"
	"brightsite/services/payment"
	"brightsite/services/storage"
	"brightsite/services/tasks"
	"brightsite/utils"

	"github.com/gin-gonic/gin"
	"github.com/stripe/stripe-go/v76"
)

func main() {
	config.LoadConfig()
	utils.InitializeLogger()
	logger := utils.GetLogger()

	database.InitDB()
	utils.InitRedis()
	stripe.Key = config.AppConfig.StripeKey

	storageService, err := storage.New()
	if err != nil {
		logger.Sugar().Fatalf("main: failed to initialize storage service: %v", err)
	}

	// Create the Gin router.
	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(utils.ErrorHandler())
	router.Use(gin.Logger())
	router.Use(middleware.RateLimitMiddleware())

	// Repositories.
	availabilityRepo := availabilityRepoPkg.NewMongoAvailabilityRepo()
	bookingRepo := bookingRepoPkg.NewMongoBookingRepo()
	chatRepo := chatRepoPkg.NewMongoChatRepo()
	contentRepo := contentRepoPkg.NewMongoContentRepo()
	userRepo := userRepoPkg.NewMongoUserRepo()

	// Services.
	reminderScheduler := tasks.NewAsynqReminderScheduler()
	defer reminderScheduler.Close()

	bookingEngine := booking.NewDefaultBookingEngine(availabilityRepo, bookingRepo, reminderScheduler)
	chatHub := chat.NewHub()
	chatService := chat.NewDefaultChatService(chatRepo, userRepo, chatHub,
		chat.NewRedisSessionListCache(30*time.Second))
	contentService := content.NewDefaultContentService(contentRepo, storageService)
	paymentProcessor := payment.NewDefaultPaymentProcessor(bookingRepo, bookingEngine, config.AppConfig.StripeWebhookSecret)

	// Background reminder worker.
	cron.InitReminderWorker(bookingRepo, nil)

	// Assemble the handler bundle and register routes.
	handlerBundle := &routes.HandlerBundle{
		Availability: handlers.NewAvailabilityHandler(bookingEngine),
		Booking:      handlers.NewBookingHandler(bookingEngine),
		Chat:         handlers.NewChatHandler(chatService, chatHub),
		Content:      handlers.NewContentHandler(contentService),
		Auth:         handlers.NewAuthHandler(userRepo),
		Storage:      handlers.NewStorageHandler(storageService),
		Payment:      handlers.NewPaymentHandler(paymentProcessor),
	}
	routes.RegisterRoutes(router, handlerBundle)

	// Locally stored uploads are served straight off disk.
	if config.AppConfig.StorageBackend != "cloudinary" {
		router.Static(config.AppConfig.LocalUploadBase, config.AppConfig.LocalUploadDir)
	}

	// Start the HTTP server.
	port := config.AppConfig.AppPort
	if port == "" {
		port = "8080"
	}
	srv := &http.Server{
		Addr:    "0.0.0.0:" + port,
		Handler: router,
	}

	logger.Sugar().Infof("Starting server on %s...", srv.Addr)
	go func() {
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Sugar().Fatalf("main: server failed to start: %v", err)
		}
	}()

	// Wait for an OS signal to gracefully shutdown.
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	logger.Sugar().Info("main: server is shutting down...")

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		logger.Sugar().Fatalf("main: server forced to shutdown: %v", err)
	}

	logger.Sugar().Info("main: server stopped gracefully")
}
