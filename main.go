// File: fairway/main.go
package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"fairway/config"
	"fairway/cron"
	"fairway/database"
	bookingRepoPkg "fairway/database/repository/booking"
	courseRepoPkg "fairway/database/repository/course"
	staffRepoPkg "fairway/database/repository/staff"
	userRepoPkg "fairway/database/repository/user"
	validationRepoPkg "fairway/database/repository/validation"
	"fairway/handlers"
	"fairway/middleware"
	"fairway/routes"
	"fairway/services/booking"
	"fairway/services/notification"
	"fairway/services/reservation"
	"fairway/utils"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/go-redis/redis/v8"
	"github.com/stripe/stripe-go/v76"
)

func main() {
	config.LoadConfig()
	logger := utils.GetLogger()

	database.InitDB()
	utils.InitCache()
	utils.InitPaymentCache()
	utils.FirebaseInit()
	stripe.Key = config.AppConfig.StripeKey

	// repositories.
	bookingRepo := bookingRepoPkg.NewMongoBookingRepo()
	validationRepo := validationRepoPkg.NewMongoValidationRepo()
	courseRepo := courseRepoPkg.NewMongoCourseRepo()
	staffRepo := staffRepoPkg.NewMongoStaffRepo()
	userRepo := userRepoPkg.NewMongoUserRepo()

	// services.
	notificationService, err := notification.NewDefaultNotificationService(userRepo, staffRepo)
	if err != nil {
		logger.Sugar().Fatalf("main: failed to initialize notification service: %v", err)
	}

	providerTimeout := time.Duration(config.AppConfig.ProviderTimeoutSeconds) * time.Second
	reservationRegistry := reservation.NewRegistry(logger, providerTimeout)

	validationService := &booking.DefaultValidationService{
		Bookings:     bookingRepo,
		Validations:  validationRepo,
		Courses:      courseRepo,
		Users:        userRepo,
		Reservations: reservationRegistry,
		Notifier:     notificationService,
		Logger:       logger,
	}

	paymentReconciler := &booking.PaymentReconciler{
		Bookings:    bookingRepo,
		Validations: validationRepo,
		Deduper:     &booking.RedisEventDeduper{Client: utils.GetPaymentCacheClient(), TTL: 24 * time.Hour},
		Notifier:    notificationService,
		Logger:      logger,
	}

	validationHandler := handlers.NewBookingValidationHandler(validationService, logger)
	paymentHandler := handlers.NewPaymentWebhookHandler(paymentReconciler, logger)

	// Create the Gin router.
	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(utils.ErrorHandler())
	router.Use(gin.Logger())
	router.Use(middleware.RateLimitMiddleware())
	router.Use(cors.New(cors.Config{
		AllowOrigins:     []string{"*"},
		AllowMethods:     []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Authorization", "Stripe-Signature"},
		AllowCredentials: false,
		MaxAge:           12 * time.Hour,
	}))

	routes.RegisterBookingValidationRoutes(router, validationHandler, staffRepo)
	routes.RegisterPaymentRoutes(router, paymentHandler)
	routes.RegisterHealthRoutes(router)

	cron.InitStateAuditWorker(bookingRepo, logger)
	utils.StartHealthMonitor(
		map[string]*redis.Client{
			"cache":   utils.GetCacheClient(),
			"payment": utils.GetPaymentCacheClient(),
		},
		database.MongoClient,
	)

	srv := &http.Server{
		Addr:    ":" + config.AppConfig.AppPort,
		Handler: router,
	}

	go func() {
		logger.Sugar().Infof("main: listening on port %s", config.AppConfig.AppPort)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Sugar().Fatalf("main: server error: %v", err)
		}
	}()

	// Graceful shutdown.
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	logger.Info("main: shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		logger.Sugar().Errorf("main: forced shutdown: %v", err)
	}
	logger.Info("main: server stopped")
}
