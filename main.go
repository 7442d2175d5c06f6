package main

import (
	"context"
	"errors"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"pawcare/config"
	"pawcare/cron"
	"pawcare/database"
	bookingRepo "pawcare/database/repository/booking"
	clinicRepo "pawcare/database/repository/clinic"
	reservationRepo "pawcare/database/repository/reservation"
	settingsRepo "pawcare/database/repository/settings"
	"pawcare/handlers"
	"pawcare/middleware"
	"pawcare/routes"
	"pawcare/services/booking"
	"pawcare/services/notification"
	"pawcare/services/payment"
	"pawcare/services/settings"
	"pawcare/services/slots"
	"pawcare/services/tasks"
	"pawcare/utils"

	"github.com/gin-gonic/gin"
	"github.com/go-redis/redis/v8"
	"github.com/hibiken/asynq"
	"github.com/stripe/stripe-go/v76"
	"go.uber.org/zap"
)

func main() {
	config.LoadConfig()
	logger := utils.GetLogger()
	defer logger.Sync()
	utils.InitTimezone()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	database.InitDB()
	db := database.Database()
	cache := utils.GetCacheClient()

	// repositories.
	bookingStore := bookingRepo.NewMongoBookingRepo(db)
	settingsStore := settingsRepo.NewMongoSettingsRepo(db)
	clinicStore := clinicRepo.NewMongoClinicRepo(db)
	var reservations reservationRepo.ReservationRepository
	if config.AppConfig.SlotReservations {
		reservations = reservationRepo.NewMongoReservationRepo(db)
	} else {
		logger.Warn("slot reservations disabled; concurrent bookings may exceed slot capacity")
	}

	indexCtx, cancelIndexes := context.WithTimeout(ctx, 30*time.Second)
	for name, ensure := range map[string]func(context.Context) error{
		"bookings": bookingStore.EnsureIndexes,
		"settings": settingsStore.EnsureIndexes,
	} {
		if err := ensure(indexCtx); err != nil {
			logger.Error("failed to ensure indexes", zap.String("collection", name), zap.Error(err))
		}
	}
	if reservations != nil {
		if err := reservations.EnsureIndexes(indexCtx); err != nil {
			logger.Fatal("reservation indexes are required for capacity enforcement", zap.Error(err))
		}
	}
	cancelIndexes()

	// notifications.
	var channels []notification.Channel
	if fcm, err := utils.FirebaseInit(ctx); err != nil {
		logger.Warn("push notifications disabled", zap.Error(err))
	} else {
		channels = append(channels, notification.NewFCMChannel(fcm))
	}
	if config.AppConfig.WhatsAppToken != "" && config.AppConfig.WhatsAppPhoneNumberID != "" {
		channels = append(channels, notification.NewWhatsAppChannel(
			config.AppConfig.WhatsAppAPIURL,
			config.AppConfig.WhatsAppToken,
			config.AppConfig.WhatsAppPhoneNumberID,
			nil,
		))
	}
	var notifier notification.Notifier
	if svc, err := notification.NewDefaultNotificationService(logger, channels...); err != nil {
		logger.Warn("booking notifications disabled", zap.Error(err))
	} else {
		notifier = svc
	}

	// reminders.
	queue := asynq.NewClient(asynq.RedisClientOpt{
		Addr:     config.AppConfig.RedisAddr,
		Password: config.AppConfig.RedisPassword,
		DB:       config.AppConfig.RedisReminderQueueDB,
	})
	defer queue.Close()
	var reminders tasks.ReminderScheduler
	if notifier != nil {
		reminders = tasks.NewAsynqReminderScheduler(queue, config.AppConfig.ReminderLead, utils.Now)
	}

	// payments.
	var payments payment.Gateway
	if config.AppConfig.StripeKey != "" {
		stripe.Key = config.AppConfig.StripeKey
		payments = payment.NewStripeGateway(config.AppConfig.StripeKey, nil, logger)
	} else {
		logger.Warn("STRIPE_KEY not set; bookings will be created without payment orders")
	}

	// services.
	settingsService := settings.NewDefaultSettingsService(settingsStore, cache, config.AppConfig.PolicyCacheTTL, logger)
	bookingService, err := booking.NewDefaultBookingService(booking.Deps{
		Repo:         bookingStore,
		Clinics:      clinicStore,
		Reservations: reservations,
		Settings:     settingsService,
		Validator:    slots.NewValidator(utils.Location(), utils.Now),
		Notifier:     notifier,
		Reminders:    reminders,
		Payments:     payments,
		Currency:     config.AppConfig.PaymentCurrency,
		PendingHold:  config.AppConfig.PendingHoldTTL,
		Logger:       logger,
	})
	if err != nil {
		logger.Fatal("main: failed to build booking service", zap.Error(err))
	}

	var worker *asynq.Server
	if notifier != nil {
		worker = cron.InitReminderWorker(ctx, bookingStore, notifier)
	}
	utils.StartHealthMonitor(ctx, []*redis.Client{cache}, database.MongoClient)

	if config.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	}
	router := gin.New()
	router.Use(utils.ErrorHandler())
	router.Use(middleware.RequestLogger(logger))
	router.Use(middleware.RateLimitMiddleware(config.AppConfig.MaxRequestsPerMin))

	routes.RegisterRoutes(router, &handlers.HandlerBundle{
		BookingHandler: handlers.NewBookingHandler(bookingService),
		AdminHandler:   handlers.NewAdminHandler(settingsService, bookingService, clinicStore),
	})

	port := config.AppConfig.AppPort
	if port == "" {
		port = "8080"
	}
	srv := &http.Server{
		Addr:              "0.0.0.0:" + port,
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	logger.Info("starting server", zap.String("addr", srv.Addr))
	go func() {
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Fatal("main: server failed to start", zap.Error(err))
		}
	}()

	<-ctx.Done()
	logger.Info("main: server is shutting down...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("main: server forced to shutdown", zap.Error(err))
	}
	if worker != nil {
		worker.Shutdown()
	}
	bookingService.Wait()
	database.Disconnect()

	logger.Info("main: server stopped gracefully")
}
