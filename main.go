package main

import (
	"context"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"sevahub/config"
	"sevahub/cron"
	"sevahub/database"
	requestRepoPkg "sevahub/database/repository/request"
	userRepoPkg "sevahub/database/repository/user"
	"sevahub/handlers"
	"sevahub/middleware"
	"sevahub/routes"
	"sevahub/services/booking"
	"sevahub/services/feed"
	"sevahub/services/notification"
	"sevahub/services/storage"
	"sevahub/services/tasks"
	"sevahub/services/user"
	"sevahub/utils"

	"github.com/gin-gonic/gin"
	"github.com/go-redis/redis/v8"
	"github.com/hibiken/asynq"
	"go.uber.org/zap"
)

func main() {
	config.LoadConfig()
	utils.InitializeLogger()
	logger := utils.GetLogger()
	defer logger.Sync()

	if config.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	database.InitDB()
	utils.InitAuthCache()
	utils.InitSessionCache()
	utils.FirebaseInit()

	var photoStore storage.StorageService
	if cld, err := utils.Cloudinary(); err != nil {
		logger.Warn("Cloudinary not configured, photo uploads disabled", zap.Error(err))
	} else {
		photoStore = storage.NewStorageService(cld, logger)
	}

	// repositories.
	userRepo, err := userRepoPkg.NewMongoUserRepo(database.DB())
	if err != nil {
		logger.Fatal("main: failed to initialize user repository", zap.Error(err))
	}
	requestRepo, err := requestRepoPkg.NewMongoRequestRepo(database.DB())
	if err != nil {
		logger.Fatal("main: failed to initialize request repository", zap.Error(err))
	}

	// services.
	var messenger notification.Messenger
	if utils.FCMClient != nil {
		messenger = utils.FCMClient
	}
	notificationService, err := notification.NewDefaultNotificationService(userRepo, requestRepo, messenger, logger)
	if err != nil {
		logger.Fatal("main: failed to initialize notification service", zap.Error(err))
	}

	reminderClient := asynq.NewClient(cron.RedisOpt())
	defer reminderClient.Close()
	reminders := tasks.NewAsynqReminderScheduler(
		reminderClient,
		time.Duration(config.AppConfig.ReminderLeadMinutes)*time.Minute,
		logger,
	)

	userService := user.NewUserService(
		userRepo,
		user.NewRedisAuthSessionStore(utils.GetAuthCacheClient()),
		photoStore,
		config.TokenTTL(),
		logger,
	)
	bookingService := booking.NewBookingService(
		requestRepo,
		userRepo,
		booking.NewRedisSessionStore(utils.GetSessionCacheClient(), utils.BookingSessionTTL),
		notificationService,
		reminders,
		logger,
		config.Location(),
	)

	hub := feed.NewHub(bookingService, requestRepo, time.Duration(config.AppConfig.FeedPollSeconds)*time.Second, logger)
	go hub.Run(ctx)

	reminderWorker := cron.InitReminderWorker(ctx, notificationService, logger)
	utils.StartHealthMonitor(ctx, 30*time.Second,
		[]*redis.Client{utils.GetAuthCacheClient(), utils.GetSessionCacheClient()},
		database.MongoClient)

	// Create the Gin router.
	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(utils.ErrorHandler())
	router.Use(middleware.RequestLogger(gin.DefaultWriter))
	router.Use(middleware.RateLimitMiddleware(config.AppConfig.MaxRequestsPerMin))

	handlerBundle := &handlers.HandlerBundle{
		UserRepo: userRepo,
		Auth:     handlers.NewAuthHandler(userService),
		Account:  handlers.NewAccountHandler(userService),
		Booking:  handlers.NewBookingHandler(bookingService),
		Feed:     handlers.NewFeedHandler(hub),
		Admin:    handlers.NewAdminHandler(bookingService, userService),
	}
	routes.RegisterRoutes(router, handlerBundle)

	port := config.AppConfig.AppPort
	if port == "" {
		port = "8080"
	}
	srv := &http.Server{
		Addr:    "0.0.0.0:" + port,
		Handler: router,
	}
	// Open SSE streams would otherwise hold Shutdown until its timeout.
	srv.RegisterOnShutdown(hub.Close)

	logger.Sugar().Infof("Starting server on %s...", srv.Addr)
	go func() {
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Sugar().Fatalf("main: server failed to start: %v", err)
		}
	}()

	// Wait for an OS signal to gracefully shutdown.
	<-ctx.Done()
	logger.Info("main: server is shutting down...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("main: server forced to shutdown", zap.Error(err))
	}
	reminderWorker.Shutdown()
	if err := database.Disconnect(shutdownCtx); err != nil {
		logger.Warn("main: failed to disconnect MongoDB", zap.Error(err))
	}

	logger.Info("main: server stopped gracefully")
}
