// File: servitech/main.go
package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"servitech/config"
	"servitech/cron"
	"servitech/database"
	catalogRepoPkg "servitech/database/repository/catalog"
	notificationRepoPkg "servitech/database/repository/notification"
	paymentRepoPkg "servitech/database/repository/payment"
	progressRepoPkg "servitech/database/repository/progress"
	reportRepoPkg "servitech/database/repository/report"
	requestRepoPkg "servitech/database/repository/request"
	"servitech/handlers"
	"servitech/middleware"
	"servitech/routes"
	"servitech/services/dispatch"
	"servitech/services/notify"
	"servitech/session"
	"servitech/utils"

	"github.com/gin-gonic/gin"
	"github.com/go-redis/redis/v8"
	"github.com/hibiken/asynq"
)

func main() {
	config.LoadConfig()
	logger := utils.GetLogger()

	database.InitDB()
	utils.InitSessionCache()
	utils.StartHealthMonitor([]*redis.Client{utils.GetSessionCacheClient()}, database.MongoClient)

	// Create the Gin router.
	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(utils.ErrorHandler())
	router.Use(gin.Logger())
	router.Use(middleware.RateLimitMiddleware())

	// repositories.
	requestRepo := requestRepoPkg.NewMongoRequestRepo()
	progressRepo := progressRepoPkg.NewMongoProgressRepo()
	paymentRepo := paymentRepoPkg.NewMongoPaymentRepo()
	notificationRepo := notificationRepoPkg.NewMongoNotificationRepo()
	catalogRepo := catalogRepoPkg.NewMongoCatalogRepo()
	reportRepo := reportRepoPkg.NewMongoReportRepo()

	// services.
	queueClient := asynq.NewClient(asynq.RedisClientOpt{
		Addr:     config.AppConfig.RedisAddr,
		Password: config.AppConfig.RedisPassword,
		DB:       config.AppConfig.RedisQueueDB,
	})
	defer queueClient.Close()

	notificationService := &notify.DefaultNotificationService{
		Repo:  notificationRepo,
		Queue: queueClient,
	}

	dispatchService := &dispatch.DefaultDispatchService{
		Requests:        requestRepo,
		Events:          progressRepo,
		Payments:        paymentRepo,
		Catalog:         catalogRepo,
		Reports:         reportRepo,
		Notifier:        notificationService,
		DefaultCapacity: config.AppConfig.DefaultTechnicianCapacity,
	}

	sessionDirectory := session.NewRedisDirectory(utils.GetSessionCacheClient(), 24*time.Hour)

	// Background delivery worker.
	cron.InitDeliveryWorker(notificationRepo)

	// Assemble the handler bundle.
	handlerBundle := &routes.HandlerBundle{
		Requests:      handlers.NewRequestHandler(dispatchService),
		Technicians:   handlers.NewTechnicianHandler(dispatchService),
		Notifications: handlers.NewNotificationHandler(notificationService),
		Catalog:       handlers.NewCatalogHandler(dispatchService),
		Sessions:      handlers.NewSessionHandler(sessionDirectory),
		Resolver:      sessionDirectory,
	}

	// Register routes with the assembled handler bundle.
	routes.RegisterRoutes(router, handlerBundle)

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
