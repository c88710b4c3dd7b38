package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"

	"orders-ms/internal/orders/adapters"
	"orders-ms/internal/orders/application"
	"orders-ms/internal/orders/infrastructure"
	"orders-ms/pkg/config"
	"orders-ms/pkg/db"
	"orders-ms/pkg/events"
	"orders-ms/pkg/logger"
	"orders-ms/pkg/metrics"
	"orders-ms/pkg/middleware"
	"orders-ms/pkg/rabbitmq"
)

func main() {
	// Load configuration
	cfg := config.Load()

	// Initialize logger
	log := logger.New(cfg.ServiceName, cfg.LogLevel, cfg.LogFormat)
	defer log.Sync()

	log.Info("starting orders service")

	// Connect to database
	dbConn, err := db.NewConnection(cfg.DSN(), cfg.DBTimeout)
	if err != nil {
		log.Fatal("failed to connect to database: " + err.Error())
	}
	defer db.Close(dbConn)
	log.Info("connected to database")

	// Initialize repository and run migrations
	repo := adapters.NewPostgresOrderRepository(dbConn)
	if err := repo.Migrate(); err != nil {
		log.Fatal("failed to migrate database: " + err.Error())
	}

	// Connect to RabbitMQ. The bus is the primary transport, so unlike
	// the database this connection cannot be degraded gracefully.
	rabbitConn, err := rabbitmq.NewConnection(cfg.RabbitMQURL, log)
	if err != nil {
		log.Fatal("failed to connect to RabbitMQ: " + err.Error())
	}
	defer rabbitConn.Close()

	// Requester for catalog and payment round trips
	requester, err := rabbitmq.NewRequester(rabbitConn, log)
	if err != nil {
		log.Fatal("failed to create bus requester: " + err.Error())
	}

	catalog := adapters.NewBusCatalogClient(requester, cfg.BusTimeout)
	payment := adapters.NewBusPaymentClient(requester, cfg.BusTimeout)

	// Publisher for order lifecycle events
	pub, err := rabbitmq.NewPublisher(rabbitConn, events.ExchangeOrders, log)
	if err != nil {
		log.Fatal("failed to create event publisher: " + err.Error())
	}
	publisher := adapters.NewRabbitMQPublisher(pub, log)

	// Initialize use case
	useCase := application.NewOrderUseCase(repo, catalog, payment, publisher, cfg.Currency, log)

	// Create context for graceful shutdown
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Start bus server with the order operations
	busServer := rabbitmq.NewServer(rabbitConn, cfg.HandlerTimeout, log)
	infrastructure.NewBusHandler(useCase, log).Register(busServer)
	if err := busServer.Start(ctx); err != nil {
		log.Fatal("failed to start bus server: " + err.Error())
	}

	// Start payment.succeeded consumer
	consumer, err := adapters.NewPaymentSucceededConsumer(rabbitConn, useCase, log)
	if err != nil {
		log.Fatal("failed to create payment consumer: " + err.Error())
	}
	if err := consumer.Start(ctx); err != nil {
		log.Fatal("failed to start payment consumer: " + err.Error())
	}

	// Start HTTP ops server
	httpHandler := infrastructure.NewHTTPHandler(useCase)
	gin.SetMode(gin.ReleaseMode)
	router := gin.New()
	router.Use(middleware.TraceID())
	router.Use(middleware.RequestLogger(log))
	router.Use(middleware.Metrics())
	router.Use(middleware.ErrorHandler(log))
	router.Use(middleware.CORS())

	api := router.Group("/api/v1")
	httpHandler.RegisterRoutes(api)

	// Health check and metrics
	router.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})
	router.GET("/metrics", gin.WrapH(metrics.Handler()))

	httpServer := &http.Server{
		Addr:         ":" + cfg.HTTPPort,
		Handler:      router,
		ReadTimeout:  cfg.HTTPTimeout,
		WriteTimeout: cfg.HTTPTimeout,
	}

	go func() {
		log.Info("HTTP server listening on :" + cfg.HTTPPort)
		if err := httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal("HTTP server error: " + err.Error())
		}
	}()

	// Wait for interrupt signal
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info("shutting down...")

	// Graceful shutdown: stop accepting work, then close transports
	cancel()

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()

	if err := httpServer.Shutdown(shutdownCtx); err != nil {
		log.Error("HTTP shutdown error: " + err.Error())
	}

	log.Info("orders service stopped")
}
