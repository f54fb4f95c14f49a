// File: stayloft/main.go
package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"stayloft/catalog"
	"stayloft/config"
	"stayloft/cron"
	"stayloft/database"
	blockRepoPkg "stayloft/database/repository/block"
	bookingRepoPkg "stayloft/database/repository/booking"
	customerRepoPkg "stayloft/database/repository/customer"
	"stayloft/handlers"
	"stayloft/middleware"
	"stayloft/models"
	"stayloft/routes"
	hostSvc "stayloft/services/host"
	"stayloft/services/payment"
	"stayloft/services/reservation"
	"stayloft/utils"

	"github.com/gin-gonic/gin"
)

func main() {
	config.LoadConfig()
	logger := utils.GetLogger()

	database.InitDB()
	utils.InitAuthCache()

	cat, err := catalog.Load(config.AppConfig.CatalogPath)
	if err != nil {
		logger.Sugar().Fatalf("main: failed to load catalog: %v", err)
	}

	// Create the Gin router.
	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(utils.ErrorHandler())
	router.Use(gin.Logger())
	router.Use(middleware.RateLimitMiddleware())

	// repositories.
	bookingRepo := bookingRepoPkg.NewMongoBookingRepo()
	blockRepo := blockRepoPkg.NewMongoBlockRepo()
	customerRepo := customerRepoPkg.NewMongoCustomerRepo()

	// services.
	engine := &reservation.Engine{
		Listings:  cat,
		Hosts:     cat,
		Bookings:  bookingRepo,
		Blocks:    blockRepo,
		Customers: customerRepo,
		Gateway:   payment.NewStripeGateway(),
		Holds:     reservation.NewHoldStore(),
		PlatformCreds: models.PaymentCredentials{
			SecretKey:     config.AppConfig.StripeKey,
			SigningSecret: config.AppConfig.StripeSigningSecret,
		},
		URLs: reservation.CheckoutURLs{
			Success: config.AppConfig.CheckoutSuccessURL,
			Cancel:  config.AppConfig.CheckoutCancelURL,
		},
	}

	dashboardService := &hostSvc.DefaultDashboardService{
		Hosts:     cat,
		Bookings:  bookingRepo,
		Customers: customerRepo,
		Blocks:    blockRepo,
	}

	holdTTL := time.Duration(config.AppConfig.HoldTTLMinutes) * time.Minute
	reservationHandler := handlers.NewReservationHandler(engine, holdTTL, logger)
	webhookHandler := handlers.NewWebhookHandler(engine, logger)
	dashboardHandler := handlers.NewDashboardHandler(dashboardService)

	// Assemble the handler bundle.
	handlerBundle := &handlers.HandlerBundle{
		Hosts:     cat,
		AuthCache: utils.GetAuthCacheClient(),

		// Public booking-flow endpoints.
		CheckAvailability: reservationHandler.CheckAvailability,
		CreateHold:        reservationHandler.CreateHold,
		ReleaseHold:       reservationHandler.ReleaseHold,
		Checkout:          reservationHandler.Checkout,
		PaymentWebhook:    webhookHandler.PaymentWebhook,
		BlockedDates:      reservationHandler.BlockedDates,
		BookingSession:    reservationHandler.BookingSession,

		// Host dashboard endpoints.
		HostLogin:      dashboardHandler.Login,
		ListBookings:   dashboardHandler.ListBookings,
		ListCustomers:  dashboardHandler.ListCustomers,
		DeleteCustomer: dashboardHandler.DeleteCustomer,
		ListBlocks:     dashboardHandler.ListBlocks,
		CreateBlock:    dashboardHandler.CreateBlock,
		DeleteBlock:    dashboardHandler.DeleteBlock,
	}

	// Register routes with the assembled handler bundle.
	routes.RegisterRoutes(router, handlerBundle)

	// Background hold reaper and health monitor.
	stopReaper := cron.InitHoldReaper(engine, logger)
	utils.StartHealthMonitor(utils.GetAuthCacheClient(), database.MongoClient)

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

	stopReaper()

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		logger.Sugar().Fatalf("main: server forced to shutdown: %v", err)
	}

	logger.Sugar().Info("main: server stopped gracefully")
}
