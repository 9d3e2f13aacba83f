package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"

	"reparaya/config"
	"reparaya/database"
	bookingRepoPkg "reparaya/database/repository/booking"
	contractorRepoPkg "reparaya/database/repository/contractor"
	scheduleRepoPkg "reparaya/database/repository/schedule"
	"reparaya/handlers"
	"reparaya/middleware"
	"reparaya/routes"
	availabilitySvc "reparaya/services/availability"
	contractorSvc "reparaya/services/contractor"
	"reparaya/utils"
)

func main() {
	config.LoadConfig()
	utils.InitializeLogger()
	logger := utils.GetLogger()

	database.InitDB()
	utils.InitCache()
	utils.InitAuthCache()
	utils.StartHealthMonitor(database.MongoClient, utils.GetCacheClient(), utils.GetAuthCacheClient())

	// Create the Gin router.
	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(utils.ErrorHandler())
	router.Use(gin.Logger())
	router.Use(middleware.RateLimitMiddleware())

	// repositories.
	contractorRepo := contractorRepoPkg.NewMongoContractorRepo()
	scheduleRepo := scheduleRepoPkg.NewMongoScheduleRepo()
	bookingRepo := bookingRepoPkg.NewMongoBookingRepo()

	// services.
	contractorService, err := contractorSvc.NewDefaultContractorService(contractorRepo)
	if err != nil {
		logger.Sugar().Fatalf("main: failed to initialize contractor service: %v", err)
	}
	availabilityService, err := availabilitySvc.NewDefaultAvailabilityService(
		scheduleRepo,
		bookingRepo,
		contractorRepo,
		config.AppConfig.MaxRangeWeeks,
	)
	if err != nil {
		logger.Sugar().Fatalf("main: failed to initialize availability service: %v", err)
	}

	contractorHandler := handlers.NewContractorHandler(contractorService)
	availabilityHandler := handlers.NewAvailabilityHandler(availabilityService)

	// Assemble the handler bundle.
	handlerBundle := &handlers.HandlerBundle{
		ContractorRepo: contractorRepo,

		// Contractor account endpoints.
		RegisterContractorHandler:     contractorHandler.RegisterContractorHandler,
		AuthenticateContractorHandler: contractorHandler.AuthenticateContractorHandler,
		GetContractorHandler:          contractorHandler.GetContractorHandler,
		UpdateProfileHandler:          contractorHandler.UpdateProfileHandler,

		// Availability read endpoints.
		GetSlotsHandler:    availabilityHandler.GetSlotsHandler,
		GetScheduleHandler: availabilityHandler.GetScheduleHandler,

		// Schedule management endpoints.
		CreateWeeklyRuleHandler: availabilityHandler.CreateWeeklyRuleHandler,
		UpdateWeeklyRuleHandler: availabilityHandler.UpdateWeeklyRuleHandler,
		DeleteWeeklyRuleHandler: availabilityHandler.DeleteWeeklyRuleHandler,
		CreateExceptionHandler:  availabilityHandler.CreateExceptionHandler,
		DeleteExceptionHandler:  availabilityHandler.DeleteExceptionHandler,
		CreateBlockoutHandler:   availabilityHandler.CreateBlockoutHandler,
		DeleteBlockoutHandler:   availabilityHandler.DeleteBlockoutHandler,
	}

	// Register routes with the assembled handler bundle.
	routes.SetupRoutes(router, handlerBundle)

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
