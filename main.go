package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"clinicbook/config"
	"clinicbook/database"
	appointmentRepo "clinicbook/database/repository/appointment"
	"clinicbook/handlers"
	"clinicbook/middleware"
	"clinicbook/routes"
	"clinicbook/services/booking"
	"clinicbook/utils"

	"github.com/gin-gonic/gin"
)

func main() {
	config.LoadConfig()
	config.LoadClinicConfig()
	logger := utils.GetLogger()

	database.InitDB()
	utils.InitCache()

	// Pick the snapshot backend: Mongo when configured, JSON file otherwise.
	var backend appointmentRepo.Backend
	if database.MongoClient != nil {
		backend = appointmentRepo.NewMongoBackend(database.MongoClient, config.AppConfig.DatabaseName)
	} else {
		backend = appointmentRepo.NewJSONBackend(config.AppConfig.AppointmentsFile)
	}

	store, err := appointmentRepo.NewStore(context.Background(), backend)
	if err != nil {
		logger.Sugar().Fatalf("main: failed to load appointment store: %v", err)
	}

	calendar := booking.NewCalendar(config.AppConfig, config.Clinic)
	durations := booking.NewDurationResolver(config.Clinic, config.AppConfig.SlotMinutes)
	registry := booking.NewRegistry(config.Clinic)
	slotCache := booking.NewSlotCache(utils.GetCacheClient(),
		time.Duration(config.AppConfig.SlotCacheTTL)*time.Second)

	engine := booking.NewDefaultEngine(calendar, durations, registry, store, slotCache, booking.Policy{
		MinAdvanceHours:   config.AppConfig.MinAdvanceHours,
		MaxAdvanceDays:    config.AppConfig.MaxAdvanceDays,
		CancellationHours: config.AppConfig.CancellationHours,
	})

	// Create the Gin router.
	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(utils.ErrorHandler())
	router.Use(gin.Logger())
	router.Use(middleware.RateLimitMiddleware())

	appointmentHandler := handlers.NewAppointmentHandler(engine, logger)
	routes.RegisterRoutes(router, appointmentHandler)

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
