// File: coachly/main.go
package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"coachly/config"
	"coachly/cron"
	"coachly/database"
	bookingRepo "coachly/database/repository/booking"
	intervalRepo "coachly/database/repository/interval"
	"coachly/handlers"
	"coachly/middleware"
	"coachly/routes"
	"coachly/services/availability"
	"coachly/services/scheduling"
	"coachly/services/tasks"
	"coachly/services/workflow"
	"coachly/utils"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/go-redis/redis/v8"
)

func main() {
	config.LoadConfig()
	logger := utils.GetLogger()

	database.InitDB()
	utils.InitAuthCache()

	// Create the Gin router.
	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(utils.ErrorHandler())
	router.Use(gin.Logger())
	router.Use(middleware.RateLimitMiddleware())
	router.Use(cors.Default())

	// repositories.
	intervals := intervalRepo.NewMongoIntervalRepo()
	bookings := bookingRepo.NewMongoBookingRepo()

	// services.
	engine := &scheduling.DefaultSchedulingEngine{
		Repo:        intervals,
		BookingRepo: bookings,
	}

	bookingWorkflow := &workflow.DefaultBookingWorkflow{
		Engine:       engine,
		Intervals:    intervals,
		Bookings:     bookings,
		Tasks:        tasks.NewAsynqScheduler(),
		Clock:        utils.SystemClock{},
		MaxRetries:   config.AppConfig.BookingMaxRetries,
		RetryBackoff: time.Duration(config.AppConfig.BookingRetryBackoffMs) * time.Millisecond,
	}

	availabilityService := &availability.DefaultAvailabilityService{
		Repo: intervals,
	}

	// handlers.
	availabilityHandler := handlers.NewAvailabilityHandler(availabilityService)
	bookingHandler := handlers.NewBookingHandler(bookingWorkflow)

	routes.RegisterAvailabilityRoutes(router, availabilityHandler)
	routes.RegisterBookingRoutes(router, bookingHandler)
	routes.RegisterHealthRoute(router)

	// Background completion worker and health monitor.
	cron.InitCompletionWorker(bookings, intervals)
	utils.StartHealthMonitor([]*redis.Client{utils.GetAuthCacheClient()}, database.MongoClient)

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

	// Graceful shutdown on SIGINT/SIGTERM.
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	logger.Info("main: shutting down server")

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		logger.Sugar().Fatalf("main: forced shutdown: %v", err)
	}
	logger.Info("main: server exited")
}
