package main // Entry point package

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/labstack/echo/v4"

	"github.com/iliyamo/venue-hall-booking/internal/booking"
	"github.com/iliyamo/venue-hall-booking/internal/config"
	"github.com/iliyamo/venue-hall-booking/internal/database"
	"github.com/iliyamo/venue-hall-booking/internal/handler"
	"github.com/iliyamo/venue-hall-booking/internal/middleware"
	"github.com/iliyamo/venue-hall-booking/internal/queue"
	"github.com/iliyamo/venue-hall-booking/internal/repository"
	"github.com/iliyamo/venue-hall-booking/internal/router"
)

func main() {
	// .env is optional; real deployments set the environment directly.
	_ = godotenv.Load()

	cfg := config.Load()

	db, err := database.Open(cfg.DBUser, cfg.DBPass, cfg.DBHost, cfg.DBPort, cfg.DBName)
	if err != nil {
		log.Fatalf("database: %v", err)
	}
	defer db.Close()

	// Redis is optional infrastructure: when unavailable the API runs
	// without rate limiting and response caching.
	rdb := config.NewRedisClient()
	if rdb == nil {
		log.Printf("redis unavailable; rate limiting and caching disabled")
	}

	// Repositories
	venueRepo := repository.NewVenueRepo(db)
	hallRepo := repository.NewHallRepo(db)
	reservationRepo := repository.NewReservationRepo(db)
	userRepo := repository.NewUserRepo(db)
	tokenRepo := repository.NewTokenRepo(db)

	// Admission controller: serializes bookings per hall and day on top of
	// the store's own transactional overlap check.
	ctl := booking.NewController(hallRepo, reservationRepo, cfg.BookingLockWait)

	// Handlers
	authHandler := handler.NewAuthHandler(cfg, userRepo, tokenRepo)
	publicHandler := handler.NewPublicHandler(venueRepo, hallRepo, ctl)
	bookingHandler := handler.NewBookingHandler(ctl, venueRepo, hallRepo)
	ownerHandler := handler.NewOwnerHandler(venueRepo, hallRepo, reservationRepo)

	e := echo.New()
	e.HideBanner = true

	// Global middleware: token-bucket rate limiting first, then the
	// response cache for public GETs.
	e.Use(middleware.NewTokenBucket(config.LoadRateLimitConfig(), rdb))
	e.Use(middleware.NewRedisCache(config.LoadCacheConfig(), rdb))

	router.RegisterRoutes(e)
	router.RegisterAuth(e, authHandler, cfg.JWTSecret)
	router.RegisterPublic(e, publicHandler)
	router.RegisterCustomer(e, bookingHandler, cfg.JWTSecret)
	router.RegisterOwner(e, ownerHandler, cfg.JWTSecret)

	// Background consumer feeding logs/booking.log from the broker.
	go func() {
		if err := queue.StartBookingConsumer(); err != nil {
			log.Printf("booking consumer stopped: %v", err)
		}
	}()

	addr := ":" + cfg.Port
	go func() {
		log.Printf("listening on %s (env=%s)", addr, cfg.Env)
		if err := e.Start(addr); err != nil {
			log.Printf("server stopped: %v", err)
		}
	}()

	// Block until a termination signal, then drain in-flight requests.
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)
	<-quit

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := e.Shutdown(ctx); err != nil {
		log.Fatalf("shutdown: %v", err)
	}
}
