package main

import (
	"log"

	"github.com/joho/godotenv"
	"github.com/labstack/echo/v4"

	"github.com/iliyamo/festival-ticketing/internal/config"
	"github.com/iliyamo/festival-ticketing/internal/database"
	"github.com/iliyamo/festival-ticketing/internal/handler"
	"github.com/iliyamo/festival-ticketing/internal/middleware"
	"github.com/iliyamo/festival-ticketing/internal/queue"
	"github.com/iliyamo/festival-ticketing/internal/repository"
	"github.com/iliyamo/festival-ticketing/internal/router"
)

func main() {
	// .env is optional; deployments normally set variables in the environment.
	_ = godotenv.Load()

	cfg := config.Load()

	db, err := database.Open(database.Config{
		User:            cfg.DBUser,
		Pass:            cfg.DBPass,
		Host:            cfg.DBHost,
		Port:            cfg.DBPort,
		Name:            cfg.DBName,
		MaxOpenConns:    cfg.DBMaxOpenConns,
		MaxIdleConns:    cfg.DBMaxIdleConns,
		ConnMaxLifetime: cfg.DBConnMaxLifetime,
	})
	if err != nil {
		log.Fatalf("database: %v", err)
	}

	userRepo := repository.NewUserRepo(db)
	tokenRepo := repository.NewTokenRepo(db)
	eventRepo := repository.NewEventRepo(db)
	seatRepo := repository.NewSeatRepo(db)
	ticketRepo := repository.NewTicketRepo(db)
	reviewRepo := repository.NewReviewRepo(db)
	deliveryRepo := repository.NewDeliveryRepo(db)
	catalogRepo := repository.NewCatalogRepo(db)
	bookingRepo := repository.NewBookingRepo(db)

	authHandler := handler.NewAuthHandler(cfg, userRepo, tokenRepo)
	organizerHandler := handler.NewOrganizerHandler(eventRepo, seatRepo, ticketRepo, catalogRepo)
	attendeeHandler := handler.NewAttendeeHandler(eventRepo, seatRepo, ticketRepo, reviewRepo, deliveryRepo, bookingRepo)
	publicHandler := &handler.PublicHandler{
		EventRepo:    eventRepo,
		SeatRepo:     seatRepo,
		ReviewRepo:   reviewRepo,
		DeliveryRepo: deliveryRepo,
		CatalogRepo:  catalogRepo,
	}

	e := echo.New()

	// Redis-backed middlewares degrade to no-ops when the client is nil.
	rdb := config.NewRedisClient()
	e.Use(middleware.NewTokenBucket(config.LoadRateLimitConfig(), rdb))
	e.Use(middleware.NewRedisCache(config.LoadCacheConfig(), rdb))

	router.RegisterRoutes(e)
	router.RegisterAuth(e, authHandler, cfg.JWTSecret)
	router.RegisterPublic(e, publicHandler)
	router.RegisterOrganizer(e, organizerHandler, cfg.JWTSecret)
	router.RegisterAttendee(e, attendeeHandler, cfg.JWTSecret)

	// Background consumer appending notification messages to logs/notifications.log.
	go func() {
		if err := queue.StartNotificationConsumer(); err != nil {
			log.Printf("notification consumer stopped: %v", err)
		}
	}()

	addr := ":" + cfg.Port
	log.Printf("listening on %s (env=%s)", addr, cfg.Env)

	if err := e.Start(addr); err != nil {
		log.Fatal(err)
	}
}
