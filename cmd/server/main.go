package main

import (
	"log"

	"github.com/joho/godotenv"
	"github.com/labstack/echo/v4"
	echomw "github.com/labstack/echo/v4/middleware"

	"github.com/iliyamo/theatre-reservation/internal/config"
	"github.com/iliyamo/theatre-reservation/internal/database"
	"github.com/iliyamo/theatre-reservation/internal/handler"
	appmw "github.com/iliyamo/theatre-reservation/internal/middleware"
	"github.com/iliyamo/theatre-reservation/internal/queue"
	"github.com/iliyamo/theatre-reservation/internal/repository"
	"github.com/iliyamo/theatre-reservation/internal/router"
)

func main() {
	// .env is a development convenience; real deployments set env vars.
	_ = godotenv.Load()

	cfg := config.Load()

	db, err := database.Open(cfg)
	if err != nil {
		log.Fatalf("database: %v", err)
	}
	defer db.Close()

	// Redis backs the rate limiter and response cache; nil means both run
	// as pass-throughs.
	rdb := config.NewRedisClient()
	if rdb == nil {
		log.Println("redis unavailable; caching and rate limiting disabled")
	}

	userRepo := repository.NewUserRepo(db)
	tokenRepo := repository.NewTokenRepo(db)
	theatreRepo := repository.NewTheatreRepo(db)
	screenRepo := repository.NewScreenRepo(db)
	seatRepo := repository.NewSeatRepo(db)
	showingRepo := repository.NewShowingRepo(db)
	seatMapRepo := repository.NewSeatMapRepo(db)
	reservationRepo := repository.NewReservationRepo(db)

	authHandler := handler.NewAuthHandler(cfg, userRepo, tokenRepo)
	adminHandler := handler.NewAdminHandler(theatreRepo, screenRepo, seatRepo, showingRepo, seatMapRepo)
	publicHandler := &handler.PublicHandler{
		TheatreRepo: theatreRepo,
		ScreenRepo:  screenRepo,
		SeatRepo:    seatRepo,
		ShowingRepo: showingRepo,
		SeatMapRepo: seatMapRepo,
	}
	customerHandler := handler.NewCustomerHandler(cfg, showingRepo, seatMapRepo, reservationRepo)

	e := echo.New()
	e.HideBanner = true
	e.Use(echomw.Recover())
	e.Use(echomw.Logger())

	rateLimit := appmw.NewTokenBucket(config.LoadRateLimitConfig(), rdb)
	cache := appmw.NewRedisCache(config.LoadCacheConfig(), rdb)

	router.RegisterRoutes(e)
	router.RegisterAuth(e, authHandler, cfg.JWTSecret)
	router.RegisterAdmin(e, adminHandler, cfg.JWTSecret)
	router.RegisterPublic(e, publicHandler, rateLimit, cache)
	router.RegisterCustomer(e, customerHandler, cfg.JWTSecret, rateLimit)

	// Consume confirmation events in the background; the loop reconnects on
	// broker failures and never brings the server down.
	go func() {
		if err := queue.StartReservationConsumer(); err != nil {
			log.Printf("reservation consumer stopped: %v", err)
		}
	}()

	addr := ":" + cfg.Port
	log.Printf("listening on %s (env=%s)", addr, cfg.Env)
	if err := e.Start(addr); err != nil {
		log.Fatal(err)
	}
}
