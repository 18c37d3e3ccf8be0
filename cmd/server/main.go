package main

import (
	"log"

	"github.com/joho/godotenv"
	"github.com/labstack/echo/v4"

	"github.com/iliyamo/lake-fishing-reservation/internal/config"
	"github.com/iliyamo/lake-fishing-reservation/internal/database"
	"github.com/iliyamo/lake-fishing-reservation/internal/handler"
	"github.com/iliyamo/lake-fishing-reservation/internal/middleware"
	"github.com/iliyamo/lake-fishing-reservation/internal/queue"
	"github.com/iliyamo/lake-fishing-reservation/internal/repository"
	"github.com/iliyamo/lake-fishing-reservation/internal/router"
)

func main() {
	// .env is optional; real deployments configure through the environment.
	if err := godotenv.Load(); err != nil {
		log.Printf("no .env file loaded: %v", err)
	}
	cfg := config.Load()

	db, err := database.Open(cfg.DBUser, cfg.DBPass, cfg.DBHost, cfg.DBPort, cfg.DBName)
	if err != nil {
		log.Fatalf("database: %v", err)
	}
	defer db.Close()

	userRepo := repository.NewUserRepo(db)
	tokenRepo := repository.NewTokenRepo(db)
	lakeRepo := repository.NewLakeRepo(db)
	spotRepo := repository.NewSpotRepo(db)
	reservationRepo := repository.NewReservationRepo(db)
	availabilityRepo := repository.NewAvailabilityRepo(db)
	reviewRepo := repository.NewReviewRepo(db)

	authH := handler.NewAuthHandler(cfg, userRepo, tokenRepo)
	lakeH := handler.NewLakeHandler(lakeRepo, spotRepo, reviewRepo, reservationRepo)
	spotH := handler.NewSpotHandler(spotRepo, lakeRepo, reservationRepo)
	reviewH := handler.NewReviewHandler(reviewRepo, lakeRepo)
	reservationH := handler.NewReservationHandler(reservationRepo, spotRepo, lakeRepo)
	availabilityH := handler.NewAvailabilityHandler(availabilityRepo, spotRepo, lakeRepo)
	adminH := handler.NewAdminHandler(userRepo, lakeRepo, spotRepo, reservationRepo, reviewRepo)

	e := echo.New()
	e.HideBanner = true

	// Redis backs the rate limiter and the public availability cache. A nil
	// client disables both rather than failing startup.
	var cacheMW echo.MiddlewareFunc
	if rdb := config.NewRedisClient(); rdb != nil {
		rlCfg := config.LoadRateLimitConfig()
		if rlCfg.Enabled {
			e.Use(middleware.NewTokenBucket(rlCfg, rdb))
		}
		cacheCfg := config.LoadCacheConfig()
		if cacheCfg.Enabled {
			cacheMW = middleware.NewRedisCache(cacheCfg, rdb)
		}
	} else {
		log.Printf("redis unavailable; rate limiting and response cache disabled")
	}

	router.RegisterRoutes(e)
	router.RegisterAuth(e, authH, cfg.JWTSecret)
	router.RegisterPublic(e, lakeH, spotH, reviewH, availabilityH, cacheMW)
	router.RegisterUser(e, reservationH, availabilityH, reviewH, cfg.JWTSecret)
	router.RegisterAdmin(e, lakeH, spotH, reservationH, reviewH, adminH, cfg.JWTSecret)

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
