package main // Entry point package

import (
	"log"

	"github.com/joho/godotenv"
	"github.com/labstack/echo/v4"
	echomw "github.com/labstack/echo/v4/middleware"

	"github.com/eventsense/eventsense-api/internal/config"
	"github.com/eventsense/eventsense-api/internal/database"
	"github.com/eventsense/eventsense-api/internal/handler"
	"github.com/eventsense/eventsense-api/internal/mailer"
	"github.com/eventsense/eventsense-api/internal/middleware"
	"github.com/eventsense/eventsense-api/internal/queue"
	"github.com/eventsense/eventsense-api/internal/repository"
	"github.com/eventsense/eventsense-api/internal/router"
)

func main() {
	// .env is optional; real deployments set the environment directly.
	_ = godotenv.Load()
	cfg := config.Load()

	db, err := database.Open(cfg.DBUser, cfg.DBPass, cfg.DBHost, cfg.DBPort, cfg.DBName)
	if err != nil {
		log.Fatalf("database: %v", err)
	}
	defer func() { _ = db.Close() }()

	// Redis backs the rate limiter and the response cache; both degrade to
	// no-ops when it is unreachable.
	rdb := config.NewRedisClient()

	// Background notification consumer: broker -> email. Runs for the life
	// of the process, reconnecting on failure.
	m := mailer.New(cfg.SMTPHost, cfg.SMTPPort, cfg.SMTPUser, cfg.SMTPPass,
		cfg.FromName, cfg.FromEmail, cfg.ClientURL)
	go queue.StartNotificationConsumer(cfg.AMQPURL, m)

	accounts := repository.NewAccountRepo(db)
	tokens := repository.NewTokenRepo(db)
	events := repository.NewEventRepo(db)
	bookings := repository.NewBookingRepo(db)
	reviews := repository.NewReviewRepo(db)
	analytics := repository.NewAnalyticsRepo(db)

	authH := handler.NewAuthHandler(cfg, accounts, tokens)
	eventH := handler.NewEventHandler(cfg.Env, events, accounts)
	bookingH := handler.NewBookingHandler(cfg.Env, bookings, events, accounts, cfg.AMQPURL)
	reviewH := handler.NewReviewHandler(cfg.Env, reviews, events, accounts)
	adminH := handler.NewAdminHandler(cfg, events, accounts, analytics)
	organizerH := handler.NewOrganizerHandler(cfg.Env, analytics)

	e := echo.New()
	e.HideBanner = true
	e.Use(echomw.Logger())
	e.Use(echomw.Recover())
	e.Use(middleware.NewTokenBucket(config.LoadRateLimitConfig(), rdb))

	cache := middleware.NewRedisCache(config.LoadCacheConfig(), rdb)

	router.RegisterHealth(e, db)
	router.RegisterAuth(e, authH, cfg.JWTSecret)
	router.RegisterEvents(e, eventH, cfg.JWTSecret, cache)
	router.RegisterBookings(e, bookingH, cfg.JWTSecret)
	router.RegisterReviews(e, reviewH, cfg.JWTSecret, cache)
	router.RegisterAdmin(e, adminH, cfg.JWTSecret)
	router.RegisterOrganizer(e, organizerH, cfg.JWTSecret)

	addr := ":" + cfg.Port
	log.Printf("listening on %s (env=%s)", addr, cfg.Env)
	if err := e.Start(addr); err != nil {
		log.Fatal(err)
	}
}
