package main // Entry point package

import (
	"context"
	"log"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/stayhub/booking-api/internal/config"
	"github.com/stayhub/booking-api/internal/database"
	"github.com/stayhub/booking-api/internal/handler"
	"github.com/stayhub/booking-api/internal/middleware"
	"github.com/stayhub/booking-api/internal/queue"
	"github.com/stayhub/booking-api/internal/repository"
	"github.com/stayhub/booking-api/internal/router"
)

func main() {
	cfg := config.Load() // fatal on missing required env vars, AUTH_SECRET included

	db, err := database.Open(cfg)
	if err != nil {
		log.Fatalf("open database: %v", err)
	}
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()
	if err := database.EnsureSchema(ctx, db); err != nil {
		log.Fatalf("ensure schema: %v", err)
	}

	hostRepo := repository.NewHostRepo(db)
	res := router.Resources{
		Bookings:   handler.NewBookingResource(repository.NewBookingRepo(db), queue.PublishResourceEvent),
		Hosts:      handler.NewHostResource(hostRepo, cfg.BcryptCost, queue.PublishResourceEvent),
		Properties: handler.NewPropertyResource(repository.NewPropertyRepo(db), queue.PublishResourceEvent),
		Reviews:    handler.NewReviewResource(repository.NewReviewRepo(db), queue.PublishResourceEvent),
		Login:      handler.NewLoginHandler(cfg.AuthSecret, hostRepo),
	}

	// Redis is optional: a nil client degrades the read cache to pass-through.
	cache := middleware.ReadCache(config.NewRedisClient(), 30*time.Second)

	go queue.StartAuditConsumer()

	e := echo.New()
	router.Register(e, cfg.AuthSecret, cache, res)

	addr := ":" + cfg.Port
	log.Printf("listening on %s (env=%s)", addr, cfg.Env)
	if err := e.Start(addr); err != nil {
		log.Fatal(err)
	}
}
