package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/redis/go-redis/v9"

	"github.com/codecompiler69/SmartAppointmentBooking/pkg/db"
	"github.com/codecompiler69/SmartAppointmentBooking/pkg/logging"
	"github.com/codecompiler69/SmartAppointmentBooking/pkg/tokens"
	"github.com/codecompiler69/SmartAppointmentBooking/services/auth/internal/client"
	"github.com/codecompiler69/SmartAppointmentBooking/services/auth/internal/config"
	"github.com/codecompiler69/SmartAppointmentBooking/services/auth/internal/events"
	"github.com/codecompiler69/SmartAppointmentBooking/services/auth/internal/httpserver"
	"github.com/codecompiler69/SmartAppointmentBooking/services/auth/internal/rate"
	"github.com/codecompiler69/SmartAppointmentBooking/services/auth/internal/repo"
	"github.com/codecompiler69/SmartAppointmentBooking/services/auth/internal/service"
)

func main() {
	cfg := config.Load()
	logger := logging.New(cfg.LogLevel)

	e := echo.New()
	e.HideBanner = true
	e.Server.ReadTimeout = 10 * time.Second
	e.Server.WriteTimeout = 15 * time.Second
	e.Server.ReadHeaderTimeout = 3 * time.Second

	initCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	gormDB, err := db.Open(initCtx, cfg.DatabaseURL)
	cancel()
	if err != nil {
		log.Fatalf("db init: %v", err)
	}

	gormRepo := repo.GormRepo{DB: gormDB}
	if err := gormRepo.Migrate(context.Background()); err != nil {
		log.Fatalf("migrate: %v", err)
	}

	signer := tokens.NewSigner(cfg.JWTSecret, cfg.AccessTTL, cfg.RefreshTTL)
	producer := events.NewProducer(cfg.KafkaBrokers, cfg.KafkaTopic)
	defer producer.Close()

	svc := service.New(gormRepo, signer, client.New(cfg.UserServiceURL), producer)

	var limiter rate.Limiter
	window := time.Duration(cfg.RateWindowSecs) * time.Second
	if cfg.RedisAddr != "" {
		limiter = rate.NewRedis(redis.NewClient(&redis.Options{Addr: cfg.RedisAddr}), cfg.RateLimit, window)
	} else {
		limiter = rate.NewMemory(cfg.RateLimit, window)
	}

	httpserver.Register(e, &httpserver.Deps{
		AuthHandler: &httpserver.AuthHTTP{Svc: svc},
		Signer:      signer,
		Limiter:     limiter,
		Logger:      logger,
	})

	go func() {
		if err := e.Start(cfg.ListenAddr); err != nil && err != http.ErrServerClosed {
			log.Fatalf("start: %v", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()
	if err := e.Shutdown(shutdownCtx); err != nil {
		log.Printf("shutdown: %v", err)
	}
}
