package main // Entry point package

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/labstack/echo/v4"
	echomw "github.com/labstack/echo/v4/middleware"
	"github.com/rs/zerolog"

	"github.com/hallbook/hallbook-api/internal/config"
	"github.com/hallbook/hallbook-api/internal/database"
	"github.com/hallbook/hallbook-api/internal/handler"
	"github.com/hallbook/hallbook-api/internal/logger"
	"github.com/hallbook/hallbook-api/internal/middleware"
	"github.com/hallbook/hallbook-api/internal/queue"
	"github.com/hallbook/hallbook-api/internal/repository"
	"github.com/hallbook/hallbook-api/internal/router"
	"github.com/hallbook/hallbook-api/internal/service"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		bootLog := zerolog.New(os.Stderr)
		bootLog.Fatal().Err(err).Msg("load config")
	}
	log := logger.New(cfg.LogLevel, cfg.Env)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := run(ctx, cfg, log); err != nil {
		log.Fatal().Err(err).Msg("server stopped")
	}
}

func run(ctx context.Context, cfg config.Config, log zerolog.Logger) error {
	db, err := database.Open(ctx, database.Options{
		User: cfg.DBUser, Pass: cfg.DBPass, Host: cfg.DBHost, Port: cfg.DBPort, Name: cfg.DBName,
	})
	if err != nil {
		return err
	}
	defer db.Close()

	if err := database.Migrate(ctx, db); err != nil {
		return err
	}

	rdb := config.NewRedisClient(ctx, cfg.Redis)
	if rdb == nil {
		log.Warn().Str("addr", cfg.Redis.Address()).Msg("redis unreachable, cache and rate limit disabled")
	} else {
		defer rdb.Close()
	}

	var events service.EventPublisher = service.NopPublisher{}
	if cfg.EventsEnabled {
		events = service.NewAMQPPublisher(cfg.RabbitURL, log)
	}
	if cfg.EventsConsumerEnabled {
		consumer := queue.NewConsumer(cfg.RabbitURL, cfg.EventsLogDir, log)
		go func() {
			if err := consumer.Run(ctx); err != nil && !errors.Is(err, context.Canceled) {
				log.Error().Err(err).Msg("event consumer stopped")
			}
		}()
	}

	users := repository.NewUserRepo(db)
	creds, err := service.NewCredentialService(users, cfg.BcryptCost, log)
	if err != nil {
		return err
	}

	base := handler.Base{Log: log, Timeout: cfg.RequestTimeout}
	handlers := router.Handlers{
		Auth:          handler.NewAuthHandler(creds, base),
		Halls:         handler.NewHallHandler(repository.NewHallRepo(db), base),
		Bookings:      handler.NewBookingHandler(repository.NewBookingRepo(db), events, base),
		Payments:      handler.NewPaymentHandler(repository.NewPaymentRepo(db), events, base),
		Reviews:       handler.NewReviewHandler(repository.NewReviewRepo(db), base),
		Notifications: handler.NewNotificationHandler(repository.NewNotificationRepo(db), base),
		Users:         handler.NewUserHandler(users, repository.NewPreferenceRepo(db), base),
		Ready:         handler.Ready(db),
	}
	mw := router.Middleware{
		RateLimit:  middleware.NewTokenBucket(cfg.RateLimit, rdb, log),
		Cache:      middleware.NewRedisCache(cfg.Cache, rdb, log),
		Invalidate: middleware.NewCacheInvalidator(cfg.Cache, rdb, log),
	}

	extractIP, err := middleware.IPExtractor(cfg.TrustedProxies)
	if err != nil {
		return err
	}

	e := echo.New()
	e.IPExtractor = extractIP
	e.HideBanner = true
	e.HidePort = true
	e.Validator = handler.NewValidator()
	e.Use(echomw.Recover())
	e.Use(echomw.RequestID())
	e.Use(middleware.RequestLogger(log))
	router.RegisterRoutes(e, handlers, mw)

	errc := make(chan error, 1)
	go func() {
		log.Info().Str("addr", cfg.Addr()).Str("env", cfg.Env).Msg("listening")
		if err := e.Start(cfg.Addr()); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errc <- err
		}
		close(errc)
	}()

	select {
	case err := <-errc:
		return err
	case <-ctx.Done():
	}

	log.Info().Msg("shutting down")
	sctx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
	defer cancel()
	return e.Shutdown(sctx)
}
