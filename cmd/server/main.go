package main // Entry point package

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/labstack/echo/v4"
	echomw "github.com/labstack/echo/v4/middleware"

	"github.com/iliyamo/mental-wellness-api/internal/config"
	"github.com/iliyamo/mental-wellness-api/internal/database"
	"github.com/iliyamo/mental-wellness-api/internal/docs"
	"github.com/iliyamo/mental-wellness-api/internal/handler"
	"github.com/iliyamo/mental-wellness-api/internal/logging"
	"github.com/iliyamo/mental-wellness-api/internal/middleware"
	"github.com/iliyamo/mental-wellness-api/internal/queue"
	"github.com/iliyamo/mental-wellness-api/internal/repository"
	"github.com/iliyamo/mental-wellness-api/internal/router"
	"github.com/iliyamo/mental-wellness-api/internal/service"
)

func main() {
	cfg := config.Load() // Load environment config
	logger := logging.New(cfg.LogLevel, cfg.LogFormat, os.Stdout)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	db, dialect, err := database.Open(ctx, cfg.DB)
	if err != nil {
		log.Fatalf("open store: %v", err)
	}
	defer db.Close()
	logger.Info(ctx, "store ready", "driver", dialect.Name)

	// Optional Redis: shared rate-limit buckets and the response cache
	rdb := config.NewRedisClient(ctx, config.LoadRedisConfig())
	if rdb != nil {
		defer rdb.Close()
	} else {
		logger.Info(ctx, "redis not configured; using in-process rate limiting, cache off")
	}

	// Entry events: no-op unless enabled
	evCfg := config.LoadEventsConfig()
	var events queue.Publisher = queue.NopPublisher{}
	var async *queue.AsyncPublisher
	if evCfg.Enabled {
		async = queue.NewAsyncPublisher(queue.NewAMQPPublisher(evCfg.URL, evCfg.Queue, logger), logger, 5*time.Second)
		events = async
		if evCfg.ConsumerEnabled {
			consumer := queue.NewActivityConsumer(evCfg.URL, evCfg.Queue, evCfg.ActivityLogPath, logger)
			go func() {
				if err := consumer.Run(ctx); err != nil && !errors.Is(err, context.Canceled) {
					logger.Error(ctx, "activity consumer stopped", "err", err)
				}
			}()
		}
	}

	users := repository.NewUserRepo(db, dialect)
	moods := repository.NewMoodRepo(db, dialect)
	journals := repository.NewJournalRepo(db, dialect)

	analytics := service.NewAnalytics(moods, journals)
	userSvc := service.NewUserService(users, logger)
	moodSvc := service.NewMoodService(users, moods, analytics, events, logger)
	journalSvc := service.NewJournalService(users, journals, analytics, events, logger)
	resolver := service.NewIdentityResolver(users)

	e := echo.New() // Create Echo instance
	e.HideBanner = true
	e.Validator = handler.NewRequestValidator()
	e.HTTPErrorHandler = handler.ErrorHandler(logger)

	e.Use(echomw.RequestID())
	if cfg.MetricsEnabled {
		e.Use(middleware.Metrics())
	}
	e.Use(middleware.RequestLogger(logger))
	e.Use(echomw.RecoverWithConfig(echomw.RecoverConfig{DisableErrorHandler: true}))

	moodH := handler.NewMoodHandler(moodSvc)
	journalH := handler.NewJournalHandler(journalSvc)

	router.RegisterRoutes(e, handler.NewHealthHandler(db), cfg.MetricsEnabled)
	api := router.NewAPIGroup(e, middleware.NewTokenBucket(config.LoadRateLimitConfig(), rdb))
	router.RegisterAuth(api, handler.NewAuthHandler(userSvc), handler.NewDocsHandler(docs.OpenAPI))
	router.RegisterPublic(api, moodH, journalH, middleware.NewRedisCache(config.LoadCacheConfig(), rdb))
	router.RegisterOwned(api, moodH, journalH, resolver)

	addr := ":" + cfg.Port
	go func() {
		logger.Info(ctx, "listening", "addr", addr, "env", cfg.Env)
		if err := e.Start(addr); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatalf("http server: %v", err)
		}
	}()

	<-ctx.Done()
	logger.Info(context.Background(), "shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := e.Shutdown(shutdownCtx); err != nil {
		logger.Error(shutdownCtx, "http shutdown", "err", err)
	}
	if async != nil {
		async.Close()
	}
}
