package main // Entry point package

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/labstack/echo/v4"
	echomw "github.com/labstack/echo/v4/middleware"
	"go.uber.org/zap"

	"github.com/jcpao/court-directory/internal/config"
	"github.com/jcpao/court-directory/internal/database"
	"github.com/jcpao/court-directory/internal/directory"
	"github.com/jcpao/court-directory/internal/handler"
	"github.com/jcpao/court-directory/internal/middleware"
	"github.com/jcpao/court-directory/internal/photo"
	"github.com/jcpao/court-directory/internal/queue"
	"github.com/jcpao/court-directory/internal/repository"
	"github.com/jcpao/court-directory/internal/router"
	"github.com/jcpao/court-directory/internal/service"
	"github.com/jcpao/court-directory/internal/session"
	"github.com/jcpao/court-directory/internal/view"
)

func main() {
	cfg := config.Load()
	logger := newLogger(cfg)
	defer func() { _ = logger.Sync() }()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// A nil Pool interface, never a typed nil *pgxpool.Pool, marks the
	// database as unavailable downstream.
	var pool repository.Pool
	pgPool, err := database.Open(ctx, cfg.DatabaseURL)
	if err != nil {
		logger.Error(database.RemediationMessage, zap.Error(err))
	} else {
		pool = pgPool
		defer pgPool.Close()
	}

	tables := repository.NewTableRepo(pool, newCache(cfg, logger), logger)
	activity := repository.NewActivityRepo(pool, logger)
	dataset := directory.NewDataset(tables, logger)

	gate := service.NewGate(cfg.VerificationCode, cfg.AllowedDomains, activity, logger)
	if cfg.Activity.BrokerURL != "" {
		gate.WithPublisher(service.AMQPPublisher{URL: cfg.Activity.BrokerURL})
		if cfg.Activity.ConsumerEnabled {
			go func() {
				if err := queue.StartActivityConsumer(ctx, cfg.Activity.BrokerURL, cfg.Activity.LogDir, logger); err != nil && !errors.Is(err, context.Canceled) {
					logger.Error("activity consumer stopped", zap.Error(err))
				}
			}()
		}
	}

	photos := photo.NewCloudinary(cfg.Cloudinary.CloudName, cfg.Cloudinary.APIKey, cfg.Cloudinary.APISecret, cfg.Cloudinary.Folder, logger)
	store := session.NewStore(cfg.SessionSecret, cfg.SessionTTL, cfg.IsProd())

	renderer, err := view.NewRenderer()
	if err != nil {
		logger.Fatal("templates", zap.Error(err))
	}

	e := echo.New()
	e.HideBanner = true
	e.Renderer = renderer
	e.Use(echomw.Recover())
	e.Use(middleware.RequestLogger(logger))

	router.RegisterRoutes(e)
	router.RegisterPortal(e, handler.NewPortalHandler(gate, store, logger), store)
	router.RegisterDirectory(e, handler.NewDirectoryHandler(dataset, photos, store, logger), store)

	addr := ":" + cfg.Port
	logger.Info("listening", zap.String("addr", addr), zap.String("env", cfg.Env))
	go func() {
		if err := e.Start(addr); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Fatal("server", zap.Error(err))
		}
	}()

	<-ctx.Done()
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := e.Shutdown(shutdownCtx); err != nil {
		logger.Error("shutdown", zap.Error(err))
	}
}

func newLogger(cfg config.Config) *zap.Logger {
	build := zap.NewDevelopment
	if cfg.IsProd() {
		build = zap.NewProduction
	}
	logger, err := build()
	if err != nil {
		return zap.NewNop()
	}
	return logger
}

// newCache picks Redis when it answers, the in-process map otherwise, and
// nothing when caching is disabled.
func newCache(cfg config.Config, logger *zap.Logger) repository.TableCache {
	if !cfg.Cache.Enabled {
		return nil
	}
	if rdb := config.NewRedisClient(cfg.Cache.Redis); rdb != nil {
		logger.Info("query cache: redis", zap.String("addr", cfg.Cache.Redis.Addr))
		return repository.NewRedisCache(rdb, cfg.Cache.Prefix, cfg.Cache.TTL, logger)
	}
	logger.Info("query cache: memory")
	return repository.NewMemoryCache()
}
