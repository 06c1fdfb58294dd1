package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"phonechecker/internal/events"
	apphttp "phonechecker/internal/http"
	"phonechecker/internal/http/router"
	"phonechecker/internal/notifier"
	"phonechecker/internal/quota"
	"phonechecker/internal/validation"
	"phonechecker/platform/config"
	"phonechecker/platform/logger"
	"phonechecker/platform/validator"

	"golang.org/x/sync/errgroup"
)

const shutdownTimeout = 10 * time.Second

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("failed to load config: " + err.Error())
	}

	// Initialize structured logger
	log := logger.New(cfg.Env)
	log.Info("starting server", "env", cfg.Env, "addr", cfg.HTTPAddr)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// ========================================================================
	// Infrastructure Layer
	// ========================================================================

	store, closeStore := initQuotaStore(ctx, cfg, log)
	defer closeStore()
	guard := quota.NewGuard(store, cfg.GetGuestDailyChecks(), log)

	audit, err := logger.NewFile(cfg.GetBotLogPath())
	if err != nil {
		log.Error("failed to open bot log", "error", err, "path", cfg.GetBotLogPath())
		panic("failed to open bot log: " + err.Error())
	}
	defer func() {
		_ = audit.Close()
	}()

	// ========================================================================
	// Domain Modules (Composition Root)
	// ========================================================================

	eventBus := events.NewInMemoryBus(log)
	defer eventBus.Wait()

	notifierSvc := notifier.NewService(notifier.NewFileStore(cfg.GetMessageLogPath()), io.Discard, audit, validator.New())
	notifier.NewSubscriber(notifierSvc).RegisterHandlers(eventBus)

	validationModule := validation.NewModule(cfg, guard, eventBus, log)

	// ========================================================================
	// HTTP Layer
	// ========================================================================

	app := &apphttp.App{
		Config:  cfg,
		Logger:  log,
		Modules: []apphttp.Module{validationModule},
	}

	srv := &http.Server{
		Addr:              cfg.GetHTTPAddr(),
		Handler:           router.New(app),
		ReadHeaderTimeout: 5 * time.Second,
	}

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		log.Info("server listening", "addr", srv.Addr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("listen: %w", err)
		}
		return nil
	})
	g.Go(func() error {
		<-gctx.Done()
		log.Info("shutdown signal received, gracefully shutting down")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	})

	if err := g.Wait(); err != nil {
		log.Error("server error", "error", err)
		panic("server error: " + err.Error())
	}
	log.Info("server stopped")
}

// initQuotaStore prefers Redis so limits are shared between instances and
// falls back to process memory when Redis is not configured or unreachable.
func initQuotaStore(ctx context.Context, cfg config.RedisConfig, log *logger.Logger) (quota.Store, func()) {
	if cfg.GetRedisURL() == "" {
		log.Warn("REDIS_URL not configured; guest quotas kept in memory")
		return quota.NewMemoryStore(), func() {}
	}

	connectCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	store, err := quota.NewRedisStore(connectCtx, cfg.GetRedisURL())
	if err != nil {
		log.Error("failed to connect to redis; guest quotas kept in memory", "error", err)
		return quota.NewMemoryStore(), func() {}
	}

	log.Info("redis quota store connected")
	return store, func() {
		_ = store.Close()
	}
}
