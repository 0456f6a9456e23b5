package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	"github.com/buildright/backend/internal/config"
	"github.com/buildright/backend/internal/handler"
	"github.com/buildright/backend/internal/logging"
	"github.com/buildright/backend/internal/repository"
	"github.com/buildright/backend/internal/service"
)

func main() {
	cfg := config.Load()
	logging.Setup(cfg.LogLevel)

	ctx := context.Background()
	contactRepo, closeStore, err := openStore(ctx, cfg)
	if err != nil {
		logging.Fatal("failed to open contact store", "driver", cfg.StoreDriver, "error", err)
	}
	defer closeStore()
	slog.Info("contact store ready", "driver", cfg.StoreDriver)

	contactService := service.NewContactService(contactRepo, service.NewValidator())

	h := handler.New(contactRepo, cfg.FrontendURL)
	contactHandler := handler.NewContactHandler(contactService)

	var limiter *handler.RateLimiter
	if cfg.ContactRateLimit > 0 {
		limiter = handler.NewRateLimiter(cfg.ContactRateLimit)
	}

	server := &http.Server{
		Addr:         ":" + cfg.Port,
		Handler:      handler.NewRouter(h, contactHandler, limiter),
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 10 * time.Second,
	}

	go func() {
		slog.Info("server listening", "addr", server.Addr, "environment", cfg.Environment)
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logging.Fatal("server error", "error", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		slog.Warn("shutdown error", "error", err)
	}
}

// openStore connects the backend selected by STORE_DRIVER and returns a
// func that releases it.
func openStore(ctx context.Context, cfg *config.Config) (repository.ContactRepository, func(), error) {
	switch cfg.StoreDriver {
	case config.StoreMemory:
		if cfg.IsProduction() {
			slog.Warn("memory store in production: submissions are lost on restart")
		}
		return repository.NewMemoryContactRepository(), func() {}, nil

	case config.StorePostgres:
		if cfg.MigrateOnStart {
			if err := repository.MigratePostgres(cfg.DatabaseURL); err != nil {
				return nil, nil, err
			}
		}
		pool, err := repository.NewPool(ctx, cfg.DatabaseURL)
		if err != nil {
			return nil, nil, err
		}
		return repository.NewPgContactRepository(pool), pool.Close, nil

	case config.StoreSqlite:
		if dir := filepath.Dir(cfg.SqlitePath); dir != "." {
			if err := os.MkdirAll(dir, 0o755); err != nil {
				return nil, nil, fmt.Errorf("create sqlite dir: %w", err)
			}
		}
		db, err := repository.OpenSqlite(cfg.SqlitePath)
		if err != nil {
			return nil, nil, err
		}
		return repository.NewSqliteContactRepository(db), func() { _ = db.Close() }, nil

	case config.StoreRedis:
		client, err := repository.NewRedisClient(ctx, cfg.RedisURL)
		if err != nil {
			return nil, nil, err
		}
		return repository.NewRedisContactRepository(client), func() { _ = client.Close() }, nil
	}
	return nil, nil, fmt.Errorf("unknown STORE_DRIVER %q", cfg.StoreDriver)
}
