package app

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/heartmarshall/workbench-backend/internal/adapter/blob"
	postgres "github.com/heartmarshall/workbench-backend/internal/adapter/postgres"
	"github.com/heartmarshall/workbench-backend/internal/config"
	"github.com/heartmarshall/workbench-backend/migrations"
)

const rateLimitCleanup = 5 * time.Minute

// Run is the server entry point. It loads configuration, connects the
// backends, applies migrations when enabled and serves HTTP until ctx is
// cancelled. The token cleanup ticker and the search health loop run
// alongside the server and stop with it.
func Run(ctx context.Context) error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}

	logger := NewLogger(cfg.Log)
	logger.Info("starting application",
		slog.String("version", BuildVersion()),
		slog.String("log_level", cfg.Log.Level),
	)

	in, err := Open(ctx, cfg, logger)
	if err != nil {
		return err
	}
	defer in.Close()

	if cfg.Database.AutoMigrate {
		applied, err := postgres.Migrate(ctx, in.Pool, migrations.FS)
		if err != nil {
			return fmt.Errorf("migrate: %w", err)
		}
		logger.Info("migrations applied", slog.Int("count", len(applied)))
	}

	blobs, err := blob.New(cfg.Storage)
	if err != nil {
		return fmt.Errorf("storage: %w", err)
	}
	if err := blobs.EnsureBucket(ctx); err != nil {
		return fmt.Errorf("storage: %w", err)
	}

	srv := newServer(in, blobs)
	if srv.limiter != nil {
		defer srv.limiter.Stop()
	}

	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		logger.Info("http server listening", slog.String("addr", srv.http.Addr))
		if err := srv.http.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("http server: %w", err)
		}
		return nil
	})

	g.Go(func() error {
		<-gctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.WithoutCancel(gctx), cfg.Server.ShutdownTimeout)
		defer cancel()
		logger.Info("shutting down http server")
		if err := srv.http.Shutdown(shutdownCtx); err != nil {
			return fmt.Errorf("shutdown: %w", err)
		}
		return nil
	})

	g.Go(func() error {
		runTokenCleanup(gctx, srv.auth, cfg.Auth.TokenCleanupInterval)
		return nil
	})

	if in.Meili != nil {
		g.Go(func() error { return in.Meili.Run(gctx, cfg.Search.HealthInterval) })
	}

	err = g.Wait()
	logger.Info("application stopped")
	return err
}

type tokenCleaner interface {
	CleanupExpiredTokens(ctx context.Context) (int, error)
}

// runTokenCleanup deletes expired refresh sessions every interval until ctx
// ends. A non-positive interval disables it.
func runTokenCleanup(ctx context.Context, cleaner tokenCleaner, interval time.Duration) {
	if interval <= 0 {
		return
	}
	ticker := time.NewTicker(interval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			// Failures are logged by the service; the next tick retries.
			_, _ = cleaner.CleanupExpiredTokens(ctx)
		}
	}
}
