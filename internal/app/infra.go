package app

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"

	postgres "github.com/heartmarshall/workbench-backend/internal/adapter/postgres"
	chatrepo "github.com/heartmarshall/workbench-backend/internal/adapter/postgres/chat"
	noterepo "github.com/heartmarshall/workbench-backend/internal/adapter/postgres/note"
	tokenrepo "github.com/heartmarshall/workbench-backend/internal/adapter/postgres/token"
	"github.com/heartmarshall/workbench-backend/internal/adapter/redis"
	"github.com/heartmarshall/workbench-backend/internal/adapter/search"
	"github.com/heartmarshall/workbench-backend/internal/config"
	"github.com/heartmarshall/workbench-backend/internal/domain"
)

// TokenStore persists refresh sessions. PostgreSQL and Redis both implement it.
type TokenStore interface {
	Create(ctx context.Context, token *domain.RefreshToken) error
	GetByHash(ctx context.Context, tokenHash string) (*domain.RefreshToken, error)
	Revoke(ctx context.Context, tokenHash string) (bool, error)
	RevokeAllByUser(ctx context.Context, userID uuid.UUID) error
	DeleteExpired(ctx context.Context) (int, error)
}

// Infra holds the shared clients of one process: the database pool, the
// session store and the search engine. The server and the CLI both build on it.
type Infra struct {
	Config *config.Config
	Log    *slog.Logger
	Pool   *pgxpool.Pool
	Tokens TokenStore
	// Redis is non-nil when sessions live in Redis.
	Redis *redis.TokenStore
	// Meili is nil when search falls back to PostgreSQL only.
	Meili  *search.Meili
	Search *search.Service
}

// Open connects to PostgreSQL and the optional Redis and Meilisearch backends.
func Open(ctx context.Context, cfg *config.Config, logger *slog.Logger) (*Infra, error) {
	pool, err := postgres.NewPool(ctx, cfg.Database)
	if err != nil {
		return nil, fmt.Errorf("database: %w", err)
	}
	in := &Infra{Config: cfg, Log: logger, Pool: pool}

	if cfg.Redis.Enabled() {
		store, err := redis.NewTokenStore(ctx, cfg.Redis.URL, cfg.Redis.KeyPrefix)
		if err != nil {
			pool.Close()
			return nil, fmt.Errorf("redis: %w", err)
		}
		in.Redis = store
		in.Tokens = store
		logger.Info("refresh sessions stored in redis")
	} else {
		in.Tokens = tokenrepo.New(pool)
		logger.Info("refresh sessions stored in postgres")
	}

	notes := noterepo.New(pool)
	chats := chatrepo.New(pool)
	if cfg.Search.Enabled() {
		in.Meili = search.NewMeili(cfg.Search.MeiliURL, cfg.Search.MeiliAPIKey, logger)
	}
	in.Search = search.NewService(in.Meili, search.NewPgFTS(notes, chats), notes, chats, cfg.Search.DefaultLimit, logger)

	return in, nil
}

// Close releases every client opened by Open.
func (in *Infra) Close() {
	if in.Redis != nil {
		if err := in.Redis.Close(); err != nil {
			in.Log.Warn("close redis", slog.String("error", err.Error()))
		}
	}
	in.Pool.Close()
}
