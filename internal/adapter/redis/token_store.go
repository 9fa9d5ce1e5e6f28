// Package redis provides a Redis-backed refresh-token store. It satisfies the
// same contract as the PostgreSQL token repository and is selected when a
// Redis URL is configured.
package redis

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"

	"github.com/heartmarshall/workbench-backend/internal/domain"
)

// revokedGrace keeps revoked tokens readable so reuse can be detected.
const revokedGrace = 24 * time.Hour

type tokenData struct {
	ID        uuid.UUID  `json:"id"`
	UserID    uuid.UUID  `json:"user_id"`
	ExpiresAt time.Time  `json:"expires_at"`
	CreatedAt time.Time  `json:"created_at"`
	RevokedAt *time.Time `json:"revoked_at,omitempty"`
}

// TokenStore implements refresh token storage using Redis.
type TokenStore struct {
	client *redis.Client
	prefix string
	now    func() time.Time
}

// NewTokenStore parses redisURL, connects and verifies the connection.
func NewTokenStore(ctx context.Context, redisURL, keyPrefix string) (*TokenStore, error) {
	opts, err := redis.ParseURL(redisURL)
	if err != nil {
		return nil, fmt.Errorf("parse redis url: %w", err)
	}

	client := redis.NewClient(opts)

	pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	if err := client.Ping(pingCtx).Err(); err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("connect to redis: %w", err)
	}

	return NewTokenStoreWithClient(client, keyPrefix), nil
}

// NewTokenStoreWithClient creates a store from an existing Redis client.
func NewTokenStoreWithClient(client *redis.Client, keyPrefix string) *TokenStore {
	return &TokenStore{client: client, prefix: keyPrefix, now: time.Now}
}

func (s *TokenStore) tokenKey(hash string) string {
	return s.prefix + "refresh:" + hash
}

func (s *TokenStore) userKey(userID uuid.UUID) string {
	return s.prefix + "refresh-user:" + userID.String()
}

// Create stores a new refresh token hash with a TTL covering its lifetime
// plus the reuse-detection window.
func (s *TokenStore) Create(ctx context.Context, t *domain.RefreshToken) error {
	if t.ID == uuid.Nil {
		t.ID = uuid.New()
	}
	if t.CreatedAt.IsZero() {
		t.CreatedAt = s.now()
	}

	raw, err := json.Marshal(tokenData{ID: t.ID, UserID: t.UserID, ExpiresAt: t.ExpiresAt, CreatedAt: t.CreatedAt})
	if err != nil {
		return fmt.Errorf("marshal token data: %w", err)
	}

	ttl := t.ExpiresAt.Sub(s.now()) + revokedGrace
	if ttl <= revokedGrace {
		ttl = revokedGrace
	}

	userKey := s.userKey(t.UserID)
	_, err = s.client.TxPipelined(ctx, func(p redis.Pipeliner) error {
		p.Set(ctx, s.tokenKey(t.TokenHash), raw, ttl)
		p.SAdd(ctx, userKey, t.TokenHash)
		// The newest token always outlives older ones, so its TTL covers the set.
		p.Expire(ctx, userKey, ttl)
		return nil
	})
	if err != nil {
		return fmt.Errorf("save refresh token: %w", err)
	}
	return nil
}

// GetByHash returns the token, revoked or expired ones included.
func (s *TokenStore) GetByHash(ctx context.Context, tokenHash string) (*domain.RefreshToken, error) {
	data, err := s.get(ctx, tokenHash)
	if err != nil {
		return nil, err
	}
	return &domain.RefreshToken{
		ID:        data.ID,
		UserID:    data.UserID,
		TokenHash: tokenHash,
		ExpiresAt: data.ExpiresAt,
		CreatedAt: data.CreatedAt,
		RevokedAt: data.RevokedAt,
	}, nil
}

// maxRevokeAttempts bounds the optimistic retries of Revoke.
const maxRevokeAttempts = 5

// Revoke marks a token revoked and reports whether this call did so. The
// read and the write run under WATCH, so of two concurrent callers only one
// sees true. Unknown and already-revoked tokens report false.
func (s *TokenStore) Revoke(ctx context.Context, tokenHash string) (bool, error) {
	key := s.tokenKey(tokenHash)
	for range maxRevokeAttempts {
		revoked := false
		err := s.client.Watch(ctx, func(tx *redis.Tx) error {
			raw, err := tx.Get(ctx, key).Bytes()
			if errors.Is(err, redis.Nil) {
				return nil
			}
			if err != nil {
				return fmt.Errorf("get refresh token: %w", err)
			}
			data, err := decodeToken(raw)
			if err != nil {
				return err
			}
			if data.RevokedAt != nil {
				return nil
			}

			now := s.now()
			data.RevokedAt = &now
			updated, err := json.Marshal(data)
			if err != nil {
				return fmt.Errorf("marshal token data: %w", err)
			}

			// Revoked tokens only need to live for the reuse window.
			ttl := revokedGrace
			if remaining := data.ExpiresAt.Sub(now) + revokedGrace; remaining < ttl {
				ttl = remaining
			}
			_, err = tx.TxPipelined(ctx, func(p redis.Pipeliner) error {
				p.Set(ctx, key, updated, ttl)
				return nil
			})
			if err != nil {
				return err
			}
			revoked = true
			return nil
		}, key)
		if errors.Is(err, redis.TxFailedErr) {
			continue
		}
		if err != nil {
			return false, fmt.Errorf("revoke refresh token: %w", err)
		}
		return revoked, nil
	}
	return false, fmt.Errorf("revoke refresh token: %w", redis.TxFailedErr)
}

// RevokeAllByUser revokes every token tracked for the user.
func (s *TokenStore) RevokeAllByUser(ctx context.Context, userID uuid.UUID) error {
	hashes, err := s.client.SMembers(ctx, s.userKey(userID)).Result()
	if err != nil {
		return fmt.Errorf("list user tokens: %w", err)
	}
	for _, h := range hashes {
		if _, err := s.Revoke(ctx, h); err != nil {
			return err
		}
	}
	return nil
}

// DeleteExpired drops member hashes whose token keys have expired from the
// per-user sets. Token keys themselves expire through their TTL.
func (s *TokenStore) DeleteExpired(ctx context.Context) (int, error) {
	removed := 0
	iter := s.client.Scan(ctx, 0, s.prefix+"refresh-user:*", 100).Iterator()
	for iter.Next(ctx) {
		userKey := iter.Val()
		hashes, err := s.client.SMembers(ctx, userKey).Result()
		if err != nil {
			return removed, fmt.Errorf("list user tokens: %w", err)
		}
		for _, h := range hashes {
			n, err := s.client.Exists(ctx, s.tokenKey(h)).Result()
			if err != nil {
				return removed, fmt.Errorf("check token: %w", err)
			}
			if n == 0 {
				if err := s.client.SRem(ctx, userKey, h).Err(); err != nil {
					return removed, fmt.Errorf("prune user tokens: %w", err)
				}
				removed++
			}
		}
	}
	if err := iter.Err(); err != nil {
		return removed, fmt.Errorf("scan user token sets: %w", err)
	}
	return removed, nil
}

// Ping checks if Redis is reachable.
func (s *TokenStore) Ping(ctx context.Context) error {
	return s.client.Ping(ctx).Err()
}

// Close closes the Redis connection.
func (s *TokenStore) Close() error {
	return s.client.Close()
}

func (s *TokenStore) get(ctx context.Context, tokenHash string) (*tokenData, error) {
	raw, err := s.client.Get(ctx, s.tokenKey(tokenHash)).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, fmt.Errorf("refresh_token: %w", domain.ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("lookup refresh token: %w", err)
	}
	return decodeToken(raw)
}

func decodeToken(raw []byte) (*tokenData, error) {
	var data tokenData
	if err := json.Unmarshal(raw, &data); err != nil {
		return nil, fmt.Errorf("unmarshal token data: %w", err)
	}
	return &data, nil
}
