package auth

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/heartmarshall/workbench-backend/internal/auth"
	"github.com/heartmarshall/workbench-backend/internal/domain"
)

// Refresh performs token rotation and returns new access/refresh tokens.
// Presenting an already-revoked token is treated as reuse: every session of
// the token's owner is revoked and ErrUnauthorized is returned.
func (s *Service) Refresh(ctx context.Context, input RefreshInput) (*AuthResult, error) {
	if err := input.Validate(); err != nil {
		return nil, err
	}

	hash := auth.HashToken(input.RefreshToken)

	token, err := s.tokens.GetByHash(ctx, hash)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, domain.ErrUnauthorized
		}
		return nil, fmt.Errorf("auth.Refresh get token: %w", err)
	}

	if token.IsRevoked() {
		return nil, s.revokeOnReuse(ctx, token)
	}

	if token.IsExpired(time.Now()) {
		return nil, domain.ErrUnauthorized
	}

	user, err := s.users.GetByID(ctx, token.UserID)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			s.log.WarnContext(ctx, "refresh for deleted user",
				slog.String("user_id", token.UserID.String()))
			return nil, domain.ErrUnauthorized
		}
		return nil, fmt.Errorf("auth.Refresh get user: %w", err)
	}

	revoked, err := s.tokens.Revoke(ctx, hash)
	if err != nil {
		return nil, fmt.Errorf("auth.Refresh revoke token: %w", err)
	}
	if !revoked {
		// Another refresh consumed the token between the read and the revoke.
		return nil, s.revokeOnReuse(ctx, token)
	}

	result, err := s.issueTokens(ctx, user)
	if err != nil {
		return nil, fmt.Errorf("auth.Refresh issue tokens: %w", err)
	}
	return result, nil
}

// revokeOnReuse ends every session of the token's owner and returns the error
// Refresh reports for a reused token.
func (s *Service) revokeOnReuse(ctx context.Context, token *domain.RefreshToken) error {
	s.log.WarnContext(ctx, "refresh token reuse detected, revoking all sessions",
		slog.String("user_id", token.UserID.String()))
	if err := s.tokens.RevokeAllByUser(ctx, token.UserID); err != nil {
		return fmt.Errorf("auth.Refresh revoke all: %w", err)
	}
	return domain.ErrUnauthorized
}
