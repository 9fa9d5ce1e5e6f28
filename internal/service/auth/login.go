package auth

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"github.com/heartmarshall/workbench-backend/internal/domain"
)

// Login authenticates a user with email + password.
// Returns ErrUnauthorized if the email is not found or the password is wrong.
func (s *Service) Login(ctx context.Context, input LoginInput) (*AuthResult, error) {
	input.Email = domain.NormalizeEmail(input.Email)

	if err := input.Validate(); err != nil {
		return nil, err
	}

	user, err := s.users.GetByEmail(ctx, input.Email)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, domain.ErrUnauthorized
		}
		return nil, fmt.Errorf("auth.Login get user: %w", err)
	}

	if err := s.checkPassword(ctx, user.ID, input.Password); err != nil {
		if errors.Is(err, domain.ErrUnauthorized) {
			s.log.WarnContext(ctx, "login failed", slog.String("user_id", user.ID.String()))
		}
		return nil, fmt.Errorf("auth.Login: %w", err)
	}

	result, err := s.issueTokens(ctx, user)
	if err != nil {
		return nil, fmt.Errorf("auth.Login issue tokens: %w", err)
	}

	s.log.InfoContext(ctx, "user logged in",
		slog.String("user_id", user.ID.String()))

	return result, nil
}

// checkPassword compares the password against the user's stored hash.
// Returns ErrUnauthorized on mismatch or when the user has no password method.
func (s *Service) checkPassword(ctx context.Context, userID uuid.UUID, password string) error {
	am, err := s.authMethods.GetByUserAndMethod(ctx, userID, domain.AuthMethodPassword)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return domain.ErrUnauthorized
		}
		return fmt.Errorf("get auth method: %w", err)
	}
	if am.PasswordHash == nil {
		return domain.ErrUnauthorized
	}
	if err := bcrypt.CompareHashAndPassword([]byte(*am.PasswordHash), []byte(password)); err != nil {
		return domain.ErrUnauthorized
	}
	return nil
}
