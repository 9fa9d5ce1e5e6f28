package auth

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"github.com/heartmarshall/workbench-backend/internal/domain"
)

// Register creates a new user with email + password authentication and a
// personal space. Returns ErrAlreadyExists if the email or username is taken.
func (s *Service) Register(ctx context.Context, input RegisterInput) (*AuthResult, error) {
	input.Email = domain.NormalizeEmail(input.Email)
	input.Username = strings.TrimSpace(input.Username)
	input.Name = domain.NormalizeText(input.Name)

	if err := input.Validate(s.cfg.PasswordMinLength); err != nil {
		return nil, err
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(input.Password), s.cfg.BcryptCost)
	if err != nil {
		return nil, fmt.Errorf("auth.Register hash password: %w", err)
	}
	hashStr := string(hash)

	name := input.Name
	if name == "" {
		name = input.Username
	}

	// Email and username uniqueness are enforced by DB constraints.
	var createdUser *domain.User

	err = s.tx.RunInTx(ctx, func(txCtx context.Context) error {
		now := time.Now()
		user, err := s.users.Create(txCtx, &domain.User{
			ID:        uuid.New(),
			Email:     input.Email,
			Username:  input.Username,
			Name:      name,
			CreatedAt: now,
			UpdatedAt: now,
		})
		if err != nil {
			return fmt.Errorf("create user: %w", err)
		}

		am := &domain.AuthMethod{
			UserID:       user.ID,
			Method:       domain.AuthMethodPassword,
			PasswordHash: &hashStr,
		}
		if _, err := s.authMethods.Create(txCtx, am); err != nil {
			return fmt.Errorf("create auth method: %w", err)
		}

		ownerID := user.ID
		if _, err := s.spaces.Create(txCtx, &domain.Space{
			Name:        DefaultSpaceName,
			OwnerUserID: &ownerID,
			CreatedBy:   user.ID,
		}); err != nil {
			return fmt.Errorf("create personal space: %w", err)
		}

		entityID := user.ID
		if err := s.audit.Log(txCtx, domain.AuditRecord{
			UserID:     user.ID,
			EntityType: domain.EntityTypeUser,
			EntityID:   &entityID,
			Action:     domain.AuditActionCreate,
			Changes: map[string]any{
				"email":    map[string]any{"new": user.Email},
				"username": map[string]any{"new": user.Username},
			},
		}); err != nil {
			return fmt.Errorf("audit log: %w", err)
		}

		createdUser = user
		return nil
	})
	if err != nil {
		if errors.Is(err, domain.ErrAlreadyExists) {
			return nil, fmt.Errorf("auth.Register: %w", domain.ErrAlreadyExists)
		}
		return nil, fmt.Errorf("auth.Register: %w", err)
	}

	result, err := s.issueTokens(ctx, createdUser)
	if err != nil {
		return nil, fmt.Errorf("auth.Register issue tokens: %w", err)
	}

	s.log.InfoContext(ctx, "user registered",
		slog.String("user_id", createdUser.ID.String()))

	return result, nil
}
