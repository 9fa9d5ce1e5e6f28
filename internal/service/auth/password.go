package auth

import (
	"context"
	"fmt"
	"log/slog"

	"golang.org/x/crypto/bcrypt"

	"github.com/heartmarshall/workbench-backend/internal/domain"
	"github.com/heartmarshall/workbench-backend/pkg/ctxutil"
)

// ChangePassword replaces the caller's password after verifying the current
// one. All refresh sessions are revoked so other devices must log in again.
func (s *Service) ChangePassword(ctx context.Context, input ChangePasswordInput) error {
	userID, ok := ctxutil.UserIDFromCtx(ctx)
	if !ok {
		return domain.ErrUnauthorized
	}

	if err := input.Validate(s.cfg.PasswordMinLength); err != nil {
		return err
	}

	if err := s.checkPassword(ctx, userID, input.CurrentPassword); err != nil {
		return fmt.Errorf("auth.ChangePassword: %w", err)
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(input.NewPassword), s.cfg.BcryptCost)
	if err != nil {
		return fmt.Errorf("auth.ChangePassword hash password: %w", err)
	}

	err = s.tx.RunInTx(ctx, func(txCtx context.Context) error {
		if err := s.authMethods.UpdatePassword(txCtx, userID, string(hash)); err != nil {
			return fmt.Errorf("update password: %w", err)
		}
		entityID := userID
		return s.audit.Log(txCtx, domain.AuditRecord{
			UserID:     userID,
			EntityType: domain.EntityTypeUser,
			EntityID:   &entityID,
			Action:     domain.AuditActionUpdate,
			Changes:    map[string]any{"password": map[string]any{"changed": true}},
		})
	})
	if err != nil {
		return fmt.Errorf("auth.ChangePassword: %w", err)
	}

	if err := s.tokens.RevokeAllByUser(ctx, userID); err != nil {
		return fmt.Errorf("auth.ChangePassword revoke sessions: %w", err)
	}

	s.log.InfoContext(ctx, "password changed", slog.String("user_id", userID.String()))
	return nil
}
