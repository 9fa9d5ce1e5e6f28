package chat

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/google/uuid"

	"github.com/heartmarshall/workbench-backend/internal/domain"
	"github.com/heartmarshall/workbench-backend/pkg/ctxutil"
)

// ListMessages returns a page of a chat's messages, oldest first.
func (s *Service) ListMessages(ctx context.Context, chatID uuid.UUID, limit, offset int) ([]domain.Message, error) {
	userID, ok := ctxutil.UserIDFromCtx(ctx)
	if !ok {
		return nil, domain.ErrUnauthorized
	}

	if limit < 0 || offset < 0 {
		return nil, domain.NewValidationError("limit", "limit and offset must be non-negative")
	}

	if _, err := s.ownedChat(ctx, userID, chatID); err != nil {
		return nil, fmt.Errorf("chat.ListMessages: %w", err)
	}

	msgs, err := s.chats.ListMessages(ctx, chatID, s.pageSize(limit), offset)
	if err != nil {
		return nil, fmt.Errorf("chat.ListMessages: %w", err)
	}
	return msgs, nil
}

// CreateMessage appends a message and increments the chat's message count.
func (s *Service) CreateMessage(ctx context.Context, chatID uuid.UUID, input CreateMessageInput) (*domain.Message, error) {
	userID, ok := ctxutil.UserIDFromCtx(ctx)
	if !ok {
		return nil, domain.ErrUnauthorized
	}

	if input.Role == "" {
		input.Role = domain.MessageRoleUser
	}
	if err := input.Validate(); err != nil {
		return nil, err
	}

	var created *domain.Message
	err := s.tx.RunInTx(ctx, func(txCtx context.Context) error {
		if _, err := s.ownedChat(txCtx, userID, chatID); err != nil {
			return err
		}

		msg := &domain.Message{
			ChatID:  chatID,
			Role:    input.Role,
			Content: input.Content,
		}
		if input.Role == domain.MessageRoleUser {
			sender := userID
			msg.SenderID = &sender
		}

		var err error
		created, err = s.chats.CreateMessage(txCtx, msg)
		if err != nil {
			return fmt.Errorf("create message: %w", err)
		}

		return s.audit.Log(txCtx, domain.AuditRecord{
			UserID:     userID,
			EntityType: domain.EntityTypeMessage,
			EntityID:   &created.ID,
			Action:     domain.AuditActionCreate,
			Changes: map[string]any{
				"chat_id": map[string]any{"new": chatID.String()},
				"role":    map[string]any{"new": created.Role.String()},
			},
		})
	})
	if err != nil {
		return nil, fmt.Errorf("chat.CreateMessage: %w", err)
	}

	s.log.InfoContext(ctx, "message created",
		slog.String("chat_id", chatID.String()),
		slog.String("message_id", created.ID.String()))

	return created, nil
}

// DeleteMessage removes a message and decrements the chat's message count.
func (s *Service) DeleteMessage(ctx context.Context, chatID, messageID uuid.UUID) error {
	userID, ok := ctxutil.UserIDFromCtx(ctx)
	if !ok {
		return domain.ErrUnauthorized
	}

	err := s.tx.RunInTx(ctx, func(txCtx context.Context) error {
		if _, err := s.ownedChat(txCtx, userID, chatID); err != nil {
			return err
		}
		if err := s.chats.DeleteMessage(txCtx, chatID, messageID); err != nil {
			return fmt.Errorf("delete message: %w", err)
		}
		return s.audit.Log(txCtx, domain.AuditRecord{
			UserID:     userID,
			EntityType: domain.EntityTypeMessage,
			EntityID:   &messageID,
			Action:     domain.AuditActionDelete,
			Changes:    map[string]any{"chat_id": map[string]any{"old": chatID.String()}},
		})
	})
	if err != nil {
		return fmt.Errorf("chat.DeleteMessage: %w", err)
	}

	s.log.InfoContext(ctx, "message deleted",
		slog.String("chat_id", chatID.String()),
		slog.String("message_id", messageID.String()))

	return nil
}
