package chat

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/google/uuid"

	"github.com/heartmarshall/workbench-backend/internal/domain"
	"github.com/heartmarshall/workbench-backend/internal/service/access"
	"github.com/heartmarshall/workbench-backend/pkg/ctxutil"
)

// CreateChat creates a chat owned by the caller, optionally inside a space
// the caller can write to.
func (s *Service) CreateChat(ctx context.Context, input CreateChatInput) (*domain.Chat, error) {
	userID, ok := ctxutil.UserIDFromCtx(ctx)
	if !ok {
		return nil, domain.ErrUnauthorized
	}

	input.Title = domain.NormalizeText(input.Title)
	if input.Title == "" {
		input.Title = DefaultTitle
	}
	if err := input.Validate(); err != nil {
		return nil, err
	}

	var created *domain.Chat
	err := s.tx.RunInTx(ctx, func(txCtx context.Context) error {
		if input.SpaceID != nil {
			if _, err := s.access.RequireSpace(txCtx, userID, *input.SpaceID, domain.SpaceAccessWrite); err != nil {
				return err
			}
		}

		var err error
		created, err = s.chats.Create(txCtx, &domain.Chat{
			UserID:  userID,
			SpaceID: input.SpaceID,
			Title:   input.Title,
		})
		if err != nil {
			return fmt.Errorf("create chat: %w", err)
		}

		return s.audit.Log(txCtx, domain.AuditRecord{
			UserID:     userID,
			EntityType: domain.EntityTypeChat,
			EntityID:   &created.ID,
			Action:     domain.AuditActionCreate,
			Changes:    map[string]any{"title": map[string]any{"new": created.Title}},
		})
	})
	if err != nil {
		return nil, fmt.Errorf("chat.Create: %w", err)
	}

	s.index.IndexChat(*created)

	s.log.InfoContext(ctx, "chat created",
		slog.String("user_id", userID.String()),
		slog.String("chat_id", created.ID.String()))

	return created, nil
}

// ListChats returns the caller's chats, pinned first then most recent.
func (s *Service) ListChats(ctx context.Context, input ListChatsInput) ([]domain.Chat, error) {
	userID, ok := ctxutil.UserIDFromCtx(ctx)
	if !ok {
		return nil, domain.ErrUnauthorized
	}

	if err := input.Validate(); err != nil {
		return nil, err
	}

	if input.SpaceID != nil {
		if _, err := s.access.RequireSpace(ctx, userID, *input.SpaceID, domain.SpaceAccessWrite); err != nil {
			return nil, fmt.Errorf("chat.List: %w", err)
		}
	}

	chats, err := s.chats.List(ctx, userID, domain.ChatFilter{
		SpaceID: input.SpaceID,
		Pinned:  input.Pinned,
		Limit:   s.pageSize(input.Limit),
		Offset:  input.Offset,
	})
	if err != nil {
		return nil, fmt.Errorf("chat.List: %w", err)
	}
	return chats, nil
}

// GetChat returns a chat with its messages in chronological order.
func (s *Service) GetChat(ctx context.Context, chatID uuid.UUID) (*domain.Chat, error) {
	userID, ok := ctxutil.UserIDFromCtx(ctx)
	if !ok {
		return nil, domain.ErrUnauthorized
	}

	c, err := s.ownedChat(ctx, userID, chatID)
	if err != nil {
		return nil, fmt.Errorf("chat.Get: %w", err)
	}

	c.Messages, err = s.chats.ListMessages(ctx, chatID, 0, 0)
	if err != nil {
		return nil, fmt.Errorf("chat.Get messages: %w", err)
	}
	return c, nil
}

// UpdateChat renames or pins a chat.
func (s *Service) UpdateChat(ctx context.Context, chatID uuid.UUID, input UpdateChatInput) (*domain.Chat, error) {
	userID, ok := ctxutil.UserIDFromCtx(ctx)
	if !ok {
		return nil, domain.ErrUnauthorized
	}

	if input.Title != nil {
		t := domain.NormalizeText(*input.Title)
		input.Title = &t
	}
	if err := input.Validate(); err != nil {
		return nil, err
	}

	var updated *domain.Chat
	err := s.tx.RunInTx(ctx, func(txCtx context.Context) error {
		old, err := s.ownedChat(txCtx, userID, chatID)
		if err != nil {
			return err
		}

		updated, err = s.chats.Update(txCtx, chatID, domain.ChatUpdateParams{
			Title:  input.Title,
			Pinned: input.Pinned,
		})
		if err != nil {
			return fmt.Errorf("update chat: %w", err)
		}

		changes := make(map[string]any)
		if input.Title != nil && old.Title != updated.Title {
			changes["title"] = map[string]any{"old": old.Title, "new": updated.Title}
		}
		if input.Pinned != nil && old.Pinned != updated.Pinned {
			changes["pinned"] = map[string]any{"old": old.Pinned, "new": updated.Pinned}
		}
		return s.audit.Log(txCtx, domain.AuditRecord{
			UserID:     userID,
			EntityType: domain.EntityTypeChat,
			EntityID:   &chatID,
			Action:     domain.AuditActionUpdate,
			Changes:    changes,
		})
	})
	if err != nil {
		return nil, fmt.Errorf("chat.Update: %w", err)
	}

	if input.Title != nil {
		s.index.IndexChat(*updated)
	}

	s.log.InfoContext(ctx, "chat updated",
		slog.String("user_id", userID.String()),
		slog.String("chat_id", chatID.String()))

	return updated, nil
}

// DeleteChat deletes a chat and its messages. Returns ErrForbidden when the
// caller does not own the chat.
func (s *Service) DeleteChat(ctx context.Context, chatID uuid.UUID) error {
	userID, ok := ctxutil.UserIDFromCtx(ctx)
	if !ok {
		return domain.ErrUnauthorized
	}

	err := s.tx.RunInTx(ctx, func(txCtx context.Context) error {
		old, err := s.ownedChat(txCtx, userID, chatID)
		if err != nil {
			return err
		}
		if err := s.chats.Delete(txCtx, chatID); err != nil {
			return fmt.Errorf("delete chat: %w", err)
		}
		return s.audit.Log(txCtx, domain.AuditRecord{
			UserID:     userID,
			EntityType: domain.EntityTypeChat,
			EntityID:   &chatID,
			Action:     domain.AuditActionDelete,
			Changes: map[string]any{
				"title":         map[string]any{"old": old.Title},
				"message_count": map[string]any{"old": old.MessageCount},
			},
		})
	})
	if err != nil {
		return fmt.Errorf("chat.Delete: %w", err)
	}

	s.index.DeleteChat(chatID)

	s.log.InfoContext(ctx, "chat deleted",
		slog.String("user_id", userID.String()),
		slog.String("chat_id", chatID.String()))

	return nil
}

func (s *Service) ownedChat(ctx context.Context, userID, chatID uuid.UUID) (*domain.Chat, error) {
	c, err := s.chats.GetByID(ctx, chatID)
	if err != nil {
		return nil, err
	}
	if err := access.RequireOwner(userID, c.UserID); err != nil {
		return nil, err
	}
	return c, nil
}
