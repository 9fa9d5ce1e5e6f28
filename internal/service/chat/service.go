package chat

import (
	"context"
	"log/slog"

	"github.com/google/uuid"

	"github.com/heartmarshall/workbench-backend/internal/config"
	"github.com/heartmarshall/workbench-backend/internal/domain"
)

type chatRepo interface {
	Create(ctx context.Context, chat *domain.Chat) (*domain.Chat, error)
	GetByID(ctx context.Context, id uuid.UUID) (*domain.Chat, error)
	List(ctx context.Context, userID uuid.UUID, filter domain.ChatFilter) ([]domain.Chat, error)
	Update(ctx context.Context, id uuid.UUID, params domain.ChatUpdateParams) (*domain.Chat, error)
	Delete(ctx context.Context, id uuid.UUID) error

	CreateMessage(ctx context.Context, msg *domain.Message) (*domain.Message, error)
	ListMessages(ctx context.Context, chatID uuid.UUID, limit, offset int) ([]domain.Message, error)
	DeleteMessage(ctx context.Context, chatID, messageID uuid.UUID) error
}

type accessChecker interface {
	RequireSpace(ctx context.Context, userID, spaceID uuid.UUID, min domain.SpaceAccess) (*domain.Space, error)
}

// searchIndexer keeps the search index in sync. Calls return immediately.
type searchIndexer interface {
	IndexChat(chat domain.Chat)
	DeleteChat(id uuid.UUID)
}

type auditLogger interface {
	Log(ctx context.Context, record domain.AuditRecord) error
}

type txManager interface {
	RunInTx(ctx context.Context, fn func(ctx context.Context) error) error
}

// Service implements chat and message operations.
type Service struct {
	log    *slog.Logger
	chats  chatRepo
	access accessChecker
	index  searchIndexer
	audit  auditLogger
	tx     txManager
	limits config.LimitsConfig
}

// NewService creates a new chat service.
func NewService(
	logger *slog.Logger,
	chats chatRepo,
	access accessChecker,
	index searchIndexer,
	audit auditLogger,
	tx txManager,
	limits config.LimitsConfig,
) *Service {
	return &Service{
		log:    logger.With("service", "chat"),
		chats:  chats,
		access: access,
		index:  index,
		audit:  audit,
		tx:     tx,
		limits: limits,
	}
}

// pageSize applies the configured default and cap to a requested limit.
func (s *Service) pageSize(limit int) int {
	if limit <= 0 {
		return s.limits.DefaultPageSize
	}
	if s.limits.MaxPageSize > 0 && limit > s.limits.MaxPageSize {
		return s.limits.MaxPageSize
	}
	return limit
}
