package note

import (
	"context"
	"log/slog"

	"github.com/google/uuid"

	"github.com/heartmarshall/workbench-backend/internal/config"
	"github.com/heartmarshall/workbench-backend/internal/domain"
)

type noteRepo interface {
	Create(ctx context.Context, note *domain.Note) (*domain.Note, error)
	GetByID(ctx context.Context, id uuid.UUID) (*domain.Note, error)
	GetByIDs(ctx context.Context, userID uuid.UUID, ids []uuid.UUID) ([]domain.Note, error)
	List(ctx context.Context, userID uuid.UUID, filter domain.NoteFilter) ([]domain.Note, error)
	Update(ctx context.Context, id uuid.UUID, params domain.NoteUpdateParams) (*domain.Note, error)
	BatchUpdate(ctx context.Context, userID uuid.UUID, ids []uuid.UUID, params domain.NoteUpdateParams) ([]domain.Note, error)
	Reorder(ctx context.Context, userID uuid.UUID, positions []domain.NotePosition) error
	Delete(ctx context.Context, id uuid.UUID) error
	NextPosition(ctx context.Context, userID uuid.UUID, spaceID *uuid.UUID) (int, error)
	ListFolders(ctx context.Context, userID uuid.UUID, spaceID *uuid.UUID) ([][]string, error)
}

type accessChecker interface {
	RequireSpace(ctx context.Context, userID, spaceID uuid.UUID, min domain.SpaceAccess) (*domain.Space, error)
}

// searchIndexer keeps the search index in sync. Calls return immediately.
type searchIndexer interface {
	IndexNote(note domain.Note)
	DeleteNote(id uuid.UUID)
}

type auditLogger interface {
	Log(ctx context.Context, record domain.AuditRecord) error
}

type txManager interface {
	RunInTx(ctx context.Context, fn func(ctx context.Context) error) error
}

// Service implements note operations.
type Service struct {
	log    *slog.Logger
	notes  noteRepo
	access accessChecker
	index  searchIndexer
	audit  auditLogger
	tx     txManager
	limits config.LimitsConfig
}

// NewService creates a new note service.
func NewService(
	logger *slog.Logger,
	notes noteRepo,
	access accessChecker,
	index searchIndexer,
	audit auditLogger,
	tx txManager,
	limits config.LimitsConfig,
) *Service {
	return &Service{
		log:    logger.With("service", "note"),
		notes:  notes,
		access: access,
		index:  index,
		audit:  audit,
		tx:     tx,
		limits: limits,
	}
}

func (s *Service) pageSize(limit int) int {
	if limit <= 0 {
		return s.limits.DefaultPageSize
	}
	if s.limits.MaxPageSize > 0 && limit > s.limits.MaxPageSize {
		return s.limits.MaxPageSize
	}
	return limit
}
