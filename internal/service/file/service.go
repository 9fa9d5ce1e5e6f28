package file

import (
	"context"
	"io"
	"log/slog"

	"github.com/google/uuid"

	"github.com/heartmarshall/workbench-backend/internal/adapter/blob"
	"github.com/heartmarshall/workbench-backend/internal/config"
	"github.com/heartmarshall/workbench-backend/internal/domain"
)

type fileRepo interface {
	Create(ctx context.Context, file *domain.File) (*domain.File, error)
	GetByID(ctx context.Context, id uuid.UUID) (*domain.File, error)
	List(ctx context.Context, userID uuid.UUID, filter domain.FileFilter) ([]domain.File, error)
	Update(ctx context.Context, id uuid.UUID, params domain.FileUpdateParams) (*domain.File, error)
	IsDescendant(ctx context.Context, ancestor, candidate uuid.UUID) (bool, error)
	DeleteTree(ctx context.Context, id uuid.UUID) ([]string, error)
}

// blobStore holds file contents keyed by File.StorageKey.
type blobStore interface {
	Put(ctx context.Context, key string, r io.Reader, size int64, contentType string) (string, error)
	Get(ctx context.Context, key string) (*blob.Object, error)
	Delete(ctx context.Context, keys ...string) error
}

type accessChecker interface {
	RequireSpace(ctx context.Context, userID, spaceID uuid.UUID, min domain.SpaceAccess) (*domain.Space, error)
}

type auditLogger interface {
	Log(ctx context.Context, record domain.AuditRecord) error
}

type txManager interface {
	RunInTx(ctx context.Context, fn func(ctx context.Context) error) error
}

// Service implements file storage operations.
type Service struct {
	log    *slog.Logger
	files  fileRepo
	blobs  blobStore
	access accessChecker
	audit  auditLogger
	tx     txManager
	limits config.LimitsConfig
}

// NewService creates a new file service.
func NewService(
	logger *slog.Logger,
	files fileRepo,
	blobs blobStore,
	access accessChecker,
	audit auditLogger,
	tx txManager,
	limits config.LimitsConfig,
) *Service {
	return &Service{
		log:    logger.With("service", "file"),
		files:  files,
		blobs:  blobs,
		access: access,
		audit:  audit,
		tx:     tx,
		limits: limits,
	}
}

// storageKey is the object key for a file's contents.
func storageKey(userID, fileID uuid.UUID) string {
	return userID.String() + "/" + fileID.String()
}
