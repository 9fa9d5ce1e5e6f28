package space

import (
	"context"
	"log/slog"

	"github.com/google/uuid"

	"github.com/heartmarshall/workbench-backend/internal/config"
	"github.com/heartmarshall/workbench-backend/internal/domain"
)

type spaceRepo interface {
	Create(ctx context.Context, space *domain.Space) (*domain.Space, error)
	ListAccessible(ctx context.Context, userID uuid.UUID) ([]domain.Space, error)
	ListByOrganization(ctx context.Context, orgID uuid.UUID) ([]domain.Space, error)
	Update(ctx context.Context, id uuid.UUID, params domain.SpaceUpdateParams) (*domain.Space, error)
	Delete(ctx context.Context, id uuid.UUID) error
	CountPersonal(ctx context.Context, userID uuid.UUID) (int, error)
}

type membershipRepo interface {
	GetMembership(ctx context.Context, orgID, userID uuid.UUID) (*domain.Membership, error)
	Exists(ctx context.Context, orgID uuid.UUID) (bool, error)
}

type accessChecker interface {
	RequireSpace(ctx context.Context, userID, spaceID uuid.UUID, min domain.SpaceAccess) (*domain.Space, error)
}

type fileKeyLister interface {
	StorageKeysBySpace(ctx context.Context, spaceID uuid.UUID) ([]string, error)
}

type blobDeleter interface {
	Delete(ctx context.Context, keys ...string) error
}

type auditLogger interface {
	Log(ctx context.Context, record domain.AuditRecord) error
}

type txManager interface {
	RunInTx(ctx context.Context, fn func(ctx context.Context) error) error
}

// Service implements space operations.
type Service struct {
	log     *slog.Logger
	spaces  spaceRepo
	members membershipRepo
	access  accessChecker
	files   fileKeyLister
	blobs   blobDeleter
	audit   auditLogger
	tx      txManager
	limits  config.LimitsConfig
}

// NewService creates a new space service.
func NewService(
	logger *slog.Logger,
	spaces spaceRepo,
	members membershipRepo,
	access accessChecker,
	files fileKeyLister,
	blobs blobDeleter,
	audit auditLogger,
	tx txManager,
	limits config.LimitsConfig,
) *Service {
	return &Service{
		log:     logger.With("service", "space"),
		spaces:  spaces,
		members: members,
		access:  access,
		files:   files,
		blobs:   blobs,
		audit:   audit,
		tx:      tx,
		limits:  limits,
	}
}
