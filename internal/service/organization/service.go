package organization

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/google/uuid"

	"github.com/heartmarshall/workbench-backend/internal/config"
	"github.com/heartmarshall/workbench-backend/internal/domain"
)

// orgRepo covers organizations and their memberships.
type orgRepo interface {
	Create(ctx context.Context, org *domain.Organization) error
	GetForUser(ctx context.Context, orgID, userID uuid.UUID) (*domain.Organization, error)
	ListForUser(ctx context.Context, userID uuid.UUID) ([]domain.Organization, error)
	Exists(ctx context.Context, orgID uuid.UUID) (bool, error)
	Update(ctx context.Context, orgID uuid.UUID, params domain.OrganizationUpdateParams) (*domain.Organization, error)
	Delete(ctx context.Context, orgID uuid.UUID) error
	CountOwned(ctx context.Context, userID uuid.UUID) (int, error)

	AddMember(ctx context.Context, orgID, userID uuid.UUID, role domain.MemberRole) (*domain.Membership, error)
	GetMembership(ctx context.Context, orgID, userID uuid.UUID) (*domain.Membership, error)
	ListMembers(ctx context.Context, orgID uuid.UUID) ([]domain.Membership, error)
	UpdateMemberRole(ctx context.Context, orgID, userID uuid.UUID, role domain.MemberRole) (*domain.Membership, error)
	RemoveMember(ctx context.Context, orgID, userID uuid.UUID) error
	LockOwners(ctx context.Context, orgID uuid.UUID) ([]uuid.UUID, error)
}

type userRepo interface {
	GetByID(ctx context.Context, id uuid.UUID) (*domain.User, error)
	GetByEmail(ctx context.Context, email string) (*domain.User, error)
}

type auditLogger interface {
	Log(ctx context.Context, record domain.AuditRecord) error
}

type txManager interface {
	RunInTx(ctx context.Context, fn func(ctx context.Context) error) error
}

// ErrLastOwner is returned when an operation would leave an organization
// without an owner.
var ErrLastOwner = fmt.Errorf("organization must keep at least one owner: %w", domain.ErrConflict)

// ErrLimitReached is returned when the caller already owns the maximum number
// of organizations.
var ErrLimitReached = fmt.Errorf("organization limit reached: %w", domain.ErrConflict)

// Service implements organization and membership operations.
type Service struct {
	log    *slog.Logger
	orgs   orgRepo
	users  userRepo
	audit  auditLogger
	tx     txManager
	limits config.LimitsConfig
}

// NewService creates a new organization service.
func NewService(
	logger *slog.Logger,
	orgs orgRepo,
	users userRepo,
	audit auditLogger,
	tx txManager,
	limits config.LimitsConfig,
) *Service {
	return &Service{
		log:    logger.With("service", "organization"),
		orgs:   orgs,
		users:  users,
		audit:  audit,
		tx:     tx,
		limits: limits,
	}
}

// requireRole returns the caller's membership when it grants at least min.
// Non-members get ErrForbidden for an existing organization and ErrNotFound otherwise.
func (s *Service) requireRole(ctx context.Context, orgID, userID uuid.UUID, min domain.MemberRole) (*domain.Membership, error) {
	m, err := s.orgs.GetMembership(ctx, orgID, userID)
	if err != nil {
		if !errors.Is(err, domain.ErrNotFound) {
			return nil, fmt.Errorf("get membership: %w", err)
		}
		exists, exErr := s.orgs.Exists(ctx, orgID)
		if exErr != nil {
			return nil, fmt.Errorf("check organization: %w", exErr)
		}
		if exists {
			return nil, domain.ErrForbidden
		}
		return nil, domain.ErrNotFound
	}
	if !m.Role.AtLeast(min) {
		return nil, domain.ErrForbidden
	}
	return m, nil
}

// ensureOwnerRemains fails with ErrLastOwner when userID is the organization's
// only owner. Must run inside a transaction so the owner rows stay locked.
func (s *Service) ensureOwnerRemains(ctx context.Context, orgID, userID uuid.UUID) error {
	owners, err := s.orgs.LockOwners(ctx, orgID)
	if err != nil {
		return fmt.Errorf("lock owners: %w", err)
	}
	for _, id := range owners {
		if id != userID {
			return nil
		}
	}
	return ErrLastOwner
}
