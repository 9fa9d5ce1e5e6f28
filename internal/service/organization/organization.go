package organization

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/heartmarshall/workbench-backend/internal/domain"
	"github.com/heartmarshall/workbench-backend/pkg/ctxutil"
)

// CreateOrganization creates an organization with the caller as its owner.
func (s *Service) CreateOrganization(ctx context.Context, input CreateOrganizationInput) (*domain.Organization, error) {
	userID, ok := ctxutil.UserIDFromCtx(ctx)
	if !ok {
		return nil, domain.ErrUnauthorized
	}

	input.Name = domain.NormalizeText(input.Name)
	if input.Slug == "" {
		input.Slug = domain.Slugify(input.Name)
	}
	if err := input.Validate(); err != nil {
		return nil, err
	}

	var created *domain.Organization
	err := s.tx.RunInTx(ctx, func(txCtx context.Context) error {
		if s.limits.MaxOrganizationsPerUser > 0 {
			owned, err := s.orgs.CountOwned(txCtx, userID)
			if err != nil {
				return fmt.Errorf("count owned: %w", err)
			}
			if owned >= s.limits.MaxOrganizationsPerUser {
				return ErrLimitReached
			}
		}

		now := time.Now()
		org := &domain.Organization{
			ID:        uuid.New(),
			Name:      input.Name,
			Slug:      input.Slug,
			CreatedBy: userID,
			CreatedAt: now,
			UpdatedAt: now,
		}
		if err := s.orgs.Create(txCtx, org); err != nil {
			return fmt.Errorf("create organization: %w", err)
		}
		if _, err := s.orgs.AddMember(txCtx, org.ID, userID, domain.MemberRoleOwner); err != nil {
			return fmt.Errorf("add owner: %w", err)
		}

		org.Role = domain.MemberRoleOwner
		org.MemberCount = 1
		created = org

		return s.audit.Log(txCtx, domain.AuditRecord{
			UserID:     userID,
			EntityType: domain.EntityTypeOrganization,
			EntityID:   &org.ID,
			Action:     domain.AuditActionCreate,
			Changes: map[string]any{
				"name": map[string]any{"new": org.Name},
				"slug": map[string]any{"new": org.Slug},
			},
		})
	})
	if err != nil {
		return nil, fmt.Errorf("organization.Create: %w", err)
	}

	s.log.InfoContext(ctx, "organization created",
		slog.String("user_id", userID.String()),
		slog.String("organization_id", created.ID.String()))

	return created, nil
}

// ListOrganizations returns the organizations the caller belongs to.
func (s *Service) ListOrganizations(ctx context.Context) ([]domain.Organization, error) {
	userID, ok := ctxutil.UserIDFromCtx(ctx)
	if !ok {
		return nil, domain.ErrUnauthorized
	}

	orgs, err := s.orgs.ListForUser(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("organization.List: %w", err)
	}
	return orgs, nil
}

// GetOrganization returns one organization the caller belongs to.
func (s *Service) GetOrganization(ctx context.Context, orgID uuid.UUID) (*domain.Organization, error) {
	userID, ok := ctxutil.UserIDFromCtx(ctx)
	if !ok {
		return nil, domain.ErrUnauthorized
	}

	if _, err := s.requireRole(ctx, orgID, userID, domain.MemberRoleMember); err != nil {
		return nil, fmt.Errorf("organization.Get: %w", err)
	}

	org, err := s.orgs.GetForUser(ctx, orgID, userID)
	if err != nil {
		return nil, fmt.Errorf("organization.Get: %w", err)
	}
	return org, nil
}

// UpdateOrganization renames an organization. Requires admin or owner.
func (s *Service) UpdateOrganization(ctx context.Context, orgID uuid.UUID, input UpdateOrganizationInput) (*domain.Organization, error) {
	userID, ok := ctxutil.UserIDFromCtx(ctx)
	if !ok {
		return nil, domain.ErrUnauthorized
	}

	if input.Name != nil {
		name := domain.NormalizeText(*input.Name)
		input.Name = &name
	}
	if err := input.Validate(); err != nil {
		return nil, err
	}

	var updated *domain.Organization
	err := s.tx.RunInTx(ctx, func(txCtx context.Context) error {
		if _, err := s.requireRole(txCtx, orgID, userID, domain.MemberRoleAdmin); err != nil {
			return err
		}

		var err error
		updated, err = s.orgs.Update(txCtx, orgID, domain.OrganizationUpdateParams{
			Name: input.Name,
			Slug: input.Slug,
		})
		if err != nil {
			return fmt.Errorf("update organization: %w", err)
		}

		changes := make(map[string]any)
		if input.Name != nil {
			changes["name"] = map[string]any{"new": *input.Name}
		}
		if input.Slug != nil {
			changes["slug"] = map[string]any{"new": *input.Slug}
		}
		return s.audit.Log(txCtx, domain.AuditRecord{
			UserID:     userID,
			EntityType: domain.EntityTypeOrganization,
			EntityID:   &orgID,
			Action:     domain.AuditActionUpdate,
			Changes:    changes,
		})
	})
	if err != nil {
		return nil, fmt.Errorf("organization.Update: %w", err)
	}

	s.log.InfoContext(ctx, "organization updated",
		slog.String("user_id", userID.String()),
		slog.String("organization_id", orgID.String()))

	return updated, nil
}

// DeleteOrganization deletes an organization with its memberships and spaces.
// Only an owner may do this.
func (s *Service) DeleteOrganization(ctx context.Context, orgID uuid.UUID) error {
	userID, ok := ctxutil.UserIDFromCtx(ctx)
	if !ok {
		return domain.ErrUnauthorized
	}

	err := s.tx.RunInTx(ctx, func(txCtx context.Context) error {
		if _, err := s.requireRole(txCtx, orgID, userID, domain.MemberRoleOwner); err != nil {
			return err
		}
		if err := s.orgs.Delete(txCtx, orgID); err != nil {
			return fmt.Errorf("delete organization: %w", err)
		}
		return s.audit.Log(txCtx, domain.AuditRecord{
			UserID:     userID,
			EntityType: domain.EntityTypeOrganization,
			EntityID:   &orgID,
			Action:     domain.AuditActionDelete,
		})
	})
	if err != nil {
		return fmt.Errorf("organization.Delete: %w", err)
	}

	s.log.InfoContext(ctx, "organization deleted",
		slog.String("user_id", userID.String()),
		slog.String("organization_id", orgID.String()))

	return nil
}
