package organization

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/google/uuid"

	"github.com/heartmarshall/workbench-backend/internal/domain"
	"github.com/heartmarshall/workbench-backend/pkg/ctxutil"
)

// ListMembers returns the organization's memberships. Any member may list.
func (s *Service) ListMembers(ctx context.Context, orgID uuid.UUID) ([]domain.Membership, error) {
	userID, ok := ctxutil.UserIDFromCtx(ctx)
	if !ok {
		return nil, domain.ErrUnauthorized
	}

	if _, err := s.requireRole(ctx, orgID, userID, domain.MemberRoleMember); err != nil {
		return nil, fmt.Errorf("organization.ListMembers: %w", err)
	}

	members, err := s.orgs.ListMembers(ctx, orgID)
	if err != nil {
		return nil, fmt.Errorf("organization.ListMembers: %w", err)
	}
	return members, nil
}

// AddMember adds a user to the organization. Admins may add admins and
// members; only owners may add owners.
func (s *Service) AddMember(ctx context.Context, orgID uuid.UUID, input AddMemberInput) (*domain.Membership, error) {
	userID, ok := ctxutil.UserIDFromCtx(ctx)
	if !ok {
		return nil, domain.ErrUnauthorized
	}

	input.Email = domain.NormalizeEmail(input.Email)
	if err := input.Validate(); err != nil {
		return nil, err
	}

	var added *domain.Membership
	err := s.tx.RunInTx(ctx, func(txCtx context.Context) error {
		caller, err := s.requireRole(txCtx, orgID, userID, domain.MemberRoleAdmin)
		if err != nil {
			return err
		}
		if input.Role == domain.MemberRoleOwner && caller.Role != domain.MemberRoleOwner {
			return domain.ErrForbidden
		}

		target, err := s.resolveUser(txCtx, input)
		if err != nil {
			return err
		}

		added, err = s.orgs.AddMember(txCtx, orgID, target.ID, input.Role)
		if err != nil {
			return fmt.Errorf("add member: %w", err)
		}

		return s.audit.Log(txCtx, domain.AuditRecord{
			UserID:     userID,
			EntityType: domain.EntityTypeMembership,
			EntityID:   &orgID,
			Action:     domain.AuditActionCreate,
			Changes: map[string]any{
				"user_id": map[string]any{"new": target.ID.String()},
				"role":    map[string]any{"new": input.Role.String()},
			},
		})
	})
	if err != nil {
		return nil, fmt.Errorf("organization.AddMember: %w", err)
	}

	s.log.InfoContext(ctx, "member added",
		slog.String("organization_id", orgID.String()),
		slog.String("member_id", added.UserID.String()),
		slog.String("role", added.Role.String()))

	return added, nil
}

func (s *Service) resolveUser(ctx context.Context, input AddMemberInput) (*domain.User, error) {
	var (
		user *domain.User
		err  error
	)
	if input.UserID != nil {
		user, err = s.users.GetByID(ctx, *input.UserID)
	} else {
		user, err = s.users.GetByEmail(ctx, input.Email)
	}
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, fmt.Errorf("user: %w", domain.ErrNotFound)
		}
		return nil, fmt.Errorf("get user: %w", err)
	}
	return user, nil
}

// UpdateMemberRole changes a member's role. Granting or taking away the owner
// role requires the caller to be an owner, and the last owner cannot be demoted.
func (s *Service) UpdateMemberRole(ctx context.Context, orgID, memberID uuid.UUID, role domain.MemberRole) (*domain.Membership, error) {
	userID, ok := ctxutil.UserIDFromCtx(ctx)
	if !ok {
		return nil, domain.ErrUnauthorized
	}

	if !role.IsValid() {
		return nil, domain.NewValidationError("role", "must be owner, admin or member")
	}

	var updated *domain.Membership
	err := s.tx.RunInTx(ctx, func(txCtx context.Context) error {
		caller, err := s.requireRole(txCtx, orgID, userID, domain.MemberRoleAdmin)
		if err != nil {
			return err
		}

		target, err := s.orgs.GetMembership(txCtx, orgID, memberID)
		if err != nil {
			return fmt.Errorf("get member: %w", err)
		}
		if target.Role == role {
			updated = target
			return nil
		}

		touchesOwner := target.Role == domain.MemberRoleOwner || role == domain.MemberRoleOwner
		if touchesOwner && caller.Role != domain.MemberRoleOwner {
			return domain.ErrForbidden
		}
		if target.Role == domain.MemberRoleOwner {
			if err := s.ensureOwnerRemains(txCtx, orgID, memberID); err != nil {
				return err
			}
		}

		updated, err = s.orgs.UpdateMemberRole(txCtx, orgID, memberID, role)
		if err != nil {
			return fmt.Errorf("update role: %w", err)
		}

		return s.audit.Log(txCtx, domain.AuditRecord{
			UserID:     userID,
			EntityType: domain.EntityTypeMembership,
			EntityID:   &orgID,
			Action:     domain.AuditActionUpdate,
			Changes: map[string]any{
				"user_id": map[string]any{"old": memberID.String()},
				"role":    map[string]any{"old": target.Role.String(), "new": role.String()},
			},
		})
	})
	if err != nil {
		return nil, fmt.Errorf("organization.UpdateMemberRole: %w", err)
	}

	s.log.InfoContext(ctx, "member role updated",
		slog.String("organization_id", orgID.String()),
		slog.String("member_id", memberID.String()),
		slog.String("role", role.String()))

	return updated, nil
}

// RemoveMember removes a member. Any member may remove themselves; removing
// someone else requires admin, and removing an owner requires owner. The last
// owner can never be removed.
func (s *Service) RemoveMember(ctx context.Context, orgID, memberID uuid.UUID) error {
	userID, ok := ctxutil.UserIDFromCtx(ctx)
	if !ok {
		return domain.ErrUnauthorized
	}

	err := s.tx.RunInTx(ctx, func(txCtx context.Context) error {
		minRole := domain.MemberRoleAdmin
		if memberID == userID {
			minRole = domain.MemberRoleMember
		}
		caller, err := s.requireRole(txCtx, orgID, userID, minRole)
		if err != nil {
			return err
		}

		target, err := s.orgs.GetMembership(txCtx, orgID, memberID)
		if err != nil {
			return fmt.Errorf("get member: %w", err)
		}
		if target.Role == domain.MemberRoleOwner {
			if caller.Role != domain.MemberRoleOwner {
				return domain.ErrForbidden
			}
			if err := s.ensureOwnerRemains(txCtx, orgID, memberID); err != nil {
				return err
			}
		}

		if err := s.orgs.RemoveMember(txCtx, orgID, memberID); err != nil {
			return fmt.Errorf("remove member: %w", err)
		}

		return s.audit.Log(txCtx, domain.AuditRecord{
			UserID:     userID,
			EntityType: domain.EntityTypeMembership,
			EntityID:   &orgID,
			Action:     domain.AuditActionDelete,
			Changes: map[string]any{
				"user_id": map[string]any{"old": memberID.String()},
				"role":    map[string]any{"old": target.Role.String()},
			},
		})
	})
	if err != nil {
		return fmt.Errorf("organization.RemoveMember: %w", err)
	}

	s.log.InfoContext(ctx, "member removed",
		slog.String("organization_id", orgID.String()),
		slog.String("member_id", memberID.String()))

	return nil
}
