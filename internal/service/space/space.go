package space

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/google/uuid"

	"github.com/heartmarshall/workbench-backend/internal/domain"
	"github.com/heartmarshall/workbench-backend/pkg/ctxutil"
)

// ErrLimitReached is returned when the caller already has the maximum number
// of personal spaces.
var ErrLimitReached = fmt.Errorf("space limit reached: %w", domain.ErrConflict)

// CreateSpace creates a personal space for the caller, or an organization
// space when the caller is an admin or owner of that organization.
func (s *Service) CreateSpace(ctx context.Context, input CreateSpaceInput) (*domain.Space, error) {
	userID, ok := ctxutil.UserIDFromCtx(ctx)
	if !ok {
		return nil, domain.ErrUnauthorized
	}

	input.Name = domain.NormalizeText(input.Name)
	if input.Description != nil {
		d := strings.TrimSpace(*input.Description)
		input.Description = &d
		if d == "" {
			input.Description = nil
		}
	}
	if err := input.Validate(); err != nil {
		return nil, err
	}

	var created *domain.Space
	err := s.tx.RunInTx(ctx, func(txCtx context.Context) error {
		sp := &domain.Space{
			Name:        input.Name,
			Description: input.Description,
			CreatedBy:   userID,
		}

		if input.OrganizationID != nil {
			if err := s.requireOrgAdmin(txCtx, *input.OrganizationID, userID); err != nil {
				return err
			}
			sp.OrganizationID = input.OrganizationID
		} else {
			if s.limits.MaxSpacesPerUser > 0 {
				n, err := s.spaces.CountPersonal(txCtx, userID)
				if err != nil {
					return fmt.Errorf("count spaces: %w", err)
				}
				if n >= s.limits.MaxSpacesPerUser {
					return ErrLimitReached
				}
			}
			owner := userID
			sp.OwnerUserID = &owner
		}

		var err error
		created, err = s.spaces.Create(txCtx, sp)
		if err != nil {
			return fmt.Errorf("create space: %w", err)
		}

		return s.audit.Log(txCtx, domain.AuditRecord{
			UserID:     userID,
			EntityType: domain.EntityTypeSpace,
			EntityID:   &created.ID,
			Action:     domain.AuditActionCreate,
			Changes:    map[string]any{"name": map[string]any{"new": created.Name}},
		})
	})
	if err != nil {
		return nil, fmt.Errorf("space.Create: %w", err)
	}

	s.log.InfoContext(ctx, "space created",
		slog.String("user_id", userID.String()),
		slog.String("space_id", created.ID.String()))

	return created, nil
}

func (s *Service) requireOrgAdmin(ctx context.Context, orgID, userID uuid.UUID) error {
	m, err := s.members.GetMembership(ctx, orgID, userID)
	if err != nil {
		if !errors.Is(err, domain.ErrNotFound) {
			return fmt.Errorf("get membership: %w", err)
		}
		exists, exErr := s.members.Exists(ctx, orgID)
		if exErr != nil {
			return fmt.Errorf("check organization: %w", exErr)
		}
		if exists {
			return domain.ErrForbidden
		}
		return fmt.Errorf("organization %s: %w", orgID, domain.ErrNotFound)
	}
	if !m.Role.AtLeast(domain.MemberRoleAdmin) {
		return domain.ErrForbidden
	}
	return nil
}

// ListSpaces returns every space the caller can access, or only the spaces of
// one organization when orgID is set.
func (s *Service) ListSpaces(ctx context.Context, orgID *uuid.UUID) ([]domain.Space, error) {
	userID, ok := ctxutil.UserIDFromCtx(ctx)
	if !ok {
		return nil, domain.ErrUnauthorized
	}

	if orgID == nil {
		spaces, err := s.spaces.ListAccessible(ctx, userID)
		if err != nil {
			return nil, fmt.Errorf("space.List: %w", err)
		}
		return spaces, nil
	}

	if _, err := s.members.GetMembership(ctx, *orgID, userID); err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			exists, exErr := s.members.Exists(ctx, *orgID)
			if exErr != nil {
				return nil, fmt.Errorf("space.List: %w", exErr)
			}
			if exists {
				return nil, fmt.Errorf("space.List: %w", domain.ErrForbidden)
			}
		}
		return nil, fmt.Errorf("space.List: %w", err)
	}

	spaces, err := s.spaces.ListByOrganization(ctx, *orgID)
	if err != nil {
		return nil, fmt.Errorf("space.List: %w", err)
	}
	return spaces, nil
}

// GetSpace returns a space the caller can access.
func (s *Service) GetSpace(ctx context.Context, spaceID uuid.UUID) (*domain.Space, error) {
	userID, ok := ctxutil.UserIDFromCtx(ctx)
	if !ok {
		return nil, domain.ErrUnauthorized
	}

	sp, err := s.access.RequireSpace(ctx, userID, spaceID, domain.SpaceAccessWrite)
	if err != nil {
		return nil, fmt.Errorf("space.Get: %w", err)
	}
	return sp, nil
}

// UpdateSpace renames a space or changes its description.
// Organization spaces require admin or owner.
func (s *Service) UpdateSpace(ctx context.Context, spaceID uuid.UUID, input UpdateSpaceInput) (*domain.Space, error) {
	userID, ok := ctxutil.UserIDFromCtx(ctx)
	if !ok {
		return nil, domain.ErrUnauthorized
	}

	if input.Name != nil {
		n := domain.NormalizeText(*input.Name)
		input.Name = &n
	}
	if input.Description != nil {
		d := strings.TrimSpace(*input.Description)
		input.Description = &d
	}
	if err := input.Validate(); err != nil {
		return nil, err
	}

	var updated *domain.Space
	err := s.tx.RunInTx(ctx, func(txCtx context.Context) error {
		old, err := s.access.RequireSpace(txCtx, userID, spaceID, domain.SpaceAccessManage)
		if err != nil {
			return err
		}

		updated, err = s.spaces.Update(txCtx, spaceID, domain.SpaceUpdateParams{
			Name:        input.Name,
			Description: input.Description,
		})
		if err != nil {
			return fmt.Errorf("update space: %w", err)
		}

		changes := make(map[string]any)
		if input.Name != nil && old.Name != updated.Name {
			changes["name"] = map[string]any{"old": old.Name, "new": updated.Name}
		}
		if input.Description != nil {
			changes["description"] = map[string]any{"old": old.Description, "new": updated.Description}
		}
		return s.audit.Log(txCtx, domain.AuditRecord{
			UserID:     userID,
			EntityType: domain.EntityTypeSpace,
			EntityID:   &spaceID,
			Action:     domain.AuditActionUpdate,
			Changes:    changes,
		})
	})
	if err != nil {
		return nil, fmt.Errorf("space.Update: %w", err)
	}

	s.log.InfoContext(ctx, "space updated",
		slog.String("user_id", userID.String()),
		slog.String("space_id", spaceID.String()))

	return updated, nil
}

// DeleteSpace deletes a space together with its chats, notes and files.
// Stored blobs are removed after the transaction commits.
func (s *Service) DeleteSpace(ctx context.Context, spaceID uuid.UUID) error {
	userID, ok := ctxutil.UserIDFromCtx(ctx)
	if !ok {
		return domain.ErrUnauthorized
	}

	var keys []string
	err := s.tx.RunInTx(ctx, func(txCtx context.Context) error {
		if _, err := s.access.RequireSpace(txCtx, userID, spaceID, domain.SpaceAccessManage); err != nil {
			return err
		}

		var err error
		keys, err = s.files.StorageKeysBySpace(txCtx, spaceID)
		if err != nil {
			return fmt.Errorf("list blobs: %w", err)
		}

		if err := s.spaces.Delete(txCtx, spaceID); err != nil {
			return fmt.Errorf("delete space: %w", err)
		}

		return s.audit.Log(txCtx, domain.AuditRecord{
			UserID:     userID,
			EntityType: domain.EntityTypeSpace,
			EntityID:   &spaceID,
			Action:     domain.AuditActionDelete,
			Changes:    map[string]any{"blobs": map[string]any{"old": len(keys)}},
		})
	})
	if err != nil {
		return fmt.Errorf("space.Delete: %w", err)
	}

	if err := s.blobs.Delete(ctx, keys...); err != nil {
		s.log.WarnContext(ctx, "space blobs left behind",
			slog.String("space_id", spaceID.String()),
			slog.Int("count", len(keys)),
			slog.String("error", err.Error()))
	}

	s.log.InfoContext(ctx, "space deleted",
		slog.String("user_id", userID.String()),
		slog.String("space_id", spaceID.String()))

	return nil
}
