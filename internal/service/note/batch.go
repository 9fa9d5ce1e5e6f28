package note

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/google/uuid"

	"github.com/heartmarshall/workbench-backend/internal/domain"
	"github.com/heartmarshall/workbench-backend/pkg/ctxutil"
)

// BatchUpdate applies the same folder, tag, pin or space change to many notes.
// Every id must belong to the caller.
func (s *Service) BatchUpdate(ctx context.Context, input BatchUpdateInput) ([]domain.Note, error) {
	userID, ok := ctxutil.UserIDFromCtx(ctx)
	if !ok {
		return nil, domain.ErrUnauthorized
	}

	input.IDs = dedupe(input.IDs)
	input.Update = normalizeUpdate(input.Update)
	if err := input.Validate(s.limits.MaxBatchSize); err != nil {
		return nil, err
	}

	var updated []domain.Note
	err := s.tx.RunInTx(ctx, func(txCtx context.Context) error {
		if err := s.requireAllOwned(txCtx, userID, input.IDs); err != nil {
			return err
		}
		if input.Update.SpaceID != nil {
			if _, err := s.access.RequireSpace(txCtx, userID, *input.Update.SpaceID, domain.SpaceAccessWrite); err != nil {
				return err
			}
		}

		var err error
		updated, err = s.notes.BatchUpdate(txCtx, userID, input.IDs, input.Update.params())
		if err != nil {
			return fmt.Errorf("batch update: %w", err)
		}

		return s.audit.Log(txCtx, domain.AuditRecord{
			UserID:     userID,
			EntityType: domain.EntityTypeNote,
			Action:     domain.AuditActionUpdate,
			Changes: map[string]any{
				"batch": map[string]any{"ids": idStrings(input.IDs)},
			},
		})
	})
	if err != nil {
		return nil, fmt.Errorf("note.BatchUpdate: %w", err)
	}

	for _, n := range updated {
		s.index.IndexNote(n)
	}

	s.log.InfoContext(ctx, "notes batch updated",
		slog.String("user_id", userID.String()),
		slog.Int("count", len(updated)))

	return updated, nil
}

// Reorder assigns explicit positions to the caller's notes.
func (s *Service) Reorder(ctx context.Context, input ReorderInput) error {
	userID, ok := ctxutil.UserIDFromCtx(ctx)
	if !ok {
		return domain.ErrUnauthorized
	}

	if err := input.Validate(s.limits.MaxBatchSize); err != nil {
		return err
	}

	ids := make([]uuid.UUID, len(input.Positions))
	for i, p := range input.Positions {
		ids[i] = p.ID
	}

	err := s.tx.RunInTx(ctx, func(txCtx context.Context) error {
		if err := s.requireAllOwned(txCtx, userID, ids); err != nil {
			return err
		}
		if err := s.notes.Reorder(txCtx, userID, input.Positions); err != nil {
			return fmt.Errorf("reorder: %w", err)
		}
		return s.audit.Log(txCtx, domain.AuditRecord{
			UserID:     userID,
			EntityType: domain.EntityTypeNote,
			Action:     domain.AuditActionUpdate,
			Changes:    map[string]any{"reorder": map[string]any{"count": len(ids)}},
		})
	})
	if err != nil {
		return fmt.Errorf("note.Reorder: %w", err)
	}

	s.log.InfoContext(ctx, "notes reordered",
		slog.String("user_id", userID.String()),
		slog.Int("count", len(ids)))

	return nil
}

// requireAllOwned fails with ErrForbidden if any id belongs to someone else
// and ErrNotFound if any id does not exist.
func (s *Service) requireAllOwned(ctx context.Context, userID uuid.UUID, ids []uuid.UUID) error {
	owned, err := s.notes.GetByIDs(ctx, userID, ids)
	if err != nil {
		return fmt.Errorf("get notes: %w", err)
	}
	if len(owned) == len(ids) {
		return nil
	}

	have := make(map[uuid.UUID]struct{}, len(owned))
	for _, n := range owned {
		have[n.ID] = struct{}{}
	}
	for _, id := range ids {
		if _, ok := have[id]; ok {
			continue
		}
		if _, err := s.notes.GetByID(ctx, id); err != nil {
			if errors.Is(err, domain.ErrNotFound) {
				return fmt.Errorf("note %s: %w", id, domain.ErrNotFound)
			}
			return fmt.Errorf("get note: %w", err)
		}
		return fmt.Errorf("note %s: %w", id, domain.ErrForbidden)
	}
	return nil
}

func dedupe(ids []uuid.UUID) []uuid.UUID {
	seen := make(map[uuid.UUID]struct{}, len(ids))
	out := make([]uuid.UUID, 0, len(ids))
	for _, id := range ids {
		if _, ok := seen[id]; ok {
			continue
		}
		seen[id] = struct{}{}
		out = append(out, id)
	}
	return out
}

func idStrings(ids []uuid.UUID) []string {
	out := make([]string, len(ids))
	for i, id := range ids {
		out[i] = id.String()
	}
	return out
}
