package note

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/heartmarshall/workbench-backend/internal/domain"
	"github.com/heartmarshall/workbench-backend/internal/service/access"
	"github.com/heartmarshall/workbench-backend/pkg/ctxutil"
)

// CreateNote creates a note at the end of the caller's list. A missing title
// is a validation error.
func (s *Service) CreateNote(ctx context.Context, input CreateNoteInput) (*domain.Note, error) {
	userID, ok := ctxutil.UserIDFromCtx(ctx)
	if !ok {
		return nil, domain.ErrUnauthorized
	}

	input.Title = domain.NormalizeText(input.Title)
	input.FolderPath = domain.NormalizeFolderPath(input.FolderPath)
	input.Tags = domain.NormalizeTags(input.Tags)
	if err := input.Validate(); err != nil {
		return nil, err
	}

	var created *domain.Note
	err := s.tx.RunInTx(ctx, func(txCtx context.Context) error {
		if input.SpaceID != nil {
			if _, err := s.access.RequireSpace(txCtx, userID, *input.SpaceID, domain.SpaceAccessWrite); err != nil {
				return err
			}
		}

		pos, err := s.notes.NextPosition(txCtx, userID, input.SpaceID)
		if err != nil {
			return fmt.Errorf("next position: %w", err)
		}

		now := time.Now()
		created, err = s.notes.Create(txCtx, &domain.Note{
			ID:       uuid.New(),
			UserID:   userID,
			SpaceID:  input.SpaceID,
			Title:    input.Title,
			Content:  input.Content,
			Position: pos,
			Metadata: domain.NoteMetadata{
				FolderPath: input.FolderPath,
				Tags:       input.Tags,
				Pinned:     input.Pinned,
			},
			CreatedAt: now,
			UpdatedAt: now,
		})
		if err != nil {
			return fmt.Errorf("create note: %w", err)
		}

		return s.audit.Log(txCtx, domain.AuditRecord{
			UserID:     userID,
			EntityType: domain.EntityTypeNote,
			EntityID:   &created.ID,
			Action:     domain.AuditActionCreate,
			Changes:    map[string]any{"title": map[string]any{"new": created.Title}},
		})
	})
	if err != nil {
		return nil, fmt.Errorf("note.Create: %w", err)
	}

	s.index.IndexNote(*created)

	s.log.InfoContext(ctx, "note created",
		slog.String("user_id", userID.String()),
		slog.String("note_id", created.ID.String()))

	return created, nil
}

// ListNotes returns the caller's notes ordered by position.
func (s *Service) ListNotes(ctx context.Context, input ListNotesInput) ([]domain.Note, error) {
	userID, ok := ctxutil.UserIDFromCtx(ctx)
	if !ok {
		return nil, domain.ErrUnauthorized
	}

	if err := input.Validate(); err != nil {
		return nil, err
	}

	if input.SpaceID != nil {
		if _, err := s.access.RequireSpace(ctx, userID, *input.SpaceID, domain.SpaceAccessWrite); err != nil {
			return nil, fmt.Errorf("note.List: %w", err)
		}
	}

	filter := domain.NoteFilter{
		SpaceID:   input.SpaceID,
		Recursive: input.Recursive,
		Limit:     s.pageSize(input.Limit),
		Offset:    input.Offset,
	}
	if input.Folder != nil {
		filter.FolderPath = domain.ParseFolderPath(*input.Folder)
	}
	if input.Tag != nil {
		tags := domain.NormalizeTags([]string{*input.Tag})
		if len(tags) > 0 {
			filter.Tag = &tags[0]
		}
	}
	if input.Query != nil {
		if q := strings.TrimSpace(*input.Query); q != "" {
			filter.Search = &q
		}
	}

	notes, err := s.notes.List(ctx, userID, filter)
	if err != nil {
		return nil, fmt.Errorf("note.List: %w", err)
	}
	return notes, nil
}

// GetNote returns one of the caller's notes.
func (s *Service) GetNote(ctx context.Context, noteID uuid.UUID) (*domain.Note, error) {
	userID, ok := ctxutil.UserIDFromCtx(ctx)
	if !ok {
		return nil, domain.ErrUnauthorized
	}

	n, err := s.ownedNote(ctx, userID, noteID)
	if err != nil {
		return nil, fmt.Errorf("note.Get: %w", err)
	}
	return n, nil
}

// UpdateNote applies a partial update. Moving to another space requires write
// access to the target space.
func (s *Service) UpdateNote(ctx context.Context, noteID uuid.UUID, input UpdateNoteInput) (*domain.Note, error) {
	userID, ok := ctxutil.UserIDFromCtx(ctx)
	if !ok {
		return nil, domain.ErrUnauthorized
	}

	input = normalizeUpdate(input)
	if err := input.Validate(); err != nil {
		return nil, err
	}

	var updated *domain.Note
	err := s.tx.RunInTx(ctx, func(txCtx context.Context) error {
		old, err := s.ownedNote(txCtx, userID, noteID)
		if err != nil {
			return err
		}
		if input.SpaceID != nil {
			if _, err := s.access.RequireSpace(txCtx, userID, *input.SpaceID, domain.SpaceAccessWrite); err != nil {
				return err
			}
		}

		updated, err = s.notes.Update(txCtx, noteID, input.params())
		if err != nil {
			return fmt.Errorf("update note: %w", err)
		}

		return s.audit.Log(txCtx, domain.AuditRecord{
			UserID:     userID,
			EntityType: domain.EntityTypeNote,
			EntityID:   &noteID,
			Action:     domain.AuditActionUpdate,
			Changes:    diff(old, updated),
		})
	})
	if err != nil {
		return nil, fmt.Errorf("note.Update: %w", err)
	}

	s.index.IndexNote(*updated)

	s.log.InfoContext(ctx, "note updated",
		slog.String("user_id", userID.String()),
		slog.String("note_id", noteID.String()))

	return updated, nil
}

// DeleteNote deletes one of the caller's notes.
func (s *Service) DeleteNote(ctx context.Context, noteID uuid.UUID) error {
	userID, ok := ctxutil.UserIDFromCtx(ctx)
	if !ok {
		return domain.ErrUnauthorized
	}

	err := s.tx.RunInTx(ctx, func(txCtx context.Context) error {
		old, err := s.ownedNote(txCtx, userID, noteID)
		if err != nil {
			return err
		}
		if err := s.notes.Delete(txCtx, noteID); err != nil {
			return fmt.Errorf("delete note: %w", err)
		}
		return s.audit.Log(txCtx, domain.AuditRecord{
			UserID:     userID,
			EntityType: domain.EntityTypeNote,
			EntityID:   &noteID,
			Action:     domain.AuditActionDelete,
			Changes:    map[string]any{"title": map[string]any{"old": old.Title}},
		})
	})
	if err != nil {
		return fmt.Errorf("note.Delete: %w", err)
	}

	s.index.DeleteNote(noteID)

	s.log.InfoContext(ctx, "note deleted",
		slog.String("user_id", userID.String()),
		slog.String("note_id", noteID.String()))

	return nil
}

// ListFolders returns every folder path in use, including intermediate ones.
func (s *Service) ListFolders(ctx context.Context, spaceID *uuid.UUID) ([][]string, error) {
	userID, ok := ctxutil.UserIDFromCtx(ctx)
	if !ok {
		return nil, domain.ErrUnauthorized
	}

	if spaceID != nil {
		if _, err := s.access.RequireSpace(ctx, userID, *spaceID, domain.SpaceAccessWrite); err != nil {
			return nil, fmt.Errorf("note.ListFolders: %w", err)
		}
	}

	folders, err := s.notes.ListFolders(ctx, userID, spaceID)
	if err != nil {
		return nil, fmt.Errorf("note.ListFolders: %w", err)
	}
	return folders, nil
}

func (s *Service) ownedNote(ctx context.Context, userID, noteID uuid.UUID) (*domain.Note, error) {
	n, err := s.notes.GetByID(ctx, noteID)
	if err != nil {
		return nil, err
	}
	if err := access.RequireOwner(userID, n.UserID); err != nil {
		return nil, err
	}
	return n, nil
}

func normalizeUpdate(in UpdateNoteInput) UpdateNoteInput {
	if in.Title != nil {
		t := domain.NormalizeText(*in.Title)
		in.Title = &t
	}
	if in.FolderPath != nil {
		p := domain.NormalizeFolderPath(*in.FolderPath)
		in.FolderPath = &p
	}
	if in.Tags != nil {
		tags := domain.NormalizeTags(*in.Tags)
		in.Tags = &tags
	}
	return in
}

func diff(old, updated *domain.Note) map[string]any {
	changes := make(map[string]any)
	if old.Title != updated.Title {
		changes["title"] = map[string]any{"old": old.Title, "new": updated.Title}
	}
	if old.Content != updated.Content {
		changes["content"] = map[string]any{"changed": true}
	}
	if !equalPath(old.Metadata.FolderPath, updated.Metadata.FolderPath) {
		changes["folder_path"] = map[string]any{"old": old.Metadata.FolderPath, "new": updated.Metadata.FolderPath}
	}
	if !equalPath(old.Metadata.Tags, updated.Metadata.Tags) {
		changes["tags"] = map[string]any{"old": old.Metadata.Tags, "new": updated.Metadata.Tags}
	}
	if old.Metadata.Pinned != updated.Metadata.Pinned {
		changes["pinned"] = map[string]any{"old": old.Metadata.Pinned, "new": updated.Metadata.Pinned}
	}
	if !sameSpace(old.SpaceID, updated.SpaceID) {
		changes["space_id"] = map[string]any{"old": old.SpaceID, "new": updated.SpaceID}
	}
	return changes
}

func equalPath(a, b []string) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}

func sameSpace(a, b *uuid.UUID) bool {
	if a == nil || b == nil {
		return a == b
	}
	return *a == *b
}
