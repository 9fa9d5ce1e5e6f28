package file

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/google/uuid"

	"github.com/heartmarshall/workbench-backend/internal/adapter/blob"
	"github.com/heartmarshall/workbench-backend/internal/domain"
	"github.com/heartmarshall/workbench-backend/internal/service/access"
	"github.com/heartmarshall/workbench-backend/pkg/ctxutil"
)

// ErrMoveIntoSelf is returned when a folder would be moved into itself or one
// of its descendants.
var ErrMoveIntoSelf = fmt.Errorf("cannot move a folder into itself: %w", domain.ErrConflict)

// ListFiles lists one folder level, folders first.
func (s *Service) ListFiles(ctx context.Context, input ListFilesInput) ([]domain.File, error) {
	userID, ok := ctxutil.UserIDFromCtx(ctx)
	if !ok {
		return nil, domain.ErrUnauthorized
	}

	if err := input.Validate(); err != nil {
		return nil, err
	}

	if input.ParentID != nil {
		if _, err := s.ownedFolder(ctx, userID, *input.ParentID); err != nil {
			return nil, fmt.Errorf("file.List: %w", err)
		}
	}
	if input.SpaceID != nil {
		if _, err := s.access.RequireSpace(ctx, userID, *input.SpaceID, domain.SpaceAccessWrite); err != nil {
			return nil, fmt.Errorf("file.List: %w", err)
		}
	}

	files, err := s.files.List(ctx, userID, domain.FileFilter{
		SpaceID:  input.SpaceID,
		ParentID: input.ParentID,
		Kind:     input.Kind,
	})
	if err != nil {
		return nil, fmt.Errorf("file.List: %w", err)
	}
	return files, nil
}

// GetFile returns one of the caller's files or folders.
func (s *Service) GetFile(ctx context.Context, fileID uuid.UUID) (*domain.File, error) {
	userID, ok := ctxutil.UserIDFromCtx(ctx)
	if !ok {
		return nil, domain.ErrUnauthorized
	}

	f, err := s.ownedFile(ctx, userID, fileID)
	if err != nil {
		return nil, fmt.Errorf("file.Get: %w", err)
	}
	return f, nil
}

// Download opens the blob behind a file. The caller must close the object.
func (s *Service) Download(ctx context.Context, fileID uuid.UUID) (*domain.File, *blob.Object, error) {
	userID, ok := ctxutil.UserIDFromCtx(ctx)
	if !ok {
		return nil, nil, domain.ErrUnauthorized
	}

	f, err := s.ownedFile(ctx, userID, fileID)
	if err != nil {
		return nil, nil, fmt.Errorf("file.Download: %w", err)
	}
	if f.IsFolder() {
		return nil, nil, domain.NewValidationError("id", "folders have no content")
	}

	obj, err := s.blobs.Get(ctx, f.StorageKey)
	if err != nil {
		return nil, nil, fmt.Errorf("file.Download: %w", err)
	}
	return f, obj, nil
}

// UpdateFile renames and/or moves an entry. A folder cannot be moved into its
// own subtree, and entries cannot change space by moving.
func (s *Service) UpdateFile(ctx context.Context, fileID uuid.UUID, input UpdateFileInput) (*domain.File, error) {
	userID, ok := ctxutil.UserIDFromCtx(ctx)
	if !ok {
		return nil, domain.ErrUnauthorized
	}

	if input.Name != nil {
		n := strings.TrimSpace(*input.Name)
		input.Name = &n
	}
	if err := input.Validate(); err != nil {
		return nil, err
	}

	var updated *domain.File
	err := s.tx.RunInTx(ctx, func(txCtx context.Context) error {
		f, err := s.ownedFile(txCtx, userID, fileID)
		if err != nil {
			return err
		}

		if input.ParentID != nil {
			if err := s.checkMove(txCtx, userID, f, *input.ParentID); err != nil {
				return err
			}
		}

		updated, err = s.files.Update(txCtx, fileID, domain.FileUpdateParams{
			Name:       input.Name,
			ParentID:   input.ParentID,
			MoveToRoot: input.MoveToRoot,
		})
		if err != nil {
			return fmt.Errorf("update file: %w", err)
		}

		changes := make(map[string]any)
		if input.Name != nil && f.Name != updated.Name {
			changes["name"] = map[string]any{"old": f.Name, "new": updated.Name}
		}
		if input.ParentID != nil || input.MoveToRoot {
			changes["parent_id"] = map[string]any{"old": f.Metadata.ParentID, "new": updated.Metadata.ParentID}
		}
		return s.audit.Log(txCtx, domain.AuditRecord{
			UserID:     userID,
			EntityType: domain.EntityTypeFile,
			EntityID:   &fileID,
			Action:     domain.AuditActionUpdate,
			Changes:    changes,
		})
	})
	if err != nil {
		return nil, fmt.Errorf("file.Update: %w", err)
	}

	s.log.InfoContext(ctx, "file updated",
		slog.String("user_id", userID.String()),
		slog.String("file_id", fileID.String()))

	return updated, nil
}

func (s *Service) checkMove(ctx context.Context, userID uuid.UUID, f *domain.File, parentID uuid.UUID) error {
	parent, err := s.ownedFolder(ctx, userID, parentID)
	if err != nil {
		return err
	}
	if !sameSpace(parent.SpaceID, f.SpaceID) {
		return domain.NewValidationError("parent_id", "target folder is in another space")
	}
	if f.IsFolder() {
		inside, err := s.files.IsDescendant(ctx, f.ID, parentID)
		if err != nil {
			return fmt.Errorf("check descendant: %w", err)
		}
		if inside {
			return ErrMoveIntoSelf
		}
	}
	return nil
}

// DeleteFile deletes an entry. Deleting a folder deletes everything under it,
// and the blobs of all deleted files are removed afterwards.
func (s *Service) DeleteFile(ctx context.Context, fileID uuid.UUID) error {
	userID, ok := ctxutil.UserIDFromCtx(ctx)
	if !ok {
		return domain.ErrUnauthorized
	}

	var keys []string
	err := s.tx.RunInTx(ctx, func(txCtx context.Context) error {
		f, err := s.ownedFile(txCtx, userID, fileID)
		if err != nil {
			return err
		}

		keys, err = s.files.DeleteTree(txCtx, fileID)
		if err != nil {
			return fmt.Errorf("delete tree: %w", err)
		}

		return s.audit.Log(txCtx, domain.AuditRecord{
			UserID:     userID,
			EntityType: domain.EntityTypeFile,
			EntityID:   &fileID,
			Action:     domain.AuditActionDelete,
			Changes: map[string]any{
				"name":  map[string]any{"old": f.Name},
				"blobs": map[string]any{"old": len(keys)},
			},
		})
	})
	if err != nil {
		return fmt.Errorf("file.Delete: %w", err)
	}

	if err := s.blobs.Delete(ctx, keys...); err != nil {
		s.log.WarnContext(ctx, "blobs left behind after delete",
			slog.String("file_id", fileID.String()),
			slog.Int("count", len(keys)),
			slog.String("error", err.Error()))
	}

	s.log.InfoContext(ctx, "file deleted",
		slog.String("user_id", userID.String()),
		slog.String("file_id", fileID.String()),
		slog.Int("blobs", len(keys)))

	return nil
}

func (s *Service) ownedFile(ctx context.Context, userID, fileID uuid.UUID) (*domain.File, error) {
	f, err := s.files.GetByID(ctx, fileID)
	if err != nil {
		return nil, err
	}
	if err := access.RequireOwner(userID, f.UserID); err != nil {
		return nil, err
	}
	return f, nil
}

func (s *Service) ownedFolder(ctx context.Context, userID, folderID uuid.UUID) (*domain.File, error) {
	f, err := s.ownedFile(ctx, userID, folderID)
	if err != nil {
		return nil, err
	}
	if !f.IsFolder() {
		return nil, domain.NewValidationError("parent_id", "not a folder")
	}
	return f, nil
}

func sameSpace(a, b *uuid.UUID) bool {
	if a == nil || b == nil {
		return a == b
	}
	return *a == *b
}
