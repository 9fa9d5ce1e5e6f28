package file

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/heartmarshall/workbench-backend/internal/domain"
	"github.com/heartmarshall/workbench-backend/pkg/ctxutil"
)

// Upload stores the body in blob storage and records the file entry.
// Returns ErrTooLarge when Size exceeds the configured upload limit.
func (s *Service) Upload(ctx context.Context, input UploadInput) (*domain.File, error) {
	userID, ok := ctxutil.UserIDFromCtx(ctx)
	if !ok {
		return nil, domain.ErrUnauthorized
	}

	input.Name = strings.TrimSpace(input.Name)
	if input.ContentType == "" {
		input.ContentType = defaultContentType
	}
	if err := input.Validate(); err != nil {
		return nil, err
	}
	if s.limits.MaxUploadBytes > 0 && input.Size > s.limits.MaxUploadBytes {
		return nil, fmt.Errorf("file.Upload: %d bytes: %w", input.Size, domain.ErrTooLarge)
	}

	spaceID, err := s.placement(ctx, userID, input.ParentID, input.SpaceID)
	if err != nil {
		return nil, fmt.Errorf("file.Upload: %w", err)
	}

	id := uuid.New()
	key := storageKey(userID, id)

	etag, err := s.blobs.Put(ctx, key, input.Body, input.Size, input.ContentType)
	if err != nil {
		return nil, fmt.Errorf("file.Upload put blob: %w", err)
	}

	var created *domain.File
	err = s.tx.RunInTx(ctx, func(txCtx context.Context) error {
		now := time.Now()
		var err error
		created, err = s.files.Create(txCtx, &domain.File{
			ID:          id,
			UserID:      userID,
			SpaceID:     spaceID,
			Kind:        domain.FileKindFile,
			Name:        input.Name,
			Size:        input.Size,
			ContentType: input.ContentType,
			StorageKey:  key,
			Metadata:    domain.FileMetadata{ParentID: input.ParentID, ETag: etag},
			CreatedAt:   now,
			UpdatedAt:   now,
		})
		if err != nil {
			return fmt.Errorf("create file: %w", err)
		}

		return s.audit.Log(txCtx, domain.AuditRecord{
			UserID:     userID,
			EntityType: domain.EntityTypeFile,
			EntityID:   &created.ID,
			Action:     domain.AuditActionCreate,
			Changes: map[string]any{
				"name": map[string]any{"new": created.Name},
				"size": map[string]any{"new": created.Size},
			},
		})
	})
	if err != nil {
		if delErr := s.blobs.Delete(ctx, key); delErr != nil {
			s.log.WarnContext(ctx, "orphaned blob after failed upload",
				slog.String("key", key),
				slog.String("error", delErr.Error()))
		}
		return nil, fmt.Errorf("file.Upload: %w", err)
	}

	s.log.InfoContext(ctx, "file uploaded",
		slog.String("user_id", userID.String()),
		slog.String("file_id", created.ID.String()),
		slog.Int64("size", created.Size))

	return created, nil
}

// CreateFolder creates an empty folder.
func (s *Service) CreateFolder(ctx context.Context, input CreateFolderInput) (*domain.File, error) {
	userID, ok := ctxutil.UserIDFromCtx(ctx)
	if !ok {
		return nil, domain.ErrUnauthorized
	}

	input.Name = strings.TrimSpace(input.Name)
	if err := input.Validate(); err != nil {
		return nil, err
	}

	var created *domain.File
	err := s.tx.RunInTx(ctx, func(txCtx context.Context) error {
		spaceID, err := s.placement(txCtx, userID, input.ParentID, input.SpaceID)
		if err != nil {
			return err
		}

		now := time.Now()
		created, err = s.files.Create(txCtx, &domain.File{
			ID:        uuid.New(),
			UserID:    userID,
			SpaceID:   spaceID,
			Kind:      domain.FileKindFolder,
			Name:      input.Name,
			Metadata:  domain.FileMetadata{ParentID: input.ParentID},
			CreatedAt: now,
			UpdatedAt: now,
		})
		if err != nil {
			return fmt.Errorf("create folder: %w", err)
		}

		return s.audit.Log(txCtx, domain.AuditRecord{
			UserID:     userID,
			EntityType: domain.EntityTypeFile,
			EntityID:   &created.ID,
			Action:     domain.AuditActionCreate,
			Changes:    map[string]any{"folder": map[string]any{"new": created.Name}},
		})
	})
	if err != nil {
		return nil, fmt.Errorf("file.CreateFolder: %w", err)
	}

	s.log.InfoContext(ctx, "folder created",
		slog.String("user_id", userID.String()),
		slog.String("file_id", created.ID.String()))

	return created, nil
}

// placement resolves the space a new entry lands in. Entries inside a folder
// inherit the folder's space; top-level entries need write access to spaceID.
func (s *Service) placement(ctx context.Context, userID uuid.UUID, parentID, spaceID *uuid.UUID) (*uuid.UUID, error) {
	if parentID != nil {
		parent, err := s.ownedFolder(ctx, userID, *parentID)
		if err != nil {
			return nil, err
		}
		return parent.SpaceID, nil
	}
	if spaceID != nil {
		if _, err := s.access.RequireSpace(ctx, userID, *spaceID, domain.SpaceAccessWrite); err != nil {
			return nil, err
		}
	}
	return spaceID, nil
}
