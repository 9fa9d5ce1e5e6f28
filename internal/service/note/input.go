package note

import (
	"errors"
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/google/uuid"

	"github.com/heartmarshall/workbench-backend/internal/domain"
)

const (
	maxTitleLen   = 200
	maxContentLen = 1_000_000
	maxTags       = 50
	maxTagLen     = 50
	maxFolderLen  = 20
	maxSegmentLen = 100
)

// CreateNoteInput holds parameters for creating a note.
type CreateNoteInput struct {
	Title      string
	Content    string
	SpaceID    *uuid.UUID
	FolderPath []string
	Tags       []string
	Pinned     bool
}

func (i CreateNoteInput) Validate() error {
	var errs []domain.FieldError
	if i.Title == "" {
		errs = append(errs, domain.FieldError{Field: "title", Message: "required"})
	}
	errs = append(errs, validateFields(&i.Title, &i.Content, &i.FolderPath, &i.Tags)...)
	if len(errs) > 0 {
		return &domain.ValidationError{Errors: errs}
	}
	return nil
}

// ListNotesInput narrows a note listing. Folder is a slash separated path;
// nil means any folder and "" means the root.
type ListNotesInput struct {
	SpaceID   *uuid.UUID
	Folder    *string
	Recursive bool
	Tag       *string
	Query     *string
	Limit     int
	Offset    int
}

func (i ListNotesInput) Validate() error {
	var errs []domain.FieldError
	if i.Limit < 0 {
		errs = append(errs, domain.FieldError{Field: "limit", Message: "must be non-negative"})
	}
	if i.Offset < 0 {
		errs = append(errs, domain.FieldError{Field: "offset", Message: "must be non-negative"})
	}
	if i.Query != nil && len(*i.Query) > 200 {
		errs = append(errs, domain.FieldError{Field: "q", Message: "too long"})
	}
	if len(errs) > 0 {
		return &domain.ValidationError{Errors: errs}
	}
	return nil
}

// UpdateNoteInput holds optional fields for a note update.
type UpdateNoteInput struct {
	Title      *string
	Content    *string
	SpaceID    *uuid.UUID
	FolderPath *[]string
	Tags       *[]string
	Pinned     *bool
}

func (i UpdateNoteInput) params() domain.NoteUpdateParams {
	return domain.NoteUpdateParams{
		Title:      i.Title,
		Content:    i.Content,
		FolderPath: i.FolderPath,
		Tags:       i.Tags,
		Pinned:     i.Pinned,
		SpaceID:    i.SpaceID,
	}
}

func (i UpdateNoteInput) Validate() error {
	var errs []domain.FieldError
	if i.params().IsEmpty() {
		errs = append(errs, domain.FieldError{Field: "input", Message: "at least one field must be provided"})
	}
	if i.Title != nil && *i.Title == "" {
		errs = append(errs, domain.FieldError{Field: "title", Message: "cannot be empty"})
	}
	errs = append(errs, validateFields(i.Title, i.Content, i.FolderPath, i.Tags)...)
	if len(errs) > 0 {
		return &domain.ValidationError{Errors: errs}
	}
	return nil
}

// BatchUpdateInput applies one update to many notes.
type BatchUpdateInput struct {
	IDs    []uuid.UUID
	Update UpdateNoteInput
}

// Validate checks the batch against maxBatch.
func (i BatchUpdateInput) Validate(maxBatch int) error {
	var errs []domain.FieldError
	if len(i.IDs) == 0 {
		errs = append(errs, domain.FieldError{Field: "ids", Message: "required"})
	} else if maxBatch > 0 && len(i.IDs) > maxBatch {
		errs = append(errs, domain.FieldError{Field: "ids", Message: fmt.Sprintf("max %d items", maxBatch)})
	}
	if i.Update.Title != nil || i.Update.Content != nil {
		errs = append(errs, domain.FieldError{Field: "update", Message: "title and content cannot be batch-updated"})
	}
	var ve *domain.ValidationError
	if errors.As(i.Update.Validate(), &ve) {
		errs = append(errs, ve.Errors...)
	}
	if len(errs) > 0 {
		return &domain.ValidationError{Errors: errs}
	}
	return nil
}

// ReorderInput sets explicit positions for notes.
type ReorderInput struct {
	Positions []domain.NotePosition
}

// Validate checks the reorder request against maxBatch.
func (i ReorderInput) Validate(maxBatch int) error {
	var errs []domain.FieldError
	if len(i.Positions) == 0 {
		errs = append(errs, domain.FieldError{Field: "positions", Message: "required"})
	} else if maxBatch > 0 && len(i.Positions) > maxBatch {
		errs = append(errs, domain.FieldError{Field: "positions", Message: fmt.Sprintf("max %d items", maxBatch)})
	}
	seen := make(map[uuid.UUID]struct{}, len(i.Positions))
	for idx, p := range i.Positions {
		if p.Position < 0 {
			errs = append(errs, domain.FieldError{Field: fmt.Sprintf("positions[%d].position", idx), Message: "must be non-negative"})
		}
		if _, dup := seen[p.ID]; dup {
			errs = append(errs, domain.FieldError{Field: fmt.Sprintf("positions[%d].id", idx), Message: "duplicate id"})
		}
		seen[p.ID] = struct{}{}
	}
	if len(errs) > 0 {
		return &domain.ValidationError{Errors: errs}
	}
	return nil
}

func validateFields(title, content *string, folder, tags *[]string) []domain.FieldError {
	var errs []domain.FieldError
	if title != nil && utf8.RuneCountInString(*title) > maxTitleLen {
		errs = append(errs, domain.FieldError{Field: "title", Message: "max 200 characters"})
	}
	if content != nil && len(*content) > maxContentLen {
		errs = append(errs, domain.FieldError{Field: "content", Message: "too long"})
	}
	if folder != nil {
		if len(*folder) > maxFolderLen {
			errs = append(errs, domain.FieldError{Field: "folder_path", Message: "too deep"})
		}
		for _, seg := range *folder {
			if utf8.RuneCountInString(seg) > maxSegmentLen {
				errs = append(errs, domain.FieldError{Field: "folder_path", Message: "segment too long"})
				break
			}
			// List filters split on "/", so a segment containing it could never be selected.
			if strings.Contains(seg, "/") {
				errs = append(errs, domain.FieldError{Field: "folder_path", Message: "segment must not contain /"})
				break
			}
		}
	}
	if tags != nil {
		if len(*tags) > maxTags {
			errs = append(errs, domain.FieldError{Field: "tags", Message: "too many tags"})
		}
		for _, tag := range *tags {
			if utf8.RuneCountInString(tag) > maxTagLen {
				errs = append(errs, domain.FieldError{Field: "tags", Message: "tag too long"})
				break
			}
		}
	}
	return errs
}
