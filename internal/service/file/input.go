package file

import (
	"io"
	"strings"
	"unicode/utf8"

	"github.com/google/uuid"

	"github.com/heartmarshall/workbench-backend/internal/domain"
)

const (
	maxNameLen         = 255
	defaultContentType = "application/octet-stream"
)

// UploadInput holds a new file's attributes and body. Size must be the exact
// body length. A ParentID places the file in that folder and its space.
type UploadInput struct {
	Name        string
	ContentType string
	Size        int64
	Body        io.Reader
	ParentID    *uuid.UUID
	SpaceID     *uuid.UUID
}

func (i UploadInput) Validate() error {
	var errs []domain.FieldError
	errs = append(errs, validateName(i.Name)...)
	if i.Body == nil {
		errs = append(errs, domain.FieldError{Field: "file", Message: "required"})
	}
	if i.Size < 0 {
		errs = append(errs, domain.FieldError{Field: "size", Message: "must be non-negative"})
	}
	if len(i.ContentType) > 255 {
		errs = append(errs, domain.FieldError{Field: "content_type", Message: "too long"})
	}
	if len(errs) > 0 {
		return &domain.ValidationError{Errors: errs}
	}
	return nil
}

// CreateFolderInput holds parameters for creating a folder.
type CreateFolderInput struct {
	Name     string
	ParentID *uuid.UUID
	SpaceID  *uuid.UUID
}

func (i CreateFolderInput) Validate() error {
	if errs := validateName(i.Name); len(errs) > 0 {
		return &domain.ValidationError{Errors: errs}
	}
	return nil
}

// ListFilesInput lists one folder level; nil ParentID is the root.
type ListFilesInput struct {
	SpaceID  *uuid.UUID
	ParentID *uuid.UUID
	Kind     *domain.FileKind
}

func (i ListFilesInput) Validate() error {
	if i.Kind != nil && !i.Kind.IsValid() {
		return domain.NewValidationError("kind", "must be file or folder")
	}
	return nil
}

// UpdateFileInput renames and/or moves an entry. MoveToRoot and ParentID are
// mutually exclusive.
type UpdateFileInput struct {
	Name       *string
	ParentID   *uuid.UUID
	MoveToRoot bool
}

func (i UpdateFileInput) Validate() error {
	var errs []domain.FieldError
	if i.Name == nil && i.ParentID == nil && !i.MoveToRoot {
		errs = append(errs, domain.FieldError{Field: "input", Message: "at least one field must be provided"})
	}
	if i.ParentID != nil && i.MoveToRoot {
		errs = append(errs, domain.FieldError{Field: "parent_id", Message: "cannot combine parent_id with move to root"})
	}
	if i.Name != nil {
		errs = append(errs, validateName(*i.Name)...)
	}
	if len(errs) > 0 {
		return &domain.ValidationError{Errors: errs}
	}
	return nil
}

func validateName(name string) []domain.FieldError {
	switch {
	case name == "":
		return []domain.FieldError{{Field: "name", Message: "required"}}
	case utf8.RuneCountInString(name) > maxNameLen:
		return []domain.FieldError{{Field: "name", Message: "max 255 characters"}}
	case name == "." || name == "..":
		return []domain.FieldError{{Field: "name", Message: "reserved name"}}
	case strings.ContainsAny(name, "/\\\x00"):
		return []domain.FieldError{{Field: "name", Message: "must not contain slashes"}}
	}
	return nil
}
