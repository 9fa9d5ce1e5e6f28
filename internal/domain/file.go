package domain

import (
	"time"

	"github.com/google/uuid"
)

// File is a stored blob or a folder. Hierarchy is expressed by Metadata.ParentID.
type File struct {
	ID          uuid.UUID
	UserID      uuid.UUID
	SpaceID     *uuid.UUID
	Kind        FileKind
	Name        string
	Size        int64
	ContentType string
	StorageKey  string // empty for folders
	Metadata    FileMetadata
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// FileMetadata is stored as a JSON document alongside the file row.
type FileMetadata struct {
	ParentID *uuid.UUID `json:"parentId,omitempty"`
	ETag     string     `json:"etag,omitempty"`
}

// IsFolder reports whether the entry is a folder.
func (f *File) IsFolder() bool {
	return f.Kind == FileKindFolder
}

// FileUpdateParams holds optional fields for rename/move.
type FileUpdateParams struct {
	Name *string
	// ParentID moves the file. Set MoveToRoot to move it to the top level.
	ParentID   *uuid.UUID
	MoveToRoot bool
}

// FileFilter narrows a file listing to one folder level.
type FileFilter struct {
	SpaceID  *uuid.UUID
	ParentID *uuid.UUID // nil = root
	Kind     *FileKind
}
