package domain

import (
	"time"

	"github.com/google/uuid"
)

// Note is a user's markdown note. Folder placement lives in Metadata.FolderPath.
type Note struct {
	ID        uuid.UUID
	UserID    uuid.UUID
	SpaceID   *uuid.UUID
	Title     string
	Content   string
	Position  int
	Metadata  NoteMetadata
	CreatedAt time.Time
	UpdatedAt time.Time
}

// NoteMetadata is stored as a JSON document alongside the note.
type NoteMetadata struct {
	FolderPath []string `json:"folderPath"`
	Tags       []string `json:"tags"`
	Pinned     bool     `json:"pinned"`
}

// NoteUpdateParams holds optional fields for a note update.
type NoteUpdateParams struct {
	Title      *string
	Content    *string
	FolderPath *[]string
	Tags       *[]string
	Pinned     *bool
	SpaceID    *uuid.UUID
}

// IsEmpty reports whether no field is set.
func (p NoteUpdateParams) IsEmpty() bool {
	return p.Title == nil && p.Content == nil && p.FolderPath == nil &&
		p.Tags == nil && p.Pinned == nil && p.SpaceID == nil
}

// NoteFilter narrows a note listing.
type NoteFilter struct {
	SpaceID *uuid.UUID
	// FolderPath selects notes whose folder path starts with the given segments.
	FolderPath []string
	// Recursive includes notes in sub-folders of FolderPath.
	Recursive bool
	Tag       *string
	Search    *string
	Limit     int
	Offset    int
}

// NotePosition is one element of a reorder request.
type NotePosition struct {
	ID       uuid.UUID
	Position int
}
