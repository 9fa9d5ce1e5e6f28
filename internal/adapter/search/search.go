// Package search provides full-text search over notes and chats. Meilisearch
// is used when configured and healthy; PostgreSQL full-text search is the
// fallback.
package search

import "github.com/google/uuid"

// ResultType identifies the kind of entity in a search result.
type ResultType string

const (
	ResultNote ResultType = "note"
	ResultChat ResultType = "chat"
)

// IsValid reports whether t is a known result type.
func (t ResultType) IsValid() bool {
	return t == ResultNote || t == ResultChat
}

// Result is a single search hit returned to the caller.
type Result struct {
	Type    ResultType `json:"type"`
	ID      string     `json:"id"`
	Title   string     `json:"title"`
	Snippet string     `json:"snippet"`
	SpaceID string     `json:"spaceId,omitempty"`
}

// Query describes a search request. Results are always scoped to UserID.
type Query struct {
	UserID     uuid.UUID
	Text       string
	FilterType ResultType // empty = all types
	SpaceID    *uuid.UUID
	Limit      int
}

// Response is the envelope returned by the search endpoint.
type Response struct {
	Results []Result `json:"results"`
	Total   int      `json:"total"`
	Query   string   `json:"query"`
	Engine  string   `json:"engine"`
}

// NoteRecord is the data indexed for a note.
type NoteRecord struct {
	ID      string   `json:"id"`
	UserID  string   `json:"userId"`
	SpaceID string   `json:"spaceId"`
	Title   string   `json:"title"`
	Content string   `json:"content"`
	Tags    []string `json:"tags"`
}

// ChatRecord is the data indexed for a chat.
type ChatRecord struct {
	ID      string `json:"id"`
	UserID  string `json:"userId"`
	SpaceID string `json:"spaceId"`
	Title   string `json:"title"`
}
