package search

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/uuid"

	"github.com/heartmarshall/workbench-backend/internal/domain"
)

type noteSearcher interface {
	Search(ctx context.Context, userID uuid.UUID, query string, spaceID *uuid.UUID, limit int) ([]domain.Note, error)
}

type chatSearcher interface {
	Search(ctx context.Context, userID uuid.UUID, query string, spaceID *uuid.UUID, limit int) ([]domain.Chat, error)
}

// PgFTS searches notes with PostgreSQL full-text search and chats with a
// pattern match over titles and message bodies.
type PgFTS struct {
	notes noteSearcher
	chats chatSearcher
}

// NewPgFTS creates the PostgreSQL fallback searcher.
func NewPgFTS(notes noteSearcher, chats chatSearcher) *PgFTS {
	return &PgFTS{notes: notes, chats: chats}
}

// Search runs the query against both sources (or one of them).
func (p *PgFTS) Search(ctx context.Context, q Query) ([]Result, int, error) {
	if strings.TrimSpace(q.Text) == "" {
		return nil, 0, nil
	}

	var results []Result
	if q.FilterType == "" || q.FilterType == ResultNote {
		notes, err := p.notes.Search(ctx, q.UserID, q.Text, q.SpaceID, q.Limit)
		if err != nil {
			return nil, 0, fmt.Errorf("pgfts notes: %w", err)
		}
		for _, n := range notes {
			results = append(results, Result{
				Type:    ResultNote,
				ID:      n.ID.String(),
				Title:   n.Title,
				Snippet: snippet(n.Content, q.Text),
				SpaceID: spaceString(n.SpaceID),
			})
		}
	}
	if q.FilterType == "" || q.FilterType == ResultChat {
		chats, err := p.chats.Search(ctx, q.UserID, q.Text, q.SpaceID, q.Limit)
		if err != nil {
			return nil, 0, fmt.Errorf("pgfts chats: %w", err)
		}
		for _, c := range chats {
			results = append(results, Result{
				Type:    ResultChat,
				ID:      c.ID.String(),
				Title:   c.Title,
				SpaceID: spaceString(c.SpaceID),
			})
		}
	}
	return results, len(results), nil
}

const snippetRadius = 60

// snippet returns a window of content around the first case-insensitive
// match of any query word, or the content head when nothing matches.
func snippet(content, query string) string {
	lower := strings.ToLower(content)
	at := -1
	for _, w := range strings.Fields(strings.ToLower(query)) {
		if i := strings.Index(lower, w); i >= 0 && (at < 0 || i < at) {
			at = i
		}
	}

	runes := []rune(content)
	if at < 0 {
		if len(runes) > 2*snippetRadius {
			return string(runes[:2*snippetRadius]) + "…"
		}
		return content
	}

	// Convert the byte offset to a rune offset.
	pos := len([]rune(content[:at]))
	start := max(0, pos-snippetRadius)
	end := min(len(runes), pos+snippetRadius)

	out := string(runes[start:end])
	if start > 0 {
		out = "…" + out
	}
	if end < len(runes) {
		out += "…"
	}
	return out
}

func spaceString(id *uuid.UUID) string {
	if id == nil {
		return ""
	}
	return id.String()
}
