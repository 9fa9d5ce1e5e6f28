package client

import (
	"context"
	"net/http"
	"net/url"
	"slices"
	"strings"

	"github.com/google/uuid"

	"github.com/heartmarshall/workbench-backend/pkg/querycache"
)

const tempIDPrefix = "temp-"

// NoteQuery selects a note list. Each distinct query is cached separately.
type NoteQuery struct {
	SpaceID string
	// Folder, when set, lists only notes directly in that slash separated
	// folder; "" is the root.
	Folder *string
	Tag    string
}

// NotesRoot prefixes every note list key.
var NotesRoot = querycache.Key{"notes"}

// Key returns the cache key of the query.
func (q NoteQuery) Key() querycache.Key {
	folder := "*"
	if q.Folder != nil {
		folder = "/" + *q.Folder
	}
	return querycache.Key{"notes", q.SpaceID, folder, normalizeTag(q.Tag)}
}

// normalizeTag folds a tag the way the server stores it.
func normalizeTag(tag string) string {
	return strings.ToLower(strings.TrimSpace(tag))
}

func (q NoteQuery) values() url.Values {
	v := url.Values{}
	if q.SpaceID != "" {
		v.Set("spaceId", q.SpaceID)
	}
	if q.Folder != nil {
		v.Set("folder", *q.Folder)
	}
	if tag := normalizeTag(q.Tag); tag != "" {
		v.Set("tag", tag)
	}
	return v
}

func (q NoteQuery) matches(n Note) bool {
	if q.Folder != nil && strings.Join(n.FolderPath, "/") != *q.Folder {
		return false
	}
	if tag := normalizeTag(q.Tag); tag != "" && !slices.ContainsFunc(n.Tags, func(t string) bool { return normalizeTag(t) == tag }) {
		return false
	}
	return true
}

func (c *Client) noteList(q NoteQuery) querycache.List[Note] {
	return querycache.List[Note]{
		Cache: c.cache,
		Key:   q.Key(),
		ID:    func(n Note) string { return n.ID },
		Match: q.matches,
	}
}

// Notes returns the notes selected by q, from cache when fresh.
func (c *Client) Notes(ctx context.Context, q NoteQuery) ([]Note, error) {
	return querycache.Fetch(ctx, c.cache, q.Key(), func(ctx context.Context) ([]Note, error) {
		return do[[]Note](ctx, c, http.MethodGet, "/api/notes", q.values(), nil)
	})
}

// Note fetches one note without caching.
func (c *Client) Note(ctx context.Context, id string) (*Note, error) {
	n, err := do[Note](ctx, c, http.MethodGet, "/api/notes/"+url.PathEscape(id), nil, nil)
	if err != nil {
		return nil, err
	}
	return &n, nil
}

// CreateNote creates a note, showing it in list q until the server answers.
func (c *Client) CreateNote(ctx context.Context, q NoteQuery, in NewNote) (Note, error) {
	temp := Note{
		ID:         tempIDPrefix + uuid.NewString(),
		SpaceID:    in.SpaceID,
		Title:      in.Title,
		Content:    in.Content,
		FolderPath: in.FolderPath,
		Tags:       in.Tags,
		Pinned:     in.Pinned,
	}
	return c.noteList(q).AddItem(ctx, temp, func(ctx context.Context) (Note, error) {
		return do[Note](ctx, c, http.MethodPost, "/api/notes", nil, in)
	})
}

// UpdateNote applies u to the note in list q and on the server.
func (c *Client) UpdateNote(ctx context.Context, q NoteQuery, id string, u NoteUpdate) (Note, error) {
	return c.noteList(q).UpdateItem(ctx, id, u.apply, func(ctx context.Context) (Note, error) {
		return do[Note](ctx, c, http.MethodPatch, "/api/notes/"+url.PathEscape(id), nil, u)
	})
}

// DeleteNote removes the note from list q and on the server.
func (c *Client) DeleteNote(ctx context.Context, q NoteQuery, id string) error {
	return c.noteList(q).DeleteItem(ctx, id, func(ctx context.Context) error {
		_, err := do[struct{}](ctx, c, http.MethodDelete, "/api/notes/"+url.PathEscape(id), nil, nil)
		return err
	})
}

// BatchUpdateNotes applies u to every note in ids. Notes that stop matching q,
// e.g. because they moved to another folder, leave the list at once.
func (c *Client) BatchUpdateNotes(ctx context.Context, q NoteQuery, ids []string, u NoteUpdate) ([]Note, error) {
	body := struct {
		IDs    []string   `json:"ids"`
		Update NoteUpdate `json:"update"`
	}{IDs: ids, Update: u}

	notes, err := c.noteList(q).BatchUpdate(ctx, ids, u.apply, func(ctx context.Context) ([]Note, error) {
		return do[[]Note](ctx, c, http.MethodPatch, "/api/notes/batch", nil, body)
	})
	if err == nil && u.FolderPath != nil {
		// The notes now belong to lists other than q.
		c.cache.InvalidatePrefix(NotesRoot)
	}
	return notes, err
}

// MoveNotes moves notes into folder.
func (c *Client) MoveNotes(ctx context.Context, q NoteQuery, ids []string, folder []string) ([]Note, error) {
	if folder == nil {
		folder = []string{}
	}
	return c.BatchUpdateNotes(ctx, q, ids, NoteUpdate{FolderPath: &folder})
}

// ReorderNotes stores ids as the new order, positions counting from zero.
func (c *Client) ReorderNotes(ctx context.Context, q NoteQuery, ids []string) error {
	type position struct {
		ID       string `json:"id"`
		Position int    `json:"position"`
	}
	positions := make([]position, len(ids))
	byID := make(map[string]int, len(ids))
	for i, id := range ids {
		positions[i] = position{ID: id, Position: i}
		byID[id] = i
	}

	l := c.noteList(q)
	_, err := querycache.Coordinated(ctx, c.cache, []querycache.Key{l.Key},
		func() {
			l.Arrange(ids)
			l.Patch(ids, func(n Note) Note {
				n.Position = byID[n.ID]
				return n
			})
		},
		func(ctx context.Context) (struct{}, error) {
			return do[struct{}](ctx, c, http.MethodPut, "/api/notes/reorder", nil,
				map[string]any{"positions": positions})
		},
		nil,
	)
	return err
}

// NoteFolders lists the distinct folder paths in spaceID ("" for all).
func (c *Client) NoteFolders(ctx context.Context, spaceID string) ([][]string, error) {
	v := url.Values{}
	if spaceID != "" {
		v.Set("spaceId", spaceID)
	}
	key := querycache.Key{"notes-folders", spaceID}
	return querycache.Fetch(ctx, c.cache, key, func(ctx context.Context) ([][]string, error) {
		return do[[][]string](ctx, c, http.MethodGet, "/api/notes/folders", v, nil)
	})
}

// IsTemporary reports whether id was assigned locally to an item the server
// has not confirmed yet.
func IsTemporary(id string) bool { return strings.HasPrefix(id, tempIDPrefix) }
