// Package note implements note persistence using PostgreSQL.
package note

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	sq "github.com/Masterminds/squirrel"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	postgres "github.com/heartmarshall/workbench-backend/internal/adapter/postgres"
	"github.com/heartmarshall/workbench-backend/internal/domain"
)

// Repo provides note persistence backed by PostgreSQL.
type Repo struct {
	pool *pgxpool.Pool
}

// New creates a new note repository.
func New(pool *pgxpool.Pool) *Repo {
	return &Repo{pool: pool}
}

var columns = []string{
	"id", "user_id", "space_id", "title", "content", "position",
	"folder_path", "metadata", "created_at", "updated_at",
}

var columnList = strings.Join(columns, ", ")

// storedMetadata is the jsonb column. The folder path lives in its own
// TEXT[] column so it can be indexed and prefix-matched.
type storedMetadata struct {
	Tags   []string `json:"tags"`
	Pinned bool     `json:"pinned"`
}

const (
	createSQL = `
INSERT INTO notes (id, user_id, space_id, title, content, position, folder_path, metadata, created_at, updated_at)
VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
RETURNING id, user_id, space_id, title, content, position, folder_path, metadata, created_at, updated_at`

	deleteSQL = `DELETE FROM notes WHERE id = $1`

	nextPositionSQL = `
SELECT COALESCE(max(position) + 1, 0) FROM notes
WHERE user_id = $1 AND space_id IS NOT DISTINCT FROM $2`

	reorderSQL = `UPDATE notes SET position = $1, updated_at = now() WHERE id = $2 AND user_id = $3`

	// Every prefix of every stored path, so parent folders appear even when
	// they hold no note directly.
	listFoldersSQL = `
SELECT DISTINCT n.folder_path[1:i] AS path
FROM notes n, generate_series(1, cardinality(n.folder_path)) AS i
WHERE n.user_id = $1 AND ($2::uuid IS NULL OR n.space_id = $2)
ORDER BY path`

	searchSQL = `
SELECT n.id, n.user_id, n.space_id, n.title, n.content, n.position, n.folder_path, n.metadata, n.created_at, n.updated_at
FROM notes n, plainto_tsquery('simple', $2) q
WHERE n.user_id = $1 AND n.search_vec @@ q
  AND ($3::uuid IS NULL OR n.space_id = $3)
ORDER BY ts_rank(n.search_vec, q) DESC, n.updated_at DESC
LIMIT $4`

	pageSQL = `
SELECT id, user_id, space_id, title, content, position, folder_path, metadata, created_at, updated_at
FROM notes WHERE id > $1 ORDER BY id LIMIT $2`
)

// Create inserts a note and returns the stored row.
func (r *Repo) Create(ctx context.Context, n *domain.Note) (*domain.Note, error) {
	meta, err := encodeMetadata(n.Metadata)
	if err != nil {
		return nil, err
	}
	row := postgres.QuerierFromCtx(ctx, r.pool).QueryRow(ctx, createSQL,
		n.ID, n.UserID, n.SpaceID, n.Title, n.Content, n.Position,
		folderOrEmpty(n.Metadata.FolderPath), meta, n.CreatedAt, n.UpdatedAt,
	)
	out, err := scanNote(row)
	if err != nil {
		return nil, postgres.MapError(err, "note", n.ID)
	}
	return out, nil
}

// GetByID returns a note.
func (r *Repo) GetByID(ctx context.Context, id uuid.UUID) (*domain.Note, error) {
	q := postgres.Builder().Select(columns...).From("notes").Where(sq.Eq{"id": id})
	n, err := scanNote(postgres.QueryRowBuilt(ctx, r.pool, q))
	if err != nil {
		return nil, postgres.MapError(err, "note", id)
	}
	return n, nil
}

// GetByIDs returns the user's notes among ids. Missing or foreign ids are skipped.
func (r *Repo) GetByIDs(ctx context.Context, userID uuid.UUID, ids []uuid.UUID) ([]domain.Note, error) {
	if len(ids) == 0 {
		return []domain.Note{}, nil
	}
	q := postgres.Builder().Select(columns...).From("notes").
		Where(sq.Eq{"user_id": userID, "id": ids})
	rows, err := postgres.QueryBuilt(ctx, r.pool, q)
	if err != nil {
		return nil, fmt.Errorf("get notes: %w", err)
	}
	return collectNotes(rows)
}

// List returns the user's notes ordered by position.
func (r *Repo) List(ctx context.Context, userID uuid.UUID, f domain.NoteFilter) ([]domain.Note, error) {
	q := postgres.Builder().Select(columns...).From("notes").
		Where(sq.Eq{"user_id": userID}).
		OrderBy("position", "created_at", "id")

	if f.SpaceID != nil {
		q = q.Where(sq.Eq{"space_id": *f.SpaceID})
	}
	if f.FolderPath != nil {
		switch {
		case f.Recursive && len(f.FolderPath) > 0:
			q = q.Where(sq.Expr(fmt.Sprintf("folder_path[1:%d] = ?::text[]", len(f.FolderPath)), f.FolderPath))
		case !f.Recursive:
			q = q.Where(sq.Expr("folder_path = ?::text[]", f.FolderPath))
		}
	}
	if f.Tag != nil {
		tag, err := json.Marshal([]string{*f.Tag})
		if err != nil {
			return nil, fmt.Errorf("encode tag: %w", err)
		}
		q = q.Where(sq.Expr("metadata -> 'tags' @> ?::jsonb", string(tag)))
	}
	if f.Search != nil {
		q = q.Where(sq.Expr("search_vec @@ plainto_tsquery('simple', ?)", *f.Search))
	}
	if f.Limit > 0 {
		q = q.Limit(uint64(f.Limit))
	}
	if f.Offset > 0 {
		q = q.Offset(uint64(f.Offset))
	}

	rows, err := postgres.QueryBuilt(ctx, r.pool, q)
	if err != nil {
		return nil, fmt.Errorf("list notes: %w", err)
	}
	return collectNotes(rows)
}

// Update applies a partial update to one note.
func (r *Repo) Update(ctx context.Context, id uuid.UUID, params domain.NoteUpdateParams) (*domain.Note, error) {
	if params.IsEmpty() {
		return r.GetByID(ctx, id)
	}
	q, err := updateBuilder(params)
	if err != nil {
		return nil, err
	}
	q = q.Where(sq.Eq{"id": id})

	n, err := scanNote(postgres.QueryRowBuilt(ctx, r.pool, q))
	if err != nil {
		return nil, postgres.MapError(err, "note", id)
	}
	return n, nil
}

// BatchUpdate applies the same partial update to every listed note of the
// user and returns the updated rows.
func (r *Repo) BatchUpdate(ctx context.Context, userID uuid.UUID, ids []uuid.UUID, params domain.NoteUpdateParams) ([]domain.Note, error) {
	if len(ids) == 0 {
		return []domain.Note{}, nil
	}
	if params.IsEmpty() {
		return r.GetByIDs(ctx, userID, ids)
	}
	q, err := updateBuilder(params)
	if err != nil {
		return nil, err
	}
	q = q.Where(sq.Eq{"user_id": userID, "id": ids})

	rows, err := postgres.QueryBuilt(ctx, r.pool, q)
	if err != nil {
		return nil, postgres.MapError(err, "notes", len(ids))
	}
	notes, err := collectNotes(rows)
	if err != nil {
		return nil, postgres.MapError(err, "notes", len(ids))
	}
	return notes, nil
}

// Reorder sets positions for the user's notes in one round trip.
// Returns domain.ErrNotFound if any id does not belong to the user.
func (r *Repo) Reorder(ctx context.Context, userID uuid.UUID, positions []domain.NotePosition) error {
	if len(positions) == 0 {
		return nil
	}
	batch := &pgx.Batch{}
	for _, p := range positions {
		batch.Queue(reorderSQL, p.Position, p.ID, userID)
	}

	br := postgres.QuerierFromCtx(ctx, r.pool).SendBatch(ctx, batch)
	defer br.Close()

	for _, p := range positions {
		tag, err := br.Exec()
		if err != nil {
			return postgres.MapError(err, "note", p.ID)
		}
		if tag.RowsAffected() == 0 {
			return fmt.Errorf("note %s: %w", p.ID, domain.ErrNotFound)
		}
	}
	return nil
}

// Delete removes a note.
func (r *Repo) Delete(ctx context.Context, id uuid.UUID) error {
	tag, err := postgres.QuerierFromCtx(ctx, r.pool).Exec(ctx, deleteSQL, id)
	if err != nil {
		return postgres.MapError(err, "note", id)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("note %s: %w", id, domain.ErrNotFound)
	}
	return nil
}

// NextPosition returns the position after the last note in the user's space
// (or outside any space when spaceID is nil).
func (r *Repo) NextPosition(ctx context.Context, userID uuid.UUID, spaceID *uuid.UUID) (int, error) {
	var pos int
	if err := postgres.QuerierFromCtx(ctx, r.pool).QueryRow(ctx, nextPositionSQL, userID, spaceID).Scan(&pos); err != nil {
		return 0, fmt.Errorf("next note position: %w", err)
	}
	return pos, nil
}

// ListFolders returns every distinct folder path, including intermediate
// folders, sorted lexicographically.
func (r *Repo) ListFolders(ctx context.Context, userID uuid.UUID, spaceID *uuid.UUID) ([][]string, error) {
	rows, err := postgres.QuerierFromCtx(ctx, r.pool).Query(ctx, listFoldersSQL, userID, spaceID)
	if err != nil {
		return nil, fmt.Errorf("list folders: %w", err)
	}
	folders, err := pgx.CollectRows(rows, pgx.RowTo[[]string])
	if err != nil {
		return nil, fmt.Errorf("scan folders: %w", err)
	}
	if folders == nil {
		folders = [][]string{}
	}
	return folders, nil
}

// Search runs a ranked full-text query over title and content.
func (r *Repo) Search(ctx context.Context, userID uuid.UUID, query string, spaceID *uuid.UUID, limit int) ([]domain.Note, error) {
	rows, err := postgres.QuerierFromCtx(ctx, r.pool).Query(ctx, searchSQL, userID, query, spaceID, limit)
	if err != nil {
		return nil, fmt.Errorf("search notes: %w", err)
	}
	return collectNotes(rows)
}

// ListPage returns up to limit notes with id greater than after, ordered by id.
func (r *Repo) ListPage(ctx context.Context, after uuid.UUID, limit int) ([]domain.Note, error) {
	rows, err := postgres.QuerierFromCtx(ctx, r.pool).Query(ctx, pageSQL, after, limit)
	if err != nil {
		return nil, fmt.Errorf("page notes: %w", err)
	}
	return collectNotes(rows)
}

// ---------------------------------------------------------------------------
// Helpers
// ---------------------------------------------------------------------------

func updateBuilder(params domain.NoteUpdateParams) (sq.UpdateBuilder, error) {
	q := postgres.Builder().Update("notes").
		Set("updated_at", sq.Expr("now()")).
		Suffix("RETURNING " + columnList)

	if params.Title != nil {
		q = q.Set("title", *params.Title)
	}
	if params.Content != nil {
		q = q.Set("content", *params.Content)
	}
	if params.FolderPath != nil {
		q = q.Set("folder_path", folderOrEmpty(*params.FolderPath))
	}
	if params.SpaceID != nil {
		q = q.Set("space_id", *params.SpaceID)
	}

	patch := map[string]any{}
	if params.Tags != nil {
		tags := *params.Tags
		if tags == nil {
			tags = []string{}
		}
		patch["tags"] = tags
	}
	if params.Pinned != nil {
		patch["pinned"] = *params.Pinned
	}
	if len(patch) > 0 {
		raw, err := json.Marshal(patch)
		if err != nil {
			return q, fmt.Errorf("encode metadata patch: %w", err)
		}
		q = q.Set("metadata", sq.Expr("metadata || ?::jsonb", string(raw)))
	}
	return q, nil
}

func encodeMetadata(m domain.NoteMetadata) ([]byte, error) {
	tags := m.Tags
	if tags == nil {
		tags = []string{}
	}
	raw, err := json.Marshal(storedMetadata{Tags: tags, Pinned: m.Pinned})
	if err != nil {
		return nil, fmt.Errorf("encode note metadata: %w", err)
	}
	return raw, nil
}

func folderOrEmpty(path []string) []string {
	if path == nil {
		return []string{}
	}
	return path
}

func scanNote(row pgx.Row) (*domain.Note, error) {
	var (
		n    domain.Note
		path []string
		raw  []byte
	)
	err := row.Scan(&n.ID, &n.UserID, &n.SpaceID, &n.Title, &n.Content, &n.Position,
		&path, &raw, &n.CreatedAt, &n.UpdatedAt)
	if err != nil {
		return nil, err
	}

	var meta storedMetadata
	if len(raw) > 0 {
		if err := json.Unmarshal(raw, &meta); err != nil {
			return nil, fmt.Errorf("decode note metadata: %w", err)
		}
	}
	n.Metadata = domain.NoteMetadata{
		FolderPath: folderOrEmpty(path),
		Tags:       meta.Tags,
		Pinned:     meta.Pinned,
	}
	if n.Metadata.Tags == nil {
		n.Metadata.Tags = []string{}
	}
	return &n, nil
}

func collectNotes(rows pgx.Rows) ([]domain.Note, error) {
	defer rows.Close()

	notes := []domain.Note{}
	for rows.Next() {
		n, err := scanNote(rows)
		if err != nil {
			return nil, fmt.Errorf("scan note: %w", err)
		}
		notes = append(notes, *n)
	}
	return notes, rows.Err()
}
