// Package file implements file and folder persistence using PostgreSQL.
// The hierarchy is stored as metadata.parentId on each row.
package file

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

// Repo provides file persistence backed by PostgreSQL.
type Repo struct {
	pool *pgxpool.Pool
}

// New creates a new file repository.
func New(pool *pgxpool.Pool) *Repo {
	return &Repo{pool: pool}
}

var columns = []string{
	"id", "user_id", "space_id", "kind", "name", "size", "content_type",
	"storage_key", "metadata", "created_at", "updated_at",
}

var columnList = strings.Join(columns, ", ")

const (
	createSQL = `
INSERT INTO files (id, user_id, space_id, kind, name, size, content_type, storage_key, metadata, created_at, updated_at)
VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)
RETURNING id, user_id, space_id, kind, name, size, content_type, storage_key, metadata, created_at, updated_at`

	subtreeCTE = `
WITH RECURSIVE tree AS (
    SELECT id FROM files WHERE id = $1
    UNION ALL
    SELECT f.id FROM files f JOIN tree t ON f.metadata ->> 'parentId' = t.id::text
)`

	isDescendantSQL = subtreeCTE + `
SELECT EXISTS (SELECT 1 FROM tree WHERE id = $2)`

	deleteTreeSQL = subtreeCTE + `
DELETE FROM files WHERE id IN (SELECT id FROM tree)
RETURNING storage_key`

	storageKeysBySpaceSQL = `
SELECT storage_key FROM files
WHERE space_id = $1 AND kind = 'file' AND storage_key <> ''`
)

// Create inserts a file or folder entry. Returns domain.ErrAlreadyExists when
// a sibling of the same kind already has the name.
func (r *Repo) Create(ctx context.Context, f *domain.File) (*domain.File, error) {
	meta, err := json.Marshal(f.Metadata)
	if err != nil {
		return nil, fmt.Errorf("encode file metadata: %w", err)
	}
	row := postgres.QuerierFromCtx(ctx, r.pool).QueryRow(ctx, createSQL,
		f.ID, f.UserID, f.SpaceID, string(f.Kind), f.Name, f.Size, f.ContentType,
		f.StorageKey, meta, f.CreatedAt, f.UpdatedAt,
	)
	out, err := scanFile(row)
	if err != nil {
		return nil, postgres.MapError(err, "file", f.Name)
	}
	return out, nil
}

// GetByID returns a file or folder entry.
func (r *Repo) GetByID(ctx context.Context, id uuid.UUID) (*domain.File, error) {
	q := postgres.Builder().Select(columns...).From("files").Where(sq.Eq{"id": id})
	f, err := scanFile(postgres.QueryRowBuilt(ctx, r.pool, q))
	if err != nil {
		return nil, postgres.MapError(err, "file", id)
	}
	return f, nil
}

// List returns one level of the user's tree, folders first then by name.
func (r *Repo) List(ctx context.Context, userID uuid.UUID, f domain.FileFilter) ([]domain.File, error) {
	q := postgres.Builder().Select(columns...).From("files").
		Where(sq.Eq{"user_id": userID}).
		OrderBy("kind = 'folder' DESC", "name", "id")

	if f.ParentID != nil {
		q = q.Where(sq.Expr("metadata ->> 'parentId' = ?", f.ParentID.String()))
	} else {
		q = q.Where(sq.Expr("metadata ->> 'parentId' IS NULL"))
	}
	if f.SpaceID != nil {
		q = q.Where(sq.Eq{"space_id": *f.SpaceID})
	}
	if f.Kind != nil {
		q = q.Where(sq.Eq{"kind": string(*f.Kind)})
	}

	rows, err := postgres.QueryBuilt(ctx, r.pool, q)
	if err != nil {
		return nil, fmt.Errorf("list files: %w", err)
	}
	defer rows.Close()

	files := []domain.File{}
	for rows.Next() {
		file, err := scanFile(rows)
		if err != nil {
			return nil, fmt.Errorf("scan file: %w", err)
		}
		files = append(files, *file)
	}
	return files, rows.Err()
}

// Update renames and/or moves an entry.
func (r *Repo) Update(ctx context.Context, id uuid.UUID, params domain.FileUpdateParams) (*domain.File, error) {
	if params.Name == nil && params.ParentID == nil && !params.MoveToRoot {
		return r.GetByID(ctx, id)
	}

	q := postgres.Builder().Update("files").
		Set("updated_at", sq.Expr("now()")).
		Where(sq.Eq{"id": id}).
		Suffix("RETURNING " + columnList)
	if params.Name != nil {
		q = q.Set("name", *params.Name)
	}
	switch {
	case params.MoveToRoot:
		q = q.Set("metadata", sq.Expr("metadata - 'parentId'"))
	case params.ParentID != nil:
		q = q.Set("metadata", sq.Expr("jsonb_set(metadata, '{parentId}', to_jsonb(?::text))", params.ParentID.String()))
	}

	f, err := scanFile(postgres.QueryRowBuilt(ctx, r.pool, q))
	if err != nil {
		return nil, postgres.MapError(err, "file", id)
	}
	return f, nil
}

// IsDescendant reports whether candidate is ancestor itself or lies anywhere
// below it. Used to reject moving a folder into its own subtree.
func (r *Repo) IsDescendant(ctx context.Context, ancestor, candidate uuid.UUID) (bool, error) {
	var ok bool
	if err := postgres.QuerierFromCtx(ctx, r.pool).QueryRow(ctx, isDescendantSQL, ancestor, candidate).Scan(&ok); err != nil {
		return false, fmt.Errorf("check descendant: %w", err)
	}
	return ok, nil
}

// DeleteTree removes the entry and every descendant, returning the storage
// keys of deleted blobs so the caller can remove them from object storage.
func (r *Repo) DeleteTree(ctx context.Context, id uuid.UUID) ([]string, error) {
	rows, err := postgres.QuerierFromCtx(ctx, r.pool).Query(ctx, deleteTreeSQL, id)
	if err != nil {
		return nil, postgres.MapError(err, "file", id)
	}
	keys, err := pgx.CollectRows(rows, pgx.RowTo[string])
	if err != nil {
		return nil, postgres.MapError(err, "file", id)
	}
	if len(keys) == 0 {
		return nil, fmt.Errorf("file %s: %w", id, domain.ErrNotFound)
	}

	blobs := make([]string, 0, len(keys))
	for _, k := range keys {
		if k != "" {
			blobs = append(blobs, k)
		}
	}
	return blobs, nil
}

// StorageKeysBySpace returns the blob keys of every file in the space, used
// to clean object storage before the space rows cascade away.
func (r *Repo) StorageKeysBySpace(ctx context.Context, spaceID uuid.UUID) ([]string, error) {
	rows, err := postgres.QuerierFromCtx(ctx, r.pool).Query(ctx, storageKeysBySpaceSQL, spaceID)
	if err != nil {
		return nil, fmt.Errorf("query storage keys: %w", err)
	}
	keys, err := pgx.CollectRows(rows, pgx.RowTo[string])
	if err != nil {
		return nil, fmt.Errorf("collect storage keys: %w", err)
	}
	return keys, nil
}

func scanFile(row pgx.Row) (*domain.File, error) {
	var (
		f    domain.File
		kind string
		raw  []byte
	)
	err := row.Scan(&f.ID, &f.UserID, &f.SpaceID, &kind, &f.Name, &f.Size, &f.ContentType,
		&f.StorageKey, &raw, &f.CreatedAt, &f.UpdatedAt)
	if err != nil {
		return nil, err
	}
	f.Kind = domain.FileKind(kind)
	if len(raw) > 0 {
		if err := json.Unmarshal(raw, &f.Metadata); err != nil {
			return nil, fmt.Errorf("decode file metadata: %w", err)
		}
	}
	return &f, nil
}
