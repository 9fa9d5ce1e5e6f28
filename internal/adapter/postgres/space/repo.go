// Package space implements space persistence using PostgreSQL.
package space

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	postgres "github.com/heartmarshall/workbench-backend/internal/adapter/postgres"
	"github.com/heartmarshall/workbench-backend/internal/domain"
)

// Repo provides space persistence backed by PostgreSQL.
type Repo struct {
	pool *pgxpool.Pool
}

// New creates a new space repository.
func New(pool *pgxpool.Pool) *Repo {
	return &Repo{pool: pool}
}

const columns = `s.id, s.name, s.description, s.owner_user_id, s.organization_id, s.created_by, s.created_at, s.updated_at`

const (
	createSQL = `
INSERT INTO spaces (id, name, description, owner_user_id, organization_id, created_by, created_at, updated_at)
VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
RETURNING id, name, description, owner_user_id, organization_id, created_by, created_at, updated_at`

	getByIDSQL = `SELECT ` + columns + ` FROM spaces s WHERE s.id = $1`

	// Personal spaces plus every space of an organization the user belongs to.
	listAccessibleSQL = `
SELECT ` + columns + ` FROM spaces s
WHERE s.owner_user_id = $1
   OR s.organization_id IN (SELECT organization_id FROM memberships WHERE user_id = $1)
ORDER BY s.organization_id NULLS FIRST, s.name, s.id`

	listByOrgSQL = `SELECT ` + columns + ` FROM spaces s WHERE s.organization_id = $1 ORDER BY s.name, s.id`

	updateSQL = `
UPDATE spaces s SET
    name        = COALESCE($2, s.name),
    description = CASE WHEN $3::boolean THEN NULLIF($4, '') ELSE s.description END,
    updated_at  = now()
WHERE s.id = $1
RETURNING ` + columns

	deleteSQL = `DELETE FROM spaces WHERE id = $1`

	countPersonalSQL = `SELECT count(*) FROM spaces WHERE owner_user_id = $1`
)

// Create inserts a space and returns the stored row.
func (r *Repo) Create(ctx context.Context, s *domain.Space) (*domain.Space, error) {
	row := postgres.QuerierFromCtx(ctx, r.pool).QueryRow(ctx, createSQL,
		s.ID, s.Name, s.Description, s.OwnerUserID, s.OrganizationID, s.CreatedBy, s.CreatedAt, s.UpdatedAt,
	)
	out, err := scanSpace(row)
	if err != nil {
		return nil, postgres.MapError(err, "space", s.ID)
	}
	return out, nil
}

// GetByID returns a space regardless of who is asking.
func (r *Repo) GetByID(ctx context.Context, id uuid.UUID) (*domain.Space, error) {
	s, err := scanSpace(postgres.QuerierFromCtx(ctx, r.pool).QueryRow(ctx, getByIDSQL, id))
	if err != nil {
		return nil, postgres.MapError(err, "space", id)
	}
	return s, nil
}

// ListAccessible returns every space the user can read.
func (r *Repo) ListAccessible(ctx context.Context, userID uuid.UUID) ([]domain.Space, error) {
	return r.list(ctx, listAccessibleSQL, userID)
}

// ListByOrganization returns the spaces owned by an organization.
func (r *Repo) ListByOrganization(ctx context.Context, orgID uuid.UUID) ([]domain.Space, error) {
	return r.list(ctx, listByOrgSQL, orgID)
}

// Update applies a partial update. An empty description clears it.
func (r *Repo) Update(ctx context.Context, id uuid.UUID, params domain.SpaceUpdateParams) (*domain.Space, error) {
	var desc string
	if params.Description != nil {
		desc = *params.Description
	}
	row := postgres.QuerierFromCtx(ctx, r.pool).QueryRow(ctx, updateSQL,
		id, params.Name, params.Description != nil, desc,
	)
	s, err := scanSpace(row)
	if err != nil {
		return nil, postgres.MapError(err, "space", id)
	}
	return s, nil
}

// Delete removes a space. Chats, notes and files inside it cascade.
func (r *Repo) Delete(ctx context.Context, id uuid.UUID) error {
	tag, err := postgres.QuerierFromCtx(ctx, r.pool).Exec(ctx, deleteSQL, id)
	if err != nil {
		return postgres.MapError(err, "space", id)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("space %s: %w", id, domain.ErrNotFound)
	}
	return nil
}

// CountPersonal returns the number of personal spaces owned by the user.
func (r *Repo) CountPersonal(ctx context.Context, userID uuid.UUID) (int, error) {
	var n int
	if err := postgres.QuerierFromCtx(ctx, r.pool).QueryRow(ctx, countPersonalSQL, userID).Scan(&n); err != nil {
		return 0, fmt.Errorf("count spaces: %w", err)
	}
	return n, nil
}

func (r *Repo) list(ctx context.Context, sql string, arg uuid.UUID) ([]domain.Space, error) {
	rows, err := postgres.QuerierFromCtx(ctx, r.pool).Query(ctx, sql, arg)
	if err != nil {
		return nil, fmt.Errorf("list spaces: %w", err)
	}
	defer rows.Close()

	spaces := []domain.Space{}
	for rows.Next() {
		s, err := scanSpace(rows)
		if err != nil {
			return nil, fmt.Errorf("scan space: %w", err)
		}
		spaces = append(spaces, *s)
	}
	return spaces, rows.Err()
}

func scanSpace(row pgx.Row) (*domain.Space, error) {
	var s domain.Space
	err := row.Scan(&s.ID, &s.Name, &s.Description, &s.OwnerUserID, &s.OrganizationID,
		&s.CreatedBy, &s.CreatedAt, &s.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return &s, nil
}
