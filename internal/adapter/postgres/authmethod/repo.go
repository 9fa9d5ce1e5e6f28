// Package authmethod implements the AuthMethod repository using PostgreSQL.
package authmethod

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	postgres "github.com/heartmarshall/workbench-backend/internal/adapter/postgres"
	"github.com/heartmarshall/workbench-backend/internal/domain"
)

// Repo provides auth_methods persistence backed by PostgreSQL.
type Repo struct {
	pool *pgxpool.Pool
}

// New creates a new auth method repository.
func New(pool *pgxpool.Pool) *Repo {
	return &Repo{pool: pool}
}

const amColumns = `id, user_id, method, password_hash, created_at, updated_at`

const (
	getByUserAndMethodSQL = `SELECT ` + amColumns + ` FROM auth_methods WHERE user_id = $1 AND method = $2`

	createSQL = `
INSERT INTO auth_methods (user_id, method, password_hash)
VALUES ($1, $2, $3)
RETURNING ` + amColumns

	updatePasswordSQL = `
UPDATE auth_methods SET password_hash = $3, updated_at = now()
WHERE user_id = $1 AND method = $2`
)

// GetByUserAndMethod returns the auth method for a user with the given method type.
func (r *Repo) GetByUserAndMethod(ctx context.Context, userID uuid.UUID, method domain.AuthMethodType) (*domain.AuthMethod, error) {
	row := postgres.QuerierFromCtx(ctx, r.pool).QueryRow(ctx, getByUserAndMethodSQL, userID, string(method))
	am, err := scanAuthMethod(row)
	if err != nil {
		return nil, postgres.MapError(err, "auth_method", userID)
	}
	return am, nil
}

// Create inserts a new auth method row.
func (r *Repo) Create(ctx context.Context, am *domain.AuthMethod) (*domain.AuthMethod, error) {
	row := postgres.QuerierFromCtx(ctx, r.pool).QueryRow(ctx, createSQL, am.UserID, string(am.Method), am.PasswordHash)
	created, err := scanAuthMethod(row)
	if err != nil {
		return nil, postgres.MapError(err, "auth_method", am.UserID)
	}
	return created, nil
}

// UpdatePassword replaces the stored password hash.
func (r *Repo) UpdatePassword(ctx context.Context, userID uuid.UUID, hash string) error {
	tag, err := postgres.QuerierFromCtx(ctx, r.pool).Exec(ctx, updatePasswordSQL, userID, string(domain.AuthMethodPassword), hash)
	if err != nil {
		return postgres.MapError(err, "auth_method", userID)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("auth_method %s: %w", userID, domain.ErrNotFound)
	}
	return nil
}

func scanAuthMethod(row pgx.Row) (*domain.AuthMethod, error) {
	var (
		am     domain.AuthMethod
		method string
	)
	if err := row.Scan(&am.ID, &am.UserID, &method, &am.PasswordHash, &am.CreatedAt, &am.UpdatedAt); err != nil {
		return nil, err
	}
	am.Method = domain.AuthMethodType(method)
	return &am, nil
}
