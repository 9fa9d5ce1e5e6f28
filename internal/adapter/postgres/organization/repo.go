// Package organization implements organization and membership persistence
// using PostgreSQL.
package organization

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	postgres "github.com/heartmarshall/workbench-backend/internal/adapter/postgres"
	"github.com/heartmarshall/workbench-backend/internal/domain"
)

// Repo provides organization persistence backed by PostgreSQL.
type Repo struct {
	pool *pgxpool.Pool
}

// New creates a new organization repository.
func New(pool *pgxpool.Pool) *Repo {
	return &Repo{pool: pool}
}

// ---------------------------------------------------------------------------
// Organizations
// ---------------------------------------------------------------------------

const orgColumns = `o.id, o.name, o.slug, o.created_by, o.created_at, o.updated_at`

const (
	createOrgSQL = `
INSERT INTO organizations (id, name, slug, created_by, created_at, updated_at)
VALUES ($1, $2, $3, $4, $5, $6)`

	getForUserSQL = `
SELECT ` + orgColumns + `, m.role,
       (SELECT count(*) FROM memberships mc WHERE mc.organization_id = o.id)
FROM organizations o
JOIN memberships m ON m.organization_id = o.id AND m.user_id = $2
WHERE o.id = $1`

	listForUserSQL = `
SELECT ` + orgColumns + `, m.role,
       (SELECT count(*) FROM memberships mc WHERE mc.organization_id = o.id)
FROM organizations o
JOIN memberships m ON m.organization_id = o.id AND m.user_id = $1
ORDER BY o.name, o.id`

	existsSQL = `SELECT EXISTS(SELECT 1 FROM organizations WHERE id = $1)`

	updateOrgSQL = `
UPDATE organizations o SET
    name       = COALESCE($2, o.name),
    slug       = COALESCE($3, o.slug),
    updated_at = now()
WHERE o.id = $1
RETURNING ` + orgColumns

	deleteOrgSQL = `DELETE FROM organizations WHERE id = $1`

	countOwnedSQL = `SELECT count(*) FROM memberships WHERE user_id = $1 AND role = 'owner'`
)

// Create inserts an organization. The creator's owner membership is added
// separately via AddMember inside the same transaction.
func (r *Repo) Create(ctx context.Context, org *domain.Organization) error {
	_, err := postgres.QuerierFromCtx(ctx, r.pool).Exec(ctx, createOrgSQL,
		org.ID, org.Name, org.Slug, org.CreatedBy, org.CreatedAt, org.UpdatedAt,
	)
	if err != nil {
		return postgres.MapError(err, "organization", org.ID)
	}
	return nil
}

// GetForUser returns the organization with the caller's role filled in.
// Returns domain.ErrNotFound when the user is not a member.
func (r *Repo) GetForUser(ctx context.Context, orgID, userID uuid.UUID) (*domain.Organization, error) {
	row := postgres.QuerierFromCtx(ctx, r.pool).QueryRow(ctx, getForUserSQL, orgID, userID)
	org, err := scanOrgWithRole(row)
	if err != nil {
		return nil, postgres.MapError(err, "organization", orgID)
	}
	return org, nil
}

// ListForUser returns every organization the user belongs to.
func (r *Repo) ListForUser(ctx context.Context, userID uuid.UUID) ([]domain.Organization, error) {
	rows, err := postgres.QuerierFromCtx(ctx, r.pool).Query(ctx, listForUserSQL, userID)
	if err != nil {
		return nil, fmt.Errorf("list organizations: %w", err)
	}
	defer rows.Close()

	orgs := []domain.Organization{}
	for rows.Next() {
		org, err := scanOrgWithRole(rows)
		if err != nil {
			return nil, fmt.Errorf("scan organization: %w", err)
		}
		orgs = append(orgs, *org)
	}
	return orgs, rows.Err()
}

// Exists reports whether an organization with the id exists.
func (r *Repo) Exists(ctx context.Context, orgID uuid.UUID) (bool, error) {
	var ok bool
	if err := postgres.QuerierFromCtx(ctx, r.pool).QueryRow(ctx, existsSQL, orgID).Scan(&ok); err != nil {
		return false, postgres.MapError(err, "organization", orgID)
	}
	return ok, nil
}

// Update applies a partial update and returns the row without role info.
func (r *Repo) Update(ctx context.Context, orgID uuid.UUID, params domain.OrganizationUpdateParams) (*domain.Organization, error) {
	var o domain.Organization
	err := postgres.QuerierFromCtx(ctx, r.pool).QueryRow(ctx, updateOrgSQL, orgID, params.Name, params.Slug).
		Scan(&o.ID, &o.Name, &o.Slug, &o.CreatedBy, &o.CreatedAt, &o.UpdatedAt)
	if err != nil {
		return nil, postgres.MapError(err, "organization", orgID)
	}
	return &o, nil
}

// Delete removes an organization; memberships and spaces cascade.
func (r *Repo) Delete(ctx context.Context, orgID uuid.UUID) error {
	tag, err := postgres.QuerierFromCtx(ctx, r.pool).Exec(ctx, deleteOrgSQL, orgID)
	if err != nil {
		return postgres.MapError(err, "organization", orgID)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("organization %s: %w", orgID, domain.ErrNotFound)
	}
	return nil
}

// CountOwned returns how many organizations the user owns.
func (r *Repo) CountOwned(ctx context.Context, userID uuid.UUID) (int, error) {
	var n int
	if err := postgres.QuerierFromCtx(ctx, r.pool).QueryRow(ctx, countOwnedSQL, userID).Scan(&n); err != nil {
		return 0, fmt.Errorf("count owned organizations: %w", err)
	}
	return n, nil
}

// ---------------------------------------------------------------------------
// Memberships
// ---------------------------------------------------------------------------

const memberColumns = `organization_id, user_id, role, created_at, updated_at`

const (
	addMemberSQL = `
INSERT INTO memberships (organization_id, user_id, role)
VALUES ($1, $2, $3)
RETURNING ` + memberColumns

	getMemberSQL = `SELECT ` + memberColumns + ` FROM memberships WHERE organization_id = $1 AND user_id = $2`

	listMembersSQL = `
SELECT ` + memberColumns + ` FROM memberships
WHERE organization_id = $1
ORDER BY CASE role WHEN 'owner' THEN 0 WHEN 'admin' THEN 1 ELSE 2 END, created_at`

	updateMemberSQL = `
UPDATE memberships SET role = $3, updated_at = now()
WHERE organization_id = $1 AND user_id = $2
RETURNING ` + memberColumns

	removeMemberSQL = `DELETE FROM memberships WHERE organization_id = $1 AND user_id = $2`

	// Row locks on the owner set serialise concurrent demote/remove calls.
	lockOwnersSQL = `
SELECT user_id FROM memberships
WHERE organization_id = $1 AND role = 'owner'
FOR UPDATE`
)

// AddMember inserts a membership. Returns domain.ErrAlreadyExists when the
// user is already a member.
func (r *Repo) AddMember(ctx context.Context, orgID, userID uuid.UUID, role domain.MemberRole) (*domain.Membership, error) {
	row := postgres.QuerierFromCtx(ctx, r.pool).QueryRow(ctx, addMemberSQL, orgID, userID, string(role))
	m, err := scanMembership(row)
	if err != nil {
		return nil, postgres.MapError(err, "membership", userID)
	}
	return m, nil
}

// GetMembership returns the user's membership in the organization.
func (r *Repo) GetMembership(ctx context.Context, orgID, userID uuid.UUID) (*domain.Membership, error) {
	row := postgres.QuerierFromCtx(ctx, r.pool).QueryRow(ctx, getMemberSQL, orgID, userID)
	m, err := scanMembership(row)
	if err != nil {
		return nil, postgres.MapError(err, "membership", userID)
	}
	return m, nil
}

// ListMembers returns memberships ordered owners first.
func (r *Repo) ListMembers(ctx context.Context, orgID uuid.UUID) ([]domain.Membership, error) {
	rows, err := postgres.QuerierFromCtx(ctx, r.pool).Query(ctx, listMembersSQL, orgID)
	if err != nil {
		return nil, fmt.Errorf("list members: %w", err)
	}
	defer rows.Close()

	members := []domain.Membership{}
	for rows.Next() {
		m, err := scanMembership(rows)
		if err != nil {
			return nil, fmt.Errorf("scan membership: %w", err)
		}
		members = append(members, *m)
	}
	return members, rows.Err()
}

// UpdateMemberRole changes a member's role.
func (r *Repo) UpdateMemberRole(ctx context.Context, orgID, userID uuid.UUID, role domain.MemberRole) (*domain.Membership, error) {
	row := postgres.QuerierFromCtx(ctx, r.pool).QueryRow(ctx, updateMemberSQL, orgID, userID, string(role))
	m, err := scanMembership(row)
	if err != nil {
		return nil, postgres.MapError(err, "membership", userID)
	}
	return m, nil
}

// RemoveMember deletes a membership.
func (r *Repo) RemoveMember(ctx context.Context, orgID, userID uuid.UUID) error {
	tag, err := postgres.QuerierFromCtx(ctx, r.pool).Exec(ctx, removeMemberSQL, orgID, userID)
	if err != nil {
		return postgres.MapError(err, "membership", userID)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("membership %s: %w", userID, domain.ErrNotFound)
	}
	return nil
}

// LockOwners returns the owner user IDs and holds row locks on them until the
// surrounding transaction ends. Must be called inside RunInTx.
func (r *Repo) LockOwners(ctx context.Context, orgID uuid.UUID) ([]uuid.UUID, error) {
	rows, err := postgres.QuerierFromCtx(ctx, r.pool).Query(ctx, lockOwnersSQL, orgID)
	if err != nil {
		return nil, fmt.Errorf("lock owners: %w", err)
	}
	return pgx.CollectRows(rows, pgx.RowTo[uuid.UUID])
}

// ---------------------------------------------------------------------------
// Scanning
// ---------------------------------------------------------------------------

func scanOrgWithRole(row pgx.Row) (*domain.Organization, error) {
	var (
		o    domain.Organization
		role string
	)
	if err := row.Scan(&o.ID, &o.Name, &o.Slug, &o.CreatedBy, &o.CreatedAt, &o.UpdatedAt, &role, &o.MemberCount); err != nil {
		return nil, err
	}
	o.Role = domain.MemberRole(role)
	return &o, nil
}

func scanMembership(row pgx.Row) (*domain.Membership, error) {
	var (
		m    domain.Membership
		role string
	)
	if err := row.Scan(&m.OrganizationID, &m.UserID, &role, &m.CreatedAt, &m.UpdatedAt); err != nil {
		return nil, err
	}
	m.Role = domain.MemberRole(role)
	return &m, nil
}
