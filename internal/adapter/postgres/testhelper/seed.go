package testhelper

import (
	"context"
	"encoding/json"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/heartmarshall/workbench-backend/internal/domain"
)

func uniqueSuffix() string {
	return uuid.New().String()[:8]
}

func now() time.Time {
	return time.Now().UTC().Truncate(time.Microsecond)
}

// SeedUser inserts a user with a unique email and username.
func SeedUser(t *testing.T, pool *pgxpool.Pool) domain.User {
	t.Helper()

	suffix := uniqueSuffix()
	ts := now()
	user := domain.User{
		ID:        uuid.New(),
		Email:     "testuser-" + suffix + "@example.com",
		Username:  "testuser-" + suffix,
		Name:      "Test User " + suffix,
		CreatedAt: ts,
		UpdatedAt: ts,
	}

	_, err := pool.Exec(context.Background(),
		`INSERT INTO users (id, email, username, name, created_at, updated_at)
		 VALUES ($1, $2, $3, $4, $5, $6)`,
		user.ID, user.Email, user.Username, user.Name, user.CreatedAt, user.UpdatedAt,
	)
	if err != nil {
		t.Fatalf("testhelper: SeedUser: %v", err)
	}
	return user
}

// SeedOrganization inserts an organization with owner as its sole owner.
func SeedOrganization(t *testing.T, pool *pgxpool.Pool, owner uuid.UUID) domain.Organization {
	t.Helper()
	ctx := context.Background()

	suffix := uniqueSuffix()
	ts := now()
	org := domain.Organization{
		ID:        uuid.New(),
		Name:      "Org " + suffix,
		Slug:      "org-" + suffix,
		CreatedBy: owner,
		CreatedAt: ts,
		UpdatedAt: ts,
		Role:      domain.MemberRoleOwner,
	}

	_, err := pool.Exec(ctx,
		`INSERT INTO organizations (id, name, slug, created_by, created_at, updated_at)
		 VALUES ($1, $2, $3, $4, $5, $6)`,
		org.ID, org.Name, org.Slug, org.CreatedBy, org.CreatedAt, org.UpdatedAt,
	)
	if err != nil {
		t.Fatalf("testhelper: SeedOrganization: %v", err)
	}
	SeedMembership(t, pool, org.ID, owner, domain.MemberRoleOwner)
	org.MemberCount = 1
	return org
}

// SeedMembership adds userID to an organization with the given role.
func SeedMembership(t *testing.T, pool *pgxpool.Pool, orgID, userID uuid.UUID, role domain.MemberRole) {
	t.Helper()

	_, err := pool.Exec(context.Background(),
		`INSERT INTO memberships (organization_id, user_id, role) VALUES ($1, $2, $3)`,
		orgID, userID, string(role),
	)
	if err != nil {
		t.Fatalf("testhelper: SeedMembership: %v", err)
	}
}

// SeedPersonalSpace inserts a space owned by userID.
func SeedPersonalSpace(t *testing.T, pool *pgxpool.Pool, userID uuid.UUID) domain.Space {
	t.Helper()
	return seedSpace(t, pool, userID, &userID, nil)
}

// SeedOrgSpace inserts a space owned by an organization.
func SeedOrgSpace(t *testing.T, pool *pgxpool.Pool, createdBy, orgID uuid.UUID) domain.Space {
	t.Helper()
	return seedSpace(t, pool, createdBy, nil, &orgID)
}

func seedSpace(t *testing.T, pool *pgxpool.Pool, createdBy uuid.UUID, owner, org *uuid.UUID) domain.Space {
	t.Helper()

	ts := now()
	s := domain.Space{
		ID:             uuid.New(),
		Name:           "Space " + uniqueSuffix(),
		OwnerUserID:    owner,
		OrganizationID: org,
		CreatedBy:      createdBy,
		CreatedAt:      ts,
		UpdatedAt:      ts,
	}

	_, err := pool.Exec(context.Background(),
		`INSERT INTO spaces (id, name, owner_user_id, organization_id, created_by, created_at, updated_at)
		 VALUES ($1, $2, $3, $4, $5, $6, $7)`,
		s.ID, s.Name, s.OwnerUserID, s.OrganizationID, s.CreatedBy, s.CreatedAt, s.UpdatedAt,
	)
	if err != nil {
		t.Fatalf("testhelper: SeedSpace: %v", err)
	}
	return s
}

// SeedChat inserts an empty chat.
func SeedChat(t *testing.T, pool *pgxpool.Pool, userID uuid.UUID, spaceID *uuid.UUID) domain.Chat {
	t.Helper()

	ts := now()
	c := domain.Chat{
		ID:        uuid.New(),
		UserID:    userID,
		SpaceID:   spaceID,
		Title:     "Chat " + uniqueSuffix(),
		CreatedAt: ts,
		UpdatedAt: ts,
	}

	_, err := pool.Exec(context.Background(),
		`INSERT INTO chats (id, user_id, space_id, title, created_at, updated_at)
		 VALUES ($1, $2, $3, $4, $5, $6)`,
		c.ID, c.UserID, c.SpaceID, c.Title, c.CreatedAt, c.UpdatedAt,
	)
	if err != nil {
		t.Fatalf("testhelper: SeedChat: %v", err)
	}
	return c
}

// SeedNote inserts a note at the given position and folder.
func SeedNote(t *testing.T, pool *pgxpool.Pool, userID uuid.UUID, spaceID *uuid.UUID, position int, folder ...string) domain.Note {
	t.Helper()

	ts := now()
	n := domain.Note{
		ID:        uuid.New(),
		UserID:    userID,
		SpaceID:   spaceID,
		Title:     "Note " + uniqueSuffix(),
		Content:   "body",
		Position:  position,
		Metadata:  domain.NoteMetadata{FolderPath: domain.NormalizeFolderPath(folder), Tags: []string{}},
		CreatedAt: ts,
		UpdatedAt: ts,
	}

	meta, err := json.Marshal(map[string]any{"tags": n.Metadata.Tags, "pinned": false})
	if err != nil {
		t.Fatalf("testhelper: SeedNote marshal: %v", err)
	}

	_, err = pool.Exec(context.Background(),
		`INSERT INTO notes (id, user_id, space_id, title, content, position, folder_path, metadata, created_at, updated_at)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)`,
		n.ID, n.UserID, n.SpaceID, n.Title, n.Content, n.Position, n.Metadata.FolderPath, meta, n.CreatedAt, n.UpdatedAt,
	)
	if err != nil {
		t.Fatalf("testhelper: SeedNote: %v", err)
	}
	return n
}

// SeedFolder inserts a folder entry under parentID (nil = root).
func SeedFolder(t *testing.T, pool *pgxpool.Pool, userID uuid.UUID, parentID *uuid.UUID, name string) domain.File {
	t.Helper()
	return seedFile(t, pool, userID, parentID, domain.FileKindFolder, name, "")
}

// SeedFile inserts a blob entry under parentID with the given storage key.
func SeedFile(t *testing.T, pool *pgxpool.Pool, userID uuid.UUID, parentID *uuid.UUID, name, storageKey string) domain.File {
	t.Helper()
	return seedFile(t, pool, userID, parentID, domain.FileKindFile, name, storageKey)
}

func seedFile(t *testing.T, pool *pgxpool.Pool, userID uuid.UUID, parentID *uuid.UUID, kind domain.FileKind, name, key string) domain.File {
	t.Helper()

	ts := now()
	f := domain.File{
		ID:          uuid.New(),
		UserID:      userID,
		Kind:        kind,
		Name:        name,
		ContentType: "application/octet-stream",
		StorageKey:  key,
		Metadata:    domain.FileMetadata{ParentID: parentID},
		CreatedAt:   ts,
		UpdatedAt:   ts,
	}
	if kind == domain.FileKindFolder {
		f.ContentType = ""
	}

	meta, err := json.Marshal(f.Metadata)
	if err != nil {
		t.Fatalf("testhelper: SeedFile marshal: %v", err)
	}

	_, err = pool.Exec(context.Background(),
		`INSERT INTO files (id, user_id, kind, name, size, content_type, storage_key, metadata, created_at, updated_at)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)`,
		f.ID, f.UserID, string(f.Kind), f.Name, f.Size, f.ContentType, f.StorageKey, meta, f.CreatedAt, f.UpdatedAt,
	)
	if err != nil {
		t.Fatalf("testhelper: SeedFile: %v", err)
	}
	return f
}
