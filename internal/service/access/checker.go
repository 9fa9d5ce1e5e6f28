// Package access resolves whether a user may act on a space or on a resource
// owned by a user. Every feature service shares this one rule.
package access

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"

	"github.com/heartmarshall/workbench-backend/internal/domain"
)

type spaceRepo interface {
	GetByID(ctx context.Context, id uuid.UUID) (*domain.Space, error)
}

type membershipRepo interface {
	GetMembership(ctx context.Context, orgID, userID uuid.UUID) (*domain.Membership, error)
}

// Checker evaluates space access for a user.
type Checker struct {
	spaces  spaceRepo
	members membershipRepo
}

// NewChecker creates a new access checker.
func NewChecker(spaces spaceRepo, members membershipRepo) *Checker {
	return &Checker{spaces: spaces, members: members}
}

// Space loads the space and resolves the user's access level to it.
// Returns domain.ErrNotFound when the space does not exist.
func (c *Checker) Space(ctx context.Context, userID, spaceID uuid.UUID) (*domain.Space, domain.SpaceAccess, error) {
	space, err := c.spaces.GetByID(ctx, spaceID)
	if err != nil {
		return nil, domain.SpaceAccessNone, err
	}
	if space.IsPersonal() {
		return space, space.AccessFor(userID, nil), nil
	}

	m, err := c.members.GetMembership(ctx, *space.OrganizationID, userID)
	switch {
	case errors.Is(err, domain.ErrNotFound):
		return space, domain.SpaceAccessNone, nil
	case err != nil:
		return nil, domain.SpaceAccessNone, fmt.Errorf("get membership: %w", err)
	}
	return space, space.AccessFor(userID, &m.Role), nil
}

// RequireSpace returns the space if the user has at least the min level.
// Returns domain.ErrForbidden otherwise.
func (c *Checker) RequireSpace(ctx context.Context, userID, spaceID uuid.UUID, min domain.SpaceAccess) (*domain.Space, error) {
	space, level, err := c.Space(ctx, userID, spaceID)
	if err != nil {
		return nil, err
	}
	if level < min || level == domain.SpaceAccessNone {
		return nil, fmt.Errorf("space %s: %w", spaceID, domain.ErrForbidden)
	}
	return space, nil
}

// RequireOwner returns domain.ErrForbidden unless userID owns the resource.
func RequireOwner(userID, ownerID uuid.UUID) error {
	if userID != ownerID {
		return domain.ErrForbidden
	}
	return nil
}
