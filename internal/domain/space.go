package domain

import (
	"time"

	"github.com/google/uuid"
)

// Space is a user- or organization-owned container scoping chats, notes and files.
// Exactly one of OwnerUserID and OrganizationID is set.
type Space struct {
	ID             uuid.UUID
	Name           string
	Description    *string
	OwnerUserID    *uuid.UUID
	OrganizationID *uuid.UUID
	CreatedBy      uuid.UUID
	CreatedAt      time.Time
	UpdatedAt      time.Time
}

// SpaceUpdateParams holds optional fields for a space update.
type SpaceUpdateParams struct {
	Name        *string
	Description *string // nil = don't change; ptr("") = clear
}

// IsPersonal reports whether the space belongs to a single user.
func (s *Space) IsPersonal() bool {
	return s.OwnerUserID != nil
}

// SpaceAccess is the level of access a user has to a space.
type SpaceAccess int

const (
	SpaceAccessNone   SpaceAccess = iota
	SpaceAccessWrite              // read and write content inside the space
	SpaceAccessManage             // rename or delete the space itself
)

// AccessFor resolves a user's access to the space. role is the user's membership
// role in the owning organization, nil when the user is not a member.
func (s *Space) AccessFor(userID uuid.UUID, role *MemberRole) SpaceAccess {
	if s.IsPersonal() {
		if *s.OwnerUserID == userID {
			return SpaceAccessManage
		}
		return SpaceAccessNone
	}
	if role == nil || !role.IsValid() {
		return SpaceAccessNone
	}
	if role.AtLeast(MemberRoleAdmin) {
		return SpaceAccessManage
	}
	return SpaceAccessWrite
}
