package domain

import (
	"time"

	"github.com/google/uuid"
)

// Organization is a multi-user tenant with role-based membership.
type Organization struct {
	ID        uuid.UUID
	Name      string
	Slug      string
	CreatedBy uuid.UUID
	CreatedAt time.Time
	UpdatedAt time.Time

	Role        MemberRole // caller's role, filled by list/get queries
	MemberCount int        // computed field, not stored in DB
}

// OrganizationUpdateParams holds optional fields for an organization update.
type OrganizationUpdateParams struct {
	Name *string
	Slug *string
}

// Membership links a user to an organization with a role.
type Membership struct {
	OrganizationID uuid.UUID
	UserID         uuid.UUID
	Role           MemberRole
	CreatedAt      time.Time
	UpdatedAt      time.Time
}
