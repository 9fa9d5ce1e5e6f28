package domain

// MemberRole is a user's role inside an organization.
type MemberRole string

const (
	MemberRoleOwner  MemberRole = "owner"
	MemberRoleAdmin  MemberRole = "admin"
	MemberRoleMember MemberRole = "member"
)

func (r MemberRole) String() string { return string(r) }

func (r MemberRole) IsValid() bool {
	switch r {
	case MemberRoleOwner, MemberRoleAdmin, MemberRoleMember:
		return true
	}
	return false
}

func (r MemberRole) rank() int {
	switch r {
	case MemberRoleOwner:
		return 3
	case MemberRoleAdmin:
		return 2
	case MemberRoleMember:
		return 1
	}
	return 0
}

// AtLeast reports whether r grants at least the privileges of min.
func (r MemberRole) AtLeast(min MemberRole) bool {
	return r.rank() >= min.rank() && r.rank() > 0
}

// MessageRole identifies the author kind of a chat message.
type MessageRole string

const (
	MessageRoleUser      MessageRole = "user"
	MessageRoleAssistant MessageRole = "assistant"
	MessageRoleSystem    MessageRole = "system"
)

func (r MessageRole) String() string { return string(r) }

func (r MessageRole) IsValid() bool {
	switch r {
	case MessageRoleUser, MessageRoleAssistant, MessageRoleSystem:
		return true
	}
	return false
}

// FileKind distinguishes stored blobs from folders.
type FileKind string

const (
	FileKindFile   FileKind = "file"
	FileKindFolder FileKind = "folder"
)

func (k FileKind) String() string { return string(k) }

func (k FileKind) IsValid() bool {
	return k == FileKindFile || k == FileKindFolder
}

// EntityType identifies the kind of domain entity (used in audit logs).
type EntityType string

const (
	EntityTypeUser         EntityType = "USER"
	EntityTypeOrganization EntityType = "ORGANIZATION"
	EntityTypeMembership   EntityType = "MEMBERSHIP"
	EntityTypeSpace        EntityType = "SPACE"
	EntityTypeChat         EntityType = "CHAT"
	EntityTypeMessage      EntityType = "MESSAGE"
	EntityTypeNote         EntityType = "NOTE"
	EntityTypeFile         EntityType = "FILE"
)

func (e EntityType) String() string { return string(e) }

func (e EntityType) IsValid() bool {
	switch e {
	case EntityTypeUser, EntityTypeOrganization, EntityTypeMembership, EntityTypeSpace,
		EntityTypeChat, EntityTypeMessage, EntityTypeNote, EntityTypeFile:
		return true
	}
	return false
}

// AuditAction represents the kind of mutation recorded in the audit log.
type AuditAction string

const (
	AuditActionCreate AuditAction = "CREATE"
	AuditActionUpdate AuditAction = "UPDATE"
	AuditActionDelete AuditAction = "DELETE"
)

func (a AuditAction) String() string { return string(a) }

func (a AuditAction) IsValid() bool {
	switch a {
	case AuditActionCreate, AuditActionUpdate, AuditActionDelete:
		return true
	}
	return false
}
