package domain

import (
	"time"

	"github.com/google/uuid"
)

// Chat is a conversation owned by a single user, optionally scoped to a space.
type Chat struct {
	ID           uuid.UUID
	UserID       uuid.UUID
	SpaceID      *uuid.UUID
	Title        string
	Pinned       bool
	MessageCount int // denormalised, maintained on message insert/delete
	CreatedAt    time.Time
	UpdatedAt    time.Time

	Messages []Message
}

// ChatUpdateParams holds optional fields for a chat update.
type ChatUpdateParams struct {
	Title  *string
	Pinned *bool
}

// ChatFilter narrows a chat listing.
type ChatFilter struct {
	SpaceID *uuid.UUID
	Pinned  *bool
	Limit   int
	Offset  int
}

// Message is a single turn in a chat.
type Message struct {
	ID        uuid.UUID
	ChatID    uuid.UUID
	SenderID  *uuid.UUID // nil for assistant/system messages
	Role      MessageRole
	Content   string
	CreatedAt time.Time
}
