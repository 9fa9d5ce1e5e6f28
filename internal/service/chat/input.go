package chat

import (
	"unicode/utf8"

	"github.com/google/uuid"

	"github.com/heartmarshall/workbench-backend/internal/domain"
)

const (
	// DefaultTitle is used when a chat is created without a title.
	DefaultTitle = "New chat"

	maxTitleLen   = 200
	maxContentLen = 100_000
)

// CreateChatInput holds parameters for creating a chat.
type CreateChatInput struct {
	Title   string
	SpaceID *uuid.UUID
}

func (i CreateChatInput) Validate() error {
	if utf8.RuneCountInString(i.Title) > maxTitleLen {
		return domain.NewValidationError("title", "max 200 characters")
	}
	return nil
}

// ListChatsInput narrows a chat listing.
type ListChatsInput struct {
	SpaceID *uuid.UUID
	Pinned  *bool
	Limit   int
	Offset  int
}

func (i ListChatsInput) Validate() error {
	var errs []domain.FieldError
	if i.Limit < 0 {
		errs = append(errs, domain.FieldError{Field: "limit", Message: "must be non-negative"})
	}
	if i.Offset < 0 {
		errs = append(errs, domain.FieldError{Field: "offset", Message: "must be non-negative"})
	}
	if len(errs) > 0 {
		return &domain.ValidationError{Errors: errs}
	}
	return nil
}

// UpdateChatInput holds optional fields for a chat update.
type UpdateChatInput struct {
	Title  *string
	Pinned *bool
}

func (i UpdateChatInput) Validate() error {
	var errs []domain.FieldError
	if i.Title == nil && i.Pinned == nil {
		errs = append(errs, domain.FieldError{Field: "input", Message: "at least one field must be provided"})
	}
	if i.Title != nil {
		if *i.Title == "" {
			errs = append(errs, domain.FieldError{Field: "title", Message: "cannot be empty"})
		} else if utf8.RuneCountInString(*i.Title) > maxTitleLen {
			errs = append(errs, domain.FieldError{Field: "title", Message: "max 200 characters"})
		}
	}
	if len(errs) > 0 {
		return &domain.ValidationError{Errors: errs}
	}
	return nil
}

// CreateMessageInput holds parameters for appending a message to a chat.
// Role defaults to user.
type CreateMessageInput struct {
	Role    domain.MessageRole
	Content string
}

func (i CreateMessageInput) Validate() error {
	var errs []domain.FieldError
	if !i.Role.IsValid() {
		errs = append(errs, domain.FieldError{Field: "role", Message: "must be user, assistant or system"})
	}
	if i.Content == "" {
		errs = append(errs, domain.FieldError{Field: "content", Message: "required"})
	} else if len(i.Content) > maxContentLen {
		errs = append(errs, domain.FieldError{Field: "content", Message: "too long"})
	}
	if len(errs) > 0 {
		return &domain.ValidationError{Errors: errs}
	}
	return nil
}
