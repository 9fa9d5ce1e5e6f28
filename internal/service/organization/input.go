package organization

import (
	"regexp"
	"unicode/utf8"

	"github.com/google/uuid"

	"github.com/heartmarshall/workbench-backend/internal/domain"
)

var slugPattern = regexp.MustCompile(`^[a-z0-9]+(-[a-z0-9]+)*$`)

// CreateOrganizationInput holds parameters for creating an organization.
// Slug is derived from Name when empty.
type CreateOrganizationInput struct {
	Name string
	Slug string
}

func (i CreateOrganizationInput) Validate() error {
	var errs []domain.FieldError
	errs = append(errs, validateName(i.Name)...)
	errs = append(errs, validateSlug(i.Slug)...)
	if len(errs) > 0 {
		return &domain.ValidationError{Errors: errs}
	}
	return nil
}

// UpdateOrganizationInput holds optional fields for an organization update.
type UpdateOrganizationInput struct {
	Name *string
	Slug *string
}

func (i UpdateOrganizationInput) Validate() error {
	var errs []domain.FieldError
	if i.Name == nil && i.Slug == nil {
		errs = append(errs, domain.FieldError{Field: "input", Message: "at least one field must be provided"})
	}
	if i.Name != nil {
		errs = append(errs, validateName(*i.Name)...)
	}
	if i.Slug != nil {
		errs = append(errs, validateSlug(*i.Slug)...)
	}
	if len(errs) > 0 {
		return &domain.ValidationError{Errors: errs}
	}
	return nil
}

// AddMemberInput identifies the user to add either by id or by email.
type AddMemberInput struct {
	UserID *uuid.UUID
	Email  string
	Role   domain.MemberRole
}

func (i AddMemberInput) Validate() error {
	var errs []domain.FieldError
	if i.UserID == nil && i.Email == "" {
		errs = append(errs, domain.FieldError{Field: "user_id", Message: "user_id or email is required"})
	}
	if i.UserID != nil && i.Email != "" {
		errs = append(errs, domain.FieldError{Field: "user_id", Message: "provide either user_id or email"})
	}
	if !i.Role.IsValid() {
		errs = append(errs, domain.FieldError{Field: "role", Message: "must be owner, admin or member"})
	}
	if len(errs) > 0 {
		return &domain.ValidationError{Errors: errs}
	}
	return nil
}

func validateName(name string) []domain.FieldError {
	if name == "" {
		return []domain.FieldError{{Field: "name", Message: "required"}}
	}
	if utf8.RuneCountInString(name) > 100 {
		return []domain.FieldError{{Field: "name", Message: "max 100 characters"}}
	}
	return nil
}

func validateSlug(slug string) []domain.FieldError {
	if slug == "" {
		return []domain.FieldError{{Field: "slug", Message: "required"}}
	}
	if len(slug) > 64 {
		return []domain.FieldError{{Field: "slug", Message: "max 64 characters"}}
	}
	if !slugPattern.MatchString(slug) {
		return []domain.FieldError{{Field: "slug", Message: "lowercase letters, digits and hyphens only"}}
	}
	return nil
}
