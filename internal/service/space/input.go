package space

import (
	"unicode/utf8"

	"github.com/google/uuid"

	"github.com/heartmarshall/workbench-backend/internal/domain"
)

const (
	maxNameLen        = 100
	maxDescriptionLen = 1000
)

// CreateSpaceInput creates a personal space, or an organization space when
// OrganizationID is set.
type CreateSpaceInput struct {
	Name           string
	Description    *string
	OrganizationID *uuid.UUID
}

func (i CreateSpaceInput) Validate() error {
	var errs []domain.FieldError
	errs = append(errs, validateName(i.Name)...)
	if i.Description != nil {
		errs = append(errs, validateDescription(*i.Description)...)
	}
	if len(errs) > 0 {
		return &domain.ValidationError{Errors: errs}
	}
	return nil
}

// UpdateSpaceInput holds optional fields; an empty Description clears it.
type UpdateSpaceInput struct {
	Name        *string
	Description *string
}

func (i UpdateSpaceInput) Validate() error {
	var errs []domain.FieldError
	if i.Name == nil && i.Description == nil {
		errs = append(errs, domain.FieldError{Field: "input", Message: "at least one field must be provided"})
	}
	if i.Name != nil {
		errs = append(errs, validateName(*i.Name)...)
	}
	if i.Description != nil {
		errs = append(errs, validateDescription(*i.Description)...)
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
	if utf8.RuneCountInString(name) > maxNameLen {
		return []domain.FieldError{{Field: "name", Message: "max 100 characters"}}
	}
	return nil
}

func validateDescription(d string) []domain.FieldError {
	if utf8.RuneCountInString(d) > maxDescriptionLen {
		return []domain.FieldError{{Field: "description", Message: "max 1000 characters"}}
	}
	return nil
}
