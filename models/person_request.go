package models

import (
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/camden-git/personsbackend/apperrors"
)

const (
	maxNameLength    = 100
	maxAddressLength = 255
)

// CreatePersonRequest is the payload accepted when creating a person.
type CreatePersonRequest struct {
	FirstName *string `json:"firstName"`
	LastName  *string `json:"lastName"`
	Address   *string `json:"address"`
	Color     *int    `json:"color"`
}

// Validate checks every rule and reports all failures together.
func (r CreatePersonRequest) Validate() error {
	var errs []string

	if !nonBlank(r.FirstName) && !nonBlank(r.LastName) {
		errs = append(errs, "at least one of firstName or lastName is required")
	}
	if r.FirstName != nil && utf8.RuneCountInString(strings.TrimSpace(*r.FirstName)) > maxNameLength {
		errs = append(errs, fmt.Sprintf("firstName must not exceed %d characters", maxNameLength))
	}
	if r.LastName != nil && utf8.RuneCountInString(strings.TrimSpace(*r.LastName)) > maxNameLength {
		errs = append(errs, fmt.Sprintf("lastName must not exceed %d characters", maxNameLength))
	}
	if r.Address != nil && utf8.RuneCountInString(strings.TrimSpace(*r.Address)) > maxAddressLength {
		errs = append(errs, fmt.Sprintf("address must not exceed %d characters", maxAddressLength))
	}
	if r.Color != nil && ValidateColorID(*r.Color) != nil {
		errs = append(errs, fmt.Sprintf("color must be between %d and %d, got %d", MinColorID, MaxColorID, *r.Color))
	}

	if len(errs) > 0 {
		return &apperrors.InvalidPersonDataError{Errors: errs}
	}
	return nil
}

// ToPerson builds an unsaved person from a validated request.
func (r CreatePersonRequest) ToPerson() Person {
	p := Person{
		FirstName: StringPtr(Deref(r.FirstName)),
		LastName:  StringPtr(Deref(r.LastName)),
		Address:   StringPtr(Deref(r.Address)),
	}
	if r.Color != nil {
		p.Color = IntPtr(*r.Color)
	}
	return p
}
