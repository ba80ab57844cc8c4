package repository

import (
	"github.com/camden-git/personsbackend/apperrors"
	"github.com/camden-git/personsbackend/models"
)

// normalizePerson trims the text fields and turns blank ones into absent
// values, so every backend stores and returns the same record.
func normalizePerson(p models.Person) models.Person {
	p.LastName = models.StringPtr(models.Deref(p.LastName))
	p.FirstName = models.StringPtr(models.Deref(p.FirstName))
	p.Address = models.StringPtr(models.Deref(p.Address))
	return p
}

func requireName(p models.Person) error {
	if !p.HasName() {
		return &apperrors.InvalidPersonDataError{Errors: []string{"at least one of firstName or lastName is required"}}
	}
	return nil
}
