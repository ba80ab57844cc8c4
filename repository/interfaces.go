package repository

import (
	"context"

	"github.com/camden-git/personsbackend/models"
)

// PersonRepositoryInterface defines the methods every person store backend provides.
// A missing person is not an error: GetByID reports it through the bool.
type PersonRepositoryInterface interface {
	List(ctx context.Context) ([]models.Person, error)
	GetByID(ctx context.Context, id int) (models.Person, bool, error)
	ListByColor(ctx context.Context, colorID int) ([]models.Person, error)
	Add(ctx context.Context, person models.Person) (models.Person, error)
}

var (
	_ PersonRepositoryInterface = (*CSVPersonRepository)(nil)
	_ PersonRepositoryInterface = (*PersonRepository)(nil)
	_ PersonRepositoryInterface = (*SQLPersonRepository)(nil)
	_ PersonRepositoryInterface = (*InstrumentedRepository)(nil)
)
