package repository

import (
	"context"
	"database/sql"
	"errors"

	"github.com/camden-git/personsbackend/apperrors"
	"github.com/camden-git/personsbackend/database"
	"github.com/camden-git/personsbackend/models"
)

// SQLPersonRepository stores persons through hand-built SQL on a plain *sql.DB.
type SQLPersonRepository struct {
	DB *sql.DB
}

// NewSQLPersonRepository creates a new instance of SQLPersonRepository
func NewSQLPersonRepository(db *sql.DB) *SQLPersonRepository {
	return &SQLPersonRepository{DB: db}
}

func (r *SQLPersonRepository) List(ctx context.Context) ([]models.Person, error) {
	people, err := database.ListPersons(ctx, r.DB)
	if err != nil {
		return nil, apperrors.NewStorageOperation(apperrors.OpRead, err)
	}
	return people, nil
}

func (r *SQLPersonRepository) GetByID(ctx context.Context, id int) (models.Person, bool, error) {
	p, err := database.GetPersonByID(ctx, r.DB, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return models.Person{}, false, nil
		}
		return models.Person{}, false, apperrors.NewStorageOperation(apperrors.OpRead, err)
	}
	return p, true, nil
}

func (r *SQLPersonRepository) ListByColor(ctx context.Context, colorID int) ([]models.Person, error) {
	people, err := database.ListPersonsByColor(ctx, r.DB, colorID)
	if err != nil {
		return nil, apperrors.NewStorageOperation(apperrors.OpRead, err)
	}
	return people, nil
}

// Add inserts the person and reads the stored row back.
func (r *SQLPersonRepository) Add(ctx context.Context, person models.Person) (models.Person, error) {
	person = normalizePerson(person)
	if err := requireName(person); err != nil {
		return models.Person{}, err
	}
	id, err := database.CreatePerson(ctx, r.DB, person)
	if err != nil {
		return models.Person{}, apperrors.NewStorageOperation(apperrors.OpWrite, err)
	}
	stored, err := database.GetPersonByID(ctx, r.DB, id)
	if err != nil {
		return models.Person{}, apperrors.NewStorageOperation(apperrors.OpWrite, err)
	}
	return stored, nil
}
