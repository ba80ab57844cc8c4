package repository

import (
	"context"
	"errors"
	"fmt"

	"gorm.io/gorm"

	"github.com/camden-git/personsbackend/apperrors"
	"github.com/camden-git/personsbackend/models"
)

// PersonRepository handles database operations for Person entities through GORM.
type PersonRepository struct {
	DB *gorm.DB
}

// NewPersonRepository creates a new instance of PersonRepository
func NewPersonRepository(db *gorm.DB) *PersonRepository {
	return &PersonRepository{DB: db}
}

// List retrieves all persons ordered by id.
func (r *PersonRepository) List(ctx context.Context) ([]models.Person, error) {
	people := []models.Person{}
	err := r.DB.WithContext(ctx).Order("id ASC").Find(&people).Error
	if err != nil {
		return nil, apperrors.NewStorageOperation(apperrors.OpRead, fmt.Errorf("failed to list persons: %w", err))
	}
	return people, nil
}

// GetByID retrieves a person by ID. A missing row is reported as not found, not as an error.
func (r *PersonRepository) GetByID(ctx context.Context, id int) (models.Person, bool, error) {
	var person models.Person
	err := r.DB.WithContext(ctx).First(&person, id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return models.Person{}, false, nil
		}
		return models.Person{}, false, apperrors.NewStorageOperation(apperrors.OpRead,
			fmt.Errorf("failed to get person by ID %d: %w", id, err))
	}
	return person, true, nil
}

// ListByColor retrieves the persons with the given color ordered by id.
func (r *PersonRepository) ListByColor(ctx context.Context, colorID int) ([]models.Person, error) {
	people := []models.Person{}
	err := r.DB.WithContext(ctx).Where("color = ?", colorID).Order("id ASC").Find(&people).Error
	if err != nil {
		return nil, apperrors.NewStorageOperation(apperrors.OpRead,
			fmt.Errorf("failed to list persons with color %d: %w", colorID, err))
	}
	return people, nil
}

// Add creates a new person record and returns it with the generated id.
func (r *PersonRepository) Add(ctx context.Context, person models.Person) (models.Person, error) {
	person = normalizePerson(person)
	if err := requireName(person); err != nil {
		return models.Person{}, err
	}
	person.ID = 0

	err := r.DB.WithContext(ctx).Create(&person).Error
	if err != nil {
		return models.Person{}, apperrors.NewStorageOperation(apperrors.OpWrite,
			fmt.Errorf("failed to create person: %w", err))
	}
	return person, nil
}
