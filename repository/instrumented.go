package repository

import (
	"context"
	"time"

	"github.com/camden-git/personsbackend/metrics"
	"github.com/camden-git/personsbackend/models"
)

// InstrumentedRepository records metrics for every call to the wrapped backend.
type InstrumentedRepository struct {
	next    PersonRepositoryInterface
	backend string
	metrics *metrics.Metrics
}

func NewInstrumentedRepository(next PersonRepositoryInterface, backend string, m *metrics.Metrics) *InstrumentedRepository {
	return &InstrumentedRepository{next: next, backend: backend, metrics: m}
}

func (r *InstrumentedRepository) List(ctx context.Context) ([]models.Person, error) {
	started := time.Now()
	people, err := r.next.List(ctx)
	r.metrics.ObserveOperation(r.backend, "list", started, err)
	return people, err
}

func (r *InstrumentedRepository) GetByID(ctx context.Context, id int) (models.Person, bool, error) {
	started := time.Now()
	p, found, err := r.next.GetByID(ctx, id)
	r.metrics.ObserveOperation(r.backend, "get_by_id", started, err)
	return p, found, err
}

func (r *InstrumentedRepository) ListByColor(ctx context.Context, colorID int) ([]models.Person, error) {
	started := time.Now()
	people, err := r.next.ListByColor(ctx, colorID)
	r.metrics.ObserveOperation(r.backend, "list_by_color", started, err)
	return people, err
}

func (r *InstrumentedRepository) Add(ctx context.Context, person models.Person) (models.Person, error) {
	started := time.Now()
	p, err := r.next.Add(ctx, person)
	r.metrics.ObserveOperation(r.backend, "add", started, err)
	if err == nil {
		r.metrics.IncrementPersonsCreated()
	}
	return p, err
}
