package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const (
	OutcomeOK    = "ok"
	OutcomeError = "error"
)

// Metrics holds the Prometheus collectors for person store operations.
type Metrics struct {
	StoreOperations *prometheus.CounterVec
	StoreDuration   *prometheus.HistogramVec
	PersonsCreated  prometheus.Counter
}

// New creates the collectors and registers them with reg.
func New(reg prometheus.Registerer) *Metrics {
	factory := promauto.With(reg)
	return &Metrics{
		StoreOperations: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "persons_store_operations_total",
			Help: "Total number of person store operations by backend, operation and outcome",
		}, []string{"backend", "operation", "outcome"}),
		StoreDuration: factory.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "persons_store_operation_duration_seconds",
			Help:    "Latency of person store operations",
			Buckets: prometheus.DefBuckets,
		}, []string{"backend", "operation"}),
		PersonsCreated: factory.NewCounter(prometheus.CounterOpts{
			Name: "persons_created_total",
			Help: "Total number of persons created",
		}),
	}
}

// ObserveOperation records one finished store call.
func (m *Metrics) ObserveOperation(backend, operation string, started time.Time, err error) {
	outcome := OutcomeOK
	if err != nil {
		outcome = OutcomeError
	}
	m.StoreOperations.WithLabelValues(backend, operation, outcome).Inc()
	m.StoreDuration.WithLabelValues(backend, operation).Observe(time.Since(started).Seconds())
}

// IncrementPersonsCreated increments the persons created counter by 1
func (m *Metrics) IncrementPersonsCreated() {
	m.PersonsCreated.Inc()
}
