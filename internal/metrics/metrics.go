package metrics

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/dimitrije/carshare/internal/mockapi"
)

const (
	OutcomeOK           = "ok"
	OutcomeValidation   = "validation"
	OutcomeNotFound     = "not_found"
	OutcomeForbidden    = "forbidden"
	OutcomeConflict     = "conflict"
	OutcomeUnauthorized = "unauthorized"
	OutcomeCanceled     = "canceled"
	OutcomeError        = "error"
)

type Metrics struct {
	operations *prometheus.CounterVec
	duration   *prometheus.HistogramVec
}

// New registers the operation collectors on reg.
func New(reg prometheus.Registerer) *Metrics {
	m := &Metrics{
		operations: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "carshare_operations_total",
			Help: "Car-share operations by outcome.",
		}, []string{"operation", "outcome"}),
		duration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "carshare_operation_duration_seconds",
			Help:    "Time spent answering car-share operations.",
			Buckets: prometheus.DefBuckets,
		}, []string{"operation"}),
	}
	reg.MustRegister(m.operations, m.duration)
	return m
}

// ObserveOperation records one finished operation. The mode argument is accepted
// so Metrics can observe the transport client directly; it is not a label.
func (m *Metrics) ObserveOperation(operation, _ string, err error, elapsed time.Duration) {
	m.operations.WithLabelValues(operation, Outcome(err)).Inc()
	m.duration.WithLabelValues(operation).Observe(elapsed.Seconds())
}

func Outcome(err error) string {
	switch {
	case err == nil:
		return OutcomeOK
	case errors.Is(err, mockapi.ErrValidation):
		return OutcomeValidation
	case errors.Is(err, mockapi.ErrNotFound):
		return OutcomeNotFound
	case errors.Is(err, mockapi.ErrForbidden):
		return OutcomeForbidden
	case errors.Is(err, mockapi.ErrConflict):
		return OutcomeConflict
	case errors.Is(err, mockapi.ErrUnauthenticated):
		return OutcomeUnauthorized
	case errors.Is(err, context.Canceled), errors.Is(err, context.DeadlineExceeded):
		return OutcomeCanceled
	default:
		return OutcomeError
	}
}

// Handler serves the registry in the Prometheus exposition format.
func Handler(gatherer prometheus.Gatherer) http.Handler {
	return promhttp.HandlerFor(gatherer, promhttp.HandlerOpts{})
}
