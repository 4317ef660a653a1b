// Package metrics exposes Prometheus instrumentation for the CRM core.
package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

type Metrics struct {
	ClientsCreated       *prometheus.CounterVec
	ClientsMerged        *prometheus.CounterVec
	RegistrationsCreated prometheus.Counter
	StepFailures         *prometheus.CounterVec
	ResolveDuration      prometheus.Histogram
}

func New() *Metrics {
	return &Metrics{
		ClientsCreated: promauto.NewCounterVec(prometheus.CounterOpts{
			Name: "clienthub_clients_created_total",
			Help: "Total number of client records created",
		}, []string{"source"}),
		ClientsMerged: promauto.NewCounterVec(prometheus.CounterOpts{
			Name: "clienthub_clients_merged_total",
			Help: "Total number of submissions merged into an existing client",
		}, []string{"source"}),
		RegistrationsCreated: promauto.NewCounter(prometheus.CounterOpts{
			Name: "clienthub_registrations_created_total",
			Help: "Total number of event registrations recorded",
		}),
		StepFailures: promauto.NewCounterVec(prometheus.CounterOpts{
			Name: "clienthub_registration_step_failures_total",
			Help: "Total number of non-fatal step failures during event registration",
		}, []string{"step"}),
		ResolveDuration: promauto.NewHistogram(prometheus.HistogramOpts{
			Name:    "clienthub_identity_resolve_duration_seconds",
			Help:    "Duration of identity resolution lookups",
			Buckets: prometheus.DefBuckets,
		}),
	}
}

func (m *Metrics) IncrementClientsCreated(source string) {
	m.ClientsCreated.WithLabelValues(source).Inc()
}

func (m *Metrics) IncrementClientsMerged(source string) {
	m.ClientsMerged.WithLabelValues(source).Inc()
}

func (m *Metrics) IncrementRegistrationsCreated() {
	m.RegistrationsCreated.Inc()
}

func (m *Metrics) IncrementStepFailures(step string) {
	m.StepFailures.WithLabelValues(step).Inc()
}

func (m *Metrics) ObserveResolveDuration(d time.Duration) {
	m.ResolveDuration.Observe(d.Seconds())
}
