package metrics

import (
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics holds all application metrics.
// A nil *Metrics is valid and records nothing.
type Metrics struct {
	// HTTP metrics
	HTTPRequestsTotal    *prometheus.CounterVec
	HTTPRequestDuration  *prometheus.HistogramVec
	HTTPRequestsInFlight prometheus.Gauge

	// Collaboration metrics
	CollaborationRequestsTotal *prometheus.CounterVec
	CASConflictsTotal          *prometheus.CounterVec
	RollbacksTotal             prometheus.Counter

	// Badge metrics
	BadgeAwardsTotal      *prometheus.CounterVec
	BadgeCheckErrorsTotal *prometheus.CounterVec

	// Project metrics
	ProjectViewsTotal prometheus.Counter
}

// New creates a Metrics instance registered on reg.
// A nil reg uses the default Prometheus registerer.
func New(namespace string, reg prometheus.Registerer) *Metrics {
	if namespace == "" {
		namespace = "unishowcase"
	}
	if reg == nil {
		reg = prometheus.DefaultRegisterer
	}
	factory := promauto.With(reg)

	return &Metrics{
		HTTPRequestsTotal: factory.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Subsystem: "http",
				Name:      "requests_total",
				Help:      "Total number of HTTP requests",
			},
			[]string{"method", "path", "status"},
		),
		HTTPRequestDuration: factory.NewHistogramVec(
			prometheus.HistogramOpts{
				Namespace: namespace,
				Subsystem: "http",
				Name:      "request_duration_seconds",
				Help:      "HTTP request duration in seconds",
				Buckets:   []float64{.005, .01, .025, .05, .1, .25, .5, 1, 2.5, 5, 10},
			},
			[]string{"method", "path"},
		),
		HTTPRequestsInFlight: factory.NewGauge(
			prometheus.GaugeOpts{
				Namespace: namespace,
				Subsystem: "http",
				Name:      "requests_in_flight",
				Help:      "Current number of HTTP requests being processed",
			},
		),

		CollaborationRequestsTotal: factory.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Subsystem: "collaboration",
				Name:      "requests_total",
				Help:      "Collaboration request lifecycle outcomes",
			},
			[]string{"outcome"}, // created, accepted, rejected, cancelled
		),
		CASConflictsTotal: factory.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Subsystem: "collaboration",
				Name:      "cas_conflicts_total",
				Help:      "Conditional writes that lost a race",
			},
			[]string{"operation"}, // create, review, cancel
		),
		RollbacksTotal: factory.NewCounter(
			prometheus.CounterOpts{
				Namespace: namespace,
				Subsystem: "collaboration",
				Name:      "accept_rollbacks_total",
				Help:      "Accepted requests reverted to pending after a roster failure",
			},
		),

		BadgeAwardsTotal: factory.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Subsystem: "badge",
				Name:      "awards_total",
				Help:      "Badges awarded",
			},
			[]string{"badge_type"},
		),
		BadgeCheckErrorsTotal: factory.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Subsystem: "badge",
				Name:      "check_errors_total",
				Help:      "Badge checks that failed with a storage error",
			},
			[]string{"badge_type"},
		),

		ProjectViewsTotal: factory.NewCounter(
			prometheus.CounterOpts{
				Namespace: namespace,
				Subsystem: "project",
				Name:      "views_total",
				Help:      "Project views recorded",
			},
		),
	}
}

// RecordHTTPRequest records an HTTP request.
func (m *Metrics) RecordHTTPRequest(method, path string, status int, duration time.Duration) {
	if m == nil {
		return
	}
	m.HTTPRequestsTotal.WithLabelValues(method, path, strconv.Itoa(status)).Inc()
	m.HTTPRequestDuration.WithLabelValues(method, path).Observe(duration.Seconds())
}

// RecordCollaboration records a collaboration request outcome.
func (m *Metrics) RecordCollaboration(outcome string) {
	if m == nil {
		return
	}
	m.CollaborationRequestsTotal.WithLabelValues(outcome).Inc()
}

// RecordCASConflict records a lost conditional write.
func (m *Metrics) RecordCASConflict(operation string) {
	if m == nil {
		return
	}
	m.CASConflictsTotal.WithLabelValues(operation).Inc()
}

// RecordRollback records a compensating write on the accept path.
func (m *Metrics) RecordRollback() {
	if m == nil {
		return
	}
	m.RollbacksTotal.Inc()
}

// RecordBadgeAward records a newly awarded badge.
func (m *Metrics) RecordBadgeAward(badgeType string) {
	if m == nil {
		return
	}
	m.BadgeAwardsTotal.WithLabelValues(badgeType).Inc()
}

// RecordBadgeCheckError records a failed badge check.
func (m *Metrics) RecordBadgeCheckError(badgeType string) {
	if m == nil {
		return
	}
	m.BadgeCheckErrorsTotal.WithLabelValues(badgeType).Inc()
}

// RecordProjectView records a project view.
func (m *Metrics) RecordProjectView() {
	if m == nil {
		return
	}
	m.ProjectViewsTotal.Inc()
}
