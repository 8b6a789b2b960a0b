package metrics

import (
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
)

func newTestMetrics() *Metrics {
	return New("test", prometheus.NewRegistry())
}

func TestNew_DefaultNamespace(t *testing.T) {
	reg := prometheus.NewRegistry()
	m := New("", reg)
	m.RecordProjectView()

	families, err := reg.Gather()
	assert.NoError(t, err)

	names := make([]string, 0, len(families))
	for _, f := range families {
		names = append(names, f.GetName())
	}
	assert.Contains(t, names, "unishowcase_project_views_total")
	assert.Contains(t, names, "unishowcase_http_requests_in_flight")
}

func TestRecordHTTPRequest(t *testing.T) {
	m := newTestMetrics()

	m.RecordHTTPRequest("GET", "/api/v1/badges", 200, 25*time.Millisecond)
	m.RecordHTTPRequest("GET", "/api/v1/badges", 200, 30*time.Millisecond)
	m.RecordHTTPRequest("GET", "/api/v1/badges", 500, 10*time.Millisecond)

	assert.Equal(t, float64(2), testutil.ToFloat64(m.HTTPRequestsTotal.WithLabelValues("GET", "/api/v1/badges", "200")))
	assert.Equal(t, float64(1), testutil.ToFloat64(m.HTTPRequestsTotal.WithLabelValues("GET", "/api/v1/badges", "500")))
	assert.Equal(t, 1, testutil.CollectAndCount(m.HTTPRequestDuration))
}

func TestRecordCollaboration(t *testing.T) {
	m := newTestMetrics()

	m.RecordCollaboration("created")
	m.RecordCollaboration("accepted")
	m.RecordCASConflict("review")
	m.RecordCASConflict("review")
	m.RecordRollback()

	assert.Equal(t, float64(1), testutil.ToFloat64(m.CollaborationRequestsTotal.WithLabelValues("created")))
	assert.Equal(t, float64(2), testutil.ToFloat64(m.CASConflictsTotal.WithLabelValues("review")))
	assert.Equal(t, float64(1), testutil.ToFloat64(m.RollbacksTotal))
}

func TestRecordBadge(t *testing.T) {
	m := newTestMetrics()

	m.RecordBadgeAward("first-project")
	m.RecordBadgeCheckError("loved-creator")

	assert.Equal(t, float64(1), testutil.ToFloat64(m.BadgeAwardsTotal.WithLabelValues("first-project")))
	assert.Equal(t, float64(1), testutil.ToFloat64(m.BadgeCheckErrorsTotal.WithLabelValues("loved-creator")))
}

func TestNilMetrics(t *testing.T) {
	var m *Metrics
	assert.NotPanics(t, func() {
		m.RecordHTTPRequest("GET", "/", 200, time.Millisecond)
		m.RecordCollaboration("created")
		m.RecordCASConflict("create")
		m.RecordRollback()
		m.RecordBadgeAward("team-player")
		m.RecordBadgeCheckError("team-player")
		m.RecordProjectView()
	})
}
