package observability

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/riskibarqy/poethra-leaderboard/internal/platform/resilience"
	"github.com/riskibarqy/poethra-leaderboard/internal/usecase"
)

var _ usecase.Recorder = (*Metrics)(nil)

func TestMetrics_Record(t *testing.T) {
	t.Parallel()

	m := NewMetrics()
	m.SubmissionProcessed(usecase.OutcomeSuccess)
	m.SubmissionProcessed(usecase.OutcomeSuccess)
	m.SubmissionProcessed(usecase.OutcomeRejected)
	m.ParticipantsTotal(12)
	m.ObserveCache("participants", true)
	m.ObserveCache("participants", false)
	m.ObserveCircuit("postgres", resilience.CircuitStateClosed, resilience.CircuitStateOpen)

	assert.Equal(t, 2.0, testutil.ToFloat64(m.submissions.WithLabelValues(usecase.OutcomeSuccess)))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.submissions.WithLabelValues(usecase.OutcomeRejected)))
	assert.Equal(t, 12.0, testutil.ToFloat64(m.participantsTotal))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.cacheLookups.WithLabelValues("participants", "hit")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.circuitState.WithLabelValues("postgres")))

	m.ObserveCircuit("postgres", resilience.CircuitStateHalfOpen, resilience.CircuitStateClosed)
	assert.Equal(t, 0.0, testutil.ToFloat64(m.circuitState.WithLabelValues("postgres")))
}

func TestMetrics_Handler(t *testing.T) {
	t.Parallel()

	m := NewMetrics()
	m.SubmissionProcessed(usecase.OutcomeFailed)

	rec := httptest.NewRecorder()
	m.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `poethra_leaderboard_weekly_submissions_total{outcome="failed"} 1`)
}
