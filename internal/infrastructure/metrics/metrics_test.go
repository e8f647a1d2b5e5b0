package metrics

import (
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMetrics_Counters(t *testing.T) {
	m := New()

	m.ObserveSummarize(OutcomeSuccess)
	m.ObserveSummarize(OutcomeSuccess)
	m.ObserveSummarize(OutcomeInvalid)
	m.ObserveShare(OutcomeSuccess, 3)
	m.ObserveThrottled()

	assert.Equal(t, 2.0, testutil.ToFloat64(m.summarizeTotal.WithLabelValues(OutcomeSuccess)))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.summarizeTotal.WithLabelValues(OutcomeInvalid)))
	assert.Equal(t, 3.0, testutil.ToFloat64(m.emailsSent))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.throttledTotal))
}

func TestMetrics_NilIsNoop(t *testing.T) {
	var m *Metrics
	assert.NotPanics(t, func() {
		m.ObserveSummarize(OutcomeSuccess)
		m.ObserveShare(OutcomeFailed, 0)
		m.ObserveThrottled()
		m.ObserveUpstream("groq", 0.2)
	})
}

func TestMetrics_Handler(t *testing.T) {
	m := New()
	m.ObserveUpstream("groq", 0.25)

	rec := httptest.NewRecorder()
	m.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", http.NoBody))
	require.Equal(t, http.StatusOK, rec.Code)

	body, err := io.ReadAll(rec.Body)
	require.NoError(t, err)
	assert.Contains(t, string(body), "notes_upstream_duration_seconds")
}
