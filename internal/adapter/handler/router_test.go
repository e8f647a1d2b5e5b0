package handler

import (
	"context"
	"encoding/json"
	stdErrors "errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/johnquangdev/notes-summarizer/internal/infrastructure/metrics"
	"github.com/johnquangdev/notes-summarizer/internal/infrastructure/ratelimit"
	"github.com/johnquangdev/notes-summarizer/internal/usecase/summary"
	"github.com/johnquangdev/notes-summarizer/pkg/ai"
	"github.com/johnquangdev/notes-summarizer/pkg/config"
	"github.com/johnquangdev/notes-summarizer/pkg/mailer"
)

type recordingSender struct {
	mu   sync.Mutex
	to   []string
	fail error
}

func (r *recordingSender) Send(_ context.Context, msg mailer.Message) error {
	if r.fail != nil {
		return r.fail
	}
	r.mu.Lock()
	r.to = append(r.to, msg.To)
	r.mu.Unlock()
	return nil
}

type testServer struct {
	e      *echo.Echo
	sender *recordingSender
	cfg    *config.Config
}

// stubGroq answers chat completions with a fixed content
func stubGroq(t *testing.T, content string) *httptest.Server {
	t.Helper()
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(map[string]interface{}{
			"id": "chatcmpl-test",
			"choices": []map[string]interface{}{
				{"index": 0, "message": map[string]string{"role": "assistant", "content": content}},
			},
		})
	}))
	t.Cleanup(ts.Close)
	return ts
}

func newTestServer(t *testing.T, groqURL string, max int64) *testServer {
	t.Helper()

	cfg := &config.Config{
		Server: config.ServerConfig{
			Environment:    "test",
			AllowedOrigins: []string{"http://localhost:3000"},
			FrontendURL:    "https://notes.example.com",
			BodyLimit:      "10M",
		},
		Groq:      config.GroqConfig{APIKey: "gsk_test", BaseURL: groqURL},
		Mail:      config.MailConfig{User: "bot@example.com", Password: "secret"},
		RateLimit: config.RateLimitConfig{Window: 15 * time.Minute, Max: max},
	}

	store := ratelimit.NewMemoryStore()
	t.Cleanup(store.Close)

	sender := &recordingSender{}
	m := metrics.New()
	svc := summary.NewService(ai.NewGroqClient(&cfg.Groq), sender, cfg, m, nil)
	rt := NewRouter(cfg, NewSummaryHandler(svc, nil), ratelimit.NewFixedWindow(store, cfg.RateLimit.Window, cfg.RateLimit.Max), m, nil)
	rt.now = func() time.Time { return time.Date(2026, 10, 18, 12, 30, 0, 0, time.UTC) }

	e := echo.New()
	rt.Setup(e)
	return &testServer{e: e, sender: sender, cfg: cfg}
}

func (ts *testServer) do(method, path, body string, headers ...string) *httptest.ResponseRecorder {
	var req *http.Request
	if body == "" {
		req = httptest.NewRequest(method, path, http.NoBody)
	} else {
		req = httptest.NewRequest(method, path, strings.NewReader(body))
		req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	}
	for i := 0; i+1 < len(headers); i += 2 {
		req.Header.Set(headers[i], headers[i+1])
	}
	rec := httptest.NewRecorder()
	ts.e.ServeHTTP(rec, req)
	return rec
}

func decode(t *testing.T, rec *httptest.ResponseRecorder) map[string]interface{} {
	t.Helper()
	var out map[string]interface{}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &out), rec.Body.String())
	return out
}

func TestHealth(t *testing.T) {
	ts := newTestServer(t, "", 100)

	rec := ts.do(http.MethodGet, "/api/health", "")
	require.Equal(t, http.StatusOK, rec.Code)

	body := decode(t, rec)
	assert.Equal(t, "OK", body["status"])
	assert.Equal(t, "Notes Summarizer API is running", body["message"])
	assert.Equal(t, "2026-10-18T12:30:00.000Z", body["timestamp"])
	assert.Equal(t, "test", body["environment"])
	assert.NotEmpty(t, rec.Header().Get(echo.HeaderXRequestID))
}

func TestSummarize_EndToEnd(t *testing.T) {
	groq := stubGroq(t, "Team discussed Q1 budget.")
	ts := newTestServer(t, groq.URL, 100)

	rec := ts.do(http.MethodPost, "/api/summarize", `{"text":"Meeting about Q1 budget.","customPrompt":"one sentence"}`)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	assert.Equal(t, map[string]interface{}{
		"summary":      "Team discussed Q1 budget.",
		"originalText": "Meeting about Q1 budget.",
		"customPrompt": "one sentence",
	}, decode(t, rec))
}

func TestSummarize_BlankText(t *testing.T) {
	ts := newTestServer(t, "", 100)

	for _, body := range []string{
		`{}`,
		`{"text":""}`,
		`{"text":"   \n\t"}`,
		`{"text":"  ","customPrompt":"bullet points"}`,
	} {
		rec := ts.do(http.MethodPost, "/api/summarize", body)
		assert.Equal(t, http.StatusBadRequest, rec.Code, body)
		assert.Equal(t, map[string]interface{}{"error": "Text content is required"}, decode(t, rec))
	}
}

func TestSummarize_MissingKey(t *testing.T) {
	ts := newTestServer(t, "", 100)
	ts.cfg.Groq.APIKey = ""

	rec := ts.do(http.MethodPost, "/api/summarize", `{"text":"notes"}`)
	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	assert.Equal(t, map[string]interface{}{"error": "Groq API key not configured"}, decode(t, rec))
}

func TestSummarize_UpstreamFailureEchoesDetails(t *testing.T) {
	groq := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusServiceUnavailable)
		_, _ = w.Write([]byte(`{"error":{"message":"model overloaded","type":"server_error"}}`))
	}))
	t.Cleanup(groq.Close)
	ts := newTestServer(t, groq.URL, 100)

	rec := ts.do(http.MethodPost, "/api/summarize", `{"text":"notes"}`)
	require.Equal(t, http.StatusInternalServerError, rec.Code)

	body := decode(t, rec)
	assert.Equal(t, "Failed to generate summary", body["error"])
	assert.Contains(t, body["details"], "model overloaded")
	details, _ := body["details"].(string)
	assert.False(t, strings.HasPrefix(details, "groq"), "details carry the upstream error unchanged: %q", details)

	// the process keeps serving
	assert.Equal(t, http.StatusOK, ts.do(http.MethodGet, "/api/health", "").Code)
}

func TestShare_ReportsRecipientCount(t *testing.T) {
	ts := newTestServer(t, "", 100)

	rec := ts.do(http.MethodPost, "/api/share", `{"summary":"Decisions...","recipients":["a@x.com","b@x.com"],"subject":"Sync"}`)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	body := decode(t, rec)
	assert.Equal(t, true, body["success"])
	assert.Contains(t, body["message"], "2 recipient(s)")
	assert.Equal(t, []interface{}{"a@x.com", "b@x.com"}, body["recipients"])
	assert.ElementsMatch(t, []string{"a@x.com", "b@x.com"}, ts.sender.to)
}

func TestShare_RequiresSummaryAndRecipients(t *testing.T) {
	ts := newTestServer(t, "", 100)

	for _, body := range []string{
		`{"summary":"s","recipients":[]}`,
		`{"summary":"s"}`,
		`{"recipients":["a@x.com"]}`,
	} {
		rec := ts.do(http.MethodPost, "/api/share", body)
		assert.Equal(t, http.StatusBadRequest, rec.Code, body)
		assert.Equal(t, map[string]interface{}{"error": "Summary and recipients are required"}, decode(t, rec))
	}
	assert.Empty(t, ts.sender.to)
}

func TestShare_DeliveryFailure(t *testing.T) {
	ts := newTestServer(t, "", 100)
	ts.sender.fail = stdErrors.New("535 authentication failed")

	rec := ts.do(http.MethodPost, "/api/share", `{"summary":"s","recipients":["a@x.com"]}`)
	require.Equal(t, http.StatusInternalServerError, rec.Code)
	assert.Equal(t, map[string]interface{}{
		"error":   "Failed to share summary via email",
		"details": "535 authentication failed",
	}, decode(t, rec))
}

func TestUnmatchedRoutes(t *testing.T) {
	ts := newTestServer(t, "", 100)

	for _, tc := range []struct{ method, path string }{
		{http.MethodGet, "/api/unknown"},
		{http.MethodGet, "/"},
		{http.MethodGet, "/api/summarize"},
		{http.MethodDelete, "/api/share"},
	} {
		rec := ts.do(tc.method, tc.path, "")
		assert.Equal(t, http.StatusNotFound, rec.Code, tc.path)
		assert.Equal(t, map[string]interface{}{"error": "Endpoint not found"}, decode(t, rec))
	}
}

func TestMalformedJSON(t *testing.T) {
	ts := newTestServer(t, "", 100)

	rec := ts.do(http.MethodPost, "/api/summarize", `{"text":`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, "Invalid request body", decode(t, rec)["error"])
}

func TestRateLimit(t *testing.T) {
	ts := newTestServer(t, "", 100)

	for i := 1; i <= 100; i++ {
		rec := ts.do(http.MethodGet, "/api/health", "")
		require.Equal(t, http.StatusOK, rec.Code, "request %d", i)
	}

	rec := ts.do(http.MethodPost, "/api/summarize", `{"text":"notes"}`)
	assert.Equal(t, http.StatusTooManyRequests, rec.Code)
	assert.Equal(t, map[string]interface{}{
		"error": "Too many requests from this IP, please try again later.",
	}, decode(t, rec))
}

func TestCORS(t *testing.T) {
	ts := newTestServer(t, "", 100)

	rec := ts.do(http.MethodGet, "/api/health", "", echo.HeaderOrigin, "http://localhost:3000")
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "http://localhost:3000", rec.Header().Get(echo.HeaderAccessControlAllowOrigin))

	rec = ts.do(http.MethodGet, "/api/health", "", echo.HeaderOrigin, "https://notes.example.com")
	assert.Equal(t, http.StatusOK, rec.Code)

	rec = ts.do(http.MethodGet, "/api/health", "", echo.HeaderOrigin, "https://evil.example.com")
	assert.Equal(t, http.StatusForbidden, rec.Code)
	assert.Equal(t, map[string]interface{}{"error": "Not allowed by CORS"}, decode(t, rec))
}

func TestRecoverFromPanic(t *testing.T) {
	ts := newTestServer(t, "", 100)
	ts.e.GET("/api/panic", func(echo.Context) error { panic("boom") })

	rec := ts.do(http.MethodGet, "/api/panic", "")
	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	assert.Equal(t, map[string]interface{}{"error": "Internal server error"}, decode(t, rec))

	assert.Equal(t, http.StatusOK, ts.do(http.MethodGet, "/api/health", "").Code)
}

func TestBodyLimit(t *testing.T) {
	ts := newTestServer(t, "", 100)
	big := `{"text":"` + strings.Repeat("a", 11<<20) + `"}`
	rec := ts.do(http.MethodPost, "/api/summarize", big)
	assert.Equal(t, http.StatusRequestEntityTooLarge, rec.Code)
}

func TestMetricsEndpoint(t *testing.T) {
	ts := newTestServer(t, "", 100)
	ts.cfg.Groq.APIKey = ""
	ts.do(http.MethodPost, "/api/summarize", `{"text":"notes"}`)

	rec := ts.do(http.MethodGet, "/metrics", "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `notes_summarize_requests_total{outcome="config_error"} 1`)
}
