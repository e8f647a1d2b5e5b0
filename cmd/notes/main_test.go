package main

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/johnquangdev/notes-summarizer/pkg/client"
	"github.com/johnquangdev/notes-summarizer/pkg/config"
)

type stubAPI struct {
	mu     sync.Mutex
	shares []client.ShareRequest
	srv    *httptest.Server
}

func newStubAPI(t *testing.T) *stubAPI {
	t.Helper()
	s := &stubAPI{}
	mux := http.NewServeMux()
	mux.HandleFunc("/api/health", func(w http.ResponseWriter, r *http.Request) {
		_ = json.NewEncoder(w).Encode(client.HealthResponse{Status: "OK", Message: "Notes Summarizer API is running", Environment: "test"})
	})
	mux.HandleFunc("/api/summarize", func(w http.ResponseWriter, r *http.Request) {
		var req client.SummarizeRequest
		_ = json.NewDecoder(r.Body).Decode(&req)
		_ = json.NewEncoder(w).Encode(client.SummarizeResponse{Summary: "SUMMARY of " + strings.TrimSpace(req.Text), OriginalText: req.Text})
	})
	mux.HandleFunc("/api/share", func(w http.ResponseWriter, r *http.Request) {
		var req client.ShareRequest
		_ = json.NewDecoder(r.Body).Decode(&req)
		s.mu.Lock()
		s.shares = append(s.shares, req)
		s.mu.Unlock()
		_ = json.NewEncoder(w).Encode(client.ShareResponse{Success: true, Message: "Summary shared successfully with 2 recipient(s)", Recipients: req.Recipients})
	})
	s.srv = httptest.NewServer(mux)
	t.Cleanup(s.srv.Close)
	return s
}

func runCLI(t *testing.T, stdin string, args ...string) (string, string, error) {
	t.Helper()
	var out, errOut bytes.Buffer
	root := newRootCmd()
	root.SetArgs(args)
	root.SetIn(strings.NewReader(stdin))
	root.SetOut(&out)
	root.SetErr(&errOut)
	err := root.Execute()
	return out.String(), errOut.String(), err
}

func TestHealthCommand(t *testing.T) {
	api := newStubAPI(t)
	out, _, err := runCLI(t, "", "health", "--api-url", api.srv.URL)
	require.NoError(t, err)
	assert.Contains(t, out, "OK: Notes Summarizer API is running")
}

func TestSummarizeFromStdinAndShare(t *testing.T) {
	api := newStubAPI(t)
	out, errOut, err := runCLI(t, "standup notes\n",
		"summarize", "--api-url", api.srv.URL,
		"--share", "a@x.com,not-an-email,b@y.org,a@x.com",
		"--subject", "Standup")
	require.NoError(t, err)

	assert.Equal(t, "SUMMARY of standup notes\n", out)
	assert.Contains(t, errOut, `skipping recipient "not-an-email"`)
	assert.Contains(t, errOut, `skipping recipient "a@x.com"`)
	assert.Contains(t, errOut, "Summary shared successfully with 2 recipient(s)")

	require.Len(t, api.shares, 1)
	assert.Equal(t, []string{"a@x.com", "b@y.org"}, api.shares[0].Recipients)
	assert.Equal(t, "Standup", api.shares[0].Subject)
	assert.Equal(t, "SUMMARY of standup notes", api.shares[0].Summary)
}

func TestSummarizeFromFile(t *testing.T) {
	api := newStubAPI(t)
	path := filepath.Join(t.TempDir(), "notes.txt")
	require.NoError(t, os.WriteFile(path, []byte("from file"), 0o600))

	out, _, err := runCLI(t, "", "summarize", "--api-url", api.srv.URL, "--file", path)
	require.NoError(t, err)
	assert.Equal(t, "SUMMARY of from file\n", out)
	assert.Empty(t, api.shares)
}

func TestSummarizeBlankInput(t *testing.T) {
	api := newStubAPI(t)
	_, _, err := runCLI(t, "   \n", "summarize", "--api-url", api.srv.URL)
	require.Error(t, err)
	assert.Equal(t, "Please enter some text to summarize.", err.Error())
}

func TestSmoke(t *testing.T) {
	api := newStubAPI(t)
	var out bytes.Buffer
	err := smoke(context.Background(), &out, client.New(api.srv.URL), []string{"a@x.com"})
	require.NoError(t, err)
	assert.Contains(t, out.String(), "All checks passed")
	require.Len(t, api.shares, 1)
	assert.Equal(t, "Smoke test summary", api.shares[0].Subject)
}

func TestSmokeReportsFailures(t *testing.T) {
	var out bytes.Buffer
	// nothing listens on port 1
	err := smoke(context.Background(), &out, client.New("http://127.0.0.1:1"), []string{"a@x.com"})
	require.Error(t, err)
	assert.Equal(t, "3 check(s) failed", err.Error())
}

type fakeVerifier struct{ err error }

func (f fakeVerifier) Verify(context.Context) error { return f.err }

func TestCheckMail(t *testing.T) {
	orig := newMailVerifier
	t.Cleanup(func() { newMailVerifier = orig })

	cfg := &config.Config{Mail: config.MailConfig{User: "me@gmail.com", Password: "app-pass", Host: "smtp.gmail.com", Port: 587}}

	t.Run("missing credentials", func(t *testing.T) {
		var out bytes.Buffer
		err := checkMail(context.Background(), &out, &config.Config{})
		require.Error(t, err)
		assert.Contains(t, out.String(), "EMAIL_USER:   missing")
	})

	t.Run("verified", func(t *testing.T) {
		newMailVerifier = func(*config.MailConfig) mailVerifier { return fakeVerifier{} }
		var out bytes.Buffer
		require.NoError(t, checkMail(context.Background(), &out, cfg))
		assert.Contains(t, out.String(), "EMAIL_PASS:   set")
		assert.Contains(t, out.String(), "GROQ_API_KEY: missing")
		assert.Contains(t, out.String(), "Email connection successful")
	})

	t.Run("auth failure", func(t *testing.T) {
		newMailVerifier = func(*config.MailConfig) mailVerifier { return fakeVerifier{err: errors.New("535 bad credentials")} }
		var out bytes.Buffer
		err := checkMail(context.Background(), &out, cfg)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "535 bad credentials")
		assert.Contains(t, out.String(), "App Password")
	})
}
