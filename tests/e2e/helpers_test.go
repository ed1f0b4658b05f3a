//go:build e2e

package e2e_test

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/stretchr/testify/require"

	"github.com/heartmarshall/formcraft-backend/internal/adapter/postgres/testhelper"
	"github.com/heartmarshall/formcraft-backend/internal/app"
	authpkg "github.com/heartmarshall/formcraft-backend/internal/auth"
	"github.com/heartmarshall/formcraft-backend/internal/config"
)

const (
	testJWTSecret = "test-secret-at-least-32-chars-long!!"
	testJWTIssuer = "formcraft-test"
)

// testLogWriter adapts testing.T to io.Writer for slog.
type testLogWriter struct{ t *testing.T }

func (w testLogWriter) Write(p []byte) (int, error) {
	w.t.Helper()
	w.t.Log(string(p))
	return len(p), nil
}

// ---------------------------------------------------------------------------
// Fake text generation backend (OpenAI-compatible chat completions).
// ---------------------------------------------------------------------------

type fakeModel struct {
	mu      sync.Mutex
	replies []string
	calls   int
}

// queue appends replies returned to subsequent completion calls in order.
func (m *fakeModel) queue(replies ...string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.replies = append(m.replies, replies...)
}

func (m *fakeModel) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	m.mu.Lock()
	m.calls++
	if len(m.replies) == 0 {
		m.mu.Unlock()
		http.Error(w, `{"error":{"message":"no reply queued"}}`, http.StatusServiceUnavailable)
		return
	}
	reply := m.replies[0]
	m.replies = m.replies[1:]
	m.mu.Unlock()

	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(map[string]any{
		"choices": []map[string]any{
			{"message": map[string]any{"role": "assistant", "content": reply}},
		},
	})
}

// ---------------------------------------------------------------------------
// Fake Google Forms API.
// ---------------------------------------------------------------------------

type fakeForms struct {
	mu        sync.Mutex
	nextID    int
	requests  []string
	titles    map[string]string
	failClose bool
}

func newFakeForms() *fakeForms {
	return &fakeForms{titles: map[string]string{}}
}

// failCloseCalls makes setPublishSettings answer with a server error.
func (f *fakeForms) failCloseCalls() {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.failClose = true
}

func (f *fakeForms) calls() []string {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]string(nil), f.requests...)
}

func (f *fakeForms) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	f.mu.Lock()
	defer f.mu.Unlock()

	path := strings.TrimPrefix(r.URL.Path, "/v1/forms")
	f.requests = append(f.requests, r.Method+" "+path)
	w.Header().Set("Content-Type", "application/json")

	switch {
	case r.Method == http.MethodPost && path == "":
		var body struct {
			Info struct {
				Title string `json:"title"`
			} `json:"info"`
		}
		_ = json.NewDecoder(r.Body).Decode(&body)
		f.nextID++
		id := fmt.Sprintf("gf-e2e-%d", f.nextID)
		f.titles[id] = body.Info.Title
		_ = json.NewEncoder(w).Encode(map[string]any{
			"formId":       id,
			"info":         map[string]any{"title": body.Info.Title},
			"responderUri": "https://docs.google.com/forms/d/e/" + id + "/viewform",
		})
	case r.Method == http.MethodPost && strings.HasSuffix(path, ":batchUpdate"):
		_, _ = io.WriteString(w, `{}`)
	case r.Method == http.MethodGet && f.titles[strings.TrimPrefix(path, "/")] != "":
		id := strings.TrimPrefix(path, "/")
		_ = json.NewEncoder(w).Encode(map[string]any{
			"formId":       id,
			"info":         map[string]any{"title": f.titles[id], "description": "Copied description"},
			"responderUri": "https://docs.google.com/forms/d/e/" + id + "/viewform",
		})
	case r.Method == http.MethodPost && strings.HasSuffix(path, ":setPublishSettings"):
		if f.failClose {
			w.WriteHeader(http.StatusInternalServerError)
			_, _ = io.WriteString(w, `{"error":{"code":500,"message":"backend error","status":"INTERNAL"}}`)
			return
		}
		_, _ = io.WriteString(w, `{}`)
	default:
		w.WriteHeader(http.StatusNotFound)
		_, _ = io.WriteString(w, `{"error":{"code":404,"message":"not found","status":"NOT_FOUND"}}`)
	}
}

// ---------------------------------------------------------------------------
// testServer wraps the full-stack HTTP server for E2E tests.
// ---------------------------------------------------------------------------

type testServer struct {
	URL    string
	Client *http.Client
	Pool   *pgxpool.Pool
	App    *app.Server
	Model  *fakeModel
	Forms  *fakeForms
	jwt    *authpkg.JWTManager
}

// setupTestServer bootstraps the application against a real PostgreSQL
// container (shared via testhelper) and fake model and Forms backends.
func setupTestServer(t *testing.T) *testServer {
	t.Helper()

	pool := testhelper.SetupTestDB(t)
	logger := slog.New(slog.NewTextHandler(testLogWriter{t}, nil))

	model := &fakeModel{}
	modelSrv := httptest.NewServer(model)
	t.Cleanup(modelSrv.Close)

	forms := newFakeForms()
	formsSrv := httptest.NewServer(forms)
	t.Cleanup(formsSrv.Close)

	cfg := &config.Config{
		Auth: config.AuthConfig{
			JWTSecret:  testJWTSecret,
			JWTIssuer:  testJWTIssuer,
			SessionTTL: time.Hour,
			ClientURL:  "http://localhost:5173",
			CookieName: "token",
		},
		LLM: config.LLMConfig{
			Provider:            "groq",
			APIKey:              "test-key",
			Model:               "test-model",
			BaseURL:             modelSrv.URL,
			RequestTimeout:      5 * time.Second,
			AnalyzeTemperature:  0.7,
			AnalyzeMaxTokens:    1024,
			GenerateTemperature: 0.3,
			GenerateMaxTokens:   2048,
		},
		Forms: config.FormsConfig{
			APIBaseURL:     formsSrv.URL + "/v1/forms",
			RequestTimeout: 5 * time.Second,
			DefaultTitle:   "AI Generated Form",
			ExpiryLocation: time.UTC,
		},
		Reconciler: config.ReconcilerConfig{
			Interval:     time.Hour,
			SweepTimeout: time.Minute,
			PendingTTL:   time.Hour,
		},
		CORS: config.CORSConfig{
			AllowedOrigins: "*",
			AllowedMethods: "GET,POST,DELETE,OPTIONS",
			AllowedHeaders: "Authorization,Content-Type",
		},
		RateLimit: config.RateLimitConfig{AIPerMinute: 600, AIBurst: 100},
	}

	application, err := app.New(context.Background(), cfg, pool, logger)
	require.NoError(t, err)
	t.Cleanup(application.Close)

	srv := httptest.NewServer(application.Handler)
	t.Cleanup(srv.Close)

	return &testServer{
		URL:    srv.URL,
		Client: srv.Client(),
		Pool:   pool,
		App:    application,
		Model:  model,
		Forms:  forms,
		jwt:    authpkg.NewJWTManager(testJWTSecret, testJWTIssuer, time.Hour),
	}
}

// createTestUser seeds a Google user with a live credential and returns a
// session token for it.
func createTestUser(t *testing.T, ts *testServer) (string, uuid.UUID) {
	t.Helper()

	user := testhelper.SeedUser(t, ts.Pool)
	tok, err := ts.jwt.GenerateToken(user.ID)
	require.NoError(t, err)
	return tok, user.ID
}

// doJSON sends a JSON request and decodes the response body into out when it
// is non-nil. It returns the status code.
func (ts *testServer) doJSON(t *testing.T, method, path string, body any, token string, out any) int {
	t.Helper()

	var reader io.Reader
	if body != nil {
		b, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(b)
	}

	req, err := http.NewRequest(method, ts.URL+path, reader)
	require.NoError(t, err)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := ts.Client.Do(req)
	require.NoError(t, err)
	defer resp.Body.Close()

	if out != nil {
		require.NoError(t, json.NewDecoder(resp.Body).Decode(out))
	}
	return resp.StatusCode
}

// formState reads the persisted active flag and state of a form record.
func formState(t *testing.T, pool *pgxpool.Pool, id uuid.UUID) (bool, string) {
	t.Helper()

	var active bool
	var state string
	err := pool.QueryRow(context.Background(),
		`SELECT is_active, state FROM forms WHERE id = $1`, id).Scan(&active, &state)
	require.NoError(t, err)
	return active, state
}
