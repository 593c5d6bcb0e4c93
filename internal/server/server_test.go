package server

import (
	"context"
	"encoding/json"
	"errors"
	"net"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/jonathan/career-matcher/internal/db"
	"github.com/jonathan/career-matcher/internal/matching"
	"github.com/jonathan/career-matcher/internal/server/ratelimit"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// mockStore is an in-memory Store.
type mockStore struct {
	mu       sync.Mutex
	analyses []db.Analysis
	saveErr  error
	listErr  error
	findErr  error
	pingErr  error
}

func (m *mockStore) SaveAnalysis(_ context.Context, in *db.AnalysisCreateInput) (*db.Analysis, error) {
	if m.saveErr != nil {
		return nil, m.saveErr
	}
	a := db.Analysis{
		ID:              uuid.New(),
		Label:           in.Label,
		JobDescription:  in.JobDescription,
		Fingerprint:     in.Fingerprint,
		Score:           in.Score,
		ContentScore:    in.ContentScore,
		StructureScore:  in.StructureScore,
		ImpactScore:     in.ImpactScore,
		Band:            in.Band,
		Baseline:        in.Baseline,
		FoundKeywords:   in.FoundKeywords,
		MissingKeywords: in.MissingKeywords,
		CreatedAt:       time.Now(),
	}
	m.mu.Lock()
	m.analyses = append(m.analyses, a)
	m.mu.Unlock()
	return &a, nil
}

func (m *mockStore) GetAnalysis(_ context.Context, id uuid.UUID) (*db.Analysis, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for i := range m.analyses {
		if m.analyses[i].ID == id {
			a := m.analyses[i]
			return &a, nil
		}
	}
	return nil, nil
}

func (m *mockStore) ListAnalyses(_ context.Context, limit, offset int) ([]db.Analysis, error) {
	if m.listErr != nil {
		return nil, m.listErr
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	if offset >= len(m.analyses) {
		return nil, nil
	}
	end := min(len(m.analyses), offset+limit)
	return append([]db.Analysis(nil), m.analyses[offset:end]...), nil
}

func (m *mockStore) FindByFingerprint(_ context.Context, fingerprint string) (*db.Analysis, error) {
	if m.findErr != nil {
		return nil, m.findErr
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	for i := len(m.analyses) - 1; i >= 0; i-- {
		if m.analyses[i].Fingerprint == fingerprint {
			a := m.analyses[i]
			return &a, nil
		}
	}
	return nil, nil
}

func (m *mockStore) DeleteAnalysis(_ context.Context, id uuid.UUID) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for i := range m.analyses {
		if m.analyses[i].ID == id {
			m.analyses = append(m.analyses[:i], m.analyses[i+1:]...)
			return true, nil
		}
	}
	return false, nil
}

func (m *mockStore) Ping(context.Context) error {
	return m.pingErr
}

func (m *mockStore) saved() []db.Analysis {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]db.Analysis(nil), m.analyses...)
}

func newTestServer(t *testing.T, opts ...func(*Config)) *Server {
	t.Helper()
	cfg := Config{
		RateLimit: &ratelimit.Config{Enabled: false},
		CacheSize: 16,
	}
	for _, opt := range opts {
		opt(&cfg)
	}
	s := New(cfg)
	t.Cleanup(s.rateLimiter.Stop)
	return s
}

func do(t *testing.T, s *Server, method, path, body string) *httptest.ResponseRecorder {
	t.Helper()
	var req *http.Request
	if body == "" {
		req = httptest.NewRequest(method, path, nil)
	} else {
		req = httptest.NewRequest(method, path, strings.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
	}
	w := httptest.NewRecorder()
	s.Handler().ServeHTTP(w, req)
	return w
}

func decodeBody[T any](t *testing.T, w *httptest.ResponseRecorder) T {
	t.Helper()
	var v T
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &v), "body: %s", w.Body.String())
	return v
}

func TestHealthEndpoint(t *testing.T) {
	s := newTestServer(t)

	w := do(t, s, http.MethodGet, "/health", "")

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "application/json", w.Header().Get("Content-Type"))
	assert.Equal(t, map[string]string{"status": "ok"}, decodeBody[map[string]string](t, w))
}

func TestHealthEndpoint_WithStore(t *testing.T) {
	store := &mockStore{}
	s := newTestServer(t, func(c *Config) { c.Store = store })

	w := do(t, s, http.MethodGet, "/health", "")
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, map[string]string{"status": "ok", "database": "ok"}, decodeBody[map[string]string](t, w))

	store.pingErr = errors.New("connection refused")
	w = do(t, s, http.MethodGet, "/health", "")
	assert.Equal(t, http.StatusServiceUnavailable, w.Code)
	assert.Equal(t, map[string]string{"status": "degraded", "database": "unreachable"}, decodeBody[map[string]string](t, w))
}

func TestCatalogEndpoint(t *testing.T) {
	catalog, err := matching.NewCatalog([]string{"Go", "Rust"})
	require.NoError(t, err)
	s := newTestServer(t, func(c *Config) {
		c.Matcher = matching.NewAsyncMatcher(matching.NewMatcher(catalog))
	})

	w := do(t, s, http.MethodGet, "/catalog", "")

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, []string{"Go", "Rust"}, decodeBody[CatalogResponse](t, w).Keywords)
}

func TestCORS_Preflight(t *testing.T) {
	s := newTestServer(t)

	w := do(t, s, http.MethodOptions, "/analyze", "")

	assert.Equal(t, http.StatusNoContent, w.Code)
	assert.Equal(t, "*", w.Header().Get("Access-Control-Allow-Origin"))
	assert.Contains(t, w.Header().Get("Access-Control-Allow-Methods"), "POST")
	assert.Contains(t, w.Header().Get("Access-Control-Allow-Methods"), "DELETE")
}

func TestUnknownRoute(t *testing.T) {
	s := newTestServer(t)

	assert.Equal(t, http.StatusNotFound, do(t, s, http.MethodGet, "/nope", "").Code)
	assert.Equal(t, http.StatusMethodNotAllowed, do(t, s, http.MethodGet, "/analyze", "").Code)
}

func TestRateLimit(t *testing.T) {
	s := newTestServer(t, func(c *Config) {
		c.RateLimit = &ratelimit.Config{
			Enabled:       true,
			DefaultLimit:  100,
			DefaultWindow: time.Minute,
			EndpointConfigs: []ratelimit.EndpointConfig{
				{Path: "/analyze", Method: http.MethodPost, Limit: 1, Window: time.Minute},
			},
		}
	})
	body := `{"resumeText": "go", "jobDescriptionText": "React"}`

	first := do(t, s, http.MethodPost, "/analyze", body)
	require.Equal(t, http.StatusOK, first.Code)
	assert.Equal(t, "1", first.Header().Get("X-RateLimit-Limit"))
	assert.Equal(t, "0", first.Header().Get("X-RateLimit-Remaining"))

	second := do(t, s, http.MethodPost, "/analyze", body)
	assert.Equal(t, http.StatusTooManyRequests, second.Code)
	assert.Equal(t, "60", second.Header().Get("Retry-After"))
	resp := decodeBody[map[string]any](t, second)
	assert.Equal(t, "rate_limit_exceeded", resp["error"])

	for i := 0; i < 5; i++ {
		assert.Equal(t, http.StatusOK, do(t, s, http.MethodGet, "/health", "").Code)
	}
}

func TestServe_GracefulShutdown(t *testing.T) {
	s := newTestServer(t)
	ln, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- s.Serve(ctx, ln) }()

	resp, err := http.Get("http://" + ln.Addr().String() + "/health")
	require.NoError(t, err)
	resp.Body.Close()
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	cancel()
	select {
	case err := <-done:
		assert.NoError(t, err)
	case <-time.After(5 * time.Second):
		t.Fatal("server did not shut down")
	}
}

func TestRun_ListenError(t *testing.T) {
	ln, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)
	defer ln.Close()

	s := newTestServer(t)
	s.httpServer.Addr = ln.Addr().String()

	err = s.Run(context.Background())
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "failed to listen")
}

func TestWriteError_HidesInternalDetail(t *testing.T) {
	s := newTestServer(t)
	w := httptest.NewRecorder()
	r := httptest.NewRequest(http.MethodGet, "/analyses", nil)

	s.writeError(w, r, errors.New("pq: password authentication failed"))

	assert.Equal(t, http.StatusInternalServerError, w.Code)
	assert.Equal(t, "internal server error", decodeBody[map[string]string](t, w)["error"])
}

func TestExtractClientID(t *testing.T) {
	s := newTestServer(t)

	r := httptest.NewRequest(http.MethodGet, "/", nil)
	r.RemoteAddr = "203.0.113.9:51234"
	assert.Equal(t, "203.0.113.9", s.extractClientID(r))

	r.RemoteAddr = "not-an-address"
	assert.Equal(t, "not-an-address", s.extractClientID(r))
}

func newJSONRequest(t *testing.T, ctx context.Context, path, body string) *http.Request {
	t.Helper()
	req := httptest.NewRequest(http.MethodPost, path, strings.NewReader(body)).WithContext(ctx)
	req.Header.Set("Content-Type", "application/json")
	return req
}
