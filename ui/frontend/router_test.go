package frontend

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"

	"github.com/google/uuid"

	"github.com/tribridrag/tribridrag"
	"github.com/tribridrag/tribridrag/store"
	"github.com/tribridrag/tribridrag/store/memstore"
	"github.com/tribridrag/tribridrag/ui/service"
)

// fakeBackend answers every query with a canned response.
type fakeBackend struct {
	queryErr error
}

func (f *fakeBackend) Query(ctx context.Context, req tribridrag.QueryRequest) (*tribridrag.Answer, error) {
	if f.queryErr != nil {
		return nil, f.queryErr
	}
	return &tribridrag.Answer{
		Text:      "The fusion stage merges ranked lists.",
		SessionID: req.SessionID,
		Passages: []tribridrag.Passage{
			{Source: "docs/fusion.md", Snippet: "Reciprocal rank fusion.", Score: 0.91, Retriever: tribridrag.RetrieverVector},
		},
		Usage: tribridrag.Usage{InputTokens: 10, OutputTokens: 20},
	}, nil
}

func (f *fakeBackend) Neighborhood(ctx context.Context, req tribridrag.NeighborhoodRequest) (*tribridrag.Neighborhood, error) {
	return &tribridrag.Neighborhood{
		Seed:  req.Seed,
		Nodes: []tribridrag.Node{{ID: "n1", Label: req.Seed, Kind: "concept"}},
	}, nil
}

func (f *fakeBackend) Health(ctx context.Context) (*tribridrag.Health, error) {
	return &tribridrag.Health{
		Status:  "ok",
		Version: "1.4.0",
		Retrievers: []tribridrag.RetrieverStatus{
			{Name: tribridrag.RetrieverVector, Ready: true},
			{Name: tribridrag.RetrieverKeyword, Ready: true},
			{Name: tribridrag.RetrieverGraph, Ready: true},
		},
	}, nil
}

// faultyStore fails ListSessions while tripped; everything else passes
// through to the wrapped store.
type faultyStore struct {
	store.Store
	tripped bool
}

func (f *faultyStore) ListSessions(ctx context.Context, params store.SessionListParams) ([]*store.ChatSession, int, error) {
	if f.tripped {
		return nil, 0, errors.New("connection refused")
	}
	return f.Store.ListSessions(ctx, params)
}

func newTestRouter(t *testing.T, st store.Store, cfg *Config) *Router {
	t.Helper()
	if st == nil {
		mem := memstore.New()
		mem.Seed()
		st = mem
	}
	svc := service.New(st, &fakeBackend{}, nil)
	return NewRouter(svc, cfg)
}

func get(t *testing.T, rt *Router, path string) *httptest.ResponseRecorder {
	t.Helper()
	rec := httptest.NewRecorder()
	rt.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, path, nil))
	return rec
}

func postForm(t *testing.T, rt *Router, path string, form url.Values) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(http.MethodPost, path, strings.NewReader(form.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	rec := httptest.NewRecorder()
	rt.ServeHTTP(rec, req)
	return rec
}

func TestRouterRootRedirect(t *testing.T) {
	rt := newTestRouter(t, nil, &Config{})

	rec := get(t, rt, "/")
	if rec.Code != http.StatusTemporaryRedirect {
		t.Fatalf("status = %d, want %d", rec.Code, http.StatusTemporaryRedirect)
	}
	if loc := rec.Header().Get("Location"); loc != "/dashboard" {
		t.Errorf("Location = %q, want /dashboard", loc)
	}
}

func TestRouterServesEveryTab(t *testing.T) {
	rt := newTestRouter(t, nil, &Config{})

	tests := []struct {
		path string
		want string
	}{
		{"/dashboard", "Backend"},
		{"/chat", "New session"},
		{"/graph", "Seed entity"},
		{"/evals", "Runs"},
		{"/blog", "Introducing Tri-Brid Retrieval"},
		{"/knobs", "retrieval"},
	}
	for _, tc := range tests {
		t.Run(tc.path, func(t *testing.T) {
			rec := get(t, rt, tc.path)
			if rec.Code != http.StatusOK {
				t.Fatalf("status = %d, want 200", rec.Code)
			}
			if !strings.Contains(rec.Body.String(), tc.want) {
				t.Errorf("body does not contain %q", tc.want)
			}
		})
	}
}

func TestRouterEmbed(t *testing.T) {
	rt := newTestRouter(t, nil, &Config{GrafanaURL: "https://grafana.example.com"})

	rec := get(t, rt, "/d/abc123/query-latency")
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}
	if !strings.Contains(rec.Body.String(), "https://grafana.example.com/d/abc123/query-latency") {
		t.Errorf("body does not contain the Grafana iframe source:\n%s", rec.Body.String())
	}
}

func TestRouterNotFound(t *testing.T) {
	rt := newTestRouter(t, nil, &Config{})

	rec := get(t, rt, "/nope")
	if rec.Code != http.StatusNotFound {
		t.Fatalf("status = %d, want 404", rec.Code)
	}
	body := rec.Body.String()
	if !strings.Contains(body, "/nope") {
		t.Errorf("404 body does not name the path")
	}
	if !strings.Contains(body, "Dashboard") {
		t.Errorf("404 body lost the navigation shell")
	}
}

func TestRouterFaultIsolationAndRetry(t *testing.T) {
	mem := memstore.New()
	mem.Seed()
	faulty := &faultyStore{Store: mem, tripped: true}
	rt := newTestRouter(t, faulty, &Config{})

	// The dashboard crashes; its boundary serves the fallback.
	rec := get(t, rt, "/dashboard")
	if rec.Code != http.StatusInternalServerError {
		t.Fatalf("status = %d, want 500", rec.Code)
	}
	body := rec.Body.String()
	if !strings.Contains(body, "Dashboard tab crashed") {
		t.Errorf("fallback lacks the boundary title:\n%s", body)
	}
	if !strings.Contains(body, "Route path: /dashboard") {
		t.Errorf("fallback lacks the route path")
	}
	if !strings.Contains(body, "Blog") {
		t.Errorf("fallback lost the navigation shell")
	}

	// Sibling routes are unaffected.
	if rec := get(t, rt, "/blog"); rec.Code != http.StatusOK {
		t.Fatalf("sibling /blog status = %d, want 200", rec.Code)
	}
	if rec := get(t, rt, "/knobs"); rec.Code != http.StatusOK {
		t.Fatalf("sibling /knobs status = %d, want 200", rec.Code)
	}

	// The boundary stays failed even after the cause is gone.
	faulty.tripped = false
	if rec := get(t, rt, "/dashboard"); rec.Code != http.StatusInternalServerError {
		t.Fatalf("status before retry = %d, want 500", rec.Code)
	}

	// Retry resets the boundary and the route recovers.
	rec = postForm(t, rt, "/boundary/retry", url.Values{"path": {"/dashboard"}})
	if rec.Code != http.StatusSeeOther {
		t.Fatalf("retry status = %d, want 303", rec.Code)
	}
	if loc := rec.Header().Get("Location"); loc != "/dashboard" {
		t.Errorf("retry Location = %q, want /dashboard", loc)
	}
	if rec := get(t, rt, "/dashboard"); rec.Code != http.StatusOK {
		t.Fatalf("status after retry = %d, want 200", rec.Code)
	}
}

func TestRouterRetryWhileStillBroken(t *testing.T) {
	mem := memstore.New()
	faulty := &faultyStore{Store: mem, tripped: true}
	rt := newTestRouter(t, faulty, &Config{})

	get(t, rt, "/dashboard")
	postForm(t, rt, "/boundary/retry", url.Values{"path": {"/dashboard"}})

	// The cause persists, so the fresh attempt fails again.
	if rec := get(t, rt, "/dashboard"); rec.Code != http.StatusInternalServerError {
		t.Fatalf("status = %d, want 500 again", rec.Code)
	}
}

func TestRouterRetryRejectsBadPath(t *testing.T) {
	rt := newTestRouter(t, nil, &Config{})

	tests := []string{
		"not-a-path",
		"",
		"/nope",
		"/",
	}
	for _, path := range tests {
		rec := postForm(t, rt, "/boundary/retry", url.Values{"path": {path}})
		if rec.Code != http.StatusBadRequest {
			t.Errorf("retry with path %q: status = %d, want 400", path, rec.Code)
		}
	}
}

func TestRouterRetryRejectsExternalTargets(t *testing.T) {
	rt := newTestRouter(t, nil, &Config{})

	// Values that start with a slash but do not name a supervised route
	// must never turn into a redirect off-site.
	tests := []string{
		"//evil.example.com",
		"//evil.example.com/dashboard",
		"/\\evil.example.com",
		"https://evil.example.com",
	}
	for _, path := range tests {
		rec := postForm(t, rt, "/boundary/retry", url.Values{"path": {path}})
		if rec.Code != http.StatusBadRequest {
			t.Errorf("retry with path %q: status = %d, want 400", path, rec.Code)
		}
		if loc := rec.Header().Get("Location"); loc != "" {
			t.Errorf("retry with path %q redirected to %q", path, loc)
		}
	}
}

func TestRouterRetryAcceptsEmbedPath(t *testing.T) {
	rt := newTestRouter(t, nil, &Config{GrafanaURL: "https://grafana.example.com"})

	rec := postForm(t, rt, "/boundary/retry", url.Values{"path": {"/d/abc123/overview"}})
	if rec.Code != http.StatusSeeOther {
		t.Fatalf("status = %d, want 303", rec.Code)
	}
	if loc := rec.Header().Get("Location"); loc != "/d/abc123/overview" {
		t.Errorf("Location = %q, want /d/abc123/overview", loc)
	}
}

func TestRouterChatSendFlow(t *testing.T) {
	rt := newTestRouter(t, nil, &Config{})

	rec := postForm(t, rt, "/chat/send", url.Values{"question": {"How does fusion work?"}})
	if rec.Code != http.StatusSeeOther {
		t.Fatalf("status = %d, want 303", rec.Code)
	}
	loc := rec.Header().Get("Location")
	u, err := url.Parse(loc)
	if err != nil {
		t.Fatalf("bad Location %q: %v", loc, err)
	}
	sessionID := u.Query().Get("session")
	if _, err := uuid.Parse(sessionID); err != nil {
		t.Fatalf("Location %q has no session id", loc)
	}

	rec = get(t, rt, "/chat?session="+sessionID)
	if rec.Code != http.StatusOK {
		t.Fatalf("transcript status = %d, want 200", rec.Code)
	}
	body := rec.Body.String()
	if !strings.Contains(body, "How does fusion work?") {
		t.Errorf("transcript lacks the question")
	}
	if !strings.Contains(body, "fusion stage merges") {
		t.Errorf("transcript lacks the answer")
	}
	if !strings.Contains(body, "docs/fusion.md") {
		t.Errorf("transcript lacks passage provenance")
	}
}

func TestRouterChatSendEmptyQuestion(t *testing.T) {
	rt := newTestRouter(t, nil, &Config{})

	rec := postForm(t, rt, "/chat/send", url.Values{"question": {"   "}})
	if rec.Code != http.StatusSeeOther {
		t.Fatalf("status = %d, want 303", rec.Code)
	}
	if loc := rec.Header().Get("Location"); !strings.Contains(loc, "flash=") {
		t.Errorf("Location = %q, want a flash message", loc)
	}
}

func TestRouterChatSendReadOnly(t *testing.T) {
	rt := newTestRouter(t, nil, &Config{ReadOnly: true})

	rec := postForm(t, rt, "/chat/send", url.Values{"question": {"hi"}})
	if rec.Code != http.StatusForbidden {
		t.Fatalf("status = %d, want 403", rec.Code)
	}
}

func TestRouterStatic(t *testing.T) {
	rt := newTestRouter(t, nil, &Config{})

	rec := get(t, rt, "/static/app.css")
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}
	if !strings.Contains(rec.Body.String(), ".topbar") {
		t.Errorf("stylesheet content missing")
	}
}
