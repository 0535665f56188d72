package service

import (
	"context"
	"errors"
	"math"
	"strings"
	"testing"
	"unicode/utf8"

	"github.com/google/uuid"

	"github.com/tribridrag/tribridrag"
	"github.com/tribridrag/tribridrag/store"
	"github.com/tribridrag/tribridrag/store/memstore"
)

// fakeBackend is a canned Backend for service tests.
type fakeBackend struct {
	answer  *tribridrag.Answer
	healthy bool
	err     error

	lastQuery tribridrag.QueryRequest
}

func (f *fakeBackend) Query(ctx context.Context, req tribridrag.QueryRequest) (*tribridrag.Answer, error) {
	f.lastQuery = req
	if f.err != nil {
		return nil, f.err
	}
	return f.answer, nil
}

func (f *fakeBackend) Neighborhood(ctx context.Context, req tribridrag.NeighborhoodRequest) (*tribridrag.Neighborhood, error) {
	if f.err != nil {
		return nil, f.err
	}
	return &tribridrag.Neighborhood{
		Seed:  req.Seed,
		Nodes: []tribridrag.Node{{ID: "n1", Label: req.Seed, Kind: "concept"}},
	}, nil
}

func (f *fakeBackend) Health(ctx context.Context) (*tribridrag.Health, error) {
	if f.err != nil {
		return nil, f.err
	}
	status := "degraded"
	if f.healthy {
		status = "ok"
	}
	return &tribridrag.Health{Status: status, Version: "test"}, nil
}

func newTestService(backend *fakeBackend) (*Service, *memstore.Store) {
	st := memstore.New()
	return New(st, backend, nil), st
}

func TestSendMessageNewSession(t *testing.T) {
	backend := &fakeBackend{
		answer: &tribridrag.Answer{
			Text: "Fusion merges ranked lists.",
			Passages: []tribridrag.Passage{
				{Source: "docs/fusion.md", Score: 0.9, Retriever: tribridrag.RetrieverGraph},
			},
			Usage: tribridrag.Usage{InputTokens: 10, OutputTokens: 20},
		},
	}
	svc, st := newTestService(backend)
	ctx := context.Background()

	result, err := svc.SendMessage(ctx, uuid.Nil, "  what is fusion?  ")
	if err != nil {
		t.Fatalf("send message: %v", err)
	}
	if result.Answer.Text != "Fusion merges ranked lists." {
		t.Errorf("unexpected answer: %q", result.Answer.Text)
	}
	if backend.lastQuery.SessionID != result.SessionID {
		t.Errorf("backend got session %q, result says %q", backend.lastQuery.SessionID, result.SessionID)
	}

	sessionID := uuid.MustParse(result.SessionID)
	msgs, err := st.ListMessages(ctx, sessionID)
	if err != nil {
		t.Fatalf("list messages: %v", err)
	}
	if len(msgs) != 2 {
		t.Fatalf("expected 2 stored messages, got %d", len(msgs))
	}
	if msgs[0].Role != store.RoleUser || msgs[0].Content != "what is fusion?" {
		t.Errorf("user turn not stored trimmed: %+v", msgs[0])
	}
	if len(msgs[1].Passages) != 1 {
		t.Errorf("assistant provenance not stored: %+v", msgs[1])
	}

	sess, err := st.GetSession(ctx, sessionID)
	if err != nil {
		t.Fatalf("get session: %v", err)
	}
	if sess.Title != "what is fusion?" {
		t.Errorf("unexpected session title: %q", sess.Title)
	}
}

func TestSendMessageValidation(t *testing.T) {
	svc, _ := newTestService(&fakeBackend{})

	if _, err := svc.SendMessage(context.Background(), uuid.Nil, "   "); !errors.Is(err, ErrEmptyQuestion) {
		t.Errorf("got %v, want ErrEmptyQuestion", err)
	}
	if _, err := svc.SendMessage(context.Background(), uuid.New(), "hi"); !errors.Is(err, ErrNotFound) {
		t.Errorf("got %v, want ErrNotFound for unknown session", err)
	}
}

func TestSessionTitle(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{"short kept", "what is fusion?", "what is fusion?"},
		{"whitespace collapsed", "  what\n is   fusion? ", "what is fusion?"},
		{"long truncated", strings.Repeat("ab ", 40), strings.Repeat("ab ", 20) + "a" + "..."},
		{"multibyte cut on rune boundary", strings.Repeat("検", 70), strings.Repeat("検", 61) + "..."},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			got := sessionTitle(tc.in)
			if got != tc.want {
				t.Errorf("sessionTitle(%q) = %q, want %q", tc.in, got, tc.want)
			}
			if !utf8.ValidString(got) {
				t.Errorf("sessionTitle(%q) produced invalid UTF-8: %q", tc.in, got)
			}
			if n := len([]rune(got)); n > maxSessionTitle {
				t.Errorf("title is %d runes, want at most %d", n, maxSessionTitle)
			}
		})
	}
}

func TestSendMessageBackendFailure(t *testing.T) {
	backend := &fakeBackend{err: tribridrag.ErrBackendUnavailable}
	svc, st := newTestService(backend)
	ctx := context.Background()

	_, err := svc.SendMessage(ctx, uuid.Nil, "hello")
	if !errors.Is(err, tribridrag.ErrBackendUnavailable) {
		t.Fatalf("got %v, want backend error passed through", err)
	}

	// The user's turn is kept so a retry has context.
	sessions, _, err := st.ListSessions(ctx, store.SessionListParams{Limit: 10})
	if err != nil {
		t.Fatalf("list sessions: %v", err)
	}
	if len(sessions) != 1 {
		t.Fatalf("expected the started session to remain, got %d", len(sessions))
	}
	msgs, _ := st.ListMessages(ctx, sessions[0].ID)
	if len(msgs) != 1 || msgs[0].Role != store.RoleUser {
		t.Errorf("expected only the user turn stored, got %+v", msgs)
	}
}

func TestDashboardStatsWithBackendDown(t *testing.T) {
	backend := &fakeBackend{err: tribridrag.ErrBackendUnavailable}
	svc, st := newTestService(backend)
	st.Seed()

	stats, err := svc.GetDashboardStats(context.Background())
	if err != nil {
		t.Fatalf("dashboard stats must not fail when backend is down: %v", err)
	}
	if stats.BackendHealthy {
		t.Error("backend should be reported unhealthy")
	}
	if stats.TotalPosts == 0 || stats.TotalEvalRuns != 2 {
		t.Errorf("store counts missing: %+v", stats)
	}
	if stats.LatestScores == nil || stats.LatestRunName == "" {
		t.Error("latest eval scores missing")
	}
}

func TestEvalRunDetailMeans(t *testing.T) {
	svc, st := newTestService(&fakeBackend{})
	st.Seed()

	runs, _, err := st.ListEvalRuns(context.Background(), store.EvalRunListParams{Limit: 1})
	if err != nil {
		t.Fatalf("list runs: %v", err)
	}

	detail, err := svc.GetEvalRunDetail(context.Background(), runs[0].ID)
	if err != nil {
		t.Fatalf("run detail: %v", err)
	}
	if len(detail.Cases) != detail.Run.CaseCount {
		t.Fatalf("case count mismatch: %d vs %d", len(detail.Cases), detail.Run.CaseCount)
	}

	var want float64
	for _, c := range detail.Cases {
		want += c.Scores.Faithfulness
	}
	want /= float64(len(detail.Cases))
	if math.Abs(detail.CaseMeans.Faithfulness-want) > 1e-9 {
		t.Errorf("faithfulness mean = %v, want %v", detail.CaseMeans.Faithfulness, want)
	}
}

func TestExploreClampsDepth(t *testing.T) {
	svc, _ := newTestService(&fakeBackend{})

	view, err := svc.Explore(context.Background(), "fusion", 99)
	if err != nil {
		t.Fatalf("explore: %v", err)
	}
	if view.Depth != MaxGraphDepth {
		t.Errorf("depth = %d, want clamped to %d", view.Depth, MaxGraphDepth)
	}

	view, err = svc.Explore(context.Background(), "fusion", 0)
	if err != nil {
		t.Fatalf("explore: %v", err)
	}
	if view.Depth != DefaultGraphDepth {
		t.Errorf("depth = %d, want default %d", view.Depth, DefaultGraphDepth)
	}
}

func TestValidateLimit(t *testing.T) {
	tests := []struct {
		in, want int
	}{
		{0, DefaultLimit},
		{-5, DefaultLimit},
		{10, 10},
		{MaxLimit + 1, MaxLimit},
	}
	for _, tt := range tests {
		if got := ValidateLimit(tt.in); got != tt.want {
			t.Errorf("ValidateLimit(%d) = %d, want %d", tt.in, got, tt.want)
		}
	}
}
