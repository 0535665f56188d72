package memstore

import (
	"context"
	"errors"
	"testing"

	"github.com/google/uuid"

	"github.com/tribridrag/tribridrag"
	"github.com/tribridrag/tribridrag/store"
)

func TestSessionLifecycle(t *testing.T) {
	ctx := context.Background()
	st := New()

	sess, err := st.CreateSession(ctx, "fusion questions")
	if err != nil {
		t.Fatalf("create session: %v", err)
	}

	if err := st.AddMessage(ctx, &store.ChatMessage{
		SessionID: sess.ID,
		Role:      store.RoleUser,
		Content:   "what is rrf?",
	}); err != nil {
		t.Fatalf("add user message: %v", err)
	}
	if err := st.AddMessage(ctx, &store.ChatMessage{
		SessionID: sess.ID,
		Role:      store.RoleAssistant,
		Content:   "Reciprocal rank fusion merges ranked lists.",
		Passages: []tribridrag.Passage{
			{Source: "docs/fusion.md", Score: 0.9, Retriever: tribridrag.RetrieverVector},
		},
	}); err != nil {
		t.Fatalf("add assistant message: %v", err)
	}

	got, err := st.GetSession(ctx, sess.ID)
	if err != nil {
		t.Fatalf("get session: %v", err)
	}
	if got.MessageCount != 2 {
		t.Errorf("message count = %d, want 2", got.MessageCount)
	}
	if !got.LastActiveAt.After(sess.CreatedAt) && !got.LastActiveAt.Equal(sess.CreatedAt) {
		t.Error("last activity not bumped by AddMessage")
	}

	msgs, err := st.ListMessages(ctx, sess.ID)
	if err != nil {
		t.Fatalf("list messages: %v", err)
	}
	if len(msgs) != 2 {
		t.Fatalf("expected 2 messages, got %d", len(msgs))
	}
	if msgs[0].Role != store.RoleUser || msgs[1].Role != store.RoleAssistant {
		t.Errorf("messages out of order: %q, %q", msgs[0].Role, msgs[1].Role)
	}
	if len(msgs[1].Passages) != 1 || msgs[1].Passages[0].Retriever != tribridrag.RetrieverVector {
		t.Errorf("passage provenance lost: %+v", msgs[1].Passages)
	}
}

func TestAddMessageUnknownSession(t *testing.T) {
	st := New()
	err := st.AddMessage(context.Background(), &store.ChatMessage{
		SessionID: uuid.New(),
		Role:      store.RoleUser,
		Content:   "hello",
	})
	if !errors.Is(err, store.ErrNotFound) {
		t.Errorf("got %v, want store.ErrNotFound", err)
	}
}

func TestListSessionsPagination(t *testing.T) {
	ctx := context.Background()
	st := New()
	for i := 0; i < 5; i++ {
		if _, err := st.CreateSession(ctx, "s"); err != nil {
			t.Fatalf("create session: %v", err)
		}
	}

	sessions, total, err := st.ListSessions(ctx, store.SessionListParams{Limit: 2, Offset: 4})
	if err != nil {
		t.Fatalf("list sessions: %v", err)
	}
	if total != 5 {
		t.Errorf("total = %d, want 5", total)
	}
	if len(sessions) != 1 {
		t.Errorf("page size = %d, want 1", len(sessions))
	}

	sessions, _, err = st.ListSessions(ctx, store.SessionListParams{Limit: 2, Offset: 10})
	if err != nil {
		t.Fatalf("list sessions past end: %v", err)
	}
	if len(sessions) != 0 {
		t.Errorf("expected empty page past end, got %d", len(sessions))
	}
}

func TestSeedContent(t *testing.T) {
	ctx := context.Background()
	st := New()
	st.Seed()

	posts, err := st.ListPosts(ctx)
	if err != nil {
		t.Fatalf("list posts: %v", err)
	}
	if len(posts) == 0 {
		t.Fatal("seed produced no blog posts")
	}
	for i := 1; i < len(posts); i++ {
		if posts[i-1].PublishedAt.Before(posts[i].PublishedAt) {
			t.Error("posts not ordered newest first")
		}
	}

	post, err := st.GetPost(ctx, "introducing-tribrid-retrieval")
	if err != nil {
		t.Fatalf("get seeded post: %v", err)
	}
	if post.Body == "" {
		t.Error("seeded post has empty body")
	}

	runs, total, err := st.ListEvalRuns(ctx, store.EvalRunListParams{Limit: 10})
	if err != nil {
		t.Fatalf("list eval runs: %v", err)
	}
	if total != 2 {
		t.Fatalf("expected 2 seeded runs, got %d", total)
	}

	cases, err := st.ListEvalCases(ctx, runs[0].ID)
	if err != nil {
		t.Fatalf("list eval cases: %v", err)
	}
	if len(cases) != runs[0].CaseCount {
		t.Errorf("case count %d does not match run.CaseCount %d", len(cases), runs[0].CaseCount)
	}
}

func TestGetPostNotFound(t *testing.T) {
	st := New()
	if _, err := st.GetPost(context.Background(), "nope"); !errors.Is(err, store.ErrNotFound) {
		t.Errorf("got %v, want store.ErrNotFound", err)
	}
}
