// Package memstore implements store.Store in memory. It backs tests and the
// databaseless demo mode of cmd/tribridrag.
package memstore

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/tribridrag/tribridrag/store"
)

// Store implements store.Store with in-memory maps.
// All methods are safe for concurrent use.
type Store struct {
	mu       sync.RWMutex
	sessions map[uuid.UUID]*store.ChatSession
	messages map[uuid.UUID][]*store.ChatMessage // keyed by session ID
	posts    map[string]*store.BlogPost
	runs     map[uuid.UUID]*store.EvalRun
	cases    map[uuid.UUID][]*store.EvalCase // keyed by run ID
}

// New creates an empty in-memory store.
func New() *Store {
	return &Store{
		sessions: make(map[uuid.UUID]*store.ChatSession),
		messages: make(map[uuid.UUID][]*store.ChatMessage),
		posts:    make(map[string]*store.BlogPost),
		runs:     make(map[uuid.UUID]*store.EvalRun),
		cases:    make(map[uuid.UUID][]*store.EvalCase),
	}
}

// CreateSession creates a new chat session.
func (s *Store) CreateSession(ctx context.Context, title string) (*store.ChatSession, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	now := time.Now()
	sess := &store.ChatSession{
		ID:           uuid.New(),
		Title:        title,
		CreatedAt:    now,
		LastActiveAt: now,
	}
	s.sessions[sess.ID] = sess
	return copySession(sess), nil
}

// GetSession retrieves a session by ID.
func (s *Store) GetSession(ctx context.Context, id uuid.UUID) (*store.ChatSession, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	sess, ok := s.sessions[id]
	if !ok {
		return nil, store.ErrNotFound
	}
	out := copySession(sess)
	out.MessageCount = len(s.messages[id])
	return out, nil
}

// ListSessions returns sessions ordered by last activity, newest first.
func (s *Store) ListSessions(ctx context.Context, params store.SessionListParams) ([]*store.ChatSession, int, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	all := make([]*store.ChatSession, 0, len(s.sessions))
	for _, sess := range s.sessions {
		out := copySession(sess)
		out.MessageCount = len(s.messages[sess.ID])
		all = append(all, out)
	}
	sort.Slice(all, func(i, j int) bool {
		return all[i].LastActiveAt.After(all[j].LastActiveAt)
	})

	total := len(all)
	all = page(all, params.Limit, params.Offset)
	return all, total, nil
}

// AddMessage appends a message and bumps the session's activity timestamp.
func (s *Store) AddMessage(ctx context.Context, msg *store.ChatMessage) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	sess, ok := s.sessions[msg.SessionID]
	if !ok {
		return store.ErrNotFound
	}

	stored := *msg
	if stored.ID == uuid.Nil {
		stored.ID = uuid.New()
	}
	if stored.CreatedAt.IsZero() {
		stored.CreatedAt = time.Now()
	}
	s.messages[msg.SessionID] = append(s.messages[msg.SessionID], &stored)
	sess.LastActiveAt = stored.CreatedAt
	return nil
}

// ListMessages returns a session's messages oldest first.
func (s *Store) ListMessages(ctx context.Context, sessionID uuid.UUID) ([]*store.ChatMessage, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	msgs := s.messages[sessionID]
	out := make([]*store.ChatMessage, len(msgs))
	for i, m := range msgs {
		copied := *m
		out[i] = &copied
	}
	return out, nil
}

// AddPost inserts a blog post. Not part of store.Store; used by seeding.
func (s *Store) AddPost(post *store.BlogPost) {
	s.mu.Lock()
	defer s.mu.Unlock()
	copied := *post
	s.posts[post.Slug] = &copied
}

// ListPosts returns blog posts newest first.
func (s *Store) ListPosts(ctx context.Context) ([]*store.BlogPost, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]*store.BlogPost, 0, len(s.posts))
	for _, p := range s.posts {
		copied := *p
		out = append(out, &copied)
	}
	sort.Slice(out, func(i, j int) bool {
		return out[i].PublishedAt.After(out[j].PublishedAt)
	})
	return out, nil
}

// GetPost retrieves a post by slug.
func (s *Store) GetPost(ctx context.Context, slug string) (*store.BlogPost, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	p, ok := s.posts[slug]
	if !ok {
		return nil, store.ErrNotFound
	}
	copied := *p
	return &copied, nil
}

// AddEvalRun inserts an eval run with its cases. Not part of store.Store;
// used by seeding.
func (s *Store) AddEvalRun(run *store.EvalRun, cases []*store.EvalCase) {
	s.mu.Lock()
	defer s.mu.Unlock()

	copied := *run
	copied.CaseCount = len(cases)
	s.runs[run.ID] = &copied
	stored := make([]*store.EvalCase, len(cases))
	for i, c := range cases {
		cc := *c
		cc.RunID = run.ID
		stored[i] = &cc
	}
	s.cases[run.ID] = stored
}

// ListEvalRuns returns eval runs newest first.
func (s *Store) ListEvalRuns(ctx context.Context, params store.EvalRunListParams) ([]*store.EvalRun, int, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]*store.EvalRun, 0, len(s.runs))
	for _, run := range s.runs {
		copied := *run
		out = append(out, &copied)
	}
	sort.Slice(out, func(i, j int) bool {
		return out[i].CreatedAt.After(out[j].CreatedAt)
	})

	total := len(out)
	out = page(out, params.Limit, params.Offset)
	return out, total, nil
}

// GetEvalRun retrieves an eval run by ID.
func (s *Store) GetEvalRun(ctx context.Context, id uuid.UUID) (*store.EvalRun, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	run, ok := s.runs[id]
	if !ok {
		return nil, store.ErrNotFound
	}
	copied := *run
	return &copied, nil
}

// ListEvalCases returns a run's cases in dataset order.
func (s *Store) ListEvalCases(ctx context.Context, runID uuid.UUID) ([]*store.EvalCase, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	cases := s.cases[runID]
	out := make([]*store.EvalCase, len(cases))
	for i, c := range cases {
		copied := *c
		out[i] = &copied
	}
	return out, nil
}

func copySession(sess *store.ChatSession) *store.ChatSession {
	copied := *sess
	return &copied
}

func page[T any](items []T, limit, offset int) []T {
	if offset >= len(items) {
		return nil
	}
	items = items[offset:]
	if limit > 0 && limit < len(items) {
		items = items[:limit]
	}
	return items
}
