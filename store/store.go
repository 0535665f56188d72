// Package store defines persistence for the demo UI's own data: chat
// transcripts, blog posts, and evaluation runs. The RAG corpus itself lives
// behind the backend API and is never stored here.
package store

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"

	"github.com/tribridrag/tribridrag"
)

// Store errors.
var (
	// ErrNotFound indicates a record does not exist.
	ErrNotFound = errors.New("store: not found")
)

// Message roles.
const (
	RoleUser      = "user"
	RoleAssistant = "assistant"
)

// ChatSession is one demo conversation.
type ChatSession struct {
	ID           uuid.UUID
	Title        string
	CreatedAt    time.Time
	LastActiveAt time.Time
	MessageCount int
}

// ChatMessage is one turn in a session. Assistant messages carry the fused
// passages that grounded the answer.
type ChatMessage struct {
	ID        uuid.UUID
	SessionID uuid.UUID
	Role      string
	Content   string // Markdown
	Passages  []tribridrag.Passage
	Usage     tribridrag.Usage
	CreatedAt time.Time
}

// BlogPost is one product blog entry, body in markdown.
type BlogPost struct {
	Slug        string
	Title       string
	Author      string
	Summary     string
	Body        string
	PublishedAt time.Time
}

// EvalScores are the aggregate metrics of an evaluation run.
type EvalScores struct {
	Faithfulness     float64
	AnswerRelevance  float64
	ContextPrecision float64
}

// EvalRun is one benchmark run against a dataset.
type EvalRun struct {
	ID        uuid.UUID
	Name      string
	Dataset   string
	CaseCount int
	Scores    EvalScores
	CreatedAt time.Time
}

// EvalCase is one question/answer pair inside a run.
type EvalCase struct {
	ID       uuid.UUID
	RunID    uuid.UUID
	Question string
	Expected string
	Answer   string
	Scores   EvalScores
}

// SessionListParams controls session pagination.
type SessionListParams struct {
	Limit  int
	Offset int
}

// EvalRunListParams controls eval run pagination.
type EvalRunListParams struct {
	Limit  int
	Offset int
}

// Store is the persistence contract consumed by the UI service layer.
// Implementations: pgxstore (pgx pool), sqlstore (database/sql), memstore
// (in-memory, demo mode and tests).
type Store interface {
	// CreateSession creates a new chat session.
	CreateSession(ctx context.Context, title string) (*ChatSession, error)

	// GetSession retrieves a session by ID.
	GetSession(ctx context.Context, id uuid.UUID) (*ChatSession, error)

	// ListSessions returns sessions ordered by last activity, newest first,
	// plus the total count.
	ListSessions(ctx context.Context, params SessionListParams) ([]*ChatSession, int, error)

	// AddMessage appends a message to its session and bumps the session's
	// activity timestamp.
	AddMessage(ctx context.Context, msg *ChatMessage) error

	// ListMessages returns a session's messages oldest first.
	ListMessages(ctx context.Context, sessionID uuid.UUID) ([]*ChatMessage, error)

	// ListPosts returns blog posts newest first.
	ListPosts(ctx context.Context) ([]*BlogPost, error)

	// GetPost retrieves a post by slug.
	GetPost(ctx context.Context, slug string) (*BlogPost, error)

	// ListEvalRuns returns eval runs newest first, plus the total count.
	ListEvalRuns(ctx context.Context, params EvalRunListParams) ([]*EvalRun, int, error)

	// GetEvalRun retrieves an eval run by ID.
	GetEvalRun(ctx context.Context, id uuid.UUID) (*EvalRun, error)

	// ListEvalCases returns a run's cases in dataset order.
	ListEvalCases(ctx context.Context, runID uuid.UUID) ([]*EvalCase, error)
}
