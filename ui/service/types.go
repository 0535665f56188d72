package service

import (
	"github.com/tribridrag/tribridrag"
	"github.com/tribridrag/tribridrag/store"
)

// DashboardStats aggregates everything the dashboard tab shows.
type DashboardStats struct {
	// Backend state
	BackendHealthy bool
	BackendVersion string
	Retrievers     []tribridrag.RetrieverStatus

	// Store counts
	TotalSessions int
	TotalPosts    int
	TotalEvalRuns int

	// Latest eval scores, nil when no run exists
	LatestScores  *store.EvalScores
	LatestRunName string

	RecentSessions []*store.ChatSession
	RecentRuns     []*store.EvalRun
}

// SessionList is one page of chat sessions.
type SessionList struct {
	Sessions   []*store.ChatSession
	TotalCount int
	HasMore    bool
}

// Conversation is one session with its full transcript.
type Conversation struct {
	Session  *store.ChatSession
	Messages []*store.ChatMessage
}

// ChatResult is the outcome of sending one question.
type ChatResult struct {
	SessionID string
	Answer    *tribridrag.Answer
}

// GraphView is a rendered neighborhood plus summary figures.
type GraphView struct {
	Seed      string
	Depth     int
	Nodes     []tribridrag.Node
	Edges     []tribridrag.Edge
	NodeCount int
	EdgeCount int
}

// EvalRunList is one page of evaluation runs.
type EvalRunList struct {
	Runs       []*store.EvalRun
	TotalCount int
	HasMore    bool
}

// EvalRunDetail is one run with its per-case breakdown.
type EvalRunDetail struct {
	Run   *store.EvalRun
	Cases []*store.EvalCase

	// Mean scores recomputed from the cases; matches Run.Scores when the
	// run was written consistently.
	CaseMeans store.EvalScores
}
