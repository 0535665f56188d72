package tribridrag

// Retriever identifies which leg of the tri-brid pipeline produced a passage.
type Retriever string

// Retrievers known to the backend.
const (
	RetrieverVector  Retriever = "vector"
	RetrieverKeyword Retriever = "keyword"
	RetrieverGraph   Retriever = "graph"
)

// QueryRequest is a question for the backend.
type QueryRequest struct {
	// Question is the user's question (required)
	Question string

	// SessionID groups follow-up questions into one conversation (optional)
	SessionID string

	// TopK limits the number of fused passages returned (optional)
	TopK int

	// Knobs overrides pipeline knobs for this query, keyed by knob name (optional)
	Knobs map[string]any
}

// Passage is one retrieved chunk that grounded the answer.
type Passage struct {
	Source    string    // Document or node the passage came from
	Snippet   string    // Passage text
	Score     float64   // Fused relevance score in [0, 1]
	Retriever Retriever // Which retriever surfaced it
}

// Usage reports token accounting for one query.
type Usage struct {
	InputTokens  int
	OutputTokens int
}

// Answer is the backend's response to a query.
type Answer struct {
	Text      string    // Generated answer, markdown
	SessionID string    // Session the exchange was recorded under
	Passages  []Passage // Fused supporting passages, best first
	Usage     Usage
}

// NeighborhoodRequest asks for the graph around a seed entity.
type NeighborhoodRequest struct {
	// Seed is the entity to expand from (required)
	Seed string

	// Depth is how many hops to expand, default 1
	Depth int
}

// Node is one entity in a graph neighborhood.
type Node struct {
	ID    string
	Label string
	Kind  string // Entity kind, e.g. "document", "concept"
}

// Edge connects two nodes in a graph neighborhood.
type Edge struct {
	From     string
	To       string
	Relation string
	Weight   float64
}

// Neighborhood is the subgraph around a seed entity.
type Neighborhood struct {
	Seed  string
	Nodes []Node
	Edges []Edge
}

// RetrieverStatus reports readiness of one retriever.
type RetrieverStatus struct {
	Name  Retriever
	Ready bool
}

// Health is the backend's health report.
type Health struct {
	Status     string // "ok" or "degraded"
	Version    string
	Retrievers []RetrieverStatus
}

// Healthy reports whether the backend and every retriever are ready.
func (h *Health) Healthy() bool {
	if h.Status != "ok" {
		return false
	}
	for _, r := range h.Retrievers {
		if !r.Ready {
			return false
		}
	}
	return true
}
