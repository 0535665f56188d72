// Package frontend provides the SSR frontend for the TriBridRAG demo UI.
//
// Navigation is driven by an ordered route table binding URL paths to page
// units (see routes.go). Resolution of a request path is a pure function:
// the fixed Grafana embed pattern /d/<uid>/<slug> is checked first, then the
// root redirect to /dashboard, then the table in order.
//
// Every matched route renders inside its own fault boundary (boundary.go):
// a panic or error while rendering one tab produces a titled error panel with
// a retry button, and never takes down the navigation shell or any other tab.
//
// # Routes
//
//   - GET /            - Redirect to dashboard
//   - GET /dashboard   - Stats, retriever health, embedded Grafana overview
//   - GET /chat        - Chat with the RAG backend
//   - GET /graph       - Knowledge graph exploration
//   - GET /evals       - Evaluation runs and per-case scores
//   - GET /blog        - Product blog
//   - GET /knobs       - Configuration knob glossary
//   - GET /d/{uid}/{slug} - Full-page Grafana dashboard embed
//
// Actions:
//
//   - POST /chat/send       - Send a chat message
//   - POST /boundary/retry  - Reset a failed route boundary and re-render
//
// Static assets are served from the embedded /static tree.
package frontend
