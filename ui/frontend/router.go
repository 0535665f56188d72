package frontend

import (
	"bytes"
	"errors"
	"io"
	"net/http"
	"net/url"

	"github.com/google/uuid"

	"github.com/tribridrag/tribridrag/ui/service"
)

// Router is the demo UI's HTTP handler. Every tab route is supervised by its
// own fault boundary, so a broken page ships a fallback panel instead of
// taking the whole UI down with it.
type Router struct {
	svc *service.Service
	cfg *Config

	table      []RouteEntry
	rd         *renderer
	boundaries map[string]*Boundary // keyed by route path
	embed      *Boundary
	actions    *http.ServeMux
}

// NewRouter builds the route table, one boundary per route, and the action
// mux for non-navigation requests.
func NewRouter(svc *service.Service, cfg *Config) *Router {
	if cfg == nil {
		cfg = &Config{}
	}
	if cfg.PageSize <= 0 {
		cfg.PageSize = service.DefaultLimit
	}

	rt := &Router{
		svc:        svc,
		cfg:        cfg,
		boundaries: make(map[string]*Boundary),
		actions:    http.NewServeMux(),
	}

	tabs := []RouteEntry{
		{Path: "/dashboard", Label: "Dashboard"},
		{Path: "/chat", Label: "Chat"},
		{Path: "/graph", Label: "Graph"},
		{Path: "/evals", Label: "Evals"},
		{Path: "/blog", Label: "Blog"},
		{Path: "/knobs", Label: "Knobs"},
	}
	rd := newRenderer(cfg, tabs)
	rt.rd = rd

	// Dashboard and chat are built once and reused; the read-mostly tabs
	// are rebuilt per match.
	tabs[0].Element = Prebuilt(&dashboardPage{svc: svc, rd: rd, cfg: cfg})
	tabs[1].Element = Prebuilt(&chatPage{svc: svc, rd: rd, cfg: cfg})
	tabs[2].Element = Constructible(func() Page { return &graphPage{svc: svc, rd: rd} })
	tabs[3].Element = Prebuilt(&evalsPage{svc: svc, rd: rd, cfg: cfg})
	tabs[4].Element = Constructible(func() Page { return &blogPage{svc: svc, rd: rd} })
	tabs[5].Element = Prebuilt(&knobsPage{svc: svc, rd: rd})
	rt.table = tabs

	for _, entry := range rt.table {
		rt.boundaries[entry.Path] = NewBoundary(
			"route:"+entry.Path,
			entry.Label+" tab crashed",
			entry.Path,
		)
	}
	rt.embed = NewBoundary("route:"+EmbedPathPattern, "Grafana embed crashed", EmbedPathPattern)

	rt.actions.Handle("GET /static/", staticHandler())
	rt.actions.HandleFunc("POST /chat/send", rt.handleChatSend)
	rt.actions.HandleFunc("POST /boundary/retry", rt.handleBoundaryRetry)

	return rt
}

// Table returns the route table. Callers must not mutate it.
func (rt *Router) Table() []RouteEntry {
	return rt.table
}

func (rt *Router) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	if _, pattern := rt.actions.Handler(r); pattern != "" {
		rt.actions.ServeHTTP(w, r)
		return
	}

	res := Resolve(r.URL.Path, rt.table)
	switch res.Kind {
	case ResolveRedirect:
		http.Redirect(w, r, rt.cfg.BasePath+res.Target, http.StatusTemporaryRedirect)

	case ResolveEmbed:
		page := &embedPage{rd: rt.rd, cfg: rt.cfg, uid: res.UID, slug: res.Slug}
		rt.renderRoute(w, r, rt.embed, page)

	case ResolveEntry:
		boundary := rt.boundaries[res.Entry.Path]
		page := res.Entry.Element.Page()
		rt.renderRoute(w, r, boundary, page)

	default:
		rt.renderNotFound(w, r)
	}
}

// renderRoute runs one supervised render. A contained failure gets the
// fallback panel with the route's boundary details; a write error just means
// the client went away.
func (rt *Router) renderRoute(w http.ResponseWriter, r *http.Request, b *Boundary, page Page) {
	err := b.Render(w, func(buf io.Writer) error {
		return page.Render(buf, r)
	})
	if err == nil {
		return
	}

	var failure *RenderFailure
	if errors.As(err, &failure) {
		rt.logError("route render failed",
			"context", failure.Fault.Context,
			"path", r.URL.Path,
			"error", failure.Fault.Err)
		rt.renderFallback(w, r, b, failure.Fault)
		return
	}

	rt.logWarn("response write failed", "path", r.URL.Path, "error", err)
}

// renderFallback ships the boundary's fallback panel inside the nav shell.
// The panel itself renders into a buffer first so a template problem here
// degrades to a plain 500 instead of a half-written page.
func (rt *Router) renderFallback(w http.ResponseWriter, r *http.Request, b *Boundary, fault FaultState) {
	var message string
	if fault.Err != nil {
		message = fault.Err.Error()
	}

	var buf bytes.Buffer
	err := rt.rd.render(&buf, r, "error.html", b.Title(), map[string]any{
		"BoundaryTitle": b.Title(),
		"RoutePath":     b.RoutePath(),
		"Message":       message,
		"RetryPath":     r.URL.Path,
	})
	if err != nil {
		rt.logError("fallback render failed", "context", b.Context(), "error", err)
		http.Error(w, b.Title(), http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(http.StatusInternalServerError)
	if _, err := w.Write(buf.Bytes()); err != nil {
		rt.logWarn("response write failed", "path", r.URL.Path, "error", err)
	}
}

// renderNotFound serves the 404 page. Unknown paths have no boundary; a
// failure here is a plain 404 text response.
func (rt *Router) renderNotFound(w http.ResponseWriter, r *http.Request) {
	var buf bytes.Buffer
	err := rt.rd.render(&buf, r, "notfound.html", "Not Found", map[string]any{
		"Path": r.URL.Path,
	})
	if err != nil {
		rt.logError("not-found render failed", "path", r.URL.Path, "error", err)
		http.NotFound(w, r)
		return
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(http.StatusNotFound)
	w.Write(buf.Bytes())
}

// handleChatSend records a question, asks the backend, and bounces back to
// the transcript.
func (rt *Router) handleChatSend(w http.ResponseWriter, r *http.Request) {
	if rt.cfg.ReadOnly {
		http.Error(w, "read-only mode", http.StatusForbidden)
		return
	}
	if err := r.ParseForm(); err != nil {
		http.Error(w, "bad form", http.StatusBadRequest)
		return
	}

	sessionID := uuid.Nil
	if raw := r.PostFormValue("session_id"); raw != "" {
		id, err := uuid.Parse(raw)
		if err != nil {
			http.Error(w, "bad session id", http.StatusBadRequest)
			return
		}
		sessionID = id
	}

	result, err := rt.svc.SendMessage(r.Context(), sessionID, r.PostFormValue("question"))
	if err != nil {
		switch {
		case errors.Is(err, service.ErrEmptyQuestion):
			rt.redirectChat(w, r, sessionID.String(), "Type a question first.")
		case errors.Is(err, service.ErrNotFound):
			http.Error(w, "session not found", http.StatusNotFound)
		default:
			rt.logError("chat send failed", "error", err)
			rt.redirectChat(w, r, sessionID.String(), "The backend did not answer. Your question was saved.")
		}
		return
	}

	rt.redirectChat(w, r, result.SessionID, "")
}

func (rt *Router) redirectChat(w http.ResponseWriter, r *http.Request, sessionID, flash string) {
	q := url.Values{}
	if sessionID != "" && sessionID != uuid.Nil.String() {
		q.Set("session", sessionID)
	}
	if flash != "" {
		q.Set("flash", flash)
	}
	target := rt.cfg.BasePath + "/chat"
	if encoded := q.Encode(); encoded != "" {
		target += "?" + encoded
	}
	http.Redirect(w, r, target, http.StatusSeeOther)
}

// handleBoundaryRetry resets the failed boundary for the submitted path and
// sends the user back there for a fresh attempt. The path must resolve to a
// supervised route; anything else (unknown paths, external URLs) is rejected
// rather than redirected.
func (rt *Router) handleBoundaryRetry(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		http.Error(w, "bad form", http.StatusBadRequest)
		return
	}

	path := r.PostFormValue("path")
	b := rt.boundaryFor(path)
	if b == nil {
		http.Error(w, "bad path", http.StatusBadRequest)
		return
	}

	b.Reset()
	rt.logInfo("boundary reset", "context", b.Context())
	http.Redirect(w, r, rt.cfg.BasePath+path, http.StatusSeeOther)
}

// boundaryFor maps a concrete request path back to its supervising boundary.
func (rt *Router) boundaryFor(path string) *Boundary {
	res := Resolve(path, rt.table)
	switch res.Kind {
	case ResolveEntry:
		return rt.boundaries[res.Entry.Path]
	case ResolveEmbed:
		return rt.embed
	}
	return nil
}

func (rt *Router) logInfo(msg string, args ...any) {
	if rt.cfg.Logger != nil {
		rt.cfg.Logger.Info(msg, args...)
	}
}

func (rt *Router) logWarn(msg string, args ...any) {
	if rt.cfg.Logger != nil {
		rt.cfg.Logger.Warn(msg, args...)
	}
}

func (rt *Router) logError(msg string, args ...any) {
	if rt.cfg.Logger != nil {
		rt.cfg.Logger.Error(msg, args...)
	}
}
