package frontend

import (
	"io"
	"net/http"
	"strings"
)

// Page is one renderable tab screen. Render writes a complete HTML document.
// A Page may fail with an error or a panic; both are contained by the fault
// boundary supervising the route.
type Page interface {
	Render(w io.Writer, r *http.Request) error
}

// RouteElement binds a route to its page unit. It is an explicit two-variant
// type: either an already-built Page or a factory invoked at match time.
type RouteElement struct {
	prebuilt Page
	build    func() Page
}

// Prebuilt wraps an already-constructed page unit.
func Prebuilt(p Page) RouteElement {
	return RouteElement{prebuilt: p}
}

// Constructible wraps a page factory. The factory runs once per matched
// request, never during table construction.
func Constructible(build func() Page) RouteElement {
	return RouteElement{build: build}
}

// Page returns the element's page unit, invoking the factory if needed.
func (e RouteElement) Page() Page {
	if e.prebuilt != nil {
		return e.prebuilt
	}
	if e.build != nil {
		return e.build()
	}
	return nil
}

// RouteEntry is one row of the route table.
type RouteEntry struct {
	Path    string // Exact path, e.g. "/dashboard"
	Label   string // Tab label, e.g. "Dashboard"
	Element RouteElement
}

// EmbedPathPattern is the fixed Grafana deep-link pattern. It is matched
// ahead of the route table so a generic entry can never shadow it.
const EmbedPathPattern = "/d/:uid/:slug"

// RootRedirectTarget is where the bare root path lands.
const RootRedirectTarget = "/dashboard"

// ResolutionKind says how a path resolved.
type ResolutionKind int

// Resolution kinds.
const (
	ResolveNone     ResolutionKind = iota // no match; not-found handling
	ResolveEntry                          // a route table entry matched
	ResolveEmbed                          // the Grafana embed pattern matched
	ResolveRedirect                       // the root alias matched
)

// Resolution is the outcome of matching one path.
type Resolution struct {
	Kind   ResolutionKind
	Entry  *RouteEntry // set for ResolveEntry
	Target string      // set for ResolveRedirect
	UID    string      // set for ResolveEmbed
	Slug   string      // set for ResolveEmbed
}

// Resolve matches a request path against the route table. It is a pure
// function of the path and the table: the embed pattern wins first, then the
// root redirect, then the first table entry with an equal path.
func Resolve(path string, table []RouteEntry) Resolution {
	if uid, slug, ok := matchEmbed(path); ok {
		return Resolution{Kind: ResolveEmbed, UID: uid, Slug: slug}
	}

	if path == "/" || path == "" {
		return Resolution{Kind: ResolveRedirect, Target: RootRedirectTarget}
	}

	for i := range table {
		if table[i].Path == path {
			return Resolution{Kind: ResolveEntry, Entry: &table[i]}
		}
	}

	return Resolution{Kind: ResolveNone}
}

// matchEmbed matches /d/<uid>/<slug> with exactly two non-empty segments
// after the prefix. A trailing slash or a missing slug does not match.
func matchEmbed(path string) (uid, slug string, ok bool) {
	rest, found := strings.CutPrefix(path, "/d/")
	if !found {
		return "", "", false
	}
	uid, slug, found = strings.Cut(rest, "/")
	if !found || uid == "" || slug == "" || strings.Contains(slug, "/") {
		return "", "", false
	}
	return uid, slug, true
}
