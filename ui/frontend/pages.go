package frontend

import (
	"io"
	"net/http"
	"strconv"
	"strings"

	"github.com/google/uuid"

	"github.com/tribridrag/tribridrag/ui/service"
)

// dashboardPage shows backend health, store counts, recent activity, and the
// embedded Grafana overview dashboard.
type dashboardPage struct {
	svc *service.Service
	rd  *renderer
	cfg *Config
}

func (p *dashboardPage) Render(w io.Writer, r *http.Request) error {
	stats, err := p.svc.GetDashboardStats(r.Context())
	if err != nil {
		return err
	}

	data := map[string]any{
		"Stats":      stats,
		"GrafanaSrc": p.overviewSrc(),
	}
	return p.rd.render(w, r, "dashboard.html", "Dashboard", data)
}

// overviewSrc is the iframe source for the overview dashboard, empty when
// Grafana is not configured.
func (p *dashboardPage) overviewSrc() string {
	if p.cfg.GrafanaURL == "" || p.cfg.GrafanaDashboardUID == "" {
		return ""
	}
	return strings.TrimRight(p.cfg.GrafanaURL, "/") +
		"/d/" + p.cfg.GrafanaDashboardUID + "/" + p.cfg.GrafanaDashboardSlug + "?kiosk"
}

// chatPage shows the session sidebar and the selected transcript.
type chatPage struct {
	svc *service.Service
	rd  *renderer
	cfg *Config
}

func (p *chatPage) Render(w io.Writer, r *http.Request) error {
	sessions, err := p.svc.ListSessions(r.Context(), p.cfg.PageSize, 0)
	if err != nil {
		return err
	}

	data := map[string]any{
		"Sessions": sessions,
		"Flash":    r.URL.Query().Get("flash"),
	}

	if raw := r.URL.Query().Get("session"); raw != "" {
		id, err := uuid.Parse(raw)
		if err == nil {
			conv, convErr := p.svc.GetConversation(r.Context(), id)
			if convErr == nil {
				data["Conversation"] = conv
			} else if convErr != service.ErrNotFound {
				return convErr
			}
		}
	}

	return p.rd.render(w, r, "chat.html", "Chat", data)
}

// graphPage runs a neighborhood query when a seed is submitted.
type graphPage struct {
	svc *service.Service
	rd  *renderer
}

func (p *graphPage) Render(w io.Writer, r *http.Request) error {
	seed := strings.TrimSpace(r.URL.Query().Get("seed"))
	depth, _ := strconv.Atoi(r.URL.Query().Get("depth"))

	data := map[string]any{
		"Seed":  seed,
		"Depth": depth,
	}

	if seed != "" {
		view, err := p.svc.Explore(r.Context(), seed, depth)
		if err != nil {
			// A down backend is an inline message, not a crashed tab.
			data["QueryError"] = err.Error()
		} else {
			data["View"] = view
		}
	}

	return p.rd.render(w, r, "graph.html", "Graph", data)
}

// evalsPage lists runs, or one run's case breakdown with ?run=<id>.
type evalsPage struct {
	svc *service.Service
	rd  *renderer
	cfg *Config
}

func (p *evalsPage) Render(w io.Writer, r *http.Request) error {
	offset, _ := strconv.Atoi(r.URL.Query().Get("offset"))
	list, err := p.svc.ListEvalRuns(r.Context(), p.cfg.PageSize, offset)
	if err != nil {
		return err
	}

	data := map[string]any{
		"Runs": list,
	}

	if raw := r.URL.Query().Get("run"); raw != "" {
		id, parseErr := uuid.Parse(raw)
		if parseErr == nil {
			detail, detailErr := p.svc.GetEvalRunDetail(r.Context(), id)
			if detailErr == nil {
				data["Detail"] = detail
			} else if detailErr != service.ErrNotFound {
				return detailErr
			}
		}
	}

	return p.rd.render(w, r, "evals.html", "Evals", data)
}

// blogPage lists posts, or renders one with ?post=<slug>.
type blogPage struct {
	svc *service.Service
	rd  *renderer
}

func (p *blogPage) Render(w io.Writer, r *http.Request) error {
	if slug := r.URL.Query().Get("post"); slug != "" {
		post, err := p.svc.GetPost(r.Context(), slug)
		if err == nil {
			return p.rd.render(w, r, "blog_post.html", post.Title, map[string]any{"Post": post})
		}
		if err != service.ErrNotFound {
			return err
		}
		// Unknown slug falls through to the index.
	}

	posts, err := p.svc.ListPosts(r.Context())
	if err != nil {
		return err
	}
	return p.rd.render(w, r, "blog.html", "Blog", map[string]any{"Posts": posts})
}

// knobsPage renders the configuration glossary grouped by pipeline stage.
type knobsPage struct {
	svc *service.Service
	rd  *renderer
}

func (p *knobsPage) Render(w io.Writer, r *http.Request) error {
	return p.rd.render(w, r, "knobs.html", "Knobs", map[string]any{
		"Groups": p.svc.KnobGroups(),
	})
}

// embedPage is the full-page Grafana iframe behind /d/{uid}/{slug}.
type embedPage struct {
	rd   *renderer
	cfg  *Config
	uid  string
	slug string
}

func (p *embedPage) Render(w io.Writer, r *http.Request) error {
	src := ""
	if p.cfg.GrafanaURL != "" {
		src = strings.TrimRight(p.cfg.GrafanaURL, "/") + "/d/" + p.uid + "/" + p.slug + "?kiosk"
	}
	return p.rd.render(w, r, "embed.html", "Grafana", map[string]any{
		"UID":  p.uid,
		"Slug": p.slug,
		"Src":  src,
	})
}
