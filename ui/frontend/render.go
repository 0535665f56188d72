package frontend

import (
	"embed"
	"fmt"
	"html/template"
	"io"
	"io/fs"
	"net/http"
	"strings"
	"time"
)

//go:embed templates/*
var templatesFS embed.FS

//go:embed static/*
var staticFS embed.FS

// NavItem is one tab link in the navigation shell.
type NavItem struct {
	Path   string
	Label  string
	Active bool
}

// PageData is the envelope every template receives.
type PageData struct {
	Title       string
	BasePath    string
	CurrentPath string
	ReadOnly    bool
	// RefreshSeconds, when positive, makes the page reload itself.
	// Only the dashboard opts in.
	RefreshSeconds int
	Nav            []NavItem
	Data           any
}

// renderer handles template rendering. The base template (layout + nav) is
// parsed once; page templates are parsed into a clone per render so their
// "content" blocks cannot collide.
type renderer struct {
	baseTemplate *template.Template
	templatesFS  fs.FS
	config       *Config
	nav          []NavItem
}

// newRenderer creates a renderer with nav links derived from the route table.
func newRenderer(cfg *Config, table []RouteEntry) *renderer {
	base := template.Must(template.New("").
		Funcs(templateFuncs()).
		ParseFS(templatesFS, "templates/base.html"))

	nav := make([]NavItem, 0, len(table))
	for _, entry := range table {
		nav = append(nav, NavItem{Path: entry.Path, Label: entry.Label})
	}

	return &renderer{
		baseTemplate: base,
		templatesFS:  templatesFS,
		config:       cfg,
		nav:          nav,
	}
}

// render renders a page template inside the base layout.
func (rd *renderer) render(w io.Writer, req *http.Request, name, title string, data any) error {
	nav := make([]NavItem, len(rd.nav))
	copy(nav, rd.nav)
	for i := range nav {
		nav[i].Active = nav[i].Path == req.URL.Path
	}

	pageData := PageData{
		Title:       title,
		BasePath:    rd.config.BasePath,
		CurrentPath: req.URL.Path,
		ReadOnly:    rd.config.ReadOnly,
		Nav:         nav,
		Data:        data,
	}
	if req.URL.Path == RootRedirectTarget && rd.config.RefreshInterval > 0 {
		pageData.RefreshSeconds = int(rd.config.RefreshInterval / time.Second)
	}

	tmpl, err := rd.baseTemplate.Clone()
	if err != nil {
		return fmt.Errorf("clone template: %w", err)
	}

	pageTemplatePath := "templates/" + name
	if _, err := tmpl.ParseFS(rd.templatesFS, pageTemplatePath); err != nil {
		return fmt.Errorf("parse page template %s: %w", pageTemplatePath, err)
	}

	return tmpl.ExecuteTemplate(w, "base", pageData)
}

// Template helper functions

func templateFuncs() template.FuncMap {
	return template.FuncMap{
		"formatTime":    formatTime,
		"formatTimeAgo": formatTimeAgo,
		"formatScore":   formatScore,
		"scoreColor":    scoreColor,
		"retrieverTag":  retrieverTag,
		"truncate":      truncate,
		"markdown":      markdown,
		"shortID":       shortID,
		"add":           add,
		"sub":           sub,
	}
}

func formatTime(t time.Time) string {
	if t.IsZero() {
		return "-"
	}
	return t.Format("2006-01-02 15:04:05")
}

func formatTimeAgo(t time.Time) string {
	if t.IsZero() {
		return "-"
	}
	d := time.Since(t)
	switch {
	case d < time.Minute:
		return "just now"
	case d < time.Hour:
		mins := int(d.Minutes())
		if mins == 1 {
			return "1 minute ago"
		}
		return fmt.Sprintf("%d minutes ago", mins)
	case d < 24*time.Hour:
		hours := int(d.Hours())
		if hours == 1 {
			return "1 hour ago"
		}
		return fmt.Sprintf("%d hours ago", hours)
	}
	days := int(d.Hours() / 24)
	if days == 1 {
		return "1 day ago"
	}
	return fmt.Sprintf("%d days ago", days)
}

// formatScore renders a [0,1] metric as a percentage.
func formatScore(s float64) string {
	return fmt.Sprintf("%.1f%%", s*100)
}

func scoreColor(s float64) string {
	switch {
	case s >= 0.9:
		return "score-good"
	case s >= 0.75:
		return "score-ok"
	default:
		return "score-bad"
	}
}

func retrieverTag(name string) string {
	switch name {
	case "vector":
		return "tag-vector"
	case "keyword":
		return "tag-keyword"
	case "graph":
		return "tag-graph"
	default:
		return "tag-other"
	}
}

// truncate shortens a value to n runes, never splitting a multibyte rune.
func truncate(n int, v any) string {
	var s string
	switch val := v.(type) {
	case string:
		s = val
	case fmt.Stringer:
		s = val.String()
	default:
		s = fmt.Sprintf("%v", v)
	}
	runes := []rune(s)
	if len(runes) <= n {
		return s
	}
	if n <= 3 {
		return string(runes[:n])
	}
	return string(runes[:n-3]) + "..."
}

func add(a, b int) int { return a + b }

func sub(a, b int) int { return a - b }

// staticHandler serves the embedded static tree.
func staticHandler() http.Handler {
	sub, _ := fs.Sub(staticFS, "static")
	return http.StripPrefix("/static/", http.FileServer(http.FS(sub)))
}

// shortID shortens a UUID-ish string for display.
func shortID(s string) string {
	if i := strings.IndexByte(s, '-'); i > 0 {
		return s[:i]
	}
	return s
}
