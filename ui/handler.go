package ui

import (
	"net/http"

	"github.com/tribridrag/tribridrag/knobs"
	"github.com/tribridrag/tribridrag/store"
	"github.com/tribridrag/tribridrag/ui/frontend"
	"github.com/tribridrag/tribridrag/ui/service"
)

// Handler returns an http.Handler for the SSR demo frontend.
//
// The backend parameter is the TriBridRAG API client used for chat, graph
// exploration, and backend health. A nil glossary falls back to the knob
// glossary embedded in the knobs package.
//
// Usage:
//
//	http.Handle("/ui/", http.StripPrefix("/ui", ui.Handler(st, client, nil, cfg)))
//	r.Mount("/ui", ui.Handler(st, client, nil, cfg))
func Handler(st store.Store, backend service.Backend, glossary *knobs.Glossary, cfg *Config) http.Handler {
	if cfg == nil {
		cfg = DefaultConfig()
	} else {
		cfg.applyDefaults()
	}

	// Validate configuration (panic on invalid config as this is a programmer error)
	if err := cfg.validate(); err != nil {
		panic("ui: invalid configuration: " + err.Error())
	}

	svc := service.New(st, backend, glossary)
	return frontend.NewRouter(svc, &frontend.Config{
		BasePath:             cfg.BasePath,
		GrafanaURL:           cfg.GrafanaURL,
		GrafanaDashboardUID:  cfg.GrafanaDashboardUID,
		GrafanaDashboardSlug: cfg.GrafanaDashboardSlug,
		ReadOnly:             cfg.ReadOnly,
		PageSize:             cfg.PageSize,
		RefreshInterval:      cfg.RefreshInterval,
		Logger:               cfg.Logger,
	})
}
