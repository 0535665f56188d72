// Package ui provides the embedded web UI for the TriBridRAG demo.
//
// The package provides a single http.Handler for the SSR frontend. Every tab
// route is supervised by its own fault boundary: a tab that fails to render
// serves a fallback panel with a retry control while the rest of the UI keeps
// working.
//
// # Quick Start
//
//	pool, _ := pgxpool.New(ctx, os.Getenv("DATABASE_URL"))
//	st := pgxstore.New(pool)
//
//	client, _ := tribridrag.NewClient(tribridrag.Config{
//	    BaseURL: os.Getenv("TRIBRIDRAG_API_URL"),
//	    APIKey:  os.Getenv("TRIBRIDRAG_API_KEY"),
//	})
//
//	mux := http.NewServeMux()
//	mux.Handle("/", ui.Handler(st, client, nil, nil))
//
//	http.ListenAndServe(":8080", mux)
//
// # Framework Integration
//
// The handler is a standard http.Handler, compatible with any Go framework:
//
//	// Standard library, mounted under a prefix
//	http.Handle("/ui/", http.StripPrefix("/ui", ui.Handler(st, client, nil, cfg)))
//
//	// Chi
//	r.Mount("/ui", ui.Handler(st, client, nil, cfg))
//
// When mounted under a prefix, set Config.BasePath to the same prefix so
// navigation links resolve.
package ui
