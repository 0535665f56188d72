// Package tribridrag provides the Go client for the TriBridRAG backend API
// and hosts the demo web UI under ui/.
//
// TriBridRAG answers questions by fusing three retrievers (vector, keyword,
// graph) before generation. This package does not implement any of that; it
// talks to a running backend over HTTP.
//
// # Quick Start
//
//	client, err := tribridrag.NewClient(tribridrag.Config{
//	    BaseURL: "http://localhost:9090",
//	    APIKey:  os.Getenv("TRIBRIDRAG_API_KEY"),
//	})
//	if err != nil {
//	    log.Fatal(err)
//	}
//
//	answer, err := client.Query(ctx, tribridrag.QueryRequest{
//	    Question: "How does graph fusion affect context precision?",
//	})
//
// The demo UI is a standard http.Handler; see the ui package.
package tribridrag
