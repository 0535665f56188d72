// Package service provides the shared business logic for the TriBridRAG
// demo UI.
//
// The service layer is HTTP-agnostic: frontend page units call it and render
// whatever DTOs it returns. It owns pagination bounds, dashboard aggregation,
// and the chat round trip to the backend API.
//
// # Design
//
// The service layer:
//   - Uses the store.Store interface for all persistence
//   - Talks to the backend only through the Backend interface
//   - Returns DTOs shaped for template rendering
//   - Never renders HTML and never touches http.Request
package service
