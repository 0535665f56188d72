package service

import (
	"context"

	"github.com/tribridrag/tribridrag"
	"github.com/tribridrag/tribridrag/knobs"
	"github.com/tribridrag/tribridrag/store"
)

// Pagination bounds.
const (
	MaxLimit     = 200
	DefaultLimit = 25
)

// Backend is the slice of the backend API client the UI consumes.
// *tribridrag.Client satisfies it.
type Backend interface {
	Query(ctx context.Context, req tribridrag.QueryRequest) (*tribridrag.Answer, error)
	Neighborhood(ctx context.Context, req tribridrag.NeighborhoodRequest) (*tribridrag.Neighborhood, error)
	Health(ctx context.Context) (*tribridrag.Health, error)
}

// Service provides demo UI operations.
type Service struct {
	store    store.Store
	backend  Backend
	glossary *knobs.Glossary
}

// New creates a new Service.
func New(st store.Store, backend Backend, glossary *knobs.Glossary) *Service {
	if glossary == nil {
		glossary = knobs.Default()
	}
	return &Service{
		store:    st,
		backend:  backend,
		glossary: glossary,
	}
}

// ValidateLimit clamps a page size into [1, MaxLimit].
func ValidateLimit(limit int) int {
	if limit < 1 {
		return DefaultLimit
	}
	if limit > MaxLimit {
		return MaxLimit
	}
	return limit
}

// ValidateOffset clamps an offset to be non-negative.
func ValidateOffset(offset int) int {
	if offset < 0 {
		return 0
	}
	return offset
}
