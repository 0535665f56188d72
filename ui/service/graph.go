package service

import (
	"context"

	"github.com/tribridrag/tribridrag"
)

// Graph exploration bounds.
const (
	MaxGraphDepth     = 4
	DefaultGraphDepth = 1
)

// Explore fetches the neighborhood around a seed entity from the backend.
func (s *Service) Explore(ctx context.Context, seed string, depth int) (*GraphView, error) {
	if depth < 1 {
		depth = DefaultGraphDepth
	}
	if depth > MaxGraphDepth {
		depth = MaxGraphDepth
	}

	n, err := s.backend.Neighborhood(ctx, tribridrag.NeighborhoodRequest{
		Seed:  seed,
		Depth: depth,
	})
	if err != nil {
		return nil, err
	}

	return &GraphView{
		Seed:      n.Seed,
		Depth:     depth,
		Nodes:     n.Nodes,
		Edges:     n.Edges,
		NodeCount: len(n.Nodes),
		EdgeCount: len(n.Edges),
	}, nil
}
