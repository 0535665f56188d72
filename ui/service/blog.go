package service

import (
	"context"
	"errors"

	"github.com/tribridrag/tribridrag/store"
)

// ListPosts returns all blog posts, newest first.
func (s *Service) ListPosts(ctx context.Context) ([]*store.BlogPost, error) {
	return s.store.ListPosts(ctx)
}

// GetPost retrieves one blog post by slug.
func (s *Service) GetPost(ctx context.Context, slug string) (*store.BlogPost, error) {
	post, err := s.store.GetPost(ctx, slug)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return post, nil
}
