package service

import (
	"context"

	"github.com/tribridrag/tribridrag/store"
)

// GetDashboardStats returns aggregated statistics for the dashboard tab.
// A down backend is reported via BackendHealthy, not as an error: the
// dashboard must render even when the backend is unreachable.
func (s *Service) GetDashboardStats(ctx context.Context) (*DashboardStats, error) {
	stats := &DashboardStats{}

	if health, err := s.backend.Health(ctx); err == nil {
		stats.BackendHealthy = health.Healthy()
		stats.BackendVersion = health.Version
		stats.Retrievers = health.Retrievers
	}

	sessions, totalSessions, err := s.store.ListSessions(ctx, store.SessionListParams{Limit: 5})
	if err != nil {
		return nil, err
	}
	stats.TotalSessions = totalSessions
	stats.RecentSessions = sessions

	posts, err := s.store.ListPosts(ctx)
	if err != nil {
		return nil, err
	}
	stats.TotalPosts = len(posts)

	runs, totalRuns, err := s.store.ListEvalRuns(ctx, store.EvalRunListParams{Limit: 5})
	if err != nil {
		return nil, err
	}
	stats.TotalEvalRuns = totalRuns
	stats.RecentRuns = runs
	if len(runs) > 0 {
		scores := runs[0].Scores
		stats.LatestScores = &scores
		stats.LatestRunName = runs[0].Name
	}

	return stats, nil
}
