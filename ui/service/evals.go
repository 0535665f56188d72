package service

import (
	"context"
	"errors"

	"github.com/google/uuid"

	"github.com/tribridrag/tribridrag/store"
)

// ListEvalRuns returns one page of evaluation runs, newest first.
func (s *Service) ListEvalRuns(ctx context.Context, limit, offset int) (*EvalRunList, error) {
	limit = ValidateLimit(limit)
	offset = ValidateOffset(offset)

	runs, total, err := s.store.ListEvalRuns(ctx, store.EvalRunListParams{
		Limit:  limit,
		Offset: offset,
	})
	if err != nil {
		return nil, err
	}

	return &EvalRunList{
		Runs:       runs,
		TotalCount: total,
		HasMore:    offset+len(runs) < total,
	}, nil
}

// GetEvalRunDetail returns one run with its per-case breakdown and the mean
// scores recomputed from the cases.
func (s *Service) GetEvalRunDetail(ctx context.Context, id uuid.UUID) (*EvalRunDetail, error) {
	run, err := s.store.GetEvalRun(ctx, id)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}

	cases, err := s.store.ListEvalCases(ctx, id)
	if err != nil {
		return nil, err
	}

	detail := &EvalRunDetail{Run: run, Cases: cases}
	if len(cases) > 0 {
		var sum store.EvalScores
		for _, c := range cases {
			sum.Faithfulness += c.Scores.Faithfulness
			sum.AnswerRelevance += c.Scores.AnswerRelevance
			sum.ContextPrecision += c.Scores.ContextPrecision
		}
		n := float64(len(cases))
		detail.CaseMeans = store.EvalScores{
			Faithfulness:     sum.Faithfulness / n,
			AnswerRelevance:  sum.AnswerRelevance / n,
			ContextPrecision: sum.ContextPrecision / n,
		}
	}

	return detail, nil
}
