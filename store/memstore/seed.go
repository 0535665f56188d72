package memstore

import (
	"time"

	"github.com/google/uuid"

	"github.com/tribridrag/tribridrag/store"
)

// Seed fills the store with the demo content shown when cmd/tribridrag runs
// without a database: blog posts and two evaluation runs.
func (s *Store) Seed() {
	base := time.Date(2026, time.June, 2, 9, 0, 0, 0, time.UTC)

	s.AddPost(&store.BlogPost{
		Slug:        "introducing-tribrid-retrieval",
		Title:       "Introducing Tri-Brid Retrieval",
		Author:      "TriBridRAG Team",
		Summary:     "Why we fuse vector, keyword, and graph retrieval instead of picking one.",
		PublishedAt: base,
		Body: `Dense vectors recall paraphrases, BM25 nails exact terms, and the
knowledge graph walks relations neither can see. TriBridRAG runs all three and
fuses the candidate lists with reciprocal rank fusion.

## Why not just vectors?

Vector-only retrieval misses *negations* and rare identifiers. Keyword-only
retrieval misses paraphrase. Graph expansion recovers multi-hop context that
no single passage contains.

See the [knobs glossary](/knobs) for the parameters that shape fusion.`,
	})

	s.AddPost(&store.BlogPost{
		Slug:        "measuring-faithfulness",
		Title:       "Measuring Faithfulness Without a Gold Corpus",
		Author:      "Evaluation Group",
		Summary:     "How the evals tab scores answers against retrieved context.",
		PublishedAt: base.AddDate(0, 1, 10),
		Body: `Every answer is scored on three axes:

- **Faithfulness**: is every claim supported by a retrieved passage?
- **Answer relevance**: does the answer address the question asked?
- **Context precision**: how much of the retrieved context was actually needed?

Scores land in the [evals tab](/evals) after each nightly run.`,
	})

	s.AddPost(&store.BlogPost{
		Slug:        "grafana-dashboards-for-rag",
		Title:       "Watching a RAG Pipeline in Grafana",
		Author:      "TriBridRAG Team",
		Summary:     "The dashboards embedded in this demo and what to look for.",
		PublishedAt: base.AddDate(0, 2, 3),
		Body: `The [dashboard tab](/dashboard) embeds our Grafana overview: fusion
latency percentiles, per-retriever hit rates, and token spend. Any dashboard
can be opened full-page under ` + "`/d/<uid>/<slug>`" + `.`,
	})

	nightly := &store.EvalRun{
		ID:        uuid.MustParse("7d444840-9dc0-11d1-b245-5ffdce74fad2"),
		Name:      "nightly-2026-08-21",
		Dataset:   "hotpot-dev-200",
		CreatedAt: base.AddDate(0, 2, 19),
		Scores: store.EvalScores{
			Faithfulness:     0.91,
			AnswerRelevance:  0.87,
			ContextPrecision: 0.74,
		},
	}
	s.AddEvalRun(nightly, []*store.EvalCase{
		{
			ID:       uuid.New(),
			Question: "Which retriever leg finds multi-hop context?",
			Expected: "The graph leg.",
			Answer:   "Graph expansion recovers multi-hop context across related entities.",
			Scores:   store.EvalScores{Faithfulness: 0.97, AnswerRelevance: 0.95, ContextPrecision: 0.81},
		},
		{
			ID:       uuid.New(),
			Question: "What does rrf_k control?",
			Expected: "The reciprocal rank fusion constant.",
			Answer:   "rrf_k flattens or sharpens rank differences during fusion.",
			Scores:   store.EvalScores{Faithfulness: 0.92, AnswerRelevance: 0.88, ContextPrecision: 0.76},
		},
		{
			ID:       uuid.New(),
			Question: "Does TriBridRAG rerank with a cross-encoder?",
			Expected: "No, fusion replaces reranking in the default pipeline.",
			Answer:   "The default pipeline relies on fusion rather than a reranker.",
			Scores:   store.EvalScores{Faithfulness: 0.84, AnswerRelevance: 0.79, ContextPrecision: 0.64},
		},
	})

	weighted := &store.EvalRun{
		ID:        uuid.MustParse("8e555951-aed1-22e2-c356-600de085fbe3"),
		Name:      "fusion-ablation-weighted",
		Dataset:   "hotpot-dev-200",
		CreatedAt: base.AddDate(0, 2, 12),
		Scores: store.EvalScores{
			Faithfulness:     0.89,
			AnswerRelevance:  0.85,
			ContextPrecision: 0.79,
		},
	}
	s.AddEvalRun(weighted, []*store.EvalCase{
		{
			ID:       uuid.New(),
			Question: "Which retriever leg finds multi-hop context?",
			Expected: "The graph leg.",
			Answer:   "The graph retriever, by expanding entity neighborhoods.",
			Scores:   store.EvalScores{Faithfulness: 0.95, AnswerRelevance: 0.93, ContextPrecision: 0.85},
		},
		{
			ID:       uuid.New(),
			Question: "What happens when graph_weight is zero?",
			Expected: "Graph candidates are dropped from fusion.",
			Answer:   "Weighted fusion ignores graph candidates entirely.",
			Scores:   store.EvalScores{Faithfulness: 0.83, AnswerRelevance: 0.77, ContextPrecision: 0.73},
		},
	})
}
