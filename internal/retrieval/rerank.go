package retrieval

//go:generate go run go.uber.org/mock/mockgen@latest -destination=mocks/mock_scorer.go -package=mocks lorekeeper/internal/retrieval Scorer

import (
	"context"
	"fmt"
	"sort"
)

// Scorer scores documents against a query, higher is more relevant. The
// returned slice is in document order, one score per input document.
type Scorer interface {
	ScoreAll(ctx context.Context, query string, documents []string) ([]float64, error)
}

// MaybeRerank reorders candidates by cross-encoder score and truncates to
// topN. With a nil scorer or no candidates, the input order is kept and only
// truncated; the reranker is an optional refinement, never a requirement.
// The sort is stable so equal scores preserve the incoming relevance order.
func MaybeRerank(ctx context.Context, scorer Scorer, query string, candidates []Candidate, topN int) ([]Candidate, error) {
	if len(candidates) == 0 {
		return candidates, nil
	}
	if scorer == nil {
		return truncate(candidates, topN), nil
	}

	documents := make([]string, len(candidates))
	for i, candidate := range candidates {
		documents[i] = candidate.Text
	}

	scores, err := scorer.ScoreAll(ctx, query, documents)
	if err != nil {
		return nil, fmt.Errorf("rerank failed: %w", err)
	}
	if len(scores) != len(candidates) {
		return nil, fmt.Errorf("rerank returned %d scores for %d candidates", len(scores), len(candidates))
	}

	reranked := make([]Candidate, len(candidates))
	copy(reranked, candidates)
	for i := range reranked {
		reranked[i].Score = scores[i]
	}
	sort.SliceStable(reranked, func(i, j int) bool {
		return reranked[i].Score > reranked[j].Score
	})

	return truncate(reranked, topN), nil
}

func truncate(candidates []Candidate, topN int) []Candidate {
	if topN > 0 && len(candidates) > topN {
		return candidates[:topN]
	}
	return candidates
}
