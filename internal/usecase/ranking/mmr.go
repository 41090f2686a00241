package ranking

import (
	"github.com/kailas-cloud/searchgate/internal/domain/rules"
	"github.com/kailas-cloud/searchgate/internal/domain/search/candidate"
)

// Metadata similarity weights. Two documents sharing a category are more
// redundant than two sharing only a source; the sum is capped at 1.
const (
	categoryWeight = 0.6
	sourceWeight   = 0.4
)

// mmrReorder greedily selects up to topN items maximizing
//
//	lambda*relevance(item) - (1-lambda)*maxSimilarity(item, selected)
//
// lambda=1 keeps pure relevance order, lambda=0 keeps relevance only for the
// first pick (an empty selection has zero similarity) and then maximizes
// diversity. Ties keep the earliest candidate in current list order, so the
// reorder is deterministic. Out-of-range lambda falls back to the default.
func mmrReorder(items []candidate.Item, lambda float64, topN int) []candidate.Item {
	if len(items) == 0 {
		return items
	}
	if lambda < 0 || lambda > 1 {
		lambda = rules.DefaultLambda
	}
	if topN <= 0 || topN > len(items) {
		topN = len(items)
	}

	selected := make([]candidate.Item, 0, topN)
	remaining := make([]candidate.Item, len(items))
	copy(remaining, items)

	for len(selected) < topN && len(remaining) > 0 {
		bestIdx := 0
		bestScore := mmrScore(&remaining[0], selected, lambda)

		for i := 1; i < len(remaining); i++ {
			// Strict > keeps the first maximizer on ties.
			if score := mmrScore(&remaining[i], selected, lambda); score > bestScore {
				bestScore = score
				bestIdx = i
			}
		}

		selected = append(selected, remaining[bestIdx])
		remaining = append(remaining[:bestIdx], remaining[bestIdx+1:]...)
	}

	return selected
}

func mmrScore(item *candidate.Item, selected []candidate.Item, lambda float64) float64 {
	maxSim := 0.0
	for i := range selected {
		if sim := metadataSimilarity(item, &selected[i]); sim > maxSim {
			maxSim = sim
		}
	}
	return lambda*item.Score() - (1-lambda)*maxSim
}

// metadataSimilarity is a cheap proxy for content similarity: shared
// category contributes 0.6, shared source 0.4, capped at 1.0. Documents
// without the respective metadata field never match on it.
func metadataSimilarity(a, b *candidate.Item) float64 {
	sim := 0.0

	if ca, cb := a.MetadataValue("category"), b.MetadataValue("category"); ca != "" && ca == cb {
		sim += categoryWeight
	}
	if sa, sb := a.MetadataValue("source"), b.MetadataValue("source"); sa != "" && sa == sb {
		sim += sourceWeight
	}

	if sim > 1 {
		sim = 1
	}
	return sim
}
