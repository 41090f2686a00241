// Package fusion merges ranked candidate lists from independent recall
// strategies into one list via Reciprocal Rank Fusion. RRF only looks at
// rank positions, never at absolute scores, which is what makes combining a
// cosine similarity with a BM25 score well-defined.
package fusion

import (
	"sort"

	"github.com/kailas-cloud/searchgate/internal/domain"
	"github.com/kailas-cloud/searchgate/internal/domain/search/candidate"
)

// DefaultK is the RRF constant (standard value from Cormack et al. 2009).
const DefaultK = 60

// RRF is a Reciprocal Rank Fusion merger.
type RRF struct {
	k int
}

// NewRRF creates an RRF merger. k <= 0 falls back to DefaultK.
func NewRRF(k int) *RRF {
	if k <= 0 {
		k = DefaultK
	}
	return &RRF{k: k}
}

// Merge fuses the candidate lists into one list of at most topN items.
//
// Each occurrence of a doc id at 0-based rank r contributes 1/(k+r) to its
// fused score. The first list in which a doc id appears determines the kept
// content/metadata snapshot. Output is sorted by fused score descending;
// ties resolve in favor of the doc id seen earlier across the concatenation
// of the input lists, so identical inputs always produce identical output.
//
// A candidate without a doc id violates the recall strategy contract and is
// reported as a fatal domain.ErrMissingDocID.
func (f *RRF) Merge(lists [][]candidate.Item, topN int) ([]candidate.Item, error) {
	type fused struct {
		item  candidate.Item
		score float64
	}

	index := make(map[string]int)
	merged := make([]*fused, 0)

	for _, list := range lists {
		for rank, item := range list {
			if item.DocID() == "" {
				return nil, domain.ErrMissingDocID
			}

			increment := 1.0 / float64(f.k+rank)

			if pos, ok := index[item.DocID()]; ok {
				merged[pos].score += increment
				continue
			}

			// First sighting keeps the snapshot and fixes the tie-break order.
			index[item.DocID()] = len(merged)
			merged = append(merged, &fused{item: item, score: increment})
		}
	}

	// Stable sort preserves first-seen order for equal scores.
	sort.SliceStable(merged, func(i, j int) bool {
		return merged[i].score > merged[j].score
	})

	if topN > 0 && len(merged) > topN {
		merged = merged[:topN]
	}

	results := make([]candidate.Item, len(merged))
	for i, m := range merged {
		results[i] = m.item.WithScore(m.score)
	}

	return results, nil
}
