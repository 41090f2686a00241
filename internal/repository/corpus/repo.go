package corpus

import (
	"context"
	"fmt"
	"strings"

	"github.com/kailas-cloud/searchgate/internal/db"
)

// Document fields returned for every hit. The index stores content as a
// TEXT field and category/source as TAG fields used by the diversity stage.
var returnFields = []string{"content", "category", "source"}

// Hit is a raw corpus search hit. Score carries whatever the index reported:
// a vector distance for KNN, a BM25 score for text search. Recall strategies
// own any conversion to a "higher is better" scale.
type Hit struct {
	DocID    string
	Score    float64
	Content  string
	Metadata map[string]string
}

// store is the consumer interface for corpus search operations.
type store interface {
	SearchKNN(ctx context.Context, q *db.KNNQuery) (*db.SearchResult, error)
	SearchBM25(ctx context.Context, q *db.TextQuery) (*db.SearchResult, error)
}

// Repo reads the document corpus through FT indexes.
type Repo struct {
	store     store
	indexName string
	keyPrefix string
}

// New creates a corpus repository over the given FT index.
func New(s store, indexName, keyPrefix string) *Repo {
	return &Repo{store: s, indexName: indexName, keyPrefix: keyPrefix}
}

// SearchKNN returns the topK nearest documents to the query vector.
// Hit scores are raw distances.
func (r *Repo) SearchKNN(ctx context.Context, vector []float32, topK int) ([]Hit, error) {
	q := &db.KNNQuery{
		IndexName:    r.indexName,
		Vector:       vector,
		K:            topK,
		ReturnFields: returnFields,
	}

	sr, err := r.store.SearchKNN(ctx, q)
	if err != nil {
		return nil, fmt.Errorf("search knn %s: %w", r.indexName, err)
	}

	return r.parseHits(sr), nil
}

// SearchBM25 returns the topK best keyword matches for the given tokens.
// Hit scores are BM25 scores.
func (r *Repo) SearchBM25(ctx context.Context, tokens []string, topK int) ([]Hit, error) {
	q := &db.TextQuery{
		IndexName:    r.indexName,
		Tokens:       tokens,
		TopK:         topK,
		ReturnFields: returnFields,
	}

	sr, err := r.store.SearchBM25(ctx, q)
	if err != nil {
		return nil, fmt.Errorf("search bm25 %s: %w", r.indexName, err)
	}

	return r.parseHits(sr), nil
}

func (r *Repo) parseHits(sr *db.SearchResult) []Hit {
	if sr == nil || len(sr.Entries) == 0 {
		return nil
	}

	hits := make([]Hit, 0, len(sr.Entries))
	for _, entry := range sr.Entries {
		hit := Hit{
			DocID: strings.TrimPrefix(entry.Key, r.keyPrefix),
			Score: entry.Score,
		}

		for k, v := range entry.Fields {
			if k == "content" {
				hit.Content = v
				continue
			}
			if hit.Metadata == nil {
				hit.Metadata = make(map[string]string)
			}
			hit.Metadata[k] = v
		}

		hits = append(hits, hit)
	}

	return hits
}
