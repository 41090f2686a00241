package gateway

import (
	"context"

	"github.com/kailas-cloud/searchgate/internal/domain/search/candidate"
)

// Embedder vectorizes query text into embeddings.
type Embedder interface {
	Embed(ctx context.Context, text string) ([]float32, error)
}

// Tokenizer splits query text into normalized keyword terms.
type Tokenizer interface {
	Tokenize(ctx context.Context, text string) ([]string, error)
}

// Fuser merges ranked candidate lists into a single list.
type Fuser interface {
	Merge(lists [][]candidate.Item, topN int) ([]candidate.Item, error)
}

// Reranker rescores fused candidates with a cross-encoder.
type Reranker interface {
	Predict(ctx context.Context, query string, candidates []candidate.Item) ([]candidate.Scored, error)
}

// Ranker applies business ranking rules to the candidate list.
type Ranker interface {
	Apply(ctx context.Context, query string, items []candidate.Item, topN int) []candidate.Item
}
