package recall

import (
	"context"

	"go.uber.org/zap"

	"github.com/kailas-cloud/searchgate/internal/domain/search/candidate"
	"github.com/kailas-cloud/searchgate/internal/domain/search/searchctx"
	"github.com/kailas-cloud/searchgate/internal/logger"
	"github.com/kailas-cloud/searchgate/internal/metrics"
	"github.com/kailas-cloud/searchgate/internal/repository/corpus"
)

// SourceKeyword tags candidates produced by the keyword path.
const SourceKeyword = "keyword"

// keywordSearcher is the consumer interface for BM25 corpus search.
type keywordSearcher interface {
	SearchBM25(ctx context.Context, tokens []string, topK int) ([]corpus.Hit, error)
}

// KeywordStrategy recalls candidates by BM25 keyword match over the
// analyzed query tokens. BM25 scores are already "higher is better" and
// are passed through unchanged; fusion is rank-based, so the scale
// difference against the vector path does not matter.
type KeywordStrategy struct {
	repo keywordSearcher
}

// NewKeywordStrategy creates a keyword recall strategy.
func NewKeywordStrategy(repo keywordSearcher) *KeywordStrategy {
	return &KeywordStrategy{repo: repo}
}

// Name implements Strategy.
func (s *KeywordStrategy) Name() string { return SourceKeyword }

// Recall implements Strategy. Returns nil when the context carries no
// tokens or when the backend fails.
func (s *KeywordStrategy) Recall(ctx context.Context, sctx *searchctx.Context, topK int) []candidate.Item {
	log := logger.FromContext(ctx)

	tokens := sctx.Tokens()
	if len(tokens) == 0 {
		log.Warn("keyword recall skipped: context has no tokens")
		return nil
	}

	hits, err := s.repo.SearchBM25(ctx, tokens, topK)
	if err != nil {
		metrics.RecallFailuresTotal.WithLabelValues(SourceKeyword).Inc()
		log.Error("keyword recall failed", zap.Error(err))
		return nil
	}

	items := make([]candidate.Item, 0, len(hits))
	for _, hit := range hits {
		items = append(items, candidate.New(hit.DocID, hit.Score, SourceKeyword, hit.Content, hit.Metadata))
	}

	metrics.RecallResults.WithLabelValues(SourceKeyword).Observe(float64(len(items)))
	return items
}
