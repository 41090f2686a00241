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

// SourceVector tags candidates produced by the vector path.
const SourceVector = "vector"

// vectorSearcher is the consumer interface for KNN corpus search.
type vectorSearcher interface {
	SearchKNN(ctx context.Context, vector []float32, topK int) ([]corpus.Hit, error)
}

// VectorStrategy recalls candidates by embedding similarity. The index
// reports a distance per hit; the strategy converts it to a similarity
// score 1/(1+d) so that higher means more relevant.
type VectorStrategy struct {
	repo vectorSearcher
}

// NewVectorStrategy creates a vector recall strategy.
func NewVectorStrategy(repo vectorSearcher) *VectorStrategy {
	return &VectorStrategy{repo: repo}
}

// Name implements Strategy.
func (s *VectorStrategy) Name() string { return SourceVector }

// Recall implements Strategy. Returns nil when the context carries no
// query vector or when the backend fails.
func (s *VectorStrategy) Recall(ctx context.Context, sctx *searchctx.Context, topK int) []candidate.Item {
	log := logger.FromContext(ctx)

	vector := sctx.Vector()
	if len(vector) == 0 {
		log.Warn("vector recall skipped: context has no query vector")
		return nil
	}

	hits, err := s.repo.SearchKNN(ctx, vector, topK)
	if err != nil {
		metrics.RecallFailuresTotal.WithLabelValues(SourceVector).Inc()
		log.Error("vector recall failed", zap.Error(err))
		return nil
	}

	items := make([]candidate.Item, 0, len(hits))
	for _, hit := range hits {
		similarity := 1.0 / (1.0 + hit.Score)
		items = append(items, candidate.New(hit.DocID, similarity, SourceVector, hit.Content, hit.Metadata))
	}

	metrics.RecallResults.WithLabelValues(SourceVector).Observe(float64(len(items)))
	return items
}
