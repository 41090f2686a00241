// Package rerank rescores fused candidates with an external cross-encoder
// model. Model failures degrade to the fused order; an out-of-order result
// from our own sorting is a programming error and fails the request.
package rerank

import (
	"context"
	"sort"

	"go.uber.org/zap"

	"github.com/kailas-cloud/searchgate/internal/domain"
	"github.com/kailas-cloud/searchgate/internal/domain/search/candidate"
	"github.com/kailas-cloud/searchgate/internal/logger"
)

// Model scores query/document pairs. Scores are returned in document order,
// higher meaning more relevant.
type Model interface {
	Scores(ctx context.Context, query string, documents []string) ([]float64, error)
	Name() string
}

// Service reranks candidates with a cross-encoder model.
type Service struct {
	model Model
}

// New creates a rerank service.
func New(model Model) *Service {
	return &Service{model: model}
}

// Predict scores candidates against the query and returns them sorted by
// final score descending. When the model fails or returns a malformed
// response, the fused order is preserved with original scores (degrade, not
// fail). The returned order is validated non-increasing before returning;
// a violation is domain.ErrRerankOrdering.
func (s *Service) Predict(ctx context.Context, query string, candidates []candidate.Item) ([]candidate.Scored, error) {
	if len(candidates) == 0 {
		return nil, nil
	}

	log := logger.FromContext(ctx)

	documents := make([]string, len(candidates))
	for i := range candidates {
		documents[i] = candidates[i].Content()
	}

	scores, err := s.model.Scores(ctx, query, documents)
	if err != nil || len(scores) != len(candidates) {
		log.Error("rerank model failed, keeping fused order",
			zap.String("model", s.model.Name()),
			zap.Int("candidates", len(candidates)),
			zap.Error(err),
		)
		return Fallback(candidates), nil
	}

	scored := make([]candidate.Scored, len(candidates))
	for i := range candidates {
		c := &candidates[i]
		modelScore := scores[i]
		scored[i] = candidate.NewScored(
			c.DocID(), modelScore, c.Score(), &modelScore, c.Content(), c.Metadata(),
		)
	}

	sort.SliceStable(scored, func(i, j int) bool {
		return scored[i].FinalScore() > scored[j].FinalScore()
	})

	if err := validateDescending(scored); err != nil {
		return nil, err
	}

	return scored, nil
}

// Fallback converts candidates to scored items in their current order,
// final score = original score, no model score attached.
func Fallback(candidates []candidate.Item) []candidate.Scored {
	scored := make([]candidate.Scored, len(candidates))
	for i := range candidates {
		c := &candidates[i]
		scored[i] = candidate.NewScored(c.DocID(), c.Score(), c.Score(), nil, c.Content(), c.Metadata())
	}
	return scored
}

func validateDescending(scored []candidate.Scored) error {
	for i := 1; i < len(scored); i++ {
		if scored[i].FinalScore() > scored[i-1].FinalScore() {
			return domain.ErrRerankOrdering
		}
	}
	return nil
}
