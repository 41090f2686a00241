// Package gateway orchestrates the search pipeline: context build, parallel
// recall, fusion, optional rerank, and optional rule-based ranking.
package gateway

import (
	"context"
	"fmt"
	"time"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/kailas-cloud/searchgate/internal/domain"
	"github.com/kailas-cloud/searchgate/internal/domain/search/candidate"
	"github.com/kailas-cloud/searchgate/internal/domain/search/request"
	"github.com/kailas-cloud/searchgate/internal/domain/search/result"
	"github.com/kailas-cloud/searchgate/internal/domain/search/searchctx"
	"github.com/kailas-cloud/searchgate/internal/logger"
	"github.com/kailas-cloud/searchgate/internal/metrics"
	"github.com/kailas-cloud/searchgate/internal/recall"
)

const mergedStatKey = "merged"

// Service runs search requests through the retrieval pipeline.
// Reranker and Ranker are optional; a nil value disables that stage
// regardless of per-request flags.
type Service struct {
	embed      Embedder
	tokens     Tokenizer
	strategies []recall.Strategy
	fuser      Fuser
	reranker   Reranker
	ranker     Ranker
}

// New creates a search gateway service.
func New(
	embed Embedder, tokens Tokenizer, strategies []recall.Strategy,
	fuser Fuser, reranker Reranker, ranker Ranker,
) *Service {
	return &Service{
		embed:      embed,
		tokens:     tokens,
		strategies: strategies,
		fuser:      fuser,
		reranker:   reranker,
		ranker:     ranker,
	}
}

// Search executes the full pipeline for a validated request.
// Only context-build failures and ordering/programming errors surface;
// recall and rerank failures degrade inside their stages.
func (s *Service) Search(ctx context.Context, req *request.Request) (result.Result, error) {
	start := time.Now()
	log := logger.FromContext(ctx)

	sctx, err := s.buildContext(ctx, req)
	if err != nil {
		return result.Result{}, err
	}

	lists, stats := s.parallelRecall(ctx, &sctx, req.RecallTopK())

	poolSize := req.TopN()
	if s.rerankActive(req) {
		poolSize = 2 * req.TopN()
	}

	fuseStart := time.Now()
	merged, err := s.fuser.Merge(lists, poolSize)
	metrics.SearchStageDuration.WithLabelValues("fusion").Observe(time.Since(fuseStart).Seconds())
	if err != nil {
		return result.Result{}, fmt.Errorf("fuse candidates: %w", err)
	}
	stats[mergedStatKey] = len(merged)

	items := merged
	if s.rerankActive(req) {
		items, err = s.rerankStage(ctx, req, merged)
		if err != nil {
			return result.Result{}, err
		}
	}

	if s.ranker != nil && req.RankingEnabled() {
		rankStart := time.Now()
		items = s.ranker.Apply(ctx, req.Query(), items, req.TopN())
		metrics.SearchStageDuration.WithLabelValues("ranking").Observe(time.Since(rankStart).Seconds())
	}

	if len(items) > req.TopN() {
		items = items[:req.TopN()]
	}

	res := buildResult(req.Query(), items, time.Since(start), stats)

	log.Info("search completed",
		zap.String("query", req.Query()),
		zap.Int("total", res.Total()),
		zap.Float64("took_ms", res.TookMS()),
	)

	return res, nil
}

func (s *Service) rerankActive(req *request.Request) bool {
	return s.reranker != nil && req.RerankEnabled()
}

// buildContext embeds and tokenizes the query concurrently. Both paths are
// mandatory: recall cannot run without a vector and keyword terms, so any
// failure here is fatal.
func (s *Service) buildContext(ctx context.Context, req *request.Request) (searchctx.Context, error) {
	start := time.Now()
	defer func() {
		metrics.SearchStageDuration.WithLabelValues("context").Observe(time.Since(start).Seconds())
	}()

	var (
		vector []float32
		tokens []string
	)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		v, err := s.embed.Embed(gctx, req.Query())
		if err != nil {
			return fmt.Errorf("embed query: %w", err)
		}
		vector = v
		return nil
	})
	g.Go(func() error {
		t, err := s.tokens.Tokenize(gctx, req.Query())
		if err != nil {
			return fmt.Errorf("tokenize query: %w", err)
		}
		tokens = t
		return nil
	})
	if err := g.Wait(); err != nil {
		return searchctx.Context{}, fmt.Errorf("%w: %w", domain.ErrContextBuild, err)
	}

	sctx, err := searchctx.New(req.Query(), vector, tokens)
	if err != nil {
		return searchctx.Context{}, fmt.Errorf("%w: %w", domain.ErrContextBuild, err)
	}

	return sctx.WithUser(req.UserID(), req.SessionID()), nil
}

// parallelRecall fans out to all strategies and collects results by strategy
// index so the output order is stable regardless of completion order.
// Strategies isolate their own failures and return empty lists, so the
// errgroup here only bounds the fan-out.
func (s *Service) parallelRecall(
	ctx context.Context, sctx *searchctx.Context, topK int,
) ([][]candidate.Item, map[string]int) {
	start := time.Now()
	defer func() {
		metrics.SearchStageDuration.WithLabelValues("recall").Observe(time.Since(start).Seconds())
	}()

	lists := make([][]candidate.Item, len(s.strategies))

	g, gctx := errgroup.WithContext(ctx)
	for i, strat := range s.strategies {
		g.Go(func() error {
			lists[i] = strat.Recall(gctx, sctx, topK)
			return nil
		})
	}
	_ = g.Wait()

	stats := make(map[string]int, len(s.strategies)+1)
	for i, strat := range s.strategies {
		stats[strat.Name()] = len(lists[i])
	}

	return lists, stats
}

// rerankStage rescores the fused pool and truncates to topN. Model failures
// degrade inside the reranker; an ordering violation in its output is a
// programming error and surfaces.
func (s *Service) rerankStage(
	ctx context.Context, req *request.Request, merged []candidate.Item,
) ([]candidate.Item, error) {
	start := time.Now()
	defer func() {
		metrics.SearchStageDuration.WithLabelValues("rerank").Observe(time.Since(start).Seconds())
	}()

	scored, err := s.reranker.Predict(ctx, req.Query(), merged)
	if err != nil {
		return nil, fmt.Errorf("rerank candidates: %w", err)
	}

	if len(scored) > req.TopN() {
		scored = scored[:req.TopN()]
	}

	items := make([]candidate.Item, len(scored))
	for i, sc := range scored {
		items[i] = sc.Item()
	}
	return items, nil
}

func buildResult(
	query string, items []candidate.Item, took time.Duration, stats map[string]int,
) result.Result {
	out := make([]result.Item, len(items))
	for i, it := range items {
		out[i] = result.NewItem(it.DocID(), it.Score(), it.Content(), it.Metadata())
	}
	return result.New(query, out, float64(took.Microseconds())/1000.0, stats)
}
