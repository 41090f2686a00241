// Package ranking post-processes fused search results through three ordered
// stages: blacklist filtering, MMR diversity reordering, and operator
// position insertion. Every stage trades precision for availability: if its
// rule lookup fails, the stage logs and falls through with the list
// unchanged, and the request still succeeds.
package ranking

import (
	"context"

	"go.uber.org/zap"

	"github.com/kailas-cloud/searchgate/internal/domain/rules"
	"github.com/kailas-cloud/searchgate/internal/domain/search/candidate"
	"github.com/kailas-cloud/searchgate/internal/logger"
	"github.com/kailas-cloud/searchgate/internal/metrics"
)

// RulesReader provides per-request snapshots of operator intervention rules.
type RulesReader interface {
	Blacklist(ctx context.Context) (map[string]struct{}, error)
	PositionRule(ctx context.Context, query string) (*rules.PositionRule, error)
	DiversityLambda(ctx context.Context) (float64, error)
}

// Engine applies the three ranking stages in order.
type Engine struct {
	rules RulesReader
}

// NewEngine creates a ranking engine.
func NewEngine(r RulesReader) *Engine {
	return &Engine{rules: r}
}

// Apply runs blacklist filter, MMR diversity reorder, and position
// insertion over items, in that order, returning at most topN results.
func (e *Engine) Apply(ctx context.Context, query string, items []candidate.Item, topN int) []candidate.Item {
	if len(items) == 0 {
		return items
	}

	items = e.filterBlacklist(ctx, items)
	items = e.applyDiversity(ctx, items, topN)
	items = e.applyPositionRule(ctx, query, items)

	return items
}

// filterBlacklist removes blacklisted doc ids, preserving survivor order.
func (e *Engine) filterBlacklist(ctx context.Context, items []candidate.Item) []candidate.Item {
	log := logger.FromContext(ctx)

	blacklist, err := e.rules.Blacklist(ctx)
	if err != nil {
		metrics.RankingStageFailuresTotal.WithLabelValues("blacklist").Inc()
		log.Error("blacklist lookup failed, stage skipped", zap.Error(err))
		return items
	}
	if len(blacklist) == 0 {
		return items
	}

	filtered := make([]candidate.Item, 0, len(items))
	for _, item := range items {
		if _, banned := blacklist[item.DocID()]; banned {
			continue
		}
		filtered = append(filtered, item)
	}

	if removed := len(items) - len(filtered); removed > 0 {
		log.Info("blacklist filter removed items", zap.Int("removed", removed))
	}
	return filtered
}

// applyDiversity reorders via MMR with the operator-configured lambda.
// A lambda lookup failure degrades to a plain truncation.
func (e *Engine) applyDiversity(ctx context.Context, items []candidate.Item, topN int) []candidate.Item {
	log := logger.FromContext(ctx)

	lambda, err := e.rules.DiversityLambda(ctx)
	if err != nil {
		metrics.RankingStageFailuresTotal.WithLabelValues("diversity").Inc()
		log.Error("diversity lambda lookup failed, stage skipped", zap.Error(err))
		if topN > 0 && len(items) > topN {
			return items[:topN]
		}
		return items
	}

	return mmrReorder(items, lambda, topN)
}

// applyPositionRule moves the rule's document to its pinned position.
// A rule referencing a document not in the list is a logged no-op.
func (e *Engine) applyPositionRule(ctx context.Context, query string, items []candidate.Item) []candidate.Item {
	log := logger.FromContext(ctx)

	rule, err := e.rules.PositionRule(ctx, query)
	if err != nil {
		metrics.RankingStageFailuresTotal.WithLabelValues("position").Inc()
		log.Error("position rule lookup failed, stage skipped", zap.Error(err))
		return items
	}
	if rule == nil {
		return items
	}

	target := -1
	for i, item := range items {
		if item.DocID() == rule.DocID {
			target = i
			break
		}
	}
	if target < 0 {
		log.Warn("position rule target not in result list",
			zap.String("doc_id", rule.DocID),
			zap.Int("position", rule.Position),
		)
		return items
	}

	moved := items[target]
	rest := append(items[:target:target], items[target+1:]...)

	position := rule.Position
	if position > len(rest) {
		position = len(rest)
	}

	out := make([]candidate.Item, 0, len(items))
	out = append(out, rest[:position]...)
	out = append(out, moved)
	out = append(out, rest[position:]...)

	log.Info("position rule applied",
		zap.String("doc_id", rule.DocID),
		zap.Int("position", position),
	)
	return out
}
