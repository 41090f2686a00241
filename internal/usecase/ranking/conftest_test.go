package ranking

import (
	"context"

	"github.com/kailas-cloud/searchgate/internal/domain/rules"
	"github.com/kailas-cloud/searchgate/internal/domain/search/candidate"
)

// mockRules implements RulesReader for tests.
type mockRules struct {
	blacklistFn    func(ctx context.Context) (map[string]struct{}, error)
	positionRuleFn func(ctx context.Context, query string) (*rules.PositionRule, error)
	lambdaFn       func(ctx context.Context) (float64, error)
}

func (m *mockRules) Blacklist(ctx context.Context) (map[string]struct{}, error) {
	if m.blacklistFn != nil {
		return m.blacklistFn(ctx)
	}
	return nil, nil
}

func (m *mockRules) PositionRule(ctx context.Context, query string) (*rules.PositionRule, error) {
	if m.positionRuleFn != nil {
		return m.positionRuleFn(ctx, query)
	}
	return nil, nil
}

func (m *mockRules) DiversityLambda(ctx context.Context) (float64, error) {
	if m.lambdaFn != nil {
		return m.lambdaFn(ctx)
	}
	return rules.DefaultLambda, nil
}

func makeItem(id string, score float64) candidate.Item {
	return candidate.New(id, score, "vector", "content-"+id, nil)
}

func makeItemMeta(id string, score float64, category, source string) candidate.Item {
	meta := map[string]string{}
	if category != "" {
		meta["category"] = category
	}
	if source != "" {
		meta["source"] = source
	}
	return candidate.New(id, score, "vector", "content-"+id, meta)
}

func docIDs(items []candidate.Item) []string {
	ids := make([]string, len(items))
	for i := range items {
		ids[i] = items[i].DocID()
	}
	return ids
}

func sameIDs(a []string, b []string) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}
