package chi

import (
	"context"

	"go.uber.org/zap"

	domrules "github.com/kailas-cloud/searchgate/internal/domain/rules"
	"github.com/kailas-cloud/searchgate/internal/domain/search/request"
	"github.com/kailas-cloud/searchgate/internal/domain/search/result"
	healthuc "github.com/kailas-cloud/searchgate/internal/usecase/health"
)

type mockSearcher struct {
	searchFn func(ctx context.Context, req *request.Request) (result.Result, error)
	lastReq  *request.Request
}

func (m *mockSearcher) Search(ctx context.Context, req *request.Request) (result.Result, error) {
	m.lastReq = req
	if m.searchFn != nil {
		return m.searchFn(ctx, req)
	}
	return result.New(req.Query(), nil, 1.5, nil), nil
}

type mockRules struct {
	blacklistFn           func(ctx context.Context) (map[string]struct{}, error)
	addToBlacklistFn      func(ctx context.Context, docIDs []string) (int64, error)
	removeFromBlacklistFn func(ctx context.Context, docIDs []string) (int64, error)
	positionRuleFn        func(ctx context.Context, query string) (*domrules.PositionRule, error)
	setPositionRuleFn     func(ctx context.Context, query, docID string, position int) error
	deletePositionRuleFn  func(ctx context.Context, query string) error
	diversityLambdaFn     func(ctx context.Context) (float64, error)
	setDiversityLambdaFn  func(ctx context.Context, lambda float64) error
}

func (m *mockRules) Blacklist(ctx context.Context) (map[string]struct{}, error) {
	if m.blacklistFn != nil {
		return m.blacklistFn(ctx)
	}
	return map[string]struct{}{}, nil
}

func (m *mockRules) AddToBlacklist(ctx context.Context, docIDs []string) (int64, error) {
	if m.addToBlacklistFn != nil {
		return m.addToBlacklistFn(ctx, docIDs)
	}
	return int64(len(docIDs)), nil
}

func (m *mockRules) RemoveFromBlacklist(ctx context.Context, docIDs []string) (int64, error) {
	if m.removeFromBlacklistFn != nil {
		return m.removeFromBlacklistFn(ctx, docIDs)
	}
	return int64(len(docIDs)), nil
}

func (m *mockRules) PositionRule(ctx context.Context, query string) (*domrules.PositionRule, error) {
	if m.positionRuleFn != nil {
		return m.positionRuleFn(ctx, query)
	}
	return nil, nil
}

func (m *mockRules) SetPositionRule(ctx context.Context, query, docID string, position int) error {
	if m.setPositionRuleFn != nil {
		return m.setPositionRuleFn(ctx, query, docID, position)
	}
	return nil
}

func (m *mockRules) DeletePositionRule(ctx context.Context, query string) error {
	if m.deletePositionRuleFn != nil {
		return m.deletePositionRuleFn(ctx, query)
	}
	return nil
}

func (m *mockRules) DiversityLambda(ctx context.Context) (float64, error) {
	if m.diversityLambdaFn != nil {
		return m.diversityLambdaFn(ctx)
	}
	return domrules.DefaultLambda, nil
}

func (m *mockRules) SetDiversityLambda(ctx context.Context, lambda float64) error {
	if m.setDiversityLambdaFn != nil {
		return m.setDiversityLambdaFn(ctx, lambda)
	}
	return nil
}

type mockPinger struct {
	pingFn func(ctx context.Context) error
}

func (m *mockPinger) Ping(ctx context.Context) error {
	if m.pingFn != nil {
		return m.pingFn(ctx)
	}
	return nil
}

type testServerOpts struct {
	searcher *mockSearcher
	rules    *mockRules
	db       *mockPinger
	apiKeys  []string
}

func newTestServer(opts testServerOpts) (*Server, *mockSearcher, *mockRules) {
	if opts.searcher == nil {
		opts.searcher = &mockSearcher{}
	}
	if opts.rules == nil {
		opts.rules = &mockRules{}
	}
	if opts.db == nil {
		opts.db = &mockPinger{}
	}
	health := healthuc.New(opts.db, nil, nil)
	srv := NewServer(opts.searcher, opts.rules, health, zap.NewNop())
	return srv, opts.searcher, opts.rules
}
