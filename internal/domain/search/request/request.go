package request

import (
	"fmt"

	"github.com/kailas-cloud/searchgate/internal/domain"
)

// Search parameter limits.
const (
	// MaxQueryLength is the maximum allowed search query length.
	MaxQueryLength = 4096
	DefaultTopN    = 10
	MaxTopN        = 100
	DefaultTopK    = 100
	MinTopK        = 10
	MaxTopK        = 1000
)

// Request is a validated search request.
type Request struct {
	query         string
	topN          int
	recallTopK    int
	enableRerank  bool
	enableRanking bool
	userID        string
	sessionID     string
}

// New validates and normalizes search parameters.
// Defaults: topN=10, recallTopK=100. recallTopK is clamped to [10, 1000]
// and never below topN.
func New(query string, topN, recallTopK int, enableRerank, enableRanking bool) (Request, error) {
	if query == "" {
		return Request{}, domain.ErrEmptyQuery
	}
	if len(query) > MaxQueryLength {
		return Request{}, fmt.Errorf("query too long (max %d chars)", MaxQueryLength)
	}
	if topN <= 0 {
		topN = DefaultTopN
	}
	if topN > MaxTopN {
		topN = MaxTopN
	}
	if recallTopK <= 0 {
		recallTopK = DefaultTopK
	}
	if recallTopK < MinTopK {
		recallTopK = MinTopK
	}
	if recallTopK > MaxTopK {
		recallTopK = MaxTopK
	}
	if recallTopK < topN {
		recallTopK = topN
	}

	return Request{
		query:         query,
		topN:          topN,
		recallTopK:    recallTopK,
		enableRerank:  enableRerank,
		enableRanking: enableRanking,
	}, nil
}

// WithUser attaches user and session identifiers.
func (r Request) WithUser(userID, sessionID string) Request {
	r.userID = userID
	r.sessionID = sessionID
	return r
}

// Query returns the search query text.
func (r *Request) Query() string { return r.query }

// TopN returns the requested final result count.
func (r *Request) TopN() int { return r.topN }

// RecallTopK returns the per-strategy recall depth.
func (r *Request) RecallTopK() int { return r.recallTopK }

// RerankEnabled reports whether cross-encoder reranking was requested.
func (r *Request) RerankEnabled() bool { return r.enableRerank }

// RankingEnabled reports whether the ranking engine was requested.
func (r *Request) RankingEnabled() bool { return r.enableRanking }

// UserID returns the requesting user id, if any.
func (r *Request) UserID() string { return r.userID }

// SessionID returns the session id, if any.
func (r *Request) SessionID() string { return r.sessionID }
