// Package recall provides pluggable candidate sources for the search
// gateway. Every strategy is failure-isolated: client, network, and parsing
// errors are logged and surface as an empty candidate list so that one
// broken source never aborts the whole search.
package recall

import (
	"context"

	"github.com/kailas-cloud/searchgate/internal/domain/search/candidate"
	"github.com/kailas-cloud/searchgate/internal/domain/search/searchctx"
)

// Strategy is one recall path. Recall returns candidates ordered by
// relevance descending, at most topK of them, with scores normalized so
// that higher means more relevant. It never returns an error.
type Strategy interface {
	Recall(ctx context.Context, sctx *searchctx.Context, topK int) []candidate.Item
	Name() string
}
