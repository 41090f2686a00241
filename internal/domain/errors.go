package domain

import "errors"

var (
	// ErrEmptyQuery signals a search request without a query.
	ErrEmptyQuery = errors.New("query is required")
	// ErrContextBuild signals that query vectorization or tokenization failed.
	// Unlike recall failures this is fatal for the whole request.
	ErrContextBuild = errors.New("search context build failed")
	// ErrMissingDocID signals a recall candidate without a document id.
	// Strategies guarantee ids on every candidate, so this is a programming error.
	ErrMissingDocID = errors.New("candidate missing doc id")
	// ErrRerankOrdering signals that reranked output is not sorted descending.
	ErrRerankOrdering = errors.New("reranked output not in descending order")
	// ErrRuleNotFound signals a missing intervention rule.
	ErrRuleNotFound = errors.New("rule not found")
	// ErrInvalidRule signals a malformed intervention rule.
	ErrInvalidRule = errors.New("invalid rule")
	// ErrEmbeddingProviderError signals an embedding provider failure.
	ErrEmbeddingProviderError = errors.New("embedding provider error")
)
