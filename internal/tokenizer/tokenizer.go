// Package tokenizer splits query text into normalized terms for keyword recall.
package tokenizer

import (
	"context"
	"strings"

	"github.com/blevesearch/bleve/v2/analysis"
	"github.com/blevesearch/bleve/v2/analysis/token/lowercase"
	"github.com/blevesearch/bleve/v2/analysis/tokenizer/unicode"
)

// Unicode tokenizes on unicode word boundaries and lowercases terms.
// It handles both latin and CJK text, which matters for mixed-language queries.
type Unicode struct {
	tokenizer analysis.Tokenizer
	lowercase analysis.TokenFilter
}

// NewUnicode creates a unicode word-boundary tokenizer.
func NewUnicode() *Unicode {
	return &Unicode{
		tokenizer: unicode.NewUnicodeTokenizer(),
		lowercase: lowercase.NewLowerCaseFilter(),
	}
}

// Tokenize returns the lowercased terms of text, deduplicated in first-seen
// order. An empty or whitespace-only input yields no terms, not an error.
func (u *Unicode) Tokenize(_ context.Context, text string) ([]string, error) {
	text = strings.TrimSpace(text)
	if text == "" {
		return nil, nil
	}

	stream := u.lowercase.Filter(u.tokenizer.Tokenize([]byte(text)))

	seen := make(map[string]struct{}, len(stream))
	terms := make([]string, 0, len(stream))
	for _, tok := range stream {
		term := string(tok.Term)
		if term == "" {
			continue
		}
		if _, ok := seen[term]; ok {
			continue
		}
		seen[term] = struct{}{}
		terms = append(terms, term)
	}

	return terms, nil
}
