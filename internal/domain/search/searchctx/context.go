package searchctx

import (
	"time"

	"github.com/kailas-cloud/searchgate/internal/domain"
)

// Context carries the per-request query state through the recall pipeline.
// It is built once by the gateway and read-only afterwards. Vector and tokens
// are optional: a strategy that needs a missing field skips itself, which is
// an expected state, not an error.
type Context struct {
	query     string
	vector    []float32
	tokens    []string
	userID    string
	sessionID string
	createdAt time.Time
}

// New creates a search context. The query must be non-empty.
func New(query string, vector []float32, tokens []string) (Context, error) {
	if query == "" {
		return Context{}, domain.ErrEmptyQuery
	}
	return Context{
		query:     query,
		vector:    vector,
		tokens:    tokens,
		createdAt: time.Now(),
	}, nil
}

// WithUser attaches user and session identifiers.
func (c Context) WithUser(userID, sessionID string) Context {
	c.userID = userID
	c.sessionID = sessionID
	return c
}

// Query returns the original user query.
func (c *Context) Query() string { return c.query }

// Vector returns the query embedding, or nil if not computed.
func (c *Context) Vector() []float32 { return c.vector }

// Tokens returns the analyzed query tokens, or nil if not computed.
func (c *Context) Tokens() []string { return c.tokens }

// UserID returns the requesting user id, if any.
func (c *Context) UserID() string { return c.userID }

// SessionID returns the session id, if any.
func (c *Context) SessionID() string { return c.sessionID }

// CreatedAt returns the context creation time.
func (c *Context) CreatedAt() time.Time { return c.createdAt }
