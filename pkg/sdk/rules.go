package sdk

import (
	"context"
	"net/http"
	"net/url"
)

// Blacklist returns all blacklisted doc ids.
func (c *Client) Blacklist(ctx context.Context) ([]string, error) {
	var resp struct {
		DocIDs []string `json:"doc_ids"`
	}
	if err := c.do(ctx, http.MethodGet, "/rules/blacklist", nil, nil, &resp); err != nil {
		return nil, err
	}
	return resp.DocIDs, nil
}

// AddToBlacklist adds doc ids to the blacklist. Returns the number actually added.
func (c *Client) AddToBlacklist(ctx context.Context, docIDs []string) (int64, error) {
	var resp struct {
		Added int64 `json:"added"`
	}
	body := map[string][]string{"doc_ids": docIDs}
	if err := c.do(ctx, http.MethodPost, "/rules/blacklist", nil, body, &resp); err != nil {
		return 0, err
	}
	return resp.Added, nil
}

// RemoveFromBlacklist removes doc ids from the blacklist. Returns the number removed.
func (c *Client) RemoveFromBlacklist(ctx context.Context, docIDs []string) (int64, error) {
	var resp struct {
		Removed int64 `json:"removed"`
	}
	body := map[string][]string{"doc_ids": docIDs}
	if err := c.do(ctx, http.MethodDelete, "/rules/blacklist", nil, body, &resp); err != nil {
		return 0, err
	}
	return resp.Removed, nil
}

// PositionRule is an operator pin of a document to a result position.
type PositionRule struct {
	Query    string `json:"query"`
	DocID    string `json:"doc_id"`
	Position int    `json:"position"`
}

// GetPositionRule fetches the position rule for a query.
func (c *Client) GetPositionRule(ctx context.Context, query string) (PositionRule, error) {
	var rule PositionRule
	q := url.Values{"query": {query}}
	if err := c.do(ctx, http.MethodGet, "/rules/position", q, nil, &rule); err != nil {
		return PositionRule{}, err
	}
	return rule, nil
}

// SetPositionRule pins a document to a position for a query.
func (c *Client) SetPositionRule(ctx context.Context, rule PositionRule) error {
	return c.do(ctx, http.MethodPut, "/rules/position", nil, rule, nil)
}

// DeletePositionRule removes the position rule for a query.
func (c *Client) DeletePositionRule(ctx context.Context, query string) error {
	q := url.Values{"query": {query}}
	return c.do(ctx, http.MethodDelete, "/rules/position", q, nil, nil)
}

// DiversityLambda returns the MMR trade-off parameter.
func (c *Client) DiversityLambda(ctx context.Context) (float64, error) {
	var resp struct {
		Lambda float64 `json:"lambda"`
	}
	if err := c.do(ctx, http.MethodGet, "/rules/diversity", nil, nil, &resp); err != nil {
		return 0, err
	}
	return resp.Lambda, nil
}

// SetDiversityLambda updates the MMR trade-off parameter.
func (c *Client) SetDiversityLambda(ctx context.Context, lambda float64) error {
	body := map[string]float64{"lambda": lambda}
	return c.do(ctx, http.MethodPut, "/rules/diversity", nil, body, nil)
}
