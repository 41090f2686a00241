package sdk

import (
	"context"
	"net/http"
)

// SearchRequest is the /search request body.
type SearchRequest struct {
	Query         string `json:"query"`
	TopN          int    `json:"top_n,omitempty"`
	RecallTopK    int    `json:"recall_top_k,omitempty"`
	EnableRerank  bool   `json:"enable_rerank,omitempty"`
	EnableRanking *bool  `json:"enable_ranking,omitempty"`
	UserID        string `json:"user_id,omitempty"`
	SessionID     string `json:"session_id,omitempty"`
}

// SearchResultItem is one ranked document.
type SearchResultItem struct {
	DocID    string            `json:"doc_id"`
	Score    float64           `json:"score"`
	Content  string            `json:"content,omitempty"`
	Metadata map[string]string `json:"metadata,omitempty"`
}

// SearchResponse is the /search response envelope.
type SearchResponse struct {
	Query       string             `json:"query"`
	Results     []SearchResultItem `json:"results"`
	Total       int                `json:"total"`
	TookMS      float64            `json:"took_ms"`
	RecallStats map[string]int     `json:"recall_stats,omitempty"`
}

// Search runs a search request through the gateway.
func (c *Client) Search(ctx context.Context, req SearchRequest) (SearchResponse, error) {
	var resp SearchResponse
	if err := c.do(ctx, http.MethodPost, "/search", nil, req, &resp); err != nil {
		return SearchResponse{}, err
	}
	return resp, nil
}
