// Package chi provides the HTTP API for the search gateway.
package chi

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"

	"github.com/kailas-cloud/searchgate/internal/domain"
	domrules "github.com/kailas-cloud/searchgate/internal/domain/rules"
	"github.com/kailas-cloud/searchgate/internal/domain/search/request"
	"github.com/kailas-cloud/searchgate/internal/domain/search/result"
	healthuc "github.com/kailas-cloud/searchgate/internal/usecase/health"
)

// Error codes returned in the JSON error envelope.
const (
	codeBadRequest       = "bad_request"
	codeValidationFailed = "validation_failed"
	codeUnauthorized     = "unauthorized"
	codeRuleNotFound     = "rule_not_found"
	codeInvalidRule      = "invalid_rule"
	codeContextBuild     = "context_build_failed"
	codeUpstreamError    = "embedding_provider_error"
	codeInternalError    = "internal_error"
)

// Searcher executes search requests.
type Searcher interface {
	Search(ctx context.Context, req *request.Request) (result.Result, error)
}

// RulesAdmin manages intervention rules.
type RulesAdmin interface {
	Blacklist(ctx context.Context) (map[string]struct{}, error)
	AddToBlacklist(ctx context.Context, docIDs []string) (int64, error)
	RemoveFromBlacklist(ctx context.Context, docIDs []string) (int64, error)
	PositionRule(ctx context.Context, query string) (*domrules.PositionRule, error)
	SetPositionRule(ctx context.Context, query, docID string, position int) error
	DeletePositionRule(ctx context.Context, query string) error
	DiversityLambda(ctx context.Context) (float64, error)
	SetDiversityLambda(ctx context.Context, lambda float64) error
}

// errorHandler tries to handle a domain error. Returns true if handled.
type errorHandler func(w http.ResponseWriter, err error, msg string) bool

// Server is the HTTP API server.
type Server struct {
	gateway       Searcher
	rules         RulesAdmin
	health        *healthuc.Service
	logger        *zap.Logger
	errorHandlers []errorHandler
}

// NewServer creates an HTTP API server.
func NewServer(gateway Searcher, rules RulesAdmin, health *healthuc.Service, logger *zap.Logger) *Server {
	s := &Server{
		gateway: gateway,
		rules:   rules,
		health:  health,
		logger:  logger,
	}
	s.errorHandlers = []errorHandler{
		sentinelHandler(domain.ErrEmptyQuery, http.StatusBadRequest, codeValidationFailed),
		sentinelHandler(domain.ErrContextBuild, http.StatusBadGateway, codeContextBuild),
		sentinelHandler(domain.ErrEmbeddingProviderError, http.StatusBadGateway, codeUpstreamError),
		sentinelHandler(domain.ErrRuleNotFound, http.StatusNotFound, codeRuleNotFound),
		sentinelHandler(domain.ErrInvalidRule, http.StatusBadRequest, codeInvalidRule),
	}
	return s
}

// Routes builds the route tree. Intervention rule routes require a Bearer
// token when apiKeys is non-empty.
func (s *Server) Routes(apiKeys []string) chi.Router {
	r := chi.NewRouter()

	r.Post("/search", s.SearchDocuments)
	r.Get("/healthz", s.HealthCheck)
	r.Get("/metrics", s.Metrics)

	r.Route("/rules", func(r chi.Router) {
		r.Use(BearerAuthMiddleware(apiKeys))
		r.Get("/blacklist", s.GetBlacklist)
		r.Post("/blacklist", s.AddToBlacklist)
		r.Delete("/blacklist", s.RemoveFromBlacklist)
		r.Get("/position", s.GetPositionRule)
		r.Put("/position", s.SetPositionRule)
		r.Delete("/position", s.DeletePositionRule)
		r.Get("/diversity", s.GetDiversityLambda)
		r.Put("/diversity", s.SetDiversityLambda)
	})

	return r
}

type searchRequest struct {
	Query         string `json:"query"`
	TopN          int    `json:"top_n"`
	RecallTopK    int    `json:"recall_top_k"`
	EnableRerank  bool   `json:"enable_rerank"`
	EnableRanking *bool  `json:"enable_ranking"`
	UserID        string `json:"user_id"`
	SessionID     string `json:"session_id"`
}

type searchResultItem struct {
	DocID    string            `json:"doc_id"`
	Score    float64           `json:"score"`
	Content  string            `json:"content,omitempty"`
	Metadata map[string]string `json:"metadata,omitempty"`
}

type searchResponse struct {
	Query       string             `json:"query"`
	Results     []searchResultItem `json:"results"`
	Total       int                `json:"total"`
	TookMS      float64            `json:"took_ms"`
	RecallStats map[string]int     `json:"recall_stats,omitempty"`
}

// SearchDocuments handles POST /search.
func (s *Server) SearchDocuments(w http.ResponseWriter, r *http.Request) {
	var req searchRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, codeBadRequest, "Invalid request body: "+err.Error())
		return
	}

	enableRanking := true
	if req.EnableRanking != nil {
		enableRanking = *req.EnableRanking
	}

	sreq, err := request.New(req.Query, req.TopN, req.RecallTopK, req.EnableRerank, enableRanking)
	if err != nil {
		writeError(w, http.StatusBadRequest, codeValidationFailed, err.Error())
		return
	}
	if req.UserID != "" || req.SessionID != "" {
		sreq = sreq.WithUser(req.UserID, req.SessionID)
	}

	res, err := s.gateway.Search(r.Context(), &sreq)
	if err != nil {
		s.handleDomainError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, resultToWire(&res))
}

func resultToWire(res *result.Result) searchResponse {
	items := make([]searchResultItem, len(res.Items()))
	for i, it := range res.Items() {
		items[i] = searchResultItem{
			DocID:    it.DocID(),
			Score:    it.Score(),
			Content:  it.Content(),
			Metadata: it.Metadata(),
		}
	}
	return searchResponse{
		Query:       res.Query(),
		Results:     items,
		Total:       res.Total(),
		TookMS:      res.TookMS(),
		RecallStats: res.RecallStats(),
	}
}

type blacklistRequest struct {
	DocIDs []string `json:"doc_ids"`
}

// GetBlacklist handles GET /rules/blacklist.
func (s *Server) GetBlacklist(w http.ResponseWriter, r *http.Request) {
	bl, err := s.rules.Blacklist(r.Context())
	if err != nil {
		s.handleDomainError(w, err)
		return
	}

	docIDs := make([]string, 0, len(bl))
	for id := range bl {
		docIDs = append(docIDs, id)
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"doc_ids": docIDs,
		"total":   len(docIDs),
	})
}

// AddToBlacklist handles POST /rules/blacklist.
func (s *Server) AddToBlacklist(w http.ResponseWriter, r *http.Request) {
	var req blacklistRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, codeBadRequest, "Invalid request body: "+err.Error())
		return
	}
	if len(req.DocIDs) == 0 {
		writeError(w, http.StatusBadRequest, codeValidationFailed, "doc_ids is required")
		return
	}

	added, err := s.rules.AddToBlacklist(r.Context(), req.DocIDs)
	if err != nil {
		s.handleDomainError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{"added": added})
}

// RemoveFromBlacklist handles DELETE /rules/blacklist.
func (s *Server) RemoveFromBlacklist(w http.ResponseWriter, r *http.Request) {
	var req blacklistRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, codeBadRequest, "Invalid request body: "+err.Error())
		return
	}
	if len(req.DocIDs) == 0 {
		writeError(w, http.StatusBadRequest, codeValidationFailed, "doc_ids is required")
		return
	}

	removed, err := s.rules.RemoveFromBlacklist(r.Context(), req.DocIDs)
	if err != nil {
		s.handleDomainError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{"removed": removed})
}

type positionRuleRequest struct {
	Query    string `json:"query"`
	DocID    string `json:"doc_id"`
	Position int    `json:"position"`
}

// GetPositionRule handles GET /rules/position?query=...
func (s *Server) GetPositionRule(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query().Get("query")
	if query == "" {
		writeError(w, http.StatusBadRequest, codeValidationFailed, "query parameter is required")
		return
	}

	rule, err := s.rules.PositionRule(r.Context(), query)
	if err != nil {
		s.handleDomainError(w, err)
		return
	}
	if rule == nil {
		writeError(w, http.StatusNotFound, codeRuleNotFound, "no position rule for query")
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"query":    query,
		"doc_id":   rule.DocID,
		"position": rule.Position,
	})
}

// SetPositionRule handles PUT /rules/position.
func (s *Server) SetPositionRule(w http.ResponseWriter, r *http.Request) {
	var req positionRuleRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, codeBadRequest, "Invalid request body: "+err.Error())
		return
	}
	if req.Query == "" || req.DocID == "" {
		writeError(w, http.StatusBadRequest, codeValidationFailed, "query and doc_id are required")
		return
	}
	if req.Position < 0 {
		writeError(w, http.StatusBadRequest, codeValidationFailed, "position must be >= 0")
		return
	}

	if err := s.rules.SetPositionRule(r.Context(), req.Query, req.DocID, req.Position); err != nil {
		s.handleDomainError(w, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// DeletePositionRule handles DELETE /rules/position?query=...
func (s *Server) DeletePositionRule(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query().Get("query")
	if query == "" {
		writeError(w, http.StatusBadRequest, codeValidationFailed, "query parameter is required")
		return
	}

	if err := s.rules.DeletePositionRule(r.Context(), query); err != nil {
		s.handleDomainError(w, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// GetDiversityLambda handles GET /rules/diversity.
func (s *Server) GetDiversityLambda(w http.ResponseWriter, r *http.Request) {
	lambda, err := s.rules.DiversityLambda(r.Context())
	if err != nil {
		s.handleDomainError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{"lambda": lambda})
}

// SetDiversityLambda handles PUT /rules/diversity.
func (s *Server) SetDiversityLambda(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Lambda float64 `json:"lambda"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, codeBadRequest, "Invalid request body: "+err.Error())
		return
	}

	if err := s.rules.SetDiversityLambda(r.Context(), req.Lambda); err != nil {
		s.handleDomainError(w, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// HealthCheck handles GET /healthz.
func (s *Server) HealthCheck(w http.ResponseWriter, r *http.Request) {
	report := s.health.Check(r.Context())

	httpStatus := http.StatusOK
	if report.Status != healthuc.Healthy {
		httpStatus = http.StatusServiceUnavailable
	}

	writeJSON(w, httpStatus, map[string]any{
		"status": report.Status,
		"checks": report.Checks,
	})
}

// Metrics handles GET /metrics.
func (s *Server) Metrics(w http.ResponseWriter, r *http.Request) {
	promhttp.Handler().ServeHTTP(w, r)
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

type errorResponse struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

func writeError(w http.ResponseWriter, status int, code, message string) {
	writeJSON(w, status, errorResponse{Code: code, Message: message})
}

// safeDomainMessage returns a sentinel error message for the client without exposing internals.
func safeDomainMessage(err error) string {
	sentinels := []error{
		domain.ErrEmptyQuery,
		domain.ErrContextBuild,
		domain.ErrEmbeddingProviderError,
		domain.ErrRuleNotFound,
		domain.ErrInvalidRule,
	}
	for _, s := range sentinels {
		if errors.Is(err, s) {
			return s.Error()
		}
	}
	return "internal error"
}

// sentinelHandler returns an errorHandler that matches a single sentinel error.
func sentinelHandler(sentinel error, status int, code string) errorHandler {
	return func(w http.ResponseWriter, err error, msg string) bool {
		if !errors.Is(err, sentinel) {
			return false
		}
		writeError(w, status, code, msg)
		return true
	}
}

func (s *Server) handleDomainError(w http.ResponseWriter, err error) {
	s.logger.Warn("domain error", zap.Error(err))
	msg := safeDomainMessage(err)
	for _, h := range s.errorHandlers {
		if h(w, err, msg) {
			return
		}
	}
	s.logger.Error("internal error", zap.Error(err))
	writeError(w, http.StatusInternalServerError, codeInternalError, "internal error")
}
