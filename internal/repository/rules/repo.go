package rules

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/kailas-cloud/searchgate/internal/db"
	"github.com/kailas-cloud/searchgate/internal/domain"
	domrules "github.com/kailas-cloud/searchgate/internal/domain/rules"
)

// Key layout under the configured prefix.
const (
	blacklistKey = "rules:blacklist"
	positionKey  = "rules:position:"
	lambdaKey    = "rules:diversity_lambda"
)

// store is the consumer interface for rule storage.
type store interface {
	db.KVStore
	db.SetStore
}

// Repo reads and writes operator intervention rules. Reads serve the ranking
// engine as per-request snapshots; writes serve the admin API.
type Repo struct {
	store     store
	keyPrefix string
}

// New creates a rules repository.
func New(s store, keyPrefix string) *Repo {
	return &Repo{store: s, keyPrefix: keyPrefix}
}

// Blacklist returns the set of blacklisted doc ids.
func (r *Repo) Blacklist(ctx context.Context) (map[string]struct{}, error) {
	members, err := r.store.SMembers(ctx, r.keyPrefix+blacklistKey)
	if err != nil {
		return nil, fmt.Errorf("read blacklist: %w", err)
	}

	set := make(map[string]struct{}, len(members))
	for _, m := range members {
		set[m] = struct{}{}
	}
	return set, nil
}

// AddToBlacklist adds doc ids to the blacklist and returns the number added.
func (r *Repo) AddToBlacklist(ctx context.Context, docIDs []string) (int64, error) {
	if len(docIDs) == 0 {
		return 0, nil
	}
	n, err := r.store.SAdd(ctx, r.keyPrefix+blacklistKey, docIDs...)
	if err != nil {
		return 0, fmt.Errorf("add to blacklist: %w", err)
	}
	return n, nil
}

// RemoveFromBlacklist removes doc ids and returns the number removed.
func (r *Repo) RemoveFromBlacklist(ctx context.Context, docIDs []string) (int64, error) {
	if len(docIDs) == 0 {
		return 0, nil
	}
	n, err := r.store.SRem(ctx, r.keyPrefix+blacklistKey, docIDs...)
	if err != nil {
		return 0, fmt.Errorf("remove from blacklist: %w", err)
	}
	return n, nil
}

// PositionRule returns the rule stored for the query, or nil when none exists.
// Queries are matched case-insensitively.
func (r *Repo) PositionRule(ctx context.Context, query string) (*domrules.PositionRule, error) {
	data, err := r.store.Get(ctx, r.positionRuleKey(query))
	if err != nil {
		if errors.Is(err, db.ErrKeyNotFound) {
			return nil, nil
		}
		return nil, fmt.Errorf("read position rule: %w", err)
	}

	rule, err := parsePositionRule(string(data))
	if err != nil {
		return nil, err
	}
	return rule, nil
}

// SetPositionRule stores a rule for the query.
func (r *Repo) SetPositionRule(ctx context.Context, query, docID string, position int) error {
	if docID == "" || position < 0 {
		return domain.ErrInvalidRule
	}
	value := fmt.Sprintf("%s:%d", docID, position)
	if err := r.store.Set(ctx, r.positionRuleKey(query), []byte(value)); err != nil {
		return fmt.Errorf("set position rule: %w", err)
	}
	return nil
}

// DeletePositionRule removes the rule for the query, if any.
func (r *Repo) DeletePositionRule(ctx context.Context, query string) error {
	if err := r.store.Del(ctx, r.positionRuleKey(query)); err != nil {
		return fmt.Errorf("delete position rule: %w", err)
	}
	return nil
}

// DiversityLambda returns the stored MMR balance, or DefaultLambda when unset.
func (r *Repo) DiversityLambda(ctx context.Context) (float64, error) {
	data, err := r.store.Get(ctx, r.keyPrefix+lambdaKey)
	if err != nil {
		if errors.Is(err, db.ErrKeyNotFound) {
			return domrules.DefaultLambda, nil
		}
		return 0, fmt.Errorf("read diversity lambda: %w", err)
	}

	lambda, err := strconv.ParseFloat(string(data), 64)
	if err != nil || lambda < 0 || lambda > 1 {
		return 0, fmt.Errorf("%w: diversity lambda %q", domain.ErrInvalidRule, data)
	}
	return lambda, nil
}

// SetDiversityLambda stores the MMR balance. Must be in [0, 1].
func (r *Repo) SetDiversityLambda(ctx context.Context, lambda float64) error {
	if lambda < 0 || lambda > 1 {
		return fmt.Errorf("%w: diversity lambda must be in [0, 1]", domain.ErrInvalidRule)
	}
	value := strconv.FormatFloat(lambda, 'f', -1, 64)
	if err := r.store.Set(ctx, r.keyPrefix+lambdaKey, []byte(value)); err != nil {
		return fmt.Errorf("set diversity lambda: %w", err)
	}
	return nil
}

func (r *Repo) positionRuleKey(query string) string {
	return r.keyPrefix + positionKey + strings.ToLower(query)
}

// parsePositionRule decodes the "<doc_id>:<position>" wire value. The doc id
// may itself contain colons, so the split is on the last one.
func parsePositionRule(value string) (*domrules.PositionRule, error) {
	idx := strings.LastIndex(value, ":")
	if idx <= 0 || idx == len(value)-1 {
		return nil, fmt.Errorf("%w: position rule %q", domain.ErrInvalidRule, value)
	}

	position, err := strconv.Atoi(value[idx+1:])
	if err != nil || position < 0 {
		return nil, fmt.Errorf("%w: position rule %q", domain.ErrInvalidRule, value)
	}

	return &domrules.PositionRule{DocID: value[:idx], Position: position}, nil
}
