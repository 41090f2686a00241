package rules

import (
	"context"
	"errors"
	"testing"

	"github.com/kailas-cloud/searchgate/internal/db"
	"github.com/kailas-cloud/searchgate/internal/domain"
	domrules "github.com/kailas-cloud/searchgate/internal/domain/rules"
)

// mockStore implements the consumer interface with an in-memory key space.
type mockStore struct {
	kv   map[string][]byte
	sets map[string]map[string]struct{}

	getErr error
	setErr error
}

func newMockStore() *mockStore {
	return &mockStore{
		kv:   make(map[string][]byte),
		sets: make(map[string]map[string]struct{}),
	}
}

func (m *mockStore) Get(ctx context.Context, key string) ([]byte, error) {
	if m.getErr != nil {
		return nil, m.getErr
	}
	v, ok := m.kv[key]
	if !ok {
		return nil, db.ErrKeyNotFound
	}
	return v, nil
}

func (m *mockStore) Set(ctx context.Context, key string, value []byte) error {
	if m.setErr != nil {
		return m.setErr
	}
	m.kv[key] = value
	return nil
}

func (m *mockStore) Del(ctx context.Context, key string) error {
	delete(m.kv, key)
	return nil
}

func (m *mockStore) SAdd(ctx context.Context, key string, members ...string) (int64, error) {
	if m.sets[key] == nil {
		m.sets[key] = make(map[string]struct{})
	}
	var added int64
	for _, member := range members {
		if _, ok := m.sets[key][member]; !ok {
			m.sets[key][member] = struct{}{}
			added++
		}
	}
	return added, nil
}

func (m *mockStore) SRem(ctx context.Context, key string, members ...string) (int64, error) {
	var removed int64
	for _, member := range members {
		if _, ok := m.sets[key][member]; ok {
			delete(m.sets[key], member)
			removed++
		}
	}
	return removed, nil
}

func (m *mockStore) SMembers(ctx context.Context, key string) ([]string, error) {
	out := make([]string, 0, len(m.sets[key]))
	for member := range m.sets[key] {
		out = append(out, member)
	}
	return out, nil
}

func TestBlacklist_RoundTrip(t *testing.T) {
	ms := newMockStore()
	repo := New(ms, "searchgate:")
	ctx := context.Background()

	added, err := repo.AddToBlacklist(ctx, []string{"a", "b", "a"})
	if err != nil {
		t.Fatalf("AddToBlacklist: %v", err)
	}
	if added != 2 {
		t.Errorf("added = %d, expected 2", added)
	}

	bl, err := repo.Blacklist(ctx)
	if err != nil {
		t.Fatalf("Blacklist: %v", err)
	}
	if len(bl) != 2 {
		t.Fatalf("blacklist size = %d, expected 2", len(bl))
	}
	if _, ok := bl["a"]; !ok {
		t.Error("missing a")
	}

	removed, err := repo.RemoveFromBlacklist(ctx, []string{"a", "zz"})
	if err != nil {
		t.Fatalf("RemoveFromBlacklist: %v", err)
	}
	if removed != 1 {
		t.Errorf("removed = %d, expected 1", removed)
	}

	if _, ok := ms.sets["searchgate:rules:blacklist"]["b"]; !ok {
		t.Error("expected b to remain under the prefixed set key")
	}
}

func TestPositionRule_RoundTrip(t *testing.T) {
	ms := newMockStore()
	repo := New(ms, "searchgate:")
	ctx := context.Background()

	if err := repo.SetPositionRule(ctx, "Machine Learning", "doc:42", 2); err != nil {
		t.Fatalf("SetPositionRule: %v", err)
	}

	// Queries match case-insensitively via a lowercased key.
	if _, ok := ms.kv["searchgate:rules:position:machine learning"]; !ok {
		t.Fatal("expected lowercased key")
	}

	rule, err := repo.PositionRule(ctx, "MACHINE learning")
	if err != nil {
		t.Fatalf("PositionRule: %v", err)
	}
	if rule == nil {
		t.Fatal("expected rule, got nil")
	}
	if rule.DocID != "doc:42" || rule.Position != 2 {
		t.Errorf("rule = %+v, expected doc:42 at 2", rule)
	}

	if err := repo.DeletePositionRule(ctx, "machine learning"); err != nil {
		t.Fatalf("DeletePositionRule: %v", err)
	}
	rule, err = repo.PositionRule(ctx, "machine learning")
	if err != nil {
		t.Fatalf("PositionRule after delete: %v", err)
	}
	if rule != nil {
		t.Errorf("expected nil after delete, got %+v", rule)
	}
}

func TestPositionRule_MissingIsNotAnError(t *testing.T) {
	repo := New(newMockStore(), "searchgate:")

	rule, err := repo.PositionRule(context.Background(), "nothing here")
	if err != nil {
		t.Fatalf("PositionRule: %v", err)
	}
	if rule != nil {
		t.Errorf("expected nil, got %+v", rule)
	}
}

func TestSetPositionRule_Invalid(t *testing.T) {
	repo := New(newMockStore(), "searchgate:")
	ctx := context.Background()

	if err := repo.SetPositionRule(ctx, "q", "", 0); !errors.Is(err, domain.ErrInvalidRule) {
		t.Errorf("empty doc id: expected ErrInvalidRule, got %v", err)
	}
	if err := repo.SetPositionRule(ctx, "q", "doc", -1); !errors.Is(err, domain.ErrInvalidRule) {
		t.Errorf("negative position: expected ErrInvalidRule, got %v", err)
	}
}

func TestParsePositionRule(t *testing.T) {
	tests := []struct {
		value   string
		wantDoc string
		wantPos int
		wantErr bool
	}{
		{"doc1:0", "doc1", 0, false},
		{"doc:with:colons:5", "doc:with:colons", 5, false},
		{"doc1", "", 0, true},
		{"doc1:", "", 0, true},
		{":3", "", 0, true},
		{"doc1:-1", "", 0, true},
		{"doc1:abc", "", 0, true},
	}

	for _, tt := range tests {
		t.Run(tt.value, func(t *testing.T) {
			rule, err := parsePositionRule(tt.value)
			if tt.wantErr {
				if !errors.Is(err, domain.ErrInvalidRule) {
					t.Fatalf("expected ErrInvalidRule, got %v", err)
				}
				return
			}
			if err != nil {
				t.Fatalf("parsePositionRule: %v", err)
			}
			if rule.DocID != tt.wantDoc || rule.Position != tt.wantPos {
				t.Errorf("rule = %+v, expected %s at %d", rule, tt.wantDoc, tt.wantPos)
			}
		})
	}
}

func TestDiversityLambda_DefaultWhenUnset(t *testing.T) {
	repo := New(newMockStore(), "searchgate:")

	lambda, err := repo.DiversityLambda(context.Background())
	if err != nil {
		t.Fatalf("DiversityLambda: %v", err)
	}
	if lambda != domrules.DefaultLambda {
		t.Errorf("lambda = %f, expected default %f", lambda, domrules.DefaultLambda)
	}
}

func TestDiversityLambda_RoundTrip(t *testing.T) {
	repo := New(newMockStore(), "searchgate:")
	ctx := context.Background()

	if err := repo.SetDiversityLambda(ctx, 0.7); err != nil {
		t.Fatalf("SetDiversityLambda: %v", err)
	}

	lambda, err := repo.DiversityLambda(ctx)
	if err != nil {
		t.Fatalf("DiversityLambda: %v", err)
	}
	if lambda != 0.7 {
		t.Errorf("lambda = %f, expected 0.7", lambda)
	}
}

func TestSetDiversityLambda_OutOfRange(t *testing.T) {
	repo := New(newMockStore(), "searchgate:")
	ctx := context.Background()

	for _, lambda := range []float64{-0.1, 1.1} {
		if err := repo.SetDiversityLambda(ctx, lambda); !errors.Is(err, domain.ErrInvalidRule) {
			t.Errorf("lambda %f: expected ErrInvalidRule, got %v", lambda, err)
		}
	}
}

func TestDiversityLambda_CorruptValue(t *testing.T) {
	ms := newMockStore()
	ms.kv["searchgate:rules:diversity_lambda"] = []byte("2.5")
	repo := New(ms, "searchgate:")

	_, err := repo.DiversityLambda(context.Background())
	if !errors.Is(err, domain.ErrInvalidRule) {
		t.Errorf("expected ErrInvalidRule, got %v", err)
	}
}
