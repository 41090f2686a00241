package ranking

import (
	"math"
	"testing"

	"github.com/kailas-cloud/searchgate/internal/domain/search/candidate"
)

func TestMMR_LambdaOneKeepsRelevanceOrder(t *testing.T) {
	items := []candidate.Item{
		makeItemMeta("a", 0.9, "tech", "web"),
		makeItemMeta("b", 0.8, "tech", "web"),
		makeItemMeta("c", 0.7, "tech", "web"),
	}

	out := mmrReorder(items, 1.0, 3)

	if !sameIDs(docIDs(out), []string{"a", "b", "c"}) {
		t.Fatalf("expected relevance order, got %v", docIDs(out))
	}
}

func TestMMR_DiversityBreaksCategoryRun(t *testing.T) {
	// With lambda 0.5 the second pick pays a 0.5*0.6 penalty for sharing
	// tech with a, which outweighs b's 0.05 relevance edge over c.
	items := []candidate.Item{
		makeItemMeta("a", 0.9, "tech", ""),
		makeItemMeta("b", 0.85, "tech", ""),
		makeItemMeta("c", 0.7, "travel", ""),
	}

	out := mmrReorder(items, 0.5, 3)

	if !sameIDs(docIDs(out), []string{"a", "c", "b"}) {
		t.Fatalf("expected [a c b], got %v", docIDs(out))
	}
}

func TestMMR_LambdaZeroFirstPickIsMostRelevant(t *testing.T) {
	// Similarity to an empty selection is 0, so the first pick is still the
	// top-relevance item even with lambda 0.
	items := []candidate.Item{
		makeItemMeta("b", 0.8, "tech", "web"),
		makeItemMeta("a", 0.9, "tech", "web"),
	}

	out := mmrReorder(items, 0.0, 2)

	// lambda=0 makes relevance contribution zero for every pick, so the
	// first maximizer in list order wins.
	if out[0].DocID() != "b" {
		t.Fatalf("expected first-in-order pick b, got %s", out[0].DocID())
	}
}

func TestMMR_OutOfRangeLambdaFallsBack(t *testing.T) {
	items := []candidate.Item{
		makeItemMeta("a", 0.9, "tech", ""),
		makeItemMeta("b", 0.85, "tech", ""),
		makeItemMeta("c", 0.7, "travel", ""),
	}

	fallback := mmrReorder(items, 1.5, 3)
	explicit := mmrReorder(items, 0.5, 3)

	if !sameIDs(docIDs(fallback), docIDs(explicit)) {
		t.Fatalf("expected fallback to default lambda: %v vs %v", docIDs(fallback), docIDs(explicit))
	}
}

func TestMMR_StopsAtTopN(t *testing.T) {
	items := []candidate.Item{
		makeItem("a", 0.9),
		makeItem("b", 0.8),
		makeItem("c", 0.7),
	}

	out := mmrReorder(items, 0.5, 2)
	if len(out) != 2 {
		t.Fatalf("expected 2 items, got %d", len(out))
	}
}

func TestMMR_Deterministic(t *testing.T) {
	items := []candidate.Item{
		makeItemMeta("a", 0.5, "tech", "web"),
		makeItemMeta("b", 0.5, "tech", "web"),
		makeItemMeta("c", 0.5, "tech", "web"),
	}

	first := docIDs(mmrReorder(items, 0.5, 3))
	for range 20 {
		if got := docIDs(mmrReorder(items, 0.5, 3)); !sameIDs(got, first) {
			t.Fatalf("non-deterministic reorder: %v vs %v", got, first)
		}
	}
}

func TestMetadataSimilarity(t *testing.T) {
	tests := []struct {
		name string
		a, b candidate.Item
		want float64
	}{
		{
			name: "category and source",
			a:    makeItemMeta("a", 1, "tech", "web"),
			b:    makeItemMeta("b", 1, "tech", "web"),
			want: 1.0,
		},
		{
			name: "category only",
			a:    makeItemMeta("a", 1, "tech", "web"),
			b:    makeItemMeta("b", 1, "tech", "crawl"),
			want: 0.6,
		},
		{
			name: "source only",
			a:    makeItemMeta("a", 1, "tech", "web"),
			b:    makeItemMeta("b", 1, "travel", "web"),
			want: 0.4,
		},
		{
			name: "nothing shared",
			a:    makeItemMeta("a", 1, "tech", "web"),
			b:    makeItemMeta("b", 1, "travel", "crawl"),
			want: 0,
		},
		{
			name: "empty fields never match",
			a:    makeItemMeta("a", 1, "", ""),
			b:    makeItemMeta("b", 1, "", ""),
			want: 0,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := metadataSimilarity(&tt.a, &tt.b)
			if math.Abs(got-tt.want) > 1e-9 {
				t.Errorf("similarity = %f, expected %f", got, tt.want)
			}
		})
	}
}
