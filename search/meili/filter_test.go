package meili

import (
	"testing"

	"github.com/ncobase/facet/search"
	"github.com/ncobase/facet/utils/convert"
)

func TestClauseToFilter(t *testing.T) {
	tests := []struct {
		name   string
		clause search.Clause
		want   string
	}{
		{
			name:   "term string",
			clause: search.Clause{"term": map[string]any{"brand": "o'neill"}},
			want:   `brand = 'o\'neill'`,
		},
		{
			name:   "term bool",
			clause: search.Clause{"term": map[string]any{"in_stock": true}},
			want:   "in_stock = true",
		},
		{
			name:   "term number",
			clause: search.Clause{"term": map[string]any{"rating": 4.5}},
			want:   "rating = 4.5",
		},
		{
			name:   "terms list",
			clause: search.Clause{"terms": map[string]any{"brand": []any{"acme", "bolt"}}},
			want:   "brand IN ['acme', 'bolt']",
		},
		{
			name:   "range both bounds",
			clause: search.Clause{"range": map[string]any{"price": map[string]any{"gte": 10.0, "lt": 50.0}}},
			want:   "price >= 10 AND price < 50",
		},
		{
			name: "bool should",
			clause: search.Clause{"bool": map[string]any{"should": []any{
				search.Clause{"range": map[string]any{"price": map[string]any{"lt": 10.0}}},
				search.Clause{"range": map[string]any{"price": map[string]any{"gte": 50.0}}},
			}}},
			want: "(price < 10 OR price >= 50)",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := clauseToFilter(tt.clause)
			if err != nil {
				t.Fatalf("clauseToFilter: %v", err)
			}
			if got != tt.want {
				t.Errorf("got %q, want %q", got, tt.want)
			}
		})
	}
}

func TestClauseToFilterRejectsUnknownShapes(t *testing.T) {
	bad := []search.Clause{
		{},
		{"match_phrase": map[string]any{"name": "x"}},
		{"term": "not a map"},
		{"terms": map[string]any{"brand": "not a list"}},
		{"range": map[string]any{"price": map[string]any{"between": 3}}},
		{"bool": map[string]any{"must": []any{}}},
	}
	for _, clause := range bad {
		if _, err := clauseToFilter(clause); err == nil {
			t.Errorf("clauseToFilter(%v) should fail", clause)
		}
	}
}

func TestBuildFilterJoinsClauses(t *testing.T) {
	got, err := buildFilter([]search.Clause{
		{"term": map[string]any{"status": "published"}},
		{"terms": map[string]any{"brand": []any{"acme"}}},
	})
	if err != nil {
		t.Fatalf("buildFilter: %v", err)
	}
	want := "status = 'published' AND brand IN ['acme']"
	if got != want {
		t.Errorf("got %q, want %q", got, want)
	}
}

func TestBuildFilterEmpty(t *testing.T) {
	got, err := buildFilter(nil)
	if err != nil {
		t.Fatalf("buildFilter: %v", err)
	}
	if got != "" {
		t.Errorf("expected empty filter, got %q", got)
	}
}

func TestRangeExpr(t *testing.T) {
	lower, upper := 10.0, 50.0

	if got := rangeExpr("price", search.FacetRange{From: &lower, To: &upper}); got != "price >= 10 AND price < 50" {
		t.Errorf("both bounds: got %q", got)
	}
	if got := rangeExpr("price", search.FacetRange{To: &upper}); got != "price < 50" {
		t.Errorf("open lower: got %q", got)
	}
	if got := rangeExpr("price", search.FacetRange{From: &lower}); got != "price >= 10" {
		t.Errorf("open upper: got %q", got)
	}
	if got := rangeExpr("price", search.FacetRange{}); got != "" {
		t.Errorf("open both: got %q", got)
	}
}

func TestTermsBucketsOrdersByCount(t *testing.T) {
	dist := map[string]any{
		"brand": map[string]any{
			"acme": float64(3),
			"bolt": float64(7),
			"core": float64(3),
		},
	}

	buckets := termsBuckets(dist, search.Facet{Field: "brand", Kind: search.FacetTerms})
	if len(buckets) != 3 {
		t.Fatalf("expected 3 buckets, got %d", len(buckets))
	}
	if buckets[0].Key != "bolt" || buckets[0].DocCount != 7 {
		t.Errorf("first bucket should be bolt/7, got %s/%d", buckets[0].Key, buckets[0].DocCount)
	}
	// Equal counts fall back to key order.
	if buckets[1].Key != "acme" || buckets[2].Key != "core" {
		t.Errorf("tiebreak order wrong: %s, %s", buckets[1].Key, buckets[2].Key)
	}
}

func TestTermsBucketsHonorsSize(t *testing.T) {
	dist := map[string]any{
		"brand": map[string]any{"a": float64(1), "b": float64(2), "c": float64(3)},
	}
	buckets := termsBuckets(dist, search.Facet{Field: "brand", Kind: search.FacetTerms, Size: 2})
	if len(buckets) != 2 {
		t.Fatalf("expected 2 buckets, got %d", len(buckets))
	}
	if buckets[0].Key != "c" || buckets[1].Key != "b" {
		t.Errorf("unexpected buckets: %s, %s", buckets[0].Key, buckets[1].Key)
	}
}

func TestTermsBucketsMissingField(t *testing.T) {
	buckets := termsBuckets(map[string]any{}, search.Facet{Field: "brand", Kind: search.FacetTerms})
	if len(buckets) != 0 {
		t.Errorf("expected no buckets, got %d", len(buckets))
	}
}

func TestStringValue(t *testing.T) {
	if got := stringValue("abc"); got != "abc" {
		t.Errorf("string: got %q", got)
	}
	if got := stringValue(float64(1234567890123)); got != "1234567890123" {
		t.Errorf("large number: got %q", got)
	}
	if got := stringValue(true); got != "true" {
		t.Errorf("bool: got %q", got)
	}
}

func TestFilterValueQuoting(t *testing.T) {
	if got := filterValue("it's"); got != `'it\'s'` {
		t.Errorf("escaped string: got %q", got)
	}
	if f, ok := convert.ToFloat64(int64(42)); !ok || filterValue(f) != "42" {
		t.Errorf("int rendering: got %q", filterValue(f))
	}
}
