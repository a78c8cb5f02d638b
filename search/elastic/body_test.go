package elastic

import (
	"encoding/json"
	"testing"

	"github.com/ncobase/facet/search"
	"github.com/ncobase/facet/utils/convert"
)

func TestBuildSearchBodyFull(t *testing.T) {
	from := 0.0
	to := 50.0
	req := &search.Request{
		Index:       "products",
		Query:       "laptop",
		QueryFields: []string{"name", "description"},
		Filters: []search.Clause{
			{"term": map[string]any{"status": "published"}},
			{"terms": map[string]any{"brand": []any{"acme"}}},
		},
		Facets: map[string]search.Facet{
			"brand": {Field: "brand", Kind: search.FacetTerms, Size: 20},
			"price": {Field: "price", Kind: search.FacetRange, Ranges: []search.FacetRange{
				{Key: "0_50", From: &from, To: &to},
				{Key: "50_*", From: &to},
			}},
		},
		Sorts: []search.Sort{{Field: "price", Desc: true}},
		From:  4,
		Size:  4,
	}

	body := buildSearchBody(req)

	boolQuery := body["query"].(map[string]any)["bool"].(map[string]any)
	must := boolQuery["must"].([]any)
	if len(must) != 1 {
		t.Fatalf("expected one must clause, got %d", len(must))
	}
	match := must[0].(map[string]any)["multi_match"].(map[string]any)
	if match["query"] != "laptop" {
		t.Errorf("expected query laptop, got %v", match["query"])
	}

	filters := boolQuery["filter"].([]any)
	if len(filters) != 2 {
		t.Fatalf("expected two filter clauses, got %d", len(filters))
	}

	aggs := body["aggs"].(map[string]any)
	brandAgg := aggs["brand"].(map[string]any)["terms"].(map[string]any)
	if brandAgg["field"] != "brand" || brandAgg["size"] != 20 {
		t.Errorf("unexpected terms agg %v", brandAgg)
	}
	priceAgg := aggs["price"].(map[string]any)["range"].(map[string]any)
	ranges := priceAgg["ranges"].([]any)
	if len(ranges) != 2 {
		t.Fatalf("expected two ranges, got %d", len(ranges))
	}
	first := ranges[0].(map[string]any)
	if first["key"] != "0_50" || first["from"] != 0.0 || first["to"] != 50.0 {
		t.Errorf("unexpected range bucket %v", first)
	}
	open := ranges[1].(map[string]any)
	if _, hasTo := open["to"]; hasTo {
		t.Errorf("expected open upper bound, got %v", open)
	}

	sorts := body["sort"].([]any)
	order := sorts[0].(map[string]any)["price"].(map[string]any)["order"]
	if order != "desc" {
		t.Errorf("expected desc order, got %v", order)
	}

	if body["from"] != 4 || body["size"] != 4 {
		t.Errorf("expected window 4/4, got %v/%v", body["from"], body["size"])
	}
}

func TestBuildSearchBodyEmpty(t *testing.T) {
	body := buildSearchBody(&search.Request{Index: "products"})
	if _, ok := body["query"]; ok {
		t.Error("expected no query section")
	}
	if _, ok := body["from"]; ok {
		t.Error("expected no result window")
	}
	if _, ok := body["aggs"]; ok {
		t.Error("expected no aggregations")
	}
}

func TestBuildSearchBodyUnpagedKeepsEngineDefault(t *testing.T) {
	body := buildSearchBody(&search.Request{Index: "products", Query: "x"})
	if _, ok := body["size"]; ok {
		t.Error("expected size to be left to the engine")
	}
}

func TestToResponseParsesHitsAndFacets(t *testing.T) {
	raw := `{
		"hits": {
			"total": {"value": 10},
			"hits": [
				{"_id": "a", "_score": 1.5, "_source": {"name": "one"}},
				{"_id": "b", "_score": null, "_source": {"name": "two"}}
			]
		},
		"aggregations": {
			"is_active": {"buckets": [
				{"key": 1, "key_as_string": "true", "doc_count": 7},
				{"key": 0, "key_as_string": "false", "doc_count": 3}
			]},
			"price": {"buckets": [
				{"key": "0_50", "from": 0, "to": 50, "doc_count": 4},
				{"key": "50_*", "from": 50, "doc_count": 0}
			]}
		}
	}`

	var result searchResult
	if err := json.Unmarshal([]byte(raw), &result); err != nil {
		t.Fatalf("failed to decode fixture: %v", err)
	}

	resp := toResponse(&result)
	if resp.Total != 10 {
		t.Errorf("expected total 10, got %d", resp.Total)
	}
	if len(resp.Hits) != 2 || resp.Hits[0].ID != "a" || resp.Hits[1].Score != 0 {
		t.Errorf("unexpected hits %+v", resp.Hits)
	}

	active := resp.Facets["is_active"]
	if len(active) != 2 || active[0].Key != "true" || active[0].DocCount != 7 {
		t.Errorf("unexpected boolean buckets %+v", active)
	}
	price := resp.Facets["price"]
	if price[1].Key != "50_*" || price[1].DocCount != 0 {
		t.Errorf("unexpected range buckets %+v", price)
	}
}

func TestBucketKeyNormalization(t *testing.T) {
	cases := []struct {
		in   bucketResult
		want string
	}{
		{bucketResult{Key: "acme"}, "acme"},
		{bucketResult{Key: true}, "true"},
		{bucketResult{Key: float64(50)}, "50"},
		{bucketResult{Key: float64(1), KeyAsString: "true"}, "true"},
	}
	for _, c := range cases {
		if got := bucketKey(c.in); got != c.want {
			t.Errorf("bucketKey(%v) = %q, want %q", c.in, got, c.want)
		}
	}
	if convert.FormatFloat(49.5) != "49.5" {
		t.Error("expected fractional keys preserved")
	}
}
