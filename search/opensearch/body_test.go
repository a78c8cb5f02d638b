package opensearch

import (
	"encoding/json"
	"testing"

	"github.com/ncobase/facet/search"
)

func TestBuildSearchBodyFiltersAndWindow(t *testing.T) {
	req := &search.Request{
		Index:   "products",
		Query:   "laptop",
		Filters: []search.Clause{{"term": map[string]any{"status": "published"}}},
		From:    8,
		Size:    4,
	}
	body := buildSearchBody(req)

	boolQuery := body["query"].(map[string]any)["bool"].(map[string]any)
	if len(boolQuery["filter"].([]any)) != 1 {
		t.Fatalf("expected one filter, got %v", boolQuery["filter"])
	}
	if body["from"] != 8 || body["size"] != 4 {
		t.Errorf("expected window 8/4, got %v/%v", body["from"], body["size"])
	}
}

func TestParseAggregations(t *testing.T) {
	raw := json.RawMessage(`{
		"brand": {"buckets": [
			{"key": "acme", "doc_count": 5},
			{"key": "zulu", "doc_count": 2}
		]},
		"in_stock": {"buckets": [
			{"key": 1, "key_as_string": "true", "doc_count": 7}
		]}
	}`)

	facets, err := parseAggregations(raw)
	if err != nil {
		t.Fatalf("parse failed: %v", err)
	}
	brand := facets["brand"]
	if len(brand) != 2 || brand[0].Key != "acme" || brand[0].DocCount != 5 {
		t.Errorf("unexpected brand buckets %+v", brand)
	}
	if facets["in_stock"][0].Key != "true" {
		t.Errorf("expected normalized boolean key, got %+v", facets["in_stock"])
	}
}

func TestParseAggregationsInvalid(t *testing.T) {
	if _, err := parseAggregations(json.RawMessage(`[1,2]`)); err == nil {
		t.Fatal("expected decode error")
	}
}

func TestBuildIndexBodyMappings(t *testing.T) {
	body := buildIndexBody(&search.IndexSettings{
		Shards:           2,
		Replicas:         1,
		RefreshInterval:  "5s",
		SearchableFields: []string{"name^2", "description"},
		FilterableFields: []string{"brand", "created_at"},
	})

	settings := body["settings"].(map[string]any)
	if settings["number_of_shards"] != 2 || settings["refresh_interval"] != "5s" {
		t.Errorf("unexpected settings %v", settings)
	}

	props := body["mappings"].(map[string]any)["properties"].(map[string]any)
	if props["name"].(map[string]any)["type"] != "text" {
		t.Errorf("expected text mapping for name, got %v", props["name"])
	}
	if props["brand"].(map[string]any)["type"] != "keyword" {
		t.Errorf("expected keyword mapping for brand, got %v", props["brand"])
	}
	if props["created_at"].(map[string]any)["type"] != "long" {
		t.Errorf("expected long mapping for created_at, got %v", props["created_at"])
	}
}

func TestBuildIndexBodyDefaults(t *testing.T) {
	body := buildIndexBody(nil)
	if _, ok := body["mappings"]; ok {
		t.Error("expected no mappings without configured fields")
	}
	settings := body["settings"].(map[string]any)
	if settings["number_of_shards"] != 1 {
		t.Errorf("expected default shard count, got %v", settings["number_of_shards"])
	}
}
