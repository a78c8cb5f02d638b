package search

import (
	"context"
	"errors"
	"testing"
)

// stubAdapter is a minimal in-memory adapter for client tests.
type stubAdapter struct {
	engine        Engine
	healthy       bool
	existing      map[string]bool
	created       []string
	lastIndex     string
	searchCalls   int
	lastSearchReq *Request
}

func newStubAdapter(engine Engine, healthy bool) *stubAdapter {
	return &stubAdapter{engine: engine, healthy: healthy, existing: make(map[string]bool)}
}

func (s *stubAdapter) Search(_ context.Context, req *Request) (*Response, error) {
	s.searchCalls++
	s.lastSearchReq = req
	return &Response{Total: 1, Hits: []Hit{{ID: "1"}}}, nil
}

func (s *stubAdapter) Index(_ context.Context, req *IndexRequest) error {
	s.lastIndex = req.Index
	return nil
}

func (s *stubAdapter) Delete(_ context.Context, index, _ string) error {
	s.lastIndex = index
	return nil
}

func (s *stubAdapter) BulkIndex(_ context.Context, index string, _ []any) error {
	s.lastIndex = index
	return nil
}

func (s *stubAdapter) BulkDelete(_ context.Context, index string, _ []string) error {
	s.lastIndex = index
	return nil
}

func (s *stubAdapter) IndexExists(_ context.Context, indexName string) (bool, error) {
	return s.existing[indexName], nil
}

func (s *stubAdapter) CreateIndex(_ context.Context, indexName string, _ *IndexSettings) error {
	s.created = append(s.created, indexName)
	s.existing[indexName] = true
	return nil
}

func (s *stubAdapter) Health(_ context.Context) error {
	if !s.healthy {
		return errors.New("unhealthy")
	}
	return nil
}

func (s *stubAdapter) Type() Engine { return s.engine }

type countingCollector struct {
	queries int
	indexes int
}

func (c *countingCollector) SearchQuery(string, error)  { c.queries++ }
func (c *countingCollector) SearchIndex(string, string) { c.indexes++ }

func TestSetEnginePrefersConfiguredDefault(t *testing.T) {
	es := newStubAdapter(Elasticsearch, true)
	meili := newStubAdapter(Meilisearch, true)
	c := NewClientWithConfig(nil, &Config{DefaultEngine: Meilisearch}, es, meili)

	if c.Engine() != Meilisearch {
		t.Fatalf("expected meilisearch, got %s", c.Engine())
	}
}

func TestSetEngineFallsBackByPriority(t *testing.T) {
	es := newStubAdapter(Elasticsearch, true)
	meili := newStubAdapter(Meilisearch, true)
	unhealthy := newStubAdapter(OpenSearch, false)
	c := NewClientWithConfig(nil, &Config{}, meili, es, unhealthy)

	if c.Engine() != Elasticsearch {
		t.Fatalf("expected elasticsearch, got %s", c.Engine())
	}
}

func TestSetEngineUnhealthyDefaultFallsBack(t *testing.T) {
	down := newStubAdapter(Elasticsearch, false)
	meili := newStubAdapter(Meilisearch, true)
	c := NewClientWithConfig(nil, &Config{DefaultEngine: Elasticsearch}, down, meili)

	if c.Engine() != Meilisearch {
		t.Fatalf("expected meilisearch fallback, got %s", c.Engine())
	}
}

func TestSearchNoEngine(t *testing.T) {
	c := NewClientWithConfig(nil, &Config{})
	_, err := c.Search(context.Background(), &Request{Index: "products"})
	if !errors.Is(err, ErrNoEngineAvailable) {
		t.Fatalf("expected ErrNoEngineAvailable, got %v", err)
	}
}

func TestSearchStampsEngineAndPrefix(t *testing.T) {
	es := newStubAdapter(Elasticsearch, true)
	collector := &countingCollector{}
	c := NewClientWithConfig(collector, &Config{DefaultEngine: Elasticsearch, IndexPrefix: "shop"}, es)

	resp, err := c.Search(context.Background(), &Request{Index: "products"})
	if err != nil {
		t.Fatalf("search failed: %v", err)
	}
	if resp.Engine != Elasticsearch {
		t.Errorf("expected engine stamp, got %s", resp.Engine)
	}
	if es.lastSearchReq.Index != "shop-products" {
		t.Errorf("expected prefixed index, got %s", es.lastSearchReq.Index)
	}
	if collector.queries != 1 {
		t.Errorf("expected one collected query, got %d", collector.queries)
	}
}

func TestBulkIndexCreatesIndexOnce(t *testing.T) {
	es := newStubAdapter(Elasticsearch, true)
	c := NewClientWithConfig(nil, &Config{DefaultEngine: Elasticsearch, AutoCreateIndex: true}, es)

	docs := []any{map[string]any{"id": "1"}}
	if err := c.BulkIndex(context.Background(), "products", docs); err != nil {
		t.Fatalf("bulk index failed: %v", err)
	}
	if err := c.BulkIndex(context.Background(), "products", docs); err != nil {
		t.Fatalf("bulk index failed: %v", err)
	}
	if len(es.created) != 1 {
		t.Fatalf("expected one index creation, got %d", len(es.created))
	}
}

func TestParseSort(t *testing.T) {
	if s := ParseSort("-price"); s.Field != "price" || !s.Desc {
		t.Errorf("expected descending price, got %+v", s)
	}
	if s := ParseSort("name"); s.Field != "name" || s.Desc {
		t.Errorf("expected ascending name, got %+v", s)
	}
}

func TestHitIDsPreservesOrder(t *testing.T) {
	hits := []Hit{{ID: "c"}, {ID: "a"}, {ID: "b"}}
	ids := HitIDs(hits)
	if len(ids) != 3 || ids[0] != "c" || ids[1] != "a" || ids[2] != "b" {
		t.Fatalf("expected ranking order preserved, got %v", ids)
	}
}
