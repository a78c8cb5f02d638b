package search

import (
	"context"
	"strings"
	"time"
)

// Engine represents a search engine type
type Engine string

const (
	// Elasticsearch engine
	Elasticsearch Engine = "elasticsearch"
	// OpenSearch engine
	OpenSearch Engine = "opensearch"
	// Meilisearch engine
	Meilisearch Engine = "meilisearch"
)

// Clause is a single filter fragment expressed in the Elasticsearch
// query DSL shape, e.g. {"terms": {"brand": ["acme"]}}. Adapters for
// engines with a different filter language translate the recognized
// shapes: term, terms, range and bool/should.
type Clause = map[string]any

// FacetKind enumerates the supported aggregation kinds.
type FacetKind string

const (
	// FacetTerms buckets documents by distinct field value
	FacetTerms FacetKind = "terms"
	// FacetRange buckets documents by configured numeric intervals
	FacetRange FacetKind = "range"
)

// FacetRange is one bucket definition of a range facet. From is
// inclusive and To exclusive. A nil bound leaves that side open.
type FacetRange struct {
	Key  string   `json:"key"`
	From *float64 `json:"from,omitempty"`
	To   *float64 `json:"to,omitempty"`
}

// Facet declares one aggregation computed alongside the hits.
type Facet struct {
	Field  string       `json:"field"`
	Kind   FacetKind    `json:"kind"`
	Size   int          `json:"size,omitempty"`   // terms bucket cap, 0 uses the engine default
	Ranges []FacetRange `json:"ranges,omitempty"` // range facet buckets
}

// Sort is one sort criterion.
type Sort struct {
	Field string `json:"field"`
	Desc  bool   `json:"desc,omitempty"`
}

// ParseSort converts "-price" notation into a Sort, a leading dash
// meaning descending.
func ParseSort(expr string) Sort {
	if strings.HasPrefix(expr, "-") {
		return Sort{Field: strings.TrimPrefix(expr, "-"), Desc: true}
	}
	return Sort{Field: expr}
}

// Request represents a search request
type Request struct {
	Index       string           `json:"index"`
	Query       string           `json:"query,omitempty"`
	QueryFields []string         `json:"query_fields,omitempty"` // fields matched by Query, all when empty
	Filters     []Clause         `json:"filters,omitempty"`
	Facets      map[string]Facet `json:"facets,omitempty"`
	Sorts       []Sort           `json:"sorts,omitempty"`
	From        int              `json:"from,omitempty"`
	Size        int              `json:"size,omitempty"` // 0 leaves the result window to the engine
}

// Hit represents a single search hit
type Hit struct {
	ID     string         `json:"id"`
	Score  float64        `json:"score"`
	Source map[string]any `json:"source"`
}

// Bucket is one aggregation bucket of a response facet. Keys are
// normalized to strings regardless of the underlying field type.
type Bucket struct {
	Key      string `json:"key"`
	DocCount int64  `json:"doc_count"`
	Selected bool   `json:"selected,omitempty"`
}

// Response represents a search response
type Response struct {
	Total    int64               `json:"total"`
	Hits     []Hit               `json:"hits"`
	Facets   map[string][]Bucket `json:"facets,omitempty"`
	Duration time.Duration       `json:"duration"`
	Engine   Engine              `json:"engine"`
}

// HitIDs returns the hit document IDs in ranking order.
func HitIDs(hits []Hit) []string {
	ids := make([]string, 0, len(hits))
	for _, hit := range hits {
		ids = append(ids, hit.ID)
	}
	return ids
}

// IndexRequest represents a document indexing request
type IndexRequest struct {
	Index      string `json:"index"`
	DocumentID string `json:"document_id"`
	Document   any    `json:"document"`
}

// IndexSettings represents settings applied when indices are created
type IndexSettings struct {
	Shards           int      `json:"shards"`
	Replicas         int      `json:"replicas"`
	RefreshInterval  string   `json:"refresh_interval"`
	SearchableFields []string `json:"searchable_fields"`
	FilterableFields []string `json:"filterable_fields"`
}

// Config represents search client configuration
type Config struct {
	IndexPrefix     string
	DefaultEngine   Engine
	AutoCreateIndex bool
	IndexSettings   *IndexSettings
}

// Collector defines the interface for collecting search metrics
type Collector interface {
	SearchQuery(engine string, err error)
	SearchIndex(engine, operation string)
}

// NoOpCollector is a no-op implementation of Collector
type NoOpCollector struct{}

func (NoOpCollector) SearchQuery(engine string, err error) {}
func (NoOpCollector) SearchIndex(engine, operation string) {}

// Adapter defines the interface every search engine adapter implements
type Adapter interface {
	Search(ctx context.Context, req *Request) (*Response, error)
	Index(ctx context.Context, req *IndexRequest) error
	Delete(ctx context.Context, index, documentID string) error
	BulkIndex(ctx context.Context, index string, documents []any) error
	BulkDelete(ctx context.Context, index string, documentIDs []string) error
	IndexExists(ctx context.Context, indexName string) (bool, error)
	CreateIndex(ctx context.Context, indexName string, settings *IndexSettings) error
	Health(ctx context.Context) error
	Type() Engine
}
