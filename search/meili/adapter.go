package meili

import (
	"context"
	"fmt"
	"sort"
	"strings"

	"github.com/ncobase/facet/search"
	"github.com/ncobase/facet/utils/convert"
)

func init() {
	search.RegisterAdapterFactory(search.Meilisearch, func(conn any) (search.Adapter, error) {
		client, ok := conn.(*Client)
		if !ok {
			return nil, fmt.Errorf("invalid meilisearch connection type: %T", conn)
		}
		return NewAdapter(client), nil
	})
}

// Adapter implements search.Adapter backed by Meilisearch.
type Adapter struct {
	client *Client
}

// NewAdapter creates a Meilisearch adapter.
func NewAdapter(client *Client) *Adapter {
	return &Adapter{client: client}
}

func (a *Adapter) Search(ctx context.Context, req *search.Request) (*search.Response, error) {
	baseFilter, err := buildFilter(req.Filters)
	if err != nil {
		return nil, err
	}

	params := &SearchParams{Offset: int64(req.From)}
	if req.Size > 0 {
		params.Limit = int64(req.Size)
	}
	if baseFilter != "" {
		params.Filter = baseFilter
	}
	if len(req.QueryFields) > 0 {
		params.AttributesToSearchOn = req.QueryFields
	}
	for _, s := range req.Sorts {
		order := "asc"
		if s.Desc {
			order = "desc"
		}
		params.Sort = append(params.Sort, s.Field+":"+order)
	}
	for _, facet := range req.Facets {
		if facet.Kind == search.FacetTerms {
			params.Facets = append(params.Facets, facet.Field)
		}
	}

	msResp, err := a.client.Search(req.Index, req.Query, params)
	if err != nil {
		return nil, err
	}

	resp := &search.Response{
		Total: int64(msResp.EstimatedTotalHits),
		Hits:  make([]search.Hit, 0, len(msResp.Hits)),
	}
	for _, hit := range msResp.Hits {
		source, err := convert.ToJSONMap(hit)
		if err != nil {
			continue
		}
		// Meilisearch does not expose relevance scores, every hit
		// reports 1.0 so callers see a uniform ranking signal.
		h := search.Hit{Score: 1.0, Source: source}
		if id, ok := source["id"]; ok {
			h.ID = stringValue(id)
		}
		resp.Hits = append(resp.Hits, h)
	}

	facets, err := a.collectFacets(req, baseFilter, msResp.FacetDistribution)
	if err != nil {
		return nil, err
	}
	resp.Facets = facets
	return resp, nil
}

// collectFacets assembles response facets. Terms facets come from the
// facet distribution of the main query. Range facets have no native
// counterpart, each bucket is counted with a filtered probe query.
func (a *Adapter) collectFacets(req *search.Request, baseFilter string, distribution any) (map[string][]search.Bucket, error) {
	if len(req.Facets) == 0 {
		return nil, nil
	}

	dist := map[string]any{}
	if distribution != nil {
		if m, err := convert.ToJSONMap(distribution); err == nil {
			dist = m
		}
	}

	facets := make(map[string][]search.Bucket, len(req.Facets))
	for name, facet := range req.Facets {
		switch facet.Kind {
		case search.FacetTerms:
			facets[name] = termsBuckets(dist, facet)
		case search.FacetRange:
			buckets, err := a.rangeBuckets(req, baseFilter, facet)
			if err != nil {
				return nil, err
			}
			facets[name] = buckets
		}
	}
	return facets, nil
}

func termsBuckets(dist map[string]any, facet search.Facet) []search.Bucket {
	counts, ok := dist[facet.Field].(map[string]any)
	if !ok {
		return []search.Bucket{}
	}
	buckets := make([]search.Bucket, 0, len(counts))
	for key, raw := range counts {
		count, _ := convert.ToInt64(raw)
		buckets = append(buckets, search.Bucket{Key: key, DocCount: count})
	}
	// The distribution is an unordered map, order buckets the way a
	// terms aggregation would: count descending, key as tiebreak.
	sort.Slice(buckets, func(i, j int) bool {
		if buckets[i].DocCount != buckets[j].DocCount {
			return buckets[i].DocCount > buckets[j].DocCount
		}
		return buckets[i].Key < buckets[j].Key
	})
	if facet.Size > 0 && len(buckets) > facet.Size {
		buckets = buckets[:facet.Size]
	}
	return buckets
}

func (a *Adapter) rangeBuckets(req *search.Request, baseFilter string, facet search.Facet) ([]search.Bucket, error) {
	buckets := make([]search.Bucket, 0, len(facet.Ranges))
	for _, r := range facet.Ranges {
		parts := make([]string, 0, 3)
		if baseFilter != "" {
			parts = append(parts, baseFilter)
		}
		if expr := rangeExpr(facet.Field, r); expr != "" {
			parts = append(parts, expr)
		}

		probe := &SearchParams{Limit: 1}
		if len(parts) > 0 {
			probe.Filter = strings.Join(parts, " AND ")
		}
		if len(req.QueryFields) > 0 {
			probe.AttributesToSearchOn = req.QueryFields
		}
		count, err := a.client.Search(req.Index, req.Query, probe)
		if err != nil {
			return nil, fmt.Errorf("range bucket %q: %w", r.Key, err)
		}
		buckets = append(buckets, search.Bucket{Key: r.Key, DocCount: int64(count.EstimatedTotalHits)})
	}
	return buckets, nil
}

func rangeExpr(field string, r search.FacetRange) string {
	parts := make([]string, 0, 2)
	if r.From != nil {
		parts = append(parts, fmt.Sprintf("%s >= %s", field, convert.FormatFloat(*r.From)))
	}
	if r.To != nil {
		parts = append(parts, fmt.Sprintf("%s < %s", field, convert.FormatFloat(*r.To)))
	}
	return strings.Join(parts, " AND ")
}

// buildFilter AND-joins the translated filter clauses.
func buildFilter(clauses []search.Clause) (string, error) {
	if len(clauses) == 0 {
		return "", nil
	}
	parts := make([]string, 0, len(clauses))
	for _, clause := range clauses {
		part, err := clauseToFilter(clause)
		if err != nil {
			return "", err
		}
		parts = append(parts, part)
	}
	return strings.Join(parts, " AND "), nil
}

func (a *Adapter) Index(ctx context.Context, req *search.IndexRequest) error {
	doc, err := convert.ToJSONMap(req.Document)
	if err != nil {
		return fmt.Errorf("failed to serialize document: %w", err)
	}
	if req.DocumentID != "" {
		doc["id"] = req.DocumentID
	}
	if _, ok := doc["id"]; ok {
		return a.client.IndexDocuments(req.Index, doc, "id")
	}
	return a.client.IndexDocuments(req.Index, doc)
}

func (a *Adapter) Delete(ctx context.Context, index, documentID string) error {
	return a.client.DeleteDocuments(index, documentID)
}

func (a *Adapter) BulkIndex(ctx context.Context, index string, documents []any) error {
	docs := make([]map[string]any, 0, len(documents))
	withID := true
	for _, doc := range documents {
		m, err := convert.ToJSONMap(doc)
		if err != nil {
			return fmt.Errorf("failed to serialize document: %w", err)
		}
		if _, ok := m["id"]; !ok {
			withID = false
		}
		docs = append(docs, m)
	}
	if withID {
		return a.client.IndexDocuments(index, docs, "id")
	}
	return a.client.IndexDocuments(index, docs)
}

func (a *Adapter) BulkDelete(ctx context.Context, index string, documentIDs []string) error {
	if len(documentIDs) == 0 {
		return nil
	}
	return a.client.DeleteDocuments(index, documentIDs...)
}

func (a *Adapter) IndexExists(ctx context.Context, indexName string) (bool, error) {
	return a.client.IndexExists(indexName)
}

func (a *Adapter) CreateIndex(ctx context.Context, indexName string, settings *search.IndexSettings) error {
	if err := a.client.CreateIndex(indexName, "id"); err != nil {
		return err
	}
	if settings == nil {
		return nil
	}

	sm := a.client.GetClient()
	if sm == nil {
		return errClientNotInitialized
	}
	index := sm.Index(indexName)

	if len(settings.SearchableFields) > 0 {
		searchable := make([]string, 0, len(settings.SearchableFields))
		for _, field := range settings.SearchableFields {
			// Boost suffixes like "name^2" are query-DSL notation.
			if i := strings.Index(field, "^"); i >= 0 {
				field = field[:i]
			}
			searchable = append(searchable, field)
		}
		if _, err := index.UpdateSearchableAttributes(&searchable); err != nil {
			return fmt.Errorf("failed to update searchable attributes: %w", err)
		}
	}
	if len(settings.FilterableFields) > 0 {
		filterable := make([]any, 0, len(settings.FilterableFields))
		for _, field := range settings.FilterableFields {
			filterable = append(filterable, field)
		}
		if _, err := index.UpdateFilterableAttributes(&filterable); err != nil {
			return fmt.Errorf("failed to update filterable attributes: %w", err)
		}
	}
	return nil
}

func (a *Adapter) Health(ctx context.Context) error {
	return a.client.Health()
}

func (a *Adapter) Type() search.Engine {
	return search.Meilisearch
}

// stringValue renders a document ID the way bucket keys are rendered,
// so numeric IDs round-trip without a float exponent.
func stringValue(v any) string {
	switch val := v.(type) {
	case string:
		return val
	case bool:
		if val {
			return "true"
		}
		return "false"
	default:
		if f, ok := convert.ToFloat64(v); ok {
			return convert.FormatFloat(f)
		}
		return fmt.Sprint(v)
	}
}
