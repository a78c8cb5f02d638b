package opensearch

import (
	"encoding/json"
	"fmt"
	"strconv"
	"strings"

	"github.com/ncobase/facet/search"
	"github.com/ncobase/facet/utils/convert"
)

// buildSearchBody renders the engine-neutral request as an OpenSearch
// search body. OpenSearch speaks the same query DSL as Elasticsearch.
func buildSearchBody(req *search.Request) map[string]any {
	body := map[string]any{}

	boolQuery := map[string]any{}
	if req.Query != "" {
		match := map[string]any{"query": req.Query}
		if len(req.QueryFields) > 0 {
			match["fields"] = req.QueryFields
		}
		boolQuery["must"] = []any{map[string]any{"multi_match": match}}
	}
	if len(req.Filters) > 0 {
		filters := make([]any, 0, len(req.Filters))
		for _, clause := range req.Filters {
			filters = append(filters, map[string]any(clause))
		}
		boolQuery["filter"] = filters
	}
	if len(boolQuery) > 0 {
		body["query"] = map[string]any{"bool": boolQuery}
	}

	if len(req.Facets) > 0 {
		aggs := make(map[string]any, len(req.Facets))
		for name, facet := range req.Facets {
			switch facet.Kind {
			case search.FacetRange:
				ranges := make([]any, 0, len(facet.Ranges))
				for _, r := range facet.Ranges {
					bucket := map[string]any{"key": r.Key}
					if r.From != nil {
						bucket["from"] = *r.From
					}
					if r.To != nil {
						bucket["to"] = *r.To
					}
					ranges = append(ranges, bucket)
				}
				aggs[name] = map[string]any{
					"range": map[string]any{"field": facet.Field, "ranges": ranges},
				}
			default:
				terms := map[string]any{"field": facet.Field}
				if facet.Size > 0 {
					terms["size"] = facet.Size
				}
				aggs[name] = map[string]any{"terms": terms}
			}
		}
		body["aggs"] = aggs
	}

	if len(req.Sorts) > 0 {
		sorts := make([]any, 0, len(req.Sorts))
		for _, s := range req.Sorts {
			order := "asc"
			if s.Desc {
				order = "desc"
			}
			sorts = append(sorts, map[string]any{s.Field: map[string]any{"order": order}})
		}
		body["sort"] = sorts
	}

	if req.Size > 0 {
		body["from"] = req.From
		body["size"] = req.Size
	}
	return body
}

type aggregationResult struct {
	Buckets []struct {
		Key         any    `json:"key"`
		KeyAsString string `json:"key_as_string"`
		DocCount    int64  `json:"doc_count"`
	} `json:"buckets"`
}

// parseAggregations converts the raw aggregations payload into facet
// buckets with string-normalized keys.
func parseAggregations(raw json.RawMessage) (map[string][]search.Bucket, error) {
	var aggs map[string]aggregationResult
	if err := json.Unmarshal(raw, &aggs); err != nil {
		return nil, fmt.Errorf("failed to decode aggregations: %w", err)
	}

	facets := make(map[string][]search.Bucket, len(aggs))
	for name, agg := range aggs {
		buckets := make([]search.Bucket, 0, len(agg.Buckets))
		for _, b := range agg.Buckets {
			key := b.KeyAsString
			if key == "" {
				switch k := b.Key.(type) {
				case string:
					key = k
				case bool:
					key = strconv.FormatBool(k)
				case float64:
					key = convert.FormatFloat(k)
				default:
					key = fmt.Sprint(k)
				}
			}
			buckets = append(buckets, search.Bucket{Key: key, DocCount: b.DocCount})
		}
		facets[name] = buckets
	}
	return facets, nil
}

// buildIndexBody renders index settings plus a basic field mapping.
// Searchable fields map to text, filterable fields to keyword, with
// timestamp-style fields stored as long.
func buildIndexBody(settings *search.IndexSettings) map[string]any {
	shards := 1
	replicas := 0
	refreshInterval := "1s"
	var searchableFields, filterableFields []string

	if settings != nil {
		if settings.Shards > 0 {
			shards = settings.Shards
		}
		if settings.Replicas >= 0 {
			replicas = settings.Replicas
		}
		if settings.RefreshInterval != "" {
			refreshInterval = settings.RefreshInterval
		}
		searchableFields = settings.SearchableFields
		filterableFields = settings.FilterableFields
	}

	body := map[string]any{
		"settings": map[string]any{
			"number_of_shards":   shards,
			"number_of_replicas": replicas,
			"refresh_interval":   refreshInterval,
		},
	}

	properties := map[string]any{}
	for _, field := range searchableFields {
		name := strings.TrimSuffix(field, "^2")
		properties[name] = map[string]any{"type": "text"}
	}
	for _, field := range filterableFields {
		if strings.HasSuffix(field, "_at") {
			properties[field] = map[string]any{"type": "long"}
		} else {
			properties[field] = map[string]any{"type": "keyword"}
		}
	}
	if len(properties) > 0 {
		body["mappings"] = map[string]any{"properties": properties}
	}
	return body
}
