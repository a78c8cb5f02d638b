package elastic

import (
	"encoding/json"
	"fmt"
	"io"
	"strconv"

	"github.com/ncobase/facet/search"
	"github.com/ncobase/facet/utils/convert"
)

func encodeJSON(w io.Writer, v any) error {
	if err := json.NewEncoder(w).Encode(v); err != nil {
		return fmt.Errorf("failed to encode request body: %w", err)
	}
	return nil
}

// buildSearchBody renders the engine-neutral request as an
// Elasticsearch search body. Filters go into the bool filter context
// so they do not influence scoring.
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
		body["aggs"] = buildAggregations(req.Facets)
	}
	if len(req.Sorts) > 0 {
		body["sort"] = buildSort(req.Sorts)
	}
	if req.Size > 0 {
		body["from"] = req.From
		body["size"] = req.Size
	}
	return body
}

func buildAggregations(facets map[string]search.Facet) map[string]any {
	aggs := make(map[string]any, len(facets))
	for name, facet := range facets {
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
	return aggs
}

func buildSort(sorts []search.Sort) []any {
	out := make([]any, 0, len(sorts))
	for _, s := range sorts {
		order := "asc"
		if s.Desc {
			order = "desc"
		}
		out = append(out, map[string]any{s.Field: map[string]any{"order": order}})
	}
	return out
}

type searchResult struct {
	Hits struct {
		Total struct {
			Value int64 `json:"value"`
		} `json:"total"`
		Hits []struct {
			ID     string         `json:"_id"`
			Score  float64        `json:"_score"`
			Source map[string]any `json:"_source"`
		} `json:"hits"`
	} `json:"hits"`
	Aggregations map[string]aggregationResult `json:"aggregations"`
}

type aggregationResult struct {
	Buckets []bucketResult `json:"buckets"`
}

type bucketResult struct {
	Key         any    `json:"key"`
	KeyAsString string `json:"key_as_string"`
	DocCount    int64  `json:"doc_count"`
}

func toResponse(result *searchResult) *search.Response {
	resp := &search.Response{
		Total: result.Hits.Total.Value,
		Hits:  make([]search.Hit, 0, len(result.Hits.Hits)),
	}
	for _, h := range result.Hits.Hits {
		resp.Hits = append(resp.Hits, search.Hit{ID: h.ID, Score: h.Score, Source: h.Source})
	}
	if len(result.Aggregations) > 0 {
		resp.Facets = make(map[string][]search.Bucket, len(result.Aggregations))
		for name, agg := range result.Aggregations {
			buckets := make([]search.Bucket, 0, len(agg.Buckets))
			for _, b := range agg.Buckets {
				buckets = append(buckets, search.Bucket{Key: bucketKey(b), DocCount: b.DocCount})
			}
			resp.Facets[name] = buckets
		}
	}
	return resp
}

// bucketKey normalizes aggregation keys to strings. Boolean and numeric
// fields report a key_as_string alongside the raw key.
func bucketKey(b bucketResult) string {
	if b.KeyAsString != "" {
		return b.KeyAsString
	}
	switch k := b.Key.(type) {
	case string:
		return k
	case bool:
		return strconv.FormatBool(k)
	case float64:
		return convert.FormatFloat(k)
	default:
		return fmt.Sprint(k)
	}
}
