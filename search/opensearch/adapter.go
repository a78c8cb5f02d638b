package opensearch

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/ncobase/facet/search"
	"github.com/ncobase/facet/utils/convert"
)

func init() {
	search.RegisterAdapterFactory(search.OpenSearch, func(conn any) (search.Adapter, error) {
		client, ok := conn.(*Client)
		if !ok {
			return nil, fmt.Errorf("invalid opensearch connection type: %T", conn)
		}
		return NewAdapter(client), nil
	})
}

// Adapter implements search.Adapter backed by OpenSearch.
type Adapter struct {
	client *Client
}

// NewAdapter creates an OpenSearch adapter.
func NewAdapter(client *Client) *Adapter {
	return &Adapter{client: client}
}

func (a *Adapter) Search(ctx context.Context, req *search.Request) (*search.Response, error) {
	body, err := convert.ToJSON(buildSearchBody(req))
	if err != nil {
		return nil, err
	}

	osResp, err := a.client.Search(ctx, req.Index, strings.NewReader(body))
	if err != nil {
		return nil, err
	}
	if osResp.Errors {
		return nil, fmt.Errorf("opensearch returned errors for index %s", req.Index)
	}

	hits := make([]search.Hit, len(osResp.Hits.Hits))
	for i, hit := range osResp.Hits.Hits {
		source, _ := convert.ToJSONMap(hit.Source)
		hits[i] = search.Hit{
			ID:     hit.ID,
			Score:  float64(hit.Score),
			Source: source,
		}
	}

	resp := &search.Response{
		Total: int64(osResp.Hits.Total.Value),
		Hits:  hits,
	}

	if len(osResp.Aggregations) > 0 {
		facets, err := parseAggregations(osResp.Aggregations)
		if err != nil {
			return nil, err
		}
		resp.Facets = facets
	}
	return resp, nil
}

func (a *Adapter) Index(ctx context.Context, req *search.IndexRequest) error {
	data, err := convert.ToJSON(req.Document)
	if err != nil {
		return fmt.Errorf("failed to serialize document: %w", err)
	}
	return a.client.IndexDocument(ctx, req.Index, req.DocumentID, strings.NewReader(data))
}

func (a *Adapter) Delete(ctx context.Context, index, documentID string) error {
	return a.client.DeleteDocument(ctx, index, documentID)
}

func (a *Adapter) BulkIndex(ctx context.Context, index string, documents []any) error {
	var buf bytes.Buffer
	for _, doc := range documents {
		m, err := convert.ToJSONMap(doc)
		if err != nil {
			return fmt.Errorf("failed to serialize document: %w", err)
		}
		action := map[string]any{}
		// Documents carrying an "id" field keep it as the engine ID so
		// hits can be joined back to persisted records.
		if id, ok := m["id"].(string); ok && id != "" {
			action["_id"] = id
		}
		if err := json.NewEncoder(&buf).Encode(map[string]any{"index": action}); err != nil {
			return err
		}
		if err := json.NewEncoder(&buf).Encode(m); err != nil {
			return err
		}
	}
	return a.client.Bulk(ctx, index, bytes.NewReader(buf.Bytes()))
}

func (a *Adapter) BulkDelete(ctx context.Context, index string, documentIDs []string) error {
	var buf bytes.Buffer
	for _, id := range documentIDs {
		action := map[string]any{"delete": map[string]any{"_id": id}}
		if err := json.NewEncoder(&buf).Encode(action); err != nil {
			return err
		}
	}
	return a.client.Bulk(ctx, index, bytes.NewReader(buf.Bytes()))
}

func (a *Adapter) IndexExists(ctx context.Context, indexName string) (bool, error) {
	return a.client.IndexExists(ctx, indexName)
}

func (a *Adapter) CreateIndex(ctx context.Context, indexName string, settings *search.IndexSettings) error {
	body, err := convert.ToJSON(buildIndexBody(settings))
	if err != nil {
		return err
	}
	return a.client.CreateIndex(ctx, indexName, strings.NewReader(body))
}

func (a *Adapter) Health(ctx context.Context) error {
	status, err := a.client.Health(ctx)
	if err != nil {
		return err
	}
	if status == "red" {
		return fmt.Errorf("opensearch cluster unhealthy: %s", status)
	}
	return nil
}

func (a *Adapter) Type() search.Engine {
	return search.OpenSearch
}
