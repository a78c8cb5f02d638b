package elastic

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
	search.RegisterAdapterFactory(search.Elasticsearch, func(conn any) (search.Adapter, error) {
		client, ok := conn.(*Client)
		if !ok {
			return nil, fmt.Errorf("invalid elasticsearch connection type: %T", conn)
		}
		return NewAdapter(client), nil
	})
}

// Adapter implements search.Adapter backed by Elasticsearch.
type Adapter struct {
	client *Client
}

// NewAdapter creates an Elasticsearch adapter.
func NewAdapter(client *Client) *Adapter {
	return &Adapter{client: client}
}

func (a *Adapter) Search(ctx context.Context, req *search.Request) (*search.Response, error) {
	var buf bytes.Buffer
	if err := encodeJSON(&buf, buildSearchBody(req)); err != nil {
		return nil, err
	}

	res, err := a.client.Search(ctx, req.Index, &buf)
	if err != nil {
		return nil, err
	}
	defer res.Body.Close()

	if res.IsError() {
		return nil, fmt.Errorf("elasticsearch search error: %s", res.String())
	}

	var result searchResult
	if err := json.NewDecoder(res.Body).Decode(&result); err != nil {
		return nil, fmt.Errorf("failed to decode search response: %w", err)
	}
	return toResponse(&result), nil
}

func (a *Adapter) Index(ctx context.Context, req *search.IndexRequest) error {
	return a.client.IndexDocument(ctx, req.Index, req.DocumentID, req.Document)
}

func (a *Adapter) Delete(ctx context.Context, index, documentID string) error {
	return a.client.DeleteDocument(ctx, index, documentID)
}

func (a *Adapter) BulkIndex(ctx context.Context, index string, documents []any) error {
	es := a.client.GetClient()
	if es == nil {
		return errClientNotInitialized
	}

	var buf bytes.Buffer
	for _, doc := range documents {
		m, err := convert.ToJSONMap(doc)
		if err != nil {
			return fmt.Errorf("failed to serialize document: %w", err)
		}
		action := map[string]any{"_index": index}
		// Documents carrying an "id" field keep it as the engine ID so
		// hits can be joined back to persisted records.
		if id, ok := m["id"].(string); ok && id != "" {
			action["_id"] = id
		}
		if err := encodeJSON(&buf, map[string]any{"index": action}); err != nil {
			return err
		}
		if err := encodeJSON(&buf, m); err != nil {
			return err
		}
	}

	res, err := es.Bulk(bytes.NewReader(buf.Bytes()),
		es.Bulk.WithContext(ctx),
		es.Bulk.WithIndex(index),
		es.Bulk.WithRefresh("true"),
	)
	if err != nil {
		return fmt.Errorf("bulk index failed: %w", err)
	}
	defer res.Body.Close()

	if res.IsError() {
		return fmt.Errorf("bulk index error: %s", res.String())
	}
	return nil
}

func (a *Adapter) BulkDelete(ctx context.Context, index string, documentIDs []string) error {
	es := a.client.GetClient()
	if es == nil {
		return errClientNotInitialized
	}

	var buf bytes.Buffer
	for _, id := range documentIDs {
		action := map[string]any{"delete": map[string]any{"_index": index, "_id": id}}
		if err := encodeJSON(&buf, action); err != nil {
			return err
		}
	}

	res, err := es.Bulk(bytes.NewReader(buf.Bytes()),
		es.Bulk.WithContext(ctx),
		es.Bulk.WithIndex(index),
		es.Bulk.WithRefresh("true"),
	)
	if err != nil {
		return fmt.Errorf("bulk delete failed: %w", err)
	}
	defer res.Body.Close()

	if res.IsError() {
		return fmt.Errorf("bulk delete error: %s", res.String())
	}
	return nil
}

func (a *Adapter) IndexExists(ctx context.Context, indexName string) (bool, error) {
	es := a.client.GetClient()
	if es == nil {
		return false, errClientNotInitialized
	}

	res, err := es.Indices.Exists([]string{indexName}, es.Indices.Exists.WithContext(ctx))
	if err != nil {
		return false, fmt.Errorf("failed to check index existence: %w", err)
	}
	defer res.Body.Close()

	return res.StatusCode == 200, nil
}

func (a *Adapter) CreateIndex(ctx context.Context, indexName string, settings *search.IndexSettings) error {
	es := a.client.GetClient()
	if es == nil {
		return errClientNotInitialized
	}

	body := map[string]any{}
	if settings != nil {
		indexSettings := map[string]any{}
		if settings.Shards > 0 {
			indexSettings["number_of_shards"] = settings.Shards
		}
		if settings.Replicas >= 0 {
			indexSettings["number_of_replicas"] = settings.Replicas
		}
		if settings.RefreshInterval != "" {
			indexSettings["refresh_interval"] = settings.RefreshInterval
		}
		if len(indexSettings) > 0 {
			body["settings"] = indexSettings
		}
	}

	var buf bytes.Buffer
	if err := encodeJSON(&buf, body); err != nil {
		return err
	}

	res, err := es.Indices.Create(indexName,
		es.Indices.Create.WithContext(ctx),
		es.Indices.Create.WithBody(&buf),
	)
	if err != nil {
		return fmt.Errorf("failed to create index: %w", err)
	}
	defer res.Body.Close()

	if res.IsError() {
		// Index creation racing another writer is fine.
		if strings.Contains(res.String(), "resource_already_exists_exception") {
			return nil
		}
		return fmt.Errorf("failed to create index %s: %s", indexName, res.String())
	}
	return nil
}

func (a *Adapter) Health(ctx context.Context) error {
	es := a.client.GetClient()
	if es == nil {
		return errClientNotInitialized
	}

	res, err := es.Info(es.Info.WithContext(ctx))
	if err != nil {
		return fmt.Errorf("elasticsearch unreachable: %w", err)
	}
	defer res.Body.Close()

	if res.IsError() {
		return fmt.Errorf("elasticsearch unhealthy: %s", res.Status())
	}
	return nil
}

func (a *Adapter) Type() search.Engine {
	return search.Elasticsearch
}
