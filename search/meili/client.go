package meili

import (
	"errors"
	"fmt"
	"strings"

	"github.com/meilisearch/meilisearch-go"
)

var errClientNotInitialized = errors.New("meilisearch client not initialized")

// Client wraps the official Meilisearch client.
type Client struct {
	client meilisearch.ServiceManager
}

// SearchParams is an alias for the meilisearch.SearchRequest type
type SearchParams = meilisearch.SearchRequest

// NewMeilisearch creates a new Meilisearch client. An empty host yields
// an inert client whose operations fail until configured.
func NewMeilisearch(host, apiKey string) *Client {
	if host == "" {
		return &Client{}
	}
	ms := meilisearch.New(host, meilisearch.WithAPIKey(apiKey))
	return &Client{client: ms}
}

// Search searches an index.
func (c *Client) Search(index, query string, options *meilisearch.SearchRequest) (*meilisearch.SearchResponse, error) {
	if c == nil || c.client == nil {
		return nil, errClientNotInitialized
	}
	resp, err := c.client.Index(index).Search(query, options)
	if err != nil {
		return nil, fmt.Errorf("meilisearch search error: %w", err)
	}
	return resp, nil
}

// IndexDocuments indexes one document or a batch of documents.
func (c *Client) IndexDocuments(index string, document any, primaryKey ...string) error {
	if c == nil || c.client == nil {
		return errClientNotInitialized
	}

	var docs []any
	switch v := document.(type) {
	case []any:
		docs = v
	case []map[string]any:
		docs = make([]any, len(v))
		for i, doc := range v {
			docs[i] = doc
		}
	default:
		docs = []any{document}
	}

	var pk *string
	if len(primaryKey) > 0 && primaryKey[0] != "" {
		pk = &primaryKey[0]
	}

	if _, err := c.client.Index(index).AddDocuments(docs, &meilisearch.DocumentOptions{PrimaryKey: pk}); err != nil {
		return fmt.Errorf("meilisearch index document error: %w", err)
	}
	return nil
}

// DeleteDocuments removes documents by ID.
func (c *Client) DeleteDocuments(index string, documentIDs ...string) error {
	if c == nil || c.client == nil {
		return errClientNotInitialized
	}
	var err error
	if len(documentIDs) == 1 {
		_, err = c.client.Index(index).DeleteDocument(documentIDs[0], nil)
	} else {
		_, err = c.client.Index(index).DeleteDocuments(documentIDs, nil)
	}
	if err != nil {
		return fmt.Errorf("meilisearch delete document error: %w", err)
	}
	return nil
}

// CreateIndex creates an index with the given primary key.
func (c *Client) CreateIndex(indexName, primaryKey string) error {
	if c == nil || c.client == nil {
		return errClientNotInitialized
	}
	cfg := &meilisearch.IndexConfig{Uid: indexName, PrimaryKey: primaryKey}
	if _, err := c.client.CreateIndex(cfg); err != nil {
		return fmt.Errorf("meilisearch create index error: %w", err)
	}
	return nil
}

// IndexExists reports whether the index exists.
func (c *Client) IndexExists(indexName string) (bool, error) {
	if c == nil || c.client == nil {
		return false, errClientNotInitialized
	}
	if _, err := c.client.Index(indexName).GetStats(); err != nil {
		if strings.Contains(err.Error(), "index_not_found") ||
			strings.Contains(err.Error(), "not found") {
			return false, nil
		}
		return false, fmt.Errorf("failed to check meilisearch index existence: %w", err)
	}
	return true, nil
}

// Health reports whether the instance answers health probes.
func (c *Client) Health() error {
	if c == nil || c.client == nil {
		return errClientNotInitialized
	}
	if !c.client.IsHealthy() {
		return errors.New("meilisearch unhealthy")
	}
	return nil
}

// GetClient returns the underlying Meilisearch client.
func (c *Client) GetClient() meilisearch.ServiceManager {
	return c.client
}
