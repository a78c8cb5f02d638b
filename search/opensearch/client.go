package opensearch

import (
	"context"
	"crypto/tls"
	"errors"
	"fmt"
	"io"
	"net/http"

	"github.com/opensearch-project/opensearch-go/v4"
	"github.com/opensearch-project/opensearch-go/v4/opensearchapi"
)

var errClientNotInitialized = errors.New("opensearch client not initialized")

// Client wraps the official OpenSearch client.
type Client struct {
	client *opensearchapi.Client
}

// NewClient creates a new OpenSearch client. Empty addresses yield an
// inert client whose operations fail until configured.
func NewClient(addresses []string, username, password string, insecure bool) (*Client, error) {
	if len(addresses) == 0 {
		return &Client{}, nil
	}

	transport := &http.Transport{
		TLSClientConfig: &tls.Config{
			InsecureSkipVerify: insecure,
		},
	}

	client, err := opensearchapi.NewClient(
		opensearchapi.Config{
			Client: opensearch.Config{
				Addresses:  addresses,
				Username:   username,
				Password:   password,
				Transport:  transport,
				MaxRetries: 3,
			},
		},
	)
	if err != nil {
		return nil, fmt.Errorf("opensearch client creation error: %w", err)
	}

	return &Client{client: client}, nil
}

// Search executes a raw search body against an index.
func (c *Client) Search(ctx context.Context, indexName string, body io.Reader) (*opensearchapi.SearchResp, error) {
	if c == nil || c.client == nil {
		return nil, errClientNotInitialized
	}

	searchReq := opensearchapi.SearchReq{
		Indices: []string{indexName},
		Body:    body,
	}

	res, err := c.client.Search(ctx, &searchReq)
	if err != nil {
		return nil, fmt.Errorf("opensearch search error: %w", err)
	}
	return res, nil
}

// IndexDocument indexes a single document.
func (c *Client) IndexDocument(ctx context.Context, indexName, documentID string, body io.Reader) error {
	if c == nil || c.client == nil {
		return errClientNotInitialized
	}

	indexReq := opensearchapi.IndexReq{
		Index:      indexName,
		DocumentID: documentID,
		Body:       body,
		Params:     opensearchapi.IndexParams{Refresh: "true"},
	}

	if _, err := c.client.Index(ctx, indexReq); err != nil {
		return fmt.Errorf("opensearch indexing error: %w", err)
	}
	return nil
}

// DeleteDocument removes a single document.
func (c *Client) DeleteDocument(ctx context.Context, indexName, documentID string) error {
	if c == nil || c.client == nil {
		return errClientNotInitialized
	}

	deleteReq := opensearchapi.DocumentDeleteReq{
		Index:      indexName,
		DocumentID: documentID,
		Params:     opensearchapi.DocumentDeleteParams{Refresh: "true"},
	}

	if _, err := c.client.Document.Delete(ctx, deleteReq); err != nil {
		return fmt.Errorf("opensearch deletion error: %w", err)
	}
	return nil
}

// Bulk executes a prepared bulk request body against an index.
func (c *Client) Bulk(ctx context.Context, indexName string, body io.Reader) error {
	if c == nil || c.client == nil {
		return errClientNotInitialized
	}

	bulkReq := opensearchapi.BulkReq{
		Index: indexName,
		Body:  body,
	}

	if _, err := c.client.Bulk(ctx, bulkReq); err != nil {
		return fmt.Errorf("opensearch bulk error: %w", err)
	}
	return nil
}

// CreateIndex creates a new index with optional settings body.
func (c *Client) CreateIndex(ctx context.Context, indexName string, body io.Reader) error {
	if c == nil || c.client == nil {
		return errClientNotInitialized
	}

	createReq := opensearchapi.IndicesCreateReq{
		Index: indexName,
		Body:  body,
	}

	if _, err := c.client.Indices.Create(ctx, createReq); err != nil {
		// Index creation racing another writer is fine.
		var structError *opensearch.StructError
		if errors.As(err, &structError) && structError.Err.Type == "resource_already_exists_exception" {
			return nil
		}
		return fmt.Errorf("opensearch create index error: %w", err)
	}
	return nil
}

// IndexExists checks if an index exists.
func (c *Client) IndexExists(ctx context.Context, indexName string) (bool, error) {
	if c == nil || c.client == nil {
		return false, errClientNotInitialized
	}

	existsReq := opensearchapi.IndicesExistsReq{
		Indices: []string{indexName},
	}

	res, err := c.client.Indices.Exists(ctx, existsReq)
	if err != nil {
		if res != nil && res.StatusCode == 404 {
			return false, nil
		}
		return false, fmt.Errorf("opensearch index exists error: %w", err)
	}
	return res.StatusCode == 200, nil
}

// Health returns the cluster health status.
func (c *Client) Health(ctx context.Context) (string, error) {
	if c == nil || c.client == nil {
		return "", errClientNotInitialized
	}

	healthReq := opensearchapi.ClusterHealthReq{}
	res, err := c.client.Cluster.Health(ctx, &healthReq)
	if err != nil {
		return "", fmt.Errorf("opensearch health check error: %w", err)
	}
	return res.Status, nil
}

// GetClient returns the underlying OpenSearch client.
func (c *Client) GetClient() *opensearchapi.Client {
	return c.client
}
