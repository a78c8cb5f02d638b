package elastic

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"

	"github.com/elastic/go-elasticsearch/v8"
	"github.com/elastic/go-elasticsearch/v8/esapi"
)

var errClientNotInitialized = errors.New("elasticsearch client not initialized")

// Client wraps the official Elasticsearch client.
type Client struct {
	client *elasticsearch.Client
}

// NewClient creates a new Elasticsearch client. Empty addresses yield
// an inert client whose operations fail until configured.
func NewClient(addresses []string, username, password string) (*Client, error) {
	if len(addresses) == 0 {
		return &Client{}, nil
	}

	cfg := elasticsearch.Config{
		Addresses: addresses,
		Username:  username,
		Password:  password,
	}
	client, err := elasticsearch.NewClient(cfg)
	if err != nil {
		return nil, fmt.Errorf("failed to create elasticsearch client: %w", err)
	}
	return &Client{client: client}, nil
}

// Search executes a raw search body against an index.
func (c *Client) Search(ctx context.Context, indexName string, body io.Reader) (*esapi.Response, error) {
	if c.client == nil {
		return nil, errClientNotInitialized
	}

	res, err := c.client.Search(
		c.client.Search.WithContext(ctx),
		c.client.Search.WithIndex(indexName),
		c.client.Search.WithBody(body),
		c.client.Search.WithTrackTotalHits(true),
	)
	if err != nil {
		return nil, fmt.Errorf("elasticsearch search failed: %w", err)
	}
	return res, nil
}

// IndexDocument indexes a single document.
func (c *Client) IndexDocument(ctx context.Context, index, documentID string, document any) error {
	if c.client == nil {
		return errClientNotInitialized
	}

	var buf bytes.Buffer
	if err := encodeJSON(&buf, document); err != nil {
		return err
	}

	req := esapi.IndexRequest{
		Index:      index,
		DocumentID: documentID,
		Body:       &buf,
		Refresh:    "true",
	}
	res, err := req.Do(ctx, c.client)
	if err != nil {
		return fmt.Errorf("failed to index document: %w", err)
	}
	defer res.Body.Close()

	if res.IsError() {
		return fmt.Errorf("failed to index document: %s", res.String())
	}
	return nil
}

// DeleteDocument removes a single document.
func (c *Client) DeleteDocument(ctx context.Context, index, documentID string) error {
	if c.client == nil {
		return errClientNotInitialized
	}

	req := esapi.DeleteRequest{
		Index:      index,
		DocumentID: documentID,
		Refresh:    "true",
	}
	res, err := req.Do(ctx, c.client)
	if err != nil {
		return fmt.Errorf("failed to delete document: %w", err)
	}
	defer res.Body.Close()

	if res.IsError() && res.StatusCode != 404 {
		return fmt.Errorf("failed to delete document: %s", res.String())
	}
	return nil
}

// GetClient returns the underlying Elasticsearch client.
func (c *Client) GetClient() *elasticsearch.Client {
	return c.client
}
