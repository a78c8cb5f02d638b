package search

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"
)

var (
	// ErrNoEngineAvailable indicates no configured engine answered a health check
	ErrNoEngineAvailable = errors.New("no search engine available")
	// ErrEngineNotFound indicates the requested engine has no adapter
	ErrEngineNotFound = errors.New("search engine not found")
)

// enginePriority is the fallback selection order when no default
// engine is configured or the configured one is unhealthy.
var enginePriority = []Engine{OpenSearch, Elasticsearch, Meilisearch}

// Client routes search operations to the selected engine adapter and
// takes care of index name prefixing and lazy index creation.
type Client struct {
	adapters   map[Engine]Adapter
	collector  Collector
	engine     Engine
	indexCache map[string]bool
	cacheMu    sync.RWMutex
	config     *Config
}

// NewClient creates a search client with default configuration.
func NewClient(adapters ...Adapter) *Client {
	return NewClientWithConfig(nil, &Config{AutoCreateIndex: true}, adapters...)
}

// NewClientWithConfig creates a search client. A nil collector falls
// back to the no-op collector.
func NewClientWithConfig(collector Collector, cfg *Config, adapters ...Adapter) *Client {
	if collector == nil {
		collector = NoOpCollector{}
	}
	if cfg == nil {
		cfg = &Config{AutoCreateIndex: true}
	}

	c := &Client{
		adapters:   make(map[Engine]Adapter, len(adapters)),
		collector:  collector,
		indexCache: make(map[string]bool),
		config:     cfg,
	}
	for _, adapter := range adapters {
		if adapter != nil {
			c.adapters[adapter.Type()] = adapter
		}
	}
	c.setEngine()
	return c
}

// setEngine picks the active engine: the configured default when its
// adapter is healthy, otherwise the first healthy adapter in priority
// order.
func (c *Client) setEngine() {
	ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
	defer cancel()

	if c.config.DefaultEngine != "" {
		if adapter, ok := c.adapters[c.config.DefaultEngine]; ok {
			if err := adapter.Health(ctx); err == nil {
				c.engine = c.config.DefaultEngine
				return
			}
		}
	}

	for _, engine := range enginePriority {
		adapter, ok := c.adapters[engine]
		if !ok {
			continue
		}
		if err := adapter.Health(ctx); err == nil {
			c.engine = engine
			return
		}
	}
}

// Engine returns the active engine, empty when none is available.
func (c *Client) Engine() Engine {
	return c.engine
}

// Engines returns the engines with a registered adapter.
func (c *Client) Engines() []Engine {
	engines := make([]Engine, 0, len(c.adapters))
	for engine := range c.adapters {
		engines = append(engines, engine)
	}
	return engines
}

// buildIndexName applies the configured index prefix.
func (c *Client) buildIndexName(index string) string {
	if c.config.IndexPrefix == "" {
		return index
	}
	return fmt.Sprintf("%s-%s", c.config.IndexPrefix, index)
}

func (c *Client) adapter(engine Engine) (Adapter, error) {
	if engine == "" {
		return nil, ErrNoEngineAvailable
	}
	adapter, ok := c.adapters[engine]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrEngineNotFound, engine)
	}
	return adapter, nil
}

// Search executes the request against the active engine.
func (c *Client) Search(ctx context.Context, req *Request) (*Response, error) {
	return c.SearchWith(ctx, req, c.engine)
}

// SearchWith executes the request against a specific engine.
func (c *Client) SearchWith(ctx context.Context, req *Request, engine Engine) (*Response, error) {
	adapter, err := c.adapter(engine)
	if err != nil {
		return nil, err
	}

	prefixed := *req
	prefixed.Index = c.buildIndexName(req.Index)

	start := time.Now()
	resp, err := adapter.Search(ctx, &prefixed)
	c.collector.SearchQuery(string(engine), err)
	if err != nil {
		return nil, err
	}

	resp.Duration = time.Since(start)
	resp.Engine = engine
	return resp, nil
}

// Index indexes a single document, creating the index first when
// auto-creation is enabled.
func (c *Client) Index(ctx context.Context, req *IndexRequest) error {
	adapter, err := c.adapter(c.engine)
	if err != nil {
		return err
	}

	indexName := c.buildIndexName(req.Index)
	if err := c.ensureIndex(ctx, adapter, indexName); err != nil {
		return err
	}

	prefixed := *req
	prefixed.Index = indexName
	c.collector.SearchIndex(string(c.engine), "index")
	return adapter.Index(ctx, &prefixed)
}

// Delete removes a single document.
func (c *Client) Delete(ctx context.Context, index, documentID string) error {
	adapter, err := c.adapter(c.engine)
	if err != nil {
		return err
	}
	c.collector.SearchIndex(string(c.engine), "delete")
	return adapter.Delete(ctx, c.buildIndexName(index), documentID)
}

// BulkIndex indexes a batch of documents, creating the index first
// when auto-creation is enabled.
func (c *Client) BulkIndex(ctx context.Context, index string, documents []any) error {
	if len(documents) == 0 {
		return nil
	}
	adapter, err := c.adapter(c.engine)
	if err != nil {
		return err
	}

	indexName := c.buildIndexName(index)
	if err := c.ensureIndex(ctx, adapter, indexName); err != nil {
		return err
	}

	c.collector.SearchIndex(string(c.engine), "bulk_index")
	return adapter.BulkIndex(ctx, indexName, documents)
}

// BulkDelete removes a batch of documents.
func (c *Client) BulkDelete(ctx context.Context, index string, documentIDs []string) error {
	if len(documentIDs) == 0 {
		return nil
	}
	adapter, err := c.adapter(c.engine)
	if err != nil {
		return err
	}
	c.collector.SearchIndex(string(c.engine), "bulk_delete")
	return adapter.BulkDelete(ctx, c.buildIndexName(index), documentIDs)
}

// IndexExists reports whether the index exists on the active engine.
func (c *Client) IndexExists(ctx context.Context, index string) (bool, error) {
	adapter, err := c.adapter(c.engine)
	if err != nil {
		return false, err
	}
	return adapter.IndexExists(ctx, c.buildIndexName(index))
}

// CreateIndex creates the index with the configured settings.
func (c *Client) CreateIndex(ctx context.Context, index string) error {
	adapter, err := c.adapter(c.engine)
	if err != nil {
		return err
	}
	indexName := c.buildIndexName(index)
	if err := adapter.CreateIndex(ctx, indexName, c.config.IndexSettings); err != nil {
		return err
	}
	c.markIndexReady(indexName)
	return nil
}

// Health checks every registered adapter.
func (c *Client) Health(ctx context.Context) map[Engine]error {
	result := make(map[Engine]error, len(c.adapters))
	for engine, adapter := range c.adapters {
		result[engine] = adapter.Health(ctx)
	}
	return result
}

// ensureIndex lazily creates the index once per client lifetime.
func (c *Client) ensureIndex(ctx context.Context, adapter Adapter, indexName string) error {
	if !c.config.AutoCreateIndex {
		return nil
	}

	c.cacheMu.RLock()
	ready := c.indexCache[indexName]
	c.cacheMu.RUnlock()
	if ready {
		return nil
	}

	exists, err := adapter.IndexExists(ctx, indexName)
	if err != nil {
		return fmt.Errorf("failed to check index %s: %w", indexName, err)
	}
	if !exists {
		if err := adapter.CreateIndex(ctx, indexName, c.config.IndexSettings); err != nil {
			return fmt.Errorf("failed to create index %s: %w", indexName, err)
		}
	}

	c.markIndexReady(indexName)
	return nil
}

func (c *Client) markIndexReady(indexName string) {
	c.cacheMu.Lock()
	c.indexCache[indexName] = true
	c.cacheMu.Unlock()
}
