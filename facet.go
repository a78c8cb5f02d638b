package facet

import (
	"fmt"

	"github.com/ncobase/facet/config"
	"github.com/ncobase/facet/search"
	"github.com/ncobase/facet/search/elastic"
	"github.com/ncobase/facet/search/meili"
	"github.com/ncobase/facet/search/opensearch"
)

// NewClient assembles a search client from the configured engine
// connections. Engines without connection details are left out; the
// client serves the default engine while it is healthy and falls back
// by priority otherwise.
func NewClient(cfg *config.Config) (*search.Client, error) {
	return NewClientWithCollector(cfg, nil)
}

// NewClientWithCollector is NewClient with a metrics collector
// observing the client's operations.
func NewClientWithCollector(cfg *config.Config, collector search.Collector) (*search.Client, error) {
	if cfg == nil || cfg.Search == nil {
		return nil, fmt.Errorf("search configuration missing")
	}
	sc := cfg.Search

	var adapters []search.Adapter
	if sc.Elasticsearch.Configured() {
		client, err := elastic.NewClient(sc.Elasticsearch.Addresses, sc.Elasticsearch.Username, sc.Elasticsearch.Password)
		if err != nil {
			return nil, fmt.Errorf("elasticsearch client: %w", err)
		}
		adapter, err := search.NewAdapter(search.Elasticsearch, client)
		if err != nil {
			return nil, err
		}
		adapters = append(adapters, adapter)
	}
	if sc.OpenSearch.Configured() {
		client, err := opensearch.NewClient(sc.OpenSearch.Addresses, sc.OpenSearch.Username, sc.OpenSearch.Password, sc.OpenSearch.Insecure)
		if err != nil {
			return nil, fmt.Errorf("opensearch client: %w", err)
		}
		adapter, err := search.NewAdapter(search.OpenSearch, client)
		if err != nil {
			return nil, err
		}
		adapters = append(adapters, adapter)
	}
	if sc.Meilisearch.Configured() {
		adapter, err := search.NewAdapter(search.Meilisearch, meili.NewMeilisearch(sc.Meilisearch.Host, sc.Meilisearch.APIKey))
		if err != nil {
			return nil, err
		}
		adapters = append(adapters, adapter)
	}
	if len(adapters) == 0 {
		return nil, fmt.Errorf("no search engine configured")
	}

	clientCfg := &search.Config{
		IndexPrefix:     sc.IndexPrefix,
		DefaultEngine:   search.Engine(sc.DefaultEngine),
		AutoCreateIndex: sc.AutoCreateIndex,
	}
	if sc.IndexSettings != nil {
		clientCfg.IndexSettings = &search.IndexSettings{
			Shards:           sc.IndexSettings.Shards,
			Replicas:         sc.IndexSettings.Replicas,
			RefreshInterval:  sc.IndexSettings.RefreshInterval,
			SearchableFields: sc.IndexSettings.SearchableFields,
			FilterableFields: sc.IndexSettings.FilterableFields,
		}
	}
	return search.NewClientWithConfig(collector, clientCfg, adapters...), nil
}
