package config

import (
	"fmt"

	"github.com/spf13/viper"
)

// Search represents the search engine configuration.
type Search struct {
	IndexPrefix     string         `json:"index_prefix" yaml:"index_prefix"`
	DefaultEngine   string         `json:"default_engine" yaml:"default_engine" validate:"omitempty,oneof=elasticsearch opensearch meilisearch"`
	AutoCreateIndex bool           `json:"auto_create_index" yaml:"auto_create_index"`
	IndexSettings   *IndexSettings `json:"index_settings" yaml:"index_settings"`
	Elasticsearch   *Elasticsearch `json:"elasticsearch" yaml:"elasticsearch"`
	OpenSearch      *OpenSearch    `json:"opensearch" yaml:"opensearch"`
	Meilisearch     *Meilisearch   `json:"meilisearch" yaml:"meilisearch"`
}

// IndexSettings represents settings applied when indices are created.
type IndexSettings struct {
	Shards           int      `json:"shards" yaml:"shards"`
	Replicas         int      `json:"replicas" yaml:"replicas"`
	RefreshInterval  string   `json:"refresh_interval" yaml:"refresh_interval"`
	SearchableFields []string `json:"searchable_fields" yaml:"searchable_fields"`
	FilterableFields []string `json:"filterable_fields" yaml:"filterable_fields"`
}

// Elasticsearch represents the Elasticsearch connection configuration.
type Elasticsearch struct {
	Addresses []string `json:"addresses" yaml:"addresses"`
	Username  string   `json:"username" yaml:"username"`
	Password  string   `json:"password" yaml:"password"`
}

// OpenSearch represents the OpenSearch connection configuration.
type OpenSearch struct {
	Addresses []string `json:"addresses" yaml:"addresses"`
	Username  string   `json:"username" yaml:"username"`
	Password  string   `json:"password" yaml:"password"`
	Insecure  bool     `json:"insecure" yaml:"insecure"`
}

// Meilisearch represents the Meilisearch connection configuration.
type Meilisearch struct {
	Host   string `json:"host" yaml:"host"`
	APIKey string `json:"api_key" yaml:"api_key"`
}

// Configured reports whether any connection detail is present.
func (e *Elasticsearch) Configured() bool { return e != nil && len(e.Addresses) > 0 }

// Configured reports whether any connection detail is present.
func (o *OpenSearch) Configured() bool { return o != nil && len(o.Addresses) > 0 }

// Configured reports whether any connection detail is present.
func (m *Meilisearch) Configured() bool { return m != nil && m.Host != "" }

// Validate reports search configuration mistakes that must fail startup.
func (s *Search) Validate() error {
	switch s.DefaultEngine {
	case "elasticsearch":
		if !s.Elasticsearch.Configured() {
			return fmt.Errorf("search: default engine %q has no connection configured", s.DefaultEngine)
		}
	case "opensearch":
		if !s.OpenSearch.Configured() {
			return fmt.Errorf("search: default engine %q has no connection configured", s.DefaultEngine)
		}
	case "meilisearch":
		if !s.Meilisearch.Configured() {
			return fmt.Errorf("search: default engine %q has no connection configured", s.DefaultEngine)
		}
	}
	return nil
}

func getSearchConfig(v *viper.Viper) *Search {
	return &Search{
		IndexPrefix:     v.GetString("search.index_prefix"),
		DefaultEngine:   getStringDefault(v, "search.default_engine", ""),
		AutoCreateIndex: getBoolDefault(v, "search.auto_create_index", true),
		IndexSettings:   getIndexSettings(v),
		Elasticsearch: &Elasticsearch{
			Addresses: v.GetStringSlice("search.elasticsearch.addresses"),
			Username:  v.GetString("search.elasticsearch.username"),
			Password:  v.GetString("search.elasticsearch.password"),
		},
		OpenSearch: &OpenSearch{
			Addresses: v.GetStringSlice("search.opensearch.addresses"),
			Username:  v.GetString("search.opensearch.username"),
			Password:  v.GetString("search.opensearch.password"),
			Insecure:  v.GetBool("search.opensearch.insecure"),
		},
		Meilisearch: &Meilisearch{
			Host:   v.GetString("search.meilisearch.host"),
			APIKey: v.GetString("search.meilisearch.api_key"),
		},
	}
}

func getIndexSettings(v *viper.Viper) *IndexSettings {
	return &IndexSettings{
		Shards:           getIntDefault(v, "search.index_settings.shards", 1),
		Replicas:         getIntDefault(v, "search.index_settings.replicas", 0),
		RefreshInterval:  getStringDefault(v, "search.index_settings.refresh_interval", "1s"),
		SearchableFields: v.GetStringSlice("search.index_settings.searchable_fields"),
		FilterableFields: v.GetStringSlice("search.index_settings.filterable_fields"),
	}
}
