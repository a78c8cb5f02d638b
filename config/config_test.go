package config

import (
	"strings"
	"testing"

	"github.com/spf13/viper"
)

func TestLoadFromViper_Defaults(t *testing.T) {
	v := viper.New()

	cfg := loadFromViper(v)
	if cfg.AppName != "facet" {
		t.Fatalf("expected default app name, got %q", cfg.AppName)
	}
	if cfg.RunMode != "release" {
		t.Fatalf("expected default run mode release, got %q", cfg.RunMode)
	}
	if cfg.Logger == nil || cfg.Search == nil {
		t.Fatalf("expected logger and search sections to be populated")
	}
	if !cfg.Search.AutoCreateIndex {
		t.Fatalf("expected auto_create_index to default to true")
	}
	if err := cfg.Validate(); err != nil {
		t.Fatalf("default config should validate, got %v", err)
	}
}

func TestLoadFromViper_SetValuesWin(t *testing.T) {
	v := viper.New()
	v.Set("app_name", "catalog")
	v.Set("run_mode", "debug")
	v.Set("search.auto_create_index", false)

	cfg := loadFromViper(v)
	if cfg.AppName != "catalog" {
		t.Fatalf("expected app name catalog, got %q", cfg.AppName)
	}
	if cfg.RunMode != "debug" {
		t.Fatalf("expected run mode debug, got %q", cfg.RunMode)
	}
	if cfg.Search.AutoCreateIndex {
		t.Fatalf("expected auto_create_index false when set explicitly")
	}
}

func TestGetSearchConfig_ReadsEngineSections(t *testing.T) {
	v := viper.New()
	v.Set("search.index_prefix", "shop")
	v.Set("search.default_engine", "meilisearch")
	v.Set("search.elasticsearch.addresses", []string{"http://es:9200"})
	v.Set("search.elasticsearch.username", "es-user")
	v.Set("search.opensearch.addresses", []string{"http://os:9200"})
	v.Set("search.opensearch.insecure", true)
	v.Set("search.meilisearch.host", "http://meili:7700")
	v.Set("search.meilisearch.api_key", "secret")

	s := getSearchConfig(v)
	if s.IndexPrefix != "shop" {
		t.Fatalf("expected index prefix shop, got %q", s.IndexPrefix)
	}
	if s.DefaultEngine != "meilisearch" {
		t.Fatalf("expected default engine meilisearch, got %q", s.DefaultEngine)
	}
	if len(s.Elasticsearch.Addresses) != 1 || s.Elasticsearch.Addresses[0] != "http://es:9200" {
		t.Fatalf("expected elasticsearch addresses, got %v", s.Elasticsearch.Addresses)
	}
	if s.Elasticsearch.Username != "es-user" {
		t.Fatalf("expected elasticsearch username, got %q", s.Elasticsearch.Username)
	}
	if !s.OpenSearch.Insecure {
		t.Fatalf("expected opensearch insecure to be set")
	}
	if s.Meilisearch.Host != "http://meili:7700" || s.Meilisearch.APIKey != "secret" {
		t.Fatalf("expected meilisearch connection, got %+v", s.Meilisearch)
	}
}

func TestGetSearchConfig_IndexSettingsDefaults(t *testing.T) {
	v := viper.New()

	s := getSearchConfig(v)
	if s.IndexSettings.Shards != 1 || s.IndexSettings.Replicas != 0 {
		t.Fatalf("expected 1 shard and 0 replicas, got %d/%d", s.IndexSettings.Shards, s.IndexSettings.Replicas)
	}
	if s.IndexSettings.RefreshInterval != "1s" {
		t.Fatalf("expected refresh interval 1s, got %q", s.IndexSettings.RefreshInterval)
	}
}

func TestGetLoggerConfig_Defaults(t *testing.T) {
	v := viper.New()

	l := getLoggerConfig(v)
	if l.Level != 4 {
		t.Fatalf("expected default level 4, got %d", l.Level)
	}
	if l.Format != "json" || l.Output != "stdout" {
		t.Fatalf("expected json/stdout defaults, got %q/%q", l.Format, l.Output)
	}
	if l.IndexName != "facet_log" {
		t.Fatalf("expected log index derived from app name, got %q", l.IndexName)
	}
}

func TestGetLoggerConfig_IndexNameFollowsAppName(t *testing.T) {
	v := viper.New()
	v.Set("app_name", "catalog")

	l := getLoggerConfig(v)
	if l.IndexName != "catalog_log" {
		t.Fatalf("expected catalog_log, got %q", l.IndexName)
	}
}

func TestConfigValidate_RejectsUnknownRunMode(t *testing.T) {
	v := viper.New()
	v.Set("run_mode", "production")

	cfg := loadFromViper(v)
	if err := cfg.Validate(); err == nil {
		t.Fatalf("expected run_mode validation error")
	}
}

func TestSearchValidate_DefaultEngineNeedsConnection(t *testing.T) {
	s := &Search{DefaultEngine: "elasticsearch", Elasticsearch: &Elasticsearch{}}
	err := s.Validate()
	if err == nil {
		t.Fatalf("expected error for unconfigured default engine")
	}
	if !strings.Contains(err.Error(), "elasticsearch") {
		t.Fatalf("expected error to name the engine, got %v", err)
	}

	s.Elasticsearch.Addresses = []string{"http://es:9200"}
	if err := s.Validate(); err != nil {
		t.Fatalf("configured default engine should validate, got %v", err)
	}
}

func TestSearchValidate_NoDefaultEngineIsFine(t *testing.T) {
	s := &Search{}
	if err := s.Validate(); err != nil {
		t.Fatalf("empty search config should validate, got %v", err)
	}
}

func TestConfigured(t *testing.T) {
	var es *Elasticsearch
	if es.Configured() {
		t.Fatalf("nil elasticsearch should not be configured")
	}
	if (&Elasticsearch{}).Configured() {
		t.Fatalf("elasticsearch without addresses should not be configured")
	}
	if !(&Elasticsearch{Addresses: []string{"http://es:9200"}}).Configured() {
		t.Fatalf("elasticsearch with addresses should be configured")
	}

	if (&Meilisearch{}).Configured() {
		t.Fatalf("meilisearch without host should not be configured")
	}
	if !(&Meilisearch{Host: "http://meili:7700"}).Configured() {
		t.Fatalf("meilisearch with host should be configured")
	}

	if (&OpenSearch{}).Configured() {
		t.Fatalf("opensearch without addresses should not be configured")
	}
	if !(&OpenSearch{Addresses: []string{"http://os:9200"}}).Configured() {
		t.Fatalf("opensearch with addresses should be configured")
	}
}
