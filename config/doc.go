// Package config loads application configuration with Viper, with
// support for config files, FACET_* environment variables and hot
// reloading.
//
// # Configuration Loading
//
// Initialize once at startup:
//
//	cfg, err := config.Init()
//	if err != nil {
//	    log.Fatal(err)
//	}
//
// Init with an explicit file:
//
//	cfg, err := config.Init("./config.yaml")
//
// # Configuration Format
//
// YAML, JSON and TOML work. Example YAML:
//
//	app_name: catalog
//	run_mode: release
//
//	logger:
//	  level: 4
//	  format: json
//	  output: stdout
//
//	search:
//	  index_prefix: shop
//	  default_engine: elasticsearch
//	  elasticsearch:
//	    addresses: ["http://localhost:9200"]
//	  meilisearch:
//	    host: http://localhost:7700
//	    api_key: masterKey
//
// # Environment Variables
//
// Values can be overridden with FACET_* environment variables, dots
// replaced by underscores:
//
//	export FACET_SEARCH_MEILISEARCH_HOST=http://meili:7700
//	export FACET_SEARCH_DEFAULT_ENGINE=meilisearch
//
// # Hot Reloading
//
// Watch the config file for changes:
//
//	config.Watch(func(cfg *config.Config) {
//	    // react to the new configuration
//	})
package config
