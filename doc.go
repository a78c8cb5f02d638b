// Package facet turns engine-agnostic faceted search into gin
// handlers.
//
// The packages compose bottom-up: fields declares form field
// descriptors, form groups them and carries submitted values, query
// rebuilds an engine request from the bound values on every
// execution, search routes requests to Elasticsearch, OpenSearch or
// Meilisearch adapters, records hydrates hits back into persisted
// rows, paging wraps one result window, and view ties all of it into
// HTTP handlers.
//
// This package holds the wiring helpers that assemble a search client
// from configuration:
//
//	cfg, err := config.Init()
//	if err != nil {
//	    log.Fatal(ctx, err)
//	}
//	client, err := facet.NewClient(cfg)
//	if err != nil {
//	    log.Fatal(ctx, err)
//	}
//	resp, err := client.Search(ctx, &search.Request{Index: "products"})
package facet
