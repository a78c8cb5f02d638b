// Package query builds engine search requests from a base
// configuration plus dynamically accumulated filters, sorting and
// pagination. The request is reassembled from scratch on every
// execution, so a builder can run repeatedly without leaking state
// between runs.
package query

import (
	"context"
	"errors"
	"fmt"
	"strconv"

	"github.com/ncobase/facet/log"
	"github.com/ncobase/facet/search"
	"github.com/ncobase/facet/utils/convert"
)

var (
	// ErrNotFilterable reports a facet filter against a field that is
	// not a configured facet, or a range key that is not a configured
	// range of its facet.
	ErrNotFilterable = errors.New("field is not filterable")

	// ErrInvalidPagination reports a page or page size below 1.
	ErrInvalidPagination = errors.New("page and page size must be at least 1")

	// ErrNoClient reports an execution without a configured client.
	ErrNoClient = errors.New("search client not configured")
)

// Searcher executes search requests. *search.Client implements it.
type Searcher interface {
	Search(ctx context.Context, req *search.Request) (*search.Response, error)
}

// Config is the static base a Builder composes requests from.
type Config struct {
	Index          string
	DocTypes       []string // record types stored in the index
	Query          string   // free text query
	QueryFields    []string // fields the free text query matches, all when empty
	Facets         map[string]search.Facet
	DefaultFilters []search.Clause // applied to every request, ahead of dynamic filters
	Client         Searcher
}

// Builder accumulates dynamic query state on top of a Config.
type Builder struct {
	cfg      Config
	filters  []search.Clause
	sorts    []search.Sort
	page     int
	pageSize int
	selected map[string]map[string]struct{}
}

// NewBuilder creates a builder over the given configuration.
func NewBuilder(cfg Config) *Builder {
	if len(cfg.DocTypes) > 1 {
		log.Warnf(context.Background(),
			"index %s holds %d record types, hits will interleave", cfg.Index, len(cfg.DocTypes))
	}
	return &Builder{cfg: cfg, selected: make(map[string]map[string]struct{})}
}

// RecordType returns the single record type the index holds, or the
// empty string when the index holds none or several.
func (b *Builder) RecordType() string {
	if len(b.cfg.DocTypes) == 1 {
		return b.cfg.DocTypes[0]
	}
	return ""
}

// AddFilter appends a prepared filter clause. Empty clauses are
// dropped.
func (b *Builder) AddFilter(clause search.Clause) {
	if len(clause) == 0 {
		log.Debugf(context.Background(), "dropping empty filter clause on index %s", b.cfg.Index)
		return
	}
	b.filters = append(b.filters, clause)
}

// AddFacetFilter filters on the buckets of a configured facet. Terms
// facets filter on the values directly, range facets expect configured
// range keys and translate them into their bounds. Selections that do
// not resolve to a configured facet or range fail with
// ErrNotFilterable.
func (b *Builder) AddFacetFilter(name string, values []any) error {
	facet, ok := b.cfg.Facets[name]
	if !ok {
		return fmt.Errorf("%w: %q is not a configured facet", ErrNotFilterable, name)
	}
	if len(values) == 0 {
		return nil
	}

	switch facet.Kind {
	case search.FacetTerms:
		if len(values) == 1 {
			b.filters = append(b.filters, search.Clause{"term": map[string]any{facet.Field: values[0]}})
		} else {
			b.filters = append(b.filters, search.Clause{"terms": map[string]any{facet.Field: values}})
		}
	case search.FacetRange:
		clauses, err := rangeClauses(facet, values)
		if err != nil {
			return err
		}
		if len(clauses) == 1 {
			b.filters = append(b.filters, clauses[0])
		} else {
			branches := make([]any, 0, len(clauses))
			for _, c := range clauses {
				branches = append(branches, c)
			}
			b.filters = append(b.filters, search.Clause{"bool": map[string]any{
				"should":               branches,
				"minimum_should_match": 1,
			}})
		}
	default:
		return fmt.Errorf("%w: facet %q has unsupported kind %q", ErrNotFilterable, name, facet.Kind)
	}

	b.recordSelection(name, values)
	return nil
}

func rangeClauses(facet search.Facet, values []any) ([]search.Clause, error) {
	ranges := make(map[string]search.FacetRange, len(facet.Ranges))
	for _, r := range facet.Ranges {
		ranges[r.Key] = r
	}

	clauses := make([]search.Clause, 0, len(values))
	for _, v := range values {
		key := stringify(v)
		r, ok := ranges[key]
		if !ok {
			return nil, fmt.Errorf("%w: %q is not a configured range of %q", ErrNotFilterable, key, facet.Field)
		}
		bounds := map[string]any{}
		if r.From != nil {
			bounds["gte"] = *r.From
		}
		if r.To != nil {
			bounds["lt"] = *r.To
		}
		clauses = append(clauses, search.Clause{"range": map[string]any{facet.Field: bounds}})
	}
	return clauses, nil
}

// AddSort appends a sort criterion. Criteria without a field are
// dropped.
func (b *Builder) AddSort(s search.Sort) {
	if s.Field == "" {
		log.Debugf(context.Background(), "dropping sort without a field on index %s", b.cfg.Index)
		return
	}
	b.sorts = append(b.sorts, s)
}

// SetPagination sets the result window. Page and size are 1-based and
// must both be at least 1, invalid values fail without touching the
// builder.
func (b *Builder) SetPagination(page, size int) error {
	if page < 1 || size < 1 {
		return fmt.Errorf("%w: page=%d page_size=%d", ErrInvalidPagination, page, size)
	}
	b.page = page
	b.pageSize = size
	return nil
}

// Build assembles a fresh request from the configuration and the
// accumulated state. Default filters come first, then dynamic filters,
// and defaults are revalidated on every build so one that went bad
// after construction is skipped instead of poisoning the query.
func (b *Builder) Build() (*search.Request, error) {
	if b.cfg.Index == "" {
		return nil, errors.New("query index not configured")
	}

	req := &search.Request{
		Index:       b.cfg.Index,
		Query:       b.cfg.Query,
		QueryFields: append([]string(nil), b.cfg.QueryFields...),
	}
	if len(b.cfg.Facets) > 0 {
		req.Facets = make(map[string]search.Facet, len(b.cfg.Facets))
		for name, facet := range b.cfg.Facets {
			req.Facets[name] = facet
		}
	}

	for _, clause := range b.cfg.DefaultFilters {
		if len(clause) == 0 {
			log.Warnf(context.Background(), "skipping empty default filter on index %s", b.cfg.Index)
			continue
		}
		req.Filters = append(req.Filters, clause)
	}
	req.Filters = append(req.Filters, b.filters...)
	req.Sorts = append(req.Sorts, b.sorts...)

	if b.page > 0 && b.pageSize > 0 {
		req.From = (b.page - 1) * b.pageSize
		req.Size = b.pageSize
	}
	return req, nil
}

// Execute builds and runs the request, then marks the response buckets
// matching an applied facet selection.
func (b *Builder) Execute(ctx context.Context) (*search.Response, error) {
	if b.cfg.Client == nil {
		return nil, ErrNoClient
	}
	req, err := b.Build()
	if err != nil {
		return nil, err
	}
	resp, err := b.cfg.Client.Search(ctx, req)
	if err != nil {
		return nil, err
	}
	b.markSelected(resp)
	return resp, nil
}

func (b *Builder) recordSelection(name string, values []any) {
	set, ok := b.selected[name]
	if !ok {
		set = make(map[string]struct{}, len(values))
		b.selected[name] = set
	}
	for _, v := range values {
		set[stringify(v)] = struct{}{}
	}
}

// markSelected flags buckets whose key matches an applied selection.
// Keys and values are compared in their normalized string form, so a
// boolean selection matches the "true" bucket an engine reports.
func (b *Builder) markSelected(resp *search.Response) {
	if resp == nil || len(resp.Facets) == 0 {
		return
	}
	for name, buckets := range resp.Facets {
		set := b.selected[name]
		if len(set) == 0 {
			continue
		}
		for i := range buckets {
			if _, ok := set[buckets[i].Key]; ok {
				buckets[i].Selected = true
			}
		}
	}
}

func stringify(v any) string {
	switch val := v.(type) {
	case string:
		return val
	case bool:
		return strconv.FormatBool(val)
	default:
		if f, ok := convert.ToFloat64(v); ok {
			return convert.FormatFloat(f)
		}
		return fmt.Sprint(v)
	}
}
