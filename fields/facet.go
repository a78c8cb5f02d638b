package fields

import (
	"context"

	"github.com/ncobase/facet/log"
	"github.com/ncobase/facet/search"
)

// FacetField is a form field bound to an aggregation. It declares the
// aggregation for the request, coerces submitted values into filter
// values, and reflects response buckets back into selectable choices.
type FacetField interface {
	Field
	ESField() string
	Facet() search.Facet
	FilterValues(ctx context.Context, raw []string) []Coerced
	Reflect(ctx context.Context, buckets []search.Bucket, active []string)
	Choices() []Choice
}

// FacetOption configures a facet field.
type FacetOption func(*facetBase)

// WithCoerce sets the coercion applied to submitted values.
func WithCoerce(fn CoerceFunc) FacetOption {
	return func(f *facetBase) {
		if fn != nil {
			f.coerce = fn
		}
	}
}

// WithFormatter sets the choice label renderer.
func WithFormatter(fn Formatter) FacetOption {
	return func(f *facetBase) {
		if fn != nil {
			f.format = fn
		}
	}
}

// WithSize caps the number of terms buckets the engine returns.
func WithSize(n int) FacetOption {
	return func(f *facetBase) {
		f.size = n
	}
}

type facetBase struct {
	name    string
	esField string
	size    int
	coerce  CoerceFunc
	format  Formatter
	choices []Choice
}

func newFacetBase(name, esField string, opts ...FacetOption) facetBase {
	base := facetBase{
		name:    name,
		esField: esField,
		coerce:  CoerceString,
		format:  defaultFormat,
	}
	for _, opt := range opts {
		opt(&base)
	}
	return base
}

func (f *facetBase) Name() string {
	return f.name
}

func (f *facetBase) Kind() Kind {
	return KindFacet
}

// ESField returns the engine field the aggregation runs on.
func (f *facetBase) ESField() string {
	return f.esField
}

// Choices returns the selectable values reflected from the last
// response. Empty until Reflect has run.
func (f *facetBase) Choices() []Choice {
	return f.choices
}

// coerceValues coerces each raw value, falling back to the raw string
// when coercion fails so a malformed selection degrades instead of
// aborting the search.
func (f *facetBase) coerceValues(ctx context.Context, raw []string) []Coerced {
	out := make([]Coerced, 0, len(raw))
	for _, r := range raw {
		v, err := f.coerce(r)
		if err != nil {
			log.Warnf(ctx, "field %s: cannot coerce %q, filtering on the raw value: %v", f.name, r, err)
			out = append(out, Coerced{Value: r, Raw: r, FellBack: true})
			continue
		}
		out = append(out, Coerced{Value: v, Raw: r})
	}
	return out
}

func activeSet(active []string) map[string]struct{} {
	set := make(map[string]struct{}, len(active))
	for _, a := range active {
		set[a] = struct{}{}
	}
	return set
}
