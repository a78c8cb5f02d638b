package fields

import (
	"context"

	"github.com/ncobase/facet/search"
)

// TermsField facets on the distinct values of an engine field.
type TermsField struct {
	facetBase
}

// NewTermsField creates a terms facet field. name is the form name,
// esField the engine field the aggregation and filters run on.
func NewTermsField(name, esField string, opts ...FacetOption) *TermsField {
	return &TermsField{facetBase: newFacetBase(name, esField, opts...)}
}

func (f *TermsField) Facet() search.Facet {
	return search.Facet{Field: f.esField, Kind: search.FacetTerms, Size: f.size}
}

func (f *TermsField) FilterValues(ctx context.Context, raw []string) []Coerced {
	return f.coerceValues(ctx, raw)
}

// Reflect rebuilds the choices from aggregation buckets. Terms buckets
// are kept even at zero count so an active selection stays visible
// after it filtered itself out.
func (f *TermsField) Reflect(ctx context.Context, buckets []search.Bucket, active []string) {
	sel := activeSet(active)
	choices := make([]Choice, 0, len(buckets))
	for _, b := range buckets {
		_, selected := sel[b.Key]
		choices = append(choices, Choice{
			Value:    b.Key,
			Label:    f.format(b.Key, b.DocCount),
			Count:    b.DocCount,
			Selected: selected || b.Selected,
		})
	}
	f.choices = choices
}
