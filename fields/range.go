package fields

import (
	"context"
	"fmt"

	"github.com/ncobase/facet/search"
	"github.com/ncobase/facet/utils/convert"
)

// RangeOption is one configured interval of a range field. Bounds are
// half-open: From inclusive, To exclusive, a nil bound leaves that
// side open.
type RangeOption struct {
	Key   string
	Label string
	From  *float64
	To    *float64
}

// NewRangeOption builds a range interval. At least one bound must be
// set. The bucket key is synthesized from the bounds, "10_50" for a
// closed interval, "*" standing in for an open side.
func NewRangeOption(label string, from, to *float64) (RangeOption, error) {
	if from == nil && to == nil {
		return RangeOption{}, fmt.Errorf("range option %q needs at least one bound", label)
	}
	return RangeOption{Key: rangeKey(from, to), Label: label, From: from, To: to}, nil
}

// MustRangeOption is NewRangeOption that panics on error, for
// declarations with literal bounds.
func MustRangeOption(label string, from, to *float64) RangeOption {
	opt, err := NewRangeOption(label, from, to)
	if err != nil {
		panic(err)
	}
	return opt
}

func rangeKey(from, to *float64) string {
	lower, upper := "*", "*"
	if from != nil {
		lower = convert.FormatFloat(*from)
	}
	if to != nil {
		upper = convert.FormatFloat(*to)
	}
	return lower + "_" + upper
}

// RangeField facets on configured numeric intervals.
type RangeField struct {
	facetBase
	ranges []RangeOption
}

// NewRangeField creates a range facet field over the given intervals.
func NewRangeField(name, esField string, ranges []RangeOption, opts ...FacetOption) (*RangeField, error) {
	if len(ranges) == 0 {
		return nil, fmt.Errorf("range field %q needs at least one range", name)
	}
	seen := make(map[string]struct{}, len(ranges))
	for _, r := range ranges {
		if r.Key == "" {
			return nil, fmt.Errorf("range field %q has an option without a key, use NewRangeOption", name)
		}
		if _, dup := seen[r.Key]; dup {
			return nil, fmt.Errorf("range field %q has duplicate range %q", name, r.Key)
		}
		seen[r.Key] = struct{}{}
	}
	return &RangeField{
		facetBase: newFacetBase(name, esField, opts...),
		ranges:    ranges,
	}, nil
}

// MustRangeField is NewRangeField that panics on error.
func MustRangeField(name, esField string, ranges []RangeOption, opts ...FacetOption) *RangeField {
	f, err := NewRangeField(name, esField, ranges, opts...)
	if err != nil {
		panic(err)
	}
	return f
}

func (f *RangeField) Facet() search.Facet {
	rr := make([]search.FacetRange, 0, len(f.ranges))
	for _, r := range f.ranges {
		rr = append(rr, search.FacetRange{Key: r.Key, From: r.From, To: r.To})
	}
	return search.Facet{Field: f.esField, Kind: search.FacetRange, Ranges: rr}
}

// FilterValues passes range keys through untouched, the key itself is
// the filter value.
func (f *RangeField) FilterValues(ctx context.Context, raw []string) []Coerced {
	out := make([]Coerced, 0, len(raw))
	for _, r := range raw {
		out = append(out, Coerced{Value: r, Raw: r})
	}
	return out
}

// Ranges returns the configured intervals.
func (f *RangeField) Ranges() []RangeOption {
	return f.ranges
}

// Reflect rebuilds the choices from range buckets. Empty intervals are
// dropped, a range with no documents is not a useful choice.
func (f *RangeField) Reflect(ctx context.Context, buckets []search.Bucket, active []string) {
	sel := activeSet(active)
	labels := make(map[string]string, len(f.ranges))
	for _, r := range f.ranges {
		labels[r.Key] = r.Label
	}

	choices := make([]Choice, 0, len(buckets))
	for _, b := range buckets {
		if b.DocCount == 0 {
			continue
		}
		label, ok := labels[b.Key]
		if !ok || label == "" {
			label = b.Key
		}
		_, selected := sel[b.Key]
		choices = append(choices, Choice{
			Value:    b.Key,
			Label:    f.format(label, b.DocCount),
			Count:    b.DocCount,
			Selected: selected || b.Selected,
		})
	}
	f.choices = choices
}
