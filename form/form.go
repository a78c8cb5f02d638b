package form

import (
	"context"
	"fmt"
	"net/url"

	"github.com/ncobase/facet/fields"
	"github.com/ncobase/facet/search"
)

// Form groups the fields of one faceted search and carries the
// submitted values between binding and reflection.
type Form struct {
	fields []fields.Field
	byName map[string]fields.Field
	values url.Values
	bound  bool
}

// New assembles a form from field descriptors. Field names must be
// unique and non-empty.
func New(ff ...fields.Field) (*Form, error) {
	f := &Form{
		fields: ff,
		byName: make(map[string]fields.Field, len(ff)),
		values: url.Values{},
	}
	for _, field := range ff {
		if field == nil {
			return nil, fmt.Errorf("form has a nil field")
		}
		name := field.Name()
		if name == "" {
			return nil, fmt.Errorf("form has a field without a name")
		}
		if _, dup := f.byName[name]; dup {
			return nil, fmt.Errorf("duplicate form field %q", name)
		}
		f.byName[name] = field
	}
	return f, nil
}

// Must is New that panics on error, for form factories with a fixed
// field list.
func Must(ff ...fields.Field) *Form {
	f, err := New(ff...)
	if err != nil {
		panic(err)
	}
	return f
}

// Bind stores the submitted values. A nil set binds empty values.
func (f *Form) Bind(values url.Values) {
	if values == nil {
		values = url.Values{}
	}
	f.values = values
	f.bound = true
}

// Bound reports whether Bind has been called.
func (f *Form) Bound() bool {
	return f.bound
}

// Values returns the bound values. Never nil, an unbound form has
// empty values.
func (f *Form) Values() url.Values {
	return f.values
}

// Fields returns all fields in declaration order.
func (f *Form) Fields() []fields.Field {
	return f.fields
}

// Field looks a field up by name.
func (f *Form) Field(name string) (fields.Field, bool) {
	field, ok := f.byName[name]
	return field, ok
}

// FacetFields returns the facet fields in declaration order.
func (f *Form) FacetFields() []fields.FacetField {
	out := make([]fields.FacetField, 0, len(f.fields))
	for _, field := range f.fields {
		if field.Kind() != fields.KindFacet {
			continue
		}
		if facet, ok := field.(fields.FacetField); ok {
			out = append(out, facet)
		}
	}
	return out
}

// FilterFields returns the filter fields in declaration order.
func (f *Form) FilterFields() []fields.Field {
	return f.kindFields(fields.KindFilter)
}

// SortFields returns the sort fields in declaration order.
func (f *Form) SortFields() []fields.Field {
	return f.kindFields(fields.KindSort)
}

// PlainFields returns the fields that never reach the query.
func (f *Form) PlainFields() []fields.Field {
	return f.kindFields(fields.KindPlain)
}

func (f *Form) kindFields(kind fields.Kind) []fields.Field {
	out := make([]fields.Field, 0, len(f.fields))
	for _, field := range f.fields {
		if field.Kind() == kind {
			out = append(out, field)
		}
	}
	return out
}

// Facets returns the aggregations declared by the facet fields, keyed
// by field name.
func (f *Form) Facets() map[string]search.Facet {
	facets := make(map[string]search.Facet)
	for _, field := range f.FacetFields() {
		facets[field.Name()] = field.Facet()
	}
	return facets
}

// Reflect pushes response buckets into the facet fields so their
// choices carry the counts of the current result set. Facets missing
// from the response leave the field untouched.
func (f *Form) Reflect(ctx context.Context, resp *search.Response) {
	if resp == nil {
		return
	}
	for _, field := range f.FacetFields() {
		buckets, ok := resp.Facets[field.Name()]
		if !ok {
			continue
		}
		field.Reflect(ctx, buckets, f.values[field.Name()])
	}
}
