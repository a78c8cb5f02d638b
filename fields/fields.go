package fields

import (
	"fmt"
	"strconv"
)

// Kind classifies what a form field contributes to a search.
type Kind int

const (
	// KindPlain fields carry submitted values without touching the query
	KindPlain Kind = iota
	// KindFacet fields declare an aggregation and filter on its buckets
	KindFacet
	// KindFilter fields contribute a custom filter clause
	KindFilter
	// KindSort fields translate a submitted value into a sort criterion
	KindSort
)

func (k Kind) String() string {
	switch k {
	case KindPlain:
		return "plain"
	case KindFacet:
		return "facet"
	case KindFilter:
		return "filter"
	case KindSort:
		return "sort"
	default:
		return fmt.Sprintf("kind(%d)", int(k))
	}
}

// Field is the common surface of all form fields.
type Field interface {
	Name() string
	Kind() Kind
}

// Coerced is one submitted value after type coercion. When coercion
// fails the raw string is carried as the value and FellBack is set.
type Coerced struct {
	Value    any
	Raw      string
	FellBack bool
}

// CoerceFunc converts a raw form value into its typed filter value.
type CoerceFunc func(raw string) (any, error)

// CoerceString passes the raw value through.
func CoerceString(raw string) (any, error) {
	return raw, nil
}

// CoerceBool parses the raw value as a boolean.
func CoerceBool(raw string) (any, error) {
	v, err := strconv.ParseBool(raw)
	if err != nil {
		return nil, fmt.Errorf("not a boolean: %q", raw)
	}
	return v, nil
}

// CoerceInt parses the raw value as an integer.
func CoerceInt(raw string) (any, error) {
	v, err := strconv.ParseInt(raw, 10, 64)
	if err != nil {
		return nil, fmt.Errorf("not an integer: %q", raw)
	}
	return v, nil
}

// CoerceFloat parses the raw value as a float.
func CoerceFloat(raw string) (any, error) {
	v, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		return nil, fmt.Errorf("not a number: %q", raw)
	}
	return v, nil
}

// Choice is one selectable facet value with its document count.
type Choice struct {
	Value    string `json:"value"`
	Label    string `json:"label"`
	Count    int64  `json:"count"`
	Selected bool   `json:"selected"`
}

// Formatter renders a choice label from a bucket value and its count.
type Formatter func(value string, count int64) string

func defaultFormat(value string, count int64) string {
	return fmt.Sprintf("%s (%d)", value, count)
}

// PlainField carries a submitted value without contributing filters,
// facets or sorting. The free text query field is the usual case.
type PlainField struct {
	name string
}

// NewPlainField creates a pass-through field.
func NewPlainField(name string) *PlainField {
	return &PlainField{name: name}
}

func (f *PlainField) Name() string {
	return f.name
}

func (f *PlainField) Kind() Kind {
	return KindPlain
}
