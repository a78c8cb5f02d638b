package fields

import (
	"context"
	"fmt"

	"github.com/ncobase/facet/search"
)

// FilterFunc builds a filter clause from the submitted values. A nil
// clause with a nil error means the values produce no filter.
type FilterFunc func(ctx context.Context, values []string) (search.Clause, error)

// FilterField contributes a custom filter clause without a facet.
type FilterField struct {
	name  string
	build FilterFunc
}

// NewFilterField creates a filter field. build translates the
// submitted values into a query clause.
func NewFilterField(name string, build FilterFunc) *FilterField {
	return &FilterField{name: name, build: build}
}

func (f *FilterField) Name() string {
	return f.name
}

func (f *FilterField) Kind() Kind {
	return KindFilter
}

// Clause builds the filter clause for the submitted values.
func (f *FilterField) Clause(ctx context.Context, values []string) (search.Clause, error) {
	if f.build == nil {
		return nil, fmt.Errorf("filter field %q has no clause builder", f.name)
	}
	return f.build(ctx, values)
}
