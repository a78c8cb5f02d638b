// Package view wires faceted search forms, query builders and record
// loaders into gin handlers.
//
// A View is shared across requests; all per-request state lives on the
// Instance it creates for each request, so one handler registration
// can serve concurrent searches without bleeding filters between them.
package view

import (
	"context"
	"errors"
	"fmt"

	"github.com/gin-gonic/gin"

	"github.com/ncobase/facet/fields"
	"github.com/ncobase/facet/form"
	"github.com/ncobase/facet/log"
	"github.com/ncobase/facet/net/resp"
	"github.com/ncobase/facet/query"
	"github.com/ncobase/facet/search"
)

// Keys under which the bound form and the search response are stored
// on the gin context for downstream handlers.
const (
	ContextFormKey     = "es_form"
	ContextResponseKey = "es_response"
)

// Config wires a faceted search view. Form and Builder are factories,
// every request gets fresh instances of both.
type Config struct {
	// Form builds the request's form.
	Form func() *form.Form
	// Builder builds the request's query builder from the form's facet
	// declarations and the free text query.
	Builder func(facets map[string]search.Facet, queryText string) (*query.Builder, error)
	// SearchQuery extracts the free text query from the request. The
	// "q" query parameter is used when nil.
	SearchQuery func(c *gin.Context) string
}

// View executes a faceted search per request.
type View struct {
	cfg Config
}

// New creates a view. The factories are probed once so broken wiring
// fails at construction instead of on the first request.
func New(cfg Config) (*View, error) {
	if cfg.Form == nil {
		return nil, errors.New("view: form factory is nil")
	}
	if cfg.Builder == nil {
		return nil, errors.New("view: builder factory is nil")
	}
	if _, _, err := probe(cfg); err != nil {
		return nil, err
	}
	if cfg.SearchQuery == nil {
		cfg.SearchQuery = func(c *gin.Context) string { return c.Query("q") }
	}
	return &View{cfg: cfg}, nil
}

func probe(cfg Config) (*form.Form, *query.Builder, error) {
	f := cfg.Form()
	if f == nil {
		return nil, nil, errors.New("view: form factory returned nil")
	}
	b, err := cfg.Builder(f.Facets(), "")
	if err != nil {
		return nil, nil, fmt.Errorf("view: builder factory failed: %w", err)
	}
	if b == nil {
		return nil, nil, errors.New("view: builder factory returned nil")
	}
	return f, b, nil
}

// Instance creates the per-request state for one request.
func (v *View) Instance(c *gin.Context) *Instance {
	return &Instance{view: v, c: c}
}

// Handle runs the search and renders a JSON envelope carrying the
// hits, the facet choices and the total. The bound form and the raw
// response are stored on the gin context.
func (v *View) Handle(c *gin.Context) {
	inst := v.Instance(c)
	ctx := c.Request.Context()

	response, err := inst.Response(ctx)
	if err != nil {
		log.Errorf(ctx, "faceted search failed: %v", err)
		resp.Fail(c.Writer, resp.InternalServer("search failed"))
		return
	}

	c.Set(ContextFormKey, inst.Form())
	c.Set(ContextResponseKey, response)
	resp.Success(c.Writer, searchEnvelope(inst.Form(), response))
}

func searchEnvelope(f *form.Form, response *search.Response) map[string]any {
	return map[string]any{
		"total":  response.Total,
		"hits":   response.Hits,
		"facets": facetChoices(f),
		"engine": response.Engine,
	}
}

func facetChoices(f *form.Form) map[string][]fields.Choice {
	choices := make(map[string][]fields.Choice)
	for _, field := range f.FacetFields() {
		cc := field.Choices()
		if cc == nil {
			cc = []fields.Choice{}
		}
		choices[field.Name()] = cc
	}
	return choices
}

// Instance is the per-request state of a view: one bound form, one
// builder with the submitted filters applied, one memoized response.
type Instance struct {
	view     *View
	c        *gin.Context
	form     *form.Form
	builder  *query.Builder
	resp     *search.Response
	err      error
	executed bool
}

// Form returns the request's form. It is bound to the submitted
// values when the request carries any, and stays unbound otherwise.
func (i *Instance) Form() *form.Form {
	if i.form == nil {
		i.form = i.view.cfg.Form()
		if values := i.c.Request.URL.Query(); len(values) > 0 {
			i.form.Bind(values)
		}
	}
	return i.form
}

// Builder returns the request's query builder with the bound values
// already applied.
func (i *Instance) Builder() (*query.Builder, error) {
	if i.builder == nil {
		f := i.Form()
		b, err := i.view.cfg.Builder(f.Facets(), i.view.cfg.SearchQuery(i.c))
		if err != nil {
			return nil, err
		}
		if b == nil {
			return nil, errors.New("view: builder factory returned nil")
		}
		i.applyFields(b, f)
		i.builder = b
	}
	return i.builder, nil
}

// Response executes the search once and memoizes the result, repeated
// calls within the request return the same response. The form reflects
// the response so its facet choices carry the counts of this result
// set.
func (i *Instance) Response(ctx context.Context) (*search.Response, error) {
	if i.executed {
		return i.resp, i.err
	}
	i.executed = true

	b, err := i.Builder()
	if err != nil {
		i.err = err
		return nil, err
	}
	response, err := b.Execute(ctx)
	if err != nil {
		i.err = err
		return nil, err
	}
	i.resp = response
	i.Form().Reflect(ctx, response)
	return response, nil
}

type clauser interface {
	Clause(ctx context.Context, values []string) (search.Clause, error)
}

type sorter interface {
	Sort(value string) (string, bool)
}

// applyFields feeds the bound values into the builder, dispatching on
// the field kind. Selections that cannot be applied are logged and
// skipped so one bad parameter does not take the whole search down.
func (i *Instance) applyFields(b *query.Builder, f *form.Form) {
	ctx := i.c.Request.Context()
	values := f.Values()

	for _, field := range f.Fields() {
		raw := values[field.Name()]
		if len(raw) == 0 {
			continue
		}

		switch field.Kind() {
		case fields.KindFacet:
			facet, ok := field.(fields.FacetField)
			if !ok {
				continue
			}
			coerced := facet.FilterValues(ctx, raw)
			vals := make([]any, 0, len(coerced))
			for _, cv := range coerced {
				vals = append(vals, cv.Value)
			}
			if err := b.AddFacetFilter(field.Name(), vals); err != nil {
				log.Warnf(ctx, "skipping facet filter %s: %v", field.Name(), err)
			}
		case fields.KindFilter:
			fld, ok := field.(clauser)
			if !ok {
				continue
			}
			clause, err := fld.Clause(ctx, raw)
			if err != nil {
				log.Warnf(ctx, "skipping filter %s: %v", field.Name(), err)
				continue
			}
			if clause != nil {
				b.AddFilter(clause)
			}
		case fields.KindSort:
			fld, ok := field.(sorter)
			if !ok {
				continue
			}
			for _, v := range raw {
				expr, ok := fld.Sort(v)
				if !ok {
					log.Warnf(ctx, "unknown sort %q on field %s", v, field.Name())
					continue
				}
				b.AddSort(search.ParseSort(expr))
			}
		case fields.KindPlain:
			// carried by the form, nothing reaches the query
		}
	}
}
