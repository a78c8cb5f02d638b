package view

import (
	"errors"
	"fmt"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/ncobase/facet/form"
	"github.com/ncobase/facet/log"
	"github.com/ncobase/facet/net/resp"
	"github.com/ncobase/facet/paging"
	"github.com/ncobase/facet/records"
	"github.com/ncobase/facet/search"
)

const (
	defaultPageSize  = 20
	defaultPageParam = "page"
)

// ListConfig wires a list view: a faceted search whose hits hydrate
// into records of one type.
type ListConfig[T any] struct {
	Config
	// Loader hydrates hit IDs into records.
	Loader records.Loader[T]
	// PageSize is the window size, 20 when unset.
	PageSize int
	// PageParam names the route or query parameter carrying the page
	// number, "page" when unset.
	PageParam string
	// PageSizeParam optionally names a query parameter that overrides
	// PageSize per request. Unset keeps the window size fixed.
	PageSizeParam string
}

// ListView pages through the hydrated records of a faceted search.
type ListView[T any] struct {
	view          *View
	loader        records.Loader[T]
	pageSize      int
	pageParam     string
	pageSizeParam string
}

// NewListView creates a list view. The wired builder must expose
// exactly one record type, an index with interleaved types cannot
// hydrate into a single record list.
func NewListView[T any](cfg ListConfig[T]) (*ListView[T], error) {
	v, err := New(cfg.Config)
	if err != nil {
		return nil, err
	}
	if cfg.Loader == nil {
		return nil, errors.New("view: record loader is nil")
	}

	_, b, err := probe(v.cfg)
	if err != nil {
		return nil, err
	}
	if b.RecordType() == "" {
		return nil, errors.New("view: list views need a builder with exactly one record type")
	}

	if cfg.PageSize <= 0 {
		cfg.PageSize = defaultPageSize
	}
	if cfg.PageParam == "" {
		cfg.PageParam = defaultPageParam
	}
	return &ListView[T]{
		view:          v,
		loader:        cfg.Loader,
		pageSize:      cfg.PageSize,
		pageParam:     cfg.PageParam,
		pageSizeParam: cfg.PageSizeParam,
	}, nil
}

// Handle runs the search for the requested page, hydrates the hits
// into records and renders the page envelope.
func (lv *ListView[T]) Handle(c *gin.Context) {
	ctx := c.Request.Context()
	inst := lv.view.Instance(c)

	page, err := lv.pageNumber(c)
	if err != nil {
		resp.Fail(c.Writer, resp.BadRequest(err.Error()))
		return
	}
	size, err := lv.windowSize(c)
	if err != nil {
		resp.Fail(c.Writer, resp.BadRequest(err.Error()))
		return
	}

	b, err := inst.Builder()
	if err != nil {
		log.Errorf(ctx, "faceted search failed: %v", err)
		resp.Fail(c.Writer, resp.InternalServer("search failed"))
		return
	}
	if err := b.SetPagination(page, size); err != nil {
		resp.Fail(c.Writer, resp.BadRequest(err.Error()))
		return
	}

	response, err := inst.Response(ctx)
	if err != nil {
		log.Errorf(ctx, "faceted search failed: %v", err)
		resp.Fail(c.Writer, resp.InternalServer("search failed"))
		return
	}

	items, err := lv.loader.Load(ctx, search.HitIDs(response.Hits))
	if err != nil {
		log.Errorf(ctx, "failed to load records: %v", err)
		resp.Fail(c.Writer, resp.InternalServer("failed to load records"))
		return
	}

	pg, err := paging.NewPage(items, page, size, response.Total)
	if err != nil {
		resp.Fail(c.Writer, resp.BadRequest(err.Error()))
		return
	}

	c.Set(ContextFormKey, inst.Form())
	c.Set(ContextResponseKey, response)
	resp.Success(c.Writer, listEnvelope(inst.Form(), pg))
}

// pageNumber resolves the requested page: route parameter first, then
// query parameter, defaulting to page 1. Non-numeric values fail.
func (lv *ListView[T]) pageNumber(c *gin.Context) (int, error) {
	raw := c.Param(lv.pageParam)
	if raw == "" {
		raw = c.Query(lv.pageParam)
	}
	if raw == "" {
		return 1, nil
	}
	page, err := strconv.Atoi(raw)
	if err != nil {
		return 0, fmt.Errorf("page %q is not a number", raw)
	}
	return page, nil
}

// windowSize resolves the page size, honoring the override parameter
// when the view opted in.
func (lv *ListView[T]) windowSize(c *gin.Context) (int, error) {
	if lv.pageSizeParam == "" {
		return lv.pageSize, nil
	}
	raw := c.Query(lv.pageSizeParam)
	if raw == "" {
		return lv.pageSize, nil
	}
	size, err := strconv.Atoi(raw)
	if err != nil {
		return 0, fmt.Errorf("page size %q is not a number", raw)
	}
	return size, nil
}

func listEnvelope[T any](f *form.Form, pg *paging.Page[T]) map[string]any {
	return map[string]any{
		"items":  pg.Items(),
		"paging": pg.Meta(),
		"facets": facetChoices(f),
	}
}
