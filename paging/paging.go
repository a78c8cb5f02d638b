package paging

import (
	"fmt"
)

// Page is one window of a paginated result set. The total is captured
// when the page is built and stays fixed for the page's lifetime.
type Page[T any] struct {
	items  []T
	number int
	size   int
	total  int64
}

// NewPage wraps one result window. number and size are 1-based and
// must both be at least 1. total is the size of the full result set
// the window was cut from.
func NewPage[T any](items []T, number, size int, total int64) (*Page[T], error) {
	if number < 1 || size < 1 {
		return nil, fmt.Errorf("page and page size must be at least 1, got page=%d size=%d", number, size)
	}
	if items == nil {
		items = make([]T, 0)
	}
	if total < 0 {
		total = 0
	}
	return &Page[T]{items: items, number: number, size: size, total: total}, nil
}

// Items returns the records of this window.
func (p *Page[T]) Items() []T {
	return p.items
}

// Number returns the 1-based page number.
func (p *Page[T]) Number() int {
	return p.number
}

// Size returns the configured page size. The last page may hold fewer
// items.
func (p *Page[T]) Size() int {
	return p.size
}

// Total returns the size of the full result set.
func (p *Page[T]) Total() int64 {
	return p.total
}

// NumPages returns the page count, at least 1 so an empty result still
// renders as page 1 of 1.
func (p *Page[T]) NumPages() int {
	pages := int((p.total + int64(p.size) - 1) / int64(p.size))
	if pages < 1 {
		pages = 1
	}
	return pages
}

// HasNext reports whether a page follows this one.
func (p *Page[T]) HasNext() bool {
	return p.number < p.NumPages()
}

// HasPrev reports whether a page precedes this one.
func (p *Page[T]) HasPrev() bool {
	return p.number > 1
}

// Offset returns the zero-based index of the first item of this window
// within the full result set.
func (p *Page[T]) Offset() int {
	return (p.number - 1) * p.size
}

// Meta is the serializable shape of a page for API envelopes.
type Meta struct {
	Page     int   `json:"page"`
	PageSize int   `json:"page_size"`
	Total    int64 `json:"total"`
	NumPages int   `json:"num_pages"`
	HasNext  bool  `json:"has_next"`
	HasPrev  bool  `json:"has_prev"`
}

// Meta returns the page's serializable metadata.
func (p *Page[T]) Meta() Meta {
	return Meta{
		Page:     p.number,
		PageSize: p.size,
		Total:    p.total,
		NumPages: p.NumPages(),
		HasNext:  p.HasNext(),
		HasPrev:  p.HasPrev(),
	}
}
