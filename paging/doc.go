// Package paging provides an offset page adapter over search results.
//
// A Page wraps one window of hydrated records together with the total
// hit count reported by the engine, so templates and API envelopes can
// render page navigation without touching the engine again.
//
// # Basic Usage
//
// Cut a window out of a result set and wrap it:
//
//	page, err := paging.NewPage(items, 2, 20, resp.Total)
//	if err != nil {
//	    return err
//	}
//
//	page.Offset()   // 20, first index of this window
//	page.NumPages() // ceil(total / 20), at least 1
//	page.HasNext()  // whether a later window exists
//
// # Response Structure
//
// Meta renders the navigation state for API responses:
//
//	{
//	  "page": 2,
//	  "page_size": 20,
//	  "total": 53,
//	  "num_pages": 3,
//	  "has_next": true,
//	  "has_prev": true
//	}
package paging
