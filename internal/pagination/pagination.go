// Package pagination turns page/limit request parameters and a row count into
// the offset window and the envelope returned by every list endpoint.
package pagination

import "math"

const (
	DefaultPage  = 1
	DefaultLimit = 10
	// MaxLimit is enforced by request validation, not by Paginate.
	MaxLimit = 100
)

// Window is the resolved slice of a result set.
type Window struct {
	Page   int
	Limit  int
	Offset int
	Total  int64
	Pages  int
}

// Envelope is the wire shape of a Window.
type Envelope struct {
	Page  int   `json:"page"`
	Limit int   `json:"limit"`
	Total int64 `json:"total"`
	Pages int   `json:"pages"`
}

// Paginate resolves page and limit (nil means default) against total.
// Out-of-range values are not rejected here; a limit below 1 yields zero pages
// instead of dividing by zero. An offset that does not fit in an int
// saturates at math.MaxInt, which is past any total, so the window is empty.
func Paginate(page, limit *int, total int64) Window {
	w := Window{Page: DefaultPage, Limit: DefaultLimit, Total: total}
	if page != nil {
		w.Page = *page
	}
	if limit != nil {
		w.Limit = *limit
	}
	w.Offset = offset(w.Page, w.Limit)
	if w.Limit > 0 && total > 0 {
		l := int64(w.Limit)
		w.Pages = int((total + l - 1) / l)
	}
	return w
}

func offset(page, limit int) int {
	if page <= 1 || limit <= 0 {
		return 0
	}
	if page-1 > math.MaxInt/limit {
		return math.MaxInt
	}
	return (page - 1) * limit
}

// Empty reports whether the window starts past the last row.
func (w Window) Empty() bool {
	return int64(w.Offset) >= w.Total
}

func (w Window) Envelope() Envelope {
	return Envelope{Page: w.Page, Limit: w.Limit, Total: w.Total, Pages: w.Pages}
}
