// internal/app/system/paging/paging.go
package paging

import (
	"net/http"
	"strconv"

	"github.com/dalemusser/waffle/pantry/query"
)

// windowSize is how many page-number links the pager shows.
const windowSize = 5

// ParsePage extracts the 1-based "page" query parameter.
// Returns 1 if not present or invalid.
func ParsePage(r *http.Request) int {
	n, err := strconv.Atoi(query.Get(r, "page"))
	if err != nil || n < 1 {
		return 1
	}
	return n
}

// Clamp returns page limited to [1, total]. A total below 1 counts as 1.
func Clamp(page, total int) int {
	total = max(total, 1)
	return min(max(page, 1), total)
}

// Pager drives the prev/next/page-number controls under a list.
// Links never point at page 0 or past the last page.
type Pager struct {
	Current  int
	Total    int
	HasPrev  bool
	HasNext  bool
	PrevPage int
	NextPage int
	Pages    []int
}

// NewPager builds the controls for page current of total.
func NewPager(current, total int) Pager {
	total = max(total, 1)
	current = Clamp(current, total)

	p := Pager{
		Current:  current,
		Total:    total,
		HasPrev:  current > 1,
		HasNext:  current < total,
		PrevPage: max(current-1, 1),
		NextPage: min(current+1, total),
	}

	start := max(current-windowSize/2, 1)
	end := min(start+windowSize-1, total)
	start = max(end-windowSize+1, 1)
	for i := start; i <= end; i++ {
		p.Pages = append(p.Pages, i)
	}
	return p
}

// Range holds the 1-based display range of the rows on a page.
type Range struct {
	Start int // 0 if no results
	End   int // 0 if no results
}

// ComputeRange returns the row range for page with shown rows of perPage.
func ComputeRange(page, perPage, shown int) Range {
	if shown == 0 {
		return Range{}
	}
	start := (max(page, 1)-1)*perPage + 1
	return Range{Start: start, End: start + shown - 1}
}
