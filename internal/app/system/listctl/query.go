package listctl

import (
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"strings"

	"github.com/dalemusser/couponadmin/internal/app/system/normalize"
	"github.com/dalemusser/waffle/pantry/query"
)

// Sort orders a list by creation time.
type Sort string

const (
	SortNone   Sort = ""
	SortNewest Sort = "newest"
	SortOldest Sort = "oldest"
)

// Status filters a list by record status.
type Status string

const (
	StatusNone    Status = ""
	StatusActive  Status = normalize.StatusActive
	StatusExpired Status = normalize.StatusExpired
	StatusPending Status = normalize.StatusPending
	// StatusInactive is the second state of two-state records such as
	// banners. The API reads it as code 1.
	StatusInactive Status = normalize.StatusInactive
)

// DefaultPerPage is used when a list does not configure its own page size.
const DefaultPerPage = 10

// maxPerPage bounds the per_page query parameter.
const maxPerPage = 100

// Query is the input of one list fetch. Sort and Status are independent.
type Query struct {
	Page    int
	PerPage int
	Search  string
	Sort    Sort
	Status  Status
}

// ParseQuery reads page, per_page, q, sort and status from the request.
// Unknown sort or status values are ignored.
func ParseQuery(r *http.Request, perPage int) Query {
	if perPage <= 0 {
		perPage = DefaultPerPage
	}
	q := Query{
		Page:    1,
		PerPage: perPage,
		Search:  query.Search(r, "q"),
		Sort:    parseSort(query.Get(r, "sort")),
		Status:  parseStatus(query.Get(r, "status")),
	}
	if n, err := strconv.Atoi(query.Get(r, "page")); err == nil && n > 0 {
		q.Page = n
	}
	if n, err := strconv.Atoi(query.Get(r, "per_page")); err == nil && n > 0 {
		q.PerPage = min(n, maxPerPage)
	}
	return q
}

func parseSort(s string) Sort {
	switch v := Sort(strings.ToLower(normalize.QueryParam(s))); v {
	case SortNewest, SortOldest:
		return v
	}
	return SortNone
}

func parseStatus(s string) Status {
	switch v := Status(strings.ToLower(normalize.QueryParam(s))); v {
	case StatusActive, StatusExpired, StatusPending, StatusInactive:
		return v
	}
	return StatusNone
}

// APIValues encodes the query for the remote list endpoint.
func (q Query) APIValues() url.Values {
	v := url.Values{}
	v.Set("page", strconv.Itoa(max(q.Page, 1)))
	v.Set("per_page", strconv.Itoa(q.PerPage))
	if q.Search != "" {
		v.Set("search", q.Search)
	}
	if q.Sort != SortNone {
		v.Set("sort", string(q.Sort))
	}
	if code, ok := normalize.StatusCode(string(q.Status)); ok && q.Status != StatusNone {
		v.Set("status", strconv.Itoa(code))
	}
	return v
}

// Values encodes the query for links back to this dashboard.
func (q Query) Values() url.Values {
	v := url.Values{}
	if q.Page > 1 {
		v.Set("page", strconv.Itoa(q.Page))
	}
	if q.Search != "" {
		v.Set("q", q.Search)
	}
	if q.Sort != SortNone {
		v.Set("sort", string(q.Sort))
	}
	if q.Status != StatusNone {
		v.Set("status", string(q.Status))
	}
	return v
}

// WithPage returns a copy of q on page n.
func (q Query) WithPage(n int) Query {
	q.Page = n
	return q
}

// URL returns base with q's link parameters.
func (q Query) URL(base string) string {
	enc := q.Values().Encode()
	if enc == "" {
		return base
	}
	return fmt.Sprintf("%s?%s", base, enc)
}

// Filtered reports whether a search, sort or status is applied.
func (q Query) Filtered() bool {
	return q.Search != "" || q.Sort != SortNone || q.Status != StatusNone
}
