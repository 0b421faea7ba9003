// Package listctl holds the page-level state of every entity list: the
// current page, search term, sort and status filter, and the fetched
// collection. Each request recomputes that state from its query string.
package listctl

import (
	"context"
	"hash/fnv"
	"net/http"
	"strconv"

	"github.com/dalemusser/couponadmin/internal/app/system/apiclient"
	"github.com/dalemusser/couponadmin/internal/app/system/auth"
	"go.uber.org/zap"
)

// Page is one page of normalized records as reported by the API.
type Page[T any] struct {
	Items       []T
	CurrentPage int
	TotalPages  int
	Total       int
}

// Fetcher loads one page for q.
type Fetcher[T any] func(ctx context.Context, q Query) (Page[T], error)

// State is what a list page renders.
type State[T any] struct {
	Query      Query
	Items      []T
	TotalPages int
	Total      int
	Err        error
	// Stale is set when a newer fetch for the same list started while
	// this one was in flight. Stale state must not be rendered.
	Stale bool
}

// Empty reports whether a successful fetch returned no records.
func (s State[T]) Empty() bool {
	return s.Err == nil && len(s.Items) == 0
}

// ErrorMessage renders Err for a toast.
func (s State[T]) ErrorMessage() string {
	return apiclient.Describe(s.Err)
}

// Controller loads list state for one entity.
type Controller[T any] struct {
	name  string
	fetch Fetcher[T]
	seq   *Sequencer
	log   *zap.Logger
}

// New builds a Controller. seq may be shared between controllers.
func New[T any](name string, fetch Fetcher[T], seq *Sequencer, logger *zap.Logger) *Controller[T] {
	if seq == nil {
		seq = NewSequencer()
	}
	return &Controller[T]{name: name, fetch: fetch, seq: seq, log: logger}
}

// Name returns the list name.
func (c *Controller[T]) Name() string {
	return c.name
}

// Load fetches the page described by q. key identifies the (session, list)
// pair for the stale-response guard; see Key.
//
// On success Items and TotalPages are replaced and Query.Page is
// reconciled with the page the server reports. On failure Items is empty
// and Err is set; nothing is retried.
func (c *Controller[T]) Load(ctx context.Context, key string, q Query) State[T] {
	token := c.seq.Begin(key)
	page, err := c.fetch(ctx, q)
	if !c.seq.Latest(key, token) {
		c.log.Debug("discarding stale list response",
			zap.String("list", c.name),
			zap.Int("page", q.Page))
		return State[T]{Query: q, Items: []T{}, Stale: true}
	}

	if err != nil {
		c.log.Warn("list fetch failed",
			zap.String("list", c.name),
			zap.Int("status", apiclient.StatusOf(err)),
			zap.Error(err))
		return State[T]{Query: q, Items: []T{}, TotalPages: 1, Err: err}
	}

	st := State[T]{
		Query:      q,
		Items:      page.Items,
		TotalPages: max(page.TotalPages, 1),
		Total:      page.Total,
	}
	if st.Items == nil {
		st.Items = []T{}
	}
	if page.CurrentPage > 0 && page.CurrentPage != q.Page {
		st.Query.Page = page.CurrentPage
	}
	st.Query.Page = min(max(st.Query.Page, 1), st.TotalPages)
	return st
}

// Key derives the stale-guard key for list name from the request's
// session token. Anonymous requests share one key per list.
func Key(r *http.Request, name string) string {
	h := fnv.New64a()
	if u, ok := auth.CurrentUser(r); ok {
		_, _ = h.Write([]byte(u.Token))
	}
	return name + ":" + strconv.FormatUint(h.Sum64(), 16)
}
