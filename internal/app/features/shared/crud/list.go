package crud

import (
	"context"
	"net/http"

	"github.com/dalemusser/couponadmin/internal/app/system/flash"
	"github.com/dalemusser/couponadmin/internal/app/system/listctl"
	"github.com/dalemusser/couponadmin/internal/app/system/paging"
	"github.com/dalemusser/couponadmin/internal/app/system/timeouts"
	"github.com/dalemusser/couponadmin/internal/app/system/viewdata"
	"github.com/dalemusser/waffle/pantry/templates"
)

// PageLink is one pager button.
type PageLink struct {
	N       int
	URL     string
	Current bool
}

type listData struct {
	viewdata.BaseVM

	Name     string
	Singular string
	BasePath string
	TableID  string
	ListURL  string
	// FirstURL is ListURL on page 1.
	FirstURL string

	Columns []string
	Rows    []Row

	Q          string
	Sort       string
	Status     string
	ShowSort   bool
	ShowStatus bool
	Statuses   []string
	DebounceMS int64

	CanCreate bool
	CanDelete bool
	CanEdit   bool

	Empty    bool
	Filtered bool
	LoadErr  string

	Pager   paging.Pager
	PrevURL string
	NextURL string
	Pages   []PageLink
	RangeLo int
	RangeHi int
	Total   int
}

// ServeList renders the list page, or only the table when the request is
// an HTMX refresh targeting it.
func (h *Handler[T]) ServeList(w http.ResponseWriter, r *http.Request) {
	q := h.parseQuery(r)

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Medium())
	defer cancel()

	st := h.ctrl.Load(ctx, listctl.Key(r, h.cfg.Name), q)
	if st.Stale {
		discardStale(w)
		return
	}

	data := h.listData(w, r, st)

	if isHTMX(r) && r.Header.Get("HX-Target") == data.TableID {
		templates.RenderSnippet(w, "crud_table", data)
		return
	}
	templates.Render(w, r, "crud_list", data)
}

// parseQuery reads the list query and drops a status this screen does
// not offer.
func (h *Handler[T]) parseQuery(r *http.Request) listctl.Query {
	q := listctl.ParseQuery(r, h.deps.PerPage)
	if !h.cfg.Filters.allows(q.Status) {
		q.Status = listctl.StatusNone
	}
	return q
}

func (h *Handler[T]) listData(w http.ResponseWriter, r *http.Request, st listctl.State[T]) listData {
	base := viewdata.NewBaseVM(w, r, h.cfg.Title, h.cfg.BasePath)

	rows := make([]Row, 0, len(st.Items))
	for _, item := range st.Items {
		row := h.cfg.Row(item)
		row.Cells = viewdata.DisplayOrder(base.Locale, row.Cells)
		rows = append(rows, row)
	}

	pager := paging.NewPager(st.Query.Page, st.TotalPages)
	rng := paging.ComputeRange(pager.Current, st.Query.PerPage, len(rows))

	data := listData{
		BaseVM:   base,
		Name:     h.cfg.Name,
		Singular: h.cfg.Singular,
		BasePath: h.cfg.BasePath,
		TableID:  h.TableID(),
		ListURL:  st.Query.URL(h.cfg.BasePath),
		FirstURL: st.Query.WithPage(1).URL(h.cfg.BasePath),

		Columns: viewdata.DisplayOrder(base.Locale, h.cfg.Columns),
		Rows:    rows,

		Q:          st.Query.Search,
		Sort:       string(st.Query.Sort),
		Status:     string(st.Query.Status),
		ShowSort:   h.cfg.Filters.Sort,
		ShowStatus: h.cfg.Filters.Status,
		DebounceMS: h.deps.Debounce.Milliseconds(),

		CanCreate: h.store.CanCreate(),
		CanDelete: h.store.CanDelete(),
		CanEdit:   h.store.CanUpdate(),

		Empty:    st.Empty(),
		Filtered: st.Query.Filtered(),

		Pager:   pager,
		PrevURL: st.Query.WithPage(pager.PrevPage).URL(h.cfg.BasePath),
		NextURL: st.Query.WithPage(pager.NextPage).URL(h.cfg.BasePath),
		RangeLo: rng.Start,
		RangeHi: rng.End,
		Total:   st.Total,
	}
	for _, s := range h.cfg.Filters.statuses() {
		data.Statuses = append(data.Statuses, string(s))
	}
	for _, n := range pager.Pages {
		data.Pages = append(data.Pages, PageLink{
			N:       n,
			URL:     st.Query.WithPage(n).URL(h.cfg.BasePath),
			Current: n == pager.Current,
		})
	}

	if st.Err != nil {
		data.LoadErr = st.ErrorMessage()
		data.Toasts = append(data.Toasts, flash.Toast{Kind: flash.KindError, Message: data.LoadErr})
	}
	return data
}
