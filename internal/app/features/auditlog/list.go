// internal/app/features/auditlog/list.go
package auditlog

import (
	"net/http"
	"strings"
	"time"

	uierrors "github.com/dalemusser/couponadmin/internal/app/features/errors"
	"github.com/dalemusser/couponadmin/internal/app/store/audit"
	"github.com/dalemusser/couponadmin/internal/app/system/paging"
	"github.com/dalemusser/couponadmin/internal/app/system/timeouts"
	"github.com/dalemusser/couponadmin/internal/app/system/viewdata"
	"github.com/dalemusser/waffle/pantry/query"
	"github.com/dalemusser/waffle/pantry/templates"
	"golang.org/x/sync/errgroup"
)

const (
	basePath = "/audit-log"
	pageSize = 50
)

// ServeList handles GET /audit-log.
func (h *Handler) ServeList(w http.ResponseWriter, r *http.Request) {
	f := parseFilter(r)
	data := listData{
		BaseVM:     viewdata.NewBaseVM(w, r, "Audit log", "/admin-dashboard"),
		Filter:     f,
		Categories: categories(),
		EventTypes: eventTypesFor(f.Category),
		Items:      []listItem{},
		Pager:      paging.NewPager(1, 1),
	}
	if h.Store == nil {
		data.Disabled = true
		templates.Render(w, r, "audit_list", data)
		return
	}

	ctx, cancel := timeouts.WithTimeout(r.Context(), timeouts.Long(), h.Log, "audit log list")
	defer cancel()

	qf := f.query(pageSize)
	var (
		events []audit.Event
		total  int64
	)
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() (err error) {
		events, err = h.Store.Query(gctx, qf)
		return err
	})
	g.Go(func() (err error) {
		total, err = h.Store.Count(gctx, qf)
		return err
	})
	if err := g.Wait(); err != nil {
		uierrors.LogServerError(h.Log, w, r, "audit log query failed", err, "/admin-dashboard")
		return
	}

	for _, e := range events {
		data.Items = append(data.Items, toItem(e))
	}
	pages := int((total + pageSize - 1) / pageSize)
	data.Pager = paging.NewPager(f.Page, pages)
	data.Range = paging.ComputeRange(f.Page, pageSize, len(data.Items))
	data.Total = total
	data.PrevURL = f.pageURL(basePath, data.Pager.PrevPage)
	data.NextURL = f.pageURL(basePath, data.Pager.NextPage)
	for _, n := range data.Pager.Pages {
		data.Pages = append(data.Pages, pageLink{N: n, URL: f.pageURL(basePath, n), Current: n == data.Pager.Current})
	}

	templates.Render(w, r, "audit_list", data)
}

func parseFilter(r *http.Request) filter {
	f := filter{
		Category:  strings.TrimSpace(query.Get(r, "category")),
		EventType: strings.TrimSpace(query.Get(r, "event_type")),
		Actor:     strings.ToLower(strings.TrimSpace(query.Get(r, "actor"))),
		StartDate: strings.TrimSpace(query.Get(r, "start_date")),
		EndDate:   strings.TrimSpace(query.Get(r, "end_date")),
		Page:      paging.ParsePage(r),
	}
	if f.Category != audit.CategoryAuth && f.Category != audit.CategoryAdmin {
		f.Category = ""
	}
	return f
}

func toItem(e audit.Event) listItem {
	item := listItem{
		When:      e.Timestamp.Local().Format(time.DateTime),
		Category:  e.Category,
		EventType: eventLabel(e.EventType),
		Actor:     e.Actor,
		Role:      e.ActorRole,
		IP:        e.IP,
		Success:   e.Success,
		Reason:    e.FailureReason,
		Details:   e.Details,
	}
	if e.Entity != "" {
		item.Subject = e.Entity
		if e.EntityID != "" {
			item.Subject += " #" + e.EntityID
		}
	}
	if item.Actor == "" {
		item.Actor = "-"
	}
	return item
}
