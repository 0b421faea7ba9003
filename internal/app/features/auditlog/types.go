// internal/app/features/auditlog/types.go
package auditlog

import (
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/dalemusser/couponadmin/internal/app/store/audit"
	"github.com/dalemusser/couponadmin/internal/app/system/paging"
	"github.com/dalemusser/couponadmin/internal/app/system/viewdata"
)

const dateLayout = "2006-01-02"

// listItem is one audit event row.
type listItem struct {
	When      string
	Category  string
	EventType string
	Actor     string
	Role      string
	Subject   string
	IP        string
	Success   bool
	Reason    string
	Details   map[string]string
}

type listData struct {
	viewdata.BaseVM

	Disabled bool
	Items    []listItem

	Filter filter

	Categories []option
	EventTypes []option

	Pager   paging.Pager
	Range   paging.Range
	Total   int64
	PrevURL string
	NextURL string
	Pages   []pageLink
}

type pageLink struct {
	N       int
	URL     string
	Current bool
}

type option struct {
	Value string
	Label string
}

// filter is the parsed query string of the list page.
type filter struct {
	Category  string
	EventType string
	Actor     string
	StartDate string
	EndDate   string
	Page      int
}

func (f filter) query(limit int64) audit.QueryFilter {
	q := audit.QueryFilter{
		Category:  f.Category,
		EventType: f.EventType,
		Actor:     f.Actor,
		Limit:     limit,
		Offset:    int64(f.Page-1) * limit,
	}
	if t, err := time.Parse(dateLayout, f.StartDate); err == nil {
		q.StartTime = &t
	}
	if t, err := time.Parse(dateLayout, f.EndDate); err == nil {
		end := t.Add(24*time.Hour - time.Nanosecond)
		q.EndTime = &end
	}
	return q
}

// pageURL links to page n keeping the other filters.
func (f filter) pageURL(base string, n int) string {
	v := url.Values{}
	set := func(k, val string) {
		if val != "" {
			v.Set(k, val)
		}
	}
	set("category", f.Category)
	set("event_type", f.EventType)
	set("actor", f.Actor)
	set("start_date", f.StartDate)
	set("end_date", f.EndDate)
	if n > 1 {
		v.Set("page", strconv.Itoa(n))
	}
	if len(v) == 0 {
		return base
	}
	return base + "?" + v.Encode()
}

func categories() []option {
	return []option{
		{Value: audit.CategoryAuth, Label: "Authentication"},
		{Value: audit.CategoryAdmin, Label: "Administration"},
	}
}

var (
	authEvents = []string{
		audit.EventLoginSuccess,
		audit.EventLoginFailed,
		audit.EventLoginFailedRateLimit,
		audit.EventLogout,
		audit.EventRegistered,
		audit.EventSessionRefreshed,
		audit.EventSessionRefreshFailed,
		audit.EventPasswordResetRequest,
		audit.EventPasswordResetVerified,
		audit.EventPasswordResetFailed,
		audit.EventPasswordReset,
	}
	adminEvents = []string{
		audit.EventEntityCreated,
		audit.EventEntityUpdated,
		audit.EventEntityDeleted,
		audit.EventBulkDeleted,
		audit.EventUploadCanceled,
	}
)

// eventTypesFor lists the event types of category, or all of them when
// category is empty.
func eventTypesFor(category string) []option {
	var types []string
	switch category {
	case audit.CategoryAuth:
		types = authEvents
	case audit.CategoryAdmin:
		types = adminEvents
	case "":
		types = append(append([]string{}, authEvents...), adminEvents...)
	}
	out := make([]option, 0, len(types))
	for _, t := range types {
		out = append(out, option{Value: t, Label: eventLabel(t)})
	}
	return out
}

// eventLabel turns "password_reset_requested" into "Password reset requested".
func eventLabel(t string) string {
	s := strings.ReplaceAll(t, "_", " ")
	if s == "" {
		return s
	}
	return strings.ToUpper(s[:1]) + s[1:]
}
