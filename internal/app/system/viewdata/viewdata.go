// internal/app/system/viewdata/viewdata.go
package viewdata

import (
	"net/http"
	"strings"

	"github.com/dalemusser/couponadmin/internal/app/system/authz"
	"github.com/dalemusser/couponadmin/internal/app/system/flash"
	"github.com/dalemusser/couponadmin/internal/domain/models"
	"github.com/dalemusser/waffle/pantry/httpnav"
	"github.com/dalemusser/waffle/pantry/query"
	"github.com/gorilla/csrf"
)

// LocaleCookie remembers the chosen interface language.
const LocaleCookie = "locale"

// NavItem is one sidebar link.
type NavItem struct {
	Label  string
	Path   string
	Active bool
}

// BaseVM contains common fields for all view models.
// Embed this struct in your feature-specific view models.
//
//	type listData struct {
//	    viewdata.BaseVM
//	    Rows []row
//	}
type BaseVM struct {
	SiteName string

	IsLoggedIn bool
	Role       string
	IsAdmin    bool

	Title       string
	BackURL     string
	CurrentPath string

	CSRFToken string

	Toasts []flash.Toast

	Locale string
	RTL    bool

	Nav []NavItem
}

var (
	flashStore *flash.Store
	siteName   = models.DefaultSiteName
)

// Init wires the toast store. Call once from bootstrap.
func Init(store *flash.Store) {
	flashStore = store
}

// SetSiteName overrides the name shown in the header.
func SetSiteName(name string) {
	if name = strings.TrimSpace(name); name != "" {
		siteName = name
	}
}

// NewBaseVM creates a fully populated BaseVM for a page. It pops pending
// toasts, so call it once per render.
func NewBaseVM(w http.ResponseWriter, r *http.Request, title, backDefault string) BaseVM {
	role, signedIn := authz.UserCtx(r)
	locale := Locale(r)
	path := httpnav.CurrentPath(r)

	vm := BaseVM{
		SiteName:    siteName,
		IsLoggedIn:  signedIn,
		Role:        role,
		IsAdmin:     role == "admin",
		Title:       title,
		BackURL:     httpnav.ResolveBackURL(r, backDefault),
		CurrentPath: path,
		CSRFToken:   csrf.Token(r),
		Locale:      locale,
		RTL:         IsRTL(locale),
	}
	if signedIn {
		vm.Nav = NavFor(role, r.URL.Path)
	}
	if w != nil {
		vm.Toasts = flashStore.Pop(w, r)
	}
	return vm
}

// Locale returns the request's interface language: ?lang= first, then the
// locale cookie, then "en".
func Locale(r *http.Request) string {
	if l := normalizeLocale(query.Get(r, "lang")); l != "" {
		return l
	}
	if c, err := r.Cookie(LocaleCookie); err == nil {
		if l := normalizeLocale(c.Value); l != "" {
			return l
		}
	}
	return "en"
}

func normalizeLocale(s string) string {
	s = strings.ToLower(strings.TrimSpace(s))
	if i := strings.IndexAny(s, "-_"); i > 0 {
		s = s[:i]
	}
	if len(s) < 2 || len(s) > 3 {
		return ""
	}
	return s
}

var rtlLocales = map[string]bool{"ar": true, "he": true, "fa": true, "ur": true}

// IsRTL reports whether locale is written right to left.
func IsRTL(locale string) bool {
	return rtlLocales[normalizeLocale(locale)]
}

// DisplayOrder returns items in the order they should be laid out for
// the locale. Right-to-left locales get a reversed copy; the input is
// never modified.
func DisplayOrder[T any](locale string, items []T) []T {
	out := make([]T, len(items))
	copy(out, items)
	if !IsRTL(locale) {
		return out
	}
	for i, j := 0, len(out)-1; i < j; i, j = i+1, j-1 {
		out[i], out[j] = out[j], out[i]
	}
	return out
}

var (
	adminNav = []NavItem{
		{Label: "Dashboard", Path: "/admin-dashboard"},
		{Label: "Coupons", Path: "/coupons"},
		{Label: "Packages", Path: "/coupons/packages"},
		{Label: "Coupon Types", Path: "/coupon-types"},
		{Label: "Categories", Path: "/categories"},
		{Label: "Providers", Path: "/providers"},
		{Label: "Complaints", Path: "/complaints"},
		{Label: "Reels", Path: "/reels"},
		{Label: "Redeems", Path: "/redeems"},
		{Label: "Banners", Path: "/banners"},
		{Label: "Seasonal Events", Path: "/seasonal-events"},
		{Label: "Audit Log", Path: "/audit-log"},
	}
	providerNav = []NavItem{
		{Label: "Dashboard", Path: "/provider-dashboard"},
		{Label: "Coupons", Path: "/coupons"},
		{Label: "Packages", Path: "/coupons/packages"},
		{Label: "Reels", Path: "/reels"},
		{Label: "Redeems", Path: "/redeems"},
	}
)

// NavFor returns the sidebar for role with the entry for path marked
// active. The longest matching entry wins so "/coupons/packages" does not
// also light up "/coupons".
func NavFor(role, path string) []NavItem {
	var src []NavItem
	switch role {
	case "admin":
		src = adminNav
	case "provider":
		src = providerNav
	default:
		return nil
	}
	out := make([]NavItem, len(src))
	copy(out, src)

	best := -1
	for i, n := range out {
		if path == n.Path || strings.HasPrefix(path, n.Path+"/") {
			if best < 0 || len(n.Path) > len(out[best].Path) {
				best = i
			}
		}
	}
	if best >= 0 {
		out[best].Active = true
	}
	return out
}
