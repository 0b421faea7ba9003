package crud

import (
	"net/http"
	"net/url"

	"github.com/dalemusser/waffle/pantry/urlutil"
)

func isHTMX(r *http.Request) bool {
	return r.Header.Get("HX-Request") == "true"
}

// discardStale answers a superseded list request without touching the
// page. htmx performs no swap on 204 and HX-Reswap makes that explicit.
func discardStale(w http.ResponseWriter) {
	w.Header().Set("HX-Reswap", "none")
	w.WriteHeader(http.StatusNoContent)
}

// finish ends a successful mutation. HTMX callers get an empty dialog
// and the refresh trigger; plain form posts are redirected back to the
// list they came from.
func finish(w http.ResponseWriter, r *http.Request, basePath, id string) {
	if isHTMX(r) {
		w.Header().Set("HX-Trigger", RefreshEvent)
		w.WriteHeader(http.StatusOK)
		return
	}
	http.Redirect(w, r, returnURL(r, basePath, id), http.StatusSeeOther)
}

// finishFirstPage ends a bulk mutation. The list is reloaded from page 1
// because the rows on the current page may be gone.
func finishFirstPage(w http.ResponseWriter, r *http.Request, basePath string) {
	dest := firstPage(returnURL(r, basePath, ""))
	if isHTMX(r) {
		w.Header().Set("HX-Trigger", FirstPageEvent)
		w.Header().Set("HX-Push-Url", dest)
		w.WriteHeader(http.StatusOK)
		return
	}
	http.Redirect(w, r, dest, http.StatusSeeOther)
}

// firstPage drops the page parameter from a local list URL.
func firstPage(ret string) string {
	u, err := url.Parse(ret)
	if err != nil {
		return ret
	}
	q := u.Query()
	if _, ok := q["page"]; !ok {
		return ret
	}
	q.Del("page")
	u.RawQuery = q.Encode()
	return u.String()
}

// returnURL is the form's "return" value when it is a safe local path
// under basePath that does not name the record id, else basePath.
func returnURL(r *http.Request, basePath, id string) string {
	ret := urlutil.SafeReturn(r.FormValue("return"), id, basePath)
	if ret != basePath && !hasPathPrefix(ret, basePath) {
		return basePath
	}
	return ret
}

func hasPathPrefix(s, base string) bool {
	if len(s) <= len(base) || s[:len(base)] != base {
		return false
	}
	switch s[len(base)] {
	case '/', '?':
		return true
	}
	return false
}

// toDialogOnly redirects non-HTMX requests for a dialog to the list page.
// Dialogs only exist inside the list screen.
func toDialogOnly(w http.ResponseWriter, r *http.Request, basePath string) bool {
	if isHTMX(r) {
		return false
	}
	http.Redirect(w, r, basePath, http.StatusSeeOther)
	return true
}
