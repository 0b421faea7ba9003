// internal/app/features/errors/render.go
package errors

import (
	"net/http"

	"github.com/dalemusser/couponadmin/internal/app/system/viewdata"
	"github.com/dalemusser/waffle/pantry/templates"
	"go.uber.org/zap"
)

type pageData struct {
	viewdata.BaseVM
	Message string
}

// RenderForbidden shows the access denied page with msg.
func RenderForbidden(w http.ResponseWriter, r *http.Request, msg string) {
	if msg == "" {
		msg = "You don't have permission to view this page."
	}
	render(w, r, http.StatusForbidden, "Access denied", msg, "/")
}

// LogServerError records err and renders a 500 page. HTMX requests get a
// bare 500 so the current page stays in place.
func LogServerError(log *zap.Logger, w http.ResponseWriter, r *http.Request, msg string, err error, backURL string) {
	log.Error(msg,
		zap.Error(err),
		zap.String("method", r.Method),
		zap.String("path", r.URL.Path))

	if r.Header.Get("HX-Request") == "true" {
		http.Error(w, msg, http.StatusInternalServerError)
		return
	}
	render(w, r, http.StatusInternalServerError, "Something went wrong", "The request could not be completed. Please try again.", backURL)
}

func render(w http.ResponseWriter, r *http.Request, status int, title, msg, backURL string) {
	data := pageData{
		BaseVM:  viewdata.NewBaseVM(w, r, title, backURL),
		Message: msg,
	}
	w.WriteHeader(status)
	templates.Render(w, r, "error_page", data)
}
