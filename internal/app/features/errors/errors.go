// internal/app/features/errors/errors.go
package errors

import (
	"net/http"

	"go.uber.org/zap"
)

// Handler serves the standalone error pages.
type Handler struct {
	Log *zap.Logger
}

// NewHandler constructs an errors Handler.
func NewHandler(logger *zap.Logger) *Handler {
	return &Handler{Log: logger}
}

// Forbidden renders the access denied page.
// GET /forbidden
func (h *Handler) Forbidden(w http.ResponseWriter, r *http.Request) {
	RenderForbidden(w, r, "")
}

// NotFound is the router's fallback handler.
func (h *Handler) NotFound(w http.ResponseWriter, r *http.Request) {
	if r.Header.Get("HX-Request") == "true" {
		http.NotFound(w, r)
		return
	}
	render(w, r, http.StatusNotFound, "Page not found", "There is nothing at this address.", "/")
}

// ServerError logs err and renders a generic failure page.
func (h *Handler) ServerError(w http.ResponseWriter, r *http.Request, msg string, err error, backURL string) {
	LogServerError(h.Log, w, r, msg, err, backURL)
}
