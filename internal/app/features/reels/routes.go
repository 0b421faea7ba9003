// internal/app/features/reels/routes.go
package reels

import "github.com/go-chi/chi/v5"

// Routes mounts under /reels, including the upload cancel endpoint.
func Routes(h *Handler) chi.Router {
	r := chi.NewRouter()
	h.Form.Mount(r)
	h.List.Mount(r)
	return r
}
