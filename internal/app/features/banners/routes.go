// internal/app/features/banners/routes.go
package banners

import "github.com/go-chi/chi/v5"

// Routes mounts under /banners (admin only).
func Routes(h *Handler) chi.Router {
	r := chi.NewRouter()
	h.Form.Mount(r)
	h.List.Mount(r)
	return r
}
