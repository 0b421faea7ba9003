// internal/app/features/seasonalevents/routes.go
package seasonalevents

import "github.com/go-chi/chi/v5"

// Routes mounts under /seasonal-events (admin only).
func Routes(h *Handler) chi.Router {
	r := chi.NewRouter()
	h.Form.Mount(r)
	h.List.Mount(r)
	return r
}
