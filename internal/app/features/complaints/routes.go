// internal/app/features/complaints/routes.go
package complaints

import "github.com/go-chi/chi/v5"

// Routes mounts under /complaints (admin only).
func Routes(h *Handler) chi.Router {
	r := chi.NewRouter()
	h.List.Mount(r)
	return r
}
