// internal/app/features/providers/routes.go
package providers

import "github.com/go-chi/chi/v5"

// Routes mounts under /providers. (admin only).
func Routes(h *Handler) chi.Router {
	r := chi.NewRouter()
	h.List.Mount(r)
	return r
}
