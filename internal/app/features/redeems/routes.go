// internal/app/features/redeems/routes.go
package redeems

import "github.com/go-chi/chi/v5"

// Routes mounts under /redeems. Redemptions are read-only.
func Routes(h *Handler) chi.Router {
	r := chi.NewRouter()
	h.List.Mount(r)
	return r
}
