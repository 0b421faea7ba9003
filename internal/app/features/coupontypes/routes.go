// internal/app/features/coupontypes/routes.go
package coupontypes

import "github.com/go-chi/chi/v5"

// Routes mounts under /coupon-types (admin only).
func Routes(h *Handler) chi.Router {
	r := chi.NewRouter()
	h.Form.Mount(r)
	h.List.Mount(r)
	return r
}
