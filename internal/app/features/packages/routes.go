// internal/app/features/packages/routes.go
package packages

import "github.com/go-chi/chi/v5"

// Routes mounts under /coupons/packages. It must be mounted before
// /coupons so the coupon id routes do not swallow it.
func Routes(h *Handler) chi.Router {
	r := chi.NewRouter()
	h.Form.Mount(r)
	h.List.Mount(r)
	return r
}
