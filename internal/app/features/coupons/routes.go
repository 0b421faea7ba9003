// internal/app/features/coupons/routes.go
package coupons

import "github.com/go-chi/chi/v5"

// Routes mounts under /coupons. The role gate admits admins and
// providers; the API scopes providers to their own coupons.
func Routes(h *Handler) chi.Router {
	r := chi.NewRouter()
	h.Form.Mount(r)
	h.List.Mount(r)
	return r
}
