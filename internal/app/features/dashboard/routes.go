// internal/app/features/dashboard/routes.go
package dashboard

import "github.com/go-chi/chi/v5"

// AdminRoutes mounts at /admin-dashboard. The role gate keeps
// providers out.
func AdminRoutes(h *Handler) chi.Router {
	r := chi.NewRouter()
	r.Get("/", h.ServeAdmin)
	return r
}

// ProviderRoutes mounts at /provider-dashboard.
func ProviderRoutes(h *Handler) chi.Router {
	r := chi.NewRouter()
	r.Get("/", h.ServeProvider)
	return r
}
