// internal/app/features/logout/routes.go
package logout

import "github.com/go-chi/chi/v5"

// Routes mounts at /auth/logout. Signing out is a POST so a cross-site
// link cannot trigger it; CSRF middleware covers the form.
func Routes(h *Handler) chi.Router {
	r := chi.NewRouter()
	r.Post("/", h.HandleLogout)
	return r
}
