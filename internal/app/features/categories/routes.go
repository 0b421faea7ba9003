// internal/app/features/categories/routes.go
package categories

import "github.com/go-chi/chi/v5"

// Routes mounts under /categories (admin only).
func Routes(h *Handler) chi.Router {
	r := chi.NewRouter()
	h.Form.Mount(r)
	h.List.Mount(r)
	return r
}
