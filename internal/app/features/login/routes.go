// internal/app/features/login/routes.go
package login

import "github.com/go-chi/chi/v5"

// Routes mounts under /auth.
func Routes(h *Handler) chi.Router {
	r := chi.NewRouter()
	r.Get("/login", h.ServeLogin)
	r.Post("/login", h.HandleLoginPost)
	r.Get("/register", h.ServeRegister)
	r.Post("/register", h.HandleRegisterPost)
	r.Get("/forgot-password", h.ServeForgot)
	r.Post("/forgot-password", h.HandleForgotPost)
	r.Get("/verify-code", h.ServeVerify)
	r.Post("/verify-code", h.HandleVerifyPost)
	r.Get("/reset-password", h.ServeReset)
	r.Post("/reset-password", h.HandleResetPost)
	return r
}
