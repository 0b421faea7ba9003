// internal/app/features/heartbeat/routes.go
package heartbeat

import (
	"github.com/dalemusser/couponadmin/internal/app/system/auth"
	"github.com/go-chi/chi/v5"
)

// Routes mounts at /auth/session, which the role gate leaves public.
// Session info answers anonymous callers too; the heartbeat needs a
// signed-in user and answers 401 (with HX-Redirect for htmx) otherwise.
func Routes(h *Handler, sm *auth.SessionManager) chi.Router {
	r := chi.NewRouter()
	r.Get("/", h.ServeSession)
	r.With(sm.RequireSignedIn).Post("/heartbeat", h.ServeHeartbeat)
	return r
}
