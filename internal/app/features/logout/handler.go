// internal/app/features/logout/handler.go
package logout

import (
	"net/http"

	"github.com/dalemusser/couponadmin/internal/app/system/auditlog"
	"github.com/dalemusser/couponadmin/internal/app/system/auth"
	"go.uber.org/zap"
)

type Handler struct {
	Log        *zap.Logger
	SessionMgr *auth.SessionManager
	AuditLog   *auditlog.Logger
}

func NewHandler(sessionMgr *auth.SessionManager, audit *auditlog.Logger, logger *zap.Logger) *Handler {
	return &Handler{
		Log:        logger,
		SessionMgr: sessionMgr,
		AuditLog:   audit,
	}
}

// HandleLogout handles POST /auth/logout. The API keeps no server-side
// session, so signing out only drops the credential cookies.
func (h *Handler) HandleLogout(w http.ResponseWriter, r *http.Request) {
	// Audit before clearing so the event still names the actor.
	h.AuditLog.Logout(r.Context(), r)

	h.SessionMgr.Logout(w)
	h.SessionMgr.ClearReset(w)

	// HTMX handling: use HX-Redirect to force a client-side navigation.
	if r.Header.Get("HX-Request") != "" {
		w.Header().Set("HX-Redirect", "/auth/login")
		w.WriteHeader(http.StatusOK)
		return
	}
	http.Redirect(w, r, "/auth/login", http.StatusSeeOther)
}
