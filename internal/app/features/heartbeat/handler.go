// internal/app/features/heartbeat/handler.go
package heartbeat

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/dalemusser/couponadmin/internal/app/system/auth"
	"go.uber.org/zap"
)

// Handler keeps long-lived pages signed in. Open pages ping it on a
// timer; the session loader refreshes an expired access token on the
// way in, so a page left open through a long upload dialog does not
// hit a 401 on submit.
type Handler struct {
	Log *zap.Logger
	now func() time.Time
}

func NewHandler(logger *zap.Logger) *Handler {
	return &Handler{Log: logger, now: time.Now}
}

// sessionInfo is the JSON shape of GET /auth/session.
type sessionInfo struct {
	IsAuthenticated bool   `json:"isAuthenticated"`
	Role            string `json:"role"`
	ExpiresAt       string `json:"expires_at,omitempty"`
	ExpiresIn       int64  `json:"expires_in,omitempty"`
}

// ServeHeartbeat handles POST /auth/session/heartbeat behind
// RequireSignedIn. Reaching it means the session is still good.
func (h *Handler) ServeHeartbeat(w http.ResponseWriter, r *http.Request) {
	w.WriteHeader(http.StatusNoContent)
}

// ServeSession handles GET /auth/session. It reports the role and the
// access token expiry, when the token carries one.
func (h *Handler) ServeSession(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	w.Header().Set("Cache-Control", "no-store")

	info := sessionInfo{}
	if u, ok := auth.CurrentUser(r); ok {
		info.IsAuthenticated = true
		info.Role = u.Role
		if exp, ok := auth.Expiry(u.Token); ok {
			info.ExpiresAt = exp.UTC().Format(time.RFC3339)
			info.ExpiresIn = max(int64(exp.Sub(h.now()).Seconds()), 0)
		}
	}
	if err := json.NewEncoder(w).Encode(info); err != nil {
		h.Log.Warn("session info encode failed", zap.Error(err))
	}
}
