// internal/app/features/login/handler.go
package login

import (
	"net/http"

	"github.com/dalemusser/couponadmin/internal/app/store/accounts"
	"github.com/dalemusser/couponadmin/internal/app/system/apiclient"
	"github.com/dalemusser/couponadmin/internal/app/system/auditlog"
	"github.com/dalemusser/couponadmin/internal/app/system/auth"
	"github.com/dalemusser/couponadmin/internal/app/system/flash"
	"github.com/dalemusser/couponadmin/internal/app/system/inputval"
	"github.com/dalemusser/couponadmin/internal/app/system/ratelimit"
	"github.com/dalemusser/couponadmin/internal/app/system/viewdata"
	"github.com/dalemusser/waffle/pantry/templates"
	"go.uber.org/zap"
)

// Handler serves the sign-in, registration and password-reset pages.
// Credentials are checked by the remote API; this side only keeps the
// returned tokens in signed cookies.
type Handler struct {
	Accounts   *accounts.Store
	SessionMgr *auth.SessionManager
	Limiter    *ratelimit.AttemptLimiter
	AuditLog   *auditlog.Logger
	Flash      *flash.Store
	Log        *zap.Logger
}

func NewHandler(accts *accounts.Store, sm *auth.SessionManager, limiter *ratelimit.AttemptLimiter, audit *auditlog.Logger, fl *flash.Store, logger *zap.Logger) *Handler {
	if limiter == nil {
		limiter = ratelimit.NewAttemptLimiter()
	}
	return &Handler{
		Accounts:   accts,
		SessionMgr: sm,
		Limiter:    limiter,
		AuditLog:   audit,
		Flash:      fl,
		Log:        logger,
	}
}

/*─────────────────────────────────────────────────────────────────────────────*
| Template-data                                                               |
*─────────────────────────────────────────────────────────────────────────────*/

type pageData struct {
	viewdata.BaseVM

	Error       string
	FieldErrors map[string]string

	// status, when set, replaces 200. It is written after the view model
	// is built so popped toasts can still clear their cookie.
	status int

	Name      string
	Email     string
	Phone     string
	ReturnURL string
}

func (d *pageData) invalid(res *inputval.Result) {
	d.Error = res.First()
	d.FieldErrors = res.ByField()
}

// apiFailure shows err as an error toast, status code first.
func (d *pageData) apiFailure(err error) {
	d.Toasts = append(d.Toasts, flash.Toast{Kind: flash.KindError, Message: apiclient.Describe(err)})
}

func (h *Handler) render(w http.ResponseWriter, r *http.Request, name, title string, data *pageData) {
	toasts := data.Toasts
	data.BaseVM = viewdata.NewBaseVM(w, r, title, "/auth/login")
	data.Toasts = append(data.Toasts, toasts...)
	if data.status != 0 {
		w.Header().Set("Content-Type", "text/html; charset=utf-8")
		w.WriteHeader(data.status)
	}
	templates.Render(w, r, name, data)
}

// limited reports whether this attempt is over the limit, with the
// message to show. The caller renders the form with a 429.
func (h *Handler) limited(r *http.Request, email, flow string) (string, bool) {
	ok, reason := h.Limiter.Check(r, email)
	if ok {
		return "", false
	}
	h.AuditLog.RateLimited(r.Context(), r, email, flow)
	h.Log.Warn("auth attempt rate limited",
		zap.String("flow", flow),
		zap.String("ip", ratelimit.ClientIP(r)))
	return reason, true
}
