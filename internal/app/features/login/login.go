package login

import (
	"context"
	"net/http"

	"github.com/dalemusser/couponadmin/internal/app/system/apiclient"
	"github.com/dalemusser/couponadmin/internal/app/system/auth"
	"github.com/dalemusser/couponadmin/internal/app/system/formutil"
	"github.com/dalemusser/couponadmin/internal/app/system/inputval"
	"github.com/dalemusser/couponadmin/internal/app/system/normalize"
	"github.com/dalemusser/couponadmin/internal/app/system/timeouts"
	"github.com/dalemusser/waffle/pantry/query"
	"github.com/dalemusser/waffle/pantry/urlutil"
	"go.uber.org/zap"
)

type loginInput struct {
	Email    string `schema:"email" validate:"required,email" label:"Email"`
	Password string `schema:"password" validate:"required" label:"Password"`
}

// ServeLogin renders the sign-in form. Signed-in users are sent home by
// the role gate before this runs.
func (h *Handler) ServeLogin(w http.ResponseWriter, r *http.Request) {
	h.render(w, r, "auth_login", "Sign in", &pageData{ReturnURL: query.Get(r, "return")})
}

// HandleLoginPost exchanges the credentials for API tokens and stores
// them in cookies.
func (h *Handler) HandleLoginPost(w http.ResponseWriter, r *http.Request) {
	var in loginInput
	_, decodeErr := formutil.Decode(r, &in)
	in.Email = normalize.Email(in.Email)
	data := pageData{Email: in.Email, ReturnURL: r.PostFormValue("return")}

	if decodeErr != nil {
		data.Error = decodeErr.Error()
		h.render(w, r, "auth_login", "Sign in", &data)
		return
	}
	if res := inputval.Validate(in); res.HasErrors() {
		data.invalid(res)
		h.render(w, r, "auth_login", "Sign in", &data)
		return
	}
	if reason, blocked := h.limited(r, in.Email, "login"); blocked {
		data.Error = reason
		data.status = http.StatusTooManyRequests
		h.render(w, r, "auth_login", "Sign in", &data)
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Medium())
	defer cancel()

	user, err := h.Accounts.Login(ctx, in.Email, in.Password)
	if err != nil {
		h.AuditLog.LoginFailed(ctx, r, in.Email, apiclient.Describe(err))
		h.Log.Info("login rejected",
			zap.String("email", in.Email),
			zap.Int("status", apiclient.StatusOf(err)))
		data.apiFailure(err)
		h.render(w, r, "auth_login", "Sign in", &data)
		return
	}

	h.Limiter.ResetEmail(in.Email)
	if err := h.SessionMgr.Save(w, user); err != nil {
		h.Log.Error("save session cookies", zap.Error(err))
		data.Error = "Could not start your session. Please try again."
		h.render(w, r, "auth_login", "Sign in", &data)
		return
	}
	h.AuditLog.LoginSuccess(ctx, r, in.Email, user.Role)

	home := auth.HomePath(user.Role)
	dest := urlutil.SafeReturn(data.ReturnURL, "", home)
	if dest == "/auth/login" || dest == "" {
		dest = home
	}
	http.Redirect(w, r, dest, http.StatusSeeOther)
}
