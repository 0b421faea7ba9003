package login

import (
	"context"
	"net/http"

	"github.com/dalemusser/couponadmin/internal/app/system/apiclient"
	"github.com/dalemusser/couponadmin/internal/app/system/flash"
	"github.com/dalemusser/couponadmin/internal/app/system/formutil"
	"github.com/dalemusser/couponadmin/internal/app/system/inputval"
	"github.com/dalemusser/couponadmin/internal/app/system/normalize"
	"github.com/dalemusser/couponadmin/internal/app/system/timeouts"
	"go.uber.org/zap"
)

// Password reset runs in three steps. The email and the verified code
// ride between them in short-lived signed cookies.
//
//	forgot-password  → API mails a code        → cookie: email
//	verify-code      → API checks the code     → cookie: email, code
//	reset-password   → API sets the password   → cookies cleared

// MissingCodeMessage is shown when the reset step runs without a
// verified code.
const MissingCodeMessage = "Your reset code is missing or expired. Please request a new one."

type forgotInput struct {
	Email string `schema:"email" validate:"required,email" label:"Email"`
}

type verifyInput struct {
	Email string `schema:"email" validate:"required,email" label:"Email"`
	Code  string `schema:"code" validate:"required,numeric,max=10" label:"Code"`
}

type resetInput struct {
	Password             string `schema:"password" validate:"required,min=8" label:"Password"`
	PasswordConfirmation string `schema:"password_confirmation" validate:"required,eqfield=Password" label:"Password confirmation"`
}

func (h *Handler) ServeForgot(w http.ResponseWriter, r *http.Request) {
	h.render(w, r, "auth_forgot", "Forgot password", &pageData{})
}

// HandleForgotPost asks the API to email a reset code.
func (h *Handler) HandleForgotPost(w http.ResponseWriter, r *http.Request) {
	var in forgotInput
	_, decodeErr := formutil.Decode(r, &in)
	in.Email = normalize.Email(in.Email)
	data := pageData{Email: in.Email}

	if decodeErr != nil {
		data.Error = decodeErr.Error()
		h.render(w, r, "auth_forgot", "Forgot password", &data)
		return
	}
	if res := inputval.Validate(in); res.HasErrors() {
		data.invalid(res)
		h.render(w, r, "auth_forgot", "Forgot password", &data)
		return
	}
	if reason, blocked := h.limited(r, in.Email, "forgot_password"); blocked {
		data.Error = reason
		data.status = http.StatusTooManyRequests
		h.render(w, r, "auth_forgot", "Forgot password", &data)
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Medium())
	defer cancel()

	if err := h.Accounts.ForgotPassword(ctx, in.Email); err != nil {
		h.AuditLog.PasswordResetFailed(ctx, r, in.Email, "request", apiclient.Describe(err))
		data.apiFailure(err)
		h.render(w, r, "auth_forgot", "Forgot password", &data)
		return
	}
	if err := h.SessionMgr.SetReset(w, in.Email, ""); err != nil {
		h.Log.Warn("store reset email", zap.Error(err))
	}
	h.AuditLog.PasswordResetRequested(ctx, r, in.Email)
	h.Flash.Success(w, r, "We sent a verification code to "+in.Email+".")
	http.Redirect(w, r, "/auth/verify-code", http.StatusSeeOther)
}

func (h *Handler) ServeVerify(w http.ResponseWriter, r *http.Request) {
	email, _ := h.SessionMgr.Reset(r)
	h.render(w, r, "auth_verify", "Enter your code", &pageData{Email: email})
}

// HandleVerifyPost checks the emailed code and remembers it for the
// reset step.
func (h *Handler) HandleVerifyPost(w http.ResponseWriter, r *http.Request) {
	var in verifyInput
	_, decodeErr := formutil.Decode(r, &in)
	in.Email = normalize.Email(in.Email)
	data := pageData{Email: in.Email}

	if decodeErr != nil {
		data.Error = decodeErr.Error()
		h.render(w, r, "auth_verify", "Enter your code", &data)
		return
	}
	if res := inputval.Validate(in); res.HasErrors() {
		data.invalid(res)
		h.render(w, r, "auth_verify", "Enter your code", &data)
		return
	}
	if reason, blocked := h.limited(r, in.Email, "verify_code"); blocked {
		data.Error = reason
		data.status = http.StatusTooManyRequests
		h.render(w, r, "auth_verify", "Enter your code", &data)
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Medium())
	defer cancel()

	if err := h.Accounts.VerifyCode(ctx, in.Email, in.Code); err != nil {
		h.AuditLog.PasswordResetFailed(ctx, r, in.Email, "verify", apiclient.Describe(err))
		data.apiFailure(err)
		h.render(w, r, "auth_verify", "Enter your code", &data)
		return
	}
	if err := h.SessionMgr.SetReset(w, in.Email, in.Code); err != nil {
		h.Log.Error("store reset code", zap.Error(err))
		data.Error = "Could not continue the reset. Please try again."
		h.render(w, r, "auth_verify", "Enter your code", &data)
		return
	}
	h.Limiter.ResetEmail(in.Email)
	h.AuditLog.PasswordResetVerified(ctx, r, in.Email)
	http.Redirect(w, r, "/auth/reset-password", http.StatusSeeOther)
}

func (h *Handler) ServeReset(w http.ResponseWriter, r *http.Request) {
	email, _ := h.SessionMgr.Reset(r)
	h.render(w, r, "auth_reset", "Choose a new password", &pageData{Email: email})
}

// HandleResetPost sets the new password. Without a verified code in the
// reset cookies it stops before calling the API.
func (h *Handler) HandleResetPost(w http.ResponseWriter, r *http.Request) {
	email, code := h.SessionMgr.Reset(r)
	data := pageData{Email: email}

	if email == "" || code == "" {
		h.AuditLog.PasswordResetFailed(r.Context(), r, email, "reset", "missing reset code")
		data.Toasts = append(data.Toasts, flash.Toast{Kind: flash.KindError, Message: MissingCodeMessage})
		h.render(w, r, "auth_reset", "Choose a new password", &data)
		return
	}

	var in resetInput
	if _, err := formutil.Decode(r, &in); err != nil {
		data.Error = err.Error()
		h.render(w, r, "auth_reset", "Choose a new password", &data)
		return
	}
	if res := inputval.Validate(in); res.HasErrors() {
		data.invalid(res)
		h.render(w, r, "auth_reset", "Choose a new password", &data)
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Medium())
	defer cancel()

	if err := h.Accounts.ResetPassword(ctx, email, code, in.Password, in.PasswordConfirmation); err != nil {
		h.AuditLog.PasswordResetFailed(ctx, r, email, "reset", apiclient.Describe(err))
		data.apiFailure(err)
		h.render(w, r, "auth_reset", "Choose a new password", &data)
		return
	}
	h.SessionMgr.ClearReset(w)
	h.AuditLog.PasswordReset(ctx, r, email)
	h.Flash.Success(w, r, "Password changed. Please sign in.")
	http.Redirect(w, r, "/auth/login", http.StatusSeeOther)
}
