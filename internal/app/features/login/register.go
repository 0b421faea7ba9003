package login

import (
	"context"
	"net/http"

	"github.com/dalemusser/couponadmin/internal/app/store/accounts"
	"github.com/dalemusser/couponadmin/internal/app/system/apiclient"
	"github.com/dalemusser/couponadmin/internal/app/system/auth"
	"github.com/dalemusser/couponadmin/internal/app/system/formutil"
	"github.com/dalemusser/couponadmin/internal/app/system/inputval"
	"github.com/dalemusser/couponadmin/internal/app/system/normalize"
	"github.com/dalemusser/couponadmin/internal/app/system/timeouts"
	"go.uber.org/zap"
)

// Only providers sign themselves up. Admin accounts are created on the
// API side.
type registerInput struct {
	Name                 string `schema:"name" validate:"required,max=80" label:"Name"`
	Email                string `schema:"email" validate:"required,email" label:"Email"`
	Phone                string `schema:"phone" validate:"required,max=20" label:"Phone"`
	Password             string `schema:"password" validate:"required,min=8" label:"Password"`
	PasswordConfirmation string `schema:"password_confirmation" validate:"required,eqfield=Password" label:"Password confirmation"`
}

func (h *Handler) ServeRegister(w http.ResponseWriter, r *http.Request) {
	h.render(w, r, "auth_register", "Create an account", &pageData{})
}

// HandleRegisterPost creates a provider account. When the API signs the
// new account in straight away the user lands on their dashboard;
// otherwise they are sent to sign in.
func (h *Handler) HandleRegisterPost(w http.ResponseWriter, r *http.Request) {
	var in registerInput
	_, decodeErr := formutil.Decode(r, &in)
	in.Email = normalize.Email(in.Email)
	data := pageData{Name: in.Name, Email: in.Email, Phone: in.Phone}

	if decodeErr != nil {
		data.Error = decodeErr.Error()
		h.render(w, r, "auth_register", "Create an account", &data)
		return
	}
	if res := inputval.Validate(in); res.HasErrors() {
		data.invalid(res)
		h.render(w, r, "auth_register", "Create an account", &data)
		return
	}
	if reason, blocked := h.limited(r, in.Email, "register"); blocked {
		data.Error = reason
		data.status = http.StatusTooManyRequests
		h.render(w, r, "auth_register", "Create an account", &data)
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Medium())
	defer cancel()

	user, err := h.Accounts.Register(ctx, accounts.Registration{
		Name:                 in.Name,
		Email:                in.Email,
		Phone:                in.Phone,
		Password:             in.Password,
		PasswordConfirmation: in.PasswordConfirmation,
		Role:                 auth.RoleProvider,
	})
	if err != nil {
		h.Log.Info("registration rejected", zap.String("email", in.Email), zap.Int("status", apiclient.StatusOf(err)))
		data.apiFailure(err)
		h.render(w, r, "auth_register", "Create an account", &data)
		return
	}
	h.AuditLog.Registered(ctx, r, in.Email, auth.RoleProvider)

	if user == nil {
		h.Flash.Success(w, r, "Account created. Please sign in.")
		http.Redirect(w, r, "/auth/login", http.StatusSeeOther)
		return
	}
	if err := h.SessionMgr.Save(w, user); err != nil {
		h.Log.Error("save session cookies", zap.Error(err))
		h.Flash.Success(w, r, "Account created. Please sign in.")
		http.Redirect(w, r, "/auth/login", http.StatusSeeOther)
		return
	}
	h.Flash.Success(w, r, "Welcome! Your account is ready.")
	http.Redirect(w, r, auth.HomePath(user.Role), http.StatusSeeOther)
}
