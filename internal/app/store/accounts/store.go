// Package accounts wraps the API's authentication endpoints.
package accounts

import (
	"context"
	"errors"
	"net/http"

	"github.com/dalemusser/couponadmin/internal/app/system/apiclient"
	"github.com/dalemusser/couponadmin/internal/app/system/auth"
	"github.com/dalemusser/couponadmin/internal/app/system/normalize"
)

// API paths.
const (
	PathLogin          = "/auth/login"
	PathRegister       = "/auth/register"
	PathRefresh        = "/auth/refresh-token"
	PathForgotPassword = "/auth/forget-password"
	PathVerifyCode     = "/auth/verify-code"
	PathResetPassword  = "/auth/reset-password"
)

// ErrNoToken is returned when a login or refresh reply carries no access
// token.
var ErrNoToken = errors.New("authentication reply did not include a token")

// Registration is the sign-up payload.
type Registration struct {
	Name                 string `json:"name"`
	Email                string `json:"email"`
	Phone                string `json:"phone,omitempty"`
	Password             string `json:"password"`
	PasswordConfirmation string `json:"password_confirmation"`
	Role                 string `json:"role"`
}

// Store calls the auth endpoints.
type Store struct {
	api *apiclient.Client
}

// New creates a Store.
func New(api *apiclient.Client) *Store {
	return &Store{api: api}
}

// Login exchanges credentials for a session.
func (s *Store) Login(ctx context.Context, email, password string) (*auth.SessionUser, error) {
	var body map[string]any
	err := s.api.Post(ctx, PathLogin, map[string]string{
		"email":    normalize.Email(email),
		"password": password,
	}, &body)
	if err != nil {
		return nil, err
	}
	return sessionFrom(body, "")
}

// Register creates an account. Some deployments sign the user in
// directly; then the returned session is non-nil.
func (s *Store) Register(ctx context.Context, reg Registration) (*auth.SessionUser, error) {
	reg.Email = normalize.Email(reg.Email)
	reg.Role = auth.NormalizeRole(reg.Role)
	var body map[string]any
	if err := s.api.Post(ctx, PathRegister, reg, &body); err != nil {
		return nil, err
	}
	u, err := sessionFrom(body, reg.Role)
	if errors.Is(err, ErrNoToken) {
		return nil, nil
	}
	return u, err
}

// Refresh implements auth.Refresher.
func (s *Store) Refresh(ctx context.Context, refreshToken string) (*auth.SessionUser, error) {
	var body map[string]any
	err := s.api.Post(ctx, PathRefresh, map[string]string{"refresh_token": refreshToken}, &body)
	if err != nil {
		return nil, err
	}
	u, err := sessionFrom(body, "")
	if err != nil {
		return nil, err
	}
	if u.RefreshToken == "" {
		u.RefreshToken = refreshToken
	}
	return u, nil
}

// ForgotPassword asks the API to email a reset code.
func (s *Store) ForgotPassword(ctx context.Context, email string) error {
	return s.api.Post(ctx, PathForgotPassword, map[string]string{"email": normalize.Email(email)}, nil)
}

// VerifyCode checks a reset code.
func (s *Store) VerifyCode(ctx context.Context, email, code string) error {
	return s.api.Post(ctx, PathVerifyCode, map[string]string{
		"email": normalize.Email(email),
		"code":  code,
	}, nil)
}

// ResetPassword sets a new password using a verified code.
func (s *Store) ResetPassword(ctx context.Context, email, code, password, confirmation string) error {
	return s.api.Post(ctx, PathResetPassword, map[string]string{
		"email":                 normalize.Email(email),
		"code":                  code,
		"password":              password,
		"password_confirmation": confirmation,
	}, nil)
}

// sessionFrom reads tokens and role from the reply envelopes the API
// uses. The role falls back to the token's role claim, then to
// defaultRole.
func sessionFrom(body map[string]any, defaultRole string) (*auth.SessionUser, error) {
	token := normalize.String(body, "data.token|data.access_token|token|access_token|data.authorisation.token|authorisation.token")
	if token == "" {
		return nil, ErrNoToken
	}
	u := &auth.SessionUser{
		Token:        token,
		RefreshToken: normalize.String(body, "data.refresh_token|data.refreshToken|refresh_token|refreshToken"),
		Role:         normalize.String(body, "data.user.role|user.role|data.role|role|data.user.type|user.type"),
	}
	if u.Role == "" {
		u.Role = auth.RoleClaim(token)
	}
	if u.Role == "" {
		u.Role = defaultRole
	}
	u.Role = auth.NormalizeRole(u.Role)
	if u.Role != auth.RoleAdmin && u.Role != auth.RoleProvider {
		return nil, &apiclient.Error{
			Status:  http.StatusForbidden,
			Message: "This account cannot use the dashboard.",
			Method:  http.MethodPost,
			Path:    PathLogin,
		}
	}
	return u, nil
}

var _ auth.Refresher = (*Store)(nil)
