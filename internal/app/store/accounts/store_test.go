package accounts_test

import (
	"context"
	"encoding/json"
	"errors"
	"testing"

	"github.com/dalemusser/couponadmin/internal/app/store/accounts"
	"github.com/dalemusser/couponadmin/internal/app/system/apiclient"
	"github.com/dalemusser/couponadmin/internal/testutil"
)

func TestLogin(t *testing.T) {
	tests := []struct {
		name     string
		status   int
		body     string
		wantRole string
		wantErr  string
	}{
		{"token and user role", 200, `{"data":{"token":"t1","refresh_token":"r1","user":{"role":"Admin"}}}`, "admin", ""},
		{"flat envelope", 200, `{"access_token":"t1","refreshToken":"r1","role":"provider"}`, "provider", ""},
		{"no token", 200, `{"message":"ok"}`, "", "authentication reply did not include a token"},
		{"customer role", 200, `{"token":"t1","role":"customer"}`, "", "403: This account cannot use the dashboard."},
		{"bad credentials", 401, `{"message":"Invalid credentials"}`, "", "401: Invalid credentials"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			api := testutil.NewFakeAPI(t)
			api.JSON("POST", accounts.PathLogin, tt.status, tt.body)
			s := accounts.New(api.Client(t))

			u, err := s.Login(context.Background(), " Admin@Example.com ", "secret")
			if tt.wantErr != "" {
				if err == nil || apiclient.Describe(err) != tt.wantErr {
					t.Errorf("error: got %v, want %q", err, tt.wantErr)
				}
				return
			}
			if err != nil {
				t.Fatalf("Login: %v", err)
			}
			if u.Token != "t1" || u.RefreshToken != "r1" || u.Role != tt.wantRole {
				t.Errorf("session: %+v", u)
			}

			var sent map[string]string
			_ = json.Unmarshal([]byte(api.CallsTo("POST", accounts.PathLogin)[0].Body), &sent)
			if sent["email"] != "admin@example.com" {
				t.Errorf("email sent: %q", sent["email"])
			}
		})
	}
}

func TestRefresh_KeepsRefreshTokenWhenNotRotated(t *testing.T) {
	api := testutil.NewFakeAPI(t)
	api.JSON("POST", accounts.PathRefresh, 200, `{"token":"new","role":"provider"}`)
	s := accounts.New(api.Client(t))

	u, err := s.Refresh(context.Background(), "old-refresh")
	if err != nil {
		t.Fatalf("Refresh: %v", err)
	}
	if u.Token != "new" || u.RefreshToken != "old-refresh" {
		t.Errorf("session: %+v", u)
	}
}

func TestRegister_WithoutTokenReturnsNilSession(t *testing.T) {
	api := testutil.NewFakeAPI(t)
	api.JSON("POST", accounts.PathRegister, 201, `{"message":"Registered"}`)
	s := accounts.New(api.Client(t))

	u, err := s.Register(context.Background(), accounts.Registration{Name: "P", Email: "p@example.com", Password: "x", PasswordConfirmation: "x", Role: "Provider"})
	if err != nil || u != nil {
		t.Errorf("Register: got %+v, %v", u, err)
	}
	var sent map[string]string
	_ = json.Unmarshal([]byte(api.Calls()[0].Body), &sent)
	if sent["role"] != "provider" {
		t.Errorf("role sent: %q", sent["role"])
	}
}

func TestResetFlow(t *testing.T) {
	api := testutil.NewFakeAPI(t)
	api.JSON("POST", accounts.PathForgotPassword, 200, `{}`)
	api.JSON("POST", accounts.PathVerifyCode, 422, `{"message":"Invalid code"}`)
	api.JSON("POST", accounts.PathResetPassword, 200, `{}`)
	s := accounts.New(api.Client(t))
	ctx := context.Background()

	if err := s.ForgotPassword(ctx, "a@example.com"); err != nil {
		t.Errorf("ForgotPassword: %v", err)
	}
	err := s.VerifyCode(ctx, "a@example.com", "0000")
	var apiErr *apiclient.Error
	if !errors.As(err, &apiErr) || apiErr.Status != 422 {
		t.Errorf("VerifyCode: got %v", err)
	}
	if err := s.ResetPassword(ctx, "a@example.com", "1234", "pw", "pw"); err != nil {
		t.Errorf("ResetPassword: %v", err)
	}
	var sent map[string]string
	_ = json.Unmarshal([]byte(api.CallsTo("POST", accounts.PathResetPassword)[0].Body), &sent)
	if sent["code"] != "1234" || sent["password_confirmation"] != "pw" {
		t.Errorf("reset payload: %v", sent)
	}
}
