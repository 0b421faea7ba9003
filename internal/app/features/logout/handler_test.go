package logout_test

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/dalemusser/couponadmin/internal/app/features/logout"
	"github.com/dalemusser/couponadmin/internal/app/system/auth"
	"github.com/dalemusser/couponadmin/internal/testutil"
	"go.uber.org/zap"
)

func newTestHandler(t *testing.T) *logout.Handler {
	t.Helper()
	logger := zap.NewNop()
	sm, err := auth.NewSessionManager("test-session-key-for-testing-only-0123456789", "", false, logger)
	if err != nil {
		t.Fatalf("NewSessionManager failed: %v", err)
	}
	// Pass nil for the audit logger in tests (it is a no-op)
	return logout.NewHandler(sm, nil, logger)
}

func TestHandleLogout_RedirectsToLogin(t *testing.T) {
	handler := newTestHandler(t)

	req := testutil.NewAuthenticatedRequest("POST", "/auth/logout", testutil.Admin)
	rec := httptest.NewRecorder()
	handler.HandleLogout(rec, req)

	if rec.Code != http.StatusSeeOther {
		t.Errorf("expected status %d, got %d", http.StatusSeeOther, rec.Code)
	}
	if loc := rec.Header().Get("Location"); loc != "/auth/login" {
		t.Errorf("Location: got %q, want %q", loc, "/auth/login")
	}
}

func TestHandleLogout_ClearsCredentialCookies(t *testing.T) {
	handler := newTestHandler(t)

	rec := httptest.NewRecorder()
	handler.HandleLogout(rec, testutil.NewAuthenticatedRequest("POST", "/auth/logout", testutil.Provider))

	cleared := map[string]bool{}
	for _, c := range rec.Result().Cookies() {
		if c.MaxAge < 0 {
			cleared[c.Name] = true
		}
	}
	for _, name := range []string{auth.TokenCookie, auth.RefreshCookie, auth.RoleCookie, auth.ResetCodeCookie} {
		if !cleared[name] {
			t.Errorf("cookie %q not cleared", name)
		}
	}
}

func TestHandleLogout_HTMX(t *testing.T) {
	handler := newTestHandler(t)

	req := testutil.HTMX(testutil.NewAuthenticatedRequest("POST", "/auth/logout", testutil.Admin))
	rec := httptest.NewRecorder()
	handler.HandleLogout(rec, req)

	if rec.Code != http.StatusOK {
		t.Errorf("status: got %d, want 200", rec.Code)
	}
	if got := rec.Header().Get("HX-Redirect"); got != "/auth/login" {
		t.Errorf("HX-Redirect: got %q", got)
	}
}
