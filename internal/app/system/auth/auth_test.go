package auth_test

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/dalemusser/couponadmin/internal/app/system/auth"
	"github.com/golang-jwt/jwt/v5"
	"go.uber.org/zap"
)

func newTestSessionManager(t *testing.T) *auth.SessionManager {
	t.Helper()
	sm, err := auth.NewSessionManager("test-session-key-must-be-32-chars-long", "", false, zap.NewNop())
	if err != nil {
		t.Fatalf("failed to create session manager: %v", err)
	}
	return sm
}

// signedToken builds an HS256 JWT expiring at exp.
func signedToken(t *testing.T, exp time.Time) string {
	t.Helper()
	tok := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"sub":  "1",
		"role": "Admin",
		"exp":  exp.Unix(),
	})
	s, err := tok.SignedString([]byte("secret"))
	if err != nil {
		t.Fatalf("sign token: %v", err)
	}
	return s
}

// withCookies copies Set-Cookie headers from a recorder onto req.
func withCookies(req *http.Request, rec *httptest.ResponseRecorder) {
	for _, c := range rec.Result().Cookies() {
		if c.MaxAge >= 0 {
			req.AddCookie(c)
		}
	}
}

func captureUser(got **auth.SessionUser) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if u, ok := auth.CurrentUser(r); ok {
			*got = u
		}
	})
}

func TestSaveThenLoad_RoundTripsCredentials(t *testing.T) {
	sm := newTestSessionManager(t)

	rec := httptest.NewRecorder()
	if err := sm.Save(rec, &auth.SessionUser{Token: "opaque", RefreshToken: "r1", Role: " Provider "}); err != nil {
		t.Fatalf("Save: %v", err)
	}

	req := httptest.NewRequest("GET", "/coupons", nil)
	withCookies(req, rec)

	var got *auth.SessionUser
	sm.LoadSessionUser(captureUser(&got)).ServeHTTP(httptest.NewRecorder(), req)

	if got == nil {
		t.Fatal("expected user in context")
	}
	if got.Token != "opaque" || got.RefreshToken != "r1" {
		t.Errorf("tokens: got %q/%q", got.Token, got.RefreshToken)
	}
	if got.Role != "provider" {
		t.Errorf("role: got %q, want %q", got.Role, "provider")
	}
}

func TestLoadSessionUser_TamperedCookieIgnored(t *testing.T) {
	sm := newTestSessionManager(t)

	req := httptest.NewRequest("GET", "/coupons", nil)
	req.AddCookie(&http.Cookie{Name: auth.TokenCookie, Value: "not-signed"})

	var got *auth.SessionUser
	sm.LoadSessionUser(captureUser(&got)).ServeHTTP(httptest.NewRecorder(), req)

	if got != nil {
		t.Errorf("expected no user for tampered cookie, got %+v", got)
	}
}

type fakeRefresher struct {
	calls int
	err   error
	token string
}

func (f *fakeRefresher) Refresh(ctx context.Context, refreshToken string) (*auth.SessionUser, error) {
	f.calls++
	if f.err != nil {
		return nil, f.err
	}
	return &auth.SessionUser{Token: f.token}, nil
}

func TestLoadSessionUser_RefreshesExpiredToken(t *testing.T) {
	sm := newTestSessionManager(t)
	ref := &fakeRefresher{token: "fresh"}
	sm.SetRefresher(ref)

	rec := httptest.NewRecorder()
	expired := signedToken(t, time.Now().Add(-time.Minute))
	_ = sm.Save(rec, &auth.SessionUser{Token: expired, RefreshToken: "r1", Role: "admin"})

	req := httptest.NewRequest("GET", "/coupons", nil)
	withCookies(req, rec)

	out := httptest.NewRecorder()
	var got *auth.SessionUser
	sm.LoadSessionUser(captureUser(&got)).ServeHTTP(out, req)

	if ref.calls != 1 {
		t.Fatalf("refresh calls: got %d, want 1", ref.calls)
	}
	if got == nil || got.Token != "fresh" {
		t.Fatalf("expected refreshed token in context, got %+v", got)
	}
	if got.RefreshToken != "r1" || got.Role != "admin" {
		t.Errorf("expected refresh token and role carried over, got %+v", got)
	}
	if !strings.Contains(out.Header().Get("Set-Cookie"), auth.TokenCookie+"=") {
		t.Error("expected refreshed token cookie to be written")
	}
}

func TestLoadSessionUser_FailedRefreshLogsOut(t *testing.T) {
	sm := newTestSessionManager(t)
	sm.SetRefresher(&fakeRefresher{err: errors.New("401")})

	rec := httptest.NewRecorder()
	_ = sm.Save(rec, &auth.SessionUser{Token: signedToken(t, time.Now().Add(-time.Hour)), RefreshToken: "r1", Role: "admin"})

	req := httptest.NewRequest("GET", "/coupons", nil)
	withCookies(req, rec)

	out := httptest.NewRecorder()
	var got *auth.SessionUser
	sm.LoadSessionUser(captureUser(&got)).ServeHTTP(out, req)

	if got != nil {
		t.Errorf("expected no user after failed refresh, got %+v", got)
	}
	cleared := 0
	for _, c := range out.Result().Cookies() {
		if c.MaxAge < 0 {
			cleared++
		}
	}
	if cleared != 3 {
		t.Errorf("cleared cookies: got %d, want 3", cleared)
	}
}

// rotatingRefresher accepts each refresh token once and hands out a new
// one, like an API that rotates refresh tokens.
type rotatingRefresher struct {
	mu    sync.Mutex
	used  map[string]bool
	calls int
	delay time.Duration
}

func (f *rotatingRefresher) Refresh(ctx context.Context, refreshToken string) (*auth.SessionUser, error) {
	time.Sleep(f.delay)
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls++
	if f.used[refreshToken] {
		return nil, errors.New("refresh token already used")
	}
	f.used[refreshToken] = true
	return &auth.SessionUser{Token: "fresh", RefreshToken: refreshToken + "-next"}, nil
}

func TestLoadSessionUser_ParallelRequestsShareOneRefresh(t *testing.T) {
	sm := newTestSessionManager(t)
	ref := &rotatingRefresher{used: map[string]bool{}, delay: 50 * time.Millisecond}
	sm.SetRefresher(ref)

	rec := httptest.NewRecorder()
	_ = sm.Save(rec, &auth.SessionUser{Token: signedToken(t, time.Now().Add(-time.Minute)), RefreshToken: "r1", Role: "admin"})

	const n = 4
	outs := make([]*httptest.ResponseRecorder, n)
	users := make([]*auth.SessionUser, n)
	var wg sync.WaitGroup
	for i := 0; i < n; i++ {
		req := httptest.NewRequest("GET", "/coupons", nil)
		withCookies(req, rec)
		outs[i] = httptest.NewRecorder()
		wg.Add(1)
		go func(i int, req *http.Request) {
			defer wg.Done()
			sm.LoadSessionUser(captureUser(&users[i])).ServeHTTP(outs[i], req)
		}(i, req)
	}
	wg.Wait()

	// A request arriving after the exchange still carries the old cookies.
	late := httptest.NewRequest("GET", "/coupons", nil)
	withCookies(late, rec)
	lateOut := httptest.NewRecorder()
	var lateUser *auth.SessionUser
	sm.LoadSessionUser(captureUser(&lateUser)).ServeHTTP(lateOut, late)

	ref.mu.Lock()
	calls := ref.calls
	ref.mu.Unlock()
	if calls != 1 {
		t.Errorf("refresh calls: got %d, want 1", calls)
	}
	for i, out := range append(outs, lateOut) {
		for _, c := range out.Result().Cookies() {
			if c.MaxAge < 0 {
				t.Errorf("response %d cleared cookie %s", i, c.Name)
			}
		}
	}
	for i, u := range append(users, lateUser) {
		if u == nil || u.Token != "fresh" || u.RefreshToken != "r1-next" {
			t.Errorf("request %d: got %+v", i, u)
		}
	}
}

func TestExpired(t *testing.T) {
	now := time.Now()
	tests := []struct {
		name  string
		token string
		want  bool
	}{
		{"opaque token", "abc123", false},
		{"future exp", signedToken(t, now.Add(time.Hour)), false},
		{"past exp", signedToken(t, now.Add(-time.Second)), true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := auth.Expired(tt.token, now); got != tt.want {
				t.Errorf("Expired: got %v, want %v", got, tt.want)
			}
		})
	}
}

func TestRoleClaim(t *testing.T) {
	if got := auth.RoleClaim(signedToken(t, time.Now().Add(time.Hour))); got != "admin" {
		t.Errorf("RoleClaim: got %q, want %q", got, "admin")
	}
	if got := auth.RoleClaim("opaque-token"); got != "" {
		t.Errorf("RoleClaim(opaque): got %q", got)
	}
}

func TestSubject_FallsBackToSub(t *testing.T) {
	if got := auth.Subject(signedToken(t, time.Now().Add(time.Hour))); got != "1" {
		t.Errorf("Subject: got %q, want %q", got, "1")
	}
}

func TestRequireSignedIn_NoUser_RedirectsToLogin(t *testing.T) {
	sm := newTestSessionManager(t)
	handler := sm.RequireSignedIn(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	}))

	req := httptest.NewRequest("GET", "/coupons", nil)
	req.Header.Set("Accept", "text/html")
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	if rec.Code != http.StatusSeeOther {
		t.Errorf("expected status %d, got %d", http.StatusSeeOther, rec.Code)
	}
	if loc := rec.Header().Get("Location"); !strings.HasPrefix(loc, "/auth/login") {
		t.Errorf("expected redirect to /auth/login, got %q", loc)
	}
}

func TestRequireSignedIn_HTMX_ReturnsHXRedirect(t *testing.T) {
	sm := newTestSessionManager(t)
	handler := sm.RequireSignedIn(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))

	req := httptest.NewRequest("GET", "/coupons", nil)
	req.Header.Set("HX-Request", "true")
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	if rec.Code != http.StatusUnauthorized {
		t.Errorf("expected status %d, got %d", http.StatusUnauthorized, rec.Code)
	}
	if hx := rec.Header().Get("HX-Redirect"); !strings.HasPrefix(hx, "/auth/login") {
		t.Errorf("HX-Redirect: got %q", hx)
	}
}

func TestRequireRole_WrongRoleGoesHome(t *testing.T) {
	sm := newTestSessionManager(t)
	handler := sm.RequireRole(auth.RoleAdmin)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	}))

	req := httptest.NewRequest("GET", "/categories", nil)
	req.Header.Set("Accept", "text/html")
	req = req.WithContext(auth.WithUser(req.Context(), &auth.SessionUser{Token: "t", Role: "provider"}))
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	if rec.Code != http.StatusSeeOther {
		t.Fatalf("expected status %d, got %d", http.StatusSeeOther, rec.Code)
	}
	if loc := rec.Header().Get("Location"); loc != "/provider-dashboard" {
		t.Errorf("Location: got %q, want %q", loc, "/provider-dashboard")
	}
}

func TestResetCookies(t *testing.T) {
	sm := newTestSessionManager(t)
	rec := httptest.NewRecorder()
	if err := sm.SetReset(rec, "a@b.co", "1234"); err != nil {
		t.Fatalf("SetReset: %v", err)
	}
	req := httptest.NewRequest("GET", "/auth/reset-password", nil)
	withCookies(req, rec)

	email, code := sm.Reset(req)
	if email != "a@b.co" || code != "1234" {
		t.Errorf("Reset: got %q/%q", email, code)
	}
}
