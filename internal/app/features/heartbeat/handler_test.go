package heartbeat

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/dalemusser/couponadmin/internal/app/system/auth"
	"github.com/dalemusser/couponadmin/internal/app/system/rolegate"
	"github.com/dalemusser/couponadmin/internal/testutil"
	"github.com/go-chi/chi/v5"
	"github.com/golang-jwt/jwt/v5"
	"go.uber.org/zap"
)

// newGatedRouter serves the session routes behind the dashboard's role
// gate, the way the application mounts them.
func newGatedRouter(t *testing.T) http.Handler {
	t.Helper()
	sm, err := auth.NewSessionManager("test-session-key-must-be-32-chars-long", "", false, zap.NewNop())
	if err != nil {
		t.Fatalf("NewSessionManager: %v", err)
	}
	r := chi.NewRouter()
	r.Use(rolegate.Middleware(rolegate.DefaultTable(rolegate.MatchPrefix), zap.NewNop()))
	r.Mount("/auth/session", Routes(NewHandler(zap.NewNop()), sm))
	return r
}

func TestHeartbeat_ThroughGate(t *testing.T) {
	tests := []struct {
		name   string
		user   *auth.SessionUser
		htmx   bool
		want   int
		hxDest string
	}{
		{"signed in", testutil.Provider, true, http.StatusNoContent, ""},
		{"anonymous fetch", nil, false, http.StatusUnauthorized, ""},
		{"anonymous htmx", nil, true, http.StatusUnauthorized, "/auth/login"},
	}
	router := newGatedRouter(t)
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest("POST", "/auth/session/heartbeat", nil)
			if tt.user != nil {
				req = testutil.WithUser(req, tt.user)
			}
			if tt.htmx {
				req = testutil.HTMX(req)
			}
			rec := httptest.NewRecorder()
			router.ServeHTTP(rec, req)

			if rec.Code != tt.want {
				t.Fatalf("status: got %d, want %d", rec.Code, tt.want)
			}
			if tt.hxDest != "" && !strings.HasPrefix(rec.Header().Get("HX-Redirect"), tt.hxDest) {
				t.Errorf("HX-Redirect: got %q", rec.Header().Get("HX-Redirect"))
			}
		})
	}
}

func TestSessionInfo_AnonymousThroughGate(t *testing.T) {
	rec := httptest.NewRecorder()
	newGatedRouter(t).ServeHTTP(rec, httptest.NewRequest("GET", "/auth/session", nil))

	if rec.Code != http.StatusOK {
		t.Fatalf("status: got %d, want 200", rec.Code)
	}
	var got sessionInfo
	if err := json.NewDecoder(rec.Body).Decode(&got); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if got.IsAuthenticated {
		t.Errorf("info: got %+v", got)
	}
}

func TestServeSession_ReportsExpiry(t *testing.T) {
	now := time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC)
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"exp": now.Add(90 * time.Second).Unix(),
	}).SignedString([]byte("k"))
	if err != nil {
		t.Fatal(err)
	}

	h := NewHandler(zap.NewNop())
	h.now = func() time.Time { return now }

	req := testutil.WithUser(httptest.NewRequest("GET", "/auth/session", nil), &auth.SessionUser{Token: token, Role: auth.RoleAdmin})
	rec := httptest.NewRecorder()
	h.ServeSession(rec, req)

	var got sessionInfo
	if err := json.NewDecoder(rec.Body).Decode(&got); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if !got.IsAuthenticated || got.Role != auth.RoleAdmin {
		t.Errorf("info: got %+v", got)
	}
	if got.ExpiresIn != 90 {
		t.Errorf("ExpiresIn: got %d, want 90", got.ExpiresIn)
	}
	if got.ExpiresAt != "2024-03-01T12:01:30Z" {
		t.Errorf("ExpiresAt: got %q", got.ExpiresAt)
	}
}

func TestServeSession_Anonymous(t *testing.T) {
	h := NewHandler(zap.NewNop())
	rec := httptest.NewRecorder()
	h.ServeSession(rec, httptest.NewRequest("GET", "/auth/session", nil))

	var got map[string]any
	if err := json.NewDecoder(rec.Body).Decode(&got); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if got["isAuthenticated"] != false {
		t.Errorf("got %v", got)
	}
	if _, ok := got["expires_in"]; ok {
		t.Error("anonymous sessions carry no expiry")
	}
}
