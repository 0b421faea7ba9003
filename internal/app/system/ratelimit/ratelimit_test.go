package ratelimit_test

import (
	"net/http/httptest"
	"testing"
	"time"

	"github.com/dalemusser/couponadmin/internal/app/system/ratelimit"
)

func TestLimiter_WindowResets(t *testing.T) {
	now := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	l := ratelimit.New(2, time.Minute)
	l.SetClock(func() time.Time { return now })

	if !l.Allow("a") || !l.Allow("a") {
		t.Fatal("first two hits should pass")
	}
	if l.Allow("a") {
		t.Error("third hit should be limited")
	}
	if l.Remaining("a") != 0 || l.Remaining("b") != 2 {
		t.Errorf("Remaining: a=%d b=%d", l.Remaining("a"), l.Remaining("b"))
	}

	now = now.Add(61 * time.Second)
	if !l.Allow("a") {
		t.Error("new window should allow")
	}
}

func TestLimiter_SweepAndReset(t *testing.T) {
	now := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	l := ratelimit.New(1, time.Minute)
	l.SetClock(func() time.Time { return now })

	l.Allow("a")
	l.Allow("b")
	l.Reset("b")
	if !l.Allow("b") {
		t.Error("Reset should clear the window")
	}

	now = now.Add(2 * time.Minute)
	if n := l.Sweep(); n != 2 {
		t.Errorf("Sweep: got %d, want 2", n)
	}
}

func TestClientIP(t *testing.T) {
	tests := []struct {
		name    string
		headers map[string]string
		remote  string
		want    string
	}{
		{"forwarded", map[string]string{"X-Forwarded-For": "10.0.0.1, 10.0.0.2"}, "1.1.1.1:9", "10.0.0.1"},
		{"real ip", map[string]string{"X-Real-IP": " 10.0.0.3 "}, "1.1.1.1:9", "10.0.0.3"},
		{"remote", nil, "1.1.1.1:9", "1.1.1.1"},
		{"remote no port", nil, "1.1.1.1", "1.1.1.1"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := httptest.NewRequest("POST", "/auth/login", nil)
			r.RemoteAddr = tt.remote
			for k, v := range tt.headers {
				r.Header.Set(k, v)
			}
			if got := ratelimit.ClientIP(r); got != tt.want {
				t.Errorf("ClientIP: got %q, want %q", got, tt.want)
			}
		})
	}
}

func TestAttemptLimiter(t *testing.T) {
	a := ratelimit.NewAttemptLimiterWithConfig(100, time.Minute, 2, time.Minute)
	r := httptest.NewRequest("POST", "/auth/login", nil)

	for i := 0; i < 2; i++ {
		if ok, _ := a.Check(r, "Admin@Example.com"); !ok {
			t.Fatalf("attempt %d should pass", i+1)
		}
	}
	ok, reason := a.Check(r, " admin@example.com ")
	if ok || reason == "" {
		t.Errorf("third attempt for same email should be blocked, got %v %q", ok, reason)
	}

	a.ResetEmail("ADMIN@example.com")
	if ok, _ := a.Check(r, "admin@example.com"); !ok {
		t.Error("ResetEmail should allow again")
	}
}
