// internal/app/system/ratelimit/ratelimit.go
package ratelimit

import (
	"context"
	"net"
	"net/http"
	"strings"
	"sync"
	"time"
)

// Limiter is a fixed-window counter keyed by string. It is safe for
// concurrent use.
type Limiter struct {
	mu       sync.Mutex
	windows  map[string]*window
	limit    int
	duration time.Duration
	now      func() time.Time
}

type window struct {
	count     int
	expiresAt time.Time
}

// New creates a limiter allowing limit hits per key per duration.
func New(limit int, duration time.Duration) *Limiter {
	return &Limiter{
		windows:  make(map[string]*window),
		limit:    limit,
		duration: duration,
		now:      time.Now,
	}
}

// SetClock replaces the time source. Tests only.
func (l *Limiter) SetClock(now func() time.Time) {
	l.mu.Lock()
	l.now = now
	l.mu.Unlock()
}

// Allow records a hit for key and reports whether it is within the limit.
func (l *Limiter) Allow(key string) bool {
	l.mu.Lock()
	defer l.mu.Unlock()

	now := l.now()
	w, ok := l.windows[key]
	if !ok || now.After(w.expiresAt) {
		l.windows[key] = &window{count: 1, expiresAt: now.Add(l.duration)}
		return true
	}
	if w.count >= l.limit {
		return false
	}
	w.count++
	return true
}

// Remaining returns how many hits are left for key in the current window.
func (l *Limiter) Remaining(key string) int {
	l.mu.Lock()
	defer l.mu.Unlock()

	w, ok := l.windows[key]
	if !ok || l.now().After(w.expiresAt) {
		return l.limit
	}
	return max(l.limit-w.count, 0)
}

// Reset clears key.
func (l *Limiter) Reset(key string) {
	l.mu.Lock()
	delete(l.windows, key)
	l.mu.Unlock()
}

// Sweep drops expired windows and returns how many were removed.
func (l *Limiter) Sweep() int {
	l.mu.Lock()
	defer l.mu.Unlock()

	now := l.now()
	n := 0
	for key, w := range l.windows {
		if now.After(w.expiresAt) {
			delete(l.windows, key)
			n++
		}
	}
	return n
}

// Run sweeps every 2x the window until ctx is done.
func (l *Limiter) Run(ctx context.Context) {
	t := time.NewTicker(2 * l.duration)
	defer t.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-t.C:
			l.Sweep()
		}
	}
}

// ClientIP extracts the client IP, preferring proxy headers.
func ClientIP(r *http.Request) string {
	if xff := r.Header.Get("X-Forwarded-For"); xff != "" {
		if ip := strings.TrimSpace(strings.Split(xff, ",")[0]); ip != "" {
			return ip
		}
	}
	if xri := strings.TrimSpace(r.Header.Get("X-Real-IP")); xri != "" {
		return xri
	}
	ip, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		return r.RemoteAddr
	}
	return ip
}

// AttemptLimiter guards credential endpoints (login, forgot password,
// verify code) per client IP and per email address.
type AttemptLimiter struct {
	ip    *Limiter
	email *Limiter
}

// NewAttemptLimiter allows 10 attempts per IP per minute and 5 per email
// per 5 minutes.
func NewAttemptLimiter() *AttemptLimiter {
	return NewAttemptLimiterWithConfig(10, time.Minute, 5, 5*time.Minute)
}

// NewAttemptLimiterWithConfig creates a limiter with custom limits.
func NewAttemptLimiterWithConfig(ipLimit int, ipWindow time.Duration, emailLimit int, emailWindow time.Duration) *AttemptLimiter {
	return &AttemptLimiter{
		ip:    New(ipLimit, ipWindow),
		email: New(emailLimit, emailWindow),
	}
}

// Check records an attempt and returns ("", true) when allowed, or a
// user-facing reason when blocked.
func (a *AttemptLimiter) Check(r *http.Request, email string) (bool, string) {
	if !a.ip.Allow(ClientIP(r)) {
		return false, "Too many attempts. Please wait a minute before trying again."
	}
	if key := emailKey(email); key != "" && !a.email.Allow(key) {
		return false, "Too many attempts for this account. Please wait a few minutes."
	}
	return true, ""
}

// ResetEmail clears the per-email window after a successful attempt.
func (a *AttemptLimiter) ResetEmail(email string) {
	if key := emailKey(email); key != "" {
		a.email.Reset(key)
	}
}

// Run sweeps both limiters until ctx is done.
func (a *AttemptLimiter) Run(ctx context.Context) {
	go a.ip.Run(ctx)
	a.email.Run(ctx)
}

func emailKey(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}
