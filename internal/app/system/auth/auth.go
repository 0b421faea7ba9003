package auth

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"sync"
	"time"

	"github.com/dalemusser/couponadmin/internal/app/system/timeouts"
	"github.com/gorilla/securecookie"
	"go.uber.org/zap"
	"golang.org/x/oauth2"
	"golang.org/x/sync/singleflight"
)

/*─────────────────────────────────────────────────────────────────────────────*
| Cookie names                                                                |
*─────────────────────────────────────────────────────────────────────────────*/

const (
	TokenCookie      = "token"
	RefreshCookie    = "refreshToken"
	RoleCookie       = "userRole"
	ResetCodeCookie  = "resetCode"
	ResetEmailCookie = "resetEmail"

	// credentialMaxAge bounds how long the browser keeps credential cookies.
	// The API token's own expiry is enforced separately by LoadSessionUser.
	credentialMaxAge = 30 * 24 * time.Hour
	resetMaxAge      = 15 * time.Minute

	// refreshReuse is how long a completed refresh keeps answering for the
	// refresh token it consumed. A page's parallel requests all arrive
	// with the same expired cookies.
	refreshReuse = 30 * time.Second
)

// Roles known to the dashboard.
const (
	RoleAdmin    = "admin"
	RoleProvider = "provider"
)

/*─────────────────────────────────────────────────────────────────────────────*
| Current-User helper                                                        |
*─────────────────────────────────────────────────────────────────────────────*/

// SessionUser is the credential set stored in cookies and injected into r.Context().
type SessionUser struct {
	Token        string
	RefreshToken string
	Role         string
}

// SignedIn reports whether an access token is present.
func (u *SessionUser) SignedIn() bool {
	return u != nil && u.Token != ""
}

// OAuthToken adapts the credentials for Authorization header construction.
func (u *SessionUser) OAuthToken() *oauth2.Token {
	return &oauth2.Token{
		AccessToken:  u.Token,
		RefreshToken: u.RefreshToken,
		TokenType:    "Bearer",
	}
}

type ctxKey string

const currentUserKey ctxKey = "currentUser"

// CurrentUser returns the user & "found?" flag.
func CurrentUser(r *http.Request) (*SessionUser, bool) {
	return FromContext(r.Context())
}

// FromContext returns the user stored on ctx by LoadSessionUser.
func FromContext(ctx context.Context) (*SessionUser, bool) {
	u, ok := ctx.Value(currentUserKey).(*SessionUser)
	return u, ok && u.SignedIn()
}

// WithUser returns a copy of ctx carrying u.
func WithUser(ctx context.Context, u *SessionUser) context.Context {
	return context.WithValue(ctx, currentUserKey, u)
}

// Refresher exchanges a refresh token for a new credential set.
type Refresher interface {
	Refresh(ctx context.Context, refreshToken string) (*SessionUser, error)
}

/*─────────────────────────────────────────────────────────────────────────────*
| SessionManager                                                              |
*─────────────────────────────────────────────────────────────────────────────*/

// SessionManager reads and writes the signed credential cookies.
type SessionManager struct {
	codec     *securecookie.SecureCookie
	domain    string
	secure    bool
	refresher Refresher
	onRefresh func(r *http.Request, err error)
	log       *zap.Logger
	now       func() time.Time

	flight singleflight.Group
	mu     sync.Mutex
	recent map[string]recentRefresh
}

type recentRefresh struct {
	user *SessionUser
	at   time.Time
}

// NewSessionManager builds a manager whose cookies are signed with sessionKey.
//
// In production (secure=true) cookies are marked Secure. In local dev over
// http://localhost, use secure=false so cookies are accepted.
func NewSessionManager(sessionKey, domain string, secure bool, logger *zap.Logger) (*SessionManager, error) {
	if sessionKey == "" {
		return nil, fmt.Errorf("session key is empty; provide ≥32 random chars")
	}
	if len(sessionKey) < 32 {
		logger.Warn("session key is short; 32+ chars recommended",
			zap.Int("length", len(sessionKey)))
	}

	codec := securecookie.New([]byte(sessionKey), nil)
	codec.MaxAge(int(credentialMaxAge.Seconds()))

	logger.Info("session manager initialized",
		zap.Bool("secure", secure),
		zap.String("domain", domain))

	return &SessionManager{
		codec:  codec,
		domain: domain,
		secure: secure,
		log:    logger,
		now:    time.Now,
		recent: make(map[string]recentRefresh),
	}, nil
}

// SetRefresher enables proactive token refresh in LoadSessionUser.
func (m *SessionManager) SetRefresher(r Refresher) {
	m.refresher = r
}

// OnRefresh registers fn to observe every refresh attempt; err is nil on
// success.
func (m *SessionManager) OnRefresh(fn func(r *http.Request, err error)) {
	m.onRefresh = fn
}

// SetClock overrides the time source. Used by tests.
func (m *SessionManager) SetClock(now func() time.Time) {
	m.now = now
}

// LoadSessionUser injects the user into context if a token cookie is present.
//
// When the access token is a JWT whose exp has passed and a refresh token is
// available, the tokens are exchanged before the request continues. A failed
// refresh clears the credential cookies so the role gate sends the user to
// the login page.
func (m *SessionManager) LoadSessionUser(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		u := m.read(r)
		if !u.SignedIn() {
			next.ServeHTTP(w, r)
			return
		}

		if Expired(u.Token, m.now()) {
			refreshed, err := m.refresh(r.Context(), u)
			if m.onRefresh != nil {
				m.onRefresh(r, err)
			}
			if err != nil {
				m.log.Info("token refresh failed; clearing credentials", zap.Error(err))
				m.Logout(w)
				next.ServeHTTP(w, r)
				return
			}
			if err := m.Save(w, refreshed); err != nil {
				m.log.Warn("save refreshed credentials failed", zap.Error(err))
			}
			u = refreshed
		}

		next.ServeHTTP(w, r.WithContext(WithUser(r.Context(), u)))
	})
}

var errNoRefresh = errors.New("no refresh token or refresher")

// refresh exchanges u's refresh token once no matter how many requests
// carry it. Concurrent callers share one API call, and callers arriving
// shortly after reuse its result instead of replaying a rotated token.
func (m *SessionManager) refresh(ctx context.Context, u *SessionUser) (*SessionUser, error) {
	if m.refresher == nil || u.RefreshToken == "" {
		return nil, errNoRefresh
	}
	if fresh, ok := m.recentFor(u.RefreshToken); ok {
		return fresh, nil
	}

	v, err, _ := m.flight.Do(u.RefreshToken, func() (any, error) {
		if fresh, ok := m.recentFor(u.RefreshToken); ok {
			return fresh, nil
		}
		// Shared by every waiting request, so one caller going away
		// must not cancel it.
		callCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), timeouts.Short())
		defer cancel()

		fresh, err := m.refresher.Refresh(callCtx, u.RefreshToken)
		if err != nil {
			return nil, err
		}
		if fresh.RefreshToken == "" {
			fresh.RefreshToken = u.RefreshToken
		}
		if fresh.Role == "" {
			fresh.Role = u.Role
		}
		m.remember(u.RefreshToken, fresh)
		return fresh, nil
	})
	if err != nil {
		return nil, err
	}
	out := *v.(*SessionUser)
	return &out, nil
}

func (m *SessionManager) recentFor(refreshToken string) (*SessionUser, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	rr, ok := m.recent[refreshToken]
	if !ok || m.now().Sub(rr.at) > refreshReuse {
		return nil, false
	}
	out := *rr.user
	return &out, true
}

func (m *SessionManager) remember(refreshToken string, u *SessionUser) {
	m.mu.Lock()
	defer m.mu.Unlock()
	now := m.now()
	for k, rr := range m.recent {
		if now.Sub(rr.at) > refreshReuse {
			delete(m.recent, k)
		}
	}
	out := *u
	m.recent[refreshToken] = recentRefresh{user: &out, at: now}
}

// Save writes the credential cookies.
func (m *SessionManager) Save(w http.ResponseWriter, u *SessionUser) error {
	if err := m.set(w, TokenCookie, u.Token, credentialMaxAge); err != nil {
		return err
	}
	if u.RefreshToken != "" {
		if err := m.set(w, RefreshCookie, u.RefreshToken, credentialMaxAge); err != nil {
			return err
		}
	}
	return m.set(w, RoleCookie, NormalizeRole(u.Role), credentialMaxAge)
}

// Logout removes the credential cookies.
func (m *SessionManager) Logout(w http.ResponseWriter) {
	for _, name := range []string{TokenCookie, RefreshCookie, RoleCookie} {
		m.clear(w, name)
	}
}

// SetReset remembers the email and verified code between the verify and reset steps.
func (m *SessionManager) SetReset(w http.ResponseWriter, email, code string) error {
	if err := m.set(w, ResetEmailCookie, email, resetMaxAge); err != nil {
		return err
	}
	if code == "" {
		return nil
	}
	return m.set(w, ResetCodeCookie, code, resetMaxAge)
}

// Reset returns the email and code stored by SetReset.
func (m *SessionManager) Reset(r *http.Request) (email, code string) {
	return m.get(r, ResetEmailCookie), m.get(r, ResetCodeCookie)
}

// ClearReset removes the transient reset cookies.
func (m *SessionManager) ClearReset(w http.ResponseWriter) {
	m.clear(w, ResetEmailCookie)
	m.clear(w, ResetCodeCookie)
}

func (m *SessionManager) read(r *http.Request) *SessionUser {
	return &SessionUser{
		Token:        m.get(r, TokenCookie),
		RefreshToken: m.get(r, RefreshCookie),
		Role:         NormalizeRole(m.get(r, RoleCookie)),
	}
}

func (m *SessionManager) get(r *http.Request, name string) string {
	c, err := r.Cookie(name)
	if err != nil {
		return ""
	}
	var v string
	if err := m.codec.Decode(name, c.Value, &v); err != nil {
		m.log.Debug("discarding unreadable cookie", zap.String("cookie", name), zap.Error(err))
		return ""
	}
	return v
}

func (m *SessionManager) set(w http.ResponseWriter, name, value string, maxAge time.Duration) error {
	encoded, err := m.codec.Encode(name, value)
	if err != nil {
		return fmt.Errorf("encode %s cookie: %w", name, err)
	}
	http.SetCookie(w, &http.Cookie{
		Name:     name,
		Value:    encoded,
		Path:     "/",
		Domain:   m.domain,
		MaxAge:   int(maxAge.Seconds()),
		Secure:   m.secure,
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})
	return nil
}

func (m *SessionManager) clear(w http.ResponseWriter, name string) {
	http.SetCookie(w, &http.Cookie{
		Name:     name,
		Value:    "",
		Path:     "/",
		Domain:   m.domain,
		MaxAge:   -1,
		Secure:   m.secure,
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})
}

/*─────────────────────────────────────────────────────────────────────────────*
| Route guards                                                                |
*─────────────────────────────────────────────────────────────────────────────*/

// RequireSignedIn ensures there is a user in context (set by LoadSessionUser).
// If not signed in:
//   - HTMX: sends HX-Redirect to /auth/login?return=...
//   - HTML: 303 redirect to /auth/login?return=...
//   - API:  401 Unauthorized with a plain error body.
func (m *SessionManager) RequireSignedIn(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if _, ok := CurrentUser(r); ok {
			next.ServeHTTP(w, r)
			return
		}
		redirectToLogin(w, r)
	})
}

// RequireRole ensures there is a user with one of the allowed roles.
// Signed-in users with another role are sent to their own home page.
func (m *SessionManager) RequireRole(allowed ...string) func(http.Handler) http.Handler {
	set := make(map[string]struct{}, len(allowed))
	for _, role := range allowed {
		set[NormalizeRole(role)] = struct{}{}
	}

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			u, ok := CurrentUser(r)
			if !ok {
				redirectToLogin(w, r)
				return
			}

			if _, has := set[u.Role]; !has {
				dest := HomePath(u.Role)
				if r.Header.Get("HX-Request") == "true" {
					w.Header().Set("HX-Redirect", dest)
					w.WriteHeader(http.StatusForbidden)
					return
				}
				if wantsHTML(r) {
					http.Redirect(w, r, dest, http.StatusSeeOther)
					return
				}
				http.Error(w, "forbidden", http.StatusForbidden)
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}

// NormalizeRole lowercases and trims a role name.
func NormalizeRole(role string) string {
	return strings.ToLower(strings.TrimSpace(role))
}

// HomePath returns the landing page for a role.
func HomePath(role string) string {
	switch NormalizeRole(role) {
	case RoleAdmin:
		return "/admin-dashboard"
	case RoleProvider:
		return "/provider-dashboard"
	default:
		return "/auth/login"
	}
}

// helpers

func redirectToLogin(w http.ResponseWriter, r *http.Request) {
	ret := url.QueryEscape(r.URL.RequestURI())

	if r.Header.Get("HX-Request") == "true" {
		w.Header().Set("HX-Redirect", "/auth/login?return="+ret)
		w.WriteHeader(http.StatusUnauthorized)
		return
	}
	if wantsHTML(r) {
		http.Redirect(w, r, "/auth/login?return="+ret, http.StatusSeeOther)
		return
	}
	http.Error(w, "unauthorized", http.StatusUnauthorized)
}

func wantsHTML(r *http.Request) bool {
	if r.Header.Get("HX-Request") == "true" {
		return true
	}
	return strings.Contains(r.Header.Get("Accept"), "text/html")
}
