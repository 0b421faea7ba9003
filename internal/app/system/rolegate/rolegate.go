// Package rolegate decides, per request, whether the current session may
// see a path. It is the single table mapping dashboard paths to the roles
// allowed on them.
//
//	no token, non-public path          → Unauthenticated → /auth/login
//	public path                         → Authorized
//	token, table entry excludes role    → AuthenticatedNoRoleMatch → role home
//	otherwise                           → Authorized
//
// A signed-in user with a known role who asks for the login page is
// sent to their home instead.
package rolegate

import (
	"fmt"
	"net/http"
	"strings"

	"github.com/dalemusser/couponadmin/internal/app/system/auth"
	"go.uber.org/zap"
)

// State is the outcome of a gate decision.
type State int

const (
	Authorized State = iota
	Unauthenticated
	AuthenticatedNoRoleMatch
)

func (s State) String() string {
	switch s {
	case Unauthenticated:
		return "unauthenticated"
	case AuthenticatedNoRoleMatch:
		return "authenticated_no_role_match"
	default:
		return "authorized"
	}
}

// MatchMode selects how table paths match request paths.
type MatchMode string

const (
	// MatchPrefix covers a path and every path nested under it on a
	// segment boundary: "/coupons" covers "/coupons/packages" but not
	// "/couponsx".
	MatchPrefix MatchMode = "prefix"
	// MatchExact covers only the literal path.
	MatchExact MatchMode = "exact"
)

// ParseMatchMode validates a configured mode. Empty means prefix.
func ParseMatchMode(s string) (MatchMode, error) {
	switch m := MatchMode(strings.ToLower(strings.TrimSpace(s))); m {
	case "", MatchPrefix:
		return MatchPrefix, nil
	case MatchExact:
		return MatchExact, nil
	}
	return "", fmt.Errorf("unknown gate match mode %q (want prefix or exact)", s)
}

// Rule restricts Path to Roles.
type Rule struct {
	Path  string
	Roles []string
}

// Table is the full gate configuration.
type Table struct {
	Public    []string
	Rules     []Rule
	LoginPath string
	Mode      MatchMode
}

// Decision is the gate's verdict for one request.
type Decision struct {
	State    State
	Redirect string
}

// DefaultTable is the dashboard's route table.
func DefaultTable(mode MatchMode) Table {
	admin := []string{auth.RoleAdmin}
	both := []string{auth.RoleAdmin, auth.RoleProvider}
	return Table{
		Public: []string{
			"/auth/login",
			"/auth/register",
			"/auth/forgot-password",
			"/auth/verify-code",
			"/auth/reset-password",
			// Answers for itself: 401 or isAuthenticated false.
			"/auth/session",
			"/health",
			"/static",
			"/favicon.ico",
		},
		Rules: []Rule{
			{Path: "/admin-dashboard", Roles: admin},
			{Path: "/provider-dashboard", Roles: []string{auth.RoleProvider}},
			{Path: "/coupons", Roles: both},
			{Path: "/coupons/packages", Roles: both},
			{Path: "/coupon-types", Roles: admin},
			{Path: "/categories", Roles: admin},
			{Path: "/complaints", Roles: admin},
			{Path: "/providers", Roles: admin},
			{Path: "/reels", Roles: both},
			{Path: "/redeems", Roles: both},
			{Path: "/banners", Roles: admin},
			{Path: "/seasonal-events", Roles: admin},
			{Path: "/audit-log", Roles: admin},
		},
		LoginPath: "/auth/login",
		Mode:      mode,
	}
}

// Decide evaluates path for the given session. u may be nil. An
// Authorized decision with a non-empty Redirect still redirects.
func (t Table) Decide(path string, u *auth.SessionUser) Decision {
	if t.isPublic(path) {
		if u.SignedIn() && trimSlash(path) == trimSlash(t.LoginPath) {
			if home := auth.HomePath(u.Role); home != t.LoginPath {
				return Decision{State: Authorized, Redirect: home}
			}
		}
		return Decision{State: Authorized}
	}
	if !u.SignedIn() {
		return Decision{State: Unauthenticated, Redirect: t.LoginPath}
	}

	rule, ok := t.match(path)
	if !ok {
		return Decision{State: Authorized}
	}
	role := auth.NormalizeRole(u.Role)
	for _, allowed := range rule.Roles {
		if role == allowed {
			return Decision{State: Authorized}
		}
	}
	return Decision{State: AuthenticatedNoRoleMatch, Redirect: auth.HomePath(role)}
}

// isPublic always matches on segment boundaries so static assets and
// nested auth steps stay reachable in exact mode.
func (t Table) isPublic(path string) bool {
	for _, p := range t.Public {
		if covers(p, path) {
			return true
		}
	}
	return false
}

// match returns the most specific rule covering path.
func (t Table) match(path string) (Rule, bool) {
	var (
		best  Rule
		found bool
	)
	for _, rule := range t.Rules {
		var hit bool
		if t.Mode == MatchExact {
			hit = trimSlash(path) == trimSlash(rule.Path)
		} else {
			hit = covers(rule.Path, path)
		}
		if hit && len(rule.Path) > len(best.Path) {
			best, found = rule, true
		}
	}
	return best, found
}

func covers(prefix, path string) bool {
	prefix, path = trimSlash(prefix), trimSlash(path)
	return path == prefix || strings.HasPrefix(path, prefix+"/")
}

func trimSlash(p string) string {
	if len(p) > 1 {
		return strings.TrimRight(p, "/")
	}
	return p
}

// Middleware enforces t on every request. It must run after
// auth.SessionManager.LoadSessionUser.
func Middleware(t Table, logger *zap.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			u, _ := auth.CurrentUser(r)
			d := t.Decide(r.URL.Path, u)
			if d.Redirect == "" {
				next.ServeHTTP(w, r)
				return
			}

			logger.Debug("role gate redirect",
				zap.String("path", r.URL.Path),
				zap.String("state", d.State.String()),
				zap.String("to", d.Redirect))

			if r.Header.Get("HX-Request") == "true" {
				w.Header().Set("HX-Redirect", d.Redirect)
				w.WriteHeader(http.StatusNoContent)
				return
			}
			http.Redirect(w, r, d.Redirect, http.StatusSeeOther)
		})
	}
}
