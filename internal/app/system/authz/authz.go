// internal/app/system/authz/authz.go
package authz

import (
	"net/http"

	"github.com/dalemusser/couponadmin/internal/app/system/auth"
)

// UserCtx returns the user's role (lowercased) and a found flag.
// If no signed-in user is present it returns "visitor", false.
func UserCtx(r *http.Request) (role string, ok bool) {
	user, ok := auth.CurrentUser(r)
	if !ok {
		return "visitor", false
	}
	return auth.NormalizeRole(user.Role), true
}

// Home returns the landing page for the current user, or the login page.
func Home(r *http.Request) string {
	role, ok := UserCtx(r)
	if !ok {
		return "/auth/login"
	}
	return auth.HomePath(role)
}
