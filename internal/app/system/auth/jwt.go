package auth

import (
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// Expired reports whether token is a JWT whose exp claim is at or before now.
//
// The signature is not verified: the API is the authority on validity, this
// only decides when to refresh ahead of a guaranteed 401. Opaque tokens and
// JWTs without exp never count as expired.
func Expired(token string, now time.Time) bool {
	exp, ok := Expiry(token)
	return ok && !now.Before(exp)
}

// Expiry returns the exp claim of a JWT access token.
func Expiry(token string) (time.Time, bool) {
	claims := jwt.MapClaims{}
	if _, _, err := jwt.NewParser().ParseUnverified(token, claims); err != nil {
		return time.Time{}, false
	}
	exp, err := claims.GetExpirationTime()
	if err != nil || exp == nil {
		return time.Time{}, false
	}
	return exp.Time, true
}

// RoleClaim returns the role claim of a JWT, if present.
func RoleClaim(token string) string {
	claims := jwt.MapClaims{}
	if _, _, err := jwt.NewParser().ParseUnverified(token, claims); err != nil {
		return ""
	}
	if role, ok := claims["role"].(string); ok {
		return NormalizeRole(role)
	}
	return ""
}

// Subject returns the email claim of a JWT, falling back to sub. It names
// the actor in audit events.
func Subject(token string) string {
	claims := jwt.MapClaims{}
	if _, _, err := jwt.NewParser().ParseUnverified(token, claims); err != nil {
		return ""
	}
	if email, ok := claims["email"].(string); ok && email != "" {
		return email
	}
	sub, _ := claims.GetSubject()
	return sub
}

// Owner identifies the person behind u across token refreshes: the
// token's subject when it carries one, otherwise the token itself. Empty
// when u is not signed in.
func Owner(u *SessionUser) string {
	if !u.SignedIn() {
		return ""
	}
	if sub := Subject(u.Token); sub != "" {
		return "sub:" + sub
	}
	return "tok:" + u.Token
}
