// Package normalize turns loosely-shaped API payloads and form input into
// the canonical values the dashboard renders.
//
// API records arrive as map[string]any with optional nested objects, mixed
// number/string encodings, and nulls. Into copies them into typed structs
// using `src` tags (dot paths, "|" separated alternatives) and fills gaps
// from `default` tags, so templates never see a missing field.
package normalize

import (
	"strings"
)

// Email trims and lowercases an email address.
func Email(s string) string {
	return strings.ToLower(strings.TrimSpace(s))
}

// Name trims surrounding whitespace, preserving case.
func Name(s string) string {
	return strings.TrimSpace(s)
}

// QueryParam trims a query parameter and treats "all" as empty.
func QueryParam(s string) string {
	s = strings.TrimSpace(s)
	if strings.EqualFold(s, "all") {
		return ""
	}
	return s
}

// Role lowercases and trims a role name.
func Role(s string) string {
	return strings.ToLower(strings.TrimSpace(s))
}
