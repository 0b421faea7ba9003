package normalize

import (
	"strings"

	"github.com/spf13/cast"
)

// Status labels shown in the UI.
const (
	StatusActive   = "active"
	StatusExpired  = "expired"
	StatusPending  = "pending"
	StatusInactive = "inactive"
)

// StatusFromCode maps the API's three-state code (0 active, 1 expired,
// 2 pending) to a label. Labels pass through unchanged, so the mapping is
// idempotent. Unknown or missing codes map to pending.
func StatusFromCode(v any) string {
	if s, ok := v.(string); ok {
		switch label := strings.ToLower(strings.TrimSpace(s)); label {
		case StatusActive, StatusExpired, StatusPending:
			return label
		}
	}
	n, err := cast.ToIntE(v)
	if err != nil {
		return StatusPending
	}
	switch n {
	case 0:
		return StatusActive
	case 1:
		return StatusExpired
	default:
		return StatusPending
	}
}

// TwoStateStatus maps 0 to active and anything else to inactive. Labels
// pass through unchanged.
func TwoStateStatus(v any) string {
	if s, ok := v.(string); ok {
		switch label := strings.ToLower(strings.TrimSpace(s)); label {
		case StatusActive, StatusInactive:
			return label
		}
	}
	if v == nil {
		return StatusInactive
	}
	if n, err := cast.ToIntE(v); err == nil && n == 0 {
		return StatusActive
	}
	if b, ok := v.(bool); ok && b {
		return StatusActive
	}
	return StatusInactive
}

// StatusCode is the inverse of StatusFromCode for filter parameters.
// It reports false for labels the API has no code for.
func StatusCode(label string) (int, bool) {
	switch strings.ToLower(strings.TrimSpace(label)) {
	case StatusActive:
		return 0, true
	case StatusExpired, StatusInactive:
		return 1, true
	case StatusPending:
		return 2, true
	}
	return 0, false
}
