// internal/domain/models/defaults.go
package models

// DefaultSiteName is the name shown in the menu header.
const DefaultSiteName = "Coupon Admin"

// DefaultImageURL is the placeholder used when a record has no image.
// Bootstrap may override it from configuration.
var DefaultImageURL = "/static/img/placeholder.png"

func imageOrDefault(s string) string {
	if s == "" {
		return DefaultImageURL
	}
	return s
}
