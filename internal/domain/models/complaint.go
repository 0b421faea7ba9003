// internal/domain/models/complaint.go
package models

import (
	"strings"

	"github.com/dalemusser/couponadmin/internal/app/system/normalize"
)

// Complaint is a user report about a provider, package or coupon.
type Complaint struct {
	ID               string        `src:"id"`
	UserID           string        `src:"user_id|user.id"`
	UserName         string        `src:"user.name|user_name" default:"Unknown"`
	Title            string        `src:"title|subject" default:"Untitled"`
	Content          string        `src:"content|body|message"`
	ComplainableID   string        `src:"complainable_id"`
	ComplainableType string        `src:"complainable_type" default:"unknown"`
	Complainable     *Complainable `src:"complainable"`
	CreatedAt        string        `src:"created_at"`
}

// Complainable is the snapshot of the complained-about record.
type Complainable struct {
	Name        string `src:"name|title" default:"Unknown"`
	Description string `src:"description"`
	Price       string `src:"price"`
	Location    string `src:"location|address"`
}

func (c *Complaint) Derive(raw map[string]any) {
	c.ComplainableType = ComplainableKind(normalize.String(raw, "complainable_type"))
}

// ComplainableKind reduces a polymorphic type such as "App\\Models\\Provider"
// to "provider", "package" or "coupon".
func ComplainableKind(s string) string {
	s = strings.TrimSpace(s)
	if i := strings.LastIndexAny(s, `\/.`); i >= 0 {
		s = s[i+1:]
	}
	switch k := strings.ToLower(s); k {
	case "provider", "package", "coupon":
		return k
	}
	return ""
}
