// internal/domain/models/provider.go
package models

// Provider is a business offering coupons.
type Provider struct {
	ID       string `src:"id"`
	Name     string `src:"name|business_name|user.name" default:"Unknown"`
	Email    string `src:"email|user.email"`
	Phone    string `src:"phone|user.phone"`
	Location string `src:"location|address"`
	Image    string `src:"image|logo"`
	Status   string
}

func (p *Provider) Derive(raw map[string]any) {
	p.Status = normalizeTwoState(raw)
	p.Image = imageOrDefault(p.Image)
}
