// internal/domain/models/package.go
package models

import "github.com/dalemusser/couponadmin/internal/app/system/normalize"

// Package bundles coupons for a date range.
type Package struct {
	ID           string `src:"id"`
	Title        string `src:"title|name" default:"Untitled"`
	Description  string `src:"description"`
	Image        string `src:"image|image_url"`
	ProviderName string `src:"provider.name|provider_name" default:"Unknown"`
	Price        string `src:"price" default:"0"`
	Status       string
	From         string `src:"from|start_date|date_from"`
	To           string `src:"to|end_date|date_to"`
	CouponCount  int64  `src:"coupons_count|coupon_count"`
}

func (p *Package) Derive(raw map[string]any) {
	p.Status = normalize.StatusFromCode(raw["status"])
	p.Image = imageOrDefault(p.Image)
	if p.CouponCount == 0 {
		if list, ok := raw["coupons"].([]any); ok {
			p.CouponCount = int64(len(list))
		}
	}
}
