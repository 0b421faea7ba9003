// internal/domain/models/coupon.go
package models

import "github.com/dalemusser/couponadmin/internal/app/system/normalize"

// Coupon is a discount offered by a provider.
type Coupon struct {
	ID           string `src:"id"`
	Code         string `src:"code|coupon_code" default:"Unknown"`
	Name         string `src:"name|title" default:"Untitled"`
	Description  string `src:"description"`
	TypeID       string `src:"coupon_type_id|coupon_type.id|type.id"`
	TypeName     string `src:"coupon_type.name|type.name|type_name|coupon_type_name" default:"Unknown"`
	ProviderName string `src:"provider.name|provider_name" default:"Unknown"`
	Price        string `src:"price|discount|discount_value" default:"0"`
	UsageCount   int64  `src:"usage_count|used_count|redeems_count"`
	Status       string
	Image        string `src:"image|image_url|image_path"`
	CreatedAt    string `src:"created_at|createdAt"`
}

func (c *Coupon) Derive(raw map[string]any) {
	c.Status = normalize.StatusFromCode(raw["status"])
	c.Image = imageOrDefault(c.Image)
}

// CouponRef is a coupon attached to a banner or seasonal event.
type CouponRef struct {
	ID   string `src:"id"`
	Name string `src:"name|title" default:"Untitled"`
	Code string `src:"code" default:"Unknown"`
}
