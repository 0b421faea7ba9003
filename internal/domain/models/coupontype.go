// internal/domain/models/coupontype.go
package models

import "github.com/dalemusser/couponadmin/internal/app/system/normalize"

// CouponType classifies coupons (e.g. percentage, fixed amount).
type CouponType struct {
	ID          string `src:"id"`
	Name        string `src:"name|title" default:"Untitled"`
	Description string `src:"description"`
	Status      string
	CouponCount int64  `src:"coupons_count|coupon_count"`
	Image       string `src:"image|image_url"`
}

func (c *CouponType) Derive(raw map[string]any) {
	c.Status = normalize.StatusFromCode(raw["status"])
	c.Image = imageOrDefault(c.Image)
}
