// internal/domain/models/promotion.go
package models

import "github.com/dalemusser/couponadmin/internal/app/system/normalize"

// Banner is a home-screen promotion with attached coupons.
type Banner struct {
	ID          string      `src:"id"`
	Title       string      `src:"title|name" default:"Untitled"`
	Description string      `src:"description"`
	From        string      `src:"from|start_date"`
	To          string      `src:"to|end_date"`
	Image       string      `src:"image|image_url"`
	Status      string
	Coupons     []CouponRef `src:"coupons" default:"[]"`
}

func (b *Banner) Derive(raw map[string]any) {
	b.Status = normalizeTwoState(raw)
	b.Image = imageOrDefault(b.Image)
}

// SeasonalEvent is a dated campaign (e.g. Ramadan, Black Friday).
type SeasonalEvent struct {
	ID          string      `src:"id"`
	Name        string      `src:"name|title" default:"Untitled"`
	Description string      `src:"description"`
	From        string      `src:"from|start_date"`
	To          string      `src:"to|end_date"`
	Image       string      `src:"image|image_url"`
	Status      string
	Coupons     []CouponRef `src:"coupons" default:"[]"`
}

func (e *SeasonalEvent) Derive(raw map[string]any) {
	e.Status = normalizeTwoState(raw)
	e.Image = imageOrDefault(e.Image)
}

func normalizeTwoState(raw map[string]any) string {
	return normalize.TwoStateStatus(raw["status"])
}
