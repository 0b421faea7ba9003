// internal/domain/models/redeem.go
package models

// Redeem is one coupon redemption by a customer.
type Redeem struct {
	ID                string `src:"id"`
	CouponName        string `src:"coupon.name|coupon_name" default:"Untitled"`
	CouponCode        string `src:"coupon.code|coupon_code" default:"Unknown"`
	CouponDescription string `src:"coupon.description"`
	CouponPrice       string `src:"coupon.price|price" default:"0"`
	CustomerName      string `src:"user.name|customer.name|customer_name" default:"Unknown"`
	CustomerEmail     string `src:"user.email|customer.email|customer_email"`
	CustomerPhone     string `src:"user.phone|customer.phone|customer_phone"`
	PurchaseKey       string `src:"purchase_key|key|code"`
	Amount            string `src:"amount|total" default:"0"`
	RedeemDate        string `src:"redeemed_at|redeem_date|created_at"`
	ProviderName      string `src:"coupon.provider.name|provider.name|provider_name" default:"Unknown"`
}
