// internal/app/features/redeems/handler.go
package redeems

import (
	"github.com/dalemusser/couponadmin/internal/app/features/shared/crud"
	"github.com/dalemusser/couponadmin/internal/app/store/remote"
	"github.com/dalemusser/couponadmin/internal/app/system/htmlsanitize"
	"github.com/dalemusser/couponadmin/internal/app/system/normalize"
	"github.com/dalemusser/couponadmin/internal/domain/models"
	"go.uber.org/zap"
)

// Handler lists coupon redemptions. The API scopes the list to the
// signed-in provider; admins see every redemption.
type Handler struct {
	List *crud.Handler[models.Redeem]
	Log  *zap.Logger
}

func NewHandler(stores *remote.Stores, deps crud.Deps) *Handler {
	return &Handler{
		List: crud.New(crud.Config[models.Redeem]{
			Name:     "redeems",
			Plural:   "redemptions",
			Singular: "redemption",
			Title:    "Redemptions",
			BasePath: "/redeems",
			Columns:  []string{"Coupon", "Code", "Customer", "Provider", "Amount", "Redeemed"},
			Row:      row,
			Detail:   detail,
			Filters:  crud.Filters{Sort: true},
		}, stores.Redeems, deps),
		Log: deps.Log,
	}
}

func row(r models.Redeem) crud.Row {
	return crud.Row{
		ID: r.ID,
		Cells: []crud.Cell{
			crud.Text(r.CouponName),
			crud.Text(r.CouponCode),
			crud.Text(r.CustomerName),
			crud.Text(r.ProviderName),
			crud.Text(normalize.Price(r.Amount)),
			crud.Text(normalize.Date(r.RedeemDate)),
		},
	}
}

func detail(r models.Redeem) []crud.Field {
	fields := []crud.Field{
		{Label: "Coupon", Value: crud.Text(r.CouponName)},
		{Label: "Code", Value: crud.Text(r.CouponCode)},
		{Label: "Coupon price", Value: crud.Text(normalize.Price(r.CouponPrice))},
		{Label: "Customer", Value: crud.Text(r.CustomerName)},
	}
	if r.CustomerEmail != "" {
		fields = append(fields, crud.Field{Label: "Email", Value: crud.Text(r.CustomerEmail)})
	}
	if r.CustomerPhone != "" {
		fields = append(fields, crud.Field{Label: "Phone", Value: crud.Text(r.CustomerPhone)})
	}
	if r.PurchaseKey != "" {
		fields = append(fields, crud.Field{Label: "Purchase key", Value: crud.Text(r.PurchaseKey)})
	}
	if r.CouponDescription != "" {
		fields = append(fields, crud.Field{Label: "Description", Value: crud.Rich(htmlsanitize.PrepareForDisplay(r.CouponDescription))})
	}
	return append(fields,
		crud.Field{Label: "Provider", Value: crud.Text(r.ProviderName)},
		crud.Field{Label: "Amount", Value: crud.Text(normalize.Price(r.Amount))},
		crud.Field{Label: "Redeemed", Value: crud.Text(normalize.Date(r.RedeemDate))},
	)
}
