// internal/app/features/coupons/handler.go
package coupons

import (
	"context"

	"github.com/dalemusser/couponadmin/internal/app/features/shared/crud"
	"github.com/dalemusser/couponadmin/internal/app/store/remote"
	"github.com/dalemusser/couponadmin/internal/domain/models"
	"go.uber.org/zap"
)

// Handler serves the coupon screens for admins and providers.
type Handler struct {
	List *crud.Handler[models.Coupon]
	Form *crud.Dialog[couponForm, *couponForm]
	Log  *zap.Logger
}

// NewHandler wires the coupon list and dialogs to the API stores.
func NewHandler(stores *remote.Stores, deps crud.Deps) *Handler {
	coupons := stores.Coupons
	return &Handler{
		List: crud.New(listConfig(), coupons, deps),
		Form: &crud.Dialog[couponForm, *couponForm]{
			Singular: "coupon",
			BasePath: "/coupons",
			Template: "coupons_form",
			Files:    []string{"image"},
			Options: func(ctx context.Context) (any, error) {
				return stores.CouponTypeChoices(ctx)
			},
			Load: func(ctx context.Context, id string) (couponForm, error) {
				c, err := coupons.Get(ctx, id)
				if err != nil {
					return couponForm{}, err
				}
				return formFromCoupon(c), nil
			},
			Create: coupons.Create,
			Update: coupons.Update,
			Deps:   deps,
		},
		Log: deps.Log,
	}
}
