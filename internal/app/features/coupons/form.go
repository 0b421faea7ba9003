package coupons

import (
	"strconv"

	"github.com/dalemusser/couponadmin/internal/app/system/apiclient"
	"github.com/dalemusser/couponadmin/internal/app/system/formutil"
	"github.com/dalemusser/couponadmin/internal/app/system/normalize"
	"github.com/dalemusser/couponadmin/internal/domain/models"
)

type couponForm struct {
	Name        string `schema:"name" validate:"required,max=120" label:"Name"`
	Code        string `schema:"code" validate:"required,max=40" label:"Code"`
	TypeID      string `schema:"coupon_type_id" validate:"required" label:"Coupon type"`
	Price       string `schema:"price" validate:"required,price" label:"Price"`
	Status      string `schema:"status" validate:"omitempty,oneof=active expired pending" label:"Status"`
	Description string `schema:"description" validate:"max=2000" label:"Description"`
}

// Check requires an image on create. Edits keep the current image when
// none is chosen.
func (f *couponForm) Check(up formutil.Uploads, editing bool) error {
	if editing {
		return nil
	}
	return up.Require("image", "Image")
}

func (f *couponForm) Payload(up formutil.Uploads) any {
	body := &apiclient.Form{}
	body.Set("name", f.Name).
		Set("code", f.Code).
		Set("coupon_type_id", f.TypeID).
		Set("price", f.Price).
		Set("description", f.Description)
	if code, ok := normalize.StatusCode(f.Status); ok {
		body.Set("status", strconv.Itoa(code))
	}
	if img := up.Get("image"); img.Present() {
		body.Attach(img.File())
	}
	return body
}

func formFromCoupon(c models.Coupon) couponForm {
	return couponForm{
		Name:        c.Name,
		Code:        c.Code,
		TypeID:      c.TypeID,
		Price:       c.Price,
		Status:      c.Status,
		Description: c.Description,
	}
}
