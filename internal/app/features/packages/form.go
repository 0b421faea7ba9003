package packages

import (
	"github.com/dalemusser/couponadmin/internal/app/features/shared/crud"
	"github.com/dalemusser/couponadmin/internal/app/system/apiclient"
	"github.com/dalemusser/couponadmin/internal/app/system/formutil"
)

type packageForm struct {
	Title       string         `schema:"title" validate:"required,max=120" label:"Title"`
	Description string         `schema:"description" validate:"max=2000" label:"Description"`
	Price       string         `schema:"price" validate:"required,price" label:"Price"`
	From        string         `schema:"from" validate:"required,date" label:"From"`
	To          string         `schema:"to" validate:"required,date,dateafter=From" label:"To"`
	Coupons     crud.Selection `schema:"coupons" validate:"required,dive,numeric" label:"Coupons"`
}

func (f *packageForm) Check(up formutil.Uploads, editing bool) error {
	return up.Require("image", "Image")
}

func (f *packageForm) Payload(up formutil.Uploads) any {
	body := &apiclient.Form{}
	body.Set("title", f.Title).
		Set("description", f.Description).
		Set("price", f.Price).
		Set("from", f.From).
		Set("to", f.To)
	for _, id := range f.Coupons {
		body.Set("coupons[]", id)
	}
	if img := up.Get("image"); img.Present() {
		body.Attach(img.File())
	}
	return body
}
