package banners

import (
	"github.com/dalemusser/couponadmin/internal/app/features/shared/crud"
	"github.com/dalemusser/couponadmin/internal/app/system/apiclient"
	"github.com/dalemusser/couponadmin/internal/app/system/formutil"
)

type bannerForm struct {
	Title       string         `schema:"title" validate:"required,max=120" label:"Title"`
	Description string         `schema:"description" validate:"max=1000" label:"Description"`
	From        string         `schema:"from" validate:"required,date" label:"From"`
	To          string         `schema:"to" validate:"required,date,dateafter=From" label:"To"`
	Coupons     crud.Selection `schema:"coupons" validate:"dive,numeric" label:"Coupons"`
}

func (f *bannerForm) Check(up formutil.Uploads, editing bool) error {
	return up.Require("image", "Image")
}

func (f *bannerForm) Payload(up formutil.Uploads) any {
	body := &apiclient.Form{}
	body.Set("title", f.Title).
		Set("description", f.Description).
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
