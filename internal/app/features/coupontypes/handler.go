// internal/app/features/coupontypes/handler.go
package coupontypes

import (
	"github.com/dalemusser/couponadmin/internal/app/features/shared/crud"
	"github.com/dalemusser/couponadmin/internal/app/store/remote"
	"github.com/dalemusser/couponadmin/internal/app/system/apiclient"
	"github.com/dalemusser/couponadmin/internal/app/system/formutil"
	"github.com/dalemusser/couponadmin/internal/app/system/htmlsanitize"
	"github.com/dalemusser/couponadmin/internal/app/system/normalize"
	"github.com/dalemusser/couponadmin/internal/domain/models"
	"go.uber.org/zap"
)

// Handler serves the admin coupon type screens.
type Handler struct {
	List *crud.Handler[models.CouponType]
	Form *crud.Dialog[typeForm, *typeForm]
	Log  *zap.Logger
}

func NewHandler(stores *remote.Stores, deps crud.Deps) *Handler {
	return &Handler{
		List: crud.New(crud.Config[models.CouponType]{
			Name:     "coupon-types",
			Plural:   "coupon types",
			Singular: "coupon type",
			Title:    "Coupon types",
			BasePath: "/coupon-types",
			Columns:  []string{"Image", "Name", "Coupons", "Status"},
			Row:      row,
			Detail:   detail,
			Filters:  crud.Filters{Sort: true, Status: true},
		}, stores.CouponTypes, deps),
		Form: &crud.Dialog[typeForm, *typeForm]{
			Singular: "coupon type",
			BasePath: "/coupon-types",
			Template: "coupontypes_form",
			Files:    []string{"image"},
			Create:   stores.CouponTypes.Create,
			Deps:     deps,
		},
		Log: deps.Log,
	}
}

func row(c models.CouponType) crud.Row {
	return crud.Row{
		ID: c.ID,
		Cells: []crud.Cell{
			crud.Image(c.Image),
			crud.Text(c.Name),
			crud.Text(normalize.Count(c.CouponCount)),
			crud.Badge(c.Status),
		},
	}
}

func detail(c models.CouponType) []crud.Field {
	return []crud.Field{
		{Label: "Image", Value: crud.Image(c.Image)},
		{Label: "Name", Value: crud.Text(c.Name)},
		{Label: "Description", Value: crud.Rich(htmlsanitize.PrepareForDisplay(c.Description))},
		{Label: "Coupons", Value: crud.Text(normalize.Count(c.CouponCount))},
		{Label: "Status", Value: crud.Badge(c.Status)},
	}
}

type typeForm struct {
	Name        string `schema:"name" validate:"required,max=80" label:"Name"`
	Description string `schema:"description" validate:"max=1000" label:"Description"`
}

func (f *typeForm) Check(up formutil.Uploads, editing bool) error {
	return up.Require("image", "Image")
}

func (f *typeForm) Payload(up formutil.Uploads) any {
	body := &apiclient.Form{}
	body.Set("name", f.Name).Set("description", f.Description)
	if img := up.Get("image"); img.Present() {
		body.Attach(img.File())
	}
	return body
}
