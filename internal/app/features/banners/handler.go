// internal/app/features/banners/handler.go
package banners

import (
	"context"

	"github.com/dalemusser/couponadmin/internal/app/features/shared/crud"
	"github.com/dalemusser/couponadmin/internal/app/store/remote"
	"github.com/dalemusser/couponadmin/internal/app/system/htmlsanitize"
	"github.com/dalemusser/couponadmin/internal/app/system/normalize"
	"github.com/dalemusser/couponadmin/internal/domain/models"
	"go.uber.org/zap"
)

// Handler serves home-screen banners.
type Handler struct {
	List *crud.Handler[models.Banner]
	Form *crud.Dialog[bannerForm, *bannerForm]
	Log  *zap.Logger
}

func NewHandler(stores *remote.Stores, deps crud.Deps) *Handler {
	return &Handler{
		List: crud.New(crud.Config[models.Banner]{
			Name:     "banners",
			Singular: "banner",
			Title:    "Banners",
			BasePath: "/banners",
			Columns:  []string{"Image", "Title", "From", "To", "Coupons", "Status"},
			Row:      row,
			Detail:   detail,
			Filters:  crud.Filters{Sort: true, Status: true, Statuses: crud.TwoStateStatuses},
		}, stores.Banners, deps),
		Form: &crud.Dialog[bannerForm, *bannerForm]{
			Singular: "banner",
			BasePath: "/banners",
			Template: "banners_form",
			Files:    []string{"image"},
			Options: func(ctx context.Context) (any, error) {
				return stores.CouponChoices(ctx)
			},
			Create: stores.Banners.Create,
			Deps:   deps,
		},
		Log: deps.Log,
	}
}

func couponCodes(refs []models.CouponRef) []string {
	out := make([]string, 0, len(refs))
	for _, c := range refs {
		out = append(out, c.Name+" ("+c.Code+")")
	}
	return out
}

func row(b models.Banner) crud.Row {
	return crud.Row{
		ID: b.ID,
		Cells: []crud.Cell{
			crud.Image(b.Image),
			crud.Text(b.Title),
			crud.Text(normalize.Date(b.From)),
			crud.Text(normalize.Date(b.To)),
			crud.Text(normalize.Count(int64(len(b.Coupons)))),
			crud.Badge(b.Status),
		},
	}
}

func detail(b models.Banner) []crud.Field {
	return []crud.Field{
		{Label: "Image", Value: crud.Image(b.Image)},
		{Label: "Title", Value: crud.Text(b.Title)},
		{Label: "Description", Value: crud.Rich(htmlsanitize.PrepareForDisplay(b.Description))},
		{Label: "From", Value: crud.Text(normalize.Date(b.From))},
		{Label: "To", Value: crud.Text(normalize.Date(b.To))},
		{Label: "Coupons", Value: crud.List(couponCodes(b.Coupons))},
		{Label: "Status", Value: crud.Badge(b.Status)},
	}
}
