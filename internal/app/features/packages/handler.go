// internal/app/features/packages/handler.go
package packages

import (
	"context"

	"github.com/dalemusser/couponadmin/internal/app/features/shared/crud"
	"github.com/dalemusser/couponadmin/internal/app/store/remote"
	"github.com/dalemusser/couponadmin/internal/app/system/htmlsanitize"
	"github.com/dalemusser/couponadmin/internal/app/system/normalize"
	"github.com/dalemusser/couponadmin/internal/domain/models"
	"go.uber.org/zap"
)

const basePath = "/coupons/packages"

// Handler serves coupon packages for admins and providers.
type Handler struct {
	List *crud.Handler[models.Package]
	Form *crud.Dialog[packageForm, *packageForm]
	Log  *zap.Logger
}

func NewHandler(stores *remote.Stores, deps crud.Deps) *Handler {
	return &Handler{
		List: crud.New(crud.Config[models.Package]{
			Name:     "packages",
			Singular: "package",
			Title:    "Packages",
			BasePath: basePath,
			Columns:  []string{"Image", "Title", "Provider", "Price", "Coupons", "From", "To", "Status"},
			Row:      row,
			Detail:   detail,
			Filters:  crud.Filters{Sort: true, Status: true},
		}, stores.Packages, deps),
		Form: &crud.Dialog[packageForm, *packageForm]{
			Singular: "package",
			BasePath: basePath,
			Template: "packages_form",
			Files:    []string{"image"},
			Options: func(ctx context.Context) (any, error) {
				return stores.CouponChoices(ctx)
			},
			Create: stores.Packages.Create,
			Deps:   deps,
		},
		Log: deps.Log,
	}
}

func row(p models.Package) crud.Row {
	return crud.Row{
		ID: p.ID,
		Cells: []crud.Cell{
			crud.Image(p.Image),
			crud.Text(p.Title),
			crud.Text(p.ProviderName),
			crud.Text(normalize.Price(p.Price)),
			crud.Text(normalize.Count(p.CouponCount)),
			crud.Text(normalize.Date(p.From)),
			crud.Text(normalize.Date(p.To)),
			crud.Badge(p.Status),
		},
	}
}

func detail(p models.Package) []crud.Field {
	return []crud.Field{
		{Label: "Image", Value: crud.Image(p.Image)},
		{Label: "Title", Value: crud.Text(p.Title)},
		{Label: "Provider", Value: crud.Text(p.ProviderName)},
		{Label: "Description", Value: crud.Rich(htmlsanitize.PrepareForDisplay(p.Description))},
		{Label: "Price", Value: crud.Text(normalize.Price(p.Price))},
		{Label: "Coupons", Value: crud.Text(normalize.Count(p.CouponCount))},
		{Label: "From", Value: crud.Text(normalize.Date(p.From))},
		{Label: "To", Value: crud.Text(normalize.Date(p.To))},
		{Label: "Status", Value: crud.Badge(p.Status)},
	}
}
