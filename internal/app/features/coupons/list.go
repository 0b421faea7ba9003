package coupons

import (
	"github.com/dalemusser/couponadmin/internal/app/features/shared/crud"
	"github.com/dalemusser/couponadmin/internal/app/system/htmlsanitize"
	"github.com/dalemusser/couponadmin/internal/app/system/normalize"
	"github.com/dalemusser/couponadmin/internal/domain/models"
)

func listConfig() crud.Config[models.Coupon] {
	return crud.Config[models.Coupon]{
		Name:     "coupons",
		Singular: "coupon",
		Title:    "Coupons",
		BasePath: "/coupons",
		Columns:  []string{"Image", "Name", "Code", "Type", "Price", "Used", "Status", "Created"},
		Row:      row,
		Detail:   detail,
		Filters:  crud.Filters{Sort: true, Status: true},
	}
}

func row(c models.Coupon) crud.Row {
	return crud.Row{
		ID: c.ID,
		Cells: []crud.Cell{
			crud.Image(c.Image),
			crud.Text(c.Name),
			crud.Text(c.Code),
			crud.Text(c.TypeName),
			crud.Text(normalize.Price(c.Price)),
			crud.Text(normalize.Count(c.UsageCount)),
			crud.Badge(c.Status),
			crud.Text(normalize.Date(c.CreatedAt)),
		},
	}
}

func detail(c models.Coupon) []crud.Field {
	return []crud.Field{
		{Label: "Image", Value: crud.Image(c.Image)},
		{Label: "Name", Value: crud.Text(c.Name)},
		{Label: "Code", Value: crud.Text(c.Code)},
		{Label: "Type", Value: crud.Text(c.TypeName)},
		{Label: "Provider", Value: crud.Text(c.ProviderName)},
		{Label: "Price", Value: crud.Text(normalize.Price(c.Price))},
		{Label: "Times used", Value: crud.Text(normalize.Count(c.UsageCount))},
		{Label: "Status", Value: crud.Badge(c.Status)},
		{Label: "Created", Value: crud.Text(normalize.Date(c.CreatedAt))},
		{Label: "Description", Value: crud.Rich(htmlsanitize.PrepareForDisplay(c.Description))},
	}
}
