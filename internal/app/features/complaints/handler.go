// internal/app/features/complaints/handler.go
package complaints

import (
	"github.com/dalemusser/couponadmin/internal/app/features/shared/crud"
	"github.com/dalemusser/couponadmin/internal/app/store/remote"
	"github.com/dalemusser/couponadmin/internal/app/system/htmlsanitize"
	"github.com/dalemusser/couponadmin/internal/app/system/normalize"
	"github.com/dalemusser/couponadmin/internal/domain/models"
	"go.uber.org/zap"
)

// Handler serves the admin complaint inbox. Complaints are created by
// app users, so the dashboard only reads and deletes them.
type Handler struct {
	List *crud.Handler[models.Complaint]
	Log  *zap.Logger
}

func NewHandler(stores *remote.Stores, deps crud.Deps) *Handler {
	return &Handler{
		List: crud.New(crud.Config[models.Complaint]{
			Name:     "complaints",
			Singular: "complaint",
			Title:    "Complaints",
			BasePath: "/complaints",
			Columns:  []string{"From", "Title", "About", "Subject", "Received"},
			Row:      row,
			Detail:   detail,
			Filters:  crud.Filters{Sort: true},
		}, stores.Complaints, deps),
		Log: deps.Log,
	}
}

func row(c models.Complaint) crud.Row {
	return crud.Row{
		ID: c.ID,
		Cells: []crud.Cell{
			crud.Text(c.UserName),
			crud.Text(c.Title),
			crud.Text(kindLabel(c.ComplainableType)),
			crud.Text(subjectName(c)),
			crud.Text(normalize.Date(c.CreatedAt)),
		},
	}
}

func detail(c models.Complaint) []crud.Field {
	fields := []crud.Field{
		{Label: "From", Value: crud.Text(c.UserName)},
		{Label: "Title", Value: crud.Text(c.Title)},
		{Label: "Complaint", Value: crud.Rich(htmlsanitize.PrepareForDisplay(c.Content))},
		{Label: "About", Value: crud.Text(kindLabel(c.ComplainableType))},
		{Label: "Received", Value: crud.Text(normalize.Date(c.CreatedAt))},
	}
	if s := c.Complainable; s != nil {
		fields = append(fields, crud.Field{Label: "Subject", Value: crud.Text(s.Name)})
		if s.Price != "" {
			fields = append(fields, crud.Field{Label: "Price", Value: crud.Text(normalize.Price(s.Price))})
		}
		if s.Location != "" {
			fields = append(fields, crud.Field{Label: "Location", Value: crud.Text(s.Location)})
		}
		if s.Description != "" {
			fields = append(fields, crud.Field{Label: "Description", Value: crud.Rich(htmlsanitize.PrepareForDisplay(s.Description))})
		}
	}
	return fields
}

func kindLabel(kind string) string {
	switch kind {
	case "provider":
		return "Provider"
	case "package":
		return "Package"
	case "coupon":
		return "Coupon"
	}
	return "Other"
}

func subjectName(c models.Complaint) string {
	if c.Complainable != nil {
		return c.Complainable.Name
	}
	return "Unknown"
}
