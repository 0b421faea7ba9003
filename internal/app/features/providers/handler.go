// internal/app/features/providers/handler.go
package providers

import (
	"github.com/dalemusser/couponadmin/internal/app/features/shared/crud"
	"github.com/dalemusser/couponadmin/internal/app/store/remote"
	"github.com/dalemusser/couponadmin/internal/domain/models"
	"go.uber.org/zap"
)

// Handler serves the admin provider directory. Providers sign up
// through registration, so there is no create dialog.
type Handler struct {
	List *crud.Handler[models.Provider]
	Log  *zap.Logger
}

func NewHandler(stores *remote.Stores, deps crud.Deps) *Handler {
	return &Handler{
		List: crud.New(crud.Config[models.Provider]{
			Name:     "providers",
			Singular: "provider",
			Title:    "Providers",
			BasePath: "/providers",
			Columns:  []string{"Logo", "Name", "Email", "Phone", "Location", "Status"},
			Row:      row,
			Detail:   detail,
			Filters:  crud.Filters{Sort: true, Status: true, Statuses: crud.TwoStateStatuses},
		}, stores.Providers, deps),
		Log: deps.Log,
	}
}

func orDash(s string) string {
	if s == "" {
		return "-"
	}
	return s
}

func row(p models.Provider) crud.Row {
	return crud.Row{
		ID: p.ID,
		Cells: []crud.Cell{
			crud.Image(p.Image),
			crud.Text(p.Name),
			crud.Text(orDash(p.Email)),
			crud.Text(orDash(p.Phone)),
			crud.Text(orDash(p.Location)),
			crud.Badge(p.Status),
		},
	}
}

func detail(p models.Provider) []crud.Field {
	return []crud.Field{
		{Label: "Logo", Value: crud.Image(p.Image)},
		{Label: "Name", Value: crud.Text(p.Name)},
		{Label: "Email", Value: crud.Text(orDash(p.Email))},
		{Label: "Phone", Value: crud.Text(orDash(p.Phone))},
		{Label: "Location", Value: crud.Text(orDash(p.Location))},
		{Label: "Status", Value: crud.Badge(p.Status)},
	}
}
