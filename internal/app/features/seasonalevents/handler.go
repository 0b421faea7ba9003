// internal/app/features/seasonalevents/handler.go
package seasonalevents

import (
	"context"

	"github.com/dalemusser/couponadmin/internal/app/features/shared/crud"
	"github.com/dalemusser/couponadmin/internal/app/store/remote"
	"github.com/dalemusser/couponadmin/internal/app/system/formutil"
	"github.com/dalemusser/couponadmin/internal/app/system/htmlsanitize"
	"github.com/dalemusser/couponadmin/internal/app/system/normalize"
	"github.com/dalemusser/couponadmin/internal/domain/models"
	"go.uber.org/zap"
)

// Handler serves seasonal campaigns. Events carry no image, so the
// create dialog posts JSON.
type Handler struct {
	List *crud.Handler[models.SeasonalEvent]
	Form *crud.Dialog[eventForm, *eventForm]
	Log  *zap.Logger
}

func NewHandler(stores *remote.Stores, deps crud.Deps) *Handler {
	return &Handler{
		List: crud.New(crud.Config[models.SeasonalEvent]{
			Name:     "seasonal-events",
			Plural:   "seasonal events",
			Singular: "seasonal event",
			Title:    "Seasonal events",
			BasePath: "/seasonal-events",
			Columns:  []string{"Name", "From", "To", "Coupons", "Status"},
			Row:      row,
			Detail:   detail,
			Filters:  crud.Filters{Sort: true, Status: true, Statuses: crud.TwoStateStatuses},
		}, stores.SeasonalEvents, deps),
		Form: &crud.Dialog[eventForm, *eventForm]{
			Singular: "seasonal event",
			BasePath: "/seasonal-events",
			Template: "seasonalevents_form",
			Options: func(ctx context.Context) (any, error) {
				return stores.CouponChoices(ctx)
			},
			Create: stores.SeasonalEvents.Create,
			Deps:   deps,
		},
		Log: deps.Log,
	}
}

func row(e models.SeasonalEvent) crud.Row {
	return crud.Row{
		ID: e.ID,
		Cells: []crud.Cell{
			crud.Text(e.Name),
			crud.Text(normalize.Date(e.From)),
			crud.Text(normalize.Date(e.To)),
			crud.Text(normalize.Count(int64(len(e.Coupons)))),
			crud.Badge(e.Status),
		},
	}
}

func detail(e models.SeasonalEvent) []crud.Field {
	names := make([]string, 0, len(e.Coupons))
	for _, c := range e.Coupons {
		names = append(names, c.Name)
	}
	return []crud.Field{
		{Label: "Name", Value: crud.Text(e.Name)},
		{Label: "Description", Value: crud.Rich(htmlsanitize.PrepareForDisplay(e.Description))},
		{Label: "From", Value: crud.Text(normalize.Date(e.From))},
		{Label: "To", Value: crud.Text(normalize.Date(e.To))},
		{Label: "Coupons", Value: crud.List(names)},
		{Label: "Status", Value: crud.Badge(e.Status)},
	}
}

type eventForm struct {
	Name        string         `schema:"name" validate:"required,max=120" label:"Name"`
	Description string         `schema:"description" validate:"max=1000" label:"Description"`
	From        string         `schema:"from" validate:"required,date" label:"From"`
	To          string         `schema:"to" validate:"required,date,dateafter=From" label:"To"`
	Coupons     crud.Selection `schema:"coupons" validate:"dive,numeric" label:"Coupons"`
}

func (f *eventForm) Check(_ formutil.Uploads, _ bool) error { return nil }

type eventPayload struct {
	Name        string   `json:"name"`
	Description string   `json:"description"`
	From        string   `json:"from"`
	To          string   `json:"to"`
	Coupons     []string `json:"coupons"`
}

func (f *eventForm) Payload(_ formutil.Uploads) any {
	coupons := []string(f.Coupons)
	if coupons == nil {
		coupons = []string{}
	}
	return eventPayload{
		Name:        f.Name,
		Description: f.Description,
		From:        f.From,
		To:          f.To,
		Coupons:     coupons,
	}
}
