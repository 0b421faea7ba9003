// internal/app/features/categories/handler.go
package categories

import (
	"context"

	"github.com/dalemusser/couponadmin/internal/app/features/shared/crud"
	"github.com/dalemusser/couponadmin/internal/app/store/remote"
	"github.com/dalemusser/couponadmin/internal/domain/models"
	"go.uber.org/zap"
)

// Handler serves the admin category screens.
type Handler struct {
	List *crud.Handler[models.Category]
	Form *crud.Dialog[categoryForm, *categoryForm]
	Log  *zap.Logger
}

// NewHandler wires categories to the API. The dialog offers every
// provider for assignment.
func NewHandler(stores *remote.Stores, deps crud.Deps) *Handler {
	cats := stores.Categories
	return &Handler{
		List: crud.New(crud.Config[models.Category]{
			Name:     "categories",
			Singular: "category",
			Title:    "Categories",
			BasePath: "/categories",
			Columns:  []string{"ID", "Name", "Providers"},
			Row:      row,
			Detail:   detail,
			Filters:  crud.Filters{Sort: true},
		}, cats, deps),
		Form: &crud.Dialog[categoryForm, *categoryForm]{
			Singular: "category",
			BasePath: "/categories",
			Template: "categories_form",
			Options: func(ctx context.Context) (any, error) {
				return stores.ProviderChoices(ctx)
			},
			Load: func(ctx context.Context, id string) (categoryForm, error) {
				c, err := cats.Get(ctx, id)
				if err != nil {
					return categoryForm{}, err
				}
				f := categoryForm{Name: c.Name}
				for _, p := range c.Providers {
					f.Providers = append(f.Providers, p.ID)
				}
				return f, nil
			},
			Create: cats.Create,
			Update: cats.Update,
			Deps:   deps,
		},
		Log: deps.Log,
	}
}

func row(c models.Category) crud.Row {
	return crud.Row{
		ID: c.ID,
		Cells: []crud.Cell{
			crud.Text(c.ID),
			crud.Text(c.Name),
			crud.List(c.ProviderNames()),
		},
	}
}

func detail(c models.Category) []crud.Field {
	return []crud.Field{
		{Label: "Name", Value: crud.Text(c.Name)},
		{Label: "Providers", Value: crud.List(c.ProviderNames())},
	}
}
