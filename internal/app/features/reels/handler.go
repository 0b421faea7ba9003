// internal/app/features/reels/handler.go
package reels

import (
	"strings"
	"unicode/utf8"

	"github.com/dalemusser/couponadmin/internal/app/features/shared/crud"
	"github.com/dalemusser/couponadmin/internal/app/store/remote"
	"github.com/dalemusser/couponadmin/internal/app/system/apiclient"
	"github.com/dalemusser/couponadmin/internal/app/system/htmlsanitize"
	"github.com/dalemusser/couponadmin/internal/app/system/normalize"
	"github.com/dalemusser/couponadmin/internal/domain/models"
	"go.uber.org/zap"
)

// captionPreview bounds the description shown in the table.
const captionPreview = 60

// Handler serves reels. Reel uploads are large, so creating one can be
// cancelled from the dialog while the request is in flight.
type Handler struct {
	List *crud.Handler[models.Reel]
	Form *crud.Dialog[reelForm, *reelForm]
	Log  *zap.Logger
}

func NewHandler(stores *remote.Stores, uploads *apiclient.Uploads, deps crud.Deps) *Handler {
	return &Handler{
		List: crud.New(crud.Config[models.Reel]{
			Name:     "reels",
			Singular: "reel",
			Title:    "Reels",
			BasePath: "/reels",
			Columns:  []string{"Media", "Provider", "Caption", "Date"},
			Row:      row,
			Detail:   detail,
			Filters:  crud.Filters{Sort: true},
		}, stores.Reels, deps),
		Form: &crud.Dialog[reelForm, *reelForm]{
			Singular: "reel",
			BasePath: "/reels",
			Template: "reels_form",
			Files:    []string{"file"},
			Uploads:  uploads,
			Create:   stores.Reels.Create,
			Deps:     deps,
		},
		Log: deps.Log,
	}
}

func media(r models.Reel) crud.Cell {
	if r.IsVideo() {
		return crud.Video(r.MediaPath)
	}
	return crud.Image(r.MediaPath)
}

func row(r models.Reel) crud.Row {
	return crud.Row{
		ID: r.ID,
		Cells: []crud.Cell{
			media(r),
			crud.Text(r.ProviderName),
			crud.Text(preview(r.Description)),
			crud.Text(normalize.Date(r.Date)),
		},
	}
}

func detail(r models.Reel) []crud.Field {
	return []crud.Field{
		{Label: "Media", Value: media(r)},
		{Label: "Provider", Value: crud.Text(r.ProviderName)},
		{Label: "Caption", Value: crud.Rich(htmlsanitize.PrepareForDisplay(r.Description))},
		{Label: "Date", Value: crud.Text(normalize.Date(r.Date))},
	}
}

func preview(s string) string {
	s = strings.Join(strings.Fields(s), " ")
	if utf8.RuneCountInString(s) <= captionPreview {
		return s
	}
	return string([]rune(s)[:captionPreview]) + "…"
}
