package crud

import (
	"context"
	"net/http"

	"github.com/dalemusser/couponadmin/internal/app/system/apiclient"
	"github.com/dalemusser/couponadmin/internal/app/system/formutil"
	"github.com/dalemusser/couponadmin/internal/app/system/timeouts"
	"github.com/dalemusser/couponadmin/internal/app/system/viewdata"
	"github.com/dalemusser/waffle/pantry/templates"
	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

type viewData struct {
	formutil.Base

	Singular  string
	BasePath  string
	ID        string
	Fields    []Field
	CanDelete bool
	CanEdit   bool
	LoadErr   string
}

// ServeView renders the read-only detail dialog for one record.
func (h *Handler[T]) ServeView(w http.ResponseWriter, r *http.Request) {
	if toDialogOnly(w, r, h.cfg.BasePath) {
		return
	}
	id := chi.URLParam(r, "id")

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Short())
	defer cancel()

	data := viewData{
		Singular:  h.cfg.Singular,
		BasePath:  h.cfg.BasePath,
		ID:        id,
		CanDelete: h.store.CanDelete(),
		CanEdit:   h.store.CanUpdate(),
	}
	formutil.SetBase(&data.Base, r, "View "+h.cfg.Singular, h.cfg.BasePath)

	item, err := h.store.Get(ctx, id)
	if err != nil {
		h.deps.Log.Warn("load record failed",
			zap.String("entity", h.cfg.Singular),
			zap.String("id", id),
			zap.Int("status", apiclient.StatusOf(err)),
			zap.Error(err))
		data.LoadErr = apiclient.Describe(err)
		data.SetError(data.LoadErr)
		templates.RenderSnippet(w, "crud_view", data)
		return
	}

	if h.cfg.Detail != nil {
		data.Fields = h.cfg.Detail(item)
		if viewdata.IsRTL(viewdata.Locale(r)) {
			data.Fields = viewdata.DisplayOrder(viewdata.Locale(r), data.Fields)
		}
	}
	templates.RenderSnippet(w, "crud_view", data)
}
