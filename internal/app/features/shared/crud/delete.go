package crud

import (
	"context"
	"fmt"
	"net/http"

	"github.com/dalemusser/couponadmin/internal/app/system/apiclient"
	"github.com/dalemusser/couponadmin/internal/app/system/formutil"
	"github.com/dalemusser/couponadmin/internal/app/system/listctl"
	"github.com/dalemusser/couponadmin/internal/app/system/timeouts"
	"github.com/dalemusser/waffle/pantry/templates"
	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

type confirmData struct {
	formutil.Base

	Singular string
	Action   string
	IDs      []string
	Return   string
}

// ServeConfirmDelete renders the delete confirmation dialog for one
// record.
func (h *Handler[T]) ServeConfirmDelete(w http.ResponseWriter, r *http.Request) {
	if toDialogOnly(w, r, h.cfg.BasePath) {
		return
	}
	id := chi.URLParam(r, "id")
	data := confirmData{
		Singular: h.cfg.Singular,
		Action:   h.cfg.BasePath + "/" + id + "/delete",
		IDs:      []string{id},
		Return:   r.URL.Query().Get("return"),
	}
	formutil.SetBase(&data.Base, r, "Delete "+h.cfg.Singular, h.cfg.BasePath)
	templates.RenderSnippet(w, "crud_confirm_delete", data)
}

// HandleDelete deletes one record. The outcome is reported as a toast.
func (h *Handler[T]) HandleDelete(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if !h.store.CanDelete() {
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Medium())
	defer cancel()

	err := h.store.Delete(ctx, id)
	h.deps.Audit.EntityDeleted(ctx, r, h.cfg.Singular, id, err)
	if err != nil {
		h.deps.Log.Warn("delete failed",
			zap.String("entity", h.cfg.Singular),
			zap.String("id", id),
			zap.Int("status", apiclient.StatusOf(err)),
			zap.Error(err))
		h.deps.Flash.APIError(w, r, err)
	} else {
		h.deps.Flash.Success(w, r, fmt.Sprintf("Deleted %s #%s.", h.cfg.Singular, id))
	}
	finish(w, r, h.cfg.BasePath, id)
}

// HandleBulkDelete deletes every selected record concurrently and
// reports one aggregated toast. Each failure names its id. The list
// then reloads from page 1 with the selection cleared.
func (h *Handler[T]) HandleBulkDelete(w http.ResponseWriter, r *http.Request) {
	if !h.store.CanDelete() {
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}
	ids := formutil.IDs(r, "ids")
	if len(ids) == 0 {
		h.deps.Flash.Error(w, r, fmt.Sprintf("Select at least one %s to delete.", h.cfg.Singular))
		finish(w, r, h.cfg.BasePath, "")
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Long())
	defer cancel()

	res := listctl.BulkDelete(ctx, ids, h.deps.BulkConcurrency, h.store.Delete)
	h.deps.Audit.BulkDeleted(ctx, r, h.cfg.Singular, len(res.Succeeded), len(res.Failed))

	msg := res.Message(h.cfg.Plural)
	if res.OK() {
		h.deps.Flash.Success(w, r, msg)
	} else {
		h.deps.Log.Warn("bulk delete partially failed",
			zap.String("entity", h.cfg.Singular),
			zap.Int("succeeded", len(res.Succeeded)),
			zap.Int("failed", len(res.Failed)))
		h.deps.Flash.Error(w, r, msg)
	}
	finishFirstPage(w, r, h.cfg.BasePath)
}
