package crud

import "github.com/go-chi/chi/v5"

// Mount registers the list, view and delete routes on r:
//
//	GET  /                list page or table partial
//	POST /bulk-delete     delete the checked rows
//	GET  /{id}            view dialog
//	GET  /{id}/delete     confirm dialog
//	POST /{id}/delete     delete one record
func (h *Handler[T]) Mount(r chi.Router) {
	r.Get("/", h.ServeList)
	r.Get("/{id}", h.ServeView)
	if h.store.CanDelete() {
		r.Post("/bulk-delete", h.HandleBulkDelete)
		r.Get("/{id}/delete", h.ServeConfirmDelete)
		r.Post("/{id}/delete", h.HandleDelete)
	}
}

// Mount registers the dialog routes on r:
//
//	GET  /new                    create dialog
//	POST /                       create
//	GET  /{id}/edit              edit dialog (when Load is set)
//	POST /{id}/edit              update
//	POST /uploads/{id}/cancel    abort a cancellable create
func (d *Dialog[F, P]) Mount(r chi.Router) {
	if d.Create != nil {
		r.Get("/new", d.ServeNew)
		r.Post("/", d.HandleCreate)
	}
	if d.Load != nil && d.Update != nil {
		r.Get("/{id}/edit", d.ServeEdit)
		r.Post("/{id}/edit", d.HandleUpdate)
	}
	if d.Uploads != nil {
		r.Post("/uploads/{id}/cancel", d.HandleCancelUpload)
	}
}
