package crud

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/dalemusser/couponadmin/internal/app/system/apiclient"
	"github.com/dalemusser/couponadmin/internal/app/system/auth"
	"github.com/dalemusser/couponadmin/internal/app/system/flash"
	"github.com/dalemusser/couponadmin/internal/app/system/formutil"
	"github.com/dalemusser/couponadmin/internal/app/system/inputval"
	"github.com/dalemusser/couponadmin/internal/app/system/timeouts"
	"github.com/dalemusser/waffle/pantry/templates"
	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

// Form is a dialog's decoded input. Struct tags carry the schema:
// `schema` names the form field, `validate` the rules and `label` the
// name used in messages.
type Form interface {
	// Check runs the rules tags cannot express, such as required
	// uploads. editing is true for the edit dialog.
	Check(up formutil.Uploads, editing bool) error
	// Payload builds the API request body: an *apiclient.Form when
	// files are attached, otherwise any JSON value.
	Payload(up formutil.Uploads) any
}

// Dialog serves the create and edit dialogs of one entity. F is the form
// struct; P is *F.
type Dialog[F any, P interface {
	*F
	Form
}] struct {
	Singular string
	BasePath string
	// Template is the snippet rendering the dialog body.
	Template string
	// Files are the multipart file fields the form may carry.
	Files []string
	// Uploads, when set, makes create cancellable: the form carries an
	// upload_id that POST {BasePath}/uploads/{id}/cancel aborts.
	Uploads *apiclient.Uploads

	// Options loads select-box choices for the dialog. Optional.
	Options func(ctx context.Context) (any, error)
	// Load prefills the edit dialog. Nil disables editing.
	Load   func(ctx context.Context, id string) (F, error)
	Create func(ctx context.Context, body any) (string, error)
	Update func(ctx context.Context, id string, body any) error

	Deps Deps
}

type formData[F any] struct {
	formutil.Base

	Singular  string
	Action    string
	Editing   bool
	Multipart bool
	UploadID  string
	CancelURL string
	Toasts    []flash.Toast

	Input   F
	Options any
}

// ServeNew renders an empty create dialog.
func (d *Dialog[F, P]) ServeNew(w http.ResponseWriter, r *http.Request) {
	if toDialogOnly(w, r, d.BasePath) {
		return
	}
	var in F
	data := d.newData(r, in, "")
	d.render(w, r, &data)
}

// HandleCreate validates the submission and creates the record. Invalid
// input re-renders the dialog with the entered values and no API call.
func (d *Dialog[F, P]) HandleCreate(w http.ResponseWriter, r *http.Request) {
	var in F
	up, err := formutil.Decode(r, &in, d.Files...)
	data := d.newData(r, in, "")
	if d.Uploads != nil {
		data.UploadID = r.PostFormValue("upload_id")
		data.CancelURL = d.BasePath + "/uploads/" + data.UploadID + "/cancel"
	}
	if !d.valid(w, r, &data, up, err, false) {
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), d.timeout(up))
	defer cancel()
	if d.Uploads != nil && data.UploadID != "" {
		var done func()
		ctx, done = d.Uploads.Track(ctx, data.UploadID, uploadOwner(r))
		defer done()
	}

	id, err := d.Create(ctx, P(&in).Payload(up))
	if err != nil {
		if apiclient.Cancelled(err) {
			d.Deps.Audit.UploadCanceled(r.Context(), r, d.Singular, data.UploadID)
			d.Deps.Flash.Success(w, r, "Upload canceled.")
			finish(w, r, d.BasePath, "")
			return
		}
		d.failed(w, r, &data, "create", "", err)
		return
	}

	d.Deps.Audit.EntityCreated(ctx, r, d.Singular, id)
	d.Deps.Flash.Success(w, r, fmt.Sprintf("Created %s.", d.Singular))
	finish(w, r, d.BasePath, "")
}

// ServeEdit renders the edit dialog prefilled from the API.
func (d *Dialog[F, P]) ServeEdit(w http.ResponseWriter, r *http.Request) {
	if toDialogOnly(w, r, d.BasePath) {
		return
	}
	id := chi.URLParam(r, "id")
	if d.Load == nil {
		http.NotFound(w, r)
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Short())
	defer cancel()

	in, err := d.Load(ctx, id)
	data := d.newData(r, in, id)
	if err != nil {
		d.Deps.Log.Warn("load record for edit failed",
			zap.String("entity", d.Singular),
			zap.String("id", id),
			zap.Error(err))
		data.SetError(apiclient.Describe(err))
	}
	d.render(w, r, &data)
}

// HandleUpdate validates the submission and updates the record.
func (d *Dialog[F, P]) HandleUpdate(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if d.Update == nil {
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}

	var in F
	up, err := formutil.Decode(r, &in, d.Files...)
	data := d.newData(r, in, id)
	if !d.valid(w, r, &data, up, err, true) {
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), d.timeout(up))
	defer cancel()

	if err := d.Update(ctx, id, P(&in).Payload(up)); err != nil {
		d.failed(w, r, &data, "update", id, err)
		return
	}

	d.Deps.Audit.EntityUpdated(ctx, r, d.Singular, id)
	d.Deps.Flash.Success(w, r, fmt.Sprintf("Updated %s #%s.", d.Singular, id))
	finish(w, r, d.BasePath, "")
}

// HandleCancelUpload aborts an in-flight create started with the given
// upload id by the same user. Anyone else gets 404.
func (d *Dialog[F, P]) HandleCancelUpload(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if d.Uploads == nil || !d.Uploads.Cancel(id, uploadOwner(r)) {
		w.WriteHeader(http.StatusNotFound)
		return
	}
	d.Deps.Log.Info("upload canceled", zap.String("entity", d.Singular), zap.String("upload_id", id))
	w.WriteHeader(http.StatusNoContent)
}

func uploadOwner(r *http.Request) string {
	u, _ := auth.CurrentUser(r)
	return auth.Owner(u)
}

func (d *Dialog[F, P]) newData(r *http.Request, in F, id string) formData[F] {
	data := formData[F]{
		Singular:  d.Singular,
		Action:    d.BasePath,
		Editing:   id != "",
		Multipart: len(d.Files) > 0,
		Input:     in,
	}
	title := "New " + d.Singular
	if id != "" {
		data.Action = d.BasePath + "/" + id + "/edit"
		title = "Edit " + d.Singular
	}
	if d.Uploads != nil && id == "" {
		data.UploadID = apiclient.NewID()
		data.CancelURL = d.BasePath + "/uploads/" + data.UploadID + "/cancel"
	}
	formutil.SetBase(&data.Base, r, title, d.BasePath)
	return data
}

// valid reports whether the submission may be sent. On failure the
// dialog has been re-rendered.
func (d *Dialog[F, P]) valid(w http.ResponseWriter, r *http.Request, data *formData[F], up formutil.Uploads, decodeErr error, editing bool) bool {
	if decodeErr != nil {
		data.SetError(decodeErr.Error())
		d.render(w, r, data)
		return false
	}
	if res := inputval.Validate(&data.Input); res.HasErrors() {
		data.SetFieldErrors(res.ByField(), res.First())
		d.render(w, r, data)
		return false
	}
	if err := P(&data.Input).Check(up, editing); err != nil {
		data.SetError(err.Error())
		d.render(w, r, data)
		return false
	}
	return true
}

// failed keeps the dialog open with the server's message.
func (d *Dialog[F, P]) failed(w http.ResponseWriter, r *http.Request, data *formData[F], op, id string, err error) {
	d.Deps.Log.Warn(op+" failed",
		zap.String("entity", d.Singular),
		zap.String("id", id),
		zap.Int("status", apiclient.StatusOf(err)),
		zap.Error(err))
	msg := apiclient.Describe(err)
	data.SetError(msg)
	data.Toasts = append(data.Toasts, flash.Toast{Kind: flash.KindError, Message: msg})
	d.render(w, r, data)
}

func (d *Dialog[F, P]) render(w http.ResponseWriter, r *http.Request, data *formData[F]) {
	if d.Options != nil {
		ctx, cancel := context.WithTimeout(r.Context(), timeouts.Short())
		opts, err := d.Options(ctx)
		cancel()
		if err != nil {
			d.Deps.Log.Warn("load dialog options failed", zap.String("entity", d.Singular), zap.Error(err))
		}
		data.Options = opts
	}
	templates.RenderSnippet(w, d.Template, data)
}

func (d *Dialog[F, P]) timeout(up formutil.Uploads) time.Duration {
	if len(up) > 0 {
		return timeouts.Upload()
	}
	return timeouts.Medium()
}
