// Package formutil decodes mutation dialog submissions and carries what a
// dialog needs to re-render after a failed submit: the entered values and
// the error.
//
//	var in couponForm
//	up, err := formutil.Decode(r, &in, "image")
//	if res := inputval.Validate(in); res.HasErrors() {
//		data.SetError(res.First())
//		...
//	}
package formutil

import (
	"errors"
	"fmt"
	"html/template"
	"io"
	"mime/multipart"
	"net/http"
	"sort"
	"strings"

	"github.com/dalemusser/couponadmin/internal/app/system/apiclient"
	"github.com/dalemusser/couponadmin/internal/app/system/authz"
	"github.com/dalemusser/couponadmin/internal/app/system/limits"
	"github.com/dalemusser/waffle/pantry/httpnav"
	"github.com/gorilla/csrf"
	"github.com/gorilla/schema"
)

// MaxUploadBytes bounds a multipart dialog submission.
const MaxUploadBytes = limits.MaxUploadSize

var decoder = func() *schema.Decoder {
	d := schema.NewDecoder()
	d.IgnoreUnknownKeys(true)
	d.ZeroEmpty(true)
	return d
}()

// Base contains common fields for dialog pages.
type Base struct {
	Title       string
	IsLoggedIn  bool
	Role        string
	BackURL     string
	CurrentPath string
	CSRFToken   string
	Error       template.HTML
	FieldErrors map[string]string
}

// SetBase populates the common Base fields from the request.
func SetBase(b *Base, r *http.Request, title, backDefault string) {
	role, ok := authz.UserCtx(r)
	b.Title = title
	b.IsLoggedIn = ok
	b.Role = role
	b.BackURL = httpnav.ResolveBackURL(r, backDefault)
	b.CurrentPath = httpnav.CurrentPath(r)
	b.CSRFToken = csrf.Token(r)
}

// SetError sets the error message on a Base struct.
func (b *Base) SetError(msg string) {
	b.Error = template.HTML(template.HTMLEscapeString(msg))
}

// SetFieldErrors records per-field validation messages and shows the
// first one as the dialog error.
func (b *Base) SetFieldErrors(fields map[string]string, first string) {
	b.FieldErrors = fields
	b.SetError(first)
}

// Upload is a file part taken from a multipart submission.
type Upload struct {
	Field  string
	Header *multipart.FileHeader
}

// Present reports whether a non-empty file was chosen.
func (u *Upload) Present() bool {
	return u != nil && u.Header != nil && u.Header.Size > 0 && u.Header.Filename != ""
}

// File adapts the upload for the API client.
func (u *Upload) File() apiclient.File {
	h := u.Header
	ct := h.Header.Get("Content-Type")
	if ct == "" {
		ct = "application/octet-stream"
	}
	return apiclient.File{
		Field:       u.Field,
		Filename:    h.Filename,
		ContentType: ct,
		Open: func() (io.ReadCloser, error) {
			return h.Open()
		},
	}
}

// Uploads maps file field names to their parts. Missing fields are absent.
type Uploads map[string]*Upload

// Get returns the upload for field, or nil.
func (u Uploads) Get(field string) *Upload {
	return u[field]
}

// Require returns an error naming label when field has no file.
func (u Uploads) Require(field, label string) error {
	if !u.Get(field).Present() {
		return fmt.Errorf("%s is required.", label)
	}
	return nil
}

// Decode parses r into dst using `schema` tags and collects the named
// file fields. It accepts urlencoded and multipart bodies.
func Decode(r *http.Request, dst any, fileFields ...string) (Uploads, error) {
	ups := Uploads{}
	if isMultipart(r) {
		if err := r.ParseMultipartForm(MaxUploadBytes); err != nil {
			return ups, fmt.Errorf("parse multipart form: %w", err)
		}
	} else if err := r.ParseForm(); err != nil {
		return ups, fmt.Errorf("parse form: %w", err)
	}

	if err := decoder.Decode(dst, r.PostForm); err != nil {
		var multi schema.MultiError
		if errors.As(err, &multi) {
			fields := make([]string, 0, len(multi))
			for field := range multi {
				fields = append(fields, field)
			}
			sort.Strings(fields)
			return ups, fmt.Errorf("%s has an invalid value.", strings.Join(fields, ", "))
		}
		return ups, err
	}

	if r.MultipartForm != nil {
		for _, f := range fileFields {
			if hs := r.MultipartForm.File[f]; len(hs) > 0 {
				ups[f] = &Upload{Field: f, Header: hs[0]}
			}
		}
	}
	return ups, nil
}

func isMultipart(r *http.Request) bool {
	return strings.HasPrefix(r.Header.Get("Content-Type"), "multipart/form-data")
}

// IDs returns the trimmed, non-empty values of a repeated field, used for
// bulk selection checkboxes.
func IDs(r *http.Request, field string) []string {
	_ = r.ParseForm()
	var out []string
	for _, v := range r.Form[field] {
		if v = strings.TrimSpace(v); v != "" {
			out = append(out, v)
		}
	}
	return out
}
