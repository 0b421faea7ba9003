// Package remote reads and writes entities through the coupon API. One
// generic Store serves every entity; what differs is the endpoint table
// and the normalized model type.
package remote

import (
	"context"
	"errors"
	"net/http"
	"net/url"
	"strings"

	"github.com/dalemusser/couponadmin/internal/app/system/apiclient"
	"github.com/dalemusser/couponadmin/internal/app/system/listctl"
	"github.com/dalemusser/couponadmin/internal/app/system/normalize"
	"go.uber.org/zap"
)

// ErrUnsupported is returned for operations an entity's API does not
// expose.
var ErrUnsupported = errors.New("operation not supported for this resource")

// Endpoints names an entity's API paths relative to the base URL. "{id}"
// is replaced with the escaped record id. Empty means unsupported.
type Endpoints struct {
	List   string
	Show   string
	Create string
	Update string
	Delete string
	// UpdateMethod defaults to PUT. Multipart updates use POST because
	// the API does not read multipart bodies on PUT.
	UpdateMethod string
}

// Store is the API-backed store for entity T.
type Store[T any] struct {
	api  *apiclient.Client
	ep   Endpoints
	name string
	log  *zap.Logger
}

// New creates a Store named name (used in logs).
func New[T any](api *apiclient.Client, name string, ep Endpoints, logger *zap.Logger) *Store[T] {
	return &Store[T]{api: api, ep: ep, name: name, log: logger}
}

// Name returns the entity name.
func (s *Store[T]) Name() string {
	return s.name
}

// Endpoints returns the endpoint table.
func (s *Store[T]) Endpoints() Endpoints {
	return s.ep
}

// List fetches one page.
func (s *Store[T]) List(ctx context.Context, q listctl.Query) (listctl.Page[T], error) {
	if s.ep.List == "" {
		return listctl.Page[T]{}, ErrUnsupported
	}
	var body any
	if err := s.api.Get(ctx, s.ep.List, q.APIValues(), &body); err != nil {
		return listctl.Page[T]{}, err
	}
	raw := normalize.ParsePage(body)
	return listctl.Page[T]{
		Items:       normalize.List[T](raw.Items),
		CurrentPage: raw.CurrentPage,
		TotalPages:  raw.TotalPages,
		Total:       raw.Total,
	}, nil
}

// Fetcher adapts List for listctl.
func (s *Store[T]) Fetcher() listctl.Fetcher[T] {
	return s.List
}

// Count returns the total number of records visible to the session.
func (s *Store[T]) Count(ctx context.Context) (int, error) {
	if s.ep.List == "" {
		return 0, ErrUnsupported
	}
	var body any
	q := url.Values{"page": {"1"}, "per_page": {"1"}}
	if err := s.api.Get(ctx, s.ep.List, q, &body); err != nil {
		return 0, err
	}
	return normalize.ParsePage(body).Total, nil
}

// Get fetches one record. When the API has no show endpoint the first
// list page is searched, which covers the small lists the dashboard
// manages.
func (s *Store[T]) Get(ctx context.Context, id string) (T, error) {
	var zero T
	if s.ep.Show == "" {
		return s.findInList(ctx, id)
	}
	var body any
	if err := s.api.Get(ctx, path(s.ep.Show, id), nil, &body); err != nil {
		return zero, err
	}
	obj, ok := unwrap(body)
	if !ok {
		return zero, &apiclient.Error{Status: http.StatusNotFound, Message: "Record not found", Method: http.MethodGet, Path: path(s.ep.Show, id)}
	}
	return normalize.Into[T](obj), nil
}

func (s *Store[T]) findInList(ctx context.Context, id string) (T, error) {
	var zero T
	if s.ep.List == "" {
		return zero, ErrUnsupported
	}
	var body any
	q := url.Values{"page": {"1"}, "per_page": {"100"}}
	if err := s.api.Get(ctx, s.ep.List, q, &body); err != nil {
		return zero, err
	}
	for _, item := range normalize.ParsePage(body).Items {
		obj, ok := item.(map[string]any)
		if ok && normalize.String(obj, "id") == id {
			return normalize.Into[T](obj), nil
		}
	}
	return zero, &apiclient.Error{Status: http.StatusNotFound, Message: "Record not found", Method: http.MethodGet, Path: s.ep.List}
}

// Create posts body and returns the new record's id when the API echoes it.
func (s *Store[T]) Create(ctx context.Context, body any) (string, error) {
	if s.ep.Create == "" {
		return "", ErrUnsupported
	}
	var out any
	if err := s.api.Post(ctx, s.ep.Create, body, &out); err != nil {
		return "", err
	}
	if obj, ok := unwrap(out); ok {
		return normalize.String(obj, "id"), nil
	}
	return "", nil
}

// Update sends body for id.
func (s *Store[T]) Update(ctx context.Context, id string, body any) error {
	if s.ep.Update == "" {
		return ErrUnsupported
	}
	method := s.ep.UpdateMethod
	if method == "" {
		method = http.MethodPut
	}
	return s.api.Do(ctx, method, path(s.ep.Update, id), nil, body, nil)
}

// Delete removes id.
func (s *Store[T]) Delete(ctx context.Context, id string) error {
	if s.ep.Delete == "" {
		return ErrUnsupported
	}
	err := s.api.Delete(ctx, path(s.ep.Delete, id), nil)
	if err != nil {
		s.log.Info("delete failed",
			zap.String("entity", s.name),
			zap.String("id", id),
			zap.Int("status", apiclient.StatusOf(err)))
	}
	return err
}

// CanCreate, CanUpdate and CanDelete report endpoint support.
func (s *Store[T]) CanCreate() bool { return s.ep.Create != "" }
func (s *Store[T]) CanUpdate() bool { return s.ep.Update != "" }
func (s *Store[T]) CanDelete() bool { return s.ep.Delete != "" }

func path(tmpl, id string) string {
	return strings.ReplaceAll(tmpl, "{id}", url.PathEscape(id))
}

// unwrap returns the record object of a show/create reply: either the
// body itself or its "data" member.
func unwrap(body any) (map[string]any, bool) {
	obj, ok := body.(map[string]any)
	if !ok {
		return nil, false
	}
	if data, ok := obj["data"].(map[string]any); ok {
		return data, true
	}
	if _, ok := obj["id"]; ok {
		return obj, true
	}
	return nil, false
}
