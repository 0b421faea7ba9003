// Package crud is the list-resource engine shared by every entity
// screen: a paged, searchable table with sort and status filters, a view
// dialog, single and bulk delete, and create/edit dialogs.
//
// A feature supplies a Config describing its columns and a Store; the
// engine does the rest. Dialogs are HTMX fragments swapped into #modal.
// Mutations that succeed answer with an empty body and the refresh-list
// trigger so the table reloads itself.
package crud

import (
	"context"
	"html/template"
	"time"

	"github.com/dalemusser/couponadmin/internal/app/system/auditlog"
	"github.com/dalemusser/couponadmin/internal/app/system/flash"
	"github.com/dalemusser/couponadmin/internal/app/system/listctl"
	"go.uber.org/zap"
)

// RefreshEvent is the HX-Trigger event list tables listen for. They
// reload the page they are showing.
const RefreshEvent = "refresh-list"

// FirstPageEvent makes list tables reload from page 1 with the current
// filters kept. Bulk delete sends it.
const FirstPageEvent = "refresh-list-first"

// Store is what the engine needs from an entity store.
// *remote.Store satisfies it.
type Store[T any] interface {
	List(ctx context.Context, q listctl.Query) (listctl.Page[T], error)
	Get(ctx context.Context, id string) (T, error)
	Delete(ctx context.Context, id string) error
	CanCreate() bool
	CanUpdate() bool
	CanDelete() bool
}

// Cell is one table or detail value. Exactly one of the display fields is
// normally set.
type Cell struct {
	Text  string
	Image string
	Video string
	Badge string
	HTML  template.HTML
	List  []string
}

// Text is a plain text cell.
func Text(s string) Cell { return Cell{Text: s} }

// Image is a thumbnail cell.
func Image(src string) Cell { return Cell{Image: src} }

// Video is an inline player cell.
func Video(src string) Cell { return Cell{Video: src} }

// Badge is a status pill.
func Badge(status string) Cell { return Cell{Badge: status} }

// Rich is pre-sanitized HTML.
func Rich(h template.HTML) Cell { return Cell{HTML: h} }

// List is a comma-free list of values, one per line.
func List(items []string) Cell { return Cell{List: items} }

// Row is one table row.
type Row struct {
	ID    string
	Cells []Cell
}

// Field is one labelled value in the view dialog.
type Field struct {
	Label string
	Value Cell
}

// Filters selects which list filters a screen offers.
type Filters struct {
	Sort   bool
	Status bool
	// Statuses are the status choices offered when Status is set.
	// Empty means ThreeStateStatuses.
	Statuses []listctl.Status
}

// ThreeStateStatuses suit records the API marks active, expired or
// pending, such as coupons.
var ThreeStateStatuses = []listctl.Status{listctl.StatusActive, listctl.StatusExpired, listctl.StatusPending}

// TwoStateStatuses suit records that are only switched on or off, such
// as banners.
var TwoStateStatuses = []listctl.Status{listctl.StatusActive, listctl.StatusInactive}

func (f Filters) statuses() []listctl.Status {
	if !f.Status {
		return nil
	}
	if len(f.Statuses) == 0 {
		return ThreeStateStatuses
	}
	return f.Statuses
}

// allows reports whether s is offered; StatusNone always is.
func (f Filters) allows(s listctl.Status) bool {
	if s == listctl.StatusNone {
		return true
	}
	for _, v := range f.statuses() {
		if v == s {
			return true
		}
	}
	return false
}

// Config describes one entity screen.
type Config[T any] struct {
	// Name keys the stale guard and DOM ids, e.g. "coupon-types".
	Name string
	// Plural and Singular are used in toasts and dialog titles. Plural
	// defaults to Name.
	Plural   string
	Singular string
	Title    string
	BasePath string

	Columns []string
	Row     func(T) Row
	Detail  func(T) []Field

	Filters Filters
}

// Deps are the collaborators shared by every screen.
type Deps struct {
	Flash           *flash.Store
	Audit           *auditlog.Logger
	Seq             *listctl.Sequencer
	PerPage         int
	BulkConcurrency int
	Debounce        time.Duration
	Log             *zap.Logger
}

// Handler serves the list, view and delete endpoints of one entity.
type Handler[T any] struct {
	cfg   Config[T]
	store Store[T]
	ctrl  *listctl.Controller[T]
	deps  Deps
}

// New builds a Handler.
func New[T any](cfg Config[T], store Store[T], deps Deps) *Handler[T] {
	if deps.Log == nil {
		deps.Log = zap.NewNop()
	}
	if cfg.Plural == "" {
		cfg.Plural = cfg.Name
	}
	if deps.Seq == nil {
		deps.Seq = listctl.NewSequencer()
	}
	return &Handler[T]{
		cfg:   cfg,
		store: store,
		ctrl:  listctl.New(cfg.Name, store.List, deps.Seq, deps.Log),
		deps:  deps,
	}
}

// Config returns the screen configuration.
func (h *Handler[T]) Config() Config[T] {
	return h.cfg
}

// TableID is the DOM id of the table wrapper, also the HX-Target that
// selects a partial render.
func (h *Handler[T]) TableID() string {
	return h.cfg.Name + "-table"
}

// Selection is a multi-select form value, such as the coupons attached
// to a banner.
type Selection []string

// Has reports whether id is selected.
func (s Selection) Has(id string) bool {
	for _, v := range s {
		if v == id {
			return true
		}
	}
	return false
}
