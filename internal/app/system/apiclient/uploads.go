package apiclient

import (
	"context"
	"sync"

	"github.com/google/uuid"
)

// Uploads tracks in-flight multipart submissions so a second request from
// the same user can cancel them by id.
type Uploads struct {
	mu      sync.Mutex
	pending map[string]pendingUpload
}

type pendingUpload struct {
	owner  string
	cancel context.CancelFunc
}

// NewUploads returns an empty registry.
func NewUploads() *Uploads {
	return &Uploads{pending: make(map[string]pendingUpload)}
}

// NewID returns a fresh upload id to embed in an upload form.
func NewID() string {
	return uuid.NewString()
}

// Track derives a cancellable context registered under id for owner. The
// returned done func must be called when the upload finishes. An empty or
// malformed id returns ctx unchanged.
func (u *Uploads) Track(ctx context.Context, id, owner string) (context.Context, func()) {
	if _, err := uuid.Parse(id); err != nil {
		return ctx, func() {}
	}
	ctx, cancel := context.WithCancel(ctx)

	u.mu.Lock()
	u.pending[id] = pendingUpload{owner: owner, cancel: cancel}
	u.mu.Unlock()

	return ctx, func() {
		u.mu.Lock()
		delete(u.pending, id)
		u.mu.Unlock()
		cancel()
	}
}

// Cancel aborts the upload registered under id when owner started it. It
// reports whether such an upload was found; another owner's upload is
// left running and reported as not found.
func (u *Uploads) Cancel(id, owner string) bool {
	if owner == "" {
		return false
	}
	u.mu.Lock()
	p, ok := u.pending[id]
	if ok && p.owner != owner {
		ok = false
	}
	if ok {
		delete(u.pending, id)
	}
	u.mu.Unlock()

	if ok {
		p.cancel()
	}
	return ok
}

// Pending returns the number of in-flight uploads.
func (u *Uploads) Pending() int {
	u.mu.Lock()
	defer u.mu.Unlock()
	return len(u.pending)
}
