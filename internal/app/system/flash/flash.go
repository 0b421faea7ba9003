// Package flash carries one-shot toast messages across a redirect using a
// gorilla/sessions cookie.
package flash

import (
	"errors"
	"net/http"

	"github.com/dalemusser/couponadmin/internal/app/system/apiclient"
	"github.com/gorilla/sessions"
	"go.uber.org/zap"
)

const sessionName = "couponadmin-flash"

// Kinds of toast.
const (
	KindSuccess = "success"
	KindError   = "error"
)

// Toast is one message shown once.
type Toast struct {
	Kind    string
	Message string
}

// Store reads and writes toasts.
type Store struct {
	cs  *sessions.CookieStore
	log *zap.Logger
}

// New returns a Store signing its cookie with key.
func New(key []byte, secure bool, logger *zap.Logger) (*Store, error) {
	if len(key) < 32 {
		return nil, errors.New("flash key must be at least 32 bytes")
	}
	cs := sessions.NewCookieStore(key)
	cs.Options = &sessions.Options{
		Path:     "/",
		MaxAge:   300,
		HttpOnly: true,
		Secure:   secure,
		SameSite: http.SameSiteLaxMode,
	}
	return &Store{cs: cs, log: logger}, nil
}

// Success queues a success toast.
func (s *Store) Success(w http.ResponseWriter, r *http.Request, msg string) {
	s.add(w, r, KindSuccess, msg)
}

// Error queues an error toast.
func (s *Store) Error(w http.ResponseWriter, r *http.Request, msg string) {
	s.add(w, r, KindError, msg)
}

// APIError queues an error toast describing an API call failure.
func (s *Store) APIError(w http.ResponseWriter, r *http.Request, err error) {
	s.add(w, r, KindError, apiclient.Describe(err))
}

func (s *Store) add(w http.ResponseWriter, r *http.Request, kind, msg string) {
	if s == nil || msg == "" {
		return
	}
	sess, _ := s.cs.Get(r, sessionName)
	sess.AddFlash(msg, kind)
	if err := sess.Save(r, w); err != nil {
		s.log.Warn("flash save failed", zap.Error(err))
	}
}

// Pop returns and clears every queued toast, success first.
func (s *Store) Pop(w http.ResponseWriter, r *http.Request) []Toast {
	if s == nil {
		return nil
	}
	sess, err := s.cs.Get(r, sessionName)
	if err != nil || sess.IsNew {
		return nil
	}

	var out []Toast
	for _, kind := range []string{KindSuccess, KindError} {
		for _, f := range sess.Flashes(kind) {
			if msg, ok := f.(string); ok && msg != "" {
				out = append(out, Toast{Kind: kind, Message: msg})
			}
		}
	}
	if len(out) > 0 {
		if err := sess.Save(r, w); err != nil {
			s.log.Warn("flash clear failed", zap.Error(err))
		}
	}
	return out
}
