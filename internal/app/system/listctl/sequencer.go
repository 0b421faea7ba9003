package listctl

import (
	"sync"
	"time"
)

// Sequencer guards list pages against stale responses. Each fetch takes a
// token from Begin; its result may be applied only while Latest still
// reports that token as the newest issued for the same key.
type Sequencer struct {
	mu      sync.Mutex
	next    uint64
	latest  map[string]entry
	maxKeys int
	ttl     time.Duration
	now     func() time.Time
}

type entry struct {
	token uint64
	at    time.Time
}

// NewSequencer returns a Sequencer that forgets keys idle for longer than
// ten minutes once it tracks more than 10,000 of them.
func NewSequencer() *Sequencer {
	return &Sequencer{
		latest:  make(map[string]entry),
		maxKeys: 10000,
		ttl:     10 * time.Minute,
		now:     time.Now,
	}
}

// Begin issues a new token for key, superseding earlier ones.
func (s *Sequencer) Begin(key string) uint64 {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.next++
	now := s.now()
	s.latest[key] = entry{token: s.next, at: now}
	if len(s.latest) > s.maxKeys {
		for k, e := range s.latest {
			if now.Sub(e.at) > s.ttl {
				delete(s.latest, k)
			}
		}
	}
	return s.next
}

// Latest reports whether token is the newest issued for key.
func (s *Sequencer) Latest(key string, token uint64) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	e, ok := s.latest[key]
	return ok && e.token == token
}
