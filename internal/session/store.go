// Package session holds in-flight registration wizards in memory. State is
// deliberately non-durable: a session that expires or completes is gone, and
// a restart loses everything, matching the wizard's no-partial-persistence
// design.
package session

import (
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/careconnect/homecare/internal/wizard"
)

type entry struct {
	// mu serializes all access to state. Concurrent requests for one token
	// (a double-click, a retried POST) are ordinary, and wizard.State itself
	// carries no locking.
	mu        sync.Mutex
	state     *wizard.State
	expiresAt time.Time
}

// Store is a TTL-bounded in-memory map of wizard sessions keyed by opaque
// token. Safe for concurrent use; per-session writes are serialized through
// Acquire.
type Store struct {
	mu  sync.Mutex
	m   map[string]*entry
	ttl time.Duration

	now func() time.Time
}

// NewStore returns a Store whose sessions expire ttl after their last touch.
func NewStore(ttl time.Duration) *Store {
	return &Store{
		m:   make(map[string]*entry),
		ttl: ttl,
		now: time.Now,
	}
}

// Create starts a fresh wizard and returns its token. The state is safe to
// use without Acquire only until the token has been shared.
func (s *Store) Create() (string, *wizard.State) {
	token := uuid.NewString()
	st := wizard.New()

	s.mu.Lock()
	defer s.mu.Unlock()
	s.purgeLocked()
	s.m[token] = &entry{state: st, expiresAt: s.now().Add(s.ttl)}
	return token, st
}

// Acquire returns the wizard for token with its session lock held, refreshing
// the TTL. The caller must call release when done with the state. The boolean
// is false for unknown or expired tokens, including tokens deleted while the
// caller was waiting for the lock.
func (s *Store) Acquire(token string) (st *wizard.State, release func(), ok bool) {
	s.mu.Lock()
	e, ok := s.m[token]
	if !ok {
		s.mu.Unlock()
		return nil, nil, false
	}
	if s.now().After(e.expiresAt) {
		delete(s.m, token)
		s.mu.Unlock()
		return nil, nil, false
	}
	e.expiresAt = s.now().Add(s.ttl)
	s.mu.Unlock()

	e.mu.Lock()
	// The session may have completed and been deleted while we waited.
	s.mu.Lock()
	_, live := s.m[token]
	s.mu.Unlock()
	if !live {
		e.mu.Unlock()
		return nil, nil, false
	}
	return e.state, e.mu.Unlock, true
}

// Delete discards a session; called on wizard completion or abandonment.
// Safe to call while holding the session's lock.
func (s *Store) Delete(token string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.m, token)
}

// Len reports the number of live sessions.
func (s *Store) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.purgeLocked()
	return len(s.m)
}

func (s *Store) purgeLocked() {
	now := s.now()
	for token, e := range s.m {
		if now.After(e.expiresAt) {
			delete(s.m, token)
		}
	}
}
