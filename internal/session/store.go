// Package session holds the client's authenticated identity for the
// lifetime of the process. The store is constructed once in main and handed
// to everything that needs it; nothing reads it through a package global, so
// tests can substitute their own.
package session

import (
	"sync"

	"github.com/quenby/blogctl/internal/domain"
)

// Store holds at most one active session, replaced wholesale on login and
// dropped on logout. Anything that attaches the token to a request must read
// it from here at call time; a request already in flight when the session is
// cleared still completes with the old token, and that is accepted.
type Store struct {
	mu      sync.Mutex
	session domain.Session
	active  bool

	nextID      int
	subscribers map[int]func(domain.Session, bool)
}

func NewStore() *Store {
	return &Store{
		subscribers: map[int]func(domain.Session, bool){},
	}
}

// Current returns the active session, if any.
func (s *Store) Current() (domain.Session, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.session, s.active
}

// Set replaces the active session and notifies subscribers.
func (s *Store) Set(session domain.Session) {
	s.mu.Lock()
	s.session = session
	s.active = true
	subs := s.snapshot()
	s.mu.Unlock()

	for _, fn := range subs {
		fn(session, true)
	}
}

// Clear drops the active session and notifies subscribers.
func (s *Store) Clear() {
	s.mu.Lock()
	s.session = domain.Session{}
	s.active = false
	subs := s.snapshot()
	s.mu.Unlock()

	for _, fn := range subs {
		fn(domain.Session{}, false)
	}
}

// Subscribe registers a callback invoked after every Set and Clear, in
// registration order. Callbacks run outside the store's lock, so a callback
// may call back into the store. The returned function cancels the
// subscription.
func (s *Store) Subscribe(fn func(session domain.Session, active bool)) func() {
	s.mu.Lock()
	id := s.nextID
	s.nextID++
	s.subscribers[id] = fn
	s.mu.Unlock()

	return func() {
		s.mu.Lock()
		delete(s.subscribers, id)
		s.mu.Unlock()
	}
}

// snapshot copies the subscriber list in registration order. Callers must
// hold the lock.
func (s *Store) snapshot() []func(domain.Session, bool) {
	subs := make([]func(domain.Session, bool), 0, len(s.subscribers))
	for id := 0; id < s.nextID; id++ {
		if fn, ok := s.subscribers[id]; ok {
			subs = append(subs, fn)
		}
	}
	return subs
}
