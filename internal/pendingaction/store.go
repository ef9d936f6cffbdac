// Package pendingaction holds the one unconfirmed proposal per session.
// Entries are short-lived; anything older than the TTL is treated as absent.
package pendingaction

import (
	"sync"
	"time"

	"github.com/hashicorp/golang-lru/v2/expirable"
)

// maxSessions bounds memory when sessions never confirm or cancel.
const maxSessions = 4096

type record[T any] struct {
	payload T
	created time.Time
}

// Store keeps at most one pending payload per session key. Put replaces any
// prior entry; Take removes and returns the entry only while it is fresh.
// The store-level mutex makes Take atomic, so two concurrent confirms cannot
// both receive the same proposal.
type Store[T any] struct {
	mu  sync.Mutex
	lru *expirable.LRU[string, record[T]]
	ttl time.Duration
	now func() time.Time
}

// NewStore creates a store whose entries expire after ttl.
func NewStore[T any](ttl time.Duration) *Store[T] {
	return &Store[T]{
		lru: expirable.NewLRU[string, record[T]](maxSessions, nil, ttl),
		ttl: ttl,
		now: time.Now,
	}
}

// SetClock overrides the time source, for tests. The LRU's own expiry keeps
// running on the wall clock as a backstop.
func (s *Store[T]) SetClock(now func() time.Time) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.now = now
}

// Put stores payload for the session, silently replacing any prior entry.
func (s *Store[T]) Put(sessionID string, payload T) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.lru.Add(sessionID, record[T]{payload: payload, created: s.now()})
}

// Take removes and returns the session's payload if one exists and is
// within the TTL. A stale entry is cleared as a side effect and reported
// as absent.
func (s *Store[T]) Take(sessionID string) (T, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	var zero T
	rec, ok := s.lru.Get(sessionID)
	if !ok {
		return zero, false
	}

	s.lru.Remove(sessionID)
	if s.now().Sub(rec.created) > s.ttl {
		return zero, false
	}
	return rec.payload, true
}

// Clear unconditionally removes any entry for the session.
func (s *Store[T]) Clear(sessionID string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.lru.Remove(sessionID)
}
