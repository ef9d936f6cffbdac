// Package ratelimit implements a per-user sliding-window quota. The counter
// lives in process memory; a multi-instance deployment needs the same
// contract backed by a shared cache instead.
package ratelimit

import (
	"sync"
	"time"
)

// Limiter enforces a fixed number of accepted operations per user over a
// trailing window. A slot is consumed before the guarded call is attempted,
// so failed or slow downstream calls still count against quota.
type Limiter struct {
	capacity int
	window   time.Duration
	now      func() time.Time

	mu    sync.Mutex
	users map[string]*userWindow
}

type userWindow struct {
	mu     sync.Mutex
	stamps []time.Time
}

// New creates a limiter allowing capacity operations per window per user.
func New(capacity int, window time.Duration) *Limiter {
	return &Limiter{
		capacity: capacity,
		window:   window,
		now:      time.Now,
		users:    make(map[string]*userWindow),
	}
}

// SetClock overrides the time source, for tests.
func (l *Limiter) SetClock(now func() time.Time) {
	l.now = now
}

// CheckAndConsume evicts timestamps older than the window, then consumes a
// slot if capacity remains. It reports whether the operation is allowed and
// how many slots remain after this call.
func (l *Limiter) CheckAndConsume(userID string) (allowed bool, remaining int) {
	uw := l.userWindow(userID)

	uw.mu.Lock()
	defer uw.mu.Unlock()

	now := l.now()
	cutoff := now.Add(-l.window)

	kept := uw.stamps[:0]
	for _, ts := range uw.stamps {
		if ts.After(cutoff) {
			kept = append(kept, ts)
		}
	}
	uw.stamps = kept

	if len(uw.stamps) >= l.capacity {
		return false, 0
	}

	uw.stamps = append(uw.stamps, now)
	return true, l.capacity - len(uw.stamps)
}

// Remaining reports the free slots for a user without consuming one.
func (l *Limiter) Remaining(userID string) int {
	uw := l.userWindow(userID)

	uw.mu.Lock()
	defer uw.mu.Unlock()

	cutoff := l.now().Add(-l.window)
	count := 0
	for _, ts := range uw.stamps {
		if ts.After(cutoff) {
			count++
		}
	}

	remaining := l.capacity - count
	if remaining < 0 {
		remaining = 0
	}
	return remaining
}

func (l *Limiter) userWindow(userID string) *userWindow {
	l.mu.Lock()
	defer l.mu.Unlock()

	uw, ok := l.users[userID]
	if !ok {
		uw = &userWindow{}
		l.users[userID] = uw
	}
	return uw
}
