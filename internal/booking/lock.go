package booking

import (
	"context"
	"sync"
	"time"
)

// lockKey identifies one exclusion section: all mutating operations on
// the same hall and day serialize on the same key.
type lockKey struct {
	hallID uint64
	day    string
}

type lockEntry struct {
	sem  chan struct{} // capacity 1; holding the token = holding the lock
	refs int
}

// keyedLock is a lock table over (hall, day) keys. Acquire waits a
// bounded time for the key's token and gives up with ErrBusy so a
// slow competitor can never hang the caller. Entries are dropped once
// the last waiter is gone.
type keyedLock struct {
	mu      sync.Mutex
	entries map[lockKey]*lockEntry
}

func newKeyedLock() *keyedLock {
	return &keyedLock{entries: make(map[lockKey]*lockEntry)}
}

func (l *keyedLock) acquire(ctx context.Context, key lockKey, wait time.Duration) error {
	l.mu.Lock()
	e := l.entries[key]
	if e == nil {
		e = &lockEntry{sem: make(chan struct{}, 1)}
		l.entries[key] = e
	}
	e.refs++
	l.mu.Unlock()

	timer := time.NewTimer(wait)
	defer timer.Stop()
	select {
	case e.sem <- struct{}{}:
		return nil
	case <-timer.C:
		l.unref(key)
		return ErrBusy
	case <-ctx.Done():
		l.unref(key)
		return ctx.Err()
	}
}

func (l *keyedLock) release(key lockKey) {
	l.mu.Lock()
	e := l.entries[key]
	l.mu.Unlock()
	if e == nil {
		return
	}
	<-e.sem
	l.unref(key)
}

func (l *keyedLock) unref(key lockKey) {
	l.mu.Lock()
	if e := l.entries[key]; e != nil {
		e.refs--
		if e.refs == 0 {
			delete(l.entries, key)
		}
	}
	l.mu.Unlock()
}
