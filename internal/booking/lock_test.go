package booking

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"
)

func TestKeyedLockSerializesSameKey(t *testing.T) {
	l := newKeyedLock()
	key := lockKey{hallID: 1, day: "2026-10-01"}

	const workers = 20
	var wg sync.WaitGroup
	counter := 0 // protected by the keyed lock, not by a mutex

	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			if err := l.acquire(context.Background(), key, time.Second); err != nil {
				t.Errorf("acquire: %v", err)
				return
			}
			counter++
			l.release(key)
		}()
	}
	wg.Wait()

	if counter != workers {
		t.Fatalf("counter = %d; want %d", counter, workers)
	}
	if len(l.entries) != 0 {
		t.Fatalf("lock table not drained: %d entries", len(l.entries))
	}
}

func TestKeyedLockDistinctKeysIndependent(t *testing.T) {
	l := newKeyedLock()
	a := lockKey{hallID: 1, day: "2026-10-01"}
	b := lockKey{hallID: 1, day: "2026-10-02"}

	if err := l.acquire(context.Background(), a, time.Second); err != nil {
		t.Fatalf("acquire a: %v", err)
	}
	// A different day must not contend with a held lock.
	if err := l.acquire(context.Background(), b, 10*time.Millisecond); err != nil {
		t.Fatalf("acquire b while a held: %v", err)
	}
	l.release(b)
	l.release(a)
}

func TestKeyedLockTimesOut(t *testing.T) {
	l := newKeyedLock()
	key := lockKey{hallID: 1, day: "2026-10-01"}

	if err := l.acquire(context.Background(), key, time.Second); err != nil {
		t.Fatalf("acquire: %v", err)
	}
	if err := l.acquire(context.Background(), key, 10*time.Millisecond); !errors.Is(err, ErrBusy) {
		t.Fatalf("second acquire: got %v; want ErrBusy", err)
	}
	l.release(key)

	// After release the key is free again.
	if err := l.acquire(context.Background(), key, 10*time.Millisecond); err != nil {
		t.Fatalf("reacquire: %v", err)
	}
	l.release(key)
}

func TestKeyedLockHonoursContext(t *testing.T) {
	l := newKeyedLock()
	key := lockKey{hallID: 1, day: "2026-10-01"}

	if err := l.acquire(context.Background(), key, time.Second); err != nil {
		t.Fatalf("acquire: %v", err)
	}
	ctx, cancel := context.WithCancel(context.Background())
	go func() {
		time.Sleep(10 * time.Millisecond)
		cancel()
	}()
	if err := l.acquire(ctx, key, time.Minute); !errors.Is(err, context.Canceled) {
		t.Fatalf("cancelled acquire: got %v; want context.Canceled", err)
	}
	l.release(key)
}
