package service

import "sync"

// cartLocks serializes work against a single cart id. Entries are dropped
// once no goroutine holds or waits on them.
type cartLocks struct {
	mu    sync.Mutex
	locks map[string]*cartLock
}

type cartLock struct {
	mu sync.Mutex
	// refs counts holders and waiters, mutations the subset that write
	refs      int
	mutations int
}

func newCartLocks() *cartLocks {
	return &cartLocks{locks: make(map[string]*cartLock)}
}

func (l *cartLocks) lock(cartID string) (unlock func()) {
	return l.acquire(cartID, false)
}

// lockForMutation is lock for writes; the cart reports as mutating until
// unlock is called
func (l *cartLocks) lockForMutation(cartID string) (unlock func()) {
	return l.acquire(cartID, true)
}

func (l *cartLocks) acquire(cartID string, mutation bool) func() {
	l.mu.Lock()
	entry, ok := l.locks[cartID]
	if !ok {
		entry = &cartLock{}
		l.locks[cartID] = entry
	}
	entry.refs++
	if mutation {
		entry.mutations++
	}
	l.mu.Unlock()

	entry.mu.Lock()

	return func() {
		entry.mu.Unlock()

		l.mu.Lock()
		entry.refs--
		if mutation {
			entry.mutations--
		}
		if entry.refs == 0 {
			delete(l.locks, cartID)
		}
		l.mu.Unlock()
	}
}

// mutating reports whether a write against cartID is running or queued
func (l *cartLocks) mutating(cartID string) bool {
	l.mu.Lock()
	defer l.mu.Unlock()
	entry, ok := l.locks[cartID]
	return ok && entry.mutations > 0
}

func (l *cartLocks) size() int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return len(l.locks)
}
