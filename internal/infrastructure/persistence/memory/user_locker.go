// Package memory provides in-process implementations of outbound ports
package memory

import (
	"context"
	"fmt"
	"sync"

	"github.com/pantryhq/pantry/internal/ports/outbound"
)

// ownerLock is a one-slot semaphore shared by everyone waiting on an owner
type ownerLock struct {
	slot chan struct{}
	refs int
}

// UserLocker serializes callers per owner inside one process
type UserLocker struct {
	locks map[string]*ownerLock
	mutex sync.Mutex
}

// NewUserLocker creates a new in-memory user locker
func NewUserLocker() outbound.UserLocker {
	return &UserLocker{
		locks: make(map[string]*ownerLock),
	}
}

// Acquire blocks until the owner's lock is free or ctx is done
func (l *UserLocker) Acquire(ctx context.Context, owner string) (func(), error) {
	lock := l.ref(owner)

	select {
	case lock.slot <- struct{}{}:
	case <-ctx.Done():
		l.unref(owner, lock)
		return nil, fmt.Errorf("%w: %v", outbound.ErrLockTimeout, ctx.Err())
	}

	var once sync.Once
	return func() {
		once.Do(func() {
			<-lock.slot
			l.unref(owner, lock)
		})
	}, nil
}

func (l *UserLocker) ref(owner string) *ownerLock {
	l.mutex.Lock()
	defer l.mutex.Unlock()

	lock, ok := l.locks[owner]
	if !ok {
		lock = &ownerLock{slot: make(chan struct{}, 1)}
		l.locks[owner] = lock
	}
	lock.refs++
	return lock
}

// unref drops the entry once nobody holds or waits on it
func (l *UserLocker) unref(owner string, lock *ownerLock) {
	l.mutex.Lock()
	defer l.mutex.Unlock()

	lock.refs--
	if lock.refs == 0 {
		delete(l.locks, owner)
	}
}

func (l *UserLocker) size() int {
	l.mutex.Lock()
	defer l.mutex.Unlock()
	return len(l.locks)
}
