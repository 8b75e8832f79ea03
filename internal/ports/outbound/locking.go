package outbound

import (
	"context"
	"errors"
)

// ErrLockTimeout is returned when a lock could not be acquired before the
// context expired
var ErrLockTimeout = errors.New("timed out waiting for lock")

// UserLocker serializes writes per owner. Release must be called exactly
// once after a successful Acquire.
type UserLocker interface {
	Acquire(ctx context.Context, owner string) (release func(), err error)
}
