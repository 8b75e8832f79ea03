package redis

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/pantryhq/pantry/internal/ports/outbound"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

// releaseScript deletes the key only while it still holds our token
var releaseScript = redis.NewScript(`
if redis.call("GET", KEYS[1]) == ARGV[1] then
	return redis.call("DEL", KEYS[1])
end
return 0
`)

// UserLocker serializes callers per owner across processes using SET NX
type UserLocker struct {
	client redis.UniversalClient
	prefix string
	ttl    time.Duration
	retry  time.Duration
	logger *zap.Logger
}

// NewUserLocker creates a new Redis user locker. ttl bounds how long a
// crashed holder can keep the lock; retry is the polling interval.
func NewUserLocker(client redis.UniversalClient, prefix string, ttl, retry time.Duration, logger *zap.Logger) outbound.UserLocker {
	if retry <= 0 {
		retry = 50 * time.Millisecond
	}
	return &UserLocker{
		client: client,
		prefix: prefix,
		ttl:    ttl,
		retry:  retry,
		logger: logger,
	}
}

// Acquire polls until the owner's key is set by us or ctx is done
func (l *UserLocker) Acquire(ctx context.Context, owner string) (func(), error) {
	key := l.prefix + "lock:" + owner
	token := uuid.NewString()

	ticker := time.NewTicker(l.retry)
	defer ticker.Stop()

	for {
		ok, err := l.client.SetNX(ctx, key, token, l.ttl).Result()
		if err != nil {
			if ctx.Err() != nil {
				return nil, fmt.Errorf("%w: %v", outbound.ErrLockTimeout, ctx.Err())
			}
			return nil, fmt.Errorf("acquire lock for %s: %w", owner, err)
		}
		if ok {
			return l.releaser(key, token), nil
		}

		select {
		case <-ctx.Done():
			return nil, fmt.Errorf("%w: %v", outbound.ErrLockTimeout, ctx.Err())
		case <-ticker.C:
		}
	}
}

func (l *UserLocker) releaser(key, token string) func() {
	var once sync.Once
	return func() {
		once.Do(func() {
			ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
			defer cancel()
			if err := releaseScript.Run(ctx, l.client, []string{key}, token).Err(); err != nil {
				l.logger.Warn("Failed to release lock", zap.String("key", key), zap.Error(err))
			}
		})
	}
}
