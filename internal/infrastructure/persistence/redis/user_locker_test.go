package redis

import (
	"context"
	"errors"
	"os"
	"sync"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/pantryhq/pantry/internal/ports/outbound"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

func newTestClient(t *testing.T) redis.UniversalClient {
	addr := os.Getenv("PANTRY_TEST_REDIS_ADDR")
	if addr == "" {
		t.Skip("PANTRY_TEST_REDIS_ADDR not set")
	}
	client := redis.NewUniversalClient(&redis.UniversalOptions{Addrs: []string{addr}})
	t.Cleanup(func() { _ = client.Close() })
	require.NoError(t, client.Ping(context.Background()).Err())
	return client
}

func TestUserLocker_ExclusiveUntilReleased(t *testing.T) {
	// Arrange
	client := newTestClient(t)
	prefix := "pantry-test:" + uuid.NewString() + ":"
	locker := NewUserLocker(client, prefix, 5*time.Second, 10*time.Millisecond, zap.NewNop())

	release, err := locker.Acquire(context.Background(), "owner-1")
	require.NoError(t, err)

	// Act
	ctx, cancel := context.WithTimeout(context.Background(), 50*time.Millisecond)
	defer cancel()
	_, err = locker.Acquire(ctx, "owner-1")

	// Assert
	require.Error(t, err)
	assert.True(t, errors.Is(err, outbound.ErrLockTimeout))

	release()
	again, err := locker.Acquire(context.Background(), "owner-1")
	require.NoError(t, err)
	again()
}

func TestUserLocker_ReleaseKeepsForeignToken(t *testing.T) {
	client := newTestClient(t)
	prefix := "pantry-test:" + uuid.NewString() + ":"
	locker := NewUserLocker(client, prefix, 5*time.Second, 10*time.Millisecond, zap.NewNop())
	key := prefix + "lock:owner-1"

	release, err := locker.Acquire(context.Background(), "owner-1")
	require.NoError(t, err)
	require.NoError(t, client.Set(context.Background(), key, "someone-else", time.Second).Err())

	release()

	val, err := client.Get(context.Background(), key).Result()
	require.NoError(t, err)
	assert.Equal(t, "someone-else", val)
}

func TestUserLocker_ReleaseRunsOnce(t *testing.T) {
	// Arrange
	client := redis.NewUniversalClient(&redis.UniversalOptions{
		Addrs:       []string{"127.0.0.1:1"},
		DialTimeout: 50 * time.Millisecond,
		MaxRetries:  -1,
	})
	defer client.Close()
	core, logs := observer.New(zapcore.WarnLevel)
	locker := NewUserLocker(client, "pantry-test:", time.Second, 10*time.Millisecond, zap.New(core)).(*UserLocker)
	release := locker.releaser("pantry-test:lock:owner-1", uuid.NewString())

	// Act
	var wg sync.WaitGroup
	for i := 0; i < 4; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			release()
		}()
	}
	wg.Wait()
	release()

	// Assert
	assert.Equal(t, 1, logs.FilterMessage("Failed to release lock").Len())
}
