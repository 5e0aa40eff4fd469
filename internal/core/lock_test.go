// AngelaMos | 2026
// lock_test.go

package core

import (
	"context"
	"os"
	"sync"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestRedisLocker(t *testing.T) (*RedisLocker, *redis.Client) {
	t.Helper()

	url := os.Getenv("REDIS_URL")
	if url == "" {
		t.Skip("REDIS_URL not set")
	}

	opts, err := redis.ParseURL(url)
	require.NoError(t, err)

	client := redis.NewClient(opts)
	t.Cleanup(func() { _ = client.Close() })

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	if err := client.Ping(ctx).Err(); err != nil {
		t.Skipf("redis unavailable: %v", err)
	}

	prefix := "test:lock:" + uuid.New().String() + ":"
	t.Cleanup(func() {
		keys, _ := client.Keys(context.Background(), prefix+"*").Result()
		if len(keys) > 0 {
			client.Del(context.Background(), keys...)
		}
	})

	return NewRedisLocker(client, prefix), client
}

func TestRedisLockerSerializes(t *testing.T) {
	locker, _ := newTestRedisLocker(t)

	var (
		wg      sync.WaitGroup
		mu      sync.Mutex
		inside  int
		maxSeen int
	)

	for range 5 {
		wg.Add(1)
		go func() {
			defer wg.Done()

			unlock, err := locker.Lock(context.Background(), "schedule:u1")
			if !assert.NoError(t, err) {
				return
			}

			mu.Lock()
			inside++
			maxSeen = max(maxSeen, inside)
			mu.Unlock()

			time.Sleep(10 * time.Millisecond)

			mu.Lock()
			inside--
			mu.Unlock()
			unlock()
		}()
	}
	wg.Wait()

	assert.Equal(t, 1, maxSeen)
}

func TestRedisLockerHeldKeyBlocks(t *testing.T) {
	locker, _ := newTestRedisLocker(t)

	unlock, err := locker.Lock(context.Background(), "schedule:u1")
	require.NoError(t, err)

	ctx, cancel := context.WithTimeout(context.Background(), 150*time.Millisecond)
	defer cancel()
	_, err = locker.Lock(ctx, "schedule:u1")
	require.Error(t, err)

	other, err := locker.Lock(context.Background(), "schedule:u2")
	require.NoError(t, err)
	other()

	unlock()

	again, err := locker.Lock(context.Background(), "schedule:u1")
	require.NoError(t, err)
	again()
}

func TestRedisLockerReleaseChecksToken(t *testing.T) {
	locker, client := newTestRedisLocker(t)
	ctx := context.Background()

	unlock, err := locker.Lock(ctx, "schedule:u1")
	require.NoError(t, err)

	key := locker.prefix + "schedule:u1"
	require.NoError(t, client.Set(ctx, key, "someone-else", time.Minute).Err())

	unlock()

	val, err := client.Get(ctx, key).Result()
	require.NoError(t, err)
	assert.Equal(t, "someone-else", val)
}
