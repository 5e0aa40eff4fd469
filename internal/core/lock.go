// AngelaMos | 2026
// lock.go

package core

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
)

var ErrLockTimeout = errors.New("lock acquisition timed out")

// Locker serializes critical sections that span a read-then-write, keyed by
// an arbitrary string such as a user id.
type Locker interface {
	Lock(ctx context.Context, key string) (unlock func(), err error)
}

const (
	lockTTL          = 10 * time.Second
	lockRetryDelay   = 25 * time.Millisecond
	lockWaitDeadline = 5 * time.Second
)

// releaseScript deletes the key only when it still holds our token.
var releaseScript = redis.NewScript(`
if redis.call("GET", KEYS[1]) == ARGV[1] then
	return redis.call("DEL", KEYS[1])
end
return 0`)

type RedisLocker struct {
	client *redis.Client
	prefix string
	ttl    time.Duration
}

func NewRedisLocker(client *redis.Client, prefix string) *RedisLocker {
	return &RedisLocker{
		client: client,
		prefix: prefix,
		ttl:    lockTTL,
	}
}

func (l *RedisLocker) Lock(
	ctx context.Context,
	key string,
) (func(), error) {
	fullKey := l.prefix + key
	token := uuid.New().String()

	waitCtx, cancel := context.WithTimeout(ctx, lockWaitDeadline)
	defer cancel()

	for {
		ok, err := l.client.SetNX(waitCtx, fullKey, token, l.ttl).Result()
		if err != nil {
			return nil, fmt.Errorf("acquire lock %s: %w", key, err)
		}
		if ok {
			break
		}

		select {
		case <-waitCtx.Done():
			return nil, fmt.Errorf("acquire lock %s: %w", key, ErrLockTimeout)
		case <-time.After(lockRetryDelay):
		}
	}

	unlock := func() {
		releaseCtx, cancel := context.WithTimeout(
			context.WithoutCancel(ctx),
			2*time.Second,
		)
		defer cancel()
		//nolint:errcheck // the TTL reclaims the key if release fails
		_ = releaseScript.Run(releaseCtx, l.client, []string{fullKey}, token).Err()
	}

	return unlock, nil
}

// LocalLocker is the single-process fallback used when Redis is not
// configured.
type LocalLocker struct {
	mu    sync.Mutex
	locks map[string]*localEntry
}

type localEntry struct {
	ch   chan struct{}
	refs int
}

func NewLocalLocker() *LocalLocker {
	return &LocalLocker{locks: make(map[string]*localEntry)}
}

func (l *LocalLocker) Lock(ctx context.Context, key string) (func(), error) {
	l.mu.Lock()
	entry, ok := l.locks[key]
	if !ok {
		entry = &localEntry{ch: make(chan struct{}, 1)}
		l.locks[key] = entry
	}
	entry.refs++
	l.mu.Unlock()

	select {
	case entry.ch <- struct{}{}:
	case <-ctx.Done():
		l.release(key, entry, false)
		return nil, fmt.Errorf("acquire lock %s: %w", key, ctx.Err())
	}

	var once sync.Once
	return func() {
		once.Do(func() { l.release(key, entry, true) })
	}, nil
}

func (l *LocalLocker) release(key string, entry *localEntry, held bool) {
	if held {
		<-entry.ch
	}

	l.mu.Lock()
	defer l.mu.Unlock()

	entry.refs--
	if entry.refs == 0 {
		delete(l.locks, key)
	}
}
