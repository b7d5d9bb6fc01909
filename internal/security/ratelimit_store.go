package security

import (
	"context"
	"sync"
	"time"

	"github.com/redis/go-redis/v9"
)

// WindowStore counts hits within fixed windows. Hit increments the counter
// for key, starting a new window when none is open, and reports the count so
// far and the time left until the window closes.
type WindowStore interface {
	Hit(ctx context.Context, key string, window time.Duration) (count int, resetIn time.Duration, err error)
}

type windowCounter struct {
	count   int
	resetAt time.Time
}

// MemoryStore keeps counters in process memory. Handlers run concurrently, so
// every access goes through the mutex.
type MemoryStore struct {
	mu        sync.Mutex
	counters  map[string]*windowCounter
	now       func() time.Time
	nextSweep time.Time
}

// NewMemoryStore returns an empty store.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{counters: map[string]*windowCounter{}, now: time.Now}
}

func (s *MemoryStore) Hit(_ context.Context, key string, window time.Duration) (int, time.Duration, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	now := s.now()
	s.sweep(now, window)

	counter, ok := s.counters[key]
	if !ok || !now.Before(counter.resetAt) {
		counter = &windowCounter{resetAt: now.Add(window)}
		s.counters[key] = counter
	}
	counter.count++
	return counter.count, counter.resetAt.Sub(now), nil
}

// sweep drops closed windows at most once per window length.
func (s *MemoryStore) sweep(now time.Time, window time.Duration) {
	if now.Before(s.nextSweep) {
		return
	}
	for key, counter := range s.counters {
		if !now.Before(counter.resetAt) {
			delete(s.counters, key)
		}
	}
	s.nextSweep = now.Add(window)
}

// RedisStore shares counters between instances. The first hit of a window
// sets the key's expiry, so Redis resets the counter when the window elapses.
type RedisStore struct {
	client *redis.Client
	prefix string
}

// NewRedisStore wraps client; keys are namespaced under prefix.
func NewRedisStore(client *redis.Client, prefix string) *RedisStore {
	return &RedisStore{client: client, prefix: prefix}
}

func (s *RedisStore) Hit(ctx context.Context, key string, window time.Duration) (int, time.Duration, error) {
	fullKey := s.prefix + key

	count, err := s.client.Incr(ctx, fullKey).Result()
	if err != nil {
		return 0, 0, err
	}
	if count == 1 {
		if err := s.client.PExpire(ctx, fullKey, window).Err(); err != nil {
			return 0, 0, err
		}
		return 1, window, nil
	}

	ttl, err := s.client.PTTL(ctx, fullKey).Result()
	if err != nil {
		return 0, 0, err
	}
	if ttl < 0 {
		// Expiry lost between INCR and PEXPIRE; start the window now.
		if err := s.client.PExpire(ctx, fullKey, window).Err(); err != nil {
			return 0, 0, err
		}
		ttl = window
	}
	return int(count), ttl, nil
}
