package security

import (
	"context"
	"net/http/httptest"
	"sync"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/gofiber/fiber/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeClock struct {
	mu  sync.Mutex
	now time.Time
}

func (f *fakeClock) Now() time.Time {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.now
}

func (f *fakeClock) Advance(d time.Duration) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.now = f.now.Add(d)
}

func newGlobalLimiterApp(t *testing.T, store WindowStore) (*fiber.App, func() int) {
	t.Helper()
	sec, logs := newObservedSecurityLog()
	limiter := NewRateLimiter(RateLimitConfig{Name: "global", Limit: 100, Window: 15 * time.Minute}, store, sec, nil)
	app := newTestApp()
	app.Use(limiter.Handle)
	app.Get("/api/v1/blog", func(c *fiber.Ctx) error { return c.SendStatus(fiber.StatusOK) })
	return app, func() int { return logs.FilterMessage("rate_limit_exceeded").Len() }
}

func hit(t *testing.T, app *fiber.App) int {
	t.Helper()
	resp, err := app.Test(httptest.NewRequest(fiber.MethodGet, "/api/v1/blog", nil))
	require.NoError(t, err)
	return resp.StatusCode
}

func TestRateLimiter_MemoryStore(t *testing.T) {
	clock := &fakeClock{now: time.Date(2026, 2, 1, 9, 0, 0, 0, time.UTC)}
	store := NewMemoryStore()
	store.now = clock.Now
	app, events := newGlobalLimiterApp(t, store)

	for i := 0; i < 100; i++ {
		require.Equal(t, fiber.StatusOK, hit(t, app), "request %d", i+1)
	}

	resp, err := app.Test(httptest.NewRequest(fiber.MethodGet, "/api/v1/blog", nil))
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusTooManyRequests, resp.StatusCode)
	assert.Contains(t, readBody(t, resp), "RATE_LIMITED")
	assert.Equal(t, "0", resp.Header.Get("X-RateLimit-Remaining"))
	assert.NotEmpty(t, resp.Header.Get(fiber.HeaderRetryAfter))
	assert.Equal(t, 1, events())

	clock.Advance(14 * time.Minute)
	assert.Equal(t, fiber.StatusTooManyRequests, hit(t, app))

	clock.Advance(time.Minute)
	assert.Equal(t, fiber.StatusOK, hit(t, app))
}

func TestRateLimiter_RedisStore(t *testing.T) {
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = client.Close() })

	app, events := newGlobalLimiterApp(t, NewRedisStore(client, "ratelimit:"))

	for i := 0; i < 100; i++ {
		require.Equal(t, fiber.StatusOK, hit(t, app), "request %d", i+1)
	}
	assert.Equal(t, fiber.StatusTooManyRequests, hit(t, app))
	assert.Equal(t, 1, events())

	mr.FastForward(15 * time.Minute)
	assert.Equal(t, fiber.StatusOK, hit(t, app))
}

func TestRateLimiter_StoreFailureFailsOpen(t *testing.T) {
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr(), MaxRetries: -1})
	t.Cleanup(func() { _ = client.Close() })
	app, _ := newGlobalLimiterApp(t, NewRedisStore(client, "ratelimit:"))

	mr.SetError("LOADING")
	assert.Equal(t, fiber.StatusOK, hit(t, app))
}

func TestMemoryStore_KeysAreIndependent(t *testing.T) {
	store := NewMemoryStore()
	ctx := context.Background()

	n, _, err := store.Hit(ctx, "auth:1.1.1.1", time.Hour)
	require.NoError(t, err)
	assert.Equal(t, 1, n)
	n, _, _ = store.Hit(ctx, "auth:1.1.1.1", time.Hour)
	assert.Equal(t, 2, n)
	n, reset, _ := store.Hit(ctx, "auth:2.2.2.2", time.Hour)
	assert.Equal(t, 1, n)
	assert.Equal(t, time.Hour, reset)
}

func TestMemoryStore_ConcurrentHits(t *testing.T) {
	store := NewMemoryStore()
	var wg sync.WaitGroup
	for i := 0; i < 50; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, _, _ = store.Hit(context.Background(), "k", time.Minute)
		}()
	}
	wg.Wait()
	n, _, _ := store.Hit(context.Background(), "k", time.Minute)
	assert.Equal(t, 51, n)
}

func TestMemoryStore_SweepsClosedWindows(t *testing.T) {
	clock := &fakeClock{now: time.Date(2026, 2, 1, 9, 0, 0, 0, time.UTC)}
	store := NewMemoryStore()
	store.now = clock.Now

	_, _, _ = store.Hit(context.Background(), "a", time.Minute)
	clock.Advance(2 * time.Minute)
	_, _, _ = store.Hit(context.Background(), "b", time.Minute)

	store.mu.Lock()
	defer store.mu.Unlock()
	_, stillThere := store.counters["a"]
	assert.False(t, stillThere)
}
