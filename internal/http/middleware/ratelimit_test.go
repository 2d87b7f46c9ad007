package middleware

import (
	"context"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeClock struct {
	mu  sync.Mutex
	now time.Time
}

func newFakeClock() *fakeClock {
	return &fakeClock{now: time.Date(2026, 5, 1, 9, 0, 0, 0, time.UTC)}
}

func (c *fakeClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.now
}

func (c *fakeClock) Advance(d time.Duration) {
	c.mu.Lock()
	c.now = c.now.Add(d)
	c.mu.Unlock()
}

func TestSlidingWindowLimiter_SixthDenied(t *testing.T) {
	clock := newFakeClock()
	limiter := NewSlidingWindowLimiter(5, time.Hour).WithClock(clock.Now)

	for i := 0; i < 5; i++ {
		require.True(t, limiter.Admit("203.0.113.7"), "admit %d should succeed", i+1)
		clock.Advance(time.Minute)
	}
	assert.False(t, limiter.Admit("203.0.113.7"), "6th admit should be denied")
	assert.True(t, limiter.Admit("198.51.100.1"), "other clients are unaffected")
}

func TestSlidingWindowLimiter_RecoversAfterWindow(t *testing.T) {
	clock := newFakeClock()
	limiter := NewSlidingWindowLimiter(5, time.Hour).WithClock(clock.Now)

	for i := 0; i < 5; i++ {
		require.True(t, limiter.Admit("k"))
	}
	require.False(t, limiter.Admit("k"))

	clock.Advance(time.Hour + time.Second)
	assert.True(t, limiter.Admit("k"))
}

func TestSlidingWindowLimiter_DeniedCallsAreNotRecorded(t *testing.T) {
	clock := newFakeClock()
	limiter := NewSlidingWindowLimiter(2, 10*time.Minute).WithClock(clock.Now)

	require.True(t, limiter.Admit("k")) // t=0
	clock.Advance(5 * time.Minute)
	require.True(t, limiter.Admit("k")) // t=5m
	for i := 0; i < 10; i++ {
		require.False(t, limiter.Admit("k"))
	}

	// The t=0 entry expires exactly at t=10m; denied calls must not have extended the window.
	clock.Advance(5 * time.Minute)
	assert.True(t, limiter.Admit("k"))
	assert.False(t, limiter.Admit("k"))
}

func TestSlidingWindowLimiter_Defaults(t *testing.T) {
	limiter := NewSlidingWindowLimiter(0, 0)
	assert.Equal(t, DefaultRateLimit, limiter.limit)
	assert.Equal(t, DefaultRateWindow, limiter.window)
}

func TestSlidingWindowLimiter_Sweep(t *testing.T) {
	clock := newFakeClock()
	limiter := NewSlidingWindowLimiter(5, time.Hour).WithClock(clock.Now)

	limiter.Admit("old")
	clock.Advance(30 * time.Minute)
	limiter.Admit("recent")
	clock.Advance(31 * time.Minute)

	assert.Equal(t, 1, limiter.Sweep())
	assert.Len(t, limiter.hits, 1)
	assert.Contains(t, limiter.hits, "recent")
}

func TestSlidingWindowLimiter_RunSweeperStopsOnCancel(t *testing.T) {
	limiter := NewSlidingWindowLimiter(1, time.Millisecond)
	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})
	go func() {
		limiter.RunSweeper(ctx, time.Millisecond)
		close(done)
	}()
	cancel()
	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("sweeper did not stop after cancel")
	}
}

func TestSlidingWindowLimiter_Concurrent(t *testing.T) {
	limiter := NewSlidingWindowLimiter(5, time.Hour)

	var (
		wg      sync.WaitGroup
		mu      sync.Mutex
		allowed int
	)
	for i := 0; i < 40; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			if limiter.Admit("shared") {
				mu.Lock()
				allowed++
				mu.Unlock()
			}
		}()
	}
	wg.Wait()
	assert.Equal(t, 5, allowed)
}

func TestClientKey(t *testing.T) {
	tests := []struct {
		name    string
		headers map[string]string
		want    string
	}{
		{"forwarded chain uses first hop", map[string]string{"X-Forwarded-For": "203.0.113.7, 10.0.0.1"}, "203.0.113.7"},
		{"forwarded wins over real ip", map[string]string{"X-Forwarded-For": "203.0.113.7", "X-Real-Ip": "198.51.100.1"}, "203.0.113.7"},
		{"real ip fallback", map[string]string{"X-Real-Ip": "198.51.100.1"}, "198.51.100.1"},
		{"empty first hop falls back", map[string]string{"X-Forwarded-For": " , 10.0.0.1", "X-Real-Ip": "198.51.100.1"}, "198.51.100.1"},
		{"no headers", nil, UnknownClientKey},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodPost, "/api/intake", nil)
			for k, v := range tt.headers {
				req.Header.Set(k, v)
			}
			assert.Equal(t, tt.want, ClientKey(req))
		})
	}
}

func TestClientKeyContext(t *testing.T) {
	var got string
	h := ClientKeyContext(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		got = ClientKeyFromContext(r.Context())
	}))
	req := httptest.NewRequest(http.MethodPost, "/mcp", nil)
	req.Header.Set("X-Real-Ip", "198.51.100.9")
	h.ServeHTTP(httptest.NewRecorder(), req)

	assert.Equal(t, "198.51.100.9", got)
	assert.Equal(t, UnknownClientKey, ClientKeyFromContext(context.Background()))
}
