package middleware

import (
	"context"
	"net/http"
	"strings"
	"sync"
	"time"
)

// Default sliding window applied to intake submissions.
const (
	DefaultRateLimit  = 5
	DefaultRateWindow = time.Hour
)

// UnknownClientKey is the shared bucket for requests without forwarding headers.
const UnknownClientKey = "unknown"

// SlidingWindowLimiter admits at most limit events per key within a trailing window.
// It is process-local best-effort abuse mitigation, not a security control.
type SlidingWindowLimiter struct {
	mu     sync.Mutex
	hits   map[string][]time.Time
	limit  int
	window time.Duration
	now    func() time.Time
}

// NewSlidingWindowLimiter creates a limiter; non-positive arguments fall back to the defaults.
func NewSlidingWindowLimiter(limit int, window time.Duration) *SlidingWindowLimiter {
	if limit <= 0 {
		limit = DefaultRateLimit
	}
	if window <= 0 {
		window = DefaultRateWindow
	}
	return &SlidingWindowLimiter{
		hits:   make(map[string][]time.Time),
		limit:  limit,
		window: window,
		now:    time.Now,
	}
}

// WithClock overrides the time source, for tests.
func (l *SlidingWindowLimiter) WithClock(now func() time.Time) *SlidingWindowLimiter {
	if now != nil {
		l.now = now
	}
	return l
}

// Admit prunes expired timestamps for key and records now if the key is under its limit.
// A denied call records nothing.
func (l *SlidingWindowLimiter) Admit(key string) bool {
	l.mu.Lock()
	defer l.mu.Unlock()

	now := l.now()
	live := pruneExpired(l.hits[key], now, l.window)
	if len(live) >= l.limit {
		l.hits[key] = live
		return false
	}
	l.hits[key] = append(live, now)
	return true
}

// Sweep drops keys with no live timestamps so idle clients do not accumulate.
func (l *SlidingWindowLimiter) Sweep() int {
	l.mu.Lock()
	defer l.mu.Unlock()

	now := l.now()
	removed := 0
	for key, stamps := range l.hits {
		live := pruneExpired(stamps, now, l.window)
		if len(live) == 0 {
			delete(l.hits, key)
			removed++
			continue
		}
		l.hits[key] = live
	}
	return removed
}

// RunSweeper calls Sweep every interval until ctx is cancelled.
func (l *SlidingWindowLimiter) RunSweeper(ctx context.Context, interval time.Duration) {
	if interval <= 0 {
		return
	}
	ticker := time.NewTicker(interval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			l.Sweep()
		}
	}
}

// pruneExpired keeps timestamps t with now-t < window. Timestamps are appended
// in order, so the live suffix starts at the first unexpired entry.
func pruneExpired(stamps []time.Time, now time.Time, window time.Duration) []time.Time {
	i := 0
	for i < len(stamps) && now.Sub(stamps[i]) >= window {
		i++
	}
	if i == 0 {
		return stamps
	}
	return append([]time.Time(nil), stamps[i:]...)
}

type clientKeyCtxKey struct{}

// ClientKey derives the rate-limit key: first X-Forwarded-For hop, then X-Real-Ip,
// then the shared "unknown" bucket. Forwarding headers are trusted as sent.
func ClientKey(r *http.Request) string {
	if fwd := r.Header.Get("X-Forwarded-For"); fwd != "" {
		first, _, _ := strings.Cut(fwd, ",")
		if first = strings.TrimSpace(first); first != "" {
			return first
		}
	}
	if realIP := strings.TrimSpace(r.Header.Get("X-Real-Ip")); realIP != "" {
		return realIP
	}
	return UnknownClientKey
}

// ClientKeyContext stores ClientKey on the request context for in-process callers.
func ClientKeyContext(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ctx := WithClientKey(r.Context(), ClientKey(r))
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// WithClientKey returns a context carrying key.
func WithClientKey(ctx context.Context, key string) context.Context {
	return context.WithValue(ctx, clientKeyCtxKey{}, key)
}

// ClientKeyFromContext returns the stored key or UnknownClientKey.
func ClientKeyFromContext(ctx context.Context) string {
	if key, ok := ctx.Value(clientKeyCtxKey{}).(string); ok && key != "" {
		return key
	}
	return UnknownClientKey
}
