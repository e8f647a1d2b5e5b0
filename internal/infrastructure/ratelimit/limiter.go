package ratelimit

import (
	"context"
	"fmt"
	"time"

	echomw "github.com/labstack/echo/v4/middleware"
)

var _ echomw.RateLimiterStore = (*FixedWindow)(nil)

// FixedWindow allows at most max requests per identifier in each window.
// Windows are aligned to multiples of the window length since the Unix epoch.
// It satisfies echo's middleware.RateLimiterStore.
type FixedWindow struct {
	store   Store
	window  time.Duration
	max     int64
	timeout time.Duration
	now     func() time.Time
}

// NewFixedWindow creates a limiter backed by store
func NewFixedWindow(store Store, window time.Duration, max int64) *FixedWindow {
	return &FixedWindow{
		store:   store,
		window:  window,
		max:     max,
		timeout: time.Second,
		now:     time.Now,
	}
}

// Allow counts one request for identifier and reports whether it is within the cap
func (l *FixedWindow) Allow(identifier string) (bool, error) {
	ctx, cancel := context.WithTimeout(context.Background(), l.timeout)
	defer cancel()

	count, err := l.store.Increment(ctx, l.key(identifier), l.window)
	if err != nil {
		return false, err
	}
	return count <= l.max, nil
}

// key is derived from the client identity and the window start in Unix seconds
func (l *FixedWindow) key(identifier string) string {
	return fmt.Sprintf("%s:%d", identifier, l.windowStart(l.now()))
}

func (l *FixedWindow) windowStart(now time.Time) int64 {
	size := int64(l.window / time.Second)
	if size < 1 {
		size = 1
	}
	unix := now.Unix()
	return unix - unix%size
}
