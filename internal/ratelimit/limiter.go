package ratelimit

import (
	"context"
	"sync"
	"time"

	"github.com/rs/zerolog"
)

// Limiter is the injected throttle capability. Allow reports whether the
// caller identified by key may proceed and records the attempt when it may.
type Limiter interface {
	Allow(key string) bool
}

type bucket struct {
	windowStart time.Time
	count       int
}

// WindowLimiter counts requests per key in fixed time windows. The store is
// bounded: entries are swept once their window lapses, and when the entry
// cap is hit new keys are refused rather than growing the map.
type WindowLimiter struct {
	mu         sync.Mutex
	entries    map[string]*bucket
	limit      int
	window     time.Duration
	maxEntries int
	now        func() time.Time
}

// NewWindowLimiter creates a limiter allowing limit requests per window per
// key, holding at most maxEntries keys
func NewWindowLimiter(limit int, window time.Duration, maxEntries int) *WindowLimiter {
	return &WindowLimiter{
		entries:    make(map[string]*bucket),
		limit:      limit,
		window:     window,
		maxEntries: maxEntries,
		now:        time.Now,
	}
}

// Allow reports whether key may proceed and counts the attempt
func (l *WindowLimiter) Allow(key string) bool {
	l.mu.Lock()
	defer l.mu.Unlock()

	now := l.now()
	b, ok := l.entries[key]
	if !ok || now.Sub(b.windowStart) >= l.window {
		if !ok && len(l.entries) >= l.maxEntries {
			// Reclaim lapsed entries before refusing a new key
			l.sweepLocked(now)
			if len(l.entries) >= l.maxEntries {
				return false
			}
		}
		l.entries[key] = &bucket{windowStart: now, count: 1}
		return true
	}

	if b.count >= l.limit {
		return false
	}
	b.count++
	return true
}

// Len returns the number of tracked keys
func (l *WindowLimiter) Len() int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return len(l.entries)
}

func (l *WindowLimiter) sweepLocked(now time.Time) {
	for key, b := range l.entries {
		if now.Sub(b.windowStart) >= l.window {
			delete(l.entries, key)
		}
	}
}

// StartSweeper periodically drops lapsed entries until ctx is cancelled
func (l *WindowLimiter) StartSweeper(ctx context.Context, log zerolog.Logger) {
	ticker := time.NewTicker(l.window)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			log.Info().Msg("Rate limit sweeper stopping")
			return
		case <-ticker.C:
			l.mu.Lock()
			before := len(l.entries)
			l.sweepLocked(l.now())
			after := len(l.entries)
			l.mu.Unlock()
			if before != after {
				log.Debug().Int("swept", before-after).Int("remaining", after).Msg("Rate limit entries swept")
			}
		}
	}
}
