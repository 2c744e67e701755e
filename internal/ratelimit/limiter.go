// Package ratelimit implements fixed-window request counting keyed by
// (limit type, client key). State is process-local: it neither survives
// restarts nor coordinates across instances, which is acceptable for a
// single-node deployment.
package ratelimit

import (
	"fmt"
	"sync"
	"time"
)

// Limit names used across the API.
const (
	TypeAuth   = "auth"
	TypeAPI    = "api"
	TypeOpenAI = "openai"
)

// Config describes one fixed window.
type Config struct {
	Window time.Duration
	Max    int
}

// DefaultLimits mirrors the documented thresholds: 5 auth attempts per
// 15 minutes, 100 general API requests per minute, 10 AI generations per minute.
func DefaultLimits() map[string]Config {
	return map[string]Config{
		TypeAuth:   {Window: 15 * time.Minute, Max: 5},
		TypeAPI:    {Window: time.Minute, Max: 100},
		TypeOpenAI: {Window: time.Minute, Max: 10},
	}
}

type entry struct {
	count   int
	resetAt time.Time
}

// Limiter counts requests per (limitType, key) window. The clock is
// injected so tests control time.
type Limiter struct {
	mu      sync.Mutex
	limits  map[string]Config
	entries map[string]*entry
	now     func() time.Time
	done    chan struct{}
	once    sync.Once
}

func New(limits map[string]Config, now func() time.Time) *Limiter {
	if limits == nil {
		limits = DefaultLimits()
	}
	if now == nil {
		now = time.Now
	}
	return &Limiter{
		limits:  limits,
		entries: make(map[string]*entry),
		now:     now,
		done:    make(chan struct{}),
	}
}

// Allow records one request and reports whether it fits in the current
// window. When denied, retryAfter is the time until the window resets.
func (l *Limiter) Allow(limitType, key string) (allowed bool, retryAfter time.Duration) {
	cfg, ok := l.limits[limitType]
	if !ok {
		// Unknown limit types fail open.
		return true, 0
	}

	storeKey := fmt.Sprintf("%s:%s", limitType, key)
	now := l.now()

	l.mu.Lock()
	defer l.mu.Unlock()

	e, ok := l.entries[storeKey]
	if !ok || now.After(e.resetAt) {
		l.entries[storeKey] = &entry{count: 1, resetAt: now.Add(cfg.Window)}
		return true, 0
	}

	if e.count >= cfg.Max {
		return false, e.resetAt.Sub(now)
	}

	e.count++
	return true, 0
}

// StartSweep launches a background purge of expired windows.
func (l *Limiter) StartSweep(interval time.Duration) {
	go func() {
		ticker := time.NewTicker(interval)
		defer ticker.Stop()
		for {
			select {
			case <-ticker.C:
				l.Sweep()
			case <-l.done:
				return
			}
		}
	}()
}

// Sweep removes expired windows. Exported so tests can drive it directly.
func (l *Limiter) Sweep() {
	now := l.now()
	l.mu.Lock()
	defer l.mu.Unlock()
	for key, e := range l.entries {
		if now.After(e.resetAt) {
			delete(l.entries, key)
		}
	}
}

// Stop terminates the sweep goroutine.
func (l *Limiter) Stop() {
	l.once.Do(func() { close(l.done) })
}

// Len reports the number of live windows; used by tests and debug logging.
func (l *Limiter) Len() int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return len(l.entries)
}
