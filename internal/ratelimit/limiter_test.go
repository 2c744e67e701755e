package ratelimit

import (
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeClock lets tests move time explicitly.
type fakeClock struct {
	now time.Time
}

func (f *fakeClock) Now() time.Time          { return f.now }
func (f *fakeClock) Advance(d time.Duration) { f.now = f.now.Add(d) }

func newTestLimiter() (*Limiter, *fakeClock) {
	clock := &fakeClock{now: time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)}
	limits := map[string]Config{
		TypeAuth: {Window: 15 * time.Minute, Max: 5},
		TypeAPI:  {Window: time.Minute, Max: 3},
	}
	return New(limits, clock.Now), clock
}

func TestAllowUpToMax(t *testing.T) {
	l, _ := newTestLimiter()

	for i := 0; i < 5; i++ {
		allowed, _ := l.Allow(TypeAuth, "1.2.3.4")
		require.True(t, allowed, "request %d should be allowed", i+1)
	}

	allowed, retryAfter := l.Allow(TypeAuth, "1.2.3.4")
	assert.False(t, allowed)
	assert.Equal(t, 15*time.Minute, retryAfter)
}

func TestRetryAfterShrinksWithinWindow(t *testing.T) {
	l, clock := newTestLimiter()

	for i := 0; i < 5; i++ {
		l.Allow(TypeAuth, "1.2.3.4")
	}
	clock.Advance(10 * time.Minute)

	allowed, retryAfter := l.Allow(TypeAuth, "1.2.3.4")
	assert.False(t, allowed)
	assert.Equal(t, 5*time.Minute, retryAfter)
}

func TestWindowResets(t *testing.T) {
	l, clock := newTestLimiter()

	for i := 0; i < 5; i++ {
		l.Allow(TypeAuth, "1.2.3.4")
	}
	allowed, _ := l.Allow(TypeAuth, "1.2.3.4")
	require.False(t, allowed)

	clock.Advance(15*time.Minute + time.Second)

	allowed, retryAfter := l.Allow(TypeAuth, "1.2.3.4")
	assert.True(t, allowed)
	assert.Zero(t, retryAfter)
}

func TestKeysAreIndependent(t *testing.T) {
	l, _ := newTestLimiter()

	for i := 0; i < 5; i++ {
		l.Allow(TypeAuth, "1.2.3.4")
	}
	allowed, _ := l.Allow(TypeAuth, "1.2.3.4")
	require.False(t, allowed)

	allowed, _ = l.Allow(TypeAuth, "5.6.7.8")
	assert.True(t, allowed)
}

func TestLimitTypesAreIndependent(t *testing.T) {
	l, _ := newTestLimiter()

	for i := 0; i < 3; i++ {
		l.Allow(TypeAPI, "1.2.3.4")
	}
	allowed, _ := l.Allow(TypeAPI, "1.2.3.4")
	require.False(t, allowed)

	allowed, _ = l.Allow(TypeAuth, "1.2.3.4")
	assert.True(t, allowed)
}

func TestUnknownTypeFailsOpen(t *testing.T) {
	l, _ := newTestLimiter()

	for i := 0; i < 100; i++ {
		allowed, _ := l.Allow("no-such-limit", "1.2.3.4")
		assert.True(t, allowed)
	}
}

func TestSweepDropsExpiredWindows(t *testing.T) {
	l, clock := newTestLimiter()

	for i := 0; i < 10; i++ {
		l.Allow(TypeAPI, fmt.Sprintf("10.0.0.%d", i))
	}
	require.Equal(t, 10, l.Len())

	l.Sweep()
	assert.Equal(t, 10, l.Len(), "live windows must survive a sweep")

	clock.Advance(2 * time.Minute)
	l.Sweep()
	assert.Zero(t, l.Len())
}

func TestDefaultLimits(t *testing.T) {
	limits := DefaultLimits()
	assert.Equal(t, Config{Window: 15 * time.Minute, Max: 5}, limits[TypeAuth])
	assert.Equal(t, Config{Window: time.Minute, Max: 100}, limits[TypeAPI])
	assert.Equal(t, Config{Window: time.Minute, Max: 10}, limits[TypeOpenAI])
}
