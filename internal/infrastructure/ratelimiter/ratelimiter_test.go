package ratelimiter

import (
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestAllowRespectsBurstAndRefill(t *testing.T) {
	now := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	rl := New(Options{Rate: 1, MaxBurst: 2, Now: func() time.Time { return now }})

	assert.True(t, rl.Allow("a"))
	assert.True(t, rl.Allow("a"))
	assert.False(t, rl.Allow("a"))
	assert.Equal(t, 0, rl.Remaining("a"))

	// Other sources have their own bucket.
	assert.True(t, rl.Allow("b"))

	now = now.Add(time.Second)
	assert.True(t, rl.Allow("a"))
	assert.False(t, rl.Allow("a"))
}

func TestPerMinuteRate(t *testing.T) {
	now := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	rl := New(Options{Rate: 5, Per: time.Minute, Now: func() time.Time { return now }})
	assert.Equal(t, 5, rl.GetMaxBurst())

	for range 5 {
		assert.True(t, rl.Allow("x"))
	}
	assert.False(t, rl.Allow("x"))

	now = now.Add(12 * time.Second)
	assert.True(t, rl.Allow("x"))
}

func TestGetSourceKey(t *testing.T) {
	rl := New(Options{Rate: 1})

	r := httptest.NewRequest("GET", "/", nil)
	r.RemoteAddr = "10.0.0.7:52311"
	assert.Equal(t, "10.0.0.7", rl.GetSourceKey(r))

	r.Header.Set("X-Forwarded-For", "203.0.113.9, 10.0.0.1")
	assert.Equal(t, "203.0.113.9", rl.GetSourceKey(r))
}

func TestSweepDropsIdleBuckets(t *testing.T) {
	now := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	rl := New(Options{Rate: 1, Now: func() time.Time { return now }})

	rl.Allow("idle")
	now = now.Add(idleTTL + time.Second)
	for i := 0; i < sweepEvery; i++ {
		rl.Allow("busy")
	}

	rl.mu.Lock()
	defer rl.mu.Unlock()
	assert.NotContains(t, rl.buckets, "idle")
	assert.Contains(t, rl.buckets, "busy")
}
