package ratelimiter

import (
	"net"
	"net/http"
	"strings"
	"sync"
	"time"

	"golang.org/x/time/rate"
)

const (
	defaultSourceKey = "X-Forwarded-For"
	idleTTL          = 10 * time.Minute
	sweepEvery       = 1024
)

type Limiter interface {
	Allow(sourceKey string) bool
	GetSourceKey(r *http.Request) string
	Remaining(sourceKey string) int
	GetMaxBurst() int
}

// RateLimiter keeps one token bucket per source.
type RateLimiter struct {
	limit           rate.Limit
	maxBurst        int
	sourceHeaderKey string
	now             func() time.Time

	mu      sync.Mutex
	buckets map[string]*bucket
	calls   int
}

type bucket struct {
	limiter  *rate.Limiter
	lastSeen time.Time
}

type Options struct {
	// Rate is tokens per Per; Per defaults to a second.
	Rate            int
	Per             time.Duration
	MaxBurst        int
	SourceHeaderKey string
	Now             func() time.Time
}

func New(options Options) *RateLimiter {
	if options.Per <= 0 {
		options.Per = time.Second
	}

	if options.MaxBurst <= 0 {
		options.MaxBurst = options.Rate // Reasonable default
	}

	if options.SourceHeaderKey == "" {
		options.SourceHeaderKey = defaultSourceKey
	}

	if options.Now == nil {
		options.Now = time.Now
	}

	return &RateLimiter{
		limit:           rate.Limit(float64(options.Rate) / options.Per.Seconds()),
		maxBurst:        options.MaxBurst,
		sourceHeaderKey: options.SourceHeaderKey,
		now:             options.Now,
		buckets:         make(map[string]*bucket),
	}
}

func (rl *RateLimiter) get(sourceKey string, now time.Time) *rate.Limiter {
	rl.mu.Lock()
	defer rl.mu.Unlock()

	rl.calls++
	if rl.calls%sweepEvery == 0 {
		rl.sweep(now)
	}

	b, ok := rl.buckets[sourceKey]
	if !ok {
		b = &bucket{limiter: rate.NewLimiter(rl.limit, rl.maxBurst)}
		rl.buckets[sourceKey] = b
	}
	b.lastSeen = now
	return b.limiter
}

// sweep drops buckets idle long enough to have refilled.
func (rl *RateLimiter) sweep(now time.Time) {
	for key, b := range rl.buckets {
		if now.Sub(b.lastSeen) > idleTTL {
			delete(rl.buckets, key)
		}
	}
}

func (rl *RateLimiter) Allow(sourceKey string) bool {
	now := rl.now()
	return rl.get(sourceKey, now).AllowN(now, 1)
}

func (rl *RateLimiter) Remaining(sourceKey string) int {
	now := rl.now()
	tokens := rl.get(sourceKey, now).TokensAt(now)
	if tokens < 0 {
		return 0
	}
	return int(tokens)
}

func (rl *RateLimiter) GetMaxBurst() int {
	return rl.maxBurst
}

// GetSourceKey prefers the first address of the configured header and falls
// back to the connection's host.
func (rl *RateLimiter) GetSourceKey(r *http.Request) string {
	if key := r.Header.Get(rl.sourceHeaderKey); key != "" {
		first, _, _ := strings.Cut(key, ",")
		return strings.TrimSpace(first)
	}

	// Fall back to IP address
	host, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		return r.RemoteAddr
	}
	return host
}
