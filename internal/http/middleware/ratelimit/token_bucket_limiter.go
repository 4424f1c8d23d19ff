package ratelimit

import (
	"sync"
	"time"
)

// Config stores TokenBucketLimiter settings.
type Config struct {
	Rate       float64       // tokens refilled per second
	Burst      int           // bucket capacity
	TTL        time.Duration // drop buckets idle for longer than this (0 keeps them forever)
	MaxBuckets int           // cap on tracked keys, 0 means unlimited
}

// TokenBucketLimiter keeps one token bucket per key.
type TokenBucketLimiter struct {
	cfg     Config
	clock   Clock
	mu      sync.RWMutex
	buckets map[string]*bucket
	sweptAt time.Time
}

type bucket struct {
	mu       sync.Mutex
	tokens   float64
	refillAt time.Time
	seenAt   time.Time
}

// NewTokenBucketLimiter creates a limiter with an injected clock so refill
// behavior can be tested deterministically.
func NewTokenBucketLimiter(clock Clock, cfg Config) *TokenBucketLimiter {
	if clock == nil {
		clock = RealClock{}
	}
	if cfg.Rate <= 0 {
		cfg.Rate = 1
	}
	if cfg.Burst <= 0 {
		cfg.Burst = 1
	}
	if cfg.MaxBuckets < 0 {
		cfg.MaxBuckets = 0
	}
	return &TokenBucketLimiter{
		cfg:     cfg,
		clock:   clock,
		buckets: make(map[string]*bucket),
	}
}

// Allow reports whether key may proceed, consuming one token when it can.
// A nil bucket means the tracked-key cap was hit; those requests are rejected.
func (l *TokenBucketLimiter) Allow(key string) bool {
	now := l.clock.Now()
	l.sweepIdle(now)
	b := l.lookupOrCreate(key, now)
	if b == nil {
		return false
	}
	return b.take(now, l.cfg.Rate, float64(l.cfg.Burst))
}

func (l *TokenBucketLimiter) lookupOrCreate(key string, now time.Time) *bucket {
	l.mu.RLock()
	b := l.buckets[key]
	l.mu.RUnlock()
	if b != nil {
		return b
	}

	l.mu.Lock()
	defer l.mu.Unlock()

	if b = l.buckets[key]; b != nil {
		return b
	}

	if l.cfg.MaxBuckets > 0 && len(l.buckets) >= l.cfg.MaxBuckets {
		return nil
	}

	// new keys start with a full bucket
	b = &bucket{
		tokens:   float64(l.cfg.Burst),
		refillAt: now,
		seenAt:   now,
	}
	l.buckets[key] = b
	return b
}

func (b *bucket) take(now time.Time, rate, burst float64) bool {
	b.mu.Lock()
	defer b.mu.Unlock()

	if dt := now.Sub(b.refillAt); dt > 0 {
		b.tokens += dt.Seconds() * rate
		if b.tokens > burst {
			b.tokens = burst
		}
		b.refillAt = now
	}
	b.seenAt = now

	if b.tokens < 1.0 {
		return false
	}
	b.tokens -= 1.0
	return true
}

// sweepIdle drops buckets not seen within TTL. Runs at most once per sweep
// interval so the map scan stays off the hot path.
func (l *TokenBucketLimiter) sweepIdle(now time.Time) {
	if l.cfg.TTL <= 0 {
		return
	}

	interval := time.Minute
	if half := l.cfg.TTL / 2; half > interval {
		interval = half
	}

	l.mu.Lock()
	defer l.mu.Unlock()

	if !l.sweptAt.IsZero() && now.Sub(l.sweptAt) < interval {
		return
	}
	l.sweptAt = now

	for k, b := range l.buckets {
		b.mu.Lock()
		seen := b.seenAt
		b.mu.Unlock()

		if now.Sub(seen) > l.cfg.TTL {
			delete(l.buckets, k)
		}
	}
}
