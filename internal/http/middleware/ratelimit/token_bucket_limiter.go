package ratelimit

import (
	"sync"
	"time"
)

// Config stores TokenBucketLimiter settings.
type Config struct {
	Rate       float64       // refill rate, tokens per second
	Burst      int           // bucket capacity
	TTL        time.Duration // idle buckets older than this are dropped (0 keeps them forever)
	MaxBuckets int           // hard cap on tracked keys (0 means unlimited)
}

// TokenBucketLimiter rate-limits independently per key. Each key owns a
// bucket that refills continuously and spends one token per request.
type TokenBucketLimiter struct {
	cfg   Config
	clock Clock

	mu      sync.RWMutex
	buckets map[string]*clientBucket
	swept   time.Time
}

type clientBucket struct {
	mu       sync.Mutex
	tokens   float64
	refilled time.Time
	touched  time.Time
}

// NewTokenBucketLimiter creates a limiter with an explicit config and an
// injected clock. Zero or negative config values fall back to minimums.
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
		buckets: make(map[string]*clientBucket),
	}
}

// NewTokenBucketPerWindow builds a limiter for "limit requests per window".
func NewTokenBucketPerWindow(clock Clock, limit int, window, ttl time.Duration, maxBuckets int) *TokenBucketLimiter {
	if limit <= 0 {
		limit = 1
	}
	if window <= 0 {
		window = time.Second
	}
	return NewTokenBucketLimiter(clock, Config{
		Rate:       float64(limit) / window.Seconds(),
		Burst:      limit,
		TTL:        ttl,
		MaxBuckets: maxBuckets,
	})
}

// Allow reports whether key may proceed now. When the key table is full,
// new keys are rejected until the sweeper frees space.
func (l *TokenBucketLimiter) Allow(key string) bool {
	now := l.clock.Now()
	l.sweepIdle(now)

	b := l.bucketFor(key, now)
	if b == nil {
		return false
	}
	return b.take(now, l.cfg.Rate, float64(l.cfg.Burst))
}

func (l *TokenBucketLimiter) bucketFor(key string, now time.Time) *clientBucket {
	l.mu.RLock()
	b := l.buckets[key]
	l.mu.RUnlock()
	if b != nil {
		return b
	}

	l.mu.Lock()
	defer l.mu.Unlock()

	// A concurrent request may have created it between the locks.
	if b = l.buckets[key]; b != nil {
		return b
	}
	if l.cfg.MaxBuckets > 0 && len(l.buckets) >= l.cfg.MaxBuckets {
		return nil
	}

	b = &clientBucket{
		tokens:   float64(l.cfg.Burst),
		refilled: now,
		touched:  now,
	}
	l.buckets[key] = b
	return b
}

func (b *clientBucket) take(now time.Time, rate, burst float64) bool {
	b.mu.Lock()
	defer b.mu.Unlock()

	if elapsed := now.Sub(b.refilled); elapsed > 0 {
		b.tokens += elapsed.Seconds() * rate
		if b.tokens > burst {
			b.tokens = burst
		}
		b.refilled = now
	}
	b.touched = now

	if b.tokens < 1 {
		return false
	}
	b.tokens--
	return true
}

// sweepIdle drops buckets idle past the TTL. Sweeps run at most once per
// max(TTL/2, 1m) so the hot path stays cheap.
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

	if !l.swept.IsZero() && now.Sub(l.swept) < interval {
		return
	}
	l.swept = now

	for key, b := range l.buckets {
		b.mu.Lock()
		idle := now.Sub(b.touched)
		b.mu.Unlock()

		if idle > l.cfg.TTL {
			delete(l.buckets, key)
		}
	}
}
