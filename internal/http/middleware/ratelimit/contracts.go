package ratelimit

import "time"

// Limiter decides per key whether a request may proceed.
type Limiter interface {
	Allow(key string) bool
}

// Clock provides the current time; injected so limiter tests can steer it.
type Clock interface {
	Now() time.Time
}

// RealClock is the wall clock.
type RealClock struct{}

// Now returns the current time.
func (RealClock) Now() time.Time { return time.Now() }

// NopLimiter admits everything. Used when rate limiting is disabled.
type NopLimiter struct{}

// Allow always returns true.
func (NopLimiter) Allow(string) bool { return true }

// NewNopLimiter returns a NopLimiter.
func NewNopLimiter() Limiter { return NopLimiter{} }
