package app

import (
	"github.com/prometheus/client_golang/prometheus"
	"go.uber.org/dig"

	"eats-backend/internal/config"
	"eats-backend/internal/http/middleware/ratelimit"
	"eats-backend/internal/logx"
)

// maxRateLimitBuckets caps limiter memory under an address-spoofing flood.
const maxRateLimitBuckets = 100_000

func newRateLimiter(cfg *config.Config, clock ratelimit.Clock) ratelimit.Limiter {
	rl := cfg.RateLimit
	if !rl.Enabled {
		return ratelimit.NopLimiter{}
	}
	return ratelimit.NewTokenBucketPerWindow(clock, rl.Limit, rl.Window, rl.TTL, maxRateLimitBuckets)
}

func newRateLimitClock() ratelimit.Clock {
	return ratelimit.RealClock{}
}

type rateLimitIn struct {
	dig.In

	Logger  logx.Logger
	Counter prometheus.Counter `name:"rate_limit_exceeded_total"`
	Limiter ratelimit.Limiter
}

func newRateLimitMiddleware(in rateLimitIn) *ratelimit.Middleware {
	return ratelimit.New(in.Logger, in.Counter, in.Limiter)
}
