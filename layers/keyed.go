package layers

import (
	"context"
	"fmt"
	"sync"
	"time"

	"golang.org/x/time/rate"

	"github.com/leofalp/strata/core/service"
)

// KeyedRateLimitConfig holds the tuning parameters for the keyed rate
// limit layer. Zero values are replaced with the defaults documented below
// when NewKeyedRateLimit is called.
type KeyedRateLimitConfig[Req any] struct {
	// Key derives the throttling key from a request, so calls are
	// limited per tenant, per host, per API key, or whatever the
	// function extracts. A nil Key throttles all requests through a
	// single shared bucket. Default: nil.
	Key func(Req) string

	// TokensPerSecond is the refill rate of each key's bucket. Values of
	// zero or below are replaced with the default. Default: 5.
	TokensPerSecond float64

	// Burst is the capacity of each key's bucket. Values of zero or
	// below are replaced with the default. Default: 10.
	Burst int

	// NoWait makes the limiter fail fast: when a key's bucket is empty
	// the call returns [ErrNoToken] immediately instead of suspending.
	// Default: false (calls wait for a token).
	NoWait bool

	// MaxWait bounds the total time a single call may spend waiting for
	// a token. When the budget runs out before a token is acquired the
	// call fails with [ErrRateLimitWait]; a wait that could never finish
	// inside the budget fails immediately rather than sleeping it out
	// (unlike [RateLimitConfig.MaxWait]). Zero means no bound. Ignored
	// when NoWait is set. Default: 0.
	MaxWait time.Duration

	// IdleTTL is how long an unused key's bucket is kept before being
	// evicted. Values of zero or below are replaced with the default.
	// Default: 5 minutes.
	IdleTTL time.Duration
}

// applyKeyedRateLimitDefaults fills in zero-valued fields in config with sensible defaults.
func applyKeyedRateLimitDefaults[Req any](config *KeyedRateLimitConfig[Req]) {
	if config.TokensPerSecond <= 0 {
		config.TokensPerSecond = 5
	}

	if config.Burst <= 0 {
		config.Burst = 10
	}

	if config.MaxWait < 0 {
		config.MaxWait = 0
	}

	if config.IdleTTL <= 0 {
		config.IdleTTL = 5 * time.Minute
	}
}

// KeyedRateLimit is a layer that throttles calls per key instead of
// globally: each distinct value of [KeyedRateLimitConfig.Key] gets its own
// token bucket. Buckets for idle keys are evicted after
// [KeyedRateLimitConfig.IdleTTL] so the key space may be unbounded.
//
// Every Wrap produces a service with its own independent bucket map.
type KeyedRateLimit[Req, Resp any] struct {
	config KeyedRateLimitConfig[Req]
}

// NewKeyedRateLimit constructs a KeyedRateLimit layer from config.
// Zero-valued fields are replaced with safe defaults (see
// [KeyedRateLimitConfig]).
func NewKeyedRateLimit[Req, Resp any](config KeyedRateLimitConfig[Req]) KeyedRateLimit[Req, Resp] {
	applyKeyedRateLimitDefaults(&config)

	return KeyedRateLimit[Req, Resp]{config: config}
}

// Wrap returns a service that acquires a token for the request's key
// before every call to inner.
func (l KeyedRateLimit[Req, Resp]) Wrap(inner service.Service[Req, Resp]) service.Service[Req, Resp] {
	return &keyedLimited[Req, Resp]{
		inner:     inner,
		config:    l.config,
		limiters:  make(map[string]*keyedEntry),
		lastSweep: time.Now(),
	}
}

// keyedLimited is the service a KeyedRateLimit layer produces. The bucket
// map is shared by all concurrent callers of this instance and guarded by
// mu; the lock is never held while suspended.
type keyedLimited[Req, Resp any] struct {
	inner  service.Service[Req, Resp]
	config KeyedRateLimitConfig[Req]

	mu        sync.Mutex
	limiters  map[string]*keyedEntry
	lastSweep time.Time
}

// keyedEntry tracks one key's limiter and its last activity for eviction.
type keyedEntry struct {
	limiter  *rate.Limiter
	lastSeen time.Time
}

// Call acquires a token for the request's key and then delegates to the
// inner service.
func (s *keyedLimited[Req, Resp]) Call(ctx context.Context, req Req) (Resp, error) {
	var zero Resp

	var key string
	if s.config.Key != nil {
		key = s.config.Key(req)
	}
	limiter := s.limiterFor(key)

	if s.config.NoWait {
		if !limiter.Allow() {
			return zero, ErrNoToken
		}
		return s.inner.Call(ctx, req)
	}

	waitCtx := ctx
	if s.config.MaxWait > 0 {
		var cancel context.CancelFunc
		waitCtx, cancel = context.WithTimeout(ctx, s.config.MaxWait)
		defer cancel()
	}

	if err := limiter.Wait(waitCtx); err != nil {
		if ctx.Err() != nil {
			return zero, fmt.Errorf("rate limit wait interrupted: %w", ctx.Err())
		}
		return zero, ErrRateLimitWait.Wrap(err)
	}

	return s.inner.Call(ctx, req)
}

// limiterFor returns the limiter for key, creating it on first use. Idle
// entries are evicted opportunistically, at most once per TTL window, so
// the map does not grow without bound when keys churn.
func (s *keyedLimited[Req, Resp]) limiterFor(key string) *rate.Limiter {
	s.mu.Lock()
	defer s.mu.Unlock()

	now := time.Now()
	if now.Sub(s.lastSweep) > s.config.IdleTTL {
		for k, e := range s.limiters {
			if now.Sub(e.lastSeen) > s.config.IdleTTL {
				delete(s.limiters, k)
			}
		}
		s.lastSweep = now
	}

	e, ok := s.limiters[key]
	if !ok {
		e = &keyedEntry{
			limiter: rate.NewLimiter(rate.Limit(s.config.TokensPerSecond), s.config.Burst),
		}
		s.limiters[key] = e
	}
	e.lastSeen = now

	return e.limiter
}
