package layers

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/leofalp/strata/core/service"
)

// RateLimitConfig holds the tuning parameters for the token-bucket rate
// limit layer. Zero values are replaced with the defaults documented below
// when NewRateLimit is called.
type RateLimitConfig struct {
	// TokensPerSecond is the bucket refill rate. Values of zero or below
	// are replaced with the default. Default: 5.
	TokensPerSecond float64

	// MaxTokens is the bucket capacity and the initial token count, so a
	// fresh pipeline absorbs a burst of this size before throttling.
	// Values of zero or below are replaced with the default. Default: 10.
	MaxTokens float64

	// NoWait makes the limiter fail fast: when no token is available the
	// call returns [ErrNoToken] immediately instead of suspending until
	// the bucket refills. The inner service is never invoked on that
	// path. Default: false (calls wait for a token).
	NoWait bool

	// MaxWait bounds the total time a single call may spend waiting for
	// a token. When the budget runs out before a token is acquired the
	// call fails with [ErrRateLimitWait]. Zero means no bound. Ignored
	// when NoWait is set. Default: 0.
	MaxWait time.Duration
}

// applyRateLimitDefaults fills in zero-valued fields in config with sensible defaults.
func applyRateLimitDefaults(config *RateLimitConfig) {
	if config.TokensPerSecond <= 0 {
		config.TokensPerSecond = 5
	}

	if config.MaxTokens <= 0 {
		config.MaxTokens = 10
	}

	if config.MaxWait < 0 {
		config.MaxWait = 0
	}
}

// RateLimit is a layer that throttles calls to the inner service with a
// token bucket. Tokens accumulate at [RateLimitConfig.TokensPerSecond] up
// to [RateLimitConfig.MaxTokens]; each call consumes one.
//
// Every Wrap produces a service with its own independent bucket, so two
// pipelines built from the same layer do not steal each other's tokens.
type RateLimit[Req, Resp any] struct {
	config RateLimitConfig
}

// NewRateLimit constructs a RateLimit layer from config. Zero-valued
// fields are replaced with safe defaults (see [RateLimitConfig]).
func NewRateLimit[Req, Resp any](config RateLimitConfig) RateLimit[Req, Resp] {
	applyRateLimitDefaults(&config)

	return RateLimit[Req, Resp]{config: config}
}

// Wrap returns a service that acquires a token before every call to inner.
// The returned service carries a fresh, fully-filled bucket.
func (l RateLimit[Req, Resp]) Wrap(inner service.Service[Req, Resp]) service.Service[Req, Resp] {
	return &rateLimited[Req, Resp]{
		inner:  inner,
		config: l.config,
		tokens: l.config.MaxTokens,
		last:   time.Now(),
	}
}

// rateLimited is the service a RateLimit layer produces. The bucket state
// is shared by all concurrent callers of this instance and guarded by mu;
// the lock is never held while suspended.
type rateLimited[Req, Resp any] struct {
	inner  service.Service[Req, Resp]
	config RateLimitConfig

	mu     sync.Mutex
	tokens float64
	last   time.Time
}

// Call acquires a token and then delegates to the inner service. Depending
// on configuration, an exhausted bucket makes the call suspend until a
// token accrues, fail with [ErrRateLimitWait] once the wait budget is
// spent, or fail immediately with [ErrNoToken].
func (s *rateLimited[Req, Resp]) Call(ctx context.Context, req Req) (Resp, error) {
	var zero Resp

	start := time.Now()
	for {
		wait, ok := s.acquire()
		if ok {
			return s.inner.Call(ctx, req)
		}

		if s.config.NoWait {
			return zero, ErrNoToken
		}

		if s.config.MaxWait > 0 {
			remaining := s.config.MaxWait - time.Since(start)
			if remaining <= 0 {
				return zero, ErrRateLimitWait.With("no token within %v", s.config.MaxWait)
			}
			// Sleep at most the remaining budget; the next pass either
			// acquires the token this bought or reports exhaustion.
			wait = min(wait, remaining)
		}

		select {
		case <-ctx.Done():
			return zero, fmt.Errorf("rate limit wait interrupted: %w", ctx.Err())
		case <-time.After(wait):
		}
	}
}

// acquire refills the bucket from elapsed wall-clock time and attempts to
// consume one token. When the bucket is short it reports how long the
// caller should suspend before the next token accrues.
func (s *rateLimited[Req, Resp]) acquire() (wait time.Duration, ok bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	now := time.Now()
	elapsed := now.Sub(s.last).Seconds()
	s.tokens = min(s.config.MaxTokens, s.tokens+elapsed*s.config.TokensPerSecond)
	s.last = now

	if s.tokens >= 1 {
		s.tokens--
		return 0, true
	}

	deficit := 1 - s.tokens
	return time.Duration(deficit / s.config.TokensPerSecond * float64(time.Second)), false
}
