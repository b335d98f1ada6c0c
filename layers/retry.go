package layers

import (
	"context"
	"time"

	"github.com/leofalp/strata/core/service"
)

// RetryConfig holds the tuning parameters for the retry layer. Zero values
// are replaced with the defaults documented below when NewRetry is called.
type RetryConfig[Resp any] struct {
	// MaxAttempts is the total number of calls to the inner service,
	// counting the first one. Values below 1 are replaced with the
	// default. Default: 3.
	MaxAttempts int

	// Delay is the fixed wait between attempts. Zero starts the next
	// attempt immediately. There is no backoff growth and no jitter.
	Delay time.Duration

	// Challenge, when set, judges successful responses: returning false
	// marks the response unacceptable and the attempt counts as
	// retryable. Errors never reach the Challenge. On the final attempt
	// the response is returned as obtained even when rejected.
	Challenge func(Resp) bool
}

// applyRetryDefaults fills in zero-valued fields in config with sensible defaults.
func applyRetryDefaults[Resp any](config *RetryConfig[Resp]) {
	if config.MaxAttempts < 1 {
		config.MaxAttempts = 3
	}

	if config.Delay < 0 {
		config.Delay = 0
	}
}

// Retry is a layer that re-invokes the inner service until a response is
// acceptable or attempts run out, surfacing the final attempt's outcome
// either way.
type Retry[Req, Resp any] struct {
	config RetryConfig[Resp]
}

// NewRetry constructs a Retry layer from config. Zero-valued fields are
// replaced with safe defaults (see [RetryConfig]).
//
// Retry is the one layer that suppresses intermediate failures: errors
// and Challenge-rejected responses from attempts before the last are
// discarded, and only the final attempt's result reaches the caller. A
// success rejected by the Challenge on every attempt is still returned as
// a success, never converted into an error.
func NewRetry[Req, Resp any](config RetryConfig[Resp]) Retry[Req, Resp] {
	applyRetryDefaults(&config)

	return Retry[Req, Resp]{config: config}
}

// Wrap returns a service that retries calls to inner per the layer's
// configuration.
func (l Retry[Req, Resp]) Wrap(inner service.Service[Req, Resp]) service.Service[Req, Resp] {
	config := l.config

	return service.Func[Req, Resp](func(ctx context.Context, req Req) (Resp, error) {
		var (
			resp Resp
			err  error
		)

		for attempt := 1; attempt <= config.MaxAttempts; attempt++ {
			if attempt > 1 && config.Delay > 0 {
				// Respect context cancellation between attempts.
				select {
				case <-ctx.Done():
					var zero Resp
					return zero, ctx.Err()
				case <-time.After(config.Delay):
				}
			}

			resp, err = inner.Call(ctx, req)
			if err == nil && (config.Challenge == nil || config.Challenge(resp)) {
				return resp, nil
			}
		}

		// Final attempt's outcome: an error, or a success the Challenge
		// rejected.
		return resp, err
	})
}
