package layers

import (
	"context"
	"time"

	"github.com/sony/gobreaker"

	"github.com/leofalp/strata/core/service"
)

// BreakerConfig holds the circuit breaker settings for the breaker layer.
// Apart from Name, zero values fall back to gobreaker's own defaults.
type BreakerConfig struct {
	// Name identifies the breaker in gobreaker's errors and state-change
	// reporting. Default: "strata".
	Name string

	// MaxRequests is the number of probe requests allowed through while
	// the breaker is half-open. Zero means one.
	MaxRequests uint32

	// Interval is the cyclic period of the closed state, after which the
	// breaker clears its failure counts. Zero keeps counts indefinitely.
	Interval time.Duration

	// Timeout is how long the breaker stays open before moving to
	// half-open. Zero means 60 seconds.
	Timeout time.Duration

	// ReadyToTrip decides, from the breaker's counts, when the closed
	// breaker trips open. Nil trips after more than 5 consecutive
	// failures.
	ReadyToTrip func(counts gobreaker.Counts) bool
}

// Breaker is a layer that guards the inner service with a circuit breaker.
// While the circuit is open, calls fail immediately with
// [gobreaker.ErrOpenState] and the inner service is not invoked.
//
// Every Wrap produces a service with its own breaker, so two pipelines
// trip independently.
type Breaker[Req, Resp any] struct {
	config BreakerConfig
}

// NewBreaker constructs a Breaker layer from config.
func NewBreaker[Req, Resp any](config BreakerConfig) Breaker[Req, Resp] {
	if config.Name == "" {
		config.Name = "strata"
	}

	return Breaker[Req, Resp]{config: config}
}

// Wrap returns a service that routes every call to inner through a fresh
// circuit breaker.
func (l Breaker[Req, Resp]) Wrap(inner service.Service[Req, Resp]) service.Service[Req, Resp] {
	cb := gobreaker.NewCircuitBreaker(gobreaker.Settings{
		Name:        l.config.Name,
		MaxRequests: l.config.MaxRequests,
		Interval:    l.config.Interval,
		Timeout:     l.config.Timeout,
		ReadyToTrip: l.config.ReadyToTrip,
	})

	return service.Func[Req, Resp](func(ctx context.Context, req Req) (Resp, error) {
		out, err := cb.Execute(func() (any, error) {
			return inner.Call(ctx, req)
		})
		if err != nil {
			var zero Resp
			return zero, err
		}

		// A comma-ok assertion keeps a nil any from panicking when Resp
		// is an interface type.
		resp, _ := out.(Resp)
		return resp, nil
	})
}
