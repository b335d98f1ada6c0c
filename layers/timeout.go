package layers

import (
	"context"
	"time"

	"github.com/leofalp/strata/core/service"
)

// Timeout is a layer that enforces a per-call deadline on the inner
// service.
type Timeout[Req, Resp any] struct {
	timeout time.Duration
}

// NewTimeout creates a Timeout layer. The timeout must be positive.
//
// The produced service wraps the call context with context.WithTimeout and
// defers cancel(), so the context is released once the inner service
// returns or the deadline expires. If the caller supplies a context that
// already has a shorter deadline, that shorter deadline wins as per normal
// context semantics.
func NewTimeout[Req, Resp any](timeout time.Duration) Timeout[Req, Resp] {
	return Timeout[Req, Resp]{timeout: timeout}
}

// Wrap returns a service that bounds every call to inner with the
// configured deadline.
func (l Timeout[Req, Resp]) Wrap(inner service.Service[Req, Resp]) service.Service[Req, Resp] {
	timeout := l.timeout

	return service.Func[Req, Resp](func(ctx context.Context, req Req) (Resp, error) {
		ctx, cancel := context.WithTimeout(ctx, timeout)
		defer cancel()

		return inner.Call(ctx, req)
	})
}
