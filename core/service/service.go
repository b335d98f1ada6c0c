package service

import "context"

// Service is an asynchronous capability mapping a typed request to a typed
// response or an error. It is the unit of composition: transports implement
// it at the bottom of a pipeline, and every layer both consumes and
// produces it.
//
// Call blocks until the outcome is available, honoring ctx for
// cancellation and deadlines. The abstraction guarantees nothing about
// idempotence or side effects; those are properties of each
// implementation. Implementations must be safe for concurrent use when
// shared across goroutines.
type Service[Req, Resp any] interface {
	Call(ctx context.Context, req Req) (Resp, error)
}

// Func adapts an ordinary function to the [Service] interface, the same
// way http.HandlerFunc adapts functions to http.Handler.
//
//	echo := service.Func[string, string](func(_ context.Context, s string) (string, error) {
//	    return s, nil
//	})
type Func[Req, Resp any] func(ctx context.Context, req Req) (Resp, error)

// Call invokes the function.
func (f Func[Req, Resp]) Call(ctx context.Context, req Req) (Resp, error) {
	return f(ctx, req)
}

// Layer wraps a service of type In into a service of type Out, adding
// cross-cutting behavior. In and Out are service types; for most layers
// they are the same [Service] instantiation, while type-changing layers
// (content extraction) differ in the response type.
//
// A Layer never calls the inner service directly: only the Service
// returned by Wrap does, per call. Wrap must be callable multiple times to
// build independent pipelines from one configuration; it returns a fresh
// Service whenever the produced Service carries per-pipeline mutable state
// (a token bucket, a circuit breaker), while immutable configuration may
// be shared across the Services it produces.
type Layer[In, Out any] interface {
	Wrap(inner In) Out
}

// LayerFunc adapts a function to the [Layer] interface.
type LayerFunc[In, Out any] func(inner In) Out

// Wrap invokes the function.
func (f LayerFunc[In, Out]) Wrap(inner In) Out {
	return f(inner)
}
