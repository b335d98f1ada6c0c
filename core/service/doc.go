// Package service defines the two abstractions everything in strata is
// built from: [Service], an async capability mapping a typed request to a
// typed response or error, and [Layer], a factory wrapping one service
// into another to add cross-cutting behavior.
//
// # Services
//
// A Service exposes a single operation:
//
//	Call(ctx context.Context, req Req) (Resp, error)
//
// Transports sit at the bottom of a pipeline (see transport/httpx), and
// any function can become a Service via [Func]:
//
//	upper := service.Func[string, string](func(_ context.Context, s string) (string, error) {
//	    return strings.ToUpper(s), nil
//	})
//
// # Layers
//
// A Layer transforms services:
//
//	Wrap(inner In) Out
//
// Concrete layers live in the layers package; pipelines are assembled
// with core/pipeline. Because layers are typed by the service they accept
// and the service they produce, the compiler rejects a pipeline whose
// stages do not line up.
package service
