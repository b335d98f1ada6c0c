package layers

import (
	"context"
	"maps"

	"github.com/leofalp/strata/core/service"
)

// HeaderCarrier is the request capability the header injection layer
// operates on. WithHeader returns an updated copy and leaves the receiver
// unchanged.
type HeaderCarrier[Req any] interface {
	HeaderValue(key string) (string, bool)
	WithHeader(key, value string) Req
}

// HeaderInjectionConfig holds the header sources for the header injection
// layer.
type HeaderInjectionConfig struct {
	// Static headers are written as-is on every call.
	Static map[string]string

	// Lazy headers are computed synchronously at call time, for values
	// that change between calls such as timestamps or signatures.
	Lazy map[string]func() string

	// AsyncLazy headers are computed at call time and may suspend, for
	// values fetched from token endpoints or secret stores. A provider
	// error fails the call with [ErrHeaderProvider] before the inner
	// service runs.
	AsyncLazy map[string]func(ctx context.Context) (string, error)

	// OverrideExisting controls collisions with headers already present
	// on the incoming request: when false the existing value is kept and
	// the configured source for that key is skipped without being
	// evaluated, when true the injected value replaces it.
	OverrideExisting bool
}

// HeaderInjection is a layer that merges configured headers into every
// outgoing request.
//
// When several sources target the same key, async-lazy wins over lazy,
// which wins over static. Only the winning source is evaluated; shadowed
// and skipped providers never run.
type HeaderInjection[Req HeaderCarrier[Req], Resp any] struct {
	config HeaderInjectionConfig
}

// NewHeaderInjection constructs a HeaderInjection layer from config. The
// source maps are copied, so the caller may reuse or mutate its own maps
// afterwards.
func NewHeaderInjection[Req HeaderCarrier[Req], Resp any](config HeaderInjectionConfig) HeaderInjection[Req, Resp] {
	return HeaderInjection[Req, Resp]{config: HeaderInjectionConfig{
		Static:           maps.Clone(config.Static),
		Lazy:             maps.Clone(config.Lazy),
		AsyncLazy:        maps.Clone(config.AsyncLazy),
		OverrideExisting: config.OverrideExisting,
	}}
}

// Wrap returns a service that injects the configured headers into the
// request before calling inner.
func (l HeaderInjection[Req, Resp]) Wrap(inner service.Service[Req, Resp]) service.Service[Req, Resp] {
	config := l.config

	return service.Func[Req, Resp](func(ctx context.Context, req Req) (Resp, error) {
		var zero Resp

		// Keys already decided this call, either written by a
		// higher-precedence source or kept from the incoming request.
		handled := make(map[string]struct{}, len(config.AsyncLazy)+len(config.Lazy)+len(config.Static))

		shouldWrite := func(key string) bool {
			if _, done := handled[key]; done {
				return false
			}
			handled[key] = struct{}{}

			if !config.OverrideExisting {
				if _, exists := req.HeaderValue(key); exists {
					return false
				}
			}
			return true
		}

		for key, provide := range config.AsyncLazy {
			if !shouldWrite(key) {
				continue
			}

			value, err := provide(ctx)
			if err != nil {
				return zero, ErrHeaderProvider.With("header %q", key).Wrap(err)
			}
			req = req.WithHeader(key, value)
		}

		for key, provide := range config.Lazy {
			if !shouldWrite(key) {
				continue
			}
			req = req.WithHeader(key, provide())
		}

		for key, value := range config.Static {
			if !shouldWrite(key) {
				continue
			}
			req = req.WithHeader(key, value)
		}

		return inner.Call(ctx, req)
	})
}
