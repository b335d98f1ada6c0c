package layers

import (
	"context"
	"fmt"
	"sync"

	"github.com/leofalp/strata/core/service"
	"github.com/leofalp/strata/internal/urlx"
)

// Addressable is the request capability the origin layer operates on.
// WithTargetURL returns an updated copy and leaves the receiver unchanged.
type Addressable[Req any] interface {
	TargetURL() string
	WithTargetURL(url string) Req
}

// OriginConfig holds the origin sources for the origin layer. Exactly one
// of the two fields is normally set; a static Origin takes precedence.
type OriginConfig struct {
	// Origin is a static origin prefix for relative request URLs. When
	// set, it is used as-is and Resolve is never invoked.
	Origin string

	// Resolve supplies the origin on demand, for deployments where the
	// base URL comes from service discovery or remote configuration. The
	// first non-empty result is cached and reused by every later call;
	// empty results are never cached, so resolution is retried until an
	// origin appears.
	Resolve func(ctx context.Context) (string, error)
}

// Origin is a layer that prefixes relative request URLs with a resolved
// origin. Absolute URLs (http:// or https://, case-insensitive) pass
// through untouched.
//
// The resolved-origin cache is shared by every Service the layer produces,
// so one successful resolution serves all pipelines built from it.
type Origin[Req Addressable[Req], Resp any] struct {
	resolver *originResolver
}

// NewOrigin constructs an Origin layer from config.
//
// When a relative request arrives and no origin can be resolved, the call
// fails with [ErrEmptyOrigin] before reaching the inner service.
func NewOrigin[Req Addressable[Req], Resp any](config OriginConfig) Origin[Req, Resp] {
	return Origin[Req, Resp]{
		resolver: &originResolver{
			static:  config.Origin,
			resolve: config.Resolve,
		},
	}
}

// Wrap returns a service that rewrites relative request URLs to absolute
// ones before calling inner.
func (l Origin[Req, Resp]) Wrap(inner service.Service[Req, Resp]) service.Service[Req, Resp] {
	resolver := l.resolver

	return service.Func[Req, Resp](func(ctx context.Context, req Req) (Resp, error) {
		var zero Resp

		target := req.TargetURL()
		if urlx.IsAbsolute(target) {
			return inner.Call(ctx, req)
		}

		origin, err := resolver.origin(ctx)
		if err != nil {
			return zero, fmt.Errorf("origin resolution failed: %w", err)
		}
		if origin == "" {
			return zero, ErrEmptyOrigin
		}

		return inner.Call(ctx, req.WithTargetURL(urlx.Combine(origin, target)))
	})
}

// originResolver caches the first non-empty origin a provider returns.
type originResolver struct {
	static  string
	resolve func(ctx context.Context) (string, error)

	mu     sync.Mutex
	cached string
}

// origin returns the configured or resolved origin. An empty return with a
// nil error means no origin is available.
func (r *originResolver) origin(ctx context.Context) (string, error) {
	if r.static != "" {
		return r.static, nil
	}
	if r.resolve == nil {
		return "", nil
	}

	r.mu.Lock()
	cached := r.cached
	r.mu.Unlock()

	if cached != "" {
		return cached, nil
	}

	// The provider may suspend, so it runs without the lock held.
	// Concurrent first calls may each invoke it; the first non-empty
	// result wins the cache and later winners adopt it.
	origin, err := r.resolve(ctx)
	if err != nil {
		return "", err
	}
	if origin == "" {
		return "", nil
	}

	r.mu.Lock()
	if r.cached == "" {
		r.cached = origin
	}
	origin = r.cached
	r.mu.Unlock()

	return origin, nil
}
