// Package registry provides lazy, memoized service construction keyed by
// service type and an optional tag.
//
// Builders are registered up front and run on first resolution:
//
//	reg := registry.New()
//
//	registry.Provide(reg, "", func(ctx context.Context) (service.Service[httpx.Request, httpx.Response], error) {
//	    return httpx.New(), nil
//	})
//
//	svc, err := registry.Resolve[service.Service[httpx.Request, httpx.Response]](ctx, reg, "")
//
// A successful build is cached for the registry's lifetime. A failed build
// is not: the next Resolve retries it. Concurrent resolutions of the same
// key share one build instead of racing.
package registry
