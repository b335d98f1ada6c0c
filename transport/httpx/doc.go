// Package httpx adapts net/http to the strata service model.
//
// [Client] implements service.Service[Request, Response]: one call, one
// HTTP exchange. [Request] and [Response] are plain value types whose
// methods satisfy the capability interfaces the layers package relies
// on, so a client composes directly with origin completion, header
// injection, retries and content extraction:
//
//	pipe := pipeline.New[service.Service[httpx.Request, httpx.Response]](httpx.New()).
//		Layer(layers.NewHeaderInjection[httpx.Request, httpx.Response](headerCfg)).
//		Layer(layers.NewOrigin[httpx.Request, httpx.Response](layers.OriginConfig{
//			Origin: "https://api.example.com",
//		})).
//		Layer(layers.NewRetry[httpx.Request, httpx.Response](layers.RetryConfig[httpx.Response]{
//			Challenge: httpx.Response.OK,
//		}))
//	svc := pipe.Build()
//
// The transport itself is deliberately dumb: it never retries, never
// waits, never rewrites URLs, and reports every received response as a
// success. Status-code policy, like every other call policy, belongs to
// the layers stacked on top.
package httpx
