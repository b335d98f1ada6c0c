// Package pipeline assembles services from layers with compile-time type
// checking: a layer whose input service type does not match the pipeline's
// current service type is a build error, not a runtime surprise.
//
// # Usage
//
//	svc := pipeline.New(base).
//	    Layer(layers.NewRetry[Req, Resp](layers.RetryConfig[Resp]{MaxAttempts: 3})).
//	    Layer(layers.NewRateLimit[Req, Resp](layers.RateLimitConfig{})).
//	    Build()
//
// Layers apply innermost-first: the layer listed last is the outermost
// wrapper. In the example above a request travels:
//
//	RateLimit (outermost) → Retry → base
//
// and the response travels back in reverse:
//
//	base → Retry → RateLimit (outermost)
//
// Building the pipeline is equivalent to nesting the wraps by hand:
// New(s).Layer(l1).Layer(l2).Build() is exactly l2.Wrap(l1.Wrap(s)).
//
// # Type-changing steps
//
// Layers that change the service type, such as content extraction, go
// through [Apply]:
//
//	extracted := pipeline.Apply(
//	    pipeline.New(httpSvc),
//	    layers.NewExtract[httpx.Request, httpx.Response](decoders),
//	).Build()
package pipeline
