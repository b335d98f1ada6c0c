// Package layers provides the built-in middleware layers for strata
// pipelines. Each layer is constructed via a New* function and applied to
// a base service with [github.com/leofalp/strata/core/pipeline].
//
// # Available Layers
//
//   - [NewRetry]: Re-invokes the inner service on errors, and on successful
//     responses rejected by an optional Challenge predicate, with a fixed
//     delay between attempts.
//
//   - [NewRateLimit]: Token-bucket admission per pipeline, with waiting,
//     probing (NoWait) and bounded-wait modes.
//
//   - [NewKeyedRateLimit]: Per-key rate limiting over golang.org/x/time/rate,
//     for limits that follow a tenant, host, or API key.
//
//   - [NewOrigin]: Prefixes relative request URLs with an origin from a
//     static string or a lazily resolved, cached provider.
//
//   - [NewHeaderInjection]: Merges static, lazy, and async-lazy header
//     sources into outgoing requests.
//
//   - [NewExtract]: Decodes response bodies into typed values selected by
//     content type; [NewJSON] decodes every body as JSON. Both change the
//     pipeline's response type to [Extracted].
//
//   - [NewTimeout]: Enforces a per-call deadline via context.WithTimeout.
//
//   - [NewLogging]: Emits structured slog entries around every call, with
//     three verbosity levels.
//
//   - [NewMetrics]: Records Prometheus call counts, latencies, and
//     in-flight gauges.
//
//   - [NewBreaker]: Guards the inner service with a sony/gobreaker circuit
//     breaker.
//
// # Usage
//
//	svc := pipeline.New[service.Service[Req, Resp]](base).
//	    Layer(layers.NewLogging[Req, Resp](slog.Default(), layers.LogLevelStandard)).
//	    Layer(layers.NewRetry[Req, Resp](layers.RetryConfig[Resp]{MaxAttempts: 3})).
//	    Layer(layers.NewRateLimit[Req, Resp](layers.RateLimitConfig{TokensPerSecond: 20})).
//	    Build()
//
// Layers wrap innermost-first: the layer listed last is the outermost one.
// In the example above a request travels:
//
//	RateLimit (outermost) → Retry → Logging → base
//
// and the response travels back in reverse:
//
//	base → Logging → Retry → RateLimit
//
// So the rate limiter admits a call once, and the retry layer's repeated
// attempts each pass through logging.
package layers
