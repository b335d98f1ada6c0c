package layers

import "github.com/leofalp/strata/core/fault"

// Module is the fault module identifier for errors reported by the
// built-in layers.
const Module = "strata/layers"

// Fault codes within [Module]. Codes are stable across releases.
const (
	CodeNoToken = iota + 1
	CodeRateLimitWait
	CodeEmptyOrigin
	CodeHeaderProvider
)

// ErrNoToken is returned by the rate-limiting layers in NoWait mode when
// no token is available. The inner service is not called.
//
// Example:
//
//	if errors.Is(err, layers.ErrNoToken) {
//	    // shed the request
//	}
var ErrNoToken = fault.New(Module, CodeNoToken, "rate limit: no token available")

// ErrRateLimitWait is returned when a bounded wait
// ([RateLimitConfig.MaxWait]) expires before a token becomes available.
var ErrRateLimitWait = fault.New(Module, CodeRateLimitWait, "rate limit: wait budget exhausted")

// ErrEmptyOrigin is returned by the origin layer when resolution produces
// no origin for a relative request URL. The inner service is not called.
var ErrEmptyOrigin = fault.New(Module, CodeEmptyOrigin, "origin: no origin resolved")

// ErrHeaderProvider is returned when an asynchronous header provider
// fails. The call is aborted rather than sent without the header it was
// configured to carry.
var ErrHeaderProvider = fault.New(Module, CodeHeaderProvider, "header injection: provider failed")
