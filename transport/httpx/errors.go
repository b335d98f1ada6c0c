package httpx

import "github.com/leofalp/strata/core/fault"

// Module is the fault module identifier for transport errors.
const Module = "strata/httpx"

// Fault codes within [Module]. Codes are stable; new codes are only appended.
const (
	CodeInvalidURL = iota + 1
	CodeRequestCreation
	CodeConnectionFailed
	CodeNoResponse
)

var (
	// ErrInvalidURL is returned when the request URL is not absolute. The
	// client never attempts the network for such a request; compose an
	// origin layer in front of the client to complete relative URLs.
	ErrInvalidURL = fault.New(Module, CodeInvalidURL, "request url is not absolute")

	// ErrRequestCreation is returned when the outgoing request could not
	// be constructed, before any network traffic.
	ErrRequestCreation = fault.New(Module, CodeRequestCreation, "request construction failed")

	// ErrConnectionFailed is returned when the request was sent but no
	// HTTP response came back: dial errors, TLS failures, timeouts and
	// context cancellation all surface here.
	ErrConnectionFailed = fault.New(Module, CodeConnectionFailed, "connection failed")

	// ErrNoResponse is returned when a response arrived but its body
	// could not be read to completion.
	ErrNoResponse = fault.New(Module, CodeNoResponse, "response body unreadable")
)
