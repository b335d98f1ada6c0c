package httpx

import (
	"net/textproto"
	"strings"
	"time"
)

// Request describes a single HTTP call made through [Client]. The zero
// value is not usable on its own: URL must be absolute by the time the
// request reaches the client.
type Request struct {
	// URL is the target URL. The client requires it to be absolute;
	// compose layers.Origin in front of the client to complete paths.
	URL string

	// Method is the HTTP method. Empty means GET.
	Method string

	// Headers holds the outgoing header values. Keys written through
	// WithHeader are canonicalized (Content-Type, not content-type);
	// keys placed here directly are sent as given.
	Headers map[string]string

	// ContentType is the media type of Body. When empty and Body is
	// non-empty, the client sends application/json.
	ContentType string

	// Body is the raw request body. Empty means no body is sent.
	Body []byte

	// Timeout bounds the whole call through a derived context deadline
	// when positive. Zero leaves the caller's context in charge.
	Timeout time.Duration
}

// TargetURL returns the request URL.
func (r Request) TargetURL() string { return r.URL }

// WithTargetURL returns a copy of the request with its URL replaced.
func (r Request) WithTargetURL(url string) Request {
	r.URL = url
	return r
}

// HeaderValue returns the value of the named header and whether it is
// present. The key is canonicalized before lookup.
func (r Request) HeaderValue(key string) (string, bool) {
	value, ok := r.Headers[textproto.CanonicalMIMEHeaderKey(key)]
	return value, ok
}

// WithHeader returns a copy of the request with the header set under its
// canonical name. The header map is copied, so requests already handed to
// other goroutines are not affected.
func (r Request) WithHeader(key, value string) Request {
	headers := make(map[string]string, len(r.Headers)+1)
	for k, v := range r.Headers {
		headers[k] = v
	}
	headers[textproto.CanonicalMIMEHeaderKey(key)] = value

	r.Headers = headers
	return r
}

// Response is the outcome of a completed HTTP exchange. Every received
// response is a successful call result, whatever its status code; status
// policy belongs to the caller, for example a retry layer challenging on
// [Response.OK].
type Response struct {
	// URL is the final URL after redirects.
	URL string

	// StatusCode is the HTTP status code of the response.
	StatusCode int

	// Headers holds the response headers, first value per name.
	Headers map[string]string

	// ContentType is the raw Content-Type header as received.
	ContentType string

	// Body is the full response body.
	Body []byte
}

// OK reports whether the status code is in the 2xx range.
func (r Response) OK() bool {
	return r.StatusCode >= 200 && r.StatusCode < 300
}

// ContentBytes returns the raw response body.
func (r Response) ContentBytes() []byte { return r.Body }

// TypeKey returns the normalized content type: lowercased, with any
// parameters after ";" stripped. "application/JSON; charset=utf-8"
// becomes "application/json". Empty when no Content-Type was received.
func (r Response) TypeKey() string {
	kind, _, _ := strings.Cut(r.ContentType, ";")
	return strings.ToLower(strings.TrimSpace(kind))
}
