package layers

import "context"

// Shared stubs for the layer tests that need request and response types
// carrying URLs, headers, or bodies.

// testRequest is a minimal request type satisfying the Addressable and
// HeaderCarrier capabilities.
type testRequest struct {
	url     string
	headers map[string]string
}

func (r testRequest) TargetURL() string { return r.url }

func (r testRequest) WithTargetURL(url string) testRequest {
	r.url = url
	return r
}

func (r testRequest) HeaderValue(key string) (string, bool) {
	value, ok := r.headers[key]
	return value, ok
}

func (r testRequest) WithHeader(key, value string) testRequest {
	headers := make(map[string]string, len(r.headers)+1)
	for k, v := range r.headers {
		headers[k] = v
	}
	headers[key] = value

	r.headers = headers
	return r
}

// testResponse is a minimal response type satisfying the Source capability.
type testResponse struct {
	body []byte
	kind string
}

func (r testResponse) ContentBytes() []byte { return r.body }

func (r testResponse) TypeKey() string { return r.kind }

// captureService echoes requests back as responses, recording the last one
// so tests can inspect what reached the inner service.
type captureService[Req any] struct {
	last  Req
	calls int
	err   error
}

func (s *captureService[Req]) Call(_ context.Context, req Req) (Req, error) {
	s.calls++
	s.last = req

	if s.err != nil {
		var zero Req
		return zero, s.err
	}
	return req, nil
}
