package httpx

import (
	"bytes"
	"context"
	"io"
	"net"
	"net/http"
	"time"

	"github.com/leofalp/strata/internal/urlx"
	"github.com/leofalp/strata/internal/utils"
)

const (
	// DefaultUserAgent is the default User-Agent header value
	DefaultUserAgent = "strata-httpx/1.0"
	// DefaultContentType is sent when a request does not name a media type
	DefaultContentType = "application/json"
	// DialTimeout is the maximum time to wait for a TCP connection
	DialTimeout = 10 * time.Second
	// TLSHandshakeTimeout is the maximum time to wait for TLS handshake
	TLSHandshakeTimeout = 10 * time.Second
	// ResponseHeaderTimeout is the maximum time to wait for response headers
	ResponseHeaderTimeout = 10 * time.Second
	// IdleConnTimeout is the maximum time an idle connection can be reused
	IdleConnTimeout = 90 * time.Second
)

// Client executes [Request] values over net/http. It is the innermost
// service of an HTTP pipeline: it performs exactly one exchange per call
// and leaves retries, rate limiting and URL completion to the layers
// wrapped around it.
//
// A Client is safe for concurrent use.
type Client struct {
	http      *http.Client
	userAgent string
}

// Option configures a [Client].
type Option func(*Client)

// WithHTTPClient replaces the underlying http.Client, for callers that
// need their own transport, proxy or redirect policy. A nil client is
// ignored.
func WithHTTPClient(httpClient *http.Client) Option {
	return func(c *Client) {
		if httpClient != nil {
			c.http = httpClient
		}
	}
}

// WithUserAgent overrides the User-Agent header sent with every request.
// An empty value is ignored.
func WithUserAgent(userAgent string) Option {
	return func(c *Client) {
		if userAgent != "" {
			c.userAgent = userAgent
		}
	}
}

// New returns a Client ready for use. Without options it uses a dedicated
// http.Client whose transport bounds connection establishment, TLS
// handshake, response headers and idle connections, so a misbehaving
// server cannot block a call indefinitely.
//
// Example:
//
//	client := httpx.New(httpx.WithUserAgent("orders-service/2.1"))
//	resp, err := client.Call(ctx, httpx.Request{URL: "https://api.example.com/v1/items"})
func New(opts ...Option) *Client {
	c := &Client{
		http:      defaultHTTPClient(),
		userAgent: DefaultUserAgent,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

func defaultHTTPClient() *http.Client {
	return &http.Client{
		Transport: &http.Transport{
			DialContext: (&net.Dialer{
				Timeout:   DialTimeout,
				KeepAlive: 30 * time.Second,
			}).DialContext,
			TLSHandshakeTimeout:   TLSHandshakeTimeout,
			ResponseHeaderTimeout: ResponseHeaderTimeout,
			IdleConnTimeout:       IdleConnTimeout,
			MaxIdleConns:          100,
			MaxIdleConnsPerHost:   10,
			ForceAttemptHTTP2:     true,
		},
	}
}

// Call performs one HTTP exchange and returns the received response.
//
// The request URL must already be absolute; relative URLs fail with
// [ErrInvalidURL] before any network activity. When req.Timeout is
// positive the whole exchange runs under a derived context deadline.
//
// Any received response is a success, whatever its status code. Callers
// that want non-2xx responses treated as failures should challenge on
// [Response.OK], for example through a retry layer.
func (c *Client) Call(ctx context.Context, req Request) (Response, error) {
	if !urlx.IsAbsolute(req.URL) {
		return Response{}, ErrInvalidURL.With("%q", req.URL)
	}

	if req.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, req.Timeout)
		defer cancel()
	}

	method := req.Method
	if method == "" {
		method = http.MethodGet
	}

	var body io.Reader
	if len(req.Body) > 0 {
		body = bytes.NewReader(req.Body)
	}

	httpReq, err := http.NewRequestWithContext(ctx, method, req.URL, body)
	if err != nil {
		return Response{}, ErrRequestCreation.Wrap(err)
	}

	httpReq.Header.Set("User-Agent", c.userAgent)
	for key, value := range req.Headers {
		httpReq.Header.Set(key, value)
	}
	if httpReq.Header.Get("Content-Type") == "" {
		contentType := req.ContentType
		if contentType == "" {
			contentType = DefaultContentType
		}
		httpReq.Header.Set("Content-Type", contentType)
	}

	httpResp, err := c.http.Do(httpReq)
	if err != nil {
		return Response{}, ErrConnectionFailed.Wrap(err)
	}
	defer utils.CloseWithLog(httpResp.Body)

	data, err := io.ReadAll(httpResp.Body)
	if err != nil {
		return Response{}, ErrNoResponse.Wrap(err)
	}

	headers := make(map[string]string, len(httpResp.Header))
	for key := range httpResp.Header {
		headers[key] = httpResp.Header.Get(key)
	}

	finalURL := req.URL
	if httpResp.Request != nil && httpResp.Request.URL != nil {
		finalURL = httpResp.Request.URL.String()
	}

	return Response{
		URL:         finalURL,
		StatusCode:  httpResp.StatusCode,
		Headers:     headers,
		ContentType: httpResp.Header.Get("Content-Type"),
		Body:        data,
	}, nil
}
