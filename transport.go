package restpath

import (
	"context"
	"net/http"
	"strconv"
	"strings"

	"github.com/kroma-labs/restpath/httpclient"
)

// RawResponse is what a Transport got back, before any decoding.
type RawResponse struct {
	StatusCode int

	// Status is the reason phrase, e.g. "Not Found".
	Status string

	Header http.Header
	Body   []byte
}

// Transport performs one HTTP exchange. Implementations send exactly once,
// never retry, and report non-2xx statuses as a RawResponse rather than an
// error. A relative Request.URL is resolved against the transport's own
// scheme and host.
type Transport interface {
	Send(ctx context.Context, req *Request) (*RawResponse, error)
}

// TransportFunc adapts a function to Transport.
type TransportFunc func(ctx context.Context, req *Request) (*RawResponse, error)

// Send calls f.
func (f TransportFunc) Send(ctx context.Context, req *Request) (*RawResponse, error) {
	return f(ctx, req)
}

// HTTPTransport sends requests through an instrumented httpclient.Client.
// Connection pooling, tracing and metrics are the client's concern.
type HTTPTransport struct {
	client *httpclient.Client
}

var _ Transport = (*HTTPTransport)(nil)

// NewHTTPTransport wraps client. The client's base URL resolves relative
// request URLs.
func NewHTTPTransport(client *httpclient.Client) *HTTPTransport {
	return &HTTPTransport{client: client}
}

// Send implements Transport.
func (t *HTTPTransport) Send(ctx context.Context, req *Request) (*RawResponse, error) {
	rb := t.client.Request(operationName(req)).Headers(req.Header)
	if req.Body != nil {
		rb.Body(req.Body)
		if req.Header.Get("Content-Type") == "" {
			rb.Header("Content-Type", ContentTypeForm)
		}
	}

	resp, err := rb.Do(ctx, req.Method, req.URL)
	if err != nil {
		return nil, err
	}

	return &RawResponse{
		StatusCode: resp.StatusCode,
		Status:     resp.Reason(),
		Header:     resp.Header,
		Body:       resp.Bytes(),
	}, nil
}

// operationName is the request line without its query, e.g.
// "GET /1.1/statuses/public_timeline.json".
func operationName(req *Request) string {
	u, _, _ := strings.Cut(req.URL, "?")
	return req.Method + " " + u
}

// reasonPhrase strips the numeric code from a status line and falls back to
// the standard text when the server sent none.
func reasonPhrase(code int, status string) string {
	if reason, ok := strings.CutPrefix(status, strconv.Itoa(code)+" "); ok {
		return reason
	}
	if status != "" && status != strconv.Itoa(code) {
		return status
	}
	return http.StatusText(code)
}
