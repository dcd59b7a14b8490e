package httpclient

import (
	"bytes"
	"context"
	"io"
	"net/http"
	"net/http/httptrace"
	"net/url"
	"strings"
	"time"

	json "github.com/goccy/go-json"
)

// RequestBuilder assembles one HTTP request. Builders are single use;
// obtain a fresh one from Client.Request for every call.
//
//	resp, err := client.Request("UpdateStatus").
//	    BodyForm(map[string]string{"status": "hello"}).
//	    Post(ctx, "/1.1/statuses/update.json")
type RequestBuilder struct {
	client        *Client
	operationName string
	path          string
	queryParams   url.Values
	headers       http.Header
	body          []byte
	hasBody       bool
	contentType   string
	encodeErr     error
	enableTrace   bool
}

// Path sets the request path, relative to the base URL, or an absolute URL.
func (rb *RequestBuilder) Path(path string) *RequestBuilder {
	rb.path = path
	return rb
}

// Query sets a query parameter. The path may already carry a query string;
// values set here are merged into it.
func (rb *RequestBuilder) Query(key, value string) *RequestBuilder {
	if rb.queryParams == nil {
		rb.queryParams = make(url.Values)
	}
	rb.queryParams.Set(key, value)
	return rb
}

// Header sets a single request header.
func (rb *RequestBuilder) Header(key, value string) *RequestBuilder {
	rb.headers.Set(key, value)
	return rb
}

// Headers merges h into the request headers.
func (rb *RequestBuilder) Headers(h http.Header) *RequestBuilder {
	for k, v := range h {
		rb.headers[http.CanonicalHeaderKey(k)] = append([]string(nil), v...)
	}
	return rb
}

// Body sets the request body.
//
// Encoding rules:
//   - []byte: sent as-is (Content-Type: application/octet-stream)
//   - string: sent as-is (Content-Type: text/plain)
//   - url.Values: form encoded
//   - anything else: JSON
//
// An explicit Content-Type header always wins over the detected one.
func (rb *RequestBuilder) Body(v any) *RequestBuilder {
	if v == nil {
		return rb
	}

	switch body := v.(type) {
	case []byte:
		rb.setBody(body, "application/octet-stream")
	case string:
		rb.setBody([]byte(body), "text/plain; charset=utf-8")
	case url.Values:
		rb.setBody([]byte(body.Encode()), "application/x-www-form-urlencoded")
	default:
		data, err := json.Marshal(v)
		if err != nil {
			rb.encodeErr = err
			return rb
		}
		rb.setBody(data, "application/json")
	}
	return rb
}

// BodyForm form-encodes data as the request body.
func (rb *RequestBuilder) BodyForm(data map[string]string) *RequestBuilder {
	values := make(url.Values, len(data))
	for k, v := range data {
		values.Set(k, v)
	}
	return rb.Body(values)
}

func (rb *RequestBuilder) setBody(data []byte, contentType string) {
	rb.body = data
	rb.hasBody = true
	rb.contentType = contentType
}

// EnableTrace collects TraceInfo for this request.
func (rb *RequestBuilder) EnableTrace() *RequestBuilder {
	rb.enableTrace = true
	return rb
}

// Get executes a GET request.
func (rb *RequestBuilder) Get(ctx context.Context, path ...string) (*Response, error) {
	return rb.Do(ctx, http.MethodGet, path...)
}

// Post executes a POST request.
func (rb *RequestBuilder) Post(ctx context.Context, path ...string) (*Response, error) {
	return rb.Do(ctx, http.MethodPost, path...)
}

// Put executes a PUT request.
func (rb *RequestBuilder) Put(ctx context.Context, path ...string) (*Response, error) {
	return rb.Do(ctx, http.MethodPut, path...)
}

// Delete executes a DELETE request.
func (rb *RequestBuilder) Delete(ctx context.Context, path ...string) (*Response, error) {
	return rb.Do(ctx, http.MethodDelete, path...)
}

// Do executes the request with an arbitrary method. The response body is
// read fully before Do returns, so callers never have to close it.
func (rb *RequestBuilder) Do(ctx context.Context, method string, path ...string) (*Response, error) {
	if len(path) > 0 {
		rb.path = path[0]
	}
	if rb.encodeErr != nil {
		return nil, rb.encodeErr
	}

	targetURL, err := rb.buildURL()
	if err != nil {
		return nil, err
	}

	var reqBody io.Reader
	if rb.hasBody {
		reqBody = bytes.NewReader(rb.body)
	}

	req, err := http.NewRequestWithContext(ctx, method, targetURL, reqBody)
	if err != nil {
		return nil, err
	}

	for k, v := range rb.client.config.DefaultHeaders {
		for _, vv := range v {
			req.Header.Add(k, vv)
		}
	}
	for k, v := range rb.headers {
		req.Header[k] = v
	}
	if rb.contentType != "" && req.Header.Get("Content-Type") == "" {
		req.Header.Set("Content-Type", rb.contentType)
	}

	var tracer *requestTracer
	if rb.enableTrace || rb.client.config.EnableTrace {
		tracer = &requestTracer{totalStart: time.Now()}
		req = req.WithContext(httptrace.WithClientTrace(req.Context(), tracer.clientTrace()))
	}

	cfg := rb.client.config
	if cfg.Debug {
		logRequest(cfg.Logger, rb.operationName, req)
	}

	start := time.Now()
	httpResp, err := rb.client.httpClient.Do(req)
	if err != nil {
		return nil, err
	}
	defer httpResp.Body.Close()

	body, err := io.ReadAll(httpResp.Body)
	if err != nil {
		return nil, err
	}
	duration := time.Since(start)

	if cfg.Debug {
		logResponse(cfg.Logger, rb.operationName, httpResp, duration)
	}

	resp := &Response{
		Response: httpResp,
		request:  req,
		body:     body,
		duration: duration,
	}
	if cfg.GenerateCurl {
		resp.curlCommand = generateCurlCommand(req, rb.body)
	}
	if tracer != nil {
		resp.traceInfo = tracer.toTraceInfo()
	}

	return resp, nil
}

// buildURL joins base URL and path, then merges builder query parameters.
func (rb *RequestBuilder) buildURL() (string, error) {
	fullURL := rb.path
	base := rb.client.config.BaseURL
	if base != "" && !isAbsoluteURL(rb.path) {
		fullURL = strings.TrimSuffix(base, "/") + "/" + strings.TrimPrefix(rb.path, "/")
	}

	if len(rb.queryParams) == 0 {
		return fullURL, nil
	}

	u, err := url.Parse(fullURL)
	if err != nil {
		return "", err
	}
	q := u.Query()
	for k, v := range rb.queryParams {
		for _, vv := range v {
			q.Add(k, vv)
		}
	}
	u.RawQuery = q.Encode()
	return u.String(), nil
}

func isAbsoluteURL(s string) bool {
	return strings.HasPrefix(s, "http://") || strings.HasPrefix(s, "https://")
}
