package restpath

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/rs/zerolog"

	"github.com/kroma-labs/restpath/httpclient"
)

// Client is the root of an API. It holds no per-call state and is safe for
// concurrent use.
//
//	api, err := restpath.New(restpath.Config{
//	    URLTemplate: "/1.1/%s.json",
//	    Host:        "api.twitter.com",
//	    UseHTTPS:    true,
//	})
//
//	resp, err := api.Segment("statuses").Segment("public_timeline").
//	    Get(ctx, restpath.Params{"trim_user": true})
type Client struct {
	template  string
	transport Transport
	hooks     Hooks
	logger    zerolog.Logger
}

// New validates cfg and builds a Client. Without WithTransport the client
// sends through an httpclient.Client whose base URL is cfg.BaseURL().
func New(cfg Config, opts ...Option) (*Client, error) {
	if err := ValidateTemplate(cfg.URLTemplate); err != nil {
		return nil, err
	}

	c := &config{
		hooks:  DefaultHooks{},
		logger: zerolog.Nop(),
	}
	for _, opt := range opts {
		opt(c)
	}

	if c.transport == nil {
		httpOpts := []httpclient.Option{
			httpclient.WithBaseURL(cfg.BaseURL()),
			httpclient.WithServiceName("restpath"),
			httpclient.WithLogger(c.logger),
		}
		c.transport = NewHTTPTransport(httpclient.New(append(httpOpts, c.httpOptions...)...))
	}

	return &Client{
		template:  cfg.URLTemplate,
		transport: c.transport,
		hooks:     c.hooks,
		logger:    c.logger,
	}, nil
}

// Root returns the resource at the empty path.
func (c *Client) Root() Resource {
	return Resource{client: c}
}

// Segment returns the resource /name.
func (c *Client) Segment(name string) Resource {
	return c.Root().Segment(name)
}

// Walk returns the resource named by a dotted expression, e.g. "users.show".
func (c *Client) Walk(expr string) (Resource, error) {
	return c.Root().Walk(expr)
}

// Call resolves a dotted expression ending in a verb and performs it:
//
//	resp, err := api.Call(ctx, "statuses.public_timeline.get", nil)
func (c *Client) Call(ctx context.Context, expr string, params Params) (*Response, error) {
	return c.Root().Call(ctx, expr, params)
}

// CallRaw is Call returning the response body undecoded.
func (c *Client) CallRaw(ctx context.Context, expr string, params Params) ([]byte, error) {
	return c.Root().CallRaw(ctx, expr, params)
}

// Get performs GET on the empty path.
func (c *Client) Get(ctx context.Context, params Params) (*Response, error) {
	return c.Root().Get(ctx, params)
}

// Post performs POST on the empty path.
func (c *Client) Post(ctx context.Context, params Params) (*Response, error) {
	return c.Root().Post(ctx, params)
}

// Put performs PUT on the empty path.
func (c *Client) Put(ctx context.Context, params Params) (*Response, error) {
	return c.Root().Put(ctx, params)
}

// Delete performs DELETE on the empty path.
func (c *Client) Delete(ctx context.Context, params Params) (*Response, error) {
	return c.Root().Delete(ctx, params)
}

// Resource is a client plus an accumulated path. It is a small immutable
// value: every method that extends the path returns a new Resource, so one
// prefix can be shared freely.
//
//	users := api.Segment("users")
//	show, _ := users.Segment("show").Get(ctx, restpath.Params{"id": 1})
//	list, _ := users.Segment("lookup").Get(ctx, nil)
type Resource struct {
	client *Client
	path   Path
}

// Segment returns the resource one segment deeper. Any string is accepted,
// including reserved names.
func (r Resource) Segment(name string) Resource {
	return Resource{client: r.client, path: r.path.Append(name)}
}

// Segments returns a copy of the accumulated segments.
func (r Resource) Segments() []string {
	return r.path.Segments()
}

// Path returns the accumulated path.
func (r Resource) Path() Path {
	return r.path
}

// Walk appends each component of a dotted expression. Reserved names are
// refused with ErrReservedSegment; use Segment to reach them.
func (r Resource) Walk(expr string) (Resource, error) {
	for _, name := range splitDotted(expr) {
		if IsReserved(name) {
			return Resource{}, fmt.Errorf("%w: %q in %q", ErrReservedSegment, name, expr)
		}
		r = r.Segment(name)
	}
	return r, nil
}

// Call walks all but the last component of expr and performs the last as
// a verb. A missing or non-verb final component yields ErrMissingVerb.
func (r Resource) Call(ctx context.Context, expr string, params Params) (*Response, error) {
	target, method, err := r.resolve(expr)
	if err != nil {
		return nil, err
	}
	return target.Do(ctx, method, params)
}

// CallRaw is Call returning the response body undecoded.
func (r Resource) CallRaw(ctx context.Context, expr string, params Params) ([]byte, error) {
	target, method, err := r.resolve(expr)
	if err != nil {
		return nil, err
	}
	return target.Raw(ctx, method, params)
}

// resolve splits expr into the target resource and the HTTP method named
// by its final component.
func (r Resource) resolve(expr string) (Resource, string, error) {
	names := splitDotted(expr)
	if len(names) == 0 {
		return Resource{}, "", fmt.Errorf("%w: %q", ErrMissingVerb, expr)
	}

	last := names[len(names)-1]
	method, ok := verbs[last]
	if !ok {
		return Resource{}, "", fmt.Errorf("%w: %q ends in %q", ErrMissingVerb, expr, last)
	}

	target := r
	for _, name := range names[:len(names)-1] {
		if IsReserved(name) {
			return Resource{}, "", fmt.Errorf("%w: %q in %q", ErrReservedSegment, name, expr)
		}
		target = target.Segment(name)
	}
	return target, method, nil
}

// Get sends params in the query string.
func (r Resource) Get(ctx context.Context, params Params) (*Response, error) {
	return r.Do(ctx, http.MethodGet, params)
}

// Post sends params as a form body.
func (r Resource) Post(ctx context.Context, params Params) (*Response, error) {
	return r.Do(ctx, http.MethodPost, params)
}

// Put sends params as a form body.
func (r Resource) Put(ctx context.Context, params Params) (*Response, error) {
	return r.Do(ctx, http.MethodPut, params)
}

// Delete sends params as a form body.
func (r Resource) Delete(ctx context.Context, params Params) (*Response, error) {
	return r.Do(ctx, http.MethodDelete, params)
}

// Do performs method and decodes the response as JSON.
func (r Resource) Do(ctx context.Context, method string, params Params) (*Response, error) {
	return r.client.call(ctx, method, r.path, params, true)
}

// Raw performs method and returns the response body undecoded.
func (r Resource) Raw(ctx context.Context, method string, params Params) ([]byte, error) {
	resp, err := r.client.call(ctx, method, r.path, params, false)
	if err != nil || resp == nil {
		return nil, err
	}
	return resp.Body, nil
}

func (c *Client) call(
	ctx context.Context,
	method string,
	path Path,
	params Params,
	parseJSON bool,
) (*Response, error) {
	req, err := BuildRequest(c.template, method, path, c.hooks.ProcessParams(params))
	if err != nil {
		return nil, err
	}
	for k, v := range c.hooks.ProcessHeaders(ctx) {
		req.Header[http.CanonicalHeaderKey(k)] = append([]string(nil), v...)
	}

	id := requestID(ctx)
	req.Header.Set(RequestIDHeader, id)
	logger := c.logger.With().Str("request_id", id).Logger()

	logger.Info().Str("method", req.Method).Str("url", req.URL).Msg("Request")
	if req.Body != nil {
		logger.Debug().Bytes("body", req.Body).Msg("Request body")
	}

	start := time.Now()
	raw, err := c.transport.Send(ctx, req)
	if err != nil {
		logger.Error().Err(err).Dur("duration", time.Since(start)).Msg("Request failed")
		return nil, fmt.Errorf("send %s %s: %w", req.Method, req.URL, err)
	}

	event := logger.Info()
	if raw.StatusCode >= 400 {
		event = logger.Warn()
	}
	if raw.StatusCode >= 500 {
		event = logger.Error()
	}
	event.Int("status", raw.StatusCode).
		Dur("duration", time.Since(start)).
		Int("bytes", len(raw.Body)).
		Msg("Response")

	resp, err := DecodeResponse(raw.StatusCode, raw.Status, raw.Body, parseJSON)
	if err != nil {
		var apiErr *APIError
		if errors.As(err, &apiErr) {
			apiErr.Method = req.Method
			apiErr.URL = req.URL
			apiErr.Body = raw.Body
		}
		return nil, err
	}
	resp.Header = raw.Header

	return c.hooks.ProcessResponse(resp)
}
