package httpclient

import (
	"net/http"
)

// Client is an instrumented HTTP client with a fluent request builder.
// Every request is a single attempt: failures surface to the caller as-is.
//
//	client := httpclient.New(
//	    httpclient.WithBaseURL("https://api.example.com"),
//	    httpclient.WithServiceName("timeline-reader"),
//	)
//
//	resp, err := client.Request("PublicTimeline").
//	    Query("trim_user", "1").
//	    Get(ctx, "/1.1/statuses/public_timeline.json")
type Client struct {
	httpClient *http.Client
	config     *internalConfig
}

// New creates a Client backed by a pooled http.Transport wrapped with
// OpenTelemetry tracing and metrics.
func New(opts ...Option) *Client {
	cfg := newConfig(opts...)
	return newClient(cfg.buildTransport(), cfg)
}

// NewWithTransport creates a Client around base. base is still wrapped
// with tracing and metrics.
//
// Example:
//
//	client := httpclient.NewWithTransport(&http.Transport{MaxIdleConnsPerHost: 4},
//	    httpclient.WithServiceName("timeline-reader"),
//	)
func NewWithTransport(base http.RoundTripper, opts ...Option) *Client {
	cfg := newConfig(opts...)
	if base == nil {
		base = cfg.buildTransport()
	}
	return newClient(base, cfg)
}

func newClient(base http.RoundTripper, cfg *internalConfig) *Client {
	return &Client{
		httpClient: &http.Client{
			Transport: newOtelTransport(base, cfg),
			Timeout:   cfg.httpConfig.Timeout,
		},
		config: cfg,
	}
}

// HTTP returns the underlying *http.Client, for libraries that want one.
func (c *Client) HTTP() *http.Client {
	return c.httpClient
}

// BaseURL returns the configured base URL, or "" when none was set.
func (c *Client) BaseURL() string {
	return c.config.BaseURL
}

// Request starts a RequestBuilder. operationName shows up in debug logs.
func (c *Client) Request(operationName string) *RequestBuilder {
	return &RequestBuilder{
		client:        c,
		operationName: operationName,
		headers:       make(http.Header),
	}
}
