package httpclient

import (
	"crypto/tls"
	"net"
	"net/http"
	"net/url"
	"os"
	"time"

	"github.com/rs/zerolog"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"
	"go.opentelemetry.io/otel/propagation"
	"go.opentelemetry.io/otel/trace"
)

// scope is the instrumentation scope name for OpenTelemetry.
const scope = "github.com/kroma-labs/restpath/httpclient"

// =============================================================================
// Config - HTTP Transport Configuration
// =============================================================================

// Config holds the connection-level settings of the underlying
// http.Transport. Start from DefaultConfig() and adjust fields.
//
// Example:
//
//	cfg := httpclient.DefaultConfig()
//	cfg.Timeout = 5 * time.Second
//
//	client := httpclient.New(httpclient.WithConfig(cfg))
type Config struct {
	// Timeout bounds the whole exchange, body included. Zero disables it.
	//
	// Default: 15s
	Timeout time.Duration

	// MaxIdleConns caps idle keep-alive connections across all hosts.
	//
	// Default: 100
	MaxIdleConns int

	// MaxIdleConnsPerHost caps idle connections kept per host. A path-style
	// REST client usually talks to a single API host, so this is the setting
	// that matters most.
	//
	// Default: 20
	MaxIdleConnsPerHost int

	// MaxConnsPerHost caps active plus idle connections per host.
	// Zero means unlimited.
	//
	// Default: 100
	MaxConnsPerHost int

	// IdleConnTimeout is how long an idle connection stays pooled.
	//
	// Default: 90s
	IdleConnTimeout time.Duration

	// TLSHandshakeTimeout bounds the TLS handshake.
	//
	// Default: 10s
	TLSHandshakeTimeout time.Duration

	// ResponseHeaderTimeout bounds the wait for response headers once the
	// request is written. Zero defers to Timeout.
	//
	// Default: 0
	ResponseHeaderTimeout time.Duration

	// DialTimeout bounds TCP connection establishment.
	//
	// Default: 5s
	DialTimeout time.Duration

	// KeepAlive is the TCP keep-alive probe interval.
	//
	// Default: 30s
	KeepAlive time.Duration

	// DisableKeepAlives forces a fresh connection per request.
	//
	// Default: false
	DisableKeepAlives bool

	// DisableCompression stops the transport from asking for gzip.
	//
	// Default: true
	DisableCompression bool

	// ForceHTTP2 attempts HTTP/2 even with a custom dialer or TLS config.
	//
	// Default: false
	ForceHTTP2 bool
}

// DefaultConfig returns balanced settings for talking to a single REST API.
func DefaultConfig() Config {
	return Config{
		Timeout: 15 * time.Second,

		MaxIdleConns:        100,
		MaxIdleConnsPerHost: 20,
		MaxConnsPerHost:     100,
		IdleConnTimeout:     90 * time.Second,

		TLSHandshakeTimeout:   10 * time.Second,
		ResponseHeaderTimeout: 0, // Uses overall Timeout

		DialTimeout: 5 * time.Second,
		KeepAlive:   30 * time.Second,

		DisableKeepAlives:  false,
		DisableCompression: true,
		ForceHTTP2:         false,
	}
}

// LowLatencyConfig fails fast: shorter timeouts, a quick dial and HTTP/2.
// Suited to interactive tools where a hung request is worse than an error.
func LowLatencyConfig() Config {
	return Config{
		Timeout: 5 * time.Second,

		MaxIdleConns:        50,
		MaxIdleConnsPerHost: 25,
		MaxConnsPerHost:     50,
		IdleConnTimeout:     60 * time.Second,

		TLSHandshakeTimeout:   5 * time.Second,
		ResponseHeaderTimeout: 3 * time.Second,

		DialTimeout: 2 * time.Second,
		KeepAlive:   15 * time.Second,

		DisableKeepAlives:  false,
		DisableCompression: true,
		ForceHTTP2:         true,
	}
}

// =============================================================================
// Internal Configuration
// =============================================================================

// internalConfig is everything an Option can touch.
type internalConfig struct {
	httpConfig Config

	// OpenTelemetry
	TracerProvider trace.TracerProvider
	MeterProvider  metric.MeterProvider
	Tracer         trace.Tracer
	Meter          metric.Meter
	Metrics        *metrics
	Propagators    propagation.TextMapPropagator

	// ServiceName becomes the "http.client.name" attribute.
	ServiceName string

	// EnableNetworkTrace turns on DNS/connect/TLS span events. Default: true
	EnableNetworkTrace bool

	TLSConfig *tls.Config
	ProxyURL  *url.URL

	// Request building
	BaseURL        string
	DefaultHeaders http.Header

	// Debugging
	Debug        bool
	GenerateCurl bool
	EnableTrace  bool
	Logger       zerolog.Logger

	// MockTransport replaces the network transport when set.
	MockTransport *MockTransport
}

// newConfig applies opts on top of the defaults.
func newConfig(opts ...Option) *internalConfig {
	cfg := &internalConfig{
		httpConfig:         DefaultConfig(),
		TracerProvider:     otel.GetTracerProvider(),
		MeterProvider:      otel.GetMeterProvider(),
		EnableNetworkTrace: true,
		DefaultHeaders:     make(http.Header),
		Logger:             zerolog.New(os.Stdout).With().Timestamp().Logger(),
	}

	for _, opt := range opts {
		opt(cfg)
	}

	if cfg.Propagators == nil {
		cfg.Propagators = propagation.NewCompositeTextMapPropagator(
			propagation.TraceContext{},
			propagation.Baggage{},
		)
	}

	cfg.Tracer = cfg.TracerProvider.Tracer(scope)
	cfg.Meter = cfg.MeterProvider.Meter(scope)

	// Instruments stay nil on failure; every record call tolerates that.
	cfg.Metrics, _ = newMetrics(cfg.Meter)

	return cfg
}

// buildTransport creates the base round tripper. A configured mock wins.
func (cfg *internalConfig) buildTransport() http.RoundTripper {
	if cfg.MockTransport != nil {
		return cfg.MockTransport
	}

	hc := cfg.httpConfig

	dialer := &net.Dialer{
		Timeout:   hc.DialTimeout,
		KeepAlive: hc.KeepAlive,
	}

	transport := &http.Transport{
		DialContext:           dialer.DialContext,
		MaxIdleConns:          hc.MaxIdleConns,
		MaxIdleConnsPerHost:   hc.MaxIdleConnsPerHost,
		MaxConnsPerHost:       hc.MaxConnsPerHost,
		IdleConnTimeout:       hc.IdleConnTimeout,
		TLSHandshakeTimeout:   hc.TLSHandshakeTimeout,
		ResponseHeaderTimeout: hc.ResponseHeaderTimeout,
		DisableKeepAlives:     hc.DisableKeepAlives,
		DisableCompression:    hc.DisableCompression,
		TLSClientConfig:       cfg.TLSConfig,
		ForceAttemptHTTP2:     hc.ForceHTTP2,
		Proxy:                 http.ProxyFromEnvironment,
	}
	if cfg.ProxyURL != nil {
		transport.Proxy = http.ProxyURL(cfg.ProxyURL)
	}

	return transport
}

// baseAttributes returns attributes shared by every span and metric.
func (cfg *internalConfig) baseAttributes() []attribute.KeyValue {
	if cfg.ServiceName == "" {
		return nil
	}
	return []attribute.KeyValue{attribute.String("http.client.name", cfg.ServiceName)}
}

// =============================================================================
// Options
// =============================================================================

// Option configures a Client.
type Option func(*internalConfig)

// WithConfig replaces the transport settings.
//
// Example:
//
//	client := httpclient.New(httpclient.WithConfig(httpclient.LowLatencyConfig()))
func WithConfig(c Config) Option {
	return func(cfg *internalConfig) {
		cfg.httpConfig = c
	}
}

// WithServiceName tags spans and metrics with "http.client.name".
func WithServiceName(name string) Option {
	return func(cfg *internalConfig) {
		cfg.ServiceName = name
	}
}

// WithBaseURL sets the prefix joined with relative request paths.
// Absolute request URLs ignore it.
//
// Example:
//
//	client := httpclient.New(httpclient.WithBaseURL("https://api.example.com"))
//	resp, err := client.Request("Timeline").Get(ctx, "/1.1/statuses/home_timeline.json")
func WithBaseURL(baseURL string) Option {
	return func(cfg *internalConfig) {
		cfg.BaseURL = baseURL
	}
}

// WithDefaultHeaders adds headers sent with every request. Per-request
// headers override them.
func WithDefaultHeaders(headers map[string]string) Option {
	return func(cfg *internalConfig) {
		for k, v := range headers {
			cfg.DefaultHeaders.Set(k, v)
		}
	}
}

// WithTracerProvider overrides the global TracerProvider.
func WithTracerProvider(tp trace.TracerProvider) Option {
	return func(cfg *internalConfig) {
		cfg.TracerProvider = tp
	}
}

// WithMeterProvider overrides the global MeterProvider.
func WithMeterProvider(mp metric.MeterProvider) Option {
	return func(cfg *internalConfig) {
		cfg.MeterProvider = mp
	}
}

// WithPropagators overrides the W3C TraceContext + Baggage propagators.
func WithPropagators(p propagation.TextMapPropagator) Option {
	return func(cfg *internalConfig) {
		cfg.Propagators = p
	}
}

// WithTLSConfig sets the TLS configuration of the base transport.
func WithTLSConfig(tlsCfg *tls.Config) Option {
	return func(cfg *internalConfig) {
		cfg.TLSConfig = tlsCfg
	}
}

// WithProxyURL routes every request through proxyURL instead of the
// proxy named by the environment.
func WithProxyURL(proxyURL *url.URL) Option {
	return func(cfg *internalConfig) {
		cfg.ProxyURL = proxyURL
	}
}

// WithDisableNetworkTrace drops the DNS/connect/TLS span events and timing
// metrics.
func WithDisableNetworkTrace() Option {
	return func(cfg *internalConfig) {
		cfg.EnableNetworkTrace = false
	}
}

// WithDebug logs every request and response at debug level.
func WithDebug(enabled bool) Option {
	return func(cfg *internalConfig) {
		cfg.Debug = enabled
	}
}

// WithLogger sets the logger used by debug output. Defaults to JSON on stdout.
func WithLogger(logger zerolog.Logger) Option {
	return func(cfg *internalConfig) {
		cfg.Logger = logger
	}
}

// WithGenerateCurl attaches an equivalent cURL command to every Response.
func WithGenerateCurl(enabled bool) Option {
	return func(cfg *internalConfig) {
		cfg.GenerateCurl = enabled
	}
}

// WithEnableTrace collects TraceInfo for every request.
func WithEnableTrace(enabled bool) Option {
	return func(cfg *internalConfig) {
		cfg.EnableTrace = enabled
	}
}

// WithMockTransport swaps the network for mock. Tracing and metrics still run.
func WithMockTransport(mock *MockTransport) Option {
	return func(cfg *internalConfig) {
		cfg.MockTransport = mock
	}
}
