package restpath

import (
	"github.com/rs/zerolog"

	"github.com/kroma-labs/restpath/httpclient"
)

// Config describes one API. It is read once by New.
//
// Example:
//
//	cfg := restpath.Config{
//	    URLTemplate: "/1.1/%s.json",
//	    Host:        "api.twitter.com",
//	    UseHTTPS:    true,
//	}
type Config struct {
	// URLTemplate holds exactly one %s, replaced by the joined path. It may
	// be absolute ("https://host/1.1/%s.json") or relative to Host.
	URLTemplate string `mapstructure:"url_template" yaml:"url_template"`

	// Host and UseHTTPS give the scheme://host that the default transport
	// resolves relative URLs against. Only transports read them.
	Host     string `mapstructure:"host"      yaml:"host"`
	UseHTTPS bool   `mapstructure:"use_https" yaml:"use_https"`
}

// DefaultConfig returns a Config whose template is the bare path.
func DefaultConfig() Config {
	return Config{URLTemplate: "%s"}
}

// BaseURL returns scheme://host, or "" when Host is empty.
func (c Config) BaseURL() string {
	if c.Host == "" {
		return ""
	}
	if c.UseHTTPS {
		return "https://" + c.Host
	}
	return "http://" + c.Host
}

type config struct {
	transport   Transport
	hooks       Hooks
	logger      zerolog.Logger
	httpOptions []httpclient.Option
}

// Option configures a Client.
type Option func(*config)

// WithTransport replaces the default httpclient-backed transport.
//
// Example:
//
//	client, err := restpath.New(cfg,
//	    restpath.WithTransport(restpath.NewRestyTransport(cfg.BaseURL(), nil)),
//	)
func WithTransport(t Transport) Option {
	return func(c *config) {
		c.transport = t
	}
}

// WithHooks sets the params/headers/response hooks.
func WithHooks(h Hooks) Option {
	return func(c *config) {
		c.hooks = h
	}
}

// WithLogger sets the call logger. Calls are not logged by default.
func WithLogger(logger zerolog.Logger) Option {
	return func(c *config) {
		c.logger = logger
	}
}

// WithHTTPClientOptions passes options to the default transport's
// httpclient.Client. Ignored when WithTransport is used.
func WithHTTPClientOptions(opts ...httpclient.Option) Option {
	return func(c *config) {
		c.httpOptions = append(c.httpOptions, opts...)
	}
}
