package commands

import (
	"io"

	"github.com/rs/zerolog"

	"github.com/kroma-labs/restpath"
	"github.com/kroma-labs/restpath/httpclient"
)

func newLogger(w io.Writer, level string) zerolog.Logger {
	lvl, err := zerolog.ParseLevel(level)
	if err != nil {
		lvl = zerolog.WarnLevel
	}
	return zerolog.New(zerolog.ConsoleWriter{Out: w, NoColor: true}).
		Level(lvl).
		With().
		Timestamp().
		Logger()
}

func newClient(s Settings, logger zerolog.Logger) (*restpath.Client, error) {
	httpCfg := httpclient.DefaultConfig()
	httpCfg.Timeout = s.Timeout

	return restpath.New(s.API,
		restpath.WithLogger(logger),
		restpath.WithHTTPClientOptions(
			httpclient.WithConfig(httpCfg),
			httpclient.WithServiceName("restpath-cli"),
			httpclient.WithDebug(s.Debug),
			httpclient.WithDefaultHeaders(map[string]string{"User-Agent": "restpath-cli"}),
		),
	)
}
