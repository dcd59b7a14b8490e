package restpath

import (
	"context"

	"github.com/go-resty/resty/v2"
	"github.com/rs/zerolog"
)

// RestyTransport sends requests through a resty client, for callers that
// already configure their HTTP stack with resty.
type RestyTransport struct {
	client *resty.Client
}

var _ Transport = (*RestyTransport)(nil)

// NewRestyTransport wraps client, or a fresh resty.New() when client is nil.
// A non-empty baseURL is set as the client's base URL. Resty retries are
// left at the client's setting, which is zero by default.
func NewRestyTransport(baseURL string, client *resty.Client) *RestyTransport {
	if client == nil {
		client = resty.New()
	}
	if baseURL != "" {
		client.SetBaseURL(baseURL)
	}
	return &RestyTransport{client: client}
}

// Client returns the underlying resty client.
func (t *RestyTransport) Client() *resty.Client {
	return t.client
}

// Send implements Transport.
func (t *RestyTransport) Send(ctx context.Context, req *Request) (*RawResponse, error) {
	r := t.client.R().SetContext(ctx)
	for k, v := range req.Header {
		r.SetHeaderMultiValues(map[string][]string{k: v})
	}
	if req.Body != nil {
		if req.Header.Get("Content-Type") == "" {
			r.SetHeader("Content-Type", ContentTypeForm)
		}
		r.SetBody(req.Body)
	}

	resp, err := r.Execute(req.Method, req.URL)
	if err != nil {
		return nil, err
	}

	return &RawResponse{
		StatusCode: resp.StatusCode(),
		Status:     reasonPhrase(resp.StatusCode(), resp.Status()),
		Header:     resp.Header(),
		Body:       resp.Body(),
	}, nil
}

// restyLogger routes resty's internal warnings and debug output to zerolog.
type restyLogger struct {
	logger zerolog.Logger
}

// NewRestyLogger adapts logger to resty.Logger.
//
//	client := resty.New().SetLogger(restpath.NewRestyLogger(logger))
func NewRestyLogger(logger zerolog.Logger) resty.Logger {
	return restyLogger{logger: logger.With().Str("component", "resty").Logger()}
}

func (l restyLogger) Errorf(format string, v ...any) { l.logger.Error().Msgf(format, v...) }
func (l restyLogger) Warnf(format string, v ...any)  { l.logger.Warn().Msgf(format, v...) }
func (l restyLogger) Debugf(format string, v ...any) { l.logger.Debug().Msgf(format, v...) }
