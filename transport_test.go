package restpath

import (
	"bytes"
	"context"
	"errors"
	"net/http"
	"testing"

	"github.com/go-resty/resty/v2"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kroma-labs/restpath/httpclient"
)

func TestHTTPTransport_Send(t *testing.T) {
	type args struct {
		req *Request
	}

	tests := []struct {
		name            string
		args            args
		wantURL         string
		wantBody        string
		wantContentType string
	}{
		{
			name: "given relative GET, then resolved against base URL",
			args: args{req: &Request{
				Method: http.MethodGet,
				URL:    "/1.1/users/show.json?id=1",
				Header: http.Header{},
			}},
			wantURL: "https://api.test/1.1/users/show.json?id=1",
		},
		{
			name: "given body without content type, then form content type",
			args: args{req: &Request{
				Method: http.MethodPost,
				URL:    "/1.1/statuses/update.json",
				Body:   []byte("status=hi"),
				Header: http.Header{},
			}},
			wantURL:         "https://api.test/1.1/statuses/update.json",
			wantBody:        "status=hi",
			wantContentType: ContentTypeForm,
		},
		{
			name: "given absolute URL, then base URL ignored",
			args: args{req: &Request{
				Method: http.MethodDelete,
				URL:    "http://other.test/x.json",
				Header: http.Header{},
			}},
			wantURL: "http://other.test/x.json",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mock := httpclient.NewMockTransport().StubResponse(http.StatusOK, `{}`)
			transport := NewHTTPTransport(httpclient.New(
				httpclient.WithBaseURL("https://api.test"),
				httpclient.WithMockTransport(mock),
			))

			raw, err := transport.Send(context.Background(), tt.args.req)
			require.NoError(t, err)
			assert.Equal(t, http.StatusOK, raw.StatusCode)
			assert.Equal(t, "OK", raw.Status)
			assert.Equal(t, "{}", string(raw.Body))

			rec, ok := mock.LastRequest()
			require.True(t, ok)
			assert.Equal(t, tt.args.req.Method, rec.Method)
			assert.Equal(t, tt.wantURL, rec.URL)
			assert.Equal(t, tt.wantBody, string(rec.Body))
			assert.Equal(t, tt.wantContentType, rec.Header.Get("Content-Type"))
		})
	}
}

func TestHTTPTransport_NonSuccessIsNotAnError(t *testing.T) {
	mock := httpclient.NewMockTransport().StubResponse(http.StatusServiceUnavailable, "down")
	transport := NewHTTPTransport(httpclient.New(httpclient.WithMockTransport(mock)))

	raw, err := transport.Send(context.Background(), &Request{Method: http.MethodGet, URL: "http://api.test/", Header: http.Header{}})

	require.NoError(t, err)
	assert.Equal(t, http.StatusServiceUnavailable, raw.StatusCode)
	assert.Equal(t, "Service Unavailable", raw.Status)
	assert.Equal(t, 1, mock.RequestCount())
}

func TestHTTPTransport_Error(t *testing.T) {
	errRefused := errors.New("connection refused")
	mock := httpclient.NewMockTransport().StubError(errRefused)
	transport := NewHTTPTransport(httpclient.New(httpclient.WithMockTransport(mock)))

	_, err := transport.Send(context.Background(), &Request{Method: http.MethodGet, URL: "http://api.test/", Header: http.Header{}})

	assert.ErrorIs(t, err, errRefused)
	assert.Equal(t, 1, mock.RequestCount())
}

func TestRestyTransport_AgainstServer(t *testing.T) {
	server := newTestAPI(t)
	cfg := configFor(server)

	api, err := New(cfg, WithTransport(NewRestyTransport(cfg.BaseURL(), nil)))
	require.NoError(t, err)

	resp, err := api.Segment("statuses").Segment("update").Post(context.Background(), Params{"status": "hi"})
	require.NoError(t, err)

	got := decodeEcho(t, resp)
	assert.Equal(t, "/1.1/statuses/update.json", got.Path)
	assert.Equal(t, "status=hi", got.Body)
	assert.Equal(t, ContentTypeForm, got.ContentType)
	assert.NotEmpty(t, got.RequestID)

	_, err = api.Call(context.Background(), "nope.get", nil)
	assert.True(t, IsStatus(err, http.StatusNotFound))
	assert.EqualError(t, err, "bad response: 404 Not Found")
}

func TestRestyTransport_OverInstrumentedRoundTripper(t *testing.T) {
	mock := httpclient.NewMockTransport().
		StubJSON("/1.1/statuses/public_timeline.json", http.StatusOK, `[{"id": 1}]`)
	instrumented := httpclient.New(httpclient.WithMockTransport(mock)).HTTP().Transport

	transport := NewRestyTransport("https://api.test", resty.New().SetTransport(instrumented))
	api, err := New(Config{URLTemplate: "/1.1/%s.json"}, WithTransport(transport))
	require.NoError(t, err)

	resp, err := api.Call(context.Background(), "statuses.public_timeline.get", Params{"trim_user": true})
	require.NoError(t, err)

	arr, ok := resp.Array()
	require.True(t, ok)
	assert.Len(t, arr, 1)

	rec, ok := mock.LastRequest()
	require.True(t, ok)
	assert.Equal(t, "https://api.test/1.1/statuses/public_timeline.json?trim_user=1", rec.URL)
	assert.NotNil(t, transport.Client())
}

func TestTransportFunc(t *testing.T) {
	var seen *Request
	api, err := New(Config{URLTemplate: "https://api.test/1.1/%s.json"}, WithTransport(TransportFunc(
		func(_ context.Context, req *Request) (*RawResponse, error) {
			seen = req
			return &RawResponse{StatusCode: http.StatusOK, Status: "OK", Body: []byte(`{"ok": true}`)}, nil
		},
	)))
	require.NoError(t, err)

	resp, err := api.Segment("account").Segment("verify_credentials").Get(context.Background(), nil)
	require.NoError(t, err)

	obj, ok := resp.Object()
	require.True(t, ok)
	assert.True(t, obj.GetBool("ok"))
	assert.Equal(t, "https://api.test/1.1/account/verify_credentials.json", seen.URL)
	assert.Nil(t, seen.Body)
	assert.NotEmpty(t, seen.Header.Get(RequestIDHeader))
}

func TestReasonPhrase(t *testing.T) {
	tests := []struct {
		name   string
		code   int
		status string
		want   string
	}{
		{name: "given full status line, then reason only", code: 404, status: "404 Not Found", want: "Not Found"},
		{name: "given bare reason, then unchanged", code: 420, status: "Enhance Your Calm", want: "Enhance Your Calm"},
		{name: "given only the code, then standard text", code: 503, status: "503", want: "Service Unavailable"},
		{name: "given empty status, then standard text", code: 200, status: "", want: "OK"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, reasonPhrase(tt.code, tt.status))
		})
	}
}

func TestOperationName(t *testing.T) {
	req := &Request{Method: http.MethodGet, URL: "/1.1/users/show.json?id=1"}

	assert.Equal(t, "GET /1.1/users/show.json", operationName(req))
}

func TestRestyLogger(t *testing.T) {
	var buf bytes.Buffer
	logger := NewRestyLogger(zerolog.New(&buf))

	logger.Warnf("retrying %d", 1)

	assert.Contains(t, buf.String(), `"component":"resty"`)
	assert.Contains(t, buf.String(), `"message":"retrying 1"`)
}
