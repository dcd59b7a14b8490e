package httpclient

import (
	"errors"
	"io"
	"net/http"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMockTransport(t *testing.T) {
	errBoom := errors.New("boom")

	mock := NewMockTransport().
		StubPath("/a", http.StatusOK, "a").
		StubMethod(http.MethodDelete, http.StatusNoContent, "").
		StubFuncError(func(r *http.Request) bool { return r.URL.Path == "/fail" }, errBoom).
		StubResponse(http.StatusNotFound, "fallback")

	tests := []struct {
		name       string
		method     string
		url        string
		wantStatus int
		wantBody   string
		wantErr    error
	}{
		{name: "given matching path, then uses path stub", method: http.MethodGet, url: "http://x/a", wantStatus: 200, wantBody: "a"},
		{name: "given matching method, then uses method stub", method: http.MethodDelete, url: "http://x/b", wantStatus: 204},
		{name: "given error stub, then returns error", method: http.MethodGet, url: "http://x/fail", wantErr: errBoom},
		{name: "given no match, then uses fallback", method: http.MethodGet, url: "http://x/zzz", wantStatus: 404, wantBody: "fallback"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req, err := http.NewRequest(tt.method, tt.url, nil)
			require.NoError(t, err)

			resp, err := mock.RoundTrip(req)
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				return
			}
			require.NoError(t, err)
			body, _ := io.ReadAll(resp.Body)
			assert.Equal(t, tt.wantStatus, resp.StatusCode)
			assert.Equal(t, tt.wantBody, string(body))
		})
	}

	assert.Equal(t, 4, mock.RequestCount())
}

func TestMockTransport_RecordsBody(t *testing.T) {
	mock := NewMockTransport().StubResponse(http.StatusOK, "")

	req, err := http.NewRequest(http.MethodPost, "http://x/post", strings.NewReader("a=1"))
	require.NoError(t, err)
	_, err = mock.RoundTrip(req)
	require.NoError(t, err)

	rec, ok := mock.LastRequest()
	require.True(t, ok)
	assert.Equal(t, "a=1", string(rec.Body))
	assert.Equal(t, http.MethodPost, rec.Method)

	mock.Reset()
	_, ok = mock.LastRequest()
	assert.False(t, ok)

	_, err = mock.RoundTrip(req)
	assert.Error(t, err)
}
