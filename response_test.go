package restpath

import (
	"errors"
	"net/http"
	"testing"

	json "github.com/goccy/go-json"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDecodeResponse_Status(t *testing.T) {
	tests := []struct {
		name       string
		status     int
		reason     string
		wantErr    bool
		wantReason string
	}{
		{name: "given 200, then success", status: http.StatusOK, reason: "OK"},
		{name: "given 404, then APIError", status: http.StatusNotFound, reason: "Not Found", wantErr: true, wantReason: "Not Found"},
		{name: "given 201, then APIError", status: http.StatusCreated, reason: "Created", wantErr: true, wantReason: "Created"},
		{name: "given 204, then APIError", status: http.StatusNoContent, reason: "No Content", wantErr: true, wantReason: "No Content"},
		{name: "given 500, then APIError", status: http.StatusInternalServerError, reason: "Internal Server Error", wantErr: true, wantReason: "Internal Server Error"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			body := []byte("{}")
			if tt.wantErr {
				// Non-200 bodies are never parsed, so garbage must not matter.
				body = []byte("{not json")
			}
			resp, err := DecodeResponse(tt.status, tt.reason, body, true)

			if !tt.wantErr {
				require.NoError(t, err)
				assert.Equal(t, tt.status, resp.StatusCode)
				return
			}

			var apiErr *APIError
			require.True(t, errors.As(err, &apiErr))
			assert.Equal(t, tt.status, apiErr.StatusCode)
			assert.Equal(t, tt.wantReason, apiErr.Reason)
			assert.False(t, errors.Is(err, ErrDecode))
			assert.Nil(t, resp)
		})
	}
}

func TestDecodeResponse_NotFoundEmptyBody(t *testing.T) {
	_, err := DecodeResponse(http.StatusNotFound, "Not Found", []byte(""), true)

	assert.True(t, IsStatus(err, http.StatusNotFound))
	assert.EqualError(t, err, "bad response: 404 Not Found")
}

func TestDecodeResponse_NestedAttributes(t *testing.T) {
	resp, err := DecodeResponse(http.StatusOK, "OK", []byte(`{"a": {"b": 1}}`), true)
	require.NoError(t, err)

	obj, ok := resp.Object()
	require.True(t, ok)

	a, ok := obj.Attr("a").(Object)
	require.True(t, ok)
	assert.Equal(t, json.Number("1"), a.Attr("b"))
	assert.Equal(t, obj["a"].(Object)["b"], a.Attr("b"))

	b, ok := obj.Lookup("a.b")
	require.True(t, ok)
	assert.Equal(t, json.Number("1"), b)
	assert.Equal(t, int64(1), obj.Object("a").GetInt64("b"))
}

func TestDecodeResponse_ArraysWrapObjects(t *testing.T) {
	body := []byte(`[{"user": {"screen_name": "gopher"}}, 3, "x", null]`)

	resp, err := DecodeResponse(http.StatusOK, "OK", body, true)
	require.NoError(t, err)

	arr, ok := resp.Array()
	require.True(t, ok)
	require.Len(t, arr, 4)

	first, ok := arr[0].(Object)
	require.True(t, ok)
	name, ok := first.Lookup("user.screen_name")
	require.True(t, ok)
	assert.Equal(t, "gopher", name)
	assert.Equal(t, json.Number("3"), arr[1])
	assert.Nil(t, arr[3])
}

func TestDecodeResponse_Raw(t *testing.T) {
	body := []byte("not json at all")

	resp, err := DecodeResponse(http.StatusOK, "OK", body, false)

	require.NoError(t, err)
	assert.Equal(t, body, resp.Body)
	assert.Nil(t, resp.Data)
}

func TestDecodeResponse_Malformed(t *testing.T) {
	tests := []struct {
		name string
		body string
	}{
		{name: "given truncated object, then decode error", body: `{"a": `},
		{name: "given empty body, then decode error", body: ``},
		{name: "given trailing data, then decode error", body: `{"a": 1} {"b": 2}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			resp, err := DecodeResponse(http.StatusOK, "OK", []byte(tt.body), true)

			assert.ErrorIs(t, err, ErrDecode)
			assert.Nil(t, resp)
		})
	}
}

func TestObject_Accessors(t *testing.T) {
	resp, err := DecodeResponse(http.StatusOK, "OK",
		[]byte(`{"id": 42, "ratio": 0.5, "name": "gopher", "verified": true, "tags": ["a"], "nested": {"x": {"y": "z"}}}`), true)
	require.NoError(t, err)
	obj, _ := resp.Object()

	assert.Equal(t, int64(42), obj.GetInt64("id"))
	assert.Equal(t, 0.5, obj.GetFloat64("ratio"))
	assert.Equal(t, "gopher", obj.GetString("name"))
	assert.True(t, obj.GetBool("verified"))
	assert.Equal(t, []any{"a"}, obj.Array("tags"))
	assert.True(t, obj.Has("name"))
	assert.False(t, obj.Has("missing"))
	assert.Nil(t, obj.Attr("missing"))
	assert.Nil(t, obj.Object("name"))

	_, ok := obj.Lookup("nested.x.missing")
	assert.False(t, ok)
	_, ok = obj.Lookup("name.deeper")
	assert.False(t, ok)
	v, ok := obj.Lookup("nested.x.y")
	assert.True(t, ok)
	assert.Equal(t, "z", v)
}

func TestIsStatus(t *testing.T) {
	err := &APIError{StatusCode: 429, Reason: "Too Many Requests"}
	wrapped := errors.Join(errors.New("context"), err)

	assert.True(t, IsStatus(err, 429))
	assert.True(t, IsStatus(wrapped, 429))
	assert.False(t, IsStatus(err, 500))
	assert.False(t, IsStatus(errors.New("plain"), 429))
}
