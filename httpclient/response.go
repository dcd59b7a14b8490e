package httpclient

import (
	"fmt"
	"net/http"
	"strconv"
	"strings"
	"time"

	json "github.com/goccy/go-json"
)

// Response wraps http.Response with the body already read.
//
// The embedded Body reader is drained and closed; use Bytes or String.
type Response struct {
	*http.Response

	request     *http.Request
	body        []byte
	duration    time.Duration
	curlCommand string
	traceInfo   *TraceInfo
}

// Bytes returns the response body.
func (r *Response) Bytes() []byte {
	return r.body
}

// String returns the response body as a string.
func (r *Response) String() string {
	return string(r.body)
}

// Reason returns the status text without the numeric code,
// e.g. "Not Found" for "404 Not Found".
func (r *Response) Reason() string {
	prefix := strconv.Itoa(r.StatusCode) + " "
	if reason, ok := strings.CutPrefix(r.Status, prefix); ok {
		return reason
	}
	if r.Status != "" {
		return r.Status
	}
	return http.StatusText(r.StatusCode)
}

// Duration is the time from send to fully read body.
func (r *Response) Duration() time.Duration {
	return r.duration
}

// DecodeJSON unmarshals the body into v.
func (r *Response) DecodeJSON(v any) error {
	return json.Unmarshal(r.body, v)
}

// IsSuccess reports a 2xx status.
func (r *Response) IsSuccess() bool {
	return r.StatusCode >= 200 && r.StatusCode < 300
}

// IsError reports a 4xx or 5xx status.
func (r *Response) IsError() bool {
	return r.StatusCode >= 400
}

// CurlCommand returns the cURL equivalent of the request.
// Empty unless WithGenerateCurl(true) was set.
func (r *Response) CurlCommand() string {
	return r.curlCommand
}

// TraceInfo returns request timings, or nil when tracing was off.
func (r *Response) TraceInfo() *TraceInfo {
	return r.traceInfo
}

// TraceInfo holds per-phase timings of one request as duration strings.
type TraceInfo struct {
	DNSLookup    string
	ConnTime     string
	TLSHandshake string // empty for plain HTTP
	ServerTime   string // time to first byte after the request was written
	TotalTime    string
}

// String renders the timings one per line.
func (t *TraceInfo) String() string {
	if t == nil {
		return "TraceInfo: nil (tracing disabled)"
	}

	return fmt.Sprintf(
		"DNS Lookup:    %s\nTCP Connect:   %s\nTLS Handshake: %s\nServer Time:   %s\nTotal Time:    %s",
		t.DNSLookup,
		t.ConnTime,
		t.TLSHandshake,
		t.ServerTime,
		t.TotalTime,
	)
}
