package httpclient

import (
	"crypto/tls"
	"fmt"
	"net/http"
	"net/http/httptrace"
	"sort"
	"strings"
	"time"

	"github.com/rs/zerolog"
)

// generateCurlCommand renders req as a copy-pasteable cURL invocation.
// Headers are sorted so output is stable.
//
//	curl -X POST 'https://api.example.com/1.1/statuses/update.json' \
//	  -H 'Content-Type: application/x-www-form-urlencoded' \
//	  -d 'status=hi'
func generateCurlCommand(req *http.Request, body []byte) string {
	parts := []string{"curl"}

	if req.Method != http.MethodGet {
		parts = append(parts, "-X", req.Method)
	}

	parts = append(parts, fmt.Sprintf("'%s'", req.URL.String()))

	keys := make([]string, 0, len(req.Header))
	for k := range req.Header {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	for _, k := range keys {
		for _, v := range req.Header[k] {
			parts = append(parts, "-H", fmt.Sprintf("'%s: %s'", k, v))
		}
	}

	if len(body) > 0 {
		escaped := strings.ReplaceAll(string(body), "'", "'\\''")
		parts = append(parts, "-d", fmt.Sprintf("'%s'", escaped))
	}

	return strings.Join(parts, " ")
}

// requestTracer records phase timestamps for TraceInfo.
type requestTracer struct {
	dnsStart   time.Time
	dnsEnd     time.Time
	connStart  time.Time
	connEnd    time.Time
	tlsStart   time.Time
	tlsEnd     time.Time
	wrote      time.Time
	firstByte  time.Time
	totalStart time.Time
}

func (t *requestTracer) clientTrace() *httptrace.ClientTrace {
	return &httptrace.ClientTrace{
		DNSStart:             func(httptrace.DNSStartInfo) { t.dnsStart = time.Now() },
		DNSDone:              func(httptrace.DNSDoneInfo) { t.dnsEnd = time.Now() },
		ConnectStart:         func(_, _ string) { t.connStart = time.Now() },
		ConnectDone:          func(_, _ string, _ error) { t.connEnd = time.Now() },
		TLSHandshakeStart:    func() { t.tlsStart = time.Now() },
		TLSHandshakeDone:     func(tls.ConnectionState, error) { t.tlsEnd = time.Now() },
		WroteRequest:         func(httptrace.WroteRequestInfo) { t.wrote = time.Now() },
		GotFirstResponseByte: func() { t.firstByte = time.Now() },
	}
}

func (t *requestTracer) toTraceInfo() *TraceInfo {
	info := &TraceInfo{
		DNSLookup:  span(t.dnsStart, t.dnsEnd, "0s"),
		ConnTime:   span(t.connStart, t.connEnd, "0s"),
		ServerTime: span(t.wrote, t.firstByte, "0s"),
		TotalTime:  "0s",
	}
	info.TLSHandshake = span(t.tlsStart, t.tlsEnd, "")
	if !t.totalStart.IsZero() {
		info.TotalTime = time.Since(t.totalStart).String()
	}
	return info
}

// span formats end-start, or fallback when either end was never observed.
func span(start, end time.Time, fallback string) string {
	if start.IsZero() || end.IsZero() {
		return fallback
	}
	return end.Sub(start).String()
}

func logRequest(logger zerolog.Logger, operation string, req *http.Request) {
	logger.Debug().
		Str("operation", operation).
		Str("method", req.Method).
		Str("url", req.URL.String()).
		Str("host", req.Host).
		Msg("HTTP request")
}

func logResponse(logger zerolog.Logger, operation string, resp *http.Response, duration time.Duration) {
	logger.Debug().
		Str("operation", operation).
		Int("status", resp.StatusCode).
		Str("status_text", resp.Status).
		Dur("duration_ms", duration).
		Int64("content_length", resp.ContentLength).
		Msg("HTTP response")
}
