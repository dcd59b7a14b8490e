package httpclient

import (
	"context"
	"crypto/tls"
	"errors"
	"io"
	"net"
	"net/http/httptrace"
	"strconv"
	"strings"
	"syscall"
	"time"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
)

// Values of the error.type attribute for failures that produced no response.
const (
	ErrorTypeTimeout           = "timeout"
	ErrorTypeConnectionRefused = "connection_refused"
	ErrorTypeDNSError          = "dns_error"
	ErrorTypeTLSError          = "tls_error"
	ErrorTypeCancelled         = "cancelled"
	ErrorTypeConnectionReset   = "connection_reset"
	ErrorTypeEOF               = "eof"
	ErrorTypeUnknown           = "unknown"
)

// networkTrace is filled in by the httptrace hooks of one round trip.
type networkTrace struct {
	dnsStart, dnsDone         time.Time
	connectStart, connectDone time.Time
	tlsStart, tlsDone         time.Time
	gotConn                   time.Time
	wroteRequest              time.Time
	firstByte                 time.Time

	connReused bool
	connIdle   bool
	peerAddr   string
	alpn       string
	dnsAddrs   []string
}

func createClientTrace(nt *networkTrace) *httptrace.ClientTrace {
	return &httptrace.ClientTrace{
		GotConn: func(info httptrace.GotConnInfo) {
			nt.gotConn = time.Now()
			nt.connReused = info.Reused
			nt.connIdle = info.WasIdle
			if info.Conn != nil && info.Conn.RemoteAddr() != nil {
				nt.peerAddr = info.Conn.RemoteAddr().String()
			}
		},
		DNSStart: func(httptrace.DNSStartInfo) { nt.dnsStart = time.Now() },
		DNSDone: func(info httptrace.DNSDoneInfo) {
			nt.dnsDone = time.Now()
			for _, a := range info.Addrs {
				nt.dnsAddrs = append(nt.dnsAddrs, a.String())
			}
		},
		ConnectStart:      func(_, _ string) { nt.connectStart = time.Now() },
		ConnectDone:       func(_, _ string, _ error) { nt.connectDone = time.Now() },
		TLSHandshakeStart: func() { nt.tlsStart = time.Now() },
		TLSHandshakeDone: func(state tls.ConnectionState, _ error) {
			nt.tlsDone = time.Now()
			nt.alpn = state.NegotiatedProtocol
		},
		WroteRequest:         func(httptrace.WroteRequestInfo) { nt.wroteRequest = time.Now() },
		GotFirstResponseByte: func() { nt.firstByte = time.Now() },
	}
}

func observed(start, end time.Time) bool {
	return !start.IsZero() && !end.IsZero()
}

func millis(start, end time.Time) float64 {
	return float64(end.Sub(start).Microseconds()) / 1000
}

// addTraceEvents turns the collected phases into span events.
func (nt *networkTrace) addTraceEvents(span trace.Span) {
	if observed(nt.dnsStart, nt.dnsDone) {
		span.AddEvent("dns.done", trace.WithTimestamp(nt.dnsDone), trace.WithAttributes(
			attribute.Float64("dns.duration_ms", millis(nt.dnsStart, nt.dnsDone)),
			attribute.StringSlice("dns.addresses", nt.dnsAddrs),
		))
	}
	if observed(nt.connectStart, nt.connectDone) {
		span.AddEvent("connect.done", trace.WithTimestamp(nt.connectDone), trace.WithAttributes(
			attribute.Float64("connect.duration_ms", millis(nt.connectStart, nt.connectDone)),
		))
	}
	if observed(nt.tlsStart, nt.tlsDone) {
		span.AddEvent("tls.done", trace.WithTimestamp(nt.tlsDone), trace.WithAttributes(
			attribute.Float64("tls.duration_ms", millis(nt.tlsStart, nt.tlsDone)),
			attribute.String("tls.protocol", nt.alpn),
		))
	}
	if !nt.gotConn.IsZero() {
		span.AddEvent("got_conn", trace.WithTimestamp(nt.gotConn), trace.WithAttributes(
			attribute.Bool("connection.reused", nt.connReused),
			attribute.Bool("connection.was_idle", nt.connIdle),
			attribute.String("network.peer.address", nt.peerAddr),
		))
	}
	if observed(nt.wroteRequest, nt.firstByte) {
		span.AddEvent("got_first_response_byte", trace.WithTimestamp(nt.firstByte), trace.WithAttributes(
			attribute.Float64("ttfb_ms", millis(nt.wroteRequest, nt.firstByte)),
		))
	}
}

func (nt *networkTrace) recordTimingMetrics(ctx context.Context, m *metrics, attrs []attribute.KeyValue) {
	if m == nil {
		return
	}
	if observed(nt.dnsStart, nt.dnsDone) {
		m.recordDNSDuration(ctx, nt.dnsDone.Sub(nt.dnsStart), attrs)
	}
	if observed(nt.connectStart, nt.connectDone) {
		m.recordConnectionDuration(ctx, nt.connectDone.Sub(nt.connectStart), attrs)
	}
	if observed(nt.tlsStart, nt.tlsDone) {
		m.recordTLSDuration(ctx, nt.tlsDone.Sub(nt.tlsStart), attrs)
	}
	if observed(nt.wroteRequest, nt.firstByte) {
		m.recordTTFB(ctx, nt.firstByte.Sub(nt.wroteRequest), attrs)
	}
}

// classifyError maps a round trip failure to an error.type value.
func classifyError(err error) string {
	switch {
	case err == nil:
		return ""
	case errors.Is(err, context.Canceled):
		return ErrorTypeCancelled
	case errors.Is(err, context.DeadlineExceeded):
		return ErrorTypeTimeout
	}

	var netErr net.Error
	if errors.As(err, &netErr) && netErr.Timeout() {
		return ErrorTypeTimeout
	}
	var dnsErr *net.DNSError
	if errors.As(err, &dnsErr) {
		return ErrorTypeDNSError
	}
	var recordErr *tls.RecordHeaderError
	var certErr *tls.CertificateVerificationError
	if errors.As(err, &recordErr) || errors.As(err, &certErr) {
		return ErrorTypeTLSError
	}

	switch {
	case errors.Is(err, syscall.ECONNREFUSED):
		return ErrorTypeConnectionRefused
	case errors.Is(err, syscall.ECONNRESET):
		return ErrorTypeConnectionReset
	case errors.Is(err, io.EOF), errors.Is(err, io.ErrUnexpectedEOF):
		return ErrorTypeEOF
	}

	// Some wrappers flatten the cause into the message.
	msg := strings.ToLower(err.Error())
	switch {
	case strings.Contains(msg, "timeout"):
		return ErrorTypeTimeout
	case strings.Contains(msg, "connection refused"):
		return ErrorTypeConnectionRefused
	case strings.Contains(msg, "connection reset"):
		return ErrorTypeConnectionReset
	case strings.Contains(msg, "no such host"):
		return ErrorTypeDNSError
	case strings.Contains(msg, "x509"), strings.Contains(msg, "tls"), strings.Contains(msg, "certificate"):
		return ErrorTypeTLSError
	case strings.Contains(msg, "eof"):
		return ErrorTypeEOF
	}
	return ErrorTypeUnknown
}

// ClassifyError exposes the error.type classification used on spans, so
// callers can log transport failures with the same vocabulary.
func ClassifyError(err error) string {
	return classifyError(err)
}

// errorTypeFromStatusCode uses the status code itself for 4xx and 5xx.
func errorTypeFromStatusCode(statusCode int) string {
	if statusCode >= 400 {
		return strconv.Itoa(statusCode)
	}
	return ""
}

func setSpanError(span trace.Span, err error, errorType string) {
	span.RecordError(err)
	span.SetStatus(codes.Error, err.Error())
	if errorType != "" {
		span.SetAttributes(attribute.String("error.type", errorType))
	}
}
