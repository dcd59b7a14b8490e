// Package httpclient is an instrumented HTTP client with a fluent request
// builder. Each request is sent once; there is no retry, hedging or
// circuit breaking, so every failure reaches the caller unchanged.
//
// # Quick Start
//
//	client := httpclient.New(
//	    httpclient.WithBaseURL("https://api.example.com"),
//	    httpclient.WithServiceName("timeline-reader"),
//	)
//
//	resp, err := client.Request("PublicTimeline").
//	    Query("trim_user", "1").
//	    Get(ctx, "/1.1/statuses/public_timeline.json")
//
// Bodies are read completely before Do returns:
//
//	fmt.Println(resp.StatusCode, resp.Reason(), resp.String())
//
// # Configuration Presets
//
//	client := httpclient.New(httpclient.WithConfig(httpclient.LowLatencyConfig()))
//
// # Observability
//
// Every round trip produces a client span named "HTTP {method}" and the
// OpenTelemetry semconv client metrics:
//
//   - http.client.request.duration
//   - http.client.request.body.size / http.client.response.body.size
//   - http.client.active_requests
//   - http.client.request.error (failures without a response)
//   - http.client.dns.duration, connection.duration, tls.duration, ttfb
//
// Trace context is injected into outgoing headers using the configured
// propagators (W3C TraceContext and Baggage by default). Network phase
// events can be turned off with WithDisableNetworkTrace.
//
// # Debugging
//
//	client := httpclient.New(
//	    httpclient.WithDebug(true),        // zerolog debug lines per request
//	    httpclient.WithGenerateCurl(true), // resp.CurlCommand()
//	    httpclient.WithEnableTrace(true),  // resp.TraceInfo()
//	)
//
// # Testing
//
//	mock := httpclient.NewMockTransport().
//	    StubJSON("/1.1/statuses/public_timeline.json", 200, `[]`)
//	client := httpclient.New(httpclient.WithMockTransport(mock))
package httpclient
