// Package restpath is a generic client for path-structured REST APIs.
//
// Instead of one method per endpoint, a request is built by accumulating
// path segments and finished with a verb:
//
//	api, err := restpath.New(restpath.Config{
//	    URLTemplate: "/1.1/%s.json",
//	    Host:        "api.twitter.com",
//	    UseHTTPS:    true,
//	})
//	if err != nil {
//	    return err
//	}
//
//	// GET https://api.twitter.com/1.1/statuses/public_timeline.json?trim_user=1
//	resp, err := api.Segment("statuses").Segment("public_timeline").
//	    Get(ctx, restpath.Params{"trim_user": true})
//
// The same call through the dotted form:
//
//	resp, err := api.Call(ctx, "statuses.public_timeline.get", restpath.Params{"trim_user": true})
//
// # Paths
//
// Resource values are immutable. A prefix can be stored and reused by any
// number of goroutines:
//
//	statuses := api.Segment("statuses")
//	home, _ := statuses.Segment("home_timeline").Get(ctx, nil)
//	mine, _ := statuses.Segment("user_timeline").Get(ctx, nil)
//
// Walk and Call treat get, post, put, delete and segments as reserved: a
// resource literally named "get" can only be reached with Segment("get").
//
// # Parameters
//
// GET parameters go in the query string; POST, PUT and DELETE parameters
// form an application/x-www-form-urlencoded body. Booleans are sent as
// "1" and "0". Keys are sorted, so the wire form is deterministic.
//
// # Responses
//
// Only status 200 is success. Every other status, 201 and 204 included,
// returns an *APIError:
//
//	if restpath.IsStatus(err, http.StatusNotFound) { ... }
//
// JSON objects decode to Object at every depth:
//
//	obj, _ := resp.Object()
//	name, _ := obj.Lookup("user.screen_name")
//
// Raw skips decoding and returns the body bytes.
//
// # Transports
//
// The default transport is an instrumented httpclient.Client (OpenTelemetry
// traces and metrics, pooled connections). RestyTransport sends through
// resty instead, and TransportFunc adapts any function. Transports send
// each request once.
package restpath
