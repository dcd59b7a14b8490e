package restpath

import (
	"context"
	"net/http"
)

// Hooks customise a Client without touching its pipeline. Embed
// DefaultHooks and override only what is needed:
//
//	type timelineHooks struct{ restpath.DefaultHooks }
//
//	func (timelineHooks) ProcessHeaders(context.Context) http.Header {
//	    return http.Header{"Accept": {"application/json"}}
//	}
//
// Implementations must not keep state between calls; one Hooks value
// serves every concurrent call of its Client.
type Hooks interface {
	// ProcessParams turns call parameters into wire strings.
	ProcessParams(params Params) map[string]string

	// ProcessHeaders returns headers added to every request.
	ProcessHeaders(ctx context.Context) http.Header

	// ProcessResponse post-processes a decoded 200 response. A nil
	// response with a nil error is passed through to the caller; Raw
	// then returns a nil body.
	ProcessResponse(resp *Response) (*Response, error)
}

// DefaultHooks normalises params, adds no headers and returns responses
// unchanged.
type DefaultHooks struct{}

var _ Hooks = DefaultHooks{}

func (DefaultHooks) ProcessParams(params Params) map[string]string {
	return NormalizeParams(params)
}

func (DefaultHooks) ProcessHeaders(context.Context) http.Header {
	return nil
}

func (DefaultHooks) ProcessResponse(resp *Response) (*Response, error) {
	return resp, nil
}
