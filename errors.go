package restpath

import (
	"errors"
	"fmt"
)

var (
	// ErrDecode wraps parser failures on a successful response body.
	ErrDecode = errors.New("restpath: decode response")

	// ErrReservedSegment is returned by Walk and Call when a verb or
	// lifecycle name appears where a path segment is expected.
	ErrReservedSegment = errors.New("restpath: reserved name used as segment")

	// ErrMissingVerb is returned by Call when the dotted expression does
	// not end in a verb.
	ErrMissingVerb = errors.New("restpath: missing verb")

	// ErrUnsupportedMethod is returned for methods other than GET, POST, PUT
	// and DELETE.
	ErrUnsupportedMethod = errors.New("restpath: unsupported method")

	// ErrInvalidTemplate is returned when a URL template does not hold
	// exactly one %s placeholder.
	ErrInvalidTemplate = errors.New("restpath: invalid url template")
)

// APIError is any response whose status is not 200.
type APIError struct {
	StatusCode int
	Reason     string

	// Method, URL and Body are filled in by Client; DecodeResponse alone
	// leaves them empty.
	Method string
	URL    string
	Body   []byte
}

func (e *APIError) Error() string {
	return fmt.Sprintf("bad response: %d %s", e.StatusCode, e.Reason)
}

// IsStatus reports whether err is an *APIError with the given status.
func IsStatus(err error, statusCode int) bool {
	var apiErr *APIError
	if errors.As(err, &apiErr) {
		return apiErr.StatusCode == statusCode
	}
	return false
}
