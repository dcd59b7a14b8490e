package restpath

import (
	"fmt"
	"net/http"
	"strings"
)

// ContentTypeForm is the encoding of query strings and request bodies.
const ContentTypeForm = "application/x-www-form-urlencoded"

const placeholder = "%s"

// Request is one fully built call, ready for a Transport.
type Request struct {
	Method string
	URL    string

	// Body is the form-encoded parameters of a non-GET call, or nil when
	// there is nothing to send.
	Body []byte

	Header http.Header
}

// ValidateTemplate checks that template holds exactly one %s.
func ValidateTemplate(template string) error {
	if n := strings.Count(template, placeholder); n != 1 {
		return fmt.Errorf("%w: %q has %d placeholders, want 1", ErrInvalidTemplate, template, n)
	}
	return nil
}

// BuildRequest substitutes the joined path into template and places params
// according to method: in the query string for GET, in the body otherwise.
// A GET without params carries no "?" at all. An empty path substitutes "".
func BuildRequest(template, method string, path Path, params map[string]string) (*Request, error) {
	if err := ValidateTemplate(template); err != nil {
		return nil, err
	}

	method = strings.ToUpper(method)
	switch method {
	case http.MethodGet, http.MethodPost, http.MethodPut, http.MethodDelete:
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnsupportedMethod, method)
	}

	req := &Request{
		Method: method,
		URL:    strings.Replace(template, placeholder, path.String(), 1),
		Header: make(http.Header),
	}

	if len(params) == 0 {
		return req, nil
	}

	form := EncodeForm(params)
	if method == http.MethodGet {
		req.URL += "?" + form
		return req, nil
	}

	req.Body = []byte(form)
	req.Header.Set("Content-Type", ContentTypeForm)
	return req, nil
}
