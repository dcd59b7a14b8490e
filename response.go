package restpath

import (
	"bytes"
	"fmt"
	"net/http"
	"strings"

	json "github.com/goccy/go-json"
	"github.com/spf13/cast"
)

// Response is a decoded 200 response.
type Response struct {
	StatusCode int
	Status     string
	Header     http.Header

	// Body is the raw payload, kept even when Data was decoded from it.
	Body []byte

	// Data is the decoded JSON tree: every object is an Object, every array
	// a []any, numbers are json.Number. Nil for raw responses.
	Data any
}

// Object returns Data as an Object.
func (r *Response) Object() (Object, bool) {
	obj, ok := r.Data.(Object)
	return obj, ok
}

// Array returns Data as a JSON array.
func (r *Response) Array() ([]any, bool) {
	arr, ok := r.Data.([]any)
	return arr, ok
}

// DecodeResponse turns a raw exchange into a Response. Any status other
// than 200, including 201 and 204, yields an *APIError and the body is left
// alone. With parseJSON false, Body is returned as is and Data stays nil.
func DecodeResponse(statusCode int, reason string, body []byte, parseJSON bool) (*Response, error) {
	if statusCode != http.StatusOK {
		return nil, &APIError{StatusCode: statusCode, Reason: reason}
	}

	resp := &Response{StatusCode: statusCode, Status: reason, Body: body}
	if !parseJSON {
		return resp, nil
	}

	data, err := decodeJSON(body)
	if err != nil {
		return nil, err
	}
	resp.Data = data
	return resp, nil
}

func decodeJSON(body []byte) (any, error) {
	dec := json.NewDecoder(bytes.NewReader(body))
	dec.UseNumber()

	var v any
	if err := dec.Decode(&v); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrDecode, err)
	}
	if dec.More() {
		return nil, fmt.Errorf("%w: trailing data after JSON value", ErrDecode)
	}
	return wrap(v), nil
}

// wrap replaces every nested map with an Object.
func wrap(v any) any {
	switch t := v.(type) {
	case map[string]any:
		obj := make(Object, len(t))
		for k, child := range t {
			obj[k] = wrap(child)
		}
		return obj
	case []any:
		for i, child := range t {
			t[i] = wrap(child)
		}
		return t
	default:
		return v
	}
}

// Object is a decoded JSON object. Indexing and Attr are the same lookup;
// Attr and Lookup exist so chains read like the resource path that
// produced them:
//
//	name, _ := obj.Lookup("user.screen_name")
type Object map[string]any

// Attr returns the member name, or nil when absent.
func (o Object) Attr(name string) any {
	return o[name]
}

// Has reports whether name is a member.
func (o Object) Has(name string) bool {
	_, ok := o[name]
	return ok
}

// Lookup follows a dotted path of member names through nested objects.
func (o Object) Lookup(path string) (any, bool) {
	var cur any = o
	for _, name := range strings.Split(path, ".") {
		obj, ok := cur.(Object)
		if !ok {
			return nil, false
		}
		if cur, ok = obj[name]; !ok {
			return nil, false
		}
	}
	return cur, true
}

// Object returns the member name as an Object, or nil.
func (o Object) Object(name string) Object {
	obj, _ := o[name].(Object)
	return obj
}

// Array returns the member name as an array, or nil.
func (o Object) Array(name string) []any {
	arr, _ := o[name].([]any)
	return arr
}

// GetString returns the member name converted to a string; "" when absent.
func (o Object) GetString(name string) string {
	return cast.ToString(o[name])
}

// GetInt64 returns the member name as an int64; 0 when absent or not numeric.
func (o Object) GetInt64(name string) int64 {
	return cast.ToInt64(o[name])
}

// GetFloat64 returns the member name as a float64; 0 when absent or not numeric.
func (o Object) GetFloat64(name string) float64 {
	return cast.ToFloat64(o[name])
}

// GetBool returns the member name as a bool; false when absent.
func (o Object) GetBool(name string) bool {
	return cast.ToBool(o[name])
}
