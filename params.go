package restpath

import (
	"fmt"
	"net/url"

	"github.com/spf13/cast"
)

// Params are the request parameters of one call. Values may be strings,
// any integer or float kind, bools or fmt.Stringers.
type Params map[string]any

// NormalizeParams turns every value into its wire text: booleans become
// "1" or "0", everything else its natural decimal or string form. It never
// fails and never modifies params.
func NormalizeParams(params Params) map[string]string {
	out := make(map[string]string, len(params))
	for k, v := range params {
		out[k] = normalizeValue(v)
	}
	return out
}

func normalizeValue(v any) string {
	switch val := v.(type) {
	case bool:
		if val {
			return "1"
		}
		return "0"
	case nil:
		return ""
	case fmt.Stringer:
		return val.String()
	}
	if s, err := cast.ToStringE(v); err == nil {
		return s
	}
	return fmt.Sprint(v)
}

// EncodeForm renders params as application/x-www-form-urlencoded text with
// keys in sorted order. Empty params encode to "".
func EncodeForm(params map[string]string) string {
	values := make(url.Values, len(params))
	for k, v := range params {
		values.Set(k, v)
	}
	return values.Encode()
}
