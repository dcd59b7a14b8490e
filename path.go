package restpath

import (
	"net/url"
	"strings"
)

// Path is an ordered, immutable list of URL segments.
// The zero value is the empty path.
type Path struct {
	segments []string
}

// NewPath returns a Path holding a copy of segments.
func NewPath(segments ...string) Path {
	return Path{segments: append([]string(nil), segments...)}
}

// Append returns a new Path with name added at the end. p is unchanged and
// the two never share a writable backing array.
func (p Path) Append(name string) Path {
	next := make([]string, len(p.segments), len(p.segments)+1)
	copy(next, p.segments)
	return Path{segments: append(next, name)}
}

// Segments returns a copy of the segments.
func (p Path) Segments() []string {
	return append([]string(nil), p.segments...)
}

// Len returns the number of segments.
func (p Path) Len() int {
	return len(p.segments)
}

// String joins the segments with "/", path-escaping each one so that a
// segment can never introduce a separator of its own.
func (p Path) String() string {
	escaped := make([]string, len(p.segments))
	for i, s := range p.segments {
		escaped[i] = url.PathEscape(s)
	}
	return strings.Join(escaped, "/")
}

// Names Walk and Call refuse to treat as segments.
const (
	verbGet      = "get"
	verbPost     = "post"
	verbPut      = "put"
	verbDelete   = "delete"
	nameSegments = "segments"
)

var verbs = map[string]string{
	verbGet:    "GET",
	verbPost:   "POST",
	verbPut:    "PUT",
	verbDelete: "DELETE",
}

// IsReserved reports whether name is one of get, post, put, delete or
// segments. Reserved names are checked before a dotted component becomes a
// segment, so a resource literally named "get" is only reachable through
// Segment.
func IsReserved(name string) bool {
	_, isVerb := verbs[name]
	return isVerb || name == nameSegments
}

// splitDotted splits "a.b.c" into its components. Empty components are
// dropped, so "" and "." yield nothing.
func splitDotted(expr string) []string {
	parts := strings.Split(expr, ".")
	out := parts[:0]
	for _, p := range parts {
		if p != "" {
			out = append(out, p)
		}
	}
	return out
}
