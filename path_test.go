package restpath

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestPath_Append(t *testing.T) {
	base := NewPath("users")

	a := base.Append("show")
	b := base.Append("lookup")

	assert.Equal(t, []string{"users"}, base.Segments())
	assert.Equal(t, []string{"users", "show"}, a.Segments())
	assert.Equal(t, []string{"users", "lookup"}, b.Segments())
}

func TestPath_AppendDoesNotShareBacking(t *testing.T) {
	// A parent with spare capacity must not let siblings overwrite each other.
	base := Path{segments: make([]string, 1, 8)}
	base.segments[0] = "statuses"

	a := base.Append("home_timeline")
	b := base.Append("user_timeline")

	assert.Equal(t, "statuses/home_timeline", a.String())
	assert.Equal(t, "statuses/user_timeline", b.String())
}

func TestPath_SegmentsIsACopy(t *testing.T) {
	p := NewPath("a", "b")

	segs := p.Segments()
	segs[0] = "mutated"

	assert.Equal(t, []string{"a", "b"}, p.Segments())
}

func TestPath_String(t *testing.T) {
	tests := []struct {
		name string
		path Path
		want string
	}{
		{name: "given empty path, then empty string", path: Path{}, want: ""},
		{name: "given plain segments, then joined with slash", path: NewPath("users", "123"), want: "users/123"},
		{name: "given segment with slash, then slash is escaped", path: NewPath("a/b", "c"), want: "a%2Fb/c"},
		{name: "given segment with space, then space is escaped", path: NewPath("hello world"), want: "hello%20world"},
		{name: "given reserved name, then kept verbatim", path: NewPath("get"), want: "get"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.path.String())
		})
	}
}

func TestIsReserved(t *testing.T) {
	for _, name := range []string{"get", "post", "put", "delete", "segments"} {
		assert.True(t, IsReserved(name), name)
	}
	for _, name := range []string{"GET", "users", "gets", ""} {
		assert.False(t, IsReserved(name), name)
	}
}

func TestSplitDotted(t *testing.T) {
	assert.Equal(t, []string{"a", "b", "c"}, splitDotted("a.b.c"))
	assert.Equal(t, []string{"a", "b"}, splitDotted(".a..b."))
	assert.Empty(t, splitDotted(""))
}
