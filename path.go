package veld

import (
	"strconv"
	"strings"
)

// Segment is one step into a nested value: an object field or an array
// index. Index is -1 for field segments.
type Segment struct {
	Key   string `json:"key,omitempty"`
	Index int    `json:"index,omitempty"`
}

// Field builds an object-field segment.
func Field(name string) Segment { return Segment{Key: name, Index: -1} }

// Index builds an array-index segment.
func Index(i int) Segment { return Segment{Index: i} }

// IsIndex reports whether the segment addresses an array element.
func (s Segment) IsIndex() bool { return s.Index >= 0 }

// Path locates a value within a nested input, outermost segment first.
type Path []Segment

// String renders the path in dotted form, e.g. ".user.tags[2]".
// The empty path renders as ".".
func (p Path) String() string {
	if len(p) == 0 {
		return "."
	}
	var b strings.Builder
	for _, s := range p {
		if s.IsIndex() {
			b.WriteByte('[')
			b.WriteString(strconv.Itoa(s.Index))
			b.WriteByte(']')
		} else {
			b.WriteByte('.')
			b.WriteString(s.Key)
		}
	}
	return b.String()
}

// Pointer renders the path as an RFC 6901 JSON Pointer, e.g. "/user/tags/2".
// The empty path renders as "".
func (p Path) Pointer() string {
	if len(p) == 0 {
		return ""
	}
	var b strings.Builder
	for _, s := range p {
		b.WriteByte('/')
		if s.IsIndex() {
			b.WriteString(strconv.Itoa(s.Index))
		} else {
			b.WriteString(escapePointer(s.Key))
		}
	}
	return b.String()
}

func escapePointer(s string) string {
	s = strings.ReplaceAll(s, "~", "~0")
	return strings.ReplaceAll(s, "/", "~1")
}
