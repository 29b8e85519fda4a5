package veld

import (
	"strconv"
	"strings"
)

// Prettify renders every issue in err on its own line, with an indented
// location line for issues that carry a path.
//
//	✖ String must be at least 3 characters
//	  → at .user.name
func Prettify(err error) string {
	is := AsIssues(err)
	lines := make([]string, 0, len(is)*2)
	for _, it := range is {
		lines = append(lines, "✖ "+it.Message)
		if len(it.Path) > 0 {
			lines = append(lines, "  → at "+it.Path.String())
		}
	}
	return strings.Join(lines, "\n")
}

// Flat is the result of Flatten: top-level issues and per-field buckets.
type Flat struct {
	FormErrors  []string            `json:"formErrors"`
	FieldErrors map[string][]string `json:"fieldErrors"`
}

// Flatten buckets issues by their first path segment. Issues at the root
// go to FormErrors; everything else is keyed by the top-level field name
// or index.
func Flatten(err error) Flat {
	out := Flat{FieldErrors: map[string][]string{}}
	for _, it := range AsIssues(err) {
		if len(it.Path) == 0 {
			out.FormErrors = append(out.FormErrors, it.Message)
			continue
		}
		var key string
		if s := it.Path[0]; s.IsIndex() {
			key = strconv.Itoa(s.Index)
		} else {
			key = s.Key
		}
		out.FieldErrors[key] = append(out.FieldErrors[key], it.Message)
	}
	return out
}

// ErrorTree mirrors the nesting of the input: messages at each node plus
// child trees per object property and per array index.
type ErrorTree struct {
	Errors     []string              `json:"errors,omitempty"`
	Properties map[string]*ErrorTree `json:"properties,omitempty"`
	Items      map[int]*ErrorTree    `json:"items,omitempty"`
}

// Treeify arranges issues into a tree following their paths.
func Treeify(err error) *ErrorTree {
	root := &ErrorTree{}
	for _, it := range AsIssues(err) {
		node := root
		for _, seg := range it.Path {
			if seg.IsIndex() {
				if node.Items == nil {
					node.Items = map[int]*ErrorTree{}
				}
				child, ok := node.Items[seg.Index]
				if !ok {
					child = &ErrorTree{}
					node.Items[seg.Index] = child
				}
				node = child
			} else {
				if node.Properties == nil {
					node.Properties = map[string]*ErrorTree{}
				}
				child, ok := node.Properties[seg.Key]
				if !ok {
					child = &ErrorTree{}
					node.Properties[seg.Key] = child
				}
				node = child
			}
		}
		node.Errors = append(node.Errors, it.Message)
	}
	return root
}
