package dsl

import (
	"context"

	veld "github.com/veldkit/veld"
	"github.com/veldkit/veld/i18n"
	js "github.com/veldkit/veld/jsonschema"
)

// Entry is one key/value pair of a MapOf result. Order follows the input.
type Entry[K, V any] struct {
	Key   K
	Value V
}

// MapSchema validates an array of [key, value] pairs, preserving entry
// order and allowing non-string keys.
type MapSchema[K, V any] struct {
	key      veld.Schema[K]
	value    veld.Schema[V]
	min, max *int
}

// MapOf builds a map schema from a key schema and a value schema.
func MapOf[K, V any](key veld.Schema[K], value veld.Schema[V]) *MapSchema[K, V] {
	return &MapSchema[K, V]{key: key, value: value}
}

// Min requires at least n entries.
func (s *MapSchema[K, V]) Min(n int) *MapSchema[K, V] {
	s.min = &n
	return s
}

// Max allows at most n entries.
func (s *MapSchema[K, V]) Max(n int) *MapSchema[K, V] {
	s.max = &n
	return s
}

// Parse implements veld.Schema[[]Entry[K, V]].
func (s *MapSchema[K, V]) Parse(ctx context.Context, v any) ([]Entry[K, V], error) {
	arr, ok := v.([]any)
	if !ok {
		return nil, invalidType("array", v)
	}
	var issues veld.Issues
	if s.min != nil && len(arr) < *s.min {
		issues = append(issues, sizeIssue(veld.CodeTooSmall, "map", map[string]any{"min": *s.min}))
	}
	if s.max != nil && len(arr) > *s.max {
		issues = append(issues, sizeIssue(veld.CodeTooBig, "map", map[string]any{"max": *s.max}))
	}
	if veld.IsFailFast(ctx) && len(issues) > 0 {
		return nil, issues
	}
	out := make([]Entry[K, V], 0, len(arr))
	for i, e := range arr {
		pair, ok := e.([]any)
		if !ok || len(pair) != 2 {
			issues = append(issues, veld.Issue{
				Code:    veld.CodeInvalidMapEntry,
				Message: i18n.T(veld.CodeInvalidMapEntry, nil),
				Path:    veld.Path{veld.Index(i)},
			})
			if veld.IsFailFast(ctx) {
				return nil, issues
			}
			continue
		}
		entryBad := false
		k, err := s.key.Parse(ctx, pair[0])
		if err != nil {
			issues = append(issues, veld.PrefixPath(err, veld.Path{veld.Index(i), veld.Index(0)})...)
			entryBad = true
		}
		if veld.IsFailFast(ctx) && len(issues) > 0 {
			return nil, issues
		}
		val, err := s.value.Parse(ctx, pair[1])
		if err != nil {
			issues = append(issues, veld.PrefixPath(err, veld.Path{veld.Index(i), veld.Index(1)})...)
			entryBad = true
		}
		if veld.IsFailFast(ctx) && len(issues) > 0 {
			return nil, issues
		}
		if !entryBad {
			out = append(out, Entry[K, V]{Key: k, Value: val})
		}
	}
	if len(issues) > 0 {
		return nil, issues
	}
	return out, nil
}

func (s *MapSchema[K, V]) ParseAny(ctx context.Context, v any) (any, error) {
	return parseAsAny[[]Entry[K, V]](ctx, s, v)
}

// JSONSchema implements veld.Schema[[]Entry[K, V]]: an array of 2-tuples.
func (s *MapSchema[K, V]) JSONSchema() (*js.Schema, error) {
	kp, err := s.key.JSONSchema()
	if err != nil {
		return nil, err
	}
	vp, err := s.value.JSONSchema()
	if err != nil {
		return nil, err
	}
	pair := &js.Schema{
		Type:        "array",
		PrefixItems: []*js.Schema{kp, vp},
		MinItems:    js.IntPtr(2),
		MaxItems:    js.IntPtr(2),
	}
	out := &js.Schema{Type: "array", Items: pair}
	if s.min != nil {
		out.MinItems = js.IntPtr(*s.min)
	}
	if s.max != nil {
		out.MaxItems = js.IntPtr(*s.max)
	}
	return out, nil
}
