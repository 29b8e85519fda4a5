package dsl

import (
	"context"

	veld "github.com/veldkit/veld"
	js "github.com/veldkit/veld/jsonschema"
)

// SetSchema validates an array, deduplicates the validated elements by
// canonical JSON encoding, and bounds the deduplicated size.
type SetSchema[E any] struct {
	elem     veld.Schema[E]
	min, max *int
}

// Set builds a set schema over an element schema.
func Set[E any](elem veld.Schema[E]) *SetSchema[E] {
	return &SetSchema[E]{elem: elem}
}

// Min requires at least n distinct elements.
func (s *SetSchema[E]) Min(n int) *SetSchema[E] {
	s.min = &n
	return s
}

// Max allows at most n distinct elements.
func (s *SetSchema[E]) Max(n int) *SetSchema[E] {
	s.max = &n
	return s
}

// Parse implements veld.Schema[[]E]. The result preserves first-seen
// order of distinct elements.
func (s *SetSchema[E]) Parse(ctx context.Context, v any) ([]E, error) {
	arr, ok := v.([]any)
	if !ok {
		return nil, invalidType("array", v)
	}
	var issues veld.Issues
	seen := make(map[string]struct{}, len(arr))
	out := make([]E, 0, len(arr))
	for i, e := range arr {
		ev, err := s.elem.Parse(ctx, e)
		if err != nil {
			issues = append(issues, veld.PrefixIndex(err, i)...)
			if veld.IsFailFast(ctx) {
				return nil, issues
			}
			continue
		}
		key, err := veld.CanonicalJSON(ev)
		if err != nil {
			issues = append(issues, veld.Issue{
				Code:    veld.CodeInvalidSet,
				Message: err.Error(),
				Path:    veld.Path{veld.Index(i)},
			})
			continue
		}
		if _, dup := seen[key]; dup {
			continue
		}
		seen[key] = struct{}{}
		out = append(out, ev)
	}
	// Size bounds apply to the deduplicated count.
	if s.min != nil && len(out) < *s.min {
		issues = append(issues, sizeIssue(veld.CodeTooSmall, "set", map[string]any{"min": *s.min}))
	}
	if s.max != nil && len(out) > *s.max {
		issues = append(issues, sizeIssue(veld.CodeTooBig, "set", map[string]any{"max": *s.max}))
	}
	if len(issues) > 0 {
		return nil, issues
	}
	return out, nil
}

func (s *SetSchema[E]) ParseAny(ctx context.Context, v any) (any, error) {
	return parseAsAny[[]E](ctx, s, v)
}

// JSONSchema implements veld.Schema[[]E].
func (s *SetSchema[E]) JSONSchema() (*js.Schema, error) {
	items, err := s.elem.JSONSchema()
	if err != nil {
		return nil, err
	}
	out := &js.Schema{Type: "array", Items: items, UniqueItems: true}
	if s.min != nil {
		out.MinItems = js.IntPtr(*s.min)
	}
	if s.max != nil {
		out.MaxItems = js.IntPtr(*s.max)
	}
	return out, nil
}
