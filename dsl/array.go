package dsl

import (
	"context"

	veld "github.com/veldkit/veld"
	js "github.com/veldkit/veld/jsonschema"
)

// ArraySchema validates JSON arrays element-wise. Element issues are
// rebased under their index and accumulate across elements.
type ArraySchema[E any] struct {
	elem     veld.Schema[E]
	min, max *int
	minMsg   string
	maxMsg   string
}

// Array builds an array schema over an element schema.
func Array[E any](elem veld.Schema[E]) *ArraySchema[E] {
	return &ArraySchema[E]{elem: elem}
}

// Min requires at least n elements.
func (s *ArraySchema[E]) Min(n int) *ArraySchema[E] {
	s.min = &n
	return s
}

// Max allows at most n elements.
func (s *ArraySchema[E]) Max(n int) *ArraySchema[E] {
	s.max = &n
	return s
}

// Length requires exactly n elements.
func (s *ArraySchema[E]) Length(n int) *ArraySchema[E] {
	return s.Min(n).Max(n)
}

// NonEmpty is shorthand for Min(1).
func (s *ArraySchema[E]) NonEmpty() *ArraySchema[E] { return s.Min(1) }

// MinMessage overrides the too_small message.
func (s *ArraySchema[E]) MinMessage(msg string) *ArraySchema[E] {
	s.minMsg = msg
	return s
}

// MaxMessage overrides the too_big message.
func (s *ArraySchema[E]) MaxMessage(msg string) *ArraySchema[E] {
	s.maxMsg = msg
	return s
}

// Parse implements veld.Schema[[]E].
func (s *ArraySchema[E]) Parse(ctx context.Context, v any) ([]E, error) {
	arr, ok := v.([]any)
	if !ok {
		return nil, invalidType("array", v)
	}
	var issues veld.Issues
	if s.min != nil && len(arr) < *s.min {
		is := sizeIssue(veld.CodeTooSmall, "array", map[string]any{"min": *s.min})
		if s.minMsg != "" {
			is.Message = s.minMsg
		}
		issues = append(issues, is)
	}
	if s.max != nil && len(arr) > *s.max {
		is := sizeIssue(veld.CodeTooBig, "array", map[string]any{"max": *s.max})
		if s.maxMsg != "" {
			is.Message = s.maxMsg
		}
		issues = append(issues, is)
	}
	if veld.IsFailFast(ctx) && len(issues) > 0 {
		return nil, issues
	}
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
		out = append(out, ev)
	}
	if len(issues) > 0 {
		return nil, issues
	}
	return out, nil
}

func (s *ArraySchema[E]) ParseAny(ctx context.Context, v any) (any, error) {
	return parseAsAny[[]E](ctx, s, v)
}

// JSONSchema implements veld.Schema[[]E].
func (s *ArraySchema[E]) JSONSchema() (*js.Schema, error) {
	items, err := s.elem.JSONSchema()
	if err != nil {
		return nil, err
	}
	out := &js.Schema{Type: "array", Items: items}
	if s.min != nil {
		out.MinItems = js.IntPtr(*s.min)
	}
	if s.max != nil {
		out.MaxItems = js.IntPtr(*s.max)
	}
	return out, nil
}
