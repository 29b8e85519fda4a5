package dsl

import (
	"context"

	veld "github.com/veldkit/veld"
	js "github.com/veldkit/veld/jsonschema"
)

// TransformSchema maps the inner schema's output through a conversion
// function.
type TransformSchema[T, U any] struct {
	inner veld.Schema[T]
	fn    func(ctx context.Context, v T) (U, error)
}

// Transform derives a schema whose output is fn applied to the inner
// output. A failing fn surfaces as a custom issue unless it already
// returns Issues.
func Transform[T, U any](inner veld.Schema[T], fn func(ctx context.Context, v T) (U, error)) *TransformSchema[T, U] {
	return &TransformSchema[T, U]{inner: inner, fn: fn}
}

// Parse implements veld.Schema[U].
func (s *TransformSchema[T, U]) Parse(ctx context.Context, v any) (U, error) {
	var zero U
	in, err := s.inner.Parse(ctx, v)
	if err != nil {
		return zero, err
	}
	out, err := s.fn(ctx, in)
	if err != nil {
		return zero, asCustomIssues(err)
	}
	return out, nil
}

func (s *TransformSchema[T, U]) ParseAny(ctx context.Context, v any) (any, error) {
	return parseAsAny[U](ctx, s, v)
}

// JSONSchema projects the input side; the conversion has no schema.
func (s *TransformSchema[T, U]) JSONSchema() (*js.Schema, error) {
	return s.inner.JSONSchema()
}

func (s *TransformSchema[T, U]) toleratesMissing() bool { return acceptsMissing(s.inner) }

// PipeSchema feeds one schema's output into another.
type PipeSchema[T, U any] struct {
	first  veld.Schema[T]
	second veld.Schema[U]
}

// Pipe chains two schemas: the first validates the raw input, the second
// validates the first's output. A failing first stage short-circuits.
func Pipe[T, U any](first veld.Schema[T], second veld.Schema[U]) *PipeSchema[T, U] {
	return &PipeSchema[T, U]{first: first, second: second}
}

// Parse implements veld.Schema[U].
func (s *PipeSchema[T, U]) Parse(ctx context.Context, v any) (U, error) {
	var zero U
	mid, err := s.first.Parse(ctx, v)
	if err != nil {
		return zero, err
	}
	return s.second.Parse(ctx, mid)
}

func (s *PipeSchema[T, U]) ParseAny(ctx context.Context, v any) (any, error) {
	return parseAsAny[U](ctx, s, v)
}

// JSONSchema projects the input side of the pipe.
func (s *PipeSchema[T, U]) JSONSchema() (*js.Schema, error) {
	return s.first.JSONSchema()
}

func (s *PipeSchema[T, U]) toleratesMissing() bool { return acceptsMissing(s.first) }

// PreprocessSchema rewrites the raw input before the inner schema runs.
type PreprocessSchema[T any] struct {
	fn    func(v any) any
	inner veld.Schema[T]
}

// Preprocess applies fn to the raw input, then validates with inner.
func Preprocess[T any](fn func(v any) any, inner veld.Schema[T]) *PreprocessSchema[T] {
	return &PreprocessSchema[T]{fn: fn, inner: inner}
}

// Parse implements veld.Schema[T].
func (s *PreprocessSchema[T]) Parse(ctx context.Context, v any) (T, error) {
	return s.inner.Parse(ctx, s.fn(v))
}

func (s *PreprocessSchema[T]) ParseAny(ctx context.Context, v any) (any, error) {
	return parseAsAny[T](ctx, s, v)
}

// JSONSchema implements veld.Schema[T].
func (s *PreprocessSchema[T]) JSONSchema() (*js.Schema, error) {
	return s.inner.JSONSchema()
}

// DescribeSchema annotates a schema for projection.
type DescribeSchema[T any] struct {
	inner veld.Schema[T]
	text  string
}

// Describe attaches a description carried into the JSON Schema output.
func Describe[T any](inner veld.Schema[T], text string) *DescribeSchema[T] {
	return &DescribeSchema[T]{inner: inner, text: text}
}

// Parse implements veld.Schema[T].
func (s *DescribeSchema[T]) Parse(ctx context.Context, v any) (T, error) {
	return s.inner.Parse(ctx, v)
}

// ParseAny delegates to the inner schema's untyped parse so the wrapper
// stays transparent, in particular for an Optional inner whose ParseAny
// unwraps present values and omits absent ones.
func (s *DescribeSchema[T]) ParseAny(ctx context.Context, v any) (any, error) {
	if as, ok := s.inner.(veld.AnySchema); ok {
		return as.ParseAny(ctx, v)
	}
	return parseAsAny[T](ctx, s.inner, v)
}

// JSONSchema implements veld.Schema[T].
func (s *DescribeSchema[T]) JSONSchema() (*js.Schema, error) {
	out, err := s.inner.JSONSchema()
	if err != nil {
		return nil, err
	}
	out = out.Clone()
	out.Description = s.text
	return out, nil
}

func (s *DescribeSchema[T]) toleratesMissing() bool { return acceptsMissing(s.inner) }

// MessageSchema overrides messages for issues produced directly by the
// inner schema, keyed by issue code.
type MessageSchema[T any] struct {
	inner     veld.Schema[T]
	overrides map[string]string
}

// WithMessage overrides the message for a given issue code.
func WithMessage[T any](inner veld.Schema[T], code, msg string) *MessageSchema[T] {
	if ms, ok := inner.(*MessageSchema[T]); ok {
		ms.overrides[code] = msg
		return ms
	}
	return &MessageSchema[T]{inner: inner, overrides: map[string]string{code: msg}}
}

// Parse implements veld.Schema[T].
func (s *MessageSchema[T]) Parse(ctx context.Context, v any) (T, error) {
	out, err := s.inner.Parse(ctx, v)
	if err == nil {
		return out, nil
	}
	is := veld.AsIssues(err)
	for i := range is {
		// Only rewrite issues at the schema's own path; nested issues
		// keep the messages of the schemas that produced them.
		if len(is[i].Path) == 0 {
			if msg, ok := s.overrides[is[i].Code]; ok {
				is[i].Message = msg
			}
		}
	}
	return out, is
}

func (s *MessageSchema[T]) ParseAny(ctx context.Context, v any) (any, error) {
	return parseAsAny[T](ctx, s, v)
}

// JSONSchema implements veld.Schema[T].
func (s *MessageSchema[T]) JSONSchema() (*js.Schema, error) {
	return s.inner.JSONSchema()
}

func (s *MessageSchema[T]) toleratesMissing() bool { return acceptsMissing(s.inner) }

func asCustomIssues(err error) veld.Issues {
	var is veld.Issues
	if ok := errorsAs(err, &is); ok {
		return is
	}
	return veld.Issues{{Code: veld.CodeCustom, Message: err.Error()}}
}

func errorsAs(err error, target *veld.Issues) bool {
	is := veld.AsIssues(err)
	if len(is) == 1 && is[0].Code == veld.CodeParseError {
		return false
	}
	*target = is
	return true
}

// CustomSchema wraps an arbitrary conversion function as a schema.
type CustomSchema[T any] struct {
	name string
	fn   func(ctx context.Context, v any) (T, error)
	desc string
}

// Custom builds a schema from a named conversion function. Failures
// surface as custom issues carrying the name in params.
func Custom[T any](name string, fn func(ctx context.Context, v any) (T, error)) *CustomSchema[T] {
	return &CustomSchema[T]{name: name, fn: fn}
}

// Describe sets the projected description.
func (s *CustomSchema[T]) Describe(text string) *CustomSchema[T] {
	s.desc = text
	return s
}

// Parse implements veld.Schema[T].
func (s *CustomSchema[T]) Parse(ctx context.Context, v any) (T, error) {
	out, err := s.fn(ctx, v)
	if err != nil {
		var zero T
		var is veld.Issues
		if errorsAs(err, &is) {
			return zero, is
		}
		return zero, veld.Issues{{
			Code:    veld.CodeCustom,
			Message: err.Error(),
			Params:  map[string]any{"check": s.name, "received": veld.RenderShort(v)},
		}}
	}
	return out, nil
}

func (s *CustomSchema[T]) ParseAny(ctx context.Context, v any) (any, error) {
	return parseAsAny[T](ctx, s, v)
}

// JSONSchema implements veld.Schema[T]. Custom logic has no structural
// projection; the description (or the check name) marks the schema as
// opaque rather than accept-anything.
func (s *CustomSchema[T]) JSONSchema() (*js.Schema, error) {
	if s.desc == "" {
		return &js.Schema{Description: "custom check: " + s.name}, nil
	}
	return &js.Schema{Description: s.desc}, nil
}

// LazySchema defers schema construction until parse time, enabling
// recursive definitions.
type LazySchema[T any] struct {
	factory func() veld.Schema[T]
}

// Lazy builds a schema from a factory invoked fresh on every parse.
func Lazy[T any](factory func() veld.Schema[T]) *LazySchema[T] {
	return &LazySchema[T]{factory: factory}
}

// Parse implements veld.Schema[T].
func (s *LazySchema[T]) Parse(ctx context.Context, v any) (T, error) {
	return s.factory().Parse(ctx, v)
}

func (s *LazySchema[T]) ParseAny(ctx context.Context, v any) (any, error) {
	return parseAsAny[T](ctx, s, v)
}

// JSONSchema implements veld.Schema[T]. Recursive schemas would loop, so
// the projection carries only a marker description.
func (s *LazySchema[T]) JSONSchema() (*js.Schema, error) {
	return &js.Schema{Description: "deferred schema"}, nil
}
