package dsl

import (
	"context"

	veld "github.com/veldkit/veld"
	js "github.com/veldkit/veld/jsonschema"
)

// OptionalSchema tolerates absent and null inputs, yielding a nil pointer.
type OptionalSchema[T any] struct {
	inner veld.Schema[T]
}

// Optional wraps a schema so that null (and a missing object key) parses
// to nil instead of failing.
func Optional[T any](inner veld.Schema[T]) *OptionalSchema[T] {
	return &OptionalSchema[T]{inner: inner}
}

// Parse implements veld.Schema[*T].
func (s *OptionalSchema[T]) Parse(ctx context.Context, v any) (*T, error) {
	if v == nil {
		return nil, nil
	}
	out, err := s.inner.Parse(ctx, v)
	if err != nil {
		return nil, err
	}
	return &out, nil
}

// ParseAny returns the unwrapped inner value, or untyped nil for absent
// input, so object outputs never hold typed nil pointers.
func (s *OptionalSchema[T]) ParseAny(ctx context.Context, v any) (any, error) {
	if v == nil {
		return nil, nil
	}
	return parseAsAny[T](ctx, s.inner, v)
}

// JSONSchema implements veld.Schema[*T].
func (s *OptionalSchema[T]) JSONSchema() (*js.Schema, error) {
	return nullableProjection(s.inner)
}

func (s *OptionalSchema[T]) toleratesMissing() bool { return true }

func (s *OptionalSchema[T]) unwrapOptional() veld.AnySchema { return veld.AnyOf(s.inner) }

// NullableSchema accepts explicit null but, unlike Optional, keeps a
// missing object key an error.
type NullableSchema[T any] struct {
	inner veld.Schema[T]
}

// Nullable wraps a schema so explicit null parses to nil.
func Nullable[T any](inner veld.Schema[T]) *NullableSchema[T] {
	return &NullableSchema[T]{inner: inner}
}

// Parse implements veld.Schema[*T].
func (s *NullableSchema[T]) Parse(ctx context.Context, v any) (*T, error) {
	if v == nil {
		return nil, nil
	}
	out, err := s.inner.Parse(ctx, v)
	if err != nil {
		return nil, err
	}
	return &out, nil
}

func (s *NullableSchema[T]) ParseAny(ctx context.Context, v any) (any, error) {
	if v == nil {
		return nil, nil
	}
	return parseAsAny[T](ctx, s.inner, v)
}

// JSONSchema implements veld.Schema[*T].
func (s *NullableSchema[T]) JSONSchema() (*js.Schema, error) {
	return nullableProjection(s.inner)
}

// Nullish combines Optional and Nullable: both a missing key and an
// explicit null parse to nil.
func Nullish[T any](inner veld.Schema[T]) *OptionalSchema[T] {
	return Optional(inner)
}

// DefaultSchema substitutes a fixed value for absent or null input.
type DefaultSchema[T any] struct {
	inner veld.Schema[T]
	def   func() T
}

// Default wraps a schema with a default for absent/null input. The
// default is returned as-is; inner checks do not run against it.
func Default[T any](inner veld.Schema[T], def T) *DefaultSchema[T] {
	return &DefaultSchema[T]{inner: inner, def: func() T { return def }}
}

// DefaultFunc is Default with a lazily computed value, for mutable
// defaults such as fresh slices or timestamps.
func DefaultFunc[T any](inner veld.Schema[T], def func() T) *DefaultSchema[T] {
	return &DefaultSchema[T]{inner: inner, def: def}
}

// Parse implements veld.Schema[T].
func (s *DefaultSchema[T]) Parse(ctx context.Context, v any) (T, error) {
	if v == nil {
		return s.def(), nil
	}
	return s.inner.Parse(ctx, v)
}

func (s *DefaultSchema[T]) ParseAny(ctx context.Context, v any) (any, error) {
	return parseAsAny[T](ctx, s, v)
}

// JSONSchema implements veld.Schema[T].
func (s *DefaultSchema[T]) JSONSchema() (*js.Schema, error) {
	out, err := s.inner.JSONSchema()
	if err != nil {
		return nil, err
	}
	out = out.Clone()
	out.Default = s.def()
	return out, nil
}

func (s *DefaultSchema[T]) toleratesMissing() bool { return true }

// CatchSchema replaces any inner failure with a fallback value.
type CatchSchema[T any] struct {
	inner    veld.Schema[T]
	fallback T
}

// Catch wraps a schema so every parse failure yields fallback instead of
// an error.
func Catch[T any](inner veld.Schema[T], fallback T) *CatchSchema[T] {
	return &CatchSchema[T]{inner: inner, fallback: fallback}
}

// Parse implements veld.Schema[T].
func (s *CatchSchema[T]) Parse(ctx context.Context, v any) (T, error) {
	out, err := s.inner.Parse(ctx, v)
	if err != nil {
		return s.fallback, nil
	}
	return out, nil
}

func (s *CatchSchema[T]) ParseAny(ctx context.Context, v any) (any, error) {
	return parseAsAny[T](ctx, s, v)
}

// JSONSchema implements veld.Schema[T].
func (s *CatchSchema[T]) JSONSchema() (*js.Schema, error) {
	out, err := s.inner.JSONSchema()
	if err != nil {
		return nil, err
	}
	out = out.Clone()
	out.Default = s.fallback
	return out, nil
}

func (s *CatchSchema[T]) toleratesMissing() bool { return true }

func nullableProjection[T any](inner veld.Schema[T]) (*js.Schema, error) {
	in, err := inner.JSONSchema()
	if err != nil {
		return nil, err
	}
	return &js.Schema{OneOf: []*js.Schema{in, {Type: "null"}}}, nil
}
