package veld

import (
	"context"

	js "github.com/veldkit/veld/jsonschema"
)

// Schema validates and converts a neutral input value (the shape produced
// by decoding JSON or YAML: map[string]any, []any, string, bool, numeric
// types, nil) into a typed output T.
type Schema[T any] interface {
	// Parse validates v and returns the converted output. On failure the
	// returned error is always an Issues value.
	Parse(ctx context.Context, v any) (T, error)
	// JSONSchema projects the schema onto a JSON Schema document.
	JSONSchema() (*js.Schema, error)
}

// AnySchema is the untyped form of Schema used where schemas of different
// output types must live side by side (object fields, tuple slots,
// heterogeneous unions). Every schema built by the dsl package implements
// both Schema[T] and AnySchema.
type AnySchema interface {
	ParseAny(ctx context.Context, v any) (any, error)
	JSONSchema() (*js.Schema, error)
}

// AnyOf adapts a typed schema into an AnySchema. The dsl builders already
// implement AnySchema; this is for user-written Schema[T] implementations.
func AnyOf[T any](s Schema[T]) AnySchema {
	if as, ok := s.(AnySchema); ok {
		return as
	}
	return anyAdapter[T]{s: s}
}

type anyAdapter[T any] struct{ s Schema[T] }

func (a anyAdapter[T]) ParseAny(ctx context.Context, v any) (any, error) {
	out, err := a.s.Parse(ctx, v)
	if err != nil {
		return nil, err
	}
	return out, nil
}

func (a anyAdapter[T]) JSONSchema() (*js.Schema, error) { return a.s.JSONSchema() }

// Parse is a small generic helper mirroring s.Parse; it reads better at
// call sites that mix several schema types.
func Parse[T any](ctx context.Context, s Schema[T], v any) (T, error) {
	return s.Parse(ctx, v)
}

// MustParse panics if parsing fails. Intended for static inputs known to
// be valid, such as fixtures and package-level defaults.
func MustParse[T any](ctx context.Context, s Schema[T], v any) T {
	out, err := s.Parse(ctx, v)
	if err != nil {
		panic(err)
	}
	return out
}

// Is reports whether v satisfies the schema, discarding output and issues.
func Is[T any](ctx context.Context, s Schema[T], v any) bool {
	_, err := s.Parse(ctx, v)
	return err == nil
}

type ctxKey int

const ctxKeyFailFast ctxKey = iota

// WithFailFast returns a context under which structural schemas stop at
// the first issue instead of accumulating all of them.
func WithFailFast(ctx context.Context) context.Context {
	return context.WithValue(ctx, ctxKeyFailFast, true)
}

// IsFailFast reports whether fail-fast mode is set on ctx.
func IsFailFast(ctx context.Context) bool {
	b, _ := ctx.Value(ctxKeyFailFast).(bool)
	return b
}
