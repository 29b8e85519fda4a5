package dsl

import (
	"context"

	"github.com/mitchellh/mapstructure"

	veld "github.com/veldkit/veld"
	js "github.com/veldkit/veld/jsonschema"
)

// BoundSchema validates with an object schema and decodes the result
// into a struct T. Field resolution follows `json` struct tags.
type BoundSchema[T any] struct {
	inner *ObjectSchema
}

// Bind builds the object schema and binds its output to struct type T.
func Bind[T any](b *ObjectBuilder) (*BoundSchema[T], error) {
	s, err := b.Build()
	if err != nil {
		return nil, err
	}
	return &BoundSchema[T]{inner: s}, nil
}

// MustBind is Bind panicking on error.
func MustBind[T any](b *ObjectBuilder) *BoundSchema[T] {
	s, err := Bind[T](b)
	if err != nil {
		panic(err)
	}
	return s
}

// Parse implements veld.Schema[T].
func (s *BoundSchema[T]) Parse(ctx context.Context, v any) (T, error) {
	var out T
	m, err := s.inner.Parse(ctx, v)
	if err != nil {
		return out, err
	}
	dec, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		TagName:          "json",
		Result:           &out,
		WeaklyTypedInput: false,
		Squash:           true,
	})
	if err != nil {
		return out, veld.Issues{{Code: veld.CodeParseError, Message: err.Error()}}
	}
	if err := dec.Decode(m); err != nil {
		return out, veld.Issues{{Code: veld.CodeParseError, Message: err.Error()}}
	}
	return out, nil
}

func (s *BoundSchema[T]) ParseAny(ctx context.Context, v any) (any, error) {
	return parseAsAny[T](ctx, s, v)
}

// JSONSchema implements veld.Schema[T].
func (s *BoundSchema[T]) JSONSchema() (*js.Schema, error) {
	return s.inner.JSONSchema()
}
