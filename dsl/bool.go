package dsl

import (
	"context"

	veld "github.com/veldkit/veld"
	js "github.com/veldkit/veld/jsonschema"
)

// BoolSchema validates boolean inputs.
type BoolSchema struct {
	coerce bool
}

// Bool starts a boolean schema.
func Bool() *BoolSchema { return &BoolSchema{} }

// Coerce accepts "true"/"false" strings and 0/1 numbers.
func (s *BoolSchema) Coerce() *BoolSchema {
	s.coerce = true
	return s
}

// Parse implements veld.Schema[bool].
func (s *BoolSchema) Parse(ctx context.Context, v any) (bool, error) {
	if b, ok := v.(bool); ok {
		return b, nil
	}
	if s.coerce {
		switch x := v.(type) {
		case string:
			if x == "true" {
				return true, nil
			}
			if x == "false" {
				return false, nil
			}
		default:
			if f, ok := veld.NumberValue(v); ok {
				if f == 1 {
					return true, nil
				}
				if f == 0 {
					return false, nil
				}
			}
		}
	}
	return false, invalidType("boolean", v)
}

func (s *BoolSchema) ParseAny(ctx context.Context, v any) (any, error) {
	return parseAsAny[bool](ctx, s, v)
}

// JSONSchema implements veld.Schema[bool].
func (s *BoolSchema) JSONSchema() (*js.Schema, error) {
	return &js.Schema{Type: "boolean"}, nil
}
