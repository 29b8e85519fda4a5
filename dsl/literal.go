package dsl

import (
	"context"

	veld "github.com/veldkit/veld"
	"github.com/veldkit/veld/i18n"
	js "github.com/veldkit/veld/jsonschema"
)

// LiteralSchema accepts exactly one JSON value.
type LiteralSchema struct {
	expected any
}

// Literal builds a schema matching a single value. Numbers compare
// numerically, so Literal(5) accepts 5, 5.0 and json.Number("5").
func Literal(v any) *LiteralSchema { return &LiteralSchema{expected: v} }

// Parse implements veld.Schema[any]. On success the canonical literal
// value is returned, not the raw input.
func (s *LiteralSchema) Parse(ctx context.Context, v any) (any, error) {
	if valueEqual(s.expected, v) {
		return s.expected, nil
	}
	exp := veld.RenderShort(s.expected)
	return nil, veld.Issues{{
		Code:    veld.CodeInvalidLiteral,
		Message: i18n.T(veld.CodeInvalidLiteral, map[string]any{"expected": exp}),
		Params:  map[string]any{"expected": s.expected},
	}}
}

func (s *LiteralSchema) ParseAny(ctx context.Context, v any) (any, error) {
	return s.Parse(ctx, v)
}

// JSONSchema implements veld.Schema[any].
func (s *LiteralSchema) JSONSchema() (*js.Schema, error) {
	return &js.Schema{Const: s.expected}, nil
}

// EnumSchema accepts one of a fixed set of strings.
type EnumSchema struct {
	options []string
}

// Enum builds a string enum schema.
func Enum(options ...string) *EnumSchema {
	return &EnumSchema{options: append([]string(nil), options...)}
}

// Options returns the accepted values in declaration order.
func (s *EnumSchema) Options() []string {
	return append([]string(nil), s.options...)
}

// Parse implements veld.Schema[string].
func (s *EnumSchema) Parse(ctx context.Context, v any) (string, error) {
	str, ok := v.(string)
	if !ok {
		return "", invalidType("string", v)
	}
	for _, o := range s.options {
		if str == o {
			return str, nil
		}
	}
	return "", veld.Issues{{
		Code:    veld.CodeInvalidEnumValue,
		Message: i18n.T(veld.CodeInvalidEnumValue, map[string]any{"options": veld.JoinQuoted(s.options)}),
		Params:  map[string]any{"options": s.Options(), "received": str},
	}}
}

func (s *EnumSchema) ParseAny(ctx context.Context, v any) (any, error) {
	return parseAsAny[string](ctx, s, v)
}

// JSONSchema implements veld.Schema[string].
func (s *EnumSchema) JSONSchema() (*js.Schema, error) {
	vals := make([]any, len(s.options))
	for i, o := range s.options {
		vals[i] = o
	}
	return &js.Schema{Type: "string", Enum: vals}, nil
}

// valueEqual compares decoded values structurally, with numeric
// normalization across float64, json.Number and integer kinds.
func valueEqual(a, b any) bool {
	if fa, ok := veld.NumberValue(a); ok {
		fb, ok2 := veld.NumberValue(b)
		return ok2 && fa == fb
	}
	switch x := a.(type) {
	case nil:
		return b == nil
	case string:
		y, ok := b.(string)
		return ok && x == y
	case bool:
		y, ok := b.(bool)
		return ok && x == y
	case []any:
		y, ok := b.([]any)
		if !ok || len(x) != len(y) {
			return false
		}
		for i := range x {
			if !valueEqual(x[i], y[i]) {
				return false
			}
		}
		return true
	case map[string]any:
		y, ok := b.(map[string]any)
		if !ok || len(x) != len(y) {
			return false
		}
		for k, xv := range x {
			yv, present := y[k]
			if !present || !valueEqual(xv, yv) {
				return false
			}
		}
		return true
	default:
		return a == b
	}
}
