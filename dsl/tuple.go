package dsl

import (
	"context"

	veld "github.com/veldkit/veld"
	"github.com/veldkit/veld/i18n"
	js "github.com/veldkit/veld/jsonschema"
)

// TupleSchema validates fixed-length arrays with a schema per slot, plus
// an optional rest schema for trailing elements.
type TupleSchema struct {
	slots []veld.AnySchema
	rest  veld.AnySchema
}

// Tuple builds a tuple schema from one schema per position.
func Tuple(slots ...veld.AnySchema) *TupleSchema {
	return &TupleSchema{slots: append([]veld.AnySchema(nil), slots...)}
}

// Rest allows trailing elements beyond the fixed slots, each validated by
// the given schema.
func (s *TupleSchema) Rest(rest veld.AnySchema) *TupleSchema {
	s.rest = rest
	return s
}

// Parse implements veld.Schema[[]any].
func (s *TupleSchema) Parse(ctx context.Context, v any) ([]any, error) {
	arr, ok := v.([]any)
	if !ok {
		return nil, invalidType("array", v)
	}
	if len(arr) != len(s.slots) && (s.rest == nil || len(arr) < len(s.slots)) {
		params := map[string]any{"expected": len(s.slots), "received": len(arr)}
		return nil, veld.Issues{{
			Code:    veld.CodeInvalidTupleLength,
			Message: i18n.T(veld.CodeInvalidTupleLength, params),
			Params:  params,
		}}
	}
	out := make([]any, 0, len(arr))
	var issues veld.Issues
	for i, e := range arr {
		var schema veld.AnySchema
		if i < len(s.slots) {
			schema = s.slots[i]
		} else {
			schema = s.rest
		}
		ev, err := schema.ParseAny(ctx, e)
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

func (s *TupleSchema) ParseAny(ctx context.Context, v any) (any, error) {
	return parseAsAny[[]any](ctx, s, v)
}

// JSONSchema implements veld.Schema[[]any].
func (s *TupleSchema) JSONSchema() (*js.Schema, error) {
	prefix := make([]*js.Schema, len(s.slots))
	for i, slot := range s.slots {
		p, err := slot.JSONSchema()
		if err != nil {
			return nil, err
		}
		prefix[i] = p
	}
	out := &js.Schema{Type: "array", PrefixItems: prefix, MinItems: js.IntPtr(len(s.slots))}
	if s.rest != nil {
		items, err := s.rest.JSONSchema()
		if err != nil {
			return nil, err
		}
		out.Items = items
	} else {
		out.MaxItems = js.IntPtr(len(s.slots))
	}
	return out, nil
}
