package dsl

import (
	"context"
	"sort"

	veld "github.com/veldkit/veld"
	js "github.com/veldkit/veld/jsonschema"
)

// RecordSchema validates a JSON object whose keys are free-form and whose
// values all share one schema.
type RecordSchema[V any] struct {
	value            veld.Schema[V]
	key              *StringSchema
	minKeys, maxKeys *int
}

// Record builds a record schema over a value schema.
func Record[V any](value veld.Schema[V]) *RecordSchema[V] {
	return &RecordSchema[V]{value: value}
}

// KeySchema constrains keys with a string schema; key issues are reported
// at the offending key's path.
func (s *RecordSchema[V]) KeySchema(key *StringSchema) *RecordSchema[V] {
	s.key = key
	return s
}

// MinKeys requires at least n keys.
func (s *RecordSchema[V]) MinKeys(n int) *RecordSchema[V] {
	s.minKeys = &n
	return s
}

// MaxKeys allows at most n keys.
func (s *RecordSchema[V]) MaxKeys(n int) *RecordSchema[V] {
	s.maxKeys = &n
	return s
}

// Parse implements veld.Schema[map[string]V]. Keys are visited in sorted
// order so issue order is deterministic.
func (s *RecordSchema[V]) Parse(ctx context.Context, v any) (map[string]V, error) {
	obj, ok := v.(map[string]any)
	if !ok {
		return nil, invalidType("object", v)
	}
	var issues veld.Issues
	if s.minKeys != nil && len(obj) < *s.minKeys {
		issues = append(issues, sizeIssue(veld.CodeTooSmall, "record", map[string]any{"min": *s.minKeys}))
	}
	if s.maxKeys != nil && len(obj) > *s.maxKeys {
		issues = append(issues, sizeIssue(veld.CodeTooBig, "record", map[string]any{"max": *s.maxKeys}))
	}
	if veld.IsFailFast(ctx) && len(issues) > 0 {
		return nil, issues
	}
	keys := make([]string, 0, len(obj))
	for k := range obj {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	out := make(map[string]V, len(obj))
	for _, k := range keys {
		if s.key != nil {
			if _, err := s.key.Parse(ctx, k); err != nil {
				issues = append(issues, veld.PrefixField(err, k)...)
				if veld.IsFailFast(ctx) {
					return nil, issues
				}
				continue
			}
		}
		vv, err := s.value.Parse(ctx, obj[k])
		if err != nil {
			issues = append(issues, veld.PrefixField(err, k)...)
			if veld.IsFailFast(ctx) {
				return nil, issues
			}
			continue
		}
		out[k] = vv
	}
	if len(issues) > 0 {
		return nil, issues
	}
	return out, nil
}

func (s *RecordSchema[V]) ParseAny(ctx context.Context, v any) (any, error) {
	return parseAsAny[map[string]V](ctx, s, v)
}

// JSONSchema implements veld.Schema[map[string]V].
func (s *RecordSchema[V]) JSONSchema() (*js.Schema, error) {
	val, err := s.value.JSONSchema()
	if err != nil {
		return nil, err
	}
	out := &js.Schema{Type: "object", AdditionalProperties: val}
	if s.minKeys != nil {
		out.MinProperties = js.IntPtr(*s.minKeys)
	}
	if s.maxKeys != nil {
		out.MaxProperties = js.IntPtr(*s.maxKeys)
	}
	if s.key != nil {
		kp, err := s.key.JSONSchema()
		if err != nil {
			return nil, err
		}
		out.PropertyNames = kp
	}
	return out, nil
}
