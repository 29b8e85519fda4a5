package veld

import (
	"bytes"
	"context"
	"fmt"

	"github.com/goccy/go-json"
	"gopkg.in/yaml.v3"
)

// ParseJSON decodes raw JSON bytes and validates the result against s.
// Numbers are decoded as json.Number so integer precision survives up to
// the schema's own checks. Decode failures surface as a parse_error issue.
func ParseJSON[T any](ctx context.Context, s Schema[T], data []byte) (T, error) {
	var zero T
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()
	var v any
	if err := dec.Decode(&v); err != nil {
		return zero, Issues{{Code: CodeParseError, Message: fmt.Sprintf("invalid JSON: %v", err)}}
	}
	// Trailing garbage after the first document is a decode error too.
	var rest any
	if err := dec.Decode(&rest); err == nil {
		return zero, Issues{{Code: CodeParseError, Message: "invalid JSON: trailing data after value"}}
	}
	return s.Parse(ctx, v)
}

// ParseYAML decodes raw YAML bytes, normalizes the result to the same
// neutral shape JSON decoding produces, and validates it against s.
func ParseYAML[T any](ctx context.Context, s Schema[T], data []byte) (T, error) {
	var zero T
	var v any
	if err := yaml.Unmarshal(data, &v); err != nil {
		return zero, Issues{{Code: CodeParseError, Message: fmt.Sprintf("invalid YAML: %v", err)}}
	}
	nv, err := normalizeYAML(v)
	if err != nil {
		return zero, Issues{{Code: CodeParseError, Message: err.Error()}}
	}
	return s.Parse(ctx, nv)
}

// normalizeYAML rewrites yaml.v3 output into JSON-decoded shape:
// map keys become strings, nested containers are walked recursively.
func normalizeYAML(v any) (any, error) {
	switch x := v.(type) {
	case map[string]any:
		out := make(map[string]any, len(x))
		for k, e := range x {
			ne, err := normalizeYAML(e)
			if err != nil {
				return nil, err
			}
			out[k] = ne
		}
		return out, nil
	case map[any]any:
		out := make(map[string]any, len(x))
		for k, e := range x {
			ks, ok := k.(string)
			if !ok {
				return nil, fmt.Errorf("non-string mapping key %v", k)
			}
			ne, err := normalizeYAML(e)
			if err != nil {
				return nil, err
			}
			out[ks] = ne
		}
		return out, nil
	case []any:
		out := make([]any, len(x))
		for i, e := range x {
			ne, err := normalizeYAML(e)
			if err != nil {
				return nil, err
			}
			out[i] = ne
		}
		return out, nil
	default:
		return v, nil
	}
}
