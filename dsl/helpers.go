package dsl

import (
	"context"
	"reflect"

	veld "github.com/veldkit/veld"
	"github.com/veldkit/veld/i18n"
)

// parseAsAny boxes a typed parse result for AnySchema call sites. A nil
// pointer result (an absent Optional reached through a typed wrapper)
// unboxes to untyped nil so object parsing can drop the key instead of
// storing a typed nil.
func parseAsAny[T any](ctx context.Context, s veld.Schema[T], v any) (any, error) {
	out, err := s.Parse(ctx, v)
	if err != nil {
		return nil, err
	}
	if rv := reflect.ValueOf(out); rv.Kind() == reflect.Pointer && rv.IsNil() {
		return nil, nil
	}
	return out, nil
}

// invalidType builds the standard type-mismatch issue.
func invalidType(expected string, v any) veld.Issues {
	received := veld.TypeName(v)
	return veld.Issues{{
		Code:    veld.CodeInvalidType,
		Message: i18n.T(veld.CodeInvalidType, map[string]any{"expected": expected, "received": received}),
		Params:  map[string]any{"expected": expected, "received": received},
	}}
}

// sizeIssue builds a too_small/too_big issue; kind selects the message
// variant ("string", "number", "array", "set", "map", "date", ...).
func sizeIssue(code, kind string, params map[string]any) veld.Issue {
	return veld.Issue{
		Code:    code,
		Message: i18n.T(code+"."+kind, params),
		Params:  params,
	}
}

// missingTolerant marks schemas that turn an absent value into a result
// instead of an error (Optional, Default, Nullish, Catch). Object building
// uses it to decide which fields are required.
type missingTolerant interface {
	toleratesMissing() bool
}

func acceptsMissing(s any) bool {
	mt, ok := s.(missingTolerant)
	return ok && mt.toleratesMissing()
}
