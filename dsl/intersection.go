package dsl

import (
	"context"

	veld "github.com/veldkit/veld"
	js "github.com/veldkit/veld/jsonschema"
)

// IntersectionSchema requires the input to satisfy two schemas at once.
// Issues from both sides accumulate; the output is the first schema's.
type IntersectionSchema[A, B any] struct {
	a veld.Schema[A]
	b veld.Schema[B]
}

// Intersection builds an intersection of two schemas.
func Intersection[A, B any](a veld.Schema[A], b veld.Schema[B]) *IntersectionSchema[A, B] {
	return &IntersectionSchema[A, B]{a: a, b: b}
}

// Parse implements veld.Schema[A].
func (s *IntersectionSchema[A, B]) Parse(ctx context.Context, v any) (A, error) {
	out, errA := s.a.Parse(ctx, v)
	if errA != nil && veld.IsFailFast(ctx) {
		var zero A
		return zero, veld.AsIssues(errA)
	}
	_, errB := s.b.Parse(ctx, v)
	issues := veld.AppendIssues(nil, errA)
	issues = veld.AppendIssues(issues, errB)
	if len(issues) > 0 {
		var zero A
		return zero, issues
	}
	return out, nil
}

func (s *IntersectionSchema[A, B]) ParseAny(ctx context.Context, v any) (any, error) {
	return parseAsAny[A](ctx, s, v)
}

// JSONSchema implements veld.Schema[A].
func (s *IntersectionSchema[A, B]) JSONSchema() (*js.Schema, error) {
	pa, err := s.a.JSONSchema()
	if err != nil {
		return nil, err
	}
	pb, err := s.b.JSONSchema()
	if err != nil {
		return nil, err
	}
	return &js.Schema{AllOf: []*js.Schema{pa, pb}}, nil
}
