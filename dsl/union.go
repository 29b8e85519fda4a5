package dsl

import (
	"context"
	"sort"

	veld "github.com/veldkit/veld"
	"github.com/veldkit/veld/i18n"
	js "github.com/veldkit/veld/jsonschema"
)

// Either holds the output of a two-way union; exactly one side is set.
type Either[A, B any] struct {
	A *A
	B *B
}

// Either3 holds the output of a three-way union; exactly one side is set.
type Either3[A, B, C any] struct {
	A *A
	B *B
	C *C
}

// UnionSchema tries each branch in order and yields the first success.
type UnionSchema[A, B any] struct {
	a veld.Schema[A]
	b veld.Schema[B]
}

// Union builds a two-way union. Branch issues are not reported; both
// branches failing produces a single invalid_union issue.
func Union[A, B any](a veld.Schema[A], b veld.Schema[B]) *UnionSchema[A, B] {
	return &UnionSchema[A, B]{a: a, b: b}
}

// Parse implements veld.Schema[Either[A, B]].
func (s *UnionSchema[A, B]) Parse(ctx context.Context, v any) (Either[A, B], error) {
	if av, err := s.a.Parse(ctx, v); err == nil {
		return Either[A, B]{A: &av}, nil
	}
	if bv, err := s.b.Parse(ctx, v); err == nil {
		return Either[A, B]{B: &bv}, nil
	}
	return Either[A, B]{}, invalidUnion()
}

func (s *UnionSchema[A, B]) ParseAny(ctx context.Context, v any) (any, error) {
	return parseAsAny[Either[A, B]](ctx, s, v)
}

// JSONSchema implements veld.Schema[Either[A, B]].
func (s *UnionSchema[A, B]) JSONSchema() (*js.Schema, error) {
	return oneOfProjection(veld.AnyOf(s.a), veld.AnyOf(s.b))
}

// Union3Schema is a three-way UnionSchema.
type Union3Schema[A, B, C any] struct {
	a veld.Schema[A]
	b veld.Schema[B]
	c veld.Schema[C]
}

// Union3 builds a three-way union.
func Union3[A, B, C any](a veld.Schema[A], b veld.Schema[B], c veld.Schema[C]) *Union3Schema[A, B, C] {
	return &Union3Schema[A, B, C]{a: a, b: b, c: c}
}

// Parse implements veld.Schema[Either3[A, B, C]].
func (s *Union3Schema[A, B, C]) Parse(ctx context.Context, v any) (Either3[A, B, C], error) {
	if av, err := s.a.Parse(ctx, v); err == nil {
		return Either3[A, B, C]{A: &av}, nil
	}
	if bv, err := s.b.Parse(ctx, v); err == nil {
		return Either3[A, B, C]{B: &bv}, nil
	}
	if cv, err := s.c.Parse(ctx, v); err == nil {
		return Either3[A, B, C]{C: &cv}, nil
	}
	return Either3[A, B, C]{}, invalidUnion()
}

func (s *Union3Schema[A, B, C]) ParseAny(ctx context.Context, v any) (any, error) {
	return parseAsAny[Either3[A, B, C]](ctx, s, v)
}

// JSONSchema implements veld.Schema[Either3[A, B, C]].
func (s *Union3Schema[A, B, C]) JSONSchema() (*js.Schema, error) {
	return oneOfProjection(veld.AnyOf(s.a), veld.AnyOf(s.b), veld.AnyOf(s.c))
}

// UnionAnySchema is an n-way union over untyped branches.
type UnionAnySchema struct {
	branches []veld.AnySchema
}

// UnionAny builds an n-way union whose output is the first successful
// branch's value, untyped.
func UnionAny(branches ...veld.AnySchema) *UnionAnySchema {
	return &UnionAnySchema{branches: append([]veld.AnySchema(nil), branches...)}
}

// Parse implements veld.Schema[any].
func (s *UnionAnySchema) Parse(ctx context.Context, v any) (any, error) {
	for _, b := range s.branches {
		if out, err := b.ParseAny(ctx, v); err == nil {
			return out, nil
		}
	}
	return nil, invalidUnion()
}

func (s *UnionAnySchema) ParseAny(ctx context.Context, v any) (any, error) {
	return s.Parse(ctx, v)
}

// JSONSchema implements veld.Schema[any].
func (s *UnionAnySchema) JSONSchema() (*js.Schema, error) {
	return oneOfProjection(s.branches...)
}

// DiscriminatedUnionSchema routes objects to a variant by a tag field.
type DiscriminatedUnionSchema[T any] struct {
	field    string
	variants map[string]veld.Schema[T]
}

// DiscriminatedUnion builds a tagged union. Unlike Union, the selected
// variant's issues are reported at their own paths.
func DiscriminatedUnion[T any](field string, variants map[string]veld.Schema[T]) *DiscriminatedUnionSchema[T] {
	vs := make(map[string]veld.Schema[T], len(variants))
	for k, s := range variants {
		vs[k] = s
	}
	return &DiscriminatedUnionSchema[T]{field: field, variants: vs}
}

// Options returns the accepted discriminator values, sorted.
func (s *DiscriminatedUnionSchema[T]) Options() []string {
	opts := make([]string, 0, len(s.variants))
	for k := range s.variants {
		opts = append(opts, k)
	}
	sort.Strings(opts)
	return opts
}

// Parse implements veld.Schema[T].
func (s *DiscriminatedUnionSchema[T]) Parse(ctx context.Context, v any) (T, error) {
	var zero T
	obj, ok := v.(map[string]any)
	if !ok {
		return zero, invalidType("object", v)
	}
	raw, present := obj[s.field]
	if !present {
		return zero, veld.Issues{{
			Code:    veld.CodeInvalidDiscrim,
			Message: i18n.T("missing_discriminator", map[string]any{"field": s.field}),
			Path:    veld.Path{veld.Field(s.field)},
			Params:  map[string]any{"field": s.field},
		}}
	}
	tag, ok := raw.(string)
	var variant veld.Schema[T]
	if ok {
		variant = s.variants[tag]
	}
	if variant == nil {
		opts := s.Options()
		return zero, veld.Issues{{
			Code:    veld.CodeInvalidDiscrim,
			Message: i18n.T(veld.CodeInvalidDiscrim, map[string]any{"options": veld.JoinQuoted(opts)}),
			Path:    veld.Path{veld.Field(s.field)},
			Params:  map[string]any{"field": s.field, "options": opts},
		}}
	}
	return variant.Parse(ctx, v)
}

func (s *DiscriminatedUnionSchema[T]) ParseAny(ctx context.Context, v any) (any, error) {
	return parseAsAny[T](ctx, s, v)
}

// JSONSchema implements veld.Schema[T].
func (s *DiscriminatedUnionSchema[T]) JSONSchema() (*js.Schema, error) {
	branches := make([]veld.AnySchema, 0, len(s.variants))
	for _, k := range s.Options() {
		branches = append(branches, veld.AnyOf(s.variants[k]))
	}
	return oneOfProjection(branches...)
}

func invalidUnion() veld.Issues {
	return veld.Issues{{
		Code:    veld.CodeInvalidUnion,
		Message: i18n.T(veld.CodeInvalidUnion, nil),
	}}
}

func oneOfProjection(branches ...veld.AnySchema) (*js.Schema, error) {
	one := make([]*js.Schema, len(branches))
	for i, b := range branches {
		p, err := b.JSONSchema()
		if err != nil {
			return nil, err
		}
		one[i] = p
	}
	return &js.Schema{OneOf: one}, nil
}
