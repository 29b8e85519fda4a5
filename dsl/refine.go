package dsl

import (
	"context"

	veld "github.com/veldkit/veld"
	"github.com/veldkit/veld/i18n"
	js "github.com/veldkit/veld/jsonschema"
)

// RefineSchema runs a predicate over the inner schema's output. The
// predicate only runs when the inner parse succeeded.
type RefineSchema[T any] struct {
	inner veld.Schema[T]
	check func(ctx context.Context, v T) error
	msg   string
	name  string
}

// Refine attaches a named boolean predicate to a schema. A false result
// produces a custom issue carrying the check name in params.
func Refine[T any](inner veld.Schema[T], name string, pred func(v T) bool) *RefineSchema[T] {
	return &RefineSchema[T]{
		inner: inner,
		name:  name,
		check: func(_ context.Context, v T) error {
			if pred(v) {
				return nil
			}
			return veld.Issues{{
				Code:    veld.CodeCustom,
				Message: i18n.T(veld.CodeCustom, nil),
				Params:  map[string]any{"check": name},
			}}
		},
	}
}

// RefineE is Refine with an error-returning check; the returned issues
// (or wrapped error) surface directly.
func RefineE[T any](inner veld.Schema[T], name string, check func(ctx context.Context, v T) error) *RefineSchema[T] {
	return &RefineSchema[T]{inner: inner, name: name, check: check}
}

// Message overrides the failure message.
func (s *RefineSchema[T]) Message(msg string) *RefineSchema[T] {
	s.msg = msg
	return s
}

// Parse implements veld.Schema[T].
func (s *RefineSchema[T]) Parse(ctx context.Context, v any) (T, error) {
	out, err := s.inner.Parse(ctx, v)
	if err != nil {
		return out, err
	}
	if err := s.check(ctx, out); err != nil {
		is := veld.AsIssues(err)
		if s.msg != "" {
			for i := range is {
				is[i].Message = s.msg
			}
		}
		var zero T
		return zero, is
	}
	return out, nil
}

func (s *RefineSchema[T]) ParseAny(ctx context.Context, v any) (any, error) {
	return parseAsAny[T](ctx, s, v)
}

// JSONSchema implements veld.Schema[T]. Predicates have no projection.
func (s *RefineSchema[T]) JSONSchema() (*js.Schema, error) {
	return s.inner.JSONSchema()
}

func (s *RefineSchema[T]) toleratesMissing() bool { return acceptsMissing(s.inner) }

// IssueCollector accumulates issues inside SuperRefine callbacks.
type IssueCollector struct {
	issues veld.Issues
}

// Add records an issue at the value's own path.
func (c *IssueCollector) Add(code, msg string, params map[string]any) {
	if msg == "" {
		msg = i18n.T(code, params)
	}
	c.issues = append(c.issues, veld.Issue{Code: code, Message: msg, Params: params})
}

// AddAt records an issue at a path below the value.
func (c *IssueCollector) AddAt(path veld.Path, code, msg string, params map[string]any) {
	if msg == "" {
		msg = i18n.T(code, params)
	}
	c.issues = append(c.issues, veld.Issue{Code: code, Message: msg, Path: path, Params: params})
}

// AddField records a custom issue at the given field.
func (c *IssueCollector) AddField(name, msg string) {
	c.AddAt(veld.Path{veld.Field(name)}, veld.CodeCustom, msg, nil)
}

// SuperRefineSchema runs a callback that can report any number of issues
// at arbitrary sub-paths.
type SuperRefineSchema[T any] struct {
	inner veld.Schema[T]
	fn    func(ctx context.Context, v T, c *IssueCollector)
}

// SuperRefine attaches a multi-issue validation callback to a schema.
func SuperRefine[T any](inner veld.Schema[T], fn func(ctx context.Context, v T, c *IssueCollector)) *SuperRefineSchema[T] {
	return &SuperRefineSchema[T]{inner: inner, fn: fn}
}

// Parse implements veld.Schema[T].
func (s *SuperRefineSchema[T]) Parse(ctx context.Context, v any) (T, error) {
	out, err := s.inner.Parse(ctx, v)
	if err != nil {
		return out, err
	}
	var c IssueCollector
	s.fn(ctx, out, &c)
	if len(c.issues) > 0 {
		var zero T
		return zero, c.issues
	}
	return out, nil
}

func (s *SuperRefineSchema[T]) ParseAny(ctx context.Context, v any) (any, error) {
	return parseAsAny[T](ctx, s, v)
}

// JSONSchema implements veld.Schema[T].
func (s *SuperRefineSchema[T]) JSONSchema() (*js.Schema, error) {
	return s.inner.JSONSchema()
}

func (s *SuperRefineSchema[T]) toleratesMissing() bool { return acceptsMissing(s.inner) }
