package dsl

import (
	"context"
	"sort"

	veld "github.com/veldkit/veld"
	"github.com/veldkit/veld/i18n"
	js "github.com/veldkit/veld/jsonschema"
)

// UnknownPolicy controls how object parsing treats keys that no field
// declares. Catchall, when set, takes precedence over the policy.
type UnknownPolicy int

const (
	// UnknownStrip silently drops unknown keys. The default.
	UnknownStrip UnknownPolicy = iota
	// UnknownPassthrough copies unknown keys into the output unvalidated.
	UnknownPassthrough
	// UnknownStrict reports unrecognized_field for every unknown key.
	UnknownStrict
)

type objectCheck func(ctx context.Context, v map[string]any, c *IssueCollector)

// ObjectSchema validates JSON objects field by field. Field issues are
// rebased under the field name; all failing fields are reported unless
// the context is fail-fast.
type ObjectSchema struct {
	fields   map[string]veld.AnySchema
	order    []string
	unknown  UnknownPolicy
	catchall veld.AnySchema
	checks   []objectCheck
}

// Parse implements veld.Schema[map[string]any]. Missing keys are fed to
// the field schema as null; schemas that do not tolerate that produce a
// missing_field issue at the key.
func (s *ObjectSchema) Parse(ctx context.Context, v any) (map[string]any, error) {
	obj, ok := v.(map[string]any)
	if !ok {
		return nil, invalidType("object", v)
	}
	out := make(map[string]any, len(s.fields))
	var issues veld.Issues

	for _, name := range s.order {
		schema := s.fields[name]
		raw, present := obj[name]
		if !present {
			if !acceptsMissing(schema) {
				issues = append(issues, veld.Issue{
					Code:    veld.CodeMissingField,
					Message: i18n.T(veld.CodeMissingField, nil),
					Path:    veld.Path{veld.Field(name)},
				})
				if veld.IsFailFast(ctx) {
					return nil, issues
				}
				continue
			}
			val, err := schema.ParseAny(ctx, nil)
			if err != nil {
				issues = append(issues, veld.PrefixField(err, name)...)
				if veld.IsFailFast(ctx) {
					return nil, issues
				}
				continue
			}
			// Absent with no default stays absent from the output.
			if val != nil {
				out[name] = val
			}
			continue
		}
		val, err := schema.ParseAny(ctx, raw)
		if err != nil {
			issues = append(issues, veld.PrefixField(err, name)...)
			if veld.IsFailFast(ctx) {
				return nil, issues
			}
			continue
		}
		out[name] = val
	}

	if unknownIssues := s.collectUnknown(ctx, obj, out); unknownIssues != nil {
		issues = append(issues, unknownIssues...)
		if veld.IsFailFast(ctx) {
			return nil, issues
		}
	}

	if len(issues) == 0 {
		var c IssueCollector
		for _, check := range s.checks {
			check(ctx, out, &c)
			if veld.IsFailFast(ctx) && len(c.issues) > 0 {
				break
			}
		}
		issues = append(issues, c.issues...)
	}

	if len(issues) > 0 {
		return nil, issues
	}
	return out, nil
}

// collectUnknown applies the catchall schema or the unknown-key policy.
// Unknown keys are visited in sorted order for deterministic issues.
func (s *ObjectSchema) collectUnknown(ctx context.Context, obj, out map[string]any) veld.Issues {
	var unknown []string
	for k := range obj {
		if _, known := s.fields[k]; !known {
			unknown = append(unknown, k)
		}
	}
	if len(unknown) == 0 {
		return nil
	}
	sort.Strings(unknown)

	var issues veld.Issues
	switch {
	case s.catchall != nil:
		for _, k := range unknown {
			val, err := s.catchall.ParseAny(ctx, obj[k])
			if err != nil {
				issues = append(issues, veld.PrefixField(err, k)...)
				if veld.IsFailFast(ctx) {
					return issues
				}
				continue
			}
			out[k] = val
		}
	case s.unknown == UnknownStrict:
		for _, k := range unknown {
			issues = append(issues, veld.Issue{
				Code:    veld.CodeUnrecognizedField,
				Message: i18n.T(veld.CodeUnrecognizedField, map[string]any{"key": k}),
				Path:    veld.Path{veld.Field(k)},
				Params:  map[string]any{"key": k},
			})
			if veld.IsFailFast(ctx) {
				return issues
			}
		}
	case s.unknown == UnknownPassthrough:
		for _, k := range unknown {
			out[k] = obj[k]
		}
	}
	return issues
}

func (s *ObjectSchema) ParseAny(ctx context.Context, v any) (any, error) {
	return parseAsAny[map[string]any](ctx, s, v)
}

// JSONSchema implements veld.Schema[map[string]any].
func (s *ObjectSchema) JSONSchema() (*js.Schema, error) {
	props := make(map[string]*js.Schema, len(s.fields))
	var required []string
	for _, name := range s.order {
		p, err := s.fields[name].JSONSchema()
		if err != nil {
			return nil, err
		}
		props[name] = p
		if !acceptsMissing(s.fields[name]) {
			required = append(required, name)
		}
	}
	out := &js.Schema{Type: "object", Properties: props, Required: required}
	switch {
	case s.catchall != nil:
		ap, err := s.catchall.JSONSchema()
		if err != nil {
			return nil, err
		}
		out.AdditionalProperties = ap
	case s.unknown == UnknownStrict:
		out.AdditionalProperties = false
	case s.unknown == UnknownPassthrough:
		out.AdditionalProperties = true
	}
	return out, nil
}

// Keys returns the declared field names in declaration order.
func (s *ObjectSchema) Keys() []string {
	return append([]string(nil), s.order...)
}
