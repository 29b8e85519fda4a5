package dsl

import (
	"context"
	"math"
	"strconv"

	veld "github.com/veldkit/veld"
	"github.com/veldkit/veld/i18n"
	js "github.com/veldkit/veld/jsonschema"
)

// NumberSchema validates numeric inputs (float64, json.Number and the Go
// integer types produced by YAML decoding). All failing checks are
// reported unless the context is fail-fast.
type NumberSchema struct {
	coerce  bool
	integer bool
	checks  []numberCheck
}

type numberCheck struct {
	run     func(f float64) *veld.Issue
	project func(out *js.Schema)
	message string
}

// Number starts a number schema.
func Number() *NumberSchema { return &NumberSchema{} }

// Int is shorthand for Number().Int().
func Int() *NumberSchema { return Number().Int() }

// Coerce parses numeric strings and converts booleans (true=1, false=0)
// before validation.
func (s *NumberSchema) Coerce() *NumberSchema {
	s.coerce = true
	return s
}

// Message overrides the message of the most recently added check.
func (s *NumberSchema) Message(msg string) *NumberSchema {
	if n := len(s.checks); n > 0 {
		s.checks[n-1].message = msg
	}
	return s
}

func (s *NumberSchema) addCheck(run func(float64) *veld.Issue, project func(*js.Schema)) *NumberSchema {
	s.checks = append(s.checks, numberCheck{run: run, project: project})
	return s
}

// Int requires an integral value.
func (s *NumberSchema) Int() *NumberSchema {
	s.integer = true
	return s.addCheck(func(f float64) *veld.Issue {
		if f != math.Trunc(f) || math.IsInf(f, 0) || math.IsNaN(f) {
			return &veld.Issue{Code: veld.CodeNotInt, Message: i18n.T(veld.CodeNotInt, nil)}
		}
		return nil
	}, nil)
}

// Safe requires an integer with magnitude at most 2^53 - 1.
func (s *NumberSchema) Safe() *NumberSchema {
	return s.addCheck(func(f float64) *veld.Issue {
		if f != math.Trunc(f) || math.Abs(f) > veld.MaxSafeNumber {
			return &veld.Issue{Code: veld.CodeNotSafe, Message: i18n.T(veld.CodeNotSafe, nil)}
		}
		return nil
	}, nil)
}

// Finite rejects NaN and the infinities.
func (s *NumberSchema) Finite() *NumberSchema {
	return s.addCheck(func(f float64) *veld.Issue {
		if math.IsInf(f, 0) || math.IsNaN(f) {
			return &veld.Issue{Code: veld.CodeNotFinite, Message: i18n.T(veld.CodeNotFinite, nil)}
		}
		return nil
	}, nil)
}

// Min requires f >= n (inclusive).
func (s *NumberSchema) Min(n float64) *NumberSchema {
	return s.addCheck(func(f float64) *veld.Issue {
		if f < n {
			is := sizeIssue(veld.CodeTooSmall, "number", map[string]any{"min": veld.RenderNumber(n)})
			return &is
		}
		return nil
	}, func(out *js.Schema) { out.Minimum = js.FloatPtr(n) })
}

// Max requires f <= n (inclusive).
func (s *NumberSchema) Max(n float64) *NumberSchema {
	return s.addCheck(func(f float64) *veld.Issue {
		if f > n {
			is := sizeIssue(veld.CodeTooBig, "number", map[string]any{"max": veld.RenderNumber(n)})
			return &is
		}
		return nil
	}, func(out *js.Schema) { out.Maximum = js.FloatPtr(n) })
}

// Gte is an alias for Min.
func (s *NumberSchema) Gte(n float64) *NumberSchema { return s.Min(n) }

// Lte is an alias for Max.
func (s *NumberSchema) Lte(n float64) *NumberSchema { return s.Max(n) }

// Gt requires f > n (exclusive).
func (s *NumberSchema) Gt(n float64) *NumberSchema {
	return s.addCheck(func(f float64) *veld.Issue {
		if f <= n {
			is := sizeIssue(veld.CodeTooSmall, "gt", map[string]any{"min": veld.RenderNumber(n)})
			return &is
		}
		return nil
	}, func(out *js.Schema) { out.ExclusiveMinimum = js.FloatPtr(n) })
}

// Lt requires f < n (exclusive).
func (s *NumberSchema) Lt(n float64) *NumberSchema {
	return s.addCheck(func(f float64) *veld.Issue {
		if f >= n {
			is := sizeIssue(veld.CodeTooBig, "lt", map[string]any{"max": veld.RenderNumber(n)})
			return &is
		}
		return nil
	}, func(out *js.Schema) { out.ExclusiveMaximum = js.FloatPtr(n) })
}

// Positive requires f > 0.
func (s *NumberSchema) Positive() *NumberSchema { return s.Gt(0) }

// Negative requires f < 0.
func (s *NumberSchema) Negative() *NumberSchema { return s.Lt(0) }

// NonNegative requires f >= 0.
func (s *NumberSchema) NonNegative() *NumberSchema { return s.Min(0) }

// NonPositive requires f <= 0.
func (s *NumberSchema) NonPositive() *NumberSchema { return s.Max(0) }

// MultipleOf requires f to be an exact multiple of n.
func (s *NumberSchema) MultipleOf(n float64) *NumberSchema {
	return s.addCheck(func(f float64) *veld.Issue {
		if n == 0 || math.Mod(f, n) != 0 {
			return &veld.Issue{
				Code:    veld.CodeNotMultipleOf,
				Message: i18n.T(veld.CodeNotMultipleOf, map[string]any{"multipleOf": veld.RenderNumber(n)}),
				Params:  map[string]any{"multipleOf": n},
			}
		}
		return nil
	}, func(out *js.Schema) { out.MultipleOf = js.FloatPtr(n) })
}

// Parse implements veld.Schema[float64].
func (s *NumberSchema) Parse(ctx context.Context, v any) (float64, error) {
	if s.coerce {
		switch x := v.(type) {
		case string:
			f, err := strconv.ParseFloat(x, 64)
			if err != nil {
				return 0, invalidType("number", v)
			}
			v = f
		case bool:
			if x {
				v = float64(1)
			} else {
				v = float64(0)
			}
		}
	}
	f, ok := veld.NumberValue(v)
	if !ok {
		return 0, invalidType("number", v)
	}
	var issues veld.Issues
	for _, c := range s.checks {
		if is := c.run(f); is != nil {
			if c.message != "" {
				is.Message = c.message
			}
			issues = append(issues, *is)
			if veld.IsFailFast(ctx) {
				break
			}
		}
	}
	if len(issues) > 0 {
		return 0, issues
	}
	return f, nil
}

func (s *NumberSchema) ParseAny(ctx context.Context, v any) (any, error) {
	return parseAsAny[float64](ctx, s, v)
}

// JSONSchema implements veld.Schema[float64].
func (s *NumberSchema) JSONSchema() (*js.Schema, error) {
	out := &js.Schema{Type: "number"}
	if s.integer {
		out.Type = "integer"
	}
	for _, c := range s.checks {
		if c.project != nil {
			c.project(out)
		}
	}
	return out, nil
}
