package dsl_test

import (
	"context"
	"regexp"
	"testing"
	"time"

	veld "github.com/veldkit/veld"
	"github.com/veldkit/veld/dsl"
)

// TestString_Minimal covers acceptance, rejection, and the invalid_type
// message shape.
func TestString_Minimal(t *testing.T) {
	ctx := context.Background()
	if v, err := dsl.String().Parse(ctx, "hello"); err != nil || v != "hello" {
		t.Fatalf("string parse ok expected, got v=%v err=%v", v, err)
	}
	_, err := dsl.String().Parse(ctx, 1)
	is := veld.AsIssues(err)
	if len(is) != 1 || is[0].Code != veld.CodeInvalidType {
		t.Fatalf("expected invalid_type, got %v", err)
	}
	if is[0].Message != "Expected string, received number" {
		t.Fatalf("unexpected message: %q", is[0].Message)
	}
}

func TestString_Checks_Accumulate(t *testing.T) {
	ctx := context.Background()
	s := dsl.String().Min(5).StartsWith("ab")
	_, err := s.Parse(ctx, "zz")
	is := veld.AsIssues(err)
	if len(is) != 2 {
		t.Fatalf("expected both checks reported, got %v", is)
	}
	if is[0].Code != veld.CodeTooSmall || is[1].Code != veld.CodeInvalidString {
		t.Fatalf("unexpected codes: %v", is)
	}
}

func TestString_FailFast(t *testing.T) {
	ctx := veld.WithFailFast(context.Background())
	_, err := dsl.String().Min(5).StartsWith("ab").Parse(ctx, "zz")
	if is := veld.AsIssues(err); len(is) != 1 {
		t.Fatalf("fail-fast should stop at first issue, got %v", is)
	}
}

func TestString_Transforms_And_Message(t *testing.T) {
	ctx := context.Background()
	v, err := dsl.String().Trim().ToLower().Parse(ctx, "  HeLLo  ")
	if err != nil || v != "hello" {
		t.Fatalf("expected trimmed lowercase, got v=%q err=%v", v, err)
	}
	_, err = dsl.String().Min(3).Message("too short!").Parse(ctx, "a")
	if is := veld.AsIssues(err); len(is) != 1 || is[0].Message != "too short!" {
		t.Fatalf("expected custom message, got %v", err)
	}
}

func TestString_Coerce(t *testing.T) {
	ctx := context.Background()
	if v, err := dsl.String().Coerce().Parse(ctx, 3.5); err != nil || v != "3.5" {
		t.Fatalf("coerce number failed: v=%q err=%v", v, err)
	}
	if v, err := dsl.String().Coerce().Parse(ctx, true); err != nil || v != "true" {
		t.Fatalf("coerce bool failed: v=%q err=%v", v, err)
	}
}

func TestString_Pattern(t *testing.T) {
	ctx := context.Background()
	s := dsl.String().Pattern(regexp.MustCompile(`^[a-z]+$`))
	if _, err := s.Parse(ctx, "abc"); err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	_, err := s.Parse(ctx, "ABC")
	if is := veld.AsIssues(err); len(is) != 1 || is[0].Code != veld.CodeInvalidRegex {
		t.Fatalf("expected invalid_regex, got %v", err)
	}
}

func TestNumber_Checks(t *testing.T) {
	ctx := context.Background()
	cases := []struct {
		name string
		s    *dsl.NumberSchema
		in   any
		code string
	}{
		{"min", dsl.Number().Min(10), 5.0, veld.CodeTooSmall},
		{"max", dsl.Number().Max(10), 11.0, veld.CodeTooBig},
		{"gt boundary", dsl.Number().Gt(0), 0.0, veld.CodeTooSmall},
		{"lt boundary", dsl.Number().Lt(0), 0.0, veld.CodeTooBig},
		{"int", dsl.Number().Int(), 1.5, veld.CodeNotInt},
		{"safe", dsl.Number().Safe(), 9007199254740992.0, veld.CodeNotSafe},
		{"multiple", dsl.Number().MultipleOf(3), 10.0, veld.CodeNotMultipleOf},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := tc.s.Parse(ctx, tc.in)
			is := veld.AsIssues(err)
			if len(is) != 1 || is[0].Code != tc.code {
				t.Fatalf("expected %s, got %v", tc.code, err)
			}
		})
	}
	if v, err := dsl.Number().Min(0).Max(10).Parse(ctx, 7.0); err != nil || v != 7 {
		t.Fatalf("in-range parse failed: v=%v err=%v", v, err)
	}
}

func TestNumber_Inputs(t *testing.T) {
	ctx := context.Background()
	// json.Number and ints all normalize to float64.
	if v, err := veld.ParseJSON[float64](ctx, dsl.Number(), []byte(`42`)); err != nil || v != 42 {
		t.Fatalf("json.Number input failed: v=%v err=%v", v, err)
	}
	if _, err := dsl.Number().Parse(ctx, "1.0"); err == nil {
		t.Fatalf("expected invalid_type for string input")
	}
	if v, err := dsl.Number().Coerce().Parse(ctx, "1.5"); err != nil || v != 1.5 {
		t.Fatalf("coerce string failed: v=%v err=%v", v, err)
	}
}

func TestBool(t *testing.T) {
	ctx := context.Background()
	if v, err := dsl.Bool().Parse(ctx, true); err != nil || v != true {
		t.Fatalf("bool parse failed: v=%v err=%v", v, err)
	}
	if _, err := dsl.Bool().Parse(ctx, "nope"); err == nil {
		t.Fatalf("expected invalid_type")
	}
	if v, err := dsl.Bool().Coerce().Parse(ctx, "true"); err != nil || !v {
		t.Fatalf("coerce true failed: v=%v err=%v", v, err)
	}
	if v, err := dsl.Bool().Coerce().Parse(ctx, 0.0); err != nil || v {
		t.Fatalf("coerce 0 failed: v=%v err=%v", v, err)
	}
}

func TestLiteral(t *testing.T) {
	ctx := context.Background()
	if v, err := dsl.Literal("draft").Parse(ctx, "draft"); err != nil || v != "draft" {
		t.Fatalf("literal parse failed: v=%v err=%v", v, err)
	}
	// Numeric literals compare numerically across representations.
	if _, err := veld.ParseJSON[any](ctx, dsl.Literal(5.0), []byte(`5`)); err != nil {
		t.Fatalf("numeric literal should match json.Number: %v", err)
	}
	_, err := dsl.Literal("draft").Parse(ctx, "final")
	if is := veld.AsIssues(err); len(is) != 1 || is[0].Code != veld.CodeInvalidLiteral {
		t.Fatalf("expected invalid_literal, got %v", err)
	}
}

func TestEnum(t *testing.T) {
	ctx := context.Background()
	role := dsl.Enum("admin", "editor", "viewer")
	if v, err := role.Parse(ctx, "editor"); err != nil || v != "editor" {
		t.Fatalf("enum parse failed: v=%v err=%v", v, err)
	}
	_, err := role.Parse(ctx, "owner")
	is := veld.AsIssues(err)
	if len(is) != 1 || is[0].Code != veld.CodeInvalidEnumValue {
		t.Fatalf("expected invalid_enum_value, got %v", err)
	}
	if is[0].Message != `Invalid enum value, expected one of: "admin", "editor", "viewer"` {
		t.Fatalf("unexpected message: %q", is[0].Message)
	}
}

func TestDate(t *testing.T) {
	ctx := context.Background()
	v, err := dsl.Date().Parse(ctx, "2024-02-29")
	if err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	if v.Year() != 2024 || v.Month() != time.February || v.Day() != 29 {
		t.Fatalf("unexpected date: %v", v)
	}
	if _, err := dsl.Date().Parse(ctx, "2023-02-29"); err == nil {
		t.Fatalf("expected invalid_date for impossible date")
	}
	min := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	_, err = dsl.Date().Min(min).Parse(ctx, "2023-12-31")
	if is := veld.AsIssues(err); len(is) != 1 || is[0].Code != veld.CodeTooSmall {
		t.Fatalf("expected too_small, got %v", err)
	}
}

func TestDateTime(t *testing.T) {
	ctx := context.Background()
	// Offset timestamps normalize to UTC.
	v, err := dsl.DateTime().Parse(ctx, "2024-06-01T12:00:00+02:00")
	if err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	if v.Hour() != 10 || v.Location() != time.UTC {
		t.Fatalf("expected 10:00 UTC, got %v", v)
	}
	// Naive timestamps are assumed UTC.
	if v, err := dsl.DateTime().Parse(ctx, "2024-06-01T12:00:00"); err != nil || v.Hour() != 12 {
		t.Fatalf("naive timestamp failed: v=%v err=%v", v, err)
	}
	if _, err := dsl.DateTime().Parse(ctx, "June 1st"); err == nil {
		t.Fatalf("expected invalid_datetime")
	}
}

func TestAny(t *testing.T) {
	ctx := context.Background()
	for _, in := range []any{nil, "x", 1.0, []any{1.0}, map[string]any{"a": true}} {
		if v, err := dsl.Any().Parse(ctx, in); err != nil {
			t.Fatalf("any should accept %#v: %v", in, err)
		} else if veld.TypeName(v) != veld.TypeName(in) {
			t.Fatalf("any should pass through unchanged, got %#v", v)
		}
	}
}
