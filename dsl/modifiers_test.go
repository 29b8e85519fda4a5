package dsl_test

import (
	"context"
	"errors"
	"strconv"
	"strings"
	"testing"

	veld "github.com/veldkit/veld"
	"github.com/veldkit/veld/dsl"
)

func TestOptional(t *testing.T) {
	ctx := context.Background()
	s := dsl.Optional(dsl.String().Min(2))
	if v, err := s.Parse(ctx, nil); err != nil || v != nil {
		t.Fatalf("null should parse to nil, got v=%v err=%v", v, err)
	}
	v, err := s.Parse(ctx, "ab")
	if err != nil || v == nil || *v != "ab" {
		t.Fatalf("present value should parse, got v=%v err=%v", v, err)
	}
	// Inner checks still run for present values.
	if _, err := s.Parse(ctx, "a"); err == nil {
		t.Fatalf("expected too_small for present short value")
	}
}

func TestNullable_VsOptional_InObject(t *testing.T) {
	ctx := context.Background()
	s := dsl.Object().
		Field("opt", dsl.Optional(dsl.String())).
		Field("nul", dsl.Nullable(dsl.String())).
		MustBuild()

	// Optional tolerates a missing key; Nullable does not.
	_, err := s.Parse(ctx, map[string]any{})
	is := veld.AsIssues(err)
	if len(is) != 1 || is[0].Code != veld.CodeMissingField || is[0].Path.String() != ".nul" {
		t.Fatalf("expected missing_field at .nul only, got %v", err)
	}
	// Both accept explicit null.
	if _, err := s.Parse(ctx, map[string]any{"nul": nil}); err != nil {
		t.Fatalf("explicit null should satisfy nullable: %v", err)
	}
}

func TestOptional_WrappedAbsentKeyOmitted(t *testing.T) {
	ctx := context.Background()
	s := dsl.Object().
		Field("name", dsl.String()).
		Field("nick", dsl.Describe(dsl.Optional(dsl.String()), "nickname")).
		Field("tag", dsl.Refine(dsl.Optional(dsl.String().Min(2)), "tagged",
			func(v *string) bool { return v == nil || *v != "" })).
		MustBuild()

	// Wrapping an Optional must not turn an absent key into a typed nil
	// pointer stored in the output.
	out, err := s.Parse(ctx, map[string]any{"name": "a"})
	if err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	if v, present := out["nick"]; present {
		t.Fatalf("absent described optional should be omitted, got %v (%T)", v, v)
	}
	if v, present := out["tag"]; present {
		t.Fatalf("absent refined optional should be omitted, got %v (%T)", v, v)
	}

	out, err = s.Parse(ctx, map[string]any{"name": "a", "nick": "n"})
	if err != nil || out["nick"] != "n" {
		t.Fatalf("present value should pass through unwrapped, got %v err=%v", out["nick"], err)
	}
}

func TestDefault(t *testing.T) {
	ctx := context.Background()
	s := dsl.Default(dsl.Number().Min(10), 3)
	// The default bypasses inner checks.
	if v, err := s.Parse(ctx, nil); err != nil || v != 3 {
		t.Fatalf("default expected, got v=%v err=%v", v, err)
	}
	if _, err := s.Parse(ctx, 5.0); err == nil {
		t.Fatalf("present value must still satisfy inner checks")
	}
	n := 0
	df := dsl.DefaultFunc(dsl.Number(), func() float64 { n++; return float64(n) })
	_, _ = df.Parse(ctx, nil)
	v, _ := df.Parse(ctx, nil)
	if v != 2 {
		t.Fatalf("DefaultFunc should recompute per parse, got %v", v)
	}
}

func TestCatch(t *testing.T) {
	ctx := context.Background()
	s := dsl.Catch(dsl.Number().Min(0), -1)
	if v, err := s.Parse(ctx, "oops"); err != nil || v != -1 {
		t.Fatalf("catch should swallow failure, got v=%v err=%v", v, err)
	}
	if v, err := s.Parse(ctx, 7.0); err != nil || v != 7 {
		t.Fatalf("catch should pass success through, got v=%v err=%v", v, err)
	}
}

func TestRefine(t *testing.T) {
	ctx := context.Background()
	even := dsl.Refine(dsl.Number().Int(), "even", func(v float64) bool {
		return int64(v)%2 == 0
	}).Message("must be even")
	if _, err := even.Parse(ctx, 2.0); err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	_, err := even.Parse(ctx, 3.0)
	is := veld.AsIssues(err)
	if len(is) != 1 || is[0].Code != veld.CodeCustom || is[0].Message != "must be even" {
		t.Fatalf("expected custom issue with message, got %v", err)
	}
	// A failed inner parse suppresses the refinement.
	_, err = even.Parse(ctx, 1.5)
	if is := veld.AsIssues(err); len(is) != 1 || is[0].Code != veld.CodeNotInt {
		t.Fatalf("expected only not_int, got %v", err)
	}
}

func TestRefineE(t *testing.T) {
	ctx := context.Background()
	s := dsl.RefineE(dsl.String(), "known", func(_ context.Context, v string) error {
		if v != "known" {
			return errors.New("unknown name")
		}
		return nil
	})
	_, err := s.Parse(ctx, "other")
	if is := veld.AsIssues(err); len(is) != 1 || is[0].Message != "unknown name" {
		t.Fatalf("expected wrapped error message, got %v", err)
	}
}

func TestSuperRefine(t *testing.T) {
	ctx := context.Background()
	s := dsl.SuperRefine(
		dsl.Object().
			Field("password", dsl.String()).
			Field("confirm", dsl.String()).
			MustBuild(),
		func(_ context.Context, v map[string]any, c *dsl.IssueCollector) {
			if v["password"] != v["confirm"] {
				c.AddField("confirm", "passwords do not match")
			}
		})
	if _, err := s.Parse(ctx, map[string]any{"password": "x", "confirm": "x"}); err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	_, err := s.Parse(ctx, map[string]any{"password": "x", "confirm": "y"})
	is := veld.AsIssues(err)
	if len(is) != 1 || is[0].Path.String() != ".confirm" {
		t.Fatalf("expected issue at .confirm, got %v", err)
	}
}

func TestTransform(t *testing.T) {
	ctx := context.Background()
	length := dsl.Transform(dsl.String(), func(_ context.Context, v string) (int, error) {
		return len(v), nil
	})
	if v, err := length.Parse(ctx, "hello"); err != nil || v != 5 {
		t.Fatalf("transform failed: v=%v err=%v", v, err)
	}
	parseInt := dsl.Transform(dsl.String(), func(_ context.Context, v string) (int64, error) {
		return strconv.ParseInt(v, 10, 64)
	})
	_, err := parseInt.Parse(ctx, "abc")
	if is := veld.AsIssues(err); len(is) != 1 || is[0].Code != veld.CodeCustom {
		t.Fatalf("failing transform should surface as custom, got %v", err)
	}
}

func TestPipe(t *testing.T) {
	ctx := context.Background()
	// string -> int64 -> bounded number
	toInt := dsl.Transform(dsl.String().Trim(), func(_ context.Context, v string) (float64, error) {
		f, err := strconv.ParseFloat(v, 64)
		return f, err
	})
	s := dsl.Pipe[float64, float64](toInt, dsl.Number().Max(100))
	if v, err := s.Parse(ctx, " 42 "); err != nil || v != 42 {
		t.Fatalf("pipe failed: v=%v err=%v", v, err)
	}
	if _, err := s.Parse(ctx, "200"); err == nil {
		t.Fatalf("second stage should reject 200")
	}
	// First stage failing short-circuits the second.
	_, err := s.Parse(ctx, 5.0)
	if is := veld.AsIssues(err); len(is) != 1 || is[0].Code != veld.CodeInvalidType {
		t.Fatalf("expected only the first stage's issue, got %v", err)
	}
}

func TestPreprocess(t *testing.T) {
	ctx := context.Background()
	s := dsl.Preprocess(func(v any) any {
		if str, ok := v.(string); ok {
			return strings.TrimSpace(str)
		}
		return v
	}, dsl.String().Min(1))
	if v, err := s.Parse(ctx, "  x "); err != nil || v != "x" {
		t.Fatalf("preprocess failed: v=%q err=%v", v, err)
	}
}

func TestWithMessage(t *testing.T) {
	ctx := context.Background()
	s := dsl.WithMessage[string](dsl.String(), veld.CodeInvalidType, "name must be text")
	_, err := s.Parse(ctx, 1)
	if is := veld.AsIssues(err); len(is) != 1 || is[0].Message != "name must be text" {
		t.Fatalf("expected overridden message, got %v", err)
	}
}

func TestCustom(t *testing.T) {
	ctx := context.Background()
	port := dsl.Custom[int]("port", func(_ context.Context, v any) (int, error) {
		f, ok := veld.NumberValue(v)
		if !ok || f != float64(int(f)) || f < 1 || f > 65535 {
			return 0, errors.New("not a valid port")
		}
		return int(f), nil
	})
	if v, err := port.Parse(ctx, 8080.0); err != nil || v != 8080 {
		t.Fatalf("custom parse failed: v=%v err=%v", v, err)
	}
	_, err := port.Parse(ctx, 70000.0)
	is := veld.AsIssues(err)
	if len(is) != 1 || is[0].Code != veld.CodeCustom || is[0].Params["check"] != "port" {
		t.Fatalf("expected custom issue with check name, got %v", err)
	}
	if is[0].Params["received"] != "70000" {
		t.Fatalf("expected echoed input in params, got %v", is[0].Params["received"])
	}
}

type category struct {
	Name     string
	Children []category
}

func TestLazy_Recursive(t *testing.T) {
	ctx := context.Background()
	var build func() veld.Schema[map[string]any]
	build = func() veld.Schema[map[string]any] {
		return dsl.Object().
			Field("name", dsl.String().Min(1)).
			OptionalField("children", dsl.Array(dsl.Lazy(build))).
			MustBuild()
	}
	tree := dsl.Lazy(build)
	in := map[string]any{
		"name": "root",
		"children": []any{
			map[string]any{"name": "leaf"},
			map[string]any{"name": "", "children": []any{}},
		},
	}
	_, err := tree.Parse(ctx, in)
	is := veld.AsIssues(err)
	if len(is) != 1 || is[0].Path.String() != ".children[1].name" {
		t.Fatalf("expected nested issue at .children[1].name, got %v", err)
	}
}

func TestLazy_FactoryPerParse(t *testing.T) {
	ctx := context.Background()
	calls := 0
	s := dsl.Lazy(func() veld.Schema[string] {
		calls++
		return dsl.String()
	})
	if _, err := s.Parse(ctx, "a"); err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	if _, err := s.Parse(ctx, "b"); err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	if calls != 2 {
		t.Fatalf("factory should run once per parse, ran %d times", calls)
	}
}
