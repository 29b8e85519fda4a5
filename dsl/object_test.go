package dsl_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"

	veld "github.com/veldkit/veld"
	"github.com/veldkit/veld/dsl"
)

func userBuilder() *dsl.ObjectBuilder {
	return dsl.Object().
		Field("id", dsl.String().Min(1)).
		Field("name", dsl.String().Min(1)).
		OptionalField("nickname", dsl.String()).
		Field("age", dsl.Default(dsl.Number().Int().NonNegative(), 18))
}

func TestObject_RequiredOptionalDefault(t *testing.T) {
	ctx := context.Background()
	user := userBuilder().MustBuild()

	v, err := user.Parse(ctx, map[string]any{"id": "u_1", "name": "Rei"})
	require.NoError(t, err)
	require.Equal(t, float64(18), v["age"], "default should fill missing age")
	_, hasNick := v["nickname"]
	require.False(t, hasNick, "absent optional field stays absent")

	_, err = user.Parse(ctx, map[string]any{"id": "u_1"})
	is := veld.AsIssues(err)
	require.Len(t, is, 1)
	require.Equal(t, veld.CodeMissingField, is[0].Code)
	require.Equal(t, ".name", is[0].Path.String())
}

func TestObject_FieldIssues_Accumulate(t *testing.T) {
	ctx := context.Background()
	user := userBuilder().MustBuild()

	_, err := user.Parse(ctx, map[string]any{"id": "", "name": "", "age": -1.0})
	is := veld.AsIssues(err)
	require.Len(t, is, 3, "all field failures reported: %v", is)

	_, err = user.Parse(veld.WithFailFast(ctx), map[string]any{"id": "", "name": ""})
	require.Len(t, veld.AsIssues(err), 1, "fail-fast stops at first field")
}

func TestObject_UnknownPolicies(t *testing.T) {
	ctx := context.Background()
	in := map[string]any{"id": "1", "name": "n", "extra": true, "zz": 1.0}

	strip := userBuilder().MustBuild()
	v, err := strip.Parse(ctx, in)
	require.NoError(t, err)
	require.NotContains(t, v, "extra")

	pass := userBuilder().Passthrough().MustBuild()
	v, err = pass.Parse(ctx, in)
	require.NoError(t, err)
	require.Equal(t, true, v["extra"])

	strict := userBuilder().Strict().MustBuild()
	_, err = strict.Parse(ctx, in)
	is := veld.AsIssues(err)
	require.Len(t, is, 2)
	// Unknown keys are reported in sorted order.
	require.Equal(t, ".extra", is[0].Path.String())
	require.Equal(t, `Unrecognized field: extra`, is[0].Message)
	require.Equal(t, ".zz", is[1].Path.String())
}

func TestObject_Catchall_OverridesStrict(t *testing.T) {
	ctx := context.Background()
	s := userBuilder().Strict().Catchall(dsl.Number()).MustBuild()

	v, err := s.Parse(ctx, map[string]any{"id": "1", "name": "n", "extra": 5.0})
	require.NoError(t, err, "catchall wins over strict")
	require.Equal(t, 5.0, v["extra"])

	_, err = s.Parse(ctx, map[string]any{"id": "1", "name": "n", "extra": "x"})
	is := veld.AsIssues(err)
	require.Len(t, is, 1)
	require.Equal(t, ".extra", is[0].Path.String())
	require.Equal(t, veld.CodeInvalidType, is[0].Code)
}

func TestObject_NonObjectInput(t *testing.T) {
	ctx := context.Background()
	_, err := userBuilder().MustBuild().Parse(ctx, []any{})
	is := veld.AsIssues(err)
	require.Len(t, is, 1)
	require.Equal(t, veld.CodeInvalidType, is[0].Code)
	require.Equal(t, "Expected object, received array", is[0].Message)
}

func TestObject_Partial_And_RequiredAll(t *testing.T) {
	ctx := context.Background()
	partial := userBuilder().Partial().MustBuild()
	v, err := partial.Parse(ctx, map[string]any{})
	require.NoError(t, err, "partial tolerates everything missing")
	require.NotContains(t, v, "id")

	back := userBuilder().Partial().RequiredAll().MustBuild()
	_, err = back.Parse(ctx, map[string]any{})
	is := veld.AsIssues(err)
	// Optional wrappers are stripped; the age default still applies.
	require.Len(t, is, 3)
	for _, it := range is {
		require.Equal(t, veld.CodeMissingField, it.Code)
	}
}

func TestObject_DeepPartial(t *testing.T) {
	ctx := context.Background()
	profile := dsl.Object().
		Field("user", dsl.Object().
			Field("name", dsl.String()).
			Field("email", dsl.String().Email()).
			MustBuild()).
		DeepPartial().
		MustBuild()

	// Nested required fields become optional too.
	_, err := profile.Parse(ctx, map[string]any{"user": map[string]any{}})
	require.NoError(t, err)
	// Present nested values are still validated.
	_, err = profile.Parse(ctx, map[string]any{"user": map[string]any{"email": "bad"}})
	is := veld.AsIssues(err)
	require.Len(t, is, 1)
	require.Equal(t, ".user.email", is[0].Path.String())
}

func TestObject_PickOmitExtendMerge(t *testing.T) {
	ctx := context.Background()

	idOnly := userBuilder().Pick("id").MustBuild()
	_, err := idOnly.Parse(ctx, map[string]any{"id": "1"})
	require.NoError(t, err)
	require.Equal(t, []string{"id"}, idOnly.Keys())

	_, err = userBuilder().Pick("nope").Build()
	require.Error(t, err, "picking an undeclared field fails the build")

	noAge := userBuilder().Omit("age", "nickname").MustBuild()
	require.Equal(t, []string{"id", "name"}, noAge.Keys())

	extended := userBuilder().Extend(dsl.Object().
		Field("email", dsl.String().Email()).
		Field("name", dsl.String().Min(10))).
		MustBuild()
	require.Equal(t, []string{"id", "name", "nickname", "age", "email"}, extended.Keys())
	// Colliding field takes the extension's schema.
	_, err = extended.Parse(ctx, map[string]any{"id": "1", "name": "short", "email": "a@b.co"})
	require.Error(t, err)

	merged := userBuilder().Strict().Merge(dsl.Object().Field("email", dsl.String()).Passthrough()).MustBuild()
	v, err := merged.Parse(ctx, map[string]any{"id": "1", "name": "n", "email": "e", "free": 1.0})
	require.NoError(t, err, "merge adopts the other side's unknown policy")
	require.Contains(t, v, "free")
}

func TestObject_Keyof(t *testing.T) {
	ctx := context.Background()
	keys := userBuilder().Keyof()
	_, err := keys.Parse(ctx, "nickname")
	require.NoError(t, err)
	_, err = keys.Parse(ctx, "unknown")
	require.Error(t, err)
}

func TestObject_When(t *testing.T) {
	ctx := context.Background()
	s := dsl.Object().
		Field("kind", dsl.Enum("card", "bank")).
		OptionalField("card_number", dsl.String()).
		When("card_number", func(v map[string]any) bool {
			if v["kind"] != "card" {
				return true
			}
			_, ok := v["card_number"]
			return ok
		}, "card_number is required for card payments").
		MustBuild()

	_, err := s.Parse(ctx, map[string]any{"kind": "bank"})
	require.NoError(t, err)
	_, err = s.Parse(ctx, map[string]any{"kind": "card"})
	is := veld.AsIssues(err)
	require.Len(t, is, 1)
	require.Equal(t, ".card_number", is[0].Path.String())
	require.Equal(t, "card_number is required for card payments", is[0].Message)
}

type account struct {
	ID    string   `json:"id"`
	Name  string   `json:"name"`
	Age   float64  `json:"age"`
	Email string   `json:"email"`
	Tags  []string `json:"tags"`
}

func TestBind(t *testing.T) {
	ctx := context.Background()
	schema := dsl.MustBind[account](dsl.Object().
		Field("id", dsl.String().UUID()).
		Field("name", dsl.String().Min(1)).
		Field("age", dsl.Default(dsl.Number().Int(), 21)).
		Field("email", dsl.String().Email()).
		OptionalField("tags", dsl.Array(dsl.String())))

	v, err := schema.Parse(ctx, map[string]any{
		"id":    "123e4567-e89b-12d3-a456-426614174000",
		"name":  "Rei",
		"email": "rei@example.com",
		"tags":  []any{"a", "b"},
	})
	require.NoError(t, err)
	require.Equal(t, "Rei", v.Name)
	require.Equal(t, float64(21), v.Age)
	require.Equal(t, []string{"a", "b"}, v.Tags)

	_, err = schema.Parse(ctx, map[string]any{"id": "nope", "name": "", "email": "x"})
	require.Error(t, err)
	require.GreaterOrEqual(t, len(veld.AsIssues(err)), 3)
}
