package dsl_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/veldkit/veld/dsl"
	js "github.com/veldkit/veld/jsonschema"
)

func TestJSONSchema_String(t *testing.T) {
	p, err := dsl.String().Min(3).Max(20).Email().JSONSchema()
	require.NoError(t, err)
	require.Equal(t, "string", p.Type)
	require.Equal(t, 3, *p.MinLength)
	require.Equal(t, 20, *p.MaxLength)
	require.Equal(t, "email", p.Format)
}

func TestJSONSchema_Number(t *testing.T) {
	p, err := dsl.Number().Int().Min(0).Lt(100).MultipleOf(5).JSONSchema()
	require.NoError(t, err)
	require.Equal(t, "integer", p.Type)
	require.Equal(t, 0.0, *p.Minimum)
	require.Equal(t, 100.0, *p.ExclusiveMaximum)
	require.Equal(t, 5.0, *p.MultipleOf)
}

func TestJSONSchema_LiteralEnumAny(t *testing.T) {
	p, err := dsl.Literal("on").JSONSchema()
	require.NoError(t, err)
	require.Equal(t, "on", p.Const)

	p, err = dsl.Enum("a", "b").JSONSchema()
	require.NoError(t, err)
	require.Equal(t, []any{"a", "b"}, p.Enum)

	p, err = dsl.Any().JSONSchema()
	require.NoError(t, err)
	require.Equal(t, "", p.Type, "any projects to the empty schema")
}

func TestJSONSchema_ModifierLayers(t *testing.T) {
	p, err := dsl.Optional(dsl.String()).JSONSchema()
	require.NoError(t, err)
	require.Len(t, p.OneOf, 2)
	require.Equal(t, "string", p.OneOf[0].Type)
	require.Equal(t, "null", p.OneOf[1].Type)

	p, err = dsl.Default(dsl.Number(), 5).JSONSchema()
	require.NoError(t, err)
	require.Equal(t, 5.0, p.Default)

	p, err = dsl.Describe(dsl.Bool(), "feature flag").JSONSchema()
	require.NoError(t, err)
	require.Equal(t, "feature flag", p.Description)

	// Transform projects its input side.
	p, err = dsl.Transform(dsl.String().Min(1), func(_ context.Context, v string) (int, error) {
		return len(v), nil
	}).JSONSchema()
	require.NoError(t, err)
	require.Equal(t, "string", p.Type)
}

func TestJSONSchema_Object(t *testing.T) {
	p, err := userBuilder().Strict().MustBuild().JSONSchema()
	require.NoError(t, err)
	require.Equal(t, "object", p.Type)
	require.Equal(t, []string{"id", "name"}, p.Required)
	require.Equal(t, false, p.AdditionalProperties)
	require.Contains(t, p.Properties, "nickname")
	require.Len(t, p.Properties["nickname"].OneOf, 2)
	require.Equal(t, 18.0, p.Properties["age"].Default)

	p, err = userBuilder().Catchall(dsl.Number()).MustBuild().JSONSchema()
	require.NoError(t, err)
	require.Equal(t, "number", p.AdditionalProperties.(*js.Schema).Type)
}

func TestJSONSchema_Collections(t *testing.T) {
	p, err := dsl.Array(dsl.String()).Min(1).Max(5).JSONSchema()
	require.NoError(t, err)
	require.Equal(t, "array", p.Type)
	require.Equal(t, "string", p.Items.Type)
	require.Equal(t, 1, *p.MinItems)
	require.Equal(t, 5, *p.MaxItems)

	p, err = dsl.Tuple(dsl.Number(), dsl.String()).JSONSchema()
	require.NoError(t, err)
	require.Len(t, p.PrefixItems, 2)
	require.Equal(t, 2, *p.MinItems)
	require.Equal(t, 2, *p.MaxItems)

	p, err = dsl.Set(dsl.Number()).JSONSchema()
	require.NoError(t, err)
	require.True(t, p.UniqueItems)

	p, err = dsl.Record(dsl.Number()).KeySchema(dsl.String().Pattern(upperSnake)).MinKeys(1).MaxKeys(8).JSONSchema()
	require.NoError(t, err)
	require.Equal(t, "number", p.AdditionalProperties.(*js.Schema).Type)
	require.NotNil(t, p.PropertyNames)
	require.Equal(t, 1, *p.MinProperties)
	require.Equal(t, 8, *p.MaxProperties)
}

func TestJSONSchema_Algebraic(t *testing.T) {
	p, err := dsl.Union(dsl.String(), dsl.Number()).JSONSchema()
	require.NoError(t, err)
	require.Len(t, p.OneOf, 2)

	p, err = dsl.Intersection[map[string]any, map[string]any](
		dsl.Object().Field("a", dsl.String()).MustBuild(),
		dsl.Object().Field("b", dsl.String()).MustBuild(),
	).JSONSchema()
	require.NoError(t, err)
	require.Len(t, p.AllOf, 2)

	p, err = eventSchema().JSONSchema()
	require.NoError(t, err)
	require.Len(t, p.OneOf, 2)
}
