package jsonschema_test

import (
	"testing"

	"github.com/stretchr/testify/require"
	js "github.com/veldkit/veld/jsonschema"
)

func TestDiff_RequiredAndProperties(t *testing.T) {
	old := &js.Schema{
		Type:     "object",
		Required: []string{"name", "email"},
		Properties: map[string]*js.Schema{
			"name":  {Type: "string"},
			"email": {Type: "string", Format: "email"},
		},
	}
	new := &js.Schema{
		Type:     "object",
		Required: []string{"name", "email", "age"},
		Properties: map[string]*js.Schema{
			"name":  {Type: "string"},
			"email": {Type: "string"},
			"age":   {Type: "integer"},
		},
	}

	changes := js.Diff(old, new)
	require.True(t, changes.HasBreaking())

	paths := make(map[string]js.ChangeKind, len(changes))
	for _, c := range changes {
		paths[c.Path] = c.Kind
	}
	require.Equal(t, js.Breaking, paths["required[age]"])
	require.Equal(t, js.Breaking, paths["properties.age"])
	// Dropping a format relaxes the schema.
	require.Equal(t, js.NonBreaking, paths["properties.email.format"])
}

func TestDiff_TypeChangeStopsDescent(t *testing.T) {
	old := &js.Schema{Type: "string", MinLength: js.IntPtr(3)}
	new := &js.Schema{Type: "number", Minimum: js.FloatPtr(3)}

	changes := js.Diff(old, new)
	require.Len(t, changes, 1)
	require.Equal(t, "type", changes[0].Path)
	require.Equal(t, js.Breaking, changes[0].Kind)
}

func TestDiff_Bounds(t *testing.T) {
	old := &js.Schema{Type: "string", MinLength: js.IntPtr(1), MaxLength: js.IntPtr(20)}
	new := &js.Schema{Type: "string", MinLength: js.IntPtr(3), MaxLength: js.IntPtr(30)}

	changes := js.Diff(old, new)
	require.Len(t, changes, 2)
	// Raising a lower bound tightens, raising an upper bound relaxes.
	require.Equal(t, "minLength", changes[0].Path)
	require.Equal(t, js.Breaking, changes[0].Kind)
	require.Equal(t, "maxLength", changes[1].Path)
	require.Equal(t, js.NonBreaking, changes[1].Kind)

	removed := js.Diff(&js.Schema{Type: "number", Minimum: js.FloatPtr(0)}, &js.Schema{Type: "number"})
	require.Len(t, removed, 1)
	require.Equal(t, js.NonBreaking, removed[0].Kind)
}

func TestDiff_Enum(t *testing.T) {
	old := &js.Schema{Type: "string", Enum: []any{"a", "b"}}
	new := &js.Schema{Type: "string", Enum: []any{"b", "c"}}

	changes := js.Diff(old, new)
	require.Len(t, changes, 2)
	require.True(t, changes.HasBreaking())
	require.Len(t, changes.Breaking(), 1)
	require.Len(t, changes.NonBreaking(), 1)
}

func TestDiff_AdditionalPropertiesAndItems(t *testing.T) {
	old := &js.Schema{Type: "object", AdditionalProperties: true}
	new := &js.Schema{Type: "object", AdditionalProperties: false}
	changes := js.Diff(old, new)
	require.Len(t, changes, 1)
	require.Equal(t, js.Breaking, changes[0].Kind)

	old = &js.Schema{Type: "array", Items: &js.Schema{Type: "string"}}
	new = &js.Schema{Type: "array", Items: &js.Schema{Type: "string", Pattern: "^x"}}
	changes = js.Diff(old, new)
	require.Len(t, changes, 1)
	require.Equal(t, "items.pattern", changes[0].Path)
	require.Equal(t, js.Breaking, changes[0].Kind)
}

func TestDiff_NoChanges(t *testing.T) {
	s := &js.Schema{Type: "string", MinLength: js.IntPtr(1)}
	changes := js.Diff(s, s.Clone())
	require.Empty(t, changes)
	require.Equal(t, "No changes detected.", changes.String())
}
