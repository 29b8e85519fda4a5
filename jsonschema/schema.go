package jsonschema

// Schema is the JSON Schema representation produced by projection.
// Only the vocabulary the validators actually emit is modeled.
type Schema struct {
	// Core
	Type        string `json:"type,omitempty"`
	Format      string `json:"format,omitempty"`
	Title       string `json:"title,omitempty"`
	Description string `json:"description,omitempty"`
	Default     any    `json:"default,omitempty"`
	Const       any    `json:"const,omitempty"`
	Enum        []any  `json:"enum,omitempty"`

	// String
	MinLength *int   `json:"minLength,omitempty"`
	MaxLength *int   `json:"maxLength,omitempty"`
	Pattern   string `json:"pattern,omitempty"`

	// Number
	Minimum          *float64 `json:"minimum,omitempty"`
	Maximum          *float64 `json:"maximum,omitempty"`
	ExclusiveMinimum *float64 `json:"exclusiveMinimum,omitempty"`
	ExclusiveMaximum *float64 `json:"exclusiveMaximum,omitempty"`
	MultipleOf       *float64 `json:"multipleOf,omitempty"`

	// Object
	Properties           map[string]*Schema `json:"properties,omitempty"`
	Required             []string           `json:"required,omitempty"`
	AdditionalProperties any                `json:"additionalProperties,omitempty"`
	PropertyNames        *Schema            `json:"propertyNames,omitempty"`
	MinProperties        *int               `json:"minProperties,omitempty"`
	MaxProperties        *int               `json:"maxProperties,omitempty"`

	// Array
	Items       *Schema   `json:"items,omitempty"`
	PrefixItems []*Schema `json:"prefixItems,omitempty"`
	MinItems    *int      `json:"minItems,omitempty"`
	MaxItems    *int      `json:"maxItems,omitempty"`
	UniqueItems bool      `json:"uniqueItems,omitempty"`

	// Composition
	OneOf []*Schema `json:"oneOf,omitempty"`
	AllOf []*Schema `json:"allOf,omitempty"`
	AnyOf []*Schema `json:"anyOf,omitempty"`
}

// IntPtr and FloatPtr are small helpers for the pointer-valued bounds.
func IntPtr(i int) *int { return &i }

func FloatPtr(f float64) *float64 { return &f }

// Clone deep-copies the schema. Projection of derived schemas mutates the
// inner projection; cloning keeps the source schema's output stable.
func (s *Schema) Clone() *Schema {
	if s == nil {
		return nil
	}
	out := *s
	if s.MinLength != nil {
		out.MinLength = IntPtr(*s.MinLength)
	}
	if s.MaxLength != nil {
		out.MaxLength = IntPtr(*s.MaxLength)
	}
	if s.Minimum != nil {
		out.Minimum = FloatPtr(*s.Minimum)
	}
	if s.Maximum != nil {
		out.Maximum = FloatPtr(*s.Maximum)
	}
	if s.ExclusiveMinimum != nil {
		out.ExclusiveMinimum = FloatPtr(*s.ExclusiveMinimum)
	}
	if s.ExclusiveMaximum != nil {
		out.ExclusiveMaximum = FloatPtr(*s.ExclusiveMaximum)
	}
	if s.MultipleOf != nil {
		out.MultipleOf = FloatPtr(*s.MultipleOf)
	}
	if s.MinItems != nil {
		out.MinItems = IntPtr(*s.MinItems)
	}
	if s.MaxItems != nil {
		out.MaxItems = IntPtr(*s.MaxItems)
	}
	if s.MinProperties != nil {
		out.MinProperties = IntPtr(*s.MinProperties)
	}
	if s.MaxProperties != nil {
		out.MaxProperties = IntPtr(*s.MaxProperties)
	}
	if s.Properties != nil {
		out.Properties = make(map[string]*Schema, len(s.Properties))
		for k, v := range s.Properties {
			out.Properties[k] = v.Clone()
		}
	}
	if s.Required != nil {
		out.Required = append([]string(nil), s.Required...)
	}
	if s.Enum != nil {
		out.Enum = append([]any(nil), s.Enum...)
	}
	if ap, ok := s.AdditionalProperties.(*Schema); ok {
		out.AdditionalProperties = ap.Clone()
	}
	out.PropertyNames = s.PropertyNames.Clone()
	out.Items = s.Items.Clone()
	if s.PrefixItems != nil {
		out.PrefixItems = cloneList(s.PrefixItems)
	}
	if s.OneOf != nil {
		out.OneOf = cloneList(s.OneOf)
	}
	if s.AllOf != nil {
		out.AllOf = cloneList(s.AllOf)
	}
	if s.AnyOf != nil {
		out.AnyOf = cloneList(s.AnyOf)
	}
	return &out
}

func cloneList(in []*Schema) []*Schema {
	out := make([]*Schema, len(in))
	for i, s := range in {
		out[i] = s.Clone()
	}
	return out
}
