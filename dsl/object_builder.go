package dsl

import (
	"context"
	"fmt"

	veld "github.com/veldkit/veld"
	js "github.com/veldkit/veld/jsonschema"
)

// ObjectBuilder declares object fields and policies, then builds an
// ObjectSchema. Field declares required fields; wrap the schema in
// Optional/Default (or use OptionalField) to tolerate absence.
type ObjectBuilder struct {
	fields   map[string]veld.AnySchema
	order    []string
	unknown  UnknownPolicy
	catchall veld.AnySchema
	checks   []objectCheck
	err      error
}

// Object starts a new object builder with the Strip unknown-key policy.
func Object() *ObjectBuilder {
	return &ObjectBuilder{fields: map[string]veld.AnySchema{}}
}

// Field declares a field. Declaring the same name twice is a build error.
func (b *ObjectBuilder) Field(name string, schema veld.AnySchema) *ObjectBuilder {
	if _, dup := b.fields[name]; dup {
		if b.err == nil {
			b.err = fmt.Errorf("duplicate field %q", name)
		}
		return b
	}
	b.fields[name] = schema
	b.order = append(b.order, name)
	return b
}

// OptionalField declares a field whose absence (or null) yields no entry
// in the output.
func (b *ObjectBuilder) OptionalField(name string, schema veld.AnySchema) *ObjectBuilder {
	return b.Field(name, anyOptional{inner: schema})
}

// Strict reports unrecognized_field for unknown keys.
func (b *ObjectBuilder) Strict() *ObjectBuilder {
	b.unknown = UnknownStrict
	return b
}

// Passthrough copies unknown keys into the output unvalidated.
func (b *ObjectBuilder) Passthrough() *ObjectBuilder {
	b.unknown = UnknownPassthrough
	return b
}

// Strip drops unknown keys. This is the default policy.
func (b *ObjectBuilder) Strip() *ObjectBuilder {
	b.unknown = UnknownStrip
	return b
}

// Catchall validates unknown keys with the given schema. It overrides the
// unknown-key policy.
func (b *ObjectBuilder) Catchall(schema veld.AnySchema) *ObjectBuilder {
	b.catchall = schema
	return b
}

// Check attaches an object-level validation callback, run only when all
// fields parsed cleanly.
func (b *ObjectBuilder) Check(fn func(ctx context.Context, v map[string]any, c *IssueCollector)) *ObjectBuilder {
	b.checks = append(b.checks, fn)
	return b
}

// When attaches a cross-field rule: if pred fails, a custom issue with
// msg is reported at the named field.
func (b *ObjectBuilder) When(field string, pred func(v map[string]any) bool, msg string) *ObjectBuilder {
	return b.Check(func(_ context.Context, v map[string]any, c *IssueCollector) {
		if !pred(v) {
			c.AddField(field, msg)
		}
	})
}

// Build finalizes the schema.
func (b *ObjectBuilder) Build() (*ObjectSchema, error) {
	if b.err != nil {
		return nil, b.err
	}
	return &ObjectSchema{
		fields:   b.fields,
		order:    b.order,
		unknown:  b.unknown,
		catchall: b.catchall,
		checks:   b.checks,
	}, nil
}

// MustBuild is Build panicking on error, for statically known shapes.
func (b *ObjectBuilder) MustBuild() *ObjectSchema {
	s, err := b.Build()
	if err != nil {
		panic(err)
	}
	return s
}

func (b *ObjectBuilder) clone() *ObjectBuilder {
	nb := &ObjectBuilder{
		fields:   make(map[string]veld.AnySchema, len(b.fields)),
		order:    append([]string(nil), b.order...),
		unknown:  b.unknown,
		catchall: b.catchall,
		checks:   append([]objectCheck(nil), b.checks...),
		err:      b.err,
	}
	for k, v := range b.fields {
		nb.fields[k] = v
	}
	return nb
}

// Partial returns a builder where every field tolerates absence.
func (b *ObjectBuilder) Partial() *ObjectBuilder {
	nb := b.clone()
	for k, s := range nb.fields {
		nb.fields[k] = makeOptionalAny(s)
	}
	return nb
}

// DeepPartial is Partial applied recursively to nested object schemas.
func (b *ObjectBuilder) DeepPartial() *ObjectBuilder {
	nb := b.clone()
	for k, s := range nb.fields {
		nb.fields[k] = makeOptionalAny(deepPartialAny(s))
	}
	return nb
}

func deepPartialAny(s veld.AnySchema) veld.AnySchema {
	switch x := s.(type) {
	case anyOptional:
		return anyOptional{inner: deepPartialAny(x.inner)}
	case *ObjectSchema:
		nested := &ObjectSchema{
			fields:   make(map[string]veld.AnySchema, len(x.fields)),
			order:    append([]string(nil), x.order...),
			unknown:  x.unknown,
			catchall: x.catchall,
			checks:   x.checks,
		}
		for k, f := range x.fields {
			nested.fields[k] = makeOptionalAny(deepPartialAny(f))
		}
		return nested
	default:
		return s
	}
}

// RequiredAll returns a builder where every field is required again,
// stripping Optional wrappers added by hand or by Partial.
func (b *ObjectBuilder) RequiredAll() *ObjectBuilder {
	nb := b.clone()
	for k, s := range nb.fields {
		nb.fields[k] = unwrapOptionalAny(s)
	}
	return nb
}

// Pick keeps only the named fields. Unknown names are a build error.
func (b *ObjectBuilder) Pick(names ...string) *ObjectBuilder {
	nb := b.clone()
	keep := make(map[string]bool, len(names))
	for _, n := range names {
		if _, ok := nb.fields[n]; !ok && nb.err == nil {
			nb.err = fmt.Errorf("pick: unknown field %q", n)
		}
		keep[n] = true
	}
	fields := make(map[string]veld.AnySchema, len(names))
	var order []string
	for _, n := range nb.order {
		if keep[n] {
			fields[n] = nb.fields[n]
			order = append(order, n)
		}
	}
	nb.fields, nb.order = fields, order
	return nb
}

// Omit removes the named fields.
func (b *ObjectBuilder) Omit(names ...string) *ObjectBuilder {
	nb := b.clone()
	drop := make(map[string]bool, len(names))
	for _, n := range names {
		drop[n] = true
	}
	fields := make(map[string]veld.AnySchema, len(nb.fields))
	var order []string
	for _, n := range nb.order {
		if !drop[n] {
			fields[n] = nb.fields[n]
			order = append(order, n)
		}
	}
	nb.fields, nb.order = fields, order
	return nb
}

// Extend adds fields from other; colliding names take other's schema.
// Unknown-key policy and checks of the receiver are kept.
func (b *ObjectBuilder) Extend(other *ObjectBuilder) *ObjectBuilder {
	nb := b.clone()
	for _, n := range other.order {
		if _, exists := nb.fields[n]; !exists {
			nb.order = append(nb.order, n)
		}
		nb.fields[n] = other.fields[n]
	}
	if other.err != nil && nb.err == nil {
		nb.err = other.err
	}
	return nb
}

// Merge is Extend that also takes other's unknown-key policy, catchall
// and checks.
func (b *ObjectBuilder) Merge(other *ObjectBuilder) *ObjectBuilder {
	nb := b.Extend(other)
	nb.unknown = other.unknown
	nb.catchall = other.catchall
	nb.checks = append(nb.checks, other.checks...)
	return nb
}

// Keyof returns an enum over the declared field names.
func (b *ObjectBuilder) Keyof() *EnumSchema {
	return Enum(b.order...)
}

// anyOptional is the untyped optional wrapper used for object fields.
type anyOptional struct {
	inner veld.AnySchema
}

func (a anyOptional) ParseAny(ctx context.Context, v any) (any, error) {
	if v == nil {
		return nil, nil
	}
	return a.inner.ParseAny(ctx, v)
}

func (a anyOptional) JSONSchema() (*js.Schema, error) {
	in, err := a.inner.JSONSchema()
	if err != nil {
		return nil, err
	}
	return &js.Schema{OneOf: []*js.Schema{in, {Type: "null"}}}, nil
}

func (a anyOptional) toleratesMissing() bool { return true }

// optionalUnwrapper lets typed Optional wrappers expose their inner
// schema to RequiredAll.
type optionalUnwrapper interface {
	unwrapOptional() veld.AnySchema
}

func makeOptionalAny(s veld.AnySchema) veld.AnySchema {
	if acceptsMissing(s) {
		return s
	}
	return anyOptional{inner: s}
}

func unwrapOptionalAny(s veld.AnySchema) veld.AnySchema {
	switch x := s.(type) {
	case anyOptional:
		return unwrapOptionalAny(x.inner)
	case optionalUnwrapper:
		return unwrapOptionalAny(x.unwrapOptional())
	default:
		return s
	}
}
