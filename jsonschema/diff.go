package jsonschema

import (
	"fmt"
	"reflect"
	"sort"
	"strings"
)

// ChangeKind classifies a schema change by its effect on existing
// consumers.
type ChangeKind int

const (
	// NonBreaking covers additive or relaxing changes: new optional
	// fields, widened bounds, removed constraints.
	NonBreaking ChangeKind = iota
	// Breaking covers removals and tightened constraints: removed fields,
	// new required fields, narrowed bounds, type changes.
	Breaking
)

func (k ChangeKind) String() string {
	if k == Breaking {
		return "BREAKING"
	}
	return "non-breaking"
}

// Change is a single difference between two schemas.
type Change struct {
	// Path locates the changed element, dot-separated
	// ("properties.email.format").
	Path string
	Kind ChangeKind
	// Description is human-readable.
	Description string
}

func (c Change) String() string {
	return fmt.Sprintf("[%s] %s: %s", c.Kind, c.Path, c.Description)
}

// Changes is the result of diffing two schemas.
type Changes []Change

// HasBreaking reports whether any breaking change was detected.
func (cs Changes) HasBreaking() bool {
	for _, c := range cs {
		if c.Kind == Breaking {
			return true
		}
	}
	return false
}

// Breaking returns only the breaking changes.
func (cs Changes) Breaking() Changes {
	return cs.filter(Breaking)
}

// NonBreaking returns only the non-breaking changes.
func (cs Changes) NonBreaking() Changes {
	return cs.filter(NonBreaking)
}

func (cs Changes) filter(kind ChangeKind) Changes {
	var out Changes
	for _, c := range cs {
		if c.Kind == kind {
			out = append(out, c)
		}
	}
	return out
}

func (cs Changes) String() string {
	if len(cs) == 0 {
		return "No changes detected."
	}
	var b strings.Builder
	for _, c := range cs {
		b.WriteString(c.String())
		b.WriteByte('\n')
	}
	return b.String()
}

// Diff compares two projected schemas and lists the differences, each
// classified as breaking or non-breaking. Intended for API versioning:
// run it over the old and new projections to see whether a change will
// reject inputs the old schema accepted.
//
// The comparison covers type, required, properties, the numeric and size
// bounds, format, pattern, enum, items and additionalProperties.
func Diff(old, new *Schema) Changes {
	var changes Changes
	diffSchema(old, new, "", &changes)
	return changes
}

func diffSchema(old, new *Schema, path string, changes *Changes) {
	if old == nil || new == nil {
		return
	}
	if old.Type != new.Type {
		*changes = append(*changes, Change{
			Path:        joinPath(path, "type"),
			Kind:        Breaking,
			Description: fmt.Sprintf("Type changed from %s to %s", orNone(old.Type), orNone(new.Type)),
		})
		// Sub-properties of different types are not comparable.
		return
	}

	diffRequired(old, new, path, changes)
	diffProperties(old, new, path, changes)

	diffIntBound(old.MinLength, new.MinLength, path, "minLength", true, changes)
	diffIntBound(old.MaxLength, new.MaxLength, path, "maxLength", false, changes)
	diffIntBound(old.MinItems, new.MinItems, path, "minItems", true, changes)
	diffIntBound(old.MaxItems, new.MaxItems, path, "maxItems", false, changes)
	diffIntBound(old.MinProperties, new.MinProperties, path, "minProperties", true, changes)
	diffIntBound(old.MaxProperties, new.MaxProperties, path, "maxProperties", false, changes)
	diffFloatBound(old.Minimum, new.Minimum, path, "minimum", true, changes)
	diffFloatBound(old.Maximum, new.Maximum, path, "maximum", false, changes)
	diffFloatBound(old.ExclusiveMinimum, new.ExclusiveMinimum, path, "exclusiveMinimum", true, changes)
	diffFloatBound(old.ExclusiveMaximum, new.ExclusiveMaximum, path, "exclusiveMaximum", false, changes)

	if old.Format != new.Format {
		kind := Breaking
		if new.Format == "" {
			kind = NonBreaking
		}
		*changes = append(*changes, Change{
			Path:        joinPath(path, "format"),
			Kind:        kind,
			Description: fmt.Sprintf("Format changed from %s to %s", orNone(old.Format), orNone(new.Format)),
		})
	}

	if old.Pattern != new.Pattern {
		kind := Breaking
		if new.Pattern == "" {
			kind = NonBreaking
		}
		*changes = append(*changes, Change{
			Path:        joinPath(path, "pattern"),
			Kind:        kind,
			Description: fmt.Sprintf("Pattern changed from %s to %s", orNone(old.Pattern), orNone(new.Pattern)),
		})
	}

	diffEnum(old, new, path, changes)

	if old.Items != nil && new.Items != nil {
		diffSchema(old.Items, new.Items, joinPath(path, "items"), changes)
	}

	diffAdditionalProperties(old, new, path, changes)
}

func diffRequired(old, new *Schema, path string, changes *Changes) {
	oldReq := stringSet(old.Required)
	newReq := stringSet(new.Required)

	for _, name := range sortedKeys(newReq) {
		if oldReq[name] {
			continue
		}
		*changes = append(*changes, Change{
			Path:        joinPath(path, fmt.Sprintf("required[%s]", name)),
			Kind:        Breaking,
			Description: fmt.Sprintf("Field %q is now required", name),
		})
	}
	for _, name := range sortedKeys(oldReq) {
		if newReq[name] {
			continue
		}
		// A removed property is reported by diffProperties instead.
		if new.Properties != nil {
			if _, ok := new.Properties[name]; !ok {
				continue
			}
		}
		*changes = append(*changes, Change{
			Path:        joinPath(path, fmt.Sprintf("required[%s]", name)),
			Kind:        NonBreaking,
			Description: fmt.Sprintf("Field %q is no longer required", name),
		})
	}
}

func diffProperties(old, new *Schema, path string, changes *Changes) {
	switch {
	case old.Properties == nil && new.Properties == nil:
		return
	case old.Properties != nil && new.Properties == nil:
		*changes = append(*changes, Change{
			Path:        joinPath(path, "properties"),
			Kind:        Breaking,
			Description: "Properties removed entirely",
		})
		return
	case old.Properties == nil:
		*changes = append(*changes, Change{
			Path:        joinPath(path, "properties"),
			Kind:        NonBreaking,
			Description: "Properties added",
		})
		return
	}

	newReq := stringSet(new.Required)

	for _, key := range sortedPropKeys(old.Properties) {
		if _, ok := new.Properties[key]; !ok {
			*changes = append(*changes, Change{
				Path:        joinPath(path, "properties."+key),
				Kind:        Breaking,
				Description: fmt.Sprintf("Property %q removed", key),
			})
		}
	}
	for _, key := range sortedPropKeys(new.Properties) {
		if _, ok := old.Properties[key]; !ok {
			kind := NonBreaking
			if newReq[key] {
				kind = Breaking
			}
			*changes = append(*changes, Change{
				Path:        joinPath(path, "properties."+key),
				Kind:        kind,
				Description: fmt.Sprintf("Property %q added", key),
			})
		}
	}
	for _, key := range sortedPropKeys(old.Properties) {
		if nv, ok := new.Properties[key]; ok {
			diffSchema(old.Properties[key], nv, joinPath(path, "properties."+key), changes)
		}
	}
}

func diffIntBound(old, new *int, path, key string, lower bool, changes *Changes) {
	var ov, nv *float64
	if old != nil {
		ov = FloatPtr(float64(*old))
	}
	if new != nil {
		nv = FloatPtr(float64(*new))
	}
	diffFloatBound(ov, nv, path, key, lower, changes)
}

func diffFloatBound(old, new *float64, path, key string, lower bool, changes *Changes) {
	switch {
	case old != nil && new != nil:
		if *old == *new {
			return
		}
		tightened := *new > *old
		if !lower {
			tightened = *new < *old
		}
		kind := NonBreaking
		if tightened {
			kind = Breaking
		}
		*changes = append(*changes, Change{
			Path:        joinPath(path, key),
			Kind:        kind,
			Description: fmt.Sprintf("%s changed from %v to %v", key, *old, *new),
		})
	case old == nil && new != nil:
		*changes = append(*changes, Change{
			Path:        joinPath(path, key),
			Kind:        Breaking,
			Description: fmt.Sprintf("%s constraint added: %v", key, *new),
		})
	case old != nil:
		*changes = append(*changes, Change{
			Path:        joinPath(path, key),
			Kind:        NonBreaking,
			Description: fmt.Sprintf("%s constraint removed (was %v)", key, *old),
		})
	}
}

func diffEnum(old, new *Schema, path string, changes *Changes) {
	switch {
	case old.Enum == nil && new.Enum == nil:
		return
	case old.Enum == nil:
		*changes = append(*changes, Change{
			Path:        joinPath(path, "enum"),
			Kind:        Breaking,
			Description: "Enum constraint added",
		})
		return
	case new.Enum == nil:
		*changes = append(*changes, Change{
			Path:        joinPath(path, "enum"),
			Kind:        NonBreaking,
			Description: "Enum constraint removed",
		})
		return
	}

	oldSet := enumSet(old.Enum)
	newSet := enumSet(new.Enum)
	for _, v := range sortedKeys(oldSet) {
		if !newSet[v] {
			*changes = append(*changes, Change{
				Path:        joinPath(path, "enum"),
				Kind:        Breaking,
				Description: fmt.Sprintf("Enum value %s removed", v),
			})
		}
	}
	for _, v := range sortedKeys(newSet) {
		if !oldSet[v] {
			*changes = append(*changes, Change{
				Path:        joinPath(path, "enum"),
				Kind:        NonBreaking,
				Description: fmt.Sprintf("Enum value %s added", v),
			})
		}
	}
}

func diffAdditionalProperties(old, new *Schema, path string, changes *Changes) {
	if reflect.DeepEqual(old.AdditionalProperties, new.AdditionalProperties) {
		return
	}
	kind := NonBreaking
	switch {
	case old.AdditionalProperties == true && new.AdditionalProperties == false:
		kind = Breaking
	case old.AdditionalProperties == nil && new.AdditionalProperties == false:
		kind = Breaking
	}
	*changes = append(*changes, Change{
		Path:        joinPath(path, "additionalProperties"),
		Kind:        kind,
		Description: fmt.Sprintf("additionalProperties changed from %s to %s", renderAP(old.AdditionalProperties), renderAP(new.AdditionalProperties)),
	})
}

func stringSet(in []string) map[string]bool {
	out := make(map[string]bool, len(in))
	for _, s := range in {
		out[s] = true
	}
	return out
}

func enumSet(in []any) map[string]bool {
	out := make(map[string]bool, len(in))
	for _, v := range in {
		out[fmt.Sprintf("%v", v)] = true
	}
	return out
}

func sortedKeys(m map[string]bool) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

func sortedPropKeys(m map[string]*Schema) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

func joinPath(base, segment string) string {
	if base == "" {
		return segment
	}
	return base + "." + segment
}

func orNone(s string) string {
	if s == "" {
		return "(none)"
	}
	return s
}

func renderAP(v any) string {
	switch v := v.(type) {
	case nil:
		return "(none)"
	case bool:
		return fmt.Sprintf("%v", v)
	default:
		return "(schema)"
	}
}
