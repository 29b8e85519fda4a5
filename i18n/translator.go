// Package i18n holds the default message catalog for issue codes and a
// tiny template renderer. Messages interpolate {name} placeholders from
// the issue's params.
package i18n

import (
	"fmt"
	"strings"
)

// Translator renders a message for an issue key. Keys are either a bare
// issue code ("invalid_email") or a code qualified by the value kind that
// produced it ("too_small.string").
type Translator interface {
	T(key string, params map[string]any) string
}

type dictTranslator struct {
	dict map[string]string
}

func (d dictTranslator) T(key string, params map[string]any) string {
	tmpl, ok := d.dict[key]
	if !ok {
		// Fall back to the unqualified code.
		if i := strings.IndexByte(key, '.'); i >= 0 {
			if t2, ok2 := d.dict[key[:i]]; ok2 {
				tmpl = t2
				ok = true
			}
		}
	}
	if !ok {
		return "Invalid input"
	}
	return interpolate(tmpl, params)
}

func interpolate(tmpl string, params map[string]any) string {
	if len(params) == 0 || !strings.ContainsRune(tmpl, '{') {
		return tmpl
	}
	out := tmpl
	for k, v := range params {
		out = strings.ReplaceAll(out, "{"+k+"}", fmt.Sprintf("%v", v))
	}
	return out
}

var defaultEN = dictTranslator{dict: map[string]string{
	"invalid_type": "Expected {expected}, received {received}",

	"too_small.string": "String must be at least {min} characters",
	"too_big.string":   "String must be at most {max} characters",
	"too_small.number": "Number must be at least {min}",
	"too_big.number":   "Number must be at most {max}",
	"too_small.gt":     "Number must be greater than {min}",
	"too_big.lt":       "Number must be less than {max}",
	"too_small.array":  "Array must contain at least {min} elements",
	"too_big.array":    "Array must contain at most {max} elements",
	"too_small.set":    "Set must contain at least {min} elements",
	"too_big.set":      "Set must contain at most {max} elements",
	"too_small.map":    "Map must contain at least {min} entries",
	"too_big.map":      "Map must contain at most {max} entries",
	"too_small.record": "Record must have at least {min} keys",
	"too_big.record":   "Record must have at most {max} keys",
	"too_small.date":   "Date must be on or after {min}",
	"too_big.date":     "Date must be on or before {max}",

	"invalid_email":       "Invalid email address",
	"invalid_url":         "Invalid URL",
	"invalid_uuid":        "Invalid UUID",
	"invalid_regex":       "String does not match pattern {pattern}",
	"invalid_string":      "Invalid string",
	"invalid_ipv4":        "Invalid IPv4 address",
	"invalid_ipv6":        "Invalid IPv6 address",
	"invalid_base64":      "Invalid base64 string",
	"invalid_date":        "Invalid date, expected YYYY-MM-DD",
	"invalid_time":        "Invalid time, expected HH:MM:SS",
	"invalid_datetime":    "Invalid datetime, expected an ISO 8601 timestamp",
	"invalid_duration":    "Invalid duration",
	"invalid_hostname":    "Invalid hostname",
	"invalid_cuid2":       "Invalid CUID2",
	"invalid_ulid":        "Invalid ULID",
	"invalid_nanoid":      "Invalid Nano ID",
	"invalid_emoji":       "Invalid emoji",
	"invalid_json_string": "Invalid JSON string",

	"not_int":         "Number must be an integer",
	"not_safe":        "Number must be a safe integer",
	"not_finite":      "Number must be finite",
	"not_multiple_of": "Number must be a multiple of {multipleOf}",

	"invalid_literal":    "Invalid literal value, expected {expected}",
	"invalid_enum_value": "Invalid enum value, expected one of: {options}",

	"missing_field":      "Missing required field",
	"unrecognized_field": "Unrecognized field: {key}",

	"invalid_union":         "Input did not match any variant of the union",
	"invalid_discriminator": "Invalid discriminator value, expected one of: {options}",
	"missing_discriminator": "Missing discriminator field {field}",

	"invalid_map_entry":    "Each Map entry must be a [key, value] array of length 2",
	"invalid_tuple_length": "Expected tuple of {expected} elements, received {received}",
	"invalid_set":          "Invalid set",

	"custom":      "Invalid input",
	"parse_error": "Failed to parse input",
}}

var active Translator = defaultEN

// T renders the message for key with the default translator.
func T(key string, params map[string]any) string {
	return active.T(key, params)
}

// SetTranslator swaps the active translator. Intended for applications that
// ship their own catalogs; not safe for concurrent mutation with parsing.
func SetTranslator(t Translator) {
	if t == nil {
		active = defaultEN
		return
	}
	active = t
}

// Default returns the built-in English translator.
func Default() Translator { return defaultEN }
