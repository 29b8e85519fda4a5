package veld

import (
	"errors"
	"fmt"
	"strings"
)

// Issue codes. These are stable identifiers: messages may be overridden
// per check, but the code attached to a failure never changes.
const (
	CodeInvalidType        = "invalid_type"
	CodeTooSmall           = "too_small"
	CodeTooBig             = "too_big"
	CodeInvalidEmail       = "invalid_email"
	CodeInvalidURL         = "invalid_url"
	CodeInvalidUUID        = "invalid_uuid"
	CodeInvalidRegex       = "invalid_regex"
	CodeInvalidString      = "invalid_string"
	CodeInvalidIPv4        = "invalid_ipv4"
	CodeInvalidIPv6        = "invalid_ipv6"
	CodeInvalidBase64      = "invalid_base64"
	CodeInvalidDate        = "invalid_date"
	CodeInvalidTime        = "invalid_time"
	CodeInvalidDateTime    = "invalid_datetime"
	CodeInvalidDuration    = "invalid_duration"
	CodeInvalidHostname    = "invalid_hostname"
	CodeInvalidCUID2       = "invalid_cuid2"
	CodeInvalidULID        = "invalid_ulid"
	CodeInvalidNanoID      = "invalid_nanoid"
	CodeInvalidEmoji       = "invalid_emoji"
	CodeInvalidJSONString  = "invalid_json_string"
	CodeNotInt             = "not_int"
	CodeNotSafe            = "not_safe"
	CodeNotFinite          = "not_finite"
	CodeNotMultipleOf      = "not_multiple_of"
	CodeInvalidLiteral     = "invalid_literal"
	CodeInvalidEnumValue   = "invalid_enum_value"
	CodeMissingField       = "missing_field"
	CodeUnrecognizedField  = "unrecognized_field"
	CodeInvalidUnion       = "invalid_union"
	CodeInvalidDiscrim     = "invalid_discriminator"
	CodeInvalidMapEntry    = "invalid_map_entry"
	CodeInvalidTupleLength = "invalid_tuple_length"
	CodeInvalidSet         = "invalid_set"
	CodeCustom             = "custom"
	CodeParseError         = "parse_error"
)

// Issue is a single validation failure. Path locates the failing value
// within the input; Params carries machine-readable details (bounds,
// expected values, option lists) keyed per code.
type Issue struct {
	Code    string         `json:"code"`
	Message string         `json:"message"`
	Path    Path           `json:"path,omitempty"`
	Params  map[string]any `json:"params,omitempty"`
}

func (i Issue) String() string {
	if len(i.Path) == 0 {
		return fmt.Sprintf("%s: %s", i.Code, i.Message)
	}
	return fmt.Sprintf("%s at %s: %s", i.Code, i.Path.String(), i.Message)
}

// Issues is a non-empty list of validation failures. It implements error
// so schema results flow through the standard error idiom.
type Issues []Issue

func (is Issues) Error() string {
	switch len(is) {
	case 0:
		return "validation failed"
	case 1:
		return is[0].String()
	default:
		return fmt.Sprintf("%s (and %d more issues)", is[0].String(), len(is)-1)
	}
}

// AsIssues extracts an Issues value from err. Non-Issues errors are wrapped
// as a single parse_error issue so callers always see the same shape.
func AsIssues(err error) Issues {
	if err == nil {
		return nil
	}
	var is Issues
	if errors.As(err, &is) {
		return is
	}
	return Issues{{Code: CodeParseError, Message: err.Error()}}
}

// AppendIssues merges the issues carried by err into dst.
func AppendIssues(dst Issues, err error) Issues {
	if err == nil {
		return dst
	}
	return append(dst, AsIssues(err)...)
}

// PrefixField rebases every issue in err under the given object field.
func PrefixField(err error, name string) Issues {
	return prefixSeg(err, Field(name))
}

// PrefixIndex rebases every issue in err under the given array index.
func PrefixIndex(err error, i int) Issues {
	return prefixSeg(err, Index(i))
}

// PrefixPath rebases every issue in err under the given path.
func PrefixPath(err error, p Path) Issues {
	is := AsIssues(err)
	out := make(Issues, len(is))
	for i, it := range is {
		np := make(Path, 0, len(p)+len(it.Path))
		np = append(np, p...)
		np = append(np, it.Path...)
		it.Path = np
		out[i] = it
	}
	return out
}

func prefixSeg(err error, seg Segment) Issues {
	is := AsIssues(err)
	out := make(Issues, len(is))
	for i, it := range is {
		np := make(Path, 0, len(it.Path)+1)
		np = append(np, seg)
		np = append(np, it.Path...)
		it.Path = np
		out[i] = it
	}
	return out
}

// Messages returns the rendered message of every issue, in order.
func (is Issues) Messages() []string {
	out := make([]string, len(is))
	for i, it := range is {
		out[i] = it.Message
	}
	return out
}

// Filter returns the issues matching the given code.
func (is Issues) Filter(code string) Issues {
	var out Issues
	for _, it := range is {
		if it.Code == code {
			out = append(out, it)
		}
	}
	return out
}

// JoinQuoted renders option lists for enum and discriminator messages.
func JoinQuoted(opts []string) string {
	q := make([]string, len(opts))
	for i, o := range opts {
		q[i] = fmt.Sprintf("%q", o)
	}
	return strings.Join(q, ", ")
}
