package dsl

import (
	"context"
	"fmt"
	"regexp"
	"strings"
	"unicode/utf8"

	veld "github.com/veldkit/veld"
	"github.com/veldkit/veld/i18n"
	js "github.com/veldkit/veld/jsonschema"
)

// StringSchema validates string inputs. Checks run in declaration order
// after transforms (Trim, ToLower, ToUpper) have been applied, and all
// failing checks are reported unless the context is fail-fast.
type StringSchema struct {
	coerce     bool
	transforms []func(string) string
	checks     []stringCheck
}

type stringCheck struct {
	run     func(s string) *veld.Issue
	project func(out *js.Schema)
	message string
}

// String starts a string schema.
func String() *StringSchema { return &StringSchema{} }

// Coerce stringifies numeric and boolean inputs before validation.
func (s *StringSchema) Coerce() *StringSchema {
	s.coerce = true
	return s
}

// Trim trims surrounding whitespace before checks run.
func (s *StringSchema) Trim() *StringSchema {
	s.transforms = append(s.transforms, strings.TrimSpace)
	return s
}

// ToLower lowercases the value before checks run.
func (s *StringSchema) ToLower() *StringSchema {
	s.transforms = append(s.transforms, strings.ToLower)
	return s
}

// ToUpper uppercases the value before checks run.
func (s *StringSchema) ToUpper() *StringSchema {
	s.transforms = append(s.transforms, strings.ToUpper)
	return s
}

// Message overrides the message of the most recently added check.
func (s *StringSchema) Message(msg string) *StringSchema {
	if n := len(s.checks); n > 0 {
		s.checks[n-1].message = msg
	}
	return s
}

func (s *StringSchema) addCheck(run func(string) *veld.Issue, project func(*js.Schema)) *StringSchema {
	s.checks = append(s.checks, stringCheck{run: run, project: project})
	return s
}

// Min requires at least n characters (runes).
func (s *StringSchema) Min(n int) *StringSchema {
	return s.addCheck(func(v string) *veld.Issue {
		if utf8.RuneCountInString(v) < n {
			is := sizeIssue(veld.CodeTooSmall, "string", map[string]any{"min": n})
			return &is
		}
		return nil
	}, func(out *js.Schema) { out.MinLength = js.IntPtr(n) })
}

// Max allows at most n characters (runes).
func (s *StringSchema) Max(n int) *StringSchema {
	return s.addCheck(func(v string) *veld.Issue {
		if utf8.RuneCountInString(v) > n {
			is := sizeIssue(veld.CodeTooBig, "string", map[string]any{"max": n})
			return &is
		}
		return nil
	}, func(out *js.Schema) { out.MaxLength = js.IntPtr(n) })
}

// Length requires exactly n characters (runes).
func (s *StringSchema) Length(n int) *StringSchema {
	return s.addCheck(func(v string) *veld.Issue {
		c := utf8.RuneCountInString(v)
		if c == n {
			return nil
		}
		code := veld.CodeTooSmall
		if c > n {
			code = veld.CodeTooBig
		}
		return &veld.Issue{
			Code:    code,
			Message: fmt.Sprintf("String must be exactly %d characters", n),
			Params:  map[string]any{"length": n},
		}
	}, func(out *js.Schema) {
		out.MinLength = js.IntPtr(n)
		out.MaxLength = js.IntPtr(n)
	})
}

// NonEmpty is shorthand for Min(1).
func (s *StringSchema) NonEmpty() *StringSchema { return s.Min(1) }

// Pattern requires the value to match re.
func (s *StringSchema) Pattern(re *regexp.Regexp) *StringSchema {
	return s.addCheck(func(v string) *veld.Issue {
		if !re.MatchString(v) {
			return &veld.Issue{
				Code:    veld.CodeInvalidRegex,
				Message: i18n.T(veld.CodeInvalidRegex, map[string]any{"pattern": re.String()}),
				Params:  map[string]any{"pattern": re.String()},
			}
		}
		return nil
	}, func(out *js.Schema) { out.Pattern = re.String() })
}

// StartsWith requires the given prefix.
func (s *StringSchema) StartsWith(prefix string) *StringSchema {
	return s.addCheck(func(v string) *veld.Issue {
		if !strings.HasPrefix(v, prefix) {
			return &veld.Issue{
				Code:    veld.CodeInvalidString,
				Message: fmt.Sprintf("String must start with %q", prefix),
				Params:  map[string]any{"startsWith": prefix},
			}
		}
		return nil
	}, func(out *js.Schema) { out.Pattern = "^" + regexp.QuoteMeta(prefix) })
}

// EndsWith requires the given suffix.
func (s *StringSchema) EndsWith(suffix string) *StringSchema {
	return s.addCheck(func(v string) *veld.Issue {
		if !strings.HasSuffix(v, suffix) {
			return &veld.Issue{
				Code:    veld.CodeInvalidString,
				Message: fmt.Sprintf("String must end with %q", suffix),
				Params:  map[string]any{"endsWith": suffix},
			}
		}
		return nil
	}, func(out *js.Schema) { out.Pattern = regexp.QuoteMeta(suffix) + "$" })
}

// Contains requires the given substring.
func (s *StringSchema) Contains(sub string) *StringSchema {
	return s.addCheck(func(v string) *veld.Issue {
		if !strings.Contains(v, sub) {
			return &veld.Issue{
				Code:    veld.CodeInvalidString,
				Message: fmt.Sprintf("String must contain %q", sub),
				Params:  map[string]any{"contains": sub},
			}
		}
		return nil
	}, nil)
}

func (s *StringSchema) formatCheck(code, format string, ok func(string) bool) *StringSchema {
	return s.addCheck(func(v string) *veld.Issue {
		if !ok(v) {
			return &veld.Issue{Code: code, Message: i18n.T(code, nil)}
		}
		return nil
	}, func(out *js.Schema) {
		if format != "" {
			out.Format = format
		}
	})
}

// Email validates the value as an email address.
func (s *StringSchema) Email() *StringSchema {
	return s.formatCheck(veld.CodeInvalidEmail, "email", isEmail)
}

// URL requires an absolute http or https URL.
func (s *StringSchema) URL() *StringSchema {
	return s.formatCheck(veld.CodeInvalidURL, "uri", isURL)
}

// UUID validates the canonical 8-4-4-4-12 form.
func (s *StringSchema) UUID() *StringSchema {
	return s.formatCheck(veld.CodeInvalidUUID, "uuid", isUUID)
}

// IPv4 validates dotted-quad notation without leading zeros.
func (s *StringSchema) IPv4() *StringSchema {
	return s.formatCheck(veld.CodeInvalidIPv4, "ipv4", isIPv4)
}

// IPv6 validates colon-hex notation, including the :: shorthand.
func (s *StringSchema) IPv6() *StringSchema {
	return s.formatCheck(veld.CodeInvalidIPv6, "ipv6", isIPv6)
}

// Base64 validates standard base64 with padding.
func (s *StringSchema) Base64() *StringSchema {
	return s.formatCheck(veld.CodeInvalidBase64, "", isBase64)
}

// Hostname validates RFC 1123 hostnames.
func (s *StringSchema) Hostname() *StringSchema {
	return s.formatCheck(veld.CodeInvalidHostname, "hostname", isHostname)
}

// CUID2 validates CUID2 identifiers.
func (s *StringSchema) CUID2() *StringSchema {
	return s.formatCheck(veld.CodeInvalidCUID2, "", isCUID2)
}

// ULID validates 26-character Crockford base32 ULIDs.
func (s *StringSchema) ULID() *StringSchema {
	return s.formatCheck(veld.CodeInvalidULID, "", isULID)
}

// NanoID validates Nano ID identifiers.
func (s *StringSchema) NanoID() *StringSchema {
	return s.formatCheck(veld.CodeInvalidNanoID, "", isNanoID)
}

// Emoji requires every rune to be an emoji codepoint.
func (s *StringSchema) Emoji() *StringSchema {
	return s.formatCheck(veld.CodeInvalidEmoji, "", isEmoji)
}

// ISODate validates calendar dates in YYYY-MM-DD form.
func (s *StringSchema) ISODate() *StringSchema {
	return s.formatCheck(veld.CodeInvalidDate, "date", isISODate)
}

// ISOTime validates clock times in HH:MM[:SS[.fraction]] form.
func (s *StringSchema) ISOTime() *StringSchema {
	return s.formatCheck(veld.CodeInvalidTime, "time", isISOTime)
}

// ISODateTime validates ISO 8601 timestamps with optional offset.
func (s *StringSchema) ISODateTime() *StringSchema {
	return s.formatCheck(veld.CodeInvalidDateTime, "date-time", isISODateTime)
}

// Duration validates Go duration literals such as "1h30m".
func (s *StringSchema) Duration() *StringSchema {
	return s.formatCheck(veld.CodeInvalidDuration, "duration", isDuration)
}

// JSON requires the value to be a valid JSON document.
func (s *StringSchema) JSON() *StringSchema {
	return s.formatCheck(veld.CodeInvalidJSONString, "", isJSONString)
}

// Parse implements veld.Schema[string].
func (s *StringSchema) Parse(ctx context.Context, v any) (string, error) {
	if s.coerce {
		switch v.(type) {
		case string:
		case bool:
			v = fmt.Sprintf("%v", v)
		default:
			if f, ok := veld.NumberValue(v); ok {
				v = veld.RenderNumber(f)
			}
		}
	}
	str, ok := v.(string)
	if !ok {
		return "", invalidType("string", v)
	}
	for _, tr := range s.transforms {
		str = tr(str)
	}
	var issues veld.Issues
	for _, c := range s.checks {
		if is := c.run(str); is != nil {
			if c.message != "" {
				is.Message = c.message
			}
			issues = append(issues, *is)
			if veld.IsFailFast(ctx) {
				break
			}
		}
	}
	if len(issues) > 0 {
		return "", issues
	}
	return str, nil
}

func (s *StringSchema) ParseAny(ctx context.Context, v any) (any, error) {
	return parseAsAny[string](ctx, s, v)
}

// JSONSchema implements veld.Schema[string].
func (s *StringSchema) JSONSchema() (*js.Schema, error) {
	out := &js.Schema{Type: "string"}
	for _, c := range s.checks {
		if c.project != nil {
			c.project(out)
		}
	}
	return out, nil
}
