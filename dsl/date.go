package dsl

import (
	"context"
	"time"

	veld "github.com/veldkit/veld"
	"github.com/veldkit/veld/i18n"
	js "github.com/veldkit/veld/jsonschema"
)

const dateLayout = "2006-01-02"

// DateSchema parses "YYYY-MM-DD" strings into time.Time values at
// midnight UTC.
type DateSchema struct {
	min, max *time.Time
	minMsg   string
	maxMsg   string
}

// Date starts a calendar-date schema.
func Date() *DateSchema { return &DateSchema{} }

// Min sets an inclusive lower bound.
func (s *DateSchema) Min(t time.Time) *DateSchema {
	u := t.UTC()
	s.min = &u
	return s
}

// Max sets an inclusive upper bound.
func (s *DateSchema) Max(t time.Time) *DateSchema {
	u := t.UTC()
	s.max = &u
	return s
}

// MinMessage overrides the lower-bound message.
func (s *DateSchema) MinMessage(msg string) *DateSchema {
	s.minMsg = msg
	return s
}

// MaxMessage overrides the upper-bound message.
func (s *DateSchema) MaxMessage(msg string) *DateSchema {
	s.maxMsg = msg
	return s
}

// Parse implements veld.Schema[time.Time].
func (s *DateSchema) Parse(ctx context.Context, v any) (time.Time, error) {
	str, ok := v.(string)
	if !ok {
		return time.Time{}, invalidType("string", v)
	}
	t, err := time.Parse(dateLayout, str)
	if err != nil {
		return time.Time{}, veld.Issues{{
			Code:    veld.CodeInvalidDate,
			Message: i18n.T(veld.CodeInvalidDate, nil),
		}}
	}
	var issues veld.Issues
	if s.min != nil && t.Before(*s.min) {
		is := sizeIssue(veld.CodeTooSmall, "date", map[string]any{"min": s.min.Format(dateLayout)})
		if s.minMsg != "" {
			is.Message = s.minMsg
		}
		issues = append(issues, is)
	}
	if s.max != nil && t.After(*s.max) && !(veld.IsFailFast(ctx) && len(issues) > 0) {
		is := sizeIssue(veld.CodeTooBig, "date", map[string]any{"max": s.max.Format(dateLayout)})
		if s.maxMsg != "" {
			is.Message = s.maxMsg
		}
		issues = append(issues, is)
	}
	if len(issues) > 0 {
		return time.Time{}, issues
	}
	return t, nil
}

func (s *DateSchema) ParseAny(ctx context.Context, v any) (any, error) {
	return parseAsAny[time.Time](ctx, s, v)
}

// JSONSchema implements veld.Schema[time.Time].
func (s *DateSchema) JSONSchema() (*js.Schema, error) {
	return &js.Schema{Type: "string", Format: "date"}, nil
}

// DateTimeSchema parses ISO 8601 timestamps into UTC time.Time values.
// RFC 3339 is tried first; a naive timestamp without offset is assumed
// to be UTC.
type DateTimeSchema struct {
	min, max *time.Time
}

// DateTime starts a timestamp schema.
func DateTime() *DateTimeSchema { return &DateTimeSchema{} }

// Min sets an inclusive lower bound.
func (s *DateTimeSchema) Min(t time.Time) *DateTimeSchema {
	u := t.UTC()
	s.min = &u
	return s
}

// Max sets an inclusive upper bound.
func (s *DateTimeSchema) Max(t time.Time) *DateTimeSchema {
	u := t.UTC()
	s.max = &u
	return s
}

var naiveLayouts = []string{
	"2006-01-02T15:04:05.999999999",
	"2006-01-02T15:04:05",
	"2006-01-02T15:04",
}

// Parse implements veld.Schema[time.Time].
func (s *DateTimeSchema) Parse(ctx context.Context, v any) (time.Time, error) {
	str, ok := v.(string)
	if !ok {
		return time.Time{}, invalidType("string", v)
	}
	t, err := time.Parse(time.RFC3339Nano, str)
	if err != nil {
		for _, layout := range naiveLayouts {
			if t, err = time.ParseInLocation(layout, str, time.UTC); err == nil {
				break
			}
		}
	}
	if err != nil {
		return time.Time{}, veld.Issues{{
			Code:    veld.CodeInvalidDateTime,
			Message: i18n.T(veld.CodeInvalidDateTime, nil),
		}}
	}
	t = t.UTC()
	var issues veld.Issues
	if s.min != nil && t.Before(*s.min) {
		issues = append(issues, sizeIssue(veld.CodeTooSmall, "date", map[string]any{"min": s.min.Format(time.RFC3339)}))
	}
	if s.max != nil && t.After(*s.max) && !(veld.IsFailFast(ctx) && len(issues) > 0) {
		issues = append(issues, sizeIssue(veld.CodeTooBig, "date", map[string]any{"max": s.max.Format(time.RFC3339)}))
	}
	if len(issues) > 0 {
		return time.Time{}, issues
	}
	return t, nil
}

func (s *DateTimeSchema) ParseAny(ctx context.Context, v any) (any, error) {
	return parseAsAny[time.Time](ctx, s, v)
}

// JSONSchema implements veld.Schema[time.Time].
func (s *DateTimeSchema) JSONSchema() (*js.Schema, error) {
	return &js.Schema{Type: "string", Format: "date-time"}, nil
}
