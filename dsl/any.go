package dsl

import (
	"context"

	js "github.com/veldkit/veld/jsonschema"
)

// AnySchema accepts every input unchanged, including null.
type AnySchema struct{}

// Any starts a schema that accepts anything.
func Any() *AnySchema { return &AnySchema{} }

// Parse implements veld.Schema[any].
func (s *AnySchema) Parse(ctx context.Context, v any) (any, error) { return v, nil }

func (s *AnySchema) ParseAny(ctx context.Context, v any) (any, error) { return v, nil }

// JSONSchema implements veld.Schema[any]. The empty schema accepts
// anything.
func (s *AnySchema) JSONSchema() (*js.Schema, error) { return &js.Schema{}, nil }

func (s *AnySchema) toleratesMissing() bool { return true }
