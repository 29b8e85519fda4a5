package veld

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"

	"github.com/goccy/go-json"
)

// CodeDuplicateKey is reported by the strict JSON entry points when an
// object repeats a key. Plain ParseJSON follows last-wins decoding.
const CodeDuplicateKey = "duplicate_key"

// DetectDuplicateKeys token-scans a JSON document and reports every
// repeated object key at its path. maxIssues < 0 means unlimited.
func DetectDuplicateKeys(data []byte, maxIssues int) (Issues, error) {
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()

	type frame struct {
		isObject bool
		seen     map[string]bool
		key      Segment
		hasKey   bool
		index    int
	}
	var stack []frame
	var issues Issues

	currentPath := func() Path {
		var p Path
		for _, f := range stack {
			if f.isObject {
				if f.hasKey {
					p = append(p, f.key)
				}
			} else {
				p = append(p, Index(f.index))
			}
		}
		return p
	}

	for {
		tok, err := dec.Token()
		if err != nil {
			if errors.Is(err, io.EOF) {
				break
			}
			return issues, fmt.Errorf("scan JSON: %w", err)
		}
		top := -1
		if len(stack) > 0 {
			top = len(stack) - 1
		}

		switch t := tok.(type) {
		case json.Delim:
			switch t {
			case '{':
				stack = append(stack, frame{isObject: true, seen: map[string]bool{}})
			case '[':
				stack = append(stack, frame{})
			case '}', ']':
				stack = stack[:len(stack)-1]
				if n := len(stack) - 1; n >= 0 {
					if stack[n].isObject {
						stack[n].hasKey = false
					} else {
						stack[n].index++
					}
				}
			}
			continue
		case string:
			if top >= 0 && stack[top].isObject && !stack[top].hasKey {
				if stack[top].seen[t] {
					issues = append(issues, Issue{
						Code:    CodeDuplicateKey,
						Message: fmt.Sprintf("Duplicate object key: %q", t),
						Path:    append(currentPath(), Field(t)),
						Params:  map[string]any{"key": t},
					})
					if maxIssues >= 0 && len(issues) >= maxIssues {
						return issues, nil
					}
				}
				stack[top].seen[t] = true
				stack[top].key = Field(t)
				stack[top].hasKey = true
				continue
			}
		}
		// A value token completes the pending key or array slot.
		if top >= 0 {
			if stack[top].isObject {
				stack[top].hasKey = false
			} else {
				stack[top].index++
			}
		}
	}
	return issues, nil
}

// ParseJSONStrict is ParseJSON that additionally rejects documents with
// duplicate object keys.
func ParseJSONStrict[T any](ctx context.Context, s Schema[T], data []byte) (T, error) {
	var zero T
	dups, err := DetectDuplicateKeys(data, -1)
	if err != nil {
		return zero, Issues{{Code: CodeParseError, Message: err.Error()}}
	}
	if len(dups) > 0 {
		return zero, dups
	}
	return ParseJSON(ctx, s, data)
}
