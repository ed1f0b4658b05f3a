// Package llmjson pulls a JSON array out of free-form model output and
// decodes it. It is the only place model text is turned into structured data.
package llmjson

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/heartmarshall/formcraft-backend/internal/domain"
)

// ExtractArray returns the text between the first '[' and the last ']' of raw.
// Leading prose, trailing commentary and markdown fences are tolerated.
func ExtractArray(stage, raw string) (string, error) {
	start := strings.Index(raw, "[")
	end := strings.LastIndex(raw, "]")
	if start == -1 || end == -1 || end <= start {
		return "", Malformed(stage, "no JSON array found", raw)
	}
	return raw[start : end+1], nil
}

// DecodeArray extracts a JSON array from raw and decodes it into []T.
// Any failure is a *domain.MalformedOutputError.
func DecodeArray[T any](stage, raw string) ([]T, error) {
	text, err := ExtractArray(stage, raw)
	if err != nil {
		return nil, err
	}

	var out []T
	if err := json.Unmarshal([]byte(text), &out); err != nil {
		return nil, Malformed(stage, fmt.Sprintf("invalid JSON: %v", err), raw)
	}
	return out, nil
}

// Parse is DecodeArray followed by validate. A validation failure is reported
// as malformed output for the same stage.
func Parse[T any](stage, raw string, validate func([]T) error) ([]T, error) {
	items, err := DecodeArray[T](stage, raw)
	if err != nil {
		return nil, err
	}
	if validate != nil {
		if err := validate(items); err != nil {
			return nil, Malformed(stage, err.Error(), raw)
		}
	}
	return items, nil
}

// Malformed builds the typed error for model output that cannot be used.
func Malformed(stage, reason, raw string) *domain.MalformedOutputError {
	return &domain.MalformedOutputError{Stage: stage, Reason: reason, Raw: raw}
}
