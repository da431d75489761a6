package analysis

import (
	"encoding/json"
	"fmt"
	"strings"

	domain "github.com/bryanwahyu/venture-studio/internal/domain/analysis"
)

// ExtractJSON pulls the JSON object out of a free-text provider reply.
//
// The span from the first '{' to the last '}' is tried first; that covers
// bare JSON, code fences and prose around a single object. When that span
// does not parse (e.g. a stray '}' in trailing prose) the first balanced,
// string-aware object is tried instead. Anything else is
// ErrExtractionFailure.
func ExtractJSON(raw string) (map[string]any, error) {
	start := strings.IndexByte(raw, '{')
	end := strings.LastIndexByte(raw, '}')
	if start < 0 || end <= start {
		return nil, fmt.Errorf("%w: no braces", domain.ErrExtractionFailure)
	}

	if obj, err := decodeObject(raw[start : end+1]); err == nil {
		return obj, nil
	}

	if span, ok := balancedObject(raw[start:]); ok {
		if obj, err := decodeObject(span); err == nil {
			return obj, nil
		}
	}
	return nil, fmt.Errorf("%w: unparseable span", domain.ErrExtractionFailure)
}

func decodeObject(s string) (map[string]any, error) {
	var obj map[string]any
	if err := json.Unmarshal([]byte(s), &obj); err != nil {
		return nil, err
	}
	if obj == nil {
		return nil, fmt.Errorf("null object")
	}
	return obj, nil
}

// balancedObject returns the first complete {...} in s, which must start
// with '{'. Braces inside string literals are ignored.
func balancedObject(s string) (string, bool) {
	depth := 0
	inString := false
	escaped := false

	for i := 0; i < len(s); i++ {
		c := s[i]
		if escaped {
			escaped = false
			continue
		}
		if inString {
			switch c {
			case '\\':
				escaped = true
			case '"':
				inString = false
			}
			continue
		}
		switch c {
		case '"':
			inString = true
		case '{':
			depth++
		case '}':
			depth--
			if depth == 0 {
				return s[:i+1], true
			}
		}
	}
	return "", false
}
