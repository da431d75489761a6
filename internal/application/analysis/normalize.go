package analysis

import (
	"fmt"
	"strconv"
	"strings"
)

// NotSpecified is the placeholder for promised text fields the provider left out.
const NotSpecified = "Not specified"

// fields is a parsed provider object with tolerant, defaulting accessors.
// Every accessor returns a usable value; none of them panic.
type fields map[string]any

func (f fields) str(key, def string) string {
	switch v := f[key].(type) {
	case string:
		if strings.TrimSpace(v) == "" {
			return def
		}
		return v
	case float64:
		return strconv.FormatFloat(v, 'f', -1, 64)
	case bool:
		return strconv.FormatBool(v)
	}
	return def
}

func (f fields) num(key string, def float64) float64 {
	switch v := f[key].(type) {
	case float64:
		return v
	case string:
		if n, err := strconv.ParseFloat(strings.TrimSpace(strings.TrimSuffix(v, "%")), 64); err == nil {
			return n
		}
	}
	return def
}

// strs accepts an array of strings (non-strings are stringified, blanks
// dropped) or a single string. Missing yields an empty, non-nil slice.
func (f fields) strs(key string) []string {
	out := []string{}
	switch v := f[key].(type) {
	case []any:
		for _, item := range v {
			switch s := item.(type) {
			case string:
				if strings.TrimSpace(s) != "" {
					out = append(out, s)
				}
			case float64:
				out = append(out, strconv.FormatFloat(s, 'f', -1, 64))
			}
		}
	case string:
		if strings.TrimSpace(v) != "" {
			out = append(out, v)
		}
	}
	return out
}

func (f fields) obj(key string) fields {
	if m, ok := f[key].(map[string]any); ok {
		return fields(m)
	}
	return fields{}
}

func (f fields) objs(key string) []fields {
	arr, ok := f[key].([]any)
	if !ok {
		return nil
	}
	out := make([]fields, 0, len(arr))
	for _, item := range arr {
		if m, ok := item.(map[string]any); ok {
			out = append(out, fields(m))
		}
	}
	return out
}

// id returns the item's id or the generated "<kind>_<index+1>".
func (f fields) id(kind string, index int) string {
	return f.str("id", seqID(kind, index))
}

func seqID(kind string, index int) string {
	return fmt.Sprintf("%s_%d", kind, index+1)
}

// orDefault fills blank request strings before they reach templates.
func orDefault(s, def string) string {
	if strings.TrimSpace(s) == "" {
		return def
	}
	return s
}
