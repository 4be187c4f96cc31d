package utils

import (
	"strings" // String building
	"unicode" // Rune classes
)

// CamelToSnake rewrites a camelCase key to snake_case: "targetFrequencyId" -> "target_frequency_id".
// Each upper case letter becomes "_" plus its lower case form.
func CamelToSnake(key string) string {
	var b strings.Builder
	b.Grow(len(key) + 4)
	for _, r := range key {
		if unicode.IsUpper(r) {
			b.WriteByte('_')
			b.WriteRune(unicode.ToLower(r))
			continue
		}
		b.WriteRune(r)
	}
	return b.String()
}

// SnakeCaseKeys returns v with every object key, at any depth, converted by CamelToSnake.
// Values that are not objects or arrays are returned unchanged.
func SnakeCaseKeys(v any) any {
	switch t := v.(type) {
	case map[string]any:
		out := make(map[string]any, len(t))
		for k, val := range t {
			out[CamelToSnake(k)] = SnakeCaseKeys(val)
		}
		return out
	case []any:
		out := make([]any, len(t))
		for i, val := range t {
			out[i] = SnakeCaseKeys(val)
		}
		return out
	default:
		return v
	}
}
