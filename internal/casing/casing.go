// Package casing converts record keys between the camelCase used by the UI
// and the snake_case used by the remote store.
package casing

import (
	"strings"
	"unicode"
)

// ToSnake inserts an underscore before every upper-case ASCII letter and
// lowers it: "quotationPrice" -> "quotation_price", "remarksAI" -> "remarks_a_i".
func ToSnake(s string) string {
	var b strings.Builder
	b.Grow(len(s) + 4)
	for _, r := range s {
		if r >= 'A' && r <= 'Z' {
			b.WriteByte('_')
			b.WriteRune(unicode.ToLower(r))
			continue
		}
		b.WriteRune(r)
	}
	return b.String()
}

// ToCamel removes every underscore that precedes a lower-case ASCII letter
// and upper-cases that letter. Other underscores are kept.
func ToCamel(s string) string {
	var b strings.Builder
	b.Grow(len(s))
	runes := []rune(s)
	for i := 0; i < len(runes); i++ {
		r := runes[i]
		if r == '_' && i+1 < len(runes) && runes[i+1] >= 'a' && runes[i+1] <= 'z' {
			b.WriteRune(unicode.ToUpper(runes[i+1]))
			i++
			continue
		}
		b.WriteRune(r)
	}
	return b.String()
}

// KeysToSnake returns a copy of v with every map key converted by ToSnake,
// recursing through nested maps and slices. Scalars are returned unchanged.
func KeysToSnake(v interface{}) interface{} {
	return convertKeys(v, ToSnake)
}

// KeysToCamel is the inverse of KeysToSnake
func KeysToCamel(v interface{}) interface{} {
	return convertKeys(v, ToCamel)
}

// MapToSnake converts the keys of a record map
func MapToSnake(m map[string]interface{}) map[string]interface{} {
	if m == nil {
		return nil
	}
	return convertKeys(m, ToSnake).(map[string]interface{})
}

// MapToCamel converts the keys of a record map
func MapToCamel(m map[string]interface{}) map[string]interface{} {
	if m == nil {
		return nil
	}
	return convertKeys(m, ToCamel).(map[string]interface{})
}

func convertKeys(v interface{}, fn func(string) string) interface{} {
	switch val := v.(type) {
	case map[string]interface{}:
		out := make(map[string]interface{}, len(val))
		for k, item := range val {
			out[fn(k)] = convertKeys(item, fn)
		}
		return out
	case []interface{}:
		out := make([]interface{}, len(val))
		for i, item := range val {
			out[i] = convertKeys(item, fn)
		}
		return out
	case []map[string]interface{}:
		out := make([]map[string]interface{}, len(val))
		for i, item := range val {
			out[i] = convertKeys(item, fn).(map[string]interface{})
		}
		return out
	default:
		return v
	}
}
