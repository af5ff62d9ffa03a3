// Package casemap transcodes map keys between the internal camelCase
// convention and the provider's PascalCase convention.
//
// Camelize and Pascalize work on generic decoded JSON (map[string]any, []any
// and scalars). Decode and Encode bridge typed values through JSON so callers
// can go straight from a provider struct to a camelCase-tagged domain struct
// and back.
package casemap

import (
	"encoding/json"
	"fmt"
	"unicode"
	"unicode/utf8"
)

// ToCamel converts a PascalCase key to camelCase. A leading acronym is
// lower-cased as a whole, except for its last letter when that letter starts
// the next word: "GeofenceId" -> "geofenceId", "URLPath" -> "urlPath",
// "ID" -> "id". Keys that do not start with an upper-case letter are
// returned unchanged.
func ToCamel(key string) string {
	first, _ := utf8.DecodeRuneInString(key)
	if first == utf8.RuneError || !unicode.IsUpper(first) {
		return key
	}

	runes := []rune(key)
	upper := 0
	for upper < len(runes) && unicode.IsUpper(runes[upper]) {
		upper++
	}

	switch {
	case upper == 1 || upper == len(runes):
		// "Label" or "ID"
	case unicode.IsLetter(runes[upper]):
		// "URLPath": keep "P" as the start of the next word
		upper--
	}

	for i := 0; i < upper; i++ {
		runes[i] = unicode.ToLower(runes[i])
	}
	return string(runes)
}

// ToPascal converts a camelCase key to PascalCase by upper-casing the first
// letter. Keys that do not start with a lower-case letter are returned
// unchanged.
func ToPascal(key string) string {
	first, size := utf8.DecodeRuneInString(key)
	if first == utf8.RuneError || !unicode.IsLower(first) {
		return key
	}
	return string(unicode.ToUpper(first)) + key[size:]
}

// Camelize returns a copy of v with every map key converted by ToCamel,
// recursing into nested maps and slices.
func Camelize(v any) any {
	return transform(v, ToCamel)
}

// Pascalize returns a copy of v with every map key converted by ToPascal,
// recursing into nested maps and slices.
func Pascalize(v any) any {
	return transform(v, ToPascal)
}

func transform(v any, keyFn func(string) string) any {
	switch val := v.(type) {
	case map[string]any:
		out := make(map[string]any, len(val))
		for k, child := range val {
			out[keyFn(k)] = transform(child, keyFn)
		}
		return out
	case []map[string]any:
		out := make([]any, len(val))
		for i, child := range val {
			out[i] = transform(child, keyFn)
		}
		return out
	case []any:
		out := make([]any, len(val))
		for i, child := range val {
			out[i] = transform(child, keyFn)
		}
		return out
	default:
		return v
	}
}

// Decode converts a provider value into dst: src is marshaled to JSON, its
// keys camelized, and the result unmarshaled into dst.
func Decode(src, dst any) error {
	return convert(src, dst, ToCamel)
}

// Encode converts an internal value into a provider value: src is marshaled
// to JSON, its keys pascalized, and the result unmarshaled into dst.
func Encode(src, dst any) error {
	return convert(src, dst, ToPascal)
}

func convert(src, dst any, keyFn func(string) string) error {
	raw, err := json.Marshal(src)
	if err != nil {
		return fmt.Errorf("marshal %T: %w", src, err)
	}

	var generic any
	if err := json.Unmarshal(raw, &generic); err != nil {
		return fmt.Errorf("decode %T: %w", src, err)
	}

	raw, err = json.Marshal(transform(generic, keyFn))
	if err != nil {
		return fmt.Errorf("marshal transcoded %T: %w", src, err)
	}

	if err := json.Unmarshal(raw, dst); err != nil {
		return fmt.Errorf("unmarshal into %T: %w", dst, err)
	}
	return nil
}
