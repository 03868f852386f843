// Package keycase normalizes the key casing of arbitrary nested documents.
package keycase

import (
	"reflect"
	"regexp"
	"strings"
	"unicode"
)

// Keys that are a bare acronym, optionally pluralized: "ID", "HTTPS", "DUNs".
var acronymKey = regexp.MustCompile(`^[A-Z]+s?$`)

// CamelizeKeys returns a copy of v where every map key is rewritten to
// camelCase. Acronym keys ("DUNs", "HTTPS") are lower-cased wholesale instead
// of being split word by word. Scalars pass through unchanged, slices are
// mapped element-wise. The input is never mutated.
func CamelizeKeys(v any) any {
	if v == nil {
		return nil
	}

	rv := reflect.ValueOf(v)
	switch rv.Kind() {
	case reflect.Map:
		if rv.Type().Key().Kind() != reflect.String {
			return v
		}
		out := make(map[string]any, rv.Len())
		iter := rv.MapRange()
		for iter.Next() {
			key := camelizeKey(iter.Key().String())
			out[key] = CamelizeKeys(iter.Value().Interface())
		}
		return out
	case reflect.Slice:
		// Byte slices are scalar payloads, not sequences of documents.
		if rv.Type().Elem().Kind() == reflect.Uint8 {
			return v
		}
		out := make([]any, rv.Len())
		for i := 0; i < rv.Len(); i++ {
			out[i] = CamelizeKeys(rv.Index(i).Interface())
		}
		return out
	default:
		return v
	}
}

func camelizeKey(key string) string {
	if acronymKey.MatchString(key) {
		return strings.ToLower(key)
	}

	words := splitWords(key)
	if len(words) == 0 {
		return key
	}

	var b strings.Builder
	for i, w := range words {
		w = strings.ToLower(w)
		if i > 0 {
			w = strings.ToUpper(w[:1]) + w[1:]
		}
		b.WriteString(w)
	}
	return b.String()
}

// splitWords breaks a key into words at separators ("user_id", "user-id",
// "user id") and case boundaries ("userId", "HTTPServer").
func splitWords(s string) []string {
	var words []string
	var cur []rune

	flush := func() {
		if len(cur) > 0 {
			words = append(words, string(cur))
			cur = nil
		}
	}

	runes := []rune(s)
	for i, r := range runes {
		if !unicode.IsLetter(r) && !unicode.IsDigit(r) {
			flush()
			continue
		}
		if unicode.IsUpper(r) && i > 0 {
			prev := runes[i-1]
			next := rune(0)
			if i+1 < len(runes) {
				next = runes[i+1]
			}
			// "userId" boundary, or the "S" in "HTTPServer".
			if unicode.IsLower(prev) || unicode.IsDigit(prev) ||
				(unicode.IsUpper(prev) && next != 0 && unicode.IsLower(next)) {
				flush()
			}
		}
		cur = append(cur, r)
	}
	flush()
	return words
}
