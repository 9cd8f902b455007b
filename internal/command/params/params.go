// Package params decodes a request query string into the flat parameter bag
// handed to schema validation.
//
// Coercion is purely syntactic. Each value, in priority order:
//
//  1. "true" / "false" become booleans
//  2. a value containing a comma becomes a []string of trimmed segments
//  3. anything else stays a string (the empty string included)
//
// Required-ness, ranges and enums are left to the command's schema.
package params

import (
	"net/url"
	"strings"
)

// DefaultSelectorKey is the query key that names the command.
const DefaultSelectorKey = "cmd"

// Bag is a decoded parameter set. Values are string, bool or []string.
type Bag map[string]any

// Parse decodes rawQuery, skipping selectorKey. When a key repeats, the last
// occurrence wins. Decoding never fails: pairs split on "&" only, and an
// invalid percent escape is kept as literal text.
func Parse(rawQuery, selectorKey string) Bag {
	bag := make(Bag)
	for _, kv := range pairs(rawQuery) {
		if kv.key == selectorKey {
			continue
		}
		bag[kv.key] = Coerce(kv.value)
	}
	return bag
}

// Coerce applies the boolean and comma-list rules to a single raw value.
func Coerce(value string) any {
	switch {
	case value == "true":
		return true
	case value == "false":
		return false
	case strings.Contains(value, ","):
		parts := strings.Split(value, ",")
		for i, p := range parts {
			parts[i] = strings.TrimSpace(p)
		}
		return parts
	default:
		return value
	}
}

// Selector returns the first value of selectorKey in rawQuery, or "" when the
// key is absent.
func Selector(rawQuery, selectorKey string) string {
	for _, kv := range pairs(rawQuery) {
		if kv.key == selectorKey {
			return kv.value
		}
	}
	return ""
}

type pair struct {
	key, value string
}

func pairs(rawQuery string) []pair {
	rawQuery = strings.TrimPrefix(rawQuery, "?")
	out := make([]pair, 0, strings.Count(rawQuery, "&")+1)
	for part := range strings.SplitSeq(rawQuery, "&") {
		if part == "" {
			continue
		}
		key, value, _ := strings.Cut(part, "=")
		out = append(out, pair{key: unescape(key), value: unescape(value)})
	}
	return out
}

// unescape decodes "+" and %XX sequences. Sequences that are not a valid
// escape stay as written.
func unescape(s string) string {
	if v, err := url.QueryUnescape(s); err == nil {
		return v
	}
	var b strings.Builder
	b.Grow(len(s))
	for i := 0; i < len(s); i++ {
		switch c := s[i]; {
		case c == '+':
			b.WriteByte(' ')
		case c == '%' && i+2 < len(s) && isHex(s[i+1]) && isHex(s[i+2]):
			b.WriteByte(unhex(s[i+1])<<4 | unhex(s[i+2]))
			i += 2
		default:
			b.WriteByte(c)
		}
	}
	return b.String()
}

func isHex(c byte) bool {
	return '0' <= c && c <= '9' || 'a' <= c && c <= 'f' || 'A' <= c && c <= 'F'
}

func unhex(c byte) byte {
	switch {
	case '0' <= c && c <= '9':
		return c - '0'
	case 'a' <= c && c <= 'f':
		return c - 'a' + 10
	default:
		return c - 'A' + 10
	}
}
