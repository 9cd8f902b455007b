package schema

import "slices"

// Values is a validated parameter set. Getters return the zero value for
// absent keys or mismatched types.
type Values map[string]any

// Has reports whether key is present.
func (v Values) Has(key string) bool {
	_, ok := v[key]
	return ok
}

// String returns a string value.
func (v Values) String(key string) string {
	s, _ := v[key].(string)
	return s
}

// Bool returns a boolean value.
func (v Values) Bool(key string) bool {
	b, _ := v[key].(bool)
	return b
}

// Float returns a numeric value, widening integers.
func (v Values) Float(key string) float64 {
	switch n := v[key].(type) {
	case float64:
		return n
	case int:
		return float64(n)
	}
	return 0
}

// Int returns an integer value, truncating floats.
func (v Values) Int(key string) int {
	switch n := v[key].(type) {
	case int:
		return n
	case float64:
		return int(n)
	}
	return 0
}

// Strings returns a copy of a list value.
func (v Values) Strings(key string) []string {
	s, _ := v[key].([]string)
	return slices.Clone(s)
}
