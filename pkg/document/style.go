package document

// StyleMap is the open attribute mapping declared under an entity's "ui"
// field. Unknown attributes are retained so documents can carry
// forward-compatible extra fields safely; renderers read only the keys they
// understand. Values are the loose JSON forms (string, float64, bool, ...).
type StyleMap map[string]any

// String returns the string value for key, or "" when absent or not a string.
func (m StyleMap) String(key string) string {
	s, _ := m[key].(string)
	return s
}

// StringOr returns the string value for key, or def when absent.
func (m StyleMap) StringOr(key, def string) string {
	if s, ok := m[key].(string); ok {
		return s
	}
	return def
}

// Float returns the numeric value for key. JSON numbers decode as float64;
// integers stored programmatically are coerced as well.
func (m StyleMap) Float(key string) (float64, bool) {
	switch v := m[key].(type) {
	case float64:
		return v, true
	case int:
		return float64(v), true
	}
	return 0, false
}

// FloatOr returns the numeric value for key, or def when absent.
func (m StyleMap) FloatOr(key string, def float64) float64 {
	if f, ok := m.Float(key); ok {
		return f
	}
	return def
}

// Bool returns the boolean value for key, or false when absent.
func (m StyleMap) Bool(key string) bool {
	b, _ := m[key].(bool)
	return b
}

// Has reports whether the attribute is present, regardless of its type.
func (m StyleMap) Has(key string) bool {
	_, ok := m[key]
	return ok
}

// Merged returns a copy of m with any keys missing from m filled from
// defaults. Neither input map is modified.
func (m StyleMap) Merged(defaults StyleMap) StyleMap {
	out := make(StyleMap, len(m)+len(defaults))
	for k, v := range defaults {
		out[k] = v
	}
	for k, v := range m {
		out[k] = v
	}
	return out
}
