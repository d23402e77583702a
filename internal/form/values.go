package form

// Values holds coerced field values keyed by field name. Only fields that
// were actually submitted appear; absent optional fields are the caller's
// cue to apply defaults.
type Values map[string]any

// Has reports whether the named field was submitted.
func (v Values) Has(name string) bool {
	_, ok := v[name]
	return ok
}

// GetString returns the named string value, or "" when absent.
func (v Values) GetString(name string) string {
	s, _ := v[name].(string)
	return s
}

// GetInt returns the named int value, or 0 when absent.
func (v Values) GetInt(name string) int {
	n, _ := v[name].(int)
	return n
}

// GetBool returns the named bool value, or false when absent.
func (v Values) GetBool(name string) bool {
	b, _ := v[name].(bool)
	return b
}

// GetIntOr returns the named int value, or fallback when absent.
func (v Values) GetIntOr(name string, fallback int) int {
	if n, ok := v[name].(int); ok {
		return n
	}
	return fallback
}

// GetBoolOr returns the named bool value, or fallback when absent.
func (v Values) GetBoolOr(name string, fallback bool) bool {
	if b, ok := v[name].(bool); ok {
		return b
	}
	return fallback
}

// GetStringOr returns the named string value, or fallback when absent.
func (v Values) GetStringOr(name, fallback string) string {
	if s, ok := v[name].(string); ok {
		return s
	}
	return fallback
}
