package validation

import (
	"sort"
	"strings"
)

// Errors maps a field name to the message shown next to that field.
type Errors map[string]string

func (e Errors) Error() string {
	fields := make([]string, 0, len(e))
	for f := range e {
		fields = append(fields, f)
	}
	sort.Strings(fields)

	parts := make([]string, 0, len(fields))
	for _, f := range fields {
		parts = append(parts, f+": "+e[f])
	}
	return "validation failed: " + strings.Join(parts, "; ")
}

// Check records message for field when ok is false and reports ok.
func (e Errors) Check(ok bool, field, message string) bool {
	if !ok {
		if _, exists := e[field]; !exists {
			e[field] = message
		}
	}
	return ok
}

// Required records message for field when value is blank.
func (e Errors) Required(value, field, message string) bool {
	return e.Check(strings.TrimSpace(value) != "", field, message)
}
