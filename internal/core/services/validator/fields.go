package validator

import "strings"

// PrepareFields rewrites form keys from snake_case to the kebab-case used
// in HTML ids ("first_name" -> "first-name"). Values are untouched.
func PrepareFields[V any](fields map[string]V) map[string]V {
	prepared := make(map[string]V, len(fields))
	for key, field := range fields {
		prepared[strings.ReplaceAll(key, "_", "-")] = field
	}
	return prepared
}
