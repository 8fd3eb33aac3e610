package utils

import "strings"

// SplitThatEnsuresGlobsAreSafe splits s at any of the separators, except inside
// brace groups such as "{unit;integration}". Parts are trimmed; empty parts are dropped.
func SplitThatEnsuresGlobsAreSafe(s string, separators ...rune) []string {
	var parts []string
	var current strings.Builder
	braceLevel := 0

	flush := func() {
		if part := strings.TrimSpace(current.String()); part != "" {
			parts = append(parts, part)
		}
		current.Reset()
	}

	for _, r := range s {
		switch {
		case r == '{':
			braceLevel++
		case r == '}' && braceLevel > 0:
			braceLevel--
		case braceLevel == 0 && strings.ContainsRune(string(separators), r):
			flush()
			continue
		}
		current.WriteRune(r)
	}
	flush()
	return parts
}
