package shared

import (
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// FoldKeyword trims and lower-cases a free-text search keyword.
// It returns "" when nothing searchable is left.
func FoldKeyword(s string) string {
	s = strings.TrimSpace(s)
	if s == "" {
		return ""
	}
	// Casers keep state, so one is built per call.
	return cases.Lower(language.Und).String(s)
}

// NullIfBlank returns nil for nil or whitespace-only strings, otherwise a
// pointer to the trimmed value.
func NullIfBlank(s *string) *string {
	if s == nil {
		return nil
	}
	v := strings.TrimSpace(*s)
	if v == "" {
		return nil
	}
	return &v
}

// StringValue dereferences s, returning "" for nil.
func StringValue(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}
