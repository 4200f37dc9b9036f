package util

import (
	"strings"
	"unicode"
)

// Slug lowercases s and replaces every run of whitespace with a hyphen.
func Slug(s string) string {
	var b strings.Builder
	space := false
	for _, r := range strings.ToLower(s) {
		if unicode.IsSpace(r) {
			space = true
			continue
		}
		if space {
			b.WriteByte('-')
			space = false
		}
		b.WriteRune(r)
	}
	if space {
		b.WriteByte('-')
	}
	return b.String()
}
