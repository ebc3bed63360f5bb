// Package slug derives URL slugs from product titles.
package slug

import (
	"strings"
	"unicode"
)

// Make lowercases the title and collapses every run of non-alphanumeric
// characters into a single hyphen. Persian and other letter runes are kept
// as-is so Persian titles produce readable slugs.
func Make(title string) string {
	var b strings.Builder
	lastHyphen := true // suppress leading hyphen

	for _, r := range strings.ToLower(strings.TrimSpace(title)) {
		switch {
		case unicode.IsLetter(r) || unicode.IsDigit(r):
			b.WriteRune(r)
			lastHyphen = false
		default:
			if !lastHyphen {
				b.WriteRune('-')
				lastHyphen = true
			}
		}
	}

	return strings.TrimRight(b.String(), "-")
}
