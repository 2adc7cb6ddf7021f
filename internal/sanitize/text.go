package sanitize

import (
	"html"
	"strings"

	"github.com/microcosm-cc/bluemonday"
)

// StrictPolicy removes all HTML tags and attributes.
var StrictPolicy = bluemonday.StrictPolicy()

// maxRounds bounds how many layers of entity encoding are unwrapped.
const maxRounds = 8

// Text strips markup from user supplied plain text and trims surrounding space.
// Entities are decoded before sanitizing so encoded tags cannot survive as markup.
// The result is stored unescaped and encoded by whoever renders it.
func Text(input string) string {
	s := input
	for range maxRounds {
		decoded := unescapeAll(s)
		clean := StrictPolicy.Sanitize(decoded)
		if html.UnescapeString(clean) == decoded {
			return strings.TrimSpace(decoded)
		}
		s = clean
	}
	return strings.TrimSpace(StrictPolicy.Sanitize(s))
}

func unescapeAll(s string) string {
	for range maxRounds {
		next := html.UnescapeString(s)
		if next == s {
			break
		}
		s = next
	}
	return s
}
