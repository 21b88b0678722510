package utils

import (
	"html"
	"strings"

	"github.com/microcosm-cc/bluemonday"
)

var plainText = bluemonday.StrictPolicy()

// CleanText strips all markup from user supplied text and trims it. Entities
// produced by the sanitizer are unescaped again since clients render the
// value as text, not HTML.
func CleanText(s string) string {
	return strings.TrimSpace(html.UnescapeString(plainText.Sanitize(s)))
}
