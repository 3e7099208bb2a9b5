package utils

import (
	"strings"

	"github.com/microcosm-cc/bluemonday"
)

// excerptLimit is how many characters of stripped content the excerpt keeps.
const excerptLimit = 150

var stripper = bluemonday.StrictPolicy()

// StripTags removes all HTML markup from content.
func StripTags(content string) string {
	return stripper.Sanitize(content)
}

// DeriveExcerpt builds a short summary from post content: HTML tags stripped,
// first 150 characters, with an ellipsis appended when the content was longer.
func DeriveExcerpt(content string) string {
	plain := []rune(StripTags(content))
	if len(plain) <= excerptLimit {
		return strings.TrimSpace(string(plain))
	}
	excerpt := strings.TrimSpace(string(plain[:excerptLimit]))
	return excerpt + "..."
}
