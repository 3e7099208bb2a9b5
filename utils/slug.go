package utils

import (
	"regexp"
	"strings"
)

var (
	slugDropRe     = regexp.MustCompile(`[^\w\s]`)
	slugSpaceRe    = regexp.MustCompile(`\s+`)
	slugSafeTestRe = regexp.MustCompile(`^[a-z0-9_-]+$`)
)

// Slugify turns a title into its URL token: lowercase, drop everything that is
// neither a word character nor whitespace, then collapse whitespace runs into
// single hyphens. "Hello, World!" becomes "hello-world".
func Slugify(title string) string {
	s := strings.ToLower(strings.TrimSpace(title))
	s = slugDropRe.ReplaceAllString(s, "")
	s = strings.TrimSpace(s)
	return slugSpaceRe.ReplaceAllString(s, "-")
}

// IsSlugSafe reports whether an explicitly supplied slug is already URL-safe.
func IsSlugSafe(slug string) bool {
	return slugSafeTestRe.MatchString(slug)
}
