package service

import (
	"regexp"
	"strings"
)

var (
	slugInvalid    = regexp.MustCompile(`[^a-z0-9\s-]`)
	slugWhitespace = regexp.MustCompile(`\s+`)
	slugHyphens    = regexp.MustCompile(`-+`)
)

// Slugify derives a URL slug from a display name: lower-case, strip
// everything outside [a-z0-9 -], collapse whitespace runs and repeated
// hyphens to single hyphens, trim leading/trailing hyphens. The result is
// not guaranteed unique; the unique constraint on the slug column is.
// Non-ASCII letters are stripped, not transliterated, so a name made up
// entirely of them produces an empty slug.
func Slugify(name string) string {
	s := strings.ToLower(name)
	s = slugInvalid.ReplaceAllString(s, "")
	s = slugWhitespace.ReplaceAllString(s, "-")
	s = slugHyphens.ReplaceAllString(s, "-")
	return strings.Trim(s, "-")
}
