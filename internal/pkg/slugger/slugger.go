package slugger

import (
	"regexp"
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

var separators = regexp.MustCompile(`[^a-z0-9]+`)

// Make derives a URL-safe slug from a title: lowercase, strict ASCII,
// hyphen-separated. Deterministic, so identical titles always collide.
// Returns "" when no rune survives folding; callers supply a fallback.
func Make(title string) string {
	s := strings.ToLower(strings.TrimSpace(title))
	s = stripDiacritics(s)
	s = separators.ReplaceAllString(s, "-")
	return strings.Trim(s, "-")
}

// stripDiacritics folds accented latin characters to their ASCII base so
// "Café" slugs as "cafe" instead of dropping the rune entirely.
func stripDiacritics(s string) string {
	t := transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)
	out, _, err := transform.String(t, s)
	if err != nil {
		return s
	}
	return out
}
