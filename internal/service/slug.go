package service

import (
	"strings"
	"unicode"

	"github.com/google/uuid"
)

// makeSlug turns a title into a URL-safe base slug: lowercase, punctuation
// stripped, whitespace runs collapsed to single hyphens.
func makeSlug(title string) string {
	var b strings.Builder
	lastHyphen := true // suppress a leading hyphen

	for _, r := range strings.ToLower(title) {
		switch {
		case unicode.IsLetter(r) || unicode.IsDigit(r):
			b.WriteRune(r)
			lastHyphen = false
		case unicode.IsSpace(r) || r == '-' || r == '_':
			if !lastHyphen {
				b.WriteByte('-')
				lastHyphen = true
			}
		}
		// everything else (punctuation, symbols) is dropped
	}

	return strings.TrimSuffix(b.String(), "-")
}

// slugSuffix returns a short random code used to disambiguate colliding
// slugs without a retry loop on the uniqueness constraint.
func slugSuffix() string {
	return strings.ReplaceAll(uuid.NewString(), "-", "")[:8]
}
