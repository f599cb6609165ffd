// Package slug turns free text into the URL-safe identifier used in public
// album links. Normalization is pure - uniqueness is the album store's job.
package slug

import (
	"errors"
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// ErrEmpty is returned when nothing usable is left after normalization,
// e.g. a title made of punctuation only.
var ErrEmpty = errors.New("slug is empty after normalization")

var stripMarks = transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)

// Normalize lower-cases the input, strips diacritics, collapses every run of
// characters outside [a-z0-9] into a single hyphen and trims hyphens from
// both ends. "Eu & Você 2025!" becomes "eu-voce-2025".
func Normalize(raw string) (string, error) {
	lowered := strings.ToLower(raw)
	stripped, _, err := transform.String(stripMarks, lowered)
	if err != nil {
		// Malformed UTF-8 - treat the same as an unusable title
		return "", ErrEmpty
	}

	var b strings.Builder
	lastHyphen := true // swallow leading separators
	for _, c := range stripped {
		if (c >= 'a' && c <= 'z') || (c >= '0' && c <= '9') {
			b.WriteRune(c)
			lastHyphen = false
		} else if !lastHyphen {
			b.WriteByte('-')
			lastHyphen = true
		}
	}
	s := strings.TrimSuffix(b.String(), "-")
	if s == "" {
		return "", ErrEmpty
	}
	return s, nil
}
