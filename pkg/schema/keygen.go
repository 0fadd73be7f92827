package schema

import (
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

var keyFolder = transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)

// DeriveKey converts a human label into a machine-safe key: diacritics are
// folded away, everything is lowercased, punctuation is dropped, and words are
// joined with underscores. Deriving twice from the same label yields the same
// output, and a derived key re-derives to itself.
//
// Empty or punctuation-only labels derive to ""; callers must treat that as a
// missing key, not as a usable identifier.
func DeriveKey(label string) string {
	folded, _, err := transform.String(keyFolder, label)
	if err != nil {
		folded = label
	}
	folded = strings.ToLower(folded)

	var b strings.Builder
	b.Grow(len(folded))
	pendingSep := false
	for _, r := range folded {
		switch {
		case r >= 'a' && r <= 'z', r >= '0' && r <= '9':
			if pendingSep && b.Len() > 0 {
				b.WriteByte('_')
			}
			pendingSep = false
			b.WriteRune(r)
		case unicode.IsSpace(r), r == '_', r == '-':
			pendingSep = true
		default:
			// punctuation and anything non-ASCII left after folding is dropped
		}
	}
	return b.String()
}
