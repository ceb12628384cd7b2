package compare

import (
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

var stripMarks = transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)

// NormalizeItem canonicalizes a free-text item name for oracle lookups:
// trimmed, lowercased, diacritics stripped, inner whitespace collapsed.
// The response always echoes the caller's original item strings.
func NormalizeItem(s string) string {
	s = strings.TrimSpace(s)
	if out, _, err := transform.String(stripMarks, s); err == nil {
		s = out
	}
	return strings.ToLower(strings.Join(strings.Fields(s), " "))
}
